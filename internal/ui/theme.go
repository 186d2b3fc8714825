package ui

import "strings"

// Theme bundles the palette, symbols and box borders that the
// renderers pull from.
type Theme struct {
	Title, Muted, Accent, Success, Error, Pending string
	BoxUnchecked, BoxChecked                      string
	CornerTL, CornerTR, CornerBL, CornerBR        string
	H, V                                          string
	SymDone, SymPending, SymFail                  string
}

var current = classic()

// SetTheme selects the palette by name. Unknown names fall back to
// classic; mono also turns color off.
func SetTheme(name string) {
	switch strings.ToLower(name) {
	case "neon":
		current = neon()
	case "mono":
		current = mono()
		SetColorDisabled(true)
	default:
		current = classic()
	}
}

// Current returns the active theme.
func Current() Theme { return current }

func classic() Theme {
	return Theme{
		Title: bold, Muted: fgGray, Accent: fgBlue,
		Success: fgGreen, Error: fgRed, Pending: fgYellow,
		BoxUnchecked: "☐", BoxChecked: "☑",
		CornerTL: "┌", CornerTR: "┐", CornerBL: "└", CornerBR: "┘",
		H: "─", V: "│",
		SymDone: "✔", SymPending: "•", SymFail: "✖",
	}
}

func neon() Theme {
	return Theme{
		Title: fgBrightMagenta, Muted: fgGray, Accent: fgBrightCyan,
		Success: fgGreen, Error: fgRed, Pending: fgBrightYellow,
		BoxUnchecked: "◻", BoxChecked: "◼",
		CornerTL: "╭", CornerTR: "╮", CornerBL: "╰", CornerBR: "╯",
		H: "─", V: "│",
		SymDone: "✔", SymPending: "•", SymFail: "✖",
	}
}

func mono() Theme {
	return Theme{
		BoxUnchecked: "[ ]", BoxChecked: "[x]",
		CornerTL: "+", CornerTR: "+", CornerBL: "+", CornerBR: "+",
		H: "-", V: "|",
		SymDone: "x", SymPending: "-", SymFail: "!",
	}
}
