package ui

import (
	"fmt"
	"os"
)

const (
	reset = "\033[0m"
	bold  = "\033[1m"

	fgGray          = "\033[90m"
	fgGreen         = "\033[32m"
	fgYellow        = "\033[33m"
	fgBlue          = "\033[34m"
	fgRed           = "\033[31m"
	fgBrightYellow  = "\033[93m"
	fgBrightMagenta = "\033[95m"
	fgBrightCyan    = "\033[96m"
)

var colorDisabled bool

// SetColorDisabled turns escape sequences off globally, for pipes and
// NO_COLOR.
func SetColorDisabled(disabled bool) { colorDisabled = disabled }

func isTTY() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}

// C wraps s in the given escape code when color output is on.
func C(color, s string) string {
	if colorDisabled || color == "" || !isTTY() {
		return s
	}
	return color + s + reset
}

// OK prints a success line to stdout.
func OK(msg string) {
	fmt.Println(C(current.Success, current.SymDone+" "+msg))
}

// Fail prints an error line to stderr.
func Fail(msg string) {
	fmt.Fprintln(os.Stderr, C(current.Error, current.SymFail+" "+msg))
}

// Hint renders a muted one-line suggestion.
func Hint(msg string) string {
	return C(current.Muted, msg)
}
