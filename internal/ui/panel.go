package ui

import (
	"fmt"
	"regexp"
	"strings"
)

var ansiRegexp = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func stripANSI(s string) string { return ansiRegexp.ReplaceAllString(s, "") }

// ProgressBar renders a bar with counts and percentage, e.g.
// "███░░░ 1/3  33%".
func ProgressBar(done, total, width int) string {
	if total <= 0 {
		total = 1
	}
	if width < 5 {
		width = 5
	}
	filled := int(float64(done) / float64(total) * float64(width))
	if filled > width {
		filled = width
	}
	fill, rest := "█", "░"
	if current.H == "-" { // mono theme, ASCII only
		fill, rest = "#", "."
	}
	bar := strings.Repeat(fill, filled) + strings.Repeat(rest, width-filled)
	pct := int(float64(done) / float64(total) * 100)
	return fmt.Sprintf("%s %d/%d %3d%%", bar, done, total, pct)
}

// Panel draws a framed box around the lines using the current theme.
// Line widths are computed on the text with escape codes stripped.
func Panel(lines []string) {
	t := current
	maxw := 0
	for _, ln := range lines {
		if w := len([]rune(stripANSI(ln))); w > maxw {
			maxw = w
		}
	}
	pad := func(s string) string {
		vis := len([]rune(stripANSI(s)))
		if vis < maxw {
			s += strings.Repeat(" ", maxw-vis)
		}
		return s
	}
	fmt.Println(t.CornerTL + strings.Repeat(t.H, maxw+2) + t.CornerTR)
	for _, ln := range lines {
		fmt.Println(t.V + " " + pad(ln) + " " + t.V)
	}
	fmt.Println(t.CornerBL + strings.Repeat(t.H, maxw+2) + t.CornerBR)
}
