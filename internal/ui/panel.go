package ui

import (
	"fmt"
	"strings"
)

// ProgressBar renders a fixed-width completion bar with percentage,
// using the active theme's glyphs.
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
	bar := strings.Repeat(current.BarFilled, filled) +
		strings.Repeat(current.BarEmpty, width-filled)
	pct := int(float64(done) / float64(total) * 100)
	return fmt.Sprintf("%s %3d%%", bar, pct)
}

// Panel frames lines with the active theme's border and returns the
// rendered block.
func Panel(lines []string) string {
	return current.Frame.Render(strings.Join(lines, "\n"))
}
