package termhost

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// OverlayAt composites panel on top of base at cell position (x, y), both
// treated as line grids. Rows of the panel falling outside the base are
// clipped, which is how a dragged-down drawer slides off screen.
func OverlayAt(base, panel string, x, y, width, height int) string {
	baseLines := splitLines(base)
	panelLines := splitLines(panel)
	panelWidth := 0
	for _, l := range panelLines {
		if w := ansi.StringWidth(l); w > panelWidth {
			panelWidth = w
		}
	}
	for i, line := range panelLines {
		row := y + i
		if row < 0 || row >= len(baseLines) || row >= height {
			continue
		}
		target := padTo(baseLines[row], width)
		left := ansi.Truncate(target, x, "")
		if w := ansi.StringWidth(left); w < x {
			left += strings.Repeat(" ", x-w)
		}
		line = padTo(line, panelWidth)
		pos := x + ansi.StringWidth(line)
		right := ""
		if width > pos {
			right = ansi.TruncateLeft(target, pos, "")
			if gap := width - pos - ansi.StringWidth(right); gap > 0 {
				right = strings.Repeat(" ", gap) + right
			}
		}
		baseLines[row] = left + line + right
	}
	return strings.Join(baseLines, "\n")
}

func padTo(s string, width int) string {
	if w := ansi.StringWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

func splitLines(s string) []string {
	if s == "" {
		return []string{""}
	}
	return strings.Split(s, "\n")
}
