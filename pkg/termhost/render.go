package termhost

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/kraitsura/sheet/pkg/surface"
)

var (
	pageStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F8F8F2"))
	dimStyle      = lipgloss.NewStyle().Faint(true)
	drawerStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#BD93F9"))
	handleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6272A4"))
	keyboardStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#44475A"))
)

// View renders the page with the drawer and overlay composited on top,
// translating the engine's style properties into terminal visuals: wrapper
// scale becomes horizontal margin, translate offsets become row shifts,
// overlay opacity below ~0.7 dims the page.
func (h *Host) View(pageLines []string, drawerBody string) string {
	if h.width <= 0 || h.height <= 0 {
		return ""
	}
	base := h.renderPage(pageLines)

	if op := h.overlayOpacity(); op < 0.7 {
		base = dimLines(base)
	}

	if box := h.renderDrawer(drawerBody); box != "" {
		top := h.drawerTopRow()
		base = OverlayAt(base, box, 1, top, h.width, h.height)
	}

	lines := splitLines(base)
	for i := h.height - h.keyboardRows; i < h.height && i >= 0; i++ {
		if i < len(lines) {
			lines[i] = keyboardStyle.Render(strings.Repeat("▒", h.width))
		}
	}
	return strings.Join(lines, "\n")
}

func (h *Host) renderPage(pageLines []string) string {
	scale := surface.ScaleOf(h.Wrapper)
	margin := 0
	if scale < 1 {
		margin = int(math.Round((1 - scale) * float64(h.width) / 2))
	}
	offsetRows := 0
	if y, ok := surface.TranslateY(h.Wrapper); ok && y > 0 {
		offsetRows = int(math.Round(y / CellPx))
	}

	lines := make([]string, 0, h.height)
	for i := 0; i < offsetRows; i++ {
		lines = append(lines, "")
	}
	pad := strings.Repeat(" ", margin)
	for _, l := range pageLines {
		if len(lines) >= h.height {
			break
		}
		content := runewidth.Truncate(l, h.width-2*margin, "…")
		lines = append(lines, pad+pageStyle.Render(content))
	}
	for len(lines) < h.height {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

func (h *Host) renderDrawer(body string) string {
	if body == "" {
		return ""
	}
	rows := h.drawerRows
	if v, ok := h.Drawer.Style("height"); ok {
		if px, okPx := surface.ParsePx(v); okPx {
			rows = int(math.Round(px / CellPx))
		}
	}
	if rows <= 2 {
		rows = 3
	}
	inner := h.width - 4
	if inner < 1 {
		return ""
	}
	handle := handleStyle.Render(centered("────", inner))
	content := handle + "\n" + body
	return drawerStyle.Width(inner).Height(rows - 2).Render(content)
}

// drawerTopRow positions the drawer box: resting on the bottom edge, pushed
// down by the drag translate, and lifted by the keyboard bottom pin.
func (h *Host) drawerTopRow() int {
	top := h.height - h.drawerRows
	if y, ok := surface.TranslateY(h.Drawer); ok {
		top += int(math.Round(y / CellPx))
	}
	if v, ok := h.Drawer.Style("bottom"); ok {
		if px, okPx := surface.ParsePx(v); okPx && px > 0 {
			top -= int(math.Round(px / CellPx))
		}
	}
	return top
}

func (h *Host) overlayOpacity() float64 {
	v, ok := h.Overlay.Style("opacity")
	if !ok {
		return 1
	}
	op, okPx := surface.ParsePx(v)
	if !okPx {
		return 1
	}
	return op
}

func dimLines(s string) string {
	lines := splitLines(s)
	for i, l := range lines {
		lines[i] = dimStyle.Render(l)
	}
	return strings.Join(lines, "\n")
}

func centered(s string, width int) string {
	w := runewidth.StringWidth(s)
	if w >= width {
		return s
	}
	left := (width - w) / 2
	return strings.Repeat(" ", left) + s
}
