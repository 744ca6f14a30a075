package sheet

import (
	"github.com/kraitsura/sheet/pkg/surface"
	"github.com/kraitsura/sheet/pkg/task"
)

// positionFixer freezes page scroll on touch platforms while the sheet is
// open, by pinning the page node at the negative of the current scroll
// offsets with a fixed-position override, and restores both the styles and
// the scroll position on close.
type positionFixer struct {
	r      *Root
	settle task.Single

	pinned   bool
	previous surface.Props
}

// pinnedKeys are the layout properties snapshotted before pinning.
var pinnedKeys = []string{"position", "top", "left", "right", "height"}

func newPositionFixer(r *Root) *positionFixer {
	return &positionFixer{r: r}
}

func (p *positionFixer) pin() {
	r := p.r
	if r.cfg.Page == nil || !r.host.TouchDevice() || p.pinned {
		return
	}
	page := r.cfg.Page
	p.previous = make(surface.Props, len(pinnedKeys))
	for _, key := range pinnedKeys {
		if v, ok := page.Style(key); ok {
			p.previous[key] = v
		}
	}
	scrollX, scrollY := r.host.ScrollOffset()
	_, layoutH := r.host.ViewportSize()
	page.SetStyle("position", "fixed !important")
	page.SetStyle("top", surface.Px(-scrollY))
	page.SetStyle("left", surface.Px(-scrollX))
	page.SetStyle("right", "0px")
	page.SetStyle("height", "auto")
	p.pinned = true

	// A dynamic toolbar appearing near the end of the content shifts the
	// available height after the pin; correct the offset once it has had
	// time to settle.
	r.schedule(&p.settle, toolbarSettleDelay, func() {
		if !p.pinned {
			return
		}
		_, nowH := r.host.ViewportSize()
		toolbar := layoutH - nowH
		if toolbar > 0 && scrollY >= layoutH {
			page.SetStyle("top", surface.Px(-(scrollY + toolbar)))
		}
	})
}

func (p *positionFixer) unpin() {
	r := p.r
	if !p.pinned || r.cfg.Page == nil {
		return
	}
	page := r.cfg.Page
	top, _ := page.Style("top")
	left, _ := page.Style("left")
	y, _ := surface.ParsePx(top)
	x, _ := surface.ParsePx(left)

	for _, key := range pinnedKeys {
		if v, ok := p.previous[key]; ok {
			page.SetStyle(key, v)
		} else {
			page.RemoveStyle(key)
		}
	}
	p.previous = nil
	p.pinned = false
	r.host.OnNextFrame(func() {
		r.host.ScrollTo(-x, -y)
	})
}

func (p *positionFixer) stop() {
	p.settle.Cancel()
}
