package sheet

import (
	"math"

	"github.com/kraitsura/sheet/pkg/surface"
)

// keyboardAdjuster reacts to soft-keyboard-induced visual-viewport resizes,
// shrinking and repositioning the sheet so its content stays reachable
// above the keyboard.
type keyboardAdjuster struct {
	r      *Root
	cancel func()

	keyboardOpen  bool
	naturalHeight float64
}

func newKeyboardAdjuster(r *Root) *keyboardAdjuster {
	return &keyboardAdjuster{r: r}
}

func (k *keyboardAdjuster) start() {
	k.cancel = k.r.host.OnViewportResize(k.handle)
}

func (k *keyboardAdjuster) stop() {
	if k.cancel != nil {
		k.cancel()
		k.cancel = nil
	}
}

func (k *keyboardAdjuster) handle() {
	r := k.r
	if r.drawer == nil {
		return
	}
	focused := r.host.FocusedNode()
	focusedHidden := focused != nil && !k.fullyVisible(focused)
	if !focusedHidden && !k.keyboardOpen {
		return
	}
	k.keyboardOpen = !k.keyboardOpen

	_, layoutH := r.host.ViewportSize()
	_, visualH := r.host.VisualViewport()
	heightDelta := layoutH - visualH

	rect := r.drawer.Bounds()
	if k.naturalHeight == 0 {
		k.naturalHeight = rect.H
	}
	if rect.H > visualH {
		r.mut.Set(r.drawer, surface.Props{
			"height": surface.Px(visualH - rect.Y),
		})
	} else {
		r.mut.Set(r.drawer, surface.Props{
			"height": surface.Px(k.naturalHeight),
		})
	}
	r.mut.Set(r.drawer, surface.Props{
		"bottom": surface.Px(math.Max(0, heightDelta)),
	})
}

// fullyVisible reports whether the node's bounding box lies inside the
// visual viewport, with a tolerance below for platform chrome that renders
// a frame late.
func (k *keyboardAdjuster) fullyVisible(n surface.Node) bool {
	vw, vh := k.r.host.VisualViewport()
	rect := n.Bounds()
	return rect.X >= 0 && rect.Y >= 0 &&
		rect.X+rect.W <= vw &&
		rect.Y+rect.H <= vh+visibilityTolerance
}
