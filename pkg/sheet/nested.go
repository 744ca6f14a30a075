package sheet

import (
	"math"

	"github.com/kraitsura/sheet/pkg/surface"
)

// Nested-sheet choreography: a child sheet relays its open, drag, and
// release events here, and the parent's panel scales back into a stacked
// card behind it. The child never touches the parent's nodes directly.

func (r *Root) nestedScale() float64 {
	w := r.viewportWidth()
	if w <= 0 {
		return 1
	}
	return (w - nestedInset) / w
}

// onNestedOpenChange animates the parent toward the stacked-card transform
// when the child opens and back to rest when it closes. Closing also arms
// the repin task: once the return settle has had time to finish, the
// transform is snapped, without transition, to the parent's own independent
// drag offset so a parent mid-drag does not jump.
func (r *Root) onNestedOpenChange(open bool) {
	scale := 1.0
	y := 0.0
	if open {
		scale = r.nestedScale()
		y = -nestedInset
	}
	r.repin.Cancel()
	r.mut.Set(r.drawer, surface.Props{
		"transition": transition("transform"),
		"transform":  surface.TranslateScale(scale, y),
	})
	if !open {
		r.schedule(&r.repin, nestedRepinDelay, func() {
			offset, ok := surface.TranslateY(r.drawer)
			if !ok {
				offset = 0
			}
			r.mut.Set(r.drawer, surface.Props{
				"transition": "none",
				"transform":  surface.Translate(offset),
			})
		})
	}
}

// onNestedDrag follows the child's drag 1:1, interpolating the parent
// between the fully-nested transform (percentage 0) and rest (percentage
// 1). Negative percentages are ignored.
func (r *Root) onNestedDrag(percentage float64) {
	if percentage < 0 {
		return
	}
	percentage = math.Min(percentage, 1)
	initial := r.nestedScale()
	scale := initial + percentage*(1-initial)
	y := -nestedInset + percentage*nestedInset
	r.mut.Set(r.drawer, surface.Props{
		"transition": "none",
		"transform":  surface.TranslateScale(scale, y),
	})
}

// onNestedRelease animates the parent to the fully-nested transform when
// the child snaps back open. A committed close is handled by the
// open-change path instead.
func (r *Root) onNestedRelease(open bool) {
	if !open {
		return
	}
	r.mut.Set(r.drawer, surface.Props{
		"transition": transition("transform"),
		"transform":  surface.TranslateScale(r.nestedScale(), -nestedInset),
	})
}
