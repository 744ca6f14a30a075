package sheet

import (
	"math"
	"time"

	"github.com/kraitsura/sheet/pkg/surface"
	"github.com/kraitsura/sheet/pkg/task"
)

// orchestrator computes and applies the coordinated transform, opacity, and
// corner-radius changes for the sheet, its overlay, and the page background
// during drag, settle, open, and close.
type orchestrator struct {
	r       *Root
	animEnd task.Single
	cleanup task.Single
}

// schedule arms a single-flight timer whose body runs on the host event
// loop, keeping all engine state single-threaded.
func (r *Root) schedule(t *task.Single, d time.Duration, fn func()) {
	t.Schedule(d, func() {
		r.host.OnNextFrame(func() {
			if r.tornDown {
				return
			}
			fn()
		})
	})
}

// reset animates the sheet back to rest: translate to 0, overlay opacity to
// 1. If the sheet had been dragged downward while open and background
// scaling is on, the scaled-background visual is reapplied with the same
// timing; a purely upward rubber-band pull does not trigger it.
func (o *orchestrator) reset() {
	r := o.r
	offset, ok := surface.TranslateY(r.drawer)
	r.mut.Set(r.drawer, surface.Props{
		"transform":  surface.Translate(0),
		"transition": transition("transform"),
	})
	r.mut.SetUncached(r.overlay, surface.Props{
		"transition": transition("opacity"),
		"opacity":    "1",
	})
	if r.opts.ShouldScaleBackground && ok && offset > 0 && r.open.get() {
		o.applyScaledBackground()
	}
}

// close stores the exit-animation hand-off values and flips the open flag.
// The presentation layer's "hide" keyframes consume the hand-offs; no
// further orchestrator code runs the exit animation itself.
func (o *orchestrator) close() {
	r := o.r
	if !r.open.get() {
		return
	}
	offset, ok := surface.TranslateY(r.drawer)
	if !ok {
		offset = 0
	}
	r.mut.Set(r.drawer, surface.Props{
		PropHideFrom: surface.Px(offset),
		PropHideTo:   surface.Px(r.drawerHeight()),
	})
	r.mut.Set(r.overlay, surface.Props{
		PropOpacityFrom: surface.FormatFloat(o.overlayOpacity()),
	})
	if r.cfg.OnClose != nil {
		r.cfg.OnClose()
	}
	r.setOpen(false)
}

func (o *orchestrator) overlayOpacity() float64 {
	if o.r.overlay == nil {
		return 1
	}
	value, ok := o.r.overlay.Style("opacity")
	if !ok {
		return 1
	}
	v, ok := surface.ParsePx(value)
	if !ok {
		return 1
	}
	return v
}

// handleAnimationStart reacts to presentation-layer animation starts
// matched by identity. Every known start cancels the previously scheduled
// end-of-animation task and arms a fresh one.
func (o *orchestrator) handleAnimationStart(name string) {
	r := o.r
	switch name {
	case AnimShow:
		if r.opts.ShouldScaleBackground {
			o.applyScaledBackground()
		}
	case AnimHide:
		// Clear the background's stacked-card overrides and restore the
		// default timing so later interactions shrink it smoothly again.
		r.mut.Reset(r.background, "transform", "border-radius")
		r.mut.Set(r.background, surface.Props{
			"transition": transition("transform, border-radius"),
		})
	default:
		return
	}
	r.setAnimating(true)
	r.schedule(&o.animEnd, animationEndGrace, func() {
		r.setAnimating(false)
		if r.cfg.OnAnimationEnd != nil {
			r.cfg.OnAnimationEnd(r.open.get())
		}
	})
}

// applyScaledBackground applies the resting stacked-card visual to the
// external background target.
func (o *orchestrator) applyScaledBackground() {
	r := o.r
	if r.background == nil {
		return
	}
	w := r.viewportWidth()
	if w <= 0 {
		return
	}
	r.mut.Set(r.background, surface.Props{
		"border-radius": surface.Px(borderRadius),
		"overflow":      "hidden",
		"transform":     surface.TranslateScale((w-backgroundInset)/w, backgroundOffset),
		"transition":    transition("transform, border-radius"),
	})
}

// dragBackground interpolates the background between its resting scaled
// visual (percentage 0) and the untouched page (percentage 1), without
// transition for 1:1 drag feedback.
func (o *orchestrator) dragBackground(percentage float64) {
	r := o.r
	if r.background == nil {
		return
	}
	w := r.viewportWidth()
	if w <= 0 {
		return
	}
	initial := (w - backgroundInset) / w
	scale := math.Min(initial+percentage*(1-initial), 1)
	radius := borderRadius - percentage*borderRadius
	offset := math.Max(0, backgroundOffset-percentage*backgroundOffset)
	r.mut.SetUncached(r.background, surface.Props{
		"border-radius": surface.Px(radius),
		"transform":     surface.TranslateScale(scale, offset),
		"transition":    "none",
	})
}

// scheduleBackgroundCleanup fully resets the background's overrides a beat
// after the sheet closes, unless it reopened in the meantime.
func (o *orchestrator) scheduleBackgroundCleanup() {
	r := o.r
	r.schedule(&o.cleanup, backgroundCleanupDelay, func() {
		if r.open.get() {
			return
		}
		r.mut.Reset(r.background)
	})
}

func (o *orchestrator) stop() {
	o.animEnd.Cancel()
	o.cleanup.Cancel()
}
