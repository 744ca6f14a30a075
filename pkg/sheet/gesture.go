package sheet

import (
	"math"
	"time"

	"github.com/kraitsura/sheet/pkg/surface"
)

// gestureController tracks one press/drag/release session per sheet. The
// session-active flag strictly sequences the three phases: a drag or
// release without an active session is a no-op. While a session is active
// the host must route every pointer sample to this sheet, even when the
// pointer leaves the panel bounds.
type gestureController struct {
	r *Root

	active    bool
	startY    float64
	startTime time.Time

	// lastPrevented starts the scroll-lock cooldown each time a drag is
	// vetoed in favor of native scrolling. It outlives the session.
	lastPrevented time.Time
}

func (g *gestureController) press(ev PointerEvent) {
	r := g.r
	if !r.opts.Dismissible {
		return
	}
	if !surface.Contains(r.drawer, ev.Target) {
		return
	}
	if ev.Target != nil && ev.Target.Interactive() {
		return
	}
	g.active = true
	g.startY = ev.Y
	g.startTime = ev.Time
	r.setDragging(true)
}

func (g *gestureController) drag(ev PointerEvent) {
	if !g.active {
		return
	}
	r := g.r
	distance := g.startY - ev.Y
	draggingDown := distance < 0

	if !g.shouldDrag(ev.Target, draggingDown, ev.Time) {
		return
	}

	if distance > 0 {
		// Pulled upward past rest: capped rubber-band translate only,
		// no opacity or scale feedback.
		amount := math.Min(distance, rubberBandCap)
		r.mut.Set(r.drawer, surface.Props{
			"transition": "none",
			"transform":  surface.Translate(-amount),
		})
		return
	}

	swiped := math.Abs(distance)
	percentage := 0.0
	if h := r.drawerHeight(); h > 0 {
		percentage = math.Min(swiped/h, 1)
	}

	r.mut.SetUncached(r.overlay, surface.Props{
		"transition": "none",
		"opacity":    surface.FormatFloat(1 - percentage),
	})
	if r.cfg.OnDrag != nil {
		r.cfg.OnDrag(ev, percentage)
	}
	if r.parent != nil {
		r.parent.onNestedDrag(percentage)
	}
	if r.opts.ShouldScaleBackground {
		r.orch.dragBackground(percentage)
	}
	r.mut.Set(r.drawer, surface.Props{
		"transition": "none",
		"transform":  surface.Translate(swiped),
	})
}

// shouldDrag applies the scroll and selection veto rules. A false result
// defers the gesture to native scrolling and, in the scroll cases, starts
// the cooldown that keeps immediately following gestures from fighting a
// scroll in progress.
func (g *gestureController) shouldDrag(target surface.Node, draggingDown bool, now time.Time) bool {
	r := g.r
	if r.host.SelectionActive() {
		return false
	}
	offset, ok := surface.TranslateY(r.drawer)
	if !ok {
		offset = 0
	}
	if !g.lastPrevented.IsZero() && now.Sub(g.lastPrevented) < r.opts.ScrollLockTimeout && offset == 0 {
		g.lastPrevented = now
		return false
	}

	for n := target; n != nil; n = n.Parent() {
		if !n.ScrollableY() {
			continue
		}
		if n == r.drawer {
			// The panel itself scrolling is fine to drag.
			return true
		}
		if n.ScrollTop() != 0 {
			g.lastPrevented = now
			return false
		}
		if draggingDown && offset == 0 {
			// Scrolled to the top with the sheet at rest: let native
			// scroll take the downward gesture.
			g.lastPrevented = now
			return false
		}
	}
	return true
}

func (g *gestureController) release(ev PointerEvent) {
	r := g.r
	if ev.Target != nil && ev.Target.Interactive() {
		return
	}
	if !g.active {
		return
	}
	g.active = false
	r.setDragging(false)

	swipeAmount, ok := surface.TranslateY(r.drawer)
	if !ok {
		// No measurement, no decision; the session just ends.
		return
	}

	distance := g.startY - ev.Y
	elapsed := float64(ev.Time.Sub(g.startTime)) / float64(time.Millisecond)
	if elapsed <= 0 {
		elapsed = 1
	}
	velocity := math.Abs(distance) / elapsed

	if distance > 0 {
		// Net upward pull always snaps open, whatever the speed.
		r.orch.reset()
		g.fireRelease(ev, true)
		return
	}
	if velocity > velocityThreshold {
		g.commitClose(ev)
		return
	}
	if swipeAmount >= r.drawerHeight()*r.opts.CloseThreshold {
		g.commitClose(ev)
		return
	}
	r.orch.reset()
	g.fireRelease(ev, true)
}

func (g *gestureController) commitClose(ev PointerEvent) {
	g.r.orch.close()
	g.fireRelease(ev, false)
}

func (g *gestureController) fireRelease(ev PointerEvent, open bool) {
	r := g.r
	if r.parent != nil {
		r.parent.onNestedRelease(open)
	}
	if r.cfg.OnRelease != nil {
		r.cfg.OnRelease(ev, open)
	}
}
