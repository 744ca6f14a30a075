package sheet

import (
	"sync"
	"testing"
	"time"

	"github.com/kraitsura/sheet/pkg/surface"
)

// testHost is a deterministic in-memory Host. OnNextFrame runs inline so
// deferred engine callbacks execute as soon as their timers fire.
type testHost struct {
	w, h             float64
	visualW, visualH float64
	scrollX, scrollY float64
	selection        bool
	touch            bool
	focused          surface.Node
	resize           func()
}

func newTestHost() *testHost {
	return &testHost{w: 1000, h: 800, visualW: 1000, visualH: 800}
}

func (h *testHost) ViewportSize() (float64, float64)   { return h.w, h.h }
func (h *testHost) VisualViewport() (float64, float64) { return h.visualW, h.visualH }
func (h *testHost) ScrollOffset() (float64, float64)   { return h.scrollX, h.scrollY }
func (h *testHost) ScrollTo(x, y float64)              { h.scrollX, h.scrollY = x, y }
func (h *testHost) SelectionActive() bool              { return h.selection }
func (h *testHost) TouchDevice() bool                  { return h.touch }
func (h *testHost) FocusedNode() surface.Node          { return h.focused }
func (h *testHost) OnNextFrame(fn func())              { fn() }

func (h *testHost) OnViewportResize(fn func()) func() {
	h.resize = fn
	return func() { h.resize = nil }
}

// recorder collects callback invocations behind a lock, since animation-end
// callbacks arrive from timer-driven frames.
type recorder struct {
	mu       sync.Mutex
	releases []bool
	opens    []bool
	animEnds []bool
	closes   int
}

func (rec *recorder) release(_ PointerEvent, open bool) {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	rec.releases = append(rec.releases, open)
}

func (rec *recorder) openChange(open bool) {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	rec.opens = append(rec.opens, open)
}

func (rec *recorder) animEnd(open bool) {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	rec.animEnds = append(rec.animEnds, open)
}

func (rec *recorder) closed() {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	rec.closes++
}

func (rec *recorder) lastRelease(t *testing.T) bool {
	t.Helper()
	rec.mu.Lock()
	defer rec.mu.Unlock()
	if len(rec.releases) == 0 {
		t.Fatal("no release callback recorded")
	}
	return rec.releases[len(rec.releases)-1]
}

func (rec *recorder) releaseCount() int {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	return len(rec.releases)
}

func (rec *recorder) animEndCount() int {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	return len(rec.animEnds)
}

// rig is a fully wired sheet over an in-memory tree: a 1000x800 viewport
// with a 600px-tall drawer anchored at the bottom.
type rig struct {
	host       *testHost
	page       *surface.MemNode
	background *surface.MemNode
	overlay    *surface.MemNode
	drawer     *surface.MemNode
	content    *surface.MemNode
	rec        *recorder
	root       *Root
	t0         time.Time
}

func newRig(t *testing.T, mutate func(*Config)) *rig {
	t.Helper()
	g := &rig{
		host: newTestHost(),
		rec:  &recorder{},
		t0:   time.Unix(1000, 0),
	}
	g.page = surface.NewMemNode("page")
	g.background = g.page.AppendChild(surface.NewMemNode("background"))
	g.overlay = g.page.AppendChild(surface.NewMemNode("overlay"))
	g.drawer = g.page.AppendChild(surface.NewMemNode("drawer"))
	g.content = g.drawer.AppendChild(surface.NewMemNode("content"))
	g.drawer.SetBounds(surface.Rect{Y: 200, W: 1000, H: 600})
	g.content.SetBounds(surface.Rect{Y: 240, W: 1000, H: 560})

	opts := DefaultOptions()
	opts.DefaultOpen = true
	cfg := Config{
		Host:         g.host,
		Drawer:       g.drawer,
		Overlay:      g.overlay,
		Background:   g.background,
		Page:         g.page,
		Options:      opts,
		OnRelease:    g.rec.release,
		OnOpenChange: g.rec.openChange,
		OnClose:      g.rec.closed,
	}
	if mutate != nil {
		mutate(&cfg)
	}
	root, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	g.root = root
	t.Cleanup(root.Teardown)
	return g
}

func (g *rig) at(ms int) time.Time {
	return g.t0.Add(time.Duration(ms) * time.Millisecond)
}

func (g *rig) press(y float64, ms int) {
	g.root.Press(PointerEvent{Target: g.content, Y: y, Time: g.at(ms)})
}

func (g *rig) drag(y float64, ms int) {
	g.root.Drag(PointerEvent{Target: g.content, Y: y, Time: g.at(ms)})
}

func (g *rig) release(y float64, ms int) {
	g.root.Release(PointerEvent{Target: g.content, Y: y, Time: g.at(ms)})
}

// swipe runs a full press/drag/release of dy pixels (positive = downward)
// over the given duration.
func (g *rig) swipe(dy float64, durMs int) {
	const startY = 300
	g.press(startY, 0)
	g.drag(startY+dy, durMs)
	g.release(startY+dy, durMs)
}

func (g *rig) drawerOffset(t *testing.T) float64 {
	t.Helper()
	y, ok := surface.TranslateY(g.drawer)
	if !ok {
		t.Fatal("drawer has no readable translate offset")
	}
	return y
}

func approx(a, b float64) bool {
	d := a - b
	return d < 1e-9 && d > -1e-9
}
