// Package termhost adapts the sheet engine to a terminal: it keeps the
// render tree as surface.MemNodes, implements sheet.Host on top of a
// bubbletea program, and maps transform/opacity/radius style properties to
// terminal visuals.
package termhost

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kraitsura/sheet/pkg/surface"
)

// CellPx is the pixel height assigned to one terminal row. Gesture
// velocities and distances are tuned in pixels, so mouse rows are scaled up
// before they reach the engine.
const CellPx = 40.0

// FrameMsg carries a deferred engine callback back onto the bubbletea loop.
type FrameMsg struct {
	Fn func()
}

// Host is a terminal-backed sheet.Host plus the node tree a sheet needs:
// page, background wrapper, overlay, drawer, and an input used to exercise
// the keyboard adjuster.
type Host struct {
	Page    *surface.MemNode
	Wrapper *surface.MemNode
	Overlay *surface.MemNode
	Drawer  *surface.MemNode
	Content *surface.MemNode
	Input   *surface.MemNode

	mu           sync.Mutex
	send         func(tea.Msg)
	resizeSubs   map[int]func()
	nextSub      int
	width        int // cells
	height       int // cells
	keyboardRows int
	drawerRows   int
	scrollX      float64
	scrollY      float64
	touch        bool
	inputFocused bool
}

// New builds a host with a standard tree: page > wrapper > (content,
// overlay, drawer > input). drawerRows is the drawer's natural height in
// terminal rows.
func New(drawerRows int) *Host {
	h := &Host{
		resizeSubs: make(map[int]func()),
		drawerRows: drawerRows,
		touch:      true,
	}
	h.Page = surface.NewMemNode("page")
	h.Wrapper = h.Page.AppendChild(surface.NewMemNode("wrapper"))
	h.Content = h.Wrapper.AppendChild(surface.NewMemNode("content"))
	h.Overlay = h.Page.AppendChild(surface.NewMemNode("overlay"))
	h.Drawer = h.Page.AppendChild(surface.NewMemNode("drawer"))
	h.Input = h.Drawer.AppendChild(surface.NewMemNode("input"))
	h.Input.SetInteractive(true)
	return h
}

// SetSend wires the running program so deferred engine callbacks reenter
// the event loop as FrameMsgs.
func (h *Host) SetSend(send func(tea.Msg)) {
	h.mu.Lock()
	h.send = send
	h.mu.Unlock()
}

// Resize lays the tree out for a new terminal size.
func (h *Host) Resize(width, height int) {
	h.width = width
	h.height = height
	h.layout()
}

func (h *Host) layout() {
	wPx := float64(h.width) * CellPx
	hPx := float64(h.height) * CellPx
	drawerPx := float64(h.drawerRows) * CellPx
	h.Page.SetBounds(surface.Rect{W: wPx, H: hPx})
	h.Wrapper.SetBounds(surface.Rect{W: wPx, H: hPx})
	h.Overlay.SetBounds(surface.Rect{W: wPx, H: hPx})
	h.Drawer.SetBounds(surface.Rect{Y: hPx - drawerPx, W: wPx, H: drawerPx})
	h.Input.SetBounds(surface.Rect{X: CellPx, Y: hPx - drawerPx + CellPx, W: wPx - 2*CellPx, H: CellPx})
}

// DrawerRows returns the drawer's natural height in rows.
func (h *Host) DrawerRows() int { return h.drawerRows }

// Size returns the terminal size in cells.
func (h *Host) Size() (int, int) { return h.width, h.height }

// SetKeyboard simulates a soft keyboard occupying rows terminal rows,
// shrinking the visual viewport and notifying resize subscribers.
func (h *Host) SetKeyboard(rows int) {
	h.keyboardRows = rows
	h.notifyResize()
}

// KeyboardRows returns the simulated keyboard height in rows.
func (h *Host) KeyboardRows() int { return h.keyboardRows }

// FocusInput marks the drawer's input as focused.
func (h *Host) FocusInput(focused bool) { h.inputFocused = focused }

// NodeAt maps a terminal cell to the deepest node under it, for pointer
// event targets.
func (h *Host) NodeAt(col, row int) surface.Node {
	x := float64(col) * CellPx
	y := float64(row) * CellPx
	if inside(h.Input.Bounds(), x, y) {
		return h.Input
	}
	if inside(h.Drawer.Bounds(), x, y) {
		return h.Drawer
	}
	return h.Content
}

func inside(r surface.Rect, x, y float64) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// ViewportSize implements sheet.Host.
func (h *Host) ViewportSize() (float64, float64) {
	return float64(h.width) * CellPx, float64(h.height) * CellPx
}

// VisualViewport implements sheet.Host; the simulated keyboard shrinks it.
func (h *Host) VisualViewport() (float64, float64) {
	return float64(h.width) * CellPx, float64(h.height-h.keyboardRows) * CellPx
}

// ScrollOffset implements sheet.Host.
func (h *Host) ScrollOffset() (float64, float64) { return h.scrollX, h.scrollY }

// ScrollTo implements sheet.Host.
func (h *Host) ScrollTo(x, y float64) {
	h.scrollX = x
	h.scrollY = y
}

// SelectionActive implements sheet.Host; terminals have no text selection
// the engine can observe.
func (h *Host) SelectionActive() bool { return false }

// TouchDevice implements sheet.Host.
func (h *Host) TouchDevice() bool { return h.touch }

// SetTouchDevice overrides touch detection, mostly for tests.
func (h *Host) SetTouchDevice(v bool) { h.touch = v }

// FocusedNode implements sheet.Host.
func (h *Host) FocusedNode() surface.Node {
	if h.inputFocused {
		return h.Input
	}
	return nil
}

// OnViewportResize implements sheet.Host.
func (h *Host) OnViewportResize(fn func()) func() {
	h.mu.Lock()
	defer h.mu.Unlock()
	id := h.nextSub
	h.nextSub++
	h.resizeSubs[id] = fn
	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.resizeSubs, id)
	}
}

func (h *Host) notifyResize() {
	h.mu.Lock()
	subs := make([]func(), 0, len(h.resizeSubs))
	for _, fn := range h.resizeSubs {
		subs = append(subs, fn)
	}
	h.mu.Unlock()
	for _, fn := range subs {
		fn()
	}
}

// OnNextFrame implements sheet.Host. With a running program the callback is
// sent into the event loop as a FrameMsg; before the program starts it runs
// inline.
func (h *Host) OnNextFrame(fn func()) {
	h.mu.Lock()
	send := h.send
	h.mu.Unlock()
	if send == nil {
		fn()
		return
	}
	send(FrameMsg{Fn: fn})
}
