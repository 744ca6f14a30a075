// Package sheet implements the interactive engine of a bottom-anchored
// slide-in panel: gesture recognition with scroll and selection vetoes,
// velocity-based commit/cancel decisions on release, coordinated style
// transitions for the sheet, its overlay, and the page background,
// nested-sheet stacking, soft-keyboard viewport adjustment, and page scroll
// pinning on touch platforms.
//
// The engine is headless. It reads and writes an abstract render tree
// (surface.Node) and queries the host environment through the Host
// interface, so the same logic drives a terminal, a GUI toolkit, or the
// in-memory tree used by tests.
package sheet

import (
	"time"

	"github.com/kraitsura/sheet/pkg/surface"
)

// Host is the environment a sheet lives in. All callbacks are invoked on
// the host's event loop; the engine never blocks.
type Host interface {
	// ViewportSize returns the layout viewport in pixels.
	ViewportSize() (w, h float64)
	// VisualViewport returns the visual viewport, which shrinks when a
	// soft keyboard is shown.
	VisualViewport() (w, h float64)
	// ScrollOffset returns the page scroll position.
	ScrollOffset() (x, y float64)
	// ScrollTo scrolls the page.
	ScrollTo(x, y float64)
	// SelectionActive reports whether any text is currently selected.
	SelectionActive() bool
	// TouchDevice reports whether the platform is touch-driven; page
	// pinning only applies there.
	TouchDevice() bool
	// FocusedNode returns the currently focused input node, or nil.
	FocusedNode() surface.Node
	// OnViewportResize subscribes to visual-viewport changes and returns
	// a cancel function.
	OnViewportResize(fn func()) (cancel func())
	// OnNextFrame schedules fn for the next paint opportunity.
	OnNextFrame(fn func())
}

// Dialog is the modal-dialog primitive the sheet layers on. The engine only
// drives its open flag; focus management, portal mounting, and
// accessibility semantics stay inside the primitive.
type Dialog interface {
	SetOpen(open bool)
}

// ScrollLocker freezes scrolling behind a modal sheet. The engine engages
// it exactly while the sheet is open and neither dragging nor animating.
type ScrollLocker interface {
	Lock()
	Unlock()
}

// PointerEvent is a press, drag, or release sample on the sheet surface.
// Times ride on the event so velocity math is deterministic under test.
type PointerEvent struct {
	Target surface.Node
	Y      float64
	Time   time.Time
}
