package sheet

import (
	"errors"
	"fmt"

	"github.com/kraitsura/sheet/pkg/surface"
	"github.com/kraitsura/sheet/pkg/task"
)

// ErrNoParent reports a nested sheet composed without a parent.
var ErrNoParent = errors.New("sheet: nested sheet requires a parent Root")

// Config wires a Root to its render-tree nodes, host environment, and
// collaborators.
type Config struct {
	Host Host

	// Drawer is the sheet panel itself; required.
	Drawer surface.Node
	// Overlay dims the page behind the sheet; optional.
	Overlay surface.Node
	// Background is the external target for the stacked-card visual,
	// typically the page content wrapper; optional.
	Background surface.Node
	// Page is the node pinned against scrolling on touch platforms,
	// typically the document body; optional.
	Page surface.Node

	Options Options

	// Dialog is the modal-dialog primitive; optional.
	Dialog Dialog
	// ScrollLocker is engaged while the sheet is open and idle; optional.
	ScrollLocker ScrollLocker

	// OnOpenChange reports every open-state change.
	OnOpenChange func(open bool)
	// OnDrag reports drag progress as a fraction of the sheet height.
	OnDrag func(ev PointerEvent, percentage float64)
	// OnRelease reports the committed outcome of a completed gesture.
	OnRelease func(ev PointerEvent, open bool)
	// OnClose fires when a close commits, before the exit animation.
	OnClose func()
	// OnAnimationEnd fires when an enter or exit settle finishes, with
	// the open state at that moment.
	OnAnimationEnd func(open bool)
}

// Root owns a sheet instance: the open flag, the visual state, and the
// gesture, transition, keyboard, and scroll-pinning machinery. All methods
// must be called from the host's event loop.
type Root struct {
	cfg  Config
	opts Options
	host Host
	mut  *surface.Mutator

	drawer     surface.Node
	overlay    surface.Node
	background surface.Node

	open      *openState
	dragging  bool
	animating bool

	gesture gestureController
	orch    orchestrator
	kb      *keyboardAdjuster
	fixer   *positionFixer

	parent *Root
	repin  task.Single

	// keyboardClose makes the next outside-press gate consume itself, so
	// a keyboard-initiated close is not immediately followed by an
	// outside dismissal of whatever opened underneath.
	keyboardClose bool
	lockHeld      bool
	tornDown      bool
}

// New creates a standalone sheet Root.
func New(cfg Config) (*Root, error) {
	return newRoot(cfg, nil)
}

// NewNested creates a sheet composed inside parent's coordination context.
// A nil parent is a configuration error.
func NewNested(parent *Root, cfg Config) (*Root, error) {
	if parent == nil {
		return nil, ErrNoParent
	}
	return newRoot(cfg, parent)
}

func newRoot(cfg Config, parent *Root) (*Root, error) {
	if cfg.Host == nil {
		return nil, fmt.Errorf("sheet: Config.Host is required")
	}
	if cfg.Drawer == nil {
		return nil, fmt.Errorf("sheet: Config.Drawer is required")
	}
	opts := cfg.Options
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	r := &Root{
		cfg:        cfg,
		opts:       opts,
		host:       cfg.Host,
		mut:        surface.NewMutator(),
		drawer:     cfg.Drawer,
		overlay:    cfg.Overlay,
		background: cfg.Background,
		parent:     parent,
	}
	r.open = newOpenState(opts.DefaultOpen, cfg.OnOpenChange)
	r.gesture = gestureController{r: r}
	r.orch = orchestrator{r: r}
	r.kb = newKeyboardAdjuster(r)
	r.fixer = newPositionFixer(r)
	r.kb.start()
	if opts.DefaultOpen {
		r.applyOpen(true)
	}
	return r, nil
}

// SetOptions swaps the tunable options at runtime, e.g. from a live-reloaded
// config file. Invalid options are rejected and the current ones kept.
func (r *Root) SetOptions(opts Options) error {
	if err := opts.Validate(); err != nil {
		return err
	}
	r.opts = opts
	return nil
}

// Open reports the sheet's open state.
func (r *Root) Open() bool { return r.open.get() }

// Dragging reports whether a drag session is active.
func (r *Root) Dragging() bool { return r.dragging }

// Animating reports whether an enter or exit settle is in flight.
func (r *Root) Animating() bool { return r.animating }

// SetOpen drives the open flag. External controllers and triggers call
// this; gesture decisions arrive here too. Opening pins the page and
// notifies a parent sheet; closing schedules the background cleanup.
func (r *Root) SetOpen(open bool) {
	if r.tornDown {
		return
	}
	if open {
		r.setOpen(true)
		return
	}
	r.orch.close()
}

func (r *Root) setOpen(open bool) {
	if r.open.set(open) {
		r.applyOpen(open)
	}
}

func (r *Root) applyOpen(open bool) {
	if r.cfg.Dialog != nil {
		r.cfg.Dialog.SetOpen(open)
	}
	if r.parent != nil {
		r.parent.onNestedOpenChange(open)
	}
	if open {
		r.fixer.pin()
	} else {
		r.fixer.unpin()
		r.orch.scheduleBackgroundCleanup()
	}
	r.updateScrollLock()
}

// Press begins a drag session. See gestureController.press for the veto
// rules.
func (r *Root) Press(ev PointerEvent) {
	if r.tornDown {
		return
	}
	r.gesture.press(ev)
}

// Drag advances an active drag session.
func (r *Root) Drag(ev PointerEvent) {
	if r.tornDown {
		return
	}
	r.gesture.drag(ev)
}

// Release ends an active drag session and commits or cancels the close.
func (r *Root) Release(ev PointerEvent) {
	if r.tornDown {
		return
	}
	r.gesture.release(ev)
}

// HandleAnimationStart must be called by the presentation layer when it
// starts an animation matching one of the known identities (AnimShow,
// AnimHide). Unknown names are ignored.
func (r *Root) HandleAnimationStart(name string) {
	if r.tornDown {
		return
	}
	r.orch.handleAnimationStart(name)
}

// AllowOutsideDismiss gates the dialog primitive's outside-pointer-down
// dismissal. Suppressed for non-dismissible and non-modal sheets, and
// consumed once after a keyboard-initiated close.
func (r *Root) AllowOutsideDismiss() bool {
	if !r.opts.Dismissible || !r.opts.Modal {
		return false
	}
	if r.keyboardClose {
		r.keyboardClose = false
		return false
	}
	return true
}

// AllowAutoFocus gates the dialog primitive's default auto-focus, which is
// pointless while the sheet has no rendered content.
func (r *Root) AllowAutoFocus() bool {
	return r.drawer != nil && r.drawer.Bounds().H > 0
}

// CloseFromKeyboard closes the sheet in response to a keyboard dismissal
// (escape), arming the outside-press gate to swallow the same interaction.
func (r *Root) CloseFromKeyboard() {
	if r.tornDown || !r.opts.Dismissible {
		return
	}
	r.keyboardClose = true
	r.orch.close()
}

// KeyboardOpen reports whether the soft keyboard is currently tracked as
// open.
func (r *Root) KeyboardOpen() bool { return r.kb.keyboardOpen }

// Teardown cancels subscriptions and pending timers. The Root must not be
// used afterwards; late style writes from already-fired callbacks no-op.
func (r *Root) Teardown() {
	if r.tornDown {
		return
	}
	r.tornDown = true
	r.kb.stop()
	r.repin.Cancel()
	r.orch.stop()
	r.fixer.stop()
	r.gesture.active = false
	if r.lockHeld && r.cfg.ScrollLocker != nil {
		r.cfg.ScrollLocker.Unlock()
		r.lockHeld = false
	}
}

func (r *Root) setDragging(v bool) {
	r.dragging = v
	r.updateScrollLock()
}

func (r *Root) setAnimating(v bool) {
	r.animating = v
	r.updateScrollLock()
}

// updateScrollLock engages the scroll-lock collaborator exactly when the
// sheet is open, modal, and neither dragging nor animating.
func (r *Root) updateScrollLock() {
	if r.cfg.ScrollLocker == nil {
		return
	}
	want := r.open.get() && r.opts.Modal && !r.dragging && !r.animating
	if want == r.lockHeld {
		return
	}
	r.lockHeld = want
	if want {
		r.cfg.ScrollLocker.Lock()
	} else {
		r.cfg.ScrollLocker.Unlock()
	}
}

func (r *Root) viewportWidth() float64 {
	w, _ := r.host.ViewportSize()
	return w
}

func (r *Root) drawerHeight() float64 {
	if r.drawer == nil {
		return 0
	}
	return r.drawer.Bounds().H
}
