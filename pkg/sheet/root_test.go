package sheet

import (
	"testing"

	"github.com/kraitsura/sheet/pkg/surface"
)

type fakeLocker struct {
	locks, unlocks int
}

func (l *fakeLocker) Lock()   { l.locks++ }
func (l *fakeLocker) Unlock() { l.unlocks++ }

func (l *fakeLocker) held() bool { return l.locks > l.unlocks }

func TestNewRequiresHostAndDrawer(t *testing.T) {
	if _, err := New(Config{Drawer: surface.NewMemNode("drawer")}); err == nil {
		t.Error("New without Host succeeded")
	}
	if _, err := New(Config{Host: newTestHost()}); err == nil {
		t.Error("New without Drawer succeeded")
	}
}

func TestNewRejectsInvalidOptions(t *testing.T) {
	opts := DefaultOptions()
	opts.CloseThreshold = 1.5
	_, err := New(Config{
		Host:    newTestHost(),
		Drawer:  surface.NewMemNode("drawer"),
		Options: opts,
	})
	if err == nil {
		t.Fatal("New accepted close threshold 1.5")
	}
}

func TestNestedRequiresParent(t *testing.T) {
	_, err := NewNested(nil, Config{
		Host:   newTestHost(),
		Drawer: surface.NewMemNode("drawer"),
	})
	if err != ErrNoParent {
		t.Fatalf("NewNested(nil, ...) = %v, want ErrNoParent", err)
	}
}

func TestScrollLockFollowsIdleOpenState(t *testing.T) {
	locker := &fakeLocker{}
	g := newRig(t, func(cfg *Config) { cfg.ScrollLocker = locker })

	if !locker.held() {
		t.Fatal("open idle sheet did not engage scroll lock")
	}

	g.press(300, 0)
	g.drag(350, 400)
	if locker.held() {
		t.Error("scroll lock still held mid-drag")
	}
	g.release(350, 500)
	if !locker.held() {
		t.Error("scroll lock not re-engaged after snap back")
	}

	g.root.HandleAnimationStart(AnimShow)
	if locker.held() {
		t.Error("scroll lock held while settle animation runs")
	}
}

func TestNonModalSheetNeverLocksScroll(t *testing.T) {
	locker := &fakeLocker{}
	newRig(t, func(cfg *Config) {
		cfg.ScrollLocker = locker
		cfg.Options.Modal = false
	})
	if locker.locks != 0 {
		t.Errorf("non-modal sheet locked scroll %d times", locker.locks)
	}
}

func TestScrollLockReleasedOnClose(t *testing.T) {
	locker := &fakeLocker{}
	g := newRig(t, func(cfg *Config) { cfg.ScrollLocker = locker })
	g.root.SetOpen(false)
	if locker.held() {
		t.Error("scroll lock still held after close")
	}
}

func TestAllowOutsideDismiss(t *testing.T) {
	g := newRig(t, nil)
	if !g.root.AllowOutsideDismiss() {
		t.Error("modal dismissible sheet should allow outside dismissal")
	}

	nd := newRig(t, func(cfg *Config) { cfg.Options.Dismissible = false })
	if nd.root.AllowOutsideDismiss() {
		t.Error("non-dismissible sheet allowed outside dismissal")
	}

	nm := newRig(t, func(cfg *Config) { cfg.Options.Modal = false })
	if nm.root.AllowOutsideDismiss() {
		t.Error("non-modal sheet allowed outside dismissal")
	}
}

func TestKeyboardCloseSwallowsNextOutsidePress(t *testing.T) {
	g := newRig(t, nil)
	g.root.CloseFromKeyboard()
	if g.root.Open() {
		t.Fatal("CloseFromKeyboard did not close the sheet")
	}
	if g.root.AllowOutsideDismiss() {
		t.Error("first outside-press gate after keyboard close not swallowed")
	}
	if !g.root.AllowOutsideDismiss() {
		t.Error("gate stayed closed after being consumed once")
	}
}

func TestCloseFromKeyboardRespectsDismissible(t *testing.T) {
	g := newRig(t, func(cfg *Config) { cfg.Options.Dismissible = false })
	g.root.CloseFromKeyboard()
	if !g.root.Open() {
		t.Error("non-dismissible sheet closed from keyboard")
	}
}

func TestAllowAutoFocus(t *testing.T) {
	g := newRig(t, nil)
	if !g.root.AllowAutoFocus() {
		t.Error("rendered drawer should allow auto focus")
	}
	g.drawer.SetBounds(surface.Rect{})
	if g.root.AllowAutoFocus() {
		t.Error("zero-height drawer should not allow auto focus")
	}
}

func TestSetOptionsRejectsInvalid(t *testing.T) {
	g := newRig(t, nil)
	bad := DefaultOptions()
	bad.CloseThreshold = 2
	if err := g.root.SetOptions(bad); err == nil {
		t.Fatal("SetOptions accepted close threshold 2")
	}
	if g.root.opts.CloseThreshold != 0.25 {
		t.Errorf("rejected options replaced the current ones: threshold %v",
			g.root.opts.CloseThreshold)
	}
}

func TestOpenChangeFiresOncePerTransition(t *testing.T) {
	g := newRig(t, nil)
	g.root.SetOpen(false)
	g.root.SetOpen(false)
	g.root.SetOpen(true)
	g.rec.mu.Lock()
	defer g.rec.mu.Unlock()
	if len(g.rec.opens) != 2 || g.rec.opens[0] != false || g.rec.opens[1] != true {
		t.Errorf("open-change sequence %v, want [false true]", g.rec.opens)
	}
}

func TestTeardownBlocksFurtherUse(t *testing.T) {
	g := newRig(t, nil)
	g.root.Teardown()
	g.root.Teardown()

	g.root.SetOpen(false)
	if !g.root.Open() {
		t.Error("SetOpen acted on a torn-down root")
	}
	g.press(300, 0)
	if g.root.gesture.active {
		t.Error("Press acted on a torn-down root")
	}
}
