package sheet

import (
	"testing"
)

func touchRig(t *testing.T) *rig {
	g := newRig(t, func(cfg *Config) { cfg.Options.DefaultOpen = false })
	g.host.touch = true
	return g
}

func TestPinFreezesPageAtScrollOffset(t *testing.T) {
	g := touchRig(t)
	g.host.scrollX, g.host.scrollY = 5, 250

	g.root.SetOpen(true)

	if v, _ := g.page.Style("position"); v != "fixed !important" {
		t.Errorf("page position = %q, want fixed !important", v)
	}
	if v, _ := g.page.Style("top"); v != "-250px" {
		t.Errorf("page top = %q, want -250px", v)
	}
	if v, _ := g.page.Style("left"); v != "-5px" {
		t.Errorf("page left = %q, want -5px", v)
	}
	if v, _ := g.page.Style("height"); v != "auto" {
		t.Errorf("page height = %q, want auto", v)
	}
}

func TestOpenCloseRoundTripRestoresScroll(t *testing.T) {
	g := touchRig(t)
	g.host.scrollX, g.host.scrollY = 5, 250

	g.root.SetOpen(true)
	// Fixed positioning zeroes the live scroll position, as it would on a
	// real page.
	g.host.scrollX, g.host.scrollY = 0, 0
	g.root.SetOpen(false)

	if g.host.scrollX != 5 || g.host.scrollY != 250 {
		t.Errorf("scroll restored to (%v, %v), want (5, 250)",
			g.host.scrollX, g.host.scrollY)
	}
	if v, ok := g.page.Style("position"); ok {
		t.Errorf("page position override %q not removed", v)
	}
	if _, ok := g.page.Style("top"); ok {
		t.Error("page top override not removed")
	}
}

func TestPinPreservesExistingPageStyles(t *testing.T) {
	g := touchRig(t)
	g.page.SetStyle("position", "relative")
	g.page.SetStyle("height", "100%")

	g.root.SetOpen(true)
	g.root.SetOpen(false)

	if v, _ := g.page.Style("position"); v != "relative" {
		t.Errorf("page position = %q, want restored relative", v)
	}
	if v, _ := g.page.Style("height"); v != "100%" {
		t.Errorf("page height = %q, want restored 100%%", v)
	}
}

func TestNoPinOnNonTouchPlatforms(t *testing.T) {
	g := newRig(t, func(cfg *Config) { cfg.Options.DefaultOpen = false })
	g.root.SetOpen(true)

	if _, ok := g.page.Style("position"); ok {
		t.Error("non-touch platforms must not pin the page")
	}
}

func TestDoubleOpenPinsOnce(t *testing.T) {
	g := touchRig(t)
	g.host.scrollY = 100
	g.root.SetOpen(true)
	g.host.scrollY = 0
	// A second pin attempt while already pinned must not re-snapshot the
	// now-pinned styles.
	g.root.fixer.pin()
	g.root.SetOpen(false)

	if g.host.scrollY != 100 {
		t.Errorf("scroll restored to %v, want 100", g.host.scrollY)
	}
}
