package sheet

import (
	"strconv"
	"time"
)

// Presentation-layer coupling. Hosts report animation starts using these
// identities, and the exit keyframes consume the hand-off properties below.
// Both sides must agree on the names exactly.
const (
	AnimShow = "show"
	AnimHide = "hide"

	// PropHideFrom and PropHideTo are the exit animation's translate
	// endpoints; PropOpacityFrom is the overlay's starting opacity.
	// Volatile animation inputs, never snapshotted.
	PropHideFrom    = "--hide-from"
	PropHideTo      = "--hide-to"
	PropOpacityFrom = "--opacity-from"
)

// Transition timing shared by every animated settle.
const (
	transitionDuration = 500 * time.Millisecond
	transitionEasing   = "cubic-bezier(0.32, 0.72, 0, 1)"
)

// Empirical gesture and visual constants. Tunable defaults; their exact
// values are not load-bearing for correctness.
const (
	// velocityThreshold is the release speed, in px/ms, above which a
	// downward swipe commits the close regardless of distance.
	velocityThreshold = 0.4

	// rubberBandCap limits the upward overdrag translate, in px.
	rubberBandCap = 40.0

	// borderRadius is the scaled background's corner radius at rest, in px.
	borderRadius = 8.0

	// backgroundInset shrinks the scaled background; the resting scale is
	// (viewportWidth - backgroundInset) / viewportWidth.
	backgroundInset = 26.0

	// backgroundOffset is the scaled background's resting vertical
	// displacement, in px.
	backgroundOffset = 14.0

	// nestedInset displaces a parent sheet while a nested sheet is open.
	nestedInset = 16.0

	// visibilityTolerance pads the fully-visible test for focused inputs;
	// platform chrome can lag a frame behind viewport resizes.
	visibilityTolerance = 40.0

	// animationEndGrace runs just past transitionDuration so the
	// animating flag clears only after the settle finishes.
	animationEndGrace = 501 * time.Millisecond

	// backgroundCleanupDelay is how long after close the background's
	// overrides are fully reset.
	backgroundCleanupDelay = 200 * time.Millisecond

	// nestedRepinDelay is how long after a nested close the parent's
	// transform is re-pinned to its own offset without transition.
	nestedRepinDelay = 500 * time.Millisecond

	// toolbarSettleDelay is how long the position fixer waits before
	// checking for a dynamic-toolbar height shift.
	toolbarSettleDelay = 300 * time.Millisecond
)

// transition renders a transition shorthand for the named properties with
// the engine's shared timing.
func transition(props string) string {
	return props + " " + durationSeconds(transitionDuration) + " " + transitionEasing
}

func durationSeconds(d time.Duration) string {
	return strconv.FormatFloat(d.Seconds(), 'f', -1, 64) + "s"
}
