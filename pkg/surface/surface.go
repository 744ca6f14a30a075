// Package surface abstracts the render tree a sheet engine manipulates:
// nodes with string-keyed style properties, geometry, and scroll metrics.
// The engine never touches a real render surface directly, so hosts can be
// terminals, GUI toolkits, or the in-memory tree used by tests.
package surface

// Props is a set of style property overrides.
type Props map[string]string

// Rect is an axis-aligned box in page coordinates, in pixels.
type Rect struct {
	X, Y, W, H float64
}

// Node is a single render-tree node. Style reads and writes on a detached or
// nil node must silently no-op; scheduled callbacks may legitimately fire
// after teardown.
type Node interface {
	// Style returns the current value of a property, if set.
	Style(key string) (string, bool)
	// SetStyle sets a property override.
	SetStyle(key, value string)
	// RemoveStyle clears a single property override.
	RemoveStyle(key string)
	// ClearStyles clears every property override.
	ClearStyles()

	// Parent returns the parent node, or nil at the root.
	Parent() Node
	// Bounds returns the node's bounding box.
	Bounds() Rect
	// ScrollTop returns the node's vertical scroll offset.
	ScrollTop() float64
	// ScrollableY reports whether the node's content overflows vertically.
	ScrollableY() bool
	// Interactive reports whether the node is an interactive control
	// (button, input, or similar) that should win over sheet gestures.
	Interactive() bool
}

// Contains reports whether node lies inside root's subtree (inclusive).
func Contains(root, node Node) bool {
	if root == nil {
		return false
	}
	for n := node; n != nil; n = n.Parent() {
		if n == root {
			return true
		}
	}
	return false
}
