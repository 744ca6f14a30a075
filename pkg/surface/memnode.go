package surface

import "sync"

// MemNode is an in-memory Node. Hosts that keep their own scene description
// (the terminal host, tests) use MemNode trees and translate the resulting
// style properties into whatever their render surface understands.
type MemNode struct {
	name   string
	parent *MemNode

	mu     sync.Mutex
	styles Props

	rect         Rect
	scrollTop    float64
	scrollHeight float64
	clientHeight float64
	interactive  bool
}

// NewMemNode creates a named node. The name is only for debugging.
func NewMemNode(name string) *MemNode {
	return &MemNode{name: name, styles: make(Props)}
}

// Name returns the node's debug name.
func (n *MemNode) Name() string { return n.name }

// AppendChild parents child under n and returns it.
func (n *MemNode) AppendChild(child *MemNode) *MemNode {
	child.parent = n
	return child
}

// SetBounds sets the node's bounding box.
func (n *MemNode) SetBounds(r Rect) { n.rect = r }

// SetScroll sets the node's scroll metrics. The node is scrollable when
// scrollHeight exceeds clientHeight.
func (n *MemNode) SetScroll(top, scrollHeight, clientHeight float64) {
	n.scrollTop = top
	n.scrollHeight = scrollHeight
	n.clientHeight = clientHeight
}

// SetInteractive marks the node as an interactive control.
func (n *MemNode) SetInteractive(v bool) { n.interactive = v }

// Style implements Node.
func (n *MemNode) Style(key string) (string, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	v, ok := n.styles[key]
	return v, ok
}

// SetStyle implements Node.
func (n *MemNode) SetStyle(key, value string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.styles[key] = value
}

// RemoveStyle implements Node.
func (n *MemNode) RemoveStyle(key string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	delete(n.styles, key)
}

// ClearStyles implements Node.
func (n *MemNode) ClearStyles() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.styles = make(Props)
}

// Styles returns a copy of the node's current overrides.
func (n *MemNode) Styles() Props {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make(Props, len(n.styles))
	for k, v := range n.styles {
		out[k] = v
	}
	return out
}

// Parent implements Node.
func (n *MemNode) Parent() Node {
	if n.parent == nil {
		return nil
	}
	return n.parent
}

// Bounds implements Node.
func (n *MemNode) Bounds() Rect { return n.rect }

// ScrollTop implements Node.
func (n *MemNode) ScrollTop() float64 { return n.scrollTop }

// ScrollableY implements Node.
func (n *MemNode) ScrollableY() bool { return n.scrollHeight > n.clientHeight }

// Interactive implements Node.
func (n *MemNode) Interactive() bool { return n.interactive }
