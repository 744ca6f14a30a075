package surface

import "strings"

// VolatilePrefix marks animation-input properties (custom-property style).
// Volatile keys are always written directly and never snapshotted, so a
// Reset never disturbs them.
const VolatilePrefix = "--"

// Mutator applies style overrides to nodes and can reversibly restore the
// values that were present before the first override. Each sheet instance
// owns its own Mutator so snapshots stay isolated across concurrently
// mounted sheets.
type Mutator struct {
	snapshots map[Node]Props
}

// NewMutator returns an empty Mutator.
func NewMutator() *Mutator {
	return &Mutator{snapshots: make(map[Node]Props)}
}

// Set applies props to n, capturing the node's pre-existing values into the
// snapshot the first time the node is written. Repeated Sets never update an
// existing snapshot: first write wins until Reset discards it.
func (m *Mutator) Set(n Node, props Props) {
	m.set(n, props, false)
}

// SetUncached applies props without touching the snapshot. Used for
// high-frequency drag feedback where the restore point was already captured.
func (m *Mutator) SetUncached(n Node, props Props) {
	m.set(n, props, true)
}

func (m *Mutator) set(n Node, props Props, ignoreCache bool) {
	if n == nil {
		return
	}
	for key, value := range props {
		if strings.HasPrefix(key, VolatilePrefix) {
			n.SetStyle(key, value)
			continue
		}
		if !ignoreCache {
			snap, ok := m.snapshots[n]
			if !ok {
				snap = make(Props)
				m.snapshots[n] = snap
			}
			if _, seen := snap[key]; !seen {
				prev, _ := n.Style(key)
				snap[key] = prev
			}
		}
		n.SetStyle(key, value)
	}
}

// Reset restores n from its snapshot. With keys, only the named properties
// are restored and the snapshot is retained; without keys, every snapshotted
// property is restored and the snapshot is discarded. If no snapshot exists
// the node's overrides are cleared outright.
func (m *Mutator) Reset(n Node, keys ...string) {
	if n == nil {
		return
	}
	snap, ok := m.snapshots[n]
	if !ok {
		n.ClearStyles()
		return
	}
	if len(keys) > 0 {
		for _, key := range keys {
			if prev, seen := snap[key]; seen {
				m.restore(n, key, prev)
			}
		}
		return
	}
	for key, prev := range snap {
		m.restore(n, key, prev)
	}
	delete(m.snapshots, n)
}

func (m *Mutator) restore(n Node, key, prev string) {
	if prev == "" {
		n.RemoveStyle(key)
		return
	}
	n.SetStyle(key, prev)
}
