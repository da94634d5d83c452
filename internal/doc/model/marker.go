package model

import "github.com/dshills/richdoc/internal/doc/action"

// node is implemented by Slot and Component.
type node interface {
	parentNode() node
	indexInParent() int
	changeMarker() *ChangeMarker
}

// ChangeMarker tracks whether a node needs rendering and forwards the
// operations it emits to its ancestors.
//
// Dirty means the node's own shape changed. Changed means the node or a
// descendant changed. The output flags are independent twins used by a
// second rendering target.
type ChangeMarker struct {
	node node

	dirty         bool
	changed       bool
	outputDirty   bool
	outputChanged bool

	changeListeners []func(action.Operation)
	removeListeners []func(*Component)

	// removed queues removal notices on the top-most marker.
	removed []*Component
}

func newChangeMarker(n node) *ChangeMarker {
	return &ChangeMarker{node: n, dirty: true, changed: true, outputDirty: true, outputChanged: true}
}

// Dirty reports whether the node itself changed since the last render.
func (m *ChangeMarker) Dirty() bool { return m.dirty }

// Changed reports whether the node or a descendant changed.
func (m *ChangeMarker) Changed() bool { return m.changed }

// OutputDirty is the output-mode twin of Dirty.
func (m *ChangeMarker) OutputDirty() bool { return m.outputDirty }

// OutputChanged is the output-mode twin of Changed.
func (m *ChangeMarker) OutputChanged() bool { return m.outputChanged }

// OnChange registers fn to receive every operation emitted at or below the
// node, with paths relative to the node.
func (m *ChangeMarker) OnChange(fn func(action.Operation)) {
	m.changeListeners = append(m.changeListeners, fn)
}

// OnComponentRemoved registers fn to receive components detached from the
// tree under the node. Notices are queued on the top-most node and only
// its listeners receive them, from FlushRemoved.
func (m *ChangeMarker) OnComponentRemoved(fn func(*Component)) {
	m.removeListeners = append(m.removeListeners, fn)
}

// MarkAsDirtied records a change of the node itself and emits op.
func (m *ChangeMarker) MarkAsDirtied(op action.Operation) {
	m.dirty = true
	m.outputDirty = true
	m.MarkAsChanged(op)
}

// MarkAsChanged records a change below the node and emits op.
func (m *ChangeMarker) MarkAsChanged(op action.Operation) {
	m.changed = true
	m.outputChanged = true
	for _, fn := range m.changeListeners {
		fn(op)
	}
	parent := m.node.parentNode()
	if parent == nil {
		return
	}
	parent.changeMarker().MarkAsChanged(op.Prefixed(m.node.indexInParent()))
}

// Rendered clears Dirty and Changed after a consumed render cycle.
func (m *ChangeMarker) Rendered() {
	m.dirty = false
	m.changed = false
}

// OutputRendered clears the output flags.
func (m *ChangeMarker) OutputRendered() {
	m.outputDirty = false
	m.outputChanged = false
}

// Reset forces Dirty and Changed on, e.g. for a full re-render.
func (m *ChangeMarker) Reset() {
	m.dirty = true
	m.changed = true
}

// componentRemoved queues a removal notice on the top-most marker.
func (m *ChangeMarker) componentRemoved(c *Component) {
	top := m.node
	for p := top.parentNode(); p != nil; p = p.parentNode() {
		top = p
	}
	tm := top.changeMarker()
	tm.removed = append(tm.removed, c)
}

// FlushRemoved delivers the queued removal notices once. Components that
// are back under the node, such as moved ones, and repeated notices are
// dropped.
func (m *ChangeMarker) FlushRemoved() {
	queued := m.removed
	m.removed = nil
	seen := make(map[*Component]bool, len(queued))
	for _, c := range queued {
		if seen[c] || m.contains(c) {
			continue
		}
		seen[c] = true
		for _, fn := range m.removeListeners {
			fn(c)
		}
	}
}

// contains reports whether c is attached below the marker's node.
func (m *ChangeMarker) contains(c *Component) bool {
	for cur := c.parentNode(); cur != nil; cur = cur.parentNode() {
		if cur == m.node {
			return true
		}
	}
	return false
}
