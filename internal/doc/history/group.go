package history

import "time"

// BeginGroup starts collecting batches into one entry. Nested calls are
// ignored.
func (h *History) BeginGroup(name string) {
	if h.grouping {
		return
	}
	h.doc.Flush()
	h.grouping = true
	h.group = &Entry{Name: name}
}

// EndGroup records the collected batches as one entry.
func (h *History) EndGroup() {
	if !h.grouping {
		return
	}
	h.doc.Flush()
	h.grouping = false
	g := h.group
	h.group = nil
	if len(g.Operations) == 0 {
		return
	}
	g.Timestamp = time.Now()
	h.push(g)
}

// CancelGroup stops grouping without recording. Edits already made stay.
func (h *History) CancelGroup() {
	h.grouping = false
	h.group = nil
}

// IsGrouping reports whether a group is open.
func (h *History) IsGrouping() bool { return h.grouping }

// GroupScope pairs BeginGroup with an End for use with defer:
//
//	defer h.GroupScope("indent").End()
type GroupScope struct {
	history *History
	active  bool
}

// GroupScope starts a group.
func (h *History) GroupScope(name string) *GroupScope {
	h.BeginGroup(name)
	return &GroupScope{history: h, active: true}
}

// End closes the group. Only the first call has an effect.
func (g *GroupScope) End() {
	if g.active {
		g.history.EndGroup()
		g.active = false
	}
}

// Cancel drops the group. Only the first call has an effect.
func (g *GroupScope) Cancel() {
	if g.active {
		g.history.CancelGroup()
		g.active = false
	}
}

// Checkpoint is a point in history that can be returned to.
type Checkpoint struct {
	undoDepth int
}

// CreateCheckpoint remembers the current undo depth.
func (h *History) CreateCheckpoint() Checkpoint {
	return Checkpoint{undoDepth: len(h.undoStack)}
}

// UndoToCheckpoint undoes every entry recorded since cp.
func (h *History) UndoToCheckpoint(cp Checkpoint) error {
	for h.UndoCount() > cp.undoDepth {
		if err := h.Undo(); err != nil {
			return err
		}
	}
	return nil
}

// RedoToCheckpoint redoes entries until the undo depth reaches cp again.
func (h *History) RedoToCheckpoint(cp Checkpoint) error {
	for h.UndoCount() < cp.undoDepth && h.CanRedo() {
		if err := h.Redo(); err != nil {
			return err
		}
	}
	return nil
}
