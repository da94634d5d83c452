package model

import (
	"slices"

	"github.com/dshills/richdoc/internal/doc/action"
)

// Slots is the ordered slot list of a component, with its own cursor.
type Slots struct {
	host  *Component
	list  []*Slot
	index int
}

func newSlots(host *Component) *Slots {
	return &Slots{host: host}
}

// Len returns the number of slots.
func (ss *Slots) Len() int { return len(ss.list) }

// Index returns the cursor.
func (ss *Slots) Index() int { return ss.index }

// Get returns the slot at i, or nil.
func (ss *Slots) Get(i int) *Slot {
	if i < 0 || i >= len(ss.list) {
		return nil
	}
	return ss.list[i]
}

// IndexOf returns the position of s, or -1.
func (ss *Slots) IndexOf(s *Slot) int { return slices.Index(ss.list, s) }

// ToArray returns a copy of the slot list.
func (ss *Slots) ToArray() []*Slot { return slices.Clone(ss.list) }

// First returns the first slot, or nil.
func (ss *Slots) First() *Slot { return ss.Get(0) }

// Last returns the last slot, or nil.
func (ss *Slots) Last() *Slot { return ss.Get(len(ss.list) - 1) }

// Retain moves the cursor, clamped to [0, Len].
func (ss *Slots) Retain(index int) {
	ss.index = max(0, min(index, len(ss.list)))
}

func (ss *Slots) attach(at int, s *Slot) {
	s.parent = ss.host
	ss.list = slices.Insert(ss.list, at, s)
}

// Insert places slots at the cursor and advances it. Slots that already
// belong to a component are detached first.
func (ss *Slots) Insert(slots ...*Slot) bool {
	if len(slots) == 0 {
		return true
	}
	if ss.host.IsReadOnly() {
		return false
	}
	for _, s := range slots {
		if s == nil || s.ownsComponent(ss.host) {
			return false
		}
	}
	for _, s := range slots {
		if old := s.parent; old != nil {
			i := old.slots.IndexOf(s)
			cursor := ss.index
			if old == ss.host && i < cursor {
				cursor--
			}
			old.slots.Retain(i + 1)
			old.slots.Delete(1)
			ss.index = cursor
		}
	}
	start := ss.cursor()
	apply := []action.Action{action.NewRetain(start, nil)}
	for i, s := range slots {
		ss.attach(start+i, s)
		apply = append(apply, action.NewInsertSlot(s.ToJSON()))
	}
	ss.index = start + len(slots)
	ss.host.marker.MarkAsDirtied(action.Operation{
		Apply:   apply,
		UnApply: []action.Action{action.NewRetain(ss.index, nil), action.NewDelete(len(slots))},
	})
	return true
}

func (ss *Slots) cursor() int {
	ss.Retain(ss.index)
	return ss.index
}

// Delete removes count slots before the cursor.
func (ss *Slots) Delete(count int) bool {
	if ss.host.IsReadOnly() {
		return false
	}
	end := ss.cursor()
	start := max(0, end-count)
	if start >= end {
		return true
	}
	removed := slices.Clone(ss.list[start:end])
	ss.list = slices.Delete(ss.list, start, end)
	ss.index = start

	unApply := []action.Action{action.NewRetain(start, nil)}
	var gone []*Component
	for _, s := range removed {
		s.parent = nil
		unApply = append(unApply, action.NewInsertSlot(s.ToJSON()))
		for _, c := range s.Components() {
			gone = append(gone, c)
			gone = append(gone, c.descendants()...)
		}
	}
	ss.host.marker.MarkAsDirtied(action.Operation{
		Apply:   []action.Action{action.NewRetain(end, nil), action.NewDelete(end - start)},
		UnApply: unApply,
	})
	for _, c := range gone {
		ss.host.marker.componentRemoved(c)
	}
	return true
}

// Push appends slots.
func (ss *Slots) Push(slots ...*Slot) bool {
	ss.Retain(len(ss.list))
	return ss.Insert(slots...)
}

// InsertAfter places s right after ref.
func (ss *Slots) InsertAfter(s, ref *Slot) bool {
	i := ss.IndexOf(ref)
	if i < 0 {
		return false
	}
	ss.Retain(i + 1)
	return ss.Insert(s)
}

// InsertBefore places s right before ref.
func (ss *Slots) InsertBefore(s, ref *Slot) bool {
	i := ss.IndexOf(ref)
	if i < 0 {
		return false
	}
	ss.Retain(i)
	return ss.Insert(s)
}

// Remove deletes s from the list.
func (ss *Slots) Remove(s *Slot) bool {
	i := ss.IndexOf(s)
	if i < 0 {
		return false
	}
	ss.Retain(i + 1)
	return ss.Delete(1)
}

// ownsComponent reports whether c sits inside s.
func (s *Slot) ownsComponent(c *Component) bool {
	for cur := c; cur != nil; cur = cur.ParentComponent() {
		if cur.parent == s {
			return true
		}
	}
	return false
}
