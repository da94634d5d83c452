package selection

import (
	"github.com/dshills/richdoc/internal/doc/content"
	"github.com/dshills/richdoc/internal/doc/model"
)

// Scope is a range [Start, End) of one slot.
type Scope struct {
	Slot  *model.Slot
	Start int
	End   int
}

// IsEmpty reports whether the scope covers nothing.
func (s Scope) IsEmpty() bool { return s.Start >= s.End }

func fullScope(s *model.Slot) Scope {
	return Scope{Slot: s, Start: 0, End: s.Len()}
}

// Scopes decomposes the range from start to end into per-slot scopes in
// document order. start must not follow end. With discardEmpty set, empty
// scopes are dropped.
func Scopes(start, end Position, discardEmpty bool) []Scope {
	var out []Scope
	if start.Slot == end.Slot {
		out = append(out, Scope{Slot: start.Slot, Start: start.Offset, End: end.Offset})
		return filter(out, discardEmpty)
	}

	lcaSlot := CommonAncestorSlot(start.Slot, end.Slot)
	lcaComp := CommonAncestorComponent(start.Slot, end.Slot)
	if lcaComp == nil {
		return nil
	}
	slotIsLCA := lcaSlot != nil && lcaSlot.Parent() == lcaComp

	head, startBranch, startIdx := walkStart(start, lcaSlot, lcaComp, slotIsLCA)
	tail, endBranch, endIdx := walkEnd(end, lcaSlot, lcaComp, slotIsLCA)

	out = append(out, head...)
	if slotIsLCA {
		if startIdx < endIdx || start.Slot == lcaSlot || end.Slot == lcaSlot {
			out = append(out, Scope{Slot: lcaSlot, Start: startIdx, End: endIdx})
		}
	} else {
		slots := lcaComp.Slots()
		for i := slots.IndexOf(startBranch) + 1; i < slots.IndexOf(endBranch); i++ {
			out = append(out, fullScope(slots.Get(i)))
		}
	}
	out = append(out, tail...)
	return filter(out, discardEmpty)
}

// walkStart climbs from the start position. It returns the scopes it
// covered, the branch slot directly under lcaComp and the start offset in
// the ancestor slot.
func walkStart(p Position, lcaSlot *model.Slot, lcaComp *model.Component, slotIsLCA bool) ([]Scope, *model.Slot, int) {
	if slotIsLCA && p.Slot == lcaSlot {
		return nil, nil, p.Offset
	}
	out := []Scope{{Slot: p.Slot, Start: p.Offset, End: p.Slot.Len()}}
	cur := p.Slot
	for {
		comp := cur.Parent()
		if !slotIsLCA && comp == lcaComp {
			return out, cur, 0
		}
		slots := comp.Slots()
		for i := slots.IndexOf(cur) + 1; i < slots.Len(); i++ {
			out = append(out, fullScope(slots.Get(i)))
		}
		parent := comp.Parent()
		idx := parent.IndexOf(comp)
		if slotIsLCA && parent == lcaSlot {
			return out, nil, idx + 1
		}
		out = append(out, Scope{Slot: parent, Start: idx + 1, End: parent.Len()})
		cur = parent
	}
}

// walkEnd mirrors walkStart for the end position. The scopes are returned
// in document order.
func walkEnd(p Position, lcaSlot *model.Slot, lcaComp *model.Component, slotIsLCA bool) ([]Scope, *model.Slot, int) {
	if slotIsLCA && p.Slot == lcaSlot {
		return nil, nil, p.Offset
	}
	out := []Scope{{Slot: p.Slot, Start: 0, End: p.Offset}}
	cur := p.Slot
	for {
		comp := cur.Parent()
		if !slotIsLCA && comp == lcaComp {
			return out, cur, 0
		}
		slots := comp.Slots()
		var before []Scope
		for i := 0; i < slots.IndexOf(cur); i++ {
			before = append(before, fullScope(slots.Get(i)))
		}
		out = append(before, out...)
		parent := comp.Parent()
		idx := parent.IndexOf(comp)
		if slotIsLCA && parent == lcaSlot {
			return out, nil, idx
		}
		out = append([]Scope{{Slot: parent, Start: 0, End: idx}}, out...)
		cur = parent
	}
}

func filter(scopes []Scope, discardEmpty bool) []Scope {
	if !discardEmpty {
		return scopes
	}
	out := scopes[:0]
	for _, s := range scopes {
		if !s.IsEmpty() {
			out = append(out, s)
		}
	}
	return out
}

// DecomposeSlotRange splits [start, end) of s at block components that own
// slots and recurses into those slots in full.
func DecomposeSlotRange(s *model.Slot, start, end int) []Scope {
	var out []Scope
	segStart := start
	pos := 0
	for _, it := range s.Items() {
		if it.IsEmbed() && pos >= start && pos < end {
			c := it.Embedded()
			if c.Type() == content.TypeBlock && c.Slots().Len() > 0 {
				if segStart < pos {
					out = append(out, Scope{Slot: s, Start: segStart, End: pos})
				}
				for _, child := range c.Slots().ToArray() {
					out = append(out, DecomposeSlotRange(child, 0, child.Len())...)
				}
				segStart = pos + 1
			}
		}
		pos += it.Len()
	}
	if segStart < end || len(out) == 0 {
		out = append(out, Scope{Slot: s, Start: segStart, End: max(segStart, end)})
	}
	return out
}
