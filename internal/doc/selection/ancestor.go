package selection

import "github.com/dshills/richdoc/internal/doc/model"

// slotChain returns s and every slot above it, nearest first.
func slotChain(s *model.Slot) []*model.Slot {
	var out []*model.Slot
	for cur := s; cur != nil; cur = cur.ParentSlot() {
		out = append(out, cur)
	}
	return out
}

// componentChain returns every component above s, nearest first.
func componentChain(s *model.Slot) []*model.Component {
	var out []*model.Component
	for c := s.Parent(); c != nil; c = c.ParentComponent() {
		out = append(out, c)
	}
	return out
}

// CommonAncestorSlot returns the deepest slot containing both a and b, or
// nil. A slot contains itself.
func CommonAncestorSlot(a, b *model.Slot) *model.Slot {
	return deepestCommon(slotChain(a), slotChain(b))
}

// CommonAncestorComponent returns the deepest component containing both
// a and b, or nil.
func CommonAncestorComponent(a, b *model.Slot) *model.Component {
	return deepestCommon(componentChain(a), componentChain(b))
}

// deepestCommon compares the chains from the root down and returns the
// last shared entry.
func deepestCommon[T comparable](a, b []T) T {
	var zero, last T
	i, j := len(a)-1, len(b)-1
	for i >= 0 && j >= 0 && a[i] == b[j] {
		last = a[i]
		i--
		j--
	}
	if i == len(a)-1 {
		return zero
	}
	return last
}
