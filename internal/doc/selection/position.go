package selection

import (
	"slices"

	"github.com/dshills/richdoc/internal/doc/model"
)

// Position is an offset inside a slot.
type Position struct {
	Slot   *model.Slot
	Offset int
}

// Path returns the slot path followed by the offset.
func (p Position) Path() []int {
	return append(model.SlotPath(p.Slot), p.Offset)
}

// IsZero reports whether the position has no slot.
func (p Position) IsZero() bool { return p.Slot == nil }

// ComparePaths orders two position paths. It returns -1, 0 or 1.
func ComparePaths(a, b []int) int {
	return slices.Compare(a, b)
}

// Compare orders two positions in document order.
func Compare(a, b Position) int {
	if a.Slot == b.Slot {
		switch {
		case a.Offset < b.Offset:
			return -1
		case a.Offset > b.Offset:
			return 1
		}
		return 0
	}
	return ComparePaths(a.Path(), b.Path())
}

// ResolvePath finds the position a path addresses under root.
func ResolvePath(root *model.Component, path []int) (Position, error) {
	if len(path) < 2 {
		return Position{}, &model.PathError{Path: slices.Clone(path)}
	}
	s, err := model.FindSlot(root, path[:len(path)-1])
	if err != nil {
		return Position{}, err
	}
	off := path[len(path)-1]
	if off < 0 || off > s.Len() {
		return Position{}, &model.PathError{Path: slices.Clone(path), Depth: len(path) - 1}
	}
	return Position{Slot: s, Offset: s.CorrectIndex(off, false)}, nil
}

// FindSlotByPath returns the slot a slot path addresses under root.
func FindSlotByPath(root *model.Component, path []int) (*model.Slot, error) {
	return model.FindSlot(root, path)
}

// normalize clamps the offset and snaps it to a cluster boundary. Offsets
// in an empty slot collapse to 0.
func normalize(p Position) Position {
	if p.Slot.IsEmpty() {
		p.Offset = 0
		return p
	}
	p.Offset = p.Slot.CorrectIndex(p.Offset, false)
	return p
}

// end returns the last offset of s.
func end(s *model.Slot) int {
	if s.IsEmpty() {
		return 0
	}
	return s.Len()
}
