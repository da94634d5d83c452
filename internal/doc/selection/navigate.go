package selection

import "github.com/dshills/richdoc/internal/doc/model"

// FirstPosition returns the first caret position inside c, descending
// through leading components that own slots.
func FirstPosition(c *model.Component) (Position, bool) {
	s := c.Slots().First()
	if s == nil {
		return Position{}, false
	}
	return descendFirst(s), true
}

// LastPosition returns the last caret position inside c.
func LastPosition(c *model.Component) (Position, bool) {
	s := c.Slots().Last()
	if s == nil {
		return Position{}, false
	}
	return descendLast(s), true
}

func descendFirst(s *model.Slot) Position {
	for {
		if s.IsEmpty() {
			return Position{Slot: s}
		}
		it, _ := s.ItemAt(0)
		if !it.IsEmbed() || it.Embedded().Slots().Len() == 0 {
			return Position{Slot: s}
		}
		s = it.Embedded().Slots().First()
	}
}

func descendLast(s *model.Slot) Position {
	for {
		n := end(s)
		if n == 0 {
			return Position{Slot: s}
		}
		it, _ := s.ItemAt(n - 1)
		if !it.IsEmbed() || it.Embedded().Slots().Len() == 0 {
			return Position{Slot: s, Offset: n}
		}
		s = it.Embedded().Slots().Last()
	}
}

// NextPosition returns the caret position after p. At the very end of the
// document it returns p unchanged.
func NextPosition(p Position) Position {
	s := p.Slot
	if p.Offset < end(s) {
		it, _ := s.ItemAt(p.Offset)
		if it.IsEmbed() {
			if first := it.Embedded().Slots().First(); first != nil {
				return Position{Slot: first}
			}
			return Position{Slot: s, Offset: p.Offset + 1}
		}
		return Position{Slot: s, Offset: s.CorrectIndex(p.Offset+1, true)}
	}
	comp := s.Parent()
	if comp == nil {
		return p
	}
	slots := comp.Slots()
	if i := slots.IndexOf(s); i+1 < slots.Len() {
		return Position{Slot: slots.Get(i + 1)}
	}
	parent := comp.Parent()
	if parent == nil {
		return p
	}
	return Position{Slot: parent, Offset: parent.IndexOf(comp) + 1}
}

// PreviousPosition returns the caret position before p. At the very start
// of the document it returns p unchanged.
func PreviousPosition(p Position) Position {
	s := p.Slot
	if p.Offset > 0 && !s.IsEmpty() {
		it, _ := s.ItemAt(p.Offset - 1)
		if it.IsEmbed() {
			if last := it.Embedded().Slots().Last(); last != nil {
				return Position{Slot: last, Offset: end(last)}
			}
			return Position{Slot: s, Offset: p.Offset - 1}
		}
		return Position{Slot: s, Offset: s.CorrectIndex(p.Offset-1, false)}
	}
	comp := s.Parent()
	if comp == nil {
		return p
	}
	slots := comp.Slots()
	if i := slots.IndexOf(s); i > 0 {
		prev := slots.Get(i - 1)
		return Position{Slot: prev, Offset: end(prev)}
	}
	parent := comp.Parent()
	if parent == nil {
		return p
	}
	return Position{Slot: parent, Offset: parent.IndexOf(comp)}
}
