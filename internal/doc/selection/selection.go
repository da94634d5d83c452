package selection

import (
	"fmt"

	"github.com/dshills/richdoc/internal/doc/model"
)

// Paths is the serializable form of a selection.
type Paths struct {
	Anchor []int `json:"anchor"`
	Focus  []int `json:"focus"`
}

// Selection tracks an anchor and a focus inside one document tree.
type Selection struct {
	root     *model.Component
	anchor   Position
	focus    Position
	selected bool

	listeners []func(*Selection)
}

// New creates an unselected selection over the tree under root.
func New(root *model.Component) *Selection {
	return &Selection{root: root}
}

// OnChange registers fn to run after every change of the selection.
func (s *Selection) OnChange(fn func(*Selection)) {
	s.listeners = append(s.listeners, fn)
}

func (s *Selection) notify() {
	for _, fn := range s.listeners {
		fn(s)
	}
}

// Root returns the root component.
func (s *Selection) Root() *model.Component { return s.root }

// IsSelected reports whether the selection is active.
func (s *Selection) IsSelected() bool { return s.selected }

// IsCollapsed reports whether anchor and focus coincide.
func (s *Selection) IsCollapsed() bool {
	return s.selected && s.anchor == s.focus
}

// Anchor returns the fixed end.
func (s *Selection) Anchor() Position { return s.anchor }

// Focus returns the moving end.
func (s *Selection) Focus() Position { return s.focus }

// Start returns whichever end comes first in document order.
func (s *Selection) Start() Position {
	if Compare(s.anchor, s.focus) <= 0 {
		return s.anchor
	}
	return s.focus
}

// End returns whichever end comes last in document order.
func (s *Selection) End() Position {
	if Compare(s.anchor, s.focus) <= 0 {
		return s.focus
	}
	return s.anchor
}

// IsBackward reports whether the focus precedes the anchor.
func (s *Selection) IsBackward() bool {
	return s.selected && Compare(s.anchor, s.focus) > 0
}

func (s *Selection) owns(slot *model.Slot) bool {
	if slot == nil {
		return false
	}
	c := slot.Parent()
	return c != nil && c.Root() == s.root
}

// SetBaseAndExtent sets both ends. Positions outside the tree are ignored.
func (s *Selection) SetBaseAndExtent(anchorSlot *model.Slot, anchorOffset int, focusSlot *model.Slot, focusOffset int) {
	if !s.owns(anchorSlot) || !s.owns(focusSlot) {
		return
	}
	s.anchor = normalize(Position{Slot: anchorSlot, Offset: anchorOffset})
	s.focus = normalize(Position{Slot: focusSlot, Offset: focusOffset})
	s.selected = true
	s.notify()
}

// SetPosition places a collapsed caret.
func (s *Selection) SetPosition(slot *model.Slot, offset int) {
	s.SetBaseAndExtent(slot, offset, slot, offset)
}

// SetAnchor moves the anchor, keeping the focus.
func (s *Selection) SetAnchor(slot *model.Slot, offset int) {
	if !s.selected {
		s.SetPosition(slot, offset)
		return
	}
	s.SetBaseAndExtent(slot, offset, s.focus.Slot, s.focus.Offset)
}

// SetFocus moves the focus, keeping the anchor.
func (s *Selection) SetFocus(slot *model.Slot, offset int) {
	if !s.selected {
		s.SetPosition(slot, offset)
		return
	}
	s.SetBaseAndExtent(s.anchor.Slot, s.anchor.Offset, slot, offset)
}

// Collapse moves both ends to the start, or to the end when toEnd is set.
func (s *Selection) Collapse(toEnd bool) {
	if !s.selected {
		return
	}
	p := s.Start()
	if toEnd {
		p = s.End()
	}
	s.SetPosition(p.Slot, p.Offset)
}

// Unselect clears the selection.
func (s *Selection) Unselect() {
	if !s.selected {
		return
	}
	s.anchor, s.focus = Position{}, Position{}
	s.selected = false
	s.notify()
}

// SelectSlot selects the whole content of slot.
func (s *Selection) SelectSlot(slot *model.Slot) {
	s.SetBaseAndExtent(slot, 0, slot, end(slot))
}

// SelectComponent selects c as one unit of its parent slot. The root
// component selects the whole document.
func (s *Selection) SelectComponent(c *model.Component) {
	parent := c.Parent()
	if parent == nil {
		if c == s.root {
			s.SelectAll()
		}
		return
	}
	i := parent.IndexOf(c)
	s.SetBaseAndExtent(parent, i, parent, i+1)
}

// SelectComponentContent selects from the first to the last position
// inside c.
func (s *Selection) SelectComponentContent(c *model.Component) {
	first, ok1 := FirstPosition(c)
	last, ok2 := LastPosition(c)
	if !ok1 || !ok2 {
		return
	}
	s.SetBaseAndExtent(first.Slot, first.Offset, last.Slot, last.Offset)
}

// SelectAll selects the whole document.
func (s *Selection) SelectAll() {
	s.SelectComponentContent(s.root)
}

// SelectFirstPosition places the caret at the first position inside c.
func (s *Selection) SelectFirstPosition(c *model.Component) {
	if p, ok := FirstPosition(c); ok {
		s.SetPosition(p.Slot, p.Offset)
	}
}

// SelectLastPosition places the caret at the last position inside c.
func (s *Selection) SelectLastPosition(c *model.Component) {
	if p, ok := LastPosition(c); ok {
		s.SetPosition(p.Slot, p.Offset)
	}
}

// ToNext moves a caret one position forward, or collapses a range to its
// end.
func (s *Selection) ToNext() {
	if !s.selected {
		return
	}
	if !s.IsCollapsed() {
		s.Collapse(true)
		return
	}
	p := NextPosition(s.focus)
	s.SetPosition(p.Slot, p.Offset)
}

// ToPrevious moves a caret one position back, or collapses a range to its
// start.
func (s *Selection) ToPrevious() {
	if !s.selected {
		return
	}
	if !s.IsCollapsed() {
		s.Collapse(false)
		return
	}
	p := PreviousPosition(s.focus)
	s.SetPosition(p.Slot, p.Offset)
}

// Paths returns the anchor and focus paths, or zero Paths when unselected.
func (s *Selection) Paths() Paths {
	if !s.selected {
		return Paths{}
	}
	return Paths{Anchor: s.anchor.Path(), Focus: s.focus.Path()}
}

// SetPaths restores a selection from paths. Empty paths unselect.
func (s *Selection) SetPaths(p Paths) error {
	if len(p.Anchor) == 0 && len(p.Focus) == 0 {
		s.Unselect()
		return nil
	}
	anchor, err := ResolvePath(s.root, p.Anchor)
	if err != nil {
		return fmt.Errorf("anchor: %w", err)
	}
	focus, err := ResolvePath(s.root, p.Focus)
	if err != nil {
		return fmt.Errorf("focus: %w", err)
	}
	s.SetBaseAndExtent(anchor.Slot, anchor.Offset, focus.Slot, focus.Offset)
	return nil
}

// CommonAncestorSlot returns the deepest slot holding both ends, or nil.
func (s *Selection) CommonAncestorSlot() *model.Slot {
	if !s.selected {
		return nil
	}
	return CommonAncestorSlot(s.anchor.Slot, s.focus.Slot)
}

// CommonAncestorComponent returns the deepest component holding both ends.
func (s *Selection) CommonAncestorComponent() *model.Component {
	if !s.selected {
		return nil
	}
	return CommonAncestorComponent(s.anchor.Slot, s.focus.Slot)
}

// Scopes decomposes the selection into per-slot scopes.
func (s *Selection) Scopes(discardEmpty bool) []Scope {
	if !s.selected {
		return nil
	}
	return Scopes(s.Start(), s.End(), discardEmpty)
}

// SelectedScopes is Scopes with each scope further split at block
// components.
func (s *Selection) SelectedScopes(discardEmpty bool) []Scope {
	var out []Scope
	for _, sc := range s.Scopes(discardEmpty) {
		out = append(out, DecomposeSlotRange(sc.Slot, sc.Start, sc.End)...)
	}
	return filter(out, discardEmpty)
}

// DeleteContents removes every scope, last first, and collapses to the
// start. It returns false when the tree is read-only or a slot refuses a
// delete; the caret is then left where deletion stopped.
func (s *Selection) DeleteContents() bool {
	if !s.selected || s.root.IsReadOnly() {
		return false
	}
	start := s.Start()
	scopes := s.Scopes(true)
	for i := len(scopes) - 1; i >= 0; i-- {
		sc := scopes[i]
		sc.Slot.Retain(sc.End)
		if !sc.Slot.Delete(sc.End - sc.Start) {
			s.SetPosition(sc.Slot, sc.End)
			return false
		}
	}
	s.SetPosition(start.Slot, start.Offset)
	return true
}
