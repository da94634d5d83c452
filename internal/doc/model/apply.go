package model

import (
	"fmt"

	"github.com/dshills/richdoc/internal/doc/action"
)

// ApplyActions replays an action list against the slot, starting with the
// cursor at 0.
func (s *Slot) ApplyActions(actions []action.Action, reg *Registry) error {
	s.Retain(0)
	for i, a := range actions {
		if err := s.applyAction(a, reg); err != nil {
			return fmt.Errorf("action %d %s: %w", i, a, err)
		}
	}
	return nil
}

func (s *Slot) applyAction(a action.Action, reg *Registry) error {
	ok := true
	switch a.Type {
	case action.Retain:
		entries, err := reg.Entries(a.Formats)
		if err != nil {
			return err
		}
		if a.Formats == nil {
			ok = s.Retain(a.Index)
		} else {
			ok = s.Retain(a.Index, entries...)
		}
	case action.Insert:
		entries, err := reg.Entries(a.Formats)
		if err != nil {
			return err
		}
		item := Text(a.Content.Text)
		if a.Content.IsComponent() {
			c, err := reg.CreateComponent(*a.Content.Component)
			if err != nil {
				return err
			}
			item = Ref(c)
		}
		ok = s.Insert(item, entries...)
	case action.Delete:
		ok = s.Delete(a.Count)
	case action.AttrSet, action.AttrDelete:
		attr, found := reg.Attribute(a.Name)
		if !found {
			return fmt.Errorf("%w: %q", ErrMissingAttribute, a.Name)
		}
		if a.Type == action.AttrSet {
			ok = s.SetAttribute(attr, a.Value)
		} else {
			ok = s.RemoveAttribute(attr)
		}
	case action.PropSet:
		ok = s.SetProp(a.Name, a.Value)
	case action.PropDelete:
		ok = s.DeleteProp(a.Name)
	default:
		return ErrInvalidAction
	}
	if !ok {
		return ErrRejected
	}
	return nil
}

// ApplyActions replays an action list against the component's slot list,
// starting with its cursor at 0.
func (c *Component) ApplyActions(actions []action.Action, reg *Registry) error {
	c.slots.Retain(0)
	for i, a := range actions {
		if err := c.applyAction(a, reg); err != nil {
			return fmt.Errorf("action %d %s: %w", i, a, err)
		}
	}
	return nil
}

func (c *Component) applyAction(a action.Action, reg *Registry) error {
	ok := true
	switch a.Type {
	case action.Retain:
		c.slots.Retain(a.Index)
	case action.Delete:
		ok = c.slots.Delete(a.Count)
	case action.InsertSlot:
		if a.Slot == nil {
			return ErrInvalidAction
		}
		s, err := reg.CreateSlot(*a.Slot)
		if err != nil {
			return err
		}
		ok = c.slots.Insert(s)
	case action.PropSet:
		ok = c.SetProp(a.Name, a.Value)
	case action.PropDelete:
		ok = c.DeleteProp(a.Name)
	default:
		return ErrInvalidAction
	}
	if !ok {
		return ErrRejected
	}
	return nil
}

// Apply replays one side of an operation against the node its path
// addresses under root.
func Apply(root *Component, path []int, actions []action.Action, reg *Registry) error {
	if len(path)%2 == 1 {
		s, err := FindSlot(root, path)
		if err != nil {
			return err
		}
		return s.ApplyActions(actions, reg)
	}
	c, err := FindComponent(root, path)
	if err != nil {
		return err
	}
	return c.ApplyActions(actions, reg)
}
