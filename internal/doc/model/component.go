package model

import (
	"maps"
	"strings"

	"github.com/google/uuid"

	"github.com/dshills/richdoc/internal/doc/action"
	"github.com/dshills/richdoc/internal/doc/content"
)

// Definition describes a kind of component.
type Definition struct {
	Name string
	// Type is TypeInline or TypeBlock.
	Type content.Type
	// Setup, if set, runs once on every component created from a literal,
	// after its slots and state are restored.
	Setup func(*Component)
}

// Component is a named instance owning an ordered slot list.
type Component struct {
	id     string
	def    *Definition
	slots  *Slots
	state  map[string]any
	parent *Slot
	marker *ChangeMarker

	readOnly bool
}

// NewComponent creates a component holding slots.
func NewComponent(def *Definition, state map[string]any, slots ...*Slot) *Component {
	c := &Component{
		id:    uuid.NewString(),
		def:   def,
		state: maps.Clone(state),
	}
	c.marker = newChangeMarker(c)
	c.slots = newSlots(c)
	for _, s := range slots {
		c.slots.attach(len(c.slots.list), s)
	}
	return c
}

func (c *Component) parentNode() node {
	if c.parent == nil {
		return nil
	}
	return c.parent
}

func (c *Component) indexInParent() int {
	if c.parent == nil {
		return -1
	}
	return c.parent.IndexOf(c)
}

func (c *Component) changeMarker() *ChangeMarker { return c.marker }

// ID returns the component's identity token.
func (c *Component) ID() string { return c.id }

// Name returns the definition name.
func (c *Component) Name() string { return c.def.Name }

// Definition returns the component definition.
func (c *Component) Definition() *Definition { return c.def }

// Type returns TypeInline or TypeBlock.
func (c *Component) Type() content.Type { return c.def.Type }

// Slots returns the component's slot collection.
func (c *Component) Slots() *Slots { return c.slots }

// Parent returns the slot holding the component, or nil.
func (c *Component) Parent() *Slot { return c.parent }

// ParentComponent returns the component owning the parent slot, or nil.
func (c *Component) ParentComponent() *Component {
	if c.parent == nil {
		return nil
	}
	return c.parent.parent
}

// Marker returns the component's change marker.
func (c *Component) Marker() *ChangeMarker { return c.marker }

// Root walks up to the top-most component.
func (c *Component) Root() *Component {
	cur := c
	for {
		p := cur.ParentComponent()
		if p == nil {
			return cur
		}
		cur = p
	}
}

// SetReadOnly toggles read-only mode for the tree under c. Only the flag
// of the root component is consulted.
func (c *Component) SetReadOnly(v bool) { c.readOnly = v }

// IsReadOnly reports whether the tree containing c is read-only.
func (c *Component) IsReadOnly() bool { return c.Root().readOnly }

// isAncestorOf reports whether c contains s, directly or transitively.
func (c *Component) isAncestorOf(s *Slot) bool {
	for cur := s; cur != nil; cur = cur.ParentSlot() {
		if cur.parent == c {
			return true
		}
	}
	return false
}

// descendants returns every component below c in document order.
func (c *Component) descendants() []*Component {
	var out []*Component
	for _, s := range c.slots.list {
		for _, child := range s.Components() {
			out = append(out, child)
			out = append(out, child.descendants()...)
		}
	}
	return out
}

// Prop returns a state property.
func (c *Component) Prop(name string) (any, bool) {
	v, ok := c.state[name]
	return v, ok
}

// State returns a copy of the component state.
func (c *Component) State() map[string]any { return maps.Clone(c.state) }

// SetProp replaces one state property.
func (c *Component) SetProp(name string, value any) bool {
	if c.IsReadOnly() {
		return false
	}
	if op, ok := setProp(&c.state, name, value); ok {
		c.marker.MarkAsDirtied(op)
	}
	return true
}

// DeleteProp removes one state property.
func (c *Component) DeleteProp(name string) bool {
	if c.IsReadOnly() {
		return false
	}
	if op, ok := deleteProp(c.state, name); ok {
		c.marker.MarkAsDirtied(op)
	}
	return true
}

// ToJSON returns the component literal.
func (c *Component) ToJSON() action.ComponentLiteral {
	lit := action.ComponentLiteral{Name: c.def.Name, State: maps.Clone(c.state)}
	for _, s := range c.slots.list {
		lit.Slots = append(lit.Slots, s.ToJSON())
	}
	return lit
}

// ToString returns the plain text of every slot, concatenated.
func (c *Component) ToString() string {
	var sb strings.Builder
	for _, s := range c.slots.list {
		sb.WriteString(s.ToString())
	}
	return sb.String()
}
