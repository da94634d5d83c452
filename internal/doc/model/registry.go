package model

import (
	"fmt"
	"maps"
	"slices"

	"github.com/dshills/richdoc/internal/doc/action"
	"github.com/dshills/richdoc/internal/doc/content"
	"github.com/dshills/richdoc/internal/doc/format"
)

// Registry resolves the names found in literals and actions.
type Registry struct {
	components map[string]*Definition
	formatters map[string]*format.Formatter
	attributes map[string]*Attribute
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		components: make(map[string]*Definition),
		formatters: make(map[string]*format.Formatter),
		attributes: make(map[string]*Attribute),
	}
}

// RegisterComponent adds component definitions, replacing any with the same name.
func (r *Registry) RegisterComponent(defs ...*Definition) {
	for _, d := range defs {
		r.components[d.Name] = d
	}
}

// RegisterFormatter adds formatters.
func (r *Registry) RegisterFormatter(fs ...*format.Formatter) {
	for _, f := range fs {
		r.formatters[f.Name] = f
	}
}

// RegisterAttribute adds attributes.
func (r *Registry) RegisterAttribute(as ...*Attribute) {
	for _, a := range as {
		r.attributes[a.Name] = a
	}
}

// Component returns the definition registered under name.
func (r *Registry) Component(name string) (*Definition, bool) {
	d, ok := r.components[name]
	return d, ok
}

// Formatter returns the formatter registered under name.
func (r *Registry) Formatter(name string) (*format.Formatter, bool) {
	f, ok := r.formatters[name]
	return f, ok
}

// Attribute returns the attribute registered under name.
func (r *Registry) Attribute(name string) (*Attribute, bool) {
	a, ok := r.attributes[name]
	return a, ok
}

// Entries resolves a formats map. Values are kept as is, nil included.
func (r *Registry) Entries(formats map[string]any) ([]format.Entry, error) {
	if len(formats) == 0 {
		return nil, nil
	}
	out := make([]format.Entry, 0, len(formats))
	for _, name := range sortedNames(formats) {
		f, ok := r.formatters[name]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingFormatter, name)
		}
		out = append(out, format.Entry{Formatter: f, Value: formats[name]})
	}
	return out, nil
}

// CreateComponent builds a detached component from its literal.
func (r *Registry) CreateComponent(lit action.ComponentLiteral) (*Component, error) {
	def, ok := r.components[lit.Name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrMissingFactory, lit.Name)
	}
	slots := make([]*Slot, 0, len(lit.Slots))
	for i, sl := range lit.Slots {
		s, err := r.CreateSlot(sl)
		if err != nil {
			return nil, fmt.Errorf("component %q slot %d: %w", lit.Name, i, err)
		}
		slots = append(slots, s)
	}
	c := NewComponent(def, lit.State, slots...)
	if def.Setup != nil {
		def.Setup(c)
	}
	return c, nil
}

// CreateSlot builds a detached slot from its literal. Format ranges are
// clamped to the restored content length. Content the schema does not
// accept fails with ErrSchemaMismatch.
func (r *Registry) CreateSlot(lit action.SlotLiteral) (*Slot, error) {
	s := NewSlot(lit.Schema, lit.State)
	if len(lit.Content) > 0 {
		s.content = content.New[*Component]()
		for _, cl := range lit.Content {
			if !cl.IsComponent() {
				if cl.Text != "" && cl.Text != Placeholder && !s.Accepts(content.TypeText) {
					return nil, fmt.Errorf("%w: text %q", ErrSchemaMismatch, cl.Text)
				}
				s.content.Append(Text(cl.Text))
				continue
			}
			c, err := r.CreateComponent(*cl.Component)
			if err != nil {
				return nil, err
			}
			if !s.Accepts(c.Type()) {
				return nil, fmt.Errorf("%w: %s component %q", ErrSchemaMismatch, c.Type(), c.Name())
			}
			c.parent = s
			s.content.Append(Ref(c))
		}
		if s.content.Len() == 0 {
			s.content.Append(Text(Placeholder))
		}
	}
	length := s.Len()
	for _, name := range sortedRanges(lit.Formats) {
		f, ok := r.formatters[name]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingFormatter, name)
		}
		for _, fr := range lit.Formats[name] {
			start, end := max(0, fr.Start), min(fr.End, length)
			if f.IsBlock() {
				start, end = 0, length
			}
			s.format.Merge(f, format.Range{Start: start, End: end, Value: fr.Value}, false)
		}
	}
	for _, name := range sortedNames(lit.Attributes) {
		a, ok := r.attributes[name]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingAttribute, name)
		}
		s.putAttribute(a, lit.Attributes[name])
	}
	return s, nil
}

func sortedNames(m map[string]any) []string {
	return slices.Sorted(maps.Keys(m))
}

func sortedRanges(m map[string][]action.FormatRange) []string {
	return slices.Sorted(maps.Keys(m))
}
