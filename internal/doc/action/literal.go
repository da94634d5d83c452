package action

import (
	"encoding/json"
	"maps"
	"slices"

	"github.com/dshills/richdoc/internal/doc/content"
)

// ComponentLiteral is the serialized form of a component.
type ComponentLiteral struct {
	Name  string         `json:"name"`
	Slots []SlotLiteral  `json:"slots,omitempty"`
	State map[string]any `json:"state,omitempty"`
}

// Clone returns a deep copy of the literal. State values are shared.
func (c ComponentLiteral) Clone() ComponentLiteral {
	out := ComponentLiteral{Name: c.Name, State: maps.Clone(c.State)}
	for _, s := range c.Slots {
		out.Slots = append(out.Slots, s.Clone())
	}
	return out
}

// FormatRange is the serialized form of one format range.
type FormatRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
	Value any `json:"value"`
}

// SlotLiteral is the serialized form of a slot.
type SlotLiteral struct {
	Schema     []content.Type           `json:"schema"`
	Content    []ContentLiteral         `json:"content"`
	Formats    map[string][]FormatRange `json:"formats,omitempty"`
	Attributes map[string]any           `json:"attributes,omitempty"`
	State      map[string]any           `json:"state,omitempty"`
}

// Clone returns a deep copy of the literal. Values are shared.
func (s SlotLiteral) Clone() SlotLiteral {
	out := SlotLiteral{
		Schema:     slices.Clone(s.Schema),
		Attributes: maps.Clone(s.Attributes),
		State:      maps.Clone(s.State),
	}
	for _, c := range s.Content {
		out.Content = append(out.Content, c.Clone())
	}
	if s.Formats != nil {
		out.Formats = make(map[string][]FormatRange, len(s.Formats))
		for k, v := range s.Formats {
			out.Formats[k] = slices.Clone(v)
		}
	}
	return out
}

// ContentLiteral is one serialized content item: a string or a component.
type ContentLiteral struct {
	Text      string
	Component *ComponentLiteral
}

// TextContent wraps a string.
func TextContent(s string) ContentLiteral {
	return ContentLiteral{Text: s}
}

// ComponentContent wraps a component literal.
func ComponentContent(c ComponentLiteral) ContentLiteral {
	return ContentLiteral{Component: &c}
}

// IsComponent reports whether the item is a component.
func (c ContentLiteral) IsComponent() bool {
	return c.Component != nil
}

// Clone returns a deep copy.
func (c ContentLiteral) Clone() ContentLiteral {
	if c.Component == nil {
		return c
	}
	comp := c.Component.Clone()
	return ContentLiteral{Component: &comp}
}

// MarshalJSON encodes the item as a JSON string or component object.
func (c ContentLiteral) MarshalJSON() ([]byte, error) {
	if c.Component != nil {
		return json.Marshal(c.Component)
	}
	return json.Marshal(c.Text)
}

// UnmarshalJSON decodes a JSON string or component object.
func (c *ContentLiteral) UnmarshalJSON(data []byte) error {
	v, err := parseContentLiteral(data)
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// UnmarshalJSON decodes a slot literal.
func (s *SlotLiteral) UnmarshalJSON(data []byte) error {
	v, err := ParseSlotLiteral(data)
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// UnmarshalJSON decodes a component literal.
func (c *ComponentLiteral) UnmarshalJSON(data []byte) error {
	v, err := ParseComponentLiteral(data)
	if err != nil {
		return err
	}
	*c = v
	return nil
}
