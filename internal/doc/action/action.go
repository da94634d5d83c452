package action

import (
	"fmt"
	"maps"
	"slices"
)

// Type tags an Action.
type Type int

const (
	// Retain moves the cursor to Index, applying Formats to the skipped range.
	Retain Type = iota
	// Insert writes Content at the cursor.
	Insert
	// Delete removes Count units before the cursor.
	Delete
	// PropSet sets a component prop.
	PropSet
	// PropDelete removes a component prop.
	PropDelete
	// AttrSet sets a slot attribute.
	AttrSet
	// AttrDelete removes a slot attribute.
	AttrDelete
	// InsertSlot adds a slot to a component's slot list at the cursor.
	InsertSlot
)

var typeNames = [...]string{
	Retain:     "retain",
	Insert:     "insert",
	Delete:     "delete",
	PropSet:    "propSet",
	PropDelete: "propDelete",
	AttrSet:    "attrSet",
	AttrDelete: "attrDelete",
	InsertSlot: "insertSlot",
}

// String returns the wire tag of the type.
func (t Type) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return "unknown"
	}
	return typeNames[t]
}

// ParseType converts a wire tag into a Type.
func ParseType(s string) (Type, bool) {
	for i, name := range typeNames {
		if name == s {
			return Type(i), true
		}
	}
	return 0, false
}

// Action is one primitive step. Which fields are meaningful depends on Type:
//
//	Retain      Index, Formats (optional)
//	Insert      Content, Formats (optional)
//	Delete      Count
//	PropSet     Name, Value
//	PropDelete  Name
//	AttrSet     Name, Value
//	AttrDelete  Name
//	InsertSlot  Slot
//
// A nil Formats map means "no formats"; a nil value inside the map erases
// that formatter.
type Action struct {
	Type    Type
	Index   int
	Count   int
	Content ContentLiteral
	Formats map[string]any
	Name    string
	Value   any
	Slot    *SlotLiteral
}

// NewRetain moves the cursor to index, formatting the span passed over
// when formats is non-nil.
func NewRetain(index int, formats map[string]any) Action {
	return Action{Type: Retain, Index: index, Formats: formats}
}

// NewInsert inserts content at the cursor.
func NewInsert(c ContentLiteral, formats map[string]any) Action {
	return Action{Type: Insert, Content: c, Formats: formats}
}

// NewDelete removes count units before the cursor.
func NewDelete(count int) Action {
	return Action{Type: Delete, Count: count}
}

// NewPropSet sets a state property.
func NewPropSet(name string, value any) Action {
	return Action{Type: PropSet, Name: name, Value: value}
}

// NewPropDelete removes a state property.
func NewPropDelete(name string) Action {
	return Action{Type: PropDelete, Name: name}
}

// NewAttrSet sets a slot attribute.
func NewAttrSet(name string, value any) Action {
	return Action{Type: AttrSet, Name: name, Value: value}
}

// NewAttrDelete removes a slot attribute.
func NewAttrDelete(name string) Action {
	return Action{Type: AttrDelete, Name: name}
}

// NewInsertSlot inserts a slot into a component's slot list at the cursor.
func NewInsertSlot(lit SlotLiteral) Action {
	return Action{Type: InsertSlot, Slot: &lit}
}

// Clone returns a copy whose maps and literals are not shared.
func (a Action) Clone() Action {
	out := a
	if a.Formats != nil {
		out.Formats = maps.Clone(a.Formats)
	}
	out.Content = a.Content.Clone()
	if a.Slot != nil {
		s := a.Slot.Clone()
		out.Slot = &s
	}
	return out
}

// String returns a compact description for logs.
func (a Action) String() string {
	switch a.Type {
	case Retain:
		if a.Formats != nil {
			return fmt.Sprintf("retain(%d, %v)", a.Index, sortedKeys(a.Formats))
		}
		return fmt.Sprintf("retain(%d)", a.Index)
	case Insert:
		if a.Content.Component != nil {
			return fmt.Sprintf("insert(<%s>)", a.Content.Component.Name)
		}
		return fmt.Sprintf("insert(%q)", a.Content.Text)
	case Delete:
		return fmt.Sprintf("delete(%d)", a.Count)
	case PropSet, PropDelete, AttrSet, AttrDelete:
		return fmt.Sprintf("%s(%s)", a.Type, a.Name)
	case InsertSlot:
		return "insertSlot"
	default:
		return "unknown"
	}
}

func sortedKeys(m map[string]any) []string {
	return slices.Sorted(maps.Keys(m))
}

// Operation is the record of one node mutation.
type Operation struct {
	// Path from the root component to the originating node.
	Path []int
	// Apply replays the mutation.
	Apply []Action
	// UnApply reverts it.
	UnApply []Action
}

// Invert returns the operation that undoes op.
func (op Operation) Invert() Operation {
	return Operation{
		Path:    slices.Clone(op.Path),
		Apply:   op.UnApply,
		UnApply: op.Apply,
	}
}

// Prefixed returns a copy of op with index prepended to the path.
func (op Operation) Prefixed(index int) Operation {
	path := make([]int, 0, len(op.Path)+1)
	path = append(path, index)
	path = append(path, op.Path...)
	return Operation{Path: path, Apply: op.Apply, UnApply: op.UnApply}
}

// Clone returns a deep copy of op.
func (op Operation) Clone() Operation {
	out := Operation{Path: slices.Clone(op.Path)}
	for _, a := range op.Apply {
		out.Apply = append(out.Apply, a.Clone())
	}
	for _, a := range op.UnApply {
		out.UnApply = append(out.UnApply, a.Clone())
	}
	return out
}

// TargetsSlot reports whether the path addresses a slot.
func (op Operation) TargetsSlot() bool {
	return len(op.Path)%2 == 1
}
