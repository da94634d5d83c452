package action

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/dshills/richdoc/internal/doc/content"
)

func setRaw(doc, path string, v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return doc, err
	}
	return sjson.SetRaw(doc, path, string(b))
}

// MarshalJSON encodes the action as a tagged record.
func (a Action) MarshalJSON() ([]byte, error) {
	out, err := sjson.Set("{}", "type", a.Type.String())
	if err != nil {
		return nil, err
	}
	switch a.Type {
	case Retain:
		out, err = sjson.Set(out, "index", a.Index)
		if err == nil && a.Formats != nil {
			out, err = setRaw(out, "formats", a.Formats)
		}
	case Insert:
		out, err = setRaw(out, "content", a.Content)
		if err == nil && a.Formats != nil {
			out, err = setRaw(out, "formats", a.Formats)
		}
	case Delete:
		out, err = sjson.Set(out, "count", a.Count)
	case PropSet, AttrSet:
		out, err = sjson.Set(out, "name", a.Name)
		if err == nil {
			out, err = setRaw(out, "value", a.Value)
		}
	case PropDelete, AttrDelete:
		out, err = sjson.Set(out, "name", a.Name)
	case InsertSlot:
		if a.Slot != nil {
			out, err = setRaw(out, "slot", a.Slot)
		}
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownAction, a.Type)
	}
	if err != nil {
		return nil, err
	}
	return []byte(out), nil
}

// UnmarshalJSON decodes a tagged action record.
func (a *Action) UnmarshalJSON(data []byte) error {
	v, err := ParseAction(data)
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// MarshalJSON encodes the operation as {"path","apply","unApply"}.
func (op Operation) MarshalJSON() ([]byte, error) {
	path := op.Path
	if path == nil {
		path = []int{}
	}
	out, err := setRaw("{}", "path", path)
	if err != nil {
		return nil, err
	}
	if out, err = setRaw(out, "apply", nonNil(op.Apply)); err != nil {
		return nil, err
	}
	if out, err = setRaw(out, "unApply", nonNil(op.UnApply)); err != nil {
		return nil, err
	}
	return []byte(out), nil
}

func nonNil(a []Action) []Action {
	if a == nil {
		return []Action{}
	}
	return a
}

// UnmarshalJSON decodes an operation record.
func (op *Operation) UnmarshalJSON(data []byte) error {
	v, err := ParseOperation(data)
	if err != nil {
		return err
	}
	*op = v
	return nil
}

// ParseAction decodes one action record.
func ParseAction(data []byte) (Action, error) {
	if !gjson.ValidBytes(data) {
		return Action{}, ErrInvalidJSON
	}
	return parseAction(gjson.ParseBytes(data))
}

// ParseActions decodes a JSON array of action records.
func ParseActions(data []byte) ([]Action, error) {
	if !gjson.ValidBytes(data) {
		return nil, ErrInvalidJSON
	}
	return parseActionList(gjson.ParseBytes(data))
}

// ParseOperation decodes one operation record.
func ParseOperation(data []byte) (Operation, error) {
	if !gjson.ValidBytes(data) {
		return Operation{}, ErrInvalidJSON
	}
	return parseOperation(gjson.ParseBytes(data))
}

// ParseOperations decodes a JSON array of operation records.
func ParseOperations(data []byte) ([]Operation, error) {
	if !gjson.ValidBytes(data) {
		return nil, ErrInvalidJSON
	}
	r := gjson.ParseBytes(data)
	if !r.IsArray() {
		return nil, fmt.Errorf("%w: operations must be an array", ErrInvalidJSON)
	}
	var ops []Operation
	for _, item := range r.Array() {
		op, err := parseOperation(item)
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}
	return ops, nil
}

func parseOperation(r gjson.Result) (Operation, error) {
	if !r.IsObject() {
		return Operation{}, fmt.Errorf("%w: operation must be an object", ErrInvalidJSON)
	}
	op := Operation{Path: []int{}}
	for _, p := range r.Get("path").Array() {
		op.Path = append(op.Path, int(p.Int()))
	}
	var err error
	if op.Apply, err = parseActionList(r.Get("apply")); err != nil {
		return Operation{}, fmt.Errorf("apply: %w", err)
	}
	if op.UnApply, err = parseActionList(r.Get("unApply")); err != nil {
		return Operation{}, fmt.Errorf("unApply: %w", err)
	}
	return op, nil
}

func parseActionList(r gjson.Result) ([]Action, error) {
	if r.Exists() && !r.IsArray() {
		return nil, fmt.Errorf("%w: actions must be an array", ErrInvalidJSON)
	}
	var out []Action
	for i, item := range r.Array() {
		a, err := parseAction(item)
		if err != nil {
			return nil, fmt.Errorf("action %d: %w", i, err)
		}
		out = append(out, a)
	}
	return out, nil
}

func parseAction(r gjson.Result) (Action, error) {
	tag := r.Get("type").String()
	t, ok := ParseType(tag)
	if !ok {
		return Action{}, fmt.Errorf("%w: %q", ErrUnknownAction, tag)
	}
	a := Action{Type: t}
	switch t {
	case Retain:
		a.Index = int(r.Get("index").Int())
		a.Formats = objectValue(r.Get("formats"))
	case Insert:
		c, err := parseContent(r.Get("content"))
		if err != nil {
			return Action{}, err
		}
		a.Content = c
		a.Formats = objectValue(r.Get("formats"))
	case Delete:
		a.Count = int(r.Get("count").Int())
	case PropSet, AttrSet:
		a.Name = r.Get("name").String()
		a.Value = r.Get("value").Value()
	case PropDelete, AttrDelete:
		a.Name = r.Get("name").String()
	case InsertSlot:
		s, err := parseSlot(r.Get("slot"))
		if err != nil {
			return Action{}, err
		}
		a.Slot = &s
	}
	return a, nil
}

func objectValue(r gjson.Result) map[string]any {
	if !r.IsObject() {
		return nil
	}
	m, _ := r.Value().(map[string]any)
	return m
}

// ParseSlotLiteral decodes a slot literal.
func ParseSlotLiteral(data []byte) (SlotLiteral, error) {
	if !gjson.ValidBytes(data) {
		return SlotLiteral{}, ErrInvalidJSON
	}
	return parseSlot(gjson.ParseBytes(data))
}

// ParseComponentLiteral decodes a component literal.
func ParseComponentLiteral(data []byte) (ComponentLiteral, error) {
	if !gjson.ValidBytes(data) {
		return ComponentLiteral{}, ErrInvalidJSON
	}
	return parseComponent(gjson.ParseBytes(data))
}

func parseContentLiteral(data []byte) (ContentLiteral, error) {
	if !gjson.ValidBytes(data) {
		return ContentLiteral{}, ErrInvalidJSON
	}
	return parseContent(gjson.ParseBytes(data))
}

func parseSlot(r gjson.Result) (SlotLiteral, error) {
	if !r.IsObject() {
		return SlotLiteral{}, fmt.Errorf("%w: slot must be an object", ErrInvalidLiteral)
	}
	var lit SlotLiteral
	for _, t := range r.Get("schema").Array() {
		typ, ok := content.ParseType(t.String())
		if !ok {
			return SlotLiteral{}, fmt.Errorf("%w: unknown content type %q", ErrInvalidLiteral, t.String())
		}
		lit.Schema = append(lit.Schema, typ)
	}
	for _, item := range r.Get("content").Array() {
		c, err := parseContent(item)
		if err != nil {
			return SlotLiteral{}, err
		}
		lit.Content = append(lit.Content, c)
	}
	if f := r.Get("formats"); f.IsObject() {
		lit.Formats = make(map[string][]FormatRange)
		f.ForEach(func(name, ranges gjson.Result) bool {
			for _, fr := range ranges.Array() {
				lit.Formats[name.String()] = append(lit.Formats[name.String()], FormatRange{
					Start: int(fr.Get("start").Int()),
					End:   int(fr.Get("end").Int()),
					Value: fr.Get("value").Value(),
				})
			}
			return true
		})
	}
	lit.Attributes = objectValue(r.Get("attributes"))
	lit.State = objectValue(r.Get("state"))
	return lit, nil
}

func parseComponent(r gjson.Result) (ComponentLiteral, error) {
	if !r.IsObject() {
		return ComponentLiteral{}, fmt.Errorf("%w: component must be an object", ErrInvalidLiteral)
	}
	name := r.Get("name").String()
	if name == "" {
		return ComponentLiteral{}, fmt.Errorf("%w: component without name", ErrInvalidLiteral)
	}
	lit := ComponentLiteral{Name: name, State: objectValue(r.Get("state"))}
	for _, s := range r.Get("slots").Array() {
		slot, err := parseSlot(s)
		if err != nil {
			return ComponentLiteral{}, fmt.Errorf("component %s: %w", name, err)
		}
		lit.Slots = append(lit.Slots, slot)
	}
	return lit, nil
}

func parseContent(r gjson.Result) (ContentLiteral, error) {
	switch {
	case r.Type == gjson.String:
		return TextContent(r.String()), nil
	case r.IsObject():
		c, err := parseComponent(r)
		if err != nil {
			return ContentLiteral{}, err
		}
		return ComponentContent(c), nil
	default:
		return ContentLiteral{}, fmt.Errorf("%w: content item must be a string or component", ErrInvalidLiteral)
	}
}
