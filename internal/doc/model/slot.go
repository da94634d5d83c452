package model

import (
	"maps"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/dshills/richdoc/internal/doc/action"
	"github.com/dshills/richdoc/internal/doc/content"
	"github.com/dshills/richdoc/internal/doc/format"
)

// Placeholder is the unit held by an empty slot.
const Placeholder = "\u200b"

// Content is the item sequence of a slot.
type Content = content.Content[*Component]

// Item is one content item: a text run or a component reference.
type Item = content.Item[*Component]

// Text creates a text item.
func Text(s string) Item {
	return content.Text[*Component](s)
}

// Ref creates a component item.
func Ref(c *Component) Item {
	return content.Embed(c)
}

// Attribute is a slot-level property such as text alignment.
type Attribute struct {
	Name string
}

// NewAttribute creates an attribute.
func NewAttribute(name string) *Attribute {
	return &Attribute{Name: name}
}

// AttributeEntry pairs an attribute with its value.
type AttributeEntry struct {
	Attribute *Attribute
	Value     any
}

// Slot is a content container with its own format overlay and write cursor.
type Slot struct {
	id      string
	schema  []content.Type
	content *Content
	format  *format.Format
	attrs   []AttributeEntry
	state   map[string]any
	index   int
	parent  *Component
	marker  *ChangeMarker
}

// NewSlot creates an empty slot accepting the given content types.
func NewSlot(schema []content.Type, state map[string]any) *Slot {
	s := &Slot{
		id:      uuid.NewString(),
		schema:  slices.Clone(schema),
		content: content.New[*Component](),
		format:  format.New(),
		state:   maps.Clone(state),
	}
	s.content.Append(Text(Placeholder))
	s.marker = newChangeMarker(s)
	return s
}

func (s *Slot) parentNode() node {
	if s.parent == nil {
		return nil
	}
	return s.parent
}

func (s *Slot) indexInParent() int {
	if s.parent == nil {
		return -1
	}
	return s.parent.slots.IndexOf(s)
}

func (s *Slot) changeMarker() *ChangeMarker { return s.marker }

// ID returns the slot's identity token. It is unique but carries no meaning.
func (s *Slot) ID() string { return s.id }

// Schema returns the content types the slot accepts.
func (s *Slot) Schema() []content.Type { return slices.Clone(s.schema) }

// Accepts reports whether the schema permits t.
func (s *Slot) Accepts(t content.Type) bool { return slices.Contains(s.schema, t) }

// Marker returns the slot's change marker.
func (s *Slot) Marker() *ChangeMarker { return s.marker }

// Parent returns the owning component, or nil.
func (s *Slot) Parent() *Component { return s.parent }

// ParentSlot returns the slot holding the owning component, or nil.
func (s *Slot) ParentSlot() *Slot {
	if s.parent == nil {
		return nil
	}
	return s.parent.parent
}

// Index returns the write cursor.
func (s *Slot) Index() int { return s.index }

// Len returns the number of index units.
func (s *Slot) Len() int { return s.content.Len() }

// IsEmpty reports whether the slot holds only the placeholder.
func (s *Slot) IsEmpty() bool {
	if s.content.Len() != 1 {
		return false
	}
	it, ok := s.content.ItemAt(0)
	return ok && it.IsText() && it.Text() == Placeholder
}

// Format returns the slot's format overlay. Callers must treat it as
// read-only; mutate through Retain.
func (s *Slot) Format() *format.Format { return s.format }

// Items returns a copy of the content items.
func (s *Slot) Items() []Item { return s.content.Items() }

// SliceContent returns the items covering [start, end).
func (s *Slot) SliceContent(start, end int) []Item { return s.content.Slice(start, end) }

// ItemAt returns the unit at index.
func (s *Slot) ItemAt(index int) (Item, bool) { return s.content.ItemAt(index) }

// IndexOf returns the index of component c, or -1.
func (s *Slot) IndexOf(c *Component) int { return s.content.IndexOf(c) }

// Components returns the components referenced by the slot, in order.
func (s *Slot) Components() []*Component { return s.content.Embeds() }

// CorrectIndex snaps index to a grapheme cluster boundary.
func (s *Slot) CorrectIndex(index int, toEnd bool) int { return s.content.CorrectIndex(index, toEnd) }

// CreateFormatTree decomposes the whole slot's formats for rendering.
func (s *Slot) CreateFormatTree() *format.Tree {
	return s.format.ToTree(0, s.Len())
}

// IsReadOnly reports whether the tree containing the slot is read-only.
func (s *Slot) IsReadOnly() bool {
	if s.parent == nil {
		return false
	}
	return s.parent.IsReadOnly()
}

func itemType(it Item) content.Type {
	if it.IsEmbed() {
		return it.Embedded().Type()
	}
	return content.TypeText
}

func itemLiteral(it Item) action.ContentLiteral {
	if it.IsEmbed() {
		return action.ComponentContent(it.Embedded().ToJSON())
	}
	return action.TextContent(it.Text())
}

func inlineEntries(entries []format.Entry) []format.Entry {
	var out []format.Entry
	for _, e := range entries {
		if !e.Formatter.IsBlock() {
			out = append(out, e)
		}
	}
	return out
}

func entriesToMap(entries []format.Entry) map[string]any {
	if len(entries) == 0 {
		return nil
	}
	m := make(map[string]any, len(entries))
	for _, e := range entries {
		m[e.Formatter.Name] = e.Value
	}
	return m
}

// dedupe keeps the last entry per formatter.
func dedupe(entries []format.Entry) []format.Entry {
	var out []format.Entry
	for _, e := range entries {
		i := slices.IndexFunc(out, func(x format.Entry) bool { return x.Formatter == e.Formatter })
		if i >= 0 {
			out[i] = e
			continue
		}
		out = append(out, e)
	}
	return out
}

// Write inserts item at the cursor, inheriting the inline formats of the
// unit before the cursor (or the first unit when the cursor is at 0 or the
// slot is empty). Explicit formats override inherited ones.
func (s *Slot) Write(item Item, formats ...format.Entry) bool {
	var inherited []format.Entry
	if s.IsEmpty() || s.index <= 0 {
		inherited = s.format.FormatsAt(0)
	} else {
		inherited = s.format.FormatsAt(s.index - 1)
	}
	entries := dedupe(append(inlineEntries(inherited), formats...))
	return s.Insert(item, entries...)
}

// Insert places item at the cursor with exactly the given inline formats and
// advances the cursor past it. Block formatter entries are ignored; use
// Retain to change them. Insert returns false when the schema rejects the
// item or the tree is read-only.
func (s *Slot) Insert(item Item, formats ...format.Entry) bool {
	if s.IsReadOnly() || !s.Accepts(itemType(item)) {
		return false
	}
	if item.IsEmpty() {
		return true
	}
	if item.IsEmbed() {
		c := item.Embedded()
		if c.isAncestorOf(s) {
			return false
		}
		if old := c.parent; old != nil {
			cursor := s.index
			if old == s && old.content.IndexOf(c) < cursor {
				cursor--
			}
			old.RemoveComponent(c)
			s.index = cursor
		}
	}

	entries := dedupe(inlineEntries(formats))
	wasEmpty := s.IsEmpty()
	var prior []format.Entry
	if wasEmpty {
		prior = inlineEntries(s.format.FormatsAt(0))
		s.index = 0
	}
	start := s.content.CorrectIndex(s.index, false)
	n := item.Len()

	s.content.Insert(start, item)
	s.format.Split(start, n)
	for _, e := range entries {
		if e.Value != nil {
			s.format.Merge(e.Formatter, format.Range{Start: start, End: start + n, Value: e.Value}, false)
		}
	}
	if wasEmpty {
		s.content.Cut(n, n+1)
		s.format.Shrink(n, 1)
	}
	if item.IsEmbed() {
		item.Embedded().parent = s
	}
	s.index = start + n

	var applied []format.Entry
	for _, e := range entries {
		if e.Value != nil {
			applied = append(applied, e)
		}
	}
	op := action.Operation{
		Apply: []action.Action{
			action.NewRetain(start, nil),
			action.NewInsert(itemLiteral(item), entriesToMap(applied)),
		},
		UnApply: []action.Action{
			action.NewRetain(start+n, nil),
			action.NewDelete(n),
		},
	}
	if wasEmpty {
		if restore := placeholderRestore(prior, applied); restore != nil {
			op.UnApply = append(op.UnApply, action.NewRetain(0, nil), action.NewRetain(1, restore))
		}
	}
	s.marker.MarkAsDirtied(op)
	return true
}

// placeholderRestore returns the formats that turn a placeholder carrying
// applied back into one carrying prior.
func placeholderRestore(prior, applied []format.Entry) map[string]any {
	m := entriesToMap(prior)
	for _, e := range applied {
		if m == nil {
			m = make(map[string]any)
		}
		if _, ok := m[e.Formatter.Name]; !ok {
			m[e.Formatter.Name] = nil
		}
	}
	return m
}

// Delete removes the count units before the cursor. When the slot becomes
// empty the placeholder is reinserted carrying the formats of the first
// removed unit.
func (s *Slot) Delete(count int) bool {
	if s.IsReadOnly() {
		return false
	}
	if count <= 0 || s.IsEmpty() {
		return true
	}
	end := s.content.CorrectIndex(s.index, true)
	start := s.content.CorrectIndex(end-count, false)
	if start >= end {
		return true
	}
	removedFormat := s.format.Extract(start, end)
	removed := s.content.Cut(start, end)
	s.format.Shrink(start, end-start)
	s.index = start

	var components []*Component
	for _, it := range removed {
		if it.IsEmbed() {
			c := it.Embedded()
			c.parent = nil
			components = append(components, c)
		}
	}
	if s.content.Len() == 0 {
		s.content.Append(Text(Placeholder))
		s.format = format.New()
		for _, e := range removedFormat.FormatsAt(0) {
			s.format.Merge(e.Formatter, format.Range{Start: 0, End: 1, Value: e.Value}, false)
		}
	}

	unApply := []action.Action{action.NewRetain(start, nil)}
	for _, it := range removed {
		unApply = append(unApply, action.NewInsert(itemLiteral(it), nil))
	}
	for _, fi := range removedFormat.ToArray() {
		if fi.Formatter.IsBlock() {
			continue
		}
		unApply = append(unApply,
			action.NewRetain(start+fi.Start, nil),
			action.NewRetain(start+fi.End, map[string]any{fi.Formatter.Name: fi.Value}),
		)
	}
	s.marker.MarkAsDirtied(action.Operation{
		Apply:   []action.Action{action.NewRetain(end, nil), action.NewDelete(end - start)},
		UnApply: unApply,
	})
	for _, c := range components {
		s.marker.componentRemoved(c)
		for _, d := range c.descendants() {
			s.marker.componentRemoved(d)
		}
	}
	return true
}

// RemoveComponent deletes component c from the slot.
func (s *Slot) RemoveComponent(c *Component) bool {
	i := s.content.IndexOf(c)
	if i < 0 {
		return false
	}
	s.Retain(i + 1)
	return s.Delete(1)
}

// Retain moves the cursor to index. With formats, the span between the old
// and new cursor is formatted: inline formats skip block components and
// recurse into their slots instead, block formats cover the whole slot.
func (s *Slot) Retain(index int, formats ...format.Entry) bool {
	if len(formats) == 0 {
		s.index = s.content.CorrectIndex(index, false)
		return true
	}
	if s.IsReadOnly() {
		return false
	}
	from := s.index
	start, end := min(from, index), max(from, index)
	start = s.content.CorrectIndex(start, false)
	end = s.content.CorrectIndex(end, true)
	if s.IsEmpty() {
		start, end = 0, 1
	}
	s.index = s.content.CorrectIndex(index, index > from)
	if start >= end {
		return true
	}

	formats = dedupe(formats)
	var blocks, inlines []format.Entry
	for _, e := range formats {
		if e.Formatter.IsBlock() {
			blocks = append(blocks, e)
		} else {
			inlines = append(inlines, e)
		}
	}

	var apply, unApply []action.Action
	if len(blocks) > 0 {
		length := s.Len()
		restore := make(map[string]any, len(blocks))
		for _, e := range blocks {
			restore[e.Formatter.Name] = s.blockValue(e.Formatter)
			s.format.Merge(e.Formatter, format.Range{Start: 0, End: length, Value: e.Value}, false)
		}
		apply = append(apply, action.NewRetain(0, nil), action.NewRetain(length, entriesToMap(blocks)))
		unApply = append(unApply, action.NewRetain(0, nil), action.NewRetain(length, restore))
	}

	if len(inlines) > 0 {
		segments, children := s.segments(start, end)
		for _, seg := range segments {
			for _, e := range inlines {
				for _, p := range s.pieces(e.Formatter, seg[0], seg[1]) {
					unApply = append(unApply,
						action.NewRetain(p.Start, nil),
						action.NewRetain(p.End, map[string]any{e.Formatter.Name: p.Value}),
					)
				}
			}
			for _, e := range inlines {
				s.format.Merge(e.Formatter, format.Range{Start: seg[0], End: seg[1], Value: e.Value}, false)
			}
			apply = append(apply, action.NewRetain(seg[0], nil), action.NewRetain(seg[1], entriesToMap(inlines)))
		}
		if len(apply) > 0 {
			s.emitFormat(apply, unApply)
			apply, unApply = nil, nil
		}
		for _, c := range children {
			for _, child := range c.slots.list {
				child.Retain(0)
				child.Retain(child.Len(), inlines...)
			}
		}
	}
	if len(apply) > 0 {
		s.emitFormat(apply, unApply)
	}
	return true
}

func (s *Slot) emitFormat(apply, unApply []action.Action) {
	s.marker.MarkAsDirtied(action.Operation{Apply: apply, UnApply: unApply})
}

func (s *Slot) blockValue(ft *format.Formatter) any {
	for _, r := range s.format.Get(ft) {
		if r.Start == 0 {
			return r.Value
		}
	}
	return nil
}

// segments splits [start, end) around block components that own slots.
func (s *Slot) segments(start, end int) ([][2]int, []*Component) {
	var segs [][2]int
	var blocks []*Component
	segStart := start
	pos := 0
	for _, it := range s.content.Items() {
		n := it.Len()
		if it.IsEmbed() && pos >= start && pos < end {
			c := it.Embedded()
			if c.Type() == content.TypeBlock && c.slots.Len() > 0 {
				if segStart < pos {
					segs = append(segs, [2]int{segStart, pos})
				}
				blocks = append(blocks, c)
				segStart = pos + 1
			}
		}
		pos += n
	}
	if segStart < end {
		segs = append(segs, [2]int{segStart, end})
	}
	return segs, blocks
}

// pieces tiles [start, end) with the current values of ft; gaps are nil.
func (s *Slot) pieces(ft *format.Formatter, start, end int) []format.Range {
	var out []format.Range
	cur := start
	for _, r := range s.format.Get(ft) {
		a, b := max(r.Start, start), min(r.End, end)
		if a >= b {
			continue
		}
		if cur < a {
			out = append(out, format.Range{Start: cur, End: a})
		}
		out = append(out, format.Range{Start: a, End: b, Value: r.Value})
		cur = b
	}
	if cur < end {
		out = append(out, format.Range{Start: cur, End: end})
	}
	return out
}

// ApplyFormat formats [start, end) with one formatter.
func (s *Slot) ApplyFormat(ft *format.Formatter, value any, start, end int) bool {
	s.Retain(start)
	return s.Retain(end, format.Entry{Formatter: ft, Value: value})
}

// Attribute returns the value of a, if set.
func (s *Slot) Attribute(a *Attribute) (any, bool) {
	for _, e := range s.attrs {
		if e.Attribute == a {
			return e.Value, true
		}
	}
	return nil, false
}

// HasAttribute reports whether a is set.
func (s *Slot) HasAttribute(a *Attribute) bool {
	_, ok := s.Attribute(a)
	return ok
}

// Attributes returns the attributes in the order they were set.
func (s *Slot) Attributes() []AttributeEntry {
	return slices.Clone(s.attrs)
}

// SetAttribute sets a slot attribute.
func (s *Slot) SetAttribute(a *Attribute, value any) bool {
	if s.IsReadOnly() {
		return false
	}
	old, had := s.Attribute(a)
	if had && format.Equal(old, value) {
		return true
	}
	s.putAttribute(a, value)
	undo := action.NewAttrDelete(a.Name)
	if had {
		undo = action.NewAttrSet(a.Name, old)
	}
	s.marker.MarkAsDirtied(action.Operation{
		Apply:   []action.Action{action.NewAttrSet(a.Name, value)},
		UnApply: []action.Action{undo},
	})
	return true
}

func (s *Slot) putAttribute(a *Attribute, value any) {
	for i, e := range s.attrs {
		if e.Attribute == a {
			s.attrs[i].Value = value
			return
		}
	}
	s.attrs = append(s.attrs, AttributeEntry{Attribute: a, Value: value})
}

// RemoveAttribute clears a slot attribute.
func (s *Slot) RemoveAttribute(a *Attribute) bool {
	if s.IsReadOnly() {
		return false
	}
	old, had := s.Attribute(a)
	if !had {
		return true
	}
	s.attrs = slices.DeleteFunc(s.attrs, func(e AttributeEntry) bool { return e.Attribute == a })
	s.marker.MarkAsDirtied(action.Operation{
		Apply:   []action.Action{action.NewAttrDelete(a.Name)},
		UnApply: []action.Action{action.NewAttrSet(a.Name, old)},
	})
	return true
}

// Prop returns a state property.
func (s *Slot) Prop(name string) (any, bool) {
	v, ok := s.state[name]
	return v, ok
}

// State returns a copy of the slot state.
func (s *Slot) State() map[string]any { return maps.Clone(s.state) }

// SetProp replaces one state property.
func (s *Slot) SetProp(name string, value any) bool {
	if s.IsReadOnly() {
		return false
	}
	op, ok := setProp(&s.state, name, value)
	if ok {
		s.marker.MarkAsDirtied(op)
	}
	return true
}

// DeleteProp removes one state property.
func (s *Slot) DeleteProp(name string) bool {
	if s.IsReadOnly() {
		return false
	}
	op, ok := deleteProp(s.state, name)
	if ok {
		s.marker.MarkAsDirtied(op)
	}
	return true
}

func setProp(state *map[string]any, name string, value any) (action.Operation, bool) {
	old, had := (*state)[name]
	if had && format.Equal(old, value) {
		return action.Operation{}, false
	}
	if *state == nil {
		*state = make(map[string]any)
	}
	(*state)[name] = value
	undo := action.NewPropDelete(name)
	if had {
		undo = action.NewPropSet(name, old)
	}
	return action.Operation{
		Apply:   []action.Action{action.NewPropSet(name, value)},
		UnApply: []action.Action{undo},
	}, true
}

func deleteProp(state map[string]any, name string) (action.Operation, bool) {
	old, had := state[name]
	if !had {
		return action.Operation{}, false
	}
	delete(state, name)
	return action.Operation{
		Apply:   []action.Action{action.NewPropDelete(name)},
		UnApply: []action.Action{action.NewPropSet(name, old)},
	}, true
}

// DeltaItem is a content item with its inline formats.
type DeltaItem struct {
	Item    Item
	Formats []format.Entry
}

// ToDelta splits [start, end) into items of uniform inline formatting.
func (s *Slot) ToDelta(start, end int) []DeltaItem {
	start = s.content.CorrectIndex(start, false)
	end = s.content.CorrectIndex(end, true)
	if s.IsEmpty() {
		return nil
	}
	grid := s.format.Grid()
	var out []DeltaItem
	pos := start
	for _, it := range s.content.Slice(start, end) {
		n := it.Len()
		if it.IsEmbed() {
			out = append(out, DeltaItem{Item: it, Formats: inlineEntries(s.format.FormatsAt(pos))})
			pos += n
			continue
		}
		runes := []rune(it.Text())
		from := 0
		for _, g := range grid {
			if g <= pos+from || g >= pos+n {
				continue
			}
			out = append(out, DeltaItem{
				Item:    Text(string(runes[from : g-pos])),
				Formats: inlineEntries(s.format.FormatsAt(pos + from)),
			})
			from = g - pos
		}
		out = append(out, DeltaItem{
			Item:    Text(string(runes[from:])),
			Formats: inlineEntries(s.format.FormatsAt(pos + from)),
		})
		pos += n
	}
	return out
}

// InsertDelta inserts each delta item at the cursor. It stops and returns
// false at the first rejected item.
func (s *Slot) InsertDelta(delta []DeltaItem) bool {
	for _, d := range delta {
		if !s.Insert(d.Item, d.Formats...) {
			return false
		}
	}
	return true
}

// Cut moves [start, end) into a new slot with the same schema and state.
func (s *Slot) Cut(start, end int) *Slot {
	target, _ := s.CutTo(NewSlot(s.schema, s.state), start, end)
	return target
}

// CutTo moves [start, end) to the cursor of target and returns target.
// Components keep their identity. When target cannot take every item of
// the range nothing moves and the result is false.
func (s *Slot) CutTo(target *Slot, start, end int) (*Slot, bool) {
	if s.IsReadOnly() || target.IsReadOnly() {
		return target, false
	}
	start = s.content.CorrectIndex(start, false)
	end = s.content.CorrectIndex(end, true)
	if start >= end {
		return target, true
	}
	delta := s.ToDelta(start, end)
	for _, d := range delta {
		if !target.Accepts(itemType(d.Item)) {
			return target, false
		}
		if d.Item.IsEmbed() && d.Item.Embedded().isAncestorOf(target) {
			return target, false
		}
	}
	s.Retain(end)
	s.Delete(end - start)
	return target, target.InsertDelta(delta)
}

// ToJSON returns the slot literal.
func (s *Slot) ToJSON() action.SlotLiteral {
	lit := action.SlotLiteral{
		Schema: slices.Clone(s.schema),
		State:  maps.Clone(s.state),
	}
	for _, it := range s.content.Items() {
		lit.Content = append(lit.Content, itemLiteral(it))
	}
	for _, fi := range s.format.ToArray() {
		if lit.Formats == nil {
			lit.Formats = make(map[string][]action.FormatRange)
		}
		lit.Formats[fi.Formatter.Name] = append(lit.Formats[fi.Formatter.Name], action.FormatRange{
			Start: fi.Start, End: fi.End, Value: fi.Value,
		})
	}
	for _, e := range s.attrs {
		if lit.Attributes == nil {
			lit.Attributes = make(map[string]any)
		}
		lit.Attributes[e.Attribute.Name] = e.Value
	}
	return lit
}

// ToString returns the plain text of the slot and its descendants.
func (s *Slot) ToString() string {
	var sb strings.Builder
	for _, it := range s.content.Items() {
		if it.IsEmbed() {
			sb.WriteString(it.Embedded().ToString())
			continue
		}
		sb.WriteString(strings.ReplaceAll(it.Text(), Placeholder, ""))
	}
	return sb.String()
}
