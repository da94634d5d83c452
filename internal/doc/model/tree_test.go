package model

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dshills/richdoc/internal/doc/action"
	"github.com/dshills/richdoc/internal/doc/content"
)

// nestedTree builds root > body slot > "ab" paragraph("xy") "cd".
func nestedTree() (root *Component, body *Slot, para *Component, inner *Slot) {
	root, body = newTree(anything)
	para = paragraph("xy")
	body.Insert(Text("ab"))
	body.Insert(Ref(para))
	body.Insert(Text("cd"))
	return root, body, para, para.Slots().First()
}

func renderAll(c *Component) {
	c.Marker().Rendered()
	for _, s := range c.Slots().ToArray() {
		s.Marker().Rendered()
		for _, child := range s.Components() {
			renderAll(child)
		}
	}
}

func TestPropagationPrefixesPath(t *testing.T) {
	root, _, para, inner := nestedTree()
	renderAll(root)

	var order []string
	inner.Marker().OnChange(func(action.Operation) { order = append(order, "inner") })
	para.Marker().OnChange(func(action.Operation) { order = append(order, "para") })
	rec := record(root.Marker())

	inner.Retain(2)
	inner.Insert(Text("z"))

	op := rec.last(t)
	if diff := cmp.Diff([]int{0, 2, 0}, op.Path); diff != "" {
		t.Errorf("path mismatch (-want +got):\n%s", diff)
	}
	if !op.TargetsSlot() {
		t.Error("operation should target a slot")
	}
	if diff := cmp.Diff([]string{"inner", "para"}, order); diff != "" {
		t.Errorf("emission order mismatch (-want +got):\n%s", diff)
	}

	if !inner.Marker().Dirty() {
		t.Error("inner slot should be dirty")
	}
	if para.Marker().Dirty() || !para.Marker().Changed() {
		t.Errorf("para dirty=%v changed=%v, want false/true", para.Marker().Dirty(), para.Marker().Changed())
	}
	if !root.Marker().Changed() {
		t.Error("root should be changed")
	}

	root.Marker().Reset()
	if !root.Marker().Dirty() {
		t.Error("Reset should force dirty")
	}
	if !root.Marker().OutputChanged() {
		t.Error("output flags are independent of Rendered")
	}
	root.Marker().OutputRendered()
	if root.Marker().OutputChanged() || root.Marker().OutputDirty() {
		t.Error("OutputRendered should clear output flags")
	}
}

func TestComponentRemovedNotice(t *testing.T) {
	root, body, para, inner := nestedTree()
	mention := NewComponent(mentionDef, nil)
	inner.Insert(Ref(mention))

	var removed []*Component
	root.Marker().OnComponentRemoved(func(c *Component) { removed = append(removed, c) })

	body.RemoveComponent(para)
	if len(removed) != 0 {
		t.Fatalf("notices delivered before flush: %v", ids(removed))
	}
	root.Marker().FlushRemoved()
	if diff := cmp.Diff([]string{para.ID(), mention.ID()}, ids(removed)); diff != "" {
		t.Errorf("removed mismatch (-want +got):\n%s", diff)
	}
	if para.Parent() != nil {
		t.Error("removed component keeps its parent")
	}

	root.Marker().FlushRemoved()
	if len(removed) != 2 {
		t.Errorf("second flush delivered again: %v", ids(removed))
	}
}

// movedMention builds mention+"ab"+para+"cd" in body and moves the mention
// and "ab" into the paragraph.
func movedMention(t *testing.T) (root *Component, body *Slot, para, mention *Component, removed *[]*Component) {
	t.Helper()
	root, body, para, inner := nestedTree()
	mention = NewComponent(mentionDef, nil)
	body.Retain(0)
	body.Insert(Ref(mention))

	removed = &[]*Component{}
	root.Marker().OnComponentRemoved(func(c *Component) { *removed = append(*removed, c) })

	inner.Retain(0)
	if _, ok := body.CutTo(inner, 0, 3); !ok {
		t.Fatal("cut rejected")
	}
	if mention.Parent() != inner {
		t.Fatalf("mention parent = %v, want paragraph slot", mention.Parent())
	}
	return root, body, para, mention, removed
}

func TestMovedComponentIsNotRemoved(t *testing.T) {
	root, body, _, _, removed := movedMention(t)
	root.Marker().FlushRemoved()
	if len(*removed) != 0 {
		t.Errorf("moved component reported removed: %v", ids(*removed))
	}
	if got := body.ToString(); got != "abxycd" {
		t.Errorf("body text = %q, want %q", got, "abxycd")
	}
}

func TestRemovedNoticesAreUnique(t *testing.T) {
	root, body, para, mention, removed := movedMention(t)
	// The mention is queued by the cut and again as a descendant of para.
	body.RemoveComponent(para)
	root.Marker().FlushRemoved()
	if diff := cmp.Diff([]string{mention.ID(), para.ID()}, ids(*removed)); diff != "" {
		t.Errorf("removed mismatch (-want +got):\n%s", diff)
	}
}

func ids(cs []*Component) []string {
	var out []string
	for _, c := range cs {
		out = append(out, c.ID())
	}
	return out
}

func TestPaths(t *testing.T) {
	root, body, para, inner := nestedTree()

	if diff := cmp.Diff([]int{0}, SlotPath(body)); diff != "" {
		t.Errorf("body path mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{0, 2}, ComponentPath(para)); diff != "" {
		t.Errorf("para path mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{0, 2, 0}, SlotPath(inner)); diff != "" {
		t.Errorf("inner path mismatch (-want +got):\n%s", diff)
	}

	got, err := FindSlot(root, []int{0, 2, 0})
	if err != nil || got != inner {
		t.Errorf("FindSlot = %v, %v", got, err)
	}
	c, err := FindComponent(root, []int{0, 2})
	if err != nil || c != para {
		t.Errorf("FindComponent = %v, %v", c, err)
	}

	tests := []struct {
		name string
		path []int
	}{
		{"missing slot", []int{3}},
		{"offset not a component", []int{0, 0, 0}},
		{"even path for slot", []int{0, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FindSlot(root, tt.path)
			if !errors.Is(err, ErrStalePath) {
				t.Fatalf("err = %v, want ErrStalePath", err)
			}
			var pe *PathError
			if !errors.As(err, &pe) {
				t.Fatalf("err %T is not a *PathError", err)
			}
		})
	}
}

func TestApplyByPath(t *testing.T) {
	root, _, _, inner := nestedTree()
	reg := newRegistry()
	rec := record(root.Marker())

	before := root.ToJSON()
	inner.Retain(1)
	inner.Delete(1)
	op := rec.last(t)

	if err := Apply(root, op.Path, op.UnApply, reg); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if diff := cmp.Diff(before, root.ToJSON(), literalOpts); diff != "" {
		t.Errorf("tree mismatch (-want +got):\n%s", diff)
	}

	err := Apply(root, []int{0, 9, 0}, op.UnApply, reg)
	if !errors.Is(err, ErrStalePath) {
		t.Errorf("err = %v, want ErrStalePath", err)
	}
}

func TestRegistryRoundTrip(t *testing.T) {
	root, body, _, inner := nestedTree()
	reg := newRegistry()
	body.ApplyFormat(bold, true, 0, 2)
	inner.SetAttribute(textAlign, "center")
	root.SetProp("title", "doc")

	lit := root.ToJSON()
	copyRoot, err := reg.CreateComponent(lit)
	if err != nil {
		t.Fatalf("CreateComponent: %v", err)
	}
	if diff := cmp.Diff(lit, copyRoot.ToJSON(), literalOpts); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
	if copyRoot.ID() == root.ID() {
		t.Error("round trip reused an identity")
	}

	lit.Slots[0].Content = append(lit.Slots[0].Content, action.ComponentContent(action.ComponentLiteral{Name: "table"}))
	if _, err := reg.CreateComponent(lit); !errors.Is(err, ErrMissingFactory) {
		t.Errorf("err = %v, want ErrMissingFactory", err)
	}

	bad := action.SlotLiteral{
		Schema:  textOnly,
		Content: []action.ContentLiteral{action.TextContent("x")},
		Formats: map[string][]action.FormatRange{"strike": {{Start: 0, End: 1, Value: true}}},
	}
	if _, err := reg.CreateSlot(bad); !errors.Is(err, ErrMissingFormatter) {
		t.Errorf("err = %v, want ErrMissingFormatter", err)
	}
}

func TestCreateSlotClampsFormats(t *testing.T) {
	reg := newRegistry()
	s, err := reg.CreateSlot(action.SlotLiteral{
		Schema:  []content.Type{content.TypeText},
		Content: []action.ContentLiteral{action.TextContent("abc")},
		Formats: map[string][]action.FormatRange{
			"bold":  {{Start: 1, End: 10, Value: true}},
			"align": {{Start: 0, End: 1, Value: "right"}},
		},
	})
	if err != nil {
		t.Fatalf("CreateSlot: %v", err)
	}
	want := map[string][]action.FormatRange{
		"bold":  {{Start: 1, End: 3, Value: true}},
		"align": {{Start: 0, End: 3, Value: "right"}},
	}
	if diff := cmp.Diff(want, s.ToJSON().Formats); diff != "" {
		t.Errorf("formats mismatch (-want +got):\n%s", diff)
	}
}

func TestCreateSlotChecksTextSchema(t *testing.T) {
	reg := newRegistry()
	blocks := []content.Type{content.TypeBlock}

	tests := []struct {
		name    string
		content []action.ContentLiteral
		wantErr bool
	}{
		{"text", []action.ContentLiteral{action.TextContent("abc")}, true},
		{"placeholder", []action.ContentLiteral{action.TextContent(Placeholder)}, false},
		{"block", []action.ContentLiteral{action.ComponentContent(action.ComponentLiteral{Name: "paragraph"})}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := reg.CreateSlot(action.SlotLiteral{Schema: blocks, Content: tt.content})
			if tt.wantErr != errors.Is(err, ErrSchemaMismatch) {
				t.Errorf("err = %v, want ErrSchemaMismatch %v", err, tt.wantErr)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("CreateSlot: %v", err)
			}
		})
	}
}

func TestSlotsInsertDelete(t *testing.T) {
	root, body := newTree(anything)
	reg := newRegistry()
	rec := record(root.Marker())
	body.Insert(Text("first"))

	second := NewSlot(anything, nil)
	second.Insert(Text("second"))
	root.Slots().Push(second)

	if root.Slots().Len() != 2 || root.Slots().Last() != second {
		t.Fatalf("Push did not append")
	}
	op := rec.last(t)
	if len(op.Path) != 0 {
		t.Errorf("slot list operation path = %v, want root", op.Path)
	}

	before := root.ToJSON()
	root.Slots().Remove(body)
	op = rec.last(t)
	if root.Slots().First() != second || body.Parent() != nil {
		t.Fatal("Remove did not detach")
	}
	if err := root.ApplyActions(op.UnApply, reg); err != nil {
		t.Fatalf("unApply: %v", err)
	}
	if diff := cmp.Diff(before, root.ToJSON(), literalOpts); diff != "" {
		t.Errorf("slot list mismatch (-want +got):\n%s", diff)
	}

	third := NewSlot(textOnly, nil)
	root.Slots().InsertBefore(third, second)
	if got := root.Slots().IndexOf(third); got != 1 {
		t.Errorf("InsertBefore index = %d, want 1", got)
	}
	if !root.Slots().Insert(NewSlot(anything, nil)) || root.Slots().Len() != 4 {
		t.Errorf("Insert at cursor: Len = %d, want 4", root.Slots().Len())
	}
}

func TestComponentToString(t *testing.T) {
	root, _, _, _ := nestedTree()
	if got := root.ToString(); got != "abxycd" {
		t.Errorf("ToString() = %q, want %q", got, "abxycd")
	}
}
