package action

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dshills/richdoc/internal/doc/content"
)

func TestTypeString(t *testing.T) {
	tests := []struct {
		typ  Type
		want string
	}{
		{Retain, "retain"},
		{Insert, "insert"},
		{Delete, "delete"},
		{PropSet, "propSet"},
		{PropDelete, "propDelete"},
		{AttrSet, "attrSet"},
		{AttrDelete, "attrDelete"},
		{InsertSlot, "insertSlot"},
		{Type(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.typ.String(); got != tt.want {
			t.Errorf("Type(%d).String() = %q, want %q", tt.typ, got, tt.want)
		}
		if tt.want == "unknown" {
			continue
		}
		if back, ok := ParseType(tt.want); !ok || back != tt.typ {
			t.Errorf("ParseType(%q) = %v, %v", tt.want, back, ok)
		}
	}
}

func TestOperationInvert(t *testing.T) {
	op := Operation{
		Path:    []int{0, 2, 1},
		Apply:   []Action{NewRetain(3, nil), NewInsert(TextContent("ab"), nil)},
		UnApply: []Action{NewRetain(5, nil), NewDelete(2)},
	}
	inv := op.Invert()
	if diff := cmp.Diff(op.UnApply, inv.Apply); diff != "" {
		t.Errorf("apply mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(op.Apply, inv.UnApply); diff != "" {
		t.Errorf("unApply mismatch (-want +got):\n%s", diff)
	}
	if !op.TargetsSlot() {
		t.Error("odd path should target a slot")
	}
}

func TestOperationPrefixed(t *testing.T) {
	op := Operation{Path: []int{4}}
	got := op.Prefixed(1).Prefixed(0)
	if diff := cmp.Diff([]int{0, 1, 4}, got.Path); diff != "" {
		t.Errorf("path mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{4}, op.Path); diff != "" {
		t.Errorf("original path modified (-want +got):\n%s", diff)
	}
}

func TestActionWireFormat(t *testing.T) {
	tests := []struct {
		name   string
		action Action
		want   string
	}{
		{"retain", NewRetain(4, nil), `{"type":"retain","index":4}`},
		{"retain formats", NewRetain(4, map[string]any{"bold": true}), `{"type":"retain","index":4,"formats":{"bold":true}}`},
		{"insert", NewInsert(TextContent("hi"), nil), `{"type":"insert","content":"hi"}`},
		{"delete", NewDelete(3), `{"type":"delete","count":3}`},
		{"attrSet", NewAttrSet("align", "center"), `{"type":"attrSet","name":"align","value":"center"}`},
		{"propDelete", NewPropDelete("checked"), `{"type":"propDelete","name":"checked"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := json.Marshal(tt.action)
			if err != nil {
				t.Fatalf("Marshal failed: %v", err)
			}
			if string(b) != tt.want {
				t.Errorf("got %s, want %s", b, tt.want)
			}
		})
	}
}

func TestParseOperation(t *testing.T) {
	raw := `{
		"path": [0],
		"apply": [
			{"type":"retain","index":1},
			{"type":"insert","content":{"name":"image","state":{"src":"a.png"}},"formats":{"bold":null}}
		],
		"unApply": [
			{"type":"retain","index":2},
			{"type":"delete","count":1}
		]
	}`
	op, err := ParseOperation([]byte(raw))
	if err != nil {
		t.Fatalf("ParseOperation failed: %v", err)
	}
	if diff := cmp.Diff([]int{0}, op.Path); diff != "" {
		t.Errorf("path mismatch (-want +got):\n%s", diff)
	}
	if len(op.Apply) != 2 || len(op.UnApply) != 2 {
		t.Fatalf("got %d/%d actions", len(op.Apply), len(op.UnApply))
	}
	ins := op.Apply[1]
	if !ins.Content.IsComponent() || ins.Content.Component.Name != "image" {
		t.Errorf("insert content = %+v", ins.Content)
	}
	if v, ok := ins.Formats["bold"]; !ok || v != nil {
		t.Errorf("formats = %v, want bold:nil", ins.Formats)
	}
	if op.UnApply[1].Count != 1 {
		t.Errorf("delete count = %d", op.UnApply[1].Count)
	}
}

func TestParseErrors(t *testing.T) {
	if _, err := ParseAction([]byte(`{`)); !errors.Is(err, ErrInvalidJSON) {
		t.Errorf("expected ErrInvalidJSON, got %v", err)
	}
	if _, err := ParseAction([]byte(`{"type":"jump"}`)); !errors.Is(err, ErrUnknownAction) {
		t.Errorf("expected ErrUnknownAction, got %v", err)
	}
	if _, err := ParseActions([]byte(`[{"type":"insert","content":42}]`)); !errors.Is(err, ErrInvalidLiteral) {
		t.Errorf("expected ErrInvalidLiteral, got %v", err)
	}
}

func TestSlotLiteralJSON(t *testing.T) {
	lit := SlotLiteral{
		Schema: []content.Type{content.TypeText, content.TypeInline},
		Content: []ContentLiteral{
			TextContent("ab"),
			ComponentContent(ComponentLiteral{Name: "mention", State: map[string]any{"user": "ada"}}),
		},
		Formats: map[string][]FormatRange{"bold": {{Start: 0, End: 2, Value: true}}},
	}
	b, err := json.Marshal(lit)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	var back SlotLiteral
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if diff := cmp.Diff(lit, back); diff != "" {
		t.Errorf("literal mismatch (-want +got):\n%s", diff)
	}
}
