package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tidwall/gjson"

	"github.com/dshills/richdoc/internal/config"
	"github.com/dshills/richdoc/internal/doc/action"
	"github.com/dshills/richdoc/internal/doc/content"
	"github.com/dshills/richdoc/internal/logging"
)

const testDoc = `{
  "name": "page",
  "slots": [{
    "schema": ["text", "block"],
    "content": [{
      "name": "paragraph",
      "slots": [{
        "schema": ["text", "inline"],
        "content": ["hello", {"name": "mention", "state": {"user": "ada"}}],
        "formats": {"bold": [{"start": 0, "end": 5, "value": true}]}
      }]
    }]
  }]
}`

const testOps = `[
  {"path": [0, 0, 0],
   "apply": [{"type": "retain", "index": 5}, {"type": "insert", "content": " world"}],
   "unApply": [{"type": "retain", "index": 11}, {"type": "delete", "count": 6}]},
  {"path": [0, 0, 0],
   "apply": [{"type": "retain", "index": 11}, {"type": "delete", "count": 6}],
   "unApply": [{"type": "retain", "index": 5}, {"type": "insert", "content": " world"}]}
]`

func writeFile(t *testing.T, name, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func testEnv(out *bytes.Buffer) *env {
	return &env{cfg: config.Default(), logger: logging.Discard(), out: out}
}

func TestBuildRegistryDiscovers(t *testing.T) {
	lit, err := action.ParseComponentLiteral([]byte(testDoc))
	if err != nil {
		t.Fatalf("ParseComponentLiteral: %v", err)
	}
	schema := config.SchemaConfig{
		Formatters: []config.FormatterConfig{{Name: "align", Kind: "block"}},
	}
	reg := buildRegistry(schema, lit, nil)

	tests := []struct {
		name string
		want content.Type
	}{
		{"page", content.TypeBlock},
		{"paragraph", content.TypeBlock},
		{"mention", content.TypeInline},
	}
	for _, tt := range tests {
		def, ok := reg.Component(tt.name)
		if !ok {
			t.Errorf("component %q not registered", tt.name)
			continue
		}
		if def.Type != tt.want {
			t.Errorf("component %q type = %v, want %v", tt.name, def.Type, tt.want)
		}
	}
	if _, ok := reg.Formatter("bold"); !ok {
		t.Error("formatter bold not registered")
	}
	if f, ok := reg.Formatter("align"); !ok || !f.IsBlock() {
		t.Error("declared block formatter align missing or inline")
	}
}

func TestInspect(t *testing.T) {
	var out bytes.Buffer
	cmd := &InspectCmd{Doc: writeFile(t, "doc.json", testDoc)}
	if err := cmd.Run(testEnv(&out)); err != nil {
		t.Fatalf("Run: %v", err)
	}
	for _, want := range []string{"page block []", "paragraph block [0 0]", "bold=true", "mention inline [0 0 0 5]"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}

func TestReplayWithUndo(t *testing.T) {
	var out bytes.Buffer
	cmd := &ReplayCmd{
		Doc:  writeFile(t, "doc.json", testDoc),
		Ops:  writeFile(t, "ops.json", testOps),
		Undo: 1,
	}
	if err := cmd.Run(testEnv(&out)); err != nil {
		t.Fatalf("Run: %v", err)
	}
	got := gjson.GetBytes(out.Bytes(), "slots.0.content.0.slots.0.content.0").String()
	if got != "hello world" {
		t.Errorf("text after undo = %q, want %q", got, "hello world")
	}
}

func TestCheck(t *testing.T) {
	var out bytes.Buffer
	cmd := &CheckCmd{
		Doc: writeFile(t, "doc.json", testDoc),
		Ops: writeFile(t, "ops.json", testOps),
	}
	if err := cmd.Run(testEnv(&out)); err != nil {
		t.Fatalf("Run: %v\n%s", err, out.String())
	}
	if !strings.Contains(out.String(), "2 operations invert cleanly") {
		t.Errorf("unexpected output: %q", out.String())
	}
}

func TestCheckBrokenInverse(t *testing.T) {
	broken := `[{"path": [0, 0, 0],
	  "apply": [{"type": "retain", "index": 5}, {"type": "insert", "content": "!"}],
	  "unApply": [{"type": "retain", "index": 0}]}]`
	var out bytes.Buffer
	cmd := &CheckCmd{
		Doc: writeFile(t, "doc.json", testDoc),
		Ops: writeFile(t, "ops.json", broken),
	}
	if err := cmd.Run(testEnv(&out)); err == nil {
		t.Fatal("Run succeeded with an inverse that does not restore the document")
	}
}
