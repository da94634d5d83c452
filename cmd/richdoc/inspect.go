package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/dshills/richdoc/internal/doc/format"
	"github.com/dshills/richdoc/internal/doc/model"
)

// InspectCmd prints a document's structure.
type InspectCmd struct {
	Doc  string `arg:"" help:"Document literal (JSON)" type:"existingfile"`
	JSON bool   `name:"json" help:"Print the normalized literal instead of the outline"`
}

// Run executes the inspect command.
func (c *InspectCmd) Run(e *env) error {
	d, err := e.open(c.Doc, nil)
	if err != nil {
		return err
	}
	if c.JSON {
		data, err := marshalPretty(d.ToJSON())
		if err != nil {
			return err
		}
		_, err = e.out.Write(data)
		return err
	}
	writeComponent(e.out, d.Root(), 0)
	return nil
}

func writeComponent(w io.Writer, c *model.Component, depth int) {
	indent := strings.Repeat("  ", depth)
	fmt.Fprintf(w, "%s%s %s %v\n", indent, c.Name(), c.Type(), model.ComponentPath(c))
	for _, s := range c.Slots().ToArray() {
		writeSlot(w, s, depth+1)
	}
}

func writeSlot(w io.Writer, s *model.Slot, depth int) {
	indent := strings.Repeat("  ", depth)
	schema := make([]string, 0, len(s.Schema()))
	for _, t := range s.Schema() {
		schema = append(schema, t.String())
	}
	fmt.Fprintf(w, "%sslot %v [%s] len=%d %q\n", indent, model.SlotPath(s), strings.Join(schema, ","), s.Len(), s.ToString())
	writeTree(w, s.CreateFormatTree(), depth+1)
	for _, c := range s.Components() {
		writeComponent(w, c, depth+1)
	}
}

func writeTree(w io.Writer, t *format.Tree, depth int) {
	if t == nil {
		return
	}
	if len(t.Formats) > 0 {
		parts := make([]string, 0, len(t.Formats))
		for _, it := range t.Formats {
			parts = append(parts, fmt.Sprintf("%s=%v", it.Formatter.Name, it.Value))
		}
		fmt.Fprintf(w, "%s[%d,%d) %s\n", strings.Repeat("  ", depth), t.Start, t.End, strings.Join(parts, " "))
		depth++
	}
	for _, child := range t.Children {
		writeTree(w, child, depth)
	}
}
