package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/dshills/richdoc/internal/doc"
	"github.com/dshills/richdoc/internal/doc/history"
)

// ReplayCmd applies an operation log.
type ReplayCmd struct {
	Doc  string `arg:"" help:"Document literal (JSON)" type:"existingfile"`
	Ops  string `arg:"" help:"Operation log (JSON array)" type:"existingfile"`
	Undo int    `name:"undo" help:"Undo this many operations after replaying"`
	Out  string `name:"out" short:"o" help:"Write the resulting literal to a file instead of stdout" type:"path"`
}

// Run executes the replay command.
func (c *ReplayCmd) Run(e *env) error {
	ops, err := readOperations(c.Ops)
	if err != nil {
		return err
	}
	d, err := e.open(c.Doc, ops)
	if err != nil {
		return err
	}

	hopts := []history.Option{history.WithMaxEntries(e.cfg.History.MaxEntries)}
	if e.cfg.History.DeferredSelection {
		hopts = append(hopts, history.WithDeferredSelection())
	}
	h := history.New(d, hopts...)
	defer h.Destroy()

	for i, op := range ops {
		if err := d.Apply(doc.Local, op); err != nil {
			return fmt.Errorf("operation %d: %w", i, err)
		}
		d.Flush()
	}
	for i := 0; i < c.Undo; i++ {
		if err := h.Undo(); err != nil {
			return fmt.Errorf("undo %d: %w", i+1, err)
		}
	}
	d.Rendered()
	e.logger.Info("replayed",
		slog.Int("operations", len(ops)),
		slog.Int("undone", c.Undo),
		slog.Int("undo_depth", h.UndoCount()),
	)

	data, err := marshalPretty(d.ToJSON())
	if err != nil {
		return err
	}
	if c.Out != "" {
		return os.WriteFile(c.Out, data, 0o644)
	}
	_, err = e.out.Write(data)
	return err
}

// CheckCmd verifies inverse correctness over an operation log.
type CheckCmd struct {
	Doc string `arg:"" help:"Document literal (JSON)" type:"existingfile"`
	Ops string `arg:"" help:"Operation log (JSON array)" type:"existingfile"`
}

// Run executes the check command.
func (c *CheckCmd) Run(e *env) error {
	ops, err := readOperations(c.Ops)
	if err != nil {
		return err
	}
	d, err := e.open(c.Doc, ops)
	if err != nil {
		return err
	}

	failed := 0
	for i, op := range ops {
		before, err := json.Marshal(d.ToJSON())
		if err != nil {
			return err
		}
		if err := d.Apply(doc.Local, op); err != nil {
			return fmt.Errorf("operation %d: %w", i, err)
		}
		if err := d.Revert(doc.History, op); err != nil {
			return fmt.Errorf("operation %d inverse: %w", i, err)
		}
		after, err := json.Marshal(d.ToJSON())
		if err != nil {
			return err
		}
		if !bytes.Equal(before, after) {
			failed++
			fmt.Fprintf(e.out, "operation %d at %v: inverse does not restore the document\n", i, op.Path)
			e.logger.Debug("inverse mismatch", slog.String("before", string(before)), slog.String("after", string(after)))
		}
		if err := d.Apply(doc.Local, op); err != nil {
			return fmt.Errorf("operation %d reapply: %w", i, err)
		}
	}
	d.Flush()

	if failed > 0 {
		return fmt.Errorf("%d of %d operations failed the inverse check", failed, len(ops))
	}
	fmt.Fprintf(e.out, "%d operations invert cleanly\n", len(ops))
	return nil
}
