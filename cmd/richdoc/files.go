package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tidwall/pretty"

	"github.com/dshills/richdoc/internal/doc"
	"github.com/dshills/richdoc/internal/doc/action"
)

func readDocument(path string) (action.ComponentLiteral, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return action.ComponentLiteral{}, fmt.Errorf("reading document: %w", err)
	}
	lit, err := action.ParseComponentLiteral(data)
	if err != nil {
		return action.ComponentLiteral{}, fmt.Errorf("parsing document %s: %w", path, err)
	}
	return lit, nil
}

func readOperations(path string) ([]action.Operation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading operations: %w", err)
	}
	ops, err := action.ParseOperations(data)
	if err != nil {
		return nil, fmt.Errorf("parsing operations %s: %w", path, err)
	}
	return ops, nil
}

// open builds a document from a literal file, registering every name the
// document and ops use.
func (e *env) open(docPath string, ops []action.Operation) (*doc.Document, error) {
	lit, err := readDocument(docPath)
	if err != nil {
		return nil, err
	}
	reg := buildRegistry(e.cfg.Schema, lit, ops)
	opts := []doc.Option{doc.WithLogger(e.logger)}
	if e.cfg.Document.ReadOnly {
		opts = append(opts, doc.WithReadOnly())
	}
	d, err := doc.FromLiteral(reg, lit, opts...)
	if err != nil {
		return nil, fmt.Errorf("building document: %w", err)
	}
	return d, nil
}

// marshalPretty encodes v as indented JSON.
func marshalPretty(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return pretty.Pretty(data), nil
}
