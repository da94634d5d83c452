package model

import (
	"errors"
	"fmt"
)

// Errors returned by the document tree.
var (
	// ErrStalePath indicates a path does not address a node in the tree.
	ErrStalePath = errors.New("stale path")

	// ErrMissingFactory indicates a component name with no registered definition.
	ErrMissingFactory = errors.New("missing component factory")

	// ErrMissingFormatter indicates a formatter name that is not registered.
	ErrMissingFormatter = errors.New("missing formatter")

	// ErrMissingAttribute indicates an attribute name that is not registered.
	ErrMissingAttribute = errors.New("missing attribute")

	// ErrSchemaMismatch indicates content that a slot schema does not permit.
	ErrSchemaMismatch = errors.New("content not permitted by slot schema")

	// ErrInvalidAction indicates an action that cannot target the node kind.
	ErrInvalidAction = errors.New("invalid action for node")

	// ErrRejected indicates the tree refused a replayed action.
	ErrRejected = errors.New("action rejected")
)

// PathError reports where a path lookup stopped.
type PathError struct {
	Path  []int
	Depth int
}

// Error implements the error interface.
func (e *PathError) Error() string {
	return fmt.Sprintf("stale path %v at depth %d", e.Path, e.Depth)
}

// Unwrap returns ErrStalePath.
func (e *PathError) Unwrap() error {
	return ErrStalePath
}
