package history

import "errors"

// Errors returned by history operations.
var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
	ErrDestroyed     = errors.New("history destroyed")
	ErrInTransaction = errors.New("history used inside a transaction")
)
