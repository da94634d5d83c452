package doc

import (
	"github.com/dshills/richdoc/internal/doc/action"
	"github.com/dshills/richdoc/internal/doc/model"
	"github.com/dshills/richdoc/internal/doc/selection"
)

// Origin classifies who caused a batch.
type Origin int

const (
	// Local batches come from the user's own commands.
	Local Origin = iota
	// Remote batches replay operations received from elsewhere.
	Remote
	// History batches are undo and redo replays.
	History
)

// String returns the origin name.
func (o Origin) String() string {
	switch o {
	case Local:
		return "local"
	case Remote:
		return "remote"
	case History:
		return "history"
	default:
		return "unknown"
	}
}

// Batch is the set of operations emitted by one command.
type Batch struct {
	Origin     Origin
	Operations []action.Operation

	// Before and After are the selection paths around the command.
	Before selection.Paths
	After  selection.Paths

	// Removed lists the components detached by the command.
	Removed []*model.Component
}

// IsEmpty reports whether the batch holds no operations.
func (b Batch) IsEmpty() bool { return len(b.Operations) == 0 }
