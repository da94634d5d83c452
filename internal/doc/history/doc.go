// Package history provides undo and redo over document batches.
//
// A History subscribes to a doc.Document and records every finished batch
// of Local origin as one entry, together with the selection paths before
// and after it. Batches from remote peers or from history replays are not
// recorded.
//
// # Undo and Redo
//
// Undo replays the inverse actions of an entry's operations, last first,
// and restores the selection it had before the command. Redo replays the
// forward actions in order and restores the selection after it. Both run in
// a transaction of origin doc.History.
//
//	h := history.New(d, history.WithMaxEntries(500))
//	// ... edit ...
//	if err := h.Undo(); errors.Is(err, history.ErrNothingToUndo) {
//		// nothing recorded
//	}
//
// # Grouping
//
// Batches recorded between BeginGroup and EndGroup form a single entry:
//
//	defer h.GroupScope("paste table").End()
//
// # Checkpoints
//
// CreateCheckpoint remembers the undo depth; UndoToCheckpoint unwinds back
// to it.
package history
