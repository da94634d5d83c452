// Package doc is the facade of the rich-text document engine.
//
// A Document owns a tree of slots and components (package model), the
// registry that resolves names in serialized literals and actions, and a
// Selection over the tree. Every mutation of the tree emits an
// action.Operation; the Document groups the operations of one command into
// a Batch and hands finished batches to its subscribers, such as a
// history.History.
//
// # Transactions
//
// Transact runs a function and delivers every operation it caused as one
// batch tagged with the given origin when the outermost call returns:
//
//	err := d.Transact(doc.Local, func() error {
//		body.Retain(0)
//		body.Insert(model.Text("hello"))
//		return nil
//	})
//
// Operations emitted outside a transaction are held until Flush, the
// equivalent of the next scheduler tick in an interactive editor.
//
// # Rendering
//
// A renderer reads the tree through Slot.CreateFormatTree and friends, then
// calls Rendered. Callbacks queued with AfterRender run at that point, which
// is how selection restoration is deferred until the new tree is on screen.
package doc
