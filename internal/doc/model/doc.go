// Package model implements the mutable document tree.
//
// The tree alternates two kinds of node. A Slot owns a Content (text runs and
// component references), a Format overlay, slot attributes and a write
// cursor. A Component owns an ordered Slots collection and a state map. Each
// node has at most one parent; inserting a node that already has a parent
// detaches it first.
//
// # Operations
//
// Every mutation is described by an action.Operation whose UnApply list
// exactly reverts its Apply list. The node's ChangeMarker marks itself dirty
// and passes the operation upwards; each ancestor prepends the child's index
// to the path and marks itself changed. The root component's listeners thus
// receive operations addressed from the root:
//
//	root.Marker().OnChange(func(op action.Operation) { ... })
//	slot.Retain(0)
//	slot.Insert(model.Text("hello"))
//
// # Rejections
//
// Mutations that violate the slot schema or run against a read-only tree
// return false and have no effect. Malformed paths and unknown component,
// formatter or attribute names are reported as errors.
//
// # Placeholder
//
// An empty slot holds a single Placeholder unit so its index space is never
// degenerate. The first real insert evicts it.
package model
