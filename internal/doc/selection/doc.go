// Package selection resolves document positions to tree paths and splits
// selections into per-slot scopes.
//
// # Positions and Paths
//
// A Position is a slot and an offset into it. Its path is the slot's path
// from the root component followed by the offset. Paths compare
// lexicographically; a path that is a prefix of another sorts first, so a
// position right before a component precedes every position inside it.
//
// # Scopes
//
// Scopes walks both ends of a selection up to their lowest common ancestor
// and returns, in document order, the partial range of each end slot, every
// fully covered sibling slot, and the covered slice of the ancestor slot:
//
//	for _, sc := range sel.Scopes(true) {
//		fmt.Println(model.SlotPath(sc.Slot), sc.Start, sc.End)
//	}
//
// SelectedScopes further splits each scope at block components, descending
// into their slots, for commands that must not treat a nested block as one
// unit.
//
// # Navigation
//
// NextPosition and PreviousPosition step over one grapheme cluster or
// inline component, descend into a block's slots, and climb out at slot
// boundaries.
package selection
