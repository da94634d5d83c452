// Package format implements the range overlay attached to a slot.
//
// A Format maps each Formatter to a sorted, non-overlapping and maximally
// coalesced list of ranges over the slot's index space. Edits are expressed
// through a small range algebra:
//
//   - Merge overwrites a range for one formatter (a nil value erases).
//   - Stretch and Shrink shift boundaries around an insert or delete.
//   - Split opens unformatted cells so spliced-in content starts bare.
//   - Extract returns a re-indexed sub-copy, used for undo payloads.
//
// Merge works by tiling: ranges are flattened into one cell per index, the
// new range is written over (or under, for background merges) the cells, and
// the ranges are re-derived from runs of equal values.
//
// # Format trees
//
// ToTree decomposes the overlay into a minimal-nesting interval tree. At each
// node the formats covering the whole node are attached, the tightest inner
// boundary is found, and the node is split into before, middle and after
// children. Columned formatters never nest; they are pushed down to leaves.
package format
