// Package content provides the item sequence stored inside a slot.
//
// A Content is an ordered list of items. Each item is either a text run or an
// embedded node (a component reference). Text runs are never empty and
// adjacent runs are always coalesced; embedded nodes occupy exactly one index
// and are never merged.
//
// # Indexing
//
// Indices count Unicode scalar values (runes) for text and one unit per
// embedded node. Every index passed to Content is first corrected so that it
// never lands inside a multi-rune grapheme cluster:
//
//	c := content.New[*Node]()
//	c.Append(content.Text[*Node]("éx")) // "é" is two runes, one cluster
//	c.CorrectIndex(1, false) // 0
//	c.CorrectIndex(1, true)  // 2
//
// Slices round their start down and their end up, so a cut never splits a
// combining sequence, emoji ZWJ sequence, or regional indicator pair.
//
// Out-of-range indices are clamped; Content never panics on bad input.
package content
