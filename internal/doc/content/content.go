package content

import (
	"slices"
	"strings"
)

// ObjectReplacement is written by String in place of embedded nodes.
const ObjectReplacement = "\uFFFC"

// Content is an ordered, coalesced sequence of text runs and embedded nodes.
// The zero value is an empty Content ready for use.
type Content[E comparable] struct {
	items  []Item[E]
	length int
}

// New creates an empty Content.
func New[E comparable]() *Content[E] {
	return &Content[E]{}
}

// Len returns the total number of index units.
func (c *Content[E]) Len() int {
	return c.length
}

// Items returns a copy of the items.
func (c *Content[E]) Items() []Item[E] {
	return slices.Clone(c.items)
}

// Clone returns an independent copy. Embedded nodes are shared.
func (c *Content[E]) Clone() *Content[E] {
	return &Content[E]{items: slices.Clone(c.items), length: c.length}
}

func (c *Content[E]) clamp(index int) int {
	if index < 0 {
		return 0
	}
	if index > c.length {
		return c.length
	}
	return index
}

// CorrectIndex clamps index and, if it falls inside a grapheme cluster,
// moves it to the cluster start (toEnd false) or end (toEnd true).
func (c *Content[E]) CorrectIndex(index int, toEnd bool) int {
	index = c.clamp(index)
	pos := 0
	for _, it := range c.items {
		n := it.Len()
		if index < pos+n {
			if index == pos || it.isRef {
				return index
			}
			return pos + clusterBoundary(it.text, index-pos, toEnd)
		}
		pos += n
	}
	return index
}

// Insert places item at index. Text merges into a neighbouring run; inserting
// inside a run splits it around an embedded node.
func (c *Content[E]) Insert(index int, item Item[E]) {
	if item.IsEmpty() {
		return
	}
	index = c.CorrectIndex(index, false)
	if index == c.length {
		c.Append(item)
		return
	}
	pos := 0
	for i, it := range c.items {
		n := it.Len()
		if index >= pos+n {
			pos += n
			continue
		}
		c.length += item.Len()
		if index == pos {
			if item.IsText() {
				if it.IsText() {
					c.items[i].text = item.text + it.text
					return
				}
				if i > 0 && c.items[i-1].IsText() {
					c.items[i-1].text += item.text
					return
				}
			}
			c.items = slices.Insert(c.items, i, item)
			return
		}
		runes := []rune(it.text)
		off := index - pos
		if item.IsText() {
			c.items[i].text = string(runes[:off]) + item.text + string(runes[off:])
			return
		}
		left := Text[E](string(runes[:off]))
		right := Text[E](string(runes[off:]))
		c.items = slices.Replace(c.items, i, i+1, left, item, right)
		return
	}
}

// Append adds item to the end, coalescing with a trailing text run.
func (c *Content[E]) Append(item Item[E]) {
	if item.IsEmpty() {
		return
	}
	c.length += item.Len()
	if last := len(c.items) - 1; last >= 0 && item.IsText() && c.items[last].IsText() {
		c.items[last].text += item.text
		return
	}
	c.items = append(c.items, item)
}

// Slice returns a copy of the items covering [start, end). The start is
// rounded down and the end rounded up to grapheme cluster boundaries.
func (c *Content[E]) Slice(start, end int) []Item[E] {
	start = c.CorrectIndex(start, false)
	end = c.CorrectIndex(end, true)
	if start >= end {
		return nil
	}
	var out []Item[E]
	pos := 0
	for _, it := range c.items {
		n := it.Len()
		s, e := max(start, pos), min(end, pos+n)
		if s < e {
			if it.isRef {
				out = append(out, it)
			} else {
				runes := []rune(it.text)
				out = append(out, Text[E](string(runes[s-pos:e-pos])))
			}
		}
		pos += n
		if pos >= end {
			break
		}
	}
	return out
}

// Cut removes [start, end) and returns the removed items.
func (c *Content[E]) Cut(start, end int) []Item[E] {
	start = c.CorrectIndex(start, false)
	end = c.CorrectIndex(end, true)
	if start >= end {
		return nil
	}
	removed := c.Slice(start, end)
	left := c.Slice(0, start)
	right := c.Slice(end, c.length)
	c.items = nil
	c.length = 0
	for _, it := range left {
		c.Append(it)
	}
	for _, it := range right {
		c.Append(it)
	}
	return removed
}

// IndexOf returns the index of the embedded node e, or -1.
func (c *Content[E]) IndexOf(e E) int {
	pos := 0
	for _, it := range c.items {
		if it.isRef && it.embed == e {
			return pos
		}
		pos += it.Len()
	}
	return -1
}

// ItemAt returns the unit at index: the grapheme cluster starting there, or
// the embedded node.
func (c *Content[E]) ItemAt(index int) (Item[E], bool) {
	if index < 0 || index >= c.length {
		return Item[E]{}, false
	}
	items := c.Slice(index, index+1)
	if len(items) == 0 {
		return Item[E]{}, false
	}
	return items[0], true
}

// Embeds returns the embedded nodes in order.
func (c *Content[E]) Embeds() []E {
	var out []E
	for _, it := range c.items {
		if it.isRef {
			out = append(out, it.embed)
		}
	}
	return out
}

// String returns the text with embedded nodes written as U+FFFC.
func (c *Content[E]) String() string {
	var sb strings.Builder
	for _, it := range c.items {
		if it.isRef {
			sb.WriteString(ObjectReplacement)
			continue
		}
		sb.WriteString(it.text)
	}
	return sb.String()
}
