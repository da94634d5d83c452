package format

import "sort"

// Tree is one node of a minimal-nesting decomposition of a Format.
// Formats lists the formats covering exactly [Start, End). A node without
// children is a leaf segment.
type Tree struct {
	Start    int
	End      int
	Formats  []Item
	Children []*Tree
}

// ToTree decomposes the formats inside [start, end) into a Tree.
func (f *Format) ToTree(start, end int) *Tree {
	if end < start {
		end = start
	}
	return buildTree(f.clip(start, end), start, end)
}

func buildTree(f *Format, start, end int) *Tree {
	tree := &Tree{Start: start, End: end}
	nextStart, nextEnd := end, start
	var columned []Item
	rest := New()

	for _, ft := range f.order {
		var kept []Range
		for _, r := range f.ranges[ft] {
			if r.Start == start && r.End == end {
				item := Item{Formatter: ft, Start: r.Start, End: r.End, Value: r.Value}
				if !ft.Columned {
					tree.Formats = append(tree.Formats, item)
					continue
				}
				columned = append(columned, item)
				kept = append(kept, r)
				continue
			}
			if r.Start < nextStart {
				nextStart, nextEnd = r.Start, r.End
			} else if r.Start == nextStart && r.End > nextEnd {
				nextEnd = r.End
			}
			kept = append(kept, r)
		}
		rest.set(ft, kept)
	}

	if nextStart >= end {
		tree.Formats = append(tree.Formats, columned...)
		sortByPriority(tree.Formats)
		return tree
	}
	sortByPriority(tree.Formats)

	if start < nextStart {
		tree.Children = append(tree.Children, buildTree(rest.clip(start, nextStart), start, nextStart))
	}
	tree.Children = append(tree.Children, buildTree(rest.clip(nextStart, nextEnd), nextStart, nextEnd))
	if nextEnd < end {
		tree.Children = append(tree.Children, buildTree(rest.clip(nextEnd, end), nextEnd, end))
	}
	return tree
}

func sortByPriority(items []Item) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Formatter.Priority < items[j].Formatter.Priority
	})
}

// Leaves returns the leaf segments of the tree in order.
func (t *Tree) Leaves() []*Tree {
	if len(t.Children) == 0 {
		return []*Tree{t}
	}
	var out []*Tree
	for _, c := range t.Children {
		out = append(out, c.Leaves()...)
	}
	return out
}
