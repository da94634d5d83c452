package format

import (
	"reflect"
	"slices"
	"sort"
)

// Format holds the ranges of every formatter applied to one slot.
// Formatters are iterated in the order they were first added.
type Format struct {
	order  []*Formatter
	ranges map[*Formatter][]Range
}

// New creates an empty Format.
func New() *Format {
	return &Format{ranges: make(map[*Formatter][]Range)}
}

// Equal reports whether two values are the same format value.
func Equal(a, b any) bool {
	return reflect.DeepEqual(a, b)
}

func (f *Format) set(ft *Formatter, ranges []Range) {
	if len(ranges) == 0 {
		f.Discard(ft)
		return
	}
	if _, ok := f.ranges[ft]; !ok {
		f.order = append(f.order, ft)
	}
	f.ranges[ft] = ranges
}

// Merge writes r for formatter ft. A nil value erases r. With background set
// the existing ranges win where they overlap r.
func (f *Format) Merge(ft *Formatter, r Range, background bool) *Format {
	if r.Start >= r.End {
		return f
	}
	existing := f.ranges[ft]
	var list []Range
	if background {
		list = append([]Range{r}, existing...)
	} else {
		list = append(slices.Clone(existing), r)
	}
	f.set(ft, normalize(list))
	return f
}

// Stretch grows ranges that touch or follow index by count.
func (f *Format) Stretch(index, count int) *Format {
	if count <= 0 {
		return f
	}
	for _, ft := range slices.Clone(f.order) {
		ranges := slices.Clone(f.ranges[ft])
		for i, r := range ranges {
			if r.End < index {
				continue
			}
			if r.Start > index {
				ranges[i].Start += count
			}
			ranges[i].End += count
		}
		f.set(ft, normalize(ranges))
	}
	return f
}

// Shrink removes count cells starting at index, clamping ranges that
// overlap the removed span.
func (f *Format) Shrink(index, count int) *Format {
	if count <= 0 {
		return f
	}
	for _, ft := range slices.Clone(f.order) {
		ranges := slices.Clone(f.ranges[ft])
		for i, r := range ranges {
			if r.End <= index {
				continue
			}
			ranges[i].End = max(index, r.End-count)
			if r.Start > index {
				ranges[i].Start = max(index, r.Start-count)
			}
		}
		f.set(ft, normalize(ranges))
	}
	return f
}

// Split opens distance unformatted cells at index. Block formatters are
// stretched instead so they keep covering the whole slot.
func (f *Format) Split(index, distance int) *Format {
	if distance <= 0 {
		return f
	}
	for _, ft := range slices.Clone(f.order) {
		ranges := f.ranges[ft]
		if ft.IsBlock() {
			stretched := slices.Clone(ranges)
			for i, r := range stretched {
				if r.End < index {
					continue
				}
				if r.Start > index {
					stretched[i].Start += distance
				}
				stretched[i].End += distance
			}
			f.set(ft, normalize(stretched))
			continue
		}
		cells := tile(ranges)
		if index < len(cells) {
			cells = slices.Insert(cells, index, make([]cell, distance)...)
		}
		f.set(ft, toRanges(cells))
	}
	return f
}

// Extract returns the formats inside [start, end), re-indexed to start at 0.
// When only is non-empty, other formatters are skipped.
func (f *Format) Extract(start, end int, only ...*Formatter) *Format {
	out := f.clip(start, end, only...)
	for _, ft := range out.order {
		ranges := out.ranges[ft]
		for i := range ranges {
			ranges[i].Start -= start
			ranges[i].End -= start
		}
	}
	return out
}

// clip returns the formats inside [start, end) keeping absolute indices.
func (f *Format) clip(start, end int, only ...*Formatter) *Format {
	out := New()
	for _, ft := range f.order {
		if len(only) > 0 && !slices.Contains(only, ft) {
			continue
		}
		var clipped []Range
		for _, r := range f.ranges[ft] {
			s, e := max(r.Start, start), min(r.End, end)
			if s < e {
				clipped = append(clipped, Range{Start: s, End: e, Value: r.Value})
			}
		}
		out.set(ft, clipped)
	}
	return out
}

// Discard removes every range of ft.
func (f *Format) Discard(ft *Formatter) *Format {
	if _, ok := f.ranges[ft]; !ok {
		return f
	}
	delete(f.ranges, ft)
	f.order = slices.DeleteFunc(f.order, func(x *Formatter) bool { return x == ft })
	return f
}

// Get returns a copy of the ranges of ft.
func (f *Format) Get(ft *Formatter) []Range {
	return slices.Clone(f.ranges[ft])
}

// Has reports whether ft has any range.
func (f *Format) Has(ft *Formatter) bool {
	_, ok := f.ranges[ft]
	return ok
}

// Formatters returns the formatters in use.
func (f *Format) Formatters() []*Formatter {
	return slices.Clone(f.order)
}

// IsEmpty reports whether no formatter has a range.
func (f *Format) IsEmpty() bool {
	return len(f.order) == 0
}

// FormatsAt returns the formats active on the cell [index, index+1).
func (f *Format) FormatsAt(index int) []Entry {
	var out []Entry
	for _, ft := range f.order {
		for _, r := range f.ranges[ft] {
			if r.Start <= index && index < r.End {
				out = append(out, Entry{Formatter: ft, Value: r.Value})
				break
			}
		}
	}
	return out
}

// ToArray flattens the format into tagged items.
func (f *Format) ToArray() []Item {
	var out []Item
	for _, ft := range f.order {
		for _, r := range f.ranges[ft] {
			out = append(out, Item{Formatter: ft, Start: r.Start, End: r.End, Value: r.Value})
		}
	}
	return out
}

// Grid returns every range boundary in ascending order.
func (f *Format) Grid() []int {
	seen := make(map[int]struct{})
	for _, ranges := range f.ranges {
		for _, r := range ranges {
			seen[r.Start] = struct{}{}
			seen[r.End] = struct{}{}
		}
	}
	out := make([]int, 0, len(seen))
	for i := range seen {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

// Clone returns a deep copy of the range lists. Values are shared.
func (f *Format) Clone() *Format {
	out := New()
	for _, ft := range f.order {
		out.set(ft, slices.Clone(f.ranges[ft]))
	}
	return out
}

// Equal reports whether two formats hold the same ranges and values.
func (f *Format) Equal(o *Format) bool {
	if len(f.ranges) != len(o.ranges) {
		return false
	}
	for ft, ranges := range f.ranges {
		other, ok := o.ranges[ft]
		if !ok || len(other) != len(ranges) {
			return false
		}
		for i, r := range ranges {
			if r.Start != other[i].Start || r.End != other[i].End || !Equal(r.Value, other[i].Value) {
				return false
			}
		}
	}
	return true
}

type cell struct {
	value any
	set   bool
}

// tile flattens ranges into one cell per index; later ranges win.
func tile(ranges []Range) []cell {
	size := 0
	for _, r := range ranges {
		size = max(size, r.End)
	}
	cells := make([]cell, size)
	for _, r := range ranges {
		for i := max(r.Start, 0); i < r.End; i++ {
			cells[i] = cell{value: r.Value, set: r.Value != nil}
		}
	}
	return cells
}

// toRanges derives coalesced ranges from runs of equal cells.
func toRanges(cells []cell) []Range {
	var out []Range
	for i, c := range cells {
		if !c.set {
			continue
		}
		if n := len(out); n > 0 && out[n-1].End == i && Equal(out[n-1].Value, c.value) {
			out[n-1].End++
			continue
		}
		out = append(out, Range{Start: i, End: i + 1, Value: c.value})
	}
	return out
}

func normalize(ranges []Range) []Range {
	return toRanges(tile(ranges))
}
