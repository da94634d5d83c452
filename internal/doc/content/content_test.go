package content

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

type node struct{ name string }

func texts(items []Item[*node]) []string {
	out := make([]string, len(items))
	for i, it := range items {
		if it.IsEmbed() {
			out[i] = "<" + it.Embedded().name + ">"
			continue
		}
		out[i] = it.Text()
	}
	return out
}

func TestAppendCoalesces(t *testing.T) {
	c := New[*node]()
	c.Append(Text[*node]("hel"))
	c.Append(Text[*node]("lo"))
	c.Append(Text[*node](""))

	if got := texts(c.Items()); !cmp.Equal(got, []string{"hello"}) {
		t.Errorf("items = %v, want [hello]", got)
	}
	if c.Len() != 5 {
		t.Errorf("Len() = %d, want 5", c.Len())
	}
}

func TestInsertSplitsRunAroundEmbed(t *testing.T) {
	img := &node{name: "img"}
	c := New[*node]()
	c.Append(Text[*node]("hello"))
	c.Insert(2, Embed(img))

	want := []string{"he", "<img>", "llo"}
	if diff := cmp.Diff(want, texts(c.Items())); diff != "" {
		t.Errorf("items mismatch (-want +got):\n%s", diff)
	}
	if c.Len() != 6 {
		t.Errorf("Len() = %d, want 6", c.Len())
	}
	if c.IndexOf(img) != 2 {
		t.Errorf("IndexOf = %d, want 2", c.IndexOf(img))
	}
}

func TestInsertTextNextToEmbed(t *testing.T) {
	img := &node{name: "img"}
	c := New[*node]()
	c.Append(Text[*node]("ab"))
	c.Append(Embed(img))
	c.Insert(3, Text[*node]("c"))
	c.Insert(2, Text[*node]("x"))

	want := []string{"abx", "<img>", "c"}
	if diff := cmp.Diff(want, texts(c.Items())); diff != "" {
		t.Errorf("items mismatch (-want +got):\n%s", diff)
	}
}

func TestCutRestoresCoalescing(t *testing.T) {
	img := &node{name: "img"}
	c := New[*node]()
	c.Append(Text[*node]("ab"))
	c.Append(Embed(img))
	c.Append(Text[*node]("cd"))

	removed := c.Cut(2, 3)
	if diff := cmp.Diff([]string{"<img>"}, texts(removed)); diff != "" {
		t.Errorf("removed mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"abcd"}, texts(c.Items())); diff != "" {
		t.Errorf("items mismatch (-want +got):\n%s", diff)
	}
	if c.IndexOf(img) != -1 {
		t.Error("embed still present after cut")
	}
}

func TestSliceClamps(t *testing.T) {
	c := New[*node]()
	c.Append(Text[*node]("hello"))

	if got := texts(c.Slice(-3, 100)); !cmp.Equal(got, []string{"hello"}) {
		t.Errorf("Slice(-3,100) = %v", got)
	}
	if got := c.Slice(4, 2); got != nil {
		t.Errorf("Slice(4,2) = %v, want nil", got)
	}
}

func TestGraphemeSafety(t *testing.T) {
	// "e" + combining acute, then a flag made of two regional indicators.
	text := "ae\u0301b\U0001F1EF\U0001F1F5c"
	c := New[*node]()
	c.Append(Text[*node](text))

	tests := []struct {
		name  string
		index int
		toEnd bool
		want  int
	}{
		{"boundary", 1, false, 1},
		{"inside combining down", 2, false, 1},
		{"inside combining up", 2, true, 3},
		{"inside flag down", 5, false, 4},
		{"inside flag up", 5, true, 6},
		{"end", 7, true, 7},
		{"past end", 20, false, 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.CorrectIndex(tt.index, tt.toEnd); got != tt.want {
				t.Errorf("CorrectIndex(%d, %v) = %d, want %d", tt.index, tt.toEnd, got, tt.want)
			}
		})
	}

	if got := texts(c.Slice(2, 5)); !cmp.Equal(got, []string{"e\u0301b\U0001F1EF\U0001F1F5"}) {
		t.Errorf("Slice(2,5) = %q", got)
	}

	c.Insert(2, Text[*node]("X"))
	if got := c.String(); got != "aXe\u0301b\U0001F1EF\U0001F1F5c" {
		t.Errorf("insert inside cluster = %q", got)
	}
}

func TestItemAt(t *testing.T) {
	img := &node{name: "img"}
	c := New[*node]()
	c.Append(Text[*node]("e\u0301"))
	c.Append(Embed(img))

	it, ok := c.ItemAt(0)
	if !ok || it.Text() != "e\u0301" {
		t.Errorf("ItemAt(0) = %q, %v", it.Text(), ok)
	}
	it, ok = c.ItemAt(2)
	if !ok || it.Embedded() != img {
		t.Errorf("ItemAt(2) did not return embed")
	}
	if _, ok := c.ItemAt(3); ok {
		t.Error("ItemAt(3) should be out of range")
	}
	if c.String() != "e\u0301"+ObjectReplacement {
		t.Errorf("String() = %q", c.String())
	}
}
