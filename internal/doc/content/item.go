package content

import "unicode/utf8"

// Item is a single entry in a Content: a text run or an embedded node.
type Item[E comparable] struct {
	text  string
	embed E
	isRef bool
}

// Text creates a text item.
func Text[E comparable](s string) Item[E] {
	return Item[E]{text: s}
}

// Embed creates an item referencing an embedded node.
func Embed[E comparable](e E) Item[E] {
	return Item[E]{embed: e, isRef: true}
}

// IsEmbed reports whether the item references an embedded node.
func (it Item[E]) IsEmbed() bool {
	return it.isRef
}

// IsText reports whether the item is a text run.
func (it Item[E]) IsText() bool {
	return !it.isRef
}

// Text returns the text of a text item, or "" for an embedded node.
func (it Item[E]) Text() string {
	return it.text
}

// Embedded returns the embedded node. The zero value is returned for text.
func (it Item[E]) Embedded() E {
	return it.embed
}

// Len returns the number of index units the item occupies.
func (it Item[E]) Len() int {
	if it.isRef {
		return 1
	}
	return utf8.RuneCountInString(it.text)
}

// IsEmpty reports whether the item occupies no index units.
func (it Item[E]) IsEmpty() bool {
	return !it.isRef && it.text == ""
}
