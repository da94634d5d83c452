package content

import "github.com/rivo/uniseg"

// clusterBoundary snaps offset (in runes) to a grapheme cluster boundary of
// text. Offsets already on a boundary are returned unchanged.
func clusterBoundary(text string, offset int, toEnd bool) int {
	if offset <= 0 {
		return 0
	}
	pos := 0
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		n := len(g.Runes())
		if offset < pos+n {
			if offset == pos {
				return pos
			}
			if toEnd {
				return pos + n
			}
			return pos
		}
		pos += n
	}
	return pos
}

// ClusterCount returns the number of grapheme clusters in s.
func ClusterCount(s string) int {
	return uniseg.GraphemeClusterCount(s)
}
