package editor

// Columns throughout the editor are grapheme-cluster indices, not bytes.
// A cluster can span many bytes (combining marks, ZWJ emoji) and occupy one or
// two terminal cells. The helpers here translate between the three units.

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// GraphemeCount returns the number of grapheme clusters in s.
func GraphemeCount(s string) int {
	if isASCII(s) {
		return len(s)
	}
	return uniseg.GraphemeClusterCount(s)
}

// Graphemes splits s into its grapheme clusters.
func Graphemes(s string) []string {
	out := make([]string, 0, len(s))
	if isASCII(s) {
		for i := 0; i < len(s); i++ {
			out = append(out, s[i:i+1])
		}
		return out
	}
	state := -1
	for len(s) > 0 {
		var cluster string
		cluster, s, _, state = uniseg.StepString(s, state)
		out = append(out, cluster)
	}
	return out
}

// GraphemeAt returns the cluster at grapheme index idx, or "" when out of range.
func GraphemeAt(s string, idx int) string {
	if idx < 0 {
		return ""
	}
	if isASCII(s) {
		if idx >= len(s) {
			return ""
		}
		return s[idx : idx+1]
	}
	i := 0
	state := -1
	for len(s) > 0 {
		var cluster string
		cluster, s, _, state = uniseg.StepString(s, state)
		if i == idx {
			return cluster
		}
		i++
	}
	return ""
}

// GraphemeToByteOffset converts a grapheme index to a byte offset, clamped to
// [0, len(s)].
func GraphemeToByteOffset(s string, idx int) int {
	if idx <= 0 {
		return 0
	}
	if isASCII(s) {
		return min(idx, len(s))
	}
	i := 0
	state := -1
	rest := s
	for len(rest) > 0 {
		_, rest, _, state = uniseg.StepString(rest, state)
		i++
		if i == idx {
			return len(s) - len(rest)
		}
	}
	return len(s)
}

// ByteToGraphemeOffset converts a byte offset to the index of the grapheme
// containing it.
func ByteToGraphemeOffset(s string, off int) int {
	if off <= 0 {
		return 0
	}
	if off >= len(s) {
		return GraphemeCount(s)
	}
	if isASCII(s) {
		return off
	}
	i := 0
	pos := 0
	state := -1
	for len(s) > 0 {
		var cluster string
		cluster, s, _, state = uniseg.StepString(s, state)
		pos += len(cluster)
		if off < pos {
			return i
		}
		i++
	}
	return i
}

// SliceByGraphemes returns the clusters in [start, end).
func SliceByGraphemes(s string, start, end int) string {
	if start < 0 {
		start = 0
	}
	if end <= start {
		return ""
	}
	return s[GraphemeToByteOffset(s, start):GraphemeToByteOffset(s, end)]
}

// InsertAtGrapheme inserts text before grapheme idx.
func InsertAtGrapheme(s string, idx int, text string) string {
	off := GraphemeToByteOffset(s, idx)
	return s[:off] + text + s[off:]
}

// DeleteGraphemeRange removes the clusters in [start, end).
func DeleteGraphemeRange(s string, start, end int) string {
	if end <= start {
		return s
	}
	return s[:GraphemeToByteOffset(s, start)] + s[GraphemeToByteOffset(s, end):]
}

// DisplayWidth returns the width of s in terminal cells.
func DisplayWidth(s string) int {
	return runewidth.StringWidth(s)
}

// TruncateToDisplayWidth cuts s to at most maxWidth cells without splitting a
// cluster.
func TruncateToDisplayWidth(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	var sb strings.Builder
	width := 0
	for _, g := range Graphemes(s) {
		w := runewidth.StringWidth(g)
		if width+w > maxWidth {
			break
		}
		sb.WriteString(g)
		width += w
	}
	return sb.String()
}

// isWordGrapheme reports whether g belongs to a word for w/b motions.
func isWordGrapheme(g string) bool {
	if len(g) != 1 {
		return false
	}
	c := g[0]
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

func isSpaceGrapheme(g string) bool {
	return g == " " || g == "\t"
}

// leadingSpace returns the number of leading space/tab clusters.
func leadingSpace(line string) int {
	n := 0
	for n < len(line) && (line[n] == ' ' || line[n] == '\t') {
		n++
	}
	return n
}

// indentOf is the indentation of line, or 0 for blank lines.
func indentOf(line string) int {
	if strings.TrimSpace(line) == "" {
		return 0
	}
	return leadingSpace(line)
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}
