package diff

import (
	"strings"
	"unicode"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// WordDiffMaxLineLength skips word diff for lines exceeding this length.
const WordDiffMaxLineLength = 500

// SegmentKind indicates whether a segment is unchanged, added, or deleted.
type SegmentKind int

const (
	// SegmentUnchanged represents text present on both sides.
	SegmentUnchanged SegmentKind = iota
	// SegmentAdded represents text only on the right.
	SegmentAdded
	// SegmentDeleted represents text only on the left.
	SegmentDeleted
)

// Segment is a run of text with its diff status.
type Segment struct {
	Kind SegmentKind
	Text string
}

// tokenize splits a line into tokens: words, and single whitespace or
// punctuation characters.
// Example: `"a.b": 1` → ["\"", "a", ".", "b", "\"", ":", " ", "1"]
func tokenize(line string) []string {
	if line == "" {
		return nil
	}
	var tokens []string
	var current strings.Builder
	for _, r := range line {
		if unicode.IsSpace(r) || unicode.IsPunct(r) || unicode.IsSymbol(r) {
			if current.Len() > 0 {
				tokens = append(tokens, current.String())
				current.Reset()
			}
			tokens = append(tokens, string(r))
			continue
		}
		current.WriteRune(r)
	}
	if current.Len() > 0 {
		tokens = append(tokens, current.String())
	}
	return tokens
}

// WordDiff compares two lines token by token and returns the segments of each
// side. ok is false when either line is too long to diff.
func WordDiff(oldLine, newLine string) (oldSegs, newSegs []Segment, ok bool) {
	if len(oldLine) > WordDiffMaxLineLength || len(newLine) > WordDiffMaxLineLength {
		return nil, nil, false
	}
	switch {
	case oldLine == "" && newLine == "":
		return nil, nil, true
	case oldLine == "":
		return nil, []Segment{{Kind: SegmentAdded, Text: newLine}}, true
	case newLine == "":
		return []Segment{{Kind: SegmentDeleted, Text: oldLine}}, nil, true
	}

	oldTokens, newTokens := tokenize(oldLine), tokenize(newLine)
	ra, rb, enc := encode(oldTokens, newTokens)
	if !enc {
		return nil, nil, false
	}
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMainRunes(ra, rb, false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	i, j := 0, 0
	take := func(tokens []string, at, n int) string {
		return strings.Join(tokens[at:at+n], "")
	}
	for _, d := range diffs {
		n := len([]rune(d.Text))
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			text := take(oldTokens, i, n)
			oldSegs = appendSegment(oldSegs, SegmentUnchanged, text)
			newSegs = appendSegment(newSegs, SegmentUnchanged, text)
			i += n
			j += n
		case diffmatchpatch.DiffDelete:
			oldSegs = appendSegment(oldSegs, SegmentDeleted, take(oldTokens, i, n))
			i += n
		case diffmatchpatch.DiffInsert:
			newSegs = appendSegment(newSegs, SegmentAdded, take(newTokens, j, n))
			j += n
		}
	}
	return oldSegs, newSegs, true
}

func appendSegment(segs []Segment, kind SegmentKind, text string) []Segment {
	if text == "" {
		return segs
	}
	if n := len(segs); n > 0 && segs[n-1].Kind == kind {
		segs[n-1].Text += text
		return segs
	}
	return append(segs, Segment{Kind: kind, Text: text})
}

// WordDiff returns the word segments of a replaced row.
func (r *Result) WordDiff(row int) (left, right []Segment, ok bool) {
	if row < 0 || row >= r.Len() || r.Tags[row] != Replace {
		return nil, nil, false
	}
	return WordDiff(r.Left[row], r.Right[row])
}
