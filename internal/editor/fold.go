package editor

import (
	"maps"
	"slices"
	"strings"
)

// Default thresholds for long string collapsing.
const (
	DefaultCollapseLen = 60
	DefaultPreviewLen  = 20
)

// FoldTable tracks collapsed bracket ranges and collapsed long strings.
//
// A fold maps a header row to the inclusive last row it hides; rows
// header+1..end are hidden. Collapsed strings are rows whose long string value
// is shown as a preview.
type FoldTable struct {
	folds       map[int]int
	collapsed   map[int]struct{}
	collapseLen int
}

// FoldState is a copy of a FoldTable's contents.
type FoldState struct {
	Folds     map[int]int
	Collapsed []int
}

// NewFoldTable returns an empty table. Strings of at least collapseLen
// characters are collapsible.
func NewFoldTable(collapseLen int) *FoldTable {
	if collapseLen <= 0 {
		collapseLen = DefaultCollapseLen
	}
	return &FoldTable{
		folds:       make(map[int]int),
		collapsed:   make(map[int]struct{}),
		collapseLen: collapseLen,
	}
}

// Len returns the number of bracket folds.
func (f *FoldTable) Len() int { return len(f.folds) }

// Empty reports whether nothing is folded or collapsed.
func (f *FoldTable) Empty() bool { return len(f.folds) == 0 && len(f.collapsed) == 0 }

// Clear removes every fold and collapsed string.
func (f *FoldTable) Clear() {
	clear(f.folds)
	clear(f.collapsed)
}

// State returns a copy of the table contents.
func (f *FoldTable) State() FoldState {
	c := make([]int, 0, len(f.collapsed))
	for row := range f.collapsed {
		c = append(c, row)
	}
	slices.Sort(c)
	return FoldState{Folds: maps.Clone(f.folds), Collapsed: c}
}

// Restore replaces the table contents with s.
func (f *FoldTable) Restore(s FoldState) {
	f.Clear()
	maps.Copy(f.folds, s.Folds)
	for _, row := range s.Collapsed {
		f.collapsed[row] = struct{}{}
	}
}

// Headers returns the fold header rows in ascending order.
func (f *FoldTable) Headers() []int {
	return slices.Sorted(maps.Keys(f.folds))
}

// FoldAt returns the end row of the fold headed at row.
func (f *FoldTable) FoldAt(row int) (int, bool) {
	end, ok := f.folds[row]
	return end, ok
}

// IsHidden reports whether row is inside some fold (not its header).
func (f *FoldTable) IsHidden(row int) bool {
	for s, e := range f.folds {
		if s < row && row <= e {
			return true
		}
	}
	return false
}

// headerOf returns the outermost header whose fold hides row.
func (f *FoldTable) headerOf(row int) (int, bool) {
	best, found := 0, false
	for s, e := range f.folds {
		if s < row && row <= e && (!found || s < best) {
			best, found = s, true
		}
	}
	return best, found
}

// IsCollapsed reports whether row shows a long string preview.
func (f *FoldTable) IsCollapsed(row int) bool {
	_, ok := f.collapsed[row]
	return ok
}

// Unfold removes the fold headed at row and any collapsed string there.
func (f *FoldTable) Unfold(row int) {
	delete(f.folds, row)
	delete(f.collapsed, row)
}

// UnfoldFor removes every fold hiding row.
func (f *FoldTable) UnfoldFor(row int) {
	for s, e := range f.folds {
		if s < row && row <= e {
			delete(f.folds, s)
		}
	}
}

// AdjustLines keeps folds consistent after delta lines were inserted
// (delta > 0) or removed (delta < 0) starting at row from.
func (f *FoldTable) AdjustLines(from, delta int) {
	switch {
	case delta > 0:
		shift := func(i int) int {
			if i >= from {
				return i + delta
			}
			return i
		}
		next := make(map[int]int, len(f.folds))
		for s, e := range f.folds {
			next[shift(s)] = shift(e)
		}
		f.folds = next
		col := make(map[int]struct{}, len(f.collapsed))
		for row := range f.collapsed {
			col[shift(row)] = struct{}{}
		}
		f.collapsed = col
	case delta < 0:
		n := -delta
		delEnd := from + n
		next := make(map[int]int, len(f.folds))
		for s, e := range f.folds {
			switch {
			case e < from:
				next[s] = e
			case s >= delEnd:
				next[s-n] = e - n
			case s >= from:
				// header removed
			case e < delEnd:
				if from-1 > s {
					next[s] = from - 1
				}
			default:
				next[s] = e - n
			}
		}
		f.folds = next
		col := make(map[int]struct{}, len(f.collapsed))
		for row := range f.collapsed {
			switch {
			case row < from:
				col[row] = struct{}{}
			case row >= delEnd:
				col[row-n] = struct{}{}
			}
		}
		f.collapsed = col
	}
}

// NextVisible returns the nearest row after (dir > 0) or before (dir < 0) row
// that is not hidden, or row itself when there is none.
func (f *FoldTable) NextVisible(row, dir, lineCount int) int {
	for i := row + dir; i >= 0 && i < lineCount; i += dir {
		if !f.IsHidden(i) {
			return i
		}
	}
	return row
}

// SkipVisible moves count visible rows from row in direction dir.
func (f *FoldTable) SkipVisible(row, count, dir, lineCount int) int {
	for range count {
		next := f.NextVisible(row, dir, lineCount)
		if next == row {
			break
		}
		row = next
	}
	return row
}

// Toggle implements za: it opens a fold at row, closes a foldable header, opens
// the fold hiding row, or toggles a long string preview, whichever applies
// first.
func (f *FoldTable) Toggle(lines []string, row int) {
	if _, ok := f.folds[row]; ok {
		delete(f.folds, row)
		return
	}
	if end, ok := FoldableAt(lines, row); ok {
		f.folds[row] = end
		return
	}
	for s, e := range f.folds {
		if s < row && row <= e {
			delete(f.folds, s)
			return
		}
	}
	if f.IsCollapsed(row) {
		delete(f.collapsed, row)
		return
	}
	if _, ok := LongStringAt(lines[row], f.collapseLen); ok {
		f.collapsed[row] = struct{}{}
	}
}

// Close implements zc. It folds at row when row is a header or long string
// line, otherwise it folds the nearest enclosing block and returns its header.
func (f *FoldTable) Close(lines []string, row int) (header int, moved bool) {
	if end, ok := FoldableAt(lines, row); ok {
		f.folds[row] = end
		return row, false
	}
	if _, ok := LongStringAt(lines[row], f.collapseLen); ok {
		f.collapsed[row] = struct{}{}
		return row, false
	}
	if s, e, ok := EnclosingFoldable(lines, row); ok {
		f.folds[s] = e
		return s, true
	}
	return row, false
}

// FoldAll implements zM: fold every top-level block and collapse long strings
// outside of them.
func (f *FoldTable) FoldAll(lines []string) {
	f.Clear()
	ends := foldableEnds(lines)
	for i := 0; i < len(lines); i++ {
		if end, ok := ends[i]; ok {
			f.folds[i] = end
			i = end
			continue
		}
		if _, ok := LongStringAt(lines[i], f.collapseLen); ok {
			f.collapsed[i] = struct{}{}
		}
	}
}

// FoldNested folds every block except one starting at row 0, and collapses
// every long string.
func (f *FoldTable) FoldNested(lines []string) {
	f.Clear()
	ends := foldableEnds(lines)
	for i := range lines {
		if end, ok := ends[i]; ok {
			if i != 0 {
				f.folds[i] = end
			}
			continue
		}
		if _, ok := LongStringAt(lines[i], f.collapseLen); ok {
			f.collapsed[i] = struct{}{}
		}
	}
}

// FoldAtDepth folds blocks and long strings whose line is indented depth
// levels.
func (f *FoldTable) FoldAtDepth(lines []string, depth int) {
	f.Clear()
	ends := foldableEnds(lines)
	want := depth * indentUnit
	for i, line := range lines {
		if strings.TrimSpace(line) == "" || leadingSpace(line) != want {
			continue
		}
		if end, ok := ends[i]; ok {
			f.folds[i] = end
		} else if _, ok := LongStringAt(line, f.collapseLen); ok {
			f.collapsed[i] = struct{}{}
		}
	}
}

// CollapseLongStrings marks every line holding a long string value.
func (f *FoldTable) CollapseLongStrings(lines []string) {
	for i, line := range lines {
		if _, ok := LongStringAt(line, f.collapseLen); ok {
			f.collapsed[i] = struct{}{}
		}
	}
}

// CollapseLen is the minimum length of a collapsible string.
func (f *FoldTable) CollapseLen() int { return f.collapseLen }

// FoldableAt reports whether row ends with an opening bracket whose match is
// on a later row, and returns that row.
func FoldableAt(lines []string, row int) (int, bool) {
	trimmed := strings.TrimRight(lines[row], " \t")
	if trimmed == "" {
		return 0, false
	}
	last := trimmed[len(trimmed)-1]
	if last != '{' && last != '[' {
		return 0, false
	}
	m, ok := matchForward(lines, row, len(trimmed)-1)
	if !ok || m.row <= row {
		return 0, false
	}
	return m.row, true
}

// EnclosingFoldable finds the nearest block above row that contains it.
func EnclosingFoldable(lines []string, row int) (start, end int, ok bool) {
	for i := row - 1; i >= 0; i-- {
		if e, ok := FoldableAt(lines, i); ok && row <= e {
			return i, e, true
		}
	}
	return 0, 0, false
}

// foldableEnds computes FoldableAt for every row in one pass.
func foldableEnds(lines []string) map[int]int {
	pairs := matchAll(lines)
	out := make(map[int]int)
	for row, line := range lines {
		trimmed := strings.TrimRight(line, " \t")
		if trimmed == "" {
			continue
		}
		last := trimmed[len(trimmed)-1]
		if last != '{' && last != '[' {
			continue
		}
		if m, ok := pairs[bytePos{row, len(trimmed) - 1}]; ok && m.row > row {
			out[row] = m.row
		}
	}
	return out
}

// LongString locates a collapsible string value on a line, in grapheme columns.
// Start is the opening quote, End is one past the closing quote and Len counts
// the characters between the quotes.
type LongString struct {
	Start int
	End   int
	Len   int
}

// PreviewEnd is the last column shown while the string is collapsed.
func (s LongString) PreviewEnd(previewLen int) int {
	return s.Start + 1 + min(previewLen, s.Len)
}

// LongStringAt finds the first string value (a string preceded by ':') on line
// whose length is at least minLen.
func LongStringAt(line string, minLen int) (LongString, bool) {
	for i := 0; i < len(line); i++ {
		if line[i] != '"' {
			continue
		}
		start := i
		i++
		for i < len(line) && (line[i] != '"' || line[i-1] == '\\') {
			i++
		}
		end := min(i+1, len(line))
		if !strings.HasSuffix(strings.TrimRight(line[:start], " \t"), ":") {
			continue
		}
		closing := min(i, len(line))
		n := GraphemeCount(line[start+1 : closing])
		if n >= minLen {
			return LongString{
				Start: ByteToGraphemeOffset(line, start),
				End:   ByteToGraphemeOffset(line, end),
				Len:   n,
			}, true
		}
	}
	return LongString{}, false
}
