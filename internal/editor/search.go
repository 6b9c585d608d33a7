package editor

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/zjrosen/jvim/internal/jsonpath"
	"github.com/zjrosen/jvim/internal/jsonx"
	"github.com/zjrosen/jvim/internal/log"
	"github.com/zjrosen/jvim/internal/regexcache"
)

// Match is a search hit on one row, in grapheme columns. End is exclusive.
type Match struct {
	Row   int
	Start int
	End   int
}

func (m Match) pos() Position { return Position{Row: m.Row, Col: m.Start} }

type searchState struct {
	pattern  string
	backward bool
	matches  []Match
	byRow    map[int][]int
	current  int
	history  []string
	// version is the buffer version the matches were computed against.
	version uint64
}

func (s *searchState) reset() {
	s.matches = nil
	s.byRow = nil
	s.current = -1
}

func (s *searchState) setMatches(matches []Match) {
	s.matches = matches
	s.byRow = make(map[int][]int, len(matches))
	for i, m := range matches {
		s.byRow[m.Row] = append(s.byRow[m.Row], i)
	}
	s.current = -1
}

// SearchPattern returns the last executed search pattern.
func (e *Editor) SearchPattern() string { return e.search.pattern }

// MatchesOnRow returns the search matches on row, in column order.
func (e *Editor) MatchesOnRow(row int) []Match {
	idx := e.search.byRow[row]
	if len(idx) == 0 {
		return nil
	}
	out := make([]Match, len(idx))
	for i, j := range idx {
		out[i] = e.search.matches[j]
	}
	return out
}

// CurrentMatch returns the match the cursor was last moved to.
func (e *Editor) CurrentMatch() (Match, bool) {
	if e.search.current < 0 || e.search.current >= len(e.search.matches) {
		return Match{}, false
	}
	return e.search.matches[e.search.current], true
}

// MatchCount returns the number of matches of the last search.
func (e *Editor) MatchCount() int { return len(e.search.matches) }

// ClearSearch drops the matches of the last search.
func (e *Editor) ClearSearch() { e.search.reset() }

// searchHandler edits the '/' or '?' line.
type searchHandler struct{}

func (searchHandler) handle(e *Editor, k Key) {
	switch k.Name {
	case KeyEscape:
		e.setMode(normalMode)
		e.input = ""
		e.historyIdx = -1
		e.status = ""
	case KeyEnter:
		pattern := e.input
		backward := e.mode.Backward
		e.input = ""
		e.historyIdx = -1
		e.setMode(normalMode)
		if pattern != "" {
			e.search.history = pushHistory(e.search.history, pattern, e.opts.HistoryLimit)
			e.Search(pattern, backward)
		}
	case KeyBackspace:
		if !e.backspaceInput() {
			e.setMode(normalMode)
		}
	case KeyUp:
		e.input, e.historyIdx = historyPrev(e.search.history, e.historyIdx, e.input)
	case KeyDown:
		e.input, e.historyIdx = historyNext(e.search.history, e.historyIdx, e.input)
	default:
		e.typeInput(k)
	}
}

// Search runs pattern over the buffer and moves to the nearest match in the
// given direction. Patterns starting with "$." or "$[", or ending in \j, are
// JSONPath queries; everything else is a regular expression.
func (e *Editor) Search(pattern string, backward bool) {
	e.search.pattern = pattern
	e.search.backward = backward
	if !e.findMatches() {
		return
	}
	if len(e.search.matches) == 0 {
		e.status = "Pattern not found: " + pattern
		return
	}
	e.search.current = e.nearestMatch(backward, false)
	e.gotoCurrentMatch()
}

// findMatches recomputes the matches of the current pattern. It reports false
// and sets the status when the pattern is invalid.
func (e *Editor) findMatches() bool {
	pattern := e.search.pattern
	var (
		matches []Match
		ok      bool
	)
	switch {
	case strings.HasSuffix(pattern, `\j`):
		matches, ok = e.pathMatches(strings.TrimSuffix(pattern, `\j`))
	case jsonpath.IsPathPattern(pattern):
		matches, ok = e.pathMatches(pattern)
	default:
		matches, ok = e.regexMatches(pattern)
	}
	if !ok {
		e.search.reset()
		return false
	}
	e.search.setMatches(matches)
	e.search.version = e.version
	log.Debug(log.CatSearch, "search", "pattern", pattern, "matches", len(matches))
	return true
}

// compileSearch applies \c, \C and smart case to a regex pattern.
func compileSearch(pattern string) (*regexp.Regexp, error) {
	switch {
	case strings.HasSuffix(pattern, `\c`):
		return regexcache.CompileFold(strings.TrimSuffix(pattern, `\c`))
	case strings.HasSuffix(pattern, `\C`):
		return regexcache.Compile(strings.TrimSuffix(pattern, `\C`))
	case isLowerPattern(pattern):
		return regexcache.CompileFold(pattern)
	}
	return regexcache.Compile(pattern)
}

// isLowerPattern reports whether pattern has a lowercase letter and no
// uppercase one.
func isLowerPattern(pattern string) bool {
	lower := false
	for _, r := range pattern {
		if unicode.IsUpper(r) {
			return false
		}
		if unicode.IsLower(r) {
			lower = true
		}
	}
	return lower
}

func (e *Editor) regexMatches(pattern string) ([]Match, bool) {
	re, err := compileSearch(pattern)
	if err != nil {
		e.status = "Invalid pattern: " + err.Error()
		return nil, false
	}
	var out []Match
	for row, line := range e.doc.Lines() {
		for _, loc := range re.FindAllStringIndex(line, -1) {
			out = append(out, Match{
				Row:   row,
				Start: ByteToGraphemeOffset(line, loc[0]),
				End:   ByteToGraphemeOffset(line, loc[1]),
			})
		}
	}
	return out, true
}

// pathMatches resolves a JSONPath query to text spans. In JSONL mode every
// record is queried on its own and malformed records are skipped.
func (e *Editor) pathMatches(pattern string) ([]Match, bool) {
	q, err := jsonpath.ParseQuery(pattern)
	if err != nil {
		e.status = "Invalid JSONPath: " + err.Error()
		return nil, false
	}
	var out []Match
	found := false
	err = e.eachRecord(func(root *jsonx.Value, offset int) {
		for _, loc := range q.Find(root) {
			found = true
			if m, ok := e.locationSpan(root, loc, offset, false); ok {
				out = append(out, m)
			}
		}
	})
	if err != nil {
		e.status = "Invalid JSON: " + syntaxSummary(err)
		return nil, false
	}
	if !found {
		e.status = "JSONPath not found: " + pattern
		return nil, false
	}
	return out, true
}

// eachRecord parses the buffer (each record in JSONL mode) and calls fn with
// the tree and the row its text starts on.
func (e *Editor) eachRecord(fn func(root *jsonx.Value, offset int)) error {
	lines := e.doc.Lines()
	if !e.opts.JSONL {
		root, err := jsonx.Parse(e.doc.Content())
		if err != nil {
			return err
		}
		fn(root, 0)
		return nil
	}
	starts := jsonx.BlockStarts(lines)
	for i, block := range jsonx.SplitBlocks(e.doc.Content()) {
		root, err := jsonx.Parse(block)
		if err != nil {
			var se *jsonx.SyntaxError
			if errors.As(err, &se) {
				log.Debug(log.CatSearch, "skipping malformed record", "record", i+1, "error", se.Msg)
			}
			continue
		}
		fn(root, starts[i])
	}
	return nil
}

// locationSpan maps a matched location to its text span. Scalars map to the
// value literal; containers map to their key, or to the opening bracket when
// they have none. With keyOnly the key span is returned for any member.
func (e *Editor) locationSpan(root *jsonx.Value, loc jsonpath.Location, offset int, keyOnly bool) (Match, bool) {
	v, ok := jsonpath.ValueAt(root, loc)
	if !ok {
		return Match{}, false
	}
	if member, ok := jsonpath.MemberAt(root, loc); ok && (keyOnly || v.IsContainer()) {
		return e.spanOf(member.KeyStart, member.KeyEnd, offset), true
	}
	if keyOnly {
		return Match{}, false
	}
	if v.IsContainer() {
		end := v.Start
		end.Col++
		return e.spanOf(v.Start, end, offset), true
	}
	return e.spanOf(v.Start, v.End, offset), true
}

// spanOf converts a single-line byte span from the parser into grapheme
// columns of the buffer.
func (e *Editor) spanOf(start, end jsonx.Pos, offset int) Match {
	row := start.Line + offset
	line := e.doc.Line(row)
	endCol := end.Col
	if end.Line != start.Line {
		endCol = len(line)
	}
	return Match{
		Row:   row,
		Start: ByteToGraphemeOffset(line, start.Col),
		End:   ByteToGraphemeOffset(line, endCol),
	}
}

// nearestMatch finds the match index closest to the cursor. strict excludes
// a match at the cursor itself; the search wraps at either end.
func (e *Editor) nearestMatch(backward, strict bool) int {
	ms := e.search.matches
	cur := e.doc.cursor
	if !backward {
		for i, m := range ms {
			if cur.Less(m.pos()) || (!strict && m.pos() == cur) {
				return i
			}
		}
		return 0
	}
	for i := len(ms) - 1; i >= 0; i-- {
		if ms[i].pos().Less(cur) || (!strict && ms[i].pos() == cur) {
			return i
		}
	}
	return len(ms) - 1
}

// gotoMatch implements n (reverse=false) and N (reverse=true).
func (e *Editor) gotoMatch(reverse bool) {
	if e.search.pattern != "" && e.search.version != e.version {
		if !e.findMatches() {
			return
		}
	}
	if len(e.search.matches) == 0 {
		if e.search.pattern != "" {
			e.status = "Pattern not found: " + e.search.pattern
		} else {
			e.status = "No previous search"
		}
		return
	}
	e.search.current = e.nearestMatch(e.search.backward != reverse, true)
	e.gotoCurrentMatch()
}

func (e *Editor) gotoCurrentMatch() {
	m := e.search.matches[e.search.current]
	e.folds.UnfoldFor(m.Row)
	e.doc.cursor = m.pos()
	e.scrollCursorTo(scrollRatio)
	e.status = fmt.Sprintf("/%s  [%d/%d]", e.search.pattern, e.search.current+1, len(e.search.matches))
}
