package editor

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/zjrosen/jvim/internal/jsonpath"
	"github.com/zjrosen/jvim/internal/jsonx"
	"github.com/zjrosen/jvim/internal/log"
	"github.com/zjrosen/jvim/internal/regexcache"
)

// substituteCmd is a parsed ":[range]s/pattern/replacement/flags".
type substituteCmd struct {
	rangeSpec   string
	from, to    string
	pattern     string
	replacement string
	global      bool
	ignoreCase  bool
}

// parseSubstitute splits a substitute command. Any character after 's' is the
// delimiter; a backslash before it makes it literal.
func parseSubstitute(cmd string) (substituteCmd, error) {
	m := substitutePattern.FindStringSubmatch(cmd)
	if m == nil {
		return substituteCmd{}, errors.New("invalid substitute command")
	}
	parts := splitDelimited(m[5], m[4])
	if len(parts) < 2 {
		return substituteCmd{}, errors.New("invalid substitute command")
	}
	s := substituteCmd{
		rangeSpec:   m[1],
		from:        m[2],
		to:          m[3],
		pattern:     parts[0],
		replacement: parts[1],
	}
	if len(parts) > 2 {
		s.global = strings.Contains(parts[2], "g")
		s.ignoreCase = strings.Contains(parts[2], "i")
	}
	if s.pattern == "" {
		return substituteCmd{}, errors.New("empty pattern")
	}
	return s, nil
}

func splitDelimited(s, delim string) []string {
	var parts []string
	var cur strings.Builder
	for i := 0; i < len(s); {
		switch {
		case s[i] == '\\' && strings.HasPrefix(s[i+1:], delim):
			cur.WriteString(delim)
			i += 1 + len(delim)
		case strings.HasPrefix(s[i:], delim):
			parts = append(parts, cur.String())
			cur.Reset()
			i += len(delim)
		default:
			cur.WriteByte(s[i])
			i++
		}
	}
	return append(parts, cur.String())
}

// Substitute runs a ":s" command. Patterns starting with "$." or "$[" rename
// keys or replace leaf values found by JSONPath; anything else is a regex
// replacement over the range.
func (e *Editor) Substitute(cmd string) {
	if e.refuseReadOnly() {
		return
	}
	s, err := parseSubstitute(cmd)
	if err != nil {
		e.status = err.Error()
		return
	}
	if jsonpath.IsPathPattern(s.pattern) {
		e.substitutePath(s)
		return
	}

	compile := regexcache.Compile
	if s.ignoreCase {
		compile = regexcache.CompileFold
	}
	re, err := compile(s.pattern)
	if err != nil {
		e.status = "invalid regex: " + err.Error()
		return
	}
	start, end, ok := e.substituteRange(s)
	if !ok {
		e.status = "invalid range"
		return
	}

	e.checkpoint()
	template := expandTemplate(s.replacement)
	total := 0
	for row := start; row <= end; row++ {
		line, n := replaceIn(re, e.doc.Line(row), template, s.global)
		if n > 0 {
			e.setLine(row, line)
			total += n
		}
	}
	if total == 0 {
		e.undo.Drop()
		e.status = "Pattern not found: " + s.pattern
		return
	}
	log.Debug(log.CatSubst, "regex substitute", "pattern", s.pattern, "count", total)
	e.status = fmt.Sprintf("%d substitution(s)", total)
}

// substituteRange resolves the row range, clamped to the buffer.
func (e *Editor) substituteRange(s substituteCmd) (int, int, bool) {
	last := e.doc.LineCount() - 1
	switch {
	case s.rangeSpec == "%":
		return 0, last, true
	case s.from != "":
		a, _ := strconv.Atoi(s.from)
		b, _ := strconv.Atoi(s.to)
		start, end := max(0, a-1), min(last, b-1)
		return start, end, start <= end
	}
	row := e.doc.cursor.Row
	return row, row, true
}

// replaceIn substitutes the first (or every) match in line.
func replaceIn(re *regexp.Regexp, line, template string, global bool) (string, int) {
	n := 1
	if global {
		n = -1
	}
	locs := re.FindAllStringSubmatchIndex(line, n)
	if len(locs) == 0 {
		return line, 0
	}
	var out []byte
	prev := 0
	for _, loc := range locs {
		out = append(out, line[prev:loc[0]]...)
		out = re.ExpandString(out, template, line, loc)
		prev = loc[1]
	}
	out = append(out, line[prev:]...)
	return string(out), len(locs)
}

// expandTemplate converts vi-style group references (\1, \g<name>) to the
// ${1} form used by regexp.Expand and escapes literal dollars.
func expandTemplate(repl string) string {
	var sb strings.Builder
	for i := 0; i < len(repl); i++ {
		c := repl[i]
		switch {
		case c == '$':
			sb.WriteString("$$")
		case c == '\\' && i+1 < len(repl):
			next := repl[i+1]
			switch {
			case next >= '0' && next <= '9':
				j := i + 1
				for j < len(repl) && repl[j] >= '0' && repl[j] <= '9' {
					j++
				}
				sb.WriteString("${" + repl[i+1:j] + "}")
				i = j - 1
			case next == 'g' && i+2 < len(repl) && repl[i+2] == '<':
				if end := strings.IndexByte(repl[i+3:], '>'); end >= 0 {
					sb.WriteString("${" + repl[i+3:i+3+end] + "}")
					i += 3 + end
				} else {
					sb.WriteByte(c)
				}
			case next == '\\':
				sb.WriteByte('\\')
				i++
			case next == 't':
				sb.WriteByte('\t')
				i++
			default:
				sb.WriteByte(c)
			}
		default:
			sb.WriteByte(c)
		}
	}
	return sb.String()
}

// substitutePath applies a JSONPath substitute. Without a filter operator the
// final key of each match is renamed; with one, matching leaf values are
// replaced. Spans are spliced bottom-up, right to left.
func (e *Editor) substitutePath(s substituteCmd) {
	expr, filter := jsonpath.SplitFilter(s.pattern)
	path, err := jsonpath.Compile(expr)
	if err != nil {
		e.status = "Invalid JSONPath: " + err.Error()
		return
	}
	rename := !filter.Active()
	unconditional := filter.Op == jsonpath.OpEq && filter.Empty

	var spans []Match
	found := false
	err = e.eachRecord(func(root *jsonx.Value, offset int) {
		for _, loc := range path.Find(root) {
			v, _ := jsonpath.ValueAt(root, loc)
			if filter.Active() && !unconditional && !filter.Match(v) {
				continue
			}
			found = true
			if rename {
				if last, ok := loc.Last(); !ok || last.IsIndex {
					continue
				}
			} else if v.IsContainer() {
				continue
			}
			if span, ok := e.locationSpan(root, loc, offset, rename); ok {
				spans = append(spans, span)
			}
		}
	})
	switch {
	case err != nil:
		e.status = "Invalid JSON: " + syntaxSummary(err)
		return
	case !found:
		e.status = "JSONPath not found: " + s.pattern
		return
	case len(spans) == 0 && rename:
		e.status = "No renamable keys found"
		return
	case len(spans) == 0:
		e.status = "JSONPath matches only objects/arrays (not substitutable)"
		return
	}
	if !s.global {
		spans = spans[:1]
	}

	encoded := encodeReplacement(s.replacement)
	if rename {
		encoded = jsonx.Quote(s.replacement)
	}

	e.checkpoint()
	slices.SortFunc(spans, func(a, b Match) int {
		if a.Row != b.Row {
			return b.Row - a.Row
		}
		return b.Start - a.Start
	})
	for _, m := range spans {
		line := e.doc.Line(m.Row)
		n := GraphemeCount(line)
		e.setLine(m.Row, SliceByGraphemes(line, 0, m.Start)+encoded+SliceByGraphemes(line, m.End, n))
	}
	log.Debug(log.CatSubst, "path substitute", "pattern", s.pattern, "count", len(spans), "rename", rename)
	e.status = fmt.Sprintf("%d substitution(s)", len(spans))
}

// encodeReplacement turns replacement text into a JSON literal: true, false,
// null, numbers and already-quoted strings are kept, anything else is quoted.
func encodeReplacement(repl string) string {
	switch repl {
	case "true", "false", "null":
		return repl
	}
	if v, err := jsonx.Parse(repl); err == nil && v.Kind == jsonx.Number {
		return repl
	}
	if len(repl) >= 2 && repl[0] == '"' && repl[len(repl)-1] == '"' {
		return repl
	}
	return jsonx.Quote(repl)
}
