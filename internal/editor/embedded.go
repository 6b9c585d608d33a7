package editor

import (
	"strings"

	"github.com/zjrosen/jvim/internal/jsonx"
	"github.com/zjrosen/jvim/internal/log"
)

// stringSpan is a string literal on one line. Start and End are grapheme
// columns that include the quotes; Value is the decoded text.
type stringSpan struct {
	Start int
	End   int
	Value string
}

// findStringAtCursor returns the first string value on the cursor line.
func (e *Editor) findStringAtCursor() (stringSpan, bool) {
	return findStringValue(e.line())
}

// findStringValue returns the first string value on line, that is the first
// string literal preceded by ':'.
func findStringValue(line string) (stringSpan, bool) {
	gs := Graphemes(line)
	for i := 0; i < len(gs); i++ {
		if gs[i] != `"` {
			continue
		}
		start := i
		for i++; i < len(gs) && gs[i] != `"`; i++ {
			if gs[i] == `\` {
				i++
			}
		}
		if i >= len(gs) {
			break
		}
		before := strings.TrimRight(strings.Join(gs[:start], ""), " \t")
		if !strings.HasSuffix(before, ":") {
			continue
		}
		v, err := jsonx.Parse(strings.Join(gs[start:i+1], ""))
		if err != nil || v.Kind != jsonx.String {
			continue
		}
		return stringSpan{Start: start, End: i + 1, Value: v.Str}, true
	}
	return stringSpan{}, false
}

// EmbeddedJSONAt returns the pretty-printed JSON held in the first string
// value on row. It reports false when there is none or it is not a list or
// dict.
func (e *Editor) EmbeddedJSONAt(row int) (string, bool) {
	if row < 0 || row >= e.doc.LineCount() {
		return "", false
	}
	span, ok := findStringValue(e.doc.Line(row))
	if !ok {
		return "", false
	}
	v, err := jsonx.Parse(span.Value)
	if err != nil || !v.IsContainer() {
		return "", false
	}
	return jsonx.Pretty(v), true
}

// editEmbedded asks the host to open the JSON held in the string value under
// the cursor in a nested editor.
func (e *Editor) editEmbedded() {
	span, ok := e.findStringAtCursor()
	if !ok {
		e.status = "cursor not on a string value"
		return
	}
	v, err := jsonx.Parse(span.Value)
	if err != nil {
		e.status = "string is not valid JSON"
		return
	}
	if !v.IsContainer() {
		e.status = "string is not a list or dict"
		return
	}
	log.Debug(log.CatEditor, "embedded edit", "row", e.doc.cursor.Row, "start", span.Start, "end", span.End)
	e.emit(EmbeddedEditRequested{
		Content:        jsonx.Pretty(v),
		SourceRow:      e.doc.cursor.Row,
		SourceColStart: span.Start,
		SourceColEnd:   span.End,
	})
}

// spliceString replaces grapheme columns [colStart, colEnd) of line with
// content as a JSON string literal.
func spliceString(line string, colStart, colEnd int, content string) string {
	if v, err := jsonx.Parse(content); err == nil {
		content = jsonx.Minify(v)
	}
	n := GraphemeCount(line)
	colStart = max(0, min(colStart, n))
	colEnd = max(colStart, min(colEnd, n))
	return SliceByGraphemes(line, 0, colStart) + jsonx.Quote(content) + SliceByGraphemes(line, colEnd, n)
}
