package app

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/jvim/internal/diff"
	"github.com/zjrosen/jvim/internal/editor"
)

func newTestPane(content string, opts editor.Options, w, h int) *Pane {
	p := NewPane(editor.New(content, opts), true, "")
	p.SetSize(w, h)
	return p
}

func plainLines(p *Pane) []string {
	return strings.Split(ansi.Strip(p.View()), "\n")
}

func TestPane_ViewFillsHeight(t *testing.T) {
	p := newTestPane("{\n  \"a\": 1\n}", editor.Options{}, 40, 8)
	lines := plainLines(p)

	require.Len(t, lines, 8)
	assert.Equal(t, `  1 {`, strings.TrimRight(lines[0], " "))
	assert.Equal(t, `  2   "a": 1`, strings.TrimRight(lines[1], " "))
	assert.Equal(t, "  ~", strings.TrimRight(lines[3], " "))
	assert.Contains(t, lines[6], "NORMAL")
	assert.Contains(t, lines[6], "Ln 1/3, Col 1")
	for _, l := range lines[:6] {
		assert.Equal(t, 40, ansi.StringWidth(l))
	}
}

func TestPane_TooSmall(t *testing.T) {
	p := newTestPane("{}", editor.Options{}, 5, 2)
	assert.Equal(t, "(too small)", p.View())
}

func TestPane_ReadOnlyBadgeAndPending(t *testing.T) {
	p := newTestPane("{}", editor.Options{ReadOnly: true}, 60, 5)
	p.Editor().HandleKey(editor.Char('z'))

	status := plainLines(p)[3]
	assert.Contains(t, status, " RO   z")
}

func TestPane_CommandLine(t *testing.T) {
	p := newTestPane("{}", editor.Options{}, 40, 5)
	p.Editor().HandleKeys(editor.Keys(":wq")...)
	assert.True(t, strings.HasPrefix(plainLines(p)[4], ":wq"))

	p.Editor().HandleKey(editor.Named(editor.KeyEscape))
	p.Editor().HandleKeys(editor.Keys("?ab")...)
	assert.True(t, strings.HasPrefix(plainLines(p)[4], "?ab"))
}

func TestPane_FoldSummary(t *testing.T) {
	content := "{\n  \"a\": [\n    1,\n    2\n  ],\n  \"b\": 3\n}"
	p := newTestPane(content, editor.Options{}, 40, 10)
	ed := p.Editor()
	ed.Folds().Toggle(ed.Lines(), 1)

	lines := plainLines(p)
	assert.Contains(t, lines[1], `"a": [ ... (3 lines)`)
	assert.Contains(t, lines[2], `"b": 3`)
	assert.Equal(t, []int{0, 1, 5, 6}, p.visibleRows(10))
}

func TestPane_CollapsedStringPreview(t *testing.T) {
	content := "{\n  \"k\": \"abcdefghijklmnopqrstuvwxyz\"\n}"
	p := newTestPane(content, editor.Options{CollapseLen: 10, PreviewLen: 3}, 60, 6)

	require.True(t, p.Editor().Folds().IsCollapsed(1))
	line := plainLines(p)[1]
	assert.Contains(t, line, `"k": "abc..." (26 chars)`)
	assert.NotContains(t, line, "xyz")
}

func TestPane_JSONLRecordColumn(t *testing.T) {
	p := newTestPane("{\"a\":1}\n{\"b\":2}", editor.Options{JSONL: true}, 40, 12)
	lines := plainLines(p)

	// Line number, record number, then text.
	assert.True(t, strings.HasPrefix(lines[0], "  1  1 {"), lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "  2    "), lines[1])
	var second string
	for _, l := range lines {
		if strings.Contains(l, " 2 {") {
			second = l
		}
	}
	assert.NotEmpty(t, second)
}

func TestPane_HorizontalScroll(t *testing.T) {
	long := `{"k": "` + strings.Repeat("x", 80) + `"}`
	p := newTestPane(long, editor.Options{CollapseLen: 1000}, 30, 4)
	ed := p.Editor()
	ed.HandleKey(editor.Char('$'))
	p.View()

	assert.Positive(t, p.Left())
	assert.Contains(t, plainLines(p)[0], `"}`)

	ed.HandleKey(editor.Char('0'))
	p.View()
	assert.Equal(t, 0, p.Left())
}

func TestPane_DiffDecorations(t *testing.T) {
	p := newTestPane("a\n\nb", editor.Options{}, 30, 6)
	p.decorate = func(row int) rowDecoration {
		if row == 1 {
			return rowDecoration{filler: true}
		}
		return rowDecoration{words: []wordSpan{{start: 0, end: 1, kind: diff.SegmentAdded}}}
	}
	lines := plainLines(p)
	assert.Contains(t, lines[1], "╱╱╱")
	assert.Contains(t, lines[0], "a")
}

func TestCursorCell(t *testing.T) {
	cells := []cell{{src: 0}, {src: 1}, {src: -1}, {src: -1}, {src: 9}}

	assert.Equal(t, 1, cursorCell(cells, 1))
	assert.Equal(t, 2, cursorCell(cells, 4), "hidden column maps to the first added cell")
	assert.Equal(t, 4, cursorCell(cells, 9))
	assert.Equal(t, 5, cursorCell(cells, 10))
}

func TestWordSpans(t *testing.T) {
	segs := []diff.Segment{
		{Kind: diff.SegmentUnchanged, Text: `"k": `},
		{Kind: diff.SegmentAdded, Text: "12"},
		{Kind: diff.SegmentUnchanged, Text: ","},
	}
	assert.Equal(t, []wordSpan{{start: 5, end: 7, kind: diff.SegmentAdded}}, wordSpans(segs))
}
