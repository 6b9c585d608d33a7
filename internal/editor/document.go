package editor

import (
	"slices"
	"strings"
)

// Position is a cursor location: zero-based row and grapheme column.
type Position struct {
	Row int
	Col int
}

// Less orders positions row-major.
func (p Position) Less(o Position) bool {
	if p.Row != o.Row {
		return p.Row < o.Row
	}
	return p.Col < o.Col
}

// Yank is the last cut or copied text.
type Yank struct {
	Text     string
	Linewise bool
}

// Lines splits a line-wise yank into its rows.
func (y Yank) Lines() []string {
	return strings.Split(y.Text, "\n")
}

// Document owns the line buffer, cursor, viewport top and yank buffer.
// It always holds at least one line.
type Document struct {
	lines  []string
	cursor Position
	top    int
	yank   Yank
}

// NewDocument splits content into lines. Empty content is one empty line.
func NewDocument(content string) *Document {
	d := &Document{}
	d.SetContent(content)
	return d
}

// SetContent replaces the buffer and resets cursor and viewport.
func (d *Document) SetContent(content string) {
	d.lines = strings.Split(content, "\n")
	d.cursor = Position{}
	d.top = 0
}

// Content joins the lines with newlines.
func (d *Document) Content() string { return strings.Join(d.lines, "\n") }

// Lines returns the live line slice. Callers must not modify it.
func (d *Document) Lines() []string { return d.lines }

// Line returns row's text.
func (d *Document) Line(row int) string { return d.lines[row] }

// LineCount returns the number of lines.
func (d *Document) LineCount() int { return len(d.lines) }

// LineLen returns row's length in graphemes.
func (d *Document) LineLen(row int) int { return GraphemeCount(d.lines[row]) }

// Cursor returns the cursor position.
func (d *Document) Cursor() Position { return d.cursor }

// SetCursor moves the cursor without clamping.
func (d *Document) SetCursor(p Position) { d.cursor = p }

// Top returns the first row of the viewport.
func (d *Document) Top() int { return d.top }

// SetTop moves the viewport, clamped to the buffer.
func (d *Document) SetTop(top int) {
	d.top = max(0, min(top, len(d.lines)-1))
}

// Yank returns the yank buffer.
func (d *Document) Yank() Yank { return d.yank }

// SetYank replaces the yank buffer.
func (d *Document) SetYank(y Yank) { d.yank = y }

// Snapshot copies the buffer and cursor for undo.
func (d *Document) Snapshot() Snapshot {
	return Snapshot{Lines: slices.Clone(d.lines), Cursor: d.cursor}
}

// Restore replaces buffer and cursor with s.
func (d *Document) Restore(s Snapshot) {
	d.lines = slices.Clone(s.Lines)
	if len(d.lines) == 0 {
		d.lines = []string{""}
	}
	d.cursor = s.Cursor
}

func (d *Document) setLine(row int, text string) { d.lines[row] = text }

func (d *Document) insertLines(at int, lines ...string) {
	d.lines = slices.Insert(d.lines, at, lines...)
}

// deleteLines removes rows [from, from+n). The buffer is left with one empty
// line if everything was removed.
func (d *Document) deleteLines(from, n int) {
	d.lines = slices.Delete(d.lines, from, from+n)
	if len(d.lines) == 0 {
		d.lines = []string{""}
	}
}

func (d *Document) setLines(lines []string) {
	if len(lines) == 0 {
		lines = []string{""}
	}
	d.lines = lines
}
