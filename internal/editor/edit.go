package editor

import "strings"

// ============================================================================
// Normal mode edits
// ============================================================================

func (e *Editor) deleteChar() ExecuteResult {
	c := e.doc.cursor
	if c.Col < e.lineLen() {
		e.checkpoint()
		e.setLine(c.Row, DeleteGraphemeRange(e.line(), c.Col, c.Col+1))
	}
	return Executed
}

// deleteLine implements dd. The last remaining line is emptied instead of
// removed.
func (e *Editor) deleteLine() {
	e.checkpoint()
	c := &e.doc.cursor
	e.setYank(Yank{Text: e.line(), Linewise: true})
	if e.doc.LineCount() > 1 {
		e.deleteLines(c.Row, 1)
		c.Row = min(c.Row, e.doc.LineCount()-1)
	} else {
		e.setLine(0, "")
	}
	c.Col = 0
	e.status = "line deleted"
}

// deleteWord removes the word under the cursor plus trailing spaces, or a
// single character when the cursor is not on a word.
func (e *Editor) deleteWord() {
	c := e.doc.cursor
	gs := Graphemes(e.line())
	start := min(c.Col, len(gs))
	col := start
	for col < len(gs) && isWordGrapheme(gs[col]) {
		col++
	}
	for col < len(gs) && gs[col] == " " {
		col++
	}
	if col == start && col < len(gs) {
		col++
	}
	e.setLine(c.Row, strings.Join(gs[:start], "")+strings.Join(gs[col:], ""))
}

// changeLine implements cc: the line is replaced by its indentation.
func (e *Editor) changeLine() {
	e.checkpoint()
	indent := e.currentIndent()
	e.setYank(Yank{Text: e.line(), Linewise: true})
	e.setLine(e.doc.cursor.Row, strings.Repeat(" ", indent))
	e.doc.cursor.Col = indent
	e.enterInsert(true)
}

// opensBlock reports whether line ends with an opening bracket.
func opensBlock(line string) bool {
	t := strings.TrimRight(line, " \t")
	return strings.HasSuffix(t, "{") || strings.HasSuffix(t, "[")
}

func (e *Editor) openLineBelow() {
	e.checkpoint()
	indent := e.currentIndent()
	if opensBlock(e.line()) {
		indent += indentUnit
	}
	c := &e.doc.cursor
	c.Row++
	e.insertLines(c.Row, strings.Repeat(" ", indent))
	c.Col = indent
	e.enterInsert(true)
}

func (e *Editor) openLineAbove() {
	e.checkpoint()
	indent := e.currentIndent()
	e.insertLines(e.doc.cursor.Row, strings.Repeat(" ", indent))
	e.doc.cursor.Col = indent
	e.enterInsert(true)
}

// paste inserts the yank buffer after (p) or before (P) the cursor.
func (e *Editor) paste(after bool) ExecuteResult {
	y := e.doc.Yank()
	if y == (Yank{}) {
		return Skipped
	}
	e.checkpoint()
	c := &e.doc.cursor
	if y.Linewise {
		at := c.Row
		if after {
			// A closed fold pastes below its last row.
			if end, ok := e.folds.FoldAt(c.Row); ok {
				at = end
			}
			at++
			c.Row = at
		}
		e.insertLines(at, y.Lines()...)
		c.Col = 0
		return Executed
	}

	line := e.line()
	n := GraphemeCount(line)
	at := min(c.Col, n)
	if after {
		at = min(c.Col+1, n)
	}
	head, tail := SliceByGraphemes(line, 0, at), SliceByGraphemes(line, at, n)
	parts := strings.Split(y.Text, "\n")
	if len(parts) == 1 {
		e.setLine(c.Row, head+y.Text+tail)
		c.Col = at + GraphemeCount(y.Text) - 1
		return Executed
	}
	last := parts[len(parts)-1]
	rest := append([]string(nil), parts[1:]...)
	rest[len(rest)-1] = last + tail
	e.setLine(c.Row, head+parts[0])
	e.insertLines(c.Row+1, rest...)
	c.Row += len(rest)
	c.Col = GraphemeCount(last) - 1
	return Executed
}

// joinLines implements J: the next line is appended after one space.
func (e *Editor) joinLines() ExecuteResult {
	c := &e.doc.cursor
	if c.Row >= e.doc.LineCount()-1 {
		return Skipped
	}
	e.checkpoint()
	cur := strings.TrimRightFunc(e.line(), isSpaceRune)
	next := strings.TrimLeftFunc(e.doc.Line(c.Row+1), isSpaceRune)
	c.Col = GraphemeCount(cur)
	e.setLine(c.Row, cur+" "+next)
	e.deleteLines(c.Row+1, 1)
	return Executed
}

func isSpaceRune(r rune) bool {
	return r == ' ' || r == '\t' || r == '\r' || r == '\n' || r == '\v' || r == '\f'
}

// ============================================================================
// Embedded JSON strings
// ============================================================================

// UpdateEmbeddedString replaces the string literal spanning [colStart, colEnd)
// on row with content encoded as a JSON string. Content that parses as JSON is
// minified first. The change is undoable.
func (e *Editor) UpdateEmbeddedString(row, colStart, colEnd int, content string) {
	if row < 0 || row >= e.doc.LineCount() {
		return
	}
	e.checkpoint()
	e.setLine(row, spliceString(e.doc.Line(row), colStart, colEnd, content))
}
