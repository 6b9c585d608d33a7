package editor

// moveRows moves the cursor n rows, counting only visible rows when folds
// are present.
func (e *Editor) moveRows(n int) {
	if n == 0 {
		return
	}
	c := &e.doc.cursor
	if e.folds.Len() == 0 {
		c.Row += n
		return
	}
	dir := 1
	if n < 0 {
		dir, n = -1, -n
	}
	c.Row = e.folds.SkipVisible(c.Row, n, dir, e.doc.LineCount())
}

// scrollLines scrolls the viewport by one visible row, dragging the cursor
// along when it would leave the screen.
func (e *Editor) scrollLines(dir int) {
	top := e.doc.Top()
	next := top + dir
	if e.folds.Len() > 0 {
		next = e.folds.NextVisible(top, dir, e.doc.LineCount())
	}
	e.doc.SetTop(next)
	top = e.doc.Top()
	c := &e.doc.cursor
	if c.Row < top {
		c.Row = top
	}
	if bottom := e.folds.SkipVisible(top, e.opts.Height-1, 1, e.doc.LineCount()); c.Row > bottom {
		c.Row = bottom
	}
}

// moveWordForward skips the rest of the current word and the following
// non-word characters. At the end of a line it wraps to the first non-blank
// of the next line.
func (e *Editor) moveWordForward() {
	c := &e.doc.cursor
	gs := Graphemes(e.line())
	col := c.Col
	for col < len(gs) && isWordGrapheme(gs[col]) {
		col++
	}
	for col < len(gs) && !isWordGrapheme(gs[col]) {
		col++
	}
	if col >= len(gs) && c.Row < e.doc.LineCount()-1 {
		c.Row++
		c.Col = leadingSpace(e.line())
		return
	}
	c.Col = min(col, max(0, len(gs)-1))
}

// moveWordBackward moves to the start of the previous word. At column 0 it
// wraps to the end of the previous line.
func (e *Editor) moveWordBackward() {
	c := &e.doc.cursor
	if c.Col == 0 {
		if c.Row > 0 {
			c.Row--
			c.Col = max(0, e.lineLen()-1)
		}
		return
	}
	gs := Graphemes(e.line())
	col := min(c.Col, len(gs)) - 1
	for col > 0 && !isWordGrapheme(gs[col]) {
		col--
	}
	for col > 0 && isWordGrapheme(gs[col-1]) {
		col--
	}
	c.Col = max(0, col)
}
