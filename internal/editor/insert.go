package editor

import "strings"

type insertHandler struct{}

func (insertHandler) handle(e *Editor, k Key) {
	c := &e.doc.cursor
	switch k.Name {
	case KeyEscape:
		e.dot.stop()
		e.setMode(normalMode)
		c.Col = max(0, c.Col-1)
		e.status = ""
		return
	case KeyBackspace:
		e.insertBackspace()
		return
	case KeyEnter:
		e.insertNewline()
		return
	case KeyTab:
		e.insertText(strings.Repeat(" ", indentUnit))
		return
	case KeyEnd:
		c.Col = e.lineLen()
		return
	case KeyHome:
		c.Col = leadingSpace(e.line())
		return
	case KeyLeft:
		c.Col--
		return
	case KeyRight:
		c.Col++
		return
	case KeyUp:
		c.Row--
		return
	case KeyDown:
		c.Row++
		return
	}
	if !k.printable() {
		return
	}
	if ch := k.char(); ch == "}" || ch == "]" {
		if e.insertClosing(ch) {
			return
		}
	}
	e.insertText(k.Text)
}

// insertText inserts text (which may contain newlines from a paste) at the
// cursor.
func (e *Editor) insertText(text string) {
	e.insertCheckpoint()
	c := &e.doc.cursor
	line := e.line()
	n := GraphemeCount(line)
	at := min(c.Col, n)
	parts := strings.Split(text, "\n")
	if len(parts) == 1 {
		e.setLine(c.Row, InsertAtGrapheme(line, at, text))
		c.Col = at + GraphemeCount(text)
		return
	}
	tail := SliceByGraphemes(line, at, n)
	last := parts[len(parts)-1]
	rest := append([]string(nil), parts[1:]...)
	rest[len(rest)-1] = last + tail
	e.setLine(c.Row, SliceByGraphemes(line, 0, at)+parts[0])
	e.insertLines(c.Row+1, rest...)
	c.Row += len(rest)
	c.Col = GraphemeCount(last)
}

// insertClosing dedents a closing bracket typed on a whitespace-only prefix.
func (e *Editor) insertClosing(ch string) bool {
	c := &e.doc.cursor
	line := e.line()
	before := SliceByGraphemes(line, 0, c.Col)
	if strings.TrimSpace(before) != "" {
		return false
	}
	e.insertCheckpoint()
	indent := max(0, GraphemeCount(before)-indentUnit)
	e.setLine(c.Row, strings.Repeat(" ", indent)+ch+SliceByGraphemes(line, c.Col, GraphemeCount(line)))
	c.Col = indent + 1
	return true
}

// insertBackspace deletes before the cursor, joining with the previous line
// at column 0.
func (e *Editor) insertBackspace() {
	c := &e.doc.cursor
	if c.Col == 0 && c.Row == 0 {
		return
	}
	e.insertCheckpoint()
	if c.Col > 0 {
		e.setLine(c.Row, DeleteGraphemeRange(e.line(), c.Col-1, c.Col))
		c.Col--
		return
	}
	prev := e.doc.Line(c.Row - 1)
	c.Col = GraphemeCount(prev)
	e.setLine(c.Row-1, prev+e.line())
	e.deleteLines(c.Row, 1)
	c.Row--
}

// insertNewline splits the line, keeping indentation. Between an opening
// and closing bracket it opens an indented empty line between them.
func (e *Editor) insertNewline() {
	e.insertCheckpoint()
	c := &e.doc.cursor
	line := e.line()
	n := GraphemeCount(line)
	at := min(c.Col, n)
	indent := indentOf(line)
	head, tail := SliceByGraphemes(line, 0, at), SliceByGraphemes(line, at, n)
	after := strings.TrimLeft(tail, " \t")
	pad := strings.Repeat(" ", indent)

	if opensBlock(head) && (strings.HasPrefix(after, "}") || strings.HasPrefix(after, "]")) {
		inner := pad + strings.Repeat(" ", indentUnit)
		e.setLine(c.Row, head)
		e.insertLines(c.Row+1, inner, pad+after)
		c.Row++
		c.Col = len(inner)
		return
	}
	if opensBlock(head) {
		pad += strings.Repeat(" ", indentUnit)
	}
	e.setLine(c.Row, head)
	c.Row++
	e.insertLines(c.Row, pad+tail)
	c.Col = len(pad)
}
