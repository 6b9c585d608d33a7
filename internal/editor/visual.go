package editor

import (
	"fmt"
	"strings"
)

type visualHandler struct{}

func (visualHandler) handle(e *Editor, k Key) {
	if !e.pending.IsEmpty() {
		e.resolvePending(k)
		return
	}
	if k.Name == KeyEscape {
		e.setMode(normalMode)
		e.status = ""
		return
	}
	switch k.char() {
	case "v":
		e.toggleVisual(false)
		return
	case "V":
		e.toggleVisual(true)
		return
	case "d", "y", "c":
		e.visualOperator(k.char())
		return
	}
	if op, ok := operatorKey(k); ok {
		if kind, ok := e.combos.IsOperator(op); ok && (kind == KindMotion || op == 'z') {
			e.pending.SetOperator(op)
			return
		}
	}
	cmd, ok := e.commands.Get(ModeNormal, k.Name)
	if !ok {
		return
	}
	switch cmd.Kind() {
	case KindMotion, KindView, KindMode:
		cmd.Execute(e)
	}
}

// toggleVisual leaves Visual mode when the same kind is pressed again and
// switches kind otherwise.
func (e *Editor) toggleVisual(linewise bool) {
	if e.mode.Linewise == linewise {
		e.setMode(normalMode)
		e.status = ""
		return
	}
	e.setMode(Mode{Kind: ModeVisual, Linewise: linewise})
	if linewise {
		e.status = "-- VISUAL LINE --"
	} else {
		e.status = "-- VISUAL --"
	}
}

// selectionRange returns the ordered inclusive selection. Line-wise ranges
// run from column 0 to the end of the last line.
func (e *Editor) selectionRange() (Position, Position) {
	a, c := e.anchor, e.doc.cursor
	if e.mode.Linewise {
		if c.Row < a.Row {
			a, c = c, a
		}
		return Position{Row: a.Row}, Position{Row: c.Row, Col: e.doc.LineLen(c.Row)}
	}
	if c.Less(a) {
		a, c = c, a
	}
	return a, c
}

// visualOperator applies d, y or c to the selection and leaves Visual mode.
func (e *Editor) visualOperator(op string) {
	if op != "y" && e.refuseReadOnly() {
		start, _ := e.selectionRange()
		e.doc.cursor = start
		e.setMode(normalMode)
		return
	}
	linewise := e.mode.Linewise
	e.setMode(normalMode)
	if linewise {
		e.visualLinewise(op)
	} else {
		e.visualCharwise(op)
	}
}

func (e *Editor) visualLinewise(op string) {
	start, end := e.selectionRange()
	selected := append([]string(nil), e.doc.Lines()[start.Row:end.Row+1]...)
	e.setYank(Yank{Text: strings.Join(selected, "\n"), Linewise: true})
	c := &e.doc.cursor
	if op == "y" {
		*c = Position{Row: start.Row}
		e.status = fmt.Sprintf("%d lines yanked", len(selected))
		return
	}

	e.checkpoint()
	if len(selected) == e.doc.LineCount() {
		e.replaceLines([]string{""})
	} else {
		e.deleteLines(start.Row, len(selected))
	}
	*c = Position{Row: min(start.Row, e.doc.LineCount()-1)}
	if op != "c" {
		e.status = fmt.Sprintf("%d lines deleted", len(selected))
		return
	}
	indent := indentOf(selected[0])
	pad := strings.Repeat(" ", indent)
	if e.doc.LineCount() == 1 && e.doc.Line(0) == "" {
		e.setLine(0, pad)
	} else {
		e.insertLines(c.Row, pad)
	}
	c.Col = indent
	e.enterInsert(true)
}

func (e *Editor) visualCharwise(op string) {
	start, end := e.selectionRange()
	lines := e.doc.Lines()
	var text string
	if start.Row == end.Row {
		text = SliceByGraphemes(lines[start.Row], start.Col, end.Col+1)
	} else {
		parts := []string{SliceByGraphemes(lines[start.Row], start.Col, GraphemeCount(lines[start.Row]))}
		parts = append(parts, lines[start.Row+1:end.Row]...)
		parts = append(parts, SliceByGraphemes(lines[end.Row], 0, end.Col+1))
		text = strings.Join(parts, "\n")
	}
	e.setYank(Yank{Text: text})
	c := &e.doc.cursor
	if op == "y" {
		*c = start
		e.status = "yanked"
		return
	}

	e.checkpoint()
	head := SliceByGraphemes(lines[start.Row], 0, start.Col)
	last := lines[end.Row]
	tail := SliceByGraphemes(last, end.Col+1, GraphemeCount(last))
	e.setLine(start.Row, head+tail)
	e.deleteLines(start.Row+1, end.Row-start.Row)
	*c = start
	if op == "c" {
		e.enterInsert(true)
		return
	}
	e.status = "deleted"
}
