package editor

import (
	"fmt"

	"github.com/zjrosen/jvim/internal/diff"
)

// newDefaultRegistry binds the single-key Normal mode commands.
func newDefaultRegistry() *CommandRegistry {
	r := NewCommandRegistry()

	// Motions
	r.Register(ModeNormal, newCommand("move.left", KindMotion, []string{"h", KeyLeft}, func(e *Editor) {
		e.doc.cursor.Col--
	}))
	r.Register(ModeNormal, newCommand("move.right", KindMotion, []string{"l", KeyRight}, func(e *Editor) {
		e.doc.cursor.Col++
	}))
	r.Register(ModeNormal, newCommand("move.down", KindMotion, []string{"j", KeyDown}, func(e *Editor) {
		e.moveRows(1)
	}))
	r.Register(ModeNormal, newCommand("move.up", KindMotion, []string{"k", KeyUp}, func(e *Editor) {
		e.moveRows(-1)
	}))
	r.Register(ModeNormal, newCommand("move.word_forward", KindMotion, []string{"w"}, (*Editor).moveWordForward))
	r.Register(ModeNormal, newCommand("move.word_backward", KindMotion, []string{"b"}, (*Editor).moveWordBackward))
	r.Register(ModeNormal, newCommand("move.line_start", KindMotion, []string{"0"}, func(e *Editor) {
		e.doc.cursor.Col = 0
	}))
	r.Register(ModeNormal, newCommand("move.line_end", KindMotion, []string{"$", KeyEnd}, func(e *Editor) {
		e.doc.cursor.Col = max(0, e.lineLen()-1)
	}))
	r.Register(ModeNormal, newCommand("move.first_non_blank", KindMotion, []string{"^", KeyHome}, func(e *Editor) {
		e.doc.cursor.Col = leadingSpace(e.line())
	}))
	r.Register(ModeNormal, newCommand("move.last_line", KindMotion, []string{"G"}, func(e *Editor) {
		e.doc.cursor.Row = e.doc.LineCount() - 1
		e.scrollCursorToTop()
	}))
	r.Register(ModeNormal, newCommand("move.matching_bracket", KindMotion, []string{"%"}, func(e *Editor) {
		if p, ok := MatchBracket(e.doc.Lines(), e.doc.cursor); ok {
			e.doc.cursor = p
		}
	}))
	r.Register(ModeNormal, newCommand("move.page_down", KindMotion, []string{KeyPgDown, "ctrl+f"}, func(e *Editor) {
		e.moveRows(e.opts.Height)
	}))
	r.Register(ModeNormal, newCommand("move.page_up", KindMotion, []string{KeyPgUp, "ctrl+b"}, func(e *Editor) {
		e.moveRows(-e.opts.Height)
	}))
	r.Register(ModeNormal, newCommand("move.half_page_down", KindMotion, []string{"ctrl+d"}, func(e *Editor) {
		e.moveRows(e.opts.Height / 2)
	}))
	r.Register(ModeNormal, newCommand("move.half_page_up", KindMotion, []string{"ctrl+u"}, func(e *Editor) {
		e.moveRows(-e.opts.Height / 2)
	}))
	r.Register(ModeNormal, newCommand("scroll.down", KindMotion, []string{"ctrl+e"}, func(e *Editor) {
		e.scrollLines(1)
	}))
	r.Register(ModeNormal, newCommand("scroll.up", KindMotion, []string{"ctrl+y"}, func(e *Editor) {
		e.scrollLines(-1)
	}))
	r.Register(ModeNormal, newCommand("search.next", KindMotion, []string{"n"}, func(e *Editor) {
		e.gotoMatch(false)
	}))
	r.Register(ModeNormal, newCommand("search.prev", KindMotion, []string{"N"}, func(e *Editor) {
		e.gotoMatch(true)
	}))
	r.Register(ModeNormal, newCommand("status.position", KindView, []string{"ctrl+g"}, func(e *Editor) {
		e.status = e.positionSummary()
	}))

	// Mode entry
	r.Register(ModeNormal, newCommand("mode.visual", KindMode, []string{"v"}, func(e *Editor) {
		e.enterVisual(false)
	}))
	r.Register(ModeNormal, newCommand("mode.visual_line", KindMode, []string{"V"}, func(e *Editor) {
		e.enterVisual(true)
	}))
	r.Register(ModeNormal, newCommand("mode.search_forward", KindMode, []string{"/"}, func(e *Editor) {
		e.enterSearch(false)
	}))
	r.Register(ModeNormal, newCommand("mode.search_backward", KindMode, []string{"?"}, func(e *Editor) {
		e.enterSearch(true)
	}))
	r.Register(ModeNormal, newCommand("mode.command", KindMode, []string{":"}, func(e *Editor) {
		e.setMode(commandMode)
		e.input = ""
		e.historyIdx = -1
		e.status = ""
	}))

	// Insert entry
	r.Register(ModeNormal, newCommand("insert.before", KindInsert, []string{"i"}, func(e *Editor) {
		e.enterInsert(false)
	}))
	r.Register(ModeNormal, newCommand("insert.line_start", KindInsert, []string{"I"}, func(e *Editor) {
		e.doc.cursor.Col = leadingSpace(e.line())
		e.enterInsert(false)
	}))
	r.Register(ModeNormal, newCommand("insert.after", KindInsert, []string{"a"}, func(e *Editor) {
		e.doc.cursor.Col++
		e.enterInsert(false)
	}))
	r.Register(ModeNormal, newCommand("insert.line_end", KindInsert, []string{"A"}, func(e *Editor) {
		e.doc.cursor.Col = e.lineLen()
		e.enterInsert(false)
	}))
	r.Register(ModeNormal, newCommand("insert.open_below", KindInsert, []string{"o"}, (*Editor).openLineBelow))
	r.Register(ModeNormal, newCommand("insert.open_above", KindInsert, []string{"O"}, (*Editor).openLineAbove))

	// Edits
	r.Register(ModeNormal, &funcCommand{id: "delete.char", kind: KindEdit, keys: []string{"x"}, run: (*Editor).deleteChar})
	r.Register(ModeNormal, &funcCommand{id: "paste.after", kind: KindEdit, keys: []string{"p"}, run: func(e *Editor) ExecuteResult {
		return e.paste(true)
	}})
	r.Register(ModeNormal, &funcCommand{id: "paste.before", kind: KindEdit, keys: []string{"P"}, run: func(e *Editor) ExecuteResult {
		return e.paste(false)
	}})
	r.Register(ModeNormal, &funcCommand{id: "edit.join", kind: KindEdit, keys: []string{"J"}, run: (*Editor).joinLines})

	// History
	r.Register(ModeNormal, newCommand("history.undo", KindHistory, []string{"u"}, (*Editor).undoEdit))
	r.Register(ModeNormal, newCommand("history.redo", KindHistory, []string{"ctrl+r"}, (*Editor).redoEdit))
	r.Register(ModeNormal, newCommand("history.repeat", KindHistory, []string{"."}, (*Editor).repeatLast))

	return r
}

// newDefaultPendingRegistry binds the two-key combos.
func newDefaultPendingRegistry() *PendingCommandRegistry {
	r := NewPendingCommandRegistry()
	r.Operator('d', KindEdit)
	r.Operator('c', KindEdit)
	r.Operator('r', KindEdit)
	r.Operator('y', KindView)
	r.Operator('g', KindMotion)
	r.Operator('e', KindView)
	r.Operator('z', KindView)
	r.Operator(']', KindMotion)
	r.Operator('[', KindMotion)

	r.Register('d', "d", newCommand("delete.line", KindEdit, nil, (*Editor).deleteLine))
	r.Register('d', "w", newCommand("delete.word", KindEdit, nil, func(e *Editor) {
		e.checkpoint()
		e.deleteWord()
	}))
	r.Register('d', "$", newCommand("delete.to_eol", KindEdit, nil, func(e *Editor) {
		e.checkpoint()
		e.setLine(e.doc.cursor.Row, SliceByGraphemes(e.line(), 0, e.doc.cursor.Col))
	}))
	r.Register('d', "0", newCommand("delete.to_line_start", KindEdit, nil, func(e *Editor) {
		e.checkpoint()
		e.setLine(e.doc.cursor.Row, SliceByGraphemes(e.line(), e.doc.cursor.Col, e.lineLen()))
		e.doc.cursor.Col = 0
	}))
	r.Register('c', "w", newCommand("change.word", KindInsert, nil, func(e *Editor) {
		e.checkpoint()
		e.deleteWord()
		e.enterInsert(true)
	}))
	r.Register('c', "c", newCommand("change.line", KindInsert, nil, (*Editor).changeLine))
	r.Register('y', "y", newCommand("yank.line", KindView, nil, func(e *Editor) {
		e.setYank(Yank{Text: e.line(), Linewise: true})
		e.status = "line yanked"
	}))
	r.Register('g', "g", newCommand("move.first_line", KindMotion, nil, func(e *Editor) {
		e.doc.cursor = Position{}
		e.scrollCursorToTop()
	}))
	r.Register('e', "j", newCommand("embedded.edit", KindView, nil, (*Editor).editEmbedded))
	r.Register(']', "c", newCommand("hunk.next", KindMotion, nil, func(e *Editor) {
		e.gotoHunk(1)
	}))
	r.Register('[', "c", newCommand("hunk.prev", KindMotion, nil, func(e *Editor) {
		e.gotoHunk(-1)
	}))

	// Folds
	r.Register('z', "a", newCommand("fold.toggle", KindView, nil, func(e *Editor) {
		e.folds.Toggle(e.doc.Lines(), e.doc.cursor.Row)
	}))
	r.Register('z', "o", newCommand("fold.open", KindView, nil, func(e *Editor) {
		e.folds.Unfold(e.doc.cursor.Row)
	}))
	r.Register('z', "c", newCommand("fold.close", KindView, nil, func(e *Editor) {
		if header, moved := e.folds.Close(e.doc.Lines(), e.doc.cursor.Row); moved {
			e.doc.cursor.Row = header
		}
	}))
	r.Register('z', "M", newCommand("fold.close_all", KindView, nil, func(e *Editor) {
		e.folds.FoldAll(e.doc.Lines())
	}))
	r.Register('z', "R", newCommand("fold.open_all", KindView, nil, func(e *Editor) {
		e.folds.Clear()
	}))
	for depth := 1; depth <= 9; depth++ {
		r.Register('z', string(rune('0'+depth)), newCommand("fold.depth", KindView, nil, func(e *Editor) {
			e.folds.FoldAtDepth(e.doc.Lines(), depth)
		}))
	}
	return r
}

type normalHandler struct{}

func (normalHandler) handle(e *Editor, k Key) {
	if !e.pending.IsEmpty() {
		e.resolvePending(k)
		return
	}
	if op, ok := operatorKey(k); ok {
		if kind, ok := e.combos.IsOperator(op); ok {
			e.startPending(op, kind, k)
			return
		}
	}
	if cmd, ok := e.commands.Get(ModeNormal, k.Name); ok {
		e.run(cmd, k)
	}
}

// operatorKey returns the rune of a single-character key.
func operatorKey(k Key) (rune, bool) {
	ch := k.char()
	if ch == "" {
		return 0, false
	}
	r := []rune(ch)
	if len(r) != 1 {
		return 0, false
	}
	return r[0], true
}

// run executes cmd with read-only and dot-repeat bookkeeping.
func (e *Editor) run(cmd Command, k Key) {
	kind := cmd.Kind()
	if kind.mutates() && e.refuseReadOnly() {
		return
	}
	if kind.recorded() {
		e.dot.start(k)
	}
	res := cmd.Execute(e)
	switch {
	case !kind.recorded():
	case res == Skipped:
		e.dot.cancel()
	case e.mode.Kind != ModeInsert:
		e.dot.stop()
	}
}

func (e *Editor) startPending(op rune, kind CommandKind, k Key) {
	if kind.mutates() && e.refuseReadOnly() {
		return
	}
	if kind.recorded() {
		e.dot.start(k)
	}
	e.pending.SetOperator(op)
}

// resolvePending completes a two-key combo.
func (e *Editor) resolvePending(k Key) {
	op := e.pending.Operator()
	e.pending.Clear()
	ch := k.char()
	if k.Name == KeyEscape || ch == "" {
		e.status = ""
		e.dot.cancel()
		return
	}
	cmd, ok := e.combos.Get(op, ch)
	if !ok && op == 'r' {
		cmd, ok = replaceCharCommand(ch), true
	}
	if !ok {
		e.dot.cancel()
		e.status = "unknown: " + string(op) + ch
		return
	}
	kind := cmd.Kind()
	if e.mode.Kind == ModeVisual && kind != KindMotion && kind != KindView {
		return
	}
	if kind.mutates() && e.refuseReadOnly() {
		e.dot.cancel()
		return
	}
	if cmd.Execute(e) == Skipped {
		e.dot.cancel()
	} else if e.mode.Kind != ModeInsert {
		e.dot.stop()
	}
}

func replaceCharCommand(ch string) Command {
	return newCommand("replace.char", KindEdit, nil, func(e *Editor) {
		c := e.doc.cursor
		if c.Col < e.lineLen() {
			e.checkpoint()
			line := e.line()
			e.setLine(c.Row, SliceByGraphemes(line, 0, c.Col)+ch+SliceByGraphemes(line, c.Col+1, e.lineLen()))
		}
	})
}

func (e *Editor) enterVisual(linewise bool) {
	e.anchor = e.doc.cursor
	e.setMode(Mode{Kind: ModeVisual, Linewise: linewise})
	if linewise {
		e.status = "-- VISUAL LINE --"
	} else {
		e.status = "-- VISUAL --"
	}
}

func (e *Editor) enterSearch(backward bool) {
	e.setMode(Mode{Kind: ModeSearch, Backward: backward})
	e.input = ""
	e.historyIdx = -1
	e.status = ""
}

// setYank fills the yank buffer.
func (e *Editor) setYank(y Yank) { e.doc.SetYank(y) }

// gotoHunk moves to the next (dir > 0) or previous diff hunk, wrapping.
func (e *Editor) gotoHunk(dir int) {
	row := e.doc.cursor.Row
	idx := diff.NextHunk(e.hunks, row)
	if dir < 0 {
		idx = diff.PrevHunk(e.hunks, row)
	}
	if idx < 0 {
		e.status = "No diffs"
		return
	}
	h := e.hunks[idx]
	e.folds.UnfoldFor(h.Start)
	e.doc.cursor = Position{Row: h.Start}
	e.scrollCursorTo(scrollRatio)
	e.status = fmt.Sprintf("Hunk %d/%d", idx+1, len(e.hunks))
}
