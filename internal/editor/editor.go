// Package editor implements a modal, JSON-aware line editor.
//
// An Editor owns one buffer together with its cursor, folds, undo history and
// search state. Keys are fed through HandleKey; the editor never performs I/O
// and instead returns intents (save, open, quit) for the host to act on.
package editor

import (
	"fmt"
	"strings"

	"github.com/zjrosen/jvim/internal/diff"
	"github.com/zjrosen/jvim/internal/jsonx"
	"github.com/zjrosen/jvim/internal/log"
)

// indentUnit is the width of one indentation level.
const indentUnit = 4

// DefaultHistoryLimit bounds search and command history.
const DefaultHistoryLimit = 50

// scrollRatio places search matches a third of the way down the viewport.
const scrollRatio = 0.33

// Options configures an Editor.
type Options struct {
	// ReadOnly refuses every edit; navigation, search and yank still work.
	ReadOnly bool
	// JSONL shows one pretty-printed record per blank-line-separated block.
	JSONL bool
	// Height is the number of text rows in the viewport.
	Height int
	// CollapseLen is the minimum length of a collapsible string value.
	CollapseLen int
	// PreviewLen is the number of characters shown for a collapsed string.
	PreviewLen int
	// HistoryLimit bounds search and command history.
	HistoryLimit int
	// UndoLimit bounds the undo stack.
	UndoLimit int
}

func (o *Options) applyDefaults() {
	if o.Height <= 0 {
		o.Height = 24
	}
	if o.CollapseLen <= 0 {
		o.CollapseLen = DefaultCollapseLen
	}
	if o.PreviewLen <= 0 {
		o.PreviewLen = DefaultPreviewLen
	}
	if o.HistoryLimit <= 0 {
		o.HistoryLimit = DefaultHistoryLimit
	}
	if o.UndoLimit <= 0 {
		o.UndoLimit = DefaultUndoLimit
	}
}

// History is the persisted search and command history, most recent first.
type History struct {
	Search  []string `json:"search"`
	Command []string `json:"command"`
}

// Editor is a modal editor over one document.
type Editor struct {
	doc   *Document
	opts  Options
	mode  Mode
	undo  *UndoStack
	folds *FoldTable

	commands *CommandRegistry
	combos   *PendingCommandRegistry
	pending  PendingCommandBuilder

	// anchor is where Visual mode was entered.
	anchor Position

	// input is the text typed after ':' '/' or '?'.
	input      string
	historyIdx int
	cmdHistory []string

	search searchState
	dot    dotRecorder

	// insertCheckpointed is set once the current Insert session has pushed
	// its undo entry.
	insertCheckpointed bool

	hunks []diff.Hunk

	status  string
	version uint64
	intents []Intent
}

// New creates an editor over content. JSONL content is converted to pretty
// records, and long string values start collapsed.
func New(content string, opts Options) *Editor {
	opts.applyDefaults()
	e := &Editor{
		doc:        NewDocument(""),
		opts:       opts,
		mode:       normalMode,
		undo:       NewUndoStack(opts.UndoLimit),
		folds:      NewFoldTable(opts.CollapseLen),
		commands:   newDefaultRegistry(),
		combos:     newDefaultPendingRegistry(),
		historyIdx: -1,
	}
	e.search.current = -1
	e.SetContent(content)
	return e
}

// SetContent replaces the buffer, resetting cursor, folds and viewport.
func (e *Editor) SetContent(content string) {
	if e.opts.JSONL && content != "" {
		content = jsonx.JSONLToPretty(content)
	}
	e.doc.SetContent(content)
	e.folds.Clear()
	e.folds.CollapseLongStrings(e.doc.Lines())
	e.mode = normalMode
	e.pending.Clear()
	e.bump()
}

// Content returns the buffer joined with newlines.
func (e *Editor) Content() string { return e.doc.Content() }

// SaveContent returns the buffer in its on-disk form: compact JSONL in JSONL
// mode, the buffer unchanged otherwise.
func (e *Editor) SaveContent() string {
	if e.opts.JSONL {
		return jsonx.PrettyToJSONL(e.doc.Content())
	}
	return e.doc.Content()
}

// Lines returns the buffer lines. Callers must not modify the slice.
func (e *Editor) Lines() []string { return e.doc.Lines() }

// Cursor returns the cursor position.
func (e *Editor) Cursor() Position { return e.doc.Cursor() }

// SetCursor moves the cursor, clamping it to the buffer.
func (e *Editor) SetCursor(p Position) {
	e.doc.SetCursor(p)
	e.clampCursor()
	e.ensureVisible()
}

// Top returns the first row of the viewport.
func (e *Editor) Top() int { return e.doc.Top() }

// SetTop scrolls the viewport.
func (e *Editor) SetTop(top int) { e.doc.SetTop(top) }

// Height returns the viewport height.
func (e *Editor) Height() int { return e.opts.Height }

// SetHeight resizes the viewport.
func (e *Editor) SetHeight(h int) {
	e.opts.Height = max(1, h)
	e.ensureVisible()
}

// Mode returns the active mode.
func (e *Editor) Mode() Mode { return e.mode }

// ReadOnly reports whether edits are refused.
func (e *Editor) ReadOnly() bool { return e.opts.ReadOnly }

// JSONL reports whether the buffer holds JSONL records.
func (e *Editor) JSONL() bool { return e.opts.JSONL }

// Status returns the status line message.
func (e *Editor) Status() string { return e.status }

// SetStatus replaces the status line message.
func (e *Editor) SetStatus(msg string) { e.status = msg }

// Pending returns the buffered first key of a combo, or "".
func (e *Editor) Pending() string { return e.pending.String() }

// Input returns the command or search text being typed.
func (e *Editor) Input() string { return e.input }

// Version increases on every buffer change. Render caches compare against it.
func (e *Editor) Version() uint64 { return e.version }

// Folds returns the fold table.
func (e *Editor) Folds() *FoldTable { return e.folds }

// Yank returns the yank buffer.
func (e *Editor) Yank() Yank { return e.doc.Yank() }

// SetYank replaces the yank buffer.
func (e *Editor) SetYank(y Yank) { e.doc.SetYank(y) }

// PreviewLen is the number of characters shown for collapsed strings.
func (e *Editor) PreviewLen() int { return e.opts.PreviewLen }

// CanUndo reports whether there is anything to undo.
func (e *Editor) CanUndo() bool { return e.undo.CanUndo() }

// Selection returns the inclusive Visual range. Line-wise selections span
// whole lines.
func (e *Editor) Selection() (start, end Position, ok bool) {
	if e.mode.Kind != ModeVisual {
		return Position{}, Position{}, false
	}
	start, end = e.selectionRange()
	return start, end, true
}

// History returns a copy of the search and command history.
func (e *Editor) History() History {
	return History{
		Search:  append([]string(nil), e.search.history...),
		Command: append([]string(nil), e.cmdHistory...),
	}
}

// SetHistory restores history, truncating each list to the limit.
func (e *Editor) SetHistory(h History) {
	e.search.history = append([]string(nil), h.Search[:min(len(h.Search), e.opts.HistoryLimit)]...)
	e.cmdHistory = append([]string(nil), h.Command[:min(len(h.Command), e.opts.HistoryLimit)]...)
}

// SetHunks attaches diff hunks for ]c and [c navigation.
func (e *Editor) SetHunks(hunks []diff.Hunk) { e.hunks = hunks }

// HandleKey processes one key and returns the intents it produced.
func (e *Editor) HandleKey(k Key) []Intent {
	e.intents = nil
	e.dot.observe(k)
	e.dispatch(k)
	e.clampCursor()
	e.ensureVisible()
	out := e.intents
	e.intents = nil
	return out
}

// HandleKeys feeds a sequence of keys and collects every intent.
func (e *Editor) HandleKeys(keys ...Key) []Intent {
	var out []Intent
	for _, k := range keys {
		out = append(out, e.HandleKey(k)...)
	}
	return out
}

// modeHandler processes keys for one mode.
type modeHandler interface {
	handle(e *Editor, k Key)
}

func handlerFor(kind ModeKind) modeHandler {
	switch kind {
	case ModeInsert:
		return insertHandler{}
	case ModeCommand:
		return commandHandler{}
	case ModeSearch:
		return searchHandler{}
	case ModeVisual:
		return visualHandler{}
	default:
		return normalHandler{}
	}
}

func (e *Editor) dispatch(k Key) {
	handlerFor(e.mode.Kind).handle(e, k)
}

func (e *Editor) emit(i Intent) { e.intents = append(e.intents, i) }

func (e *Editor) setMode(m Mode) {
	if e.mode != m {
		log.Debug(log.CatEditor, "mode change", "from", e.mode, "to", m)
	}
	e.mode = m
}

// refuseReadOnly sets the read-only status and reports whether edits are
// refused.
func (e *Editor) refuseReadOnly() bool {
	if e.opts.ReadOnly {
		e.status = "[readonly]"
	}
	return e.opts.ReadOnly
}

// enterInsert switches to Insert mode. checkpointed is set when the caller
// already pushed an undo entry for this session.
func (e *Editor) enterInsert(checkpointed bool) {
	if e.refuseReadOnly() {
		return
	}
	e.insertCheckpointed = checkpointed
	e.setMode(insertMode)
	e.status = "-- INSERT --"
}

// ============================================================================
// Buffer mutation
// ============================================================================

func (e *Editor) bump() { e.version++ }

// checkpoint pushes the current state to the undo stack.
func (e *Editor) checkpoint() {
	e.undo.Push(e.doc.Snapshot())
	e.bump()
}

// insertCheckpoint pushes one undo entry per Insert session.
func (e *Editor) insertCheckpoint() {
	if e.insertCheckpointed {
		return
	}
	e.checkpoint()
	e.insertCheckpointed = true
}

func (e *Editor) setLine(row int, text string) {
	e.doc.setLine(row, text)
	e.bump()
}

// insertLines inserts lines at row and shifts folds below it.
func (e *Editor) insertLines(at int, lines ...string) {
	if len(lines) == 0 {
		return
	}
	e.doc.insertLines(at, lines...)
	e.folds.AdjustLines(at, len(lines))
	e.bump()
}

// deleteLines removes n rows from row and adjusts folds.
func (e *Editor) deleteLines(from, n int) {
	if n <= 0 {
		return
	}
	e.folds.AdjustLines(from, -n)
	e.doc.deleteLines(from, n)
	e.bump()
}

// replaceLines swaps in a whole new buffer and drops folds.
func (e *Editor) replaceLines(lines []string) {
	e.doc.setLines(lines)
	e.folds.Clear()
	e.bump()
}

func (e *Editor) line() string { return e.doc.Line(e.doc.cursor.Row) }

func (e *Editor) lineLen() int { return e.doc.LineLen(e.doc.cursor.Row) }

// currentIndent is the indentation of the cursor line, 0 for blank lines.
func (e *Editor) currentIndent() int { return indentOf(e.line()) }

// ============================================================================
// Undo / redo
// ============================================================================

func (e *Editor) undoEdit() {
	s, ok := e.undo.Undo(e.doc.Snapshot())
	if !ok {
		e.status = "nothing to undo"
		return
	}
	e.restore(s)
	e.status = "undone"
}

func (e *Editor) redoEdit() {
	s, ok := e.undo.Redo(e.doc.Snapshot())
	if !ok {
		e.status = "nothing to redo"
		return
	}
	e.restore(s)
	e.status = "redone"
}

func (e *Editor) restore(s Snapshot) {
	e.doc.Restore(s)
	if e.mode.Kind == ModeVisual {
		e.setMode(normalMode)
	}
	e.folds.Clear()
	e.bump()
}

// ============================================================================
// Cursor and viewport
// ============================================================================

// clampCursor keeps the cursor inside the buffer, off hidden rows, and
// expands collapsed strings and folds the cursor moves into.
func (e *Editor) clampCursor() {
	c := e.doc.cursor
	c.Row = max(0, min(c.Row, e.doc.LineCount()-1))
	if !e.folds.Empty() {
		if h, ok := e.folds.headerOf(c.Row); ok {
			c.Row = h
		}
	}
	line := e.doc.Line(c.Row)
	n := GraphemeCount(line)
	if e.folds.IsCollapsed(c.Row) {
		if ls, ok := LongStringAt(line, e.folds.CollapseLen()); ok && c.Col > ls.PreviewEnd(e.opts.PreviewLen) {
			e.folds.Unfold(c.Row)
			log.Debug(log.CatFold, "expanded long string", "row", c.Row)
		}
	}
	if _, ok := e.folds.FoldAt(c.Row); ok && c.Col > max(0, n-1) {
		e.folds.Unfold(c.Row)
	}
	maxCol := n
	if e.mode.Kind != ModeInsert {
		maxCol = max(0, n-1)
	}
	c.Col = max(0, min(c.Col, maxCol))
	e.doc.cursor = c
}

// ensureVisible scrolls so the cursor row is inside the viewport, counting
// only rows that are not hidden by folds.
func (e *Editor) ensureVisible() {
	row := e.doc.cursor.Row
	top := e.doc.Top()
	if row < top {
		e.doc.SetTop(row)
		return
	}
	visible := 0
	for i := top; i < row; i++ {
		if !e.folds.IsHidden(i) {
			visible++
		}
	}
	for visible >= e.opts.Height && top < row {
		if !e.folds.IsHidden(top) {
			visible--
		}
		top++
	}
	e.doc.SetTop(top)
}

func (e *Editor) scrollCursorToTop() { e.doc.SetTop(e.doc.cursor.Row) }

// scrollCursorTo places the cursor row at ratio of the viewport height.
func (e *Editor) scrollCursorTo(ratio float64) {
	offset := int(float64(e.opts.Height) * ratio)
	e.doc.SetTop(max(0, e.doc.cursor.Row-offset))
}

// positionSummary is the ctrl+g status text.
func (e *Editor) positionSummary() string {
	total := e.doc.LineCount()
	row := e.doc.cursor.Row + 1
	return fmt.Sprintf("%q line %d of %d --%d%%--", e.mode.String(), row, total, row*100/total)
}

// ============================================================================
// Validation and formatting
// ============================================================================

// checkContent validates the buffer, returning a status message on failure.
func (e *Editor) checkContent(content string) (string, bool) {
	if e.opts.JSONL {
		if err := jsonx.ValidateJSONL(content); err != nil {
			return "JSONL error: " + err.Error(), false
		}
		return "", true
	}
	if _, err := jsonx.Parse(content); err != nil {
		return "JSON error: " + syntaxSummary(err), false
	}
	return "", true
}

// syntaxSummary renders a parse error as "msg (line N)".
func syntaxSummary(err error) string {
	if se, ok := err.(*jsonx.SyntaxError); ok {
		return fmt.Sprintf("%s (line %d)", se.Msg, se.Line)
	}
	return err.Error()
}

// Validate checks the buffer and reports the result in the status line.
func (e *Editor) Validate() bool {
	content := e.doc.Content()
	msg, ok := e.checkContent(content)
	if ok {
		label := "JSON"
		if e.opts.JSONL {
			label = "JSONL"
		}
		e.status = label + " valid"
	} else {
		e.status = msg
	}
	e.emit(JSONValidated{Content: content, Valid: ok, Err: msg})
	return ok
}

// Format pretty-prints the buffer (every record in JSONL mode).
func (e *Editor) Format() {
	content := e.doc.Content()
	var (
		formatted string
		err       error
	)
	if e.opts.JSONL {
		formatted, err = jsonx.FormatJSONL(content)
	} else {
		formatted, err = jsonx.Format(content)
	}
	if err != nil {
		if e.opts.JSONL {
			e.status = "cannot format: " + err.Error()
		} else {
			e.status = "cannot format: " + syntaxSummary(err)
		}
		log.Debug(log.CatEditor, "format failed", "error", err)
		return
	}
	e.checkpoint()
	e.replaceLines(strings.Split(formatted, "\n"))
	e.doc.cursor = Position{}
	e.status = "formatted"
}
