package app

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/zjrosen/jvim/internal/editor"
	"github.com/zjrosen/jvim/internal/log"
)

// frame is one level of embedded JSON editing: a nested editor over the
// JSON held in a string value of its parent.
type frame struct {
	id       uuid.UUID
	pane     *Pane
	row      int
	colStart int
	colEnd   int
	original string
}

func (f *frame) modified() bool { return f.pane.ed.Content() != f.original }

// active returns the pane receiving keys: the innermost embedded editor, or
// the main editor.
func (m *Model) active() *Pane {
	if n := len(m.stack); n > 0 {
		return m.stack[n-1].pane
	}
	return m.main
}

func (m *Model) parentOf(level int) *Pane {
	if level > 1 {
		return m.stack[level-2].pane
	}
	return m.main
}

// pushEmbedded opens a nested editor for req. Embedded editors inherit the
// main editor's read-only flag.
func (m *Model) pushEmbedded(req editor.EmbeddedEditRequested) {
	ed := editor.New(req.Content, m.editorOptions(m.readOnly, false))
	pane := NewPane(ed, m.cfg.UI.LineNumbers, "")
	pane.allMatches = m.cfg.Search.HighlightAll
	f := &frame{
		id:       uuid.New(),
		pane:     pane,
		row:      req.SourceRow,
		colStart: req.SourceColStart,
		colEnd:   req.SourceColEnd,
		original: ed.Content(),
	}
	m.stack = append(m.stack, f)
	m.layout()
	log.Debug(log.CatEditor, "embedded edit opened", "id", f.id, "level", len(m.stack), "row", req.SourceRow)
}

// commitEmbedded writes the innermost editor back into its parent and closes
// it. Content is the buffer text of the saved editor.
func (m *Model) commitEmbedded(content string) string {
	level := len(m.stack)
	f := m.stack[level-1]
	parent := m.parentOf(level)
	parent.ed.UpdateEmbeddedString(f.row, f.colStart, f.colEnd, content)
	m.stack = m.stack[:level-1]
	m.layout()
	log.Debug(log.CatEditor, "embedded edit committed", "id", f.id, "level", level)
	return "Embedded JSON updated"
}

// closeEmbedded handles :q in an embedded editor. Unless forced, a modified
// buffer stays open.
func (m *Model) closeEmbedded(force bool) (msg string, closed bool) {
	level := len(m.stack)
	f := m.stack[level-1]
	if !force && f.modified() {
		return "Unsaved changes! Use :w to save or :q! to discard", false
	}
	m.stack = m.stack[:level-1]
	m.layout()
	log.Debug(log.CatEditor, "embedded edit closed", "id", f.id, "level", level)
	return "", true
}

// embeddedTitle is the header shown above an embedded editor.
func (m *Model) embeddedTitle() string {
	f := m.stack[len(m.stack)-1]
	title := fmt.Sprintf("Edit Embedded JSON (level %d)", len(m.stack))
	if f.modified() {
		title += " [+]"
	}
	return title
}
