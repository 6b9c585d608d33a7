package app

import (
	"github.com/atotto/clipboard"

	"github.com/zjrosen/jvim/internal/editor"
	"github.com/zjrosen/jvim/internal/log"
)

// Clipboard receives yanked text.
type Clipboard interface {
	Copy(text string) error
}

// SystemClipboard writes to the OS clipboard.
type SystemClipboard struct{}

// Copy copies text to the system clipboard.
func (SystemClipboard) Copy(text string) error {
	return clipboard.WriteAll(text)
}

// mirrorYank copies the yank buffer of ed to the clipboard when it changed
// since the last call. Clipboard failures are logged and otherwise ignored;
// the editor's own yank buffer is unaffected.
func (m *Model) mirrorYank(ed *editor.Editor) {
	if m.clipboard == nil || !m.cfg.Editor.Clipboard {
		return
	}
	y := ed.Yank()
	if y == m.lastYank || y.Text == "" {
		return
	}
	m.lastYank = y
	if err := m.clipboard.Copy(y.Text); err != nil {
		log.ErrorErr(log.CatUI, "clipboard copy failed", err)
	}
}
