package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"
	zone "github.com/lrstanley/bubblezone"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/jvim/internal/config"
	"github.com/zjrosen/jvim/internal/editor"
	"github.com/zjrosen/jvim/internal/pubsub"
	"github.com/zjrosen/jvim/internal/watcher"
)

func TestMain(m *testing.M) {
	zone.NewGlobal()
	os.Exit(m.Run())
}

const nested = "{\n  \"a\": \"{\\\"b\\\":1}\",\n  \"n\": 2\n}"

type fakeClipboard struct {
	copies []string
	err    error
}

func (c *fakeClipboard) Copy(text string) error {
	c.copies = append(c.copies, text)
	return c.err
}

type memHistory struct {
	loaded editor.History
	saved  *editor.History
}

func (h *memHistory) Load(context.Context, int) (editor.History, error) { return h.loaded, nil }

func (h *memHistory) Save(_ context.Context, hist editor.History) error {
	h.saved = &hist
	return nil
}

func newModel(t *testing.T, path string, opts ...func(*Options)) Model {
	t.Helper()
	o := Options{Path: path, Config: config.Defaults()}
	for _, fn := range opts {
		fn(&o)
	}
	m, err := New(o)
	require.NoError(t, err)
	t.Cleanup(func() { _ = m.Close() })
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return next.(Model)
}

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEscape}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "ctrl+x":
		return tea.KeyMsg{Type: tea.KeyCtrlX}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

// press feeds keys one at a time. A multi-character string is typed
// character by character unless it names a special key.
func press(m Model, keys ...string) (Model, tea.Cmd) {
	var cmd tea.Cmd
	for _, k := range keys {
		if _, special := map[string]bool{"enter": true, "esc": true, "ctrl+c": true, "ctrl+x": true}[k]; special {
			next, c := m.Update(keyMsg(k))
			m, cmd = next.(Model), c
			continue
		}
		for _, r := range k {
			next, c := m.Update(keyMsg(string(r)))
			m, cmd = next.(Model), c
		}
	}
	return m, cmd
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestNew_MissingFileStartsEmptyObject(t *testing.T) {
	path := filepath.Join(t.TempDir(), "new.json")
	m := newModel(t, path)

	assert.Equal(t, "{}", m.Editor().Content())
	assert.False(t, m.Modified())
	assert.Equal(t, path, m.Path())
}

func TestNew_JSONLByExtension(t *testing.T) {
	path := writeTemp(t, "data.jsonl", "{\"a\":1}\n{\"b\":2}\n")
	m := newModel(t, path)

	assert.True(t, m.Editor().JSONL())
	assert.Contains(t, m.Editor().Content(), "\"b\": 2")
}

func TestNew_UnreadableFile(t *testing.T) {
	dir := t.TempDir()
	_, err := New(Options{Path: dir, Config: config.Defaults()})
	require.Error(t, err)
}

func TestWindowSize_SizesPanes(t *testing.T) {
	m := newModel(t, "")
	assert.Equal(t, 100, m.width)
	assert.Equal(t, 30, m.height)
	assert.Equal(t, 27, m.Editor().Height())
}

func TestSave_WritesFileAndClearsModified(t *testing.T) {
	path := writeTemp(t, "doc.json", nested)
	m := newModel(t, path)

	m, _ = press(m, "j", "dd")
	require.True(t, m.Modified())
	m, _ = press(m, ":w", "enter")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, m.Editor().Content(), string(data))
	assert.False(t, m.Modified())
	assert.Equal(t, "Saved: "+path, m.Toast())
}

func TestSave_NoFileName(t *testing.T) {
	m := newModel(t, "")
	m, _ = press(m, ":w", "enter")
	assert.Equal(t, "No file name (use :w <file>)", m.Toast())
}

func TestSave_AsNewPath(t *testing.T) {
	m := newModel(t, "")
	target := filepath.Join(t.TempDir(), "sub", "out.json")

	m, _ = press(m, ":w "+target, "enter")

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "{}", string(data))
	assert.Equal(t, target, m.Path())
}

func TestSave_JSONLWritesCompactRecords(t *testing.T) {
	path := writeTemp(t, "data.jsonl", "{\"a\":1}\n{\"b\":2}\n")
	m := newModel(t, path)

	m, _ = press(m, ":w", "enter")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{\"a\": 1}\n{\"b\": 2}", strings.TrimSpace(string(data)))
	assert.False(t, m.Modified())
}

func TestWriteQuit(t *testing.T) {
	path := writeTemp(t, "doc.json", nested)
	m := newModel(t, path)

	_, cmd := press(m, ":wq", "enter")
	assert.True(t, isQuit(cmd))
}

func TestQuit_SavesHistory(t *testing.T) {
	hist := &memHistory{loaded: editor.History{Search: []string{"old"}}}
	m := newModel(t, "", func(o *Options) { o.History = hist })
	require.Equal(t, []string{"old"}, m.Editor().History().Search)

	m, _ = press(m, "/a", "enter")
	_, cmd := press(m, ":q", "enter")

	require.True(t, isQuit(cmd))
	require.NotNil(t, hist.saved)
	assert.Equal(t, []string{"a", "old"}, hist.saved.Search)
}

func TestCtrlC_RefusesWithUnsavedChanges(t *testing.T) {
	path := writeTemp(t, "doc.json", nested)
	m := newModel(t, path)

	m, _ = press(m, "dd")
	m, cmd := press(m, "ctrl+c")
	assert.False(t, m.Toast() == "")
	assert.Contains(t, m.Toast(), "Unsaved changes")
	assert.NotNil(t, cmd)

	m, _ = press(m, "u")
	_, cmd = press(m, "ctrl+c")
	assert.True(t, isQuit(cmd))
}

func TestOpen_SwitchesFile(t *testing.T) {
	first := writeTemp(t, "a.json", nested)
	second := writeTemp(t, "b.jsonl", "{\"x\":1}\n")
	m := newModel(t, first)

	m, _ = press(m, ":e "+second, "enter")

	assert.Equal(t, second, m.Path())
	assert.True(t, m.Editor().JSONL())
	assert.Equal(t, "Opened: "+second, m.Toast())
}

func TestOpen_MissingFile(t *testing.T) {
	m := newModel(t, "")
	missing := filepath.Join(t.TempDir(), "nope.json")

	m, _ = press(m, ":e "+missing, "enter")
	assert.Equal(t, "File not found: "+missing, m.Toast())
	assert.Equal(t, "", m.Path())
}

func TestValidate_Toasts(t *testing.T) {
	m := newModel(t, "")
	m, _ = press(m, ":validate", "enter")
	assert.Equal(t, "JSON is valid", m.Toast())

	m.Editor().SetContent("{")
	m, _ = press(m, ":validate", "enter")
	assert.True(t, strings.HasPrefix(m.Toast(), "Invalid JSON: "))
}

func TestHelp_ToggleAndClose(t *testing.T) {
	m := newModel(t, "")
	m, _ = press(m, ":help", "enter")
	require.True(t, m.HelpVisible())
	assert.Contains(t, m.View(), "Motions")

	m, _ = press(m, "esc")
	assert.False(t, m.HelpVisible())
}

func TestQuit_ClosesHelpFirst(t *testing.T) {
	m := newModel(t, "")
	m.showHelp = true

	intents := []editor.Intent{editor.Quit{}}
	cmd := m.handleIntents(intents)
	assert.False(t, m.HelpVisible())
	assert.False(t, isQuit(cmd))
}

func TestClipboard_MirrorsYank(t *testing.T) {
	path := writeTemp(t, "doc.json", nested)
	cb := &fakeClipboard{}
	m := newModel(t, path, func(o *Options) { o.Clipboard = cb })

	m, _ = press(m, "j", "yy")
	require.Len(t, cb.copies, 1)
	assert.Contains(t, cb.copies[0], `"a": "{\"b\":1}",`)

	// The same yank is not copied twice.
	_, _ = press(m, "k")
	assert.Len(t, cb.copies, 1)
}

func TestClipboard_DisabledOrFailing(t *testing.T) {
	path := writeTemp(t, "doc.json", nested)

	off := &fakeClipboard{}
	m := newModel(t, path, func(o *Options) {
		o.Clipboard = off
		o.Config.Editor.Clipboard = false
	})
	_, _ = press(m, "yy")
	assert.Empty(t, off.copies)

	failing := &fakeClipboard{err: errors.New("no display")}
	m = newModel(t, path, func(o *Options) { o.Clipboard = failing })
	m, _ = press(m, "yy", "p")
	assert.Len(t, failing.copies, 1)
	assert.Len(t, m.Editor().Lines(), 5)
}

func TestFileChanged_ReloadsCleanBuffer(t *testing.T) {
	path := writeTemp(t, "doc.json", nested)
	m := newModel(t, path)

	require.NoError(t, os.WriteFile(path, []byte("{\n  \"z\": 1\n}"), 0o644))
	cmd := m.fileChanged(pubsub.Event[watcher.Change]{Type: pubsub.Changed, Payload: watcher.Change{Path: path}})

	assert.NotNil(t, cmd)
	assert.Equal(t, "{\n  \"z\": 1\n}", m.Editor().Content())
	assert.False(t, m.Modified())
	assert.Equal(t, "Reloaded: "+path, m.Toast())
}

func TestFileChanged_KeepsModifiedBuffer(t *testing.T) {
	path := writeTemp(t, "doc.json", nested)
	m := newModel(t, path)
	m, _ = press(m, "dd")
	before := m.Editor().Content()

	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o644))
	m.fileChanged(pubsub.Event[watcher.Change]{Type: pubsub.Changed, Payload: watcher.Change{Path: path}})

	assert.Equal(t, before, m.Editor().Content())
	assert.Contains(t, m.Toast(), "unsaved changes kept")
}

func TestFileChanged_IgnoresOwnWrite(t *testing.T) {
	path := writeTemp(t, "doc.json", nested)
	m := newModel(t, path)

	cmd := m.fileChanged(pubsub.Event[watcher.Change]{Type: pubsub.Changed, Payload: watcher.Change{Path: path}})
	assert.Nil(t, cmd)
	assert.Empty(t, m.Toast())
}

func TestFileChanged_Removed(t *testing.T) {
	path := writeTemp(t, "doc.json", nested)
	m := newModel(t, path)

	m.fileChanged(pubsub.Event[watcher.Change]{Type: pubsub.Removed, Payload: watcher.Change{Path: path}})
	assert.Equal(t, "File removed: "+path, m.Toast())
}

func TestView_TitleBar(t *testing.T) {
	path := writeTemp(t, "doc.json", nested)
	m := newModel(t, path, func(o *Options) { o.ReadOnly = true })

	view := m.View()
	assert.Contains(t, view, path+" [RO]")
	assert.Contains(t, view, "NORMAL")
	assert.Contains(t, view, "Ln 1/4")
}

func TestView_HiddenStatusBar(t *testing.T) {
	m := newModel(t, "", func(o *Options) { o.Config.UI.ShowStatusBar = false })
	assert.NotContains(t, m.View(), "[new]")
	assert.Equal(t, 28, m.Editor().Height())
}

func TestDebug_LogPaneToggle(t *testing.T) {
	m := newModel(t, "", func(o *Options) { o.Debug = true })
	m, _ = press(m, "ctrl+x")
	assert.True(t, m.logPane.Visible())

	// Keys go to the log pane while it is open.
	m, _ = press(m, "i")
	assert.Equal(t, editor.ModeNormal, m.Editor().Mode().Kind)

	m, _ = press(m, "ctrl+x")
	assert.False(t, m.logPane.Visible())
}

func TestTeatest_EditAndQuit(t *testing.T) {
	path := writeTemp(t, "doc.json", nested)
	m := newModel(t, path)

	tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(100, 30))
	teatest.WaitFor(t, tm.Output(), func(b []byte) bool {
		return strings.Contains(string(b), "NORMAL")
	}, teatest.WithDuration(3*time.Second))

	tm.Type("jdd")
	tm.Type(":wq")
	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})

	final := tm.FinalModel(t, teatest.WithFinalTimeout(3*time.Second)).(Model)
	assert.False(t, final.Modified())
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "\"a\"")
}
