// Package app is the bubbletea host for the editor: it renders editors,
// carries out the intents they return (saving, opening, quitting, nested
// embedded edits) and owns the file watcher, history store and overlays.
package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/zjrosen/jvim/internal/config"
	"github.com/zjrosen/jvim/internal/editor"
	"github.com/zjrosen/jvim/internal/keys"
	"github.com/zjrosen/jvim/internal/log"
	"github.com/zjrosen/jvim/internal/pubsub"
	"github.com/zjrosen/jvim/internal/tracing"
	"github.com/zjrosen/jvim/internal/ui/help"
	"github.com/zjrosen/jvim/internal/ui/shared/logoverlay"
	"github.com/zjrosen/jvim/internal/ui/styles"
	"github.com/zjrosen/jvim/internal/ui/toaster"
	"github.com/zjrosen/jvim/internal/watcher"
)

// historyTimeout bounds the history write on exit.
const historyTimeout = 2 * time.Second

// HistoryStore persists search and command history between sessions.
type HistoryStore interface {
	Load(ctx context.Context, limit int) (editor.History, error)
	Save(ctx context.Context, h editor.History) error
}

// Options configures a Model.
type Options struct {
	// Path is the file to edit. Empty starts an unnamed buffer.
	Path     string
	ReadOnly bool
	// JSONL forces JSON Lines mode; it is also enabled for .jsonl paths.
	JSONL bool
	// Debug enables the log pane.
	Debug     bool
	Config    config.Config
	Tracer    trace.Tracer
	History   HistoryStore
	Clipboard Clipboard
}

// Model is the editor host.
type Model struct {
	ctx    context.Context
	cancel context.CancelFunc
	cfg    config.Config
	tracer trace.Tracer

	path     string
	jsonl    bool
	readOnly bool
	// saved is the buffer at the last load or save; disk is what was read or
	// written, used to ignore watcher events for our own writes.
	saved string
	disk  string

	main  *Pane
	stack []*frame

	width  int
	height int

	help     help.Model
	showHelp bool
	toaster  toaster.Model

	debug       bool
	logPane     logoverlay.Model
	logListener *log.LogListener

	watch         *watcher.Watcher
	watchCancel   context.CancelFunc
	watchListener *pubsub.Listener[watcher.Change]

	history   HistoryStore
	clipboard Clipboard
	lastYank  editor.Yank
}

// New loads opts.Path (a missing file starts a new buffer) and prepares the
// host. Only I/O errors other than a missing file are returned.
func New(opts Options) (Model, error) {
	ctx, cancel := context.WithCancel(context.Background())
	tracer := opts.Tracer
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("jvim")
	}
	m := Model{
		ctx:       ctx,
		cancel:    cancel,
		cfg:       opts.Config,
		tracer:    tracer,
		path:      opts.Path,
		jsonl:     opts.JSONL || IsJSONL(opts.Path),
		readOnly:  opts.ReadOnly,
		help:      help.New(opts.Config.UI.MarkdownStyle),
		toaster:   toaster.New(),
		debug:     opts.Debug,
		logPane:   logoverlay.New(),
		history:   opts.History,
		clipboard: opts.Clipboard,
	}

	content := NewFileContent(m.jsonl)
	if opts.Path != "" {
		c, err := readFile(ctx, tracer, tracing.SpanLoad, opts.Path)
		switch {
		case err == nil:
			content = c
			m.disk = c
		case errors.Is(err, errNotFound):
			log.Info(log.CatIO, "new file", "path", opts.Path)
		default:
			cancel()
			return Model{}, err
		}
	}

	m.main = m.newPane(content, m.jsonl)
	m.saved = m.main.ed.Content()
	m.loadHistory()
	if opts.Path != "" {
		m.startWatcher(opts.Path)
	}
	if m.debug {
		m.logListener = log.NewListener(ctx)
	}
	return m, nil
}

func (m *Model) editorOptions(readOnly, jsonl bool) editor.Options {
	return editor.Options{
		ReadOnly:     readOnly,
		JSONL:        jsonl,
		CollapseLen:  m.cfg.Editor.CollapseLength,
		PreviewLen:   m.cfg.Editor.PreviewLength,
		HistoryLimit: m.cfg.Editor.HistoryLimit,
		UndoLimit:    m.cfg.Editor.UndoLimit,
	}
}

func (m *Model) newPane(content string, jsonl bool) *Pane {
	zoneID := ""
	if m.cfg.UI.Mouse {
		zoneID = "main-"
	}
	p := NewPane(editor.New(content, m.editorOptions(m.readOnly, jsonl)), m.cfg.UI.LineNumbers, zoneID)
	p.allMatches = m.cfg.Search.HighlightAll
	return p
}

// Editor returns the main editor.
func (m Model) Editor() *editor.Editor { return m.main.ed }

// Path is the file being edited.
func (m Model) Path() string { return m.path }

// Depth is the number of open embedded editors.
func (m Model) Depth() int { return len(m.stack) }

// Active returns the editor receiving keys.
func (m Model) Active() *editor.Editor { return m.active().ed }

// HelpVisible reports whether the help overlay is open.
func (m Model) HelpVisible() bool { return m.showHelp }

// Toast returns the visible notification, if any.
func (m Model) Toast() string {
	if !m.toaster.Visible() {
		return ""
	}
	return m.toaster.Message()
}

// Modified reports whether the main buffer differs from the file.
func (m Model) Modified() bool { return m.main.ed.Content() != m.saved }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tea.SetWindowTitle("jvim " + m.title())}
	if m.watchListener != nil {
		cmds = append(cmds, m.watchListener.Listen())
	}
	if m.logListener != nil {
		cmds = append(cmds, m.logListener.Listen())
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout()
		m.help = m.help.SetSize(msg.Width, msg.Height)
		m.logPane.SetSize(msg.Width, msg.Height)
		return m, nil

	case toaster.DismissMsg:
		m.toaster = m.toaster.Update(msg)
		return m, nil

	case pubsub.Event[watcher.Change]:
		cmd := m.fileChanged(msg)
		return m, tea.Batch(cmd, m.watchListener.Listen())

	case log.LogEvent:
		if m.logPane.Visible() {
			m.logPane.Refresh()
		}
		return m, m.logListener.Listen()

	case logoverlay.CloseMsg:
		return m, nil

	case tea.MouseMsg:
		return m, m.mouse(msg)

	case tea.KeyMsg:
		return m.key(msg)
	}
	return m, nil
}

func (m Model) key(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.debug && key.Matches(msg, keys.App.ToggleLogs) {
		m.logPane.Toggle()
		return m, nil
	}
	if m.logPane.Visible() {
		var cmd tea.Cmd
		m.logPane, cmd = m.logPane.Update(msg)
		return m, cmd
	}
	if key.Matches(msg, keys.App.Quit) {
		if m.Modified() || len(m.stack) > 0 {
			return m, m.toast("Unsaved changes! Use :q! to discard", toaster.StyleWarn)
		}
		return m, m.quit()
	}
	if m.showHelp {
		var closed bool
		m.help, closed = m.help.Update(msg)
		m.showHelp = !closed
		return m, nil
	}

	ed := m.active().ed
	intents := ed.HandleKey(editor.KeyFromMsg(msg))
	m.mirrorYank(ed)
	return m, m.handleIntents(intents)
}

func (m *Model) mouse(msg tea.MouseMsg) tea.Cmd {
	if !m.cfg.UI.Mouse || m.showHelp || m.logPane.Visible() {
		return nil
	}
	ed := m.active().ed
	switch {
	case msg.Button == tea.MouseButtonWheelDown:
		ed.HandleKey(editor.Named("ctrl+e"))
	case msg.Button == tea.MouseButtonWheelUp:
		ed.HandleKey(editor.Named("ctrl+y"))
	case msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress:
		if row, ok := m.active().RowAt(msg); ok {
			ed.SetCursor(editor.Position{Row: row})
		}
	}
	return nil
}

func (m *Model) handleIntents(intents []editor.Intent) tea.Cmd {
	var cmds []tea.Cmd
	for _, in := range intents {
		switch in := in.(type) {
		case editor.FileSaveRequested:
			cmds = append(cmds, m.save(in))
		case editor.FileOpenRequested:
			cmds = append(cmds, m.open(in.Path))
		case editor.Quit:
			cmds = append(cmds, m.close(false))
		case editor.ForceQuit:
			cmds = append(cmds, m.close(true))
		case editor.HelpToggleRequested:
			m.showHelp = !m.showHelp
		case editor.JSONValidated:
			if in.Valid {
				cmds = append(cmds, m.toast("JSON is valid", toaster.StyleSuccess))
			} else {
				cmds = append(cmds, m.toast("Invalid JSON: "+in.Err, toaster.StyleError))
			}
		case editor.EmbeddedEditRequested:
			m.pushEmbedded(in)
		}
	}
	return tea.Batch(cmds...)
}

func (m *Model) toast(msg string, style toaster.Style) tea.Cmd {
	var cmd tea.Cmd
	m.toaster, cmd = m.toaster.Show(msg, style)
	return cmd
}

// close handles :q and :q!. Help and embedded editors close before the
// application does.
func (m *Model) close(force bool) tea.Cmd {
	switch {
	case m.showHelp:
		m.showHelp = false
		return nil
	case len(m.stack) > 0:
		if msg, closed := m.closeEmbedded(force); !closed {
			return m.toast(msg, toaster.StyleWarn)
		}
		return nil
	}
	return m.quit()
}

func (m *Model) quit() tea.Cmd {
	m.saveHistory()
	return tea.Quit
}

func (m *Model) save(req editor.FileSaveRequested) tea.Cmd {
	if len(m.stack) > 0 {
		return m.toast(m.commitEmbedded(req.Content), toaster.StyleInfo)
	}
	target := req.Path
	if target == "" {
		target = m.path
	}
	if target == "" {
		return m.toast("No file name (use :w <file>)", toaster.StyleWarn)
	}
	if err := writeFile(m.ctx, m.tracer, target, req.Content); err != nil {
		return m.toast("Save failed: "+err.Error(), toaster.StyleError)
	}

	if target != m.path {
		m.path = target
		m.startWatcher(target)
	}
	m.saved = m.main.ed.Content()
	m.disk = req.Content
	m.main.ed.MarkSaved(target)
	if req.QuitAfter {
		return m.quit()
	}
	return tea.Batch(m.toast("Saved: "+target, toaster.StyleSuccess), tea.SetWindowTitle("jvim "+m.title()))
}

func (m *Model) open(path string) tea.Cmd {
	if len(m.stack) > 0 {
		return m.toast("Close the embedded editor first", toaster.StyleWarn)
	}
	content, err := readFile(m.ctx, m.tracer, tracing.SpanLoad, path)
	switch {
	case errors.Is(err, errNotFound):
		return m.toast("File not found: "+path, toaster.StyleError)
	case err != nil:
		return m.toast("Cannot open: "+err.Error(), toaster.StyleError)
	}

	hist := m.main.ed.History()
	m.jsonl = IsJSONL(path)
	m.main = m.newPane(content, m.jsonl)
	m.main.ed.SetHistory(hist)
	m.layout()
	m.path = path
	m.saved = m.main.ed.Content()
	m.disk = content
	m.startWatcher(path)
	return tea.Batch(m.toast("Opened: "+path, toaster.StyleInfo), tea.SetWindowTitle("jvim "+m.title()), m.watchListener.Listen())
}

// fileChanged reloads the buffer when the file changed on disk and there is
// nothing unsaved to lose.
func (m *Model) fileChanged(ev pubsub.Event[watcher.Change]) tea.Cmd {
	switch ev.Type {
	case pubsub.Removed:
		return m.toast("File removed: "+ev.Payload.Path, toaster.StyleWarn)
	case pubsub.Failed:
		log.ErrorErr(log.CatWatcher, "watcher failed", ev.Payload.Err)
		return nil
	}
	if !m.cfg.Editor.AutoReload || m.path == "" {
		return nil
	}
	content, err := readFile(m.ctx, m.tracer, tracing.SpanReload, m.path)
	if err != nil || content == m.disk {
		return nil
	}
	if m.Modified() || len(m.stack) > 0 {
		return m.toast("File changed on disk; unsaved changes kept", toaster.StyleWarn)
	}
	ed := m.main.ed
	cur := ed.Cursor()
	ed.SetContent(content)
	ed.SetCursor(cur)
	m.saved = ed.Content()
	m.disk = content
	log.Info(log.CatWatcher, "reloaded", "path", m.path)
	return m.toast("Reloaded: "+m.path, toaster.StyleInfo)
}

func (m *Model) startWatcher(path string) {
	m.stopWatcher()
	w, err := watcher.New(watcher.DefaultConfig(path))
	if err != nil {
		log.ErrorErr(log.CatWatcher, "watcher init failed", err)
		return
	}
	if err := w.Start(); err != nil {
		log.ErrorErr(log.CatWatcher, "watcher start failed", err)
		_ = w.Stop()
		return
	}
	ctx, cancel := context.WithCancel(m.ctx)
	m.watch, m.watchCancel = w, cancel
	m.watchListener = pubsub.NewListener[watcher.Change](ctx, w.Broker())
}

func (m *Model) stopWatcher() {
	if m.watchCancel != nil {
		m.watchCancel()
		m.watchCancel = nil
	}
	if m.watch != nil {
		if err := m.watch.Stop(); err != nil {
			log.ErrorErr(log.CatWatcher, "watcher stop failed", err)
		}
		m.watch = nil
	}
}

func (m *Model) loadHistory() {
	if m.history == nil {
		return
	}
	h, err := m.history.Load(m.ctx, m.cfg.Editor.HistoryLimit)
	if err != nil {
		log.ErrorErr(log.CatHistory, "loading history", err)
		return
	}
	m.main.ed.SetHistory(h)
}

func (m *Model) saveHistory() {
	if m.history == nil {
		return
	}
	ctx, cancel := context.WithTimeout(m.ctx, historyTimeout)
	defer cancel()
	if err := m.history.Save(ctx, m.main.ed.History()); err != nil {
		log.ErrorErr(log.CatHistory, "saving history", err)
	}
}

// layout sizes every pane below the title bar.
func (m *Model) layout() {
	if m.width == 0 {
		return
	}
	h := max(3, m.height-m.titleHeight())
	m.main.SetSize(m.width, h)
	for _, f := range m.stack {
		f.pane.SetSize(m.width, h)
	}
}

func (m Model) title() string {
	if len(m.stack) > 0 {
		return m.embeddedTitle()
	}
	t := m.path
	if t == "" {
		t = "[new]"
	}
	if m.readOnly {
		t += " [RO]"
	}
	if m.Modified() {
		t += " [+]"
	}
	return t
}

func (m Model) titleHeight() int {
	if m.cfg.UI.ShowStatusBar {
		return 1
	}
	return 0
}

var titleStyle = lipgloss.NewStyle().Bold(true).Foreground(styles.OverlayTitleColor)

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 {
		return ""
	}
	view := m.active().View()
	if m.titleHeight() > 0 {
		bar := titleStyle.Render(" " + m.title())
		if m.jsonl {
			bar += styles.MutedStyle.Render("  JSONL")
		}
		bar += strings.Repeat(" ", max(0, m.width-lipgloss.Width(bar)))
		view = bar + "\n" + view
	}
	if m.showHelp {
		view = m.help.Overlay(view)
	}
	view = m.logPane.Overlay(view)
	view = m.toaster.Overlay(view, m.width, m.height)
	if m.cfg.UI.Mouse {
		view = zone.Scan(view)
	}
	return view
}

// Close stops the watcher and listeners.
func (m *Model) Close() error {
	m.stopWatcher()
	if m.cancel != nil {
		m.cancel()
	}
	return nil
}

// String describes the model for debugging.
func (m Model) String() string {
	return fmt.Sprintf("app{path=%q depth=%d modified=%v}", m.path, len(m.stack), m.Modified())
}
