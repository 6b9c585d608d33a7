package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/jvim/internal/config"
	"github.com/zjrosen/jvim/internal/diff"
	"github.com/zjrosen/jvim/internal/editor"
	"github.com/zjrosen/jvim/internal/keys"
	"github.com/zjrosen/jvim/internal/log"
	"github.com/zjrosen/jvim/internal/ui/help"
	"github.com/zjrosen/jvim/internal/ui/styles"
)

const (
	sideLeft = iota
	sideRight
)

// diffLevel is one diff shown by the view: the files themselves, or the JSON
// embedded in a string value on the same row of both sides. A side is nil
// when only the other one holds embedded JSON.
type diffLevel struct {
	result *diff.Result
	panes  [2]*Pane
	active int
}

// DiffModel shows an aligned diff as two read-only editors. The panes scroll
// and fold together; Tab moves the cursor between them. ej opens the JSON
// embedded at the cursor row as a nested diff and :q closes it again.
type DiffModel struct {
	cfg    config.Config
	titles [2]string

	result *diff.Result
	panes  [2]*Pane
	active int
	// stack holds the outer levels while an embedded diff is open.
	stack []diffLevel

	width  int
	height int

	help     help.Model
	showHelp bool
}

// NewDiff builds the view for res. Unchanged regions start folded.
func NewDiff(res *diff.Result, leftTitle, rightTitle string, cfg config.Config) DiffModel {
	m := DiffModel{
		cfg:    cfg,
		titles: [2]string{leftTitle, rightTitle},
		help:   help.New(cfg.UI.MarkdownStyle),
	}
	m.load(res, [2]bool{true, true})
	m.foldUnchanged()

	left := m.panes[sideLeft].ed
	if res.Identical() {
		left.SetStatus("Files are identical")
	} else {
		left.SetStatus(hunkCount(len(res.Hunks)))
		left.SetCursor(editor.Position{Row: res.Hunks[0].Start})
	}
	for _, w := range res.Warnings {
		log.Warn(log.CatDiff, "compared as text", "warning", w.Error())
	}
	m.sync()
	return m
}

// load replaces the current level with editors over res for the present
// sides.
func (m *DiffModel) load(res *diff.Result, present [2]bool) {
	m.result = res
	m.panes = [2]*Pane{}
	m.active = sideLeft
	if !present[sideLeft] {
		m.active = sideRight
	}
	for side, lines := range [2][]string{res.Left, res.Right} {
		if !present[side] {
			continue
		}
		ed := editor.New(strings.Join(lines, "\n"), editor.Options{
			ReadOnly:     true,
			CollapseLen:  m.cfg.Editor.CollapseLength,
			PreviewLen:   m.cfg.Editor.PreviewLength,
			HistoryLimit: m.cfg.Editor.HistoryLimit,
		})
		ed.SetHunks(res.Hunks)
		zoneID := ""
		if m.cfg.UI.Mouse {
			zoneID = [2]string{"diffl-", "diffr-"}[side]
		}
		p := NewPane(ed, m.cfg.UI.LineNumbers, zoneID)
		p.allMatches = m.cfg.Search.HighlightAll
		p.decorate = decorator(res, side, m.cfg.Diff.WordDiff)
		m.panes[side] = p
	}
	m.resize()
}

func hunkCount(n int) string {
	if n == 1 {
		return "1 hunk"
	}
	return fmt.Sprintf("%d hunks", n)
}

// foldUnchanged folds nested blocks on the left, opens everything around a
// hunk and copies the result to the right so rows stay aligned.
func (m *DiffModel) foldUnchanged() {
	left := m.panes[sideLeft].ed
	folds := left.Folds()
	folds.FoldNested(left.Lines())
	for _, h := range m.result.Hunks {
		for row := h.Start; row < h.End(); row++ {
			folds.UnfoldFor(row)
			folds.Unfold(row)
		}
	}
	m.panes[sideRight].ed.Folds().Restore(folds.State())
}

// openEmbedded pushes a nested level for the JSON embedded at req's row. The
// other side's string on the same row is diffed against it when it also
// holds a list or dict.
func (m *DiffModel) openEmbedded(req editor.EmbeddedEditRequested) {
	side := m.active
	var other string
	otherOK := false
	if peer := m.panes[1-side]; peer != nil {
		other, otherOK = peer.ed.EmbeddedJSONAt(req.SourceRow)
	}
	m.stack = append(m.stack, diffLevel{result: m.result, panes: m.panes, active: m.active})

	if !otherOK {
		lines := strings.Split(req.Content, "\n")
		res := &diff.Result{Left: lines, Right: lines, Tags: make([]diff.Tag, len(lines))}
		var present [2]bool
		present[side] = true
		m.load(res, present)
		m.panes[side].ed.SetStatus("Embedded JSON only on the " + [2]string{"left", "right"}[side])
		log.Debug(log.CatDiff, "embedded diff opened", "level", len(m.stack), "side", side)
		return
	}

	left, right := req.Content, other
	if side == sideRight {
		left, right = other, req.Content
	}
	res := diff.Diff(left, right, diff.Options{
		MinBlockCount: m.cfg.Diff.MinBlockCount,
		FullDiffLimit: m.cfg.Diff.FullDiffLimit,
	})
	m.load(res, [2]bool{true, true})
	m.active = side
	status := "Embedded JSON is identical"
	if !res.Identical() {
		status = hunkCount(len(res.Hunks))
		m.panes[side].ed.SetCursor(editor.Position{Row: res.Hunks[0].Start})
	}
	m.panes[side].ed.SetStatus(status)
	m.sync()
	log.Debug(log.CatDiff, "embedded diff opened", "level", len(m.stack), "hunks", len(res.Hunks))
}

// closeEmbedded pops back to the enclosing level. It reports false at the
// outermost level.
func (m *DiffModel) closeEmbedded() bool {
	n := len(m.stack)
	if n == 0 {
		return false
	}
	lvl := m.stack[n-1]
	m.stack = m.stack[:n-1]
	m.result, m.panes, m.active = lvl.result, lvl.panes, lvl.active
	m.resize()
	m.sync()
	log.Debug(log.CatDiff, "embedded diff closed", "level", n)
	return true
}

// Depth is the number of open embedded diffs.
func (m DiffModel) Depth() int { return len(m.stack) }

// decorator returns the row styling for one side of res.
func decorator(res *diff.Result, side int, wordDiff bool) func(row int) rowDecoration {
	return func(row int) rowDecoration {
		if row < 0 || row >= res.Len() {
			return rowDecoration{}
		}
		switch res.Tags[row] {
		case diff.Insert:
			if side == sideLeft {
				return rowDecoration{filler: true}
			}
			return rowDecoration{bg: styles.DiffInsertColor}
		case diff.Delete:
			if side == sideRight {
				return rowDecoration{filler: true}
			}
			return rowDecoration{bg: styles.DiffDeleteColor}
		case diff.Replace:
			rd := rowDecoration{bg: styles.DiffReplaceColor}
			if wordDiff {
				if l, r, ok := res.WordDiff(row); ok {
					if side == sideLeft {
						rd.words = wordSpans(l)
					} else {
						rd.words = wordSpans(r)
					}
				}
			}
			return rd
		}
		return rowDecoration{}
	}
}

// wordSpans converts segments into grapheme column spans of changed text.
func wordSpans(segs []diff.Segment) []wordSpan {
	var spans []wordSpan
	col := 0
	for _, s := range segs {
		n := editor.GraphemeCount(s.Text)
		if s.Kind != diff.SegmentUnchanged {
			spans = append(spans, wordSpan{start: col, end: col + n, kind: s.Kind})
		}
		col += n
	}
	return spans
}

// Active returns the side receiving keys.
func (m DiffModel) Active() int { return m.active }

// Pane returns one side of the current level, or nil when that side has no
// embedded JSON.
func (m DiffModel) Pane(side int) *Pane { return m.panes[side] }

// Init implements tea.Model.
func (m DiffModel) Init() tea.Cmd { return nil }

func (m *DiffModel) paneWidth() int { return max(10, (m.width-1)/2) }

func (m *DiffModel) resize() {
	if m.width == 0 {
		return
	}
	for _, p := range m.panes {
		if p != nil {
			p.SetSize(m.paneWidth(), max(3, m.height-1))
		}
	}
}

// Update implements tea.Model.
func (m DiffModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		m.help = m.help.SetSize(msg.Width, msg.Height)
		m.sync()
		return m, nil

	case tea.MouseMsg:
		if msg.Button != tea.MouseButtonLeft || msg.Action != tea.MouseActionPress {
			return m, nil
		}
		for side, p := range m.panes {
			if p == nil {
				continue
			}
			if row, ok := p.RowAt(msg); ok {
				m.active = side
				p.ed.SetCursor(editor.Position{Row: row})
				m.sync()
				break
			}
		}
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, keys.Diff.Quit) {
			return m, tea.Quit
		}
		if m.showHelp {
			var closed bool
			m.help, closed = m.help.Update(msg)
			m.showHelp = !closed
			return m, nil
		}
		ed := m.panes[m.active].ed
		if key.Matches(msg, keys.Diff.SwitchPane) && ed.Mode().Kind == editor.ModeNormal {
			if m.panes[1-m.active] != nil {
				m.active = 1 - m.active
				m.sync()
			}
			return m, nil
		}
		intents := ed.HandleKey(editor.KeyFromMsg(msg))
		m.sync()
		for _, in := range intents {
			switch in := in.(type) {
			case editor.Quit, editor.ForceQuit:
				if m.showHelp {
					m.showHelp = false
					continue
				}
				if !m.closeEmbedded() {
					return m, tea.Quit
				}
			case editor.HelpToggleRequested:
				m.showHelp = !m.showHelp
			case editor.EmbeddedEditRequested:
				m.openEmbedded(in)
			}
		}
	}
	return m, nil
}

// sync copies the active pane's scroll position, cursor row and folds to its
// peer.
func (m *DiffModel) sync() {
	src, dst := m.panes[m.active], m.panes[1-m.active]
	if src == nil || dst == nil {
		return
	}
	dst.ed.Folds().Restore(src.ed.Folds().State())
	dst.ed.SetCursor(editor.Position{Row: src.ed.Cursor().Row, Col: dst.ed.Cursor().Col})
	dst.ed.SetTop(src.ed.Top())
	dst.left = src.left
}

var diffTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(styles.OverlayTitleColor)

func (m DiffModel) header(paneWidth int) string {
	s := m.result.Stats()
	stats := fmt.Sprintf("+%d -%d ~%d", s.Inserted, s.Deleted, s.Replaced)
	cell := func(side int) string {
		t := " " + m.titles[side]
		if n := len(m.stack); n > 0 {
			t += fmt.Sprintf(" › Embedded JSON (level %d)", n)
		}
		if side == m.active {
			t = "▸" + t[1:]
		}
		if side == sideRight {
			room := max(1, paneWidth-lipgloss.Width(stats)-1)
			t = diffTitleStyle.Render(styles.PadRight(styles.TruncateString(t, room), room))
			return t + " " + styles.MutedStyle.Render(stats)
		}
		return diffTitleStyle.Render(styles.PadRight(styles.TruncateString(t, paneWidth), paneWidth))
	}
	return cell(sideLeft) + " " + cell(sideRight)
}

// paneView renders one side, or a placeholder for a side without embedded
// JSON.
func (m DiffModel) paneView(side int) string {
	if p := m.panes[side]; p != nil {
		return p.View()
	}
	return lipgloss.NewStyle().Width(m.paneWidth()).Height(max(3, m.height-1)).
		Render(styles.MutedStyle.Render(" (no embedded JSON on this row)"))
}

// View implements tea.Model.
func (m DiffModel) View() string {
	if m.width == 0 {
		return ""
	}
	sep := styles.MutedStyle.Render(strings.TrimSuffix(strings.Repeat("│\n", max(1, m.height-1)), "\n"))
	body := lipgloss.JoinHorizontal(lipgloss.Top, m.paneView(sideLeft), sep, m.paneView(sideRight))
	view := m.header(m.paneWidth()) + "\n" + body
	if m.showHelp {
		view = m.help.Overlay(view)
	}
	if m.cfg.UI.Mouse {
		view = zone.Scan(view)
	}
	return view
}
