package app

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/jvim/internal/diff"
	"github.com/zjrosen/jvim/internal/editor"
	"github.com/zjrosen/jvim/internal/ui/styles"
)

// lexCacheLimit bounds the per-pane syntax cache. JSON repeats lines a lot, so
// the cache is keyed by line text rather than row.
const lexCacheLimit = 4096

// rowDecoration is extra per-row styling supplied by the diff view.
type rowDecoration struct {
	bg     lipgloss.TerminalColor
	filler bool
	words  []wordSpan
}

// wordSpan marks grapheme columns [start, end) as changed within a row.
type wordSpan struct {
	start, end int
	kind       diff.SegmentKind
}

// Pane renders one editor: gutter, syntax coloured body, status line and
// command line.
type Pane struct {
	ed          *editor.Editor
	width       int
	height      int
	left        int
	lineNumbers bool
	zoneID      string
	allMatches  bool
	decorate    func(row int) rowDecoration

	lexCache   map[string][]synClass
	recVersion uint64
	recs       []int
	recCount   int
}

// NewPane wraps ed. zoneID prefixes the bubblezone marks placed on gutter
// rows; an empty id disables mouse zones.
func NewPane(ed *editor.Editor, lineNumbers bool, zoneID string) *Pane {
	return &Pane{
		ed:          ed,
		lineNumbers: lineNumbers,
		zoneID:      zoneID,
		allMatches:  true,
		lexCache:    make(map[string][]synClass),
		recVersion:  ^uint64(0),
	}
}

// Editor returns the wrapped editor.
func (p *Pane) Editor() *editor.Editor { return p.ed }

// SetSize sets the pane size including the status and command lines.
func (p *Pane) SetSize(width, height int) {
	p.width, p.height = width, height
	p.ed.SetHeight(max(1, height-2))
}

// Left is the horizontal scroll offset in cells.
func (p *Pane) Left() int { return p.left }

// View renders the pane.
func (p *Pane) View() string {
	if p.width < 10 || p.height < 3 {
		return "(too small)"
	}
	body := p.body(p.width, p.height-2)
	return strings.Join(append(body, p.statusLine(p.width), p.commandLine(p.width)), "\n")
}

// RowAt returns the buffer row whose gutter zone contains the mouse event.
func (p *Pane) RowAt(msg tea.MouseMsg) (int, bool) {
	if p.zoneID == "" {
		return 0, false
	}
	for _, row := range p.visibleRows(p.height - 2) {
		if z := zone.Get(p.gutterZone(row)); z != nil && z.InBounds(msg) {
			return row, true
		}
	}
	return 0, false
}

func (p *Pane) gutterZone(row int) string { return p.zoneID + strconv.Itoa(row) }

// visibleRows lists the rows drawn in a body of the given height.
func (p *Pane) visibleRows(height int) []int {
	lines := p.ed.Lines()
	folds := p.ed.Folds()
	row := p.ed.Top()
	if folds.IsHidden(row) {
		row = folds.NextVisible(row, 1, len(lines))
	}
	var rows []int
	for len(rows) < height && row < len(lines) {
		rows = append(rows, row)
		if end, ok := folds.FoldAt(row); ok {
			row = end + 1
		} else {
			row++
		}
	}
	return rows
}

// recordNumbers maps each row to its 1-based JSONL record number on the
// first line of a record and 0 elsewhere.
func (p *Pane) recordNumbers() ([]int, int) {
	if p.recVersion == p.ed.Version() {
		return p.recs, p.recCount
	}
	lines := p.ed.Lines()
	recs := make([]int, len(lines))
	n := 0
	inBlock := false
	for i, l := range lines {
		if strings.TrimSpace(l) == "" {
			inBlock = false
			continue
		}
		if !inBlock {
			n++
			recs[i] = n
			inBlock = true
		}
	}
	p.recs, p.recCount, p.recVersion = recs, n, p.ed.Version()
	return recs, n
}

func digits(n int) int { return len(strconv.Itoa(max(1, n))) }

type gutter struct {
	lnWidth  int
	recWidth int
}

func (g gutter) width() int {
	w := 0
	if g.lnWidth > 0 {
		w += g.lnWidth + 1
	}
	if g.recWidth > 0 {
		w += g.recWidth + 1
	}
	return w
}

func (p *Pane) gutter() gutter {
	var g gutter
	if p.lineNumbers {
		g.lnWidth = max(3, digits(len(p.ed.Lines())))
	}
	if p.ed.JSONL() {
		_, n := p.recordNumbers()
		g.recWidth = max(2, digits(n))
	}
	return g
}

func (p *Pane) renderGutter(g gutter, row int) string {
	var sb strings.Builder
	if g.lnWidth > 0 {
		st := styles.LineNumberStyle
		if row == p.ed.Cursor().Row {
			st = styles.LineNumberCurrentStyle
		}
		sb.WriteString(st.Render(fmt.Sprintf("%*d", g.lnWidth, row+1)))
		sb.WriteString(" ")
	}
	if g.recWidth > 0 {
		recs, _ := p.recordNumbers()
		if n := recs[row]; n > 0 {
			sb.WriteString(styles.JSONNumberStyle.Faint(true).Render(fmt.Sprintf("%*d", g.recWidth, n)))
		} else {
			sb.WriteString(strings.Repeat(" ", g.recWidth))
		}
		sb.WriteString(" ")
	}
	out := sb.String()
	if p.zoneID != "" && out != "" {
		out = zone.Mark(p.gutterZone(row), out)
	}
	return out
}

func (p *Pane) lexLine(line string, gs []string) []synClass {
	if c, ok := p.lexCache[line]; ok {
		return c
	}
	if len(p.lexCache) >= lexCacheLimit {
		clear(p.lexCache)
	}
	c := lex(gs)
	p.lexCache[line] = c
	return c
}

// cell is one grapheme on screen. src is its buffer column, or -1 for text
// the renderer added.
type cell struct {
	text  string
	src   int
	syn   synClass
	width int
}

// cells builds the displayed graphemes of row, replacing a collapsed long
// string with its preview.
func (p *Pane) cells(row int) []cell {
	line := p.ed.Lines()[row]
	if p.ed.Folds().IsCollapsed(row) {
		if ls, ok := editor.LongStringAt(line, p.ed.Folds().CollapseLen()); ok {
			return p.collapsedCells(line, ls)
		}
	}
	gs := editor.Graphemes(line)
	syn := p.lexLine(line, gs)
	out := make([]cell, len(gs))
	for i, g := range gs {
		out[i] = cell{text: g, src: i, syn: syn[i], width: editor.DisplayWidth(g)}
	}
	return out
}

func (p *Pane) collapsedCells(line string, ls editor.LongString) []cell {
	gs := editor.Graphemes(line)
	previewEnd := ls.PreviewEnd(p.ed.PreviewLen())
	suffix := editor.Graphemes(fmt.Sprintf(`..." (%d chars)`, ls.Len))

	shown := make([]string, 0, previewEnd+len(suffix)+len(gs)-ls.End)
	shown = append(shown, gs[:previewEnd]...)
	shown = append(shown, suffix...)
	shown = append(shown, gs[ls.End:]...)
	syn := lex(shown)

	out := make([]cell, len(shown))
	for i, g := range shown {
		c := cell{text: g, syn: syn[i], width: editor.DisplayWidth(g)}
		switch {
		case i < previewEnd:
			c.src = i
		case i < previewEnd+len(suffix):
			c.src = -1
			c.syn = synDim
		default:
			c.src = i - previewEnd - len(suffix) + ls.End
		}
		out[i] = c
	}
	return out
}

// cursorCell returns the index of the cell showing buffer column col.
// Columns hidden inside a collapsed string map to the first added cell.
func cursorCell(cells []cell, col int) int {
	for i, c := range cells {
		if c.src == col {
			return i
		}
		if c.src > col {
			for i > 0 && cells[i-1].src == -1 {
				i--
			}
			return i
		}
	}
	return len(cells)
}

// scrollTo keeps the cursor inside the avail columns of the body.
func (p *Pane) scrollTo(avail int) {
	cur := p.ed.Cursor()
	if cur.Row >= len(p.ed.Lines()) {
		return
	}
	cells := p.cells(cur.Row)
	idx := cursorCell(cells, cur.Col)
	x := 0
	for _, c := range cells[:min(idx, len(cells))] {
		x += c.width
	}
	w := 1
	if idx < len(cells) {
		w = cells[idx].width
	}
	if x < p.left {
		p.left = x
	}
	if x+w > p.left+avail {
		p.left = x + w - avail
	}
	p.left = max(0, p.left)
}

type matchKind uint8

const (
	matchNone matchKind = iota
	matchOther
	matchCurrent
)

// deco is the comparable decoration of one cell; runs of equal decos are
// rendered with one style.
type deco struct {
	syn    synClass
	sel    bool
	match  matchKind
	word   diff.SegmentKind
	cursor bool
}

func (d deco) style(bg lipgloss.TerminalColor) lipgloss.Style {
	st := synStyle(d.syn)
	switch {
	case d.match == matchCurrent:
		st = st.Background(styles.SearchCurrentColor).Bold(true)
	case d.match == matchOther:
		st = st.Background(styles.SearchMatchColor)
	case d.sel:
		st = st.Background(styles.SelectionColor)
	case d.word == diff.SegmentAdded:
		st = st.Background(styles.DiffWordAddColor).Bold(true)
	case d.word == diff.SegmentDeleted:
		st = st.Background(styles.DiffWordDeleteColor).Bold(true)
	case bg != nil:
		st = st.Background(bg)
	}
	if d.cursor {
		st = st.Reverse(true)
	}
	return st
}

type selection struct {
	start, end editor.Position
	linewise   bool
	ok         bool
}

func (s selection) contains(row, col int) bool {
	if !s.ok || row < s.start.Row || row > s.end.Row {
		return false
	}
	if s.linewise {
		return true
	}
	if row == s.start.Row && col < s.start.Col {
		return false
	}
	if row == s.end.Row && col > s.end.Col {
		return false
	}
	return true
}

func (p *Pane) selection() selection {
	start, end, ok := p.ed.Selection()
	return selection{start: start, end: end, linewise: p.ed.Mode().Linewise, ok: ok}
}

// body renders height rows of text, each exactly width cells wide.
func (p *Pane) body(width, height int) []string {
	g := p.gutter()
	avail := max(1, width-g.width())
	p.scrollTo(avail)

	cur := p.ed.Cursor()
	sel := p.selection()
	current, hasCurrent := p.ed.CurrentMatch()

	rows := p.visibleRows(height)
	out := make([]string, 0, height)
	for _, row := range rows {
		var rd rowDecoration
		if p.decorate != nil {
			rd = p.decorate(row)
		}
		cells := p.cells(row)
		decos := make([]deco, len(cells))
		for i, c := range cells {
			decos[i].syn = c.syn
			if c.src >= 0 {
				decos[i].sel = sel.contains(row, c.src)
			}
		}
		for _, m := range p.ed.MatchesOnRow(row) {
			kind := matchOther
			if hasCurrent && current.Row == m.Row && current.Start == m.Start {
				kind = matchCurrent
			} else if !p.allMatches {
				continue
			}
			for i, c := range cells {
				if c.src >= m.Start && c.src < m.End {
					decos[i].match = kind
				}
			}
		}
		for _, w := range rd.words {
			for i, c := range cells {
				if c.src >= w.start && c.src < w.end {
					decos[i].word = w.kind
				}
			}
		}
		if row == cur.Row {
			idx := cursorCell(cells, cur.Col)
			if idx == len(cells) {
				cells = append(cells, cell{text: " ", src: cur.Col, width: 1})
				decos = append(decos, deco{})
			}
			decos[idx].cursor = true
		}

		text := p.renderCells(cells, decos, rd.bg, avail)
		if end, ok := p.ed.Folds().FoldAt(row); ok {
			text += styles.FoldStyle.Render(fmt.Sprintf(" ... (%d lines)", end-row))
			text = ansi.Truncate(text, avail, "")
		}
		text = fill(text, avail, rd)
		out = append(out, p.renderGutter(g, row)+text)
	}

	tilde := styles.LineNumberStyle.Render(fmt.Sprintf("%*s", max(1, g.width()-1), "~"))
	for len(out) < height {
		out = append(out, tilde+strings.Repeat(" ", max(0, width-lipgloss.Width(tilde))))
	}
	return out
}

// renderCells draws the cells between p.left and p.left+avail, merging runs
// with the same decoration.
func (p *Pane) renderCells(cells []cell, decos []deco, bg lipgloss.TerminalColor, avail int) string {
	var sb, run strings.Builder
	var runDeco deco
	x := 0
	flush := func() {
		if run.Len() > 0 {
			sb.WriteString(runDeco.style(bg).Render(run.String()))
			run.Reset()
		}
	}
	for i, c := range cells {
		if x < p.left {
			x += c.width
			continue
		}
		if x+c.width > p.left+avail {
			break
		}
		x += c.width
		if run.Len() > 0 && decos[i] != runDeco {
			flush()
		}
		runDeco = decos[i]
		run.WriteString(c.text)
	}
	flush()
	return sb.String()
}

// fill pads a rendered row to width, using the diff background or filler
// pattern when the row has one.
func fill(text string, width int, rd rowDecoration) string {
	pad := width - lipgloss.Width(text)
	if pad <= 0 {
		return text
	}
	switch {
	case rd.filler:
		return text + styles.DiffFillerStyle.Render(strings.Repeat("╱", pad))
	case rd.bg != nil:
		return text + lipgloss.NewStyle().Background(rd.bg).Render(strings.Repeat(" ", pad))
	default:
		return text + strings.Repeat(" ", pad)
	}
}

func modeBadge(m editor.Mode) string {
	label := " " + m.String() + " "
	switch m.Kind {
	case editor.ModeInsert:
		return styles.ModeInsertStyle.Render(label)
	case editor.ModeVisual:
		return styles.ModeVisualStyle.Render(label)
	default:
		return styles.ModeNormalStyle.Render(label)
	}
}

// statusLine renders mode, read-only badge, pending keys, the status message
// and the cursor position.
func (p *Pane) statusLine(width int) string {
	left := modeBadge(p.ed.Mode())
	if p.ed.ReadOnly() {
		left += styles.WarningStyle.Bold(true).Render(" RO ")
	}
	if pending := p.ed.Pending(); pending != "" {
		left += styles.WarningStyle.Bold(true).Render("  " + pending)
	}
	cur := p.ed.Cursor()
	pos := lipgloss.NewStyle().Bold(true).Render(fmt.Sprintf(" Ln %d/%d, Col %d ", cur.Row+1, len(p.ed.Lines()), cur.Col+1))

	room := width - lipgloss.Width(left) - lipgloss.Width(pos) - 2
	msg := ""
	if s := p.ed.Status(); s != "" && room > 0 {
		msg = styles.TextStyle.Render(ansi.Truncate(s, room, "…"))
	}
	line := left + "  " + msg
	gap := width - lipgloss.Width(line) - lipgloss.Width(pos)
	if gap < 0 {
		return ansi.Truncate(line+pos, width, "")
	}
	return line + strings.Repeat(" ", gap) + pos
}

// commandLine shows the ':' or search input while it is being typed.
func (p *Pane) commandLine(width int) string {
	m := p.ed.Mode()
	var prefix string
	var st lipgloss.Style
	switch m.Kind {
	case editor.ModeCommand:
		prefix, st = ":", styles.WarningStyle.Bold(true)
	case editor.ModeSearch:
		prefix = "/"
		if m.Backward {
			prefix = "?"
		}
		st = lipgloss.NewStyle().Foreground(styles.ModeVisualColor).Bold(true)
	default:
		return strings.Repeat(" ", width)
	}
	line := st.Render(prefix+p.ed.Input()) + styles.CursorStyle.Render(" ")
	if lipgloss.Width(line) > width {
		return ansi.TruncateLeft(line, lipgloss.Width(line)-width, "")
	}
	return line
}
