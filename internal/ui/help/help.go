// Package help is the scrollable :help overlay.
package help

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/jvim/internal/keys"
	"github.com/zjrosen/jvim/internal/log"
	"github.com/zjrosen/jvim/internal/ui/markdown"
	"github.com/zjrosen/jvim/internal/ui/overlay"
	"github.com/zjrosen/jvim/internal/ui/styles"
)

// Text is the help document.
const Text = `# jvim

Modal editing for JSON and JSONL. Keys follow vim.

## Motions

| Key | Action |
|---|---|
| h j k l | left, down, up, right |
| w b | next / previous word |
| 0 ^ $ | line start, first non-blank, line end |
| gg G | first / last line |
| % | matching bracket |
| ctrl+f ctrl+b | page down / up |
| ctrl+d ctrl+u | half page down / up |
| ctrl+e ctrl+y | scroll one line |
| ctrl+g | show position |

## Editing

| Key | Action |
|---|---|
| i I a A o O | enter insert mode |
| x | delete character |
| dd dw d$ d0 | delete |
| cw cc | change |
| r<c> | replace character |
| yy p P | yank and paste |
| J | join lines |
| u ctrl+r | undo / redo |
| . | repeat last edit |
| ej | edit the JSON held in a string value |

## Visual mode

| Key | Action |
|---|---|
| v V | characterwise / linewise selection |
| d y c | delete, yank or change the selection |

## Folds

| Key | Action |
|---|---|
| za zo zc | toggle, open, close |
| zM zR | close all / open all |
| z1 .. z9 | fold below depth |

Long string values are collapsed; ` + "`za`" + ` on the line expands them.

## Search

| Key | Action |
|---|---|
| / ? | search forward / backward |
| n N | next / previous match |

Patterns are regular expressions (smart case). A pattern starting with
` + "`$`" + ` or ` + "`@`" + ` is a JSONPath query: ` + "`$.users[*].name`" + `,
` + "`$..id`" + `, ` + "`$.items[?(@.price > 10)]`" + `. Ending a path with
` + "`~`" + ` matches keys instead of values.

## Commands

| Command | Action |
|---|---|
| :w [file] | write (validates first) |
| :w! [file] | write without validating |
| :q :q! | quit / quit discarding changes |
| :wq :x | write and quit |
| :e file | open file |
| :fmt | reformat the buffer |
| :validate | check the buffer is valid JSON |
| :N :pN | go to line N, or record N in JSONL |
| :lN | go to line N |
| :[range]s/pat/rep/[gi] | substitute |
| :help | toggle this help |

## Diff view

| Key | Action |
|---|---|
| ]c [c | next / previous hunk |
| tab | switch pane |
`

var boxStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(styles.OverlayBorderColor).
	Padding(0, 1)

// Model is the help overlay.
type Model struct {
	viewport viewport.Model
	help     help.Model
	style    string
	width    int
	height   int
}

// New creates the overlay. markdownStyle is "dark", "light" or empty.
func New(markdownStyle string) Model {
	return Model{style: markdownStyle, help: help.New()}
}

// SetSize sizes the overlay for a terminal of width x height and renders the
// document at that width.
func (m Model) SetSize(width, height int) Model {
	m.width, m.height = width, height
	innerW := max(20, min(width-6, 90))
	innerH := max(3, height-6)
	offset := m.viewport.YOffset
	m.viewport = viewport.New(innerW, innerH)
	m.viewport.SetContent(m.render(innerW))
	m.viewport.SetYOffset(offset)
	m.help.Width = innerW
	return m
}

func (m Model) render(width int) string {
	r, err := markdown.New(width, m.style)
	if err != nil {
		log.ErrorErr(log.CatUI, "help renderer", err)
		return Text
	}
	out, err := r.Render(Text)
	if err != nil {
		log.ErrorErr(log.CatUI, "help render", err)
		return Text
	}
	return strings.TrimRight(out, "\n")
}

// Update scrolls the document. closed is true when the user dismissed it.
func (m Model) Update(msg tea.KeyMsg) (_ Model, closed bool) {
	switch {
	case key.Matches(msg, keys.Help.Close):
		return m, true
	case key.Matches(msg, keys.Help.Down):
		m.viewport.ScrollDown(1)
	case key.Matches(msg, keys.Help.Up):
		m.viewport.ScrollUp(1)
	case key.Matches(msg, keys.Help.PageDown):
		m.viewport.HalfViewDown()
	case key.Matches(msg, keys.Help.PageUp):
		m.viewport.HalfViewUp()
	case key.Matches(msg, keys.Help.Top):
		m.viewport.GotoTop()
	case key.Matches(msg, keys.Help.Bottom):
		m.viewport.GotoBottom()
	}
	return m, false
}

// YOffset is the first document line shown.
func (m Model) YOffset() int { return m.viewport.YOffset }

// View renders the bordered box.
func (m Model) View() string {
	footer := lipgloss.NewStyle().Foreground(styles.TextMutedColor).Render(m.help.View(keys.Help))
	return boxStyle.Render(m.viewport.View() + "\n" + footer)
}

// Overlay draws the box centred over bg.
func (m Model) Overlay(bg string) string {
	return overlay.Place(overlay.Config{
		Width:    m.width,
		Height:   m.height,
		Position: overlay.Center,
	}, m.View(), bg)
}
