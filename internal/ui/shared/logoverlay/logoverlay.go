// Package logoverlay shows recent log entries over the editor. It is only
// reachable in debug mode.
package logoverlay

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/jvim/internal/keys"
	"github.com/zjrosen/jvim/internal/log"
	"github.com/zjrosen/jvim/internal/ui/overlay"
	"github.com/zjrosen/jvim/internal/ui/styles"
)

const (
	viewportMaxHeight = 25
	viewportMinHeight = 5
	boxMaxWidth       = 160
	boxMinWidth       = 40
	recentEntries     = 1000
)

// CloseMsg is sent when the pane closes itself.
type CloseMsg struct{}

// Model is the log pane.
type Model struct {
	visible  bool
	minLevel log.Level
	width    int
	height   int
	viewport viewport.Model
}

// New returns a hidden pane showing every level.
func New() Model {
	return Model{minLevel: log.LevelDebug}
}

// Update handles keys while the pane is visible.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if !m.visible {
		return m, nil
	}
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.LogPane.Close):
			m.visible = false
			return m, func() tea.Msg { return CloseMsg{} }
		case key.Matches(msg, keys.LogPane.Clear):
			log.ClearRecent()
			m.Refresh()
		case key.Matches(msg, keys.LogPane.Debug):
			m.setLevel(log.LevelDebug)
		case key.Matches(msg, keys.LogPane.Info):
			m.setLevel(log.LevelInfo)
		case key.Matches(msg, keys.LogPane.Warn):
			m.setLevel(log.LevelWarn)
		case key.Matches(msg, keys.LogPane.Error):
			m.setLevel(log.LevelError)
		case key.Matches(msg, keys.LogPane.Down):
			m.viewport.ScrollDown(1)
		case key.Matches(msg, keys.LogPane.Up):
			m.viewport.ScrollUp(1)
		case key.Matches(msg, keys.LogPane.Top):
			m.viewport.GotoTop()
		case key.Matches(msg, keys.LogPane.Bottom):
			m.viewport.GotoBottom()
		}
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
	}
	return m, nil
}

func (m *Model) setLevel(level log.Level) {
	m.minLevel = level
	m.Refresh()
}

// MinLevel is the lowest level shown.
func (m Model) MinLevel() log.Level { return m.minLevel }

// View renders the box.
func (m Model) View() string {
	if !m.visible {
		return ""
	}
	width := m.boxWidth()
	divider := lipgloss.NewStyle().Foreground(styles.OverlayBorderColor).Render(strings.Repeat("─", width))
	body := strings.Join([]string{m.viewport.View(), divider, m.filterHint()}, "\n")
	return styles.RenderWithTitleBorder(body, "Logs", width+2, m.viewport.Height+4, true,
		styles.OverlayTitleColor, styles.OverlayBorderColor)
}

// Overlay draws the pane centred over bg.
func (m Model) Overlay(bg string) string {
	if !m.visible {
		return bg
	}
	return overlay.Place(overlay.Config{
		Width:    m.width,
		Height:   m.height,
		Position: overlay.Center,
	}, m.View(), bg)
}

// Visible reports whether the pane is open.
func (m Model) Visible() bool { return m.visible }

// Toggle opens or closes the pane.
func (m *Model) Toggle() {
	m.visible = !m.visible
	if m.visible {
		m.Refresh()
	}
}

// Hide closes the pane.
func (m *Model) Hide() { m.visible = false }

// SetSize records the terminal size.
func (m *Model) SetSize(width, height int) {
	m.width, m.height = width, height
	m.Refresh()
}

// Refresh reloads entries, following the tail when the view was at the
// bottom.
func (m *Model) Refresh() {
	if m.width == 0 || m.height == 0 {
		return
	}
	follow := m.viewport.AtBottom() || m.viewport.Height == 0
	offset := m.viewport.YOffset
	height := max(min(viewportMaxHeight, m.height-6), viewportMinHeight)
	m.viewport = viewport.New(m.contentWidth(), height)
	m.viewport.SetContent(m.content())
	if follow {
		m.viewport.GotoBottom()
	} else {
		m.viewport.SetYOffset(offset)
	}
}

func (m Model) content() string {
	var lines []string
	for _, e := range log.Recent(recentEntries) {
		if e.Level >= m.minLevel {
			lines = append(lines, colorize(e, m.contentWidth()))
		}
	}
	if len(lines) == 0 {
		return lipgloss.NewStyle().Foreground(styles.TextMutedColor).Italic(true).Render("No logs to display")
	}
	return strings.Join(lines, "\n")
}

func (m Model) boxWidth() int { return max(min(m.width-4, boxMaxWidth), boxMinWidth) }

func (m Model) contentWidth() int { return m.boxWidth() - 2 }

func colorize(e log.Entry, width int) string {
	line := fmt.Sprintf("%s %-5s %-7s %s", e.Time.Format("15:04:05"), e.Level, e.Category, e.Message)
	for i := 0; i+1 < len(e.Fields); i += 2 {
		line += fmt.Sprintf(" %v=%v", e.Fields[i], e.Fields[i+1])
	}
	line = styles.TruncateString(line, width)
	color := styles.TextPrimaryColor
	switch e.Level {
	case log.LevelError:
		color = styles.StatusErrorColor
	case log.LevelWarn:
		color = styles.StatusWarningColor
	case log.LevelDebug:
		color = styles.TextMutedColor
	}
	return lipgloss.NewStyle().Foreground(color).Render(line)
}

func (m Model) filterHint() string {
	hint := lipgloss.NewStyle().Foreground(styles.TextMutedColor)
	active := lipgloss.NewStyle().Foreground(styles.TextPrimaryColor).Bold(true)
	parts := []string{hint.Render("[c] Clear")}
	for _, f := range []struct {
		level log.Level
		label string
	}{
		{log.LevelDebug, "[d] Debug"},
		{log.LevelInfo, "[i] Info"},
		{log.LevelWarn, "[w] Warn"},
		{log.LevelError, "[e] Error"},
	} {
		if f.level == m.minLevel {
			parts = append(parts, active.Render(f.label))
		} else {
			parts = append(parts, hint.Render(f.label))
		}
	}
	return strings.Join(parts, "  ")
}
