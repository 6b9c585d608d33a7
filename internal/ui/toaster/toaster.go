// Package toaster shows short-lived notices (saves, reloads, validation
// results) in the corner of the editor.
package toaster

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/jvim/internal/ui/overlay"
	"github.com/zjrosen/jvim/internal/ui/styles"
)

// Style selects the border colour and icon of a toast.
type Style int

const (
	StyleSuccess Style = iota
	StyleError
	StyleInfo
	StyleWarn
)

const (
	// DefaultDuration is how long a toast stays up.
	DefaultDuration = 3 * time.Second
	// MaxWidth is the widest a toast message gets before it wraps.
	MaxWidth = 60
)

// Model holds one toast. A newer toast replaces the current one; seq makes
// dismissals scheduled for older toasts no-ops.
type Model struct {
	message string
	style   Style
	visible bool
	seq     int
}

// New returns a hidden toaster.
func New() Model { return Model{} }

// Show displays message and returns the command that hides it after
// DefaultDuration.
func (m Model) Show(message string, style Style) (Model, tea.Cmd) {
	m.message = message
	m.style = style
	m.visible = true
	m.seq++
	return m, ScheduleDismiss(m.seq, DefaultDuration)
}

// Hide dismisses the toast.
func (m Model) Hide() Model {
	m.visible = false
	m.message = ""
	return m
}

// Visible reports whether a toast is showing.
func (m Model) Visible() bool { return m.visible }

// Message returns the current text.
func (m Model) Message() string { return m.message }

// Update handles DismissMsg.
func (m Model) Update(msg tea.Msg) Model {
	if d, ok := msg.(DismissMsg); ok && d.Seq == m.seq {
		return m.Hide()
	}
	return m
}

// View renders the toast box.
func (m Model) View() string {
	if !m.visible || m.message == "" {
		return ""
	}
	color, icon := styles.StatusSuccessColor, "✓"
	switch m.style {
	case StyleError:
		color, icon = styles.StatusErrorColor, "✗"
	case StyleInfo:
		color, icon = styles.OverlayBorderColor, "•"
	case StyleWarn:
		color, icon = styles.StatusWarningColor, "!"
	}
	return lipgloss.NewStyle().
		Padding(0, 1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color).
		Render(lipgloss.NewStyle().Foreground(color).Render(icon) + " " + styles.Wrap(m.message, MaxWidth))
}

// Overlay draws the toast above the status line in the bottom right corner.
func (m Model) Overlay(bg string, width, height int) string {
	if !m.visible || m.message == "" {
		return bg
	}
	return overlay.Place(overlay.Config{
		Width:    width,
		Height:   height,
		Position: overlay.BottomRight,
		PadX:     1,
		PadY:     2,
	}, m.View(), bg)
}

// DismissMsg hides the toast numbered Seq.
type DismissMsg struct{ Seq int }

// ScheduleDismiss returns a command that dismisses toast seq after d.
func ScheduleDismiss(seq int, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return DismissMsg{Seq: seq}
	})
}
