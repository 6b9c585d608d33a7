package help

import (
	"regexp"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func stripANSI(s string) string { return ansiRegex.ReplaceAllString(s, "") }

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func TestView_RendersDocument(t *testing.T) {
	m := New("dark").SetSize(100, 60)

	view := stripANSI(m.View())

	assert.Contains(t, view, "jvim")
	assert.Contains(t, view, "Motions")
	assert.Contains(t, view, "╭")
	assert.Contains(t, view, "close")
}

func TestUpdate_Scrolls(t *testing.T) {
	m := New("dark").SetSize(80, 12)

	m, closed := m.Update(runes("j"))
	require.False(t, closed)
	assert.Equal(t, 1, m.YOffset())

	m, _ = m.Update(runes("k"))
	assert.Equal(t, 0, m.YOffset())

	m, _ = m.Update(runes("G"))
	assert.Positive(t, m.YOffset())

	m, _ = m.Update(runes("g"))
	assert.Equal(t, 0, m.YOffset())
}

func TestUpdate_Close(t *testing.T) {
	for _, msg := range []tea.KeyMsg{{Type: tea.KeyEscape}, runes("q"), runes("?")} {
		_, closed := New("").SetSize(80, 20).Update(msg)
		assert.True(t, closed, "key %q", msg.String())
	}
}

func TestSetSize_KeepsOffset(t *testing.T) {
	m := New("").SetSize(80, 12)
	m, _ = m.Update(runes("j"))
	m, _ = m.Update(runes("j"))

	m = m.SetSize(90, 12)

	assert.Equal(t, 2, m.YOffset())
}

func TestOverlay_KeepsFrameHeight(t *testing.T) {
	m := New("").SetSize(80, 30)
	bg := strings.TrimRight(strings.Repeat(strings.Repeat(" ", 80)+"\n", 30), "\n")

	out := m.Overlay(bg)

	assert.Len(t, strings.Split(out, "\n"), 30)
}
