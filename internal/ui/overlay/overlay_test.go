package overlay

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const frame = "AAAAA\nAAAAA\nAAAAA\nAAAAA\nAAAAA"

func TestPlace_Center(t *testing.T) {
	lines := strings.Split(Place(Config{Width: 5, Height: 5, Position: Center}, "X", frame), "\n")

	require.Len(t, lines, 5)
	assert.Equal(t, "AAXAA", lines[2])
	assert.Equal(t, "AAAAA", lines[0])
}

func TestPlace_Top(t *testing.T) {
	lines := strings.Split(Place(Config{Width: 5, Height: 5, Position: Top, PadY: 1}, "XXX", frame), "\n")

	assert.Equal(t, "AAAAA", lines[0])
	assert.Equal(t, "AXXXA", lines[1])
}

func TestPlace_Bottom(t *testing.T) {
	lines := strings.Split(Place(Config{Width: 5, Height: 5, Position: Bottom}, "X", frame), "\n")

	assert.Equal(t, "AAXAA", lines[4])
}

func TestPlace_BottomRight(t *testing.T) {
	lines := strings.Split(Place(Config{Width: 5, Height: 5, Position: BottomRight, PadX: 1, PadY: 1}, "XX\nXX", frame), "\n")

	assert.Equal(t, "AAXXA", lines[2])
	assert.Equal(t, "AAXXA", lines[3])
	assert.Equal(t, "AAAAA", lines[4])
}

func TestPlace_PadsShortBackground(t *testing.T) {
	lines := strings.Split(Place(Config{Width: 4, Height: 3, Position: Bottom}, "X", "AAAA"), "\n")

	require.Len(t, lines, 3)
	assert.Equal(t, " X  ", lines[2])
}

func TestPlace_ClipsTallBackground(t *testing.T) {
	lines := strings.Split(Place(Config{Width: 5, Height: 2}, "", frame), "\n")

	assert.Len(t, lines, 2)
}

func TestPlace_OversizedForegroundStartsAtOrigin(t *testing.T) {
	lines := strings.Split(Place(Config{Width: 3, Height: 3}, "XXXXX\nXXXXX\nXXXXX\nXXXXX", "AAA\nAAA\nAAA"), "\n")

	require.Len(t, lines, 3)
	assert.Equal(t, "XXXXX", lines[0])
}

func TestPlace_KeepsBackgroundStyling(t *testing.T) {
	styled := lipgloss.NewStyle().Bold(true).Render("AAAAA")
	bg := strings.Join([]string{styled, styled, styled}, "\n")

	out := Place(Config{Width: 5, Height: 3, Position: Center}, "X", bg)

	lines := strings.Split(out, "\n")
	assert.Equal(t, 5, lipgloss.Width(lines[1]))
	assert.Contains(t, lines[1], "X")
}

func TestOrigin_NeverNegative(t *testing.T) {
	x, y := origin(Config{Width: 2, Height: 2, Position: BottomRight, PadX: 5, PadY: 5}, 4, 4)

	assert.Equal(t, 0, x)
	assert.Equal(t, 0, y)
}
