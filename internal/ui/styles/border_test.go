package styles

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testColorGreen = lipgloss.Color("#00FF00")

func TestRenderWithTitleBorder_Basic(t *testing.T) {
	result := RenderWithTitleBorder("content", "Help", 20, 5, false, testColorGreen, testColorGreen)

	lines := strings.Split(result, "\n")
	require.Len(t, lines, 5)
	assert.Contains(t, lines[0], "╭")
	assert.Contains(t, lines[0], "Help")
	assert.Contains(t, lines[1], "content")
	assert.Contains(t, lines[4], "╯")
	for i, line := range lines {
		assert.Equal(t, 20, ansi.StringWidth(line), "line %d", i)
	}
}

func TestRenderWithTitleBorder_CutsLongLines(t *testing.T) {
	content := strings.Repeat("x", 50) + "\nsecond\nthird\nfourth"
	result := RenderWithTitleBorder(content, "", 12, 4, true, testColorGreen, testColorGreen)

	lines := strings.Split(result, "\n")
	require.Len(t, lines, 4, "content beyond the inner height is dropped")
	for _, line := range lines {
		assert.Equal(t, 12, ansi.StringWidth(line))
	}
	assert.NotContains(t, result, "third")
}

func TestRenderWithTitleBorder_LongTitle(t *testing.T) {
	result := RenderWithTitleBorder("x", "A Very Long Title That Will Not Fit", 20, 3, false, testColorGreen, testColorGreen)
	top := strings.Split(result, "\n")[0]
	assert.Equal(t, 20, ansi.StringWidth(top))
	assert.Contains(t, top, "...")
}

func TestRenderWithTitleBorder_Narrow(t *testing.T) {
	result := RenderWithTitleBorder("x", "Title", 4, 3, false, testColorGreen, testColorGreen)
	top := strings.Split(result, "\n")[0]
	assert.NotContains(t, top, "Title")
	assert.Equal(t, 4, ansi.StringWidth(top))
}
