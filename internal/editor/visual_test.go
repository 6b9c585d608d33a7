package editor

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVisual_CharwiseYank(t *testing.T) {
	e := newTestEditor(t, "abc def")

	press(e, "wvll")
	start, end, ok := e.Selection()
	require.True(t, ok)
	require.Equal(t, Position{Col: 4}, start)
	require.Equal(t, Position{Col: 6}, end)

	press(e, "y")
	require.Equal(t, Yank{Text: "def"}, e.Yank())
	require.Equal(t, "yanked", e.Status())
	require.Equal(t, ModeNormal, e.Mode().Kind)
	require.Equal(t, Position{Col: 4}, e.Cursor())
	_, _, ok = e.Selection()
	require.False(t, ok)
}

func TestVisual_BackwardSelectionIsOrdered(t *testing.T) {
	e := newTestEditor(t, "abcdef")

	press(e, "$vhhd")

	require.Equal(t, "abc", e.Content())
	require.Equal(t, Yank{Text: "def"}, e.Yank())
}

func TestVisual_CharwiseDeleteAcrossLines(t *testing.T) {
	e := newTestEditor(t, "abc\ndef\nghi")

	press(e, "lvjd")

	require.Equal(t, []string{"af", "ghi"}, e.Lines())
	require.Equal(t, Yank{Text: "bc\nde"}, e.Yank())
	require.Equal(t, Position{Col: 1}, e.Cursor())
	require.Equal(t, "deleted", e.Status())

	press(e, "u")
	require.Equal(t, []string{"abc", "def", "ghi"}, e.Lines())
}

func TestVisual_CharwiseChange(t *testing.T) {
	e := newTestEditor(t, `"old"`)

	press(e, "lvllcnew<esc>")

	require.Equal(t, `"new"`, e.Content())
	require.Equal(t, ModeNormal, e.Mode().Kind)
}

func TestVisual_LinewiseDelete(t *testing.T) {
	e := newTestEditor(t, "a\nb\nc")

	press(e, "Vjd")

	require.Equal(t, []string{"c"}, e.Lines())
	require.Equal(t, Yank{Text: "a\nb", Linewise: true}, e.Yank())
	require.Equal(t, "2 lines deleted", e.Status())
}

func TestVisual_LinewiseDeleteEverything(t *testing.T) {
	e := newTestEditor(t, "a\nb\nc")

	press(e, "VGd")

	require.Equal(t, []string{""}, e.Lines())
	require.Equal(t, Position{}, e.Cursor())
}

func TestVisual_LinewiseYankThenPaste(t *testing.T) {
	e := newTestEditor(t, "a\nb\nc")

	press(e, "jVjy")
	require.Equal(t, "2 lines yanked", e.Status())
	require.Equal(t, Position{Row: 1}, e.Cursor())

	press(e, "ggP")
	require.Equal(t, []string{"b", "c", "a", "b", "c"}, e.Lines())
}

func TestVisual_LinewiseChangeKeepsIndent(t *testing.T) {
	e := newTestEditor(t, "{\n    \"a\": 1,\n    \"b\": 2\n}")

	press(e, "jVjc")
	require.Equal(t, ModeInsert, e.Mode().Kind)
	require.Equal(t, []string{"{", "    ", "}"}, e.Lines())
	require.Equal(t, Position{Row: 1, Col: 4}, e.Cursor())

	press(e, "\"c\": 3<esc>u")
	require.Equal(t, []string{"{", `    "a": 1,`, `    "b": 2`, "}"}, e.Lines())
}

func TestVisual_ToggleKinds(t *testing.T) {
	e := newTestEditor(t, "abc")

	press(e, "v")
	require.Equal(t, Mode{Kind: ModeVisual}, e.Mode())
	require.Equal(t, "-- VISUAL --", e.Status())

	press(e, "V")
	require.Equal(t, Mode{Kind: ModeVisual, Linewise: true}, e.Mode())
	require.Equal(t, "-- VISUAL LINE --", e.Status())

	press(e, "V")
	require.Equal(t, ModeNormal, e.Mode().Kind)

	press(e, "v<esc>")
	require.Equal(t, ModeNormal, e.Mode().Kind)
	require.Equal(t, "", e.Status())
}

func TestVisual_IgnoresEditCommands(t *testing.T) {
	e := newTestEditor(t, "abc\ndef")

	press(e, "vxpJ")

	require.Equal(t, "abc\ndef", e.Content())
	require.Equal(t, ModeVisual, e.Mode().Kind)
}

func TestVisual_ComboMotions(t *testing.T) {
	e := newTestEditor(t, "a\nb\nc")

	press(e, "GVggd")

	require.Equal(t, []string{""}, e.Lines())
}

func TestVisual_ReadOnly(t *testing.T) {
	e := newTestEditor(t, "abc", readOnly)

	press(e, "vld")
	require.Equal(t, "abc", e.Content())
	require.Equal(t, "[readonly]", e.Status())
	require.Equal(t, ModeNormal, e.Mode().Kind)
	require.Equal(t, Position{}, e.Cursor())

	press(e, "vly")
	require.Equal(t, Yank{Text: "ab"}, e.Yank())
}
