package editor

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCommand_Write(t *testing.T) {
	tests := []struct {
		name   string
		script string
		want   []Intent
	}{
		{name: "write", script: ":w<enter>", want: []Intent{FileSaveRequested{Content: `{"a": 1}`}}},
		{name: "write as", script: ":w out.json<enter>", want: []Intent{FileSaveRequested{Content: `{"a": 1}`, Path: "out.json"}}},
		{name: "write quit", script: ":wq<enter>", want: []Intent{FileSaveRequested{Content: `{"a": 1}`, QuitAfter: true}}},
		{name: "exit", script: ":x<enter>", want: []Intent{FileSaveRequested{Content: `{"a": 1}`, QuitAfter: true}}},
		{name: "quit", script: ":q<enter>", want: []Intent{Quit{}}},
		{name: "force quit", script: ":q!<enter>", want: []Intent{ForceQuit{}}},
		{name: "open", script: ":e other.json<enter>", want: []Intent{FileOpenRequested{Path: "other.json"}}},
		{name: "help", script: ":help<enter>", want: []Intent{HelpToggleRequested{}}},
		{name: "empty", script: ":<enter>", want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEditor(t, `{"a": 1}`)
			require.Equal(t, tt.want, press(e, tt.script))
			require.Equal(t, ModeNormal, e.Mode().Kind)
		})
	}
}

func TestCommand_WriteRefusesInvalidJSON(t *testing.T) {
	e := newTestEditor(t, `{"a": }`)

	intents := press(e, ":w<enter>")
	require.Empty(t, intents)
	require.True(t, strings.HasPrefix(e.Status(), "JSON error: "), e.Status())

	intents = press(e, ":w!<enter>")
	require.Equal(t, []Intent{FileSaveRequested{Content: `{"a": }`}}, intents)
}

func TestCommand_WriteJSONLIsCompact(t *testing.T) {
	e := newTestEditor(t, "{\"a\":1}\n{\"b\":2}", jsonl)

	intents := press(e, ":w<enter>")

	require.Equal(t, []Intent{FileSaveRequested{Content: "{\"a\": 1}\n{\"b\": 2}"}}, intents)
}

func TestCommand_OpenNeedsPath(t *testing.T) {
	e := newTestEditor(t, "{}")

	intents := press(e, ":e<enter>")

	require.Empty(t, intents)
	require.Equal(t, "Usage: :e <file>", e.Status())
}

func TestCommand_Unknown(t *testing.T) {
	e := newTestEditor(t, "{}")

	press(e, ":bogus<enter>")

	require.Equal(t, "unknown command: :bogus", e.Status())
}

func TestCommand_LineJumps(t *testing.T) {
	tests := []struct {
		name   string
		script string
		row    int
	}{
		{name: "line number", script: ":5<enter>", row: 4},
		{name: "l prefix", script: ":l7<enter>", row: 6},
		{name: "p prefix without jsonl", script: ":p3<enter>", row: 2},
		{name: "last line", script: ":$<enter>", row: 49},
		{name: "past the end", script: ":500<enter>", row: 49},
		{name: "zero", script: ":0<enter>", row: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEditor(t, numberedLines(50))
			press(e, tt.script)
			require.Equal(t, Position{Row: tt.row}, e.Cursor())
			require.Equal(t, tt.row, e.Top())
		})
	}
}

func TestCommand_RecordJumps(t *testing.T) {
	e := newTestEditor(t, "{\"a\":1}\n{\"b\":2}\n{\"c\":3}", jsonl)

	press(e, ":3<enter>")
	require.Equal(t, 8, e.Cursor().Row)

	press(e, ":p2<enter>")
	require.Equal(t, 4, e.Cursor().Row)

	press(e, ":l2<enter>")
	require.Equal(t, 1, e.Cursor().Row, ":l always counts lines")

	press(e, ":9<enter>")
	require.Equal(t, "record 9 not found", e.Status())
	require.Equal(t, 1, e.Cursor().Row)
}

func TestCommand_EditingTheLine(t *testing.T) {
	e := newTestEditor(t, "{}")

	press(e, ":ab")
	require.Equal(t, ModeCommand, e.Mode().Kind)
	require.Equal(t, "ab", e.Input())

	press(e, "<bs>")
	require.Equal(t, "a", e.Input())

	press(e, "<bs><bs>")
	require.Equal(t, ModeNormal, e.Mode().Kind)

	press(e, ":fmt<esc>")
	require.Equal(t, ModeNormal, e.Mode().Kind)
	require.Equal(t, "{}", e.Content())
}

func TestCommand_History(t *testing.T) {
	e := newTestEditor(t, "{}")

	press(e, ":validate<enter>:5<enter>")

	press(e, ":<up>")
	require.Equal(t, "5", e.Input())
	press(e, "<up>")
	require.Equal(t, "validate", e.Input())
	press(e, "<down><down>")
	require.Equal(t, "", e.Input())

	press(e, "<up><up><enter>")
	require.Equal(t, "JSON valid", e.Status())
	require.Equal(t, []string{"validate", "5"}, e.History().Command)
}

func TestCommand_MarkSavedClearsRedo(t *testing.T) {
	e := newTestEditor(t, "abc")

	press(e, "xu")
	e.MarkSaved("a.json")
	require.Equal(t, `"a.json" written`, e.Status())

	press(e, "<c-r>")
	require.Equal(t, "nothing to redo", e.Status())
	require.Equal(t, "abc", e.Content())
}

func TestPushHistory(t *testing.T) {
	list := pushHistory(nil, "a", 3)
	list = pushHistory(list, "b", 3)
	list = pushHistory(list, "a", 3)
	require.Equal(t, []string{"a", "b"}, list)

	list = pushHistory(list, "c", 3)
	list = pushHistory(list, "d", 3)
	require.Equal(t, []string{"d", "c", "a"}, list)
}
