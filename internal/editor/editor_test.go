package editor

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// namedKeys maps script names written as <name> to editor keys.
var namedKeys = map[string]string{
	"esc":   KeyEscape,
	"enter": KeyEnter,
	"bs":    KeyBackspace,
	"tab":   KeyTab,
	"up":    KeyUp,
	"down":  KeyDown,
	"left":  KeyLeft,
	"right": KeyRight,
	"home":  KeyHome,
	"end":   KeyEnd,
}

// parseScript converts a key script into keys. Named keys are written in
// angle brackets, e.g. "dd<esc>" or "<c-r>" for ctrl+r.
func parseScript(script string) []Key {
	var keys []Key
	for len(script) > 0 {
		if script[0] == '<' {
			if end := strings.IndexByte(script, '>'); end > 1 {
				name := script[1:end]
				if k, ok := namedKeys[name]; ok {
					keys = append(keys, Named(k))
					script = script[end+1:]
					continue
				}
				if rest, ok := strings.CutPrefix(name, "c-"); ok {
					keys = append(keys, Named("ctrl+"+rest))
					script = script[end+1:]
					continue
				}
			}
		}
		r := []rune(script)[0]
		keys = append(keys, Char(r))
		script = script[len(string(r)):]
	}
	return keys
}

// press feeds a key script and returns the intents it produced.
func press(e *Editor, script string) []Intent {
	return e.HandleKeys(parseScript(script)...)
}

func newTestEditor(t *testing.T, content string, opts ...func(*Options)) *Editor {
	t.Helper()
	var o Options
	for _, fn := range opts {
		fn(&o)
	}
	return New(content, o)
}

func readOnly(o *Options) { o.ReadOnly = true }
func jsonl(o *Options)    { o.JSONL = true }

func numberedLines(n int) string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = fmt.Sprintf("line %d", i)
	}
	return strings.Join(lines, "\n")
}

func TestEditor_FormatCommand(t *testing.T) {
	e := newTestEditor(t, `{"a":1}`)

	press(e, ":fmt<enter>")

	require.Equal(t, "{\n    \"a\": 1\n}", e.Content())
	require.Equal(t, "formatted", e.Status())
	require.Equal(t, ModeNormal, e.Mode().Kind)
	require.True(t, e.CanUndo())
}

func TestEditor_FormatInvalidJSON(t *testing.T) {
	e := newTestEditor(t, `{"a":}`)

	press(e, ":format<enter>")

	require.Equal(t, `{"a":}`, e.Content())
	require.True(t, strings.HasPrefix(e.Status(), "cannot format: "), e.Status())
	require.Contains(t, e.Status(), "(line 1)")
	require.False(t, e.CanUndo())
}

func TestEditor_SubstitutePathValue(t *testing.T) {
	e := newTestEditor(t, `{"a": 1, "b": 2}`)

	press(e, ":s/$.b=/99/<enter>")

	require.Equal(t, `{"a": 1, "b": 99}`, e.Content())
	require.Equal(t, "1 substitution(s)", e.Status())
}

func TestEditor_FirstAndLastLineScrollToTop(t *testing.T) {
	e := newTestEditor(t, numberedLines(100))

	press(e, "G")
	require.Equal(t, Position{Row: 99}, e.Cursor())
	require.Equal(t, 99, e.Top())

	press(e, "gg")
	require.Equal(t, Position{Row: 0}, e.Cursor())
	require.Equal(t, 0, e.Top())
}

func TestEditor_MatchBracket(t *testing.T) {
	e := newTestEditor(t, `{"key": [1, 2, 3]}`)

	press(e, "%")
	require.Equal(t, Position{Row: 0, Col: 17}, e.Cursor())

	press(e, "%")
	require.Equal(t, Position{Row: 0, Col: 0}, e.Cursor())
}

func TestEditor_NewDefaults(t *testing.T) {
	e := newTestEditor(t, "")

	require.Equal(t, []string{""}, e.Lines())
	require.Equal(t, 24, e.Height())
	require.Equal(t, DefaultPreviewLen, e.PreviewLen())
	require.Equal(t, ModeNormal, e.Mode().Kind)
	require.Equal(t, "NORMAL", e.Mode().String())
	require.False(t, e.CanUndo())
}

func TestEditor_JSONLOpensPrettyAndSavesCompact(t *testing.T) {
	e := newTestEditor(t, "{\"a\":1}\n\n{\"b\":[1,2]}\n", jsonl)

	require.Equal(t, []string{
		"{",
		`    "a": 1`,
		"}",
		"",
		"{",
		`    "b": [`,
		"        1,",
		"        2",
		"    ]",
		"}",
	}, e.Lines())
	require.Equal(t, "{\"a\": 1}\n{\"b\": [1, 2]}", e.SaveContent())
}

func TestEditor_VersionBumpsOnEdit(t *testing.T) {
	e := newTestEditor(t, "abc")
	v := e.Version()

	press(e, "l")
	require.Equal(t, v, e.Version(), "motions do not change the version")

	press(e, "x")
	require.Greater(t, e.Version(), v)
}

func TestEditor_SetCursorClamps(t *testing.T) {
	e := newTestEditor(t, "ab\ncd")

	e.SetCursor(Position{Row: 10, Col: 10})
	require.Equal(t, Position{Row: 1, Col: 1}, e.Cursor())

	e.SetCursor(Position{Row: -3, Col: -1})
	require.Equal(t, Position{}, e.Cursor())
}

func TestEditor_SetHeightKeepsCursorVisible(t *testing.T) {
	e := newTestEditor(t, numberedLines(50))
	e.SetCursor(Position{Row: 30})

	e.SetHeight(10)

	require.LessOrEqual(t, e.Top(), 30)
	require.Greater(t, e.Top()+10, 30)
}

func TestEditor_ReadOnlyRefusesEdits(t *testing.T) {
	tests := []struct {
		name   string
		script string
	}{
		{name: "delete char", script: "x"},
		{name: "delete line", script: "dd"},
		{name: "insert", script: "i"},
		{name: "append", script: "A"},
		{name: "open line", script: "o"},
		{name: "paste", script: "yyp"},
		{name: "join", script: "J"},
		{name: "replace char", script: "rz"},
		{name: "undo", script: "u"},
		{name: "format", script: ":fmt<enter>"},
		{name: "substitute", script: ":%s/a/b/<enter>"},
		{name: "visual delete", script: "Vd"},
		{name: "write", script: ":w<enter>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEditor(t, "{\"a\": 1}\n{}", readOnly)

			press(e, tt.script)

			require.Equal(t, "{\"a\": 1}\n{}", e.Content())
			require.Equal(t, "[readonly]", e.Status())
			require.NotEqual(t, ModeInsert, e.Mode().Kind)
		})
	}
}

func TestEditor_ReadOnlyAllowsNavigationAndYank(t *testing.T) {
	e := newTestEditor(t, "{\n    \"a\": 1\n}", readOnly)

	press(e, "jyy")
	require.Equal(t, Yank{Text: `    "a": 1`, Linewise: true}, e.Yank())
	require.Equal(t, "line yanked", e.Status())

	press(e, "/a<enter>")
	require.Equal(t, Position{Row: 1, Col: 5}, e.Cursor())

	press(e, "ggza")
	_, folded := e.Folds().FoldAt(0)
	require.True(t, folded)
}

func TestEditor_ReadOnlyWriteQuitJustQuits(t *testing.T) {
	e := newTestEditor(t, "{}", readOnly)

	intents := press(e, ":wq<enter>")

	require.Equal(t, []Intent{Quit{}}, intents)
}

func TestEditor_ValidateEmitsResult(t *testing.T) {
	e := newTestEditor(t, `{"a": 1}`)

	intents := press(e, ":validate<enter>")
	require.Equal(t, "JSON valid", e.Status())
	require.Equal(t, []Intent{JSONValidated{Content: `{"a": 1}`, Valid: true}}, intents)

	e.SetContent(`{"a": }`)
	intents = press(e, ":validate<enter>")
	require.Len(t, intents, 1)
	v := intents[0].(JSONValidated)
	require.False(t, v.Valid)
	require.True(t, strings.HasPrefix(e.Status(), "JSON error: "), e.Status())
	require.Equal(t, e.Status(), v.Err)
}

func TestEditor_ValidateJSONL(t *testing.T) {
	e := newTestEditor(t, "{\"a\":1}\n{\"b\":2}", jsonl)

	press(e, ":validate<enter>")
	require.Equal(t, "JSONL valid", e.Status())

	e.SetContent("{\"a\":1}")
	press(e, "Gdd")
	press(e, ":validate<enter>")
	require.True(t, strings.HasPrefix(e.Status(), "JSONL error: record 1"), e.Status())
}

func TestEditor_PositionSummary(t *testing.T) {
	e := newTestEditor(t, numberedLines(4))

	press(e, "j<c-g>")

	require.Equal(t, `"NORMAL" line 2 of 4 --50%--`, e.Status())
}

func TestEditor_History(t *testing.T) {
	e := newTestEditor(t, "abc")

	press(e, "/b<enter>/c<enter>:validate<enter>")

	h := e.History()
	require.Equal(t, []string{"c", "b"}, h.Search)
	require.Equal(t, []string{"validate"}, h.Command)

	long := make([]string, DefaultHistoryLimit+10)
	for i := range long {
		long[i] = fmt.Sprint(i)
	}
	e.SetHistory(History{Search: long, Command: []string{"w"}})
	require.Len(t, e.History().Search, DefaultHistoryLimit)
	require.Equal(t, []string{"w"}, e.History().Command)
}

func TestEditor_LongStringsStartCollapsed(t *testing.T) {
	long := strings.Repeat("x", DefaultCollapseLen)
	e := newTestEditor(t, "{\n    \"s\": \""+long+"\"\n}")

	require.True(t, e.Folds().IsCollapsed(1))

	// moving past the preview expands the string
	press(e, "j$")
	require.False(t, e.Folds().IsCollapsed(1))
}
