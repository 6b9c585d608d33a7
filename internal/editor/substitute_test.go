package editor

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSubstitute_Regex(t *testing.T) {
	tests := []struct {
		name    string
		content string
		cmd     string
		want    string
		status  string
	}{
		{name: "first on line", content: "foo foo\nfoo", cmd: "s/foo/bar/", want: "bar foo\nfoo", status: "1 substitution(s)"},
		{name: "global on line", content: "foo foo\nfoo", cmd: "s/foo/bar/g", want: "bar bar\nfoo", status: "2 substitution(s)"},
		{name: "whole buffer", content: "foo foo\nfoo", cmd: "%s/foo/bar/g", want: "bar bar\nbar", status: "3 substitution(s)"},
		{name: "line range", content: "x\nx\nx", cmd: "2,3s/x/y/", want: "x\ny\ny", status: "2 substitution(s)"},
		{name: "range clamped", content: "x\nx", cmd: "1,9s/x/y/", want: "y\ny", status: "2 substitution(s)"},
		{name: "numbered groups", content: "a=b", cmd: `s/(\w+)=(\w+)/\2=\1/`, want: "b=a", status: "1 substitution(s)"},
		{name: "named group", content: "a=b", cmd: `s/(?P<k>\w+)=/\g<k>:/`, want: "a:b", status: "1 substitution(s)"},
		{name: "literal dollar", content: "ab", cmd: "s/a/$1/", want: "$1b", status: "1 substitution(s)"},
		{name: "ignore case", content: "Abc", cmd: "s/a/x/i", want: "xbc", status: "1 substitution(s)"},
		{name: "other delimiter", content: "a/b", cmd: "s#a/b#c#", want: "c", status: "1 substitution(s)"},
		{name: "escaped delimiter", content: "a/b", cmd: `s/a\/b/c/`, want: "c", status: "1 substitution(s)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEditor(t, tt.content)
			press(e, ":"+tt.cmd+"<enter>")
			require.Equal(t, tt.want, e.Content())
			require.Equal(t, tt.status, e.Status())
		})
	}
}

func TestSubstitute_Errors(t *testing.T) {
	tests := []struct {
		name   string
		cmd    string
		status string
	}{
		{name: "not found", cmd: "s/zzz/y/", status: "Pattern not found: zzz"},
		{name: "invalid regex", cmd: "s/(/x/", status: "invalid regex: "},
		{name: "missing replacement", cmd: "s/abc", status: "invalid substitute command"},
		{name: "empty pattern", cmd: "s//x/", status: "empty pattern"},
		{name: "inverted range", cmd: "3,2s/a/b/", status: "invalid range"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEditor(t, "abc\nabc\nabc")
			press(e, ":"+tt.cmd+"<enter>")
			require.True(t, strings.HasPrefix(e.Status(), tt.status), e.Status())
			require.Equal(t, "abc\nabc\nabc", e.Content())
			require.False(t, e.CanUndo())
		})
	}
}

func TestSubstitute_IsOneUndoStep(t *testing.T) {
	e := newTestEditor(t, "a\na\na")

	press(e, ":%s/a/b/<enter>")
	require.Equal(t, "b\nb\nb", e.Content())

	press(e, "u")
	require.Equal(t, "a\na\na", e.Content())
	require.False(t, e.CanUndo())
}

func TestSubstitute_PathRename(t *testing.T) {
	tests := []struct {
		name string
		cmd  string
		want string
	}{
		{name: "first", cmd: "s/$..a/z/", want: `{"z": 1, "b": {"a": 2}}`},
		{name: "global", cmd: "s/$..a/z/g", want: `{"z": 1, "b": {"z": 2}}`},
		{name: "nested", cmd: "s/$.b.a/key with space/", want: `{"a": 1, "b": {"key with space": 2}}`},
		{name: "container key", cmd: "s/$.b/c/", want: `{"a": 1, "c": {"a": 2}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEditor(t, `{"a": 1, "b": {"a": 2}}`)
			press(e, ":"+tt.cmd+"<enter>")
			require.Equal(t, tt.want, e.Content())
		})
	}
}

func TestSubstitute_PathValue(t *testing.T) {
	tests := []struct {
		name    string
		content string
		cmd     string
		want    string
	}{
		{name: "string replacement", content: `{"a": 1}`, cmd: "s/$.a=/hello/", want: `{"a": "hello"}`},
		{name: "quoted replacement", content: `{"a": 1}`, cmd: `s/$.a=/"7"/`, want: `{"a": "7"}`},
		{name: "literal replacement", content: `{"a": 1}`, cmd: "s/$.a=/null/", want: `{"a": null}`},
		{name: "conditional", content: `{"items": [1, 2, 3]}`, cmd: "s/$.items[*]>1/0/g", want: `{"items": [1, 0, 0]}`},
		{name: "equality", content: `{"items": ["x", "y"]}`, cmd: `s/$.items[*]="y"/z/g`, want: `{"items": ["x", "z"]}`},
		{name: "regex filter", content: `{"items": ["ab", "cd"]}`, cmd: "s/$.items[*]~^c/q/g", want: `{"items": ["ab", "q"]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEditor(t, tt.content)
			press(e, ":"+tt.cmd+"<enter>")
			require.Equal(t, tt.want, e.Content())
		})
	}
}

func TestSubstitute_PathErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		cmd     string
		status  string
	}{
		{name: "not found", content: `{"a": 1}`, cmd: "s/$.zz/x/", status: "JSONPath not found: $.zz"},
		{name: "array element rename", content: `{"items": [1]}`, cmd: "s/$.items[0]/x/", status: "No renamable keys found"},
		{name: "container value", content: `{"b": {}}`, cmd: "s/$.b=/1/", status: "JSONPath matches only objects/arrays (not substitutable)"},
		{name: "invalid document", content: `{"a": `, cmd: "s/$.a/x/", status: "Invalid JSON: "},
		{name: "invalid path", content: `{"a": 1}`, cmd: "s/$.a[/x/", status: "Invalid JSONPath: "},
		{name: "filter without match", content: `{"a": 1}`, cmd: "s/$.a>5/x/", status: "JSONPath not found: $.a>5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEditor(t, tt.content)
			press(e, ":"+tt.cmd+"<enter>")
			require.True(t, strings.HasPrefix(e.Status(), tt.status), e.Status())
			require.Equal(t, tt.content, e.Content())
			require.False(t, e.CanUndo())
		})
	}
}

func TestSubstitute_PathPerRecord(t *testing.T) {
	e := newTestEditor(t, "{\"a\": 1}\n{\"a\": 2}", jsonl)

	press(e, ":s/$.a=/0/g<enter>")

	require.Equal(t, "2 substitution(s)", e.Status())
	require.Equal(t, "{\"a\": 0}\n{\"a\": 0}", e.SaveContent())
}

func TestExpandTemplate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: `\1`, want: "${1}"},
		{in: `\12x`, want: "${12}x"},
		{in: `\g<name>`, want: "${name}"},
		{in: `\g<open`, want: `\g<open`},
		{in: `a\\b`, want: `a\b`},
		{in: `\t`, want: "\t"},
		{in: `$x`, want: "$$x"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			require.Equal(t, tt.want, expandTemplate(tt.in))
		})
	}
}
