package editor

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

var nestedLines = strings.Split(`{
    "a": {
        "b": [
            1
        ]
    },
    "c": []
}`, "\n")

func TestFoldableAt(t *testing.T) {
	tests := []struct {
		row  int
		end  int
		want bool
	}{
		{row: 0, end: 7, want: true},
		{row: 1, end: 5, want: true},
		{row: 2, end: 4, want: true},
		{row: 3},
		{row: 6},
	}
	for _, tt := range tests {
		end, ok := FoldableAt(nestedLines, tt.row)
		require.Equal(t, tt.want, ok, "row %d", tt.row)
		require.Equal(t, tt.end, end, "row %d", tt.row)
	}
}

func TestEnclosingFoldable(t *testing.T) {
	start, end, ok := EnclosingFoldable(nestedLines, 3)
	require.True(t, ok)
	require.Equal(t, 2, start)
	require.Equal(t, 4, end)

	start, end, ok = EnclosingFoldable(nestedLines, 6)
	require.True(t, ok)
	require.Equal(t, 0, start)
	require.Equal(t, 7, end)

	_, _, ok = EnclosingFoldable(nestedLines, 0)
	require.False(t, ok)
}

func TestFoldTable_Hidden(t *testing.T) {
	f := NewFoldTable(0)
	f.Toggle(nestedLines, 1)

	require.False(t, f.IsHidden(1))
	require.True(t, f.IsHidden(2))
	require.True(t, f.IsHidden(5))
	require.False(t, f.IsHidden(6))

	require.Equal(t, 6, f.NextVisible(1, 1, len(nestedLines)))
	require.Equal(t, 1, f.NextVisible(6, -1, len(nestedLines)))
	require.Equal(t, 7, f.SkipVisible(0, 10, 1, len(nestedLines)))

	f.UnfoldFor(3)
	require.True(t, f.Empty())
}

func TestFoldTable_HeaderOfIsOutermost(t *testing.T) {
	f := NewFoldTable(0)
	f.Toggle(nestedLines, 2)
	f.Toggle(nestedLines, 1)

	h, ok := f.headerOf(3)
	require.True(t, ok)
	require.Equal(t, 1, h)
}

func TestFoldTable_FoldNestedAndDepth(t *testing.T) {
	f := NewFoldTable(0)

	f.FoldNested(nestedLines)
	require.Equal(t, []int{1, 2}, f.Headers())

	f.FoldAtDepth(nestedLines, 2)
	require.Equal(t, []int{2}, f.Headers())

	f.FoldAtDepth(nestedLines, 5)
	require.True(t, f.Empty())
}

func TestFoldTable_LongStrings(t *testing.T) {
	long := strings.Repeat("y", 10)
	lines := []string{"{", `    "s": "` + long + `"`, `    "t": "short"`, "}"}
	f := NewFoldTable(10)

	f.CollapseLongStrings(lines)
	require.True(t, f.IsCollapsed(1))
	require.False(t, f.IsCollapsed(2))

	f.Toggle(lines, 1)
	require.False(t, f.IsCollapsed(1))
	f.Toggle(lines, 1)
	require.True(t, f.IsCollapsed(1))

	header, moved := f.Close(lines, 2)
	require.Equal(t, 0, header)
	require.True(t, moved)
}

func TestLongStringAt(t *testing.T) {
	ls, ok := LongStringAt(`    "key": "abcdef"`, 6)
	require.True(t, ok)
	require.Equal(t, LongString{Start: 11, End: 19, Len: 6}, ls)
	require.Equal(t, 14, ls.PreviewEnd(2))

	_, ok = LongStringAt(`    "abcdefgh": 1`, 6)
	require.False(t, ok, "keys are never collapsed")

	_, ok = LongStringAt(`    "k": "a\"b"`, 4)
	require.True(t, ok)
}

func TestFoldTable_AdjustLines(t *testing.T) {
	tests := []struct {
		name  string
		from  int
		delta int
		want  map[int]int
	}{
		{name: "insert above", from: 0, delta: 2, want: map[int]int{4: 7}},
		{name: "insert inside", from: 3, delta: 2, want: map[int]int{2: 7}},
		{name: "insert below", from: 6, delta: 2, want: map[int]int{2: 5}},
		{name: "delete inside", from: 3, delta: -1, want: map[int]int{2: 4}},
		{name: "delete header", from: 2, delta: -1, want: map[int]int{}},
		{name: "delete tail", from: 4, delta: -3, want: map[int]int{2: 3}},
		{name: "delete whole body", from: 3, delta: -3, want: map[int]int{}},
		{name: "delete above", from: 0, delta: -2, want: map[int]int{0: 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFoldTable(0)
			f.Restore(FoldState{Folds: map[int]int{2: 5}})
			f.AdjustLines(tt.from, tt.delta)
			require.Equal(t, tt.want, f.State().Folds)
		})
	}
}

func TestFoldTable_StateRoundTrip(t *testing.T) {
	f := NewFoldTable(0)
	f.Restore(FoldState{Folds: map[int]int{1: 4}, Collapsed: []int{7, 6}})

	s := f.State()
	require.Equal(t, map[int]int{1: 4}, s.Folds)
	require.Equal(t, []int{6, 7}, s.Collapsed)

	s.Folds[9] = 10
	_, ok := f.FoldAt(9)
	require.False(t, ok, "state is a copy")
}

// drawFolds generates a fold table over n rows.
func drawFolds(t *rapid.T, n int) FoldState {
	folds := make(map[int]int)
	for range rapid.IntRange(0, 5).Draw(t, "folds") {
		s := rapid.IntRange(0, n-2).Draw(t, "start")
		folds[s] = rapid.IntRange(s+1, n-1).Draw(t, "end")
	}
	collapsed := rapid.SliceOfDistinct(rapid.IntRange(0, n-1), func(i int) int { return i }).Draw(t, "collapsed")
	return FoldState{Folds: folds, Collapsed: collapsed}
}

// TestFoldTable_InsertThenDeleteRestores checks that removing inserted rows
// puts every fold back where it was.
func TestFoldTable_InsertThenDeleteRestores(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(2, 40).Draw(rt, "lines")
		state := drawFolds(rt, n)
		from := rapid.IntRange(0, n).Draw(rt, "from")
		count := rapid.IntRange(1, 10).Draw(rt, "count")

		f := NewFoldTable(0)
		f.Restore(state)
		want := f.State()

		f.AdjustLines(from, count)
		f.AdjustLines(from, -count)

		require.Equal(rt, want, f.State())
	})
}

// TestFoldTable_DeleteKeepsFoldsWellFormed checks that deleting rows never
// leaves an empty or inverted fold or one past the end of the buffer.
func TestFoldTable_DeleteKeepsFoldsWellFormed(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(2, 40).Draw(rt, "lines")
		state := drawFolds(rt, n)
		from := rapid.IntRange(0, n-1).Draw(rt, "from")
		count := rapid.IntRange(1, n-from).Draw(rt, "count")

		f := NewFoldTable(0)
		f.Restore(state)
		f.AdjustLines(from, -count)

		remaining := n - count
		for s, e := range f.State().Folds {
			require.Less(rt, s, e)
			require.GreaterOrEqual(rt, s, 0)
			require.Less(rt, e, remaining)
		}
		for _, row := range f.State().Collapsed {
			require.GreaterOrEqual(rt, row, 0)
			require.Less(rt, row, remaining)
		}
	})
}
