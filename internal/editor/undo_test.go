package editor

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func snap(line string) Snapshot { return Snapshot{Lines: []string{line}} }

func TestUndoStack_PushKeepsLimit(t *testing.T) {
	u := NewUndoStack(2)
	u.Push(snap("a"))
	u.Push(snap("b"))
	u.Push(snap("c"))

	require.Equal(t, 2, u.Len())
	s, ok := u.Undo(snap("d"))
	require.True(t, ok)
	require.Equal(t, snap("c"), s)
}

func TestUndoStack_RedoKeepsLimit(t *testing.T) {
	u := NewUndoStack(2)
	u.Push(snap("a"))
	u.Push(snap("b"))

	_, ok := u.Undo(snap("c"))
	require.True(t, ok)
	_, ok = u.Undo(snap("b"))
	require.True(t, ok)
	require.Equal(t, 0, u.Len())

	// Redo entries pushed back never grow undo past its limit.
	u.redo = append(u.redo, snap("x"), snap("y"))
	for u.CanRedo() {
		_, ok = u.Redo(snap("cur"))
		require.True(t, ok)
		require.LessOrEqual(t, u.Len(), 2)
	}
	require.Equal(t, 2, u.Len())
}

func TestUndoStack_DefaultLimit(t *testing.T) {
	u := NewUndoStack(0)
	for i := 0; i < DefaultUndoLimit+5; i++ {
		u.Push(snap("x"))
	}
	require.Equal(t, DefaultUndoLimit, u.Len())
}
