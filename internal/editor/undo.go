package editor

// DefaultUndoLimit bounds the undo stack.
const DefaultUndoLimit = 200

// Snapshot is a copy of the buffer and cursor.
type Snapshot struct {
	Lines  []string
	Cursor Position
}

// UndoStack keeps bounded undo history and a redo stack.
type UndoStack struct {
	undo  []Snapshot
	redo  []Snapshot
	limit int
}

// NewUndoStack returns an empty stack holding at most limit entries.
func NewUndoStack(limit int) *UndoStack {
	if limit <= 0 {
		limit = DefaultUndoLimit
	}
	return &UndoStack{limit: limit}
}

// Push records s as the state before a new edit and clears redo.
func (u *UndoStack) Push(s Snapshot) {
	u.pushUndo(s)
	u.redo = nil
}

func (u *UndoStack) pushUndo(s Snapshot) {
	u.undo = append(u.undo, s)
	if len(u.undo) > u.limit {
		u.undo = u.undo[len(u.undo)-u.limit:]
	}
}

// Drop discards the most recent undo entry, used when an edit turned out to
// change nothing.
func (u *UndoStack) Drop() {
	if len(u.undo) > 0 {
		u.undo = u.undo[:len(u.undo)-1]
	}
}

// Undo pops the last entry, saving current for redo.
func (u *UndoStack) Undo(current Snapshot) (Snapshot, bool) {
	if len(u.undo) == 0 {
		return Snapshot{}, false
	}
	s := u.undo[len(u.undo)-1]
	u.undo = u.undo[:len(u.undo)-1]
	u.redo = append(u.redo, current)
	return s, true
}

// Redo pops the last undone entry, saving current for undo.
func (u *UndoStack) Redo(current Snapshot) (Snapshot, bool) {
	if len(u.redo) == 0 {
		return Snapshot{}, false
	}
	s := u.redo[len(u.redo)-1]
	u.redo = u.redo[:len(u.redo)-1]
	u.pushUndo(current)
	return s, true
}

// ClearRedo empties the redo stack.
func (u *UndoStack) ClearRedo() { u.redo = nil }

// CanUndo reports whether Undo would succeed.
func (u *UndoStack) CanUndo() bool { return len(u.undo) > 0 }

// CanRedo reports whether Redo would succeed.
func (u *UndoStack) CanRedo() bool { return len(u.redo) > 0 }

// Len returns the number of undo entries.
func (u *UndoStack) Len() int { return len(u.undo) }
