package editor

// ModeKind identifies the active input mode.
type ModeKind int

const (
	// ModeNormal is the default mode for navigation and commands.
	ModeNormal ModeKind = iota
	// ModeInsert inserts typed text.
	ModeInsert
	// ModeCommand edits a ':' command line.
	ModeCommand
	// ModeSearch edits a '/' or '?' search pattern.
	ModeSearch
	// ModeVisual extends a selection from an anchor.
	ModeVisual
)

// Mode is the active mode together with its variant data.
type Mode struct {
	Kind ModeKind
	// Backward is set for '?' searches.
	Backward bool
	// Linewise is set for 'V' selections.
	Linewise bool
}

var (
	normalMode  = Mode{Kind: ModeNormal}
	insertMode  = Mode{Kind: ModeInsert}
	commandMode = Mode{Kind: ModeCommand}
)

// String returns the mode name shown in the status line.
func (m Mode) String() string {
	switch m.Kind {
	case ModeNormal:
		return "NORMAL"
	case ModeInsert:
		return "INSERT"
	case ModeCommand:
		return "COMMAND"
	case ModeSearch:
		return "SEARCH"
	case ModeVisual:
		if m.Linewise {
			return "VISUAL LINE"
		}
		return "VISUAL"
	default:
		return "UNKNOWN"
	}
}
