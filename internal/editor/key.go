package editor

import (
	"unicode"

	tea "github.com/charmbracelet/bubbletea"
)

// Named keys.
const (
	KeyEscape    = "esc"
	KeyEnter     = "enter"
	KeyBackspace = "backspace"
	KeyTab       = "tab"
	KeyUp        = "up"
	KeyDown      = "down"
	KeyLeft      = "left"
	KeyRight     = "right"
	KeyHome      = "home"
	KeyEnd       = "end"
	KeyPgUp      = "pgup"
	KeyPgDown    = "pgdown"
)

// Key is one input event. Name identifies the key ("j", "esc", "ctrl+r");
// Text holds the printable text it produces, if any.
type Key struct {
	Name string
	Text string
}

// Char returns the key for a printable character.
func Char(r rune) Key {
	s := string(r)
	return Key{Name: s, Text: s}
}

// Named returns a non-printing key.
func Named(name string) Key { return Key{Name: name} }

// Keys converts a string into one key per rune, for feeding typed text.
func Keys(s string) []Key {
	out := make([]Key, 0, len(s))
	for _, r := range s {
		out = append(out, Char(r))
	}
	return out
}

// KeyFromMsg converts a Bubble Tea key message.
func KeyFromMsg(msg tea.KeyMsg) Key {
	switch msg.Type {
	case tea.KeyRunes:
		text := string(msg.Runes)
		if len(msg.Runes) == 1 && !msg.Paste {
			return Key{Name: text, Text: text}
		}
		return Key{Text: text}
	case tea.KeySpace:
		return Key{Name: " ", Text: " "}
	case tea.KeyEscape:
		return Named(KeyEscape)
	case tea.KeyEnter:
		return Named(KeyEnter)
	case tea.KeyBackspace:
		return Named(KeyBackspace)
	case tea.KeyTab:
		return Named(KeyTab)
	}
	return Named(msg.String())
}

// printable reports whether the key inserts text. Pasted text may span
// lines.
func (k Key) printable() bool {
	if k.Text == "" {
		return false
	}
	for _, r := range k.Text {
		if !unicode.IsPrint(r) && r != '\t' && r != '\n' {
			return false
		}
	}
	return true
}

// char returns the single character of a printable key, or "".
func (k Key) char() string {
	if k.Name == k.Text {
		return k.Text
	}
	return ""
}
