// Package keys holds the host key bindings. Editing keys belong to the editor;
// these are the few the host handles before a key reaches it.
package keys

import "github.com/charmbracelet/bubbles/key"

// AppKeyMap is checked before every key is passed to the editor.
type AppKeyMap struct {
	Quit       key.Binding
	ToggleLogs key.Binding
}

// HelpKeyMap scrolls and closes the help overlay.
type HelpKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Top      key.Binding
	Bottom   key.Binding
	Close    key.Binding
}

// LogKeyMap drives the debug log pane.
type LogKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Top    key.Binding
	Bottom key.Binding
	Clear  key.Binding
	Debug  key.Binding
	Info   key.Binding
	Warn   key.Binding
	Error  key.Binding
	Close  key.Binding
}

// DiffKeyMap is handled by the diff view on top of the editor keys.
type DiffKeyMap struct {
	SwitchPane key.Binding
	Quit       key.Binding
}

// App bindings.
var App = AppKeyMap{
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
	ToggleLogs: key.NewBinding(
		key.WithKeys("ctrl+x"),
		key.WithHelp("ctrl+x", "debug log"),
	),
}

// Help bindings.
var Help = HelpKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("ctrl+u", "pgup"),
		key.WithHelp("ctrl+u", "page up"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("ctrl+d", "pgdown", " "),
		key.WithHelp("ctrl+d", "page down"),
	),
	Top: key.NewBinding(
		key.WithKeys("g", "home"),
		key.WithHelp("g", "top"),
	),
	Bottom: key.NewBinding(
		key.WithKeys("G", "end"),
		key.WithHelp("G", "bottom"),
	),
	Close: key.NewBinding(
		key.WithKeys("esc", "q", "?"),
		key.WithHelp("esc/q", "close"),
	),
}

// LogPane bindings.
var LogPane = LogKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Top: key.NewBinding(
		key.WithKeys("g"),
		key.WithHelp("g", "top"),
	),
	Bottom: key.NewBinding(
		key.WithKeys("G"),
		key.WithHelp("G", "bottom"),
	),
	Clear: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "clear"),
	),
	Debug: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "debug+"),
	),
	Info: key.NewBinding(
		key.WithKeys("i"),
		key.WithHelp("i", "info+"),
	),
	Warn: key.NewBinding(
		key.WithKeys("w"),
		key.WithHelp("w", "warn+"),
	),
	Error: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "error"),
	),
	Close: key.NewBinding(
		key.WithKeys("esc", "ctrl+x", "q"),
		key.WithHelp("esc", "close"),
	),
}

// Diff bindings.
var Diff = DiffKeyMap{
	SwitchPane: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "switch pane"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
}

// ShortHelp implements help.KeyMap.
func (k HelpKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Down, k.Up, k.PageDown, k.Close}
}

// FullHelp implements help.KeyMap.
func (k HelpKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown},
		{k.Top, k.Bottom, k.Close},
	}
}

// ShortHelp implements help.KeyMap.
func (k LogKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Clear, k.Debug, k.Info, k.Warn, k.Error, k.Close}
}

// FullHelp implements help.KeyMap.
func (k LogKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Top, k.Bottom},
		{k.Clear, k.Debug, k.Info, k.Warn, k.Error, k.Close},
	}
}

// ShortHelp implements help.KeyMap.
func (k DiffKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.SwitchPane, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k DiffKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.SwitchPane, k.Quit}}
}
