// Package keys contains keybinding definitions.
package keys

import "github.com/charmbracelet/bubbles/key"

// AppKeyMap defines the application-chrome bindings. Modal editing keys
// (motions, operators, text entry) are dispatched by the editor view from
// the current mode; these bindings work regardless of mode, except Help,
// which yields to text entry in Insert mode.
type AppKeyMap struct {
	Save       key.Binding
	Quit       key.Binding
	Help       key.Binding
	LogOverlay key.Binding
	ThemeCycle key.Binding
	CaretBelow key.Binding
	CaretAbove key.Binding
}

// App is the active application keymap.
var App = DefaultAppKeyMap()

// DefaultAppKeyMap returns the default application bindings.
func DefaultAppKeyMap() AppKeyMap {
	return AppKeyMap{
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "ctrl+q"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		LogOverlay: key.NewBinding(
			key.WithKeys("ctrl+x"),
			key.WithHelp("ctrl+x", "toggle logs"),
		),
		ThemeCycle: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("ctrl+t", "cycle theme"),
		),
		CaretBelow: key.NewBinding(
			key.WithKeys("alt+down"),
			key.WithHelp("alt+↓", "add caret below"),
		),
		CaretAbove: key.NewBinding(
			key.WithKeys("alt+up"),
			key.WithHelp("alt+↑", "add caret above"),
		),
	}
}

// ShortHelp returns keybindings for the status bar hint.
func (k AppKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Save, k.Quit}
}

// FullHelp returns keybindings for the full help view.
func (k AppKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Save, k.Quit},                     // Files
		{k.CaretBelow, k.CaretAbove},         // Carets
		{k.Help, k.LogOverlay, k.ThemeCycle}, // Chrome
	}
}
