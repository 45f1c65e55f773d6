package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the overlay's key bindings outside the textarea.
type keyMap struct {
	Toggle  key.Binding
	OnTop   key.Binding
	Copy    key.Binding
	SaveNow key.Binding
	Debug   key.Binding
	Quit    key.Binding
}

// newKeyMap builds the bindings; toggleKey comes from config so the
// in-app toggle can match whatever the user bound system-wide.
func newKeyMap(toggleKey string) keyMap {
	return keyMap{
		Toggle: key.NewBinding(
			key.WithKeys(toggleKey),
			key.WithHelp(toggleKey, "hide/show"),
		),
		OnTop: key.NewBinding(
			key.WithKeys("ctrl+o"),
			key.WithHelp("ctrl+o", "force on top"),
		),
		Copy: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("ctrl+y", "copy note"),
		),
		SaveNow: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save now"),
		),
		Debug: key.NewBinding(
			key.WithKeys("ctrl+g"),
			key.WithHelp("ctrl+g", "debug info"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+q", "ctrl+c"),
			key.WithHelp("ctrl+q", "quit"),
		),
	}
}
