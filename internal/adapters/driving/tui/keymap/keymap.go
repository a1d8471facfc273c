// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	// Quit exits the application.
	Quit key.Binding

	// Help shows the help view.
	Help key.Binding

	// Back returns to the previous view.
	Back key.Binding

	// Up navigates up in a list.
	Up key.Binding

	// Down navigates down in a list.
	Down key.Binding

	// Select confirms a selection.
	Select key.Binding

	// Add opens the section type picker.
	Add key.Binding

	// Remove deletes the highlighted section.
	Remove key.Binding

	// Edit renames the highlighted section.
	Edit key.Binding

	// MoveUp moves the highlighted section one place earlier.
	MoveUp key.Binding

	// MoveDown moves the highlighted section one place later.
	MoveDown key.Binding

	// Toggle flips visibility of the highlighted section.
	Toggle key.Binding

	// Undo reverts the last change.
	Undo key.Binding

	// Redo reapplies the last undone change.
	Redo key.Binding

	// Save persists the portfolio.
	Save key.Binding

	// Export writes the HTML file.
	Export key.Binding

	// Share copies a share link.
	Share key.Binding

	// Device cycles the preview device.
	Device key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Remove: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "remove"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "rename"),
		),
		MoveUp: key.NewBinding(
			key.WithKeys("K", "shift+up"),
			key.WithHelp("K", "move up"),
		),
		MoveDown: key.NewBinding(
			key.WithKeys("J", "shift+down"),
			key.WithHelp("J", "move down"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "show/hide"),
		),
		Undo: key.NewBinding(
			key.WithKeys("u", "ctrl+z"),
			key.WithHelp("u", "undo"),
		),
		Redo: key.NewBinding(
			key.WithKeys("r", "ctrl+y"),
			key.WithHelp("r", "redo"),
		),
		Save: key.NewBinding(
			key.WithKeys("s", "ctrl+s"),
			key.WithHelp("s", "save"),
		),
		Export: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "export html"),
		),
		Share: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "share link"),
		),
		Device: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "device"),
		),
	}
}

// ShortHelp returns a short list of keybindings for the help view.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit, k.Help}
}

// BuilderHelp returns keybindings for the builder view.
func (k *KeyMap) BuilderHelp() []key.Binding {
	return []key.Binding{k.Add, k.Remove, k.MoveUp, k.MoveDown, k.Undo, k.Redo, k.Save, k.Back}
}

// FullHelp returns the full list of keybindings for the help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select, k.Back},
		{k.Add, k.Remove, k.Edit, k.MoveUp, k.MoveDown, k.Toggle},
		{k.Undo, k.Redo, k.Save, k.Export, k.Share},
		{k.Device, k.Help, k.Quit},
	}
}

// Matches checks if a key string matches a binding.
func Matches(keyStr string, binding key.Binding) bool {
	for _, k := range binding.Keys() {
		if k == keyStr {
			return true
		}
	}
	return false
}
