// Package keys contains keybinding definitions.
package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings for the editor.
// Printable runes insert text, so every command is a chord or a
// non-printing key.
type KeyMap struct {
	// Cursor movement
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	WordLeft  key.Binding
	WordRight key.Binding
	LineStart key.Binding
	LineEnd   key.Binding
	PageUp    key.Binding
	PageDown  key.Binding

	// Selection (shift variants of the movement keys extend from an anchor)
	SelectUp        key.Binding
	SelectDown      key.Binding
	SelectLeft      key.Binding
	SelectRight     key.Binding
	SelectWordLeft  key.Binding
	SelectWordRight key.Binding
	SelectLineStart key.Binding
	SelectLineEnd   key.Binding
	SelectPageUp    key.Binding
	SelectPageDown  key.Binding

	// Editing
	Enter              key.Binding
	EnterSibling       key.Binding
	Backspace          key.Binding
	Delete             key.Binding
	DeleteWordBackward key.Binding
	DeleteWordForward  key.Binding

	// Structure
	IndentMore    key.Binding
	IndentLess    key.Binding
	CycleType     key.Binding
	ToggleChecked key.Binding

	// Inline styles
	Bold      key.Binding
	Italic    key.Binding
	Underline key.Binding
	Strike    key.Binding
	Highlight key.Binding
	Code      key.Binding
	Link      key.Binding

	// View
	RevealCodes key.Binding
	Help        key.Binding
	LogOverlay  key.Binding

	// General
	Save   key.Binding
	Reload key.Binding
	Escape key.Binding
	Quit   key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		// Cursor movement
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "move down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "move left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "move right"),
		),
		WordLeft: key.NewBinding(
			key.WithKeys("alt+left", "alt+b"),
			key.WithHelp("alt+←", "word left"),
		),
		WordRight: key.NewBinding(
			key.WithKeys("alt+right", "alt+f"),
			key.WithHelp("alt+→", "word right"),
		),
		LineStart: key.NewBinding(
			key.WithKeys("home", "ctrl+a"),
			key.WithHelp("home", "line start"),
		),
		LineEnd: key.NewBinding(
			key.WithKeys("end", "ctrl+e"),
			key.WithHelp("end", "line end"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdn", "page down"),
		),

		// Selection
		SelectUp: key.NewBinding(
			key.WithKeys("shift+up"),
			key.WithHelp("shift+↑", "select up"),
		),
		SelectDown: key.NewBinding(
			key.WithKeys("shift+down"),
			key.WithHelp("shift+↓", "select down"),
		),
		SelectLeft: key.NewBinding(
			key.WithKeys("shift+left"),
			key.WithHelp("shift+←", "select left"),
		),
		SelectRight: key.NewBinding(
			key.WithKeys("shift+right"),
			key.WithHelp("shift+→", "select right"),
		),
		SelectWordLeft: key.NewBinding(
			key.WithKeys("ctrl+shift+left"),
			key.WithHelp("ctrl+shift+←", "select word left"),
		),
		SelectWordRight: key.NewBinding(
			key.WithKeys("ctrl+shift+right"),
			key.WithHelp("ctrl+shift+→", "select word right"),
		),
		SelectLineStart: key.NewBinding(
			key.WithKeys("shift+home"),
			key.WithHelp("shift+home", "select to line start"),
		),
		SelectLineEnd: key.NewBinding(
			key.WithKeys("shift+end"),
			key.WithHelp("shift+end", "select to line end"),
		),
		SelectPageUp: key.NewBinding(
			key.WithKeys("shift+pgup"),
			key.WithHelp("shift+pgup", "select page up"),
		),
		SelectPageDown: key.NewBinding(
			key.WithKeys("shift+pgdown"),
			key.WithHelp("shift+pgdn", "select page down"),
		),

		// Editing
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "split paragraph"),
		),
		EnterSibling: key.NewBinding(
			key.WithKeys("alt+enter"),
			key.WithHelp("alt+enter", "new sibling entry"),
		),
		Backspace: key.NewBinding(
			key.WithKeys("backspace"),
			key.WithHelp("bksp", "delete backward"),
		),
		Delete: key.NewBinding(
			key.WithKeys("delete"),
			key.WithHelp("del", "delete forward"),
		),
		DeleteWordBackward: key.NewBinding(
			key.WithKeys("ctrl+w", "alt+backspace"),
			key.WithHelp("ctrl+w", "delete word back"),
		),
		DeleteWordForward: key.NewBinding(
			key.WithKeys("alt+d", "alt+delete"),
			key.WithHelp("alt+d", "delete word forward"),
		),

		// Structure
		IndentMore: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "indent"),
		),
		IndentLess: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "outdent"),
		),
		CycleType: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("ctrl+t", "cycle paragraph type"),
		),
		ToggleChecked: key.NewBinding(
			key.WithKeys("ctrl+@"),
			key.WithHelp("^space", "toggle checkbox"),
		),

		// Inline styles
		Bold: key.NewBinding(
			key.WithKeys("ctrl+b"),
			key.WithHelp("ctrl+b", "bold"),
		),
		// ctrl+i is indistinguishable from tab in most terminals
		Italic: key.NewBinding(
			key.WithKeys("alt+i"),
			key.WithHelp("alt+i", "italic"),
		),
		Underline: key.NewBinding(
			key.WithKeys("ctrl+u"),
			key.WithHelp("ctrl+u", "underline"),
		),
		Strike: key.NewBinding(
			key.WithKeys("alt+s"),
			key.WithHelp("alt+s", "strikethrough"),
		),
		Highlight: key.NewBinding(
			key.WithKeys("alt+h"),
			key.WithHelp("alt+h", "highlight"),
		),
		Code: key.NewBinding(
			key.WithKeys("alt+c"),
			key.WithHelp("alt+c", "inline code"),
		),
		Link: key.NewBinding(
			key.WithKeys("alt+k"),
			key.WithHelp("alt+k", "link"),
		),

		// View
		RevealCodes: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "reveal codes"),
		),
		Help: key.NewBinding(
			key.WithKeys("f1", "ctrl+_"),
			key.WithHelp("f1", "toggle help"),
		),
		LogOverlay: key.NewBinding(
			key.WithKeys("f12"),
			key.WithHelp("f12", "log overlay"),
		),

		// General
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save"),
		),
		Reload: key.NewBinding(
			key.WithKeys("f5"),
			key.WithHelp("f5", "reload from disk"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "dismiss"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// ShortHelp returns keybindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Save, k.Quit}
}

// FullHelp returns keybindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.WordLeft, k.WordRight, k.LineStart, k.LineEnd, k.PageUp, k.PageDown},                                       // Movement
		{k.SelectUp, k.SelectDown, k.SelectLeft, k.SelectRight, k.SelectWordLeft, k.SelectWordRight, k.SelectLineStart, k.SelectLineEnd},             // Selection
		{k.Enter, k.EnterSibling, k.Backspace, k.Delete, k.DeleteWordBackward, k.DeleteWordForward},                                                  // Editing
		{k.IndentMore, k.IndentLess, k.CycleType, k.ToggleChecked},                                                                                   // Structure
		{k.Bold, k.Italic, k.Underline, k.Strike, k.Highlight, k.Code, k.Link},                                                                       // Styles
		{k.RevealCodes, k.Help, k.LogOverlay, k.Save, k.Reload, k.Escape, k.Quit},                                                                    // General
	}
}
