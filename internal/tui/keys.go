package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Apply     key.Binding
	Direction key.Binding
	Up        key.Binding
	Down      key.Binding
	Delete    key.Binding
	Positions key.Binding
	Left      key.Binding
	Right     key.Binding
	Confirm   key.Binding
	Reset     key.Binding
	Next      key.Binding
	Back      key.Binding
	Hint      key.Binding
	Command   key.Binding
	Quit      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Apply: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "apply rule"),
		),
		Direction: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch side")),
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "prev step")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "next step")),
		Delete:    key.NewBinding(key.WithKeys("x", "delete", "backspace"), key.WithHelp("x", "delete step")),
		Positions: key.NewBinding(key.WithKeys("p", " "), key.WithHelp("p", "sites")),
		Left:      key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev site")),
		Right:     key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next site")),
		Confirm:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "choose")),
		Reset:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
		Next:      key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "next level")),
		Back:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Hint:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "hint")),
		Command:   key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "command")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Apply, k.Direction, k.Delete, k.Positions, k.Hint, k.Command, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Apply, k.Direction, k.Up, k.Down, k.Delete},
		{k.Positions, k.Left, k.Right, k.Confirm},
		{k.Reset, k.Next, k.Back, k.Hint, k.Command, k.Quit},
	}
}
