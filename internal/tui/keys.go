package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up   key.Binding
	Down key.Binding

	Today    key.Binding
	Upcoming key.Binding
	Done     key.Binding
	Morning  key.Binding
	Evening  key.Binding

	Grouping      key.Binding
	InlineDone    key.Binding
	ClearProjects key.Binding

	Toggle   key.Binding
	Tomorrow key.Binding
	Delete   key.Binding
	Refresh  key.Binding

	Confirm key.Binding
	Cancel  key.Binding

	Quit key.Binding
	Help key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "move down"),
		),

		Today: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "today"),
		),
		Upcoming: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "upcoming"),
		),
		Done: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "done"),
		),
		Morning: key.NewBinding(
			key.WithKeys("4"),
			key.WithHelp("4", "morning"),
		),
		Evening: key.NewBinding(
			key.WithKeys("5"),
			key.WithHelp("5", "evening"),
		),

		Grouping: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "toggle grouping"),
		),
		InlineDone: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "completed inline"),
		),
		ClearProjects: key.NewBinding(
			key.WithKeys("P"),
			key.WithHelp("P", "clear project filter"),
		),

		Toggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "toggle done"),
		),
		Tomorrow: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "move to tomorrow"),
		),
		Delete: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "delete task"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),

		Confirm: key.NewBinding(
			key.WithKeys("y", "Y"),
			key.WithHelp("y", "confirm"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("n", "N", "esc"),
			key.WithHelp("n/esc", "cancel"),
		),

		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Tomorrow, k.Delete, k.Grouping, k.Quit, k.Help}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Toggle, k.Tomorrow, k.Delete},
		{k.Today, k.Upcoming, k.Done, k.Morning, k.Evening},
		{k.Grouping, k.InlineDone, k.ClearProjects, k.Refresh},
		{k.Quit, k.Help},
	}
}
