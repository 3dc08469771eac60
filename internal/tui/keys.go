package tui

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Left       key.Binding
	Right      key.Binding
	Up         key.Binding
	Down       key.Binding
	PrevRange  key.Binding
	NextRange  key.Binding
	NextGoal   key.Binding
	PrevGoal   key.Binding
	Toggle     key.Binding
	SwitchView key.Binding
	Today      key.Binding
	Refresh    key.Binding
	Help       key.Binding
	Quit       key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "prev day"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next day"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "prev week"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "next week"),
		),
		PrevRange: key.NewBinding(
			key.WithKeys("pgup", "["),
			key.WithHelp("[", "prev month/week"),
		),
		NextRange: key.NewBinding(
			key.WithKeys("pgdown", "]"),
			key.WithHelp("]", "next month/week"),
		),
		NextGoal: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next goal"),
		),
		PrevGoal: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev goal"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space", "toggle done"),
		),
		SwitchView: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "month/week"),
		),
		Today: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "today"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.NextGoal, k.Toggle, k.SwitchView, k.Help, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Up, k.Down},
		{k.PrevRange, k.NextRange, k.Today},
		{k.NextGoal, k.PrevGoal, k.Toggle},
		{k.SwitchView, k.Refresh, k.Help, k.Quit},
	}
}
