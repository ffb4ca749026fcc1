package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Pause key.Binding
	Next  key.Binding
	Prev  key.Binding
	Inc   key.Binding
	Dec   key.Binding
	Mute  key.Binding
	Edit  key.Binding
	Quit  key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Pause: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "pause/resume"),
		),
		Next: key.NewBinding(
			key.WithKeys("n", "N"),
			key.WithHelp("n", "next"),
		),
		Prev: key.NewBinding(
			key.WithKeys("p", "P"),
			key.WithHelp("p", "previous"),
		),
		Inc: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "+10s"),
		),
		Dec: key.NewBinding(
			key.WithKeys("-", "_"),
			key.WithHelp("-", "-10s"),
		),
		Mute: key.NewBinding(
			key.WithKeys("m", "M"),
			key.WithHelp("m", "mute"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e", "E"),
			key.WithHelp("e", "edit"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "Q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Pause, k.Next, k.Prev, k.Inc, k.Dec, k.Mute, k.Edit, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Pause, k.Next, k.Prev},
		{k.Inc, k.Dec, k.Mute},
		{k.Edit, k.Quit},
	}
}
