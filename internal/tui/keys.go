package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the player key bindings.
type keyMap struct {
	Toggle   key.Binding
	Skip     key.Binding
	Restart  key.Binding
	Complete key.Binding
	Back     key.Binding
	Quit     key.Binding
	Help     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Toggle: key.NewBinding(
			key.WithKeys(" ", "space", "p"),
			key.WithHelp("space", "start/pause"),
		),
		Skip: key.NewBinding(
			key.WithKeys("n", "right"),
			key.WithHelp("n", "skip"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Complete: key.NewBinding(
			key.WithKeys("enter", "c"),
			key.WithHelp("enter", "complete"),
		),
		Back: key.NewBinding(
			key.WithKeys("q", "esc", "b"),
			key.WithHelp("q", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}

// activeKeys returns the bindings that do something in the current state.
// Once finished, space restarts the session.
func (k keyMap) activeKeys(finished bool) keyMap {
	if finished {
		k.Toggle.SetHelp("space", "restart")
	}
	k.Skip.SetEnabled(!finished)
	k.Restart.SetEnabled(finished)
	k.Complete.SetEnabled(finished)
	return k
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Skip, k.Restart, k.Complete, k.Back, k.Help}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Toggle, k.Skip},
		{k.Restart, k.Complete},
		{k.Back, k.Quit, k.Help},
	}
}
