package viz

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the player key bindings.
type KeyMap struct {
	Pause  key.Binding
	Next   key.Binding
	Prev   key.Binding
	First  key.Binding
	Faster key.Binding
	Slower key.Binding
	Loop   key.Binding
	Save   key.Binding
	Theme  key.Binding
	Help   key.Binding
	Quit   key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Pause: key.NewBinding(
			key.WithKeys(" ", "p"),
			key.WithHelp("space", "pause/resume"),
		),
		Next: key.NewBinding(
			key.WithKeys("]", "l", "right"),
			key.WithHelp("]/→", "next frame"),
		),
		Prev: key.NewBinding(
			key.WithKeys("[", "h", "left"),
			key.WithHelp("[/←", "previous frame"),
		),
		First: key.NewBinding(
			key.WithKeys("home", "0"),
			key.WithHelp("0", "first frame"),
		),
		Faster: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "faster"),
		),
		Slower: key.NewBinding(
			key.WithKeys("-", "_"),
			key.WithHelp("-", "slower"),
		),
		Loop: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "toggle loop"),
		),
		Save: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "save gif"),
		),
		Theme: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "cycle theme"),
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

// Bindings lists every binding in help order.
func (k KeyMap) Bindings() []key.Binding {
	return []key.Binding{k.Pause, k.Next, k.Prev, k.First, k.Faster, k.Slower, k.Loop, k.Save, k.Theme, k.Help, k.Quit}
}

var Keys = DefaultKeyMap()
