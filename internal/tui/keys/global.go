package keys

import (
	"github.com/charmbracelet/bubbles/key"
)

type global struct {
	New        key.Binding
	Open       key.Binding
	OpenFolder key.Binding
	Close      key.Binding
	Save       key.Binding
	SaveAs     key.Binding
	Focus      key.Binding
	Logs       key.Binding
	Escape     key.Binding
	Quit       key.Binding
	ForceQuit  key.Binding
	Help       key.Binding
}

var Global = global{
	New: key.NewBinding(
		key.WithKeys("ctrl+n"),
		key.WithHelp("^n", "new file"),
	),
	Open: key.NewBinding(
		key.WithKeys("ctrl+o"),
		key.WithHelp("^o", "open file"),
	),
	OpenFolder: key.NewBinding(
		key.WithKeys("alt+o"),
		key.WithHelp("alt+o", "open folder"),
	),
	Close: key.NewBinding(
		key.WithKeys("ctrl+w"),
		key.WithHelp("^w", "close file"),
	),
	Save: key.NewBinding(
		key.WithKeys("ctrl+s"),
		key.WithHelp("^s", "save"),
	),
	SaveAs: key.NewBinding(
		key.WithKeys("alt+s"),
		key.WithHelp("alt+s", "save as"),
	),
	Focus: key.NewBinding(
		key.WithKeys("alt+e"),
		key.WithHelp("alt+e", "explorer/editor"),
	),
	Logs: key.NewBinding(
		key.WithKeys("alt+l"),
		key.WithHelp("alt+l", "logs"),
	),
	Escape: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("^c", "exit"),
	),
	ForceQuit: key.NewBinding(
		key.WithKeys("ctrl+q"),
		key.WithHelp("^q", "quit"),
	),
	Help: key.NewBinding(
		key.WithKeys("f1"),
		key.WithHelp("f1", "help"),
	),
}
