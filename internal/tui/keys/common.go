package keys

import "github.com/charmbracelet/bubbles/key"

type common struct {
	Enter  key.Binding
	Reload key.Binding
}

// Keys shared by several models.
var Common = common{
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "open/toggle"),
	),
	Reload: key.NewBinding(
		key.WithKeys("ctrl+r"),
		key.WithHelp("^r", "reload"),
	),
}
