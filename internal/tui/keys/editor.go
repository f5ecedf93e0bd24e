package keys

import "github.com/charmbracelet/bubbles/key"

type editor struct {
	Indent key.Binding
}

// Editor is a key map of keys handled by the text editor, in addition to
// those handled by the text area itself.
var Editor = editor{
	Indent: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "indent"),
	),
}
