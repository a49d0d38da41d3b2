package keys

import "github.com/charmbracelet/bubbles/key"

type common struct {
	Retry key.Binding
	Reset key.Binding
	Edit  key.Binding
	Enter key.Binding
}

// Keys shared by several models.
var Common = common{
	Retry: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "retry"),
	),
	Reset: key.NewBinding(
		key.WithKeys("ctrl+r"),
		key.WithHelp("ctrl+r", "reset"),
	),
	Edit: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "edit title"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "view"),
	),
}
