package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Maker makes new models
type Maker interface {
	Make(page Page, width, height int) (tea.Model, error)
}

// Page identifies an instance of a model
type Page struct {
	// The model kind. Identifies the model maker to construct the page.
	Kind Kind
	// ID identifies the subject of the page, e.g. the post ID of a post page.
	// Zero for listings.
	ID int
}

// ModelStatus is implemented by models that report the status of the
// resource they render.
type ModelStatus interface {
	Status() string
}

// ModelTitle is implemented by models that show a title
type ModelTitle interface {
	Title() string
}

// ModelHelpBindings is implemented by models that surface further help bindings
// specific to the model.
type ModelHelpBindings interface {
	HelpBindings() []key.Binding
}
