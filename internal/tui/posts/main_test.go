package posts

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

func init() {
	// Disable color in tests
	lipgloss.SetColorProfile(termenv.Ascii)
}
