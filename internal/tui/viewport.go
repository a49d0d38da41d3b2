package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/hokaccha/go-prettyjson"
	"github.com/leg100/postie/internal/tui/keys"
)

// Viewport is a wrapper of the upstream viewport bubble.
type Viewport struct {
	viewport viewport.Model

	content []byte
}

type ViewportOptions struct {
	Width  int
	Height int
}

func NewViewport(opts ViewportOptions) Viewport {
	m := Viewport{
		viewport: viewport.New(0, 0),
	}
	m.SetDimensions(opts.Width, opts.Height)
	return m
}

func (m Viewport) Update(msg tea.Msg) (Viewport, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, keys.Navigation.GotoTop):
			m.viewport.GotoTop()
		case key.Matches(msg, keys.Navigation.GotoBottom):
			m.viewport.GotoBottom()
		}
	}

	// Handle keyboard and mouse events in the viewport
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Viewport) View() string {
	scrollbar := Scrollbar(
		m.viewport.Height,
		m.viewport.TotalLineCount(),
		m.viewport.VisibleLineCount(),
		m.viewport.YOffset,
	)
	return lipgloss.JoinHorizontal(lipgloss.Top, m.viewport.View(), scrollbar)
}

func (m *Viewport) SetDimensions(width, height int) {
	width = max(0, width-ScrollbarWidth)
	// If width has changed, re-wrap existing content.
	rewrap := m.viewport.Width != width
	m.viewport.Width = width
	m.viewport.Height = height
	if rewrap {
		m.setContent()
	}
}

// SetJSON sets the content to the colorized JSON encoding of v.
func (m *Viewport) SetJSON(v any) error {
	b, err := prettyjson.Marshal(v)
	if err != nil {
		return fmt.Errorf("pretty printing json content: %w", err)
	}
	m.content = b
	m.setContent()
	return nil
}

func (m *Viewport) setContent() {
	// Wrap content to the width of the viewport, whilst respecting ANSI escape
	// codes (i.e. don't split codes across lines).
	wrapped := ansi.Wrap(ansi.Wordwrap(string(m.content), m.viewport.Width, ""), m.viewport.Width, "")
	m.viewport.SetContent(wrapped)
}
