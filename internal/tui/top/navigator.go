package top

import (
	"fmt"
	"slices"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/leg100/postie/internal/tui"
)

// navigator navigates the user from page to page. A page's model is made upon
// the first visit and retained thereafter, so that a page is restored as the
// user left it, e.g. with the same row highlighted.
type navigator struct {
	makers map[tui.Kind]tui.Maker
	models map[tui.Page]tea.Model
	// visited pages, the current page last. A page appears at most once.
	visited []tui.Page
	// dimensions of newly made models
	width  int
	height int
}

func newNavigator(first tui.Page, makers map[tui.Kind]tui.Maker) (*navigator, error) {
	n := &navigator{
		makers: makers,
		models: make(map[tui.Page]tea.Model),
	}
	// ignore returned init cmd; instead the main model should invoke it
	if _, err := n.visit(first); err != nil {
		return nil, err
	}
	return n, nil
}

func (n *navigator) current() tui.Page {
	return n.visited[len(n.visited)-1]
}

func (n *navigator) currentModel() tea.Model {
	return n.models[n.current()]
}

// visit makes page the current page, returning the command to initialise its
// model.
func (n *navigator) visit(page tui.Page) (tea.Cmd, error) {
	if len(n.visited) > 0 && n.current() == page {
		return nil, nil
	}
	model, ok := n.models[page]
	if !ok {
		maker, ok := n.makers[page.Kind]
		if !ok {
			return nil, fmt.Errorf("no maker could be found for %s", page.Kind)
		}
		var err error
		model, err = maker.Make(page, n.width, n.height)
		if err != nil {
			return nil, fmt.Errorf("making %s page: %w", page.Kind, err)
		}
		n.models[page] = model
	}
	// A revisited page moves to the end rather than appearing twice.
	n.visited = slices.DeleteFunc(n.visited, func(visited tui.Page) bool {
		return visited == page
	})
	n.visited = append(n.visited, page)
	return model.Init(), nil
}

// back returns to the previously visited page. The first page is never left.
func (n *navigator) back() tea.Cmd {
	if len(n.visited) == 1 {
		return nil
	}
	n.visited = n.visited[:len(n.visited)-1]
	return n.currentModel().Init()
}

func (n *navigator) updateCurrent(msg tea.Msg) tea.Cmd {
	return n.update(n.current(), msg)
}

// updateAll sends msg to every model made thus far.
func (n *navigator) updateAll(msg tea.Msg) []tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(n.models))
	for page := range n.models {
		cmds = append(cmds, n.update(page, msg))
	}
	return cmds
}

func (n *navigator) update(page tui.Page, msg tea.Msg) tea.Cmd {
	updated, cmd := n.models[page].Update(msg)
	n.models[page] = updated
	return cmd
}
