// Package post renders a single post.
package post

import (
	"fmt"
	"slices"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/leg100/postie/internal/post"
	"github.com/leg100/postie/internal/resource"
	"github.com/leg100/postie/internal/tui"
	"github.com/leg100/postie/internal/tui/keys"
	"github.com/leg100/reflow/truncate"
)

// Maker makes post pages.
type Maker struct {
	Service *post.Service
}

func (mm *Maker) Make(page tui.Page, width, height int) (tea.Model, error) {
	m := model{
		svc: mm.Service,
		id:  page.ID,
		viewport: tui.NewViewport(tui.ViewportOptions{
			Width:  width,
			Height: height - headerHeight,
		}),
		width: width,
	}
	// Look for the post in whichever listing has it.
	var found bool
	for _, res := range []*resource.Resource[[]post.Post]{mm.Service.Posts, mm.Service.UserPosts} {
		if p, ok := find(res.Data(), page.ID); ok {
			m.post = p
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("post not found: %d", page.ID)
	}
	if err := m.viewport.SetJSON(m.post); err != nil {
		return nil, err
	}
	return m, nil
}

// headerHeight is the height of the title and its bottom margin.
const headerHeight = 2

type model struct {
	svc      *post.Service
	id       int
	post     post.Post
	viewport tui.Viewport
	width    int
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case resource.Event[resource.State[[]post.Post]]:
		// Refresh the post whenever a listing containing it is fetched.
		if p, ok := find(msg.Payload.Data, m.id); ok && p != m.post {
			m.post = p
			if err := m.viewport.SetJSON(p); err != nil {
				return m, tui.ReportError(err, "rendering post %d", m.id)
			}
		}
		return m, nil
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.viewport.SetDimensions(msg.Width, msg.Height-headerHeight)
		return m, nil
	case tea.KeyMsg:
		if key.Matches(msg, keys.Common.Edit) {
			return m, tui.EditTitle(m.svc, m.post)
		}
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func find(posts []post.Post, id int) (post.Post, bool) {
	i := slices.IndexFunc(posts, func(p post.Post) bool { return p.ID == id })
	if i < 0 {
		return post.Post{}, false
	}
	return posts[i], true
}

func (m model) Title() string {
	return tui.Bold.Render(fmt.Sprintf("%s[%d]", tui.TitleStyle.Render("Post"), m.id))
}

func (m model) View() string {
	title := tui.Bold.
		MarginBottom(1).
		Padding(0, 1).
		Render(truncate.StringWithTail(m.post.Title, uint(max(0, m.width-2)), "…"))
	return lipgloss.JoinVertical(lipgloss.Left, title, m.viewport.View())
}

func (m model) HelpBindings() []key.Binding {
	return []key.Binding{
		keys.Common.Edit,
	}
}
