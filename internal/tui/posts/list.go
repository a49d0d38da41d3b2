// Package posts renders listings of posts.
package posts

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/leg100/postie/internal/post"
	"github.com/leg100/postie/internal/resource"
	"github.com/leg100/postie/internal/tui"
	"github.com/leg100/postie/internal/tui/keys"
	"github.com/leg100/reflow/truncate"
)

const idColumnWidth = 4

// ListMaker makes post listings.
type ListMaker struct {
	Service *post.Service
	Spinner *spinner.Model
	// ByUser restricts the listing to the posts of the service's user.
	ByUser bool
}

func (mm *ListMaker) Make(_ tui.Page, width, height int) (tea.Model, error) {
	res := mm.Service.Posts
	if mm.ByUser {
		res = mm.Service.UserPosts
	}
	styles := table.DefaultStyles()
	styles.Selected = styles.Selected.
		Foreground(tui.CurrentForeground).
		Background(tui.CurrentBackground)

	m := list{
		svc:     mm.Service,
		res:     res,
		byUser:  mm.ByUser,
		state:   res.State(),
		user:    mm.Service.User.State(),
		spinner: mm.Spinner,
		table: table.New(
			table.WithFocused(true),
			table.WithStyles(styles),
		),
	}
	m.setDimensions(width, height)
	m.setRows()
	return m, nil
}

type list struct {
	svc    *post.Service
	res    *resource.Resource[[]post.Post]
	byUser bool

	// latest snapshots of the listed resource and, for a user listing, of
	// the user.
	state resource.State[[]post.Post]
	user  resource.State[post.User]

	table   table.Model
	spinner *spinner.Model

	width      int
	height     int
	titleWidth int
	bodyWidth  int
}

func (m list) Init() tea.Cmd {
	return nil
}

func (m list) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case resource.Event[resource.State[[]post.Post]]:
		if msg.Payload.ID != m.res.ID() || msg.Payload.Version < m.state.Version {
			return m, nil
		}
		m.state = msg.Payload
		m.setRows()
		return m, nil
	case resource.Event[resource.State[post.User]]:
		if msg.Payload.Version >= m.user.Version {
			m.user = msg.Payload
		}
		return m, nil
	case tea.WindowSizeMsg:
		m.setDimensions(msg.Width, msg.Height)
		m.setRows()
		return m, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Common.Retry):
			return m, m.retry()
		case key.Matches(msg, keys.Common.Reset):
			return m, m.reset()
		case key.Matches(msg, keys.Common.Edit):
			if p, ok := m.highlighted(); ok {
				return m, tui.EditTitle(m.svc, p)
			}
			return m, nil
		case key.Matches(msg, keys.Common.Enter):
			if p, ok := m.highlighted(); ok {
				return m, tui.NavigateTo(tui.PostKind, tui.WithID(p.ID))
			}
			return m, nil
		}
	}

	// Handle keyboard events in the table widget
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// retry retries the failed user if the listing is waiting on it, otherwise
// the listing itself.
func (m *list) retry() tea.Cmd {
	if m.byUser && m.user.IsError() {
		if err := m.svc.User.Retry(); err != nil {
			return tui.ReportError(err, "retrying user")
		}
		m.user = m.svc.User.State()
		return m.spinner.Tick
	}
	if err := m.res.Retry(); err != nil {
		return tui.ReportError(err, "retrying %s", m.res.ID())
	}
	m.state = m.res.State()
	m.setRows()
	return m.spinner.Tick
}

func (m *list) reset() tea.Cmd {
	// Reset the user first, otherwise the user's posts are fetched for the
	// outgoing user.
	if m.byUser {
		if err := m.svc.User.Reset(); err != nil {
			return tui.ReportError(err, "resetting user")
		}
		m.user = m.svc.User.State()
	}
	if err := m.res.Reset(); err != nil {
		return tui.ReportError(err, "resetting %s", m.res.ID())
	}
	m.state = m.res.State()
	m.setRows()
	return m.spinner.Tick
}

func (m list) highlighted() (post.Post, bool) {
	if !m.state.IsReady() {
		return post.Post{}, false
	}
	i := m.table.Cursor()
	if i < 0 || i >= len(m.state.Data) {
		return post.Post{}, false
	}
	return m.state.Data[i], true
}

func (m *list) setDimensions(width, height int) {
	m.width = width
	m.height = height

	// each column is padded by one space either side.
	remaining := max(0, width-idColumnWidth-6)
	m.titleWidth = remaining * 2 / 5
	m.bodyWidth = remaining - m.titleWidth
	m.table.SetColumns([]table.Column{
		{Title: "ID", Width: idColumnWidth},
		{Title: "TITLE", Width: m.titleWidth},
		{Title: "BODY", Width: m.bodyWidth},
	})
	m.table.SetWidth(width)
	m.table.SetHeight(height)
}

func (m *list) setRows() {
	if !m.state.IsReady() {
		m.table.SetRows(nil)
		return
	}
	rows := make([]table.Row, len(m.state.Data))
	for i, p := range m.state.Data {
		rows[i] = table.Row{
			strconv.Itoa(p.ID),
			truncate.StringWithTail(p.Title, uint(m.titleWidth), "…"),
			truncate.StringWithTail(flatten(p.Body), uint(m.bodyWidth), "…"),
		}
	}
	m.table.SetRows(rows)
	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(max(0, len(rows)-1))
	}
}

// flatten joins the lines of s with spaces.
func flatten(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func (m list) Title() string {
	title := "Posts"
	if m.byUser {
		switch {
		case m.user.IsReady():
			title = fmt.Sprintf("Posts by %s", m.user.Data.Name)
		default:
			title = "Posts by user"
		}
	}
	title = tui.TitleStyle.Render(title)
	if m.state.IsReady() {
		title = fmt.Sprintf("%s[%d]", title, len(m.state.Data))
	}
	return tui.Bold.Render(title)
}

func (m list) Status() string {
	return tui.ResourceStatus(time.Now(), m.state)
}

func (m list) View() string {
	style := tui.Regular.Padding(0, 1).Width(m.width).Height(m.height)

	if m.byUser {
		switch {
		case m.user.IsPending():
			return style.Render("Loading user " + m.spinner.View())
		case m.user.IsError():
			return style.Render(failed("user", m.user.Err))
		}
	}
	switch {
	case m.state.IsPending():
		return style.Render("Loading posts " + m.spinner.View())
	case m.state.IsError():
		return style.Render(failed("posts", m.state.Err))
	case len(m.state.Data) == 0:
		return style.Render("No posts found")
	default:
		return m.table.View()
	}
}

func failed(what string, err error) string {
	return fmt.Sprintf("%s\n\nPress %s to retry.",
		tui.Regular.Foreground(tui.ErrorColor).Render(fmt.Sprintf("Failed to load %s: %s", what, err)),
		keys.Common.Retry.Help().Key,
	)
}

func (m list) HelpBindings() []key.Binding {
	return []key.Binding{
		keys.Common.Retry,
		keys.Common.Reset,
		keys.Common.Edit,
		keys.Common.Enter,
	}
}
