// Package logs renders the application's log messages.
package logs

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/leg100/postie/internal/logging"
	"github.com/leg100/postie/internal/resource"
	"github.com/leg100/postie/internal/tui"
	"github.com/leg100/postie/internal/tui/keys"
)

const (
	timeFormat = "2006-01-02T15:04:05.000"
	// width of widest level, ERROR
	levelWidth = 5
)

type ListMaker struct {
	Logger *logging.Logger
}

func (mm *ListMaker) Make(_ tui.Page, width, height int) (tea.Model, error) {
	styles := table.DefaultStyles()
	styles.Selected = styles.Selected.
		Foreground(tui.CurrentForeground).
		Background(tui.CurrentBackground)

	m := list{
		logger: mm.Logger,
		table: table.New(
			table.WithFocused(true),
			table.WithStyles(styles),
		),
	}
	m.setDimensions(width, height)
	return m, nil
}

type list struct {
	logger *logging.Logger
	table  table.Model
	// messages sorted newest first
	messages []logging.Message
}

// loadedMsg carries the messages logged prior to the creation of the listing.
type loadedMsg []logging.Message

func (m list) Init() tea.Cmd {
	return func() tea.Msg {
		return loadedMsg(m.logger.Messages())
	}
}

func (m list) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case loadedMsg:
		m.add(msg...)
		return m, nil
	case resource.Event[logging.Message]:
		m.add(msg.Payload)
		return m, nil
	case tea.WindowSizeMsg:
		m.setDimensions(msg.Width, msg.Height)
		m.setRows()
		return m, nil
	case tea.KeyMsg:
		if key.Matches(msg, keys.Common.Enter) {
			if i := m.table.Cursor(); i >= 0 && i < len(m.messages) {
				return m, tui.NavigateTo(tui.LogKind, tui.WithID(int(m.messages[i].Serial)))
			}
			return m, nil
		}
	}

	// Handle keyboard events in the table widget
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// add adds messages to the listing, skipping those already listed.
func (m *list) add(msgs ...logging.Message) {
	for _, msg := range msgs {
		exists := slices.ContainsFunc(m.messages, func(existing logging.Message) bool {
			return existing.Serial == msg.Serial
		})
		if !exists {
			m.messages = append(m.messages, msg)
		}
	}
	slices.SortFunc(m.messages, logging.BySerialDesc)
	m.setRows()
}

func (m *list) setDimensions(width, height int) {
	m.table.SetColumns([]table.Column{
		{Title: "TIME", Width: len(timeFormat)},
		{Title: "LEVEL", Width: levelWidth},
		// each column is padded by one space either side.
		{Title: "MESSAGE", Width: max(0, width-len(timeFormat)-levelWidth-6)},
	})
	m.table.SetWidth(width)
	m.table.SetHeight(height)
}

func (m *list) setRows() {
	rows := make([]table.Row, len(m.messages))
	for i, msg := range m.messages {
		// combine message and attributes, separated by spaces, with each
		// attribute key/value joined with a '='
		var b strings.Builder
		b.WriteString(msg.Message)
		for _, attr := range msg.Attributes {
			b.WriteString(" " + attr.Key + "=" + attr.Value)
		}
		rows[i] = table.Row{
			msg.Time.Format(timeFormat),
			msg.Level,
			b.String(),
		}
	}
	m.table.SetRows(rows)
}

func (m list) Title() string {
	title := tui.TitleStyle.Render("Logs")
	return tui.Bold.Render(fmt.Sprintf("%s[%d]", title, len(m.messages)))
}

func (m list) View() string {
	return m.table.View()
}

func (m list) HelpBindings() []key.Binding {
	return []key.Binding{keys.Common.Enter}
}
