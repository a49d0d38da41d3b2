package logs

import (
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/leg100/postie/internal/logging"
	"github.com/leg100/postie/internal/tui"
)

// MessageMaker makes pages for individual log messages.
type MessageMaker struct {
	Logger *logging.Logger
}

func (mm *MessageMaker) Make(page tui.Page, width, height int) (tea.Model, error) {
	msgs := mm.Logger.Messages()
	i := slices.IndexFunc(msgs, func(msg logging.Message) bool {
		return msg.Serial == uint(page.ID)
	})
	if i < 0 {
		return nil, fmt.Errorf("log message not found: %d", page.ID)
	}
	return message{msg: msgs[i]}, nil
}

type message struct {
	msg logging.Message
}

func (m message) Init() tea.Cmd {
	return nil
}

func (m message) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return m, nil
}

func (m message) Title() string {
	title := tui.TitleStyle.Render("Log")
	return tui.Bold.Render(fmt.Sprintf("%s[%d]", title, m.msg.Serial))
}

var keyStyle = tui.Bold.Foreground(tui.LogRecordAttributeKey).MarginRight(2)

// View renders a table of the message's keys and values.
func (m message) View() string {
	keys := []string{"time", "level", "message"}
	values := []string{
		m.msg.Time.Format(timeFormat),
		coloredLogLevel(m.msg.Level),
		m.msg.Message,
	}
	for _, attr := range m.msg.Attributes {
		keys = append(keys, attr.Key)
		values = append(values, attr.Value)
	}
	return tui.Padded.Render(lipgloss.JoinHorizontal(lipgloss.Top,
		keyStyle.Render(strings.Join(keys, "\n")),
		strings.Join(values, "\n"),
	))
}
