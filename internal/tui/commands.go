package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

type NavigateOption func(msg *NavigationMsg)

// WithID sets the ID of the subject of the page.
func WithID(id int) NavigateOption {
	return func(msg *NavigationMsg) {
		msg.ID = id
	}
}

// NavigateTo sends an instruction to navigate to a page with the given model
// kind, and optionally the ID of its subject.
func NavigateTo(kind Kind, opts ...NavigateOption) tea.Cmd {
	msg := NavigationMsg{Kind: kind}
	for _, fn := range opts {
		fn(&msg)
	}
	return CmdHandler(msg)
}

func ReportInfo(msg string, args ...any) tea.Cmd {
	return CmdHandler(InfoMsg(fmt.Sprintf(msg, args...)))
}

func ReportError(err error, msg string, args ...any) tea.Cmd {
	return CmdHandler(NewErrorMsg(err, msg, args...))
}

// CmdHandler wraps a message in a command.
func CmdHandler(msg tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return msg
	}
}
