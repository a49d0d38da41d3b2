package logs

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/leg100/postie/internal/tui"
)

func coloredLogLevel(level string) string {
	var levelColor lipgloss.TerminalColor = lipgloss.NoColor{}
	switch level {
	case "ERROR":
		levelColor = tui.ErrorLogLevel
	case "WARN":
		levelColor = tui.WarnLogLevel
	case "DEBUG":
		levelColor = tui.DebugLogLevel
	case "INFO":
		levelColor = tui.InfoLogLevel
	}
	return tui.Bold.Foreground(levelColor).Render(level)
}
