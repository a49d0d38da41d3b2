package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/leg100/postie/internal/resource"
)

// RenderStatus renders a resource status in its own color.
func RenderStatus(status resource.Status) string {
	var color lipgloss.TerminalColor = lipgloss.NoColor{}
	switch status {
	case resource.Pending:
		color = PendingColor
	case resource.Ready:
		color = ReadyColor
	case resource.Error:
		color = ErrorColor
	}
	return Bold.Foreground(color).Render(status.String())
}

// ResourceStatus summarises a resource snapshot, e.g. "ready (attempt 2,
// 5s ago)".
func ResourceStatus[T any](now time.Time, state resource.State[T]) string {
	s := RenderStatus(state.Status)
	if state.Attempts == 0 {
		return s
	}
	if state.UpdatedAt.IsZero() {
		return fmt.Sprintf("%s (attempt %d)", s, state.Attempts)
	}
	return fmt.Sprintf("%s (attempt %d, %s)", s, state.Attempts, Ago(now, state.UpdatedAt))
}

func Ago(now, t time.Time) string {
	diff := now.Sub(t)
	var (
		n      int
		suffix string
	)

	switch {
	// Report seconds precisely only when less than 10 seconds, otherwise in
	// blocks of ten seconds, to avoid a status that changes on every render.
	case diff < time.Second*10:
		n = int(diff.Seconds())
		suffix = "s"
	case diff < time.Minute:
		n = int(diff.Round(10 * time.Second).Seconds())
		suffix = "s"
	case diff < time.Hour:
		n = int(diff.Minutes())
		suffix = "m"
	default:
		n = int(diff.Hours())
		suffix = "h"
	}
	return fmt.Sprintf("%d%s ago", n, suffix)
}
