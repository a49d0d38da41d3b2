package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/leg100/postie/internal/post"
)

// EditTitle prompts the user for a new title for a post, and upon
// confirmation updates the post.
func EditTitle(svc *post.Service, p post.Post) tea.Cmd {
	validate := func(title string) error {
		_, err := post.ValidateTitle(title)
		return err
	}
	return EditPrompt("New title: ", p.Title, post.MaxTitleLength, validate, func(title string) tea.Cmd {
		return func() tea.Msg {
			if _, err := svc.UpdateTitle(context.Background(), p.ID, title); err != nil {
				return NewErrorMsg(err, "updating post %d", p.ID)
			}
			return InfoMsg(fmt.Sprintf("updated title of post %d", p.ID))
		}
	})
}
