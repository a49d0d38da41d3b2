package top

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/leg100/postie/internal/tui"
	"github.com/leg100/postie/internal/tui/logs"
	posttui "github.com/leg100/postie/internal/tui/post"
	"github.com/leg100/postie/internal/tui/posts"
)

// makeMakers makes model makers for making models
func makeMakers(opts Options, spinner *spinner.Model) map[tui.Kind]tui.Maker {
	return map[tui.Kind]tui.Maker{
		tui.PostListKind: &posts.ListMaker{
			Service: opts.Posts,
			Spinner: spinner,
		},
		tui.UserPostListKind: &posts.ListMaker{
			Service: opts.Posts,
			Spinner: spinner,
			ByUser:  true,
		},
		tui.PostKind: &posttui.Maker{
			Service: opts.Posts,
		},
		tui.LogListKind: &logs.ListMaker{
			Logger: opts.Logger,
		},
		tui.LogKind: &logs.MessageMaker{
			Logger: opts.Logger,
		},
	}
}
