package tui

import (
	"fmt"
	"slices"

	"golang.org/x/exp/maps"
)

// Kind identifies a kind of page.
type Kind int

const (
	PostListKind Kind = iota
	UserPostListKind
	PostKind
	LogListKind
	LogKind
)

func (k Kind) String() string {
	switch k {
	case PostListKind:
		return "posts"
	case UserPostListKind:
		return "user-posts"
	case PostKind:
		return "post"
	case LogListKind:
		return "logs"
	case LogKind:
		return "log"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

var firstPages = map[string]Kind{
	"posts":      PostListKind,
	"user-posts": UserPostListKind,
	"logs":       LogListKind,
}

// FirstPages lists the valid choices for the first page.
func FirstPages() []string {
	pages := maps.Keys(firstPages)
	slices.Sort(pages)
	return pages
}

// FirstPageKind retrieves the model corresponding to the user requested first
// page.
func FirstPageKind(s string) (Kind, error) {
	kind, ok := firstPages[s]
	if !ok {
		return 0, fmt.Errorf("invalid first page, must be one of: %v", FirstPages())
	}
	return kind, nil
}
