package post

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// MaxTitleLength is the maximum number of characters in a post title.
const MaxTitleLength = 120

// ErrInvalid is returned when a post fails validation.
var ErrInvalid = errors.New("invalid post")

// Post is an item in a list of posts.
type Post struct {
	ID     int    `json:"id" yaml:"id"`
	UserID int    `json:"userId" yaml:"userId"`
	Title  string `json:"title" yaml:"title"`
	Body   string `json:"body" yaml:"body"`
}

type User struct {
	ID       int    `json:"id" yaml:"id"`
	Name     string `json:"name" yaml:"name"`
	Username string `json:"username,omitempty" yaml:"username"`
	Email    string `json:"email,omitempty" yaml:"email"`
}

// Patch is a partial update to a post.
type Patch struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
}

// ValidateTitle checks a title is suitable for a post, returning the title
// with surrounding whitespace removed.
func ValidateTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", fmt.Errorf("%w: title is required", ErrInvalid)
	}
	if n := utf8.RuneCountInString(title); n > MaxTitleLength {
		return "", fmt.Errorf("%w: title must be at most %d characters, got %d", ErrInvalid, MaxTitleLength, n)
	}
	return title, nil
}
