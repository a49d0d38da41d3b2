package logs

import (
	"regexp"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/leg100/postie/internal/logging"
	"github.com/leg100/postie/internal/resource"
	"github.com/leg100/postie/internal/tui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestList(t *testing.T) {
	logger := logging.NewLogger(logging.Options{Level: "info"})
	logger.Info("fetched resource", "resource", "posts")

	m, err := (&ListMaker{Logger: logger}).Make(tui.Page{Kind: tui.LogListKind}, 100, 10)
	require.NoError(t, err)

	m, _ = m.Update(m.Init()())
	assert.Regexp(t, `INFO\s+fetched resource resource=posts`, m.View())

	// A newly logged message is listed first
	logger.Error("fetching resource", "resource", "user-1")
	msgs := logger.Messages()
	m, _ = m.Update(resource.NewEvent(resource.UpdatedEvent, msgs[len(msgs)-1]))
	assert.Regexp(t, regexp.MustCompile(`(?s)ERROR\s+fetching resource.*INFO\s+fetched resource`), m.View())
	assert.Contains(t, m.(tui.ModelTitle).Title(), "Logs[2]")

	// A message already listed is not listed twice
	m, _ = m.Update(m.Init()())
	assert.Contains(t, m.(tui.ModelTitle).Title(), "Logs[2]")

	// Enter navigates to the highlighted message
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, tui.NavigationMsg{Kind: tui.LogKind, ID: 1}, cmd())
}

func TestMessage(t *testing.T) {
	logger := logging.NewLogger(logging.Options{Level: "info"})
	logger.Info("updated post", "id", 3, "title", "new title")

	m, err := (&MessageMaker{Logger: logger}).Make(tui.Page{Kind: tui.LogKind, ID: 0}, 100, 10)
	require.NoError(t, err)

	view := m.View()
	assert.Regexp(t, `level\s+INFO`, view)
	assert.Regexp(t, `message\s+updated post`, view)
	assert.Regexp(t, `id\s+3`, view)
	assert.Regexp(t, `title\s+new title`, view)
}

func TestMessage_NotFound(t *testing.T) {
	logger := logging.NewLogger(logging.Options{Level: "info"})

	_, err := (&MessageMaker{Logger: logger}).Make(tui.Page{Kind: tui.LogKind, ID: 7}, 100, 10)
	assert.ErrorContains(t, err, "log message not found: 7")
}
