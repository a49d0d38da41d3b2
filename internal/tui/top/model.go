// Package top provides the top-level model, which navigates between pages
// and renders the header and footer around the current page.
package top

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/davecgh/go-spew/spew"
	"github.com/leg100/postie/internal/logging"
	"github.com/leg100/postie/internal/post"
	"github.com/leg100/postie/internal/resource"
	"github.com/leg100/postie/internal/tui"
	"github.com/leg100/postie/internal/tui/keys"
	"github.com/leg100/postie/internal/version"
)

type model struct {
	*navigator

	posts *post.Service

	width  int
	height int

	showHelp bool

	// prompt, if non-nil, takes over the footer and receives key presses.
	prompt *tui.Prompt

	// Either an error or an informational message is rendered in the footer.
	err  error
	info string

	spinner *spinner.Model

	dump *os.File

	baseURL string
}

type Options struct {
	Posts  *post.Service
	Logger *logging.Logger

	BaseURL   string
	FirstPage string
	Debug     bool
}

// New constructs the top-level TUI model.
func New(opts Options) (model, error) {
	var dump *os.File
	if opts.Debug {
		var err error
		dump, err = os.OpenFile("messages.log", os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
		if err != nil {
			return model{}, err
		}
	}

	firstKind, err := tui.FirstPageKind(opts.FirstPage)
	if err != nil {
		return model{}, err
	}

	spinner := spinner.New(spinner.WithSpinner(spinner.Line))

	navigator, err := newNavigator(tui.Page{Kind: firstKind}, makeMakers(opts, &spinner))
	if err != nil {
		return model{}, err
	}

	m := model{
		navigator: navigator,
		posts:     opts.Posts,
		spinner:   &spinner,
		dump:      dump,
		baseURL:   opts.BaseURL,
	}
	return m, nil
}

func (m model) Init() tea.Cmd {
	return tea.Batch(
		m.currentModel().Init(),
		m.spinner.Tick,
	)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	if m.dump != nil {
		spew.Fdump(m.dump, msg)
	}

	// Keep shared spinner spinning as long as there are fetches in flight.
	switch msg := msg.(type) {
	case resource.Event[resource.State[[]post.Post]], resource.Event[resource.State[post.User]]:
		if m.posts.Loading() {
			cmds = append(cmds, m.spinner.Tick)
		}
	case spinner.TickMsg:
		var cmd tea.Cmd
		*m.spinner, cmd = m.spinner.Update(msg)
		if m.posts.Loading() {
			return m, cmd
		}
		return m, nil
	}

	if m.prompt != nil {
		switch msg := msg.(type) {
		case tea.KeyMsg:
			if key.Matches(msg, keys.Global.Quit) {
				// pressing ctrl-c whilst prompted quits the app
				return m, tea.Quit
			}
			closePrompt, cmd := m.prompt.HandleKey(msg)
			if closePrompt {
				m.prompt = nil
			}
			return m, cmd
		default:
			// Send other messages to the prompt for it to blink its cursor,
			// and continue below.
			cmds = append(cmds, m.prompt.HandleBlink(msg))
		}
	}

	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = wsm.Width
		m.height = wsm.Height

		// Inform navigator of new dimensions for when it builds new models
		m.navigator.width = m.viewWidth()
		m.navigator.height = m.viewHeight()

		// amend msg to account for header etc, and forward below to all cached
		// models.
		msg = tea.WindowSizeMsg{
			Height: m.viewHeight(),
			Width:  m.viewWidth(),
		}
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Pressing any key makes any info/error message in the footer disappear
		m.info = ""
		m.err = nil

		switch {
		case key.Matches(msg, keys.Global.Quit):
			// ctrl-c quits the app, but not before prompting the user for
			// confirmation.
			return m, tui.YesNoPrompt("Quit postie?", tea.Quit)
		case key.Matches(msg, keys.Global.Escape):
			// <esc> closes help or goes back to last page
			if m.showHelp {
				m.showHelp = false
				return m, nil
			}
			return m, m.back()
		case key.Matches(msg, keys.Global.Help):
			// '?' toggles help
			m.showHelp = !m.showHelp
		case key.Matches(msg, keys.Global.Logs):
			// 'l' shows logs
			return m, tui.NavigateTo(tui.LogListKind)
		case key.Matches(msg, keys.Global.Posts):
			// 'P' lists all posts
			return m, tui.NavigateTo(tui.PostListKind)
		case key.Matches(msg, keys.Global.UserPosts):
			// 'U' lists the user's posts
			return m, tui.NavigateTo(tui.UserPostListKind)
		default:
			// Send other keys to current model.
			return m, m.updateCurrent(msg)
		}
	case tui.PromptMsg:
		var blink tea.Cmd
		m.prompt, blink = tui.NewPrompt(msg)
		cmds = append(cmds, blink)
	case tui.NavigationMsg:
		cmd, err := m.visit(tui.Page(msg))
		if err != nil {
			return m, tui.ReportError(err, "setting current page")
		}
		cmds = append(cmds, cmd)
	case tui.ErrorMsg:
		if msg.Error != nil {
			err := msg.Error
			msg := fmt.Sprintf(msg.Message, msg.Args...)

			// Both print error in footer as well as log it.
			m.err = fmt.Errorf("%s: %w", msg, err)
			slog.Error(msg, "error", err)
		}
	case tui.InfoMsg:
		m.info = string(msg)
	default:
		// Send remaining msg types to all cached models
		cmds = append(cmds, m.updateAll(msg)...)
	}
	return m, tea.Batch(cmds...)
}

var (
	logo = strings.Join([]string{
		"█▀█ █▀█ █▀ ▀█▀ █ █▀▀",
		"█▀▀ █▄█ ▄█  █  █ ██▄",
	}, "\n")
	renderedLogo = tui.Bold.
			Margin(0, 1).
			Foreground(tui.Pink).
			Render(logo)
	logoWidth            = lipgloss.Width(renderedLogo)
	headerHeight         = 3
	titleHeight          = 1
	horizontalRuleHeight = 1
	messageFooterHeight  = 1

	baseURLIcon = tui.Bold.
			Foreground(tui.Pink).
			Margin(0, 2, 0, 1).
			Render("⇄")
	versionIcon = tui.Bold.
			Foreground(tui.Pink).
			Margin(0, 2, 0, 1).
			Render("ⓥ")
)

func (m model) View() string {
	var (
		content           string
		shortHelpBindings []key.Binding
	)

	var currentHelpBindings []key.Binding
	if bindings, ok := m.currentModel().(tui.ModelHelpBindings); ok {
		currentHelpBindings = bindings.HelpBindings()
	}

	if m.showHelp {
		content = lipgloss.NewStyle().
			Margin(1).
			Render(
				fullHelpView(
					helpSection{heading: "page", bindings: currentHelpBindings},
					helpSection{heading: "general", bindings: keys.KeyMapToSlice(keys.Global)},
					helpSection{heading: "navigation", bindings: keys.KeyMapToSlice(keys.Navigation)},
				),
			)
		shortHelpBindings = []key.Binding{
			key.NewBinding(
				key.WithKeys("?"),
				key.WithHelp("?", "close help"),
			),
		}
	} else {
		content = m.currentModel().View()
		shortHelpBindings = append(
			currentHelpBindings,
			keys.KeyMapToSlice(keys.Global)...,
		)
	}
	if m.prompt != nil {
		shortHelpBindings = m.prompt.HelpBindings()
	}

	// Render global static info in top left corner
	globalStatic := lipgloss.JoinVertical(lipgloss.Top,
		lipgloss.JoinHorizontal(lipgloss.Left, baseURLIcon, tui.Regular.Render(m.baseURL)),
		lipgloss.JoinHorizontal(lipgloss.Left, versionIcon, tui.Regular.Render(version.Version)),
	)

	// Render help bindings in between version and logo. Set its available width
	// to the width of the terminal minus the width of the global static info,
	// the width of the logo, and the width of its margins.
	shortHelpWidth := max(0, m.width-tui.Width(globalStatic)-logoWidth-6)
	shortHelp := lipgloss.NewStyle().
		Margin(0, 2, 0, 4).
		Width(shortHelpWidth).
		Render(shortHelpView(shortHelpBindings, shortHelpWidth))

	// Render page title line
	var (
		pageTitle  string
		pageStatus string
	)
	if titled, ok := m.currentModel().(tui.ModelTitle); ok {
		pageTitle = tui.Regular.Margin(0, 1).Render(titled.Title())
	}

	// Optionally render page status to the right side of title
	if statusable, ok := m.currentModel().(tui.ModelStatus); ok {
		pageStatus = tui.Padded.Render(statusable.Status())
	}
	pageStatus = tui.Regular.
		Margin(0, 1).
		Width(max(0, m.width-tui.Width(pageTitle)-2)).
		Align(lipgloss.Right).
		Render(pageStatus)

	// Stitch together page title line, and status to the right
	pageTitleLine := lipgloss.JoinHorizontal(lipgloss.Left, pageTitle, pageStatus)

	// Global-level info goes in the bottom right corner in the footer.
	metadata := tui.Padded.Render(m.posts.User.ID().String())

	// Render either the prompt, or any info/error message, in the bottom left
	// corner in the footer, using whatever space is remaining to the left of
	// the metadata.
	var footerMsg string
	switch {
	case m.prompt != nil:
		footerMsg = tui.Padded.Render(m.prompt.View())
	case m.err != nil:
		footerMsg = tui.Padded.
			Foreground(tui.Red).
			Render("Error: " + m.err.Error())
	case m.info != "":
		footerMsg = tui.Padded.
			Foreground(tui.Black).
			Render(m.info)
	}
	footerWidth := max(0, m.width-tui.Width(metadata))

	return lipgloss.JoinVertical(
		lipgloss.Top,
		// header
		lipgloss.NewStyle().
			Height(headerHeight).
			Render(
				lipgloss.JoinHorizontal(
					lipgloss.Left,
					// global static info
					globalStatic,
					// help
					shortHelp,
					// logo
					renderedLogo,
				),
			),
		// title
		lipgloss.NewStyle().
			// Prohibit overflowing title wrapping to another line.
			MaxHeight(titleHeight).
			Inline(true).
			Width(m.width).
			Render(pageTitleLine),
		// horizontal rule
		strings.Repeat("─", m.width),
		// content
		lipgloss.NewStyle().
			Height(m.viewHeight()).
			Render(content),
		// horizontal rule
		strings.Repeat("─", m.width),
		// footer
		lipgloss.JoinHorizontal(
			lipgloss.Top,
			// prompt or info/error message
			tui.Regular.
				Inline(true).
				MaxWidth(footerWidth).
				Width(footerWidth).
				Render(footerMsg),
			metadata,
		),
	)
}

// viewHeight retrieves the height available beneath the header and title, and
// above the message footer.
func (m model) viewHeight() int {
	// Take total terminal height and subtract the height of the header, the
	// title, the horizontal rule under the title, and then in the footer, the
	// horizontal rule and the message underneath.
	return max(0, m.height-headerHeight-titleHeight-2*horizontalRuleHeight-messageFooterHeight)
}

// viewWidth retrieves the width available within the main view
func (m model) viewWidth() int {
	return m.width
}
