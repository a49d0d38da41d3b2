package top

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

var (
	helpKeyColor = lipgloss.AdaptiveColor{
		Light: "#909090",
		Dark:  "#626262",
	}
	helpDescColor = lipgloss.AdaptiveColor{
		Light: "#B2B2B2",
		Dark:  "#4A4A4A",
	}

	shortHelpKeyStyle  = lipgloss.NewStyle().Foreground(helpKeyColor).Bold(true).Margin(0, 1, 0, 0)
	shortHelpDescStyle = lipgloss.NewStyle().Foreground(helpDescColor)
)

const shortHelpRows = 2

// shortHelpView renders help for key bindings within the header.
func shortHelpView(bindings []key.Binding, maxWidth int) string {
	// enumerate through each group of bindings, populating a series of pairs
	// of columns, one for keys, one for descriptions
	var (
		pairs []string
		width int
	)
	for i := 0; i < len(bindings); i += shortHelpRows {
		var (
			keys  []string
			descs []string
		)
		for j := i; j < min(i+shortHelpRows, len(bindings)); j++ {
			keys = append(keys, bindings[j].Help().Key)
			descs = append(descs, bindings[j].Help().Desc)
		}
		// Render pair of columns; beyond the first pair, render a three space
		// left margin, in order to visually separate the pairs.
		var cols []string
		if len(pairs) > 0 {
			cols = []string{"   "}
		}
		cols = append(cols,
			shortHelpKeyStyle.Render(strings.Join(keys, "\n")),
			shortHelpDescStyle.Render(strings.Join(descs, "\n")),
		)

		pair := lipgloss.JoinHorizontal(lipgloss.Left, cols...)
		// check whether it exceeds the maximum width avail
		width += lipgloss.Width(pair)
		if width > maxWidth {
			break
		}
		pairs = append(pairs, pair)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, pairs...)
}

var (
	longHelpHeadingStyle = lipgloss.NewStyle().Foreground(helpKeyColor).Bold(true).Margin(0, 3, 0, 0)
	longHelpKeyStyle     = lipgloss.NewStyle().Foreground(helpKeyColor).Bold(true).Margin(0, 1, 0, 0)
	longHelpDescStyle    = lipgloss.NewStyle().Foreground(helpDescColor).Margin(0, 3, 0, 0)
)

// helpSection is a headed column of key bindings in the full help.
type helpSection struct {
	heading  string
	bindings []key.Binding
}

// fullHelpView renders a column for each section, listing its key bindings
// and their descriptions.
func fullHelpView(sections ...helpSection) string {
	columns := make([]string, len(sections))
	for i, section := range sections {
		keys := make([]string, len(section.bindings))
		descs := make([]string, len(section.bindings))
		for j, kb := range section.bindings {
			keys[j] = longHelpKeyStyle.Render(kb.Help().Key)
			descs[j] = longHelpDescStyle.Render(kb.Help().Desc)
		}
		columns[i] = lipgloss.JoinVertical(lipgloss.Top,
			longHelpHeadingStyle.Render(strings.ToUpper(section.heading)),
			lipgloss.JoinHorizontal(lipgloss.Left,
				strings.Join(keys, "\n"),
				strings.Join(descs, "\n"),
			),
		)
	}
	return lipgloss.JoinHorizontal(lipgloss.Left, columns...)
}
