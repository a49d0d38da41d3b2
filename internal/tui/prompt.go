package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// PromptMsg enables the prompt widget.
type PromptMsg struct {
	// Prompt to display to the user.
	Prompt string
	// Set initial value for the user to edit.
	InitialValue string
	// CharLimit is the maximum number of characters the user can enter. Zero
	// means no limit.
	CharLimit int
	// Validate, if non-nil, checks the value upon every edit. The action cannot
	// be triggered whilst the value is invalid.
	Validate func(value string) error
	// Action to carry out when key is pressed.
	Action PromptAction
	// Key that when pressed triggers the action and closes the prompt.
	Key key.Binding
	// Cancel is a key that when pressed skips the action and closes the prompt.
	Cancel key.Binding
	// CancelAnyOther, if true, checks if any key other than that specified in
	// Key is pressed. If so then the action is skipped and the prompt is
	// closed. Overrides Cancel key binding.
	CancelAnyOther bool
}

type PromptAction func(value string) tea.Cmd

// YesNoPrompt sends a message to enable the prompt widget, specifically
// asking the user for a yes/no answer. If yes is given then the action is
// invoked.
func YesNoPrompt(prompt string, action tea.Cmd) tea.Cmd {
	return CmdHandler(PromptMsg{
		Prompt: fmt.Sprintf("%s (y/N): ", prompt),
		Action: func(string) tea.Cmd {
			return action
		},
		Key: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "confirm"),
		),
		CancelAnyOther: true,
	})
}

// EditPrompt sends a message to enable the prompt widget, asking the user to
// edit a value. Enter invokes the action with a valid value and escape
// cancels.
func EditPrompt(prompt, initial string, limit int, validate func(string) error, action PromptAction) tea.Cmd {
	return CmdHandler(PromptMsg{
		Prompt:       prompt,
		InitialValue: initial,
		CharLimit:    limit,
		Validate:     validate,
		Action:       action,
		Key: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "confirm"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
	})
}

// Prompt is a widget that prompts the user for input and triggers an action.
type Prompt struct {
	input   textinput.Model
	msg     PromptMsg
	invalid error
}

func NewPrompt(msg PromptMsg) (*Prompt, tea.Cmd) {
	input := textinput.New()
	input.Prompt = msg.Prompt
	input.CharLimit = msg.CharLimit
	input.SetValue(msg.InitialValue)
	blink := input.Focus()

	p := &Prompt{input: input, msg: msg}
	p.validate()
	return p, blink
}

func (p *Prompt) validate() {
	if p.msg.Validate != nil {
		p.invalid = p.msg.Validate(p.input.Value())
	}
}

// HandleKey handles the user key press, and returns a command to be run, and
// whether the prompt should be closed.
func (p *Prompt) HandleKey(msg tea.KeyMsg) (closePrompt bool, cmd tea.Cmd) {
	switch {
	case key.Matches(msg, p.msg.Key):
		if p.invalid != nil {
			// Keep the prompt open for the user to correct the value.
			return false, nil
		}
		return true, p.msg.Action(p.input.Value())
	case key.Matches(msg, p.msg.Cancel), p.msg.CancelAnyOther:
		return true, ReportInfo("chosen not to proceed")
	default:
		p.input, cmd = p.input.Update(msg)
		p.validate()
		return false, cmd
	}
}

// HandleBlink handles the bubbletea blink message.
func (p *Prompt) HandleBlink(msg tea.Msg) (cmd tea.Cmd) {
	// Key presses are handled by HandleKey above. The blink message type is
	// unexported so we send any other type to the input.
	if _, ok := msg.(tea.KeyMsg); !ok {
		p.input, cmd = p.input.Update(msg)
	}
	return
}

func (p *Prompt) View() string {
	if p.invalid != nil {
		return p.input.View() + Regular.Foreground(ErrorColor).Render(" ("+p.invalid.Error()+")")
	}
	return p.input.View()
}

func (p *Prompt) HelpBindings() []key.Binding {
	if p.msg.CancelAnyOther {
		return []key.Binding{
			p.msg.Key,
			key.NewBinding(key.WithHelp("n", "cancel")),
		}
	}
	return []key.Binding{p.msg.Key, p.msg.Cancel}
}
