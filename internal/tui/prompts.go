package tui

import (
	"errors"
	"fmt"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// ErrCanceled is returned when the user aborts a prompt
var ErrCanceled = errors.New("canceled")

// ErrInteractiveDisabled is returned when interactive prompts are disabled via GITPILOT_NO_INTERACTIVE
var ErrInteractiveDisabled = errors.New("interactive prompts are disabled (GITPILOT_NO_INTERACTIVE is set)")

// Prompter asks the user questions
type Prompter interface {
	// Select returns the index of the chosen option
	Select(title string, options []string, defaultIndex int) (int, error)
	// Confirm asks a yes/no question
	Confirm(prompt string, defaultValue bool) (bool, error)
	// Input asks for a line of text, pre-filled with defaultValue
	Input(prompt, defaultValue string) (string, error)
}

// IsTTY returns true if we can use a TTY for interactive prompts
func IsTTY() bool {
	return (isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())) &&
		(isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()))
}

// checkInteractiveAllowed returns an error if interactive mode is disabled for testing
func checkInteractiveAllowed() error {
	if os.Getenv("GITPILOT_NO_INTERACTIVE") != "" {
		return ErrInteractiveDisabled
	}
	return nil
}

// TerminalPrompter prompts on the controlling terminal: survey for
// choices, bubbletea for free text.
type TerminalPrompter struct{}

// Select prompts the user to pick one of options
func (TerminalPrompter) Select(title string, options []string, defaultIndex int) (int, error) {
	if err := checkInteractiveAllowed(); err != nil {
		return 0, err
	}
	if len(options) == 0 {
		return 0, fmt.Errorf("no options provided")
	}
	if defaultIndex < 0 || defaultIndex >= len(options) {
		defaultIndex = 0
	}

	var selected int
	prompt := &survey.Select{
		Message: title,
		Options: options,
		Default: options[defaultIndex],
	}
	if err := survey.AskOne(prompt, &selected); err != nil {
		return 0, surveyError(err)
	}
	return selected, nil
}

// Confirm prompts the user for yes/no confirmation
func (TerminalPrompter) Confirm(prompt string, defaultValue bool) (bool, error) {
	if err := checkInteractiveAllowed(); err != nil {
		return false, err
	}

	answer := defaultValue
	if err := survey.AskOne(&survey.Confirm{Message: prompt, Default: defaultValue}, &answer); err != nil {
		return false, surveyError(err)
	}
	return answer, nil
}

// Input prompts the user for text input
func (TerminalPrompter) Input(prompt, defaultValue string) (string, error) {
	if err := checkInteractiveAllowed(); err != nil {
		return "", err
	}

	ti := textinput.New()
	ti.SetValue(defaultValue)
	ti.Focus()
	ti.CharLimit = 500
	ti.Width = 80

	p := tea.NewProgram(textInputModel{textInput: ti, prompt: prompt}, tea.WithInput(os.Stdin), tea.WithOutput(os.Stdout))
	model, err := p.Run()
	if err != nil {
		return "", err
	}

	finalModel, ok := model.(textInputModel)
	if !ok {
		return "", fmt.Errorf("unexpected model type")
	}
	if finalModel.err != nil {
		return "", finalModel.err
	}
	return finalModel.textInput.Value(), nil
}

func surveyError(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return ErrCanceled
	}
	return err
}

// textInputModel is a simple text input prompt model
type textInputModel struct {
	textInput textinput.Model
	prompt    string
	done      bool
	err       error
}

func (m textInputModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m textInputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.Type {
		case tea.KeyEnter:
			m.done = true
			return m, tea.Quit
		case tea.KeyCtrlC, tea.KeyEsc:
			m.err = ErrCanceled
			m.done = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m textInputModel) View() string {
	if m.done {
		return ""
	}
	return lipgloss.NewStyle().Margin(1, 0).Render(
		fmt.Sprintf("%s\n%s\n\n%s", m.prompt, m.textInput.View(), ColorDim("(Press Enter to submit, Ctrl+C to cancel)")))
}
