package prompt

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"github.com/raphi011/gw/internal/ui/styles"
)

// TextInputResult holds the result of a text input prompt.
type TextInputResult struct {
	Value     string
	Cancelled bool
}

// TextInputOptions configures TextInput.
type TextInputOptions struct {
	Placeholder string
	// Validate is called on enter. A non-nil error keeps the prompt open
	// and is shown below the input.
	Validate func(string) error
}

type textInputModel struct {
	textInput textinput.Model
	prompt    string
	validate  func(string) error
	err       error
	done      bool
	cancelled bool
}

func (m textInputModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m textInputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyPressMsg); ok {
		switch msg.String() {
		case "enter":
			if m.validate != nil {
				if err := m.validate(strings.TrimSpace(m.textInput.Value())); err != nil {
					m.err = err
					return m, nil
				}
			}
			m.done = true
			return m, tea.Quit
		case "ctrl+c", "esc":
			m.cancelled = true
			m.done = true
			return m, tea.Quit
		}
	}
	m.err = nil
	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m textInputModel) View() tea.View {
	return tea.NewView(m.render())
}

func (m textInputModel) render() string {
	if m.done {
		return ""
	}
	s := fmt.Sprintf("%s\n%s", m.prompt, m.textInput.View())
	if m.err != nil {
		s += "\n" + styles.WarningStyle.Render(m.err.Error())
	}
	return s
}

func newTextInputModel(prompt string, opts TextInputOptions) textInputModel {
	ti := textinput.New()
	ti.Placeholder = opts.Placeholder
	ti.Focus()
	ti.CharLimit = 156
	ti.SetWidth(50)

	return textInputModel{
		textInput: ti,
		prompt:    prompt,
		validate:  opts.Validate,
	}
}

// TextInput shows a text input prompt and returns the trimmed input.
func TextInput(prompt string, opts TextInputOptions) (TextInputResult, error) {
	p := tea.NewProgram(newTextInputModel(prompt, opts), programOptions()...)
	finalModel, err := p.Run()
	if err != nil {
		return TextInputResult{}, err
	}
	m := finalModel.(textInputModel)
	return TextInputResult{
		Value:     strings.TrimSpace(m.textInput.Value()),
		Cancelled: m.cancelled,
	}, nil
}

// NotEmpty is a Validate func rejecting blank input.
func NotEmpty(what string) func(string) error {
	return func(s string) error {
		if s == "" {
			return fmt.Errorf("%s must not be empty", what)
		}
		return nil
	}
}
