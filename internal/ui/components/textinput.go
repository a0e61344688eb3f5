package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/satprep/satprep/internal/ui/theme"
)

// TextInput wraps bubbles/textinput with the app styling. It backs the
// jump-to-question box and the calculator line.
type TextInput struct {
	Model  textinput.Model
	Prompt string
	// Accept filters typed runes; nil accepts everything.
	Accept func(r rune) bool
}

// Digits accepts 0-9 only.
func Digits(r rune) bool { return r >= '0' && r <= '9' }

// NewTextInput creates a new focused text input.
func NewTextInput(prompt, placeholder string, accept func(rune) bool, charLimit int) TextInput {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = placeholder
	if charLimit > 0 {
		ti.CharLimit = charLimit
	}
	ti.Focus()

	return TextInput{
		Model:  ti,
		Prompt: prompt,
		Accept: accept,
	}
}

// Init returns the initial command.
func (t TextInput) Init() tea.Cmd {
	return t.Model.Focus()
}

// Update handles messages. Typed text containing a rune Accept rejects is
// dropped whole.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok && t.Accept != nil && kmsg.Text != "" {
		for _, r := range kmsg.Text {
			if !t.Accept(r) {
				return t, nil
			}
		}
	}

	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

// View renders the prompt and the input.
func (t TextInput) View() string {
	prompt := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render(t.Prompt)
	return prompt + t.Model.View()
}

// Value returns the current input value.
func (t TextInput) Value() string {
	return t.Model.Value()
}

// SetValue replaces the input value and moves the cursor to its end.
func (t *TextInput) SetValue(v string) {
	t.Model.SetValue(v)
	t.Model.CursorEnd()
}

// Reset clears the input.
func (t *TextInput) Reset() {
	t.Model.Reset()
}
