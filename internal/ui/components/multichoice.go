package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/satprep/satprep/internal/questions"
	"github.com/satprep/satprep/internal/richtext"
	"github.com/satprep/satprep/internal/ui/theme"
)

// ChoiceList renders the four lettered answer choices of a question. It
// holds no state of its own; the caller passes the current selection and
// reveal status on every render.
type ChoiceList struct {
	Choices  questions.Choices
	Selected questions.Label
	Revealed bool
	Correct  questions.Label
	Width    int
}

// View renders one line per choice. Before reveal the selection is
// highlighted; after reveal the correct choice is green and a wrong
// selection red.
func (c ChoiceList) View() string {
	var b strings.Builder
	for _, label := range questions.Labels() {
		prefix := "  "
		if label == c.Selected {
			prefix = "▸ "
		}

		text := richtext.Render(c.Choices.Get(label))
		line := prefix + string(label) + ")  " + text
		style := c.style(label)
		if c.Width > 0 {
			style = style.Width(c.Width)
		}
		b.WriteString(style.Render(line) + "\n")
	}
	return b.String()
}

func (c ChoiceList) style(label questions.Label) lipgloss.Style {
	switch {
	case c.Revealed && label == c.Correct:
		return lipgloss.NewStyle().Foreground(theme.Success).Bold(true)
	case c.Revealed && label == c.Selected:
		return lipgloss.NewStyle().Foreground(theme.Error).Bold(true)
	case c.Revealed:
		return lipgloss.NewStyle().Foreground(theme.TextDim)
	case label == c.Selected:
		return lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	default:
		return lipgloss.NewStyle().Foreground(theme.Text)
	}
}
