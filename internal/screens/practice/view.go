package practice

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/satprep/satprep/internal/navigator"
	"github.com/satprep/satprep/internal/questions"
	"github.com/satprep/satprep/internal/richtext"
	"github.com/satprep/satprep/internal/ui/components"
	"github.com/satprep/satprep/internal/ui/theme"
)

// maxTextWidth keeps long passages readable on wide terminals.
const maxTextWidth = 100

func (s *Screen) View(width, height int) string {
	switch {
	case s.loadErr != nil:
		return renderCentered(width, height,
			lipgloss.NewStyle().Foreground(theme.Error).Bold(true).Render("Could not load questions")+"\n\n"+
				theme.Hint.Render(s.loadErr.Error())+"\n\n"+
				theme.Hint.Render("Press r to retry or Esc to go back"))
	case s.engine.Phase() != navigator.PhaseActive:
		return renderCentered(width, height, theme.Subtitle.Render(s.engine.Info()))
	}
	return s.renderQuestion(width)
}

func renderCentered(width, height int, content string) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (s *Screen) renderQuestion(width int) string {
	q, _ := s.engine.Current()
	st := s.engine.State()

	tw := width - 4
	if tw > maxTextWidth {
		tw = maxTextWidth
	}
	if tw < 20 {
		tw = 20
	}
	wrap := lipgloss.NewStyle().Width(tw)

	var b strings.Builder

	// Info line.
	left := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).
		Render(fmt.Sprintf("Question %d of %d", st.Index+1, st.Total))
	if s.engine.CurrentFlagged() {
		left += "  " + theme.Flag.Render("⚑ Flagged")
	}
	right := theme.Hint.Render(fmt.Sprintf("%s · %s", q.Difficulty, q.Domain))
	gap := tw - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 2 {
		gap = 2
	}
	b.WriteString(left + strings.Repeat(" ", gap) + right + "\n")
	b.WriteString(components.NewCountBar(st.Index+1, st.Total, tw).View() + "\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", tw)) + "\n\n")

	if q.Body.Paragraph != "" && s.subject == questions.SubjectEnglish {
		b.WriteString(wrap.Foreground(theme.TextDim).Render(richtext.Render(q.Body.Paragraph)) + "\n\n")
	}
	if q.Visuals.SVGContent != "" {
		b.WriteString(theme.Hint.Render("[This question includes a figure that cannot be shown in the terminal]") + "\n\n")
	}

	b.WriteString(wrap.Foreground(theme.Text).Bold(true).Render(richtext.Render(q.Body.Question)) + "\n\n")

	b.WriteString(components.ChoiceList{
		Choices:  q.Body.Choices,
		Selected: st.Selected,
		Revealed: st.Revealed,
		Correct:  q.Body.CorrectAnswer,
		Width:    tw,
	}.View())

	if st.Revealed {
		b.WriteString("\n" + s.renderFeedback(q, tw) + "\n")
	}

	if st.ErrorMessage != "" {
		b.WriteString("\n" + theme.Incorrect.Render(st.ErrorMessage) + "\n")
	}

	switch s.mode {
	case modeJump:
		b.WriteString("\n" + s.jump.View() + "\n")
	case modeCalc:
		b.WriteString("\n" + s.renderCalculator(tw) + "\n")
	default:
		b.WriteString("\n" + components.ButtonRow(
			components.NewButton("Enter", "Submit", st.Selected != "" && !st.Revealed),
			components.NewButton("←", "Prev", st.Index > 0),
			components.NewButton("→", "Next", st.Index < st.Total-1),
		) + "\n")
	}

	return lipgloss.NewStyle().Padding(0, 2).Render(b.String())
}

func (s *Screen) renderFeedback(q questions.Question, width int) string {
	var banner string
	if s.engine.IsCorrect() {
		banner = theme.Correct.Render("✓ Correct!")
	} else {
		banner = theme.Incorrect.Render(fmt.Sprintf("✗ Incorrect. The answer is %s.", q.Body.CorrectAnswer))
	}
	if q.Body.Explanation == "" {
		return banner
	}
	explanation := lipgloss.NewStyle().Width(width).Foreground(theme.TextDim).
		Render(richtext.Render(q.Body.Explanation))
	return banner + "\n" + explanation
}

func (s *Screen) renderCalculator(width int) string {
	var lines []string
	for _, e := range s.calc.History() {
		result := theme.Correct.Render(e.Result)
		if e.Err != nil {
			result = theme.Incorrect.Render(e.Err.Error())
		}
		lines = append(lines, theme.Body.Render(e.Expr)+theme.Hint.Render(" = ")+result)
	}
	lines = append(lines, s.calcInput.View())

	cardWidth := width / 2
	if cardWidth < 30 {
		cardWidth = 30
	}
	return theme.Card.Width(cardWidth).Render(
		theme.Title.Render("Calculator") + "\n" + strings.Join(lines, "\n"))
}
