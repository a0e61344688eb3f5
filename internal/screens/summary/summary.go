// Package summary shows the results of a finished practice run.
package summary

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/satprep/satprep/internal/navigator"
	"github.com/satprep/satprep/internal/router"
	"github.com/satprep/satprep/internal/screen"
	"github.com/satprep/satprep/internal/screens/flagged"
	"github.com/satprep/satprep/internal/ui/layout"
	"github.com/satprep/satprep/internal/ui/theme"
)

// maxMissed caps the missed-question lines.
const maxMissed = 8

// SummaryScreen displays the run summary.
type SummaryScreen struct {
	summary  navigator.Summary
	duration time.Duration
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen.
func New(summary navigator.Summary, duration time.Duration) *SummaryScreen {
	return &SummaryScreen{summary: summary, duration: duration}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Practice Summary"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Home"},
		{Key: "Esc", Description: "Home"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok && kmsg.String() == "enter" {
		return s, router.Pop
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary
	center := func(style lipgloss.Style, text string) string {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(text))
	}

	var b strings.Builder

	b.WriteString(center(theme.Title, sum.Subject.DisplayName()+" practice complete!"))
	b.WriteString("\n\n")

	mins := int(s.duration.Minutes())
	secs := int(s.duration.Seconds()) % 60
	b.WriteString(center(theme.Hint, fmt.Sprintf("Duration: %d:%02d", mins, secs)))
	b.WriteString("\n\n")

	statsLine := fmt.Sprintf("Answered: %d of %d        Correct: %d        Accuracy: %.0f%%",
		sum.Answered, sum.Total, sum.Correct, sum.Accuracy()*100)
	b.WriteString(center(theme.Body, statsLine))
	b.WriteString("\n")
	if sum.Flagged > 0 {
		b.WriteString(center(theme.Flag, fmt.Sprintf("⚑ %d flagged for review", sum.Flagged)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", min(width-8, 60)))

	if len(sum.Domains) > 0 {
		b.WriteString(center(theme.Hint, "Domains"))
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
		b.WriteString("\n\n")

		for _, d := range sum.Domains {
			style := theme.Body
			if d.Correct == d.Attempted {
				style = theme.Correct
			}
			line := fmt.Sprintf("%-36s %d/%d correct", d.Domain, d.Correct, d.Attempted)
			b.WriteString(center(style, line))
			b.WriteString("\n")
		}
	}

	if len(sum.Missed) > 0 {
		b.WriteString("\n")
		b.WriteString(center(theme.Hint, "Missed"))
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
		b.WriteString("\n\n")

		for i, e := range sum.Missed {
			if i == maxMissed {
				b.WriteString(center(theme.Hint, fmt.Sprintf("and %d more", len(sum.Missed)-maxMissed)))
				b.WriteString("\n")
				break
			}
			b.WriteString(center(theme.Incorrect, flagged.EntryLabel(e)))
			b.WriteString("\n")
		}
	}

	return b.String()
}
