package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/satprep/satprep/internal/ui/theme"
)

// CountBar shows how far through a question set the user is.
type CountBar struct {
	Done    int
	Total   int
	Percent float64
	Width   int
}

// NewCountBar creates a bar for done out of total.
func NewCountBar(done, total, width int) CountBar {
	pct := 0.0
	if total > 0 {
		pct = float64(done) / float64(total)
	}
	return CountBar{Done: done, Total: total, Percent: pct, Width: width}
}

// View renders the "done/total" label followed by the bar itself.
func (b CountBar) View() string {
	label := lipgloss.NewStyle().
		Foreground(theme.Text).
		Render(fmt.Sprintf("%d/%d", b.Done, b.Total)) + "  "

	barWidth := max(b.Width-lipgloss.Width(label), 4)
	filled := min(max(int(float64(barWidth)*b.Percent), 0), barWidth)

	return label +
		theme.ProgressFilled.Render(strings.Repeat(" ", filled)) +
		theme.ProgressEmpty.Render(strings.Repeat(" ", barWidth-filled))
}
