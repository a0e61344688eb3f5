// Package flagged implements the panel listing the flagged questions of
// the current practice run.
package flagged

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/satprep/satprep/internal/navigator"
	"github.com/satprep/satprep/internal/router"
	"github.com/satprep/satprep/internal/screen"
	"github.com/satprep/satprep/internal/ui/components"
	"github.com/satprep/satprep/internal/ui/layout"
	"github.com/satprep/satprep/internal/ui/theme"
)

// SelectedMsg is delivered to the screen below the panel once it closes,
// asking it to move to the chosen question.
type SelectedMsg struct {
	Index int
}

// EmptyMessage is shown when no question of the loaded set is flagged.
const EmptyMessage = "No questions flagged."

// Screen lists the flagged questions of the loaded set with their difficulty
// and domain.
type Screen struct {
	entries []navigator.FlaggedEntry
	menu    components.Menu
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)

// New creates the panel for entries, which are already in question order.
func New(entries []navigator.FlaggedEntry) *Screen {
	items := make([]components.MenuItem, len(entries))
	for i, e := range entries {
		index := e.Index
		items[i] = components.MenuItem{
			Label: EntryLabel(e),
			Action: func() tea.Cmd {
				return router.PopWith(SelectedMsg{Index: index})
			},
		}
	}
	return &Screen{
		entries: entries,
		menu:    components.NewMenu(items),
	}
}

// EntryLabel formats one row of the panel.
func EntryLabel(e navigator.FlaggedEntry) string {
	return fmt.Sprintf("Question %d — %s — %s", e.Index+1, e.Question.Difficulty, e.Question.Domain)
}

func (s *Screen) Init() tea.Cmd { return nil }

func (s *Screen) Title() string { return "Flagged Questions" }

func (s *Screen) KeyHints() []layout.KeyHint {
	if len(s.entries) == 0 {
		return []layout.KeyHint{{Key: "Esc", Description: "Close"}}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Go to"},
		{Key: "Esc", Description: "Close"},
	}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if len(s.entries) == 0 {
		return s, nil
	}
	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *Screen) View(width, height int) string {
	var body string
	if len(s.entries) == 0 {
		body = lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render(EmptyMessage)
	} else {
		body = strings.TrimRight(s.menu.View(), "\n")
	}

	title := theme.Title.Render(fmt.Sprintf("Flagged Questions (%d)", len(s.entries)))
	card := theme.Card.Render(title + "\n\n" + body)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}
