// Package home implements the start screen where a subject is chosen.
package home

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/satprep/satprep/internal/questions"
	"github.com/satprep/satprep/internal/router"
	"github.com/satprep/satprep/internal/screen"
	"github.com/satprep/satprep/internal/screens/history"
	"github.com/satprep/satprep/internal/screens/practice"
	"github.com/satprep/satprep/internal/screens/themes"
	"github.com/satprep/satprep/internal/ui/components"
	"github.com/satprep/satprep/internal/ui/layout"
	"github.com/satprep/satprep/internal/ui/theme"
)

// Deps are the collaborators reachable from the home screen.
type Deps struct {
	Practice practice.Deps
	Themes   *theme.Prefs
	// Counts holds the number of questions per subject for the stats bar.
	Counts map[questions.Subject]int
}

// HomeScreen is the main home screen of the application.
type HomeScreen struct {
	deps       Deps
	menu       components.Menu
	menuLabels []string
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(deps Deps) *HomeScreen {
	menuLabels := []string{"MATHEMATICS", "ENGLISH", "HISTORY", "THEMES", "EXIT"}

	items := []components.MenuItem{
		{Label: menuLabels[0], Action: func() tea.Cmd {
			return router.Push(practice.New(questions.SubjectMath, deps.Practice))
		}},
		{Label: menuLabels[1], Action: func() tea.Cmd {
			return router.Push(practice.New(questions.SubjectEnglish, deps.Practice))
		}},
		{Label: menuLabels[2], Disabled: deps.Practice.Events == nil, Action: func() tea.Cmd {
			return router.Push(history.New(deps.Practice.Events))
		}},
		{Label: menuLabels[3], Disabled: deps.Themes == nil, Action: func() tea.Cmd {
			return router.Push(themes.New(deps.Themes))
		}},
		{Label: menuLabels[4], Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	return &HomeScreen{
		deps:       deps,
		menu:       components.NewMenu(items),
		menuLabels: menuLabels,
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	compact := layout.IsCompact(width, height)
	cw := contentWidth(width)

	flags := 0
	if h.deps.Practice.Flags != nil {
		flags = h.deps.Practice.Flags.Flags().Len()
	}

	sections := []string{
		renderTitle(cw, compact),
		renderStatsBar(
			h.deps.Counts[questions.SubjectMath],
			h.deps.Counts[questions.SubjectEnglish],
			flags, cw),
		renderMenu(h.menuLabels, h.menu.Selected, cw, compact),
	}

	return renderFrame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
