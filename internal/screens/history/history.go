// Package history lists finished practice runs from the answer log.
package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/satprep/satprep/internal/questions"
	"github.com/satprep/satprep/internal/screen"
	"github.com/satprep/satprep/internal/store"
	"github.com/satprep/satprep/internal/ui/layout"
	"github.com/satprep/satprep/internal/ui/theme"
)

// runLimit is how many runs the screen loads.
const runLimit = 50

type historyLoadedMsg struct {
	Runs []store.PracticeRecord
	Err  error
}

type answersLoadedMsg struct {
	SessionID string
	Answers   []store.AnswerRecord
	Err       error
}

// HistoryScreen displays past practice runs. Enter expands a run into its
// submitted answers.
type HistoryScreen struct {
	eventRepo store.EventRepo
	runs      []store.PracticeRecord
	answers   map[string][]store.AnswerRecord
	selected  int
	expanded  map[int]bool
	loaded    bool
	errMsg    string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(eventRepo store.EventRepo) *HistoryScreen {
	return &HistoryScreen{
		eventRepo: eventRepo,
		answers:   make(map[string][]store.AnswerRecord),
		expanded:  make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo := s.eventRepo
	return func() tea.Msg {
		runs, err := repo.QueryPracticeRuns(context.Background(), store.QueryOpts{Limit: runLimit})
		return historyLoadedMsg{Runs: runs, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.runs = msg.Runs
		}
		s.loaded = true
		return s, nil

	case answersLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.answers[msg.SessionID] = msg.Answers
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.runs)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			if len(s.runs) == 0 {
				return s, nil
			}
			s.expanded[s.selected] = !s.expanded[s.selected]
			return s, s.loadAnswers(s.runs[s.selected].SessionID)
		}
	}
	return s, nil
}

func (s *HistoryScreen) loadAnswers(sessionID string) tea.Cmd {
	if _, ok := s.answers[sessionID]; ok {
		return nil
	}
	repo := s.eventRepo
	return func() tea.Msg {
		answers, err := repo.QuerySessionAnswers(context.Background(), sessionID)
		return answersLoadedMsg{SessionID: sessionID, Answers: answers, Err: err}
	}
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.runs) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No practice runs yet. Start practicing!")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, run := range s.runs {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.runLine(i, run)))
		b.WriteString("\n")

		if s.expanded[i] {
			for _, line := range s.answerLines(run.SessionID) {
				b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, line))
				b.WriteString("\n")
			}
		}
	}

	return b.String()
}

func (s *HistoryScreen) runLine(i int, run store.PracticeRecord) string {
	dateStr := run.Timestamp.Local().Format("Jan 02, 2006")
	durationStr := fmt.Sprintf("%d:%02d", run.DurationSecs/60, run.DurationSecs%60)

	var accuracy float64
	if run.QuestionsAnswered > 0 {
		accuracy = float64(run.CorrectAnswers) / float64(run.QuestionsAnswered) * 100
	}

	prefix := "  "
	if i == s.selected {
		prefix = "> "
	}

	line := fmt.Sprintf("%s%s  %-11s  %s  %d answered  %.0f%% accuracy",
		prefix, dateStr, questions.Subject(run.Subject).DisplayName(), durationStr,
		run.QuestionsAnswered, accuracy)

	style := lipgloss.NewStyle().Foreground(theme.Text)
	if i == s.selected {
		style = style.Foreground(theme.Primary).Bold(true)
	}
	return style.Render(line)
}

func (s *HistoryScreen) answerLines(sessionID string) []string {
	dim := lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true)

	answers, ok := s.answers[sessionID]
	if !ok {
		return []string{dim.Render("    Loading answers...")}
	}
	if len(answers) == 0 {
		return []string{dim.Render("    No answers this run")}
	}

	lines := make([]string, len(answers))
	for i, a := range answers {
		if a.Correct {
			lines[i] = theme.Correct.Render(fmt.Sprintf("    ✓ %-20s %s", a.QuestionID, a.Selected))
		} else {
			lines[i] = theme.Incorrect.Render(fmt.Sprintf("    ✗ %-20s %s (answer %s)", a.QuestionID, a.Selected, a.CorrectAnswer))
		}
	}
	return lines
}
