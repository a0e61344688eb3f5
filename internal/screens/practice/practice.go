// Package practice implements the question navigation screen for one
// subject.
package practice

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"

	"github.com/satprep/satprep/internal/calculator"
	"github.com/satprep/satprep/internal/navigator"
	"github.com/satprep/satprep/internal/questions"
	"github.com/satprep/satprep/internal/router"
	"github.com/satprep/satprep/internal/screen"
	"github.com/satprep/satprep/internal/screens/flagged"
	"github.com/satprep/satprep/internal/screens/summary"
	"github.com/satprep/satprep/internal/session"
	"github.com/satprep/satprep/internal/store"
	"github.com/satprep/satprep/internal/ui/components"
	"github.com/satprep/satprep/internal/ui/layout"
)

// Deps are the collaborators of the practice screen.
type Deps struct {
	Loader *questions.Loader
	Flags  *session.Store
	Events store.EventRepo // optional
	Logger *log.Logger
}

type mode int

const (
	modeBrowse mode = iota
	modeJump
	modeCalc
)

// calcHistory is how many calculator lines stay visible.
const calcHistory = 4

// Screen walks through the question set of one subject.
type Screen struct {
	subject questions.Subject
	deps    Deps
	engine  *navigator.Engine

	sessionID string
	started   time.Time
	loadErr   error

	mode      mode
	jump      components.TextInput
	calc      *calculator.Calculator
	calcInput components.TextInput
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)
var _ screen.StatusProvider = (*Screen)(nil)
var _ screen.EscapeHandler = (*Screen)(nil)

// New creates a practice screen for subject.
func New(subject questions.Subject, deps Deps) *Screen {
	if deps.Logger == nil {
		deps.Logger = log.Default()
	}
	return &Screen{
		subject:   subject,
		deps:      deps,
		engine:    navigator.New(deps.Flags),
		sessionID: uuid.NewString(),
		calc:      calculator.New(calcHistory),
	}
}

func (s *Screen) Init() tea.Cmd {
	return s.load()
}

func (s *Screen) Title() string {
	return s.subject.DisplayName()
}

// Engine exposes the navigation state, mainly for tests.
func (s *Screen) Engine() *navigator.Engine { return s.engine }

func (s *Screen) Status() string {
	if s.engine.Phase() != navigator.PhaseActive {
		return ""
	}
	n := len(s.engine.FlaggedEntries())
	if n == 0 {
		return ""
	}
	return fmt.Sprintf("⚑ %d flagged", n)
}

func (s *Screen) KeyHints() []layout.KeyHint {
	switch {
	case s.loadErr != nil:
		return []layout.KeyHint{
			{Key: "r", Description: "Retry"},
			{Key: "Esc", Description: "Back"},
		}
	case s.engine.Phase() != navigator.PhaseActive:
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	case s.mode == modeJump:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Go"},
			{Key: "Esc", Description: "Cancel"},
		}
	case s.mode == modeCalc:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Evaluate"},
			{Key: "↑", Description: "Recall"},
			{Key: "Ctrl+L", Description: "Clear"},
			{Key: "Esc", Description: "Close"},
		}
	}

	hints := []layout.KeyHint{
		{Key: "a-d", Description: "Choose"},
		{Key: "Enter", Description: "Submit"},
		{Key: "←→", Description: "Prev/Next"},
		{Key: "g", Description: "Go to"},
		{Key: "f", Description: "Flag"},
		{Key: "F", Description: "Flagged"},
	}
	if s.subject == questions.SubjectMath {
		hints = append(hints, layout.KeyHint{Key: "=", Description: "Calc"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
}

// HandleEscape closes an open input box, or ends the run. A run with
// submitted answers is replaced by its summary; otherwise the screen pops.
func (s *Screen) HandleEscape() tea.Cmd {
	if s.mode != modeBrowse {
		s.mode = modeBrowse
		s.engine.ClearError()
		return nil
	}

	var leave tea.Cmd = router.Pop
	if sum := s.engine.Summary(); sum.Answered > 0 {
		leave = router.Replace(summary.New(sum, time.Since(s.started)))
	}
	return tea.Batch(s.recordEnd(), leave)
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case questionsLoadedMsg:
		return s.handleLoaded(msg)

	case eventRecordedMsg:
		if msg.Err != nil {
			s.deps.Logger.Printf("practice: answer log: %v", msg.Err)
		}
		return s, nil

	case flagged.SelectedMsg:
		_ = s.engine.GoTo(msg.Index)
		s.mode = modeBrowse
		return s, nil

	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *Screen) load() tea.Cmd {
	s.engine.BeginLoading()
	s.loadErr = nil
	loader, subject := s.deps.Loader, s.subject
	return func() tea.Msg {
		set, err := loader.Load(context.Background(), subject)
		return questionsLoadedMsg{Set: set, Err: err}
	}
}

func (s *Screen) handleLoaded(msg questionsLoadedMsg) (screen.Screen, tea.Cmd) {
	switch {
	case errors.Is(msg.Err, questions.ErrEmptySet):
		s.engine.Initialize(questions.NewQuestionSet(s.subject, nil))
		return s, nil
	case msg.Err != nil:
		s.loadErr = msg.Err
		s.deps.Logger.Printf("practice: %v", msg.Err)
		return s, nil
	}

	s.engine.Initialize(msg.Set)
	s.started = time.Now()
	return s, s.record(func(ctx context.Context, repo store.EventRepo) error {
		return repo.AppendPracticeEvent(ctx, store.PracticeEventData{
			SessionID: s.sessionID,
			Subject:   string(s.subject),
			Action:    store.ActionStart,
		})
	})
}

func (s *Screen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.loadErr != nil {
		if key == "r" {
			return s, s.load()
		}
		return s, nil
	}
	if s.engine.Phase() != navigator.PhaseActive {
		return s, nil
	}

	switch s.mode {
	case modeJump:
		return s.handleJumpKey(msg)
	case modeCalc:
		return s.handleCalcKey(msg)
	}

	if label, ok := choiceKey(key); ok {
		_ = s.engine.SelectAnswer(label)
		return s, nil
	}

	switch key {
	case "up", "down":
		s.moveSelection(key == "down")
	case "enter":
		if s.engine.State().Revealed {
			_ = s.engine.Next()
			return s, nil
		}
		return s, s.submit()
	case "n", "right":
		_ = s.engine.Next()
	case "p", "left":
		_ = s.engine.Previous()
	case "g":
		s.mode = modeJump
		s.engine.ClearError()
		s.jump = components.NewTextInput("Go to question: ", fmt.Sprintf("1-%d", s.engine.State().Total), components.Digits, 4)
		return s, s.jump.Init()
	case "f":
		_, _ = s.engine.ToggleCurrentFlag(context.Background())
	case "F":
		return s, router.Push(flagged.New(s.engine.FlaggedEntries()))
	case "=":
		if s.subject == questions.SubjectMath {
			s.mode = modeCalc
			s.calcInput = components.NewTextInput("= ", "e.g. (3+4)^2/7", nil, 64)
			return s, s.calcInput.Init()
		}
	}
	return s, nil
}

func (s *Screen) handleJumpKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	if msg.String() == "enter" {
		if err := s.engine.JumpTo(s.jump.Value()); err == nil {
			s.mode = modeBrowse
		}
		s.jump.Reset()
		return s, nil
	}
	s.engine.ClearError()
	var cmd tea.Cmd
	s.jump, cmd = s.jump.Update(msg)
	return s, cmd
}

func (s *Screen) handleCalcKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "enter":
		s.calc.Evaluate(s.calcInput.Value())
		s.calcInput.Reset()
		return s, nil
	case "up":
		if last, ok := s.calc.Last(); ok {
			s.calcInput.SetValue(last.Expr)
		}
		return s, nil
	case "ctrl+l":
		s.calc.Clear()
		return s, nil
	}
	var cmd tea.Cmd
	s.calcInput, cmd = s.calcInput.Update(msg)
	return s, cmd
}

// submit reveals the answer and logs it.
func (s *Screen) submit() tea.Cmd {
	if err := s.engine.Submit(); err != nil {
		return nil
	}
	q, _ := s.engine.Current()
	st := s.engine.State()
	data := store.AnswerEventData{
		SessionID:     s.sessionID,
		Subject:       string(s.subject),
		QuestionID:    q.ID,
		Selected:      string(st.Selected),
		CorrectAnswer: string(q.Body.CorrectAnswer),
		Correct:       s.engine.IsCorrect(),
	}
	return s.record(func(ctx context.Context, repo store.EventRepo) error {
		return repo.AppendAnswerEvent(ctx, data)
	})
}

// recordEnd logs the end of the run if it ever started.
func (s *Screen) recordEnd() tea.Cmd {
	if s.started.IsZero() {
		return nil
	}
	answered, correct := s.engine.Tally()
	data := store.PracticeEventData{
		SessionID:         s.sessionID,
		Subject:           string(s.subject),
		Action:            store.ActionEnd,
		QuestionsAnswered: answered,
		CorrectAnswers:    correct,
		DurationSecs:      int(time.Since(s.started).Seconds()),
	}
	return s.record(func(ctx context.Context, repo store.EventRepo) error {
		return repo.AppendPracticeEvent(ctx, data)
	})
}

func (s *Screen) record(write func(context.Context, store.EventRepo) error) tea.Cmd {
	repo := s.deps.Events
	if repo == nil {
		return nil
	}
	return func() tea.Msg {
		return eventRecordedMsg{Err: write(context.Background(), repo)}
	}
}

// moveSelection steps the selected choice with the arrow keys.
func (s *Screen) moveSelection(down bool) {
	labels := questions.Labels()
	cur := -1
	for i, l := range labels {
		if l == s.engine.State().Selected {
			cur = i
		}
	}
	switch {
	case cur < 0:
		cur = 0
	case down && cur < len(labels)-1:
		cur++
	case !down && cur > 0:
		cur--
	}
	_ = s.engine.SelectAnswer(labels[cur])
}

func choiceKey(key string) (questions.Label, bool) {
	switch key {
	case "a", "1":
		return questions.LabelA, true
	case "b", "2":
		return questions.LabelB, true
	case "c", "3":
		return questions.LabelC, true
	case "d", "4":
		return questions.LabelD, true
	}
	return "", false
}
