package practice

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satprep/satprep/internal/navigator"
	"github.com/satprep/satprep/internal/questions"
	"github.com/satprep/satprep/internal/router"
	"github.com/satprep/satprep/internal/screens/flagged"
	"github.com/satprep/satprep/internal/session"
	"github.com/satprep/satprep/internal/store"
)

type recordingRepo struct {
	practice []store.PracticeEventData
	answers  []store.AnswerEventData
}

func (r *recordingRepo) AppendPracticeEvent(_ context.Context, data store.PracticeEventData) error {
	r.practice = append(r.practice, data)
	return nil
}

func (r *recordingRepo) AppendAnswerEvent(_ context.Context, data store.AnswerEventData) error {
	r.answers = append(r.answers, data)
	return nil
}

func (r *recordingRepo) SubjectStats(context.Context) ([]store.SubjectStats, error) {
	return nil, nil
}

func (r *recordingRepo) QueryPracticeRuns(context.Context, store.QueryOpts) ([]store.PracticeRecord, error) {
	return nil, nil
}

func (r *recordingRepo) QuerySessionAnswers(context.Context, string) ([]store.AnswerRecord, error) {
	return nil, nil
}

type failingSource struct{}

func (failingSource) Get(context.Context, questions.Subject) ([]questions.Question, error) {
	return nil, errors.New("bank unreadable")
}

func question(id string, correct questions.Label) questions.Question {
	return questions.Question{
		ID:         id,
		Domain:     "Algebra",
		Difficulty: "Medium",
		Body: questions.Body{
			Question:      "What is $x$ in " + id + "?",
			Choices:       questions.Choices{A: "1", B: "2", C: "3", D: "4"},
			CorrectAnswer: correct,
			Explanation:   "Because.",
		},
	}
}

func testBank() *questions.Bank {
	return &questions.Bank{
		Math: []questions.Question{
			question("m-1", questions.LabelA),
			question("m-2", questions.LabelB),
			question("m-3", questions.LabelC),
		},
	}
}

var discard = log.New(io.Discard, "", 0)

func newScreen(t *testing.T, subject questions.Subject, src questions.Source) (*Screen, *recordingRepo) {
	t.Helper()
	flags := session.Open(context.Background(), session.NewAdapter(session.NewMemoryStorage(), discard))
	repo := &recordingRepo{}
	s := New(subject, Deps{
		Loader: questions.NewLoader(src),
		Flags:  flags,
		Events: repo,
		Logger: discard,
	})
	return s, repo
}

// loaded returns a screen whose questions have finished loading.
func loaded(t *testing.T, subject questions.Subject, src questions.Source) (*Screen, *recordingRepo) {
	t.Helper()
	s, repo := newScreen(t, subject, src)
	msg := s.Init()()
	_, cmd := s.Update(msg)
	deliver(s, cmd)
	return s, repo
}

// deliver runs cmd and feeds the answer log acknowledgement back.
func deliver(s *Screen, cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	if msg, ok := cmd().(eventRecordedMsg); ok {
		s.Update(msg)
	}
}

func key(k string) tea.KeyPressMsg {
	switch k {
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "up":
		return tea.KeyPressMsg{Code: tea.KeyUp}
	case "down":
		return tea.KeyPressMsg{Code: tea.KeyDown}
	case "left":
		return tea.KeyPressMsg{Code: tea.KeyLeft}
	case "right":
		return tea.KeyPressMsg{Code: tea.KeyRight}
	case "F":
		return tea.KeyPressMsg{Code: 'f', Text: "F", Mod: tea.ModShift}
	case "ctrl+l":
		return tea.KeyPressMsg{Code: 'l', Mod: tea.ModCtrl}
	}
	return tea.KeyPressMsg{Code: []rune(k)[0], Text: k}
}

func press(s *Screen, keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = s.Update(key(k))
	}
	return cmd
}

func TestLoadingThenActive(t *testing.T) {
	s, repo := newScreen(t, questions.SubjectMath, testBank())
	cmd := s.Init()

	assert.Equal(t, navigator.PhaseLoading, s.Engine().Phase())
	assert.Contains(t, s.View(100, 30), "Loading questions...")

	_, cmd = s.Update(cmd())
	deliver(s, cmd)

	assert.Equal(t, navigator.PhaseActive, s.Engine().Phase())
	assert.Contains(t, s.View(100, 30), "Question 1 of 3")
	require.Len(t, repo.practice, 1)
	assert.Equal(t, store.ActionStart, repo.practice[0].Action)
	assert.Equal(t, "math", repo.practice[0].Subject)
}

func TestKeysIgnoredWhileLoading(t *testing.T) {
	s, _ := newScreen(t, questions.SubjectMath, testBank())
	s.Init()
	press(s, "a", "enter", "n")
	assert.Equal(t, navigator.PhaseLoading, s.Engine().Phase())
}

func TestSelectAndSubmit(t *testing.T) {
	s, repo := loaded(t, questions.SubjectMath, testBank())

	press(s, "b")
	assert.Equal(t, questions.LabelB, s.Engine().State().Selected)

	deliver(s, press(s, "enter"))
	st := s.Engine().State()
	assert.True(t, st.Revealed)
	assert.False(t, s.Engine().IsCorrect())
	assert.Contains(t, s.View(100, 40), "Incorrect. The answer is A.")

	require.Len(t, repo.answers, 1)
	assert.Equal(t, store.AnswerEventData{
		SessionID:     repo.practice[0].SessionID,
		Subject:       "math",
		QuestionID:    "m-1",
		Selected:      "B",
		CorrectAnswer: "A",
		Correct:       false,
	}, repo.answers[0])

	press(s, "a")
	assert.Equal(t, questions.LabelB, s.Engine().State().Selected, "selection locked after reveal")
}

func TestSubmitWithoutSelection(t *testing.T) {
	s, repo := loaded(t, questions.SubjectMath, testBank())

	assert.Nil(t, press(s, "enter"))
	assert.Equal(t, "Please select an answer", s.Engine().State().ErrorMessage)
	assert.Contains(t, s.View(100, 40), "Please select an answer")
	assert.Empty(t, repo.answers)
}

func TestArrowSelection(t *testing.T) {
	s, _ := loaded(t, questions.SubjectMath, testBank())

	press(s, "down")
	assert.Equal(t, questions.LabelA, s.Engine().State().Selected)
	press(s, "down", "down", "down", "down")
	assert.Equal(t, questions.LabelD, s.Engine().State().Selected)
	press(s, "up")
	assert.Equal(t, questions.LabelC, s.Engine().State().Selected)
}

func TestNavigation(t *testing.T) {
	s, _ := loaded(t, questions.SubjectMath, testBank())

	press(s, "n", "right")
	assert.Equal(t, 2, s.Engine().State().Index)
	press(s, "n")
	assert.Equal(t, 2, s.Engine().State().Index, "no-op on last question")

	press(s, "p", "left", "left")
	assert.Equal(t, 0, s.Engine().State().Index)

	press(s, "a", "enter", "enter")
	assert.Equal(t, 1, s.Engine().State().Index, "enter after reveal advances")
	assert.False(t, s.Engine().State().Revealed)
}

func TestJumpBox(t *testing.T) {
	s, _ := loaded(t, questions.SubjectMath, testBank())

	press(s, "g", "9", "enter")
	assert.Equal(t, 0, s.Engine().State().Index)
	assert.Equal(t, "Please enter a valid question number between 1 and 3", s.Engine().State().ErrorMessage)
	assert.Equal(t, modeJump, s.mode)

	press(s, "3", "enter")
	assert.Equal(t, 2, s.Engine().State().Index)
	assert.Equal(t, modeBrowse, s.mode)

	press(s, "g")
	assert.Nil(t, s.HandleEscape())
	assert.Equal(t, modeBrowse, s.mode, "escape closes the box without leaving")
}

func TestFlagAndPanel(t *testing.T) {
	s, _ := loaded(t, questions.SubjectMath, testBank())

	press(s, "n", "f")
	assert.True(t, s.Engine().CurrentFlagged())
	assert.Equal(t, "⚑ 1 flagged", s.Status())
	assert.Contains(t, s.View(100, 40), "⚑ Flagged")

	cmd := press(s, "F")
	require.NotNil(t, cmd)
	push, ok := cmd().(router.PushScreenMsg)
	require.True(t, ok)
	assert.Equal(t, "Flagged Questions", push.Screen.Title())

	press(s, "p")
	s.Update(flagged.SelectedMsg{Index: 1})
	assert.Equal(t, 1, s.Engine().State().Index)

	press(s, "f")
	assert.Empty(t, s.Status())
}

func TestCalculatorMathOnly(t *testing.T) {
	s, _ := loaded(t, questions.SubjectMath, testBank())

	press(s, "=", "2", "+", "3", "enter")
	assert.Equal(t, modeCalc, s.mode)
	last, ok := s.calc.Last()
	require.True(t, ok)
	assert.Equal(t, "5", last.Result)
	assert.Contains(t, s.View(100, 40), "Calculator")

	press(s, "up")
	assert.Equal(t, "2+3", s.calcInput.Value(), "up recalls the last expression")

	press(s, "ctrl+l")
	_, ok = s.calc.Last()
	assert.False(t, ok, "history cleared")
	s.calcInput.Reset()

	press(s, "a")
	assert.Empty(t, s.Engine().State().Selected, "keys go to the calculator")

	s.HandleEscape()
	assert.Equal(t, modeBrowse, s.mode)

	bank := &questions.Bank{English: []questions.Question{question("e-1", questions.LabelA)}}
	e, _ := loaded(t, questions.SubjectEnglish, bank)
	press(e, "=")
	assert.Equal(t, modeBrowse, e.mode)
}

func TestEmptySubject(t *testing.T) {
	s, repo := loaded(t, questions.SubjectEnglish, testBank())

	assert.Equal(t, navigator.PhaseEmpty, s.Engine().Phase())
	assert.Contains(t, s.View(100, 30), "No english questions available.")
	assert.Empty(t, repo.practice)
}

func TestLoadErrorAndRetry(t *testing.T) {
	s, _ := loaded(t, questions.SubjectMath, failingSource{})

	assert.Contains(t, s.View(100, 30), "Could not load questions")
	assert.Equal(t, "r", s.KeyHints()[0].Key)

	cmd := press(s, "r")
	require.NotNil(t, cmd)
	assert.Equal(t, navigator.PhaseLoading, s.Engine().Phase())
}

func TestEscapeRecordsEnd(t *testing.T) {
	s, repo := loaded(t, questions.SubjectMath, testBank())
	deliver(s, press(s, "a", "enter"))

	cmd := s.HandleEscape()
	require.NotNil(t, cmd)
	batch, ok := cmd().(tea.BatchMsg)
	require.True(t, ok)

	var replaced bool
	for _, c := range batch {
		switch msg := c().(type) {
		case router.ReplaceScreenMsg:
			replaced = true
			assert.Equal(t, "Practice Summary", msg.Screen.Title())
		case eventRecordedMsg:
			assert.NoError(t, msg.Err)
		}
	}
	assert.True(t, replaced, "answered runs end on the summary")

	require.Len(t, repo.practice, 2)
	end := repo.practice[1]
	assert.Equal(t, store.ActionEnd, end.Action)
	assert.Equal(t, 1, end.QuestionsAnswered)
	assert.Equal(t, 1, end.CorrectAnswers)
}

func TestEscapeWithoutAnswersPops(t *testing.T) {
	s, repo := loaded(t, questions.SubjectMath, testBank())

	cmd := s.HandleEscape()
	require.NotNil(t, cmd)
	batch, ok := cmd().(tea.BatchMsg)
	require.True(t, ok)

	var popped bool
	for _, c := range batch {
		if _, ok := c().(router.PopScreenMsg); ok {
			popped = true
		}
	}
	assert.True(t, popped)
	require.Len(t, repo.practice, 2)
	assert.Zero(t, repo.practice[1].QuestionsAnswered)
}

func TestWorksWithoutAnswerLog(t *testing.T) {
	flags := session.Open(context.Background(), session.NewAdapter(session.NewMemoryStorage(), discard))
	s := New(questions.SubjectMath, Deps{Loader: questions.NewLoader(testBank()), Flags: flags})
	_, cmd := s.Update(s.Init()())
	assert.Nil(t, cmd)

	assert.Nil(t, press(s, "a", "enter"))
	assert.True(t, s.Engine().IsCorrect())
}
