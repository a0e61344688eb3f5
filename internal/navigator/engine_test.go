package navigator

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satprep/satprep/internal/questions"
	"github.com/satprep/satprep/internal/session"
)

func question(id string, correct questions.Label) questions.Question {
	return questions.Question{
		ID:         id,
		Domain:     "Algebra",
		Difficulty: "Easy",
		Body: questions.Body{
			Question:      id,
			Choices:       questions.Choices{A: "1", B: "2", C: "3", D: "4"},
			CorrectAnswer: correct,
		},
	}
}

func questionSet(n int) questions.QuestionSet {
	qs := make([]questions.Question, n)
	for i := range qs {
		qs[i] = question(fmt.Sprintf("q%d", i+1), questions.LabelA)
	}
	return questions.NewQuestionSet(questions.SubjectMath, qs)
}

func newEngine(t *testing.T) (*Engine, *session.MemoryStorage) {
	t.Helper()
	st := session.NewMemoryStorage()
	store := session.Open(context.Background(), session.NewAdapter(st, nil))
	return New(store), st
}

func TestInitialize(t *testing.T) {
	e, _ := newEngine(t)
	e.Initialize(questionSet(3))

	s := e.State()
	assert.Equal(t, PhaseActive, s.Phase)
	assert.Equal(t, 0, s.Index)
	assert.Equal(t, 3, s.Total)
	assert.False(t, s.Revealed)
	assert.Empty(t, s.Selected)
	assert.Empty(t, s.ErrorMessage)
}

func TestNextPreviousClearsAnswerState(t *testing.T) {
	for i := 0; i < 4; i++ {
		t.Run(fmt.Sprintf("index %d", i), func(t *testing.T) {
			e, _ := newEngine(t)
			e.Initialize(questionSet(5))
			require.NoError(t, e.GoTo(i))

			require.NoError(t, e.SelectAnswer(questions.LabelA))
			require.NoError(t, e.Submit())

			require.NoError(t, e.Next())
			require.NoError(t, e.Previous())

			s := e.State()
			assert.Equal(t, i, s.Index)
			assert.Empty(t, s.Selected)
			assert.False(t, s.Revealed)
		})
	}
}

func TestBoundariesAreNoOps(t *testing.T) {
	e, _ := newEngine(t)
	e.Initialize(questionSet(2))

	require.NoError(t, e.SelectAnswer(questions.LabelB))
	require.NoError(t, e.Previous())
	assert.Equal(t, 0, e.State().Index)
	assert.Equal(t, questions.LabelB, e.State().Selected, "no-op must not clear the selection")

	require.NoError(t, e.Next())
	require.NoError(t, e.Next())
	assert.Equal(t, 1, e.State().Index)
	assert.Empty(t, e.State().ErrorMessage)
}

func TestBoundaryNoOpsClearErrorMessage(t *testing.T) {
	e, _ := newEngine(t)
	e.Initialize(questionSet(2))

	require.ErrorIs(t, e.Submit(), ErrNoAnswerSelected)
	require.NotEmpty(t, e.State().ErrorMessage)
	require.NoError(t, e.Previous())
	assert.Equal(t, 0, e.State().Index)
	assert.Empty(t, e.State().ErrorMessage)

	require.NoError(t, e.Next())
	require.ErrorIs(t, e.Submit(), ErrNoAnswerSelected)
	require.NoError(t, e.Next())
	assert.Equal(t, 1, e.State().Index)
	assert.Empty(t, e.State().ErrorMessage)
}

func TestJumpToOutOfRange(t *testing.T) {
	tests := []string{"0", "6", "-1", "abc", "", "2.5", "3abc"}
	for _, in := range tests {
		t.Run(in, func(t *testing.T) {
			e, _ := newEngine(t)
			e.Initialize(questionSet(5))
			require.NoError(t, e.Next())

			err := e.JumpTo(in)
			require.ErrorIs(t, err, ErrInvalidIndex)
			assert.Equal(t, 1, e.State().Index)
			assert.NotEmpty(t, e.State().ErrorMessage)
		})
	}
}

func TestSubmitWithoutSelection(t *testing.T) {
	e, _ := newEngine(t)
	e.Initialize(questionSet(2))

	err := e.Submit()
	require.ErrorIs(t, err, ErrNoAnswerSelected)
	assert.False(t, e.State().Revealed)
	assert.Equal(t, "Please select an answer", e.State().ErrorMessage)

	// Retrying after selecting clears the message.
	require.NoError(t, e.SelectAnswer(questions.LabelC))
	assert.Empty(t, e.State().ErrorMessage)
	require.NoError(t, e.Submit())
	assert.True(t, e.State().Revealed)
}

func TestSubmitIsIdempotent(t *testing.T) {
	e, _ := newEngine(t)
	e.Initialize(questionSet(1))
	require.NoError(t, e.SelectAnswer(questions.LabelA))
	require.NoError(t, e.Submit())
	require.NoError(t, e.Submit())
	assert.True(t, e.State().Revealed)
	answered, correct := e.Tally()
	assert.Equal(t, 1, answered)
	assert.Equal(t, 1, correct)
}

func TestSelectionLockedAfterReveal(t *testing.T) {
	e, _ := newEngine(t)
	e.Initialize(questionSet(1))
	require.NoError(t, e.SelectAnswer(questions.LabelB))
	require.NoError(t, e.Submit())

	require.NoError(t, e.SelectAnswer(questions.LabelA))
	assert.Equal(t, questions.LabelB, e.State().Selected)
	assert.False(t, e.IsCorrect())
}

func TestSelectInvalidLabel(t *testing.T) {
	e, _ := newEngine(t)
	e.Initialize(questionSet(1))
	err := e.SelectAnswer(questions.Label("E"))
	require.ErrorIs(t, err, ErrInvalidChoice)
	assert.Empty(t, e.State().Selected)
}

func TestToggleFlagIsInvolution(t *testing.T) {
	e, _ := newEngine(t)
	e.Initialize(questionSet(3))
	ctx := context.Background()
	before := e.State()

	flagged, err := e.ToggleCurrentFlag(ctx)
	require.NoError(t, err)
	assert.True(t, flagged)
	assert.True(t, e.CurrentFlagged())

	flagged, err = e.ToggleCurrentFlag(ctx)
	require.NoError(t, err)
	assert.False(t, flagged)
	assert.False(t, e.CurrentFlagged())
	assert.Equal(t, before, e.State(), "flag toggles must not touch navigation state")
}

func TestToggleFlagPersists(t *testing.T) {
	e, st := newEngine(t)
	e.Initialize(questionSet(3))
	ctx := context.Background()

	_, err := e.ToggleFlag(ctx, "q2")
	require.NoError(t, err)

	raw, ok, err := st.Get(ctx, session.FlagsKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `["q2"]`, raw)
}

func TestIsCorrectRequiresReveal(t *testing.T) {
	e, _ := newEngine(t)
	e.Initialize(questionSet(1))
	require.NoError(t, e.SelectAnswer(questions.LabelA))
	assert.False(t, e.IsCorrect())
	require.NoError(t, e.Submit())
	assert.True(t, e.IsCorrect())
}

func TestLoadingRejectsOperations(t *testing.T) {
	e, _ := newEngine(t)
	assert.Equal(t, PhaseLoading, e.Phase())

	assert.ErrorIs(t, e.Next(), ErrNotLoaded)
	assert.ErrorIs(t, e.Previous(), ErrNotLoaded)
	assert.ErrorIs(t, e.Submit(), ErrNotLoaded)
	assert.ErrorIs(t, e.JumpTo("1"), ErrNotLoaded)
	assert.ErrorIs(t, e.SelectAnswer(questions.LabelA), ErrNotLoaded)
	_, err := e.ToggleFlag(context.Background(), "q1")
	assert.ErrorIs(t, err, ErrNotLoaded)
	assert.False(t, e.store.IsFlagged("q1"))
	_, err = e.ToggleCurrentFlag(context.Background())
	assert.ErrorIs(t, err, ErrNotLoaded)
	assert.Equal(t, PhaseLoading, e.Phase())
	assert.Equal(t, "Loading questions...", e.Info())

	e.Initialize(questionSet(2))
	assert.Equal(t, PhaseActive, e.Phase())
	assert.Empty(t, e.State().ErrorMessage)
}

func TestBeginLoadingDropsPreviousRun(t *testing.T) {
	e, _ := newEngine(t)
	e.Initialize(questionSet(3))
	require.NoError(t, e.Next())
	require.NoError(t, e.SelectAnswer(questions.LabelA))
	require.NoError(t, e.Submit())

	e.BeginLoading()
	assert.Equal(t, PhaseLoading, e.Phase())
	_, ok := e.Current()
	assert.False(t, ok)
	answered, _ := e.Tally()
	assert.Zero(t, answered)
}

// Scenario A: answer the first question correctly, then move on.
func TestScenarioCorrectAnswerThenNext(t *testing.T) {
	e, _ := newEngine(t)
	e.Initialize(questions.NewQuestionSet(questions.SubjectMath, []questions.Question{
		question("Q1", questions.LabelB),
		question("Q2", questions.LabelA),
	}))
	assert.Equal(t, 0, e.State().Index)

	require.NoError(t, e.SelectAnswer(questions.LabelB))
	require.NoError(t, e.Submit())
	assert.True(t, e.IsCorrect())

	require.NoError(t, e.Next())
	assert.Equal(t, 1, e.State().Index)
	assert.False(t, e.State().Revealed)
}

// Scenario B: an empty set makes every operation a harmless no-op.
func TestScenarioEmptySet(t *testing.T) {
	e, _ := newEngine(t)
	e.Initialize(questions.NewQuestionSet(questions.SubjectEnglish, nil))

	assert.Equal(t, PhaseEmpty, e.Phase())
	assert.NotPanics(t, func() {
		assert.ErrorIs(t, e.Next(), questions.ErrEmptySet)
		assert.ErrorIs(t, e.Previous(), questions.ErrEmptySet)
		assert.ErrorIs(t, e.Submit(), questions.ErrEmptySet)
		assert.ErrorIs(t, e.JumpTo("1"), questions.ErrEmptySet)
		_, err := e.ToggleCurrentFlag(context.Background())
		assert.ErrorIs(t, err, questions.ErrEmptySet)
		assert.False(t, e.IsCorrect())
		assert.Nil(t, e.FlaggedEntries())
	})
	assert.Empty(t, e.State().ErrorMessage)
	assert.Equal(t, "No english questions available.", e.Info())
}

// Scenario C: out-of-range jump keeps the position, valid jump moves.
func TestScenarioJump(t *testing.T) {
	e, _ := newEngine(t)
	e.Initialize(questionSet(5))

	require.ErrorIs(t, e.JumpTo("6"), ErrInvalidIndex)
	assert.Equal(t, 0, e.State().Index)
	assert.Equal(t, "Please enter a valid question number between 1 and 5", e.State().ErrorMessage)

	require.NoError(t, e.JumpTo("3"))
	assert.Equal(t, 2, e.State().Index)
	assert.Empty(t, e.State().ErrorMessage)
}

// Scenario D: a flag on a question missing from the reloaded set stays in
// storage but is left out of the flagged list.
func TestScenarioInertFlag(t *testing.T) {
	ctx := context.Background()
	st := session.NewMemoryStorage()

	first := New(session.Open(ctx, session.NewAdapter(st, nil)))
	first.Initialize(questions.NewQuestionSet(questions.SubjectMath, []questions.Question{
		question("Q1", questions.LabelA),
		question("Q2", questions.LabelB),
	}))
	_, err := first.ToggleCurrentFlag(ctx)
	require.NoError(t, err)

	// Reload with a set that no longer has Q1.
	store := session.Open(ctx, session.NewAdapter(st, nil))
	second := New(store)
	second.Initialize(questions.NewQuestionSet(questions.SubjectMath, []questions.Question{
		question("Q2", questions.LabelB),
		question("Q3", questions.LabelC),
	}))

	assert.True(t, store.IsFlagged("Q1"))
	assert.Empty(t, second.FlaggedEntries())

	_, err = second.ToggleFlag(ctx, "Q3")
	require.NoError(t, err)
	entries := second.FlaggedEntries()
	require.Len(t, entries, 1)
	assert.Equal(t, 1, entries[0].Index)
	assert.Equal(t, "Q3", entries[0].Question.ID)

	raw, _, _ := st.Get(ctx, session.FlagsKey)
	assert.JSONEq(t, `["Q1","Q3"]`, raw)
}

func TestGoToFromFlaggedList(t *testing.T) {
	e, _ := newEngine(t)
	e.Initialize(questionSet(4))
	require.NoError(t, e.SelectAnswer(questions.LabelA))

	require.NoError(t, e.GoTo(3))
	assert.Equal(t, 3, e.State().Index)
	assert.Empty(t, e.State().Selected)

	require.ErrorIs(t, e.GoTo(4), ErrInvalidIndex)
	assert.Equal(t, 3, e.State().Index)
}

func TestTallyTracksLatestSubmission(t *testing.T) {
	e, _ := newEngine(t)
	e.Initialize(questionSet(2))

	require.NoError(t, e.SelectAnswer(questions.LabelB))
	require.NoError(t, e.Submit())
	require.NoError(t, e.Next())
	require.NoError(t, e.Previous())
	require.NoError(t, e.SelectAnswer(questions.LabelA))
	require.NoError(t, e.Submit())

	answered, correct := e.Tally()
	assert.Equal(t, 1, answered)
	assert.Equal(t, 1, correct)
}
