package navigator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satprep/satprep/internal/questions"
)

func TestSummaryGroupsByDomain(t *testing.T) {
	qs := []questions.Question{
		question("q1", questions.LabelA),
		question("q2", questions.LabelB),
		question("q3", questions.LabelC),
		question("q4", questions.LabelD),
	}
	qs[1].Domain = "Geometry"
	qs[3].Domain = "Geometry"

	e, _ := newEngine(t)
	e.Initialize(questions.NewQuestionSet(questions.SubjectMath, qs))

	answer := func(l questions.Label) {
		require.NoError(t, e.SelectAnswer(l))
		require.NoError(t, e.Submit())
		require.NoError(t, e.Next())
	}
	answer(questions.LabelA) // q1 right
	answer(questions.LabelA) // q2 wrong
	_ = e.Next()             // q3 skipped
	require.NoError(t, e.JumpTo("4"))
	require.NoError(t, e.SelectAnswer(questions.LabelD))
	require.NoError(t, e.Submit())
	_, err := e.ToggleCurrentFlag(context.Background())
	require.NoError(t, err)

	sum := e.Summary()
	assert.Equal(t, questions.SubjectMath, sum.Subject)
	assert.Equal(t, 4, sum.Total)
	assert.Equal(t, 3, sum.Answered)
	assert.Equal(t, 2, sum.Correct)
	assert.Equal(t, 1, sum.Flagged)
	assert.InDelta(t, 2.0/3.0, sum.Accuracy(), 1e-9)

	assert.Equal(t, []DomainResult{
		{Domain: "Algebra", Attempted: 1, Correct: 1},
		{Domain: "Geometry", Attempted: 2, Correct: 1},
	}, sum.Domains)

	require.Len(t, sum.Missed, 1)
	assert.Equal(t, 1, sum.Missed[0].Index)
	assert.Equal(t, "q2", sum.Missed[0].Question.ID)
}

func TestSummaryOfUntouchedRun(t *testing.T) {
	e, _ := newEngine(t)
	e.Initialize(questionSet(2))

	sum := e.Summary()
	assert.Zero(t, sum.Answered)
	assert.Zero(t, sum.Accuracy())
	assert.Empty(t, sum.Domains)
}
