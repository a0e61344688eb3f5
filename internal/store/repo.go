package store

import (
	"context"
	"time"
)

// Practice event actions.
const (
	ActionStart = "start"
	ActionEnd   = "end"
)

// PracticeEventData marks the start or end of a practice run on one subject.
type PracticeEventData struct {
	SessionID         string
	Subject           string
	Action            string // ActionStart or ActionEnd
	QuestionsAnswered int
	CorrectAnswers    int
	DurationSecs      int
}

// AnswerEventData records one submitted answer.
type AnswerEventData struct {
	SessionID     string
	Subject       string
	QuestionID    string
	Selected      string
	CorrectAnswer string
	Correct       bool
}

// SubjectStats aggregates the answer log of one subject.
type SubjectStats struct {
	Subject  string
	Sessions int
	Answered int
	Correct  int
}

// Accuracy returns the fraction of correct answers, 0 when none.
func (s SubjectStats) Accuracy() float64 {
	if s.Answered == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Answered)
}

// QueryOpts narrows history queries.
type QueryOpts struct {
	Limit   int    // max results (0 = unlimited)
	Subject string // only this subject when set
}

// PracticeRecord is a finished practice run read back from the log.
type PracticeRecord struct {
	SessionID         string
	Subject           string
	Timestamp         time.Time
	QuestionsAnswered int
	CorrectAnswers    int
	DurationSecs      int
}

// AnswerRecord is a logged answer read back from the log.
type AnswerRecord struct {
	Sequence      int64
	Timestamp     time.Time
	QuestionID    string
	Selected      string
	CorrectAnswer string
	Correct       bool
}

// EventRepo provides append and aggregate access to the local answer log.
type EventRepo interface {
	// AppendPracticeEvent records a practice run boundary.
	AppendPracticeEvent(ctx context.Context, data PracticeEventData) error

	// AppendAnswerEvent records a submitted answer.
	AppendAnswerEvent(ctx context.Context, data AnswerEventData) error

	// SubjectStats returns per-subject totals ordered by subject.
	SubjectStats(ctx context.Context) ([]SubjectStats, error)

	// QueryPracticeRuns returns finished runs, newest first.
	QueryPracticeRuns(ctx context.Context, opts QueryOpts) ([]PracticeRecord, error)

	// QuerySessionAnswers returns the answers of one run in the order given.
	QuerySessionAnswers(ctx context.Context, sessionID string) ([]AnswerRecord, error)
}
