package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// eventRepo implements EventRepo over the practice_events and answer_events
// tables.
type eventRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

func (r *eventRepo) AppendPracticeEvent(ctx context.Context, data PracticeEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Insert("practice_events").
		Columns("sequence", "timestamp", "session_id", "subject", "action",
			"questions_answered", "correct_answers", "duration_secs").
		Values(seqNum, time.Now().UTC(), data.SessionID, data.Subject, data.Action,
			data.QuestionsAnswered, data.CorrectAnswers, data.DurationSecs).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save practice event: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendAnswerEvent(ctx context.Context, data AnswerEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Insert("answer_events").
		Columns("sequence", "timestamp", "session_id", "subject", "question_id",
			"selected", "correct_answer", "correct").
		Values(seqNum, time.Now().UTC(), data.SessionID, data.Subject, data.QuestionID,
			data.Selected, data.CorrectAnswer, data.Correct).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save answer event: %w", err)
	}
	return nil
}

func (r *eventRepo) SubjectStats(ctx context.Context) ([]SubjectStats, error) {
	t := entsql.Table("answer_events")
	query, args := entsql.Dialect(dialect.SQLite).
		Select(
			t.C("subject"),
			entsql.As("COUNT(DISTINCT "+t.C("session_id")+")", "sessions"),
			entsql.As(entsql.Count("*"), "answered"),
			entsql.As("COALESCE("+entsql.Sum(t.C("correct"))+", 0)", "correct"),
		).
		From(t).
		GroupBy(t.C("subject")).
		OrderBy(t.C("subject")).
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query subject stats: %w", err)
	}
	defer rows.Close()

	var stats []SubjectStats
	for rows.Next() {
		var s SubjectStats
		if err := rows.Scan(&s.Subject, &s.Sessions, &s.Answered, &s.Correct); err != nil {
			return nil, fmt.Errorf("scan subject stats: %w", err)
		}
		stats = append(stats, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate subject stats: %w", err)
	}
	return stats, nil
}

func (r *eventRepo) QueryPracticeRuns(ctx context.Context, opts QueryOpts) ([]PracticeRecord, error) {
	t := entsql.Table("practice_events")
	sel := entsql.Dialect(dialect.SQLite).
		Select(t.C("session_id"), t.C("subject"), t.C("timestamp"),
			t.C("questions_answered"), t.C("correct_answers"), t.C("duration_secs")).
		From(t)

	where := entsql.EQ(t.C("action"), ActionEnd)
	if opts.Subject != "" {
		where = entsql.And(where, entsql.EQ(t.C("subject"), opts.Subject))
	}
	sel = sel.Where(where).OrderBy(entsql.Desc(t.C("sequence")))
	if opts.Limit > 0 {
		sel = sel.Limit(opts.Limit)
	}

	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query practice runs: %w", err)
	}
	defer rows.Close()

	var records []PracticeRecord
	for rows.Next() {
		var rec PracticeRecord
		if err := rows.Scan(&rec.SessionID, &rec.Subject, &rec.Timestamp,
			&rec.QuestionsAnswered, &rec.CorrectAnswers, &rec.DurationSecs); err != nil {
			return nil, fmt.Errorf("scan practice run: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate practice runs: %w", err)
	}
	return records, nil
}

func (r *eventRepo) QuerySessionAnswers(ctx context.Context, sessionID string) ([]AnswerRecord, error) {
	t := entsql.Table("answer_events")
	query, args := entsql.Dialect(dialect.SQLite).
		Select(t.C("sequence"), t.C("timestamp"), t.C("question_id"),
			t.C("selected"), t.C("correct_answer"), t.C("correct")).
		From(t).
		Where(entsql.EQ(t.C("session_id"), sessionID)).
		OrderBy(t.C("sequence")).
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query session answers: %w", err)
	}
	defer rows.Close()

	var records []AnswerRecord
	for rows.Next() {
		var rec AnswerRecord
		if err := rows.Scan(&rec.Sequence, &rec.Timestamp, &rec.QuestionID,
			&rec.Selected, &rec.CorrectAnswer, &rec.Correct); err != nil {
			return nil, fmt.Errorf("scan session answer: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate session answers: %w", err)
	}
	return records, nil
}
