package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// eventSequence is the counter shared by practice and answer events so the
// two tables can be ordered against each other.
const eventSequence = "events"

// sequenceCounter hands out numbers from one row of the sequences table.
// The mutex serializes within the process; UPDATE ... RETURNING makes the
// increment atomic in the database.
type sequenceCounter struct {
	mu   sync.Mutex
	db   *sql.DB
	name string
}

// newSequenceCounter seeds the named counter at 1 unless it already exists.
func newSequenceCounter(db *sql.DB, name string) (*sequenceCounter, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Insert("sequences").
		Columns("name", "next_val").
		Values(name, 1).
		OnConflict(entsql.ConflictColumns("name"), entsql.DoNothing()).
		Query()
	if _, err := db.Exec(query, args...); err != nil {
		return nil, fmt.Errorf("seed sequence %q: %w", name, err)
	}
	return &sequenceCounter{db: db, name: name}, nil
}

// Next returns the current value and advances the counter.
func (sc *sequenceCounter) Next(ctx context.Context) (int64, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	query, args := entsql.Dialect(dialect.SQLite).
		Update("sequences").
		Add("next_val", 1).
		Where(entsql.EQ("name", sc.name)).
		Returning("next_val").
		Query()

	var next int64
	if err := sc.db.QueryRowContext(ctx, query, args...).Scan(&next); err != nil {
		return 0, fmt.Errorf("next sequence %q: %w", sc.name, err)
	}
	return next - 1, nil
}
