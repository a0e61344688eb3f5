package session

import (
	"context"

	"github.com/satprep/satprep/internal/questions"
)

// Store is the in-memory session state shared by the practice engine and the
// persistence adapter. Mutations stay in memory until Sync writes them back.
type Store struct {
	adapter *Adapter
	flags   *FlagSet
	dirty   bool
}

// Open loads the flag set through adapter and returns a Store around it.
func Open(ctx context.Context, adapter *Adapter) *Store {
	return &Store{
		adapter: adapter,
		flags:   adapter.LoadFlags(ctx),
	}
}

// IsFlagged reports whether the question id is flagged.
func (s *Store) IsFlagged(id string) bool {
	return s.flags.Has(id)
}

// Toggle flips the flag on id and returns whether it is now flagged.
func (s *Store) Toggle(id string) bool {
	if id == "" {
		return false
	}
	s.dirty = true
	return s.flags.Toggle(id)
}

// Clear removes every flag.
func (s *Store) Clear() {
	if s.flags.Len() == 0 {
		return
	}
	s.flags = NewFlagSet()
	s.dirty = true
}

// Flags returns a copy of the current flag set.
func (s *Store) Flags() *FlagSet {
	return s.flags.Clone()
}

// Sync writes pending changes to storage. It is a no-op when nothing
// changed since the last sync. The failure is already logged; callers that
// must report it, such as the CLI, check the returned error. Changes stay
// pending after a failed write.
func (s *Store) Sync(ctx context.Context) error {
	if !s.dirty {
		return nil
	}
	if err := s.adapter.save(ctx, s.flags); err != nil {
		return err
	}
	s.dirty = false
	return nil
}

// Visible returns the flagged ids present in set, in question order. Flags
// for questions outside set are kept in storage but are not navigable.
func (s *Store) Visible(set questions.QuestionSet) []string {
	var ids []string
	for _, q := range set.All() {
		if s.flags.Has(q.ID) {
			ids = append(ids, q.ID)
		}
	}
	return ids
}
