package questions

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

var (
	// ErrEmptySet is returned when a subject has no questions.
	ErrEmptySet = errors.New("no questions available")

	// ErrUnknownSubject is returned for a subject key outside the enumeration.
	ErrUnknownSubject = errors.New("unknown subject")
)

// Loader resolves the QuestionSet of a subject from a Source. Results are
// cached per subject so repeated loads return the same ordered sequence.
type Loader struct {
	source Source

	mu    sync.Mutex
	cache map[Subject]QuestionSet
}

// NewLoader creates a Loader backed by src.
func NewLoader(src Source) *Loader {
	return &Loader{
		source: src,
		cache:  make(map[Subject]QuestionSet),
	}
}

// Load returns the questions for subject. It fails with ErrEmptySet when the
// source has none; source failures are wrapped and never match ErrEmptySet.
func (l *Loader) Load(ctx context.Context, subject Subject) (QuestionSet, error) {
	switch subject {
	case SubjectMath, SubjectEnglish:
	default:
		return QuestionSet{}, fmt.Errorf("%w: %q", ErrUnknownSubject, subject)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if set, ok := l.cache[subject]; ok {
		return set, nil
	}

	qs, err := l.source.Get(ctx, subject)
	if err != nil {
		return QuestionSet{}, fmt.Errorf("load %s questions: %w", subject, err)
	}
	if len(qs) == 0 {
		return QuestionSet{}, fmt.Errorf("%w for %s", ErrEmptySet, subject)
	}

	set := NewQuestionSet(subject, qs)
	l.cache[subject] = set
	return set, nil
}
