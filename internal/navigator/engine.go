package navigator

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/satprep/satprep/internal/questions"
	"github.com/satprep/satprep/internal/session"
)

// Engine owns the position, answer selection and reveal state of one
// subject's practice run. Flags live in the session.Store it is given and
// outlive the engine.
//
// Engine is not safe for concurrent use; every operation runs to completion
// in response to a single user action.
type Engine struct {
	store *session.Store

	set      questions.QuestionSet
	phase    Phase
	index    int
	selected questions.Label
	revealed bool
	errMsg   string

	// results holds the last submitted outcome per question id.
	results map[string]bool
}

// New creates an engine in PhaseLoading.
func New(store *session.Store) *Engine {
	return &Engine{
		store:   store,
		phase:   PhaseLoading,
		results: make(map[string]bool),
	}
}

// BeginLoading discards the current set and waits for a new one.
func (e *Engine) BeginLoading() {
	e.set = questions.QuestionSet{}
	e.phase = PhaseLoading
	e.reset(0)
	e.results = make(map[string]bool)
}

// Initialize installs a freshly loaded set, positioning on the first
// question or entering PhaseEmpty when there are none.
func (e *Engine) Initialize(set questions.QuestionSet) {
	e.set = set
	e.results = make(map[string]bool)
	e.reset(0)
	if set.Len() == 0 {
		e.phase = PhaseEmpty
		return
	}
	e.phase = PhaseActive
}

// SelectAnswer records label as the current selection. Once the answer is
// revealed the selection is locked and further calls are no-ops.
func (e *Engine) SelectAnswer(label questions.Label) error {
	if err := e.requireActive(); err != nil {
		return err
	}
	if e.revealed {
		return nil
	}
	if !label.Valid() {
		e.errMsg = fmt.Sprintf("%q is not a valid choice", label)
		return fmt.Errorf("%w: %q", ErrInvalidChoice, label)
	}
	e.selected = label
	e.errMsg = ""
	return nil
}

// Submit reveals the current answer. It is a no-op once revealed.
func (e *Engine) Submit() error {
	if err := e.requireActive(); err != nil {
		return err
	}
	if e.revealed {
		return nil
	}
	if e.selected == "" {
		e.errMsg = "Please select an answer"
		return ErrNoAnswerSelected
	}
	e.revealed = true
	e.errMsg = ""
	q := e.set.At(e.index)
	e.results[q.ID] = q.IsCorrect(e.selected)
	return nil
}

// Next moves to the following question. On the last one only the error
// message is cleared.
func (e *Engine) Next() error {
	if err := e.requireActive(); err != nil {
		return err
	}
	if e.index >= e.set.Len()-1 {
		e.errMsg = ""
		return nil
	}
	e.reset(e.index + 1)
	return nil
}

// Previous moves to the preceding question. On the first one only the
// error message is cleared.
func (e *Engine) Previous() error {
	if err := e.requireActive(); err != nil {
		return err
	}
	if e.index == 0 {
		e.errMsg = ""
		return nil
	}
	e.reset(e.index - 1)
	return nil
}

// JumpTo moves to a 1-based question number given as text. On failure the
// position is unchanged and ErrorMessage explains the valid range.
func (e *Engine) JumpTo(input string) error {
	if err := e.requireActive(); err != nil {
		return err
	}
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil || n < 1 || n > e.set.Len() {
		e.errMsg = fmt.Sprintf("Please enter a valid question number between 1 and %d", e.set.Len())
		return fmt.Errorf("%w: %q", ErrInvalidIndex, input)
	}
	e.reset(n - 1)
	return nil
}

// GoTo moves to a zero-based index, as chosen from the flagged list.
func (e *Engine) GoTo(index int) error {
	if err := e.requireActive(); err != nil {
		return err
	}
	if index < 0 || index >= e.set.Len() {
		e.errMsg = fmt.Sprintf("Please enter a valid question number between 1 and %d", e.set.Len())
		return fmt.Errorf("%w: %d", ErrInvalidIndex, index+1)
	}
	e.reset(index)
	return nil
}

// ToggleFlag flips the flag on a question id and writes the flag set back
// to storage. Navigation state is untouched. It is rejected while loading,
// and allowed on an empty set since flags are keyed by id alone.
func (e *Engine) ToggleFlag(ctx context.Context, id string) (bool, error) {
	if e.phase == PhaseLoading {
		e.errMsg = "Questions are still loading"
		return false, ErrNotLoaded
	}
	flagged := e.store.Toggle(id)
	// A failed write is logged by the adapter and retried on the next sync.
	_ = e.store.Sync(ctx)
	return flagged, nil
}

// ToggleCurrentFlag flips the flag on the current question.
func (e *Engine) ToggleCurrentFlag(ctx context.Context) (bool, error) {
	if err := e.requireActive(); err != nil {
		return false, err
	}
	return e.ToggleFlag(ctx, e.set.At(e.index).ID)
}

// IsCorrect reports whether the revealed selection matches the current
// question's answer. It is false while nothing is revealed.
func (e *Engine) IsCorrect() bool {
	if e.phase != PhaseActive || !e.revealed {
		return false
	}
	return e.set.At(e.index).IsCorrect(e.selected)
}

// Current returns the question at the current position.
func (e *Engine) Current() (questions.Question, bool) {
	if e.phase != PhaseActive {
		return questions.Question{}, false
	}
	return e.set.At(e.index), true
}

// CurrentFlagged reports whether the current question is flagged.
func (e *Engine) CurrentFlagged() bool {
	q, ok := e.Current()
	return ok && e.store.IsFlagged(q.ID)
}

// FlaggedEntries lists flagged questions of the loaded set in question
// order. Flags for other subjects are left out but stay stored.
func (e *Engine) FlaggedEntries() []FlaggedEntry {
	if e.phase != PhaseActive {
		return nil
	}
	ids := e.store.Visible(e.set)
	entries := make([]FlaggedEntry, 0, len(ids))
	for _, id := range ids {
		i, _ := e.set.IndexOf(id)
		entries = append(entries, FlaggedEntry{Index: i, Question: e.set.At(i)})
	}
	return entries
}

// Tally returns how many questions were submitted this run and how many of
// those were answered correctly on their latest submission.
func (e *Engine) Tally() (answered, correct int) {
	for _, ok := range e.results {
		answered++
		if ok {
			correct++
		}
	}
	return answered, correct
}

// State returns a snapshot of the navigation state.
func (e *Engine) State() State {
	return State{
		Phase:        e.phase,
		Index:        e.index,
		Total:        e.set.Len(),
		Selected:     e.selected,
		Revealed:     e.revealed,
		ErrorMessage: e.errMsg,
	}
}

// Phase returns the current phase.
func (e *Engine) Phase() Phase { return e.phase }

// Subject returns the subject of the loaded set.
func (e *Engine) Subject() questions.Subject { return e.set.Subject() }

// Info returns an informational message for non-active phases.
func (e *Engine) Info() string {
	switch e.phase {
	case PhaseLoading:
		return "Loading questions..."
	case PhaseEmpty:
		if s := e.set.Subject(); s != "" {
			return fmt.Sprintf("No %s questions available.", s)
		}
		return "No questions available."
	}
	return ""
}

// ClearError drops the current error message, e.g. when the user edits input.
func (e *Engine) ClearError() { e.errMsg = "" }

func (e *Engine) requireActive() error {
	switch e.phase {
	case PhaseLoading:
		e.errMsg = "Questions are still loading"
		return ErrNotLoaded
	case PhaseEmpty:
		return questions.ErrEmptySet
	}
	return nil
}

// reset positions on index and clears the per-question state.
func (e *Engine) reset(index int) {
	e.index = index
	e.selected = ""
	e.revealed = false
	e.errMsg = ""
}
