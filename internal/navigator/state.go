package navigator

import (
	"errors"

	"github.com/satprep/satprep/internal/questions"
)

// Phase is the coarse state of the engine.
type Phase int

const (
	PhaseLoading Phase = iota // Question set requested but not delivered yet
	PhaseEmpty                // Loaded set has no questions
	PhaseActive               // Positioned on a question
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseEmpty:
		return "empty"
	case PhaseActive:
		return "active"
	default:
		return "unknown"
	}
}

var (
	// ErrNotLoaded rejects operations issued before the set arrives.
	ErrNotLoaded = errors.New("questions are still loading")

	// ErrNoAnswerSelected is returned by Submit without a selection.
	ErrNoAnswerSelected = errors.New("no answer selected")

	// ErrInvalidIndex is returned for jump targets outside the set.
	ErrInvalidIndex = errors.New("question number out of range")

	// ErrInvalidChoice is returned for labels other than A-D.
	ErrInvalidChoice = errors.New("invalid choice")
)

// State is a read-only snapshot of the navigation state.
type State struct {
	Phase Phase

	// Index is the zero-based position; only meaningful in PhaseActive.
	Index int

	// Total is the number of questions in the loaded set.
	Total int

	// Selected is the chosen label, empty when nothing is selected.
	Selected questions.Label

	// Revealed is true once the current answer has been submitted.
	Revealed bool

	// ErrorMessage is the user-facing message of the last failed operation.
	ErrorMessage string
}

// FlaggedEntry is one navigable row of the flagged-questions list.
type FlaggedEntry struct {
	Index    int
	Question questions.Question
}
