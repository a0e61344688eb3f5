package questions

import (
	"fmt"
	"strings"
)

// Subject is a top-level question category.
type Subject string

const (
	SubjectMath    Subject = "math"
	SubjectEnglish Subject = "english"
)

// AllSubjects returns all subjects in display order.
func AllSubjects() []Subject {
	return []Subject{SubjectMath, SubjectEnglish}
}

// ParseSubject maps a user-supplied key to a Subject.
func ParseSubject(s string) (Subject, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "math", "maths", "mathematics":
		return SubjectMath, nil
	case "english", "reading", "writing", "rw":
		return SubjectEnglish, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSubject, s)
}

// DisplayName returns a human-readable name for the subject.
func (s Subject) DisplayName() string {
	switch s {
	case SubjectMath:
		return "Mathematics"
	case SubjectEnglish:
		return "English"
	default:
		return string(s)
	}
}

// Label identifies one of the four answer choices.
type Label string

const (
	LabelA Label = "A"
	LabelB Label = "B"
	LabelC Label = "C"
	LabelD Label = "D"
)

// Labels returns the choice labels in display order.
func Labels() []Label {
	return []Label{LabelA, LabelB, LabelC, LabelD}
}

// Valid reports whether l is exactly one of A-D.
func (l Label) Valid() bool {
	switch l {
	case LabelA, LabelB, LabelC, LabelD:
		return true
	}
	return false
}

// ParseLabel accepts "a".."d" in either case.
func ParseLabel(s string) (Label, bool) {
	l := Label(strings.ToUpper(strings.TrimSpace(s)))
	if !l.Valid() {
		return "", false
	}
	return l, true
}

// Choices holds the text of the four labeled choices.
type Choices struct {
	A string `json:"A"`
	B string `json:"B"`
	C string `json:"C"`
	D string `json:"D"`
}

// Get returns the choice text for a label, or "" for an unknown label.
func (c Choices) Get(l Label) string {
	switch l {
	case LabelA:
		return c.A
	case LabelB:
		return c.B
	case LabelC:
		return c.C
	case LabelD:
		return c.D
	}
	return ""
}

// Body is the displayable content of a question.
type Body struct {
	Question      string  `json:"question"`
	Paragraph     string  `json:"paragraph,omitempty"`
	Choices       Choices `json:"choices"`
	CorrectAnswer Label   `json:"correct_answer"`
	Explanation   string  `json:"explanation"`
}

// Visual is an optional figure attached to a question.
type Visual struct {
	Type       string `json:"type,omitempty"`
	SVGContent string `json:"svg_content,omitempty"`
}

// Question is an immutable practice question owned by a Source.
type Question struct {
	ID         string `json:"id"`
	Domain     string `json:"domain"`
	Difficulty string `json:"difficulty"`
	Visuals    Visual `json:"visuals,omitzero"`
	Body       Body   `json:"question"`
}

// IsCorrect reports whether l is the question's correct choice.
func (q Question) IsCorrect(l Label) bool {
	return l != "" && l == q.Body.CorrectAnswer
}

// QuestionSet is an ordered, read-only sequence of questions for one subject.
// It is never mutated after construction.
type QuestionSet struct {
	subject Subject
	items   []Question
	index   map[string]int
}

// NewQuestionSet copies qs into a new set.
func NewQuestionSet(subject Subject, qs []Question) QuestionSet {
	items := make([]Question, len(qs))
	copy(items, qs)
	index := make(map[string]int, len(items))
	for i, q := range items {
		index[q.ID] = i
	}
	return QuestionSet{subject: subject, items: items, index: index}
}

// Subject returns the subject the set was loaded for.
func (s QuestionSet) Subject() Subject { return s.subject }

// Len returns the number of questions.
func (s QuestionSet) Len() int { return len(s.items) }

// At returns the question at index i. It panics if i is out of range.
func (s QuestionSet) At(i int) Question { return s.items[i] }

// IndexOf returns the position of the question with the given id.
func (s QuestionSet) IndexOf(id string) (int, bool) {
	i, ok := s.index[id]
	return i, ok
}

// All returns a copy of the questions in order.
func (s QuestionSet) All() []Question {
	out := make([]Question, len(s.items))
	copy(out, s.items)
	return out
}
