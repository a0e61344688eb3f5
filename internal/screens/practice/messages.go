package practice

import "github.com/satprep/satprep/internal/questions"

// questionsLoadedMsg carries the result of loading the subject's set.
type questionsLoadedMsg struct {
	Set questions.QuestionSet
	Err error
}

// eventRecordedMsg reports the outcome of writing to the answer log.
type eventRecordedMsg struct {
	Err error
}
