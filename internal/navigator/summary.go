package navigator

import "github.com/satprep/satprep/internal/questions"

// DomainResult counts submitted answers within one question domain.
type DomainResult struct {
	Domain    string
	Attempted int
	Correct   int
}

// Summary describes a finished practice run.
type Summary struct {
	Subject  questions.Subject
	Total    int
	Answered int
	Correct  int
	Flagged  int

	// Domains lists per-domain results in order of first appearance.
	Domains []DomainResult

	// Missed holds questions whose latest submission was wrong.
	Missed []FlaggedEntry
}

// Accuracy returns the fraction of correct answers, 0 when none.
func (s Summary) Accuracy() float64 {
	if s.Answered == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Answered)
}

// Summary builds the run summary from the latest submission per question.
func (e *Engine) Summary() Summary {
	sum := Summary{
		Subject: e.set.Subject(),
		Total:   e.set.Len(),
		Flagged: len(e.FlaggedEntries()),
	}

	byDomain := make(map[string]int)
	for i, q := range e.set.All() {
		correct, ok := e.results[q.ID]
		if !ok {
			continue
		}
		sum.Answered++

		d, seen := byDomain[q.Domain]
		if !seen {
			d = len(sum.Domains)
			byDomain[q.Domain] = d
			sum.Domains = append(sum.Domains, DomainResult{Domain: q.Domain})
		}
		sum.Domains[d].Attempted++

		if correct {
			sum.Correct++
			sum.Domains[d].Correct++
		} else {
			sum.Missed = append(sum.Missed, FlaggedEntry{Index: i, Question: q})
		}
	}
	return sum
}
