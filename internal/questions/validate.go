package questions

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const bankSchemaURL = "schema://question-bank.json"

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

// ValidationError lists every problem found in a bank.
type ValidationError struct {
	Problems []string
	Err      error
}

func (e *ValidationError) Error() string {
	if len(e.Problems) == 0 && e.Err != nil {
		return fmt.Sprintf("invalid question bank: %v", e.Err)
	}
	return fmt.Sprintf("invalid question bank: %s", strings.Join(e.Problems, "; "))
}

func (e *ValidationError) Unwrap() error { return e.Err }

// Validate checks a bank against the schema and the choice invariants.
func Validate(b *Bank) error {
	raw, err := json.Marshal(b)
	if err != nil {
		return fmt.Errorf("marshal bank: %w", err)
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("parse bank: %w", err)
	}
	if err := validateSchema(doc); err != nil {
		return err
	}
	return validateInvariants(b)
}

// validateSchema validates a parsed JSON document against bankSchema.
func validateSchema(doc any) error {
	sch, err := getCompiledSchema()
	if err != nil {
		return fmt.Errorf("compile bank schema: %w", err)
	}
	if err := sch.Validate(doc); err != nil {
		return &ValidationError{Err: fmt.Errorf("schema validation failed: %w", err)}
	}
	return nil
}

func getCompiledSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		// The compiler wants a decoded JSON value, not Go maps of typed slices.
		defBytes, err := json.Marshal(bankSchema)
		if err != nil {
			compileErr = err
			return
		}
		var def any
		if err := json.Unmarshal(defBytes, &def); err != nil {
			compileErr = err
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(bankSchemaURL, def); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile(bankSchemaURL)
	})
	return compiledSchema, compileErr
}

// validateInvariants checks what the schema cannot express: ids are unique
// across the bank and every question has four non-empty choices with
// exactly one of them marked correct.
func validateInvariants(b *Bank) error {
	var problems []string
	seen := make(map[string]Subject)

	for _, s := range AllSubjects() {
		qs, _ := b.subject(s)
		for i, q := range qs {
			where := fmt.Sprintf("%s[%d]", s, i)
			if strings.TrimSpace(q.ID) == "" {
				problems = append(problems, where+": empty id")
				continue
			}
			where = fmt.Sprintf("%s[%d] %q", s, i, q.ID)
			if prev, dup := seen[q.ID]; dup {
				problems = append(problems, fmt.Sprintf("%s: duplicate id (first seen in %s)", where, prev))
			}
			seen[q.ID] = s

			for _, l := range Labels() {
				if strings.TrimSpace(q.Body.Choices.Get(l)) == "" {
					problems = append(problems, fmt.Sprintf("%s: choice %s is empty", where, l))
				}
			}
			if !q.Body.CorrectAnswer.Valid() {
				problems = append(problems, fmt.Sprintf("%s: correct_answer %q is not one of A-D", where, q.Body.CorrectAnswer))
			}
		}
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}
