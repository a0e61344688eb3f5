package questions

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Source supplies the ordered questions of a subject. An empty result is
// not an error; failures reading the underlying data are.
type Source interface {
	Get(ctx context.Context, subject Subject) ([]Question, error)
}

// Bank is an in-memory question bank keyed by subject. It implements Source.
type Bank struct {
	Math    []Question `json:"math"`
	English []Question `json:"english"`
}

var _ Source = (*Bank)(nil)

// Get returns a copy of the subject's questions.
func (b *Bank) Get(_ context.Context, subject Subject) ([]Question, error) {
	qs, err := b.subject(subject)
	if err != nil {
		return nil, err
	}
	out := make([]Question, len(qs))
	copy(out, qs)
	return out, nil
}

// Find looks a question up by id across all subjects.
func (b *Bank) Find(id string) (Question, Subject, bool) {
	for _, s := range AllSubjects() {
		qs, _ := b.subject(s)
		for _, q := range qs {
			if q.ID == id {
				return q, s, true
			}
		}
	}
	return Question{}, "", false
}

// Count returns the number of questions for a subject.
func (b *Bank) Count(subject Subject) int {
	qs, _ := b.subject(subject)
	return len(qs)
}

func (b *Bank) subject(s Subject) ([]Question, error) {
	switch s {
	case SubjectMath:
		return b.Math, nil
	case SubjectEnglish:
		return b.English, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownSubject, s)
}

func (b *Bank) set(s Subject, qs []Question) {
	switch s {
	case SubjectMath:
		b.Math = qs
	case SubjectEnglish:
		b.English = qs
	}
}

//go:embed bank/default.json
var defaultBank []byte

// DefaultBank returns the bank compiled into the binary.
func DefaultBank() (*Bank, error) {
	return ParseJSON(bytes.NewReader(defaultBank))
}

// ParseJSON decodes and validates a JSON bank of the form
// {"math": [...], "english": [...]}.
func ParseJSON(r io.Reader) (*Bank, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read bank: %w", err)
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse bank: %w", err)
	}
	if err := validateSchema(doc); err != nil {
		return nil, err
	}
	var b Bank
	if err := json.Unmarshal(raw, &b); err != nil {
		return nil, fmt.Errorf("decode bank: %w", err)
	}
	if err := validateInvariants(&b); err != nil {
		return nil, err
	}
	return &b, nil
}

// LoadFile reads a bank from a .json or .xlsx file.
func LoadFile(path string) (*Bank, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open bank: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return ParseJSON(f)
	case ".xlsx":
		return ReadWorkbook(f)
	default:
		return nil, fmt.Errorf("unsupported bank format %q (want .json or .xlsx)", filepath.Ext(path))
	}
}

// Open returns the bank at path, or the built-in bank when path is empty.
func Open(path string) (*Bank, error) {
	if path == "" {
		return DefaultBank()
	}
	return LoadFile(path)
}
