package questions

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// workbookColumns is the header row of a bank workbook. Each subject lives
// on its own sheet named after the subject key.
var workbookColumns = []string{
	"id", "domain", "difficulty", "question", "paragraph",
	"A", "B", "C", "D", "correct_answer", "explanation",
}

var requiredColumns = []string{"id", "question", "a", "b", "c", "d", "correct_answer"}

// ReadWorkbook reads a bank from an XLSX workbook. Sheets whose names are
// not a subject key are ignored.
func ReadWorkbook(r io.Reader) (*Bank, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	var b Bank
	found := false
	for _, sheet := range f.GetSheetList() {
		subject, err := ParseSubject(sheet)
		if err != nil {
			continue
		}
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
		}
		qs, err := parseSheet(sheet, rows)
		if err != nil {
			return nil, err
		}
		b.set(subject, qs)
		found = true
	}
	if !found {
		return nil, fmt.Errorf("workbook has no subject sheets (want %q or %q)", SubjectMath, SubjectEnglish)
	}

	if err := Validate(&b); err != nil {
		return nil, err
	}
	return &b, nil
}

func parseSheet(sheet string, rows [][]string) ([]Question, error) {
	if len(rows) == 0 {
		return nil, nil
	}

	cols := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, c := range requiredColumns {
		if _, ok := cols[c]; !ok {
			return nil, fmt.Errorf("sheet %q: missing column %q", sheet, c)
		}
	}

	var qs []Question
	for _, row := range rows[1:] {
		cell := func(name string) string {
			i, ok := cols[name]
			if !ok || i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}
		if isBlankRow(row) {
			continue
		}
		qs = append(qs, Question{
			ID:         cell("id"),
			Domain:     cell("domain"),
			Difficulty: cell("difficulty"),
			Body: Body{
				Question:  cell("question"),
				Paragraph: cell("paragraph"),
				Choices: Choices{
					A: cell("a"),
					B: cell("b"),
					C: cell("c"),
					D: cell("d"),
				},
				CorrectAnswer: Label(strings.ToUpper(cell("correct_answer"))),
				Explanation:   cell("explanation"),
			},
		})
	}
	return qs, nil
}

func isBlankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// WriteWorkbook writes b as an XLSX workbook readable by ReadWorkbook.
func WriteWorkbook(w io.Writer, b *Bank) error {
	f := excelize.NewFile()
	defer f.Close()

	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	for i, s := range AllSubjects() {
		sheet := string(s)
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
				return fmt.Errorf("rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(sheet); err != nil {
			return fmt.Errorf("add sheet %q: %w", sheet, err)
		}

		for col, h := range workbookColumns {
			cell, _ := excelize.CoordinatesToCellName(col+1, 1)
			_ = f.SetCellValue(sheet, cell, h)
		}
		_ = f.SetRowStyle(sheet, 1, 1, header)

		qs, _ := b.subject(s)
		for i, q := range qs {
			values := []string{
				q.ID,
				q.Domain,
				q.Difficulty,
				q.Body.Question,
				q.Body.Paragraph,
				q.Body.Choices.A,
				q.Body.Choices.B,
				q.Body.Choices.C,
				q.Body.Choices.D,
				string(q.Body.CorrectAnswer),
				q.Body.Explanation,
			}
			for col, v := range values {
				cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
				_ = f.SetCellValue(sheet, cell, v)
			}
		}
		_ = f.SetColWidth(sheet, "A", "K", 22)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
