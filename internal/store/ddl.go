package store

import (
	"fmt"
	"strings"

	"entgo.io/ent"
	"entgo.io/ent/schema/field"

	entschema "github.com/satprep/satprep/ent/schema"
)

// table pairs a SQL table name with the ent schema describing its columns.
// Rows of durable tables survive Store.Reset.
type table struct {
	name    string
	schema  ent.Interface
	durable bool
}

var tables = []table{
	{name: "sequences", schema: entschema.Sequence{}, durable: true},
	{name: "preferences", schema: entschema.Preference{}},
	{name: "practice_events", schema: entschema.PracticeEvent{}},
	{name: "answer_events", schema: entschema.AnswerEvent{}},
}

// createStatements renders CREATE TABLE and CREATE INDEX statements for t
// from the field and index descriptors of its ent schema, mixins first.
func createStatements(t table) ([]string, error) {
	var fields []ent.Field
	var indexes []ent.Index
	for _, m := range t.schema.Mixin() {
		fields = append(fields, m.Fields()...)
		indexes = append(indexes, m.Indexes()...)
	}
	fields = append(fields, t.schema.Fields()...)
	indexes = append(indexes, t.schema.Indexes()...)

	cols := []string{"id INTEGER PRIMARY KEY AUTOINCREMENT"}
	for _, f := range fields {
		col, err := columnDef(f.Descriptor())
		if err != nil {
			return nil, fmt.Errorf("table %s: %w", t.name, err)
		}
		cols = append(cols, col)
	}

	stmts := []string{fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n\t%s\n)", t.name, strings.Join(cols, ",\n\t"))}
	for _, idx := range indexes {
		d := idx.Descriptor()
		name := t.name + "_" + strings.Join(d.Fields, "_")
		unique := ""
		if d.Unique {
			unique = "UNIQUE "
		}
		stmts = append(stmts, fmt.Sprintf("CREATE %sINDEX IF NOT EXISTS %s ON %s (%s)",
			unique, name, t.name, strings.Join(d.Fields, ", ")))
	}
	return stmts, nil
}

func columnDef(d *field.Descriptor) (string, error) {
	if d.Err != nil {
		return "", fmt.Errorf("field %s: %w", d.Name, d.Err)
	}

	var typ string
	switch d.Info.Type {
	case field.TypeString:
		typ = "TEXT"
	case field.TypeInt, field.TypeInt64:
		typ = "INTEGER"
	case field.TypeBool:
		typ = "BOOLEAN"
	case field.TypeTime:
		typ = "DATETIME"
	default:
		return "", fmt.Errorf("field %s: unsupported type %s", d.Name, d.Info.Type)
	}

	var b strings.Builder
	b.WriteString(d.Name + " " + typ)
	if !d.Optional {
		b.WriteString(" NOT NULL")
	}
	if d.Unique {
		b.WriteString(" UNIQUE")
	}
	switch v := d.Default.(type) {
	case int:
		fmt.Fprintf(&b, " DEFAULT %d", v)
	case int64:
		fmt.Fprintf(&b, " DEFAULT %d", v)
	}
	return b.String(), nil
}
