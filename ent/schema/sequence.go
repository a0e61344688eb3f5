package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
)

// Sequence is a named monotonic counter. The "events" counter orders rows
// across every event table.
type Sequence struct {
	ent.Schema
}

func (Sequence) Fields() []ent.Field {
	return []ent.Field{
		field.String("name").
			NotEmpty().
			Unique().
			Immutable().
			Comment("Counter name"),
		field.Int64("next_val").
			Default(1).
			Comment("Value handed out by the next increment"),
	}
}
