package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
)

// PracticeEvent records the start and end of a practice run on one subject.
type PracticeEvent struct {
	ent.Schema
}

func (PracticeEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{RunMixin{}}
}

func (PracticeEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("action").
			NotEmpty().
			Comment("start or end"),
		field.Int("questions_answered").
			Default(0).
			Comment("Questions submitted (on end only)"),
		field.Int("correct_answers").
			Default(0).
			Comment("Correct submissions (on end only)"),
		field.Int("duration_secs").
			Default(0).
			Comment("Run duration in seconds (on end only)"),
	}
}
