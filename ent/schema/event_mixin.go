package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
	"entgo.io/ent/schema/mixin"
)

// RunMixin holds the columns every practice log row carries: its position
// in the log, when it happened and which run and subject it belongs to.
type RunMixin struct {
	mixin.Schema
}

func (RunMixin) Fields() []ent.Field {
	return []ent.Field{
		field.Int64("sequence").
			Unique().
			Immutable().
			Comment("Position in the log, from the events sequence"),
		field.Time("timestamp").
			Default(time.Now).
			Immutable().
			Comment("UTC time the row was written"),
		field.String("session_id").
			NotEmpty().
			Immutable().
			Comment("UUID shared by all rows of one practice run"),
		field.String("subject").
			NotEmpty().
			Immutable().
			Comment("math or english"),
	}
}

func (RunMixin) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("session_id"),
		index.Fields("subject"),
	}
}
