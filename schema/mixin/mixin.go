// Package mixin provides reusable field sets for common record type
// patterns: creation/update timestamps and soft deletion.
//
// Mixins return plain field slices, appended to a record type's own
// fields before resolution:
//
//	fields := []field.Field{
//	    field.Int64("timed_field_id").ID().AutoIncrement(),
//	    field.String("str_field"),
//	}
//	sc := schema.MustNew("TimedField", append(fields, mixin.TimeSoftDelete()...))
//
// The timestamp columns are excluded from both the insert and update
// sets: their values are expected to be maintained by the database
// (column defaults or triggers), not by the caller.
package mixin

import "github.com/syssam/sqlcrud/schema/field"

// CreateTime returns a nullable created_at column maintained by the
// database.
func CreateTime() []field.Field {
	return []field.Field{
		field.Time("created_at").
			Nillable().
			IgnoreInsert().
			IgnoreUpdate(),
	}
}

// UpdateTime returns a nullable updated_at column maintained by the
// database.
func UpdateTime() []field.Field {
	return []field.Field{
		field.Time("updated_at").
			Nillable().
			IgnoreInsert().
			IgnoreUpdate(),
	}
}

// Time returns created_at and updated_at columns maintained by the
// database.
func Time() []field.Field {
	return append(CreateTime(), UpdateTime()...)
}

// SoftDelete returns a nullable deleted_at column that turns
// delete-by-id into a masked update assigning the given expression,
// e.g. "NOW()" on MySQL/Postgres or "CURRENT_TIMESTAMP" on SQLite.
// The expression is spliced verbatim into the compiled statement; it
// must be trusted, static SQL.
func SoftDelete(expr string) []field.Field {
	return []field.Field{
		field.Time("deleted_at").
			Nillable().
			IgnoreInsert().
			IgnoreUpdate().
			DeletedWith(expr),
	}
}

// TimeSoftDelete returns created_at, updated_at and a NOW()-based
// deleted_at column, matching the conventional timed-table layout.
func TimeSoftDelete() []field.Field {
	return append(Time(), SoftDelete("NOW()")...)
}
