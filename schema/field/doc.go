// Package field provides the field descriptors and builders used to
// declare record types.
//
// Fields are declared with typed constructors and configured with a
// fluent API:
//
//	field.Int64("id").ID().AutoIncrement()
//	field.String("name")
//	field.Time("updated_at").Nillable().IgnoreInsert()
//	field.Time("deleted_at").Nillable().DeletedWith("NOW()")
//
// Builder mistakes (for example, auto-increment on a string field) are
// not panics. They are recorded on the descriptor and surfaced as a
// definition error when the record schema is resolved.
//
// Behavioral markers:
//
//   - ID: the identity column used by by-id fetch, update and delete.
//   - AutoIncrement: the store assigns the identity on insert; the
//     column is omitted from the insert set.
//   - IgnoreInsert / IgnoreUpdate: the column is omitted from the
//     insert / update set.
//   - DeletedWith(expr): soft-delete column; deleting a record sets
//     the column to expr instead of removing the row.
package field
