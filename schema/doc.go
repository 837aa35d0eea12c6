// Package schema resolves record type declarations into immutable
// record schemas.
//
// A record type is declared as an ordered field list built with the
// schema/field package:
//
//	sc, err := schema.New("User", []field.Field{
//	    field.Int64("id").ID().AutoIncrement(),
//	    field.String("name"),
//	    field.Time("deleted_at").Nillable().DeletedWith("NOW()"),
//	})
//
// Resolution determines, once, the table name, the identity column,
// the soft-delete column and the ordered insert and update column
// sets. The resolved Schema is read-only; the statement compiler
// (package sqlgen) and the record runtime both consume it without
// recomputing anything per call.
//
// The design assumes exactly one identity column per record type.
// Composite keys are not supported.
package schema
