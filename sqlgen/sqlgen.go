// Package sqlgen compiles a resolved record schema and a dialect tag
// into the five canonical SQL statements: select, select-by-id,
// insert, update-by-id and delete-by-id.
//
// Compilation happens once per record type, at definition time. For a
// fixed schema and dialect the output is byte-identical, and every
// failure mode is pushed into schema resolution or the dialect tag
// check here; nothing is re-derived per call.
//
// Placeholders are positional question marks, except under the
// Postgres dialect where they are translated to the numbered $N form
// at emission time, since lib/pq does not accept question marks.
package sqlgen

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/syssam/sqlcrud/dialect"
	"github.com/syssam/sqlcrud/schema"
)

// ErrUnsupportedDialect is returned by Compile for an unknown dialect
// tag. It is a definition-time error, raised before any statement is
// executed.
var ErrUnsupportedDialect = errors.New("sqlcrud: unsupported dialect")

// Statements is the compiled, immutable statement set of one record
// type under one dialect. Placeholder order in Insert and UpdateByID
// follows the schema's insert and update index lists; argument binding
// in the record runtime reads the same lists.
type Statements struct {
	// Select projects all columns, filtered by the soft-delete
	// predicate when the record type has one.
	Select string

	// SelectByID is Select narrowed to one identity value, limited to
	// a single row. One placeholder: the identity.
	SelectByID string

	// Insert inserts the insert column set. One placeholder per
	// insert column.
	Insert string

	// UpdateByID sets the update column set and filters on the
	// identity. Placeholders: update columns in order, identity last.
	UpdateByID string

	// DeleteByID deletes one row by identity. For soft-delete record
	// types this is a masked update assigning the deleted-with
	// expression, spliced verbatim into the statement text.
	DeleteByID string

	// Columns holds all column names in declaration order.
	Columns []string

	// Dialect is the tag the statements were compiled for.
	Dialect string
}

// Compile emits the statement set for the given schema and dialect.
// The only failure mode is an unsupported dialect tag; any schema that
// resolved successfully compiles.
func Compile(sc *schema.Schema, d string) (*Statements, error) {
	if !dialect.Supported(d) {
		return nil, fmt.Errorf("%w %q", ErrUnsupportedDialect, d)
	}
	b := builder{schema: sc, dialect: d}
	return &Statements{
		Select:     b.selectAll(),
		SelectByID: b.selectByID(),
		Insert:     b.insert(),
		UpdateByID: b.updateByID(),
		DeleteByID: b.deleteByID(),
		Columns:    sc.Columns,
		Dialect:    d,
	}, nil
}

// MustCompile calls Compile and panics on error. Intended for
// package-level statement variables resolved at startup.
func MustCompile(sc *schema.Schema, d string) *Statements {
	stmts, err := Compile(sc, d)
	if err != nil {
		panic(err)
	}
	return stmts
}

// builder assembles statement strings for one schema/dialect pair.
// The placeholder counter n spans one statement; numbering restarts
// for every emitted statement.
type builder struct {
	schema  *schema.Schema
	dialect string
	n       int
}

// placeholder returns the next positional placeholder.
func (b *builder) placeholder() string {
	b.n++
	if b.dialect == dialect.Postgres {
		return "$" + strconv.Itoa(b.n)
	}
	return "?"
}

func (b *builder) reset() { b.n = 0 }

// quote quotes a bare identifier.
func (b *builder) quote(ident string) string {
	return dialect.Quote(b.dialect, ident)
}

// qualify quotes a column qualified by the table name, as used in
// select projections and by-id predicates.
func (b *builder) qualify(column string) string {
	return b.quote(b.schema.Table) + "." + b.quote(column)
}

// columnList is the table-qualified projection of all columns in
// declaration order.
func (b *builder) columnList() string {
	cols := make([]string, len(b.schema.Columns))
	for i, c := range b.schema.Columns {
		cols[i] = b.qualify(c)
	}
	return strings.Join(cols, ", ")
}

func (b *builder) selectAll() string {
	b.reset()
	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(b.columnList())
	sb.WriteString(" FROM ")
	sb.WriteString(b.quote(b.schema.Table))
	if sd := b.schema.SoftDelete; sd != "" {
		sb.WriteString(" WHERE ")
		sb.WriteString(b.quote(sd))
		sb.WriteString(" IS NULL")
	}
	return sb.String()
}

func (b *builder) selectByID() string {
	b.reset()
	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(b.columnList())
	sb.WriteString(" FROM ")
	sb.WriteString(b.quote(b.schema.Table))
	sb.WriteString(" WHERE ")
	sb.WriteString(b.qualify(b.schema.ID))
	sb.WriteString(" = ")
	sb.WriteString(b.placeholder())
	if sd := b.schema.SoftDelete; sd != "" {
		sb.WriteString(" AND ")
		sb.WriteString(b.quote(sd))
		sb.WriteString(" IS NULL")
	}
	sb.WriteString(" LIMIT 1")
	return sb.String()
}

func (b *builder) insert() string {
	b.reset()
	cols := b.schema.InsertColumns()
	quoted := make([]string, len(cols))
	binds := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = b.quote(c)
		binds[i] = b.placeholder()
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		b.quote(b.schema.Table),
		strings.Join(quoted, ", "),
		strings.Join(binds, ", "),
	)
}

func (b *builder) updateByID() string {
	b.reset()
	cols := b.schema.UpdateColumns()
	sets := make([]string, len(cols))
	for i, c := range cols {
		sets[i] = b.quote(c) + " = " + b.placeholder()
	}
	var sb strings.Builder
	sb.WriteString("UPDATE ")
	sb.WriteString(b.quote(b.schema.Table))
	sb.WriteString(" SET ")
	sb.WriteString(strings.Join(sets, ", "))
	sb.WriteString(" WHERE ")
	sb.WriteString(b.qualify(b.schema.ID))
	sb.WriteString(" = ")
	// The identity placeholder comes last, after all SET
	// placeholders, matching the runtime bind order.
	sb.WriteString(b.placeholder())
	if sd := b.schema.SoftDelete; sd != "" {
		sb.WriteString(" AND ")
		sb.WriteString(b.quote(sd))
		sb.WriteString(" IS NULL")
	}
	return sb.String()
}

func (b *builder) deleteByID() string {
	b.reset()
	sd := b.schema.SoftDelete
	if sd == "" {
		return fmt.Sprintf("DELETE FROM %s WHERE %s = %s",
			b.quote(b.schema.Table), b.qualify(b.schema.ID), b.placeholder())
	}
	// Masked delete: the deleted-with expression is SQL source text,
	// not a bound parameter. See field.Builder.DeletedWith.
	var sb strings.Builder
	sb.WriteString("UPDATE ")
	sb.WriteString(b.quote(b.schema.Table))
	sb.WriteString(" SET ")
	sb.WriteString(b.quote(sd))
	sb.WriteString(" = ")
	sb.WriteString(b.schema.SoftDeleteExpr)
	sb.WriteString(" WHERE ")
	sb.WriteString(b.qualify(b.schema.ID))
	sb.WriteString(" = ")
	sb.WriteString(b.placeholder())
	sb.WriteString(" AND ")
	sb.WriteString(b.quote(sd))
	sb.WriteString(" IS NULL")
	return sb.String()
}
