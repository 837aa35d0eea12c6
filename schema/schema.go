package schema

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/go-openapi/inflect"
	"golang.org/x/text/unicode/norm"

	"github.com/syssam/sqlcrud/schema/field"
)

// Sentinel errors for definition-time failures.
var (
	// ErrNoFields is returned when a record type declares no fields.
	ErrNoFields = errors.New("sqlcrud: record type has no fields")
)

// Error represents a record type definition error. Definition errors
// are programmer errors: they are raised once, when the schema is
// resolved, and never at operation time.
type Error struct {
	Type    string // record type name.
	Field   string // field name, if applicable.
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("sqlcrud: schema error")
	if e.Type != "" {
		b.WriteString(" on type ")
		b.WriteString(e.Type)
	}
	if e.Field != "" {
		b.WriteString(" field ")
		b.WriteString(e.Field)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error { return e.Cause }

// Schema is the resolved, immutable description of one record type:
// its table, its columns in declaration order, the identity column,
// the optional soft-delete column and the per-operation column sets.
//
// A Schema is resolved once, before any concurrent use, and is
// read-only afterwards. Many record instances share one Schema.
type Schema struct {
	// Name is the record type name the schema was resolved from.
	Name string

	// Table is the backing table name.
	Table string

	// Columns holds all column names in declaration order.
	Columns []string

	// ID is the identity column name, IDIndex its position in Columns.
	ID      string
	IDIndex int

	// AutoID reports whether the identity value is assigned by the
	// backing store on insert.
	AutoID bool

	// SoftDelete is the soft-delete column name, or empty when the
	// record type deletes rows physically. SoftDeleteExpr is the SQL
	// expression assigned to the column on delete, spliced verbatim
	// into the compiled statement.
	SoftDelete     string
	SoftDeleteExpr string

	// InsertIndexes and UpdateIndexes are positions into Columns, in
	// declaration order. Statement compilation and argument binding
	// both read these slices, so the placeholder order and the bind
	// order can never drift apart.
	InsertIndexes []int
	UpdateIndexes []int

	fields []*field.Descriptor
}

// Option configures schema resolution.
type Option func(*config)

type config struct {
	table string
}

// Table overrides the table name derived from the record type name.
func Table(name string) Option {
	return func(c *config) { c.table = name }
}

// New resolves a record type declaration into a Schema. The given
// name is the record type name; the table name is derived from it
// (snake_case, pluralized) unless overridden with the Table option.
//
// Resolution rules:
//
//   - the field marked ID is the identity column; without one, the
//     first declared field is.
//   - an auto-increment identity is excluded from the insert set.
//   - the insert set is every field except the identity (iff
//     auto-increment) and fields marked IgnoreInsert.
//   - the update set is every field except the identity and fields
//     marked IgnoreUpdate.
//   - at most one field may carry a DeletedWith expression.
//
// All failure modes of the five generated statements are pushed here:
// after New returns nil error, statement compilation cannot fail.
func New(name string, fields []field.Field, opts ...Option) (*Schema, error) {
	if name == "" {
		return nil, &Error{Message: "empty record type name"}
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoFields, name)
	}
	cfg := config{}
	for _, opt := range opts {
		opt(&cfg)
	}
	s := &Schema{
		Name:    name,
		Table:   cfg.table,
		IDIndex: -1,
	}
	if s.Table == "" {
		s.Table = TableName(name)
	}
	if err := validIdent(s.Table); err != nil {
		return nil, &Error{Type: name, Message: "invalid table name", Cause: err}
	}
	seen := make(map[string]struct{}, len(fields))
	for i, f := range fields {
		fd := f.Descriptor()
		if fd.Err != nil {
			return nil, &Error{Type: name, Field: fd.Name, Cause: fd.Err}
		}
		if !fd.Type.Valid() {
			return nil, &Error{Type: name, Field: fd.Name, Message: "invalid field type"}
		}
		if err := validIdent(fd.Name); err != nil {
			return nil, &Error{Type: name, Field: fd.Name, Message: "invalid column name", Cause: err}
		}
		if _, ok := seen[fd.Name]; ok {
			return nil, &Error{Type: name, Field: fd.Name, Message: "duplicate column name"}
		}
		seen[fd.Name] = struct{}{}
		if fd.ID {
			if s.IDIndex >= 0 {
				return nil, &Error{Type: name, Field: fd.Name, Message: "multiple identity columns"}
			}
			s.IDIndex = i
		}
		if fd.DeletedWith != "" {
			if s.SoftDelete != "" {
				return nil, &Error{Type: name, Field: fd.Name, Message: "multiple soft-delete columns"}
			}
			s.SoftDelete = fd.Name
			s.SoftDeleteExpr = fd.DeletedWith
		}
		s.fields = append(s.fields, fd)
		s.Columns = append(s.Columns, fd.Name)
	}
	// Default to the first declared field as the identity column.
	if s.IDIndex < 0 {
		s.IDIndex = 0
	}
	id := s.fields[s.IDIndex]
	s.ID = id.Name
	s.AutoID = id.AutoIncrement
	for i, fd := range s.fields {
		if fd.AutoIncrement && i != s.IDIndex {
			return nil, &Error{Type: name, Field: fd.Name, Message: "auto-increment on a non-identity column"}
		}
		if !fd.OmitInsert && !(i == s.IDIndex && s.AutoID) {
			s.InsertIndexes = append(s.InsertIndexes, i)
		}
		if !fd.OmitUpdate && i != s.IDIndex {
			s.UpdateIndexes = append(s.UpdateIndexes, i)
		}
	}
	return s, nil
}

// MustNew calls New and panics on error. It is intended for
// package-level schema variables in generated or hand-written model
// code, where a definition error must abort at startup.
func MustNew(name string, fields []field.Field, opts ...Option) *Schema {
	s, err := New(name, fields, opts...)
	if err != nil {
		panic(err)
	}
	return s
}

// Fields returns the resolved field descriptors in declaration order.
func (s *Schema) Fields() []*field.Descriptor {
	return s.fields
}

// InsertColumns returns the insert column set in declaration order.
func (s *Schema) InsertColumns() []string {
	return s.pick(s.InsertIndexes)
}

// UpdateColumns returns the update column set in declaration order.
func (s *Schema) UpdateColumns() []string {
	return s.pick(s.UpdateIndexes)
}

func (s *Schema) pick(idx []int) []string {
	cols := make([]string, len(idx))
	for i, j := range idx {
		cols[i] = s.Columns[j]
	}
	return cols
}

// TableName derives a table name from a record type name: snake_case
// with the last word pluralized. For example, "Record" becomes
// "records" and "TimedField" becomes "timed_fields".
func TableName(typeName string) string {
	snake := inflect.Underscore(typeName)
	parts := strings.Split(snake, "_")
	parts[len(parts)-1] = inflect.Pluralize(parts[len(parts)-1])
	return strings.Join(parts, "_")
}

// validIdent validates a table or column identifier at definition
// time. Identifiers containing quote characters are rejected instead
// of escaped, since the dialect quoter performs no escaping. Non-ASCII
// identifiers must be NFC-normalized so that the emitted statement
// text is byte-deterministic.
func validIdent(s string) error {
	switch {
	case s == "":
		return errors.New("empty identifier")
	case strings.ContainsAny(s, "`\"' \t\n"):
		return fmt.Errorf("identifier %q contains a quote character or whitespace", s)
	case !utf8.ValidString(s):
		return fmt.Errorf("identifier %q is not valid UTF-8", s)
	case !norm.NFC.IsNormalString(s):
		return fmt.Errorf("identifier %q is not NFC-normalized", s)
	}
	return nil
}
