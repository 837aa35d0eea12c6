package field

import "fmt"

// A Type represents a field type.
type Type uint8

// List of field types.
const (
	TypeInvalid Type = iota
	TypeBool
	TypeTime
	TypeUUID
	TypeBytes
	TypeString
	TypeInt8
	TypeInt16
	TypeInt32
	TypeInt
	TypeInt64
	TypeUint8
	TypeUint16
	TypeUint32
	TypeUint
	TypeUint64
	TypeFloat32
	TypeFloat64
	endTypes
)

var typeNames = [...]string{
	TypeInvalid: "invalid",
	TypeBool:    "bool",
	TypeTime:    "time.Time",
	TypeUUID:    "uuid.UUID",
	TypeBytes:   "[]byte",
	TypeString:  "string",
	TypeInt8:    "int8",
	TypeInt16:   "int16",
	TypeInt32:   "int32",
	TypeInt:     "int",
	TypeInt64:   "int64",
	TypeUint8:   "uint8",
	TypeUint16:  "uint16",
	TypeUint32:  "uint32",
	TypeUint:    "uint",
	TypeUint64:  "uint64",
	TypeFloat32: "float32",
	TypeFloat64: "float64",
}

// String returns the Go type name of the type.
func (t Type) String() string {
	if t < endTypes {
		return typeNames[t]
	}
	return fmt.Sprintf("invalid(%d)", t)
}

// Valid reports if the given type is a valid field type.
func (t Type) Valid() bool {
	return t > TypeInvalid && t < endTypes
}

// Numeric reports whether the type is a numeric type.
func (t Type) Numeric() bool {
	return t >= TypeInt8 && t <= TypeFloat64
}

// PkgPath returns the import path required by the Go type of the
// field, or an empty string for builtin and standard-library types
// that code generation imports unconditionally.
func (t Type) PkgPath() string {
	switch t {
	case TypeTime:
		return "time"
	case TypeUUID:
		return "github.com/google/uuid"
	default:
		return ""
	}
}

// A Descriptor for field configuration. A descriptor is constructed
// through the fluent builders in this package and consumed, once, by
// schema resolution. It is never mutated afterwards.
type Descriptor struct {
	Name          string // column name.
	Type          Type   // field type.
	ID            bool   // identity column marker.
	AutoIncrement bool   // value assigned by the store on insert.
	OmitInsert    bool   // excluded from the insert column set.
	OmitUpdate    bool   // excluded from the update column set.
	DeletedWith   string // soft-delete SQL expression (verbatim).
	Nillable      bool   // column may hold NULL.
	Comment       string // optional comment.
	Err           error  // deferred builder error.
}

// Field is the interface implemented by all field builders. Schema
// resolution accepts any Field and reads its descriptor exactly once.
type Field interface {
	Descriptor() *Descriptor
}

// Builder is the fluent builder shared by all field constructors.
type Builder struct {
	desc *Descriptor
}

func newBuilder(name string, t Type) *Builder {
	return &Builder{desc: &Descriptor{Name: name, Type: t}}
}

// Bool returns a new bool field with the given name.
func Bool(name string) *Builder { return newBuilder(name, TypeBool) }

// Time returns a new time field with the given name.
func Time(name string) *Builder { return newBuilder(name, TypeTime) }

// UUID returns a new uuid.UUID field with the given name.
func UUID(name string) *Builder { return newBuilder(name, TypeUUID) }

// Bytes returns a new []byte field with the given name.
func Bytes(name string) *Builder { return newBuilder(name, TypeBytes) }

// String returns a new string field with the given name.
func String(name string) *Builder { return newBuilder(name, TypeString) }

// Int returns a new int field with the given name.
func Int(name string) *Builder { return newBuilder(name, TypeInt) }

// Int8 returns a new int8 field with the given name.
func Int8(name string) *Builder { return newBuilder(name, TypeInt8) }

// Int16 returns a new int16 field with the given name.
func Int16(name string) *Builder { return newBuilder(name, TypeInt16) }

// Int32 returns a new int32 field with the given name.
func Int32(name string) *Builder { return newBuilder(name, TypeInt32) }

// Int64 returns a new int64 field with the given name.
func Int64(name string) *Builder { return newBuilder(name, TypeInt64) }

// Uint returns a new uint field with the given name.
func Uint(name string) *Builder { return newBuilder(name, TypeUint) }

// Uint8 returns a new uint8 field with the given name.
func Uint8(name string) *Builder { return newBuilder(name, TypeUint8) }

// Uint16 returns a new uint16 field with the given name.
func Uint16(name string) *Builder { return newBuilder(name, TypeUint16) }

// Uint32 returns a new uint32 field with the given name.
func Uint32(name string) *Builder { return newBuilder(name, TypeUint32) }

// Uint64 returns a new uint64 field with the given name.
func Uint64(name string) *Builder { return newBuilder(name, TypeUint64) }

// Float32 returns a new float32 field with the given name.
func Float32(name string) *Builder { return newBuilder(name, TypeFloat32) }

// Float64 returns a new float64 field with the given name.
func Float64(name string) *Builder { return newBuilder(name, TypeFloat64) }

// ID marks the field as the identity column of its record type.
func (b *Builder) ID() *Builder {
	b.desc.ID = true
	return b
}

// AutoIncrement marks the identity value as assigned by the backing
// store on insert. The field is excluded from the insert column set.
// Only numeric fields support auto-increment; anything else is a
// definition error surfaced at schema resolution.
func (b *Builder) AutoIncrement() *Builder {
	if !b.desc.Type.Numeric() {
		b.err(fmt.Errorf("auto-increment requires a numeric type, got %s", b.desc.Type))
	}
	b.desc.AutoIncrement = true
	return b
}

// IgnoreInsert excludes the field from the insert column set. The
// column keeps its database default (or NULL) on create.
func (b *Builder) IgnoreInsert() *Builder {
	b.desc.OmitInsert = true
	return b
}

// IgnoreUpdate excludes the field from the update column set.
func (b *Builder) IgnoreUpdate() *Builder {
	b.desc.OmitUpdate = true
	return b
}

// DeletedWith marks the field as the soft-delete column and carries
// the SQL expression assigned to it when a record is deleted, e.g.
// "NOW()" or "CURRENT_TIMESTAMP".
//
// The expression is spliced verbatim into the compiled delete
// statement, not bound as a parameter. It must be a trusted, static
// expression; never pass user input.
func (b *Builder) DeletedWith(expr string) *Builder {
	if expr == "" {
		b.err(fmt.Errorf("empty deleted-with expression"))
	}
	b.desc.DeletedWith = expr
	return b
}

// Nillable marks the column as nullable.
func (b *Builder) Nillable() *Builder {
	b.desc.Nillable = true
	return b
}

// Comment sets the comment of the field.
func (b *Builder) Comment(c string) *Builder {
	b.desc.Comment = c
	return b
}

// Descriptor implements the Field interface.
func (b *Builder) Descriptor() *Descriptor {
	return b.desc
}

// err records the first builder error. Builder errors are deferred:
// they surface from schema resolution, never as panics here.
func (b *Builder) err(err error) {
	if b.desc.Err == nil {
		b.desc.Err = fmt.Errorf("field %q: %w", b.desc.Name, err)
	}
}
