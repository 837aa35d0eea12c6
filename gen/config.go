package gen

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/syssam/sqlcrud/schema"
	"github.com/syssam/sqlcrud/schema/field"
)

// Config is the generator configuration, typically loaded from a
// sqlcrud.yaml file.
type Config struct {
	// Package is the output package import path,
	// e.g. "github.com/org/project/models".
	Package string `yaml:"package"`

	// Target is the output directory generated files are written to.
	Target string `yaml:"target"`

	// Header is an optional comment line placed at the top of every
	// generated file, after the standard generated-code marker.
	Header string `yaml:"header,omitempty"`

	// Records lists the record types to generate.
	Records []RecordConfig `yaml:"records"`
}

// RecordConfig declares one record type.
type RecordConfig struct {
	// Name is the record type name, e.g. "User".
	Name string `yaml:"name"`

	// Table overrides the derived table name.
	Table string `yaml:"table,omitempty"`

	// Fields lists the columns in declaration order.
	Fields []FieldConfig `yaml:"fields"`
}

// FieldConfig declares one column. The boolean markers mirror the
// schema/field builder methods.
type FieldConfig struct {
	Name          string `yaml:"name"`
	Type          string `yaml:"type"`
	ID            bool   `yaml:"id,omitempty"`
	AutoIncrement bool   `yaml:"auto_increment,omitempty"`
	IgnoreInsert  bool   `yaml:"ignore_insert,omitempty"`
	IgnoreUpdate  bool   `yaml:"ignore_update,omitempty"`
	DeletedWith   string `yaml:"deleted_with,omitempty"`
	Nillable      bool   `yaml:"nillable,omitempty"`
	Comment       string `yaml:"comment,omitempty"`
}

// ConfigError reports an invalid generator configuration value.
type ConfigError struct {
	Field  string // configuration field.
	Value  any    // offending value.
	Reason string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("sqlcrud: config %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("sqlcrud: config %s (%v): %s", e.Field, e.Value, e.Reason)
}

// NewConfigError returns a new ConfigError.
func NewConfigError(field string, value any, reason string) *ConfigError {
	return &ConfigError{Field: field, Value: value, Reason: reason}
}

// fieldTypes maps the config type names to field types.
var fieldTypes = map[string]field.Type{
	"bool":    field.TypeBool,
	"time":    field.TypeTime,
	"uuid":    field.TypeUUID,
	"bytes":   field.TypeBytes,
	"string":  field.TypeString,
	"int8":    field.TypeInt8,
	"int16":   field.TypeInt16,
	"int32":   field.TypeInt32,
	"int":     field.TypeInt,
	"int64":   field.TypeInt64,
	"uint8":   field.TypeUint8,
	"uint16":  field.TypeUint16,
	"uint32":  field.TypeUint32,
	"uint":    field.TypeUint,
	"uint64":  field.TypeUint64,
	"float32": field.TypeFloat32,
	"float64": field.TypeFloat64,
}

// LoadConfig reads and validates a YAML generator configuration.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("sqlcrud: read config: %w", err)
	}
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("sqlcrud: parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration and resolves every declared
// record through the schema resolver, so definition errors abort the
// build step instead of surfacing at program startup.
func (c *Config) Validate() error {
	if c.Package == "" {
		return NewConfigError("package", nil, "package import path cannot be empty")
	}
	if c.Target == "" {
		return NewConfigError("target", nil, "target directory cannot be empty")
	}
	if len(c.Records) == 0 {
		return NewConfigError("records", nil, "at least one record type is required")
	}
	seen := make(map[string]struct{}, len(c.Records))
	for _, rec := range c.Records {
		if rec.Name == "" {
			return NewConfigError("records", nil, "record name cannot be empty")
		}
		if _, ok := seen[rec.Name]; ok {
			return NewConfigError("records", rec.Name, "duplicate record type")
		}
		seen[rec.Name] = struct{}{}
		if _, err := rec.Resolve(); err != nil {
			return err
		}
	}
	return nil
}

// Resolve builds the record schema declared by the config entry.
func (r *RecordConfig) Resolve() (*schema.Schema, error) {
	fields, err := r.fields()
	if err != nil {
		return nil, err
	}
	var opts []schema.Option
	if r.Table != "" {
		opts = append(opts, schema.Table(r.Table))
	}
	return schema.New(r.Name, fields, opts...)
}

func (r *RecordConfig) fields() ([]field.Field, error) {
	fields := make([]field.Field, 0, len(r.Fields))
	for _, fc := range r.Fields {
		t, ok := fieldTypes[fc.Type]
		if !ok {
			return nil, NewConfigError("records."+r.Name+".fields."+fc.Name, fc.Type, "unknown field type")
		}
		b := newFieldBuilder(fc.Name, t)
		if fc.ID {
			b.ID()
		}
		if fc.AutoIncrement {
			b.AutoIncrement()
		}
		if fc.IgnoreInsert {
			b.IgnoreInsert()
		}
		if fc.IgnoreUpdate {
			b.IgnoreUpdate()
		}
		if fc.DeletedWith != "" {
			b.DeletedWith(fc.DeletedWith)
		}
		if fc.Nillable {
			b.Nillable()
		}
		if fc.Comment != "" {
			b.Comment(fc.Comment)
		}
		fields = append(fields, b)
	}
	return fields, nil
}

// newFieldBuilder dispatches to the typed field constructors.
func newFieldBuilder(name string, t field.Type) *field.Builder {
	switch t {
	case field.TypeBool:
		return field.Bool(name)
	case field.TypeTime:
		return field.Time(name)
	case field.TypeUUID:
		return field.UUID(name)
	case field.TypeBytes:
		return field.Bytes(name)
	case field.TypeString:
		return field.String(name)
	case field.TypeInt8:
		return field.Int8(name)
	case field.TypeInt16:
		return field.Int16(name)
	case field.TypeInt32:
		return field.Int32(name)
	case field.TypeInt:
		return field.Int(name)
	case field.TypeInt64:
		return field.Int64(name)
	case field.TypeUint8:
		return field.Uint8(name)
	case field.TypeUint16:
		return field.Uint16(name)
	case field.TypeUint32:
		return field.Uint32(name)
	case field.TypeUint:
		return field.Uint(name)
	case field.TypeUint64:
		return field.Uint64(name)
	case field.TypeFloat32:
		return field.Float32(name)
	default:
		return field.Float64(name)
	}
}
