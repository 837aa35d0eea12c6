package gen

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/dave/jennifer/jen"
	"github.com/go-openapi/inflect"
	"golang.org/x/sync/errgroup"
	"golang.org/x/tools/imports"

	"github.com/syssam/sqlcrud/schema/field"
)

// Import paths referenced by generated code.
const (
	schemaPkg = "github.com/syssam/sqlcrud/schema"
	fieldPkg  = "github.com/syssam/sqlcrud/schema/field"
	uuidPkg   = "github.com/google/uuid"
)

// Generate writes one Go source file per configured record type into
// the target directory. Files are generated in parallel; Wait reports
// the first failure.
func Generate(ctx context.Context, cfg *Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(cfg.Target, 0o755); err != nil {
		return fmt.Errorf("sqlcrud: create target directory: %w", err)
	}
	g, ctx := errgroup.WithContext(ctx)
	for _, rec := range cfg.Records {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return generateRecord(cfg, rec)
		})
	}
	return g.Wait()
}

func generateRecord(cfg *Config, rec RecordConfig) error {
	sc, err := rec.Resolve()
	if err != nil {
		return err
	}
	f := jen.NewFilePathName(cfg.Package, path.Base(cfg.Package))
	f.HeaderComment("Code generated by sqlcrudgen. DO NOT EDIT.")
	if cfg.Header != "" {
		f.HeaderComment(cfg.Header)
	}

	schemaVar := inflect.CamelizeDownFirst(inflect.Underscore(rec.Name)) + "Schema"
	f.Var().Id(schemaVar).Op("=").Qual(schemaPkg, "MustNew").Call(schemaArgs(rec)...)
	f.Line()

	f.Commentf("%s is the record type backed by the %q table.", rec.Name, sc.Table)
	f.Type().Id(rec.Name).Struct(structFields(rec)...)
	f.Line()

	r := receiver(rec.Name)
	f.Commentf("Schema returns the resolved record schema of %s.", rec.Name)
	f.Func().Params(jen.Op("*").Id(rec.Name)).Id("Schema").Params().Op("*").Qual(schemaPkg, "Schema").Block(
		jen.Return(jen.Id(schemaVar)),
	)
	f.Line()

	f.Comment("Values returns all column values in declaration order.")
	f.Func().Params(jen.Id(r).Op("*").Id(rec.Name)).Id("Values").Params().Index().Any().Block(
		jen.Return(jen.Index().Any().ValuesFunc(func(g *jen.Group) {
			for _, fc := range rec.Fields {
				g.Id(r).Dot(goName(fc.Name))
			}
		})),
	)
	f.Line()

	f.Comment("Pointers returns scan destinations in declaration order.")
	f.Func().Params(jen.Id(r).Op("*").Id(rec.Name)).Id("Pointers").Params().Index().Any().Block(
		jen.Return(jen.Index().Any().ValuesFunc(func(g *jen.Group) {
			for _, fc := range rec.Fields {
				g.Op("&").Id(r).Dot(goName(fc.Name))
			}
		})),
	)

	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return fmt.Errorf("sqlcrud: render %s: %w", rec.Name, err)
	}
	name := filepath.Join(cfg.Target, inflect.Underscore(rec.Name)+".go")
	src, err := imports.Process(name, buf.Bytes(), nil)
	if err != nil {
		return fmt.Errorf("sqlcrud: format %s: %w", name, err)
	}
	if err := os.WriteFile(name, src, 0o644); err != nil {
		return fmt.Errorf("sqlcrud: write %s: %w", name, err)
	}
	return nil
}

// schemaArgs emits the schema.MustNew argument list: the type name,
// the field builder chain per column and the optional table override.
func schemaArgs(rec RecordConfig) []jen.Code {
	args := []jen.Code{
		jen.Lit(rec.Name),
		jen.Index().Qual(fieldPkg, "Field").ValuesFunc(func(g *jen.Group) {
			for _, fc := range rec.Fields {
				g.Add(fieldExpr(fc))
			}
		}),
	}
	if rec.Table != "" {
		args = append(args, jen.Qual(schemaPkg, "Table").Call(jen.Lit(rec.Table)))
	}
	return args
}

// fieldExpr emits one field builder chain, e.g.
// field.Int64("id").ID().AutoIncrement().
func fieldExpr(fc FieldConfig) *jen.Statement {
	s := jen.Qual(fieldPkg, constructorName(fieldTypes[fc.Type])).Call(jen.Lit(fc.Name))
	if fc.ID {
		s.Dot("ID").Call()
	}
	if fc.AutoIncrement {
		s.Dot("AutoIncrement").Call()
	}
	if fc.IgnoreInsert {
		s.Dot("IgnoreInsert").Call()
	}
	if fc.IgnoreUpdate {
		s.Dot("IgnoreUpdate").Call()
	}
	if fc.DeletedWith != "" {
		s.Dot("DeletedWith").Call(jen.Lit(fc.DeletedWith))
	}
	if fc.Nillable {
		s.Dot("Nillable").Call()
	}
	if fc.Comment != "" {
		s.Dot("Comment").Call(jen.Lit(fc.Comment))
	}
	return s
}

func constructorName(t field.Type) string {
	switch t {
	case field.TypeBool:
		return "Bool"
	case field.TypeTime:
		return "Time"
	case field.TypeUUID:
		return "UUID"
	case field.TypeBytes:
		return "Bytes"
	case field.TypeString:
		return "String"
	case field.TypeInt8:
		return "Int8"
	case field.TypeInt16:
		return "Int16"
	case field.TypeInt32:
		return "Int32"
	case field.TypeInt:
		return "Int"
	case field.TypeInt64:
		return "Int64"
	case field.TypeUint8:
		return "Uint8"
	case field.TypeUint16:
		return "Uint16"
	case field.TypeUint32:
		return "Uint32"
	case field.TypeUint:
		return "Uint"
	case field.TypeUint64:
		return "Uint64"
	case field.TypeFloat32:
		return "Float32"
	default:
		return "Float64"
	}
}

// structFields emits the struct declaration fields with db tags.
func structFields(rec RecordConfig) []jen.Code {
	fields := make([]jen.Code, 0, len(rec.Fields))
	for _, fc := range rec.Fields {
		f := jen.Id(goName(fc.Name)).Add(goType(fc)).Tag(map[string]string{"db": fc.Name})
		if fc.Comment != "" {
			f = f.Comment(fc.Comment)
		}
		fields = append(fields, f)
	}
	return fields
}

// goType maps a field declaration to its Go struct field type.
// Nillable columns use the database/sql Null wrappers where one
// exists, and a pointer type otherwise.
func goType(fc FieldConfig) *jen.Statement {
	t := fieldTypes[fc.Type]
	if fc.Nillable {
		switch t {
		case field.TypeBool:
			return jen.Qual("database/sql", "NullBool")
		case field.TypeTime:
			return jen.Qual("database/sql", "NullTime")
		case field.TypeString:
			return jen.Qual("database/sql", "NullString")
		case field.TypeInt16:
			return jen.Qual("database/sql", "NullInt16")
		case field.TypeInt32:
			return jen.Qual("database/sql", "NullInt32")
		case field.TypeInt64:
			return jen.Qual("database/sql", "NullInt64")
		case field.TypeFloat64:
			return jen.Qual("database/sql", "NullFloat64")
		case field.TypeBytes:
			return jen.Index().Byte()
		default:
			return jen.Op("*").Add(plainType(t))
		}
	}
	return plainType(t)
}

func plainType(t field.Type) *jen.Statement {
	switch t {
	case field.TypeTime:
		return jen.Qual("time", "Time")
	case field.TypeUUID:
		return jen.Qual(uuidPkg, "UUID")
	case field.TypeBytes:
		return jen.Index().Byte()
	default:
		return jen.Id(t.String())
	}
}

// goName converts a column name to its exported Go field name, with
// the usual initialism for identity columns ("id" -> "ID").
func goName(column string) string {
	name := inflect.Camelize(column)
	switch {
	case name == "Id":
		return "ID"
	case strings.HasSuffix(name, "Id"):
		return name[:len(name)-2] + "ID"
	}
	return name
}

// receiver returns the conventional one-letter receiver of a type.
func receiver(typeName string) string {
	return strings.ToLower(typeName[:1])
}
