package field_test

import (
	"testing"

	"github.com/syssam/sqlcrud/schema/field"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		f    field.Field
		typ  field.Type
		name string
	}{
		{field.Bool("active"), field.TypeBool, "active"},
		{field.Time("created_at"), field.TypeTime, "created_at"},
		{field.UUID("external_id"), field.TypeUUID, "external_id"},
		{field.Bytes("blob"), field.TypeBytes, "blob"},
		{field.String("name"), field.TypeString, "name"},
		{field.Int("age"), field.TypeInt, "age"},
		{field.Int8("i8"), field.TypeInt8, "i8"},
		{field.Int16("i16"), field.TypeInt16, "i16"},
		{field.Int32("i32"), field.TypeInt32, "i32"},
		{field.Int64("id"), field.TypeInt64, "id"},
		{field.Uint("u"), field.TypeUint, "u"},
		{field.Uint8("u8"), field.TypeUint8, "u8"},
		{field.Uint16("u16"), field.TypeUint16, "u16"},
		{field.Uint32("u32"), field.TypeUint32, "u32"},
		{field.Uint64("u64"), field.TypeUint64, "u64"},
		{field.Float32("f32"), field.TypeFloat32, "f32"},
		{field.Float64("f64"), field.TypeFloat64, "f64"},
	}
	for _, tt := range tests {
		fd := tt.f.Descriptor()
		assert.Equal(t, tt.name, fd.Name)
		assert.Equal(t, tt.typ, fd.Type)
		assert.NoError(t, fd.Err)
		assert.True(t, fd.Type.Valid())
	}
}

func TestMarkers(t *testing.T) {
	t.Parallel()
	fd := field.Int64("id").ID().AutoIncrement().Descriptor()
	require.NoError(t, fd.Err)
	assert.True(t, fd.ID)
	assert.True(t, fd.AutoIncrement)

	fd = field.Time("updated_at").Nillable().IgnoreInsert().IgnoreUpdate().Comment("set by trigger").Descriptor()
	require.NoError(t, fd.Err)
	assert.True(t, fd.Nillable)
	assert.True(t, fd.OmitInsert)
	assert.True(t, fd.OmitUpdate)
	assert.Equal(t, "set by trigger", fd.Comment)

	fd = field.Time("deleted_at").DeletedWith("NOW()").Descriptor()
	require.NoError(t, fd.Err)
	assert.Equal(t, "NOW()", fd.DeletedWith)
}

func TestDeferredErrors(t *testing.T) {
	t.Parallel()
	fd := field.String("id").AutoIncrement().Descriptor()
	require.Error(t, fd.Err)
	assert.Contains(t, fd.Err.Error(), "auto-increment requires a numeric type")

	fd = field.Time("deleted_at").DeletedWith("").Descriptor()
	require.Error(t, fd.Err)
	assert.Contains(t, fd.Err.Error(), "empty deleted-with expression")

	// The first error wins; later calls don't overwrite it.
	fd = field.String("x").AutoIncrement().DeletedWith("").Descriptor()
	assert.Contains(t, fd.Err.Error(), "auto-increment")
}

func TestTypeStrings(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "string", field.TypeString.String())
	assert.Equal(t, "time.Time", field.TypeTime.String())
	assert.Equal(t, "uuid.UUID", field.TypeUUID.String())
	assert.Equal(t, "invalid", field.TypeInvalid.String())
	assert.False(t, field.TypeInvalid.Valid())
	assert.True(t, field.TypeInt64.Numeric())
	assert.False(t, field.TypeString.Numeric())
	assert.Equal(t, "time", field.TypeTime.PkgPath())
	assert.Equal(t, "github.com/google/uuid", field.TypeUUID.PkgPath())
	assert.Equal(t, "", field.TypeString.PkgPath())
}
