package gen_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/syssam/sqlcrud/gen"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "sqlcrud.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()
	target := t.TempDir()
	path := writeConfig(t, yamlWithTarget(target))
	cfg, err := gen.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "example.com/app/models", cfg.Package)
	assert.Equal(t, target, cfg.Target)
	require.Len(t, cfg.Records, 2)
	assert.Equal(t, "User", cfg.Records[0].Name)
	assert.True(t, cfg.Records[0].Fields[0].AutoIncrement)
	assert.Equal(t, "NOW()", cfg.Records[1].Fields[2].DeletedWith)
}

func yamlWithTarget(target string) string {
	return "package: example.com/app/models\ntarget: " + target + `
records:
  - name: User
    fields:
      - { name: id, type: int64, id: true, auto_increment: true }
      - { name: name, type: string }
      - { name: external_id, type: uuid }
      - { name: updated_at, type: time, nillable: true, ignore_insert: true }
  - name: Item
    table: warehouse_items
    fields:
      - { name: id, type: int64, id: true }
      - { name: name, type: string, comment: "display name" }
      - { name: deleted_at, type: time, nillable: true, ignore_insert: true, ignore_update: true, deleted_with: "NOW()" }
`
}

func TestGenerate(t *testing.T) {
	t.Parallel()
	target := t.TempDir()
	cfg, err := gen.LoadConfig(writeConfig(t, yamlWithTarget(target)))
	require.NoError(t, err)
	require.NoError(t, gen.Generate(context.Background(), cfg))

	user, err := os.ReadFile(filepath.Join(target, "user.go"))
	require.NoError(t, err)
	src := string(user)
	assert.Contains(t, src, "Code generated by sqlcrudgen. DO NOT EDIT.")
	assert.Contains(t, src, "package models")
	assert.Contains(t, src, "type User struct")
	assert.Contains(t, src, "ID")
	assert.Contains(t, src, "ExternalID uuid.UUID")
	assert.Contains(t, src, "UpdatedAt  sql.NullTime")
	assert.Contains(t, src, `field.Int64("id").ID().AutoIncrement()`)
	assert.Contains(t, src, "func (u *User) Values() []any")
	assert.Contains(t, src, "func (u *User) Pointers() []any")
	assert.Contains(t, src, "github.com/google/uuid")

	item, err := os.ReadFile(filepath.Join(target, "item.go"))
	require.NoError(t, err)
	src = string(item)
	assert.Contains(t, src, `schema.Table("warehouse_items")`)
	assert.Contains(t, src, `DeletedWith("NOW()")`)
}

func TestConfigErrors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "missing package",
			yaml:    "target: ./out\nrecords:\n  - name: A\n    fields:\n      - { name: id, type: int }\n",
			wantErr: "package import path cannot be empty",
		},
		{
			name:    "missing target",
			yaml:    "package: example.com/m\nrecords:\n  - name: A\n    fields:\n      - { name: id, type: int }\n",
			wantErr: "target directory cannot be empty",
		},
		{
			name:    "no records",
			yaml:    "package: example.com/m\ntarget: ./out\n",
			wantErr: "at least one record type",
		},
		{
			name:    "unknown type",
			yaml:    "package: example.com/m\ntarget: ./out\nrecords:\n  - name: A\n    fields:\n      - { name: id, type: varchar }\n",
			wantErr: "unknown field type",
		},
		{
			name:    "duplicate record",
			yaml:    "package: example.com/m\ntarget: ./out\nrecords:\n  - name: A\n    fields:\n      - { name: id, type: int }\n  - name: A\n    fields:\n      - { name: id, type: int }\n",
			wantErr: "duplicate record type",
		},
		{
			name:    "empty field list",
			yaml:    "package: example.com/m\ntarget: ./out\nrecords:\n  - name: A\n    fields: []\n",
			wantErr: "no fields",
		},
		{
			name:    "two soft-delete columns",
			yaml:    "package: example.com/m\ntarget: ./out\nrecords:\n  - name: A\n    fields:\n      - { name: id, type: int }\n      - { name: d1, type: time, deleted_with: \"NOW()\" }\n      - { name: d2, type: time, deleted_with: \"NOW()\" }\n",
			wantErr: "multiple soft-delete columns",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := gen.LoadConfig(writeConfig(t, tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
