package sqlgen_test

import (
	"strings"
	"testing"

	"github.com/syssam/sqlcrud/dialect"
	"github.com/syssam/sqlcrud/schema"
	"github.com/syssam/sqlcrud/schema/field"
	"github.com/syssam/sqlcrud/sqlgen"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recordSchema(t *testing.T) *schema.Schema {
	t.Helper()
	sc, err := schema.New("Record", []field.Field{
		field.Int64("id").ID().AutoIncrement(),
		field.String("name"),
	})
	require.NoError(t, err)
	return sc
}

func itemSchema(t *testing.T) *schema.Schema {
	t.Helper()
	sc, err := schema.New("Item", []field.Field{
		field.Int64("id").ID(),
		field.String("name"),
		field.Time("deleted_at").Nillable().DeletedWith("NOW()"),
	})
	require.NoError(t, err)
	return sc
}

func TestCompileRecord(t *testing.T) {
	t.Parallel()
	stmts, err := sqlgen.Compile(recordSchema(t), dialect.Any)
	require.NoError(t, err)
	assert.Equal(t, `SELECT "records"."id", "records"."name" FROM "records"`, stmts.Select)
	assert.Equal(t, `SELECT "records"."id", "records"."name" FROM "records" WHERE "records"."id" = ? LIMIT 1`, stmts.SelectByID)
	assert.Equal(t, `INSERT INTO "records" ("name") VALUES (?)`, stmts.Insert)
	assert.Equal(t, `UPDATE "records" SET "name" = ? WHERE "records"."id" = ?`, stmts.UpdateByID)
	assert.Equal(t, `DELETE FROM "records" WHERE "records"."id" = ?`, stmts.DeleteByID)
	assert.Equal(t, []string{"id", "name"}, stmts.Columns)
}

func TestCompileSoftDelete(t *testing.T) {
	t.Parallel()
	stmts, err := sqlgen.Compile(itemSchema(t), dialect.Any)
	require.NoError(t, err)
	assert.Equal(t, `SELECT "items"."id", "items"."name", "items"."deleted_at" FROM "items" WHERE "deleted_at" IS NULL`, stmts.Select)
	assert.Equal(t, `SELECT "items"."id", "items"."name", "items"."deleted_at" FROM "items" WHERE "items"."id" = ? AND "deleted_at" IS NULL LIMIT 1`, stmts.SelectByID)
	// Non-auto-increment identity is inserted exactly once.
	assert.Equal(t, `INSERT INTO "items" ("id", "name", "deleted_at") VALUES (?, ?, ?)`, stmts.Insert)
	assert.Equal(t, `UPDATE "items" SET "name" = ?, "deleted_at" = ? WHERE "items"."id" = ? AND "deleted_at" IS NULL`, stmts.UpdateByID)
	// Delete becomes a masked update with the expression spliced in.
	assert.Equal(t, `UPDATE "items" SET "deleted_at" = NOW() WHERE "items"."id" = ? AND "deleted_at" IS NULL`, stmts.DeleteByID)
}

func TestMySQLQuoting(t *testing.T) {
	t.Parallel()
	stmts, err := sqlgen.Compile(recordSchema(t), dialect.MySQL)
	require.NoError(t, err)
	assert.Equal(t, "INSERT INTO `records` (`name`) VALUES (?)", stmts.Insert)
	assert.Equal(t, "SELECT `records`.`id`, `records`.`name` FROM `records`", stmts.Select)
	assert.NotContains(t, stmts.Select, `"`)
}

func TestPostgresPlaceholders(t *testing.T) {
	t.Parallel()
	sc, err := schema.New("User", []field.Field{
		field.Int64("id").ID().AutoIncrement(),
		field.String("name"),
		field.String("email"),
	})
	require.NoError(t, err)
	stmts, err := sqlgen.Compile(sc, dialect.Postgres)
	require.NoError(t, err)
	assert.Equal(t, `INSERT INTO "users" ("name", "email") VALUES ($1, $2)`, stmts.Insert)
	assert.Equal(t, `UPDATE "users" SET "name" = $1, "email" = $2 WHERE "users"."id" = $3`, stmts.UpdateByID)
	assert.Equal(t, `SELECT "users"."id", "users"."name", "users"."email" FROM "users" WHERE "users"."id" = $1 LIMIT 1`, stmts.SelectByID)
	assert.Equal(t, `DELETE FROM "users" WHERE "users"."id" = $1`, stmts.DeleteByID)
}

func TestUnsupportedDialect(t *testing.T) {
	t.Parallel()
	_, err := sqlgen.Compile(recordSchema(t), "oracle")
	require.Error(t, err)
	assert.ErrorIs(t, err, sqlgen.ErrUnsupportedDialect)
	assert.Contains(t, err.Error(), `unsupported dialect "oracle"`)
	assert.Panics(t, func() { sqlgen.MustCompile(recordSchema(t), "oracle") })
}

func TestDeterminism(t *testing.T) {
	t.Parallel()
	sc := itemSchema(t)
	a, err := sqlgen.Compile(sc, dialect.SQLite)
	require.NoError(t, err)
	b, err := sqlgen.Compile(sc, dialect.SQLite)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

// Placeholder counts must always match the cardinality of the column
// set the statement was compiled from.
func TestPlaceholderCounts(t *testing.T) {
	t.Parallel()
	sc, err := schema.New("Wide", []field.Field{
		field.Int64("id").ID().AutoIncrement(),
		field.String("a"),
		field.String("b").IgnoreInsert(),
		field.String("c").IgnoreUpdate(),
		field.Time("deleted_at").Nillable().IgnoreInsert().IgnoreUpdate().DeletedWith("CURRENT_TIMESTAMP"),
	})
	require.NoError(t, err)
	stmts, err := sqlgen.Compile(sc, dialect.SQLite)
	require.NoError(t, err)
	assert.Equal(t, len(sc.InsertIndexes), strings.Count(stmts.Insert, "?"))
	// Update: one placeholder per SET column plus the trailing identity.
	assert.Equal(t, len(sc.UpdateIndexes)+1, strings.Count(stmts.UpdateByID, "?"))
	assert.Equal(t, 1, strings.Count(stmts.SelectByID, "?"))
	// No soft-delete predicate leaks into a statement twice.
	assert.Equal(t, 1, strings.Count(stmts.Select, "IS NULL"))
}

func TestNoSoftDeleteNoPredicate(t *testing.T) {
	t.Parallel()
	stmts, err := sqlgen.Compile(recordSchema(t), dialect.SQLite)
	require.NoError(t, err)
	for _, s := range []string{stmts.Select, stmts.SelectByID, stmts.Insert, stmts.UpdateByID, stmts.DeleteByID} {
		assert.NotContains(t, s, "IS NULL")
	}
}
