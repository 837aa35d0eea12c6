package sql_test

import (
	"context"
	"testing"
	"time"

	"github.com/syssam/sqlcrud/dialect"
	"github.com/syssam/sqlcrud/dialect/sql"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsDriver(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	var slow []string
	drv := sql.NewStatsDriver(
		sql.OpenDB(dialect.SQLite, db),
		sql.WithSlowThreshold(0), // everything is slow.
		sql.WithSlowQueryHook(func(_ context.Context, query string, _ []any, _ time.Duration) {
			slow = append(slow, query)
		}),
	)

	mock.ExpectExec(`DELETE FROM "users"`).WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectQuery(`SELECT`).WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

	var res sql.Result
	require.NoError(t, drv.Exec(context.Background(), `DELETE FROM "users" WHERE "users"."id" = ?`, []any{1}, &res))
	rows := &sql.Rows{}
	require.NoError(t, drv.Query(context.Background(), `SELECT "users"."id" FROM "users"`, []any{}, rows))
	rows.Close()

	stats := drv.Stats()
	assert.Equal(t, int64(1), stats.TotalExecs)
	assert.Equal(t, int64(1), stats.TotalQueries)
	assert.Equal(t, int64(2), stats.SlowQueries)
	assert.Equal(t, int64(0), stats.Errors)
	assert.Len(t, slow, 2)
	assert.NotEmpty(t, stats.String())

	drv.Reset()
	assert.Equal(t, int64(0), drv.Stats().TotalExecs)
}

func TestStatsDriverErrors(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	drv := sql.NewStatsDriver(sql.OpenDB(dialect.SQLite, db))

	mock.ExpectExec(`DELETE`).WillReturnError(assert.AnError)
	var res sql.Result
	require.Error(t, drv.Exec(context.Background(), `DELETE FROM "users"`, []any{}, &res))
	assert.Equal(t, int64(1), drv.Stats().Errors)
}

func TestAvgDuration(t *testing.T) {
	t.Parallel()
	s := sql.StatsSnapshot{}
	assert.Equal(t, time.Duration(0), s.AvgDuration())
	s = sql.StatsSnapshot{TotalQueries: 1, TotalExecs: 1, TotalDuration: 10 * time.Millisecond}
	assert.Equal(t, 5*time.Millisecond, s.AvgDuration())
}
