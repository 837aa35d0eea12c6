package dialect_test

import (
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/syssam/sqlcrud/dialect"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuote(t *testing.T) {
	t.Parallel()
	tests := []struct {
		dialect string
		want    string
	}{
		{dialect.Any, `"name"`},
		{dialect.SQLServer, `"name"`},
		{dialect.Postgres, `"name"`},
		{dialect.SQLite, `"name"`},
		{dialect.MySQL, "`name`"},
	}
	for _, tt := range tests {
		t.Run(tt.dialect, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, dialect.Quote(tt.dialect, "name"))
		})
	}
}

func TestSupported(t *testing.T) {
	t.Parallel()
	for _, tag := range dialect.Dialects() {
		assert.True(t, dialect.Supported(tag), tag)
	}
	assert.False(t, dialect.Supported("oracle"))
	assert.False(t, dialect.Supported(""))
}

type nopDriver struct{ dialect string }

func (nopDriver) Exec(context.Context, string, any, any) error  { return nil }
func (nopDriver) Query(context.Context, string, any, any) error { return nil }
func (d nopDriver) Dialect() string                             { return d.dialect }
func (nopDriver) Close() error                                  { return nil }
func (d nopDriver) Tx(context.Context) (dialect.Tx, error) {
	return dialect.NopTx(d), nil
}

func TestDebugDriver(t *testing.T) {
	t.Parallel()
	var sb strings.Builder
	logger := slog.New(slog.NewTextHandler(&sb, &slog.HandlerOptions{Level: slog.LevelDebug}))
	drv := dialect.Debug(nopDriver{dialect: dialect.SQLite}, logger)

	err := drv.Exec(context.Background(), "INSERT INTO `t` (`a`) VALUES (?)", []any{1}, nil)
	require.NoError(t, err)
	assert.Contains(t, sb.String(), "driver.Exec")
	assert.Contains(t, sb.String(), "INSERT INTO")

	sb.Reset()
	err = drv.Query(context.Background(), "SELECT 1", []any{}, nil)
	require.NoError(t, err)
	assert.Contains(t, sb.String(), "driver.Query")

	tx, err := drv.Tx(context.Background())
	require.NoError(t, err)
	require.NoError(t, tx.Commit())
}
