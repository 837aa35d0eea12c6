package dialect

import (
	"context"
	"log/slog"
	"time"
)

// Supported dialect tags. A dialect affects identifier quoting and,
// for Postgres, the placeholder syntax emitted by the statement
// compiler. It never affects statement semantics.
const (
	// Any is the generic ANSI dialect. Identifiers are quoted with
	// double quotes and placeholders are positional question marks.
	Any = "any"

	// SQLServer is the T-SQL dialect tag.
	SQLServer = "sqlserver"

	// MySQL is the MySQL/MariaDB dialect tag. The only dialect that
	// quotes identifiers with backticks.
	MySQL = "mysql"

	// Postgres is the PostgreSQL dialect tag. Placeholders are
	// translated to the numbered $N form at compile time.
	Postgres = "postgres"

	// SQLite is the SQLite dialect tag.
	SQLite = "sqlite"
)

// Dialects returns all supported dialect tags.
func Dialects() []string {
	return []string{Any, SQLServer, MySQL, Postgres, SQLite}
}

// Supported reports whether the given tag names a supported dialect.
func Supported(tag string) bool {
	switch tag {
	case Any, SQLServer, MySQL, Postgres, SQLite:
		return true
	}
	return false
}

// Quote quotes an identifier for the given dialect. MySQL wraps
// identifiers in backticks; every other dialect uses double quotes.
// No escaping of embedded quote characters is performed; the schema
// layer rejects identifiers containing quote characters at definition
// time.
func Quote(dialect, ident string) string {
	if dialect == MySQL {
		return "`" + ident + "`"
	}
	return `"` + ident + `"`
}

// ExecQuerier wraps the basic Exec and Query methods. It is the
// single capability the record runtime consumes from its environment.
//
// For Exec, v is expected to be a *sql.Result (or nil when the result
// is discarded). For Query, v is expected to be a *sql.Rows wrapper.
type ExecQuerier interface {
	// Exec executes a statement that doesn't return rows.
	Exec(ctx context.Context, query string, args, v any) error
	// Query executes a statement that returns rows.
	Query(ctx context.Context, query string, args, v any) error
}

// Driver is the interface that wraps all database operations.
type Driver interface {
	ExecQuerier
	// Tx starts and returns a new transaction.
	Tx(ctx context.Context) (Tx, error)
	// Close closes the underlying connection.
	Close() error
	// Dialect returns the dialect tag of the driver.
	Dialect() string
}

// Tx wraps transaction behavior around a driver.
type Tx interface {
	ExecQuerier
	// Commit commits the transaction.
	Commit() error
	// Rollback discards the transaction.
	Rollback() error
}

type nopTx struct {
	Driver
}

func (nopTx) Commit() error   { return nil }
func (nopTx) Rollback() error { return nil }

// NopTx returns a Tx with a no-op Commit / Rollback.
func NopTx(d Driver) Tx {
	return nopTx{d}
}

// DebugDriver is a driver that logs all driver operations.
type DebugDriver struct {
	Driver              // underlying driver.
	log    *slog.Logger // log function. defaults to slog.Default().
}

// Debug gets a driver and an optional logger and returns
// a new debugged-driver that prints all outgoing operations.
func Debug(d Driver, logger ...*slog.Logger) Driver {
	drv := &DebugDriver{Driver: d, log: slog.Default()}
	if len(logger) == 1 {
		drv.log = logger[0]
	}
	return drv
}

// Exec logs its params and calls the underlying driver Exec method.
func (d *DebugDriver) Exec(ctx context.Context, query string, args, v any) error {
	start := time.Now()
	err := d.Driver.Exec(ctx, query, args, v)
	d.log.LogAttrs(ctx, slog.LevelDebug, "driver.Exec",
		slog.String("query", query),
		slog.Any("args", args),
		slog.Duration("duration", time.Since(start)),
	)
	return err
}

// Query logs its params and calls the underlying driver Query method.
func (d *DebugDriver) Query(ctx context.Context, query string, args, v any) error {
	start := time.Now()
	err := d.Driver.Query(ctx, query, args, v)
	d.log.LogAttrs(ctx, slog.LevelDebug, "driver.Query",
		slog.String("query", query),
		slog.Any("args", args),
		slog.Duration("duration", time.Since(start)),
	)
	return err
}

// Tx wraps the transaction of the underlying driver with logging.
func (d *DebugDriver) Tx(ctx context.Context) (Tx, error) {
	tx, err := d.Driver.Tx(ctx)
	if err != nil {
		return nil, err
	}
	d.log.LogAttrs(ctx, slog.LevelDebug, "driver.Tx started")
	return &DebugTx{tx, d.log}, nil
}

// DebugTx is a transaction implementation that logs all transaction operations.
type DebugTx struct {
	Tx
	log *slog.Logger
}

// Exec logs its params and calls the underlying transaction Exec method.
func (d *DebugTx) Exec(ctx context.Context, query string, args, v any) error {
	start := time.Now()
	err := d.Tx.Exec(ctx, query, args, v)
	d.log.LogAttrs(ctx, slog.LevelDebug, "tx.Exec",
		slog.String("query", query),
		slog.Any("args", args),
		slog.Duration("duration", time.Since(start)),
	)
	return err
}

// Query logs its params and calls the underlying transaction Query method.
func (d *DebugTx) Query(ctx context.Context, query string, args, v any) error {
	start := time.Now()
	err := d.Tx.Query(ctx, query, args, v)
	d.log.LogAttrs(ctx, slog.LevelDebug, "tx.Query",
		slog.String("query", query),
		slog.Any("args", args),
		slog.Duration("duration", time.Since(start)),
	)
	return err
}

// Commit logs this step and proceeds to call the underlying Tx.
func (d *DebugTx) Commit() error {
	d.log.Debug("tx.Commit")
	return d.Tx.Commit()
}

// Rollback logs this step and proceeds to call the underlying Tx.
func (d *DebugTx) Rollback() error {
	d.log.Debug("tx.Rollback")
	return d.Tx.Rollback()
}
