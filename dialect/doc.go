// Package dialect provides the SQL dialect abstraction for sqlcrud.
//
// A dialect determines how identifiers are quoted in generated
// statements and, for Postgres, how placeholders are spelled. It
// deliberately determines nothing else: generated statement shapes are
// identical across dialects.
//
// # Supported Dialects
//
// Each dialect is identified by a constant string tag:
//
//	dialect.Any       = "any"        // generic ANSI
//	dialect.SQLServer = "sqlserver"
//	dialect.MySQL     = "mysql"
//	dialect.Postgres  = "postgres"
//	dialect.SQLite    = "sqlite"
//
// MySQL quotes identifiers with backticks; all other dialects use
// double quotes.
//
// # Executor Interfaces
//
// The package also defines the execution contract the record runtime
// consumes. Driver is the full surface:
//
//	type Driver interface {
//	    Exec(ctx context.Context, query string, args, v any) error
//	    Query(ctx context.Context, query string, args, v any) error
//	    Tx(ctx context.Context) (Tx, error)
//	    Close() error
//	    Dialect() string
//	}
//
// ExecQuerier is the subset implemented by both Driver and Tx. The
// dialect/sql sub-package implements these interfaces on top of
// database/sql:
//
//	import (
//	    "github.com/syssam/sqlcrud/dialect"
//	    "github.com/syssam/sqlcrud/dialect/sql"
//	)
//
//	drv, err := sql.Open(dialect.SQLite, "file:app.db")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer drv.Close()
package dialect
