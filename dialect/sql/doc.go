// Package sql implements the dialect.Driver interfaces on top of the
// standard database/sql package.
//
// Open a driver with a dialect tag and a connection string:
//
//	drv, err := sql.Open(dialect.MySQL, "user:pass@tcp(localhost:3306)/app")
//
// or wrap an existing *sql.DB with OpenDB. The package also provides
// StatsDriver, a wrapper collecting statement counts, durations and
// slow query detection with slog reporting.
package sql
