package sqlcrud

import (
	"errors"
	"fmt"
)

// Standard sentinel errors for runtime failures.
var (
	// ErrDataAccess is the sentinel all runtime data-access failures
	// match. Use errors.Is(err, ErrDataAccess) to distinguish executor
	// failures from definition-time errors.
	ErrDataAccess = errors.New("sqlcrud: data access failed")
)

// QueryError wraps an executor failure raised by a read operation
// (fetch-by-id, select-all), including row decode mismatches. The
// underlying error is surfaced verbatim through Unwrap; nothing is
// retried or suppressed.
//
// An absent row is not a QueryError: fetch-by-id reports absence with
// a nil record and a nil error.
type QueryError struct {
	Table string // backing table being queried.
	Op    string // operation, e.g. "by-id", "all".
	Err   error  // underlying executor or scan error.
}

// Error returns the error string.
func (e *QueryError) Error() string {
	return fmt.Sprintf("sqlcrud: querying %s (%s): %v", e.Table, e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *QueryError) Unwrap() error { return e.Err }

// Is reports whether the target matches the data-access sentinel.
func (e *QueryError) Is(err error) bool { return err == ErrDataAccess }

// NewQueryError returns a new QueryError.
func NewQueryError(table, op string, err error) *QueryError {
	return &QueryError{Table: table, Op: op, Err: err}
}

// IsQueryError returns true if the error is a QueryError.
func IsQueryError(err error) bool {
	if err == nil {
		return false
	}
	var e *QueryError
	return errors.As(err, &e)
}

// MutationError wraps an executor failure raised by a write operation
// (create, update, delete), such as a constraint violation or a
// connectivity failure.
//
// Zero rows affected is not a MutationError: update and delete report
// it as a valid outcome meaning no row currently matched.
type MutationError struct {
	Table string // backing table being mutated.
	Op    string // operation, e.g. "create", "update", "delete".
	Err   error  // underlying executor error.
}

// Error returns the error string.
func (e *MutationError) Error() string {
	return fmt.Sprintf("sqlcrud: %s %s: %v", e.Op, e.Table, e.Err)
}

// Unwrap returns the underlying error.
func (e *MutationError) Unwrap() error { return e.Err }

// Is reports whether the target matches the data-access sentinel.
func (e *MutationError) Is(err error) bool { return err == ErrDataAccess }

// NewMutationError returns a new MutationError.
func NewMutationError(table, op string, err error) *MutationError {
	return &MutationError{Table: table, Op: op, Err: err}
}

// IsMutationError returns true if the error is a MutationError.
func IsMutationError(err error) bool {
	if err == nil {
		return false
	}
	var e *MutationError
	return errors.As(err, &e)
}
