package sqlcrud

import (
	"context"
	"database/sql"
	"time"

	"github.com/syssam/sqlcrud/dialect"
	dsql "github.com/syssam/sqlcrud/dialect/sql"
	"github.com/syssam/sqlcrud/schema"
	"github.com/syssam/sqlcrud/sqlgen"
)

// Model is implemented by record types. Implementations are typically
// generated with cmd/sqlcrudgen, but hand-written ones are equally
// valid; there is no runtime reflection anywhere.
//
// Values and Pointers must follow the schema's column declaration
// order exactly. The repository picks insert and update arguments out
// of Values by the schema's index lists, so the SQL placeholder order
// and the bind order are derived from the same source.
type Model interface {
	// Schema returns the resolved record schema. It must return the
	// same *schema.Schema on every call (a package-level variable).
	Schema() *schema.Schema

	// Values returns all column values in declaration order.
	Values() []any

	// Pointers returns scan destinations for all columns in
	// declaration order.
	Pointers() []any
}

// RepositoryOption configures a Repository.
type RepositoryOption func(*repositoryOptions)

type repositoryOptions struct {
	cache Cache
	ttl   time.Duration
}

// WithCache enables a read-through record cache for ByID. Cached
// entries are invalidated on Create, Update and Delete of the same
// identity. A ttl of 0 means entries never expire.
func WithCache(c Cache, ttl time.Duration) RepositoryOption {
	return func(o *repositoryOptions) {
		o.cache = c
		o.ttl = ttl
	}
}

// Repository provides the uniform create / fetch-by-id / update /
// delete surface for one record type T. PT is the pointer type of T
// and must implement Model.
//
// The repository compiles the record's statement set once, at
// construction, from the driver's dialect. All state is read-only
// afterwards; a Repository is safe for concurrent use by multiple
// goroutines. Connection pooling, transactions, cancellation and
// timeouts all belong to the driver.
type Repository[T any, PT interface {
	Model
	*T
}] struct {
	drv    dialect.Driver
	schema *schema.Schema
	stmts  *sqlgen.Statements
	cache  Cache
	ttl    time.Duration
}

// NewRepository builds a repository for the record type T on top of
// the given driver. It fails only on definition errors (an
// unsupported driver dialect); runtime failures surface from the
// operations themselves.
func NewRepository[T any, PT interface {
	Model
	*T
}](drv dialect.Driver, opts ...RepositoryOption) (*Repository[T, PT], error) {
	var o repositoryOptions
	for _, opt := range opts {
		opt(&o)
	}
	var zero T
	sc := PT(&zero).Schema()
	stmts, err := sqlgen.Compile(sc, drv.Dialect())
	if err != nil {
		return nil, err
	}
	return &Repository[T, PT]{
		drv:    drv,
		schema: sc,
		stmts:  stmts,
		cache:  o.cache,
		ttl:    o.ttl,
	}, nil
}

// Schema returns the record schema the repository operates on.
func (r *Repository[T, PT]) Schema() *schema.Schema { return r.schema }

// Statements returns the compiled statement set.
func (r *Repository[T, PT]) Statements() *sqlgen.Statements { return r.stmts }

// Create inserts the record and returns the number of rows affected.
// Insert arguments are bound in the schema's insert column order. For
// auto-increment identities the generated key is not captured; fetch
// the record again if the assigned identity is needed.
func (r *Repository[T, PT]) Create(ctx context.Context, m PT) (int64, error) {
	values := m.Values()
	n, err := r.exec(ctx, r.stmts.Insert, pick(values, r.schema.InsertIndexes))
	if err != nil {
		return 0, NewMutationError(r.schema.Table, "create", err)
	}
	r.invalidate(ctx, values[r.schema.IDIndex])
	return n, nil
}

// ByID fetches the record with the given identity. It returns
// (nil, nil) when no row matches: absence is an explicit outcome,
// never an error and never a zeroed record.
func (r *Repository[T, PT]) ByID(ctx context.Context, id any) (PT, error) {
	if m, ok := r.fromCache(ctx, id); ok {
		return m, nil
	}
	rows := &dsql.Rows{}
	if err := r.drv.Query(ctx, r.stmts.SelectByID, []any{id}, rows); err != nil {
		return nil, NewQueryError(r.schema.Table, "by-id", err)
	}
	defer rows.Close()
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, NewQueryError(r.schema.Table, "by-id", err)
		}
		return nil, nil
	}
	var rec T
	m := PT(&rec)
	if err := rows.Scan(m.Pointers()...); err != nil {
		return nil, NewQueryError(r.schema.Table, "by-id", err)
	}
	r.toCache(ctx, id, m)
	return m, nil
}

// All fetches every record, filtered by the soft-delete predicate
// when the record type has one.
func (r *Repository[T, PT]) All(ctx context.Context) ([]PT, error) {
	rows := &dsql.Rows{}
	if err := r.drv.Query(ctx, r.stmts.Select, []any{}, rows); err != nil {
		return nil, NewQueryError(r.schema.Table, "all", err)
	}
	defer rows.Close()
	var out []PT
	for rows.Next() {
		var rec T
		m := PT(&rec)
		if err := rows.Scan(m.Pointers()...); err != nil {
			return nil, NewQueryError(r.schema.Table, "all", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, NewQueryError(r.schema.Table, "all", err)
	}
	return out, nil
}

// Update updates the record by identity and returns the number of
// rows affected. Arguments are bound in the schema's update column
// order, with the identity value last, matching the compiled
// placeholder order.
//
// Zero rows affected is a valid outcome: no row currently matched
// (already deleted, unknown identity, or excluded by the soft-delete
// predicate). Callers must check it explicitly.
func (r *Repository[T, PT]) Update(ctx context.Context, m PT) (int64, error) {
	values := m.Values()
	args := pick(values, r.schema.UpdateIndexes)
	args = append(args, values[r.schema.IDIndex])
	n, err := r.exec(ctx, r.stmts.UpdateByID, args)
	if err != nil {
		return 0, NewMutationError(r.schema.Table, "update", err)
	}
	r.invalidate(ctx, values[r.schema.IDIndex])
	return n, nil
}

// Delete deletes the record by its identity value. See DeleteByID.
func (r *Repository[T, PT]) Delete(ctx context.Context, m PT) (int64, error) {
	return r.DeleteByID(ctx, m.Values()[r.schema.IDIndex])
}

// DeleteByID deletes the row with the given identity and returns the
// number of rows affected, with the same zero-means-no-match
// semantics as Update. For soft-delete record types this executes the
// masked update; a row that is already soft-deleted reports zero.
func (r *Repository[T, PT]) DeleteByID(ctx context.Context, id any) (int64, error) {
	n, err := r.exec(ctx, r.stmts.DeleteByID, []any{id})
	if err != nil {
		return 0, NewMutationError(r.schema.Table, "delete", err)
	}
	r.invalidate(ctx, id)
	return n, nil
}

// exec runs a mutation statement and returns the rows affected.
func (r *Repository[T, PT]) exec(ctx context.Context, query string, args []any) (int64, error) {
	var res sql.Result
	if err := r.drv.Exec(ctx, query, args, &res); err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *Repository[T, PT]) fromCache(ctx context.Context, id any) (PT, bool) {
	if r.cache == nil {
		return nil, false
	}
	data, err := r.cache.Get(ctx, cacheKey(r.schema.Table, id))
	if err != nil || data == nil {
		return nil, false
	}
	var rec T
	m := PT(&rec)
	if err := decodeRecord(data, m.Pointers()); err != nil {
		// Stale or foreign entry. Drop it and fall back to the store.
		_ = r.cache.Delete(ctx, cacheKey(r.schema.Table, id))
		return nil, false
	}
	return m, true
}

func (r *Repository[T, PT]) toCache(ctx context.Context, id any, m PT) {
	if r.cache == nil {
		return
	}
	data, err := encodeRecord(m.Values())
	if err != nil {
		return
	}
	_ = r.cache.Set(ctx, cacheKey(r.schema.Table, id), data, r.ttl)
}

func (r *Repository[T, PT]) invalidate(ctx context.Context, id any) {
	if r.cache == nil {
		return
	}
	_ = r.cache.Delete(ctx, cacheKey(r.schema.Table, id))
}

// pick selects values by the given index list, preserving order.
func pick(values []any, idx []int) []any {
	out := make([]any, len(idx))
	for i, j := range idx {
		out[i] = values[j]
	}
	return out
}
