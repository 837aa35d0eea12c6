// Package sqlcrud generates, once per record type, the five canonical
// CRUD statements (select, select-by-id, insert, update-by-id,
// delete-by-id) from a declarative schema, and exposes a uniform
// create / fetch / update / delete surface that binds record values in
// exactly the compiled placeholder order.
//
// A record type is an ordinary struct paired with a resolved schema:
//
//	type User struct {
//	    ID   int64
//	    Name string
//	}
//
//	var userSchema = schema.MustNew("User", []field.Field{
//	    field.Int64("id").ID().AutoIncrement(),
//	    field.String("name"),
//	})
//
//	func (*User) Schema() *schema.Schema { return userSchema }
//	func (u *User) Values() []any        { return []any{u.ID, u.Name} }
//	func (u *User) Pointers() []any      { return []any{&u.ID, &u.Name} }
//
// The Model glue can be written by hand, as above, or generated from a
// YAML declaration with cmd/sqlcrudgen.
//
// Operations run through a Repository bound to a dialect.Driver:
//
//	drv, err := sql.Open(dialect.SQLite, "file:app.db")
//	users, err := sqlcrud.NewRepository[User](drv)
//	n, err := users.Create(ctx, &User{Name: "hello"})
//	u, err := users.ByID(ctx, 1) // nil, nil when absent
//
// Zero rows affected from Update or Delete is a valid outcome, not an
// error; fetching an absent identity returns a nil record and a nil
// error. Executor failures surface as *QueryError / *MutationError
// wrapping the driver error verbatim.
//
// Soft deletion: a field declared with DeletedWith("NOW()") turns
// delete-by-id into a masked update that splices the expression
// verbatim into the statement text. The expression is trusted SQL
// source, never a bound parameter and never user input.
package sqlcrud
