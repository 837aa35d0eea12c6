// Package gen generates the Model glue (struct, resolved schema and
// positional Values/Pointers methods) for record types declared in a
// YAML configuration file.
//
// A minimal configuration:
//
//	package: github.com/org/app/models
//	target: ./models
//	records:
//	  - name: User
//	    fields:
//	      - { name: id, type: int64, id: true, auto_increment: true }
//	      - { name: name, type: string }
//	      - { name: deleted_at, type: time, nillable: true, deleted_with: "NOW()" }
//
// Every declared record is resolved through the schema resolver at
// generation time, so definition errors (duplicate columns, multiple
// soft-delete fields, invalid identifiers) fail the build step
// instead of the program's startup.
//
// Generated files are rendered with jennifer and formatted with
// golang.org/x/tools/imports. The cmd/sqlcrudgen command wraps this
// package with a CLI and an fsnotify-based watch mode.
package gen
