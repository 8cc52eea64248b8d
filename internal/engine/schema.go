package engine

import "github.com/nitcli/nit/internal/store"

// Schema returns the database's DDL text, used by the schema command to
// let callers inspect or redirect the table layout without opening a
// database. Grounded on original_source's commands/schema.rs trivial
// passthrough.
func Schema() string {
	return store.SchemaSQL()
}
