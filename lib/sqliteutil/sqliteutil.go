package sqliteutil

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/tursodatabase/libsql-client-go/libsql"
	_ "modernc.org/sqlite"
)

// OpenDB opens a database at the given path (a local file for the
// "sqlite" driver, a libsql:// url for the remote driver) and applies
// the schema. Schemas are written to be idempotent (CREATE TABLE IF NOT
// EXISTS) so opening an existing database is safe.
func OpenDB(schema, path string) (*sql.DB, error) {
	driver := "sqlite"
	dsn := path
	if strings.HasPrefix(path, "libsql://") {
		driver = "libsql"
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	_, err = db.Exec(schema)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return db, nil
}
