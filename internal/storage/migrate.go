package storage

import (
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"sort"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// MigrateUp applies all up migrations in filename order. Statements are
// idempotent, so re-running on an up-to-date database is a no-op.
func MigrateUp(db *sql.DB) error {
	return runMigrations(db, "*.up.sql")
}

func MigrateDown(db *sql.DB) error {
	return runMigrations(db, "*.down.sql")
}

func runMigrations(db *sql.DB, pattern string) error {
	names, err := fs.Glob(migrationFS, "migrations/"+pattern)
	if err != nil {
		return fmt.Errorf("glob migrations: %w", err)
	}
	sort.Strings(names)
	for _, name := range names {
		script, err := migrationFS.ReadFile(name)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", name, err)
		}
		if _, err := db.Exec(string(script)); err != nil {
			return fmt.Errorf("apply migration %s: %w", name, err)
		}
	}
	return nil
}
