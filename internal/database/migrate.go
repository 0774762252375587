package database

import (
	"database/sql"
	"fmt"
	"os"
)

// RunSQLFile executes the contents of a single SQL file inside one
// transaction. The file is applied as-is; there is no migration bookkeeping
// beyond running it.
func RunSQLFile(db *sql.DB, path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read SQL file %s: %w", path, err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}

	if _, err := tx.Exec(string(content)); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to execute %s: %w", path, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit %s: %w", path, err)
	}

	return nil
}
