package testhelpers

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
)

// LoadFixtures runs the given SQL files from dir in one transaction, so a
// broken fixture leaves the tables untouched.
func LoadFixtures(ctx context.Context, db *sqlx.DB, dir string, files ...string) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin fixtures tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, file := range files {
		content, err := os.ReadFile(filepath.Join(dir, file))
		if err != nil {
			return fmt.Errorf("read fixture %s: %w", file, err)
		}
		if _, err := tx.ExecContext(ctx, string(content)); err != nil {
			return fmt.Errorf("load fixture %s: %w", file, err)
		}
	}

	return tx.Commit()
}

// CountRows returns the number of rows in table.
func CountRows(ctx context.Context, db *sqlx.DB, table string) (int, error) {
	var n int
	err := db.GetContext(ctx, &n, fmt.Sprintf("SELECT COUNT(*) FROM %s", table))
	return n, err
}
