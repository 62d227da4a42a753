package store

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"

	"github.com/isdalog/isdalog/migrations"
	"github.com/pressly/goose/v3"
)

// gooseDialects maps driver names to goose dialects.
var gooseDialects = map[string]goose.Dialect{
	DriverSQLite: goose.DialectSQLite3,
	DriverMySQL:  goose.DialectMySQL,
}

// RunMigrations creates the schema for driver using the embedded SQL files
// from the migrations package. Already-applied migrations are skipped.
func RunMigrations(ctx context.Context, db *sql.DB, driver string) error {
	dialect, ok := gooseDialects[driver]
	if !ok {
		return fmt.Errorf("no migrations for driver %q", driver)
	}

	fsys, err := fs.Sub(migrations.FS, driver)
	if err != nil {
		return fmt.Errorf("open migrations for %s: %w", driver, err)
	}

	provider, err := goose.NewProvider(dialect, db, fsys)
	if err != nil {
		return fmt.Errorf("create migration provider: %w", err)
	}

	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	return nil
}
