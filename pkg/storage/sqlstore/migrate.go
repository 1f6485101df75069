package sqlstore

import (
	"ctwatch"
	"database/sql"
	"fmt"
	"path"

	"github.com/pressly/goose/v3"
)

// Migrate applies the embedded migrations of the store's dialect up to the latest version.
func (s *Store) Migrate() error {
	db, ok := s.DB.(*sql.DB)
	if !ok {
		return fmt.Errorf("could not migrate inside a transaction")
	}

	return Migrate(db, s.Dialect)
}

// Migrate applies the embedded migrations for dialect ("postgres" or "sqlite3") to db.
func Migrate(db *sql.DB, dialect string) error {
	goose.SetBaseFS(ctwatch.Migrations)

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("could not set goose dialect to %s: %w", dialect, err)
	}
	if err := goose.Up(db, path.Join("migrations", dialect)); err != nil {
		return fmt.Errorf("could not migrate %s: %w", dialect, err)
	}

	return nil
}
