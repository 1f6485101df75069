package sqlstore

import (
	"ctwatch/pkg/storage"
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3"
	_ "github.com/mattn/go-sqlite3"
)

// SQLiteOptions configure a SQLite backed Store.
type SQLiteOptions struct {
	// Path is the database file. Its directory is created when missing.
	Path string
}

// NewSQLite opens (creating when needed) the SQLite database at options.Path.
// The handle is limited to one connection so writers never contend for the file lock.
func NewSQLite(options SQLiteOptions) (*Store, error) {
	if options.Path == "" {
		return nil, fmt.Errorf("sqlite path is required")
	}
	if err := os.MkdirAll(filepath.Dir(options.Path), 0o755); err != nil {
		return nil, fmt.Errorf("could not create sqlite directory: %w", err)
	}

	q := url.Values{}
	q.Set("_busy_timeout", "5000")
	q.Set("_journal_mode", "WAL")
	q.Set("_foreign_keys", "on")

	db, err := sql.Open("sqlite3", "file:"+options.Path+"?"+q.Encode())
	if err != nil {
		return nil, fmt.Errorf("could not open sqlite database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err = db.Ping(); err != nil {
		_ = db.Close()

		return nil, fmt.Errorf("could not ping sqlite database: %w", err)
	}

	return newStore(db, storage.DriverSQLite, nil), nil
}
