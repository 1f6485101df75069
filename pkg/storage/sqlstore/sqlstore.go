// Package sqlstore implements storage.Storage on top of database/sql and goqu.
// PostgreSQL (through a pgx pool) and SQLite (through mattn/go-sqlite3) share the
// same query code; only connection setup and the goqu dialect differ.
package sqlstore

import (
	"context"
	"ctwatch/pkg/storage"
	"database/sql"
	"fmt"

	"github.com/doug-martin/goqu/v9"
)

// DB defines the subset of database/sql methods used by this package. Both
// *sql.DB and *sql.Tx satisfy this interface, allowing the same code paths to be
// used within and outside transactions.
type DB interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	PrepareContext(ctx context.Context, query string) (*sql.Stmt, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// Builder abstracts the minimal subset of goqu methods used by this package to
// construct queries. Both a goqu database handle and a transaction handle
// implement this interface.
type Builder interface {
	From(table ...interface{}) *goqu.SelectDataset
	Insert(table interface{}) *goqu.InsertDataset
	Delete(table interface{}) *goqu.DeleteDataset
}

// Store implements storage.Storage for SQL databases.
type Store struct {
	// DB is the underlying executor. It is either a *sql.DB (when not in a
	// transaction) or a *sql.Tx (when inside a transaction).
	DB DB
	// Builder is the goqu handle used to construct SQL queries bound to DB.
	Builder Builder
	// Dialect is the goqu dialect name ("postgres" or "sqlite3").
	Dialect string

	// closeFn releases resources beyond the *sql.DB, such as a pgx pool.
	closeFn func()
}

// Ensure Store implements storage.Storage.
var _ storage.Storage = (*Store)(nil)

func newStore(db *sql.DB, dialect string, closeFn func()) *Store {
	return &Store{
		DB:      db,
		Builder: goqu.Dialect(dialect).DB(db),
		Dialect: dialect,
		closeFn: closeFn,
	}
}

// Close closes the underlying database handle and any pool behind it.
func (s *Store) Close() error {
	var err error
	if db, ok := s.DB.(*sql.DB); ok {
		err = db.Close()
	}
	if s.closeFn != nil {
		s.closeFn()
	}
	if err != nil {
		return fmt.Errorf("could not close database: %w", err)
	}

	return nil
}

// Commit commits the current transaction. It returns storage.ErrNotInTx if
// called when Store is not in a transactional context.
func (s *Store) Commit() error {
	tx, ok := s.DB.(*sql.Tx)
	if !ok {
		return storage.ErrNotInTx
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("could not commit tx: %w", err)
	}

	return nil
}

// Rollback aborts the current transaction. It returns storage.ErrNotInTx if
// called when Store is not in a transactional context.
func (s *Store) Rollback() error {
	tx, ok := s.DB.(*sql.Tx)
	if !ok {
		return storage.ErrNotInTx
	}

	if err := tx.Rollback(); err != nil {
		return fmt.Errorf("could not rollback tx: %w", err)
	}

	return nil
}

// Begin starts a new database transaction and returns a transactional Store
// that can be used to execute subsequent operations within that transaction.
// If called while already inside a transaction, ErrAlreadyInTx is returned.
func (s *Store) Begin(ctx context.Context) (*Store, error) {
	db, ok := s.DB.(*sql.DB)
	if !ok {
		return nil, storage.ErrAlreadyInTx
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("could not begin tx: %w", err)
	}

	return &Store{
		DB:      tx,
		Builder: goqu.NewTx(s.Dialect, tx),
		Dialect: s.Dialect,
	}, nil
}

// WithTx is a helper that starts a transaction, executes the provided callback
// with a transactional storage handle, and commits if the callback returns nil.
// If the callback returns an error, the transaction is rolled back.
func (s *Store) WithTx(ctx context.Context, cb func(tx *Store) error) error {
	tx, err := s.Begin(ctx)
	if err != nil {
		return err
	}

	if err := cb(tx); err != nil {
		_ = tx.Rollback()

		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("could not commit tx: %w", err)
	}

	return nil
}
