// Package dbx is the persistence gateway shared by repositories: a minimal
// statement interface satisfied by both *sql.DB and *sql.Tx, and a helper
// that runs a function inside a transaction.
package dbx

import (
	"context"
	"database/sql"
)

// DBTX is the subset of database/sql the repositories use.
//
//   - ExecContext executes a statement and reports affected rows.
//   - QueryContext returns every row of a query.
//   - QueryRowContext returns at most one row; Scan reports sql.ErrNoRows
//     when nothing matched.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// WithTx begins a transaction, runs fn with it and commits when fn returns
// nil. Errors and panics roll the transaction back; panics are rethrown.
func WithTx(ctx context.Context, db *sql.DB, opts *sql.TxOptions, fn func(ctx context.Context, tx DBTX) error) (err error) {
	tx, err := db.BeginTx(ctx, opts)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		err = tx.Commit()
	}()

	return fn(ctx, tx)
}
