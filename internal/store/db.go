package store

import (
	"context"
	"database/sql"
)

// DBTX is the slice of database/sql that the user, contact, and address
// stores execute against. Both *sql.DB and *sql.Tx satisfy it, so a store
// runs on the shared pool by default and joins a transaction via WithTx
// when a service needs its ownership check and write to be atomic.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	PrepareContext(ctx context.Context, query string) (*sql.Stmt, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
