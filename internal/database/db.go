package database

import (
	"context"
	"database/sql"
)

// DB is the statement surface the repositories run against. Exec reports
// the number of affected rows so guarded updates can tell a miss from a hit.
type DB interface {
	Exec(ctx context.Context, query string, args ...any) (int64, error)
	Query(ctx context.Context, query string, args ...any) (Rows, error)
	QueryRow(ctx context.Context, query string, args ...any) Row

	Ping(ctx context.Context) error
	Close() error

	// SQLDB exposes a database/sql handle over the same pool for the
	// migration runner.
	SQLDB() *sql.DB
}

type Rows interface {
	Close()
	Next() bool
	Scan(dest ...any) error
	Err() error
}

type Row interface {
	Scan(dest ...any) error
}
