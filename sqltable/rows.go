// Package sqltable reads SQL query results as table data.
package sqltable

import (
	"context"
	"database/sql"
)

var _ Rows = &sql.Rows{}

// Rows is the subset of *sql.Rows used by ScanRowsAsView.
type Rows interface {
	Columns() ([]string, error)
	Scan(dest ...any) error
	Close() error
	Next() bool
	Err() error
}

// Querier is implemented by *sql.DB, *sql.Conn, and *sql.Tx.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}
