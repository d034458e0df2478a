package sqltable

import (
	"context"
	"database/sql"
	"fmt"
	"slices"

	retable "github.com/plan-dashboard/go-retable"
)

// ScanRowsAsView scans all rows into an AnyValuesView
// with the result column names as columns and closes rows.
// Byte slices are copied because the driver may reuse them.
func ScanRowsAsView(ctx context.Context, rows Rows) (*retable.AnyValuesView, error) {
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	view := &retable.AnyValuesView{Cols: columns}
	for rows.Next() {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		scannedValues := make([]any, len(columns))
		valueScanners := make([]any, len(columns))
		for i := range valueScanners {
			valueScanners[i] = valueScanner{&scannedValues[i]}
		}
		err = rows.Scan(valueScanners...)
		if err != nil {
			return view, err
		}
		view.Rows = append(view.Rows, scannedValues)
	}
	return view, rows.Err()
}

// QueryRecords executes query and returns the result rows as Records
// keyed by the result column names. NULL values are left out
// and byte slices are converted to strings.
func QueryRecords(ctx context.Context, db Querier, query string, args ...any) (records []retable.Record, keys []string, err error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("query failed: %w", err)
	}
	view, err := ScanRowsAsView(ctx, rows)
	if err != nil {
		return nil, nil, err
	}
	for _, row := range view.Rows {
		for i, val := range row {
			if b, ok := val.([]byte); ok {
				row[i] = string(b)
			}
		}
	}
	return retable.ViewRecords(view), view.Cols, nil
}

var (
	_ sql.Scanner = new(valueScanner)
)

type valueScanner struct {
	dest *any
}

func (s valueScanner) Scan(src any) error {
	if b, ok := src.([]byte); ok {
		src = slices.Clone(b)
	}
	*s.dest = src
	return nil
}
