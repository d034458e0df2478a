// Package datatable implements the engine of an interactive data table:
// free-text filtering, single column sorting, pagination,
// column visibility with overflow collapse, and expandable
// detail rows for hidden columns.
//
// A Table holds the data and the view State and every change
// of the State is followed by a pure derivation of the
// rendered Page, see Derive.
package datatable

import (
	"errors"
	"fmt"

	retable "github.com/plan-dashboard/go-retable"
)

var (
	// ErrNoColumns is returned for Data without columns.
	ErrNoColumns = errors.New("table has no columns")
	// ErrInvalidOrder is returned for a default Order
	// that does not reference an existing column.
	ErrInvalidOrder = errors.New("invalid default order")
)

// Column describes a logical field of the table rows.
type Column struct {
	// Key is the record field used for sorting and filtering.
	Key string `json:"key" yaml:"key"`
	// Display is an optional record field used for rendering,
	// for example a formatted or linked version of Key's value.
	Display string `json:"display,omitempty" yaml:"display,omitempty"`
	// Title is the column label.
	Title string `json:"title,omitempty" yaml:"title,omitempty"`
}

// DisplayKey returns Display if set, else Key.
func (c *Column) DisplayKey() string {
	if c.Display != "" {
		return c.Display
	}
	return c.Key
}

// Label returns Title if set, else Key.
func (c *Column) Label() string {
	if c.Title != "" {
		return c.Title
	}
	return c.Key
}

// ColumnsFromKeys returns a Column for every key
// with the key used as title.
func ColumnsFromKeys(keys ...string) []Column {
	columns := make([]Column, len(keys))
	for i, key := range keys {
		columns[i] = Column{Key: key, Title: key}
	}
	return columns
}

// Order is the default sort of a table.
type Order struct {
	Column     int
	Descending bool
}

func (o Order) String() string {
	if o.Descending {
		return fmt.Sprintf("[%d, desc]", o.Column)
	}
	return fmt.Sprintf("[%d, asc]", o.Column)
}

// Data is the input of a Table as delivered
// by a data fetching collaborator.
type Data struct {
	Title   string
	Columns []Column
	Rows    []retable.Record
	Order   Order
}

// Validate checks that Data has columns
// and that Order references one of them.
func (d *Data) Validate() error {
	if len(d.Columns) == 0 {
		return ErrNoColumns
	}
	if d.Order.Column < 0 || d.Order.Column >= len(d.Columns) {
		return fmt.Errorf("%w: column %d of %d", ErrInvalidOrder, d.Order.Column, len(d.Columns))
	}
	return nil
}

// DataFromRecords returns Data with columns for the keys
// as they are returned by the record readers of this module.
func DataFromRecords(title string, rows []retable.Record, keys []string, order Order) Data {
	return Data{
		Title:   title,
		Columns: ColumnsFromKeys(keys...),
		Rows:    rows,
		Order:   order,
	}
}
