package datatable

import (
	"encoding/json"
	"fmt"

	retable "github.com/plan-dashboard/go-retable"
)

// RowKeyFunc returns the identity of a row.
// column is nil for the identity of the whole row
// and non nil for the identity of a single cell.
type RowKeyFunc func(row retable.Record, column *Column) string

// DefaultRowKey identifies a row by its JSON serialization
// followed by "-" and the JSON serialization of the column.
// Rows with equal values get the same key,
// use KeyField when rows have a stable identity.
func DefaultRowKey(row retable.Record, column *Column) string {
	return jsonString(row) + "-" + jsonString(column)
}

// KeyField returns a RowKeyFunc that uses the
// string value of the passed field as row identity.
func KeyField(field string) RowKeyFunc {
	return func(row retable.Record, column *Column) string {
		key := fmt.Sprint(row[field])
		if column != nil {
			key += "-" + column.Key
		}
		return key
	}
}

func jsonString(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%#v", v)
	}
	return string(b)
}
