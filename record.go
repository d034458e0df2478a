package retable

import (
	"reflect"
	"slices"
)

// Record is a single row of a table addressed by field name.
//
// A field that is missing from the map or holds nil
// is treated as undefined by everything in this module.
type Record map[string]any

// Lookup returns the value of a field and whether
// the field is defined, meaning present and not nil.
func (r Record) Lookup(field string) (value any, defined bool) {
	value, ok := r[field]
	if !ok || IsNullLike(reflect.ValueOf(value)) {
		return nil, false
	}
	return value, true
}

// Fields returns the sorted field names of the record.
func (r Record) Fields() []string {
	fields := make([]string, 0, len(r))
	for field := range r {
		fields = append(fields, field)
	}
	slices.Sort(fields)
	return fields
}

var _ View = new(RecordsView)

// RecordsView is a View of Records where every column
// reads the record field with the same index in Keys.
// Cols holds the column titles, if Cols is shorter than Keys
// then the keys are used as titles for the remaining columns.
type RecordsView struct {
	Tit  string
	Keys []string
	Cols []string
	Rows []Record
}

// NewRecordsView returns a RecordsView using the keys
// as column titles.
func NewRecordsView(title string, rows []Record, keys ...string) *RecordsView {
	return &RecordsView{Tit: title, Keys: keys, Rows: rows}
}

func (view *RecordsView) Title() string { return view.Tit }

func (view *RecordsView) Columns() []string {
	if len(view.Cols) >= len(view.Keys) {
		return view.Cols[:len(view.Keys)]
	}
	cols := make([]string, len(view.Keys))
	copy(cols, view.Keys)
	copy(cols, view.Cols)
	return cols
}

func (view *RecordsView) NumRows() int { return len(view.Rows) }

func (view *RecordsView) Cell(row, col int) any {
	if row < 0 || col < 0 || row >= len(view.Rows) || col >= len(view.Keys) {
		return nil
	}
	return view.Rows[row][view.Keys[col]]
}

// ViewRecords reads all rows of a View as Records
// using the column titles of the View as field names.
// Cells that are nil are not added to the records.
func ViewRecords(view View) []Record {
	cols := view.Columns()
	records := make([]Record, view.NumRows())
	for row := range records {
		rec := make(Record, len(cols))
		for col, field := range cols {
			if val := view.Cell(row, col); val != nil {
				rec[field] = val
			}
		}
		records[row] = rec
	}
	return records
}
