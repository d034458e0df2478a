package retable

import (
	"strings"
)

// StringsView is a View implementation that uses strings as cell values.
// It is how parsed CSV and spreadsheet data enters the module
// before being converted to Records.
//
// StringsView supports sparse data: a row within Rows can have fewer slice elements
// than Cols, in which case empty strings ("") are returned as values for missing cells.
type StringsView struct {
	Tit  string
	Cols []string
	Rows [][]string
}

var _ View = new(StringsView)

// NewStringsView creates a new StringsView.
// If no cols are passed, then the first row
// is used as column titles and removed from the data rows.
// All column titles have leading and trailing whitespace trimmed.
func NewStringsView(title string, rows [][]string, cols ...string) *StringsView {
	if len(cols) == 0 && len(rows) > 0 {
		cols = rows[0]
		rows = rows[1:]
	}
	for i, col := range cols {
		cols[i] = strings.TrimSpace(col)
	}
	return &StringsView{Tit: title, Cols: cols, Rows: rows}
}

func (view *StringsView) Title() string     { return view.Tit }
func (view *StringsView) Columns() []string { return view.Cols }
func (view *StringsView) NumRows() int      { return len(view.Rows) }

// Cell returns the string at [row][col],
// an empty string for a missing cell of a sparse row,
// or nil if row or col are out of bounds.
func (view *StringsView) Cell(row, col int) any {
	if row < 0 || col < 0 || row >= len(view.Rows) || col >= len(view.Cols) {
		return nil
	}
	if col >= len(view.Rows[row]) {
		return ""
	}
	return view.Rows[row][col]
}

// NewHeaderViewFrom creates a HeaderView from
// the title and columns of an existing View.
func NewHeaderViewFrom(source View) *HeaderView {
	return &HeaderView{Tit: source.Title(), Cols: source.Columns()}
}

// HeaderView is a View with a single row
// that has the column titles as values.
// Writers use it to format header rows
// with the same formatters as the data rows.
type HeaderView struct {
	Tit  string
	Cols []string
}

func (view *HeaderView) Title() string     { return view.Tit }
func (view *HeaderView) Columns() []string { return view.Cols }
func (view *HeaderView) NumRows() int      { return 1 }

func (view *HeaderView) Cell(row, col int) any {
	if row != 0 || col < 0 || col >= len(view.Cols) {
		return nil
	}
	return view.Cols[col]
}
