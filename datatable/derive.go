package datatable

import (
	retable "github.com/plan-dashboard/go-retable"
)

// PaginationWindow is the maximum number of page links.
const PaginationWindow = 7

// SortIndicator is the sort state shown in a column header.
type SortIndicator int

const (
	SortNone SortIndicator = iota
	SortAscending
	SortDescending
)

func (s SortIndicator) String() string {
	switch s {
	case SortAscending:
		return "asc"
	case SortDescending:
		return "desc"
	}
	return "none"
}

// HeaderCell is a rendered column header.
type HeaderCell struct {
	// Position within the visible columns.
	Position int
	// Column is the logical column index.
	Column int
	Title  string
	Sort   SortIndicator
}

// Cell is a rendered body cell holding the display value.
type Cell struct {
	Column int
	Value  any
}

// Detail is a title/value pair of a hidden column.
type Detail struct {
	Column int
	Title  string
	Value  any
}

// Row is a rendered body row.
type Row struct {
	Key    string
	Record retable.Record
	Cells  []Cell
	// Expandable is true if some columns are hidden.
	Expandable bool
	Expanded   bool
	// Details lists the hidden columns of an expanded row.
	Details []Detail
}

// ColumnOption is an entry of the column visibility picker.
type ColumnOption struct {
	Column  int
	Title   string
	Visible bool
}

// PageSizeOption is an entry of the page size selector.
type PageSizeOption struct {
	Index    int
	Size     int
	Selected bool
}

// Info is the "showing From-To of Total" status.
// From and To are one based and zero if Total is zero.
type Info struct {
	From, To, Total int
}

// Pagination holds the navigation targets as zero based page indices.
type Pagination struct {
	Page    int
	MaxPage int
	// Pages is the window of up to PaginationWindow pages around Page.
	Pages                   []int
	First, Prev, Next, Last int
}

// Page is the rendered output of a Table.
type Page struct {
	Title             string
	Header            []HeaderCell
	Rows              []Row
	PageSizes         []PageSizeOption
	Filter            string
	Columns           []ColumnOption
	Info              Info
	Pagination        Pagination
	SomeColumnsHidden bool
	// State is the normalized State the Page was derived from.
	State State
}

// Derive filters, sorts, and paginates data according to state.
// It does not modify data or state.
// A nil rowKey uses DefaultRowKey.
func Derive(data *Data, rowKey RowKeyFunc, state State) *Page {
	if rowKey == nil {
		rowKey = DefaultRowKey
	}
	state = state.Clone()
	state.normalize(len(data.Columns))

	matching := matchingRows(data, &state)
	sortRows(data.Rows, matching, data.Columns[state.SortColumn].Key, state.SortDescending)
	state.clampPage(len(matching))

	size := state.PageSize()
	start := min(state.Page*size, len(matching))
	end := min(start+size, len(matching))
	hidden := hiddenColumns(len(data.Columns), state.Visible)

	page := &Page{
		Title:             data.Title,
		Filter:            state.Filter,
		SomeColumnsHidden: len(hidden) > 0,
		State:             state,
	}

	for pos, col := range state.Visible {
		cell := HeaderCell{Position: pos, Column: col, Title: data.Columns[col].Label()}
		if col == state.SortColumn {
			cell.Sort = SortAscending
			if state.SortDescending {
				cell.Sort = SortDescending
			}
		}
		page.Header = append(page.Header, cell)
	}

	for _, i := range matching[start:end] {
		record := data.Rows[i]
		row := Row{
			Key:        rowKey(record, nil),
			Record:     record,
			Cells:      make([]Cell, len(state.Visible)),
			Expandable: len(hidden) > 0,
		}
		for pos, col := range state.Visible {
			row.Cells[pos] = Cell{Column: col, Value: displayValue(record, &data.Columns[col])}
		}
		row.Expanded = row.Expandable && state.IsExpanded(row.Key)
		if row.Expanded {
			for _, col := range hidden {
				row.Details = append(row.Details, Detail{
					Column: col,
					Title:  data.Columns[col].Label(),
					Value:  displayValue(record, &data.Columns[col]),
				})
			}
		}
		page.Rows = append(page.Rows, row)
	}

	for i, size := range PageSizes {
		page.PageSizes = append(page.PageSizes, PageSizeOption{Index: i, Size: size, Selected: i == state.PageSizeIndex})
	}
	for i := range data.Columns {
		page.Columns = append(page.Columns, ColumnOption{Column: i, Title: data.Columns[i].Label(), Visible: state.IsVisible(i)})
	}

	page.Info = Info{Total: len(matching)}
	if len(matching) > 0 {
		page.Info.From = start + 1
		page.Info.To = end
	}
	page.Pagination = paginate(state.Page, state.maxPage(len(matching)))
	return page
}

func paginate(page, maxPage int) Pagination {
	p := Pagination{
		Page:    page,
		MaxPage: maxPage,
		Prev:    max(page-1, 0),
		Next:    max(min(page+1, maxPage-1), 0),
		Last:    max(maxPage-1, 0),
	}
	if maxPage == 0 {
		return p
	}
	// one based window like the rendered page numbers
	first := max(1, min(page+1-2, maxPage-PaginationWindow+1))
	last := min(maxPage, first+PaginationWindow-1)
	for n := first; n <= last; n++ {
		p.Pages = append(p.Pages, n-1)
	}
	return p
}

func hiddenColumns(numCols int, visible []int) []int {
	var hidden []int
	v := 0
	for col := 0; col < numCols; col++ {
		if v < len(visible) && visible[v] == col {
			v++
			continue
		}
		hidden = append(hidden, col)
	}
	return hidden
}

func displayValue(row retable.Record, column *Column) any {
	val, _ := row.Lookup(column.DisplayKey())
	return val
}
