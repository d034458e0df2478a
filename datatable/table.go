package datatable

import (
	"slices"

	retable "github.com/plan-dashboard/go-retable"
)

// Table combines Data with the view State that is changed
// by the operations of the Table.
//
// A Table is not safe for concurrent use, it is owned
// by a single HTTP request or terminal event loop.
// Operations that can't be applied return false
// and leave the State unchanged.
type Table struct {
	data   Data
	rowKey RowKeyFunc
	state  State
}

// Option configures a Table created with New.
type Option func(*Table)

// WithRowKey sets the function used to identify rows.
func WithRowKey(rowKey RowKeyFunc) Option {
	return func(t *Table) {
		if rowKey != nil {
			t.rowKey = rowKey
		}
	}
}

// WithPageSizeIndex sets the initial index into PageSizes.
func WithPageSizeIndex(index int) Option {
	return func(t *Table) {
		t.state.PageSizeIndex = index
	}
}

// WithState sets the initial State which is normalized for the data.
func WithState(state State) Option {
	return func(t *Table) {
		t.state = state.Clone()
	}
}

// New returns a Table with all columns visible
// sorted by the default Order of data.
func New(data Data, options ...Option) (*Table, error) {
	if err := data.Validate(); err != nil {
		return nil, err
	}
	t := &Table{
		data:   data,
		rowKey: DefaultRowKey,
		state:  InitialState(len(data.Columns), data.Order),
	}
	for _, option := range options {
		option(t)
	}
	t.settle()
	return t, nil
}

// Data returns the data of the table.
func (t *Table) Data() *Data { return &t.data }

// State returns a copy of the current State.
func (t *Table) State() State { return t.state.Clone() }

// RowKey returns the key of a row as used for expansion.
func (t *Table) RowKey(row retable.Record) string { return t.rowKey(row, nil) }

// Clone returns a Table sharing the data with an independent State.
func (t *Table) Clone() *Table {
	return &Table{data: t.data, rowKey: t.rowKey, state: t.state.Clone()}
}

// Page derives the rendered page of the current State.
func (t *Table) Page() *Page {
	return Derive(&t.data, t.rowKey, t.state)
}

// NumColumns returns the number of logical columns.
func (t *Table) NumColumns() int { return len(t.data.Columns) }

// SortPosition returns the visible position of the sort column.
func (t *Table) SortPosition() int { return t.state.SortPosition() }

// SetFilter sets the filter text and resets the page if it changed.
func (t *Table) SetFilter(filter string) bool {
	if filter == t.state.Filter {
		return false
	}
	t.state.Filter = filter
	t.state.Page = 0
	t.settle()
	return true
}

// SetPageSizeIndex selects one of PageSizes and resets the page.
func (t *Table) SetPageSizeIndex(index int) bool {
	if index < 0 || index >= len(PageSizes) || index == t.state.PageSizeIndex {
		return false
	}
	t.state.PageSizeIndex = index
	t.state.Page = 0
	t.settle()
	return true
}

// CyclePageSize selects the next of PageSizes wrapping around.
func (t *Table) CyclePageSize() bool {
	return t.SetPageSizeIndex((t.state.PageSizeIndex + 1) % len(PageSizes))
}

// SortBy sorts by the visible column at position.
// Sorting by the current sort column toggles the direction,
// any other column is sorted ascending. The page is reset.
func (t *Table) SortBy(position int) bool {
	if position < 0 || position >= len(t.state.Visible) {
		return false
	}
	col := t.state.Visible[position]
	t.state.SortDescending = col == t.state.SortColumn && !t.state.SortDescending
	t.state.SortColumn = col
	t.state.Page = 0
	t.settle()
	return true
}

// ToggleColumn hides a visible or shows a hidden column
// with the logical index col.
func (t *Table) ToggleColumn(col int) bool {
	if t.state.IsVisible(col) {
		return t.HideColumn(col)
	}
	return t.ShowColumn(col)
}

// HideColumn hides the column with the logical index col
// unless it is the last visible column.
// Hiding the sort column sorts by the first visible column ascending.
func (t *Table) HideColumn(col int) bool {
	pos, found := slices.BinarySearch(t.state.Visible, col)
	if !found || len(t.state.Visible) == 1 {
		return false
	}
	t.state.Visible = slices.Delete(t.state.Visible, pos, pos+1)
	if col == t.state.SortColumn {
		t.state.SortColumn = t.state.Visible[0]
		t.state.SortDescending = false
		t.state.Page = 0
	}
	t.settle()
	return true
}

// ShowColumn shows the hidden column with the logical index col.
// When all columns are visible afterwards all rows are collapsed.
func (t *Table) ShowColumn(col int) bool {
	if col < 0 || col >= len(t.data.Columns) {
		return false
	}
	pos, found := slices.BinarySearch(t.state.Visible, col)
	if found {
		return false
	}
	t.state.Visible = slices.Insert(t.state.Visible, pos, col)
	t.settle()
	return true
}

// ShowAllColumns makes all columns visible and collapses all rows.
func (t *Table) ShowAllColumns() bool {
	if len(t.state.Visible) == len(t.data.Columns) {
		return false
	}
	t.state.Visible = nil
	t.settle()
	return true
}

// ToggleRow expands or collapses the detail panel of a row.
// Without hidden columns there is nothing to expand.
func (t *Table) ToggleRow(rowKey string) bool {
	if len(t.state.Visible) == len(t.data.Columns) {
		return false
	}
	if t.state.IsExpanded(rowKey) {
		delete(t.state.Expanded, rowKey)
		return true
	}
	if t.state.Expanded == nil {
		t.state.Expanded = make(map[string]struct{})
	}
	t.state.Expanded[rowKey] = struct{}{}
	return true
}

// SetPage navigates to page clamped to the existing pages.
func (t *Table) SetPage(page int) bool {
	before := t.state.Page
	t.state.Page = page
	t.settle()
	return t.state.Page != before
}

func (t *Table) FirstPage() bool { return t.SetPage(0) }
func (t *Table) PrevPage() bool  { return t.SetPage(t.state.Page - 1) }
func (t *Table) NextPage() bool  { return t.SetPage(t.state.Page + 1) }

// LastPage navigates to the last page.
func (t *Table) LastPage() bool {
	return t.SetPage(t.state.maxPage(len(matchingRows(&t.data, &t.state))) - 1)
}

// CollapseOverflow hides the last visible column if the rendered
// content is wider than its container.
// Callers measure again after a collapse and repeat
// until false is returned.
func (t *Table) CollapseOverflow(contentWidth, containerWidth int) bool {
	if contentWidth <= containerWidth {
		return false
	}
	return t.HideColumn(t.state.Visible[len(t.state.Visible)-1])
}

// MatchingView returns the filtered and sorted rows
// of all pages with the raw values of the visible columns.
func (t *Table) MatchingView() retable.View {
	matching := matchingRows(&t.data, &t.state)
	key := t.data.Columns[t.state.SortColumn].Key
	sortRows(t.data.Rows, matching, key, t.state.SortDescending)
	keys := make([]string, len(t.data.Columns))
	titles := make([]string, len(t.data.Columns))
	for i := range t.data.Columns {
		keys[i] = t.data.Columns[i].Key
		titles[i] = t.data.Columns[i].Label()
	}
	return &retable.IndexedView{
		Source:     &retable.RecordsView{Tit: t.data.Title, Keys: keys, Cols: titles, Rows: t.data.Rows},
		RowIndices: matching,
		ColIndices: slices.Clone(t.state.Visible),
	}
}

// settle normalizes the State and clamps the page
// to the pages of the matching rows.
func (t *Table) settle() {
	t.state.normalize(len(t.data.Columns))
	t.state.clampPage(len(matchingRows(&t.data, &t.state)))
}
