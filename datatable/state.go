package datatable

import (
	"maps"
	"slices"
)

// PageSizes are the selectable numbers of rows per page.
var PageSizes = [...]int{10, 25, 100}

// State is the view state of a Table.
type State struct {
	// SortColumn is the logical index of the sorted column.
	SortColumn     int
	SortDescending bool
	// Visible holds the logical indices of the
	// visible columns in ascending order, never empty.
	Visible []int
	Filter  string
	// Expanded holds the keys of rows with an open detail panel.
	Expanded map[string]struct{}
	// Page is the zero based index of the current page.
	Page          int
	PageSizeIndex int
}

// InitialState returns the State of a freshly
// mounted table with all columns visible.
func InitialState(numCols int, order Order) State {
	s := State{
		SortColumn:     order.Column,
		SortDescending: order.Descending,
	}
	s.normalize(numCols)
	return s
}

// PageSize returns the number of rows per page.
func (s State) PageSize() int {
	if s.PageSizeIndex < 0 || s.PageSizeIndex >= len(PageSizes) {
		return PageSizes[0]
	}
	return PageSizes[s.PageSizeIndex]
}

// IsVisible returns if the column with the logical index col is visible.
func (s State) IsVisible(col int) bool {
	_, found := slices.BinarySearch(s.Visible, col)
	return found
}

// IsExpanded returns if the detail panel of a row is open.
func (s State) IsExpanded(rowKey string) bool {
	_, ok := s.Expanded[rowKey]
	return ok
}

// SortPosition returns the position of the sort column
// within the visible columns or -1 if it is hidden.
func (s State) SortPosition() int {
	pos, found := slices.BinarySearch(s.Visible, s.SortColumn)
	if !found {
		return -1
	}
	return pos
}

// Clone returns a deep copy of the State.
func (s State) Clone() State {
	c := s
	c.Visible = slices.Clone(s.Visible)
	c.Expanded = maps.Clone(s.Expanded)
	return c
}

// normalize makes the State consistent for a table with numCols columns.
// The page is not clamped because that requires the number of matching rows.
func (s *State) normalize(numCols int) {
	visible := make([]int, 0, len(s.Visible))
	for _, col := range s.Visible {
		if col >= 0 && col < numCols {
			visible = append(visible, col)
		}
	}
	slices.Sort(visible)
	visible = slices.Compact(visible)
	if len(visible) == 0 {
		visible = make([]int, numCols)
		for i := range visible {
			visible[i] = i
		}
	}
	s.Visible = visible

	if !s.IsVisible(s.SortColumn) {
		s.SortColumn = s.Visible[0]
		s.SortDescending = false
	}
	if s.PageSizeIndex < 0 || s.PageSizeIndex >= len(PageSizes) {
		s.PageSizeIndex = 0
	}
	if s.Page < 0 {
		s.Page = 0
	}
	if len(s.Visible) == numCols {
		s.Expanded = nil
	}
}

// maxPage returns the number of pages for numMatching rows.
func (s State) maxPage(numMatching int) int {
	size := s.PageSize()
	return (numMatching + size - 1) / size
}

// clampPage limits the page to [0, maxPage-1].
func (s *State) clampPage(numMatching int) {
	s.Page = min(s.Page, s.maxPage(numMatching)-1)
	s.Page = max(s.Page, 0)
}
