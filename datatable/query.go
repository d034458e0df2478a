package datatable

import (
	"net/url"
	"strconv"
	"strings"
)

// Query parameter names of the State.
const (
	QueryFilter   = "q"
	QueryPageSize = "len"
	QuerySort     = "sort"
	QueryDir      = "dir"
	QueryPage     = "page"
	QueryColumns  = "cols"
	QueryOpen     = "open"
)

// Query encodes the State as URL query values.
// Default values are omitted.
func (t *Table) Query() url.Values {
	return t.state.Query(len(t.data.Columns))
}

// Query encodes the State of a table with numCols columns
// as URL query values.
func (s State) Query(numCols int) url.Values {
	q := make(url.Values)
	if s.Filter != "" {
		q.Set(QueryFilter, s.Filter)
	}
	if s.PageSizeIndex != 0 {
		q.Set(QueryPageSize, strconv.Itoa(s.PageSizeIndex))
	}
	q.Set(QuerySort, strconv.Itoa(s.SortColumn))
	if s.SortDescending {
		q.Set(QueryDir, "desc")
	} else {
		q.Set(QueryDir, "asc")
	}
	if s.Page != 0 {
		q.Set(QueryPage, strconv.Itoa(s.Page))
	}
	if len(s.Visible) != numCols {
		cols := make([]string, len(s.Visible))
		for i, col := range s.Visible {
			cols[i] = strconv.Itoa(col)
		}
		q.Set(QueryColumns, strings.Join(cols, ","))
	}
	for key := range s.Expanded {
		q.Add(QueryOpen, key)
	}
	return q
}

// ApplyQuery sets the State from URL query values
// as encoded by Query. Missing or malformed values
// keep the current State, the result is normalized.
func (t *Table) ApplyQuery(q url.Values) {
	s := &t.state
	if q.Has(QueryColumns) {
		var visible []int
		for _, str := range strings.Split(q.Get(QueryColumns), ",") {
			if col, err := strconv.Atoi(strings.TrimSpace(str)); err == nil {
				visible = append(visible, col)
			}
		}
		s.Visible = visible
	}
	if col, err := strconv.Atoi(q.Get(QuerySort)); err == nil {
		s.SortColumn = col
	}
	switch q.Get(QueryDir) {
	case "asc":
		s.SortDescending = false
	case "desc":
		s.SortDescending = true
	}
	if q.Has(QueryFilter) {
		s.Filter = q.Get(QueryFilter)
	}
	if i, err := strconv.Atoi(q.Get(QueryPageSize)); err == nil {
		s.PageSizeIndex = i
	}
	if p, err := strconv.Atoi(q.Get(QueryPage)); err == nil {
		s.Page = p
	}
	if open := q[QueryOpen]; len(open) > 0 {
		s.Expanded = make(map[string]struct{}, len(open))
		for _, key := range open {
			s.Expanded[key] = struct{}{}
		}
	}
	t.settle()
}
