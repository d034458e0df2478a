package retable

import "reflect"

var _ ReflectCellView = new(IndexedView)

// IndexedView maps its rows and columns to rows and columns
// of a Source view. It is how filtered, sorted, and paginated
// selections are exposed as View without copying cells.
type IndexedView struct {
	Source View
	// If not nil then the view has as many rows as
	// RowIndices has elements and every element
	// is a row index into the Source view.
	// If nil then the view has as many rows as the Source view.
	RowIndices []int
	// If not nil then the view has as many
	// columns as ColIndices has elements and
	// every element is a column index into the Source view.
	// If nil then the view has as many columns as the Source view.
	ColIndices []int
}

func (view *IndexedView) Title() string {
	return view.Source.Title()
}

func (view *IndexedView) Columns() []string {
	sourceCols := view.Source.Columns()
	if view.ColIndices == nil {
		return sourceCols
	}
	mappedCols := make([]string, len(view.ColIndices))
	for i, iSource := range view.ColIndices {
		mappedCols[i] = sourceCols[iSource]
	}
	return mappedCols
}

func (view *IndexedView) NumRows() int {
	if view.RowIndices != nil {
		return len(view.RowIndices)
	}
	return view.Source.NumRows()
}

func (view *IndexedView) Cell(row, col int) any {
	row, col, ok := view.sourceIndices(row, col)
	if !ok {
		return nil
	}
	return view.Source.Cell(row, col)
}

func (view *IndexedView) ReflectCell(row, col int) reflect.Value {
	row, col, ok := view.sourceIndices(row, col)
	if !ok {
		return reflect.Value{}
	}
	return AsReflectCellView(view.Source).ReflectCell(row, col)
}

func (view *IndexedView) sourceIndices(row, col int) (int, int, bool) {
	if row < 0 || col < 0 || row >= view.NumRows() {
		return 0, 0, false
	}
	if view.RowIndices != nil {
		row = view.RowIndices[row]
	}
	if view.ColIndices != nil {
		if col >= len(view.ColIndices) {
			return 0, 0, false
		}
		col = view.ColIndices[col]
	} else if col >= len(view.Source.Columns()) {
		return 0, 0, false
	}
	return row, col, true
}
