package retable

import "reflect"

// View is the read-only tabular interface shared by all
// table sources, engine outputs, and writers of this module.
//
// Cell returns nil for row or col indices out of bounds.
type View interface {
	// Title of the View, may be empty.
	Title() string
	// Columns returns the column titles.
	// The number of columns is len(Columns()).
	Columns() []string
	// NumRows returns the number of rows.
	NumRows() int
	// Cell returns the value of a cell
	// or nil if the indices are out of bounds.
	Cell(row, col int) any
}

// ReflectCellView is a View that can return
// its cells as reflect.Value without boxing them into any.
type ReflectCellView interface {
	View

	// ReflectCell returns the reflect.Value of a cell
	// or an invalid reflect.Value if the indices are out of bounds.
	ReflectCell(row, col int) reflect.Value
}

// AsReflectCellView returns the passed View as ReflectCellView
// if it implements the interface or else wraps it
// using reflect.ValueOf on the result of View.Cell.
func AsReflectCellView(view View) ReflectCellView {
	if rv, ok := view.(ReflectCellView); ok {
		return rv
	}
	return reflectCellView{view}
}

type reflectCellView struct {
	View
}

func (v reflectCellView) ReflectCell(row, col int) reflect.Value {
	return reflect.ValueOf(v.Cell(row, col))
}
