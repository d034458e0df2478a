package retable

import (
	"context"
)

// FormatViewAsStrings converts a View into a 2D string slice.
//
// Every cell is formatted with the passed formatter
// wrapped by TryFormattersOrSprint, so formatter can be nil.
// When OptionAddHeaderRow is set, the column titles are added
// as the first row, also passed through the formatter.
// OptionRemoveEmptyRows drops data rows without any non empty string.
func FormatViewAsStrings(ctx context.Context, view View, formatter CellFormatter, options ...Option) (rows [][]string, err error) {
	formatter = TryFormattersOrSprint(formatter)
	numRows := view.NumRows()
	numCols := len(view.Columns())

	if HasOption(options, OptionAddHeaderRow) {
		// view.Columns() would already returns a string slice,
		// but use formatter for any additional formatting of strings
		headerView := NewHeaderViewFrom(view)
		rowStrings := make([]string, numCols)
		for col := 0; col < numCols; col++ {
			rowStrings[col], _, err = formatter.FormatCell(ctx, headerView, 0, col)
			if err != nil {
				return nil, err
			}
		}
		rows = append(rows, rowStrings)
	}

	for row := 0; row < numRows; row++ {
		if err = ctx.Err(); err != nil {
			return nil, err
		}
		rowStrings := make([]string, numCols)
		for col := 0; col < numCols; col++ {
			rowStrings[col], _, err = formatter.FormatCell(ctx, view, row, col)
			if err != nil {
				return nil, err
			}
		}
		if HasOption(options, OptionRemoveEmptyRows) && isEmptyStringRow(rowStrings) {
			continue
		}
		rows = append(rows, rowStrings)
	}

	return rows, nil
}
