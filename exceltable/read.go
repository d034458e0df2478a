// Package exceltable reads Excel sheets as table data
// and writes views as Excel workbooks.
package exceltable

import (
	"errors"
	"io"

	"github.com/xuri/excelize/v2"

	retable "github.com/plan-dashboard/go-retable"
)

// ReadSheet reads a sheet from an Excel file as retable.StringsView
// with the first row as column titles.
// An empty sheet name reads the first sheet.
// Empty rows and columns at the edges are removed.
func ReadSheet(reader io.Reader, sheet string) (sheetView *retable.StringsView, err error) {
	f, e := excelize.OpenReader(reader)
	if e != nil {
		return nil, e
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()
	if sheet == "" {
		sheet = f.GetSheetName(0)
		if sheet == "" {
			return nil, ErrSheetNotExist{SheetName: "<FirstSheet>"}
		}
	}
	return readSheet(f, sheet)
}

// ReadRecords reads a sheet as Records keyed by the column titles
// of the first row. Cell strings are converted with retable.ParseCellValue.
func ReadRecords(reader io.Reader, sheet string) (records []retable.Record, keys []string, err error) {
	view, err := ReadSheet(reader, sheet)
	if err != nil {
		return nil, nil, err
	}
	records, keys = retable.StringsRecords(view.Cols, view.Rows)
	return records, keys, nil
}

func readSheet(f *excelize.File, sheet string) (*retable.StringsView, error) {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, err
	}
	rows = retable.RemoveEmptyStringRows(rows)
	numCols := retable.RemoveEmptyStringColumns(rows)
	if len(rows) == 0 || numCols == 0 {
		return nil, ErrEmptySheet
	}
	columns := rows[0]
	if len(columns) < numCols {
		columns = append(columns, make([]string, numCols-len(columns))...)
	}
	return retable.NewStringsView(sheet, rows[1:], columns...), nil
}
