package exceltable

import (
	"context"
	"errors"
	"fmt"
	"io"
	"reflect"
	"time"

	"github.com/xuri/excelize/v2"

	retable "github.com/plan-dashboard/go-retable"
)

// DefaultSheet is used for views without title.
const DefaultSheet = "Sheet1"

// WriteView writes the view as single sheet workbook to dest
// with a bold header row of the column titles.
// The sheet is named after the view title.
//
// Numbers, bools, and times are written as typed cells,
// pointers are dereferenced, and other values are formatted
// with fmt.Sprint. Nil cells stay empty.
func WriteView(ctx context.Context, dest io.Writer, view retable.View) (err error) {
	if err = ctx.Err(); err != nil {
		return err
	}
	f := excelize.NewFile()
	defer func() {
		err = errors.Join(err, f.Close())
	}()

	sheet := view.Title()
	if sheet == "" {
		sheet = DefaultSheet
	}
	if sheet != DefaultSheet {
		if err = f.SetSheetName(DefaultSheet, sheet); err != nil {
			return fmt.Errorf("invalid sheet name %q: %w", sheet, err)
		}
	}

	columns := view.Columns()
	header := make([]any, len(columns))
	for i, title := range columns {
		header[i] = title
	}
	if err = f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	if len(columns) > 0 {
		bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
		if err != nil {
			return err
		}
		lastHeader, err := excelize.CoordinatesToCellName(len(columns), 1)
		if err != nil {
			return err
		}
		if err = f.SetCellStyle(sheet, "A1", lastHeader, bold); err != nil {
			return err
		}
	}

	reflectView := retable.AsReflectCellView(view)
	values := make([]any, len(columns))
	for row := 0; row < view.NumRows(); row++ {
		if err = ctx.Err(); err != nil {
			return err
		}
		for col := range values {
			values[col] = cellValue(reflectView, row, col)
		}
		cell, err := excelize.CoordinatesToCellName(1, row+2)
		if err != nil {
			return err
		}
		if err = f.SetSheetRow(sheet, cell, &values); err != nil {
			return err
		}
	}
	return f.Write(dest)
}

func cellValue(view retable.ReflectCellView, row, col int) any {
	v := view.ReflectCell(row, col)
	if retable.IsNullLike(v) {
		return nil
	}
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}
	switch val := v.Interface().(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64,
		float32, float64, bool, string, time.Time, time.Duration:
		return val
	default:
		return fmt.Sprint(val)
	}
}
