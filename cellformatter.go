package retable

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"time"
)

// CellFormatter is an interface for formatting view cells as strings.
type CellFormatter interface {
	// FormatCell formats the view cell at a row/col position as string
	// or returns a wrapped errors.ErrUnsupported error if
	// it doesn't support formatting the value of the cell.
	// The raw result indicates if the returned string
	// is in the raw format of the table format and can be
	// used as is or if it has to be sanitized in some way.
	FormatCell(ctx context.Context, view View, row, col int) (str string, raw bool, err error)
}

// CellFormatterFunc implements CellFormatter for a function.
type CellFormatterFunc func(ctx context.Context, view View, row, col int) (str string, raw bool, err error)

func (f CellFormatterFunc) FormatCell(ctx context.Context, view View, row, col int) (str string, raw bool, err error) {
	return f(ctx, view, row, col)
}

// SprintCellFormatter formats a cell using fmt.Sprint
// with the underlying bool value as raw result.
// Nil-like cells are formatted as empty string.
type SprintCellFormatter bool

func (rawResult SprintCellFormatter) FormatCell(ctx context.Context, view View, row, col int) (str string, raw bool, err error) {
	v := AsReflectCellView(view).ReflectCell(row, col)
	if IsNullLike(v) {
		return "", bool(rawResult), nil
	}
	if v.Kind() == reflect.Pointer {
		v = v.Elem()
	}
	return fmt.Sprint(v.Interface()), bool(rawResult), nil
}

// PrintfCellFormatter implements CellFormatter by calling
// fmt.Sprintf with this type's string value as format.
type PrintfCellFormatter string

func (format PrintfCellFormatter) FormatCell(ctx context.Context, view View, row, col int) (str string, raw bool, err error) {
	return fmt.Sprintf(string(format), view.Cell(row, col)), false, nil
}

// LayoutFormatter formats cells that implement
// interface{ Format(string) string } like time.Time
// using the underlying string as layout.
// Other cells result in errors.ErrUnsupported.
type LayoutFormatter string

func (layout LayoutFormatter) FormatCell(ctx context.Context, view View, row, col int) (str string, raw bool, err error) {
	switch v := view.Cell(row, col).(type) {
	case time.Time:
		return v.Format(string(layout)), false, nil
	case *time.Time:
		if v == nil {
			return "", false, nil
		}
		return v.Format(string(layout)), false, nil
	case interface{ Format(string) string }:
		return v.Format(string(layout)), false, nil
	}
	return "", false, errors.ErrUnsupported
}

// RawCellString implements CellFormatter by returning
// the underlying string as raw value for every cell.
type RawCellString string

func (rawStr RawCellString) FormatCell(ctx context.Context, view View, row, col int) (str string, raw bool, err error) {
	return string(rawStr), true, nil
}

// TryFormattersOrSprint returns a CellFormatter that tries
// the passed formatters in order until one does not return
// errors.ErrUnsupported and falls back to SprintCellFormatter(false).
// Nil formatters are skipped.
func TryFormattersOrSprint(formatters ...CellFormatter) CellFormatter {
	return CellFormatterFunc(func(ctx context.Context, view View, row, col int) (str string, raw bool, err error) {
		if err = ctx.Err(); err != nil {
			return "", false, err
		}
		for _, f := range formatters {
			if isNilFormatter(f) {
				continue
			}
			str, raw, err = f.FormatCell(ctx, view, row, col)
			if !errors.Is(err, errors.ErrUnsupported) {
				return str, raw, err
			}
		}
		return SprintCellFormatter(false).FormatCell(ctx, view, row, col)
	})
}

func isNilFormatter(f CellFormatter) bool {
	if f == nil {
		return true
	}
	v := reflect.ValueOf(f)
	return (v.Kind() == reflect.Pointer || v.Kind() == reflect.Func) && v.IsNil()
}
