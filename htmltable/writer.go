// Package htmltable writes views as HTML tables and renders
// interactive data tables as server side HTML widgets.
package htmltable

import (
	"context"
	"errors"
	"html/template"
	"io"
	"maps"
	"reflect"

	retable "github.com/plan-dashboard/go-retable"
)

// Writer writes a retable.View as HTML table.
// All With* methods return a modified copy.
type Writer struct {
	tableClass       string
	columnFormatters map[int]retable.CellFormatter
	typeFormatters   *retable.ReflectTypeCellFormatter
	nilValue         template.HTML
	headerRow        bool
	headerTemplate   *template.Template
	rowTemplate      *template.Template
	footerTemplate   *template.Template
}

// NewWriter returns a Writer without header row using
// HeaderTemplate, RowTemplate, and FooterTemplate.
func NewWriter() *Writer {
	return &Writer{
		headerTemplate: HeaderTemplate,
		rowTemplate:    RowTemplate,
		footerTemplate: FooterTemplate,
	}
}

// WriteView writes the view with its title as caption.
// Cell strings are HTML escaped unless a formatter
// returns them as raw or the cell is a template.HTML value.
// The header row goes through the same formatters as a retable.HeaderView.
func (w *Writer) WriteView(ctx context.Context, dest io.Writer, view retable.View) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	var (
		columns   = view.Columns()
		numCols   = len(columns)
		templData = &RowTemplateContext{
			TemplateContext: TemplateContext{
				TableClass: w.tableClass,
				Caption:    view.Title(),
			},
			RawCells: make([]template.HTML, numCols),
		}
	)

	err := w.headerTemplate.Execute(dest, templData.TemplateContext)
	if err != nil {
		return err
	}

	if w.headerRow {
		templData.IsHeaderRow = true
		header := retable.NewHeaderViewFrom(view)
		for col := range columns {
			templData.RawCells[col], err = formatCellHTML(ctx, header, 0, col, w.columnFormatters[col], w.typeFormatters, w.nilValue)
			if err != nil {
				return err
			}
		}
		err = w.rowTemplate.Execute(dest, templData)
		if err != nil {
			return err
		}
		templData.IsHeaderRow = false
		templData.RowIndex++
	}

	for row, numRows := 0, view.NumRows(); row < numRows; row++ {
		for col := 0; col < numCols; col++ {
			templData.RawCells[col], err = formatCellHTML(ctx, view, row, col, w.columnFormatters[col], w.typeFormatters, w.nilValue)
			if err != nil {
				return err
			}
		}
		err = w.rowTemplate.Execute(dest, templData)
		if err != nil {
			return err
		}
		templData.RowIndex++
	}

	return w.footerTemplate.Execute(dest, templData.TemplateContext)
}

// formatCellHTML tries the column formatter, then the type formatters,
// then passes template.HTML values through and escapes everything else.
func formatCellHTML(ctx context.Context, view retable.View, row, col int, colFormatter retable.CellFormatter, typeFormatters *retable.ReflectTypeCellFormatter, nilValue template.HTML) (template.HTML, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if colFormatter != nil {
		str, isRaw, err := colFormatter.FormatCell(ctx, view, row, col)
		if err == nil {
			return toHTML(str, isRaw), nil
		}
		if !errors.Is(err, errors.ErrUnsupported) {
			return "", err
		}
	}
	str, isRaw, err := typeFormatters.FormatCell(ctx, view, row, col)
	if err == nil {
		return toHTML(str, isRaw), nil
	}
	if !errors.Is(err, errors.ErrUnsupported) {
		return "", err
	}
	v := retable.AsReflectCellView(view).ReflectCell(row, col)
	if retable.IsNullLike(v) {
		return nilValue, nil
	}
	if html, ok := v.Interface().(template.HTML); ok {
		return html, nil
	}
	if v.Kind() == reflect.Pointer {
		if html, ok := v.Elem().Interface().(template.HTML); ok {
			return html, nil
		}
	}
	str, _, err = retable.SprintCellFormatter(false).FormatCell(ctx, view, row, col)
	return toHTML(str, false), err
}

func toHTML(str string, isRaw bool) template.HTML {
	if !isRaw {
		str = template.HTMLEscapeString(str)
	}
	return template.HTML(str) //#nosec G203
}

func (w *Writer) clone() *Writer {
	c := new(Writer)
	*c = *w
	c.columnFormatters = maps.Clone(w.columnFormatters)
	return c
}

// WithHeaderRow enables a <th> row of the column titles.
func (w *Writer) WithHeaderRow(headerRow bool) *Writer {
	mod := w.clone()
	mod.headerRow = headerRow
	return mod
}

func (w *Writer) WithTableClass(tableClass string) *Writer {
	mod := w.clone()
	mod.tableClass = tableClass
	return mod
}

// WithColumnFormatter sets a formatter for the column with columnIndex.
// A nil formatter removes the column formatter.
func (w *Writer) WithColumnFormatter(columnIndex int, formatter retable.CellFormatter) *Writer {
	mod := w.clone()
	if formatter == nil {
		delete(mod.columnFormatters, columnIndex)
		return mod
	}
	if mod.columnFormatters == nil {
		mod.columnFormatters = make(map[int]retable.CellFormatter)
	}
	mod.columnFormatters[columnIndex] = formatter
	return mod
}

// WithRawColumn writes the cells of a column without escaping.
func (w *Writer) WithRawColumn(columnIndex int) *Writer {
	return w.WithColumnFormatter(columnIndex, retable.SprintCellFormatter(true))
}

func (w *Writer) WithTypeFormatters(formatter *retable.ReflectTypeCellFormatter) *Writer {
	mod := w.clone()
	mod.typeFormatters = formatter
	return mod
}

func (w *Writer) WithTypeFormatter(typ reflect.Type, fmt retable.CellFormatter) *Writer {
	mod := w.clone()
	mod.typeFormatters = w.typeFormatters.WithTypeFormatter(typ, fmt)
	return mod
}

func (w *Writer) WithInterfaceTypeFormatter(typ reflect.Type, fmt retable.CellFormatter) *Writer {
	mod := w.clone()
	mod.typeFormatters = w.typeFormatters.WithInterfaceTypeFormatter(typ, fmt)
	return mod
}

func (w *Writer) WithKindFormatter(kind reflect.Kind, fmt retable.CellFormatter) *Writer {
	mod := w.clone()
	mod.typeFormatters = w.typeFormatters.WithKindFormatter(kind, fmt)
	return mod
}

// WithNilValue sets the HTML written for nil cells.
func (w *Writer) WithNilValue(nilValue template.HTML) *Writer {
	mod := w.clone()
	mod.nilValue = nilValue
	return mod
}

// WithTemplate replaces the templates of the table start, rows, and end.
func (w *Writer) WithTemplate(headerTemplate, rowTemplate, footerTemplate *template.Template) *Writer {
	mod := w.clone()
	mod.headerTemplate = headerTemplate
	mod.rowTemplate = rowTemplate
	mod.footerTemplate = footerTemplate
	return mod
}

func (w *Writer) TableClass() string {
	return w.tableClass
}

func (w *Writer) NilValue() template.HTML {
	return w.nilValue
}
