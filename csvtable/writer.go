package csvtable

import (
	"bytes"
	"context"
	"errors"
	"io"
	"maps"
	"reflect"
	"strings"

	"github.com/domonda/go-types/charset"
	"github.com/mattn/go-runewidth"

	retable "github.com/plan-dashboard/go-retable"
)

// Encoder encodes UTF-8 rows before they are written.
type Encoder interface {
	Bytes([]byte) ([]byte, error)
}

// EncoderFunc implements Encoder with a function.
type EncoderFunc func([]byte) ([]byte, error)

func (f EncoderFunc) Bytes(data []byte) ([]byte, error) {
	return f(data)
}

// CharsetEncoder returns an Encoder for an encoding name
// as understood by charset.GetEncoding.
func CharsetEncoder(name string) (Encoder, error) {
	enc, err := charset.GetEncoding(name)
	if err != nil {
		return nil, err
	}
	return EncoderFunc(enc.Encode), nil
}

// Padding aligns fields of a column to the same width.
type Padding int

const (
	NoPadding Padding = iota
	AlignLeft
	AlignRight
	AlignCenter
)

// Writer writes views as CSV.
// All With* methods return a modified copy.
type Writer struct {
	columnFormatters map[int]retable.CellFormatter
	formatters       *retable.ReflectTypeCellFormatter
	padding          Padding
	headerRow        bool
	quoteAllFields   bool
	quoteEmptyFields bool
	escapeQuotes     string
	nilValue         string
	delimiter        rune
	newLine          string
	encoder          Encoder
}

// NewWriter returns a Writer for semicolon separated
// fields with CRLF newlines and without header row.
func NewWriter() *Writer {
	return &Writer{
		escapeQuotes: `""`,
		delimiter:    ';',
		newLine:      "\r\n",
	}
}

func (w *Writer) clone() *Writer {
	c := new(Writer)
	*c = *w
	c.columnFormatters = maps.Clone(w.columnFormatters)
	return c
}

// WriteView writes all rows of view to dest.
func (w *Writer) WriteView(ctx context.Context, dest io.Writer, view retable.View) error {
	rows, err := w.ViewStrings(ctx, view)
	if err != nil {
		return err
	}
	var widths []int
	if w.padding != NoPadding {
		widths = retable.StringColumnWidths(rows, len(view.Columns()))
	}
	rowBuf := bytes.NewBuffer(make([]byte, 0, 1024))
	for _, row := range rows {
		if err = ctx.Err(); err != nil {
			return err
		}
		for col, str := range row {
			if col > 0 {
				rowBuf.WriteRune(w.delimiter)
			}
			if widths == nil {
				rowBuf.WriteString(str)
				continue
			}
			padTotal := widths[col] - runewidth.StringWidth(str)
			padLeft, padRight := 0, 0
			switch w.padding {
			case AlignLeft:
				padRight = padTotal
			case AlignRight:
				padLeft = padTotal
			case AlignCenter:
				padLeft = padTotal / 2
				padRight = (padTotal + 1) / 2
			}
			rowBuf.WriteString(strings.Repeat(" ", padLeft))
			rowBuf.WriteString(str)
			rowBuf.WriteString(strings.Repeat(" ", padRight))
		}
		rowBuf.WriteString(w.newLine)

		out := rowBuf.Bytes()
		if w.encoder != nil {
			out, err = w.encoder.Bytes(out)
			if err != nil {
				return err
			}
		}
		if _, err = dest.Write(out); err != nil {
			return err
		}
		rowBuf.Reset()
	}
	return nil
}

// ViewStrings returns the escaped field strings of view
// including the header row if enabled.
func (w *Writer) ViewStrings(ctx context.Context, view retable.View) ([][]string, error) {
	numRows := view.NumRows()
	rows := make([][]string, 0, numRows+1)
	if w.headerRow {
		rowStrs, err := w.rowStrings(ctx, retable.NewHeaderViewFrom(view), 0)
		if err != nil {
			return nil, err
		}
		rows = append(rows, rowStrs)
	}
	for row := 0; row < numRows; row++ {
		rowStrs, err := w.rowStrings(ctx, view, row)
		if err != nil {
			return nil, err
		}
		rows = append(rows, rowStrs)
	}
	return rows, nil
}

func (w *Writer) rowStrings(ctx context.Context, view retable.View, row int) ([]string, error) {
	columns := view.Columns()
	rowStrs := make([]string, len(columns))
	for col := range columns {
		var err error
		rowStrs[col], err = w.cellString(ctx, view, row, col)
		if err != nil {
			return nil, err
		}
	}
	return rowStrs, nil
}

func (w *Writer) cellString(ctx context.Context, view retable.View, row, col int) (string, error) {
	if ctx.Err() != nil {
		return "", ctx.Err()
	}

	if colFormatter, ok := w.columnFormatters[col]; ok {
		str, isRaw, err := colFormatter.FormatCell(ctx, view, row, col)
		if err == nil {
			return w.escapeString(str, isRaw), nil
		}
		if !errors.Is(err, errors.ErrUnsupported) {
			return "", err
		}
	}

	str, isRaw, err := w.formatters.FormatCell(ctx, view, row, col)
	if err == nil {
		return w.escapeString(str, isRaw), nil
	}
	if !errors.Is(err, errors.ErrUnsupported) {
		return "", err
	}

	v := retable.AsReflectCellView(view).ReflectCell(row, col)
	if retable.IsNullLike(v) {
		return w.escapeString(w.nilValue, false), nil
	}
	str, _, err = retable.SprintCellFormatter(false).FormatCell(ctx, view, row, col)
	return w.escapeString(str, false), err
}

func (w *Writer) escapeString(str string, isRaw bool) string {
	if isRaw {
		return str
	}
	str = strings.ReplaceAll(str, "\r", "")
	switch {
	case w.quoteAllFields || strings.ContainsRune(str, w.delimiter) || strings.ContainsRune(str, '\n'):
		return `"` + strings.ReplaceAll(str, `"`, w.escapeQuotes) + `"`
	case w.quoteEmptyFields && str == "":
		return `""`
	}
	return strings.ReplaceAll(str, `"`, w.escapeQuotes)
}

func (w *Writer) WithHeaderRow(headerRow bool) *Writer {
	mod := w.clone()
	mod.headerRow = headerRow
	return mod
}

// WithColumnFormatter sets a formatter for the column with columnIndex
// that is tried before the type formatters.
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

func (w *Writer) WithTypeFormatters(formatter *retable.ReflectTypeCellFormatter) *Writer {
	mod := w.clone()
	mod.formatters = formatter
	return mod
}

func (w *Writer) WithTypeFormatter(typ reflect.Type, fmt retable.CellFormatter) *Writer {
	mod := w.clone()
	mod.formatters = w.formatters.WithTypeFormatter(typ, fmt)
	return mod
}

func (w *Writer) WithKindFormatter(kind reflect.Kind, fmt retable.CellFormatter) *Writer {
	mod := w.clone()
	mod.formatters = w.formatters.WithKindFormatter(kind, fmt)
	return mod
}

func (w *Writer) WithPadding(padding Padding) *Writer {
	mod := w.clone()
	mod.padding = padding
	return mod
}

func (w *Writer) WithQuoteAllFields(quoteAllFields bool) *Writer {
	mod := w.clone()
	mod.quoteAllFields = quoteAllFields
	return mod
}

func (w *Writer) WithQuoteEmptyFields(quoteEmptyFields bool) *Writer {
	mod := w.clone()
	mod.quoteEmptyFields = quoteEmptyFields
	return mod
}

func (w *Writer) WithNilValue(nilValue string) *Writer {
	mod := w.clone()
	mod.nilValue = nilValue
	return mod
}

func (w *Writer) WithEscapeQuotes(escapeQuotes string) *Writer {
	mod := w.clone()
	mod.escapeQuotes = escapeQuotes
	return mod
}

func (w *Writer) WithDelimiter(delimiter rune) *Writer {
	mod := w.clone()
	mod.delimiter = delimiter
	return mod
}

func (w *Writer) WithNewLine(newLine string) *Writer {
	mod := w.clone()
	mod.newLine = newLine
	return mod
}

func (w *Writer) WithEncoder(encoder Encoder) *Writer {
	mod := w.clone()
	mod.encoder = encoder
	return mod
}

func (w *Writer) Delimiter() rune { return w.delimiter }
func (w *Writer) NewLine() string { return w.newLine }
