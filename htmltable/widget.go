package htmltable

import (
	"context"
	"fmt"
	"html/template"
	"io"
	"maps"
	"net/url"
	"reflect"
	"slices"

	retable "github.com/plan-dashboard/go-retable"
	"github.com/plan-dashboard/go-retable/datatable"
	"github.com/plan-dashboard/go-retable/theme"
)

// TableWriter renders a datatable.Table as HTML widget
// with a page size selector, a filter form, a column picker,
// the table, the entries info, and the pagination.
//
// Every control is a link or a GET form whose query
// encodes the State after the control was applied,
// so the widget works without scripts.
//
// All With* methods return a modified copy.
type TableWriter struct {
	id               string
	theme            theme.Theme
	columnFormatters map[string]retable.CellFormatter
	typeFormatters   *retable.ReflectTypeCellFormatter
	nilValue         template.HTML
	template         *template.Template
}

// NewTableWriter returns a TableWriter using id as
// prefix of the element ids and WidgetTemplate.
func NewTableWriter(id string, th theme.Theme) *TableWriter {
	return &TableWriter{id: id, theme: th, template: WidgetTemplate}
}

func (w *TableWriter) clone() *TableWriter {
	c := new(TableWriter)
	*c = *w
	c.columnFormatters = maps.Clone(w.columnFormatters)
	return c
}

// WithColumnFormatter sets a formatter for the display
// values of the column with key.
func (w *TableWriter) WithColumnFormatter(key string, formatter retable.CellFormatter) *TableWriter {
	mod := w.clone()
	if mod.columnFormatters == nil {
		mod.columnFormatters = make(map[string]retable.CellFormatter)
	}
	mod.columnFormatters[key] = formatter
	return mod
}

func (w *TableWriter) WithTypeFormatter(typ reflect.Type, fmt retable.CellFormatter) *TableWriter {
	mod := w.clone()
	mod.typeFormatters = w.typeFormatters.WithTypeFormatter(typ, fmt)
	return mod
}

func (w *TableWriter) WithNilValue(nilValue template.HTML) *TableWriter {
	mod := w.clone()
	mod.nilValue = nilValue
	return mod
}

func (w *TableWriter) WithTheme(th theme.Theme) *TableWriter {
	mod := w.clone()
	mod.theme = th
	return mod
}

// WithTemplate replaces the widget template.
// It is executed with a *WidgetContext.
func (w *TableWriter) WithTemplate(t *template.Template) *TableWriter {
	mod := w.clone()
	mod.template = t
	return mod
}

func (w *TableWriter) ID() string { return w.id }

func (w *TableWriter) Theme() theme.Theme { return w.theme }

// WriteTable writes the widget of the current page of table.
func (w *TableWriter) WriteTable(ctx context.Context, dest io.Writer, table *datatable.Table) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	widget, err := w.widgetContext(ctx, table)
	if err != nil {
		return err
	}
	return w.template.Execute(dest, widget)
}

// WriteLoading writes the placeholder shown while the data is loading.
func (w *TableWriter) WriteLoading(dest io.Writer) error {
	return PlaceholderTemplate.Execute(dest, &PlaceholderContext{ID: w.id, Loading: true, AccentClass: w.theme.AccentColor().Class()})
}

// WriteError writes the placeholder shown when loading failed.
func (w *TableWriter) WriteError(dest io.Writer, loadErr error) error {
	return PlaceholderTemplate.Execute(dest, &PlaceholderContext{ID: w.id, Error: loadErr.Error(), AccentClass: theme.Danger.Class()})
}

// WidgetContext is the data of WidgetTemplate.
type WidgetContext struct {
	ID            string
	Title         string
	TableClass    string
	AccentClass   string
	AccentBgClass string

	Filter       string
	FilterFields []QueryField
	LengthFields []QueryField
	PageSizes    []datatable.PageSizeOption

	Columns    []ColumnLink
	ShowAll    string
	Header     []HeaderLink
	Rows       []RowContext
	NumVisible int

	Info                    datatable.Info
	Pages                   []PageLink
	First, Prev, Next, Last string
	HasPrev, HasNext        bool
}

// QueryField is a hidden input carrying the State in a GET form.
type QueryField struct {
	Name, Value string
}

type ColumnLink struct {
	Title   string
	Visible bool
	Href    string
}

type HeaderLink struct {
	Title     string
	SortClass string
	Icon      string
	Href      string
}

type RowContext struct {
	Key        string
	Cells      []template.HTML
	Expandable bool
	Expanded   bool
	ToggleHref string
	Details    []DetailContext
}

type DetailContext struct {
	Title string
	Value template.HTML
}

type PageLink struct {
	Number   int
	Selected bool
	Href     string
}

func (w *TableWriter) widgetContext(ctx context.Context, table *datatable.Table) (*WidgetContext, error) {
	var (
		data  = table.Data()
		page  = table.Page()
		query = table.Query()
		err   error
	)
	widget := &WidgetContext{
		ID:            w.id,
		Title:         page.Title,
		TableClass:    w.theme.TableClass(),
		AccentClass:   w.theme.AccentColor().Class(),
		AccentBgClass: w.theme.AccentColor().BgClass(),
		Filter:        page.Filter,
		FilterFields:  queryFields(query, datatable.QueryFilter, datatable.QueryPage),
		LengthFields:  queryFields(query, datatable.QueryPageSize, datatable.QueryPage),
		PageSizes:     page.PageSizes,
		NumVisible:    len(page.Header),
		Info:          page.Info,
	}

	for _, opt := range page.Columns {
		widget.Columns = append(widget.Columns, ColumnLink{
			Title:   opt.Title,
			Visible: opt.Visible,
			Href:    href(table, func(t *datatable.Table) { t.ToggleColumn(opt.Column) }),
		})
	}
	if page.SomeColumnsHidden {
		widget.ShowAll = href(table, func(t *datatable.Table) { t.ShowAllColumns() })
	}

	for _, cell := range page.Header {
		link := HeaderLink{
			Title:     cell.Title,
			SortClass: "sort-" + cell.Sort.String(),
			Icon:      sortIcons[cell.Sort],
			Href:      href(table, func(t *datatable.Table) { t.SortBy(cell.Position) }),
		}
		if cell.Sort != datatable.SortNone {
			link.SortClass += " " + widget.AccentClass
		}
		widget.Header = append(widget.Header, link)
	}

	for _, row := range page.Rows {
		rc := RowContext{
			Key:        row.Key,
			Cells:      make([]template.HTML, len(row.Cells)),
			Expandable: row.Expandable,
			Expanded:   row.Expanded,
		}
		for i, cell := range row.Cells {
			rc.Cells[i], err = w.formatValue(ctx, &data.Columns[cell.Column], cell.Value)
			if err != nil {
				return nil, err
			}
		}
		if row.Expandable {
			rc.ToggleHref = href(table, func(t *datatable.Table) { t.ToggleRow(row.Key) })
		}
		for _, detail := range row.Details {
			value, err := w.formatValue(ctx, &data.Columns[detail.Column], detail.Value)
			if err != nil {
				return nil, err
			}
			rc.Details = append(rc.Details, DetailContext{Title: detail.Title, Value: value})
		}
		widget.Rows = append(widget.Rows, rc)
	}

	p := page.Pagination
	for _, n := range p.Pages {
		widget.Pages = append(widget.Pages, PageLink{
			Number:   n + 1,
			Selected: n == p.Page,
			Href:     href(table, func(t *datatable.Table) { t.SetPage(n) }),
		})
	}
	widget.First = href(table, func(t *datatable.Table) { t.FirstPage() })
	widget.Prev = href(table, func(t *datatable.Table) { t.PrevPage() })
	widget.Next = href(table, func(t *datatable.Table) { t.NextPage() })
	widget.Last = href(table, func(t *datatable.Table) { t.LastPage() })
	widget.HasPrev = p.Page > 0
	widget.HasNext = p.Page < p.MaxPage-1
	return widget, nil
}

var sortIcons = map[datatable.SortIndicator]string{
	datatable.SortNone:       "↕",
	datatable.SortAscending:  "▲",
	datatable.SortDescending: "▼",
}

// href applies op to a clone of table
// and returns the query of the resulting State.
func href(table *datatable.Table, op func(*datatable.Table)) string {
	target := table.Clone()
	op(target)
	return "?" + target.Query().Encode()
}

func queryFields(query url.Values, exclude ...string) []QueryField {
	var fields []QueryField
	for _, name := range slices.Sorted(maps.Keys(query)) {
		if slices.Contains(exclude, name) {
			continue
		}
		for _, value := range query[name] {
			fields = append(fields, QueryField{Name: name, Value: value})
		}
	}
	return fields
}

// formatValue formats a display value with the formatter of the column,
// then the type formatters, and escapes the result if it is not raw.
func (w *TableWriter) formatValue(ctx context.Context, column *datatable.Column, value any) (template.HTML, error) {
	view := &retable.AnyValuesView{Cols: []string{column.Key}, Rows: [][]any{{value}}}
	html, err := formatCellHTML(ctx, view, 0, 0, w.columnFormatters[column.Key], w.typeFormatters, w.nilValue)
	if err != nil {
		return "", fmt.Errorf("column %q: %w", column.Key, err)
	}
	return html, nil
}
