package tuitable

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/mattn/go-runewidth"

	retable "github.com/plan-dashboard/go-retable"
	"github.com/plan-dashboard/go-retable/datatable"
)

const (
	// MaxCellWidth truncates longer cell texts.
	MaxCellWidth = 40
	cellPadding  = 2
	expandMark   = 2
)

var sortMarks = map[datatable.SortIndicator]string{
	datatable.SortNone:       "",
	datatable.SortAscending:  " ▲",
	datatable.SortDescending: " ▼",
}

// grid holds the texts of the rendered header and page rows.
type grid struct {
	header []string
	rows   [][]string
	widths []int
}

func (m *Model) grid(page *datatable.Page) *grid {
	g := &grid{header: make([]string, len(page.Header))}
	for i, cell := range page.Header {
		g.header[i] = cell.Title + sortMarks[cell.Sort]
	}
	texts := make([][]string, 0, len(page.Rows)+1)
	texts = append(texts, g.header)
	columns := m.table.Data().Columns
	for _, row := range page.Rows {
		cells := make([]string, len(row.Cells))
		for i, cell := range row.Cells {
			cells[i] = cellText(row.Record, &columns[cell.Column], cell.Value)
		}
		g.rows = append(g.rows, cells)
		texts = append(texts, cells)
	}
	g.widths = retable.StringColumnWidths(texts, len(g.header))
	for i := range g.widths {
		g.widths[i] = min(g.widths[i], MaxCellWidth)
	}
	return g
}

// width returns the width of a rendered table line.
func (g *grid) width(expandable bool) int {
	w := 0
	for _, cw := range g.widths {
		w += cw + cellPadding
	}
	if expandable {
		w += expandMark
	}
	return w
}

// cellText returns the terminal text of a display value.
// HTML display values fall back to the raw value of the column.
func cellText(record retable.Record, column *datatable.Column, value any) string {
	if _, isHTML := value.(template.HTML); isHTML {
		value, _ = record.Lookup(column.Key)
	}
	return strings.Join(strings.Fields(datatable.ValueString(value)), " ")
}

// naturalWidth returns the width of the current page
// rendered without truncation to the terminal.
func (m *Model) naturalWidth() int {
	page := m.table.Page()
	return m.grid(page).width(page.SomeColumnsHidden)
}

func (m *Model) View() string {
	if m.loadErr != nil {
		return m.styles.Error.Render("Failed to load table: "+m.loadErr.Error()) + "\n"
	}
	if m.table == nil {
		return m.styles.Status.Render("Loading...") + "\n"
	}

	var (
		b    strings.Builder
		page = m.table.Page()
		g    = m.grid(page)
	)
	if page.Title != "" {
		b.WriteString(m.styles.Title.Render(page.Title))
		b.WriteByte('\n')
	}
	switch {
	case m.mode == modeFilter:
		b.WriteString(m.filter.View())
	case page.Filter != "":
		b.WriteString(m.styles.Status.Render("/" + page.Filter))
	}
	b.WriteByte('\n')

	if m.mode == modeColumns {
		m.writeColumnPicker(&b, page)
	} else {
		m.writeTable(&b, page, g)
	}

	info := page.Info
	pagination := page.Pagination
	status := fmt.Sprintf("Showing %d to %d of %d entries", info.From, info.To, info.Total)
	if pagination.MaxPage > 1 {
		status += fmt.Sprintf(" · page %d/%d", pagination.Page+1, pagination.MaxPage)
	}
	status += fmt.Sprintf(" · %d per page", page.State.PageSize())
	if m.status != "" {
		status += " · " + m.status
	}
	b.WriteString(m.styles.Status.Render(status))
	b.WriteByte('\n')
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m *Model) writeTable(b *strings.Builder, page *datatable.Page, g *grid) {
	if page.SomeColumnsHidden {
		b.WriteString(strings.Repeat(" ", expandMark))
	}
	for i, title := range g.header {
		style := m.styles.Header
		if i == m.column {
			style = m.styles.Selected
		}
		b.WriteString(style.Render(pad(title, g.widths[i])))
	}
	b.WriteByte('\n')

	for r, row := range page.Rows {
		var line strings.Builder
		if row.Expandable {
			if row.Expanded {
				line.WriteString("- ")
			} else {
				line.WriteString("+ ")
			}
		}
		for i, text := range g.rows[r] {
			line.WriteString(m.styles.Cell.Render(pad(text, g.widths[i])))
		}
		if r == m.cursor {
			b.WriteString(m.styles.Cursor.Render(line.String()))
		} else {
			b.WriteString(line.String())
		}
		b.WriteByte('\n')

		columns := m.table.Data().Columns
		for _, detail := range row.Details {
			text := cellText(row.Record, &columns[detail.Column], detail.Value)
			b.WriteString(m.styles.Detail.Render(detail.Title + ": " + text))
			b.WriteByte('\n')
		}
	}
	if len(page.Rows) == 0 {
		b.WriteString(m.styles.Status.Render("No matching entries"))
		b.WriteByte('\n')
	}
}

func (m *Model) writeColumnPicker(b *strings.Builder, page *datatable.Page) {
	for i, opt := range page.Columns {
		mark := "[ ]"
		if opt.Visible {
			mark = "[x]"
		}
		line := m.theme.ColumnStyle(opt.Column).Render("■") + " " + mark + " " + opt.Title
		if i == m.pickerCursor {
			b.WriteString(m.styles.Cursor.Render(line))
		} else {
			b.WriteString(line)
		}
		b.WriteByte('\n')
	}
}

// pad truncates or pads text to width terminal cells.
func pad(text string, width int) string {
	text = runewidth.Truncate(text, width, "…")
	return runewidth.FillRight(text, width)
}
