// Package tuitable drives a datatable.Table in the terminal
// as a bubbletea model.
package tuitable

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	retable "github.com/plan-dashboard/go-retable"
	"github.com/plan-dashboard/go-retable/datatable"
	"github.com/plan-dashboard/go-retable/theme"
)

// DefaultResizeDebounce is the delay between the last
// terminal resize and the overflow collapse check.
const DefaultResizeDebounce = 150 * time.Millisecond

type mode int

const (
	modeTable mode = iota
	modeFilter
	modeColumns
)

type loadedMsg struct {
	data *datatable.Data
	err  error
}

// collapseMsg triggers the overflow check of the resize
// with the generation gen.
type collapseMsg struct {
	gen int
}

// Model implements tea.Model for a table
// whose data comes from a datatable.Loader.
type Model struct {
	loader       *datatable.Loader
	tableOptions []datatable.Option
	table        *datatable.Table
	loadErr      error

	theme  theme.Theme
	styles theme.Styles
	keys   keyMap
	help   help.Model
	filter textinput.Model

	mode         mode
	column       int // selected header position
	cursor       int // selected row of the page
	pickerCursor int

	width     int
	height    int
	debounce  time.Duration
	resizeGen int

	status    string
	clipboard func(string) error
}

// Option configures a Model created with New.
type Option func(*Model)

// WithResizeDebounce sets the delay of the overflow check after resizes.
func WithResizeDebounce(d time.Duration) Option {
	return func(m *Model) {
		if d > 0 {
			m.debounce = d
		}
	}
}

// WithTableOptions sets the options for the Table created from the loaded data.
func WithTableOptions(options ...datatable.Option) Option {
	return func(m *Model) {
		m.tableOptions = append(m.tableOptions, options...)
	}
}

// WithClipboard replaces the function that writes copied rows.
func WithClipboard(write func(string) error) Option {
	return func(m *Model) {
		m.clipboard = write
	}
}

// New returns a Model that starts loader in its Init command.
func New(loader *datatable.Loader, th theme.Theme, options ...Option) *Model {
	m := &Model{
		loader:    loader,
		theme:     th,
		styles:    th.Styles(),
		keys:      newKeyMap(),
		help:      help.New(),
		filter:    textinput.New(),
		debounce:  DefaultResizeDebounce,
		clipboard: clipboard.WriteAll,
	}
	m.filter.Prompt = "/"
	m.filter.Placeholder = "filter"
	m.help.Styles.ShortKey = m.styles.Status.Copy().Bold(true)
	m.help.Styles.ShortDesc = m.styles.Status.Copy()
	for _, option := range options {
		option(m)
	}
	return m
}

// Table returns the table or nil while loading.
func (m *Model) Table() *datatable.Table { return m.table }

func (m *Model) Init() tea.Cmd {
	loader := m.loader
	return func() tea.Msg {
		data, err := loader.Wait(context.Background())
		return loadedMsg{data: data, err: err}
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		if msg.err != nil {
			m.loadErr = msg.err
			return m, nil
		}
		table, err := datatable.New(*msg.data, m.tableOptions...)
		if err != nil {
			m.loadErr = err
			return m, nil
		}
		m.table = table
		if m.width > 0 {
			return m, m.scheduleCollapse()
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, m.scheduleCollapse()

	case collapseMsg:
		if msg.gen == m.resizeGen {
			m.collapseOverflow()
		}
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.quit) && (m.mode != modeFilter || msg.Type == tea.KeyCtrlC) {
			return m, tea.Quit
		}
		if m.table == nil {
			return m, nil
		}
		m.status = ""
		switch m.mode {
		case modeFilter:
			return m.updateFilter(msg)
		case modeColumns:
			return m, m.updateColumns(msg)
		}
		return m.updateTable(msg)
	}
	return m, nil
}

// scheduleCollapse starts a new resize generation
// so that pending checks of earlier resizes are ignored.
func (m *Model) scheduleCollapse() tea.Cmd {
	m.resizeGen++
	gen := m.resizeGen
	return tea.Tick(m.debounce, func(time.Time) tea.Msg {
		return collapseMsg{gen: gen}
	})
}

// collapseOverflow hides the last visible column
// while the table is wider than the terminal.
func (m *Model) collapseOverflow() {
	if m.table == nil || m.width <= 0 {
		return
	}
	for m.table.CollapseOverflow(m.naturalWidth(), m.width) {
	}
	m.clampSelection()
}

func (m *Model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.escape) {
		m.mode = modeTable
		m.filter.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	if m.table.SetFilter(m.filter.Value()) {
		m.cursor = 0
	}
	return m, cmd
}

func (m *Model) updateColumns(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	numCols := m.table.NumColumns()
	switch {
	case key.Matches(msg, m.keys.escape), key.Matches(msg, m.keys.columns):
		m.mode = modeTable
	case key.Matches(msg, m.keys.up):
		m.pickerCursor = max(m.pickerCursor-1, 0)
	case key.Matches(msg, m.keys.down):
		m.pickerCursor = min(m.pickerCursor+1, numCols-1)
	case key.Matches(msg, m.keys.toggle):
		if m.table.State().IsVisible(m.pickerCursor) {
			m.table.HideColumn(m.pickerCursor)
		} else {
			cmd = m.columnsShown(m.table.ShowColumn(m.pickerCursor))
		}
	case key.Matches(msg, m.keys.showAll):
		cmd = m.columnsShown(m.table.ShowAllColumns())
	}
	m.clampSelection()
	return cmd
}

// columnsShown schedules an overflow check
// when columns became visible in a sized terminal.
func (m *Model) columnsShown(shown bool) tea.Cmd {
	if !shown || m.width <= 0 {
		return nil
	}
	return m.scheduleCollapse()
}

func (m *Model) updateTable(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	t := m.table
	switch {
	case key.Matches(msg, m.keys.filter):
		m.mode = modeFilter
		m.filter.SetValue(t.State().Filter)
		m.filter.CursorEnd()
		return m, m.filter.Focus()
	case key.Matches(msg, m.keys.columns):
		m.mode = modeColumns
	case key.Matches(msg, m.keys.left):
		m.column--
	case key.Matches(msg, m.keys.right):
		m.column++
	case key.Matches(msg, m.keys.sort):
		if t.SortBy(m.column) {
			m.cursor = 0
		}
	case key.Matches(msg, m.keys.hide):
		if header := t.Page().Header; m.column < len(header) {
			t.HideColumn(header[m.column].Column)
		}
	case key.Matches(msg, m.keys.showAll):
		cmd = m.columnsShown(t.ShowAllColumns())
	case key.Matches(msg, m.keys.up):
		m.cursor--
	case key.Matches(msg, m.keys.down):
		m.cursor++
	case key.Matches(msg, m.keys.expand):
		if rows := t.Page().Rows; m.cursor < len(rows) {
			t.ToggleRow(rows[m.cursor].Key)
		}
	case key.Matches(msg, m.keys.nextPage):
		if t.NextPage() {
			m.cursor = 0
		}
	case key.Matches(msg, m.keys.prevPage):
		if t.PrevPage() {
			m.cursor = 0
		}
	case key.Matches(msg, m.keys.firstPage):
		if t.FirstPage() {
			m.cursor = 0
		}
	case key.Matches(msg, m.keys.lastPage):
		if t.LastPage() {
			m.cursor = 0
		}
	case key.Matches(msg, m.keys.pageSize):
		t.CyclePageSize()
	case key.Matches(msg, m.keys.copyRow):
		m.copyRow()
	case key.Matches(msg, m.keys.help):
		m.help.ShowAll = !m.help.ShowAll
	}
	m.clampSelection()
	return m, cmd
}

func (m *Model) clampSelection() {
	page := m.table.Page()
	m.column = max(min(m.column, len(page.Header)-1), 0)
	m.cursor = max(min(m.cursor, len(page.Rows)-1), 0)
}

// copyRow writes the values of all columns of the
// selected row as tab separated line to the clipboard.
func (m *Model) copyRow() {
	rows := m.table.Page().Rows
	if m.cursor >= len(rows) {
		return
	}
	columns := m.table.Data().Columns
	keys := make([]string, len(columns))
	for i := range columns {
		keys[i] = columns[i].Key
	}
	view := retable.NewRecordsView("", []retable.Record{rows[m.cursor].Record}, keys...)
	strs, err := retable.FormatViewAsStrings(context.Background(), view, nil)
	if err == nil {
		err = m.clipboard(strings.Join(strs[0], "\t"))
	}
	if err != nil {
		m.status = fmt.Sprintf("copy failed: %s", err)
		return
	}
	m.status = "row copied"
}
