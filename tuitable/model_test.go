package tuitable

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	retable "github.com/plan-dashboard/go-retable"
	"github.com/plan-dashboard/go-retable/datatable"
	"github.com/plan-dashboard/go-retable/theme"
)

func playersData(numRows int) *datatable.Data {
	rows := make([]retable.Record, numRows)
	for i := range rows {
		rows[i] = retable.Record{
			"uuid":     fmt.Sprintf("uuid-%02d", i),
			"name":     fmt.Sprintf("Player%02d", i),
			"sessions": i,
			"country":  "Finland",
			"kills":    i * 2,
		}
	}
	return &datatable.Data{
		Title: "Players",
		Columns: []datatable.Column{
			{Key: "name", Title: "Name"},
			{Key: "sessions", Title: "Sessions"},
			{Key: "country", Title: "Country"},
			{Key: "kills", Title: "Kills"},
			{Key: "uuid", Title: "UUID"},
		},
		Rows: rows,
	}
}

func loadedModel(t *testing.T, data *datatable.Data, options ...Option) *Model {
	t.Helper()
	m := New(nil, theme.Theme{}, options...)
	_, cmd := m.Update(loadedMsg{data: data})
	require.Nil(t, cmd)
	require.NotNil(t, m.Table())
	return m
}

func press(m *Model, keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "right":
			msg = tea.KeyMsg{Type: tea.KeyRight}
		case "left":
			msg = tea.KeyMsg{Type: tea.KeyLeft}
		case "up":
			msg = tea.KeyMsg{Type: tea.KeyUp}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "space":
			msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		_, cmd = m.Update(msg)
	}
	return cmd
}

func TestModel_Loading(t *testing.T) {
	m := New(nil, theme.Theme{})
	require.Contains(t, m.View(), "Loading...")

	// keys other than quit are ignored while loading
	require.Nil(t, press(m, "s"))

	m.Update(loadedMsg{err: errors.New("no such file")})
	require.Contains(t, m.View(), "Failed to load table: no such file")
	require.Nil(t, m.Table())
}

func TestModel_Sort(t *testing.T) {
	m := loadedModel(t, playersData(25))

	press(m, "right", "s")
	state := m.Table().State()
	require.Equal(t, 1, state.SortColumn)
	require.False(t, state.SortDescending)

	press(m, "s")
	state = m.Table().State()
	require.Equal(t, 1, state.SortColumn)
	require.True(t, state.SortDescending)
	require.Equal(t, "Player24", m.Table().Page().Rows[0].Record["name"])
}

func TestModel_HideAndShowColumns(t *testing.T) {
	m := loadedModel(t, playersData(3))

	press(m, "right", "h")
	require.Equal(t, []int{0, 2, 3, 4}, m.Table().State().Visible)

	press(m, "c")
	require.Equal(t, modeColumns, m.mode)
	require.Contains(t, m.View(), "■ [ ] Sessions")

	press(m, "down", "space")
	require.Equal(t, []int{0, 1, 2, 3, 4}, m.Table().State().Visible)
	press(m, "space")
	require.Equal(t, []int{0, 2, 3, 4}, m.Table().State().Visible)

	press(m, "a")
	require.Equal(t, []int{0, 1, 2, 3, 4}, m.Table().State().Visible)

	press(m, "esc")
	require.Equal(t, modeTable, m.mode)
}

func TestModel_Pages(t *testing.T) {
	m := loadedModel(t, playersData(25))

	press(m, "down", "down")
	require.Equal(t, 2, m.cursor)

	press(m, "n")
	require.Equal(t, 1, m.Table().State().Page)
	require.Equal(t, 0, m.cursor)

	press(m, "G")
	require.Equal(t, 2, m.Table().State().Page)
	press(m, "n")
	require.Equal(t, 2, m.Table().State().Page)

	// the cursor stays within the 5 rows of the last page
	press(m, "down", "down", "down", "down", "down", "down")
	require.Equal(t, 4, m.cursor)

	press(m, "g")
	require.Equal(t, 0, m.Table().State().Page)
	press(m, "p")
	require.Equal(t, 0, m.Table().State().Page)

	press(m, "z")
	require.Equal(t, 25, m.Table().State().PageSize())
	require.Contains(t, m.View(), "Showing 1 to 25 of 25 entries")
}

func TestModel_Filter(t *testing.T) {
	m := loadedModel(t, playersData(25))

	press(m, "n")
	press(m, "/")
	require.Equal(t, modeFilter, m.mode)
	press(m, "p", "l", "a", "y", "e", "r", "1")
	require.Equal(t, "player1", m.Table().State().Filter)
	require.Equal(t, 0, m.Table().State().Page)
	require.Equal(t, 10, m.Table().Page().Info.Total)

	// q is filter text while filtering
	press(m, "q")
	require.Equal(t, modeFilter, m.mode)
	require.Equal(t, "player1q", m.Table().State().Filter)

	press(m, "esc")
	require.Equal(t, modeTable, m.mode)
	require.Equal(t, "player1q", m.Table().State().Filter)
}

func TestModel_ExpandRow(t *testing.T) {
	m := loadedModel(t, playersData(3))

	// nothing to expand with all columns visible
	press(m, "enter")
	require.False(t, m.Table().Page().Rows[0].Expanded)

	press(m, "right", "right", "h", "down", "enter")
	page := m.Table().Page()
	require.False(t, page.Rows[0].Expanded)
	require.True(t, page.Rows[1].Expanded)
	require.Contains(t, m.View(), "Country: Finland")

	press(m, "enter")
	require.False(t, m.Table().Page().Rows[1].Expanded)
}

func TestModel_CopyRow(t *testing.T) {
	var copied string
	m := loadedModel(t, playersData(3), WithClipboard(func(text string) error {
		copied = text
		return nil
	}))

	press(m, "down", "y")
	require.Equal(t, "Player01\t1\tFinland\t2\tuuid-01", copied)
	require.Contains(t, m.View(), "row copied")

	m = loadedModel(t, playersData(3), WithClipboard(func(string) error {
		return errors.New("no clipboard")
	}))
	press(m, "y")
	require.Contains(t, m.View(), "copy failed: no clipboard")
}

func TestModel_Quit(t *testing.T) {
	m := loadedModel(t, playersData(3))
	cmd := press(m, "q")
	require.NotNil(t, cmd)
	require.Equal(t, tea.Quit(), cmd())
}

func TestModel_DebouncedCollapse(t *testing.T) {
	m := loadedModel(t, playersData(3), WithResizeDebounce(time.Millisecond))
	allVisible := []int{0, 1, 2, 3, 4}

	_, first := m.Update(tea.WindowSizeMsg{Width: 20, Height: 30})
	_, second := m.Update(tea.WindowSizeMsg{Width: 500, Height: 30})
	require.NotNil(t, first)
	require.NotNil(t, second)

	// the check of the first resize is stale
	staleMsg := first()
	require.Equal(t, collapseMsg{gen: 1}, staleMsg)
	m.Update(staleMsg)
	require.Equal(t, allVisible, m.Table().State().Visible)

	m.Update(second())
	require.Equal(t, allVisible, m.Table().State().Visible)

	_, third := m.Update(tea.WindowSizeMsg{Width: 30, Height: 30})
	m.Update(third())
	visible := m.Table().State().Visible
	require.Less(t, len(visible), len(allVisible))
	require.True(t, len(visible) == 1 || m.naturalWidth() <= 30, "natural width %d", m.naturalWidth())
	for _, line := range strings.Split(m.View(), "\n") {
		if strings.HasPrefix(line, "Showing") {
			require.Contains(t, line, "of 3 entries")
		}
	}
}

func TestModel_LoadAfterResize(t *testing.T) {
	m := New(nil, theme.Theme{}, WithResizeDebounce(time.Millisecond))
	_, cmd := m.Update(tea.WindowSizeMsg{Width: 10, Height: 30})
	// the check before the data arrived does nothing
	m.Update(cmd())

	_, cmd = m.Update(loadedMsg{data: playersData(3)})
	require.NotNil(t, cmd)
	m.Update(cmd())
	require.Len(t, m.Table().State().Visible, 1)
}

func TestModel_CollapseAfterShowingColumns(t *testing.T) {
	tests := []struct {
		name string
		keys []string
	}{
		{name: "show all in table", keys: []string{"a"}},
		{name: "show all in picker", keys: []string{"c", "a"}},
		{name: "show column in picker", keys: []string{"c", "down", "down", "down", "down", "space"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := loadedModel(t, playersData(3), WithResizeDebounce(time.Millisecond))
			_, cmd := m.Update(tea.WindowSizeMsg{Width: 30, Height: 30})
			m.Update(cmd())
			collapsed := len(m.Table().State().Visible)
			require.Less(t, collapsed, 5)
			require.False(t, m.Table().State().IsVisible(4))

			cmd = press(m, tt.keys...)
			require.NotNil(t, cmd)
			shown := len(m.Table().State().Visible)
			require.Greater(t, shown, collapsed)

			m.Update(cmd())
			require.Less(t, len(m.Table().State().Visible), shown)
		})
	}
}

func TestModel_HideColumnInPickerSchedulesNothing(t *testing.T) {
	m := loadedModel(t, playersData(3), WithResizeDebounce(time.Millisecond))
	_, cmd := m.Update(tea.WindowSizeMsg{Width: 500, Height: 30})
	m.Update(cmd())
	require.Len(t, m.Table().State().Visible, 5)

	require.Nil(t, press(m, "c", "down", "space"))
	require.False(t, m.Table().State().IsVisible(1))
}
