package datatable

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestQuery_RoundTrip(t *testing.T) {
	table := newTestTable(t, playersData(120), WithRowKey(KeyField("uuid")))
	require.True(t, table.SetPageSizeIndex(1))
	require.True(t, table.SortBy(1))
	require.True(t, table.SortBy(1))
	require.True(t, table.SetFilter("player"))
	require.True(t, table.HideColumn(2))
	require.True(t, table.ToggleRow("uuid-07"))
	require.True(t, table.SetPage(3))

	query := table.Query()
	require.Equal(t, "player", query.Get(QueryFilter))
	require.Equal(t, "1", query.Get(QueryPageSize))
	require.Equal(t, "1", query.Get(QuerySort))
	require.Equal(t, "desc", query.Get(QueryDir))
	require.Equal(t, "3", query.Get(QueryPage))
	require.Equal(t, "0,1,3,4", query.Get(QueryColumns))
	require.Equal(t, []string{"uuid-07"}, query[QueryOpen])

	parsed, err := url.ParseQuery(query.Encode())
	require.NoError(t, err)
	fresh := newTestTable(t, playersData(120), WithRowKey(KeyField("uuid")))
	fresh.ApplyQuery(parsed)
	require.Equal(t, table.State(), fresh.State())
}

func TestApplyQuery_Lenient(t *testing.T) {
	table := newTestTable(t, playersData(30))
	table.ApplyQuery(url.Values{
		QueryColumns:  {"9,x,2"},
		QuerySort:     {"1"},
		QueryDir:      {"sideways"},
		QueryPage:     {"99"},
		QueryPageSize: {"7"},
	})
	state := table.State()
	require.Equal(t, []int{2}, state.Visible)
	require.Equal(t, 2, state.SortColumn, "hidden sort column falls back to first visible")
	require.False(t, state.SortDescending)
	require.Equal(t, 0, state.PageSizeIndex)
	require.Equal(t, 2, state.Page)
	require.Equal(t, url.Values{QuerySort: {"2"}, QueryDir: {"asc"}, QueryPage: {"2"}, QueryColumns: {"2"}}, table.Query())
}
