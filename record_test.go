package retable

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRecord_Lookup(t *testing.T) {
	var nilPtr *int
	rec := Record{"name": "Alice", "kills": 0, "country": nil, "ptr": nilPtr}

	val, ok := rec.Lookup("name")
	require.True(t, ok)
	require.Equal(t, "Alice", val)

	val, ok = rec.Lookup("kills")
	require.True(t, ok, "zero values are defined")
	require.Equal(t, 0, val)

	for _, field := range []string{"country", "ptr", "missing"} {
		_, ok = rec.Lookup(field)
		require.False(t, ok, field)
	}
	require.Equal(t, []string{"country", "kills", "name", "ptr"}, rec.Fields())
}

func TestRecordsView(t *testing.T) {
	rows := []Record{
		{"name": "Alice", "kills": 3},
		{"name": "Bob"},
	}
	view := &RecordsView{Tit: "Players", Keys: []string{"name", "kills"}, Cols: []string{"Name"}, Rows: rows}

	require.Equal(t, "Players", view.Title())
	require.Equal(t, []string{"Name", "kills"}, view.Columns())
	require.Equal(t, 2, view.NumRows())
	require.Equal(t, 3, view.Cell(0, 1))
	require.Nil(t, view.Cell(1, 1))
	require.Nil(t, view.Cell(2, 0))
	require.Nil(t, view.Cell(0, 2))

	records := ViewRecords(NewRecordsView("", rows, "name", "kills"))
	require.Equal(t, rows, records)
}

func TestIndexedView(t *testing.T) {
	source := &AnyValuesView{
		Tit:  "Servers",
		Cols: []string{"Name", "Players", "Map"},
		Rows: [][]any{
			{"alpha", 10, "dust"},
			{"beta", 2, "nuke"},
			{"gamma", 7, "inferno"},
		},
	}

	view := &IndexedView{Source: source, RowIndices: []int{2, 0}, ColIndices: []int{2, 0}}
	require.Equal(t, "Servers", view.Title())
	require.Equal(t, []string{"Map", "Name"}, view.Columns())
	require.Equal(t, 2, view.NumRows())
	require.Equal(t, "inferno", view.Cell(0, 0))
	require.Equal(t, "alpha", view.Cell(1, 1))
	require.Nil(t, view.Cell(2, 0))
	require.Nil(t, view.Cell(0, 2))
	require.Equal(t, "dust", view.ReflectCell(1, 0).Interface())

	all := &IndexedView{Source: source}
	require.Equal(t, 3, all.NumRows())
	require.Equal(t, 2, all.Cell(1, 1))
	require.Nil(t, all.Cell(0, 3))

	titled := ViewWithTitle(view, "Top")
	require.Equal(t, "Top", titled.Title())
	require.Equal(t, "inferno", titled.Cell(0, 0))
}
