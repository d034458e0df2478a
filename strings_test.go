package retable

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStringColumnWidths(t *testing.T) {
	tests := []struct {
		name    string
		rows    [][]string
		numCols int
		want    []int
	}{
		{name: "nil rows", rows: nil, numCols: -1, want: nil},
		{name: "fixed cols of nil rows", rows: nil, numCols: 2, want: []int{0, 0}},
		{
			name:    "detect cols",
			rows:    [][]string{{"Name", "Kills"}, {"Alice", "3", "extra"}},
			numCols: -1,
			want:    []int{5, 5, 5},
		},
		{
			name:    "sparse rows",
			rows:    [][]string{{"Steve"}, {"", "1234"}},
			numCols: 2,
			want:    []int{5, 4},
		},
		{
			name:    "wide runes",
			rows:    [][]string{{"日本"}, {"abc"}},
			numCols: 1,
			want:    []int{4},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, StringColumnWidths(tt.rows, tt.numCols))
		})
	}
}

func TestRemoveEmptyStrings(t *testing.T) {
	rows := [][]string{
		{"Name", "Kills", "", " "},
		{"", "  ", ""},
		{"Alice", "3", "", ""},
		{"Bob"},
	}
	rows = RemoveEmptyStringRows(rows)
	require.Len(t, rows, 3)
	require.Equal(t, 2, RemoveEmptyStringColumns(rows))
	require.Equal(t, [][]string{{"Name", "Kills"}, {"Alice", "3"}, {"Bob"}}, rows)
}

func TestParseCellValue(t *testing.T) {
	tests := []struct {
		str  string
		want any
	}{
		{str: "", want: nil},
		{str: "  ", want: nil},
		{str: "42", want: int64(42)},
		{str: " -7 ", want: int64(-7)},
		{str: "1.5", want: 1.5},
		{str: "NaN", want: "NaN"},
		{str: "Inf", want: "Inf"},
		{str: "Steve", want: "Steve"},
	}
	for _, tt := range tests {
		t.Run(tt.str, func(t *testing.T) {
			require.Equal(t, tt.want, ParseCellValue(tt.str))
		})
	}
}

func TestStringsRecords(t *testing.T) {
	records, keys := StringsRecords(
		[]string{"Name", " ", "Kills"},
		[][]string{{"Alice", "x", "3"}, {"Bob"}},
	)
	require.Equal(t, []string{"Name", "Column 2", "Kills"}, keys)
	require.Equal(t, []Record{
		{"Name": "Alice", "Column 2": "x", "Kills": int64(3)},
		{"Name": "Bob"},
	}, records)
}
