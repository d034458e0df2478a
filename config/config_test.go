package config

import (
	"bytes"
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	fs "github.com/ungerik/go-fs"

	retable "github.com/plan-dashboard/go-retable"
	"github.com/plan-dashboard/go-retable/datatable"
	"github.com/plan-dashboard/go-retable/exceltable"
	"github.com/plan-dashboard/go-retable/theme"
)

const playersYAML = `
id: players-table
title: Player List
columns:
  - {key: name, display: link, title: Name}
  - {key: sessions, title: Sessions}
  - {key: country}
order: [1, desc]
pageSize: 25
rowKey: uuid
nightMode: true
accent: light-green
resizeDebounce: 300ms
source:
  csv: players.csv
`

func TestParse(t *testing.T) {
	c, err := Parse([]byte(playersYAML))
	require.NoError(t, err)
	require.Equal(t, "players-table", c.ID)
	require.Equal(t, "Player List", c.Title)
	require.Equal(t, []datatable.Column{
		{Key: "name", Display: "link", Title: "Name"},
		{Key: "sessions", Title: "Sessions"},
		{Key: "country"},
	}, c.Columns)
	require.Equal(t, datatable.Order{Column: 1, Descending: true}, c.Order.Order)
	require.Equal(t, 25, c.PageSize)
	require.Equal(t, 300*time.Millisecond, c.ResizeDebounce)
	require.Equal(t, theme.Theme{NightMode: true, Accent: theme.LightGreen}, c.Theme())
	require.Equal(t, "players.csv", c.Source.CSV)

	table, err := datatable.New(*c.Data([]retable.Record{{"uuid": "u1", "name": "Alice"}}, nil), c.TableOptions()...)
	require.NoError(t, err)
	state := table.State()
	require.Equal(t, 1, state.PageSizeIndex)
	require.Equal(t, 1, state.SortColumn)
	require.True(t, state.SortDescending)
	require.Equal(t, "u1", table.RowKey(retable.Record{"uuid": "u1"}))
}

func TestParse_Defaults(t *testing.T) {
	c, err := Parse([]byte("columns: [{key: a}]\norder: [0]\nsource: {csv: a.csv}\n"))
	require.NoError(t, err)
	require.Equal(t, 10, c.PageSize)
	require.Equal(t, DefaultResizeDebounce, c.ResizeDebounce)
	require.False(t, c.Order.Descending)
	require.Equal(t, theme.Plan, c.Theme().AccentColor())
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{name: "order out of range", yaml: "columns: [{key: a}]\norder: [1, asc]\nsource: {csv: a.csv}"},
		{name: "bad direction", yaml: "columns: [{key: a}]\norder: [0, up]\nsource: {csv: a.csv}"},
		{name: "bad page size", yaml: "columns: [{key: a}]\npageSize: 20\nsource: {csv: a.csv}"},
		{name: "unknown accent", yaml: "columns: [{key: a}]\naccent: white\nsource: {csv: a.csv}"},
		{name: "no source", yaml: "columns: [{key: a}]"},
		{name: "two sources", yaml: "columns: [{key: a}]\nsource: {csv: a.csv, xlsx: a.xlsx}"},
		{name: "sqlite without query", yaml: "columns: [{key: a}]\nsource: {sqlite: a.db}"},
		{name: "column without key", yaml: "columns: [{title: A}]\nsource: {csv: a.csv}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
		})
	}
}

func writeConfig(t *testing.T, dir, source string) fs.File {
	t.Helper()
	path := filepath.Join(dir, "table.yaml")
	yaml := "title: Players\ncolumns: [{key: name}, {key: sessions}]\norder: [1, desc]\nsource:\n" + source
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))
	return fs.File(path)
}

func TestLoad_CSV(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "players.csv"), []byte("name;sessions\nAlice;12\nBob;3\n"), 0o644))

	c, err := Load(writeConfig(t, dir, "  csv: players.csv\n"))
	require.NoError(t, err)

	data, err := c.LoadFunc()(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Players", data.Title)
	require.Equal(t, []retable.Record{
		{"name": "Alice", "sessions": int64(12)},
		{"name": "Bob", "sessions": int64(3)},
	}, data.Rows)
}

func TestLoad_XLSX(t *testing.T) {
	dir := t.TempDir()
	var buf bytes.Buffer
	view := &retable.AnyValuesView{
		Tit:  "Stats",
		Cols: []string{"name", "sessions"},
		Rows: [][]any{{"Alice", 12}},
	}
	require.NoError(t, exceltable.WriteView(context.Background(), &buf, view))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "players.xlsx"), buf.Bytes(), 0o644))

	c, err := Load(writeConfig(t, dir, "  xlsx: players.xlsx\n  sheet: Stats\n"))
	require.NoError(t, err)
	rows, keys, err := c.LoadRecords(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"name", "sessions"}, keys)
	require.Equal(t, []retable.Record{{"name": "Alice", "sessions": int64(12)}}, rows)
}

func TestLoad_SQLite(t *testing.T) {
	dir := t.TempDir()
	db, err := sql.Open("sqlite", filepath.Join(dir, "plan.db"))
	require.NoError(t, err)
	_, err = db.Exec(`CREATE TABLE players (name TEXT, sessions INTEGER);
		INSERT INTO players VALUES ('Alice', 12), ('Bob', NULL);`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	c, err := Load(writeConfig(t, dir, "  sqlite: plan.db\n  query: SELECT name, sessions FROM players ORDER BY name\n"))
	require.NoError(t, err)
	rows, keys, err := c.LoadRecords(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"name", "sessions"}, keys)
	require.Equal(t, []retable.Record{{"name": "Alice", "sessions": int64(12)}, {"name": "Bob"}}, rows)

	c.Source.SQLite = "missing.db"
	_, _, err = c.LoadRecords(context.Background())
	require.Error(t, err)
}

func TestLoad_ColumnsFromSource(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "players.csv"), []byte("name;sessions;country\nAlice;12;Finland\nBob;3;Sweden\n"), 0o644))

	tests := []struct {
		name  string
		yaml  string
		want  []datatable.Column
		order datatable.Order
	}{
		{
			name: "configured columns",
			yaml: "columns: [{key: country, title: Country}]\nsource: {csv: players.csv}\n",
			want: []datatable.Column{{Key: "country", Title: "Country"}},
		},
		{
			name:  "columns from csv header",
			yaml:  "title: Players\norder: [1, desc]\nsource: {csv: players.csv}\n",
			want:  datatable.ColumnsFromKeys("name", "sessions", "country"),
			order: datatable.Order{Column: 1, Descending: true},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, "table.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.yaml), 0o644))
			c, err := Load(fs.File(path))
			require.NoError(t, err)

			data, err := c.LoadFunc()(context.Background())
			require.NoError(t, err)
			require.Equal(t, tt.want, data.Columns)
			require.Equal(t, tt.order, data.Order)
			require.NoError(t, data.Validate())
		})
	}
}
