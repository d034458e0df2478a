package retable

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStructFieldNaming_Columns(t *testing.T) {
	type Playtime struct {
		Active float64 `col:"active"`
		AFK    float64
	}
	type serverStats struct {
		Server string
		Playtime
		Geo struct {
			Country string
		}
		tps float64
	}
	tests := []struct {
		name   string
		naming *StructFieldNaming
		strct  any
		want   []string
	}{
		{name: "empty struct, nil naming", naming: nil, strct: struct{}{}, want: []string{}},
		{
			name:   "exported names, nil naming",
			naming: nil,
			strct: struct {
				Kills  int
				Online bool `col:"online"`
				uuid   string
			}{},
			want: []string{"Kills", "Online"},
		},
		{
			name:   "embedded struct inlined, nil naming",
			naming: nil,
			strct:  serverStats{},
			want:   []string{"Server", "Active", "AFK", "Geo"},
		},
		{name: "empty struct, DefaultStructFieldNaming", naming: &DefaultStructFieldNaming, strct: struct{}{}, want: []string{}},
		{
			name:   "tagged, ignored, and untagged names, DefaultStructFieldNaming",
			naming: &DefaultStructFieldNaming,
			strct: struct {
				Kills      int    `col:"kills,omitempty"`
				Secret     string `col:"-"`
				LastSeen   int64
				PlayerName string `col:""`
				uuid       string
			}{},
			want: []string{"kills", "Last Seen", "Player Name"},
		},
		{
			name:   "embedded struct inlined, DefaultStructFieldNaming",
			naming: &DefaultStructFieldNaming,
			strct:  &serverStats{},
			want:   []string{"Server", "active", "AFK", "Geo"},
		},
		{
			name:   "reflect type, custom naming",
			naming: &StructFieldNaming{Tag: "json", Ignore: "-", Untagged: UseTitle("x")},
			strct: reflect.TypeOf(struct {
				Name  string `json:"name"`
				Debug bool   `json:"-"`
				Other int
			}{}),
			want: []string{"name", "x"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.naming.Columns(tt.strct)
			require.Equal(t, tt.want, got, "StructFieldNaming.Columns()")
		})
	}
}

func TestStructRecords(t *testing.T) {
	type player struct {
		UUID       string `col:"uuid"`
		PlayerName string
		Sessions   int    `col:"sessions"`
		Internal   string `col:"-"`
		hidden     bool
	}
	rows := []*player{
		{UUID: "a", PlayerName: "Alice", Sessions: 3, Internal: "x"},
		nil,
	}

	records, keys := StructRecords(rows, &DefaultStructFieldNaming)
	require.Equal(t, []string{"uuid", "Player Name", "sessions"}, keys)
	require.Len(t, records, 2)
	require.Equal(t, Record{"uuid": "a", "Player Name": "Alice", "sessions": 3}, records[0])
	require.Empty(t, records[1])
}
