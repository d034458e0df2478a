package retable

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCellFormatters(t *testing.T) {
	view := &AnyValuesView{
		Cols: []string{"Value"},
		Rows: [][]any{{42}, {nil}, {"<b>"}, {3.5}},
	}
	tests := []struct {
		name    string
		fmt     CellFormatter
		row     int
		wantStr string
		wantRaw bool
		wantErr error
	}{
		{name: "sprint int", fmt: SprintCellFormatter(false), row: 0, wantStr: "42"},
		{name: "sprint nil", fmt: SprintCellFormatter(true), row: 1, wantStr: "", wantRaw: true},
		{name: "printf", fmt: PrintfCellFormatter("%05d"), row: 0, wantStr: "00042"},
		{name: "raw string", fmt: RawCellString("<hr>"), row: 2, wantStr: "<hr>", wantRaw: true},
		{name: "layout unsupported", fmt: LayoutFormatter("2006"), row: 0, wantErr: errors.ErrUnsupported},
		{
			name: "kind formatter",
			fmt: NewReflectTypeCellFormatter().
				WithKindFormatter(reflect.Float64, PrintfCellFormatter("%.2f")),
			row:     3,
			wantStr: "3.50",
		},
		{
			name:    "kind formatter without match",
			fmt:     NewReflectTypeCellFormatter().WithKindFormatter(reflect.Float64, PrintfCellFormatter("%.2f")),
			row:     0,
			wantErr: errors.ErrUnsupported,
		},
		{
			name: "default formatter",
			fmt: NewReflectTypeCellFormatter().
				WithDefaultFormatter(RawCellString("-")),
			row:     0,
			wantStr: "-",
			wantRaw: true,
		},
		{name: "try chain with nil", fmt: TryFormattersOrSprint(nil, (*ReflectTypeCellFormatter)(nil)), row: 0, wantStr: "42"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			str, raw, err := tt.fmt.FormatCell(context.Background(), view, tt.row, 0)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantStr, str)
			require.Equal(t, tt.wantRaw, raw)
		})
	}
}

func TestReflectTypeCellFormatter_Immutable(t *testing.T) {
	base := NewReflectTypeCellFormatter().WithKindFormatter(reflect.Int, PrintfCellFormatter("#%d"))
	mod := base.WithKindFormatter(reflect.Int, PrintfCellFormatter("%d!"))

	view := &AnyValuesView{Cols: []string{"N"}, Rows: [][]any{{7}}}
	str, _, err := base.FormatCell(context.Background(), view, 0, 0)
	require.NoError(t, err)
	require.Equal(t, "#7", str)
	str, _, err = mod.FormatCell(context.Background(), view, 0, 0)
	require.NoError(t, err)
	require.Equal(t, "7!", str)
}
