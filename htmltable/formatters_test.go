package htmltable

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	retable "github.com/plan-dashboard/go-retable"
)

func singleCell(value any) retable.View {
	return &retable.AnyValuesView{Cols: []string{""}, Rows: [][]any{{value}}}
}

func TestJSONCellFormatter_FormatCell(t *testing.T) {
	tests := []struct {
		name    string
		fmt     JSONCellFormatter
		view    retable.View
		wantStr string
		wantRaw bool
		wantErr bool
	}{
		{name: "empty nil", fmt: ``, view: singleCell(nil), wantStr: ``, wantRaw: false, wantErr: false},
		{name: "empty string", fmt: ``, view: singleCell(""), wantStr: ``, wantRaw: false, wantErr: false},
		{name: "empty nil pointer", fmt: ``, view: singleCell((*int)(nil)), wantStr: `<pre>null</pre>`, wantRaw: true, wantErr: false},
		{name: "compact string JSON", fmt: ``, view: singleCell(`{"1": 1}`), wantStr: `<pre>{"1":1}</pre>`, wantRaw: true, wantErr: false},
		{name: "compact []byte JSON", fmt: ``, view: singleCell([]byte(`{"1": 1}`)), wantStr: `<pre>{"1":1}</pre>`, wantRaw: true, wantErr: false},
		{name: "compact RawMessage JSON", fmt: ``, view: singleCell(json.RawMessage(`{"1": 1}`)), wantStr: `<pre>{"1":1}</pre>`, wantRaw: true, wantErr: false},
		{name: "indented", fmt: `  `, view: singleCell(`[1]`), wantStr: "<pre>[\n  1\n]</pre>", wantRaw: true, wantErr: false},
		{name: "escaped", fmt: ``, view: singleCell(`"<b>"`), wantStr: `<pre>"&lt;b&gt;"</pre>`, wantRaw: true, wantErr: false},
		{name: "marshalled", fmt: ``, view: singleCell(map[string]int{"kills": 3}), wantStr: `<pre>{"kills":3}</pre>`, wantRaw: true, wantErr: false},
		{name: "invalid", fmt: ``, view: singleCell(`{`), wantStr: ``, wantRaw: false, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			str, raw, err := tt.fmt.FormatCell(context.Background(), tt.view, 0, 0)
			require.Equal(t, tt.wantErr, err != nil, "err result: %v", err)
			require.Equal(t, tt.wantStr, str, "str result")
			require.Equal(t, tt.wantRaw, raw, "raw result")
		})
	}
}

func TestHTMLFormatters(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name    string
		fmt     retable.CellFormatter
		value   any
		wantStr string
	}{
		{name: "pre", fmt: HTMLPreCellFormatter, value: "a<b", wantStr: `<pre>a&lt;b</pre>`},
		{name: "code", fmt: HTMLCodeCellFormatter, value: 42, wantStr: `<code>42</code>`},
		{name: "anchor", fmt: ValueAsHTMLAnchorCellFormatter, value: "top", wantStr: `<a id='top'>top</a>`},
		{name: "span", fmt: HTMLSpanClassCellFormatter("col-green"), value: "online", wantStr: `<span class='col-green'>online</span>`},
		{name: "span nil", fmt: HTMLSpanClassCellFormatter("x"), value: nil, wantStr: `<span class='x'></span>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			str, raw, err := tt.fmt.FormatCell(ctx, singleCell(tt.value), 0, 0)
			require.NoError(t, err)
			require.True(t, raw)
			require.Equal(t, tt.wantStr, str)
		})
	}
}
