package htmltable

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"strings"

	retable "github.com/plan-dashboard/go-retable"
)

var (
	HTMLPreCellFormatter retable.CellFormatterFunc = func(ctx context.Context, view retable.View, row, col int) (str string, raw bool, err error) {
		value := template.HTMLEscapeString(cellText(view, row, col))
		return "<pre>" + value + "</pre>", true, nil
	}

	HTMLCodeCellFormatter retable.CellFormatterFunc = func(ctx context.Context, view retable.View, row, col int) (str string, raw bool, err error) {
		value := template.HTMLEscapeString(cellText(view, row, col))
		return "<code>" + value + "</code>", true, nil
	}

	// ValueAsHTMLAnchorCellFormatter formats the cell value using fmt.Sprint,
	// escapes it for HTML and returns an HTML anchor element with the
	// value as id and inner text.
	ValueAsHTMLAnchorCellFormatter retable.CellFormatterFunc = func(ctx context.Context, view retable.View, row, col int) (str string, raw bool, err error) {
		value := template.HTMLEscapeString(cellText(view, row, col))
		return fmt.Sprintf("<a id='%[1]s'>%[1]s</a>", value), true, nil
	}

	_ retable.CellFormatter = JSONCellFormatter("")
	_ retable.CellFormatter = HTMLSpanClassCellFormatter("")
)

func cellText(view retable.View, row, col int) string {
	str, _, _ := retable.SprintCellFormatter(false).FormatCell(context.Background(), view, row, col)
	return str
}

// JSONCellFormatter formats JSON text cells or marshalled values
// indented with the underlying string within a <pre> element.
// An empty indent formats compact JSON.
// Nil and empty text cells result in an empty string.
type JSONCellFormatter string

func (indent JSONCellFormatter) FormatCell(ctx context.Context, view retable.View, row, col int) (str string, raw bool, err error) {
	var src []byte
	switch val := view.Cell(row, col).(type) {
	case nil:
		return "", false, nil
	case json.RawMessage:
		src = val
	case []byte:
		src = val
	case string:
		src = []byte(val)
	default:
		src, err = json.Marshal(val)
		if err != nil {
			return "", false, err
		}
	}
	if len(bytes.TrimSpace(src)) == 0 {
		return "", false, nil
	}
	var buf bytes.Buffer
	if indent == "" {
		err = json.Compact(&buf, src)
	} else {
		err = json.Indent(&buf, src, "", string(indent))
	}
	if err != nil {
		return "", false, err
	}
	return "<pre>" + preEscaper.Replace(buf.String()) + "</pre>", true, nil
}

// preEscaper escapes text content of a <pre> element
// keeping quotes readable.
var preEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// HTMLSpanClassCellFormatter formats the cell value within an HTML span element
// with the class of the underlying string value.
type HTMLSpanClassCellFormatter string

func (class HTMLSpanClassCellFormatter) FormatCell(ctx context.Context, view retable.View, row, col int) (str string, raw bool, err error) {
	text := template.HTMLEscapeString(cellText(view, row, col))
	return fmt.Sprintf("<span class='%s'>%s</span>", template.HTMLEscapeString(string(class)), text), true, nil
}
