package retable

import (
	"fmt"
	"reflect"
	"strings"
)

// DefaultStructFieldNaming provides the default StructFieldNaming
// using "col" as title tag, ignores "-" titled fields,
// and uses SpacePascalCase for untagged fields.
var DefaultStructFieldNaming = StructFieldNaming{
	Tag:      "col",
	Ignore:   "-",
	Untagged: SpacePascalCase,
}

// StructFieldNaming defines how struct fields
// are mapped to column titles and record field names.
//
// nil is a valid value for *StructFieldNaming
// and is equal to the zero value
// which will use all exported struct fields
// with their field name as column title.
type StructFieldNaming struct {
	// Tag is the struct field tag to be used as column title.
	// If Tag is empty, then every struct field will be treated as untagged.
	Tag string
	// Ignore is the column title that excludes a struct field.
	Ignore string
	// Untagged will be called with the struct field name to
	// return a title in case the struct field has no tag named Tag.
	// If Untagged is nil, then the struct field name will be used.
	Untagged func(fieldName string) (column string)
}

// String implements the fmt.Stringer interface for StructFieldNaming.
func (n *StructFieldNaming) String() string {
	if n == nil {
		return `StructFieldNaming{Tag: "", Ignore: ""}`
	}
	return fmt.Sprintf("StructFieldNaming{Tag: %#v, Ignore: %#v}", n.Tag, n.Ignore)
}

// StructFieldColumn returns the column title for a struct field.
func (n *StructFieldNaming) StructFieldColumn(structField reflect.StructField) string {
	if n == nil {
		return structField.Name
	}
	if n.Tag != "" {
		if tag, ok := structField.Tag.Lookup(n.Tag); ok {
			if i := strings.IndexByte(tag, ','); i != -1 {
				tag = tag[:i]
			}
			if tag != "" {
				return tag
			}
		}
	}
	if n.Untagged == nil {
		return structField.Name
	}
	return n.Untagged(structField.Name)
}

// IsIgnored returns true if the column title
// marks a struct field to be ignored.
func (n *StructFieldNaming) IsIgnored(column string) bool {
	return column == "" || (n != nil && n.Ignore != "" && column == n.Ignore)
}

// Columns returns the column titles for the exported fields
// of strct which may also be a reflect.Type or reflect.Value.
func (n *StructFieldNaming) Columns(strct any) []string {
	var t reflect.Type
	switch s := strct.(type) {
	case reflect.Type:
		t = s
	case reflect.Value:
		t = s.Type()
	default:
		t = reflect.TypeOf(strct)
	}
	fields := StructFieldTypes(t)
	columns := make([]string, 0, len(fields))
	for _, field := range fields {
		if column := n.StructFieldColumn(field); !n.IsIgnored(column) {
			columns = append(columns, column)
		}
	}
	return columns
}

// StructRecords converts a slice of structs or struct pointers
// to Records using the column titles of naming as field names.
// The returned keys list the field names in struct field order.
// Nil struct pointers result in empty Records.
func StructRecords[T any](rows []T, naming *StructFieldNaming) (records []Record, keys []string) {
	rowType := reflect.TypeFor[T]()
	if rowType.Kind() == reflect.Pointer {
		rowType = rowType.Elem()
	}
	if rowType.Kind() != reflect.Struct {
		panic(fmt.Errorf("row type %s is not a struct or pointer to struct", reflect.TypeFor[T]()))
	}
	fields := StructFieldTypes(rowType)
	for _, field := range fields {
		if column := naming.StructFieldColumn(field); !naming.IsIgnored(column) {
			keys = append(keys, column)
		}
	}
	records = make([]Record, len(rows))
	for i := range rows {
		rec := make(Record, len(keys))
		records[i] = rec
		v := reflect.ValueOf(&rows[i]).Elem()
		if v.Kind() == reflect.Pointer {
			if v.IsNil() {
				continue
			}
			v = v.Elem()
		}
		for j, val := range StructFieldValues(v) {
			column := naming.StructFieldColumn(fields[j])
			if naming.IsIgnored(column) {
				continue
			}
			rec[column] = val.Interface()
		}
	}
	return records, keys
}
