package datatable

import (
	"fmt"
	"reflect"
	"strings"

	retable "github.com/plan-dashboard/go-retable"
)

// FilterWords splits a filter text into lower case words.
func FilterWords(filter string) []string {
	words := strings.Fields(filter)
	for i, word := range words {
		words[i] = strings.ToLower(word)
	}
	return words
}

// filterKeys returns the raw and display keys of the visible columns.
func filterKeys(columns []Column, visible []int) []string {
	keys := make([]string, 0, len(visible)*2)
	for _, col := range visible {
		keys = append(keys, columns[col].Key)
		if d := columns[col].Display; d != "" && d != columns[col].Key {
			keys = append(keys, d)
		}
	}
	return keys
}

// rowMatches returns true if any word is a substring of the
// lower case string of any defined value of the row at keys.
func rowMatches(row retable.Record, keys, words []string) bool {
	if len(words) == 0 {
		return true
	}
	for _, key := range keys {
		val, ok := row.Lookup(key)
		if !ok {
			continue
		}
		str := strings.ToLower(ValueString(val))
		for _, word := range words {
			if strings.Contains(str, word) {
				return true
			}
		}
	}
	return false
}

// matchingRows returns the indices of all rows matching the filter.
func matchingRows(data *Data, state *State) []int {
	words := FilterWords(state.Filter)
	keys := filterKeys(data.Columns, state.Visible)
	matching := make([]int, 0, len(data.Rows))
	for i, row := range data.Rows {
		if rowMatches(row, keys, words) {
			matching = append(matching, i)
		}
	}
	return matching
}

// ValueString returns the string form of a record value
// used for filtering and text rendering.
// Undefined values result in an empty string.
func ValueString(val any) string {
	v := reflect.ValueOf(val)
	if retable.IsNullLike(v) {
		return ""
	}
	if v.Kind() == reflect.Pointer {
		return fmt.Sprint(v.Elem().Interface())
	}
	return fmt.Sprint(val)
}
