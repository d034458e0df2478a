package retable

import (
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
)

// StringColumnWidths returns the column widths of the passed
// table as count of terminal cells (East Asian wide runes count twice).
// If numCols is negative, then the maximum row length is used.
func StringColumnWidths(rows [][]string, numCols int) []int {
	if numCols < 0 {
		for _, row := range rows {
			if rowCols := len(row); rowCols > numCols {
				numCols = rowCols
			}
		}
		if numCols <= 0 {
			return nil
		}
	}
	colWidths := make([]int, numCols)
	for row := range rows {
		for col := 0; col < numCols && col < len(rows[row]); col++ {
			width := runewidth.StringWidth(rows[row][col])
			if width > colWidths[col] {
				colWidths[col] = width
			}
		}
	}
	return colWidths
}

// RemoveEmptyStringRows removes rows where all
// strings are empty or whitespace only.
func RemoveEmptyStringRows(rows [][]string) [][]string {
	return slices.DeleteFunc(rows, isEmptyStringRow)
}

func isEmptyStringRow(row []string) bool {
	for _, s := range row {
		if strings.TrimSpace(s) != "" {
			return false
		}
	}
	return true
}

// RemoveEmptyStringColumns truncates all rows to the last
// column that has a non whitespace string in any row
// and returns that number of columns.
func RemoveEmptyStringColumns(rows [][]string) (numCols int) {
	for _, row := range rows {
		for col := len(row) - 1; col >= numCols; col-- {
			if strings.TrimSpace(row[col]) != "" {
				numCols = col + 1
				break
			}
		}
	}
	for i, row := range rows {
		if len(row) > numCols {
			rows[i] = row[:numCols]
		}
	}
	return numCols
}

// ParseCellValue converts a parsed text cell to a record value.
// Integers become int64, other numbers float64,
// and empty or whitespace only strings nil.
// Everything else is returned as the trimmed string.
func ParseCellValue(str string) any {
	str = strings.TrimSpace(str)
	if str == "" {
		return nil
	}
	if i, err := strconv.ParseInt(str, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(str, 64); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
		return f
	}
	return str
}

// StringsRecords converts string rows to Records using cols as field names
// and ParseCellValue for the values. Empty column titles are
// replaced with "Column" plus the one based column number.
func StringsRecords(cols []string, rows [][]string) (records []Record, keys []string) {
	keys = make([]string, len(cols))
	for i, col := range cols {
		if col = strings.TrimSpace(col); col != "" {
			keys[i] = col
		} else {
			keys[i] = "Column " + strconv.Itoa(i+1)
		}
	}
	records = make([]Record, len(rows))
	for r, row := range rows {
		rec := make(Record, len(keys))
		for c, key := range keys {
			if c >= len(row) {
				break
			}
			if val := ParseCellValue(row[c]); val != nil {
				rec[key] = val
			}
		}
		records[r] = rec
	}
	return records, keys
}
