package csvtable

import (
	"errors"
	"fmt"

	fs "github.com/ungerik/go-fs"

	retable "github.com/plan-dashboard/go-retable"
)

// ErrNoHeaderRow is returned for CSV data without any non empty row.
var ErrNoHeaderRow = errors.New("csv has no header row")

// ReadRecords parses csv data with format detection
// and returns the rows after the header row as Records
// keyed by the header row titles.
func ReadRecords(data []byte, config *FormatDetectionConfig) (records []retable.Record, keys []string, format *Format, err error) {
	rows, format, err := ParseDetectFormat(data, config)
	if err != nil {
		return nil, nil, nil, err
	}
	rows = retable.RemoveEmptyStringRows(rows)
	if len(rows) == 0 {
		return nil, nil, format, ErrNoHeaderRow
	}
	view := retable.NewStringsView("", rows)
	records, keys = retable.StringsRecords(view.Cols, view.Rows)
	return records, keys, format, nil
}

// ReadFileRecords reads a CSV file and parses it with ReadRecords.
func ReadFileRecords(file fs.File, config *FormatDetectionConfig) (records []retable.Record, keys []string, err error) {
	data, err := file.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	records, keys, _, err = ReadRecords(data, config)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", file.Name(), err)
	}
	return records, keys, nil
}
