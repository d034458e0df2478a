// Package csvtable parses CSV data with detection of
// encoding, separator, and newline, and writes views as CSV.
package csvtable

import (
	"errors"
	"fmt"
	"strings"
)

// Format describes the encoding and structure of CSV data.
type Format struct {
	// Encoding like "UTF-8", "UTF-16LE", "ISO 8859-1", "Windows 1252", "Macintosh"
	Encoding string `json:"encoding"`
	// Separator is the single character field delimiter.
	Separator string `json:"separator"`
	// Newline is one of "\n", "\r\n", "\n\r".
	Newline string `json:"newline"`
}

// NewFormat returns a UTF-8 Format with CRLF newlines.
func NewFormat(separator string) *Format {
	return &Format{
		Encoding:  "UTF-8",
		Separator: separator,
		Newline:   "\r\n",
	}
}

// Validate returns an error if the Format is nil or incomplete.
func (f *Format) Validate() error {
	switch {
	case f == nil:
		return errors.New("<nil> csv.Format")
	case f.Encoding == "":
		return errors.New("missing csv.Format.Encoding")
	case f.Separator == "":
		return errors.New("missing csv.Format.Separator")
	case len(f.Separator) > 1:
		return fmt.Errorf("invalid csv.Format.Separator: %q", f.Separator)
	case f.Newline == "":
		return errors.New("missing csv.Format.Newline")
	case f.Newline != "\n" && f.Newline != "\n\r" && f.Newline != "\r\n":
		return fmt.Errorf("invalid csv.Format.Newline: %q", f.Newline)
	}
	return nil
}

// FormatDetectionConfig configures which encodings are tried
// in order and which strings have to decode correctly
// to accept an encoding.
type FormatDetectionConfig struct {
	Encodings     []string `json:"encodings"`
	EncodingTests []string `json:"encodingTests"`
}

// NewDefaultFormatDetectionConfig returns a config for
// European and Cyrillic exports of spreadsheet programs.
func NewDefaultFormatDetectionConfig() *FormatDetectionConfig {
	return &FormatDetectionConfig{
		Encodings: []string{
			"UTF-8",
			"UTF-16LE",
			"ISO 8859-1",
			"Windows 1252", // like ANSI
			"Macintosh",
		},
		EncodingTests: []string{
			"ä", "Ä", "ö", "Ö", "ü", "Ü", "ß", "§", "€",
			"д", "Д", "ъ", "Ъ", "б", "Б", "л", "Л", "и", "И", "ж",
		},
	}
}

// EscapeQuotes doubles every double quote character.
func EscapeQuotes(val string) string {
	return strings.ReplaceAll(val, `"`, `""`)
}
