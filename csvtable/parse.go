package csvtable

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/domonda/go-types/charset"
)

// ParseDetectFormat detects encoding, newline, and separator
// of the csv data and parses it into rows.
// A nil config uses NewDefaultFormatDetectionConfig.
//
// The separator is taken from a "sep=X" first line if present,
// else the most frequent of comma, semicolon, and tab is used.
func ParseDetectFormat(data []byte, config *FormatDetectionConfig) (rows [][]string, format *Format, err error) {
	if config == nil {
		config = NewDefaultFormatDetectionConfig()
	}
	format, text, err := detectFormat(data, config)
	if err != nil {
		return nil, nil, err
	}
	if len(bytes.TrimSpace(text)) == 0 {
		return nil, format, nil
	}
	rows, err = readRows(text, format.Separator)
	return rows, format, err
}

// ParseWithFormat parses csv data encoded as described by format.
func ParseWithFormat(data []byte, format *Format) (rows [][]string, err error) {
	if err = format.Validate(); err != nil {
		return nil, err
	}
	if format.Encoding == "UTF-8" {
		data = charset.TrimBOM(data, charset.BOMUTF8)
	} else {
		enc, err := charset.GetEncoding(format.Encoding)
		if err != nil {
			return nil, err
		}
		data, err = enc.Decode(data)
		if err != nil {
			return nil, err
		}
	}
	data = sanitizeUTF8(data)
	first, rest, _ := cutLine(data)
	if headerSep := parseSepHeaderLine(first); headerSep != "" {
		if headerSep != format.Separator {
			return nil, fmt.Errorf("separator '%s' in header line is different from format.Separator '%s'", headerSep, format.Separator)
		}
		data = rest
	}
	return readRows(data, format.Separator)
}

func detectFormat(data []byte, config *FormatDetectionConfig) (format *Format, text []byte, err error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return &Format{Encoding: "UTF-8", Separator: ",", Newline: "\n"}, nil, nil
	}
	var encodings []charset.Encoding
	for _, name := range config.Encodings {
		enc, err := charset.GetEncoding(name)
		if err != nil {
			return nil, nil, err
		}
		encodings = append(encodings, enc)
	}
	format = new(Format)
	text, format.Encoding, err = charset.AutoDecode(data, encodings, config.EncodingTests)
	if err != nil {
		return nil, nil, err
	}
	if format.Encoding == "" {
		format.Encoding = "UTF-8"
	}
	text = sanitizeUTF8(charset.TrimBOM(text, charset.BOMUTF8))

	switch {
	case bytes.Contains(text, []byte("\r\n")):
		format.Newline = "\r\n"
	case bytes.Contains(text, []byte("\n\r")):
		format.Newline = "\n\r"
	default:
		format.Newline = "\n"
	}

	first, rest, _ := cutLine(text)
	if format.Separator = parseSepHeaderLine(first); format.Separator != "" {
		return format, rest, nil
	}

	commas := bytes.Count(text, []byte{','})
	semicolons := bytes.Count(text, []byte{';'})
	tabs := bytes.Count(text, []byte{'\t'})
	switch {
	case semicolons > commas && semicolons > tabs:
		format.Separator = ";"
	case tabs > commas && tabs > semicolons:
		format.Separator = "\t"
	default:
		format.Separator = ","
	}
	return format, text, nil
}

// readRows parses RFC 4180 rows with quoted multi-line fields.
// Quotes within unquoted fields are kept and empty lines are skipped.
func readRows(text []byte, separator string) (rows [][]string, err error) {
	// "\n\r" newlines leave a leading "\r" that csv.Reader does not handle
	text = bytes.ReplaceAll(text, []byte("\n\r"), []byte("\n"))
	r := csv.NewReader(bytes.NewReader(text))
	r.Comma, _ = utf8.DecodeRuneInString(separator)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			return rows, nil
		}
		if err != nil {
			return nil, err
		}
		for i := range row {
			row[i] = strings.ReplaceAll(row[i], "\r\n", "\n")
		}
		rows = append(rows, row)
	}
}

func cutLine(text []byte) (line, rest []byte, found bool) {
	line, rest, found = bytes.Cut(text, []byte{'\n'})
	return bytes.TrimRight(line, "\r"), bytes.TrimLeft(rest, "\r"), found
}

func parseSepHeaderLine(line []byte) (sep string) {
	if len(line) >= 2 && line[0] == '"' && line[len(line)-1] == '"' {
		line = line[1 : len(line)-1]
	}
	if len(line) != 5 {
		return ""
	}
	if !bytes.HasPrefix(line, []byte("sep=")) && !bytes.HasPrefix(line, []byte("SEP=")) {
		return ""
	}
	return string(line[4:5])
}

func sanitizeUTF8(str []byte) []byte {
	if utf8.Valid(str) {
		return str
	}
	return bytes.ToValidUTF8(str, []byte("�"))
}
