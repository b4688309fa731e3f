package core

// convert.go converts between roster lines and cells.
//
// Export escapes a cell only when it contains the delimiter or a double quote;
// import reverses exactly that escaping. Any line that is not made of
// well-formed quoted cells is split on every comma, so a delimiter outside a
// closed quote is always a cell boundary.

import (
	"bytes"
	"encoding/csv"
	"io"
	"strings"
	"unicode/utf8"
)

// Delimiter separates cells in a roster line.
const Delimiter = ","

const quote = `"`

// EscapeCell quotes a cell if it contains a delimiter or a double quote,
// doubling any inner quotes. Other values are returned unchanged.
func EscapeCell(s string) string {
	if !strings.Contains(s, Delimiter) && !strings.Contains(s, quote) {
		return s
	}
	return quote + strings.ReplaceAll(s, quote, quote+quote) + quote
}

// FormatLine escapes each cell and joins them with the delimiter.
func FormatLine(cells []string) string {
	escaped := make([]string, len(cells))
	for i, c := range cells {
		escaped[i] = EscapeCell(c)
	}
	return strings.Join(escaped, Delimiter)
}

// SplitLine splits a roster line into raw cells.
//
// Quoted cells produced by EscapeCell are unwrapped. If any quote is not
// part of such a cell (a stray quote in an unquoted value, a quote that is
// never closed, or text after a closing quote) the whole line is split on
// every comma and quotes are kept literally.
func SplitLine(line string) []string {
	if !strings.Contains(line, quote) {
		return strings.Split(line, Delimiter)
	}

	// Strict quoting: the reader fails on ErrBareQuote and ErrQuote.
	r := csv.NewReader(strings.NewReader(line))
	r.FieldsPerRecord = -1

	cells, err := r.Read()
	if err != nil {
		return strings.Split(line, Delimiter)
	}
	if _, err := r.Read(); err != io.EOF {
		return strings.Split(line, Delimiter)
	}
	return cells
}

// cellAt returns the trimmed cell at index i, or "" when the line is short.
func cellAt(cells []string, i int) string {
	if i >= len(cells) {
		return ""
	}
	return strings.TrimSpace(cells[i])
}

// sanitizeUTF8 replaces invalid UTF-8 sequences with the replacement rune so
// diagnostics always echo printable text.
func sanitizeUTF8(data []byte) []byte {
	if utf8.Valid(data) {
		return data
	}

	var buf bytes.Buffer
	buf.Grow(len(data))

	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		if r == utf8.RuneError && size == 1 {
			buf.WriteRune('\uFFFD')
			data = data[1:]
		} else {
			buf.WriteRune(r)
			data = data[size:]
		}
	}

	return buf.Bytes()
}

// isBlankLine reports whether a line has no content after trimming.
func isBlankLine(line string) bool {
	return strings.TrimSpace(line) == ""
}
