// Package ingest turns pasted text into records: it splits and normalizes
// lines, maps tab separated tokens onto a record type's fields and submits
// one record per line to a store.
package ingest

import (
	"strings"
	"unicode/utf8"
)

var lineBreaks = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// Normalize splits text into lines, trims each one and drops blanks.
// Order is preserved.
func Normalize(text string) []string {
	pieces := strings.Split(lineBreaks.Replace(text), "\n")
	lines := make([]string, 0, len(pieces))
	for _, p := range pieces {
		if p = strings.TrimSpace(p); p != "" {
			lines = append(lines, p)
		}
	}
	return lines
}

// SplitOnMarker turns every occurrence of marker into marker plus a line
// break, so a flat delimited string becomes one entry per line. On error
// text is returned unchanged. Applying it twice inserts the breaks twice.
func SplitOnMarker(text, marker string) (string, error) {
	if marker == "" || utf8.RuneCountInString(marker) != 1 {
		return text, ErrInvalidDelimiter
	}
	return strings.ReplaceAll(text, marker, marker+"\n"), nil
}
