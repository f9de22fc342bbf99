package ingest

import (
	"fmt"
	"strings"

	"tableflip.dev/massadd/pkg/record"
)

// Overflow decides what happens to tokens beyond the last field.
type Overflow string

const (
	// OverflowDrop silently discards extra tokens.
	OverflowDrop Overflow = "drop"
	// OverflowStrict rejects lines with extra tokens.
	OverflowStrict Overflow = "strict"
	// OverflowMerge appends extra tokens to the last field, tab separated.
	OverflowMerge Overflow = "merge"
)

// ParseOverflow converts a string to an Overflow. Empty means drop.
func ParseOverflow(raw string) (Overflow, error) {
	switch o := Overflow(strings.ToLower(strings.TrimSpace(raw))); o {
	case "":
		return OverflowDrop, nil
	case OverflowDrop, OverflowStrict, OverflowMerge:
		return o, nil
	default:
		return OverflowDrop, fmt.Errorf("ingest: unknown overflow mode %q (want drop, strict or merge)", raw)
	}
}

// Tokenize splits line on tabs and maps the tokens positionally onto
// schema. The result always has exactly len(schema) fields; missing tokens
// become empty values.
func Tokenize(line string, schema []string, mode Overflow) ([]record.Field, error) {
	tokens := strings.Split(line, "\t")
	fields := make([]record.Field, len(schema))
	for i, name := range schema {
		fields[i].Name = name
		if i < len(tokens) {
			fields[i].Value = strings.TrimSpace(tokens[i])
		}
	}

	if len(tokens) <= len(schema) || len(schema) == 0 {
		return fields, nil
	}
	switch mode {
	case OverflowStrict:
		return nil, fmt.Errorf("%w: got %d, record type has %d", ErrTooManyFields, len(tokens), len(schema))
	case OverflowMerge:
		last := len(schema) - 1
		rest := make([]string, 0, len(tokens)-last)
		for _, t := range tokens[last:] {
			rest = append(rest, strings.TrimSpace(t))
		}
		fields[last].Value = strings.Join(rest, "\t")
	}
	return fields, nil
}
