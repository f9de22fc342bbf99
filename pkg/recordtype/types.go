// Package recordtype defines record types: named, ordered field schemas.
package recordtype

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Type is a record type. Fields is the ordered field schema used to map
// tab separated tokens onto record fields.
type Type struct {
	ID     string   `json:"id"`
	Name   string   `json:"name,omitempty"`
	Fields []string `json:"fields"`
}

const (
	// Basic is a two sided card.
	Basic = "basic"
	// BasicReversed is a two sided card studied in both directions.
	BasicReversed = "basic-reversed"
	// Cloze is a cloze deletion note.
	Cloze = "cloze"
)

// Builtins returns the record types every store starts with.
func Builtins() []Type {
	return []Type{
		{ID: Basic, Name: "Basic", Fields: []string{"Front", "Back"}},
		{ID: BasicReversed, Name: "Basic (and reversed card)", Fields: []string{"Front", "Back"}},
		{ID: Cloze, Name: "Cloze", Fields: []string{"Text", "Back Extra"}},
	}
}

var idPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_.-]*$`)

// NormalizeID lower-cases and trims a type id.
func NormalizeID(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// Validate checks the id and field names of t. An empty field list is
// allowed here; the ingestion pipeline refuses such types at submit time.
func (t Type) Validate() error {
	if t.ID == "" {
		return errors.New("recordtype: id is required")
	}
	if !idPattern.MatchString(t.ID) {
		return fmt.Errorf("recordtype: invalid id %q", t.ID)
	}
	for i, f := range t.Fields {
		if strings.TrimSpace(f) == "" {
			return fmt.Errorf("recordtype: %s field %d has no name", t.ID, i)
		}
	}
	return nil
}

// DisplayName returns Name, falling back to ID.
func (t Type) DisplayName() string {
	if t.Name != "" {
		return t.Name
	}
	return t.ID
}

// Clone returns a copy that does not share the field slice.
func (t Type) Clone() Type {
	t.Fields = append([]string(nil), t.Fields...)
	return t
}
