// Package record defines the note records massadd creates and stores.
package record

import (
	"fmt"
	"strings"
	"time"
)

// CurrentSchema is the persisted record layout version.
const CurrentSchema = "v1"

// Field is one named slot of a record. Records keep fields in schema order
// and a schema may repeat a name, so fields are a slice rather than a map.
type Field struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Record is a single note. Before it is stored it acts as the draft handle
// the ingestion pipeline fills in.
type Record struct {
	Schema   string    `json:"schema,omitempty"`
	ID       string    `json:"id,omitempty"`
	Type     string    `json:"type"`
	Category string    `json:"category"`
	Fields   []Field   `json:"fields"`
	Tags     []string  `json:"tags,omitempty"`
	Created  Timestamp `json:"created"`
}

// New returns an empty draft of the given record type with one empty slot
// per field name.
func New(typeID string, fieldNames []string) *Record {
	fields := make([]Field, len(fieldNames))
	for i, name := range fieldNames {
		fields[i] = Field{Name: name}
	}
	return &Record{
		Schema:  CurrentSchema,
		Type:    typeID,
		Fields:  fields,
		Created: Timestamp{Time: time.Now()},
	}
}

// SetField assigns value to the first field called name. It reports false
// when the record has no such field.
func (r *Record) SetField(name, value string) bool {
	for i := range r.Fields {
		if r.Fields[i].Name == name {
			r.Fields[i].Value = value
			return true
		}
	}
	return false
}

// SetFields replaces all field values positionally.
func (r *Record) SetFields(fields []Field) {
	r.Fields = append([]Field(nil), fields...)
}

// Field returns the value of the first field called name.
func (r *Record) Field(name string) (string, bool) {
	for _, f := range r.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return "", false
}

// SetTags stores a private copy of tags.
func (r *Record) SetTags(tags []string) {
	if len(tags) == 0 {
		r.Tags = nil
		return
	}
	r.Tags = append(make([]string, 0, len(tags)), tags...)
}

// SetCategory sets the destination category.
func (r *Record) SetCategory(category string) {
	r.Category = category
}

// Map returns the fields as a map. Later duplicates of a name lose to the
// first one.
func (r *Record) Map() map[string]string {
	return FieldMap(r.Fields)
}

// FieldMap flattens fields into a map keeping the first value per name.
func FieldMap(fields []Field) map[string]string {
	m := make(map[string]string, len(fields))
	for _, f := range fields {
		if _, ok := m[f.Name]; !ok {
			m[f.Name] = f.Value
		}
	}
	return m
}

// Title is the first non-empty field value, used for one-line listings.
func (r *Record) Title() string {
	for _, f := range r.Fields {
		if f.Value != "" {
			return f.Value
		}
	}
	return ""
}

func (r *Record) String() string {
	parts := make([]string, 0, len(r.Fields))
	for _, f := range r.Fields {
		parts = append(parts, fmt.Sprintf("%s=%q", f.Name, f.Value))
	}
	return fmt.Sprintf("%s [%s] %s", r.Category, r.Type, strings.Join(parts, " "))
}

// Clone returns a deep copy.
func (r *Record) Clone() *Record {
	if r == nil {
		return nil
	}
	cp := *r
	cp.Fields = append([]Field(nil), r.Fields...)
	if r.Tags != nil {
		cp.Tags = append([]string(nil), r.Tags...)
	}
	return &cp
}
