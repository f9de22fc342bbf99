// Package session holds the editable state of one bulk-add invocation.
//
// A Session is created per invocation. The only state that survives into
// the next one is the tag string, and only when the caller passes it on
// explicitly through Carry.
package session

import (
	"context"
	"errors"
	"fmt"

	"tableflip.dev/massadd/pkg/ingest"
	"tableflip.dev/massadd/pkg/record"
	"tableflip.dev/massadd/pkg/recordtype"
	"tableflip.dev/massadd/pkg/tags"
)

// Carry is the state handed from one session to the next.
type Carry struct {
	Tags     string `json:"tags"`
	Category string `json:"category,omitempty"`
	TypeID   string `json:"type,omitempty"`
}

// DraftSource exposes the records the current input would produce. Preview
// tooling reads drafts through this instead of poking at session fields.
type DraftSource interface {
	Drafts() ([]*record.Record, error)
}

// ErrUnresolved is returned by Drafts before Resolve succeeded.
var ErrUnresolved = errors.New("session: record type not resolved")

// TypeLookup resolves a record type id to its schema.
type TypeLookup interface {
	LookupType(ctx context.Context, id string) (recordtype.Type, error)
}

// Session is the editable input of one invocation.
type Session struct {
	Text     string
	Marker   string
	Tags     string
	Category string
	TypeID   string
	Overflow ingest.Overflow

	codec  tags.Codec
	schema *recordtype.Type
}

// New starts a session from carried state.
func New(c Carry) *Session {
	return &Session{
		Tags:     c.Tags,
		Category: c.Category,
		TypeID:   c.TypeID,
		codec:    tags.Whitespace,
	}
}

// WithCodec sets the tag codec used for resolving and merging tags.
func (s *Session) WithCodec(codec tags.Codec) *Session {
	if codec != nil {
		s.codec = codec
	}
	return s
}

// Split applies the split marker to Text and clears the marker. An invalid
// marker leaves both Text and Marker unchanged.
func (s *Session) Split() error {
	out, err := ingest.SplitOnMarker(s.Text, s.Marker)
	if err != nil {
		return err
	}
	s.Text = out
	s.Marker = ""
	return nil
}

// AddPickedTags merges picked tags into the tag string.
func (s *Session) AddPickedTags(picked []string) {
	s.Tags = tags.Merge(s.codec, s.Tags, picked)
}

// Lines returns the normalized input lines.
func (s *Session) Lines() []string {
	return ingest.Normalize(s.Text)
}

// TagSet resolves the tag string.
func (s *Session) TagSet() tags.Set {
	return tags.Resolve(s.codec, s.Tags)
}

// Batch builds the submission for the current input.
func (s *Session) Batch() ingest.Batch {
	return ingest.Batch{
		Lines:    s.Lines(),
		TypeID:   s.TypeID,
		Category: s.Category,
		Tags:     s.TagSet(),
	}
}

// Resolve looks up the session's record type so Drafts can build records.
func (s *Session) Resolve(ctx context.Context, types TypeLookup) error {
	t, err := types.LookupType(ctx, s.TypeID)
	if err != nil {
		return fmt.Errorf("session: record type %q: %w", s.TypeID, err)
	}
	t = t.Clone()
	s.schema = &t
	return nil
}

// Drafts returns the records the current input would become, one per
// line, without submitting anything.
func (s *Session) Drafts() ([]*record.Record, error) {
	if s.schema == nil {
		return nil, ErrUnresolved
	}
	b := s.Batch()
	out := make([]*record.Record, 0, len(b.Lines))
	for i, line := range b.Lines {
		d, err := ingest.Draft(*s.schema, line, b, s.Overflow)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		out = append(out, d)
	}
	return out, nil
}

// Commit clears the input after a successful batch and keeps the tag
// string and destination.
func (s *Session) Commit() Carry {
	s.Text = ""
	s.Marker = ""
	return s.Carry()
}

// Carry returns the state to start the next session with.
func (s *Session) Carry() Carry {
	return Carry{Tags: s.Tags, Category: s.Category, TypeID: s.TypeID}
}

var _ DraftSource = (*Session)(nil)
