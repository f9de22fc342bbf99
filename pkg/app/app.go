package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"tableflip.dev/massadd/pkg/ingest"
	"tableflip.dev/massadd/pkg/recent"
	"tableflip.dev/massadd/pkg/record"
	"tableflip.dev/massadd/pkg/recordtype"
	"tableflip.dev/massadd/pkg/session"
	"tableflip.dev/massadd/pkg/store"
)

// Service provides high-level operations for records, record types and
// categories. It wraps persistence so the CLI and the MCP server share logic.
type Service struct {
	Persistence store.Persistence
	// DefaultCategory is used for records submitted without a category.
	DefaultCategory string
}

var errNoPersistence = errors.New("app: no persistence configured")

// Categories returns sorted category names.
func (s *Service) Categories(ctx context.Context) ([]string, error) {
	if s.Persistence == nil {
		return nil, errNoPersistence
	}
	return s.Persistence.Categories(ctx, ""), nil
}

// EnsureCategory ensures the named category exists even if empty.
func (s *Service) EnsureCategory(ctx context.Context, category string) error {
	if s.Persistence == nil {
		return errNoPersistence
	}
	return s.Persistence.EnsureCategory(category)
}

// Records lists records of a category, or of every category when category
// is empty, oldest first.
func (s *Service) Records(ctx context.Context, category string) ([]*record.Record, error) {
	if s.Persistence == nil {
		return nil, errNoPersistence
	}
	if category == "" {
		return s.Persistence.ListAll(ctx), nil
	}
	return s.Persistence.List(ctx, category), nil
}

// Lookup returns the records with the given ids in the order requested.
func (s *Service) Lookup(ctx context.Context, ids ...string) ([]*record.Record, error) {
	if s.Persistence == nil {
		return nil, errNoPersistence
	}
	out := make([]*record.Record, 0, len(ids))
	for _, id := range ids {
		r, err := s.Persistence.Get(ctx, id)
		if err != nil {
			return out, err
		}
		out = append(out, r)
	}
	return out, nil
}

// Delete removes a record permanently.
func (s *Service) Delete(ctx context.Context, id string) error {
	if s.Persistence == nil {
		return errNoPersistence
	}
	return s.Persistence.Delete(ctx, id)
}

// Watch subscribes to persistence change events.
func (s *Service) Watch(ctx context.Context) (<-chan store.Event, error) {
	if s.Persistence == nil {
		return nil, errNoPersistence
	}
	return s.Persistence.Watch(ctx)
}

// RecordTypes returns the record type catalog.
func (s *Service) RecordTypes(ctx context.Context) ([]recordtype.Type, error) {
	if s.Persistence == nil {
		return nil, errNoPersistence
	}
	return s.Persistence.RecordTypes()
}

// RecordType returns one record type.
func (s *Service) RecordType(ctx context.Context, id string) (recordtype.Type, error) {
	if s.Persistence == nil {
		return recordtype.Type{}, errNoPersistence
	}
	return s.Persistence.RecordType(id)
}

// DefineRecordType adds or replaces a record type.
func (s *Service) DefineRecordType(ctx context.Context, id, name string, fields []string) (recordtype.Type, error) {
	if s.Persistence == nil {
		return recordtype.Type{}, errNoPersistence
	}
	t := recordtype.Type{ID: recordtype.NormalizeID(id), Name: strings.TrimSpace(name)}
	for _, f := range fields {
		t.Fields = append(t.Fields, strings.TrimSpace(f))
	}
	if err := s.Persistence.SaveRecordType(t); err != nil {
		return recordtype.Type{}, err
	}
	return t, nil
}

// RemoveRecordType deletes a record type. Records already created with it
// are kept.
func (s *Service) RemoveRecordType(ctx context.Context, id string) error {
	if s.Persistence == nil {
		return errNoPersistence
	}
	return s.Persistence.DeleteRecordType(id)
}

// RecentTags scans the depth newest records for up to limit distinct tags.
func (s *Service) RecentTags(ctx context.Context, limit, depth int) ([]string, error) {
	if s.Persistence == nil {
		return nil, errNoPersistence
	}
	return recent.Scanner{Source: s.TagSource(), Limit: limit, Depth: depth}.Scan(ctx)
}

// AddBatch submits a batch through sub, which supplies progress, notifier,
// overflow and failure policy. The service provides the store.
func (s *Service) AddBatch(ctx context.Context, sub ingest.Submitter, b ingest.Batch) (*ingest.Result, error) {
	if s.Persistence == nil {
		return nil, errNoPersistence
	}
	if strings.TrimSpace(b.Category) == "" {
		b.Category = s.DefaultCategory
	}
	sub.Store = s.RecordStore()
	return sub.Submit(ctx, b)
}

// Preview runs the batch prechecks for sess and returns the drafts it
// would create. A blank session category is set to the default.
func (s *Service) Preview(ctx context.Context, sub ingest.Submitter, sess *session.Session) ([]*record.Record, error) {
	if s.Persistence == nil {
		return nil, errNoPersistence
	}
	if strings.TrimSpace(sess.Category) == "" {
		sess.Category = s.DefaultCategory
	}
	sub.Store = s.RecordStore()
	if _, err := sub.Check(ctx, sess.Batch()); err != nil {
		return nil, err
	}
	if err := sess.Resolve(ctx, sub.Store); err != nil {
		return nil, err
	}
	return drafts(sess)
}

func drafts(src session.DraftSource) ([]*record.Record, error) {
	return src.Drafts()
}

// RecordStore adapts the persistence to the ingestion pipeline.
func (s *Service) RecordStore() ingest.Store {
	return recordStore{p: s.Persistence}
}

// TagSource adapts the persistence to the recent tag scanner.
func (s *Service) TagSource() recent.Source {
	return tagSource{p: s.Persistence}
}

type recordStore struct {
	p store.Persistence
}

func (r recordStore) LookupType(_ context.Context, id string) (recordtype.Type, error) {
	return r.p.RecordType(id)
}

func (r recordStore) Submit(_ context.Context, rec *record.Record) (string, error) {
	if err := r.p.EnsureCategory(rec.Category); err != nil {
		return "", err
	}
	if err := r.p.Store(rec); err != nil {
		return "", err
	}
	if rec.ID == "" {
		return "", fmt.Errorf("app: store returned no id")
	}
	return rec.ID, nil
}

type tagSource struct {
	p store.Persistence
}

func (t tagSource) RecentIDs(ctx context.Context, limit int) ([]string, error) {
	return t.p.RecentIDs(ctx, limit)
}

func (t tagSource) Tags(ctx context.Context, id string) ([]string, error) {
	r, err := t.p.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return r.Tags, nil
}
