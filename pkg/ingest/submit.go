package ingest

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"tableflip.dev/massadd/pkg/notify"
	"tableflip.dev/massadd/pkg/progress"
	"tableflip.dev/massadd/pkg/record"
	"tableflip.dev/massadd/pkg/recordtype"
	"tableflip.dev/massadd/pkg/tags"
)

// Store is the record store a batch is submitted to.
type Store interface {
	// LookupType returns the record type with the given id.
	LookupType(ctx context.Context, id string) (recordtype.Type, error)
	// Submit persists r and returns its generated id.
	Submit(ctx context.Context, r *record.Record) (string, error)
}

// Batch is one submission: every line becomes a record of TypeID in
// Category carrying Tags.
type Batch struct {
	Lines    []string
	TypeID   string
	Category string
	Tags     tags.Set
}

// Result lists the ids of the records that were created, in line order.
type Result struct {
	IDs      []string  `json:"ids"`
	Failures []Failure `json:"failures,omitempty"`
	Total    int       `json:"total"`
}

// Count is the number of records created.
func (r *Result) Count() int {
	if r == nil {
		return 0
	}
	return len(r.IDs)
}

// Submitter runs batches against a Store.
type Submitter struct {
	Store    Store
	Progress progress.Sink
	Notifier notify.Notifier
	Overflow Overflow
	// ContinueOnError keeps submitting after a store failure instead of
	// stopping at the first one.
	ContinueOnError bool
	Logger          zerolog.Logger
}

func (s *Submitter) progress() progress.Sink {
	if s.Progress == nil {
		return progress.NoOp{}
	}
	return s.Progress
}

func (s *Submitter) notify(format string, args ...any) {
	if s.Notifier == nil {
		return
	}
	s.Notifier.Notify(fmt.Sprintf(format, args...))
}

// Check runs the prechecks that abort a batch before anything is
// submitted and returns the resolved record type.
func (s *Submitter) Check(ctx context.Context, b Batch) (recordtype.Type, error) {
	if s.Store == nil {
		return recordtype.Type{}, errors.New("ingest: no store configured")
	}
	t, err := s.Store.LookupType(ctx, b.TypeID)
	if err != nil {
		s.notify("Record type %q not found.", b.TypeID)
		return recordtype.Type{}, fmt.Errorf("%w: %q: %w", ErrNoRecordType, b.TypeID, err)
	}
	if len(t.Fields) == 0 {
		s.notify("Record type %q has no fields.", t.DisplayName())
		return recordtype.Type{}, fmt.Errorf("%w: %q", ErrEmptySchema, t.ID)
	}
	if len(b.Lines) == 0 {
		s.notify("No content to add.")
		return recordtype.Type{}, ErrEmptyInput
	}
	if s.Overflow == OverflowStrict {
		for i, line := range b.Lines {
			if _, err := Tokenize(line, t.Fields, OverflowStrict); err != nil {
				s.notify("Line %d has more fields than %q allows (%d).", i+1, t.DisplayName(), len(t.Fields))
				return recordtype.Type{}, fmt.Errorf("line %d: %w", i+1, err)
			}
		}
	}
	return t, nil
}

// Draft builds the record one line of b becomes under t.
func Draft(t recordtype.Type, line string, b Batch, mode Overflow) (*record.Record, error) {
	fields, err := Tokenize(line, t.Fields, mode)
	if err != nil {
		return nil, err
	}
	r := record.New(t.ID, t.Fields)
	r.SetFields(fields)
	// Slice allocates, so each record owns its tags.
	r.SetTags(b.Tags.Slice())
	r.SetCategory(b.Category)
	return r, nil
}

// Submit creates one record per line. A failed precheck returns before
// anything is submitted. Store failures either halt the batch or, with
// ContinueOnError, are collected; in both cases the records already
// submitted stay in the store and a *BatchError describes the outcome.
func (s *Submitter) Submit(ctx context.Context, b Batch) (*Result, error) {
	t, err := s.Check(ctx, b)
	if err != nil {
		return nil, err
	}

	total := len(b.Lines)
	log := s.Logger.With().Str("type", t.ID).Str("category", b.Category).Logger()
	log.Info().Int("lines", total).Msg("batch start")

	res := &Result{IDs: make([]string, 0, total), Total: total}
	p := s.progress()
	p.Start(total, "Adding notes")

	halted := false
	for i, line := range b.Lines {
		if err := ctx.Err(); err != nil {
			res.Failures = append(res.Failures, Failure{Index: i, Line: line, Err: err})
			halted = true
			break
		}
		d, err := Draft(t, line, b, s.Overflow)
		if err == nil {
			var id string
			id, err = s.Store.Submit(ctx, d)
			if err == nil {
				res.IDs = append(res.IDs, id)
				log.Debug().Int("line", i+1).Str("id", id).Msg("record added")
				p.Advance(i + 1)
				continue
			}
			err = &storeError{err: err}
		}
		log.Warn().Int("line", i+1).Err(err).Msg("record failed")
		res.Failures = append(res.Failures, Failure{Index: i, Line: line, Err: err})
		if !s.ContinueOnError {
			halted = true
			break
		}
		p.Advance(i + 1)
	}
	if halted {
		p.Stop()
	} else {
		p.Finish()
	}

	log.Info().Int("added", res.Count()).Int("failed", len(res.Failures)).Msg("batch done")

	if len(res.Failures) == 0 {
		s.notify("Added %d note(s).", res.Count())
		return res, nil
	}

	be := &BatchError{
		Committed: res.Count(),
		Total:     total,
		Failures:  res.Failures,
		Halted:    halted,
	}
	if halted {
		f := res.Failures[len(res.Failures)-1]
		s.notify("Added %d of %d note(s); stopped at line %d: %v", be.Committed, total, f.Index+1, f.Err)
	} else {
		s.notify("Added %d of %d note(s); %d line(s) failed.", be.Committed, total, len(res.Failures))
	}
	return res, be
}
