// Package mcp provides the Model Context Protocol server integration for massadd.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"tableflip.dev/massadd/pkg/app"
	"tableflip.dev/massadd/pkg/ingest"
	"tableflip.dev/massadd/pkg/notify"
	"tableflip.dev/massadd/pkg/progress"
	"tableflip.dev/massadd/pkg/recent"
	"tableflip.dev/massadd/pkg/record"
	"tableflip.dev/massadd/pkg/recordtype"
	"tableflip.dev/massadd/pkg/session"
)

// Defaults fill in tool arguments the caller leaves out.
type Defaults struct {
	Category        string
	Type            string
	Overflow        ingest.Overflow
	ContinueOnError bool
	RecentLimit     int
	RecentDepth     int
}

// Service coordinates the operations shared by the MCP tools and resources.
type Service struct {
	App      *app.Service
	Defaults Defaults
	Logger   zerolog.Logger
}

// AddNotesOptions captures the parameters of one add_notes call.
type AddNotesOptions struct {
	Text            string
	Marker          string
	Tags            string
	Category        string
	Type            string
	Overflow        string
	ContinueOnError *bool
	DryRun          bool
}

// RecordDTO is a transport-friendly projection of a record.
type RecordDTO struct {
	ID       string            `json:"id,omitempty"`
	Type     string            `json:"type"`
	Category string            `json:"category"`
	Fields   map[string]string `json:"fields"`
	Order    []string          `json:"fieldOrder"`
	Tags     []string          `json:"tags,omitempty"`
	Created  string            `json:"created,omitempty"`
}

// FailureDTO describes one line that was not added.
type FailureDTO struct {
	Line  int    `json:"line"`
	Text  string `json:"text"`
	Error string `json:"error"`
}

// AddNotesResult reports the outcome of add_notes.
type AddNotesResult struct {
	Added    int          `json:"added"`
	Total    int          `json:"total"`
	IDs      []string     `json:"ids,omitempty"`
	Failures []FailureDTO `json:"failures,omitempty"`
	Halted   bool         `json:"halted,omitempty"`
	Drafts   []RecordDTO  `json:"drafts,omitempty"`
	Message  string       `json:"message"`
}

// NewService builds a service wrapper around the application service.
func NewService(svc *app.Service, d Defaults) *Service {
	return &Service{App: svc, Defaults: d}
}

// AddNotes splits, tokenizes and submits text as one batch. Precheck
// failures are returned as errors; a batch that stopped part way is not an
// error, the result lists what was added and what failed.
func (s *Service) AddNotes(ctx context.Context, opts AddNotesOptions) (*AddNotesResult, error) {
	if s.App == nil {
		return nil, errors.New("service is not configured")
	}

	sess := session.New(session.Carry{
		Tags:     opts.Tags,
		Category: firstNonEmpty(opts.Category, s.Defaults.Category),
		TypeID:   recordtype.NormalizeID(firstNonEmpty(opts.Type, s.Defaults.Type)),
	})
	sess.Text = opts.Text
	if opts.Marker != "" {
		sess.Marker = opts.Marker
		if err := sess.Split(); err != nil {
			return nil, err
		}
	}

	overflow := s.Defaults.Overflow
	if strings.TrimSpace(opts.Overflow) != "" {
		o, err := ingest.ParseOverflow(opts.Overflow)
		if err != nil {
			return nil, err
		}
		overflow = o
	}
	cont := s.Defaults.ContinueOnError
	if opts.ContinueOnError != nil {
		cont = *opts.ContinueOnError
	}

	msgs := &notify.Recorder{}
	sub := ingest.Submitter{
		Progress:        &progress.Log{Logger: s.Logger},
		Notifier:        msgs,
		Overflow:        overflow,
		ContinueOnError: cont,
		Logger:          s.Logger,
	}
	sess.Overflow = overflow

	if opts.DryRun {
		drafts, err := s.App.Preview(ctx, sub, sess)
		if err != nil {
			return nil, err
		}
		return &AddNotesResult{
			Total:   len(drafts),
			Drafts:  toDTOs(drafts),
			Message: fmt.Sprintf("Would add %d note(s).", len(drafts)),
		}, nil
	}

	res, err := s.App.AddBatch(ctx, sub, sess.Batch())
	var be *ingest.BatchError
	if err != nil && !errors.As(err, &be) {
		return nil, err
	}

	out := &AddNotesResult{
		Added:   res.Count(),
		Total:   res.Total,
		IDs:     res.IDs,
		Message: msgs.Last(),
	}
	for _, f := range res.Failures {
		out.Failures = append(out.Failures, FailureDTO{Line: f.Index + 1, Text: f.Line, Error: f.Err.Error()})
	}
	if be != nil {
		out.Halted = be.Halted
	}
	return out, nil
}

// SplitText applies a split marker and returns the rewritten text with the
// lines it yields.
func (s *Service) SplitText(text, marker string) (string, []string, error) {
	out, err := ingest.SplitOnMarker(text, marker)
	if err != nil {
		return "", nil, err
	}
	return out, ingest.Normalize(out), nil
}

// RecentTags returns recently used tags. Zero limit or depth take the
// configured defaults; other values are clamped to the scan bounds.
func (s *Service) RecentTags(ctx context.Context, limit, depth int) ([]string, error) {
	if s.App == nil {
		return nil, errors.New("service is not configured")
	}
	if limit <= 0 {
		limit = s.Defaults.RecentLimit
	}
	if depth <= 0 {
		depth = s.Defaults.RecentDepth
	}
	limit = recent.Clamp(limit, recent.MinLimit, recent.MaxLimit)
	depth = recent.Clamp(depth, recent.MinDepth, recent.MaxDepth)
	return s.App.RecentTags(ctx, limit, depth)
}

// RecordTypes lists the record type catalog.
func (s *Service) RecordTypes(ctx context.Context) ([]recordtype.Type, error) {
	if s.App == nil {
		return nil, errors.New("service is not configured")
	}
	return s.App.RecordTypes(ctx)
}

// Categories lists the category names.
func (s *Service) Categories(ctx context.Context) ([]string, error) {
	if s.App == nil {
		return nil, errors.New("service is not configured")
	}
	return s.App.Categories(ctx)
}

// RecordByID fetches a single record.
func (s *Service) RecordByID(ctx context.Context, id string) (*RecordDTO, error) {
	if s.App == nil {
		return nil, errors.New("service is not configured")
	}
	found, err := s.App.Lookup(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := toDTO(found[0])
	return &dto, nil
}

func toDTOs(records []*record.Record) []RecordDTO {
	out := make([]RecordDTO, 0, len(records))
	for _, r := range records {
		out = append(out, toDTO(r))
	}
	return out
}

func toDTO(r *record.Record) RecordDTO {
	order := make([]string, 0, len(r.Fields))
	for _, f := range r.Fields {
		order = append(order, f.Name)
	}
	dto := RecordDTO{
		ID:       r.ID,
		Type:     r.Type,
		Category: r.Category,
		Fields:   r.Map(),
		Order:    order,
		Tags:     r.Tags,
	}
	if !r.Created.IsZero() {
		dto.Created = record.FormatTime(r.Created.Time)
	}
	return dto
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
