package ingest

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"tableflip.dev/massadd/pkg/notify"
	"tableflip.dev/massadd/pkg/record"
	"tableflip.dev/massadd/pkg/recordtype"
	"tableflip.dev/massadd/pkg/tags"
)

type memoryStore struct {
	types   map[string]recordtype.Type
	records []*record.Record
	failOn  map[int]error
	calls   int
}

func newMemoryStore() *memoryStore {
	m := &memoryStore{types: make(map[string]recordtype.Type)}
	for _, t := range recordtype.Builtins() {
		m.types[t.ID] = t
	}
	m.types["empty"] = recordtype.Type{ID: "empty"}
	return m
}

var errMissing = errors.New("missing")

func (m *memoryStore) LookupType(_ context.Context, id string) (recordtype.Type, error) {
	t, ok := m.types[id]
	if !ok {
		return recordtype.Type{}, errMissing
	}
	return t, nil
}

func (m *memoryStore) Submit(_ context.Context, r *record.Record) (string, error) {
	call := m.calls
	m.calls++
	if err, ok := m.failOn[call]; ok {
		return "", err
	}
	r.ID = fmt.Sprintf("id-%d", len(m.records)+1)
	m.records = append(m.records, r)
	return r.ID, nil
}

type recordingSink struct {
	total    int
	started  int
	finished int
	stopped  int
	advances []int
}

func (r *recordingSink) Start(total int, _ string) {
	r.total = total
	r.started++
}
func (r *recordingSink) Advance(done int) { r.advances = append(r.advances, done) }
func (r *recordingSink) Finish()          { r.finished++ }
func (r *recordingSink) Stop()            { r.stopped++ }

func TestSubmitCreatesOneRecordPerLine(t *testing.T) {
	store := newMemoryStore()
	sink := &recordingSink{}
	msgs := &notify.Recorder{}
	s := &Submitter{Store: store, Progress: sink, Notifier: msgs}

	res, err := s.Submit(context.Background(), Batch{
		Lines:    []string{"hello\tworld", "only", "a\tb\tc"},
		TypeID:   recordtype.Basic,
		Category: "Default",
		Tags:     tags.NewSet("vocab", "n5"),
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if res.Count() != 3 || len(store.records) != 3 {
		t.Fatalf("expected 3 records, got result %d store %d", res.Count(), len(store.records))
	}
	if res.IDs[0] != "id-1" || res.IDs[2] != "id-3" {
		t.Fatalf("unexpected ids %v", res.IDs)
	}
	if len(sink.advances) != 3 || sink.advances[2] != 3 || sink.total != 3 {
		t.Fatalf("expected progress to end at (3,3), got %v of %d", sink.advances, sink.total)
	}
	if sink.started != 1 || sink.finished != 1 {
		t.Fatalf("expected one start and one finish, got %d/%d", sink.started, sink.finished)
	}
	if got := store.records[1].Map(); got["Front"] != "only" || got["Back"] != "" {
		t.Fatalf("unexpected fields %v", got)
	}
	if store.records[0].Category != "Default" || store.records[0].Type != recordtype.Basic {
		t.Fatalf("unexpected destination %+v", store.records[0])
	}
	if msgs.Last() != "Added 3 note(s)." {
		t.Fatalf("unexpected message %q", msgs.Last())
	}
}

func TestSubmitTagsAreNotShared(t *testing.T) {
	store := newMemoryStore()
	s := &Submitter{Store: store}
	_, err := s.Submit(context.Background(), Batch{
		Lines:  []string{"a", "b"},
		TypeID: recordtype.Basic,
		Tags:   tags.NewSet("x", "y"),
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	store.records[0].Tags[0] = "mutated"
	store.records[0].Tags = append(store.records[0].Tags, "extra")
	if store.records[1].Tags[0] != "x" || len(store.records[1].Tags) != 2 {
		t.Fatalf("tag mutation leaked between records: %v", store.records[1].Tags)
	}
}

func TestSubmitPrechecks(t *testing.T) {
	tests := []struct {
		name    string
		batch   Batch
		mode    Overflow
		wantErr error
		wantMsg string
	}{
		{
			name:    "unknown type",
			batch:   Batch{Lines: []string{"a"}, TypeID: "nope"},
			wantErr: ErrNoRecordType,
			wantMsg: `Record type "nope" not found.`,
		},
		{
			name:    "empty schema",
			batch:   Batch{Lines: []string{"a"}, TypeID: "empty"},
			wantErr: ErrEmptySchema,
			wantMsg: `Record type "empty" has no fields.`,
		},
		{
			name:    "empty input",
			batch:   Batch{Lines: Normalize("  \n"), TypeID: recordtype.Basic},
			wantErr: ErrEmptyInput,
			wantMsg: "No content to add.",
		},
		{
			name:    "strict overflow",
			batch:   Batch{Lines: []string{"a\tb", "a\tb\tc"}, TypeID: recordtype.Basic},
			mode:    OverflowStrict,
			wantErr: ErrTooManyFields,
			wantMsg: `Line 2 has more fields than "Basic" allows (2).`,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			store := newMemoryStore()
			sink := &recordingSink{}
			msgs := &notify.Recorder{}
			s := &Submitter{Store: store, Progress: sink, Notifier: msgs, Overflow: tc.mode}
			res, err := s.Submit(context.Background(), tc.batch)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
			if res != nil {
				t.Fatalf("expected no result on precheck failure")
			}
			if store.calls != 0 {
				t.Fatalf("expected no submissions, got %d", store.calls)
			}
			if sink.started != 0 {
				t.Fatalf("progress must not start on precheck failure")
			}
			if msgs.Last() != tc.wantMsg {
				t.Fatalf("expected message %q, got %q", tc.wantMsg, msgs.Last())
			}
		})
	}
}

func TestSubmitHaltsOnStoreError(t *testing.T) {
	store := newMemoryStore()
	store.failOn = map[int]error{2: errors.New("disk full")}
	sink := &recordingSink{}
	msgs := &notify.Recorder{}
	s := &Submitter{Store: store, Progress: sink, Notifier: msgs}

	res, err := s.Submit(context.Background(), Batch{
		Lines:  []string{"a", "b", "c", "d", "e"},
		TypeID: recordtype.Basic,
	})
	var be *BatchError
	if !errors.As(err, &be) {
		t.Fatalf("expected *BatchError, got %v", err)
	}
	if !errors.Is(err, ErrStore) {
		t.Fatalf("expected errors.Is(err, ErrStore)")
	}
	if !be.Halted || be.Committed != 2 || be.Total != 5 {
		t.Fatalf("unexpected batch error %+v", be)
	}
	if res.Count() != 2 || len(store.records) != 2 {
		t.Fatalf("expected 2 committed records, got %d", res.Count())
	}
	if store.calls != 3 {
		t.Fatalf("expected the loop to stop after the failing call, got %d calls", store.calls)
	}
	if sink.stopped != 1 || sink.finished != 0 {
		t.Fatalf("expected progress to stop without finishing, got stopped=%d finished=%d", sink.stopped, sink.finished)
	}
	if !strings.HasPrefix(msgs.Last(), "Added 2 of 5 note(s); stopped at line 3") {
		t.Fatalf("unexpected message %q", msgs.Last())
	}
}

func TestSubmitContinueOnError(t *testing.T) {
	store := newMemoryStore()
	store.failOn = map[int]error{0: errors.New("dup"), 3: errors.New("dup")}
	sink := &recordingSink{}
	msgs := &notify.Recorder{}
	s := &Submitter{Store: store, Progress: sink, Notifier: msgs, ContinueOnError: true}

	res, err := s.Submit(context.Background(), Batch{
		Lines:  []string{"a", "b", "c", "d", "e"},
		TypeID: recordtype.Basic,
	})
	var be *BatchError
	if !errors.As(err, &be) {
		t.Fatalf("expected *BatchError, got %v", err)
	}
	if be.Halted || be.Committed != 3 || len(be.Failures) != 2 {
		t.Fatalf("unexpected batch error %+v", be)
	}
	if res.Failures[0].Index != 0 || res.Failures[1].Line != "d" {
		t.Fatalf("unexpected failures %+v", res.Failures)
	}
	if len(sink.advances) != 5 || sink.advances[4] != 5 {
		t.Fatalf("expected progress for every line, got %v", sink.advances)
	}
	if msgs.Last() != "Added 3 of 5 note(s); 2 line(s) failed." {
		t.Fatalf("unexpected message %q", msgs.Last())
	}
}

func TestSubmitCancelledContext(t *testing.T) {
	store := newMemoryStore()
	s := &Submitter{Store: store, ContinueOnError: true}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := s.Submit(ctx, Batch{Lines: []string{"a"}, TypeID: recordtype.Basic})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if store.calls != 0 {
		t.Fatalf("expected no submissions")
	}
}

func TestDraft(t *testing.T) {
	cloze, err := newMemoryStore().LookupType(context.Background(), recordtype.Cloze)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	b := Batch{Category: "Japanese", Tags: tags.NewSet("t")}
	first, err := Draft(cloze, "q\ta", b, OverflowDrop)
	if err != nil {
		t.Fatalf("draft: %v", err)
	}
	if first.ID != "" || first.Category != "Japanese" {
		t.Fatalf("unexpected draft %+v", first)
	}
	if v, _ := first.Field("Back Extra"); v != "a" {
		t.Fatalf("expected Back Extra=a, got %q", v)
	}
	second, err := Draft(cloze, "q2", b, OverflowDrop)
	if err != nil {
		t.Fatalf("draft: %v", err)
	}
	first.Tags[0] = "changed"
	if second.Tags[0] != "t" {
		t.Fatalf("drafts share tags: %v", second.Tags)
	}
	if _, err := Draft(cloze, "a\tb\tc", b, OverflowStrict); !errors.Is(err, ErrTooManyFields) {
		t.Fatalf("expected ErrTooManyFields, got %v", err)
	}
}
