package add

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"tableflip.dev/massadd/pkg/app"
	"tableflip.dev/massadd/pkg/ingest"
	"tableflip.dev/massadd/pkg/picker"
	"tableflip.dev/massadd/pkg/session"
	"tableflip.dev/massadd/pkg/store"
)

type testConfig string

func (c testConfig) BasePath() string { return string(c) }

func newService(t *testing.T) *app.Service {
	t.Helper()
	p, err := store.Load(testConfig(t.TempDir()))
	if err != nil {
		t.Fatalf("load store: %v", err)
	}
	return &app.Service{Persistence: p, DefaultCategory: "Default"}
}

func newAdd(svc *app.Service, text, tags string) (*Add, *bytes.Buffer) {
	s := session.New(session.Carry{Tags: tags, Category: "Deck", TypeID: "basic"})
	s.Text = text
	out := &bytes.Buffer{}
	return &Add{
		Service:  svc,
		Session:  s,
		Overflow: ingest.OverflowDrop,
		Out:      out,
		Err:      &bytes.Buffer{},
	}, out
}

func TestAddSplitsAndCommits(t *testing.T) {
	svc := newService(t)
	a, _ := newAdd(svc, "one,two,three", "n5")
	a.Marker = ","

	if err := a.Do(context.Background()); err != nil {
		t.Fatalf("add: %v", err)
	}
	records, err := svc.Records(context.Background(), "Deck")
	if err != nil {
		t.Fatalf("records: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	if got, _ := records[1].Field("Front"); got != "two," {
		t.Fatalf("unexpected Front %q", got)
	}
	if a.Session.Text != "" || a.Session.Tags != "n5" {
		t.Fatalf("expected text cleared and tags kept, got %+v", a.Session.Carry())
	}
}

func TestAddJSONReportsCarry(t *testing.T) {
	svc := newService(t)
	a, out := newAdd(svc, "q\ta", "n5 verbs")
	a.JSON = true

	if err := a.Do(context.Background()); err != nil {
		t.Fatalf("add: %v", err)
	}
	var got Output
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("decode %q: %v", out.String(), err)
	}
	if got.Next == nil {
		t.Fatalf("expected carried state, got %s", out.String())
	}
	if got.Next.Tags != "n5 verbs" || got.Next.Category != "Deck" {
		t.Fatalf("unexpected carry %+v", got.Next)
	}
	if got.Result.Count() != 1 {
		t.Fatalf("expected one record, got %+v", got.Result)
	}
}

func TestAddDryRunJSON(t *testing.T) {
	svc := newService(t)
	a, out := newAdd(svc, "q\ta\tz", "x")
	a.DryRun = true
	a.JSON = true
	a.Overflow = ingest.OverflowMerge

	if err := a.Do(context.Background()); err != nil {
		t.Fatalf("add: %v", err)
	}
	var got Output
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("decode %q: %v", out.String(), err)
	}
	if len(got.Drafts) != 1 {
		t.Fatalf("expected one draft, got %+v", got)
	}
	if back, _ := got.Drafts[0].Field("Back"); back != "a\tz" {
		t.Fatalf("expected merged overflow, got %q", back)
	}
	if records, _ := svc.Records(context.Background(), ""); len(records) != 0 {
		t.Fatalf("dry run stored %d records", len(records))
	}
}

func TestAddPickMergesSelectedTags(t *testing.T) {
	svc := newService(t)
	seed, _ := newAdd(svc, "seed", "alpha beta")
	if err := seed.Do(context.Background()); err != nil {
		t.Fatalf("seed: %v", err)
	}

	a, _ := newAdd(svc, "next", "gamma")
	a.Pick = true
	var offered []string
	a.Picker = func(_ context.Context, tags []string) ([]string, error) {
		offered = tags
		return []string{"beta"}, nil
	}
	if err := a.Do(context.Background()); err != nil {
		t.Fatalf("add: %v", err)
	}
	if strings.Join(offered, " ") != "alpha beta" {
		t.Fatalf("unexpected offered tags %v", offered)
	}
	if a.Session.Tags != "beta gamma" {
		t.Fatalf("unexpected tags %q", a.Session.Tags)
	}
}

func TestAddPickCancelledKeepsTags(t *testing.T) {
	svc := newService(t)
	seed, _ := newAdd(svc, "seed", "alpha")
	if err := seed.Do(context.Background()); err != nil {
		t.Fatalf("seed: %v", err)
	}

	a, _ := newAdd(svc, "next", "gamma")
	a.Pick = true
	a.Picker = func(context.Context, []string) ([]string, error) {
		return nil, picker.ErrCancelled
	}
	if err := a.Do(context.Background()); err != nil {
		t.Fatalf("add: %v", err)
	}
	if a.Session.Tags != "gamma" {
		t.Fatalf("unexpected tags %q", a.Session.Tags)
	}
}

func TestAddRecentWithoutPicker(t *testing.T) {
	svc := newService(t)
	seed, _ := newAdd(svc, "seed", "alpha beta")
	if err := seed.Do(context.Background()); err != nil {
		t.Fatalf("seed: %v", err)
	}

	a, _ := newAdd(svc, "next", "")
	a.Recent = 1
	if err := a.Do(context.Background()); err != nil {
		t.Fatalf("add: %v", err)
	}
	if a.Session.Tags != "alpha" {
		t.Fatalf("unexpected tags %q", a.Session.Tags)
	}
}

func TestAddEmptyInput(t *testing.T) {
	a, _ := newAdd(newService(t), " \n ", "")
	if err := a.Do(context.Background()); !errors.Is(err, ingest.ErrEmptyInput) {
		t.Fatalf("expected ErrEmptyInput, got %v", err)
	}
}

func TestAddShowPrintsRecords(t *testing.T) {
	a, out := newAdd(newService(t), "犬\tdog", "")
	a.Show = true
	if err := a.Do(context.Background()); err != nil {
		t.Fatalf("add: %v", err)
	}
	if !strings.Contains(out.String(), "犬") || !strings.Contains(out.String(), "dog") {
		t.Fatalf("expected the added note in output, got %q", out.String())
	}
}
