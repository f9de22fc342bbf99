package report

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"tableflip.dev/massadd/pkg/app"
	"tableflip.dev/massadd/pkg/ingest"
	"tableflip.dev/massadd/pkg/store"
	"tableflip.dev/massadd/pkg/timeutil"
)

type testConfig string

func (c testConfig) BasePath() string { return string(c) }

func TestReportWindow(t *testing.T) {
	p, err := store.Load(testConfig(t.TempDir()))
	if err != nil {
		t.Fatalf("load store: %v", err)
	}
	svc := &app.Service{Persistence: p, DefaultCategory: "Deck"}
	if _, err := svc.AddBatch(context.Background(), ingest.Submitter{}, ingest.Batch{
		Lines:  []string{"today\tnote"},
		TypeID: "basic",
	}); err != nil {
		t.Fatalf("add: %v", err)
	}

	w, err := timeutil.ParseWindow("1h")
	if err != nil {
		t.Fatalf("window: %v", err)
	}

	out := &bytes.Buffer{}
	r := Report{Service: svc, Window: w, Out: out}
	if err := r.Do(context.Background()); err != nil {
		t.Fatalf("report: %v", err)
	}
	if !strings.Contains(out.String(), "today | note") || !strings.Contains(out.String(), "1 note(s) total") {
		t.Fatalf("unexpected report %q", out.String())
	}

	out.Reset()
	r.Now = func() time.Time { return time.Now().Add(-48 * time.Hour) }
	if err := r.Do(context.Background()); err != nil {
		t.Fatalf("report: %v", err)
	}
	if !strings.Contains(out.String(), "No notes were added") {
		t.Fatalf("expected an empty report, got %q", out.String())
	}
}
