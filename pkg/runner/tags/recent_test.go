package tags

import (
	"bytes"
	"context"
	"encoding/json"
	"reflect"
	"testing"

	"tableflip.dev/massadd/pkg/app"
	"tableflip.dev/massadd/pkg/ingest"
	"tableflip.dev/massadd/pkg/store"
	"tableflip.dev/massadd/pkg/tags"
)

type testConfig string

func (c testConfig) BasePath() string { return string(c) }

func TestRecentJSON(t *testing.T) {
	p, err := store.Load(testConfig(t.TempDir()))
	if err != nil {
		t.Fatalf("load store: %v", err)
	}
	svc := &app.Service{Persistence: p, DefaultCategory: "Default"}
	for _, tag := range []string{"old", "new"} {
		if _, err := svc.AddBatch(context.Background(), ingest.Submitter{}, ingest.Batch{
			Lines:  []string{tag},
			TypeID: "basic",
			Tags:   tags.NewSet(tag),
		}); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	out := &bytes.Buffer{}
	r := Recent{Service: svc, Limit: 5, Depth: 50, JSON: true, Out: out}
	if err := r.Do(context.Background()); err != nil {
		t.Fatalf("recent: %v", err)
	}
	var got []string
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("decode %q: %v", out.String(), err)
	}
	if want := []string{"new", "old"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestRecentNoService(t *testing.T) {
	r := Recent{Out: &bytes.Buffer{}}
	if err := r.Do(context.Background()); err == nil {
		t.Fatalf("expected error without a service")
	}
}
