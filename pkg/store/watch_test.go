package store

import (
	"context"
	"testing"
	"time"

	"tableflip.dev/massadd/pkg/record"
	"tableflip.dev/massadd/pkg/recordtype"
)

type testConfig struct {
	path string
}

func (t testConfig) BasePath() string {
	return t.path
}

func TestPersistenceWatchEmitsCategoryChanges(t *testing.T) {
	base := t.TempDir()
	p, err := Load(testConfig{path: base})
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := p.Watch(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}

	// Allow watcher goroutine to subscribe to directories before storing.
	time.Sleep(50 * time.Millisecond)

	r := record.New(recordtype.Basic, []string{"Front", "Back"})
	r.SetField("Front", "hello world")
	r.SetCategory("Inbox")
	if err := p.Store(r); err != nil {
		t.Fatalf("store record: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for {
		select {
		case evt := <-ch:
			if evt.Type == EventCatalogInvalidated {
				return
			}
			if evt.Type == EventCategoryChanged {
				if evt.Category != "Inbox" {
					t.Fatalf("expected category 'Inbox', got %q", evt.Category)
				}
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for category change event")
		}
	}
}
