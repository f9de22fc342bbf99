package recent

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

type fakeSource struct {
	ids   []string
	tags  map[string][]string
	reads []string
	depth int
}

func (f *fakeSource) RecentIDs(_ context.Context, limit int) ([]string, error) {
	f.depth = limit
	if limit < len(f.ids) {
		return f.ids[:limit], nil
	}
	return f.ids, nil
}

func (f *fakeSource) Tags(_ context.Context, id string) ([]string, error) {
	f.reads = append(f.reads, id)
	tags, ok := f.tags[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return tags, nil
}

func newFake() *fakeSource {
	return &fakeSource{
		ids: []string{"r3", "r2", "r1"},
		tags: map[string][]string{
			"r3": {"a", "b"},
			"r2": {"b", "c"},
			"r1": {"d"},
		},
	}
}

func TestScanStopsAtLimit(t *testing.T) {
	src := newFake()
	got, err := Scanner{Source: src, Limit: 2, Depth: 3}.Scan(context.Background())
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if want := []string{"a", "b"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if want := []string{"r3"}; !reflect.DeepEqual(src.reads, want) {
		t.Fatalf("expected only %v to be read, got %v", want, src.reads)
	}
}

func TestScanReturnsFewerWithoutPadding(t *testing.T) {
	src := newFake()
	got, err := Scanner{Source: src, Limit: 10, Depth: 3}.Scan(context.Background())
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if want := []string{"a", "b", "c", "d"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestScanRespectsDepth(t *testing.T) {
	src := newFake()
	got, err := Scanner{Source: src, Limit: 10, Depth: 1}.Scan(context.Background())
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if want := []string{"a", "b"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if src.depth != 1 {
		t.Fatalf("expected depth 1 to be requested, got %d", src.depth)
	}
}

func TestScanEmptyStore(t *testing.T) {
	got, err := Scanner{Source: &fakeSource{}}.Scan(context.Background())
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no tags, got %v", got)
	}
}

func TestScanDefaults(t *testing.T) {
	src := newFake()
	if _, err := (Scanner{Source: src}).Scan(context.Background()); err != nil {
		t.Fatalf("scan: %v", err)
	}
	if src.depth != DefaultDepth {
		t.Fatalf("expected default depth %d, got %d", DefaultDepth, src.depth)
	}
}

func TestScanIsDeterministic(t *testing.T) {
	a, _ := Scanner{Source: newFake(), Limit: 3, Depth: 3}.Scan(context.Background())
	b, _ := Scanner{Source: newFake(), Limit: 3, Depth: 3}.Scan(context.Background())
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("expected identical scans, got %v and %v", a, b)
	}
}

func TestScanReadError(t *testing.T) {
	src := newFake()
	src.ids = append([]string{"gone"}, src.ids...)
	if _, err := (Scanner{Source: src}).Scan(context.Background()); err == nil {
		t.Fatalf("expected read error")
	}
}

func TestClamp(t *testing.T) {
	if Clamp(1, MinLimit, MaxLimit) != MinLimit || Clamp(99, MinLimit, MaxLimit) != MaxLimit || Clamp(7, MinLimit, MaxLimit) != 7 {
		t.Fatalf("clamp misbehaves")
	}
}
