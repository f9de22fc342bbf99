package watch

import (
	"testing"
	"time"

	"tableflip.dev/massadd/pkg/store"
)

func TestFormat(t *testing.T) {
	at := time.Date(2024, 1, 1, 9, 30, 0, 0, time.Local)
	if got := format(store.Event{Type: store.EventCategoryChanged, Category: "Deck"}, at); got != "09:30:00 category-changed Deck" {
		t.Fatalf("unexpected line %q", got)
	}
	if got := format(store.Event{Type: store.EventCatalogInvalidated}, at); got != "09:30:00 catalog-invalidated" {
		t.Fatalf("unexpected line %q", got)
	}
}
