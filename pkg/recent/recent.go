// Package recent finds the tags used on the most recently created records.
package recent

import (
	"context"
	"fmt"
)

const (
	// DefaultLimit is the default number of tags returned.
	DefaultLimit = 10
	// DefaultDepth is the default number of records examined.
	DefaultDepth = 100

	MinLimit = 5
	MaxLimit = 50
	MinDepth = 50
	MaxDepth = 1000
)

// Source lists and reads records for the scanner.
type Source interface {
	// RecentIDs returns up to limit record ids, newest first.
	RecentIDs(ctx context.Context, limit int) ([]string, error)
	// Tags returns the tags of one record.
	Tags(ctx context.Context, id string) ([]string, error)
}

// Scanner walks the newest records collecting distinct tags.
type Scanner struct {
	Source Source
	// Limit is the maximum number of tags returned.
	Limit int
	// Depth is the number of most recent records examined.
	Depth int
}

// Scan returns up to Limit distinct tags in the order first seen while
// walking the Depth newest records newest first. Records after the one
// that fills the list are not read.
func (s Scanner) Scan(ctx context.Context) ([]string, error) {
	limit, depth := s.Limit, s.Depth
	if limit <= 0 {
		limit = DefaultLimit
	}
	if depth <= 0 {
		depth = DefaultDepth
	}
	if s.Source == nil {
		return nil, fmt.Errorf("recent: no source configured")
	}

	ids, err := s.Source.RecentIDs(ctx, depth)
	if err != nil {
		return nil, fmt.Errorf("recent: list records: %w", err)
	}

	found := make([]string, 0, limit)
	seen := make(map[string]struct{}, limit)
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		tags, err := s.Source.Tags(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("recent: read record %s: %w", id, err)
		}
		for _, tag := range tags {
			if _, ok := seen[tag]; ok {
				continue
			}
			seen[tag] = struct{}{}
			found = append(found, tag)
			if len(found) >= limit {
				return found, nil
			}
		}
	}
	return found, nil
}

// Clamp forces v into [lo, hi].
func Clamp(v, lo, hi int) int {
	switch {
	case v < lo:
		return lo
	case v > hi:
		return hi
	default:
		return v
	}
}
