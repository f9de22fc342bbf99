package app

import (
	"context"
	"sort"
	"time"

	"tableflip.dev/massadd/pkg/record"
)

// ReportSection groups records added to one category.
type ReportSection struct {
	Category string           `json:"category"`
	Records  []*record.Record `json:"records"`
}

// ReportResult lists the records added within a time window.
type ReportResult struct {
	Since    time.Time       `json:"since"`
	Until    time.Time       `json:"until"`
	Sections []ReportSection `json:"sections,omitempty"`
	Total    int             `json:"total"`
	// Tags counts how many of the reported records carry each tag.
	Tags map[string]int `json:"tags,omitempty"`
}

// Report returns the records created between since and until grouped by
// category, oldest first within each category.
func (s *Service) Report(ctx context.Context, since, until time.Time) (ReportResult, error) {
	if since.After(until) {
		since, until = until, since
	}
	all, err := s.Records(ctx, "")
	if err != nil {
		return ReportResult{}, err
	}

	result := ReportResult{Since: since, Until: until}
	grouped := make(map[string][]*record.Record)
	for _, r := range all {
		if r == nil || r.Created.IsZero() {
			continue
		}
		if r.Created.Before(since) || r.Created.After(until) {
			continue
		}
		grouped[r.Category] = append(grouped[r.Category], r)
		result.Total++
		for _, tag := range r.Tags {
			if result.Tags == nil {
				result.Tags = make(map[string]int)
			}
			result.Tags[tag]++
		}
	}

	categories := make([]string, 0, len(grouped))
	for category := range grouped {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	for _, category := range categories {
		result.Sections = append(result.Sections, ReportSection{
			Category: category,
			Records:  grouped[category],
		})
	}
	return result, nil
}
