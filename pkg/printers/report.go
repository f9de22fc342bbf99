package printers

import (
	"fmt"
	"sort"

	"github.com/fatih/color"

	"tableflip.dev/massadd/pkg/app"
)

// Report renders the records added within a window.
func (pp *PrettyPrint) Report(result app.ReportResult, label string) {
	since := result.Since.Local().Format("2006-01-02 15:04")
	until := result.Until.Local().Format("2006-01-02 15:04")
	_, _ = fmt.Fprintf(pp.out(), "Report · last %s (%s → %s)\n", label, since, until)

	if result.Total == 0 {
		_, _ = fmt.Fprintln(pp.out(), "  No notes were added in this window.")
		_, _ = fmt.Fprintln(pp.out())
		return
	}

	for _, section := range result.Sections {
		_, _ = fmt.Fprintln(pp.out())
		pp.TitleWithCount(section.Category, len(section.Records))
		pp.Records(section.Records...)
	}

	if len(result.Tags) > 0 {
		tags := make([]string, 0, len(result.Tags))
		for tag := range result.Tags {
			tags = append(tags, tag)
		}
		sort.Slice(tags, func(i, j int) bool {
			if result.Tags[tags[i]] == result.Tags[tags[j]] {
				return tags[i] < tags[j]
			}
			return result.Tags[tags[i]] > result.Tags[tags[j]]
		})
		f := color.New(color.Faint)
		_, _ = f.Fprint(pp.out(), "Tags:")
		for _, tag := range tags {
			_, _ = f.Fprintf(pp.out(), " %s(%d)", tag, result.Tags[tag])
		}
		_, _ = fmt.Fprintln(pp.out())
	}
	_, _ = fmt.Fprintf(pp.out(), "%d note(s) total\n", result.Total)
}
