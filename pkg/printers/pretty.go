package printers

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/massadd/pkg/ingest"
	"tableflip.dev/massadd/pkg/record"
	"tableflip.dev/massadd/pkg/recordtype"
)

type PrettyPrint struct {
	ShowID bool
	// Out defaults to color.Output.
	Out io.Writer
}

var (
	spacing = strings.Repeat(" ", len("0190a1b2c3d4e5f60718293a4b5c6d7e  "))
)

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out == nil {
		return color.Output
	}
	return pp.Out
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)

	if pp.ShowID {
		_, _ = t.Fprint(pp.out(), spacing)
	}
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	if pp.ShowID {
		_, _ = t.Fprint(pp.out(), spacing)
	}
	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d", count)

	switch count {
	case 1:
		_, _ = c.Fprintln(pp.out(), " note")
	default:
		_, _ = c.Fprintln(pp.out(), " notes")
	}
}

func (pp *PrettyPrint) none() {
	f := color.New(color.Faint, color.Italic)
	if pp.ShowID {
		_, _ = f.Fprint(pp.out(), spacing)
	}
	_, _ = f.Fprint(pp.out(), " none\n\n")
}

// Records prints one line per record: its fields separated by a faint bar
// and its tags.
func (pp *PrettyPrint) Records(records ...*record.Record) {
	if len(records) == 0 {
		pp.none()
		return
	}

	t := color.New()
	y := color.New(color.FgHiYellow, color.Italic, color.Faint)
	bar := color.New(color.Faint).Sprint(" | ")
	g := color.New(color.FgGreen)

	for _, r := range records {
		if pp.ShowID {
			id := r.ID
			if id == "" {
				id = "(draft)"
			}
			_, _ = y.Fprint(pp.out(), id)
			_, _ = y.Fprint(pp.out(), strings.Repeat(" ", max(1, len(spacing)-len(id))))
		}
		values := make([]string, 0, len(r.Fields))
		for _, f := range r.Fields {
			values = append(values, f.Value)
		}
		_, _ = t.Fprint(pp.out(), strings.Join(values, bar))
		if len(r.Tags) > 0 {
			_, _ = g.Fprintf(pp.out(), "  #%s", strings.Join(r.Tags, " #"))
		}
		_, _ = fmt.Fprintln(pp.out(), "")
	}
	_, _ = fmt.Fprintln(pp.out(), "")
}

// Tags prints a numbered tag list.
func (pp *PrettyPrint) Tags(tags []string) {
	if len(tags) == 0 {
		pp.none()
		return
	}
	tbl := uitable.New()
	tbl.Separator = "  "
	for i, tag := range tags {
		tbl.AddRow(fmt.Sprintf("%d.", i+1), tag)
	}
	tbl.RightAlign(0)
	_, _ = fmt.Fprintln(pp.out(), tbl)
}

// Types prints the record type catalog.
func (pp *PrettyPrint) Types(types []recordtype.Type) {
	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("ID"), bold.Sprint("Name"), bold.Sprint("Fields"))
	for _, t := range types {
		tbl.AddRow(t.ID, t.DisplayName(), strings.Join(t.Fields, ", "))
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
}

// Categories prints category names, one per line.
func (pp *PrettyPrint) Categories(categories []string) {
	if len(categories) == 0 {
		pp.none()
		return
	}
	for _, c := range categories {
		_, _ = fmt.Fprintf(pp.out(), "  %s\n", c)
	}
}

// Result summarises a submission and lists failed lines.
func (pp *PrettyPrint) Result(res *ingest.Result) {
	ok := color.New(color.FgGreen)
	bad := color.New(color.FgRed)

	_, _ = ok.Fprintf(pp.out(), "Added %d of %d note(s).\n", res.Count(), res.Total)
	if len(res.Failures) == 0 {
		return
	}
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 60
	tbl.Wrap = true
	for _, f := range res.Failures {
		tbl.AddRow(bad.Sprintf("line %d", f.Index+1), f.Line, f.Err.Error())
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
}

// JSON writes v as indented JSON.
func JSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
