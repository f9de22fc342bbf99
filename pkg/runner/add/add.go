// Package add runs one bulk add: it splits and tags the input, optionally
// picks recent tags, then submits or previews the batch.
package add

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"tableflip.dev/massadd/pkg/app"
	"tableflip.dev/massadd/pkg/ingest"
	"tableflip.dev/massadd/pkg/notify"
	"tableflip.dev/massadd/pkg/picker"
	"tableflip.dev/massadd/pkg/printers"
	"tableflip.dev/massadd/pkg/progress"
	"tableflip.dev/massadd/pkg/record"
	"tableflip.dev/massadd/pkg/session"
)

// PickFunc asks the user to choose from tags.
type PickFunc func(ctx context.Context, tags []string) ([]string, error)

// Add configures `massadd add`.
type Add struct {
	Service *app.Service
	Session *session.Session

	// Marker splits the text before it is normalized.
	Marker string
	// Pick opens the recent tag picker.
	Pick bool
	// Recent merges that many recent tags without asking.
	Recent      int
	RecentLimit int
	RecentDepth int

	Overflow        ingest.Overflow
	ContinueOnError bool
	DryRun          bool
	Show            bool
	JSON            bool

	Picker PickFunc
	// Out receives results, Err receives progress and messages.
	Out    io.Writer
	Err    io.Writer
	Logger zerolog.Logger
}

// Output is the JSON form of a run.
type Output struct {
	Result  *ingest.Result   `json:"result,omitempty"`
	Drafts  []*record.Record `json:"drafts,omitempty"`
	Records []*record.Record `json:"records,omitempty"`
	Tags    string           `json:"tags"`
	Message string           `json:"message,omitempty"`
	// Next is the state to start the following add with. It is only set
	// once the whole batch was added.
	Next *session.Carry `json:"next,omitempty"`
}

// Do runs the add. A batch that stopped part way returns its
// *ingest.BatchError after the summary is printed.
func (a *Add) Do(ctx context.Context) error {
	if a.Service == nil || a.Session == nil {
		return errors.New("add: service and session are required")
	}
	s := a.Session
	s.Overflow = a.Overflow

	if a.Marker != "" {
		s.Marker = a.Marker
		if err := s.Split(); err != nil {
			return err
		}
	}
	if err := a.mergeRecent(ctx); err != nil {
		return err
	}

	msgs := &notify.Recorder{}
	var notifier notify.Notifier = msgs
	var sink progress.Sink = &progress.Log{Logger: a.Logger}
	if !a.JSON {
		console := notify.NewConsole(a.Err)
		notifier = notify.Func(func(msg string) {
			msgs.Notify(msg)
			console.Notify(msg)
		})
		sink = progress.New(a.Err)
	}
	sub := ingest.Submitter{
		Progress:        sink,
		Notifier:        notifier,
		Overflow:        a.Overflow,
		ContinueOnError: a.ContinueOnError,
		Logger:          a.Logger,
	}

	pp := printers.PrettyPrint{Out: a.Out}
	if a.DryRun {
		drafts, err := a.Service.Preview(ctx, sub, s)
		if err != nil {
			return err
		}
		if a.JSON {
			return printers.JSON(a.Out, Output{Drafts: drafts, Tags: s.Tags})
		}
		pp.TitleWithCount("Preview", len(drafts))
		pp.Records(drafts...)
		return nil
	}

	res, err := a.Service.AddBatch(ctx, sub, s.Batch())
	var be *ingest.BatchError
	if err != nil && !errors.As(err, &be) {
		return err
	}
	out := Output{Result: res, Tags: s.Tags, Message: msgs.Last()}
	if be == nil {
		next := s.Commit()
		out.Next = &next
	}
	if a.Show && res.Count() > 0 {
		found, lerr := a.Service.Lookup(ctx, res.IDs...)
		if lerr != nil {
			a.Logger.Warn().Err(lerr).Msg("looking up added notes")
		}
		out.Records = found
	}

	if a.JSON {
		if jerr := printers.JSON(a.Out, out); jerr != nil {
			return jerr
		}
		return err
	}
	if be != nil {
		pp.Result(res)
	}
	if len(out.Records) > 0 {
		pp.TitleWithCount(s.Category, len(out.Records))
		pp.Records(out.Records...)
	}
	return err
}

func (a *Add) mergeRecent(ctx context.Context) error {
	if !a.Pick && a.Recent <= 0 {
		return nil
	}
	limit := a.RecentLimit
	if a.Recent > 0 && !a.Pick {
		limit = a.Recent
	}
	recent, err := a.Service.RecentTags(ctx, limit, a.RecentDepth)
	if err != nil {
		return fmt.Errorf("add: recent tags: %w", err)
	}
	if len(recent) == 0 {
		a.Logger.Debug().Msg("no recent tags")
		return nil
	}

	picked := recent
	if a.Recent > 0 && len(picked) > a.Recent {
		picked = picked[:a.Recent]
	}
	if a.Pick {
		if a.Picker == nil {
			return errors.New("add: no tag picker configured")
		}
		picked, err = a.Picker(ctx, recent)
		if errors.Is(err, picker.ErrCancelled) {
			return nil
		}
		if err != nil {
			return err
		}
	}
	a.Session.AddPickedTags(picked)
	return nil
}
