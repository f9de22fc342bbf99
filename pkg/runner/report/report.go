// Package report lists the notes added within a recent window.
package report

import (
	"context"
	"errors"
	"io"
	"time"

	"tableflip.dev/massadd/pkg/app"
	"tableflip.dev/massadd/pkg/printers"
	"tableflip.dev/massadd/pkg/timeutil"
)

// Report configures `massadd report`.
type Report struct {
	Service *app.Service
	Window  timeutil.Window
	ShowID  bool
	JSON    bool
	Out     io.Writer
	// Now defaults to time.Now.
	Now func() time.Time
}

// Do prints the notes added between now minus the window and now.
func (r *Report) Do(ctx context.Context) error {
	if r.Service == nil {
		return errors.New("report: no service")
	}
	now := time.Now
	if r.Now != nil {
		now = r.Now
	}
	since, until := r.Window.Bounds(now())
	result, err := r.Service.Report(ctx, since, until)
	if err != nil {
		return err
	}
	if r.JSON {
		return printers.JSON(r.Out, result)
	}
	pp := printers.PrettyPrint{ShowID: r.ShowID, Out: r.Out}
	pp.Report(result, r.Window.String())
	return nil
}
