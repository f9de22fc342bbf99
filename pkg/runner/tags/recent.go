// Package tags lists recently used tags.
package tags

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/massadd/pkg/app"
	"tableflip.dev/massadd/pkg/printers"
)

// Recent configures `massadd tags recent`.
type Recent struct {
	Service *app.Service
	Limit   int
	Depth   int
	JSON    bool
	Out     io.Writer
}

// Do scans for recent tags and prints them newest first.
func (r *Recent) Do(ctx context.Context) error {
	if r.Service == nil {
		return errors.New("tags: no service")
	}
	found, err := r.Service.RecentTags(ctx, r.Limit, r.Depth)
	if err != nil {
		return err
	}
	if r.JSON {
		return printers.JSON(r.Out, found)
	}
	pp := printers.PrettyPrint{Out: r.Out}
	pp.TitleWithCount("Recent tags", len(found))
	pp.Tags(found)
	return nil
}
