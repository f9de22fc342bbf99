// Package types manages the record type catalog.
package types

import (
	"context"
	"errors"
	"fmt"
	"io"

	"tableflip.dev/massadd/pkg/app"
	"tableflip.dev/massadd/pkg/printers"
)

// List configures `massadd types list`.
type List struct {
	Service *app.Service
	JSON    bool
	Out     io.Writer
}

// Do prints the catalog.
func (l *List) Do(ctx context.Context) error {
	if l.Service == nil {
		return errors.New("types: no service")
	}
	all, err := l.Service.RecordTypes(ctx)
	if err != nil {
		return err
	}
	if l.JSON {
		return printers.JSON(l.Out, all)
	}
	pp := printers.PrettyPrint{Out: l.Out}
	pp.Types(all)
	return nil
}

// Define configures `massadd types add`.
type Define struct {
	Service *app.Service
	ID      string
	Name    string
	Fields  []string
	Out     io.Writer
}

// Do adds or replaces the record type.
func (d *Define) Do(ctx context.Context) error {
	if d.Service == nil {
		return errors.New("types: no service")
	}
	if len(d.Fields) == 0 {
		return errors.New("types: at least one field is required")
	}
	t, err := d.Service.DefineRecordType(ctx, d.ID, d.Name, d.Fields)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(d.Out, "Record type %q saved with %d field(s).\n", t.ID, len(t.Fields))
	return err
}

// Remove configures `massadd types rm`.
type Remove struct {
	Service *app.Service
	ID      string
	Out     io.Writer
}

// Do deletes the record type.
func (r *Remove) Do(ctx context.Context) error {
	if r.Service == nil {
		return errors.New("types: no service")
	}
	if err := r.Service.RemoveRecordType(ctx, r.ID); err != nil {
		return err
	}
	_, err := fmt.Fprintf(r.Out, "Record type %q removed.\n", r.ID)
	return err
}
