// Package get prints stored notes.
package get

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/massadd/pkg/app"
	"tableflip.dev/massadd/pkg/printers"
	"tableflip.dev/massadd/pkg/record"
)

// Get configures `massadd get`. IDs win over Category; with neither, every
// category is printed.
type Get struct {
	Service  *app.Service
	IDs      []string
	Category string
	ShowID   bool
	JSON     bool
	Out      io.Writer
}

// Do prints the selected records.
func (g *Get) Do(ctx context.Context) error {
	if g.Service == nil {
		return errors.New("can not get, no service")
	}

	pp := printers.PrettyPrint{ShowID: g.ShowID, Out: g.Out}

	if len(g.IDs) > 0 {
		found, err := g.Service.Lookup(ctx, g.IDs...)
		if err != nil {
			return err
		}
		if g.JSON {
			return printers.JSON(g.Out, found)
		}
		pp.Records(found...)
		return nil
	}

	all, err := g.Service.Records(ctx, g.Category)
	if err != nil {
		return err
	}
	if g.JSON {
		return printers.JSON(g.Out, all)
	}

	if g.Category != "" {
		pp.TitleWithCount(g.Category, len(all))
		pp.Records(all...)
		return nil
	}

	grouped := make(map[string][]*record.Record)
	for _, r := range all {
		grouped[r.Category] = append(grouped[r.Category], r)
	}
	categories, err := g.Service.Categories(ctx)
	if err != nil {
		return err
	}
	for _, c := range categories {
		pp.TitleWithCount(c, len(grouped[c]))
		pp.Records(grouped[c]...)
	}
	return nil
}
