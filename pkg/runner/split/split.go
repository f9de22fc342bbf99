// Package split previews how a marker breaks text into lines.
package split

import (
	"context"
	"fmt"
	"io"

	"tableflip.dev/massadd/pkg/ingest"
	"tableflip.dev/massadd/pkg/printers"
)

// Split configures `massadd split`.
type Split struct {
	Text   string
	Marker string
	JSON   bool
	Out    io.Writer
}

// Do prints the split text, or the resulting lines as JSON.
func (s *Split) Do(ctx context.Context) error {
	out, err := ingest.SplitOnMarker(s.Text, s.Marker)
	if err != nil {
		return err
	}
	if s.JSON {
		return printers.JSON(s.Out, map[string]any{
			"text":  out,
			"lines": ingest.Normalize(out),
		})
	}
	_, err = fmt.Fprintln(s.Out, out)
	return err
}
