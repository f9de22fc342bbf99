// Package watch streams store change events.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"tableflip.dev/massadd/pkg/app"
	"tableflip.dev/massadd/pkg/store"
)

// Watch configures `massadd watch`.
type Watch struct {
	Service *app.Service
	Out     io.Writer
	Logger  zerolog.Logger
}

// Do prints one line per event until ctx is done.
func (w *Watch) Do(ctx context.Context) error {
	if w.Service == nil {
		return errors.New("watch: no service")
	}
	events, err := w.Service.Watch(ctx)
	if err != nil {
		return err
	}
	w.Logger.Info().Msg("watching for changes")
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			fmt.Fprintln(w.Out, format(ev, time.Now()))
		}
	}
}

func format(ev store.Event, at time.Time) string {
	stamp := at.Local().Format("15:04:05")
	if ev.Category == "" {
		return fmt.Sprintf("%s %s", stamp, ev.Type)
	}
	return fmt.Sprintf("%s %s %s", stamp, ev.Type, ev.Category)
}
