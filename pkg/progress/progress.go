// Package progress reports batch progress to a terminal bar, a log, or
// nowhere.
package progress

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/schollz/progressbar/v3"
)

// Sink receives progress for one batch: Start once, Advance with the
// number of items done so far, then Finish when every item was processed
// or Stop when the batch halted early.
type Sink interface {
	Start(total int, label string)
	Advance(done int)
	Finish()
	Stop()
}

// New returns a Bar when w is a terminal and NoOp otherwise.
func New(w io.Writer) Sink {
	if f, ok := w.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		return NewBar(w)
	}
	return NoOp{}
}

// Bar draws a progress bar.
type Bar struct {
	out io.Writer
	bar *progressbar.ProgressBar
}

// NewBar creates a bar that renders to w.
func NewBar(w io.Writer) *Bar {
	return &Bar{out: w}
}

// Start initializes the bar.
func (b *Bar) Start(total int, label string) {
	out := b.out
	b.bar = progressbar.NewOptions(total,
		progressbar.OptionSetDescription(label),
		progressbar.OptionSetWriter(out),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(out, "\n")
		}),
		progressbar.OptionSetRenderBlankState(true),
	)
}

// Advance moves the bar to done.
func (b *Bar) Advance(done int) {
	if b.bar != nil {
		_ = b.bar.Set(done)
	}
}

// Finish completes the bar.
func (b *Bar) Finish() {
	if b.bar != nil {
		_ = b.bar.Finish()
	}
}

// Stop leaves the bar at its last position.
func (b *Bar) Stop() {
	if b.bar != nil {
		_ = b.bar.Exit()
	}
}

// NoOp discards progress.
type NoOp struct{}

func (NoOp) Start(int, string) {}
func (NoOp) Advance(int)       {}
func (NoOp) Finish()           {}
func (NoOp) Stop()             {}

// Log writes progress as debug log lines.
type Log struct {
	Logger zerolog.Logger

	total int
	label string
}

func (l *Log) Start(total int, label string) {
	l.total = total
	l.label = label
	l.Logger.Debug().Str("batch", label).Int("total", total).Msg("progress start")
}

func (l *Log) Advance(done int) {
	l.Logger.Debug().Str("batch", l.label).Int("done", done).Int("total", l.total).Msg("progress")
}

func (l *Log) Finish() {
	l.Logger.Debug().Str("batch", l.label).Msg("progress finish")
}

func (l *Log) Stop() {
	l.Logger.Debug().Str("batch", l.label).Int("total", l.total).Msg("progress stopped")
}
