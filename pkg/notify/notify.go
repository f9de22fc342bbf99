// Package notify delivers short user-facing messages.
package notify

import (
	"io"
	"sync"

	"github.com/fatih/color"
	"github.com/muesli/reflow/wordwrap"
)

// Notifier shows a message to the user. Implementations must not block
// for long; callers treat it as fire-and-forget.
type Notifier interface {
	Notify(msg string)
}

// Func adapts a function to Notifier.
type Func func(msg string)

func (f Func) Notify(msg string) {
	if f != nil {
		f(msg)
	}
}

// Discard drops every message.
var Discard Notifier = Func(nil)

// Console prints word-wrapped messages in colour.
type Console struct {
	Out   io.Writer
	Width int
	Color *color.Color
}

// NewConsole returns a Console writing to w with 80 column wrapping.
func NewConsole(w io.Writer) *Console {
	return &Console{
		Out:   w,
		Width: 80,
		Color: color.New(color.FgCyan),
	}
}

func (c *Console) Notify(msg string) {
	if c.Width > 0 {
		msg = wordwrap.String(msg, c.Width)
	}
	if c.Color == nil {
		_, _ = io.WriteString(c.Out, msg+"\n")
		return
	}
	_, _ = c.Color.Fprintln(c.Out, msg)
}

// Recorder keeps messages in memory.
type Recorder struct {
	mu       sync.Mutex
	messages []string
}

func (r *Recorder) Notify(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, msg)
}

// Messages returns a copy of the recorded messages.
func (r *Recorder) Messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.messages...)
}

// Last returns the most recent message.
func (r *Recorder) Last() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.messages) == 0 {
		return ""
	}
	return r.messages[len(r.messages)-1]
}
