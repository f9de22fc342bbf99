// Package timeutil parses the look-back windows used by reports.
package timeutil

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// DefaultWindow is used when no window is given.
const DefaultWindow = "1d"

const (
	day  = 24 * time.Hour
	week = 7 * day
)

// units are tried longest suffix first by lookupUnit.
var units = []struct {
	names []string
	size  time.Duration
	label string
}{
	{[]string{"w", "wk", "wks", "week", "weeks"}, week, "w"},
	{[]string{"d", "day", "days"}, day, "d"},
	{[]string{"h", "hr", "hrs", "hour", "hours"}, time.Hour, "h"},
	{[]string{"m", "min", "mins", "minute", "minutes"}, time.Minute, "m"},
}

// Window is a span of time ending at the moment it is applied.
type Window struct {
	Span time.Duration
}

// ParseWindow reads a window such as "3d", "1w2d" or "12 hours". Blank
// input is DefaultWindow.
func ParseWindow(input string) (Window, error) {
	s := strings.ToLower(strings.TrimSpace(input))
	if s == "" {
		s = DefaultWindow
	}

	var total time.Duration
	for rest := s; rest != ""; {
		rest = strings.TrimLeftFunc(rest, unicode.IsSpace)
		n := strings.IndexFunc(rest, func(r rune) bool { return !unicode.IsDigit(r) })
		if n <= 0 {
			return Window{}, fmt.Errorf("timeutil: expected a number at %q", rest)
		}
		count, err := strconv.Atoi(rest[:n])
		if err != nil {
			return Window{}, fmt.Errorf("timeutil: %q: %w", rest[:n], err)
		}
		rest = strings.TrimLeftFunc(rest[n:], unicode.IsSpace)

		u := strings.IndexFunc(rest, func(r rune) bool { return !unicode.IsLetter(r) })
		if u < 0 {
			u = len(rest)
		}
		size, ok := lookupUnit(rest[:u])
		if !ok {
			return Window{}, fmt.Errorf("timeutil: unknown unit %q", rest[:u])
		}
		total += time.Duration(count) * size
		rest = rest[u:]
	}

	if total <= 0 {
		return Window{}, fmt.Errorf("timeutil: window must be longer than zero")
	}
	return Window{Span: total}, nil
}

func lookupUnit(name string) (time.Duration, bool) {
	for _, u := range units {
		for _, n := range u.names {
			if n == name {
				return u.size, true
			}
		}
	}
	return 0, false
}

// Bounds returns the start and end of the window ending at now.
func (w Window) Bounds(now time.Time) (since, until time.Time) {
	return now.Add(-w.Span), now
}

// String renders the window in its compact form, dropping seconds.
func (w Window) String() string {
	var b strings.Builder
	rest := w.Span
	for _, u := range units {
		if n := rest / u.size; n > 0 {
			fmt.Fprintf(&b, "%d%s", n, u.label)
			rest -= n * u.size
		}
	}
	if b.Len() == 0 {
		return "0m"
	}
	return b.String()
}
