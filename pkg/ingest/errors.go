package ingest

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidDelimiter means the split marker was empty or longer than
	// one character.
	ErrInvalidDelimiter = errors.New("ingest: split marker must be a single character")
	// ErrNoRecordType means the destination record type could not be found.
	ErrNoRecordType = errors.New("ingest: record type not found")
	// ErrEmptySchema means the destination record type has no fields.
	ErrEmptySchema = errors.New("ingest: record type has no fields")
	// ErrEmptyInput means there were no non-blank lines to add.
	ErrEmptyInput = errors.New("ingest: no content to add")
	// ErrTooManyFields means a line had more tab separated tokens than the
	// schema has fields and overflow is strict.
	ErrTooManyFields = errors.New("ingest: line has more tokens than fields")
	// ErrStore wraps every failure returned by the store while submitting.
	ErrStore = errors.New("ingest: store rejected record")
)

// Failure is one line that could not be submitted.
type Failure struct {
	Index int    `json:"index"`
	Line  string `json:"line"`
	Err   error  `json:"-"`
}

func (f Failure) Error() string {
	return fmt.Sprintf("line %d: %v", f.Index+1, f.Err)
}

// BatchError reports a batch in which at least one record failed. Records
// submitted before (or, with ContinueOnError, around) the failures stay
// committed.
type BatchError struct {
	Committed int
	Total     int
	Failures  []Failure
	// Halted is true when the batch stopped at the first failure.
	Halted bool
}

func (e *BatchError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "ingest: added %d of %d record(s)", e.Committed, e.Total)
	switch {
	case len(e.Failures) == 0:
	case e.Halted:
		fmt.Fprintf(&b, "; stopped at %s", e.Failures[len(e.Failures)-1].Error())
	default:
		fmt.Fprintf(&b, "; %d failed", len(e.Failures))
		for _, f := range e.Failures {
			fmt.Fprintf(&b, "; %s", f.Error())
		}
	}
	return b.String()
}

// Unwrap exposes each failure's cause to errors.Is and errors.As.
func (e *BatchError) Unwrap() []error {
	errs := make([]error, 0, len(e.Failures))
	for _, f := range e.Failures {
		errs = append(errs, f.Err)
	}
	return errs
}

type storeError struct {
	err error
}

func (e *storeError) Error() string { return fmt.Sprintf("%v: %v", ErrStore, e.err) }

func (e *storeError) Unwrap() []error { return []error{ErrStore, e.err} }
