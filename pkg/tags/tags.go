// Package tags parses, merges and formats tag strings.
package tags

import (
	"sort"
	"strings"
)

// Set is a set of tags. Membership ignores case; the first spelling added
// is the one kept.
type Set struct {
	m map[string]string
}

// NewSet returns a set holding the given tags.
func NewSet(tags ...string) Set {
	s := Set{}
	for _, t := range tags {
		s.Add(t)
	}
	return s
}

func key(tag string) string {
	return strings.ToLower(tag)
}

// Add inserts tag after trimming it. Blank tags are ignored. It reports
// whether the set grew.
func (s *Set) Add(tag string) bool {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return false
	}
	if s.Has(tag) {
		return false
	}
	if s.m == nil {
		s.m = make(map[string]string)
	}
	s.m[key(tag)] = tag
	return true
}

// Has reports membership.
func (s Set) Has(tag string) bool {
	_, ok := s.m[key(strings.TrimSpace(tag))]
	return ok
}

// Len returns the number of tags.
func (s Set) Len() int {
	return len(s.m)
}

// Union adds every tag of o to s.
func (s *Set) Union(o Set) {
	for _, t := range o.m {
		s.Add(t)
	}
}

// Slice returns the tags sorted case-insensitively in a new slice.
func (s Set) Slice() []string {
	out := make([]string, 0, len(s.m))
	for _, t := range s.m {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		li, lj := key(out[i]), key(out[j])
		if li == lj {
			return out[i] < out[j]
		}
		return li < lj
	})
	return out
}

// Codec is the tag subsystem: it owns where one tag ends and the next
// begins, and how a set is written back as text.
type Codec interface {
	Split(text string) Set
	Join(s Set) string
}

// Whitespace splits on any Unicode white space (including the ideographic
// space) and joins sorted tags with a single space.
var Whitespace Codec = whitespace{}

type whitespace struct{}

func (whitespace) Split(text string) Set {
	return NewSet(strings.Fields(text)...)
}

func (whitespace) Join(s Set) string {
	return strings.Join(s.Slice(), " ")
}

// Resolve parses a user typed tag string. An empty string yields an empty
// set.
func Resolve(codec Codec, text string) Set {
	if codec == nil {
		codec = Whitespace
	}
	return codec.Split(text)
}

// MergeSet unions picked tags into the parsed text.
func MergeSet(codec Codec, text string, picked []string) Set {
	s := Resolve(codec, text)
	s.Union(NewSet(picked...))
	return s
}

// Merge unions picked tags into text and returns the sorted tag string to
// write back into the editable field.
func Merge(codec Codec, text string, picked []string) string {
	if codec == nil {
		codec = Whitespace
	}
	return codec.Join(MergeSet(codec, text, picked))
}
