package ingest

import (
	"errors"
	"reflect"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{name: "empty", in: "", want: []string{}},
		{name: "blank lines", in: "\n  \n\t\n", want: []string{}},
		{name: "trims and keeps order", in: "  b \n\na\n c", want: []string{"b", "a", "c"}},
		{name: "crlf", in: "one\r\ntwo\rthree", want: []string{"one", "two", "three"}},
		{name: "tabs inside are kept", in: " front\tback \n", want: []string{"front\tback"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Normalize(tc.in)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
			for _, l := range got {
				if l == "" {
					t.Fatalf("normalized output contains an empty line")
				}
			}
		})
	}
}

func TestSplitOnMarker(t *testing.T) {
	got, err := SplitOnMarker("a|b|c", "|")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "a|\nb|\nc" {
		t.Fatalf("unexpected split %q", got)
	}
	if lines := Normalize(got); len(lines) != 3 || lines[0] != "a|" {
		t.Fatalf("unexpected lines %q", lines)
	}
}

func TestSplitOnMarkerInvalid(t *testing.T) {
	for _, marker := range []string{"", "||"} {
		got, err := SplitOnMarker("a|b", marker)
		if !errors.Is(err, ErrInvalidDelimiter) {
			t.Fatalf("marker %q: expected ErrInvalidDelimiter, got %v", marker, err)
		}
		if got != "a|b" {
			t.Fatalf("marker %q: input changed to %q", marker, got)
		}
	}
}

func TestSplitOnMarkerMultibyte(t *testing.T) {
	got, err := SplitOnMarker("犬。猫。", "。")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "犬。\n猫。\n" {
		t.Fatalf("unexpected split %q", got)
	}
}

func TestSplitOnMarkerNotIdempotent(t *testing.T) {
	once, _ := SplitOnMarker("a,b", ",")
	twice, _ := SplitOnMarker(once, ",")
	if twice != "a,\n\nb" {
		t.Fatalf("expected a second break after re-split, got %q", twice)
	}
}
