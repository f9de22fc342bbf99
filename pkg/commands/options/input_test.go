package options

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInputRead(t *testing.T) {
	file := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(file, []byte("a\tb\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	tests := map[string]struct {
		opts    InputOptions
		args    []string
		stdin   string
		want    string
		wantErr bool
	}{
		"args":    {args: []string{"one", "two"}, want: "one two"},
		"file":    {opts: InputOptions{File: file}, want: "a\tb\n"},
		"dash":    {opts: InputOptions{File: "-"}, stdin: "x\ny", want: "x\ny"},
		"pipe":    {stdin: "piped", want: "piped"},
		"both":    {opts: InputOptions{File: file}, args: []string{"x"}, wantErr: true},
		"no file": {opts: InputOptions{File: filepath.Join(t.TempDir(), "missing")}, wantErr: true},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := tc.opts.Read(tc.args, strings.NewReader(tc.stdin))
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("read: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}
