package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mitchellh/go-homedir"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv(PathEnv, dir)
	for k := range Defaults() {
		t.Setenv(EnvPrefix+"_"+strings.ToUpper(k), "")
		os.Unsetenv(EnvPrefix + "_" + strings.ToUpper(k))
	}
	return dir
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)
	s, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want, _ := homedir.Expand("~/.massadd.db")
	if s.BasePath() != want {
		t.Fatalf("expected path %q, got %q", want, s.BasePath())
	}
	if s.RecentLimit != 10 || s.RecentDepth != 100 {
		t.Fatalf("unexpected recent settings %d/%d", s.RecentLimit, s.RecentDepth)
	}
	if s.Overflow != "drop" || s.DefaultType != "basic" || s.DefaultCategory != "Default" {
		t.Fatalf("unexpected defaults %+v", s)
	}
	if s.File != "" {
		t.Fatalf("expected no config file, got %q", s.File)
	}
}

func TestLoadFile(t *testing.T) {
	dir := isolate(t)
	body := "path: " + filepath.Join(dir, "db") + "\nrecent_tags_limit: 20\noverflow: merge\nshow_added_notes: true\n"
	if err := os.WriteFile(filepath.Join(dir, ".massadd.yaml"), []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	s, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if s.Path != filepath.Join(dir, "db") || s.RecentLimit != 20 || s.Overflow != "merge" || !s.ShowAddedNotes {
		t.Fatalf("unexpected settings %+v", s)
	}
	if s.File == "" {
		t.Fatalf("expected config file to be recorded")
	}
}

func TestLoadEnvOverride(t *testing.T) {
	isolate(t)
	t.Setenv("MASSADD_RECENT_TAGS_SEARCH_DEPTH", "500")
	t.Setenv("MASSADD_CONTINUE_ON_ERROR", "true")
	s, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if s.RecentDepth != 500 || !s.ContinueOnError {
		t.Fatalf("env not applied: %+v", s)
	}
}

func TestLoadRejectsOutOfRange(t *testing.T) {
	tests := map[string]string{
		"MASSADD_RECENT_TAGS_LIMIT":        "4",
		"MASSADD_RECENT_TAGS_SEARCH_DEPTH": "1001",
		"MASSADD_OVERFLOW":                 "warn",
		"MASSADD_LOG_LEVEL":                "loud",
	}
	for k, v := range tests {
		t.Run(k, func(t *testing.T) {
			isolate(t)
			t.Setenv(k, v)
			if _, err := Load(); err == nil {
				t.Fatalf("expected validation error for %s=%s", k, v)
			}
		})
	}
}
