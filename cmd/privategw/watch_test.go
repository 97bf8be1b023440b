package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewWatchCmd(t *testing.T) {
	cmd := newWatchCmd()

	if cmd.Use != "watch [paths...]" {
		t.Errorf("Use = %q, want 'watch [paths...]'", cmd.Use)
	}

	if cmd.Short == "" {
		t.Error("Short description should not be empty")
	}

	// Check flags exist
	if cmd.Flags().Lookup("lint-only") == nil {
		t.Error("missing --lint-only flag")
	}

	if cmd.Flags().Lookup("debounce") == nil {
		t.Error("missing --debounce flag")
	}

	if cmd.Flags().Lookup("log-level") == nil {
		t.Error("missing --log-level flag")
	}
}

func TestDebounceDefault(t *testing.T) {
	cmd := newWatchCmd()

	flag := cmd.Flags().Lookup("debounce")
	if flag == nil {
		t.Fatal("missing --debounce flag")
	}

	if flag.DefValue != "500ms" {
		t.Errorf("debounce default = %q, want '500ms'", flag.DefValue)
	}
}

func TestWatchDirs(t *testing.T) {
	dir := t.TempDir()
	stackPath := filepath.Join(dir, "stack.yaml")
	if err := os.WriteFile(stackPath, []byte("stage: dev\n"), 0644); err != nil {
		t.Fatal(err)
	}

	// A stack file, its directory, and the recursive pattern all resolve to
	// the same watch directory exactly once
	dirs, err := watchDirs([]string{stackPath, dir, dir + "/..."})
	if err != nil {
		t.Fatalf("watchDirs: %v", err)
	}

	if len(dirs) != 1 {
		t.Fatalf("dirs = %v, want one entry", dirs)
	}
	if dirs[0] != dir {
		t.Errorf("dirs[0] = %q, want %q", dirs[0], dir)
	}
}
