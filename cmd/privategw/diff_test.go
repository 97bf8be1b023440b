package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewDiffCmd(t *testing.T) {
	cmd := newDiffCmd()

	if cmd.Use != "diff <template1> <template2>" {
		t.Errorf("Use = %q, want 'diff <template1> <template2>'", cmd.Use)
	}

	if cmd.Short == "" {
		t.Error("Short description should not be empty")
	}

	// Check flags exist
	if cmd.Flags().Lookup("format") == nil {
		t.Error("missing --format flag")
	}
}

func TestRunDiff_InSync(t *testing.T) {
	dir := t.TempDir()
	content := []byte(`{
  "AWSTemplateFormatVersion": "2010-09-09",
  "Resources": {
    "PrivateRestApi": {
      "Type": "AWS::ApiGateway::RestApi",
      "Properties": {"Name": "prod-private-api"}
    }
  }
}`)

	before := filepath.Join(dir, "before.json")
	after := filepath.Join(dir, "after.json")
	if err := os.WriteFile(before, content, 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(after, content, 0644); err != nil {
		t.Fatal(err)
	}

	if err := runDiff(before, after, "text"); err != nil {
		t.Errorf("runDiff() = %v, want nil for identical templates", err)
	}
}

func TestRunDiff_MissingFile(t *testing.T) {
	dir := t.TempDir()

	err := runDiff(filepath.Join(dir, "absent.json"), filepath.Join(dir, "alsoabsent.json"), "text")
	if err == nil {
		t.Error("runDiff() = nil, want error for missing file")
	}
}
