package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestRunImportDryRunPrintsPlan(t *testing.T) {
	var out bytes.Buffer
	if err := runImport([]string{"-dir", "../../internal/markdown/testdata", "-dry-run"}, &out); err != nil {
		t.Fatalf("run import: %v", err)
	}
	text := out.String()
	if !strings.Contains(text, "plan\tWelcome") {
		t.Fatalf("expected planned welcome post, got:\n%s", text)
	}
	if strings.Contains(text, "created\t") {
		t.Fatalf("dry run must not create posts, got:\n%s", text)
	}
	if !strings.Contains(text, "0 created") {
		t.Fatalf("unexpected summary:\n%s", text)
	}
}

func TestRunImportCreatesPosts(t *testing.T) {
	var out bytes.Buffer
	if err := runImport([]string{"-dir", "../../internal/markdown/testdata", "-recursive"}, &out); err != nil {
		t.Fatalf("run import: %v", err)
	}
	text := out.String()
	if !strings.Contains(text, "3 planned, 3 created, 0 failed") {
		t.Fatalf("unexpected summary:\n%s", text)
	}
}

func TestRunImportMissingDirectoryFails(t *testing.T) {
	var out bytes.Buffer
	if err := runImport([]string{"-dir", t.TempDir() + "/missing"}, &out); err == nil {
		t.Fatal("expected error for missing directory")
	}
}
