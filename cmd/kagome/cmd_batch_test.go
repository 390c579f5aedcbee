package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestBatchCommandPrintsOneLinePerSentence(t *testing.T) {
	batchLogDir = ""
	batchWorkers = 2

	var out bytes.Buffer
	batchCmd.SetOut(&out)
	batchCmd.SetIn(strings.NewReader("もも\nすもも\n"))
	rootCmd.SetArgs([]string{"batch"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 output lines, got %d: %q", len(lines), out.String())
	}
	for _, l := range lines {
		if !strings.Contains(l, "\t") {
			t.Errorf("expected a sentence-id/surfaces line, got %q", l)
		}
	}
}

func TestBatchCommandWritesSessionLogsWhenLogDirSet(t *testing.T) {
	dir := t.TempDir()
	batchLogDir = dir
	batchWorkers = 1
	defer func() { batchLogDir = "" }()

	var out bytes.Buffer
	batchCmd.SetOut(&out)
	batchCmd.SetIn(strings.NewReader("もも\n"))
	rootCmd.SetArgs([]string{"batch"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	found := false
	for _, e := range entries {
		if filepath.Ext(e.Name()) == ".json" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a JSON session log file in %s, found none", dir)
	}
}
