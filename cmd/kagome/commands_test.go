package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestWakatiCommandSplitsSurfaces(t *testing.T) {
	var buf bytes.Buffer
	wakatiCmd.SetOut(&buf)
	rootCmd.SetArgs([]string{"wakati", "もも"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if strings.TrimSpace(buf.String()) == "" {
		t.Errorf("expected non-empty wakati output")
	}
}

func TestDetectLangCommandPrintsScore(t *testing.T) {
	var buf bytes.Buffer
	detectLangCmd.SetOut(&buf)
	rootCmd.SetArgs([]string{"detect-lang", "すもも"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	out := strings.TrimSpace(buf.String())
	if out == "" || out == "-1.0000" {
		t.Errorf("expected a positive confidence score for Japanese text, got %q", out)
	}
}

func TestDetectLangCommandReportsUnhandledForNonJapanese(t *testing.T) {
	var buf bytes.Buffer
	detectLangCmd.SetOut(&buf)
	rootCmd.SetArgs([]string{"detect-lang", "hello"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if strings.TrimSpace(buf.String()) != "-1.0000" {
		t.Errorf("expected -1.0000 for non-Japanese text, got %q", buf.String())
	}
}

func TestTokenizeCommandJSONFlagProducesJSONArray(t *testing.T) {
	var buf bytes.Buffer
	tokenizeCmd.SetOut(&buf)
	rootCmd.SetArgs([]string{"tokenize", "--json", "もも"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	out := strings.TrimSpace(buf.String())
	if !strings.HasPrefix(out, "[") {
		t.Errorf("expected a JSON array, got %q", out)
	}
}
