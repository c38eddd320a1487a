package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestRenderVersionPrettyMinimal(t *testing.T) {
	var buf bytes.Buffer
	renderVersionPretty(&buf, versionInfo{Version: "1.2.3"}, versionOptions{})
	out := buf.String()
	if !strings.Contains(out, "decafsema 1.2.3") {
		t.Fatalf("expected version banner, got %q", out)
	}
	if strings.Contains(out, "commit:") || strings.Contains(out, "built:") {
		t.Fatalf("hash/date lines should be omitted unless requested, got %q", out)
	}
}

func TestRenderVersionPrettyFull(t *testing.T) {
	var buf bytes.Buffer
	info := versionInfo{Version: "1.2.3", GitCommit: "deadbeef", BuildDate: "2026-01-01"}
	renderVersionPretty(&buf, info, versionOptions{showHash: true, showDate: true})
	out := buf.String()
	if !strings.Contains(out, "commit: deadbeef") || !strings.Contains(out, "built:  2026-01-01") {
		t.Fatalf("expected commit and built lines, got %q", out)
	}
}

func TestRenderVersionJSONOmitsUnrequestedFields(t *testing.T) {
	var buf bytes.Buffer
	info := versionInfo{Version: "1.2.3", GitCommit: "deadbeef"}
	if err := renderVersionJSON(&buf, info, versionOptions{}); err != nil {
		t.Fatalf("renderVersionJSON: %v", err)
	}
	out := buf.String()
	if strings.Contains(out, "git_commit") {
		t.Fatalf("git_commit should be omitted when showHash is false, got %q", out)
	}
	if !strings.Contains(out, `"version": "1.2.3"`) {
		t.Fatalf("expected version field in JSON output, got %q", out)
	}
}

func TestValueOrUnknown(t *testing.T) {
	if valueOrUnknown("") != "unknown" {
		t.Fatalf("expected 'unknown' for an empty string")
	}
	if valueOrUnknown("x") != "x" {
		t.Fatalf("expected the value passed through unchanged when non-empty")
	}
}
