package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/safeng/decaf-sema/internal/config"
)

func TestFixturePathsSingleFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.json")
	if err := os.WriteFile(path, []byte(`{"decls":[]}`), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	paths, err := fixturePaths(path)
	if err != nil {
		t.Fatalf("fixturePaths: %v", err)
	}
	if len(paths) != 1 || paths[0] != path {
		t.Fatalf("expected [%q], got %v", path, paths)
	}
}

func TestFixturePathsDirectoryWalksAndSorts(t *testing.T) {
	dir := t.TempDir()
	names := []string{"b.json", "a.json", "skip.txt"}
	for _, n := range names {
		if err := os.WriteFile(filepath.Join(dir, n), []byte(`{"decls":[]}`), 0o600); err != nil {
			t.Fatalf("write %s: %v", n, err)
		}
	}
	sub := filepath.Join(dir, "nested")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatalf("mkdir nested: %v", err)
	}
	if err := os.WriteFile(filepath.Join(sub, "c.json"), []byte(`{"decls":[]}`), 0o600); err != nil {
		t.Fatalf("write nested fixture: %v", err)
	}

	paths, err := fixturePaths(dir)
	if err != nil {
		t.Fatalf("fixturePaths: %v", err)
	}
	want := []string{
		filepath.Join(dir, "a.json"),
		filepath.Join(dir, "b.json"),
		filepath.Join(sub, "c.json"),
	}
	if len(paths) != len(want) {
		t.Fatalf("expected %v, got %v", want, paths)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, paths)
		}
	}
}

func TestResolveColorOnAndOffBypassTTYDetection(t *testing.T) {
	if !resolveColor(config.ColorOn) {
		t.Fatalf("ColorOn should always resolve to true")
	}
	if resolveColor(config.ColorOff) {
		t.Fatalf("ColorOff should always resolve to false")
	}
}
