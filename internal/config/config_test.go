package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	d := Default()
	if d.MaxDiagnostics != 200 || d.Color != ColorAuto || d.Jobs != 0 || d.DiskCache {
		t.Fatalf("unexpected defaults: %+v", d)
	}
}

func TestLoadMergesOnlySetFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "classlang.toml")
	data := `max_diagnostics = 50
color = "off"
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write classlang.toml: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.MaxDiagnostics != 50 {
		t.Fatalf("MaxDiagnostics = %d, want 50", cfg.MaxDiagnostics)
	}
	if cfg.Color != ColorOff {
		t.Fatalf("Color = %q, want off", cfg.Color)
	}
	if cfg.Jobs != Default().Jobs || cfg.DiskCache != Default().DiskCache {
		t.Fatalf("fields absent from the file should keep their default values, got %+v", cfg)
	}
}

func TestLoadRejectsInvalidColor(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "classlang.toml")
	if err := os.WriteFile(path, []byte(`color = "purple"`), 0o600); err != nil {
		t.Fatalf("write classlang.toml: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected an error for an invalid color value")
	}
}

func TestLoadRejectsMalformedTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "classlang.toml")
	if err := os.WriteFile(path, []byte(`not = [valid`), 0o600); err != nil {
		t.Fatalf("write classlang.toml: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected an error for malformed TOML")
	}
}

func TestFindConfigFileWalksUpToParent(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "classlang.toml"), []byte(""), 0o600); err != nil {
		t.Fatalf("write classlang.toml: %v", err)
	}
	nested := filepath.Join(root, "a", "b", "c")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir nested: %v", err)
	}

	path, ok, err := FindConfigFile(nested)
	if err != nil {
		t.Fatalf("FindConfigFile: %v", err)
	}
	if !ok {
		t.Fatalf("expected to find classlang.toml by walking up")
	}
	want := filepath.Join(root, "classlang.toml")
	if path != want {
		t.Fatalf("FindConfigFile found %q, want %q", path, want)
	}
}

func TestFindConfigFileNotFound(t *testing.T) {
	_, ok, err := FindConfigFile(t.TempDir())
	if err != nil {
		t.Fatalf("FindConfigFile: %v", err)
	}
	if ok {
		t.Fatalf("expected not to find a classlang.toml in an empty temp dir tree")
	}
}

func TestLoadFromDirReturnsDefaultWhenAbsent(t *testing.T) {
	cfg, err := LoadFromDir(t.TempDir())
	if err != nil {
		t.Fatalf("LoadFromDir: %v", err)
	}
	if cfg != Default() {
		t.Fatalf("expected Default() when no classlang.toml is found, got %+v", cfg)
	}
}
