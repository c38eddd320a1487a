// Package config loads the CLI's optional project-level settings from a
// classlang.toml next to the analyzed path (SPEC_FULL.md §6), the way
// cmd/surge's project_manifest.go loads surge.toml: walk up from the start
// directory looking for the file, decode it, and only apply fields the
// file actually set, leaving everything else at its default so CLI flags
// can still override either one.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Color selects when pretty output is colorized.
type Color string

const (
	ColorAuto Color = "auto"
	ColorOn   Color = "on"
	ColorOff  Color = "off"
)

// Config is the resolved set of project settings, after defaults and any
// classlang.toml have been merged. CLI flags are applied on top by the
// caller (cmd/decafsema), last and therefore highest precedence.
type Config struct {
	MaxDiagnostics int
	Color          Color
	Jobs           int
	DiskCache      bool
}

// Default returns the settings used when no classlang.toml is found.
func Default() Config {
	return Config{
		MaxDiagnostics: 200,
		Color:          ColorAuto,
		Jobs:           0, // 0 means runtime.GOMAXPROCS(0)
		DiskCache:      false,
	}
}

// fileConfig mirrors classlang.toml's shape. Pointer fields distinguish
// "absent from the file" from "explicitly set to the zero value" the way
// toml.MetaData.IsDefined does in the teacher's loader, but here a bare
// pointer nil-check is enough since every field is at the top level (no
// [section] table to additionally guard, unlike surge.toml's [package]/
// [run]).
type fileConfig struct {
	MaxDiagnostics *int    `toml:"max_diagnostics"`
	Color          *string `toml:"color"`
	Jobs           *int    `toml:"jobs"`
	DiskCache      *bool   `toml:"disk_cache"`
}

// FindConfigFile walks up from startDir looking for classlang.toml,
// mirroring findSurgeToml.
func FindConfigFile(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("config: resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "classlang.toml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("config: stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load decodes path and merges it onto Default().
func Load(path string) (Config, error) {
	cfg := Default()
	var fc fileConfig
	if _, err := toml.DecodeFile(path, &fc); err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if fc.MaxDiagnostics != nil {
		cfg.MaxDiagnostics = *fc.MaxDiagnostics
	}
	if fc.Color != nil {
		c := Color(*fc.Color)
		switch c {
		case ColorAuto, ColorOn, ColorOff:
			cfg.Color = c
		default:
			return Config{}, fmt.Errorf("%s: color must be one of auto|on|off, got %q", path, *fc.Color)
		}
	}
	if fc.Jobs != nil {
		cfg.Jobs = *fc.Jobs
	}
	if fc.DiskCache != nil {
		cfg.DiskCache = *fc.DiskCache
	}
	return cfg, nil
}

// LoadFromDir finds and loads classlang.toml starting at dir, returning
// Default() unmodified if none is found.
func LoadFromDir(dir string) (Config, error) {
	path, ok, err := FindConfigFile(dir)
	if err != nil {
		return Config{}, err
	}
	if !ok {
		return Default(), nil
	}
	return Load(path)
}
