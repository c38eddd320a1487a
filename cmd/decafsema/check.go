package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/safeng/decaf-sema/internal/ast"
	"github.com/safeng/decaf-sema/internal/config"
	"github.com/safeng/decaf-sema/internal/diagfmt"
	"github.com/safeng/decaf-sema/internal/driver"
	"github.com/safeng/decaf-sema/internal/source"
	"github.com/safeng/decaf-sema/internal/types"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <fixture.json|directory>",
	Short: "Check one program fixture, or every *.json fixture in a directory",
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	checkCmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	checkCmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
	checkCmd.Flags().Bool("disk-cache", false, "cache each fixture's diagnostics by file content hash")
	checkCmd.Flags().String("ui", "auto", "directory-batch progress UI (auto|on|off)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	target := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	withNotes, err := cmd.Flags().GetBool("with-notes")
	if err != nil {
		return err
	}
	fullPath, err := cmd.Flags().GetBool("fullpath")
	if err != nil {
		return err
	}
	useDiskCache, err := cmd.Flags().GetBool("disk-cache")
	if err != nil {
		return err
	}
	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return err
	}
	maxDiagFlag, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return err
	}
	jobs, err := cmd.Root().PersistentFlags().GetInt("jobs")
	if err != nil {
		return err
	}

	startDir := target
	if info, statErr := os.Stat(target); statErr == nil && !info.IsDir() {
		startDir = filepath.Dir(target)
	}
	cfg, err := config.LoadFromDir(startDir)
	if err != nil {
		return err
	}
	if colorFlag != "auto" {
		cfg.Color = config.Color(colorFlag)
	}
	if maxDiagFlag > 0 {
		cfg.MaxDiagnostics = maxDiagFlag
	}
	if jobs > 0 {
		cfg.Jobs = jobs
	}
	if useDiskCache {
		cfg.DiskCache = true
	}

	paths, err := fixturePaths(target)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no fixture found at %s", target)
	}

	units := make([]driver.Unit, 0, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
		strings_ := source.NewInterner()
		typeInterner := types.NewInterner(strings_)
		builder := ast.NewBuilder(strings_, typeInterner)
		prog, err := builder.Load(data)
		if err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
		displayPath := p
		if fullPath {
			if abs, err := filepath.Abs(p); err == nil {
				displayPath = abs
			}
		}
		units = append(units, driver.Unit{Path: displayPath, Program: prog, Strings: strings_, Types: typeInterner, Content: data})
	}

	var cache *driver.DiskCache
	if cfg.DiskCache {
		cache, err = driver.OpenDiskCache("decafsema")
		if err != nil {
			return fmt.Errorf("disk cache: %w", err)
		}
	}

	uiModeFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return err
	}
	mode, err := readUIMode(uiModeFlag)
	if err != nil {
		return err
	}

	dirBatch := len(paths) > 1
	opts := driver.Options{
		MaxDiagnostics: cfg.MaxDiagnostics,
		Jobs:           cfg.Jobs,
		Cache:          cache,
	}

	var results []driver.Result
	if dirBatch && shouldUseTUI(mode) {
		displayFiles := make([]string, len(units))
		for i, u := range units {
			displayFiles[i] = u.Path
		}
		results, err = runBatchWithUI(cmd.Context(), "decafsema check", displayFiles, units, opts)
	} else {
		results, err = driver.RunBatch(context.Background(), units, opts)
	}
	if err != nil {
		return err
	}

	hasErrors := false
	switch format {
	case "json":
		var combined diagfmt.DiagnosticsOutput
		for _, r := range results {
			if r.Bag.HasErrors() {
				hasErrors = true
			}
			out := diagfmt.BuildDiagnosticsOutput(r.Path, r.Bag, diagfmt.JSONOpts{IncludePositions: true, IncludeNotes: withNotes})
			combined.Diagnostics = append(combined.Diagnostics, out.Diagnostics...)
		}
		combined.Count = len(combined.Diagnostics)
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(combined); err != nil {
			return err
		}
	case "pretty":
		for _, r := range results {
			if r.Bag.HasErrors() {
				hasErrors = true
			}
			diagfmt.Pretty(cmd.OutOrStdout(), r.Path, r.Bag, diagfmt.PrettyOpts{
				Color:     resolveColor(cfg.Color),
				ShowNotes: withNotes,
			})
		}
	default:
		return fmt.Errorf("unknown --format %q", format)
	}

	if hasErrors {
		os.Exit(1)
	}
	return nil
}

func resolveColor(c config.Color) bool {
	switch c {
	case config.ColorOn:
		return true
	case config.ColorOff:
		return false
	default:
		return isTerminal(os.Stdout)
	}
}

// fixturePaths returns target itself if it's a file, or every *.json file
// under it (sorted) if it's a directory — this checker's analog of
// surge's listSGFiles, walking for fixture files instead of source files.
func fixturePaths(target string) ([]string, error) {
	info, err := os.Stat(target)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{target}, nil
	}
	var paths []string
	err = filepath.WalkDir(target, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".json") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)
	return paths, nil
}
