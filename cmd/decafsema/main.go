package main

import (
	"fmt"
	"os"
	"runtime/debug"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/safeng/decaf-sema/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "decafsema",
	Short: "Scope/type checker for the class-based teaching language",
	Long:  `decafsema builds a scope tree and type-checks a program, emitting diagnostics.`,
}

func main() {
	defer dumpTraceOnPanic()

	rootCmd.Version = version.Version

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Int("max-diagnostics", 0, "maximum number of diagnostics to show (0 = use classlang.toml or default)")
	rootCmd.PersistentFlags().Int("jobs", 0, "max parallel workers for directory batches (0=auto)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// dumpTraceOnPanic recovers a top-level panic, writes a postmortem trace
// file, and re-exits non-zero rather than letting the crash reach the
// user as a raw goroutine dump — SPEC_FULL.md §7's ambient addition,
// adapted from the teacher's trace-on-panic convention without pulling in
// its full internal/trace package (out of scope: nothing in this
// checker's domain needs structured runtime tracing beyond a crash dump).
func dumpTraceOnPanic() {
	r := recover()
	if r == nil {
		return
	}
	path := fmt.Sprintf("decafsema-crash-%d.trace", time.Now().UnixNano())
	if f, err := os.Create(path); err == nil {
		fmt.Fprintf(f, "panic: %v\n\n%s", r, debug.Stack())
		f.Close()
		fmt.Fprintf(os.Stderr, "decafsema: panic recovered, trace written to %s\n", path)
	} else {
		fmt.Fprintf(os.Stderr, "decafsema: panic: %v\n%s", r, debug.Stack())
	}
	os.Exit(2)
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
