// Package driver orchestrates running the checker over one program or a
// directory batch of them, mirroring surge/internal/driver/parallel.go's
// bounded-concurrency shape (errgroup, index-owned result slots, no mutex)
// adapted from "tokenize/parse N files" to "check N already-built
// programs" — this checker's input boundary is a structured AST, not
// source text, so there is no lexer/parser stage to run first (DESIGN.md).
package driver

import (
	"context"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/safeng/decaf-sema/internal/ast"
	"github.com/safeng/decaf-sema/internal/check"
	"github.com/safeng/decaf-sema/internal/diag"
	"github.com/safeng/decaf-sema/internal/source"
	"github.com/safeng/decaf-sema/internal/types"
)

// Unit is one file's input: its already-built program tree plus the
// interners it was built with (a batch run gives every file its own
// interner pair, since scope/type identity only needs to hold within one
// program — spec.md never asks for cross-file symbol sharing).
type Unit struct {
	Path    string
	Program *ast.Program
	Strings *source.Interner
	Types   *types.Interner
	Content []byte // raw fixture bytes, used as the disk-cache key; nil disables caching for this unit
}

// CheckOne runs the checker over a single unit and returns its diagnostic
// bag, sorted into spec.md §6's deterministic source order.
func CheckOne(u Unit, maxDiagnostics int) *diag.Bag {
	bag := diag.NewBag(maxDiagnostics)
	reporter := diag.BagReporter{Bag: bag}
	checker := check.NewChecker(u.Types, u.Strings, reporter)
	checker.Check(u.Program)
	bag.Sort()
	return bag
}

// Stage is a unit's position in the batch pipeline, reported through an
// Options.Events channel for internal/ui's progress model to render.
type Stage uint8

const (
	StageQueued Stage = iota
	StageChecking
	StageDone
)

// Status is a finished unit's outcome.
type Status uint8

const (
	StatusPending Status = iota
	StatusClean
	StatusHasErrors
	StatusCached
)

// Event reports one unit's progress, analogous to surge's buildpipeline
// events but keyed on check progress rather than compiler pipeline stages.
type Event struct {
	Path   string
	Stage  Stage
	Status Status
}

// Options configures RunBatch.
type Options struct {
	MaxDiagnostics int
	Jobs           int        // <=0 means runtime.GOMAXPROCS(0)
	Cache          *DiskCache // nil disables the disk cache
	Events         chan<- Event
}

// Result is one unit's outcome.
type Result struct {
	Path   string
	Bag    *diag.Bag
	Cached bool
}

func sortedPaths(units []Unit) []Unit {
	sorted := make([]Unit, len(units))
	copy(sorted, units)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Path < sorted[j].Path })
	return sorted
}

func sendEvent(events chan<- Event, ev Event) {
	if events == nil {
		return
	}
	events <- ev
}

// RunBatch checks every unit, bounded to opts.Jobs concurrent checks.
// Results come back in the same order as the (sorted) input for
// deterministic output regardless of which goroutine finishes first.
func RunBatch(ctx context.Context, units []Unit, opts Options) ([]Result, error) {
	sorted := sortedPaths(units)
	if len(sorted) == 0 {
		return nil, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	results := make([]Result, len(sorted))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(sorted)))

	for i, u := range sorted {
		i, u := i, u
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			sendEvent(opts.Events, Event{Path: u.Path, Stage: StageChecking, Status: StatusPending})

			if opts.Cache != nil && len(u.Content) > 0 {
				key := HashBytes(u.Content)
				if cached, ok, err := opts.Cache.Get(key); err == nil && ok {
					bag := fillBagFromCache(cached, opts.MaxDiagnostics)
					results[i] = Result{Path: u.Path, Bag: bag, Cached: true}
					sendEvent(opts.Events, Event{Path: u.Path, Stage: StageDone, Status: cachedStatus(bag)})
					return nil
				}
			}

			bag := CheckOne(u, opts.MaxDiagnostics)
			results[i] = Result{Path: u.Path, Bag: bag}

			if opts.Cache != nil && len(u.Content) > 0 {
				key := HashBytes(u.Content)
				_ = opts.Cache.Put(key, bag.Items())
			}

			sendEvent(opts.Events, Event{Path: u.Path, Stage: StageDone, Status: statusFor(bag)})
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

func statusFor(bag *diag.Bag) Status {
	if bag.HasErrors() {
		return StatusHasErrors
	}
	return StatusClean
}

func cachedStatus(bag *diag.Bag) Status {
	if bag.HasErrors() {
		return StatusHasErrors
	}
	return StatusCached
}
