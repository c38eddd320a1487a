package driver

import (
	"context"
	"testing"

	"github.com/safeng/decaf-sema/internal/ast"
	"github.com/safeng/decaf-sema/internal/source"
	"github.com/safeng/decaf-sema/internal/types"
)

func mustUnit(t *testing.T, path, fixture string) Unit {
	t.Helper()
	strs := source.NewInterner()
	typeInterner := types.NewInterner(strs)
	prog, err := ast.NewBuilder(strs, typeInterner).Load([]byte(fixture))
	if err != nil {
		t.Fatalf("building fixture for %s: %v", path, err)
	}
	return Unit{Path: path, Program: prog, Strings: strs, Types: typeInterner, Content: []byte(fixture)}
}

const cleanFixture = `{"decls":[{"kind":"fn","name":"main","return_type":{"kind":"void"},"body":{"stmts":[]}}]}`
const brokenFixture = `{"decls":[
	{"kind":"fn","name":"f","return_type":{"kind":"void"},"body":{"stmts":[]}},
	{"kind":"fn","name":"f","return_type":{"kind":"void"},"body":{"stmts":[]}}
]}`

func TestRunBatchOrdersResultsByPathRegardlessOfCompletionOrder(t *testing.T) {
	units := []Unit{
		mustUnit(t, "c.json", cleanFixture),
		mustUnit(t, "a.json", cleanFixture),
		mustUnit(t, "b.json", cleanFixture),
	}
	results, err := RunBatch(context.Background(), units, Options{Jobs: 3})
	if err != nil {
		t.Fatalf("RunBatch: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	want := []string{"a.json", "b.json", "c.json"}
	for i, r := range results {
		if r.Path != want[i] {
			t.Fatalf("results[%d].Path = %q, want %q", i, r.Path, want[i])
		}
	}
}

func TestRunBatchReportsStatusPerUnit(t *testing.T) {
	units := []Unit{
		mustUnit(t, "clean.json", cleanFixture),
		mustUnit(t, "broken.json", brokenFixture),
	}
	results, err := RunBatch(context.Background(), units, Options{Jobs: 2})
	if err != nil {
		t.Fatalf("RunBatch: %v", err)
	}
	byPath := map[string]*Result{}
	for i := range results {
		byPath[results[i].Path] = &results[i]
	}
	if byPath["clean.json"].Bag.HasErrors() {
		t.Fatalf("clean.json should have no errors")
	}
	if !byPath["broken.json"].Bag.HasErrors() {
		t.Fatalf("broken.json should report the duplicate 'f' error")
	}
}

func TestRunBatchEmitsCheckingAndDoneEventsPerUnit(t *testing.T) {
	units := []Unit{mustUnit(t, "only.json", cleanFixture)}
	events := make(chan Event, 16)
	_, err := RunBatch(context.Background(), units, Options{Jobs: 1, Events: events})
	if err != nil {
		t.Fatalf("RunBatch: %v", err)
	}
	close(events)

	var stages []Stage
	for ev := range events {
		if ev.Path != "only.json" {
			t.Fatalf("unexpected event path %q", ev.Path)
		}
		stages = append(stages, ev.Stage)
	}
	if len(stages) != 2 || stages[0] != StageChecking || stages[1] != StageDone {
		t.Fatalf("expected [StageChecking, StageDone], got %v", stages)
	}
}

func TestRunBatchUsesDiskCacheOnSecondRun(t *testing.T) {
	cache := &DiskCache{dir: t.TempDir()}
	unit := mustUnit(t, "only.json", cleanFixture)

	first, err := RunBatch(context.Background(), []Unit{unit}, Options{Jobs: 1, Cache: cache})
	if err != nil {
		t.Fatalf("first RunBatch: %v", err)
	}
	if first[0].Cached {
		t.Fatalf("the first run should not be served from cache")
	}

	second, err := RunBatch(context.Background(), []Unit{unit}, Options{Jobs: 1, Cache: cache})
	if err != nil {
		t.Fatalf("second RunBatch: %v", err)
	}
	if !second[0].Cached {
		t.Fatalf("the second run should be served from the disk cache")
	}
}

func TestRunBatchEmptyInputReturnsNil(t *testing.T) {
	results, err := RunBatch(context.Background(), nil, Options{})
	if err != nil {
		t.Fatalf("RunBatch: %v", err)
	}
	if results != nil {
		t.Fatalf("expected nil results for an empty batch, got %v", results)
	}
}
