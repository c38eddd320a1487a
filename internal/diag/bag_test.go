package diag

import (
	"testing"

	"github.com/safeng/decaf-sema/internal/source"
)

func loc(line, col int) source.Location {
	return source.Location{StartLine: line, StartCol: col, EndLine: line, EndCol: col + 1}
}

func TestBagRespectsCapacity(t *testing.T) {
	bag := NewBag(2)
	if !bag.Add(NewError(DeclConflict, loc(1, 1), "one")) {
		t.Fatalf("first add should succeed")
	}
	if !bag.Add(NewError(DeclConflict, loc(2, 1), "two")) {
		t.Fatalf("second add should succeed")
	}
	if bag.Add(NewError(DeclConflict, loc(3, 1), "three")) {
		t.Fatalf("third add should be dropped once at capacity")
	}
	if bag.Len() != 2 {
		t.Fatalf("expected 2 items, got %d", bag.Len())
	}
}

func TestBagUnboundedWhenMaxIsZero(t *testing.T) {
	bag := NewBag(0)
	for i := 0; i < 50; i++ {
		bag.Add(NewError(DeclConflict, loc(i, 1), "x"))
	}
	if bag.Len() != 50 {
		t.Fatalf("expected all 50 items, got %d", bag.Len())
	}
}

func TestBagHasErrors(t *testing.T) {
	bag := NewBag(0)
	if bag.HasErrors() {
		t.Fatalf("empty bag should report no errors")
	}
	bag.Add(New(SevWarning, UnknownCode, loc(1, 1), "just a warning"))
	if bag.HasErrors() {
		t.Fatalf("a warning-only bag should not report errors")
	}
	bag.Add(NewError(DeclConflict, loc(2, 1), "an error"))
	if !bag.HasErrors() {
		t.Fatalf("expected HasErrors once an error-severity diagnostic is added")
	}
}

func TestBagSortOrdersBySourcePositionThenSeverityThenCode(t *testing.T) {
	bag := NewBag(0)
	bag.Add(NewError(ArgMismatch, loc(5, 1), "later line"))
	bag.Add(New(SevWarning, UnknownCode, loc(1, 10), "same line, later col"))
	bag.Add(NewError(DeclConflict, loc(1, 1), "earliest"))
	bag.Add(NewError(IdentifierNotDeclared, loc(1, 1), "same position, higher code"))
	bag.Sort()

	items := bag.Items()
	if items[0].Message != "earliest" {
		t.Fatalf("expected 'earliest' first, got %q", items[0].Message)
	}
	if items[1].Message != "same position, higher code" {
		t.Fatalf("expected the lower code to sort first at the same position, got %q", items[1].Message)
	}
	if items[2].Message != "same line, later col" {
		t.Fatalf("expected column order on the same line, got %q", items[2].Message)
	}
	if items[3].Message != "later line" {
		t.Fatalf("expected the later line last, got %q", items[3].Message)
	}
}

func TestReportBuilderEmitsOnceWithNotes(t *testing.T) {
	bag := NewBag(0)
	reporter := BagReporter{Bag: bag}
	b := ReportError(reporter, DeclConflict, loc(3, 1), "duplicate")
	b.WithNote(loc(1, 1), "previous declaration here")
	b.Emit()
	b.Emit() // must not double-emit

	if bag.Len() != 1 {
		t.Fatalf("expected exactly one diagnostic emitted, got %d", bag.Len())
	}
	d := bag.Items()[0]
	if len(d.Notes) != 1 || d.Notes[0].Message != "previous declaration here" {
		t.Fatalf("expected the note to survive onto the emitted diagnostic")
	}
}

func TestReportBuilderNilSafe(t *testing.T) {
	var b *ReportBuilder
	b.WithNote(loc(1, 1), "noop")
	b.Emit() // must not panic
}
