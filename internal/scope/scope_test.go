package scope

import (
	"testing"

	"github.com/safeng/decaf-sema/internal/ast"
	"github.com/safeng/decaf-sema/internal/source"
)

func fakeVar(name string) *ast.VarDecl {
	prim := ast.NewPrimitiveTypeRef(source.NoLocation, 0)
	return ast.NewVarDecl(source.NoLocation, ast.NewIdentifier(source.NoLocation, name), prim)
}

func TestDeclareConflict(t *testing.T) {
	s := New(BlockScope, nil, nil)
	x1 := fakeVar("x")
	_, _, ok := s.Declare("x", VarEntry, x1)
	if !ok {
		t.Fatalf("first declaration of x should succeed")
	}
	x2 := fakeVar("x")
	_, conflict, ok := s.Declare("x", VarEntry, x2)
	if ok {
		t.Fatalf("second declaration of x should conflict")
	}
	if conflict == nil || conflict.Decl != x1 {
		t.Fatalf("conflict should point at the first declaration")
	}
}

func TestLookupChainClimbsParents(t *testing.T) {
	prog := New(ProgramScope, nil, nil)
	prog.Declare("g", VarEntry, fakeVar("g"))

	block := New(BlockScope, prog, nil)
	block.Declare("l", VarEntry, fakeVar("l"))

	if _, ok := block.Lookup("g"); ok {
		t.Fatalf("Lookup must not climb to the parent scope")
	}
	entry, found, ok := block.LookupChain("g")
	if !ok || found != prog || entry.Name != "g" {
		t.Fatalf("LookupChain should find g in the program scope")
	}
	entry, found, ok = block.LookupChain("l")
	if !ok || found != block || entry.Name != "l" {
		t.Fatalf("LookupChain should find l in the block's own scope first")
	}
}

func TestDeclareInheritedDoesNotOverrideOwnDeclaration(t *testing.T) {
	own := New(ClassScope, nil, nil)
	ownDecl := fakeVar("x")
	own.Declare("x", VarEntry, ownDecl)

	own.DeclareInherited("x", VarEntry, fakeVar("x"))
	entry, _ := own.Lookup("x")
	if entry.Decl != ownDecl || entry.Inherited {
		t.Fatalf("the subclass's own declaration should win over an inherited one")
	}
}

func TestDeclareInheritedAddsAbsentName(t *testing.T) {
	own := New(ClassScope, nil, nil)
	superEntryDecl := fakeVar("y")
	own.DeclareInherited("y", VarEntry, superEntryDecl)

	entry, ok := own.Lookup("y")
	if !ok || entry.Decl != superEntryDecl || !entry.Inherited {
		t.Fatalf("an absent name should be copied in as Inherited")
	}
}

func TestReplaceForcesOverride(t *testing.T) {
	own := New(ClassScope, nil, nil)
	own.Declare("m", FnEntry, fakeVar("m"))
	base := fakeVar("m")
	own.Replace("m", FnEntry, base)

	entry, _ := own.Lookup("m")
	if entry.Decl != base || !entry.Inherited {
		t.Fatalf("Replace should force the entry to point at the given decl")
	}
	if len(own.Entries()) != 1 {
		t.Fatalf("Replace should not duplicate the entry in declared order")
	}
}

func TestEntriesPreservesDeclarationOrder(t *testing.T) {
	s := New(ClassScope, nil, nil)
	s.Declare("a", VarEntry, fakeVar("a"))
	s.Declare("b", VarEntry, fakeVar("b"))
	s.Declare("c", VarEntry, fakeVar("c"))

	entries := s.Entries()
	if len(entries) != 3 || entries[0].Name != "a" || entries[1].Name != "b" || entries[2].Name != "c" {
		t.Fatalf("Entries should preserve first-declared-first order, got %v", entries)
	}
}

func TestAttachOf(t *testing.T) {
	block := ast.NewBlock(source.NoLocation, nil, nil)
	if Of(block) != nil {
		t.Fatalf("a fresh node should have no attached scope")
	}
	s := New(BlockScope, nil, block)
	Attach(block, s)
	if Of(block) != s {
		t.Fatalf("Attach/Of should round-trip the scope pointer")
	}
}
