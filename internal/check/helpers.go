package check

import (
	"github.com/safeng/decaf-sema/internal/ast"
	"github.com/safeng/decaf-sema/internal/scope"
	"github.com/safeng/decaf-sema/internal/types"
)

// enclosingClass walks the parent chain to the nearest ClassDecl, returning
// nil if the root is reached without meeting one — spec.md §4.6's
// ThisOutsideClassScope and the field-accessibility check both need "which
// class, if any, is this node lexically inside".
func enclosingClass(n ast.Node) *ast.ClassDecl {
	for cur := n.Parent(); cur != nil; cur = cur.Parent() {
		if cd, ok := cur.(*ast.ClassDecl); ok {
			return cd
		}
	}
	return nil
}

// enclosingFn walks the parent chain to the nearest FnDecl, used by
// ReturnStmt checking to find the declared return type.
func enclosingFn(n ast.Node) *ast.FnDecl {
	for cur := n.Parent(); cur != nil; cur = cur.Parent() {
		if fd, ok := cur.(*ast.FnDecl); ok {
			return fd
		}
	}
	return nil
}

// enclosingLoop walks the parent chain to the nearest For/While statement,
// stopping at a function boundary (a loop in a lexically outer function,
// which this grammar can't express anyway, never counts).
func enclosingLoop(n ast.Node) ast.Stmt {
	for cur := n.Parent(); cur != nil; cur = cur.Parent() {
		switch s := cur.(type) {
		case *ast.ForStmt:
			return s
		case *ast.WhileStmt:
			return s
		case *ast.FnDecl:
			return nil
		}
	}
	return nil
}

// programScopeOf climbs from sc to the program scope at the root of its
// chain — every scope eventually parents up to it regardless of how deep
// the lexical nesting is. Used to check a not-yet-visited class/interface
// on demand when an expression references it ahead of its declaration
// order (spec.md §1's forward-reference requirement).
func programScopeOf(sc *scope.Scope) *scope.Scope {
	for cur := sc; cur != nil; cur = cur.Parent {
		if cur.Parent == nil {
			return cur
		}
	}
	return nil
}

// ensureChecked makes sure decl's own scope has been built before a
// cross-reference consults it: checkClass/checkInterface are idempotent
// (MarkChecked-latched), so calling them here just runs the member pass
// early for a class/interface that source order hasn't reached yet instead
// of leaving scope.Of(decl) nil (decls.go's class-scope merge already does
// this for the extends/implements edges; expression dispatch needs the
// same for an ordinary field/method access on another class).
func (c *Checker) ensureChecked(decl ast.Decl, sc *scope.Scope) {
	prog := programScopeOf(sc)
	switch d := decl.(type) {
	case *ast.ClassDecl:
		c.checkClass(d, prog)
	case *ast.InterfaceDecl:
		c.checkInterface(d, prog)
	}
}

func (c *Checker) isNumeric(t types.TypeID) bool {
	b := c.types.Builtins()
	return t == b.Int || t == b.Double
}

// classDeclByType reports the ClassDecl a Named TypeID was registered for,
// if it names a class rather than an interface.
func (c *Checker) classDeclByType(id types.TypeID) (*ast.ClassDecl, bool) {
	d, ok := c.namedDecls[id]
	if !ok {
		return nil, false
	}
	cd, ok := d.(*ast.ClassDecl)
	return cd, ok
}

// declByType returns the class or interface declaration id was registered
// for (nil if none), for dotted call/field dispatch.
func (c *Checker) declByType(id types.TypeID) ast.Decl {
	return c.namedDecls[id]
}

// sigEquivalent implements the signature-equivalence spec.md §4.2/§4.3 need
// for override/implementation checking: same return type (≡), same arity,
// and pairwise ≡ formal types. Names don't matter, only shape.
func (c *Checker) sigEquivalent(a, b *ast.FnDecl) bool {
	if !c.types.Equivalent(a.ReturnType.Resolved(), b.ReturnType.Resolved()) {
		return false
	}
	if len(a.Formals) != len(b.Formals) {
		return false
	}
	for i := range a.Formals {
		if !c.types.Equivalent(a.Formals[i].Type.Resolved(), b.Formals[i].Type.Resolved()) {
			return false
		}
	}
	return true
}
