package check

import (
	"fmt"

	"github.com/safeng/decaf-sema/internal/ast"
	"github.com/safeng/decaf-sema/internal/diag"
	"github.com/safeng/decaf-sema/internal/scope"
	"github.com/safeng/decaf-sema/internal/types"
)

// checkProgram builds the program scope, registers every top-level name
// (and, for classes/interfaces, its TypeID) before checking any of them, so
// mutually forward-referencing classes resolve each other regardless of
// declaration order (spec.md §4.2's "a class referencing a later-declared
// superclass" case).
func (c *Checker) checkProgram(p *ast.Program) {
	if p.MarkChecked() {
		return
	}
	prog := scope.New(scope.ProgramScope, nil, p)
	scope.Attach(p, prog)

	for _, d := range p.Decls {
		c.declareTopLevel(prog, d)
	}
	for _, d := range p.Decls {
		c.checkTopLevelDecl(d, prog)
	}
}

func (c *Checker) declareTopLevel(prog *scope.Scope, d ast.Decl) {
	switch decl := d.(type) {
	case *ast.VarDecl:
		c.declare(prog, decl.Name.Name, scope.VarEntry, decl)
	case *ast.FnDecl:
		c.declare(prog, decl.Name.Name, scope.FnEntry, decl)
	case *ast.ClassDecl:
		_, conflict, ok := prog.Declare(decl.Name.Name, scope.ClassEntry, decl)
		if !ok {
			c.reportConflict(decl, conflict)
			return
		}
		id := c.types.RegisterNamed(c.internName(decl.Name.Name), false)
		decl.SetResolvedType(id)
		c.namedDecls[id] = decl
	case *ast.InterfaceDecl:
		_, conflict, ok := prog.Declare(decl.Name.Name, scope.InterfaceEntry, decl)
		if !ok {
			c.reportConflict(decl, conflict)
			return
		}
		id := c.types.RegisterNamed(c.internName(decl.Name.Name), true)
		decl.SetResolvedType(id)
		c.namedDecls[id] = decl
	}
}

func (c *Checker) declare(sc *scope.Scope, name string, kind scope.EntryKind, decl ast.Decl) {
	_, conflict, ok := sc.Declare(name, kind, decl)
	if !ok {
		c.reportConflict(decl, conflict)
	}
}

func (c *Checker) reportConflict(decl ast.Decl, conflict *scope.Entry) {
	c.report(diag.DeclConflict, decl.DeclName().Location(),
		fmt.Sprintf("'%s' is already declared in this scope", decl.DeclName().Name)).
		WithNote(conflict.Decl.DeclName().Location(), "previous declaration here").
		Emit()
}

func (c *Checker) checkTopLevelDecl(d ast.Decl, prog *scope.Scope) {
	switch decl := d.(type) {
	case *ast.VarDecl:
		c.checkGlobalVar(decl, prog)
	case *ast.FnDecl:
		c.checkFn(decl, prog)
	case *ast.ClassDecl:
		c.checkClass(decl, prog)
	case *ast.InterfaceDecl:
		c.checkInterface(decl, prog)
	}
}

func (c *Checker) checkGlobalVar(v *ast.VarDecl, prog *scope.Scope) {
	if v.MarkChecked() {
		return
	}
	c.resolveType(v.Type, prog)
}

// checkClass builds the class's own member scope, merges in the
// superclass's (recursing into it first so transitive inheritance already
// flows through its scope), checks each declared interface is satisfied,
// and finally checks every member body (spec.md §4.2/§4.3).
func (c *Checker) checkClass(cd *ast.ClassDecl, prog *scope.Scope) {
	if cd.MarkChecked() {
		return
	}
	own := scope.New(scope.ClassScope, prog, cd)
	scope.Attach(cd, own)

	for _, m := range cd.Members {
		c.declare(own, m.DeclName().Name, memberKind(m), m)
	}
	for _, m := range cd.Members {
		c.resolveMemberSignature(m, own)
	}

	resolved := true
	if cd.Extends != nil {
		superID, superDecl := c.resolveClassRef(cd.Extends, prog)
		if superDecl == nil {
			resolved = false
		} else {
			c.checkClass(superDecl, prog)
			c.types.SetSuper(cd.ResolvedType(), superID)
			c.mergeInheritance(cd, own, superDecl)
		}
	}
	if resolved {
		c.types.MarkResolved(cd.ResolvedType())
	}

	for _, iface := range cd.Implements {
		_, ifaceDecl := c.resolveInterfaceRef(iface, prog)
		if ifaceDecl == nil {
			continue
		}
		c.checkInterface(ifaceDecl, prog)
		c.types.AddInterface(cd.ResolvedType(), ifaceDecl.ResolvedType())
		c.checkInterfaceImplementation(cd, own, ifaceDecl)
	}

	for _, m := range cd.Members {
		c.checkMemberBody(m, own)
	}
}

func memberKind(m ast.Decl) scope.EntryKind {
	if _, ok := m.(*ast.FnDecl); ok {
		return scope.FnEntry
	}
	return scope.VarEntry
}

func (c *Checker) resolveMemberSignature(m ast.Decl, lexScope *scope.Scope) {
	switch decl := m.(type) {
	case *ast.VarDecl:
		c.resolveType(decl.Type, lexScope)
	case *ast.FnDecl:
		c.resolveType(decl.ReturnType, lexScope)
		for _, f := range decl.Formals {
			c.resolveType(f.Type, lexScope)
		}
	}
}

func (c *Checker) checkMemberBody(m ast.Decl, own *scope.Scope) {
	if fd, ok := m.(*ast.FnDecl); ok {
		c.checkFn(fd, own)
	}
	// VarDecl members have nothing further to check: their type was
	// resolved in resolveMemberSignature.
}

// mergeInheritance folds the superclass's (already transitively merged)
// scope into the subclass's own scope: an inherited name absent from the
// subclass is copied in; a name re-declared with a mismatched kind or, for
// two methods, a non-equivalent signature, is a DeclConflict/OverrideMismatch
// and — for the signature mismatch specifically — the base method's entry
// is kept so later lookups don't cascade (spec.md §4.2).
func (c *Checker) mergeInheritance(cd *ast.ClassDecl, own *scope.Scope, superDecl *ast.ClassDecl) {
	superScope := scope.Of(superDecl)
	if superScope == nil {
		return
	}
	for _, e := range superScope.Entries() {
		existing, found := own.Lookup(e.Name)
		if !found {
			own.DeclareInherited(e.Name, e.Kind, e.Decl)
			continue
		}
		if existing.Kind != e.Kind || existing.Kind == scope.VarEntry {
			c.report(diag.DeclConflict, existing.Decl.DeclName().Location(),
				fmt.Sprintf("'%s' conflicts with the inherited member of the same name", e.Name)).
				WithNote(e.Decl.DeclName().Location(), "inherited declaration here").
				Emit()
			continue
		}
		subFn := existing.Decl.(*ast.FnDecl)
		baseFn := e.Decl.(*ast.FnDecl)
		if !c.sigEquivalent(subFn, baseFn) {
			c.report(diag.OverrideMismatch, subFn.Location(),
				fmt.Sprintf("method '%s' overrides its base declaration with an incompatible signature", e.Name)).
				WithNote(baseFn.Location(), "base declaration here").
				Emit()
			own.Replace(e.Name, scope.FnEntry, baseFn)
		}
	}
}

// checkInterfaceImplementation verifies cd satisfies every method ifaceDecl
// declares. The first missing or mismatched member reports
// InterfaceNotImplemented and latches further reports for this
// (class, interface) pair (spec.md §4.3); a present-but-mismatched member
// also separately reports OverrideMismatch.
func (c *Checker) checkInterfaceImplementation(cd *ast.ClassDecl, own *scope.Scope, ifaceDecl *ast.InterfaceDecl) {
	ifaceScope := scope.Of(ifaceDecl)
	if ifaceScope == nil {
		return
	}
	latchKey := [2]types.TypeID{cd.ResolvedType(), ifaceDecl.ResolvedType()}

	for _, e := range ifaceScope.Entries() {
		im := e.Decl.(*ast.FnDecl)
		cmEntry, found := own.Lookup(e.Name)
		if !found || cmEntry.Kind != scope.FnEntry {
			c.latchInterfaceNotImplemented(cd, ifaceDecl, latchKey)
			continue
		}
		cm := cmEntry.Decl.(*ast.FnDecl)
		if !c.sigEquivalent(cm, im) {
			c.report(diag.OverrideMismatch, cm.Location(),
				fmt.Sprintf("method '%s' does not match the signature required by interface '%s'", e.Name, ifaceDecl.Name.Name)).
				WithNote(im.Location(), "interface declaration here").
				Emit()
			c.latchInterfaceNotImplemented(cd, ifaceDecl, latchKey)
		}
	}
}

func (c *Checker) latchInterfaceNotImplemented(cd *ast.ClassDecl, ifaceDecl *ast.InterfaceDecl, key [2]types.TypeID) {
	if c.interfaceReported[key] {
		return
	}
	c.interfaceReported[key] = true
	c.report(diag.InterfaceNotImplemented, cd.Location(),
		fmt.Sprintf("class '%s' does not implement interface '%s'", cd.Name.Name, ifaceDecl.Name.Name)).
		WithNote(ifaceDecl.Location(), "interface declared here").
		Emit()
}

func (c *Checker) checkInterface(id *ast.InterfaceDecl, prog *scope.Scope) {
	if id.MarkChecked() {
		return
	}
	own := scope.New(scope.InterfaceScope, prog, id)
	scope.Attach(id, own)

	for _, m := range id.Members {
		c.declare(own, m.Name.Name, scope.FnEntry, m)
	}
	for _, m := range id.Members {
		c.resolveMemberSignature(m, own)
	}
	c.types.MarkResolved(id.ResolvedType())
}
