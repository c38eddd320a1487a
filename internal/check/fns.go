package check

import (
	"github.com/safeng/decaf-sema/internal/ast"
	"github.com/safeng/decaf-sema/internal/scope"
)

// checkFn resolves a function/method's signature (idempotent, so calling it
// again for a method whose signature was already resolved during the
// class's member pass is a no-op) and, if it carries a body, builds its
// formal scope and checks the block. Interface members never reach here
// with a body to check.
func (c *Checker) checkFn(f *ast.FnDecl, lexScope *scope.Scope) {
	if f.MarkChecked() {
		return
	}
	c.resolveType(f.ReturnType, lexScope)
	for _, formal := range f.Formals {
		c.resolveType(formal.Type, lexScope)
	}
	if f.IsInterfaceMember || f.Body == nil {
		return
	}

	fnScope := scope.New(scope.FunctionScope, lexScope, f)
	scope.Attach(f, fnScope)
	for _, formal := range f.Formals {
		c.declare(fnScope, formal.Name.Name, scope.VarEntry, formal)
	}
	c.checkBlock(f.Body, fnScope)
}
