package check

import (
	"fmt"

	"github.com/safeng/decaf-sema/internal/ast"
	"github.com/safeng/decaf-sema/internal/diag"
	"github.com/safeng/decaf-sema/internal/scope"
)

// checkBlock builds the block's own scope (its VarDecls), resolves each
// local's declared type, then checks every statement in source order
// (spec.md §4.6).
func (c *Checker) checkBlock(b *ast.Block, parent *scope.Scope) {
	if b.MarkChecked() {
		return
	}
	own := scope.New(scope.BlockScope, parent, b)
	scope.Attach(b, own)

	for _, d := range b.VarDecls {
		c.declare(own, d.Name.Name, scope.VarEntry, d)
		c.resolveType(d.Type, own)
	}
	for _, s := range b.Stmts {
		c.checkStmt(s, own)
	}
}

func (c *Checker) checkStmt(s ast.Stmt, sc *scope.Scope) {
	switch st := s.(type) {
	case *ast.Block:
		c.checkBlock(st, sc)
	case *ast.IfStmt:
		c.checkTestExpr(st.Test, sc)
		c.checkStmt(st.Then, sc)
		if st.Else != nil {
			c.checkStmt(st.Else, sc)
		}
	case *ast.WhileStmt:
		c.checkTestExpr(st.Test, sc)
		c.checkStmt(st.Body, sc)
	case *ast.ForStmt:
		c.checkExpr(st.Init, sc)
		c.checkTestExpr(st.Test, sc)
		c.checkExpr(st.Step, sc)
		c.checkStmt(st.Body, sc)
	case *ast.ReturnStmt:
		c.checkReturn(st, sc)
	case *ast.BreakStmt:
		if enclosingLoop(st) == nil {
			c.report(diag.BreakOutsideLoop, st.Location(), "'break' is not inside a loop").Emit()
		}
	case *ast.PrintStmt:
		c.checkPrint(st, sc)
	case *ast.ExprStmt:
		c.checkExpr(st.X, sc)
	}
}

func (c *Checker) checkTestExpr(e ast.Expr, sc *scope.Scope) {
	t := c.checkExpr(e, sc)
	b := c.types.Builtins()
	if t != b.Bool && t != b.Error {
		c.report(diag.TestNotBoolean, e.Location(),
			fmt.Sprintf("test expression has type %s, expected bool", c.types.String(t))).Emit()
	}
}

func (c *Checker) checkReturn(r *ast.ReturnStmt, sc *scope.Scope) {
	valType := c.checkExpr(r.Value, sc)
	fn := enclosingFn(r)
	if fn == nil {
		panic("check: return statement has no enclosing function")
	}
	retType := fn.ReturnType.Resolved()
	if !c.types.Compatible(valType, retType) {
		c.report(diag.ReturnMismatch, r.Location(),
			fmt.Sprintf("returns %s, expected %s", c.types.String(valType), c.types.String(retType))).
			WithNote(fn.Location(), "function declared here").
			Emit()
	}
}

func (c *Checker) checkPrint(p *ast.PrintStmt, sc *scope.Scope) {
	b := c.types.Builtins()
	for i, a := range p.Args {
		t := c.checkExpr(a, sc)
		if t != b.Int && t != b.Bool && t != b.String && t != b.Error {
			c.report(diag.PrintArgMismatch, a.Location(),
				fmt.Sprintf("print() argument %d has type %s, expected int, bool, or string", i+1, c.types.String(t))).Emit()
		}
	}
}
