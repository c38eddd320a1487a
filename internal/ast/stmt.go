package ast

import "github.com/safeng/decaf-sema/internal/source"

// Stmt is any statement-level node (spec.md §3).
type Stmt interface {
	Node
}

// Block introduces its own scope holding the VarDecls declared directly
// inside it (spec.md §4.1's innermost lookup level).
type Block struct {
	base
	ScopeHolder
	VarDecls []*VarDecl
	Stmts    []Stmt
}

func NewBlock(loc source.Location, decls []*VarDecl, stmts []Stmt) *Block {
	b := &Block{base: base{loc: loc}, VarDecls: decls, Stmts: stmts}
	for _, d := range decls {
		d.SetParent(b)
	}
	for _, s := range stmts {
		s.SetParent(b)
	}
	return b
}

// IfStmt. Else is nil when absent.
type IfStmt struct {
	base
	Test Expr
	Then Stmt
	Else Stmt
}

func NewIfStmt(loc source.Location, test Expr, then, els Stmt) *IfStmt {
	i := &IfStmt{base: base{loc: loc}, Test: test, Then: then, Else: els}
	test.SetParent(i)
	then.SetParent(i)
	if els != nil {
		els.SetParent(i)
	}
	return i
}

// ForStmt. Init/Step may be EmptyExpr when the clause is omitted.
type ForStmt struct {
	base
	Init Expr
	Test Expr
	Step Expr
	Body Stmt
}

func NewForStmt(loc source.Location, init, test, step Expr, body Stmt) *ForStmt {
	f := &ForStmt{base: base{loc: loc}, Init: init, Test: test, Step: step, Body: body}
	init.SetParent(f)
	test.SetParent(f)
	step.SetParent(f)
	body.SetParent(f)
	return f
}

type WhileStmt struct {
	base
	Test Expr
	Body Stmt
}

func NewWhileStmt(loc source.Location, test Expr, body Stmt) *WhileStmt {
	w := &WhileStmt{base: base{loc: loc}, Test: test, Body: body}
	test.SetParent(w)
	body.SetParent(w)
	return w
}

// ReturnStmt. Value is EmptyExpr for a bare `return;`.
type ReturnStmt struct {
	base
	Value Expr
}

func NewReturnStmt(loc source.Location, value Expr) *ReturnStmt {
	r := &ReturnStmt{base: base{loc: loc}, Value: value}
	value.SetParent(r)
	return r
}

type BreakStmt struct{ base }

func NewBreakStmt(loc source.Location) *BreakStmt { return &BreakStmt{base: base{loc: loc}} }

// PrintStmt takes one or more arguments, each int/bool/string (spec.md §4.6).
type PrintStmt struct {
	base
	Args []Expr
}

func NewPrintStmt(loc source.Location, args []Expr) *PrintStmt {
	p := &PrintStmt{base: base{loc: loc}, Args: args}
	for _, a := range args {
		a.SetParent(p)
	}
	return p
}

// ExprStmt wraps a bare expression used for its side effect (a call or
// assignment; the grammar the AST came from disallows other expression
// statements, but the checker doesn't need to re-enforce that here).
type ExprStmt struct {
	base
	X Expr
}

func NewExprStmt(loc source.Location, x Expr) *ExprStmt {
	e := &ExprStmt{base: base{loc: loc}, X: x}
	x.SetParent(e)
	return e
}
