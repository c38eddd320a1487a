package ast

import (
	"github.com/safeng/decaf-sema/internal/source"
	"github.com/safeng/decaf-sema/internal/types"
)

// Expr is any expression node. Its computed type is set exactly once by the
// checker, after which it never changes (spec.md §3's "computed type" slot;
// §9's idempotent-Check design note).
type Expr interface {
	Node
	Type() types.TypeID
	SetType(types.TypeID)
}

type exprBase struct {
	base
	typ types.TypeID
}

func (e *exprBase) Type() types.TypeID        { return e.typ }
func (e *exprBase) SetType(id types.TypeID)   { e.typ = id }

// --- literals ---------------------------------------------------------

type IntLiteral struct {
	exprBase
	Value int64
}

func NewIntLiteral(loc source.Location, v int64) *IntLiteral {
	return &IntLiteral{exprBase: exprBase{base: base{loc: loc}}, Value: v}
}

type DoubleLiteral struct {
	exprBase
	Value float64
}

func NewDoubleLiteral(loc source.Location, v float64) *DoubleLiteral {
	return &DoubleLiteral{exprBase: exprBase{base: base{loc: loc}}, Value: v}
}

type BoolLiteral struct {
	exprBase
	Value bool
}

func NewBoolLiteral(loc source.Location, v bool) *BoolLiteral {
	return &BoolLiteral{exprBase: exprBase{base: base{loc: loc}}, Value: v}
}

type StringLiteral struct {
	exprBase
	Value string
}

func NewStringLiteral(loc source.Location, v string) *StringLiteral {
	return &StringLiteral{exprBase: exprBase{base: base{loc: loc}}, Value: v}
}

type NullLiteral struct{ exprBase }

func NewNullLiteral(loc source.Location) *NullLiteral {
	return &NullLiteral{exprBase: exprBase{base: base{loc: loc}}}
}

// --- this / names -------------------------------------------------------

// ThisExpr refers to the receiver inside a method body; illegal elsewhere
// (spec.md's ThisOutsideClassScope diagnostic).
type ThisExpr struct{ exprBase }

func NewThisExpr(loc source.Location) *ThisExpr {
	return &ThisExpr{exprBase: exprBase{base: base{loc: loc}}}
}

// NameExpr is a bare identifier used as an rvalue (a local, formal, field,
// or global variable reference with no explicit base expression).
type NameExpr struct {
	exprBase
	Name *Identifier
}

func NewNameExpr(name *Identifier) *NameExpr {
	n := &NameExpr{exprBase: exprBase{base: base{loc: name.Location()}}, Name: name}
	name.SetParent(n)
	return n
}

// FieldAccessExpr is `base.field`, or `field` with Base == nil meaning "the
// implicit this" inside a method (spec.md §4.5's field-access rules).
type FieldAccessExpr struct {
	exprBase
	Base  Expr // nil for an unqualified field reference
	Field *Identifier
}

func NewFieldAccessExpr(loc source.Location, base_ Expr, field *Identifier) *FieldAccessExpr {
	f := &FieldAccessExpr{exprBase: exprBase{base: base{loc: loc}}, Base: base_, Field: field}
	if base_ != nil {
		base_.SetParent(f)
	}
	field.SetParent(f)
	return f
}

// CallExpr is `base.method(args)`, or `method(args)` with Base == nil for
// an unqualified call (a global function, or an implicit-this method call).
type CallExpr struct {
	exprBase
	Base   Expr
	Method *Identifier
	Args   []Expr
}

func NewCallExpr(loc source.Location, base_ Expr, method *Identifier, args []Expr) *CallExpr {
	c := &CallExpr{exprBase: exprBase{base: base{loc: loc}}, Base: base_, Method: method, Args: args}
	if base_ != nil {
		base_.SetParent(c)
	}
	method.SetParent(c)
	for _, a := range args {
		a.SetParent(c)
	}
	return c
}

// ArrayAccessExpr is `array[index]`.
type ArrayAccessExpr struct {
	exprBase
	Array Expr
	Index Expr
}

func NewArrayAccessExpr(loc source.Location, array, index Expr) *ArrayAccessExpr {
	a := &ArrayAccessExpr{exprBase: exprBase{base: base{loc: loc}}, Array: array, Index: index}
	array.SetParent(a)
	index.SetParent(a)
	return a
}

// --- operators ------------------------------------------------------------

type ArithmeticExpr struct {
	exprBase
	Op          string // "+" "-" "*" "/" "%", unary "-" when Left == nil
	Left, Right Expr
}

func NewBinaryArithmeticExpr(loc source.Location, op string, left, right Expr) *ArithmeticExpr {
	a := &ArithmeticExpr{exprBase: exprBase{base: base{loc: loc}}, Op: op, Left: left, Right: right}
	left.SetParent(a)
	right.SetParent(a)
	return a
}

func NewUnaryArithmeticExpr(loc source.Location, op string, operand Expr) *ArithmeticExpr {
	a := &ArithmeticExpr{exprBase: exprBase{base: base{loc: loc}}, Op: op, Right: operand}
	operand.SetParent(a)
	return a
}

func (a *ArithmeticExpr) IsUnary() bool { return a.Left == nil }

type RelationalExpr struct {
	exprBase
	Op          string // "<" "<=" ">" ">="
	Left, Right Expr
}

func NewRelationalExpr(loc source.Location, op string, left, right Expr) *RelationalExpr {
	r := &RelationalExpr{exprBase: exprBase{base: base{loc: loc}}, Op: op, Left: left, Right: right}
	left.SetParent(r)
	right.SetParent(r)
	return r
}

type EqualityExpr struct {
	exprBase
	Op          string // "==" "!="
	Left, Right Expr
}

func NewEqualityExpr(loc source.Location, op string, left, right Expr) *EqualityExpr {
	e := &EqualityExpr{exprBase: exprBase{base: base{loc: loc}}, Op: op, Left: left, Right: right}
	left.SetParent(e)
	right.SetParent(e)
	return e
}

// LogicalExpr covers both unary "!" (Left == nil) and binary "&&"/"||".
type LogicalExpr struct {
	exprBase
	Op          string
	Left, Right Expr
}

func NewBinaryLogicalExpr(loc source.Location, op string, left, right Expr) *LogicalExpr {
	l := &LogicalExpr{exprBase: exprBase{base: base{loc: loc}}, Op: op, Left: left, Right: right}
	left.SetParent(l)
	right.SetParent(l)
	return l
}

func NewUnaryLogicalExpr(loc source.Location, op string, operand Expr) *LogicalExpr {
	l := &LogicalExpr{exprBase: exprBase{base: base{loc: loc}}, Op: op, Right: operand}
	operand.SetParent(l)
	return l
}

func (l *LogicalExpr) IsUnary() bool { return l.Left == nil }

type AssignExpr struct {
	exprBase
	LHS, RHS Expr
}

func NewAssignExpr(loc source.Location, lhs, rhs Expr) *AssignExpr {
	a := &AssignExpr{exprBase: exprBase{base: base{loc: loc}}, LHS: lhs, RHS: rhs}
	lhs.SetParent(a)
	rhs.SetParent(a)
	return a
}

// --- allocation / io --------------------------------------------------

type NewExpr struct {
	exprBase
	ClassName *NamedTypeRef
}

func NewNewExpr(loc source.Location, className *NamedTypeRef) *NewExpr {
	n := &NewExpr{exprBase: exprBase{base: base{loc: loc}}, ClassName: className}
	className.SetParent(n)
	return n
}

type NewArrayExpr struct {
	exprBase
	Size     Expr
	ElemType TypeRef
}

func NewNewArrayExpr(loc source.Location, size Expr, elem TypeRef) *NewArrayExpr {
	n := &NewArrayExpr{exprBase: exprBase{base: base{loc: loc}}, Size: size, ElemType: elem}
	size.SetParent(n)
	elem.SetParent(n)
	return n
}

type ReadIntegerExpr struct{ exprBase }

func NewReadIntegerExpr(loc source.Location) *ReadIntegerExpr {
	return &ReadIntegerExpr{exprBase: exprBase{base: base{loc: loc}}}
}

type ReadLineExpr struct{ exprBase }

func NewReadLineExpr(loc source.Location) *ReadLineExpr {
	return &ReadLineExpr{exprBase: exprBase{base: base{loc: loc}}}
}

// EmptyExpr fills an omitted slot: a for-loop's missing init/step, or a
// bare `return;`'s missing value. Its type is always void.
type EmptyExpr struct{ exprBase }

func NewEmptyExpr(loc source.Location) *EmptyExpr {
	return &EmptyExpr{exprBase: exprBase{base: base{loc: loc}}}
}
