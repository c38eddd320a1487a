package check

import (
	"fmt"

	"github.com/safeng/decaf-sema/internal/ast"
	"github.com/safeng/decaf-sema/internal/diag"
	"github.com/safeng/decaf-sema/internal/scope"
	"github.com/safeng/decaf-sema/internal/types"
)

// checkExpr memoizes per-expression checking: once an expression's latch is
// set, its cached computed type is returned without re-walking or
// re-diagnosing (spec.md §9).
func (c *Checker) checkExpr(e ast.Expr, sc *scope.Scope) types.TypeID {
	if e.MarkChecked() {
		return e.Type()
	}
	t := c.computeExprType(e, sc)
	e.SetType(t)
	return t
}

func (c *Checker) computeExprType(e ast.Expr, sc *scope.Scope) types.TypeID {
	b := c.types.Builtins()
	switch expr := e.(type) {
	case *ast.IntLiteral:
		return b.Int
	case *ast.DoubleLiteral:
		return b.Double
	case *ast.BoolLiteral:
		return b.Bool
	case *ast.StringLiteral:
		return b.String
	case *ast.NullLiteral:
		return b.Null
	case *ast.EmptyExpr:
		return b.Void
	case *ast.ReadIntegerExpr:
		return b.Int
	case *ast.ReadLineExpr:
		return b.String
	case *ast.ThisExpr:
		return c.checkThis(expr)
	case *ast.NameExpr:
		return c.checkNameExpr(expr, sc)
	case *ast.FieldAccessExpr:
		return c.checkFieldAccess(expr, sc)
	case *ast.CallExpr:
		return c.checkCall(expr, sc)
	case *ast.ArrayAccessExpr:
		return c.checkArrayAccess(expr, sc)
	case *ast.ArithmeticExpr:
		return c.checkArithmetic(expr, sc)
	case *ast.RelationalExpr:
		return c.checkRelational(expr, sc)
	case *ast.EqualityExpr:
		return c.checkEquality(expr, sc)
	case *ast.LogicalExpr:
		return c.checkLogical(expr, sc)
	case *ast.AssignExpr:
		return c.checkAssign(expr, sc)
	case *ast.NewExpr:
		return c.checkNew(expr, sc)
	case *ast.NewArrayExpr:
		return c.checkNewArray(expr, sc)
	default:
		return b.Error
	}
}

func (c *Checker) checkThis(e *ast.ThisExpr) types.TypeID {
	cls := enclosingClass(e)
	if cls == nil {
		c.report(diag.ThisOutsideClassScope, e.Location(), "'this' used outside a class scope").Emit()
		return c.types.Builtins().Error
	}
	return cls.ResolvedType()
}

func (c *Checker) checkNameExpr(e *ast.NameExpr, sc *scope.Scope) types.TypeID {
	entry, ok := c.lookupKind(sc, e.Name.Name, scope.VarEntry)
	if !ok {
		c.report(diag.IdentifierNotDeclared, e.Location(),
			fmt.Sprintf("'%s' is not declared as a %s", e.Name.Name, lookingForVariable)).Emit()
		return c.types.Builtins().Error
	}
	return entry.Decl.(*ast.VarDecl).Type.Resolved()
}

// checkFieldAccess handles both `base.field` and the implicit-this `field`
// form (Base == nil). In both cases the field must be found directly in
// the base class's own merged scope — field access doesn't fall through to
// globals the way an unqualified name reference does (spec.md §4.5).
func (c *Checker) checkFieldAccess(e *ast.FieldAccessExpr, sc *scope.Scope) types.TypeID {
	errT := c.types.Builtins().Error
	var baseType types.TypeID
	if e.Base == nil {
		cls := enclosingClass(e)
		if cls == nil {
			c.report(diag.ThisOutsideClassScope, e.Location(), "'this' used outside a class scope").Emit()
			return errT
		}
		baseType = cls.ResolvedType()
	} else {
		baseType = c.checkExpr(e.Base, sc)
	}
	if baseType == errT {
		return errT
	}
	cd, ok := c.classDeclByType(baseType)
	if !ok {
		c.report(diag.FieldNotFoundInBase, e.Location(),
			fmt.Sprintf("'%s' has no field named '%s'", c.types.String(baseType), e.Field.Name)).Emit()
		return errT
	}
	c.ensureChecked(cd, sc)
	classScope := scope.Of(cd)
	fieldEntry, found := classScope.Lookup(e.Field.Name)
	if !found || fieldEntry.Kind != scope.VarEntry {
		c.report(diag.FieldNotFoundInBase, e.Location(),
			fmt.Sprintf("'%s' has no field named '%s'", c.types.String(baseType), e.Field.Name)).Emit()
		return errT
	}
	encClass := enclosingClass(e)
	if encClass == nil || !c.types.Compatible(encClass.ResolvedType(), baseType) {
		c.report(diag.InaccessibleField, e.Location(),
			fmt.Sprintf("field '%s' is not accessible here", e.Field.Name)).
			WithNote(fieldEntry.Decl.DeclName().Location(), "field declared here").
			Emit()
		return errT
	}
	return fieldEntry.Decl.(*ast.VarDecl).Type.Resolved()
}

// checkCall resolves the callee (an unqualified function/implicit-this
// method, or a dotted base.method()), then checks its argument list
// against the resolved formals (spec.md §4.5).
func (c *Checker) checkCall(e *ast.CallExpr, sc *scope.Scope) types.TypeID {
	errT := c.types.Builtins().Error

	if e.Base == nil {
		fn := c.resolveUnqualifiedCallee(e, sc)
		if fn == nil {
			return errT
		}
		return c.checkCallArgs(e, fn, sc)
	}

	baseType := c.checkExpr(e.Base, sc)
	if baseType == errT {
		for _, a := range e.Args {
			c.checkExpr(a, sc)
		}
		return errT
	}
	if c.types.IsArray(baseType) && e.Method.Name == "length" && len(e.Args) == 0 {
		return c.types.Builtins().Int
	}
	decl := c.declByType(baseType)
	c.ensureChecked(decl, sc)
	var memberScope *scope.Scope
	switch d := decl.(type) {
	case *ast.ClassDecl:
		memberScope = scope.Of(d)
	case *ast.InterfaceDecl:
		memberScope = scope.Of(d)
	}
	if memberScope == nil {
		c.report(diag.FieldNotFoundInBase, e.Location(),
			fmt.Sprintf("'%s' has no method named '%s'", c.types.String(baseType), e.Method.Name)).Emit()
		for _, a := range e.Args {
			c.checkExpr(a, sc)
		}
		return errT
	}
	entry, found := memberScope.Lookup(e.Method.Name)
	if !found || entry.Kind != scope.FnEntry {
		c.report(diag.FieldNotFoundInBase, e.Location(),
			fmt.Sprintf("'%s' has no method named '%s'", c.types.String(baseType), e.Method.Name)).Emit()
		for _, a := range e.Args {
			c.checkExpr(a, sc)
		}
		return errT
	}
	return c.checkCallArgs(e, entry.Decl.(*ast.FnDecl), sc)
}

// resolveUnqualifiedCallee looks for a method on the enclosing class first
// (climbing that class scope's own chain, which already reaches program
// scope), then falls back to the caller's own scope chain — spec.md §4.1's
// "this.m(...) and unqualified m(...) both resolve against the enclosing
// class scope before escalating to globals."
func (c *Checker) resolveUnqualifiedCallee(e *ast.CallExpr, sc *scope.Scope) *ast.FnDecl {
	if cls := enclosingClass(e); cls != nil {
		if classScope := scope.Of(cls); classScope != nil {
			if entry, ok := c.lookupKind(classScope, e.Method.Name, scope.FnEntry); ok {
				return entry.Decl.(*ast.FnDecl)
			}
		}
	}
	entry, ok := c.lookupKind(sc, e.Method.Name, scope.FnEntry)
	if !ok {
		c.report(diag.IdentifierNotDeclared, e.Location(),
			fmt.Sprintf("'%s' is not declared as a %s", e.Method.Name, lookingForFunction)).Emit()
		for _, a := range e.Args {
			c.checkExpr(a, sc)
		}
		return nil
	}
	return entry.Decl.(*ast.FnDecl)
}

func (c *Checker) checkCallArgs(call *ast.CallExpr, fn *ast.FnDecl, sc *scope.Scope) types.TypeID {
	if len(call.Args) != len(fn.Formals) {
		c.report(diag.NumArgsMismatch, call.Location(),
			fmt.Sprintf("'%s' expects %d argument(s), got %d", fn.Name.Name, len(fn.Formals), len(call.Args))).
			WithNote(fn.Location(), "declared here").
			Emit()
		for _, a := range call.Args {
			c.checkExpr(a, sc)
		}
		return fn.ReturnType.Resolved()
	}
	for i, a := range call.Args {
		argType := c.checkExpr(a, sc)
		formalType := fn.Formals[i].Type.Resolved()
		if !c.types.Compatible(argType, formalType) {
			c.report(diag.ArgMismatch, a.Location(),
				fmt.Sprintf("argument %d has type %s, expected %s", i+1, c.types.String(argType), c.types.String(formalType))).Emit()
		}
	}
	return fn.ReturnType.Resolved()
}

func (c *Checker) checkArrayAccess(e *ast.ArrayAccessExpr, sc *scope.Scope) types.TypeID {
	errT := c.types.Builtins().Error
	arrType := c.checkExpr(e.Array, sc)
	idxType := c.checkExpr(e.Index, sc)

	if idxType != errT && idxType != c.types.Builtins().Int {
		c.report(diag.SubscriptNotInteger, e.Index.Location(),
			fmt.Sprintf("array subscript has type %s, expected int", c.types.String(idxType))).Emit()
	}
	if arrType == errT {
		return errT
	}
	if !c.types.IsArray(arrType) {
		c.report(diag.BracketsOnNonArray, e.Array.Location(),
			fmt.Sprintf("'[]' applied to non-array type %s", c.types.String(arrType))).Emit()
		return errT
	}
	return c.types.ArrayElem(arrType)
}

func (c *Checker) checkArithmetic(e *ast.ArithmeticExpr, sc *scope.Scope) types.TypeID {
	errT := c.types.Builtins().Error
	if e.IsUnary() {
		t := c.checkExpr(e.Right, sc)
		if t == errT {
			return errT
		}
		if !c.isNumeric(t) {
			c.report(diag.IncompatibleOperand, e.Location(),
				fmt.Sprintf("unary '%s' requires int or double, got %s", e.Op, c.types.String(t))).Emit()
			return errT
		}
		return t
	}
	lt := c.checkExpr(e.Left, sc)
	rt := c.checkExpr(e.Right, sc)
	if lt == errT || rt == errT {
		return errT
	}
	if !c.isNumeric(lt) || !c.isNumeric(rt) || !c.types.Equivalent(lt, rt) {
		c.report(diag.IncompatibleOperands, e.Location(),
			fmt.Sprintf("'%s' requires matching int or double operands, got %s and %s", e.Op, c.types.String(lt), c.types.String(rt))).Emit()
		return errT
	}
	return lt
}

func (c *Checker) checkRelational(e *ast.RelationalExpr, sc *scope.Scope) types.TypeID {
	lt := c.checkExpr(e.Left, sc)
	rt := c.checkExpr(e.Right, sc)
	b := c.types.Builtins()
	if lt != b.Error && rt != b.Error {
		numericMatch := (lt == b.Int && rt == b.Int) || (lt == b.Double && rt == b.Double)
		if !numericMatch {
			c.report(diag.IncompatibleOperands, e.Location(),
				fmt.Sprintf("'%s' requires matching int or double operands, got %s and %s", e.Op, c.types.String(lt), c.types.String(rt))).Emit()
		}
	}
	return b.Bool
}

func (c *Checker) checkEquality(e *ast.EqualityExpr, sc *scope.Scope) types.TypeID {
	lt := c.checkExpr(e.Left, sc)
	rt := c.checkExpr(e.Right, sc)
	b := c.types.Builtins()
	if lt != b.Error && rt != b.Error {
		if !c.types.Compatible(lt, rt) && !c.types.Compatible(rt, lt) {
			c.report(diag.IncompatibleOperands, e.Location(),
				fmt.Sprintf("'%s' requires comparable operands, got %s and %s", e.Op, c.types.String(lt), c.types.String(rt))).Emit()
		}
	}
	return b.Bool
}

func (c *Checker) checkLogical(e *ast.LogicalExpr, sc *scope.Scope) types.TypeID {
	b := c.types.Builtins()
	if e.IsUnary() {
		t := c.checkExpr(e.Right, sc)
		if t != b.Error && t != b.Bool {
			c.report(diag.IncompatibleOperand, e.Location(),
				fmt.Sprintf("'%s' requires a bool operand, got %s", e.Op, c.types.String(t))).Emit()
		}
		return b.Bool
	}
	lt := c.checkExpr(e.Left, sc)
	rt := c.checkExpr(e.Right, sc)
	if (lt != b.Error && lt != b.Bool) || (rt != b.Error && rt != b.Bool) {
		c.report(diag.IncompatibleOperands, e.Location(),
			fmt.Sprintf("'%s' requires bool operands, got %s and %s", e.Op, c.types.String(lt), c.types.String(rt))).Emit()
	}
	return b.Bool
}

func (c *Checker) checkAssign(e *ast.AssignExpr, sc *scope.Scope) types.TypeID {
	lt := c.checkExpr(e.LHS, sc)
	rt := c.checkExpr(e.RHS, sc)
	errT := c.types.Builtins().Error
	if lt == errT {
		return errT
	}
	if !c.types.Compatible(rt, lt) {
		c.report(diag.IncompatibleOperands, e.Location(),
			fmt.Sprintf("cannot assign %s to %s", c.types.String(rt), c.types.String(lt))).Emit()
		return errT
	}
	return lt
}

func (c *Checker) checkNew(e *ast.NewExpr, sc *scope.Scope) types.TypeID {
	_, cd := c.resolveClassRef(e.ClassName, sc)
	if cd == nil {
		return c.types.Builtins().Error
	}
	return cd.ResolvedType()
}

func (c *Checker) checkNewArray(e *ast.NewArrayExpr, sc *scope.Scope) types.TypeID {
	sizeType := c.checkExpr(e.Size, sc)
	b := c.types.Builtins()
	if sizeType != b.Error && sizeType != b.Int {
		c.report(diag.NewArraySizeNotInteger, e.Size.Location(),
			fmt.Sprintf("array size has type %s, expected int", c.types.String(sizeType))).Emit()
	}
	elem := c.resolveType(e.ElemType, sc)
	return c.types.ArrayOf(elem)
}
