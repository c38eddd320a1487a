package ast

import (
	"encoding/json"
	"fmt"

	"github.com/safeng/decaf-sema/internal/source"
	"github.com/safeng/decaf-sema/internal/types"
)

// Builder turns a declarative JSON program description into a real,
// parent-linked Program tree. Full lexing/parsing of concrete syntax is out
// of scope (spec.md §1); this is the "minimal fixture reader" spec.md §6's
// expanded input boundary calls for — fed either by the CLI's `check`
// command or directly by tests that would otherwise hand-build trees with
// the New* constructors one node at a time.
type Builder struct {
	strings *source.Interner
	types   *types.Interner
}

func NewBuilder(strings *source.Interner, typeInterner *types.Interner) *Builder {
	return &Builder{strings: strings, types: typeInterner}
}

// locJSON mirrors source.Location for the fixture format.
type locJSON struct {
	StartLine int `json:"start_line"`
	StartCol  int `json:"start_col"`
	EndLine   int `json:"end_line"`
	EndCol    int `json:"end_col"`
}

func (l locJSON) toLocation() source.Location {
	return source.Location{StartLine: l.StartLine, StartCol: l.StartCol, EndLine: l.EndLine, EndCol: l.EndCol}
}

type programJSON struct {
	Loc   locJSON    `json:"loc"`
	Decls []declJSON `json:"decls"`
}

type declJSON struct {
	Kind       string       `json:"kind"` // "var" | "fn" | "class" | "interface"
	Loc        locJSON      `json:"loc"`
	Name       string       `json:"name"`
	Type       *typeRefJSON `json:"type,omitempty"`
	ReturnType *typeRefJSON `json:"return_type,omitempty"`
	Formals    []declJSON   `json:"formals,omitempty"`
	Body       *blockJSON   `json:"body,omitempty"`
	Extends    *string      `json:"extends,omitempty"`
	Implements []string     `json:"implements,omitempty"`
	Members    []declJSON   `json:"members,omitempty"`
}

type typeRefJSON struct {
	Kind string       `json:"kind"` // "int"|"double"|"bool"|"string"|"void"|"named"|"array"
	Loc  locJSON      `json:"loc"`
	Name string       `json:"name,omitempty"`
	Elem *typeRefJSON `json:"elem,omitempty"`
}

type blockJSON struct {
	Loc      locJSON    `json:"loc"`
	VarDecls []declJSON `json:"var_decls,omitempty"`
	Stmts    []stmtJSON `json:"stmts"`
}

type stmtJSON struct {
	Kind  string     `json:"kind"`
	Loc   locJSON    `json:"loc"`
	Test  *exprJSON  `json:"test,omitempty"`
	Then  *stmtJSON  `json:"then,omitempty"`
	Else  *stmtJSON  `json:"else,omitempty"`
	Init  *exprJSON  `json:"init,omitempty"`
	Step  *exprJSON  `json:"step,omitempty"`
	Body  *stmtJSON  `json:"body,omitempty"`
	Value *exprJSON  `json:"value,omitempty"`
	Args  []exprJSON `json:"args,omitempty"`
	X     *exprJSON  `json:"x,omitempty"`
	Block *blockJSON `json:"block,omitempty"`
}

type exprJSON struct {
	Kind   string       `json:"kind"`
	Loc    locJSON      `json:"loc"`
	Value  any          `json:"value,omitempty"`
	Name   string       `json:"name,omitempty"`
	Base   *exprJSON    `json:"base,omitempty"`
	Field  string       `json:"field,omitempty"`
	Method string       `json:"method,omitempty"`
	Args   []exprJSON   `json:"args,omitempty"`
	Array  *exprJSON    `json:"array,omitempty"`
	Index  *exprJSON    `json:"index,omitempty"`
	Op     string       `json:"op,omitempty"`
	Left   *exprJSON    `json:"left,omitempty"`
	Right  *exprJSON    `json:"right,omitempty"`
	LHS    *exprJSON    `json:"lhs,omitempty"`
	RHS    *exprJSON    `json:"rhs,omitempty"`
	Class  string       `json:"class,omitempty"`
	Size   *exprJSON    `json:"size,omitempty"`
	Elem   *typeRefJSON `json:"elem,omitempty"`
}

// Load decodes a JSON fixture and builds the corresponding Program tree.
func (b *Builder) Load(data []byte) (*Program, error) {
	var pj programJSON
	if err := json.Unmarshal(data, &pj); err != nil {
		return nil, fmt.Errorf("ast: decode fixture: %w", err)
	}
	decls := make([]Decl, len(pj.Decls))
	for i, dj := range pj.Decls {
		d, err := b.buildDecl(dj)
		if err != nil {
			return nil, err
		}
		decls[i] = d
	}
	return NewProgram(pj.Loc.toLocation(), decls), nil
}

func (b *Builder) ident(loc locJSON, name string) *Identifier {
	return NewIdentifier(loc.toLocation(), name)
}

func (b *Builder) buildDecl(dj declJSON) (Decl, error) {
	switch dj.Kind {
	case "var":
		if dj.Type == nil {
			return nil, fmt.Errorf("ast: var %q missing type", dj.Name)
		}
		typ, err := b.buildTypeRef(*dj.Type)
		if err != nil {
			return nil, err
		}
		return NewVarDecl(dj.Loc.toLocation(), b.ident(dj.Loc, dj.Name), typ), nil

	case "fn":
		if dj.ReturnType == nil {
			return nil, fmt.Errorf("ast: fn %q missing return type", dj.Name)
		}
		ret, err := b.buildTypeRef(*dj.ReturnType)
		if err != nil {
			return nil, err
		}
		formals := make([]*VarDecl, len(dj.Formals))
		for i, fj := range dj.Formals {
			fd, err := b.buildDecl(fj)
			if err != nil {
				return nil, err
			}
			vd, ok := fd.(*VarDecl)
			if !ok {
				return nil, fmt.Errorf("ast: fn %q formal %d is not a var", dj.Name, i)
			}
			formals[i] = vd
		}
		var body *Block
		if dj.Body != nil {
			blk, err := b.buildBlock(*dj.Body)
			if err != nil {
				return nil, err
			}
			body = blk
		}
		return NewFnDecl(dj.Loc.toLocation(), b.ident(dj.Loc, dj.Name), ret, formals, body), nil

	case "class":
		var extends *NamedTypeRef
		if dj.Extends != nil {
			extends = NewNamedTypeRef(b.ident(dj.Loc, *dj.Extends))
		}
		implements := make([]*NamedTypeRef, len(dj.Implements))
		for i, name := range dj.Implements {
			implements[i] = NewNamedTypeRef(b.ident(dj.Loc, name))
		}
		members := make([]Decl, len(dj.Members))
		for i, mj := range dj.Members {
			md, err := b.buildDecl(mj)
			if err != nil {
				return nil, err
			}
			members[i] = md
		}
		return NewClassDecl(dj.Loc.toLocation(), b.ident(dj.Loc, dj.Name), extends, implements, members), nil

	case "interface":
		members := make([]*FnDecl, len(dj.Members))
		for i, mj := range dj.Members {
			md, err := b.buildDecl(mj)
			if err != nil {
				return nil, err
			}
			fn, ok := md.(*FnDecl)
			if !ok {
				return nil, fmt.Errorf("ast: interface %q member %d is not a fn", dj.Name, i)
			}
			members[i] = fn
		}
		return NewInterfaceDecl(dj.Loc.toLocation(), b.ident(dj.Loc, dj.Name), members), nil

	default:
		return nil, fmt.Errorf("ast: unknown decl kind %q", dj.Kind)
	}
}

func (b *Builder) buildTypeRef(tj typeRefJSON) (TypeRef, error) {
	builtins := b.types.Builtins()
	switch tj.Kind {
	case "int":
		return NewPrimitiveTypeRef(tj.Loc.toLocation(), builtins.Int), nil
	case "double":
		return NewPrimitiveTypeRef(tj.Loc.toLocation(), builtins.Double), nil
	case "bool":
		return NewPrimitiveTypeRef(tj.Loc.toLocation(), builtins.Bool), nil
	case "string":
		return NewPrimitiveTypeRef(tj.Loc.toLocation(), builtins.String), nil
	case "void":
		return NewPrimitiveTypeRef(tj.Loc.toLocation(), builtins.Void), nil
	case "named":
		return NewNamedTypeRef(b.ident(tj.Loc, tj.Name)), nil
	case "array":
		if tj.Elem == nil {
			return nil, fmt.Errorf("ast: array type missing elem")
		}
		elem, err := b.buildTypeRef(*tj.Elem)
		if err != nil {
			return nil, err
		}
		return NewArrayTypeRef(tj.Loc.toLocation(), elem), nil
	default:
		return nil, fmt.Errorf("ast: unknown type kind %q", tj.Kind)
	}
}

func (b *Builder) buildBlock(bj blockJSON) (*Block, error) {
	decls := make([]*VarDecl, len(bj.VarDecls))
	for i, dj := range bj.VarDecls {
		d, err := b.buildDecl(dj)
		if err != nil {
			return nil, err
		}
		vd, ok := d.(*VarDecl)
		if !ok {
			return nil, fmt.Errorf("ast: block local %d is not a var", i)
		}
		decls[i] = vd
	}
	stmts := make([]Stmt, len(bj.Stmts))
	for i, sj := range bj.Stmts {
		s, err := b.buildStmt(sj)
		if err != nil {
			return nil, err
		}
		stmts[i] = s
	}
	return NewBlock(bj.Loc.toLocation(), decls, stmts), nil
}

func (b *Builder) buildStmt(sj stmtJSON) (Stmt, error) {
	switch sj.Kind {
	case "block":
		if sj.Block == nil {
			return nil, fmt.Errorf("ast: block stmt missing block")
		}
		return b.buildBlock(*sj.Block)

	case "if":
		test, err := b.buildExpr(*sj.Test)
		if err != nil {
			return nil, err
		}
		then, err := b.buildStmt(*sj.Then)
		if err != nil {
			return nil, err
		}
		var els Stmt
		if sj.Else != nil {
			els, err = b.buildStmt(*sj.Else)
			if err != nil {
				return nil, err
			}
		}
		return NewIfStmt(sj.Loc.toLocation(), test, then, els), nil

	case "while":
		test, err := b.buildExpr(*sj.Test)
		if err != nil {
			return nil, err
		}
		body, err := b.buildStmt(*sj.Body)
		if err != nil {
			return nil, err
		}
		return NewWhileStmt(sj.Loc.toLocation(), test, body), nil

	case "for":
		init, err := b.exprOrEmpty(sj.Init, sj.Loc)
		if err != nil {
			return nil, err
		}
		test, err := b.exprOrEmpty(sj.Test, sj.Loc)
		if err != nil {
			return nil, err
		}
		step, err := b.exprOrEmpty(sj.Step, sj.Loc)
		if err != nil {
			return nil, err
		}
		body, err := b.buildStmt(*sj.Body)
		if err != nil {
			return nil, err
		}
		return NewForStmt(sj.Loc.toLocation(), init, test, step, body), nil

	case "return":
		val, err := b.exprOrEmpty(sj.Value, sj.Loc)
		if err != nil {
			return nil, err
		}
		return NewReturnStmt(sj.Loc.toLocation(), val), nil

	case "break":
		return NewBreakStmt(sj.Loc.toLocation()), nil

	case "print":
		args := make([]Expr, len(sj.Args))
		for i, aj := range sj.Args {
			e, err := b.buildExpr(aj)
			if err != nil {
				return nil, err
			}
			args[i] = e
		}
		return NewPrintStmt(sj.Loc.toLocation(), args), nil

	case "expr":
		x, err := b.buildExpr(*sj.X)
		if err != nil {
			return nil, err
		}
		return NewExprStmt(sj.Loc.toLocation(), x), nil

	default:
		return nil, fmt.Errorf("ast: unknown stmt kind %q", sj.Kind)
	}
}

func (b *Builder) exprOrEmpty(ej *exprJSON, loc locJSON) (Expr, error) {
	if ej == nil {
		return NewEmptyExpr(loc.toLocation()), nil
	}
	return b.buildExpr(*ej)
}

func (b *Builder) buildExpr(ej exprJSON) (Expr, error) {
	switch ej.Kind {
	case "int":
		v, _ := toInt64(ej.Value)
		return NewIntLiteral(ej.Loc.toLocation(), v), nil
	case "double":
		v, _ := toFloat64(ej.Value)
		return NewDoubleLiteral(ej.Loc.toLocation(), v), nil
	case "bool":
		v, _ := ej.Value.(bool)
		return NewBoolLiteral(ej.Loc.toLocation(), v), nil
	case "string":
		v, _ := ej.Value.(string)
		return NewStringLiteral(ej.Loc.toLocation(), v), nil
	case "null":
		return NewNullLiteral(ej.Loc.toLocation()), nil
	case "this":
		return NewThisExpr(ej.Loc.toLocation()), nil
	case "readint":
		return NewReadIntegerExpr(ej.Loc.toLocation()), nil
	case "readline":
		return NewReadLineExpr(ej.Loc.toLocation()), nil
	case "empty":
		return NewEmptyExpr(ej.Loc.toLocation()), nil

	case "name":
		return NewNameExpr(b.ident(ej.Loc, ej.Name)), nil

	case "field":
		var base Expr
		var err error
		if ej.Base != nil {
			base, err = b.buildExpr(*ej.Base)
			if err != nil {
				return nil, err
			}
		}
		return NewFieldAccessExpr(ej.Loc.toLocation(), base, b.ident(ej.Loc, ej.Field)), nil

	case "call":
		var base Expr
		var err error
		if ej.Base != nil {
			base, err = b.buildExpr(*ej.Base)
			if err != nil {
				return nil, err
			}
		}
		args := make([]Expr, len(ej.Args))
		for i, aj := range ej.Args {
			a, err := b.buildExpr(aj)
			if err != nil {
				return nil, err
			}
			args[i] = a
		}
		return NewCallExpr(ej.Loc.toLocation(), base, b.ident(ej.Loc, ej.Method), args), nil

	case "index":
		arr, err := b.buildExpr(*ej.Array)
		if err != nil {
			return nil, err
		}
		idx, err := b.buildExpr(*ej.Index)
		if err != nil {
			return nil, err
		}
		return NewArrayAccessExpr(ej.Loc.toLocation(), arr, idx), nil

	case "arith":
		if ej.Left == nil {
			right, err := b.buildExpr(*ej.Right)
			if err != nil {
				return nil, err
			}
			return NewUnaryArithmeticExpr(ej.Loc.toLocation(), ej.Op, right), nil
		}
		left, right, err := b.buildPair(ej.Left, ej.Right)
		if err != nil {
			return nil, err
		}
		return NewBinaryArithmeticExpr(ej.Loc.toLocation(), ej.Op, left, right), nil

	case "rel":
		left, right, err := b.buildPair(ej.Left, ej.Right)
		if err != nil {
			return nil, err
		}
		return NewRelationalExpr(ej.Loc.toLocation(), ej.Op, left, right), nil

	case "eq":
		left, right, err := b.buildPair(ej.Left, ej.Right)
		if err != nil {
			return nil, err
		}
		return NewEqualityExpr(ej.Loc.toLocation(), ej.Op, left, right), nil

	case "logical":
		if ej.Left == nil {
			right, err := b.buildExpr(*ej.Right)
			if err != nil {
				return nil, err
			}
			return NewUnaryLogicalExpr(ej.Loc.toLocation(), ej.Op, right), nil
		}
		left, right, err := b.buildPair(ej.Left, ej.Right)
		if err != nil {
			return nil, err
		}
		return NewBinaryLogicalExpr(ej.Loc.toLocation(), ej.Op, left, right), nil

	case "assign":
		lhs, err := b.buildExpr(*ej.LHS)
		if err != nil {
			return nil, err
		}
		rhs, err := b.buildExpr(*ej.RHS)
		if err != nil {
			return nil, err
		}
		return NewAssignExpr(ej.Loc.toLocation(), lhs, rhs), nil

	case "new":
		return NewNewExpr(ej.Loc.toLocation(), NewNamedTypeRef(b.ident(ej.Loc, ej.Class))), nil

	case "newarray":
		size, err := b.buildExpr(*ej.Size)
		if err != nil {
			return nil, err
		}
		if ej.Elem == nil {
			return nil, fmt.Errorf("ast: newarray missing elem type")
		}
		elem, err := b.buildTypeRef(*ej.Elem)
		if err != nil {
			return nil, err
		}
		return NewNewArrayExpr(ej.Loc.toLocation(), size, elem), nil

	default:
		return nil, fmt.Errorf("ast: unknown expr kind %q", ej.Kind)
	}
}

func (b *Builder) buildPair(lj, rj *exprJSON) (Expr, Expr, error) {
	left, err := b.buildExpr(*lj)
	if err != nil {
		return nil, nil, err
	}
	right, err := b.buildExpr(*rj)
	if err != nil {
		return nil, nil, err
	}
	return left, right, nil
}

func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case float64:
		return int64(n), true
	case int64:
		return n, true
	default:
		return 0, false
	}
}

func toFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	default:
		return 0, false
	}
}
