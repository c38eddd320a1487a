package ast

import (
	"github.com/safeng/decaf-sema/internal/source"
	"github.com/safeng/decaf-sema/internal/types"
)

// TypeRef is a syntax-level type occurrence: a VarDecl's declared type, a
// FnDecl's return/formal type, or the class name in a NewExpr. It is
// resolved to a semantic types.TypeID once by the checker and the result is
// cached on the node (Resolved/SetResolved) — resolution is idempotent per
// spec.md §9 ("Check as an idempotent, memoized operation").
type TypeRef interface {
	Node
	Resolved() types.TypeID
	SetResolved(types.TypeID)
}

type typeRefBase struct {
	base
	resolved types.TypeID
}

func (t *typeRefBase) Resolved() types.TypeID    { return t.resolved }
func (t *typeRefBase) SetResolved(id types.TypeID) { t.resolved = id }

// PrimitiveTypeRef names one of the seven builtin types. Primitives need no
// resolution pass — the builder seeds Resolved with the singleton TypeID up
// front, matching spec.md §3's "primitive singletons are identity
// comparable and require no scope lookup."
type PrimitiveTypeRef struct{ typeRefBase }

func NewPrimitiveTypeRef(loc source.Location, id types.TypeID) *PrimitiveTypeRef {
	p := &PrimitiveTypeRef{}
	p.loc = loc
	p.resolved = id
	return p
}

// NamedTypeRef names a class or interface by identifier, resolved against
// scope during checking.
type NamedTypeRef struct {
	typeRefBase
	Name *Identifier
}

func NewNamedTypeRef(name *Identifier) *NamedTypeRef {
	n := &NamedTypeRef{Name: name}
	n.loc = name.Location()
	name.SetParent(n)
	return n
}

// ArrayTypeRef wraps an element type reference.
type ArrayTypeRef struct {
	typeRefBase
	Elem TypeRef
}

func NewArrayTypeRef(loc source.Location, elem TypeRef) *ArrayTypeRef {
	a := &ArrayTypeRef{Elem: elem}
	a.loc = loc
	elem.SetParent(a)
	return a
}
