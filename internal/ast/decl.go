package ast

import (
	"github.com/safeng/decaf-sema/internal/source"
	"github.com/safeng/decaf-sema/internal/types"
)

// Decl is any of the four top-level/member declaration shapes (spec.md §3).
type Decl interface {
	Node
	DeclName() *Identifier
}

// VarDecl declares a variable: a global, a formal, or a local.
type VarDecl struct {
	base
	Name *Identifier
	Type TypeRef
}

func NewVarDecl(loc source.Location, name *Identifier, typ TypeRef) *VarDecl {
	v := &VarDecl{base: base{loc: loc}, Name: name, Type: typ}
	name.SetParent(v)
	typ.SetParent(v)
	return v
}

func (v *VarDecl) DeclName() *Identifier { return v.Name }

// FnDecl declares a function or method. Body is nil for interface members
// (a signature with no implementation).
type FnDecl struct {
	base
	ScopeHolder
	Name       *Identifier
	ReturnType TypeRef
	Formals    []*VarDecl
	Body       *Block

	// IsInterfaceMember marks a signature-only FnDecl living inside an
	// InterfaceDecl, which the checker never descends into a body for.
	IsInterfaceMember bool
}

func NewFnDecl(loc source.Location, name *Identifier, ret TypeRef, formals []*VarDecl, body *Block) *FnDecl {
	f := &FnDecl{base: base{loc: loc}, Name: name, ReturnType: ret, Formals: formals, Body: body}
	name.SetParent(f)
	ret.SetParent(f)
	for _, formal := range formals {
		formal.SetParent(f)
	}
	if body != nil {
		body.SetParent(f)
	}
	return f
}

func (f *FnDecl) DeclName() *Identifier { return f.Name }

// ClassDecl declares a class: an optional superclass, zero or more
// implemented interfaces, and a member list of VarDecl/FnDecl.
type ClassDecl struct {
	base
	ScopeHolder
	Name       *Identifier
	Extends    *NamedTypeRef // nil if none
	Implements []*NamedTypeRef
	Members    []Decl

	resolvedType types.TypeID
}

func NewClassDecl(loc source.Location, name *Identifier, extends *NamedTypeRef, implements []*NamedTypeRef, members []Decl) *ClassDecl {
	c := &ClassDecl{base: base{loc: loc}, Name: name, Extends: extends, Implements: implements, Members: members}
	name.SetParent(c)
	if extends != nil {
		extends.SetParent(c)
	}
	for _, iface := range implements {
		iface.SetParent(c)
	}
	for _, m := range members {
		m.SetParent(c)
	}
	return c
}

func (c *ClassDecl) DeclName() *Identifier  { return c.Name }
func (c *ClassDecl) ResolvedType() types.TypeID { return c.resolvedType }
func (c *ClassDecl) SetResolvedType(id types.TypeID) { c.resolvedType = id }

// InterfaceDecl declares an interface: a flat list of method signatures.
// Interfaces in this language don't extend other interfaces (spec.md §3).
type InterfaceDecl struct {
	base
	ScopeHolder
	Name    *Identifier
	Members []*FnDecl

	resolvedType types.TypeID
}

func NewInterfaceDecl(loc source.Location, name *Identifier, members []*FnDecl) *InterfaceDecl {
	i := &InterfaceDecl{base: base{loc: loc}, Name: name, Members: members}
	name.SetParent(i)
	for _, m := range members {
		m.IsInterfaceMember = true
		m.SetParent(i)
	}
	return i
}

func (i *InterfaceDecl) DeclName() *Identifier      { return i.Name }
func (i *InterfaceDecl) ResolvedType() types.TypeID { return i.resolvedType }
func (i *InterfaceDecl) SetResolvedType(id types.TypeID) { i.resolvedType = id }

// Program is the root node: an ordered list of top-level declarations.
type Program struct {
	base
	ScopeHolder
	Decls []Decl
}

func NewProgram(loc source.Location, decls []Decl) *Program {
	p := &Program{base: base{loc: loc}, Decls: decls}
	for _, d := range decls {
		d.SetParent(p)
	}
	return p
}
