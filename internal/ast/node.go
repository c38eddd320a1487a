// Package ast defines the node taxonomy the checker consumes: a
// parent-linked, checked-once-latched tree built once per program (spec.md
// §3). Parent links are plain back-pointers set by the builder at
// construction time rather than owning references — exactly the "raw
// back-pointer alongside owning child storage on the parent" option spec.md
// §9's Design Notes allows as an alternative to an arena index. The node
// taxonomy here is closed and fully typed (thirty-seven concrete shapes),
// so a direct interface+pointer tree keeps Check() dispatch an ordinary Go
// method set instead of reimplementing the teacher's open-ended item arena
// for a taxonomy that doesn't need it (see DESIGN.md).
package ast

import "github.com/safeng/decaf-sema/internal/source"

// Node is the common capability every tree element exposes: its source
// span, its non-owning parent link, and the checked-once latch spec.md §5
// requires ("sets the latch before invoking the per-node check logic").
type Node interface {
	Location() source.Location
	Parent() Node
	SetParent(Node)
	// MarkChecked sets the latch and reports whether it was already set,
	// atomically — callers use it as: if node.MarkChecked() { return }.
	MarkChecked() (alreadyChecked bool)
}

type base struct {
	loc     source.Location
	parent  Node
	checked bool
}

func (b *base) Location() source.Location { return b.loc }
func (b *base) Parent() Node              { return b.parent }
func (b *base) SetParent(p Node)          { b.parent = p }

func (b *base) MarkChecked() bool {
	already := b.checked
	b.checked = true
	return already
}

// ScopeHolder is embedded by every scope-bearing node (Program, ClassDecl,
// InterfaceDecl, FnDecl, Block). The attached scope is stored behind `any`
// so this package never imports internal/scope (which imports ast) —
// internal/scope exposes a typed accessor, scope.Of(holder).
type ScopeHolder struct {
	attachedScope any
}

func (h *ScopeHolder) AttachedScope() any     { return h.attachedScope }
func (h *ScopeHolder) SetAttachedScope(s any) { h.attachedScope = s }

// Identifier is a bare name occurrence: the name half of a declaration, or
// a name reference inside an expression/type.
type Identifier struct {
	base
	Name string
}

func NewIdentifier(loc source.Location, name string) *Identifier {
	return &Identifier{base: base{loc: loc}, Name: name}
}
