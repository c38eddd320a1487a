// Package scope implements the symbol table: scope-chain declaration and
// lookup (spec.md §4.1), and the primitives the checker uses to build the
// inheritance-merged class scope (spec.md §4.2). Scopes are owned 1:1 by
// the AST node that introduces them and live exactly as long as that node,
// so — unlike the teacher's ScopeID arena, which exists because scopes
// outlive any single owning pointer in a concurrent multi-file build — a
// plain parent pointer is the non-dangling reference here; see DESIGN.md.
package scope

import "github.com/safeng/decaf-sema/internal/ast"

// Kind enumerates the scope categories spec.md §4.1 chains through.
type Kind uint8

const (
	Invalid Kind = iota
	ProgramScope
	ClassScope
	InterfaceScope
	FunctionScope // a function/method's formals
	BlockScope
)

func (k Kind) String() string {
	switch k {
	case ProgramScope:
		return "program"
	case ClassScope:
		return "class"
	case InterfaceScope:
		return "interface"
	case FunctionScope:
		return "function"
	case BlockScope:
		return "block"
	default:
		return "invalid"
	}
}

// EntryKind classifies what a scope entry names.
type EntryKind uint8

const (
	VarEntry EntryKind = iota
	FnEntry
	ClassEntry
	InterfaceEntry
)

// Entry is one declared name visible in a scope.
type Entry struct {
	Name      string
	Kind      EntryKind
	Decl      ast.Decl
	Inherited bool // copied in from a superclass during inheritance merge
}

// Scope is a single lexical level: program globals, a class/interface's
// members, a function's formals, or a block's locals.
type Scope struct {
	Kind   Kind
	Parent *Scope
	Owner  ast.Node

	names map[string]*Entry
	order []*Entry // first-declared-first, for deterministic iteration
}

func New(kind Kind, parent *Scope, owner ast.Node) *Scope {
	return &Scope{Kind: kind, Parent: parent, Owner: owner, names: make(map[string]*Entry)}
}

// Declare inserts name into the scope. If name is already declared in this
// scope (first-declaration-wins, spec.md §3's invariant), Declare reports
// the conflict by returning the pre-existing entry and ok=false; the caller
// emits the DeclConflict diagnostic using both locations.
func (s *Scope) Declare(name string, kind EntryKind, decl ast.Decl) (entry *Entry, conflict *Entry, ok bool) {
	if existing, found := s.names[name]; found {
		return existing, existing, false
	}
	e := &Entry{Name: name, Kind: kind, Decl: decl}
	s.names[name] = e
	s.order = append(s.order, e)
	return e, nil, true
}

// DeclareInherited copies a superclass entry into this scope during
// inheritance merge (spec.md §4.2). A name already present in this scope
// (the subclass's own declaration) silently wins — merge, not conflict.
func (s *Scope) DeclareInherited(name string, kind EntryKind, decl ast.Decl) {
	if _, found := s.names[name]; found {
		return
	}
	e := &Entry{Name: name, Kind: kind, Decl: decl, Inherited: true}
	s.names[name] = e
	s.order = append(s.order, e)
}

// Replace forces name to point at decl regardless of what's already there —
// used when a signature-mismatched override must keep resolving to the
// base class's method "to prevent cascading errors downstream" (spec.md
// §4.2), overriding the usual subclass-wins merge rule for that one name.
func (s *Scope) Replace(name string, kind EntryKind, decl ast.Decl) {
	e := &Entry{Name: name, Kind: kind, Decl: decl, Inherited: true}
	if _, found := s.names[name]; !found {
		s.order = append(s.order, e)
	} else {
		for i, oe := range s.order {
			if oe.Name == name {
				s.order[i] = e
				break
			}
		}
	}
	s.names[name] = e
}

// Lookup searches this scope only.
func (s *Scope) Lookup(name string) (*Entry, bool) {
	e, ok := s.names[name]
	return e, ok
}

// LookupChain climbs from this scope through ancestors, returning the
// first match and the scope it was found in (spec.md §4.1's innermost-wins
// resolution order).
func (s *Scope) LookupChain(name string) (*Entry, *Scope, bool) {
	for cur := s; cur != nil; cur = cur.Parent {
		if e, ok := cur.names[name]; ok {
			return e, cur, true
		}
	}
	return nil, nil, false
}

// Entries returns declared-order entries, own declarations only (no
// ancestor scopes) — used by the interface-implementation check and by
// tests asserting deterministic member order.
func (s *Scope) Entries() []*Entry {
	return s.order
}

// Of retrieves the scope attached to a scope-bearing AST node, or nil if
// none has been attached yet.
func Of(holder interface{ AttachedScope() any }) *Scope {
	v := holder.AttachedScope()
	if v == nil {
		return nil
	}
	sc, _ := v.(*Scope)
	return sc
}

// Attach stores s on the scope-bearing node.
func Attach(holder interface{ SetAttachedScope(any) }, s *Scope) {
	holder.SetAttachedScope(s)
}
