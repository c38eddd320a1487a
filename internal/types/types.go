// Package types models the semantic type values the checker computes and
// compares: the seven primitive singletons, named (class/interface)
// references, and array-of types, plus the ≡ (equivalence) and ≤
// (compatibility) relations spec.md §4.4 defines over them.
package types

import (
	"fmt"

	"fortio.org/safecast"

	"github.com/safeng/decaf-sema/internal/source"
)

// TypeID uniquely identifies a type inside the interner.
type TypeID uint32

// NoTypeID marks the absence of a type (e.g. a TypeRef the checker has not
// resolved yet; a failed resolution is recorded as the error type instead).
const NoTypeID TypeID = 0

// Kind enumerates every shape a type can take.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindInt
	KindDouble
	KindBool
	KindVoid
	KindNull
	KindString
	KindError
	KindNamed
	KindArray
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindDouble:
		return "double"
	case KindBool:
		return "bool"
	case KindVoid:
		return "void"
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindError:
		return "error"
	case KindNamed:
		return "named"
	case KindArray:
		return "array"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Type is a compact descriptor. Named carries the class/interface's
// interned name (used both as the map key and for display); Elem is only
// meaningful for KindArray.
type Type struct {
	Kind Kind
	Elem TypeID
	Name source.StringID
}

// Builtins holds the seven primitive singletons, pre-seeded so the AST
// input boundary can hand out identity-comparable references (spec.md §3:
// "primitive singletons are identity-comparable").
type Builtins struct {
	Int    TypeID
	Double TypeID
	Bool   TypeID
	Void   TypeID
	Null   TypeID
	String TypeID
	Error  TypeID
}

// NamedInfo carries the inheritance-chain data a Named type needs for the
// compatibility relation, populated by the scope builder as extends/
// implements clauses resolve (spec.md §4.2/§4.4). It never references the
// ast package directly — see DESIGN.md — so internal/types stays a leaf.
type NamedInfo struct {
	Name        source.StringID
	IsInterface bool
	Super       TypeID   // NoTypeID if none
	Interfaces  []TypeID // directly declared, not yet flattened
	Resolved    bool     // set once the extends clause (if any) has resolved; stays false if it fails
}

// Interner provides stable TypeIDs for every type value the checker
// produces, mirroring the teacher's hash-interned Type descriptors.
type Interner struct {
	strings  *source.Interner
	types    []Type
	index    map[typeKey]TypeID
	builtins Builtins
	named    map[TypeID]*NamedInfo
	byName   map[source.StringID]TypeID
}

// NewInterner seeds the interner with the seven primitive singletons.
func NewInterner(strings *source.Interner) *Interner {
	in := &Interner{
		strings: strings,
		index:   make(map[typeKey]TypeID, 64),
		named:   make(map[TypeID]*NamedInfo, 16),
		byName:  make(map[source.StringID]TypeID, 16),
	}
	in.types = append(in.types, Type{}) // reserve TypeID 0 == NoTypeID
	in.builtins.Int = in.internRaw(Type{Kind: KindInt})
	in.builtins.Double = in.internRaw(Type{Kind: KindDouble})
	in.builtins.Bool = in.internRaw(Type{Kind: KindBool})
	in.builtins.Void = in.internRaw(Type{Kind: KindVoid})
	in.builtins.Null = in.internRaw(Type{Kind: KindNull})
	in.builtins.String = in.internRaw(Type{Kind: KindString})
	in.builtins.Error = in.internRaw(Type{Kind: KindError})
	return in
}

func (in *Interner) Builtins() Builtins { return in.builtins }

func (in *Interner) Strings() *source.Interner { return in.strings }

// Lookup returns the descriptor for a TypeID.
func (in *Interner) Lookup(id TypeID) (Type, bool) {
	if id == NoTypeID || int(id) >= len(in.types) {
		return Type{}, false
	}
	return in.types[id], true
}

func (in *Interner) MustLookup(id TypeID) Type {
	tt, ok := in.Lookup(id)
	if !ok {
		panic("types: invalid TypeID")
	}
	return tt
}

// ArrayOf interns (or finds) the array-of-elem type.
func (in *Interner) ArrayOf(elem TypeID) TypeID {
	return in.intern(Type{Kind: KindArray, Elem: elem})
}

// NamedByName returns the TypeID already registered for a class/interface
// name, if any. The checker itself resolves NamedType references through
// scope lookup and does not call it.
func (in *Interner) NamedByName(name source.StringID) (TypeID, bool) {
	id, ok := in.byName[name]
	return id, ok
}

// RegisterNamed allocates (or returns the existing) TypeID for a
// class/interface name. Classes are declared once at the top level, so a
// name always maps to the same TypeID for the lifetime of the program.
func (in *Interner) RegisterNamed(name source.StringID, isInterface bool) TypeID {
	if id, ok := in.byName[name]; ok {
		return id
	}
	id := in.internRaw(Type{Kind: KindNamed, Name: name})
	in.named[id] = &NamedInfo{Name: name, IsInterface: isInterface, Super: NoTypeID}
	in.byName[name] = id
	return id
}

// SetSuper records A's direct superclass.
func (in *Interner) SetSuper(id, super TypeID) {
	if info := in.namedInfoByID(id); info != nil {
		info.Super = super
	}
}

// AddInterface records a directly-declared implemented interface.
func (in *Interner) AddInterface(id, iface TypeID) {
	if info := in.namedInfoByID(id); info != nil {
		info.Interfaces = append(info.Interfaces, iface)
	}
}

// MarkResolved flips the resolved bit once the named type's extends clause
// (if any) has resolved; implements clauses do not affect it (spec.md §4.4:
// "a class whose named base is
// unresolved is treated as compatible with anything").
func (in *Interner) MarkResolved(id TypeID) {
	if info := in.namedInfoByID(id); info != nil {
		info.Resolved = true
	}
}

// NamedInfo returns the inheritance metadata for a Named TypeID.
func (in *Interner) NamedInfo(id TypeID) (NamedInfo, bool) {
	info := in.namedInfoByID(id)
	if info == nil {
		return NamedInfo{}, false
	}
	return *info, true
}

// String renders a display name for diagnostics.
func (in *Interner) String(id TypeID) string {
	tt, ok := in.Lookup(id)
	if !ok {
		return "<unknown>"
	}
	switch tt.Kind {
	case KindArray:
		return fmt.Sprintf("%s[]", in.String(tt.Elem))
	case KindNamed:
		if in.strings != nil {
			if s, ok := in.strings.Lookup(tt.Name); ok {
				return s
			}
		}
		return "<named>"
	default:
		return tt.Kind.String()
	}
}

func (in *Interner) intern(t Type) TypeID {
	key := typeKey(t)
	if id, ok := in.index[key]; ok {
		return id
	}
	return in.internRaw(t)
}

func (in *Interner) internRaw(t Type) TypeID {
	n, err := safecast.Conv[uint32](len(in.types))
	if err != nil {
		panic(fmt.Errorf("types: arena overflow: %w", err))
	}
	id := TypeID(n)
	in.types = append(in.types, t)
	in.index[typeKey(t)] = id
	return id
}

func (in *Interner) namedInfoByID(id TypeID) *NamedInfo {
	return in.named[id]
}

type typeKey struct {
	Kind Kind
	Elem TypeID
	Name source.StringID
}
