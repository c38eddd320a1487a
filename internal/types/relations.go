package types

// Equivalent implements ≡ (spec.md §4.4): identical primitive kind, or both
// named with the same name (which, since classes/interfaces are interned by
// name, means the same TypeID), or both arrays with equivalent elements.
// error is equivalent to everything — it is the universal bottom type used
// to suppress diagnostic storms after an earlier error.
func (in *Interner) Equivalent(a, b TypeID) bool {
	if a == b {
		return true
	}
	if a == in.builtins.Error || b == in.builtins.Error {
		return true
	}
	ta, ok1 := in.Lookup(a)
	tb, ok2 := in.Lookup(b)
	if !ok1 || !ok2 {
		return false
	}
	if ta.Kind != tb.Kind {
		return false
	}
	switch ta.Kind {
	case KindArray:
		return in.Equivalent(ta.Elem, tb.Elem)
	case KindNamed:
		return ta.Name == tb.Name
	default:
		return true // same Kind, no payload to compare
	}
}

// Compatible implements ≤ (spec.md §4.4): "a value of type A may be used
// where B is expected". Reflexive, and additionally:
//   - error is compatible with/as anything, in either direction;
//   - null is compatible with any named type (reference types only);
//   - an array is compatible with B only through ≡, arrays don't subtype;
//   - a named type A is compatible with named B when B is a transitive
//     superclass of A, or a declared (transitively implemented, i.e. any
//     ancestor of A declares it) interface of A;
//   - a class whose extends clause never resolved is
//     treated as compatible with anything — that class already carries its
//     own diagnostic, and this just stops the error from cascading.
func (in *Interner) Compatible(a, b TypeID) bool {
	if in.Equivalent(a, b) {
		return true
	}
	if a == in.builtins.Error || b == in.builtins.Error {
		return true
	}
	ta, ok1 := in.Lookup(a)
	tb, ok2 := in.Lookup(b)
	if !ok1 || !ok2 {
		return false
	}
	if ta.Kind == KindNull && tb.Kind == KindNamed {
		return true
	}
	if ta.Kind == KindNamed && tb.Kind == KindNamed {
		return in.classCompatible(a, b)
	}
	return false
}

// classCompatible walks A's superclass chain, checking at each step for
// equality with B or for B appearing in that class's directly-declared
// interface list — so an interface implemented by a superclass is
// transitively implemented by every subclass (spec.md §4.2/§4.4).
func (in *Interner) classCompatible(a, b TypeID) bool {
	current := a
	seen := map[TypeID]bool{}
	for current != NoTypeID {
		if seen[current] {
			return false // cyclic extends; already diagnosed elsewhere
		}
		seen[current] = true
		info, ok := in.NamedInfo(current)
		if !ok {
			return true // unresolved base: don't cascade errors
		}
		if !info.Resolved {
			return true
		}
		if current == b {
			return true
		}
		for _, iface := range info.Interfaces {
			if iface == b {
				return true
			}
		}
		current = info.Super
	}
	return false
}

// IsNull reports whether id is the null primitive singleton.
func (in *Interner) IsNull(id TypeID) bool {
	tt, ok := in.Lookup(id)
	return ok && tt.Kind == KindNull
}

// IsNamed reports whether id names a class or interface.
func (in *Interner) IsNamed(id TypeID) bool {
	tt, ok := in.Lookup(id)
	return ok && tt.Kind == KindNamed
}

// IsInterface reports whether a Named TypeID was registered as an interface.
func (in *Interner) IsInterface(id TypeID) bool {
	info, ok := in.NamedInfo(id)
	return ok && info.IsInterface
}

// IsArray reports whether id is an array-of type.
func (in *Interner) IsArray(id TypeID) bool {
	tt, ok := in.Lookup(id)
	return ok && tt.Kind == KindArray
}

// ArrayElem returns the element type of an array-of type, or NoTypeID if id
// isn't one.
func (in *Interner) ArrayElem(id TypeID) TypeID {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindArray {
		return NoTypeID
	}
	return tt.Elem
}
