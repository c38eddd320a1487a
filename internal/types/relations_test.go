package types

import (
	"testing"

	"github.com/safeng/decaf-sema/internal/source"
)

func TestEquivalentPrimitives(t *testing.T) {
	strs := source.NewInterner()
	in := NewInterner(strs)
	b := in.Builtins()
	if !in.Equivalent(b.Int, b.Int) {
		t.Fatalf("int should be equivalent to itself")
	}
	if in.Equivalent(b.Int, b.Bool) {
		t.Fatalf("int should not be equivalent to bool")
	}
}

func TestEquivalentErrorIsUniversal(t *testing.T) {
	strs := source.NewInterner()
	in := NewInterner(strs)
	b := in.Builtins()
	if !in.Equivalent(b.Error, b.Int) || !in.Equivalent(b.Bool, b.Error) {
		t.Fatalf("error must be equivalent to everything, in either direction")
	}
}

func TestEquivalentArrays(t *testing.T) {
	strs := source.NewInterner()
	in := NewInterner(strs)
	b := in.Builtins()
	a1 := in.ArrayOf(b.Int)
	a2 := in.ArrayOf(b.Int)
	a3 := in.ArrayOf(b.String)
	if !in.Equivalent(a1, a2) {
		t.Fatalf("arrays of the same element type should be equivalent")
	}
	if in.Equivalent(a1, a3) {
		t.Fatalf("arrays of different element types should not be equivalent")
	}
}

func TestCompatibleSingleInheritance(t *testing.T) {
	strs := source.NewInterner()
	in := NewInterner(strs)

	animal := in.RegisterNamed(strs.Intern("Animal"), false)
	dog := in.RegisterNamed(strs.Intern("Dog"), false)
	in.SetSuper(dog, animal)
	in.MarkResolved(animal)
	in.MarkResolved(dog)

	if !in.Compatible(dog, animal) {
		t.Fatalf("a Dog should be compatible with Animal")
	}
	if in.Compatible(animal, dog) {
		t.Fatalf("an Animal should not be compatible with Dog")
	}
}

func TestCompatibleInterface(t *testing.T) {
	strs := source.NewInterner()
	in := NewInterner(strs)

	comparable := in.RegisterNamed(strs.Intern("Comparable"), true)
	in.MarkResolved(comparable)

	item := in.RegisterNamed(strs.Intern("Item"), false)
	in.AddInterface(item, comparable)
	in.MarkResolved(item)

	if !in.Compatible(item, comparable) {
		t.Fatalf("a class implementing an interface should be compatible with it")
	}
}

func TestCompatibleUnresolvedBaseIsUniversal(t *testing.T) {
	strs := source.NewInterner()
	in := NewInterner(strs)

	broken := in.RegisterNamed(strs.Intern("Broken"), false)
	// never call MarkResolved(broken) — its extends clause failed to resolve
	unrelated := in.RegisterNamed(strs.Intern("Unrelated"), false)
	in.MarkResolved(unrelated)

	if !in.Compatible(broken, unrelated) {
		t.Fatalf("a class with an unresolved base should be compatible with anything")
	}
}

func TestCompatibleNullWithNamedOnly(t *testing.T) {
	strs := source.NewInterner()
	in := NewInterner(strs)
	b := in.Builtins()

	cls := in.RegisterNamed(strs.Intern("Foo"), false)
	in.MarkResolved(cls)

	if !in.Compatible(b.Null, cls) {
		t.Fatalf("null should be compatible with a named (reference) type")
	}
	if in.Compatible(b.Null, b.Int) {
		t.Fatalf("null should not be compatible with a primitive")
	}
}

func TestIsArrayAndArrayElem(t *testing.T) {
	strs := source.NewInterner()
	in := NewInterner(strs)
	b := in.Builtins()
	arr := in.ArrayOf(b.Double)
	if !in.IsArray(arr) {
		t.Fatalf("expected IsArray to report true for an array type")
	}
	if in.IsArray(b.Double) {
		t.Fatalf("expected IsArray to report false for a non-array type")
	}
	if in.ArrayElem(arr) != b.Double {
		t.Fatalf("expected ArrayElem to return the element type")
	}
}
