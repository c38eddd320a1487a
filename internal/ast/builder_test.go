package ast

import (
	"testing"

	"github.com/safeng/decaf-sema/internal/source"
	"github.com/safeng/decaf-sema/internal/types"
)

func newTestBuilder() *Builder {
	strs := source.NewInterner()
	return NewBuilder(strs, types.NewInterner(strs))
}

const sampleFixture = `{
  "decls": [
    {
      "kind": "class",
      "name": "Animal",
      "members": [
        {"kind": "var", "name": "name", "type": {"kind": "string"}},
        {
          "kind": "fn",
          "name": "speak",
          "return_type": {"kind": "void"},
          "body": {"stmts": [
            {"kind": "print", "args": [{"kind": "field", "field": "name"}]}
          ]}
        }
      ]
    },
    {
      "kind": "fn",
      "name": "main",
      "return_type": {"kind": "void"},
      "body": {
        "var_decls": [
          {"kind": "var", "name": "a", "type": {"kind": "named", "name": "Animal"}}
        ],
        "stmts": [
          {"kind": "expr", "x": {
            "kind": "assign",
            "lhs": {"kind": "name", "name": "a"},
            "rhs": {"kind": "new", "class": "Animal"}
          }},
          {"kind": "expr", "x": {
            "kind": "call", "base": {"kind": "name", "name": "a"}, "method": "speak", "args": []
          }}
        ]
      }
    }
  ]
}`

func TestBuilderLoadBuildsProgram(t *testing.T) {
	b := newTestBuilder()
	prog, err := b.Load([]byte(sampleFixture))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(prog.Decls) != 2 {
		t.Fatalf("expected 2 top-level decls, got %d", len(prog.Decls))
	}
	class, ok := prog.Decls[0].(*ClassDecl)
	if !ok {
		t.Fatalf("expected first decl to be a class")
	}
	if class.Name.Name != "Animal" || len(class.Members) != 2 {
		t.Fatalf("unexpected class shape: %+v", class)
	}
	if class.Parent() != prog {
		t.Fatalf("class decl's parent should be the program node")
	}

	fn, ok := prog.Decls[1].(*FnDecl)
	if !ok {
		t.Fatalf("expected second decl to be a fn")
	}
	if fn.Name.Name != "main" || fn.Body == nil {
		t.Fatalf("unexpected fn shape: %+v", fn)
	}
	if len(fn.Body.Stmts) != 2 {
		t.Fatalf("expected 2 statements in main's body, got %d", len(fn.Body.Stmts))
	}
	if fn.Body.Parent() != fn {
		t.Fatalf("body's parent should be the enclosing fn")
	}
}

func TestBuilderRejectsUnknownKind(t *testing.T) {
	b := newTestBuilder()
	_, err := b.Load([]byte(`{"decls":[{"kind":"bogus","name":"x"}]}`))
	if err == nil {
		t.Fatalf("expected an error for an unknown decl kind")
	}
}

func TestBuilderPrimitiveTypeRefsPreResolved(t *testing.T) {
	b := newTestBuilder()
	prog, err := b.Load([]byte(`{"decls":[
		{"kind":"var","name":"x","type":{"kind":"int"}}
	]}`))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	v := prog.Decls[0].(*VarDecl)
	if v.Type.Resolved() != b.types.Builtins().Int {
		t.Fatalf("a primitive type ref should already be resolved by the builder")
	}
}
