// Package check implements the resolver and type checker: the memoized,
// check-once-latched walk that builds every scope, resolves every name, and
// computes every expression's type (spec.md §4–§5). Grounded on the
// orchestration shape of the teacher's internal/sema package; the rules
// themselves belong to a different type system and are written fresh from
// the specification (see DESIGN.md).
package check

import (
	"github.com/safeng/decaf-sema/internal/ast"
	"github.com/safeng/decaf-sema/internal/diag"
	"github.com/safeng/decaf-sema/internal/source"
	"github.com/safeng/decaf-sema/internal/types"
)

// Checker holds the state threaded through one program's analysis: the
// type interner, the diagnostic sink, and a lookup from a class/interface's
// TypeID back to its declaration (needed for dotted field/method access and
// for the interface-implementation latch).
type Checker struct {
	types    *types.Interner
	strings  *source.Interner
	reporter diag.Reporter

	namedDecls map[types.TypeID]ast.Decl

	// interfaceReported latches the per-(class, interface) "already told
	// you InterfaceNotImplemented" flag (spec.md §4.3).
	interfaceReported map[[2]types.TypeID]bool
}

func NewChecker(interner *types.Interner, strings *source.Interner, reporter diag.Reporter) *Checker {
	return &Checker{
		types:             interner,
		strings:           strings,
		reporter:          reporter,
		namedDecls:        make(map[types.TypeID]ast.Decl),
		interfaceReported: make(map[[2]types.TypeID]bool),
	}
}

// Check runs the full pipeline over one program. Idempotent: calling it
// twice on the same *ast.Program re-walks nothing (spec.md §9).
func (c *Checker) Check(p *ast.Program) {
	c.checkProgram(p)
}

func (c *Checker) report(code diag.Code, loc source.Location, msg string) *diag.ReportBuilder {
	return diag.ReportError(c.reporter, code, loc, msg)
}

func (c *Checker) internName(s string) source.StringID {
	return c.strings.Intern(s)
}
