package diag

import "github.com/safeng/decaf-sema/internal/source"

// Note attaches a secondary location to a diagnostic (e.g. the earlier
// declaration a DeclConflict collides with).
type Note struct {
	Location source.Location
	Message  string
}

// Diagnostic is one reported violation. spec.md §7: every violation is
// recorded, none are fatal.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Location
	Notes    []Note
}

func New(sev Severity, code Code, primary source.Location, msg string) Diagnostic {
	return Diagnostic{Severity: sev, Code: code, Message: msg, Primary: primary}
}

func NewError(code Code, primary source.Location, msg string) Diagnostic {
	return New(SevError, code, primary, msg)
}

func (d Diagnostic) WithNote(loc source.Location, msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Location: loc, Message: msg})
	return d
}
