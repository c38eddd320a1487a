package diagfmt

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/safeng/decaf-sema/internal/diag"
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	infoColor    = color.New(color.FgCyan)
	codeColor    = color.New(color.FgHiBlack)
	noteColor    = color.New(color.FgBlue)
)

func severityColor(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return errorColor
	case diag.SevWarning:
		return warningColor
	default:
		return infoColor
	}
}

// Pretty writes one line per diagnostic, then its notes indented beneath
// it: "<path>:<span>: <severity> <code>: <message>", where <span> is
// source.Location's String form ("line:col-endcol" on one line,
// "line:col-endline:endcol" otherwise). Call bag.Sort()
// first for the deterministic source order spec.md §6 requires.
func Pretty(w io.Writer, path string, bag *diag.Bag, opts PrettyOpts) {
	items := bag.Items()
	for _, d := range items {
		writeDiagnosticLine(w, path, d, opts)
		if opts.ShowNotes {
			for _, n := range d.Notes {
				writeNoteLine(w, path, n, opts)
			}
		}
	}
}

func writeDiagnosticLine(w io.Writer, path string, d diag.Diagnostic, opts PrettyOpts) {
	sev := d.Severity.String()
	code := d.Code.String()
	if opts.Color {
		sev = severityColor(d.Severity).Sprint(sev)
		code = codeColor.Sprint(code)
	}
	fmt.Fprintf(w, "%s:%s: %s %s: %s\n", path, d.Primary.String(), sev, code, d.Message)
}

func writeNoteLine(w io.Writer, path string, n diag.Note, opts PrettyOpts) {
	label := "note"
	if opts.Color {
		label = noteColor.Sprint(label)
	}
	fmt.Fprintf(w, "  %s:%s: %s: %s\n", path, n.Location.String(), label, n.Message)
}
