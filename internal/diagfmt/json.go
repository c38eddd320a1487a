package diagfmt

import (
	"encoding/json"
	"io"

	"github.com/safeng/decaf-sema/internal/diag"
)

// LocationJSON is a diagnostic's source span in the JSON output.
type LocationJSON struct {
	File      string `json:"file"`
	StartLine int    `json:"start_line,omitempty"`
	StartCol  int    `json:"start_col,omitempty"`
	EndLine   int    `json:"end_line,omitempty"`
	EndCol    int    `json:"end_col,omitempty"`
}

type NoteJSON struct {
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
}

type DiagnosticJSON struct {
	Severity string       `json:"severity"`
	Code     string       `json:"code"`
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
	Notes    []NoteJSON   `json:"notes,omitempty"`
}

type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
}

func makeLocation(path string, d diag.Diagnostic, includePositions bool) LocationJSON {
	loc := LocationJSON{File: path}
	if includePositions {
		loc.StartLine = d.Primary.StartLine
		loc.StartCol = d.Primary.StartCol
		loc.EndLine = d.Primary.EndLine
		loc.EndCol = d.Primary.EndCol
	}
	return loc
}

// BuildDiagnosticsOutput assembles the JSON-ready structure without
// serializing it, so a driver running many files can merge several before
// writing one combined report.
func BuildDiagnosticsOutput(path string, bag *diag.Bag, opts JSONOpts) DiagnosticsOutput {
	items := bag.Items()
	n := len(items)
	if opts.Max > 0 && opts.Max < n {
		n = opts.Max
	}
	diagnostics := make([]DiagnosticJSON, 0, n)
	for i := 0; i < n; i++ {
		d := items[i]
		dj := DiagnosticJSON{
			Severity: d.Severity.String(),
			Code:     d.Code.String(),
			Message:  d.Message,
			Location: makeLocation(path, d, opts.IncludePositions),
		}
		if opts.IncludeNotes && len(d.Notes) > 0 {
			dj.Notes = make([]NoteJSON, len(d.Notes))
			for j, note := range d.Notes {
				dj.Notes[j] = NoteJSON{
					Message: note.Message,
					Location: LocationJSON{
						File:      path,
						StartLine: note.Location.StartLine,
						StartCol:  note.Location.StartCol,
						EndLine:   note.Location.EndLine,
						EndCol:    note.Location.EndCol,
					},
				}
			}
		}
		diagnostics = append(diagnostics, dj)
	}
	return DiagnosticsOutput{Diagnostics: diagnostics, Count: len(diagnostics)}
}

// JSON writes bag as a single JSON object.
func JSON(w io.Writer, path string, bag *diag.Bag, opts JSONOpts) error {
	output := BuildDiagnosticsOutput(path, bag, opts)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(output)
}
