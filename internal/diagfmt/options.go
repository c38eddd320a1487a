// Package diagfmt renders a diag.Bag for a human (colorized terminal text)
// or for a tool (JSON). Grounded on the teacher's internal/diagfmt package
// shape; the "span over file content" formatting it does (line-context
// preview, SARIF, fix-edit rendering) has nothing to hang off here — the
// AST input boundary this checker consumes carries line/col only, never
// raw source text (see DESIGN.md) — so this package keeps the position
// and severity/code formatting and drops the preview machinery.
package diagfmt

// PathMode is carried on PrettyOpts, but Pretty does not read it: the path
// is printed exactly as the caller passes it.
type PathMode uint8

const (
	PathModeAuto PathMode = iota
	PathModeAbsolute
	PathModeRelative
	PathModeBasename
)

// PrettyOpts configures Pretty.
type PrettyOpts struct {
	Color     bool
	ShowNotes bool
	PathMode  PathMode
}

// JSONOpts configures JSON.
type JSONOpts struct {
	IncludePositions bool
	IncludeNotes     bool
	Max              int
}
