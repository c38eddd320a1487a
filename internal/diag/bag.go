package diag

import "sort"

// Bag accumulates diagnostics for one program's analysis, capacity-limited
// the way the teacher's Bag is, so a pathological program can't make the
// CLI buffer unbounded output.
type Bag struct {
	items []Diagnostic
	max   int
}

// NewBag creates a bag. max <= 0 means unbounded.
func NewBag(max int) *Bag {
	return &Bag{max: max}
}

// Add appends d, respecting the capacity limit. Returns false if d was
// dropped because the bag is full.
func (b *Bag) Add(d Diagnostic) bool {
	if b.max > 0 && len(b.items) >= b.max {
		return false
	}
	b.items = append(b.items, d)
	return true
}

func (b *Bag) HasErrors() bool {
	for _, d := range b.items {
		if d.Severity >= SevError {
			return true
		}
	}
	return false
}

func (b *Bag) Len() int { return len(b.items) }

// Items returns the diagnostics. Callers must not mutate the slice.
func (b *Bag) Items() []Diagnostic { return b.items }

// Sort orders diagnostics by source position (line, then column), then
// severity descending, then code ascending — spec.md §6's "deterministic,
// depth-first source order" emission requirement, expressed as a final
// sort rather than relying on visit order alone, so the result is stable
// regardless of how the checker happened to reach each node.
func (b *Bag) Sort() {
	sort.SliceStable(b.items, func(i, j int) bool {
		di, dj := b.items[i], b.items[j]
		if di.Primary.StartLine != dj.Primary.StartLine {
			return di.Primary.StartLine < dj.Primary.StartLine
		}
		if di.Primary.StartCol != dj.Primary.StartCol {
			return di.Primary.StartCol < dj.Primary.StartCol
		}
		if di.Severity != dj.Severity {
			return di.Severity > dj.Severity
		}
		return di.Code < dj.Code
	})
}
