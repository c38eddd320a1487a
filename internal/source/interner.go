package source

import (
	"golang.org/x/text/unicode/norm"
)

// StringID identifies an interned, NFC-normalized name.
type StringID uint32

// NoStringID marks the absence of a name.
const NoStringID StringID = 0

// Interner deduplicates identifier text. Two spellings that normalize to
// the same NFC form intern to the same StringID, so "declared once" checks
// (spec.md §3/§4.1) can't be defeated by combining-character lookalikes.
type Interner struct {
	byID  []string
	index map[string]StringID
}

func NewInterner() *Interner {
	return &Interner{
		byID:  []string{""},
		index: map[string]StringID{"": NoStringID},
	}
}

func (in *Interner) Intern(s string) StringID {
	normalized := norm.NFC.String(s)
	if id, ok := in.index[normalized]; ok {
		return id
	}
	id := StringID(len(in.byID))
	in.byID = append(in.byID, normalized)
	in.index[normalized] = id
	return id
}

func (in *Interner) Lookup(id StringID) (string, bool) {
	if !in.Has(id) {
		return "", false
	}
	return in.byID[id], true
}

func (in *Interner) MustLookup(id StringID) string {
	s, ok := in.Lookup(id)
	if !ok {
		panic("source: invalid StringID")
	}
	return s
}

func (in *Interner) Has(id StringID) bool {
	return int(id) >= 0 && int(id) < len(in.byID)
}

func (in *Interner) Len() int { return len(in.byID) }
