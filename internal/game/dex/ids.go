package dex

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ToID normalises a display name into the lookup key used throughout the
// dex: accents folded, lower case, every non-alphanumeric rune removed, so
// "Farfetch'd" becomes "farfetchd" and "Flabébé" becomes "flabebe".
func ToID(name string) string {
	folded, _, err := transform.String(foldAccents(), name)
	if err != nil {
		folded = name
	}
	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range strings.ToLower(folded) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// foldAccents strips combining marks after canonical decomposition. A
// transformer holds state, so each call gets its own.
func foldAccents() transform.Transformer {
	return transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
}

// SpeciesID identifies a species, e.g. "pikachu".
type SpeciesID string

// MoveID identifies a move, e.g. "thunderbolt".
type MoveID string

// NatureID identifies a nature, e.g. "adamant".
type NatureID string
