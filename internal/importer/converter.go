package importer

import (
	"strings"

	"github.com/cory-johannsen/monbattle/internal/game/dex"
)

// NameToID converts a display name or a kebab-case identifier to a dex id.
//
// Postcondition: result is lowercase, contains only [a-z0-9], and is
// idempotent (NameToID(NameToID(s)) == NameToID(s)).
func NameToID(name string) string {
	return dex.ToID(name)
}

// IdentifierToName turns a kebab-case identifier into a display name:
// "lightning-rod" becomes "Lightning Rod".
func IdentifierToName(identifier string) string {
	words := strings.FieldsFunc(identifier, func(r rune) bool { return r == '-' || r == '_' })
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
