// Package dedup collapses near-duplicate player names in roster lists using
// edit-distance similarity, a nickname variation table and a name quality
// ranking to pick the label shown for each cluster.
package dedup

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var diacriticFolder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize reduces a raw name to its comparison form: diacritics folded,
// lower-cased, every rune outside a-z and whitespace dropped, whitespace
// collapsed to single spaces and trimmed.
func Normalize(name string) string {
	if name == "" {
		return ""
	}
	folded, _, err := transform.String(diacriticFolder, name)
	if err != nil {
		folded = name
	}
	folded = strings.ToLower(folded)

	var sb strings.Builder
	sb.Grow(len(folded))
	pendingSpace := false
	for _, r := range folded {
		switch {
		case r >= 'a' && r <= 'z':
			if pendingSpace && sb.Len() > 0 {
				sb.WriteByte(' ')
			}
			pendingSpace = false
			sb.WriteRune(r)
		case unicode.IsSpace(r):
			pendingSpace = true
		}
	}
	return sb.String()
}

// Tokens splits a normalized name into its whitespace-separated parts.
func Tokens(normalized string) []string {
	return strings.Fields(normalized)
}
