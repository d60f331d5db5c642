package dedup

import (
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// StringSimilarity returns 1 - editDistance/maxLen for two strings, in [0, 1].
// Lengths are measured in runes.
func StringSimilarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	la, lb := utf8.RuneCountInString(a), utf8.RuneCountInString(b)
	if la == 0 || lb == 0 {
		// a != b here, so exactly one side is empty.
		return 0.0
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 1.0 - float64(dist)/float64(max(la, lb))
}
