package dedup

import (
	"regexp"
	"unicode/utf8"
)

var (
	strictSurnameFirst  = regexp.MustCompile(`^[A-Z][a-z]+,\s[A-Z][a-z]+$`)
	partialSurnameFirst = regexp.MustCompile(`^[A-Z][a-z]+,\s[A-Z]`)
	leadingCapital      = regexp.MustCompile(`^[A-Z]`)
	anyDigit            = regexp.MustCompile(`[0-9]`)
	outsideNameCharset  = regexp.MustCompile(`[^A-Za-z\s,]`)
)

// Quality bonuses. Only the relative order of scores matters.
const (
	bonusStrictFormat  = 3.0
	bonusPartialFormat = 2.0
	bonusCapitalized   = 1.0
	bonusNoDigits      = 2.0
	bonusCleanCharset  = 1.0
	weightPerRune      = 0.1
)

// QualityScore ranks how well a raw name is formatted for display. A
// capitalized "Surname, Firstname" free of digits and punctuation scores
// highest; longer names edge out abbreviations.
func QualityScore(name string) float64 {
	score := 0.0
	switch {
	case strictSurnameFirst.MatchString(name):
		score += bonusStrictFormat
	case partialSurnameFirst.MatchString(name):
		score += bonusPartialFormat
	case leadingCapital.MatchString(name):
		score += bonusCapitalized
	}
	if !anyDigit.MatchString(name) {
		score += bonusNoDigits
	}
	if !outsideNameCharset.MatchString(name) {
		score += bonusCleanCharset
	}
	score += float64(utf8.RuneCountInString(name)) * weightPerRune
	return score
}

// BestName returns the highest quality name, keeping the earliest on ties.
// It returns "" for an empty slice.
func BestName(names []string) string {
	best := ""
	bestScore := 0.0
	for i, name := range names {
		s := QualityScore(name)
		if i == 0 || s > bestScore {
			best, bestScore = name, s
		}
	}
	return best
}
