package orgnorm

import (
	"html"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var combiningMarkRE = regexp.MustCompile(`\p{Mn}`)

// stripAccents folds a string to NFKD and removes combining marks, the Go
// equivalent of Python's unicodedata.normalize("NFKD", s) followed by a
// combining-character filter.
func stripAccents(s string) string {
	decomposed := norm.NFKD.String(s)
	return combiningMarkRE.ReplaceAllString(decomposed, "")
}

var ampersandRE = regexp.MustCompile(`&`)

func ampersandToAnd(s string) string {
	return ampersandRE.ReplaceAllString(s, " and ")
}

// Norm HTML-unescapes, folds diacritics, canonicalizes '&', lowercases,
// strips noise characters, collapses whitespace, and drops a narrow set of
// trailing "/TAG" suffixes (e.g. "/The", "/NY", "/DE" but not "A/B").
// It also collapses single-letter abbreviation dots ("C." -> "C") and
// removes trailing periods from multi-letter tokens ("co." -> "co").
func Norm(s string) string {
	x := strings.TrimSpace(s)

	// Fix doubly-escaped entities like "&amp;amp;" by unescaping up to 4
	// times or until the string stops changing.
	for i := 0; i < 4; i++ {
		next := html.UnescapeString(x)
		if next == x {
			break
		}
		x = next
	}

	x = stripAccents(x)
	x = norm.NFKC.String(x)
	x = ampersandToAnd(x)
	x = strings.ToLower(x)

	x = trailingSlashTagRE.ReplaceAllString(x, "")

	x = keepCharsetRE.ReplaceAllString(x, "")

	x = singleLetterDotRE.ReplaceAllString(x, "$1$2")

	x = trailingTokenDotRE.ReplaceAllString(x, "$1")

	return strings.TrimSpace(spaceRE.ReplaceAllString(x, " "))
}

// StripADRSuffix normalizes s and then removes a trailing ADR/ADS/GDR
// decoration (including "ADRhedged" and parenthetical annotations).
func StripADRSuffix(s string) string {
	x := Norm(s)
	x = adrSuffixRE.ReplaceAllString(x, "")
	return strings.TrimSpace(x)
}

// CmpNorm returns the normalized string used for equality comparisons, with
// any ADR/ADS/GDR suffix removed.
func CmpNorm(s string) string {
	return StripADRSuffix(s)
}

// NameHasASCII reports whether name contains at least one ASCII letter.
func NameHasASCII(name string) bool {
	return asciiPat.MatchString(name)
}

// IsADRLikeName reports whether name carries an ADR/ADS/GDR/depositary
// signal anywhere in the raw (un-normalized) string.
func IsADRLikeName(name string) bool {
	return adrPat.MatchString(name)
}
