package orgnorm

import "strings"

func stripStopwordTokens(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if t == "" {
			continue
		}
		if _, isStop := stopwords[t]; isStop {
			continue
		}
		out = append(out, t)
	}
	return out
}

// Stem returns the normalized string with common corporate suffixes
// removed, preserving '&'/"and" canonicalization.
func Stem(s string) string {
	x := Norm(s)
	x = suffixRE.ReplaceAllString(x, "")
	x = spaceRE.ReplaceAllString(x, " ")
	x = strings.TrimSpace(x)
	toks := stripStopwordTokens(strings.Fields(x))
	return strings.Join(toks, " ")
}

// CmpStem returns the stemmed (suffix-stripped) string used for
// comparisons: ADR suffix removed, then corporate legal forms trimmed.
func CmpStem(s string) string {
	return Stem(StripADRSuffix(s))
}
