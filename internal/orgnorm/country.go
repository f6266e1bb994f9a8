package orgnorm

import "strings"

// CountryHintsFromName returns the 2-letter jurisdiction codes implied by a
// trailing short legal suffix (e.g. "AG" -> DE/AT/CH). Returns nil when the
// name is empty or its last token carries no recognized suffix.
func CountryHintsFromName(name string) []string {
	n := Norm(name)
	toks := strings.Fields(n)
	if len(toks) == 0 {
		return nil
	}
	last := strings.ReplaceAll(toks[len(toks)-1], ".", "")
	key := strings.ToLower(last)
	if spaFullmatchPat.MatchString(last) {
		key = "s.p.a."
	}
	return suffixCountryHints[key]
}
