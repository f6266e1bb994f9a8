package orgnorm

import (
	"regexp"
	"strings"
)

// transform maps a single candidate string to one or more derived variants.
type transform func(string) []string

// runPipeline applies each transform in turn over the growing set of
// strings, feeding every output of stage N into stage N+1. Order is kept
// stable. runPipeline itself does not deduplicate: each step dedupes only
// its own output for one input string, and the combined list is
// deduplicated at the end of ExpandQueryVariants.
func runPipeline(seeds []string, steps []transform) []string {
	current := seeds
	for _, step := range steps {
		next := make([]string, 0, len(current))
		for _, s := range current {
			next = append(next, step(s)...)
		}
		current = next
	}
	return current
}

func dedupe(vals []string) []string {
	seen := make(map[string]struct{}, len(vals))
	out := make([]string, 0, len(vals))
	for _, v := range vals {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// cleanBaseForVariants removes the trailing "/TAG" and an obvious
// ADR/ADS/GDR tail from the raw name, without otherwise normalizing it —
// variant generation works on the original casing and punctuation.
func cleanBaseForVariants(name string) string {
	s := strings.TrimSpace(name)
	s = trailingSlashTagRE.ReplaceAllString(s, "")
	s = adrSuffixRE.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// maybeTheVariants returns the original string plus a second form with a
// leading "The " added or removed, whichever applies.
func maybeTheVariants(original string) []string {
	s := strings.TrimSpace(original)
	if s == "" {
		return nil
	}
	var out []string
	if leadingThePat.MatchString(s) {
		out = append(out, s, strings.TrimSpace(leadingTheStripPat.ReplaceAllString(s, "")))
	} else {
		out = append(out, s, "The "+s)
	}
	return dedupe(out)
}

func coLtdToCompanyLimited(s string) []string {
	v := coLtdPat.ReplaceAllString(s, "Company Limited")
	if v == s {
		return []string{s}
	}
	return []string{s, v}
}

func emitBothDottedAndUndotted(seed, token, dotted string) []string {
	out := []string{seed}
	dottedOptional := strings.ReplaceAll(regexp.QuoteMeta(dotted), `\.`, `\.?`)
	pat := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(token) + `\b|\b` + dottedOptional + `\b`)
	if pat.MatchString(seed) {
		undotted := pat.ReplaceAllString(seed, token)
		withDots := pat.ReplaceAllString(seed, dotted)
		out = append(out, undotted, withDots)
	}
	uniq := make([]string, 0, len(out))
	seen := make(map[string]struct{}, len(out))
	for _, v := range out {
		vv := doubleDotPat.ReplaceAllString(v, ".")
		if _, ok := seen[vv]; ok {
			continue
		}
		seen[vv] = struct{}{}
		uniq = append(uniq, vv)
	}
	return uniq
}

func ensureDottedAbbrevVariants(s string) []string {
	out := []string{s}
	for _, undotted := range dottingMapKeys {
		out = append(out, emitBothDottedAndUndotted(s, undotted, dottingMap[undotted])...)
	}
	return dedupe(out)
}

func canonicalItalianSpa(s string) []string {
	out := []string{s}

	if italianSpaPat.MatchString(s) || italianSpelledPat.MatchString(s) {
		dotted := italianSpaPat.ReplaceAllString(s, "S.p.A.")
		spelled := italianSpaPat.ReplaceAllString(s, "Società per Azioni")
		out = append(out, dotted, spelled)
	}

	if italianSpelledPat.MatchString(s) {
		out = append(out, italianSpelledPat.ReplaceAllString(s, "S.p.A."))
	}

	if italianLetterSpaPat.MatchString(s) {
		out = append(out, italianLetterSpaPat.ReplaceAllStringFunc(s, func(m string) string {
			sub := italianLetterSpaPat.FindStringSubmatch(m)
			return sub[1] + strings.ToUpper(sub[2]) + ". S.p.A."
		}))
	}

	return dedupe(out)
}

func suffixFullFormVariant(s string) []string {
	out := []string{s}
	toks := strings.Fields(strings.TrimSpace(s))
	if len(toks) == 0 {
		return out
	}
	last := strings.TrimRight(toks[len(toks)-1], ".")
	mapKey := strings.ToLower(last)
	if spaFullmatchPat.MatchString(last) {
		mapKey = "s.p.a."
	}
	if full, ok := suffixToFull[mapKey]; ok {
		out = append(out, strings.Join(append(append([]string{}, toks[:len(toks)-1]...), full), " "))
	}
	return dedupe(out)
}

var nonAlphaRE = regexp.MustCompile(`[^a-z]`)

func swedishABPrefixVariants(s string) []string {
	out := []string{s}
	toks := strings.Fields(strings.TrimSpace(s))
	if len(toks) == 0 {
		return out
	}
	lastKey := nonAlphaRE.ReplaceAllString(strings.ToLower(toks[len(toks)-1]), "")
	switch lastKey {
	case "ab", "a", "aktiebolag", "aktiebolaget":
		base := strings.TrimSpace(strings.Join(toks[:len(toks)-1], " "))
		if base != "" {
			out = append(out, "AB "+base, "Aktiebolaget "+base)
		}
	}
	return dedupe(out)
}

func dropTrailingSingleTokenSuffix(s string) []string {
	out := []string{s}
	toks := strings.Fields(strings.TrimSpace(s))
	if len(toks) == 0 {
		return out
	}
	lastKey := nonAlphaRE.ReplaceAllString(strings.ToLower(toks[len(toks)-1]), "")
	if _, ok := singleTokenSuffixes[lastKey]; ok && len(toks) >= 2 {
		base := strings.TrimSpace(strings.Join(toks[:len(toks)-1], " "))
		if base != "" {
			out = append(out, base)
		}
	}
	return dedupe(out)
}

func sanitizeQueryValue(s string) string {
	x := strings.TrimSpace(s)
	if x == "" {
		return ""
	}
	x = spaceRE.ReplaceAllString(x, " ")
	x = trailingDotsPat.ReplaceAllString(x, ".")
	return strings.TrimSpace(x)
}

// ExpandQueryVariants generates a compact, order-stable set of retrieval
// query variants for name, starting with name itself, then layering:
// ADR/TAG stripping, optional leading-"The" toggling, Co./Ltd. ->
// "Company Limited", Italian S.p.A. family normalization, short-suffix
// full-form spellings, dotted/undotted abbreviation forms, Swedish AB
// prefix forms, and single-token suffix dropping. An empty name yields an
// empty slice.
func ExpandQueryVariants(name string) []string {
	base := cleanBaseForVariants(name)
	var seeds []string
	if base != "" {
		seeds = maybeTheVariants(base)
	}

	steps := []transform{
		coLtdToCompanyLimited,
		canonicalItalianSpa,
		suffixFullFormVariant,
		ensureDottedAbbrevVariants,
		swedishABPrefixVariants,
		dropTrailingSingleTokenSuffix,
	}

	variants := runPipeline(seeds, steps)

	seen := make(map[string]struct{})
	uniq := make([]string, 0, len(variants)+1)
	push := func(v string) {
		cv := sanitizeQueryValue(v)
		if cv == "" {
			return
		}
		if _, ok := seen[cv]; ok {
			return
		}
		seen[cv] = struct{}{}
		uniq = append(uniq, cv)
	}

	push(strings.TrimSpace(name))
	for _, v := range variants {
		push(v)
	}

	return uniq
}
