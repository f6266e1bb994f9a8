// Package orgnorm normalizes and expands organization names across the
// legal-suffix conventions of multiple jurisdictions (Latin, Germanic,
// Romance, Nordic, East Asian), so that USPTO/EPO provider queries and
// legal-entity registry lookups can be built against a consistent set of
// name strings regardless of how a filer happened to spell a designator.
package orgnorm

import "regexp"

var (
	spaceRE           = regexp.MustCompile(`\s+`)
	trailingSlashTagRE = regexp.MustCompile(`(?i)/(?:the|[A-Z]{2})$`)
	adrSuffixRE       = regexp.MustCompile(`(?i)(?:\s*[-,]?\s*(?:adr(?:hedged)?|ads|gdr)(?:\s*\([^)]*\))?\s*)+$`)
	asciiPat          = regexp.MustCompile(`[A-Za-z]`)

	// suffixRE matches the corporate/legal suffix family used for stemming.
	// Ported verbatim from the Python SUFFIX_RE.
	suffixRE = regexp.MustCompile(`(?i)\b(` +
		`incorporated|inc|corp(?:oration)?|co(?:mpany)?|ltd|limited|llc|plc|` +
		`a\.?g\.?|ag|se|s\.?e\.?|` +
		`n\.?v\.?|nv|oy|oyj|oy\.?j\.?|ab|gmbh|kgaa|kg|` +
		`s\.?a\.?|sa|s\.?a\.?s\.?|sas|s\.?a\.?u\.?|` +
		`s\.?l\.?u?\.?|` +
		`s\.?p\.?a\.?|spa|bv|b\.?v\.?|bvba|asa|as|` +
		`pte|pty|aps|a/?s|` +
		`k\.?k\.?|kk|kabushiki\s*kaisha|` +
		`aktiengesellschaft|` +
		`aktiebolag|aktiebolaget|publ|` +
		`societa\s+per\s+azioni|società\s+per\s+azioni|` +
		`societe\s+anonyme|société\s+anonyme` +
		`)\b\.?`)

	// adrPat recognizes the "is this an ADR/ADS/GDR-decorated entity" signal,
	// used both for comparison demotion and for match-quality classification.
	adrPat = regexp.MustCompile(`(?i)\b(adr|ads|gdr)\b|depositar|adrhedged`)

	italianSpaPat     = regexp.MustCompile(`(?i)(s\.?\s*p\.?\s*a\.?|spa)(\.)?\b`)
	italianSpelledPat = regexp.MustCompile(`(?i)societ[aà]\s+per\s+azioni`)
	italianLetterSpaPat = regexp.MustCompile(`(?i)(&\s*)([A-Za-z])(\.?\s+)(s\.?\s*p\.?\s*a\.?|spa)(\.)?\b`)
	spaFullmatchPat   = regexp.MustCompile(`(?i)^(s\.?\s*p\.?\s*a\.?|spa)$`)
	coLtdPat          = regexp.MustCompile(`(?i)\bco\b\.?\s*,?\s*ltd\b\.?`)
	leadingThePat     = regexp.MustCompile(`(?i)^\s*the\s+\S`)
	leadingTheStripPat = regexp.MustCompile(`(?i)^\s*the\s+`)
	trailingDotsPat   = regexp.MustCompile(`\.{2,}\s*$`)
	doubleDotPat      = regexp.MustCompile(`\.{2,}`)

	// keepCharsetRE strips everything except word characters, &, -, /, ., space.
	keepCharsetRE = regexp.MustCompile(`[^\w&\-/. ]+`)

	// singleLetterDotRE/trailingTokenDotRE capture the char that follows the
	// dot (a space or end-of-string) in group 1/2 respectively, since Go's
	// RE2 engine has no zero-width lookahead; callers must re-insert the
	// captured boundary when replacing.
	singleLetterDotRE  = regexp.MustCompile(`\b([a-z])\.(\s|$)`)
	trailingTokenDotRE = regexp.MustCompile(`\.(\s|$)`)
)

// stopwords is the comparison stopword set, kept deliberately tiny.
var stopwords = map[string]struct{}{"the": {}}

// dottingMap maps an undotted short legal-form token to its canonical
// dotted rendering, used to generate both forms as retrieval variants.
var dottingMap = map[string]string{
	"INC":  "Inc.",
	"CORP": "Corp.",
	"CO":   "Co.",
	"PLC":  "P.L.C.",
	"BV":   "B.V.",
	"NV":   "N.V.",
	"SA":   "S.A.",
	"SAS":  "S.A.S.",
	"SAU":  "S.A.U.",
	"SL":   "S.L.",
	"SLU":  "S.L.U.",
	"SRL":  "S.r.l.",
	"SRO":  "S.r.o.",
	"OY":   "O.Y.",
	"OYJ":  "O.Y.J.",
	"AS":   "A.S.",
	"ASA":  "A.S.A.",
	"SE":   "S.E.",
	"KK":   "K.K.",
	"GMBH": "G.m.b.H.",
}

// dottingMapKeys preserves Python dict insertion order for deterministic
// variant-generation output.
var dottingMapKeys = []string{
	"INC", "CORP", "CO", "PLC",
	"BV", "NV",
	"SA", "SAS", "SAU", "SL", "SLU",
	"SRL", "SRO",
	"OY", "OYJ",
	"AS", "ASA",
	"SE", "KK", "GMBH",
}

// suffixToFull maps a short suffix token to its fully spelled legal form.
var suffixToFull = map[string]string{
	"ag":     "Aktiengesellschaft",
	"ab":     "Aktiebolag",
	"nv":     "Naamloze Vennootschap",
	"s.p.a.": "Società per Azioni",
	"spa":    "Società per Azioni",
	"sa":     "Société Anonyme",
	"ltd":    "Limited",
	"plc":    "Public Limited Company",
	"co":     "Company",
	"inc":    "Incorporated",
	"llc":    "Limited Liability Company",
	"gmbh":   "Gesellschaft mit beschränkter Haftung",
	"kgaa":   "Kommanditgesellschaft auf Aktien",
	"kg":     "Kommanditgesellschaft",
	"oy":     "Osakeyhtiö",
	"corp":   "Corporation",
}

// suffixCountryHints maps a short legal-suffix token to the 2-letter
// jurisdiction codes it most commonly implies.
var suffixCountryHints = map[string][]string{
	"ag":     {"DE", "AT", "CH"},
	"ab":     {"SE"},
	"nv":     {"NL", "BE"},
	"s.p.a.": {"IT"},
	"spa":    {"IT"},
	"sa":     {"FR", "BE", "LU", "CH", "ES"},
	"oy":     {"FI"},
	"oyj":    {"FI"},
}

// singleTokenSuffixes are corporate-form tokens that, when they are the
// sole trailing token, may be dropped to produce a full-text retrieval
// variant (e.g. "Acme AB" -> "Acme").
var singleTokenSuffixes = map[string]struct{}{
	"ab": {}, "aktiebolag": {}, "aktiebolaget": {},
	"ag": {}, "nv": {}, "bv": {}, "sa": {}, "spa": {},
	"oy": {}, "oyj": {}, "gmbh": {}, "kk": {}, "as": {}, "asa": {},
	"se": {}, "llc": {}, "plc": {}, "inc": {}, "ltd": {}, "kgaa": {},
	"kg": {}, "sas": {}, "srl": {}, "aps": {}, "pte": {}, "pty": {},
}
