// Package registry queries the GLEIF Legal Entity Identifier (LEI) API as a
// secondary source of canonical legal names and known aliases for an
// organization, and ranks the candidate records it returns against a target
// name.
package registry

import "context"

// Searcher is the narrow surface orchestration code and tests need from a
// registry client. *Client satisfies it; tests substitute a stub.
type Searcher interface {
	SearchUnion(ctx context.Context, name string) []Record
}

// Record is the subset of a GLEIF lei-records JSON:API resource patentpack
// cares about: the identifier, the registered legal name, any other
// registered names, and the headquarters country.
type Record struct {
	LEI        string
	LegalName  string
	OtherNames []string
	HQCountry  string
}

// MatchStatus classifies the outcome of PickTopMatches.
type MatchStatus string

const (
	// StatusOK means exactly one record tied for the top match rule.
	StatusOK MatchStatus = "ok"
	// StatusAmbiguousMulti means more than one record tied for the top rule.
	StatusAmbiguousMulti MatchStatus = "ambiguous_multi"
	// StatusNoMatch means no record matched any rule, including when there
	// were no records at all.
	StatusNoMatch MatchStatus = "no_match"
	// StatusADROnlyCandidates means every candidate was filtered out for
	// looking like an ADR/depositary-receipt entity.
	StatusADROnlyCandidates MatchStatus = "adr_only_candidates"
	// StatusNonLatinOnly means candidates existed but none had an ASCII name,
	// so no meaningful comparison was possible.
	StatusNonLatinOnly MatchStatus = "non_latin_only"
)

// Match is a single ranked result from PickTopMatches.
type Match struct {
	LEI       string
	Legal     string
	HQCountry string
	Rule      string
}

// rulePriority ranks match rules from strongest (4) to weakest (1); a rule
// absent from this map scores 0 and is never selected as a top match.
var rulePriority = map[string]int{
	"exact_norm_legal":   4,
	"exact_norm_other":   3,
	"stem_eq_legal":      3,
	"token_set_eq_legal": 2,
	"token_set_eq_other": 1,
}
