package registry

import (
	"strings"

	"github.com/JPK85/patentpack/internal/orgnorm"
)

func undot(s string) string {
	return strings.ReplaceAll(s, ".", "")
}

func tokenSet(s string) map[string]struct{} {
	out := make(map[string]struct{})
	for _, t := range strings.Fields(orgnorm.CmpStem(s)) {
		out[t] = struct{}{}
	}
	return out
}

func tokenSetsEqual(a, b map[string]struct{}) bool {
	if len(a) == 0 || len(a) != len(b) {
		return false
	}
	for t := range a {
		if _, ok := b[t]; !ok {
			return false
		}
	}
	return true
}

// ruleFor classifies how (or whether) legal/otherNames matches targetName,
// from strongest to weakest: exact comparison-normalized equality on the
// legal name, then on any other name, then stemmed equality on the legal
// name, then token-set equality on the legal name, then on any other name.
// Returns "" when none of the rules fire.
func ruleFor(targetName, legal string, otherNames []string) string {
	tn := orgnorm.CmpNorm(targetName)
	ts := orgnorm.CmpStem(targetName)
	ln := orgnorm.CmpNorm(legal)
	ls := orgnorm.CmpStem(legal)

	tnU, lnU := undot(tn), undot(ln)

	if (ln == tn && ln != "") || (lnU == tnU && lnU != "") {
		return "exact_norm_legal"
	}

	for _, on := range otherNames {
		onN := orgnorm.CmpNorm(on)
		if (onN == tn && tn != "") || (undot(onN) == tnU && tnU != "") {
			return "exact_norm_other"
		}
	}

	if ls == ts && ts != "" {
		return "stem_eq_legal"
	}

	t0 := tokenSet(targetName)
	if len(t0) > 0 && tokenSetsEqual(tokenSet(legal), t0) {
		return "token_set_eq_legal"
	}
	for _, on := range otherNames {
		if len(t0) > 0 && tokenSetsEqual(tokenSet(on), t0) {
			return "token_set_eq_other"
		}
	}

	return ""
}

type candidate struct {
	rule    string
	match   Match
	adrLike bool
}

// PickTopMatches ranks records against targetName and returns the
// top-scoring matches, a status describing the outcome, and the winning
// rule name (empty when status is not StatusOK/StatusAmbiguousMulti).
//
// Records whose legal name or any other name looks ADR/depositary-receipt-like
// are set aside in favor of non-ADR candidates whenever any exist; if every
// matching candidate is ADR-like, the result is StatusADROnlyCandidates
// rather than surfacing an ADR shell as the match.
func PickTopMatches(records []Record, targetName string) ([]Match, MatchStatus, string) {
	hadCandidates := len(records) > 0
	anyADR := false
	anyASCII := false

	var raw []candidate

	for _, rec := range records {
		if rec.LEI == "" {
			continue
		}
		namesForChecks := append([]string{rec.LegalName}, rec.OtherNames...)

		adrLike := false
		for _, n := range namesForChecks {
			if n == "" {
				continue
			}
			if orgnorm.IsADRLikeName(strings.ToLower(n)) {
				adrLike = true
				anyADR = true
			}
			if orgnorm.NameHasASCII(n) {
				anyASCII = true
			}
		}

		rule := ruleFor(targetName, rec.LegalName, rec.OtherNames)
		if rule == "" {
			continue
		}
		raw = append(raw, candidate{
			rule: rule,
			match: Match{
				LEI:       rec.LEI,
				Legal:     rec.LegalName,
				HQCountry: rec.HQCountry,
				Rule:      rule,
			},
			adrLike: adrLike,
		})
	}

	var cands []candidate
	for _, c := range raw {
		if !c.adrLike {
			cands = append(cands, c)
		}
	}

	if len(cands) == 0 {
		if hadCandidates && anyADR {
			return nil, StatusADROnlyCandidates, ""
		}
		if hadCandidates && !anyASCII {
			return nil, StatusNonLatinOnly, ""
		}
		return nil, StatusNoMatch, ""
	}

	topScore := 0
	for _, c := range cands {
		if s := rulePriority[c.rule]; s > topScore {
			topScore = s
		}
	}

	var top []Match
	for _, c := range cands {
		if rulePriority[c.rule] == topScore {
			top = append(top, c.match)
		}
	}

	if len(top) == 1 {
		return top, StatusOK, top[0].Rule
	}
	return top, StatusAmbiguousMulti, top[0].Rule
}
