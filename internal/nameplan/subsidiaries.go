package nameplan

import (
	"strings"
)

// SubsidiaryRecord is one parent-LEI -> subsidiary-name row, the pandas-free
// equivalent of a row in the original's subs_df.
type SubsidiaryRecord struct {
	ParentLEI      string
	SubsidiaryName string
}

// SubsidiariesForLEI returns the deduplicated, whitespace-squashed
// subsidiary names registered under parentLEI, preserving first-seen
// order. Matching on ParentLEI is case-insensitive.
func SubsidiariesForLEI(records []SubsidiaryRecord, parentLEI string) []string {
	key := strings.ToUpper(strings.TrimSpace(parentLEI))
	if key == "" {
		return nil
	}

	seen := make(map[string]struct{})
	var out []string
	for _, rec := range records {
		if strings.ToUpper(strings.TrimSpace(rec.ParentLEI)) != key {
			continue
		}
		v := squashWS(strings.TrimSpace(rec.SubsidiaryName))
		if v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

var subNamePositiveLegalForms = []string{
	"gmbh", "inc", "ltd", "llc", "plc", "co.", "co ", "s.a.", "s.p.a", "k.k.", "kabushiki kaisha",
}

var subNameIndustryHints = []string{
	"manufactur", "technology", "tech", "electronics", "chemical",
	"materials", "optical", "semiconductor", "software", "systems",
}

var subNameHoldingPenalties = []string{
	"holdings", "investment", "capital", "finance", "group", "holdco", "treasury",
}

// ScoreSubName heuristically scores how likely a GLEIF subsidiary name is
// to be an operating-company name worth querying a patent provider with,
// versus a pure holding/financing shell: legal-form and industry-term
// presence push the score up, holding-company vocabulary pushes it down,
// and a case-insensitive brandHint match (when non-empty) adds a bonus.
func ScoreSubName(name, brandHint string) float64 {
	n := strings.ToLower(name)
	var score float64

	if containsAny(n, subNamePositiveLegalForms) {
		score += 1.0
	}
	if containsAny(n, subNameIndustryHints) {
		score += 0.5
	}
	if containsAny(n, subNameHoldingPenalties) {
		score -= 0.75
	}
	if brandHint != "" && strings.Contains(n, strings.ToLower(brandHint)) {
		score += 0.5
	}
	return score
}

func containsAny(s string, substrs []string) bool {
	for _, sub := range substrs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
