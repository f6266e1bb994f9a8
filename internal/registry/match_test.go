package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRuleFor_ExactStemAndOther(t *testing.T) {
	assert.Equal(t, "exact_norm_legal", ruleFor("ACME Inc.", "ACME Inc", nil))
	assert.Equal(t, "exact_norm_other", ruleFor("ACME Group", "ACME Holdings", []string{"ACME Group"}))
	assert.Equal(t, "stem_eq_legal", ruleFor("International Business Machines Corp", "International Business Machines", nil))
	assert.Equal(t, "", ruleFor("ACME Inc.", "Totally Different Co", nil))
}

func TestPickTopMatches_OKWhenUnique(t *testing.T) {
	records := []Record{
		{LEI: "L1", LegalName: "ACME Inc.", OtherNames: []string{"ACME"}},
		{LEI: "L2", LegalName: "Different Co"},
	}
	matches, status, rule := PickTopMatches(records, "ACME Inc.")
	require.Equal(t, StatusOK, status)
	require.Len(t, matches, 1)
	assert.Equal(t, "L1", matches[0].LEI)
	assert.Equal(t, "exact_norm_legal", rule)
}

func TestPickTopMatches_IncAndIncorporatedIsOKOrAmbiguous(t *testing.T) {
	records := []Record{
		{LEI: "L1", LegalName: "ACME Inc.", OtherNames: []string{"ACME"}},
		{LEI: "L2", LegalName: "ACME Incorporated"},
	}
	_, status, _ := PickTopMatches(records, "ACME Inc.")
	assert.Contains(t, []MatchStatus{StatusOK, StatusAmbiguousMulti}, status)
}

func TestPickTopMatches_NoMatch(t *testing.T) {
	records := []Record{{LEI: "L1", LegalName: "Totally Different Co"}}
	matches, status, rule := PickTopMatches(records, "ACME Inc.")
	assert.Equal(t, StatusNoMatch, status)
	assert.Empty(t, matches)
	assert.Empty(t, rule)
}

func TestPickTopMatches_NoCandidatesIsNoMatch(t *testing.T) {
	matches, status, _ := PickTopMatches(nil, "ACME Inc.")
	assert.Equal(t, StatusNoMatch, status)
	assert.Empty(t, matches)
}

func TestPickTopMatches_ADROnlyCandidatesSetAside(t *testing.T) {
	records := []Record{
		{LEI: "L1", LegalName: "ACME Inc. ADR"},
	}
	_, status, _ := PickTopMatches(records, "ACME Inc")
	assert.Contains(t, []MatchStatus{StatusADROnlyCandidates, StatusNoMatch}, status)
}
