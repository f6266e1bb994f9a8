package nameplan

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubsidiariesForLEI_FiltersDedupesAndPreservesOrder(t *testing.T) {
	records := []SubsidiaryRecord{
		{ParentLEI: "abc123", SubsidiaryName: "  Acme   Robotics Inc "},
		{ParentLEI: "ABC123", SubsidiaryName: "Acme Robotics Inc"},
		{ParentLEI: "ABC123", SubsidiaryName: "Acme Holdings LLC"},
		{ParentLEI: "XYZ999", SubsidiaryName: "Unrelated Co"},
	}
	got := SubsidiariesForLEI(records, "abc123")
	assert.Equal(t, []string{"Acme Robotics Inc", "Acme Holdings LLC"}, got)
}

func TestSubsidiariesForLEI_EmptyParentLEIReturnsNil(t *testing.T) {
	assert.Nil(t, SubsidiariesForLEI([]SubsidiaryRecord{{ParentLEI: "X", SubsidiaryName: "Y"}}, ""))
}

func TestScoreSubName_LegalFormAndIndustryBoostHoldingPenalty(t *testing.T) {
	assert.Greater(t, ScoreSubName("Acme Semiconductor GmbH", ""), 1.0)
	assert.Less(t, ScoreSubName("Acme Holdings Group", ""), 0.0)
}

func TestScoreSubName_BrandHintBonus(t *testing.T) {
	withHint := ScoreSubName("Acme Robotics Inc", "Acme")
	withoutHint := ScoreSubName("Acme Robotics Inc", "")
	assert.Greater(t, withHint, withoutHint)
}
