package orgnorm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/JPK85/patentpack/internal/orgnorm"
)

func TestStem_RemovesCorporateSuffix(t *testing.T) {
	assert.Equal(t, "acme", orgnorm.Stem("Acme Inc."))
	assert.Equal(t, "acme", orgnorm.Stem("The Acme Ltd"))
}

func TestCmpStem_StripsADRThenStems(t *testing.T) {
	assert.Equal(t, "samsung electronics", orgnorm.CmpStem("Samsung Electronics Co., Ltd. (ADR)"))
}

func TestIsADRLikeName_ViaStemPackage(t *testing.T) {
	assert.True(t, orgnorm.IsADRLikeName("Foo Bar GDR"))
}
