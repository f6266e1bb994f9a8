package orgnorm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/JPK85/patentpack/internal/orgnorm"
)

func TestNorm_Basic(t *testing.T) {
	assert.Equal(t, "pirelli and c spa", orgnorm.Norm("  Pirelli & C SpA  "))
	assert.Equal(t, "c", orgnorm.Norm("C."))
	assert.Equal(t, "a/b", orgnorm.Norm("A/B"))
}

func TestNorm_EmptyString(t *testing.T) {
	assert.Equal(t, "", orgnorm.Norm(""))
}

func TestNorm_DoubleEscapedEntities(t *testing.T) {
	assert.Equal(t, "acme and co", orgnorm.Norm("Acme &amp;amp; Co"))
}

func TestCmpNorm_StripsADR(t *testing.T) {
	assert.Equal(t, "samsung electronics co ltd", orgnorm.CmpNorm("SAMSUNG ELECTRONICS CO., LTD. (ADR)"))
}

func TestNameHasASCII(t *testing.T) {
	assert.True(t, orgnorm.NameHasASCII("株式会社ソニー SONY"))
	assert.False(t, orgnorm.NameHasASCII("株式会社ソニー"))
}

func TestIsADRLikeName(t *testing.T) {
	assert.True(t, orgnorm.IsADRLikeName("Samsung Electronics (ADR)"))
	assert.True(t, orgnorm.IsADRLikeName("Foo ADRhedged"))
	assert.False(t, orgnorm.IsADRLikeName("Samsung Electronics Co Ltd"))
}
