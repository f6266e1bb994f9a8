package orgnorm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/JPK85/patentpack/internal/orgnorm"
)

func TestCountryHintsFromName(t *testing.T) {
	assert.Equal(t, []string{"DE", "AT", "CH"}, orgnorm.CountryHintsFromName("Siemens AG"))
	assert.Equal(t, []string{"SE"}, orgnorm.CountryHintsFromName("Ericsson AB"))
	assert.Equal(t, []string{"IT"}, orgnorm.CountryHintsFromName("Pirelli S.p.A."))
}

func TestCountryHintsFromName_NoHint(t *testing.T) {
	assert.Nil(t, orgnorm.CountryHintsFromName("Acme Corporation"))
}

func TestCountryHintsFromName_Empty(t *testing.T) {
	assert.Nil(t, orgnorm.CountryHintsFromName(""))
}
