package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/JPK85/patentpack/internal/registry"
	"github.com/JPK85/patentpack/internal/testutil"
)

func TestSeedsFromRegistry_NoCandidatesReturnsNoMatch(t *testing.T) {
	reg := testutil.NewMockRegistrySearcher()
	legal, other, status := seedsFromRegistry(context.Background(), &globalOptions{}, reg, "Acme Corp")

	assert.Empty(t, legal)
	assert.Nil(t, other)
	assert.Equal(t, registry.StatusNoMatch, status)
}

func TestSeedsFromRegistry_ReturnsTopMatchLegalNameAndOtherNames(t *testing.T) {
	reg := testutil.NewMockRegistrySearcher()
	reg.SearchFunc = func(ctx context.Context, name string) []registry.Record {
		return []registry.Record{
			{LEI: "LEI1", LegalName: "Acme Corporation", OtherNames: []string{"Acme Co"}},
		}
	}

	legal, other, status := seedsFromRegistry(context.Background(), &globalOptions{}, reg, "Acme Corporation")

	assert.Equal(t, "Acme Corporation", legal)
	assert.Equal(t, []string{"Acme Co"}, other)
	assert.Equal(t, registry.StatusOK, status)
}

func TestSeedsFromRegistry_AmbiguousStillReturnsFirstMatch(t *testing.T) {
	reg := testutil.NewMockRegistrySearcher()
	reg.SearchFunc = func(ctx context.Context, name string) []registry.Record {
		return []registry.Record{
			{LEI: "LEI1", LegalName: "Acme Robotics Inc"},
			{LEI: "LEI2", LegalName: "ACME ROBOTICS INC"},
		}
	}

	legal, _, status := seedsFromRegistry(context.Background(), &globalOptions{}, reg, "acme robotics inc")
	assert.Equal(t, registry.StatusAmbiguousMulti, status)
	assert.NotEmpty(t, legal)
}
