package testutil_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/JPK85/patentpack/internal/registry"
	"github.com/JPK85/patentpack/internal/resolver"
	"github.com/JPK85/patentpack/internal/testutil"
	"github.com/JPK85/patentpack/pkg/provider"
)

var (
	_ provider.Provider     = (*testutil.MockProvider)(nil)
	_ resolver.NameProvider = (*testutil.MockProvider)(nil)
	_ registry.Searcher     = (*testutil.MockRegistrySearcher)(nil)
)

func TestMockProvider_CountEqRecordsCallsAndReturnsStub(t *testing.T) {
	m := testutil.NewMockProvider()
	m.CountEqFunc = func(name string, year *int) (int, error) {
		assert.Equal(t, "Acme Corp", name)
		return 42, nil
	}

	total, err := m.CountEq("Acme Corp", nil)
	assert.NoError(t, err)
	assert.Equal(t, 42, total)
	assert.Len(t, m.CountEqCalls, 1)
	assert.Equal(t, "Acme Corp", m.CountEqCalls[0].Name)
}

func TestMockProvider_DiscoverPrefixDefaultsToNilWithoutStub(t *testing.T) {
	m := testutil.NewMockProvider()
	got, err := m.DiscoverPrefix("Acme", nil, 10)
	assert.NoError(t, err)
	assert.Nil(t, got)
	assert.Len(t, m.DiscoverPrefixCalls, 1)
}

func TestMockProvider_AssigneeDiscoverRecordsPrefixAndLimit(t *testing.T) {
	m := testutil.NewMockProvider()
	m.AssigneeDiscoverFunc = func(prefix string, limit int) (provider.AssigneeList, error) {
		return provider.AssigneeList{Items: []provider.Assignee{{Organization: prefix + " Inc"}}}, nil
	}

	got, err := m.AssigneeDiscover("Acme", 5)
	assert.NoError(t, err)
	assert.Equal(t, "Acme Inc", got.Items[0].Organization)
	assert.Equal(t, testutil.AssigneeDiscoverCall{Prefix: "Acme", Limit: 5}, m.AssigneeDiscoverCalls[0])
}

func TestMockProvider_CountByCPCYearAndCompanyYearShareCallLog(t *testing.T) {
	m := testutil.NewMockProvider()
	_, _ = m.CountByCPCYear(2020, "H04L", provider.CountByCPCYearOptions{})
	_, _ = m.CountByCPCCompanyYear(2021, "H04L", "Acme", provider.CountByCPCYearOptions{UtilityOnly: true})

	require := assert.New(t)
	require.Len(m.CountByCPCYearCalls, 2)
	require.Equal("", m.CountByCPCYearCalls[0].Company)
	require.Equal("Acme", m.CountByCPCYearCalls[1].Company)
	require.True(m.CountByCPCYearCalls[1].Opts.UtilityOnly)
}

func TestMockProvider_SetRPMIsRecorded(t *testing.T) {
	m := testutil.NewMockProvider()
	m.SetRPM(30)
	m.SetRPM(60)
	assert.Equal(t, []int{30, 60}, m.RPMCalls)
}

func TestMockRegistrySearcher_ReturnsStubbedRecords(t *testing.T) {
	m := testutil.NewMockRegistrySearcher()
	m.SearchFunc = func(ctx context.Context, name string) []registry.Record {
		return []registry.Record{{LEI: "LEI1", LegalName: name}}
	}

	got := m.SearchUnion(context.Background(), "Acme Corp")
	assert.Equal(t, []registry.Record{{LEI: "LEI1", LegalName: "Acme Corp"}}, got)
	assert.Equal(t, []string{"Acme Corp"}, m.SearchCalls)
}

func TestMockRegistrySearcher_DefaultsToNilWithoutStub(t *testing.T) {
	m := testutil.NewMockRegistrySearcher()
	assert.Nil(t, m.SearchUnion(context.Background(), "anything"))
}
