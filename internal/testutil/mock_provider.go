package testutil

import (
	"context"
	"sync"

	"github.com/JPK85/patentpack/internal/registry"
	"github.com/JPK85/patentpack/pkg/provider"
)

// MockProvider implements provider.Provider and resolver.NameProvider with
// caller-supplied stub functions, recording every call for assertions.
// A stub field left nil makes its method return zero values (nil for
// DiscoverPrefix); the call is still recorded in the matching *Calls slice.
type MockProvider struct {
	mu sync.Mutex

	SetRPMFunc            func(rpm int)
	CountByCPCYearFunc    func(year int, cpc string, opts provider.CountByCPCYearOptions) (provider.CountResult, error)
	CountByCPCCompanyYear func(year int, cpc string, company string, opts provider.CountByCPCYearOptions) (provider.CountResult, error)
	AssigneeDiscoverFunc  func(prefix string, limit int) (provider.AssigneeList, error)
	CountEqFunc           func(name string, year *int) (int, error)
	DiscoverPrefixFunc    func(prefix string, year *int, limit int) ([]string, error)

	RPMCalls              []int
	CountByCPCYearCalls   []CountByCPCYearCall
	AssigneeDiscoverCalls []AssigneeDiscoverCall
	CountEqCalls          []CountEqCall
	DiscoverPrefixCalls   []DiscoverPrefixCall
}

// CountByCPCYearCall records one CountByCPCYear/CountByCPCCompanyYear
// invocation; Company is empty for the non-company variant.
type CountByCPCYearCall struct {
	Year    int
	CPC     string
	Company string
	Opts    provider.CountByCPCYearOptions
}

// AssigneeDiscoverCall records one AssigneeDiscover invocation.
type AssigneeDiscoverCall struct {
	Prefix string
	Limit  int
}

// CountEqCall records one CountEq invocation.
type CountEqCall struct {
	Name string
	Year *int
}

// DiscoverPrefixCall records one DiscoverPrefix invocation.
type DiscoverPrefixCall struct {
	Prefix string
	Year   *int
	Limit  int
}

// NewMockProvider returns a MockProvider whose every stub returns a zero
// value until overridden by the caller.
func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

func (m *MockProvider) record(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	fn()
}

func (m *MockProvider) SetRPM(rpm int) {
	m.record(func() { m.RPMCalls = append(m.RPMCalls, rpm) })
	if m.SetRPMFunc != nil {
		m.SetRPMFunc(rpm)
	}
}

func (m *MockProvider) CountByCPCYear(year int, cpc string, opts provider.CountByCPCYearOptions) (provider.CountResult, error) {
	m.record(func() {
		m.CountByCPCYearCalls = append(m.CountByCPCYearCalls, CountByCPCYearCall{Year: year, CPC: cpc, Opts: opts})
	})
	if m.CountByCPCYearFunc != nil {
		return m.CountByCPCYearFunc(year, cpc, opts)
	}
	return provider.CountResult{}, nil
}

func (m *MockProvider) CountByCPCCompanyYear(year int, cpc string, company string, opts provider.CountByCPCYearOptions) (provider.CountResult, error) {
	m.record(func() {
		m.CountByCPCYearCalls = append(m.CountByCPCYearCalls, CountByCPCYearCall{Year: year, CPC: cpc, Company: company, Opts: opts})
	})
	if m.CountByCPCCompanyYear != nil {
		return m.CountByCPCCompanyYear(year, cpc, company, opts)
	}
	return provider.CountResult{}, nil
}

func (m *MockProvider) AssigneeDiscover(prefix string, limit int) (provider.AssigneeList, error) {
	m.record(func() {
		m.AssigneeDiscoverCalls = append(m.AssigneeDiscoverCalls, AssigneeDiscoverCall{Prefix: prefix, Limit: limit})
	})
	if m.AssigneeDiscoverFunc != nil {
		return m.AssigneeDiscoverFunc(prefix, limit)
	}
	return provider.AssigneeList{}, nil
}

func (m *MockProvider) CountEq(name string, year *int) (int, error) {
	m.record(func() {
		m.CountEqCalls = append(m.CountEqCalls, CountEqCall{Name: name, Year: year})
	})
	if m.CountEqFunc != nil {
		return m.CountEqFunc(name, year)
	}
	return 0, nil
}

func (m *MockProvider) DiscoverPrefix(prefix string, year *int, limit int) ([]string, error) {
	m.record(func() {
		m.DiscoverPrefixCalls = append(m.DiscoverPrefixCalls, DiscoverPrefixCall{Prefix: prefix, Year: year, Limit: limit})
	})
	if m.DiscoverPrefixFunc != nil {
		return m.DiscoverPrefixFunc(prefix, year, limit)
	}
	return nil, nil
}

// MockRegistrySearcher implements registry.Searcher with a caller-supplied
// stub function, recording every query string it is asked to search.
type MockRegistrySearcher struct {
	mu          sync.Mutex
	SearchFunc  func(ctx context.Context, name string) []registry.Record
	SearchCalls []string
}

// NewMockRegistrySearcher returns a MockRegistrySearcher that returns no
// records until SearchFunc is set.
func NewMockRegistrySearcher() *MockRegistrySearcher {
	return &MockRegistrySearcher{}
}

func (m *MockRegistrySearcher) SearchUnion(ctx context.Context, name string) []registry.Record {
	m.mu.Lock()
	m.SearchCalls = append(m.SearchCalls, name)
	m.mu.Unlock()
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, name)
	}
	return nil
}
