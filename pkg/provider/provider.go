// Package provider defines the Provider Port: the interface every patent
// data source (USPTO PatentsView, EPO OPS, ...) implements so the rest of
// patentpack never depends on a specific backend.
package provider

// Name identifies a provider implementation for cache keys, logging, and
// CLI selection.
type Name string

const (
	USPTO Name = "uspto"
	EPO   Name = "epo"
)

// Which selects which CPC classification snapshot a count is evaluated
// against: the classification as currently assigned, or as it stood at
// issue date.
type Which string

const (
	CPCCurrent Which = "cpc_current"
	CPCAtIssue Which = "cpc_at_issue"
)

// CountResult is the outcome of a count query, with optional
// provider-specific metadata for auditing (the raw query payload, a
// response snippet, and similar).
type CountResult struct {
	Total int
	Meta  map[string]interface{}
}

// Assignee is one harvested patent assignee record.
type Assignee struct {
	Organization string
	Country      string
	State        string
	City         string
}

// AssigneeList is the result of a prefix discovery query.
type AssigneeList struct {
	Items []Assignee
}

// CountByCPCYearOptions carries the optional parameters of
// CountByCPCYear/CountByCPCCompanyYear so new knobs don't require a
// signature change across every Provider implementation.
type CountByCPCYearOptions struct {
	Which       Which
	UtilityOnly bool
}

// Provider is the unified surface every patent data backend implements.
type Provider interface {
	// SetRPM adjusts the provider's outbound request pacing at runtime.
	SetRPM(rpm int)

	// CountByCPCYear returns how many patents were classified under cpc in
	// the given year.
	CountByCPCYear(year int, cpc string, opts CountByCPCYearOptions) (CountResult, error)

	// CountByCPCCompanyYear narrows CountByCPCYear to patents assigned to
	// company.
	CountByCPCCompanyYear(year int, cpc string, company string, opts CountByCPCYearOptions) (CountResult, error)

	// AssigneeDiscover harvests assignee organizations whose name begins
	// with prefix, up to limit results. Providers that cannot support
	// free-form discovery (EPO OPS search) return a
	// CodeProviderCapabilityUnsupported error.
	AssigneeDiscover(prefix string, limit int) (AssigneeList, error)
}
