// Package resolver drives provider-backed name resolution. Given a
// prebuilt, bucketed candidate list (see internal/nameplan), it walks a
// chosen traversal strategy against a NameProvider and streams every eq
// attempt and discovery call it makes as a NameEvent. It makes no
// assumption about what the caller does with the counts — aggregation,
// CPC filtering, and summarization all live upstream of this package.
package resolver

import "github.com/JPK85/patentpack/internal/nameplan"

// SeedBuckets lists the bucket traversal order used for seed-only stages.
var SeedBuckets = []nameplan.Bucket{
	nameplan.BucketOrig,
	nameplan.BucketGleifLegal,
	nameplan.BucketGleifOther,
	nameplan.BucketGleifSub,
}

// ExpandBuckets lists the bucket traversal order used for expansion stages.
var ExpandBuckets = []nameplan.Bucket{
	nameplan.BucketExpandLegal,
	nameplan.BucketExpandOther,
	nameplan.BucketExpandOrig,
	nameplan.BucketExpandSub,
}

// AllBuckets is SeedBuckets followed by ExpandBuckets, the priority order
// used when printing a debug plan.
var AllBuckets = append(append([]nameplan.Bucket{}, SeedBuckets...), ExpandBuckets...)

// Candidate pairs a variant name with the bucket it was generated into.
type Candidate struct {
	Variant string
	Bucket  nameplan.Bucket
}

// NameProvider is the narrow surface the resolver needs from a patent data
// provider: an exact-match count and a prefix-discovery call.
// internal/provider/uspto satisfies this alongside the wider
// pkg/provider.Provider contract; internal/provider/epo does not implement
// it.
type NameProvider interface {
	CountEq(name string, year *int) (int, error)
	DiscoverPrefix(prefix string, year *int, limit int) ([]string, error)
}

// NameEvent is implemented by every event the resolver streams out of
// Resolve: EqAttemptResult and DiscoveryResult.
type NameEvent interface {
	isNameEvent()
}

// EqAttemptResult records one exact-match probe against a single variant.
// TraceID is shared by every event emitted from the same Resolve call, for
// correlating a CLI debug trace or structured log across a single query.
type EqAttemptResult struct {
	TraceID   string
	BaseQuery string
	Year      *int
	Variant   string
	Bucket    nameplan.Bucket
	Total     int
	Meta      map[string]interface{}
}

func (EqAttemptResult) isNameEvent() {}

// DiscoveryResult records one prefix-discovery probe against a single seed.
type DiscoveryResult struct {
	TraceID   string
	BaseQuery string
	Year      *int
	Seed      string
	Bucket    nameplan.Bucket
	Harvested []string
	Meta      map[string]interface{}
}

func (DiscoveryResult) isNameEvent() {}

// ResolveConfig controls a single Resolve call.
type ResolveConfig struct {
	Strategy       string
	DiscoveryLimit int
	Debug          bool
}

// DefaultResolveConfig mirrors the original implementation's defaults.
func DefaultResolveConfig() ResolveConfig {
	return ResolveConfig{Strategy: StrategyEqThenDiscovery, DiscoveryLimit: 120}
}

const (
	StrategyEqThenDiscovery        = "eq_then_discovery"
	StrategyDiscoveryFirstForSeeds = "discovery_first_for_seeds"
)
