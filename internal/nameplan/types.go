// Package nameplan builds ordered, bucketed organization-name variant plans
// that the Name Resolver walks when probing providers and the legal-entity
// registry. A plan always orders seed names before their expansions, and
// groups every variant into one of eight buckets describing its provenance.
package nameplan

// Bucket labels the provenance of a single variant within a plan.
type Bucket string

const (
	BucketOrig        Bucket = "orig"
	BucketGleifLegal  Bucket = "gleif_legal"
	BucketGleifOther  Bucket = "gleif_other"
	BucketGleifSub    Bucket = "gleif_sub"
	BucketExpandOrig  Bucket = "expand_orig"
	BucketExpandLegal Bucket = "expand_legal"
	BucketExpandOther Bucket = "expand_other"
	BucketExpandSub   Bucket = "expand_sub"
)

// Kind distinguishes a seed (an as-supplied or registry-sourced name) from
// an expand (a generated variant of a seed).
type Kind string

const (
	KindSeed   Kind = "seed"
	KindExpand Kind = "expand"
)

// VariantItem is a single ordered entry in a NamePlan.
type VariantItem struct {
	Name   string
	Bucket Bucket
	Kind   Kind
}

// DiscoveryOptions controls whether and how the resolver talks to a
// Provider's discovery capability for a given variant.
type DiscoveryOptions struct {
	RunDiscovery   bool
	RunEq          bool
	LimitDiscovery int
	UtilityOnly    bool
}

// DefaultDiscoveryOptions mirrors the original implementation's defaults.
func DefaultDiscoveryOptions() DiscoveryOptions {
	return DiscoveryOptions{RunDiscovery: true, RunEq: false, LimitDiscovery: 120}
}

// PlanOptions controls how variants are generated and ordered, independent
// of any provider.
type PlanOptions struct {
	IncludeExpansions bool
	// MaxVariants bounds plan length; 0 means uncapped.
	MaxVariants int
}

// DefaultPlanOptions mirrors the original implementation's defaults.
func DefaultPlanOptions() PlanOptions {
	return PlanOptions{IncludeExpansions: true, MaxVariants: 0}
}

// NamePlan is the generated, ordered variant plan, agnostic of any
// resolution outcome.
type NamePlan struct {
	OrderedVariants []VariantItem
	CountsByBucket  map[Bucket]int
}

// NewNamePlan wraps variants into a NamePlan, computing per-bucket counts.
func NewNamePlan(variants []VariantItem) NamePlan {
	plan := NamePlan{OrderedVariants: variants}
	if len(variants) == 0 {
		return plan
	}
	counts := make(map[Bucket]int, 8)
	for _, it := range variants {
		counts[it.Bucket]++
	}
	plan.CountsByBucket = counts
	return plan
}

// Result is the final outcome once discovery/eq has been run against a
// NamePlan.
type Result struct {
	Plan        NamePlan
	Discovery   map[string][]string
	EqCounts    map[string]int
	BestVariant string
	BestBucket  Bucket
	BestTotal   int
	Trace       []map[string]interface{}
}
