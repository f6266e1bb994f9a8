package resolver

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/JPK85/patentpack/internal/logging"
	"github.com/JPK85/patentpack/internal/nameplan"
	"github.com/JPK85/patentpack/internal/probecache"
	"github.com/JPK85/patentpack/pkg/errors"
)

// Item is one value pulled off a Resolve channel: either a NameEvent or a
// terminal error. Once Err is non-nil the channel is closed and no further
// events follow, mirroring an uncaught exception propagating out of the
// original generator.
type Item struct {
	Event NameEvent
	Err   error
}

// NameResolver drives a NameProvider through a candidate plan, recording
// every eq/discovery outcome in a probe cache so repeated resolutions of
// the same (provider, year, name) never re-issue a probe that is already
// known to have had hits. A probe recorded as having no hits is issued
// again.
type NameResolver struct {
	provider      NameProvider
	cache         *cacheAdapter
	providerLabel string
	log           logging.Logger
}

// NewNameResolver builds a resolver for provider, keyed in the cache under
// providerLabel. A nil cache is replaced by an in-memory cache, so probes
// are memoized only for the life of this resolver and nothing is persisted.
func NewNameResolver(provider NameProvider, cache *probecache.Cache, providerLabel string) *NameResolver {
	if providerLabel == "" {
		providerLabel = "provider"
	}
	return &NameResolver{
		provider:      provider,
		cache:         newCacheAdapter(cache),
		providerLabel: providerLabel,
		log:           logging.NewNopLogger(),
	}
}

// WithLogger attaches a logger used for debug-mode tracing.
func (r *NameResolver) WithLogger(l logging.Logger) *NameResolver {
	if l != nil {
		r.log = l
	}
	return r
}

// Resolve streams every eq attempt and discovery call the chosen strategy
// makes while walking candidates. The returned channel is closed once the
// strategy completes, ctx is cancelled, or a provider call errors — in the
// error case the final Item carries Err and no further items follow.
func (r *NameResolver) Resolve(ctx context.Context, baseQuery string, year *int, candidates []Candidate, cfg ResolveConfig) <-chan Item {
	if cfg.Strategy == "" {
		cfg.Strategy = StrategyEqThenDiscovery
	}
	if cfg.DiscoveryLimit == 0 {
		cfg.DiscoveryLimit = 120
	}

	ch := make(chan Item)
	traceID := uuid.NewString()

	go func() {
		defer close(ch)

		if cfg.Debug {
			r.log.Debug("resolve trace started", logging.String("trace_id", traceID), logging.String("base_query", baseQuery))
			r.printPlan(year, candidates)
		}

		run := func(ctx context.Context, s *stream) error {
			switch cfg.Strategy {
			case StrategyEqThenDiscovery:
				return r.resolveEqThenDiscovery(ctx, s, baseQuery, year, candidates, cfg)
			case StrategyDiscoveryFirstForSeeds:
				return r.resolveDiscoveryFirstForSeeds(ctx, s, baseQuery, year, candidates, cfg)
			default:
				return errors.InvalidParam(fmt.Sprintf("resolver: unknown strategy %q", cfg.Strategy))
			}
		}

		s := &stream{ctx: ctx, ch: ch, traceID: traceID}
		if err := run(ctx, s); err != nil {
			select {
			case ch <- Item{Err: err}:
			case <-ctx.Done():
			}
		}
	}()

	return ch
}

// stream is the send-or-stop-on-cancel helper shared by both strategies.
type stream struct {
	ctx     context.Context
	ch      chan<- Item
	traceID string
}

// emit returns false once ctx is done, signalling the caller to unwind.
func (s *stream) emit(ev NameEvent) bool {
	select {
	case s.ch <- Item{Event: ev}:
		return true
	case <-s.ctx.Done():
		return false
	}
}

func (r *NameResolver) printPlan(year *int, candidates []Candidate) {
	prio := make(map[nameplan.Bucket]int, len(AllBuckets))
	for i, b := range AllBuckets {
		prio[b] = i
	}
	ordered := append([]Candidate{}, candidates...)
	sortCandidatesByBucketPriority(ordered, prio)

	r.log.Debug("variants plan", logging.Int("variant_count", len(candidates)), logging.Any("year", year))
	for _, c := range ordered {
		r.log.Debug("  queued variant", logging.String("bucket", string(c.Bucket)), logging.String("variant", c.Variant))
	}
}

func sortCandidatesByBucketPriority(cs []Candidate, prio map[nameplan.Bucket]int) {
	rank := func(b nameplan.Bucket) int {
		if p, ok := prio[b]; ok {
			return p
		}
		return 999
	}
	for i := 1; i < len(cs); i++ {
		for j := i; j > 0 && rank(cs[j].Bucket) < rank(cs[j-1].Bucket); j-- {
			cs[j], cs[j-1] = cs[j-1], cs[j]
		}
	}
}

func candidatesInBucket(candidates []Candidate, bucket nameplan.Bucket) []string {
	var out []string
	for _, c := range candidates {
		if c.Bucket == bucket {
			out = append(out, c.Variant)
		}
	}
	return out
}

// eqAttempt runs (or reuses a cached) exact-match probe for variant and
// emits the resulting EqAttemptResult. Returns false if the caller should
// stop (context cancelled).
func (r *NameResolver) eqAttempt(s *stream, baseQuery string, year *int, variant string, bucket nameplan.Bucket, cfg ResolveConfig) (bool, error) {
	total, cached := r.cache.getEq(r.providerLabel, year, variant)
	if !cached {
		t, err := r.provider.CountEq(variant, year)
		if err != nil {
			return false, errors.Wrap(err, errors.CodeProviderRemote, "resolver: count_eq failed")
		}
		total = t
		r.cache.putEq(r.providerLabel, year, variant, total)
	}
	if cfg.Debug {
		r.log.Debug("eq attempt", logging.String("variant", variant), logging.String("bucket", string(bucket)), logging.Int("total", total))
	}
	ok := s.emit(EqAttemptResult{
		TraceID:   s.traceID,
		BaseQuery: baseQuery,
		Year:      year,
		Variant:   variant,
		Bucket:    bucket,
		Total:     total,
		Meta:      map[string]interface{}{},
	})
	return ok, nil
}

// discoveryAttempt runs (or reuses a cached) prefix-discovery probe for
// seed, emits the resulting DiscoveryResult, and returns the harvested
// names for the caller to fan out eq attempts over.
func (r *NameResolver) discoveryAttempt(s *stream, baseQuery string, year *int, seed string, bucket nameplan.Bucket, cfg ResolveConfig) ([]string, bool, error) {
	harvested, cached := r.cache.getDiscovery(r.providerLabel, year, seed)
	if !cached {
		h, err := r.provider.DiscoverPrefix(seed, year, cfg.DiscoveryLimit)
		if err != nil {
			return nil, false, errors.Wrap(err, errors.CodeProviderRemote, "resolver: discover_prefix failed")
		}
		harvested = h
		r.cache.putDiscovery(r.providerLabel, year, seed, harvested)
	}
	if cfg.Debug {
		r.log.Debug("discovery attempt", logging.String("seed", seed), logging.String("bucket", string(bucket)), logging.Int("harvested", len(harvested)))
	}
	ok := s.emit(DiscoveryResult{
		TraceID:   s.traceID,
		BaseQuery: baseQuery,
		Year:      year,
		Seed:      seed,
		Bucket:    bucket,
		Harvested: append([]string{}, harvested...),
		Meta:      map[string]interface{}{},
	})
	return harvested, ok, nil
}

// eqOnHarvested runs an eq attempt on every distinct name in harvested, in
// order, skipping duplicates within this one discovery's results.
func (r *NameResolver) eqOnHarvested(s *stream, baseQuery string, year *int, harvested []string, bucket nameplan.Bucket, cfg ResolveConfig) (bool, error) {
	seen := make(map[string]struct{}, len(harvested))
	for _, org := range harvested {
		if _, dup := seen[org]; dup {
			continue
		}
		seen[org] = struct{}{}
		ok, err := r.eqAttempt(s, baseQuery, year, org, bucket, cfg)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

// resolveEqThenDiscovery: exact match on every seed bucket first, then
// discovery across orig/gleif_legal/gleif_other/expand_legal/expand_other/
// expand_orig, firing eq on each harvested org as it's found.
func (r *NameResolver) resolveEqThenDiscovery(ctx context.Context, s *stream, baseQuery string, year *int, candidates []Candidate, cfg ResolveConfig) error {
	for _, bucket := range SeedBuckets {
		for _, c := range candidates {
			if c.Bucket != bucket {
				continue
			}
			ok, err := r.eqAttempt(s, baseQuery, year, c.Variant, c.Bucket, cfg)
			if err != nil {
				return err
			}
			if !ok {
				return nil
			}
		}
	}

	discoveryBuckets := []nameplan.Bucket{
		nameplan.BucketOrig,
		nameplan.BucketGleifLegal,
		nameplan.BucketGleifOther,
		nameplan.BucketExpandLegal,
		nameplan.BucketExpandOther,
		nameplan.BucketExpandOrig,
	}
	for _, bucket := range discoveryBuckets {
		for _, seed := range candidatesInBucket(candidates, bucket) {
			harvested, ok, err := r.discoveryAttempt(s, baseQuery, year, seed, bucket, cfg)
			if err != nil {
				return err
			}
			if !ok {
				return nil
			}
			ok, err = r.eqOnHarvested(s, baseQuery, year, harvested, bucket, cfg)
			if err != nil {
				return err
			}
			if !ok {
				return nil
			}
		}
	}
	return nil
}

// resolveDiscoveryFirstForSeeds: discovery-first for orig/gleif_legal/
// gleif_other seeds (eq on every harvest as it's found), a fallback eq
// pass over any of those seeds whose discovery came back empty, and
// finally discovery (with eq-on-harvest) across the expand_* buckets.
func (r *NameResolver) resolveDiscoveryFirstForSeeds(ctx context.Context, s *stream, baseQuery string, year *int, candidates []Candidate, cfg ResolveConfig) error {
	seedDiscoveryBuckets := []nameplan.Bucket{nameplan.BucketOrig, nameplan.BucketGleifLegal, nameplan.BucketGleifOther}

	for _, bucket := range seedDiscoveryBuckets {
		seeds := candidatesInBucket(candidates, bucket)

		for _, seed := range seeds {
			harvested, ok, err := r.discoveryAttempt(s, baseQuery, year, seed, bucket, cfg)
			if err != nil {
				return err
			}
			if !ok {
				return nil
			}
			ok, err = r.eqOnHarvested(s, baseQuery, year, harvested, bucket, cfg)
			if err != nil {
				return err
			}
			if !ok {
				return nil
			}
		}

		for _, seed := range seeds {
			harvested, hadCache := r.cache.getDiscovery(r.providerLabel, year, seed)
			hadNone := !hadCache || len(harvested) == 0
			if !hadNone {
				continue
			}
			ok, err := r.eqAttempt(s, baseQuery, year, seed, bucket, cfg)
			if err != nil {
				return err
			}
			if !ok {
				return nil
			}
		}
	}

	expandBuckets := []nameplan.Bucket{nameplan.BucketExpandLegal, nameplan.BucketExpandOther, nameplan.BucketExpandOrig}
	for _, bucket := range expandBuckets {
		for _, seed := range candidatesInBucket(candidates, bucket) {
			harvested, ok, err := r.discoveryAttempt(s, baseQuery, year, seed, bucket, cfg)
			if err != nil {
				return err
			}
			if !ok {
				return nil
			}
			ok, err = r.eqOnHarvested(s, baseQuery, year, harvested, bucket, cfg)
			if err != nil {
				return err
			}
			if !ok {
				return nil
			}
		}
	}
	return nil
}
