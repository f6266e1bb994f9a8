package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/JPK85/patentpack/internal/logging"
	"github.com/JPK85/patentpack/internal/nameplan"
	"github.com/JPK85/patentpack/internal/probecache"
	"github.com/JPK85/patentpack/internal/provider/uspto"
	"github.com/JPK85/patentpack/internal/registry"
	"github.com/JPK85/patentpack/internal/resolver"
	"github.com/JPK85/patentpack/pkg/provider"
)

type resolveOptions struct {
	year           int
	strategy       string
	debug          bool
	discoveryLimit int
	useRegistry    bool
	batchFile      string
	batchWorkers   int
}

func newResolveCmd(g *globalOptions) *cobra.Command {
	ro := &resolveOptions{}

	cmd := &cobra.Command{
		Use:   "resolve [organization name]",
		Short: "Resolve an organization name into USPTO PatentsView-recognized variants",
		Long: "resolve wires the Variant Planner, (optionally) the GLEIF Registry Client,\n" +
			"and the Name Resolver together: it builds a bucketed candidate plan for\n" +
			"the supplied name, walks it against USPTO PatentsView, and prints every\n" +
			"exact-match and discovery probe the resolver made.",
		Args: func(cmd *cobra.Command, args []string) error {
			if ro.batchFile == "" && len(args) != 1 {
				return fmt.Errorf("resolve requires exactly one organization name, or --batch-file for multiple")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if ro.batchFile != "" {
				return runResolveBatch(cmd.Context(), g, ro)
			}
			return runResolveOne(cmd.Context(), g, ro, args[0])
		},
	}

	f := cmd.Flags()
	f.IntVar(&ro.year, "year", 0, "restrict counts to a single year (0 = no year filter)")
	f.StringVar(&ro.strategy, "strategy", "", "resolution strategy (eq_then_discovery, discovery_first_for_seeds); defaults to config")
	f.BoolVar(&ro.debug, "debug", false, "emit the variant plan and every probe as debug logs")
	f.IntVar(&ro.discoveryLimit, "discovery-limit", 120, "max organizations harvested per discovery probe")
	f.BoolVar(&ro.useRegistry, "registry", true, "cross-reference the GLEIF registry for legal/other names before planning")
	f.StringVar(&ro.batchFile, "batch-file", "", "path to a newline-delimited file of organization names to resolve concurrently")
	f.IntVar(&ro.batchWorkers, "batch-workers", 4, "max concurrent resolutions in batch mode")

	return cmd
}

// buildProvider constructs the USPTO provider, the only backend that
// implements resolver.NameProvider (see DESIGN.md's EPO open-question
// entry).
func buildProvider(g *globalOptions) (*uspto.Provider, error) {
	cfg := g.cfg.USPTO
	return uspto.New(uspto.Config{
		BaseURL:             cfg.BaseURL,
		APIKey:              cfg.APIKey,
		RequestsPerMinute:   cfg.RequestsPerMinute,
		Timeout:             cfg.Timeout,
		MaxRetries:          cfg.MaxRetries,
		BackoffBaseInterval: cfg.BackoffBaseInterval,
	}, g.log)
}

func buildRegistryClient(g *globalOptions) *registry.Client {
	cfg := g.cfg.Registry
	return registry.New(registry.Config{
		BaseURL:             cfg.BaseURL,
		Timeout:             cfg.Timeout,
		MaxRetries:          cfg.MaxRetries,
		BackoffBaseInterval: cfg.BackoffBaseInterval,
	}, g.log)
}

// seedsFromRegistry looks up name in GLEIF and returns the legal name,
// other names, and match status to seed the variant plan with, tolerating
// any registry failure by falling back to name-only seeds.
func seedsFromRegistry(ctx context.Context, g *globalOptions, reg registry.Searcher, name string) (legal string, other []string, status registry.MatchStatus) {
	records := reg.SearchUnion(ctx, name)
	if len(records) == 0 {
		return "", nil, registry.StatusNoMatch
	}
	matches, st, _ := registry.PickTopMatches(records, name)
	if len(matches) == 0 {
		return "", nil, st
	}
	top := matches[0]
	for _, r := range records {
		if r.LEI == top.LEI {
			return r.LegalName, r.OtherNames, st
		}
	}
	return top.Legal, nil, st
}

func runResolveOne(ctx context.Context, g *globalOptions, ro *resolveOptions, name string) error {
	p, err := buildProvider(g)
	if err != nil {
		return err
	}

	var legal string
	var other []string
	if ro.useRegistry {
		reg := buildRegistryClient(g)
		legal, other, _ = seedsFromRegistry(ctx, g, reg, name)
	}

	variants := nameplan.BuildBucketedVariants(nameplan.BuildBucketedVariantsInput{
		BaseName:          name,
		GleifLegal:        legal,
		GleifOtherNames:   other,
		IncludeExpansions: g.cfg.Resolver.IncludeExpansions,
		MaxVariants:       g.cfg.Resolver.MaxVariants,
	})

	candidates := make([]resolver.Candidate, len(variants))
	for i, v := range variants {
		candidates[i] = resolver.Candidate{Variant: v.Name, Bucket: v.Bucket}
	}

	cache := probecache.New(probecache.DefaultPath(g.cfg.Cache.Dir))
	rs := resolver.NewNameResolver(p, cache, string(provider.USPTO)).WithLogger(g.log)

	strategy := ro.strategy
	if strategy == "" {
		strategy = g.cfg.Resolver.Strategy
	}
	var year *int
	if ro.year != 0 {
		year = &ro.year
	}

	cfg := resolver.ResolveConfig{Strategy: strategy, DiscoveryLimit: ro.discoveryLimit, Debug: ro.debug}
	best := 0
	var bestVariant string
	for item := range rs.Resolve(ctx, name, year, candidates, cfg) {
		if item.Err != nil {
			return item.Err
		}
		switch ev := item.Event.(type) {
		case resolver.EqAttemptResult:
			if ev.Total > best {
				best = ev.Total
				bestVariant = ev.Variant
			}
			if ro.debug {
				g.log.Debug("eq", logging.String("variant", ev.Variant), logging.String("bucket", string(ev.Bucket)), logging.Int("total", ev.Total))
			}
		case resolver.DiscoveryResult:
			if ro.debug {
				g.log.Debug("discover", logging.String("seed", ev.Seed), logging.String("bucket", string(ev.Bucket)), logging.Int("harvested", len(ev.Harvested)))
			}
		}
	}

	fmt.Printf("%s\tbest_variant=%q\tbest_total=%d\n", name, bestVariant, best)
	return nil
}

// runResolveBatch fans batch entries out across bounded workers via
// errgroup; resolution within each entry still proceeds sequentially
// through runResolveOne.
func runResolveBatch(ctx context.Context, g *globalOptions, ro *resolveOptions) error {
	f, err := os.Open(ro.batchFile)
	if err != nil {
		return fmt.Errorf("resolve: opening batch file: %w", err)
	}
	defer f.Close()

	var names []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		names = append(names, line)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("resolve: reading batch file: %w", err)
	}

	workers := ro.batchWorkers
	if workers <= 0 {
		workers = 1
	}

	grp, gctx := errgroup.WithContext(ctx)
	grp.SetLimit(workers)

	for _, name := range names {
		name := name
		grp.Go(func() error {
			return runResolveOne(gctx, g, ro, name)
		})
	}
	return grp.Wait()
}
