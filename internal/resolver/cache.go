package resolver

import "github.com/JPK85/patentpack/internal/probecache"

// cacheAdapter adapts the lossy, has_hits-only probecache.Cache to the
// richer eq/discovery lookups the resolver wants to make. Since the
// backing cache only ever remembers whether a probe ever produced a hit,
// a cache "get" cannot return the original count or harvest list — it
// returns a placeholder (count=1, or a single-element harvest list)
// standing in for "we know this had hits, go look it up again if you
// need the real payload."
type cacheAdapter struct {
	store *probecache.Cache
}

func newCacheAdapter(store *probecache.Cache) *cacheAdapter {
	if store == nil {
		store = probecache.New("")
	}
	return &cacheAdapter{store: store}
}

func yearOrZero(y *int) int {
	if y == nil {
		return 0
	}
	return *y
}

func (c *cacheAdapter) getEq(providerLabel string, year *int, name string) (int, bool) {
	k := probecache.CacheKey{Provider: providerLabel, Year: yearOrZero(year), Op: probecache.OpEq, Key: name}
	if c.store.HasHits(k) {
		return 1, true
	}
	return 0, false
}

func (c *cacheAdapter) putEq(providerLabel string, year *int, name string, count int) {
	k := probecache.CacheKey{Provider: providerLabel, Year: yearOrZero(year), Op: probecache.OpEq, Key: name}
	_ = c.store.MarkHasHits(k, count > 0)
}

func (c *cacheAdapter) getDiscovery(providerLabel string, year *int, seed string) ([]string, bool) {
	k := probecache.CacheKey{Provider: providerLabel, Year: yearOrZero(year), Op: probecache.OpDiscover, Key: seed}
	if c.store.HasHits(k) {
		return []string{"cached_hit"}, true
	}
	return nil, false
}

func (c *cacheAdapter) putDiscovery(providerLabel string, year *int, seed string, found []string) {
	k := probecache.CacheKey{Provider: providerLabel, Year: yearOrZero(year), Op: probecache.OpDiscover, Key: seed}
	_ = c.store.MarkHasHits(k, len(found) > 0)
}
