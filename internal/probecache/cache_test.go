package probecache_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JPK85/patentpack/internal/probecache"
)

func newTestCache(t *testing.T) *probecache.Cache {
	t.Helper()
	dir := t.TempDir()
	return probecache.New(probecache.DefaultPath(dir))
}

func TestCache_GetMissingReturnsNil(t *testing.T) {
	c := newTestCache(t)
	v, err := c.Get(probecache.CacheKey{Provider: "uspto", Year: 2020, Op: probecache.OpDiscover, Key: "Acme"})
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestCache_PutThenGetRoundTrips(t *testing.T) {
	c := newTestCache(t)
	k := probecache.CacheKey{Provider: "uspto", Year: 2020, Op: probecache.OpEq, Key: "Acme Inc."}

	require.NoError(t, c.Put(k, map[string]interface{}{"has_hits": true}))

	v, err := c.Get(k)
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.Equal(t, true, v["has_hits"])
}

func TestCache_HasHits(t *testing.T) {
	c := newTestCache(t)
	k := probecache.CacheKey{Provider: "epo", Year: 2021, Op: probecache.OpDiscover, Key: "Siemens AG"}

	assert.False(t, c.HasHits(k))

	require.NoError(t, c.Put(k, map[string]interface{}{"has_hits": true}))
	assert.True(t, c.HasHits(k))
}

func TestCache_MarkHasHitsMergesWithoutClobbering(t *testing.T) {
	c := newTestCache(t)
	k := probecache.CacheKey{Provider: "uspto", Year: 2022, Op: probecache.OpEq, Key: "Acme"}

	require.NoError(t, c.Put(k, map[string]interface{}{"note": "seed"}))
	require.NoError(t, c.MarkHasHits(k, true))

	v, err := c.Get(k)
	require.NoError(t, err)
	assert.Equal(t, "seed", v["note"])
	assert.Equal(t, true, v["has_hits"])
}

func TestCache_PersistsAcrossInstances(t *testing.T) {
	dir := t.TempDir()
	path := probecache.DefaultPath(dir)

	c1 := probecache.New(path)
	k := probecache.CacheKey{Provider: "uspto", Year: 2019, Op: probecache.OpDiscover, Key: "Acme"}
	require.NoError(t, c1.Put(k, map[string]interface{}{"has_hits": true}))

	c2 := probecache.New(path)
	assert.True(t, c2.HasHits(k))
}

func TestCache_SkipsMalformedLines(t *testing.T) {
	dir := t.TempDir()
	path := probecache.DefaultPath(dir)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("not json\n{\"provider\":\"uspto\",\"year\":2020,\"op\":\"discover\",\"key\":\"Acme\",\"val\":{\"has_hits\":true}}\n"), 0o644))

	c := probecache.New(path)
	assert.True(t, c.HasHits(probecache.CacheKey{Provider: "uspto", Year: 2020, Op: probecache.OpDiscover, Key: "Acme"}))
}
