// Package probecache provides a durable, append-only JSONL cache recording
// whether a given (provider, year, operation, key) probe has ever produced
// a hit. It is intentionally lossy: it stores only a boolean "has_hits"
// flag per entry, not the hits themselves, trading replay fidelity for a
// tiny, append-only file format that never needs compaction.
package probecache

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/JPK85/patentpack/pkg/errors"
)

// Op identifies which kind of probe a CacheKey records.
type Op string

const (
	OpDiscover Op = "discover"
	OpEq       Op = "eq"
)

// CacheKey identifies a single cached probe outcome.
type CacheKey struct {
	Provider string
	Year     int
	Op       Op
	// Key is the seed name for a discover probe, or the variant name for
	// an eq probe.
	Key string
}

// entry is the value half of a cache record. Additional fields may be
// merged in by MarkHasHits without clobbering unrelated data, matching the
// "simplified, has_hits-only" cache contract.
type entry map[string]interface{}

type record struct {
	Provider string `json:"provider"`
	Year     int    `json:"year"`
	Op       Op     `json:"op"`
	Key      string `json:"key"`
	Val      entry  `json:"val"`
}

// Cache is a durable, append-only JSONL-backed probe cache. A Cache is safe
// for concurrent use; all in-memory and file access is guarded by a single
// mutex, matching the original implementation's conservative simplicity
// over the possibility of lock contention under heavy concurrent probing.
type Cache struct {
	path string

	mu     sync.Mutex
	loaded bool
	mem    map[CacheKey]entry
}

// New returns a Cache backed by the JSONL file at path. The file is not
// read until the first Get, Put, or HasHits call.
func New(path string) *Cache {
	return &Cache{path: path, mem: make(map[CacheKey]entry)}
}

// DefaultPath joins dir with the cache's canonical filename.
func DefaultPath(dir string) string {
	return filepath.Join(dir, "idmap_cache.jsonl")
}

func (c *Cache) load() error {
	if c.loaded {
		return nil
	}
	f, err := os.Open(c.path)
	if os.IsNotExist(err) {
		c.loaded = true
		return nil
	}
	if err != nil {
		return errors.Wrap(err, errors.CodeCacheIO, "probecache: failed to open cache file")
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		var rec record
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			// Malformed lines are skipped silently; forward-compatible
			// with future record shapes and tolerant of partial writes.
			continue
		}
		key := CacheKey{Provider: rec.Provider, Year: rec.Year, Op: rec.Op, Key: rec.Key}
		c.mem[key] = rec.Val
	}
	c.loaded = true
	return nil
}

// Get returns the cached entry for k, or nil if no entry has been recorded.
func (c *Cache) Get(k CacheKey) (map[string]interface{}, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.load(); err != nil {
		return nil, err
	}
	v, ok := c.mem[k]
	if !ok {
		return nil, nil
	}
	return v, nil
}

// Put stores val for k in memory and appends a record to the backing file.
func (c *Cache) Put(k CacheKey, val map[string]interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.load(); err != nil {
		return err
	}
	c.mem[k] = val

	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return errors.Wrap(err, errors.CodeCacheIO, "probecache: failed to create cache directory")
	}
	f, err := os.OpenFile(c.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return errors.Wrap(err, errors.CodeCacheIO, "probecache: failed to open cache file for append")
	}
	defer f.Close()

	rec := record{Provider: k.Provider, Year: k.Year, Op: k.Op, Key: k.Key, Val: val}
	line, err := json.Marshal(rec)
	if err != nil {
		return errors.Wrap(err, errors.CodeCacheIO, "probecache: failed to marshal cache record")
	}
	if _, err := f.Write(append(line, '\n')); err != nil {
		return errors.Wrap(err, errors.CodeCacheIO, "probecache: failed to append cache record")
	}
	return nil
}

// HasHits reports whether k has ever been recorded with has_hits=true. A
// missing entry or a read error both report false: cache misses always
// fall through to a live probe.
func (c *Cache) HasHits(k CacheKey) bool {
	v, err := c.Get(k)
	if err != nil || v == nil {
		return false
	}
	hit, _ := v["has_hits"].(bool)
	return hit
}

// MarkHasHits merges has_hits into k's existing entry without clobbering
// any other field that may have been stored alongside it.
func (c *Cache) MarkHasHits(k CacheKey, hasHits bool) error {
	cur, err := c.Get(k)
	if err != nil {
		return err
	}
	merged := make(entry, len(cur)+1)
	for field, v := range cur {
		merged[field] = v
	}
	merged["has_hits"] = hasHits
	return c.Put(k, merged)
}
