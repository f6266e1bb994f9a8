// Package codebook builds and caches the CPC classification code lists
// (section, class, subclass, group) that other components use to validate
// or enumerate CPC prefixes. Each level is fetched once from PatentsView's
// classification endpoints and cached to a JSON file on disk; subsequent
// calls for the same level are served from that file.
package codebook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/JPK85/patentpack/internal/logging"
	"github.com/JPK85/patentpack/internal/pacedhttp"
	"github.com/JPK85/patentpack/pkg/errors"
)

// Level is a CPC classification granularity.
type Level string

const (
	LevelSection  Level = "section"
	LevelClass    Level = "class"
	LevelSubclass Level = "subclass"
	LevelGroup    Level = "group"
)

// Meta describes how a codebook's codes were produced.
type Meta struct {
	Source string `json:"source"` // "static", "cache", or "pv"
	Path   string `json:"path"`
	Level  Level  `json:"level"`
	Count  int    `json:"count"`
}

// endpoint describes a PatentsView classification listing endpoint.
type endpoint struct {
	path    string
	listKey string
	idKey   string
}

var endpoints = map[Level]endpoint{
	LevelClass:    {"cpc_class", "cpc_classes", "cpc_class_id"},
	LevelSubclass: {"cpc_subclass", "cpc_subclasses", "cpc_subclass_id"},
	LevelGroup:    {"cpc_group", "cpc_groups", "cpc_group_id"},
}

const pvBase = "https://search.patentsview.org/api/v1"

// sectionCodes is the static top-level CPC section list: A through H plus
// the cross-sectional Y (climate change mitigation technologies).
var sectionCodes = []string{"A", "B", "C", "D", "E", "F", "G", "H", "Y"}

// Config configures a Codebook.
type Config struct {
	CacheDir          string
	APIKey            string
	RequestsPerMinute int
}

// Codebook fetches and caches CPC classification code lists.
type Codebook struct {
	cacheDir string
	apiKey   string
	baseURL  string
	client   *pacedhttp.Client
	log      logging.Logger

	mu sync.Mutex
}

// New constructs a Codebook. A zero RequestsPerMinute defaults to a
// conservative pace via pacedhttp.
func New(cfg Config, log logging.Logger) *Codebook {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &Codebook{
		cacheDir: cfg.CacheDir,
		apiKey:   cfg.APIKey,
		baseURL:  pvBase,
		client:   pacedhttp.New(pacedhttp.Config{RequestsPerMinute: cfg.RequestsPerMinute}, log),
		log:      log.Named("codebook"),
	}
}

// SetBaseURLForTest overrides the PatentsView base URL. Exposed only for
// tests that need to point a Codebook at an httptest server.
func (cb *Codebook) SetBaseURLForTest(url string) {
	cb.baseURL = url
}

func (cb *Codebook) cachePath(level Level) string {
	return filepath.Join(cb.cacheDir, fmt.Sprintf("codebook_%s.json", level))
}

// Get returns (codes, meta) for level, serving from the on-disk cache when
// present and otherwise fetching once from PatentsView and caching the
// result. When roots is non-empty, the returned codes are filtered to
// those starting with one of the given (uppercased) prefixes — the filter
// is applied after caching, so the cache always holds the full code list
// for the level regardless of what roots a given caller passed.
func (cb *Codebook) Get(ctx context.Context, level Level, roots []string) ([]string, Meta, error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	codes, meta, err := cb.loadOrFetch(ctx, level)
	if err != nil {
		return nil, Meta{}, err
	}

	if len(roots) > 0 {
		codes = filterByRoots(codes, roots)
	}
	return codes, meta, nil
}

func (cb *Codebook) loadOrFetch(ctx context.Context, level Level) ([]string, Meta, error) {
	path := cb.cachePath(level)

	if data, err := os.ReadFile(path); err == nil {
		var codes []string
		if err := json.Unmarshal(data, &codes); err != nil {
			return nil, Meta{}, errors.Wrap(err, errors.CodeCacheCorrupt, "codebook: failed to parse cached codebook")
		}
		cb.log.Debug("codebook cache hit", logging.String("level", string(level)), logging.Int("count", len(codes)))
		return codes, Meta{Source: "cache", Path: path, Level: level, Count: len(codes)}, nil
	} else if !os.IsNotExist(err) {
		return nil, Meta{}, errors.Wrap(err, errors.CodeCacheIO, "codebook: failed to read cache file")
	}

	cb.log.Info("codebook cache miss, fetching", logging.String("level", string(level)))
	raw, source, err := cb.fetchCodes(ctx, level)
	if err != nil {
		return nil, Meta{}, err
	}

	codes := normalizeAndDedupeSorted(raw)

	if err := cb.writeCache(path, codes); err != nil {
		return nil, Meta{}, err
	}

	cb.log.Info("codebook cache written", logging.String("level", string(level)), logging.Int("count", len(codes)))
	return codes, Meta{Source: source, Path: path, Level: level, Count: len(codes)}, nil
}

func (cb *Codebook) writeCache(path string, codes []string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, errors.CodeCacheIO, "codebook: failed to create cache directory")
	}
	data, err := json.Marshal(codes)
	if err != nil {
		return errors.Wrap(err, errors.CodeCacheIO, "codebook: failed to marshal codebook")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(err, errors.CodeCacheIO, "codebook: failed to write codebook cache file")
	}
	return nil
}

func (cb *Codebook) fetchCodes(ctx context.Context, level Level) ([]string, string, error) {
	switch level {
	case LevelSection:
		return sectionCodes, "static", nil
	case LevelGroup:
		// PatentsView's multi-page cpc_group pagination is known to repeat
		// the first page verbatim past a certain depth; sweeping per
		// subclass is the reliable alternative.
		ids, err := cb.collectGroupsViaSubclasses(ctx, nil)
		return ids, "pv", err
	default:
		ep, ok := endpoints[level]
		if !ok {
			return nil, "", errors.InvalidParam(fmt.Sprintf("codebook: unknown level %q", level))
		}
		ids, err := cb.collectIDs(ctx, ep)
		return ids, "pv", err
	}
}

func filterByRoots(codes []string, roots []string) []string {
	var up []string
	for _, r := range roots {
		r = strings.ToUpper(strings.TrimSpace(r))
		if r != "" {
			up = append(up, r)
		}
	}
	if len(up) == 0 {
		return codes
	}
	var out []string
	for _, c := range codes {
		for _, r := range up {
			if strings.HasPrefix(c, r) {
				out = append(out, c)
				break
			}
		}
	}
	return out
}

func normalizeAndDedupeSorted(raw []string) []string {
	seen := make(map[string]struct{}, len(raw))
	out := make([]string, 0, len(raw))
	for _, c := range raw {
		c = strings.ToUpper(strings.TrimSpace(c))
		c = strings.ReplaceAll(c, " ", "")
		if c == "" {
			continue
		}
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

func (cb *Codebook) headers() map[string]string {
	h := map[string]string{"Accept": "application/json", "Content-Type": "application/json"}
	if cb.apiKey != "" {
		h["X-Api-Key"] = cb.apiKey
	}
	return h
}

func (cb *Codebook) post(ctx context.Context, path string, page, size int, q map[string]interface{}) (map[string]interface{}, error) {
	if q == nil {
		q = map[string]interface{}{}
	}
	payload := map[string]interface{}{
		"q": q,
		"o": map[string]interface{}{"page": page, "size": size},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "codebook: failed to marshal request payload")
	}

	url := fmt.Sprintf("%s/%s/", cb.baseURL, strings.Trim(path, "/"))
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "codebook: failed to build request")
	}
	for k, v := range cb.headers() {
		req.Header.Set(k, v)
	}

	resp, err := cb.client.Do(ctx, req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeProviderTransport, "codebook: failed to read response body")
	}
	if resp.StatusCode >= 400 {
		return nil, errors.New(errors.CodeProviderRemote, "codebook: non-2xx response from PatentsView").
			WithDetail(fmt.Sprintf("status=%d path=%s", resp.StatusCode, path))
	}

	var data map[string]interface{}
	if err := json.Unmarshal(respBody, &data); err != nil {
		return nil, errors.Wrap(err, errors.CodeProviderRemote, "codebook: failed to decode response body")
	}
	return data, nil
}

// collectIDs paginates a class/subclass endpoint to exhaustion, stopping on
// a short page, a page with no new IDs (guarding against a provider-side
// pagination repeat), or a hard 200-page backstop that should never
// trigger for these two levels in practice.
func (cb *Codebook) collectIDs(ctx context.Context, ep endpoint) ([]string, error) {
	const size = 1000
	page := 1
	seenSet := make(map[string]struct{})
	var seen []string

	for {
		data, err := cb.post(ctx, ep.path, page, size, nil)
		if err != nil {
			return nil, err
		}
		rows, _ := data[ep.listKey].([]interface{})
		var ids []string
		for _, rawRow := range rows {
			row, ok := rawRow.(map[string]interface{})
			if !ok {
				continue
			}
			id, _ := row[ep.idKey].(string)
			id = strings.ToUpper(strings.TrimSpace(id))
			if id != "" {
				ids = append(ids, id)
			}
		}
		if len(ids) == 0 {
			break
		}

		before := len(seenSet)
		for _, v := range ids {
			if _, dup := seenSet[v]; !dup {
				seenSet[v] = struct{}{}
				seen = append(seen, v)
			}
		}
		after := len(seenSet)
		cb.log.Debug("codebook pagination page",
			logging.String("endpoint", ep.path), logging.Int("page", page),
			logging.Int("got", len(ids)), logging.Int("unique_total", after))

		if len(ids) < size {
			break
		}
		if after == before {
			break
		}
		page++
		if page > 200 {
			break
		}
	}
	return seen, nil
}

// collectGroupsViaSubclasses sweeps every cached subclass code (optionally
// filtered to roots) and asks PatentsView for the cpc_group rows under
// each one individually, unioning the results. This sidesteps the
// unreliable multi-page behavior of a direct cpc_group listing.
func (cb *Codebook) collectGroupsViaSubclasses(ctx context.Context, roots []string) ([]string, error) {
	subclassCodes, _, err := cb.loadOrFetch(ctx, LevelSubclass)
	if err != nil {
		return nil, err
	}
	if len(roots) > 0 {
		subclassCodes = filterByRoots(subclassCodes, roots)
	}

	seenSet := make(map[string]struct{})
	var seen []string

	for idx, sc := range subclassCodes {
		data, err := cb.post(ctx, "cpc_group", 1, 1000, map[string]interface{}{"cpc_subclass_id": sc})
		if err != nil {
			return nil, err
		}
		rows, _ := data["cpc_groups"].([]interface{})
		var ids []string
		for _, rawRow := range rows {
			row, ok := rawRow.(map[string]interface{})
			if !ok {
				continue
			}
			id, _ := row["cpc_group_id"].(string)
			id = strings.ToUpper(strings.TrimSpace(id))
			if id != "" {
				ids = append(ids, id)
			}
		}

		before := len(seenSet)
		for _, v := range ids {
			if _, dup := seenSet[v]; !dup {
				seenSet[v] = struct{}{}
				seen = append(seen, v)
			}
		}
		if after := len(seenSet); after-before > 0 || idx%25 == 0 {
			cb.log.Debug("codebook group sweep progress",
				logging.String("subclass", sc), logging.Int("index", idx+1),
				logging.Int("total_subclasses", len(subclassCodes)), logging.Int("groups", after))
		}
	}
	return seen, nil
}
