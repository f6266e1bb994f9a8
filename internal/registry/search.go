package registry

import (
	"context"
	"net/url"
	"strconv"

	"github.com/JPK85/patentpack/internal/logging"
	"github.com/JPK85/patentpack/internal/orgnorm"
)

// defaultPageSize bounds each individual GLEIF query's result page.
const defaultPageSize = 200

// SearchUnion queries GLEIF across three disjoint filter shapes for every
// name variant of name — (A) exact legalName, (B) legalName plus a
// country hint, (C) fulltext only — and unions the results, deduplicated
// by LEI. GLEIF's fulltext filter cannot be combined with other filters in
// a single request, so each shape is issued as its own query.
func (c *Client) SearchUnion(ctx context.Context, name string) []Record {
	return c.searchUnion(ctx, name, defaultPageSize)
}

func (c *Client) searchUnion(ctx context.Context, name string, pageSize int) []Record {
	variants := orgnorm.ExpandQueryVariants(name)
	countryHints := orgnorm.CountryHintsFromName(name)
	if len(countryHints) > 3 {
		countryHints = countryHints[:3]
	}

	c.log.Debug("registry search",
		logging.String("name", name),
		logging.Int("variants", len(variants)),
		logging.Int("country_hints", len(countryHints)))

	var queries []url.Values

	for _, v := range variants {
		q := url.Values{}
		q.Set("filter[entity.legalName]", v)
		q.Set("page[size]", strconv.Itoa(pageSize))
		queries = append(queries, q)
	}

	for _, v := range variants {
		for _, cc := range countryHints {
			q := url.Values{}
			q.Set("filter[entity.legalName]", v)
			q.Set("filter[entity.legalAddress.country]", cc)
			q.Set("page[size]", strconv.Itoa(pageSize))
			queries = append(queries, q)
		}
	}

	for _, v := range variants {
		q := url.Values{}
		q.Set("filter[fulltext]", v)
		q.Set("page[size]", strconv.Itoa(pageSize))
		queries = append(queries, q)
	}

	seen := make(map[string]struct{})
	var out []Record

	for _, q := range queries {
		body, status, snippet := c.safeGet(ctx, q)
		if body == nil {
			c.log.Debug("registry query returned no usable body",
				logging.Int("status", status), logging.String("body", snippet))
			continue
		}
		data, _ := body["data"].([]interface{})
		for _, rawResource := range data {
			resource, ok := rawResource.(map[string]interface{})
			if !ok {
				continue
			}
			lei := recordLEI(resource)
			if lei == "" {
				continue
			}
			if _, dup := seen[lei]; dup {
				continue
			}
			seen[lei] = struct{}{}
			out = append(out, toRecord(resource))
		}
	}

	c.log.Debug("registry search union complete", logging.Int("unique_records", len(out)))
	return out
}
