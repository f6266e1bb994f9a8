// Package uspto implements pkg/provider.Provider and internal/resolver's
// NameProvider against the USPTO PatentsView PatentSearch API.
package uspto

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/JPK85/patentpack/internal/logging"
	"github.com/JPK85/patentpack/internal/pacedhttp"
	"github.com/JPK85/patentpack/pkg/errors"
	"github.com/JPK85/patentpack/pkg/provider"
)

// Config configures a Provider.
type Config struct {
	BaseURL             string
	APIKey              string
	RequestsPerMinute   int
	Timeout             time.Duration
	MaxRetries          int
	BackoffBaseInterval time.Duration
}

// Provider is a PatentsView-backed patent data source.
type Provider struct {
	baseURL string
	apiKey  string
	client  *pacedhttp.Client
	log     logging.Logger
}

// New constructs a Provider. APIKey is required: PatentsView rejects
// unauthenticated requests with X-Api-Key missing.
func New(cfg Config, log logging.Logger) (*Provider, error) {
	if cfg.APIKey == "" {
		return nil, errors.InvalidParam("uspto: api key is required (X-Api-Key)")
	}
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &Provider{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		client:  pacedhttp.New(pacedhttp.Config{RequestsPerMinute: cfg.RequestsPerMinute, Timeout: cfg.Timeout, MaxRetries: cfg.MaxRetries, BackoffBaseInterval: cfg.BackoffBaseInterval}, log),
		log:     log.Named("uspto"),
	}, nil
}

// SetRPM adjusts the provider's pace limiter.
func (p *Provider) SetRPM(rpm int) {
	p.client.SetRPM(rpm)
}

func yearBounds(year int) (string, string) {
	return fmt.Sprintf("%04d-01-01", year), fmt.Sprintf("%04d-12-31", year)
}

func (p *Provider) post(payload map[string]interface{}) (map[string]interface{}, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "uspto: failed to marshal query payload")
	}

	req, err := http.NewRequest(http.MethodPost, p.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "uspto: failed to build request")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Api-Key", p.apiKey)

	resp, err := p.client.Do(context.Background(), req)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeProviderTransport, "uspto: request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, errors.New(errors.CodeProviderRemote, "uspto: non-2xx response").
			WithDetail(fmt.Sprintf("status=%d", resp.StatusCode))
	}

	var data map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, errors.Wrap(err, errors.CodeProviderRemote, "uspto: failed to decode response body")
	}
	return data, nil
}

func totalHits(data map[string]interface{}) int {
	switch v := data["total_hits"].(type) {
	case float64:
		return int(v)
	case int:
		return v
	default:
		return 0
	}
}

func cpcField(which provider.Which) string {
	if which == provider.CPCAtIssue {
		return "cpc_at_issue.cpc_subclass"
	}
	return "cpc_current.cpc_subclass"
}

// CountByCPCYear implements provider.Provider.
func (p *Provider) CountByCPCYear(year int, cpc string, opts provider.CountByCPCYearOptions) (provider.CountResult, error) {
	start, end := yearBounds(year)
	filters := []map[string]interface{}{
		{"_gte": map[string]interface{}{"patent_date": start}},
		{"_lte": map[string]interface{}{"patent_date": end}},
		{"_begins": map[string]interface{}{cpcField(opts.Which): strings.ToUpper(cpc)}},
	}
	if opts.UtilityOnly {
		filters = append(filters, map[string]interface{}{"patent_type": "utility"})
	}
	payload := map[string]interface{}{
		"q": map[string]interface{}{"_and": filters},
		"o": map[string]interface{}{"size": 1},
	}
	data, err := p.post(payload)
	if err != nil {
		return provider.CountResult{}, err
	}
	return provider.CountResult{Total: totalHits(data)}, nil
}

// CountByCPCCompanyYear implements provider.Provider.
func (p *Provider) CountByCPCCompanyYear(year int, cpc string, company string, opts provider.CountByCPCYearOptions) (provider.CountResult, error) {
	start, end := yearBounds(year)
	filters := []map[string]interface{}{
		{"_gte": map[string]interface{}{"patent_date": start}},
		{"_lte": map[string]interface{}{"patent_date": end}},
		{"_begins": map[string]interface{}{cpcField(opts.Which): strings.ToUpper(cpc)}},
		{"assignees.assignee_organization": company},
	}
	if opts.UtilityOnly {
		filters = append(filters, map[string]interface{}{"patent_type": "utility"})
	}
	payload := map[string]interface{}{
		"q": map[string]interface{}{"_and": filters},
		"o": map[string]interface{}{"size": 1},
	}
	data, err := p.post(payload)
	if err != nil {
		return provider.CountResult{}, err
	}
	return provider.CountResult{Total: totalHits(data)}, nil
}

// AssigneeDiscover implements provider.Provider via a best-effort scan of
// the patent endpoint: PatentsView has no dedicated /assignees/ endpoint,
// so distinct organizations are harvested from the first page of matching
// patents.
func (p *Provider) AssigneeDiscover(prefix string, limit int) (provider.AssigneeList, error) {
	size := limit
	if size > 100 {
		size = 100
	}
	if size < 1 {
		size = 1
	}
	payload := map[string]interface{}{
		"q": map[string]interface{}{"assignees.assignee_organization": map[string]interface{}{"_begins": prefix}},
		"f": []string{
			"assignees.assignee_organization",
			"assignees.assignee_country",
			"assignees.assignee_state",
			"assignees.assignee_city",
		},
		"o": map[string]interface{}{"size": size, "page": 1},
	}
	data, err := p.post(payload)
	if err != nil {
		return provider.AssigneeList{}, err
	}

	patents, _ := data["patents"].([]interface{})
	seen := make(map[string]struct{})
	var items []provider.Assignee
	for _, pRaw := range patents {
		pat, ok := pRaw.(map[string]interface{})
		if !ok {
			continue
		}
		assignees, _ := pat["assignees"].([]interface{})
		for _, aRaw := range assignees {
			a, ok := aRaw.(map[string]interface{})
			if !ok {
				continue
			}
			org, _ := a["assignee_organization"].(string)
			if org == "" {
				continue
			}
			if _, dup := seen[org]; dup {
				continue
			}
			seen[org] = struct{}{}
			items = append(items, provider.Assignee{
				Organization: org,
				Country:      stringField(a, "assignee_country"),
				State:        stringField(a, "assignee_state"),
				City:         stringField(a, "assignee_city"),
			})
			if len(items) >= limit {
				return provider.AssigneeList{Items: items}, nil
			}
		}
	}
	return provider.AssigneeList{Items: items}, nil
}

func stringField(m map[string]interface{}, key string) string {
	v, _ := m[key].(string)
	return v
}
