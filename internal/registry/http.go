package registry

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/JPK85/patentpack/internal/logging"
	"github.com/JPK85/patentpack/internal/pacedhttp"
)

// defaultGLEIFAPI is the production GLEIF lei-records search endpoint.
const defaultGLEIFAPI = "https://api.gleif.org/api/v1/lei-records"

// Config configures a Client.
type Config struct {
	BaseURL             string
	UserAgent           string
	RequestsPerMinute   int
	Timeout             time.Duration
	MaxRetries          int
	BackoffBaseInterval time.Duration
}

// Client is a thin GLEIF lei-records search client built on the shared paced
// HTTP client. Every call is best-effort: network, HTTP and decode failures
// never surface as an error or a panic; safeGet reports them as a nil body
// with a status code and body snippet (status -1 when no response was
// received), mirroring the original client's never-raises contract.
type Client struct {
	baseURL   string
	userAgent string
	http      *pacedhttp.Client
	log       logging.Logger
}

// New constructs a Client. BaseURL defaults to the production GLEIF API and
// UserAgent to a patentpack-identifying string when left empty.
func New(cfg Config, log logging.Logger) *Client {
	if log == nil {
		log = logging.NewNopLogger()
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultGLEIFAPI
	}
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = "patentpack-registry-client"
	}
	return &Client{
		baseURL:   baseURL,
		userAgent: userAgent,
		http:      pacedhttp.New(pacedhttp.Config{RequestsPerMinute: cfg.RequestsPerMinute, Timeout: cfg.Timeout, MaxRetries: cfg.MaxRetries, BackoffBaseInterval: cfg.BackoffBaseInterval}, log),
		log:       log.Named("registry"),
	}
}

// SetRPM re-tunes the underlying pace limiter.
func (c *Client) SetRPM(rpm int) { c.http.SetRPM(rpm) }

// safeGet issues a GET against the lei-records endpoint with params and
// never returns an error for a reachable-but-non-2xx response: it instead
// returns (nil, status, bodySnippet) so callers can decide whether to skip
// or log. An unreachable server (DNS, connection refused, timeout) returns
// status -1 and a description of the failure in bodySnippet.
func (c *Client) safeGet(ctx context.Context, params url.Values) (map[string]interface{}, int, string) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, -1, err.Error()
	}
	u.RawQuery = params.Encode()

	req, err := http.NewRequest(http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, -1, err.Error()
	}
	req.Header.Set("Accept", "application/vnd.api+json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(ctx, req)
	if err != nil {
		return nil, -1, err.Error()
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, err.Error()
	}
	snippet := string(body)
	if len(snippet) > 300 {
		snippet = snippet[:300]
	}
	snippet = strings.ReplaceAll(snippet, "\n", " ")

	if resp.StatusCode >= 400 {
		return nil, resp.StatusCode, snippet
	}

	var parsed map[string]interface{}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, resp.StatusCode, snippet
	}
	return parsed, resp.StatusCode, snippet
}
