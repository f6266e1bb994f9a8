// Package config provides configuration structures, defaults, validation,
// and file/env loading for patentpack.
package config

import (
	"fmt"
	"time"
)

// Config is the root configuration object for patentpack. It is populated
// by Load or LoadFromEnv and passed down to every component constructor.
type Config struct {
	USPTO    USPTOConfig    `mapstructure:"uspto"`
	EPO      EPOConfig      `mapstructure:"epo"`
	Registry RegistryConfig `mapstructure:"registry"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Resolver ResolverConfig `mapstructure:"resolver"`
	Log      LogConfig      `mapstructure:"log"`
}

// USPTOConfig configures the PatentsView-backed USPTO provider.
type USPTOConfig struct {
	// BaseURL is the PatentsView search API endpoint.
	BaseURL string `mapstructure:"base_url"`

	// APIKey is sent as the X-Api-Key header on every request.
	APIKey string `mapstructure:"api_key"`

	// RequestsPerMinute bounds the pacing gate applied to outbound requests.
	RequestsPerMinute int `mapstructure:"requests_per_minute"`

	// Timeout bounds a single HTTP round trip.
	Timeout time.Duration `mapstructure:"timeout"`

	// MaxRetries bounds the retry attempts for retriable responses.
	MaxRetries int `mapstructure:"max_retries"`

	// BackoffBaseInterval is the initial exponential-backoff interval
	// applied between retries (429 and 5xx responses, network errors).
	BackoffBaseInterval time.Duration `mapstructure:"backoff_base_interval"`
}

// EPOConfig configures the EPO OPS-backed provider.
type EPOConfig struct {
	// AuthURL is the OAuth2 client-credentials token endpoint.
	AuthURL string `mapstructure:"auth_url"`

	// SearchURL is the OPS published-data search endpoint.
	SearchURL string `mapstructure:"search_url"`

	// ConsumerKey and ConsumerSecret are the OPS client credentials.
	ConsumerKey    string `mapstructure:"consumer_key"`
	ConsumerSecret string `mapstructure:"consumer_secret"`

	RequestsPerMinute   int           `mapstructure:"requests_per_minute"`
	Timeout             time.Duration `mapstructure:"timeout"`
	MaxRetries          int           `mapstructure:"max_retries"`
	BackoffBaseInterval time.Duration `mapstructure:"backoff_base_interval"`
}

// RegistryConfig configures the legal-entity registry client (GLEIF-style
// search API) used by the Matcher.
type RegistryConfig struct {
	// BaseURL is the registry's JSON:API search endpoint.
	BaseURL string `mapstructure:"base_url"`

	Timeout             time.Duration `mapstructure:"timeout"`
	MaxRetries          int           `mapstructure:"max_retries"`
	BackoffBaseInterval time.Duration `mapstructure:"backoff_base_interval"`

	// CountryHintLimit is loaded from configuration but is not passed to
	// the registry client, which always tries at most the first 3 country
	// hints per union search.
	CountryHintLimit int `mapstructure:"country_hint_limit"`
}

// CacheConfig configures the durable JSONL-backed probe cache and the
// classification codebook cache.
type CacheConfig struct {
	// Dir is the directory probe-cache and codebook files are written to.
	Dir string `mapstructure:"dir"`
}

// ResolverConfig configures Name Resolver behavior.
type ResolverConfig struct {
	// Strategy selects the resolution strategy: "eq_then_discovery" or
	// "discovery_first_for_seeds".
	Strategy string `mapstructure:"strategy"`

	// MaxVariants bounds how many variants a single plan may contain.
	MaxVariants int `mapstructure:"max_variants"`

	// IncludeExpansions controls whether expansion buckets are planned in
	// addition to seed buckets.
	IncludeExpansions bool `mapstructure:"include_expansions"`
}

// LogConfig mirrors internal/logging.LogConfig so that callers need only
// depend on internal/config; internal/config translates this into a
// logging.LogConfig at startup.
type LogConfig struct {
	Level            string   `mapstructure:"level"`
	Format           string   `mapstructure:"format"`
	OutputPaths      []string `mapstructure:"output_paths"`
	ErrorOutputPaths []string `mapstructure:"error_output_paths"`
}

// Validate checks that cfg is internally consistent and ready for use by
// the application. It should be called immediately after ApplyDefaults.
func (c *Config) Validate() error {
	if c.USPTO.RequestsPerMinute <= 0 {
		return fmt.Errorf("config: uspto.requests_per_minute must be positive, got %d", c.USPTO.RequestsPerMinute)
	}
	if c.EPO.RequestsPerMinute <= 0 {
		return fmt.Errorf("config: epo.requests_per_minute must be positive, got %d", c.EPO.RequestsPerMinute)
	}
	if c.Registry.BaseURL == "" {
		return fmt.Errorf("config: registry.base_url must not be empty")
	}
	if c.Cache.Dir == "" {
		return fmt.Errorf("config: cache.dir must not be empty")
	}
	switch c.Resolver.Strategy {
	case "eq_then_discovery", "discovery_first_for_seeds":
	default:
		return fmt.Errorf("config: resolver.strategy must be one of eq_then_discovery, discovery_first_for_seeds, got %q", c.Resolver.Strategy)
	}
	if c.Resolver.MaxVariants <= 0 {
		return fmt.Errorf("config: resolver.max_variants must be positive, got %d", c.Resolver.MaxVariants)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: log.level must be one of debug, info, warn, error, got %q", c.Log.Level)
	}
	return nil
}
