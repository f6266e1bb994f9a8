package config

import "time"

// Default value constants, grounded on original_source/src/patentpack/config.py.
const (
	DefaultUSPTOBaseURL         = "https://search.patentsview.org/api/v1/patent/"
	DefaultUSPTORequestsPerMin  = 40
	MaxUSPTORequestsPerMin      = 44
	DefaultEPOAuthURL           = "https://ops.epo.org/3.2/auth/accesstoken"
	DefaultEPOSearchURL         = "https://ops.epo.org/3.2/rest-services/published-data/search"
	DefaultEPORequestsPerMin    = 30
	DefaultRegistryBaseURL      = "https://api.gleif.org/api/v1/lei-records"
	DefaultRegistryCountryHints = 3
	DefaultTimeout              = 45 * time.Second
	DefaultMaxRetries           = 6
	DefaultBackoffBaseInterval  = 1 * time.Second
	DefaultCacheDir             = "./.patentpack-cache"
	DefaultResolverStrategy     = "eq_then_discovery"
	DefaultMaxVariants          = 24
	DefaultLogLevel             = "info"
	DefaultLogFormat            = "json"
)

// ApplyDefaults fills every zero-value field in cfg with the platform
// default. Fields already set by the caller are left unchanged, so explicit
// configuration always wins.
func ApplyDefaults(cfg *Config) {
	if cfg == nil {
		return
	}

	if cfg.USPTO.BaseURL == "" {
		cfg.USPTO.BaseURL = DefaultUSPTOBaseURL
	}
	if cfg.USPTO.RequestsPerMinute == 0 {
		cfg.USPTO.RequestsPerMinute = DefaultUSPTORequestsPerMin
	}
	if cfg.USPTO.Timeout == 0 {
		cfg.USPTO.Timeout = DefaultTimeout
	}
	if cfg.USPTO.MaxRetries == 0 {
		cfg.USPTO.MaxRetries = DefaultMaxRetries
	}
	if cfg.USPTO.BackoffBaseInterval == 0 {
		cfg.USPTO.BackoffBaseInterval = DefaultBackoffBaseInterval
	}

	if cfg.EPO.AuthURL == "" {
		cfg.EPO.AuthURL = DefaultEPOAuthURL
	}
	if cfg.EPO.SearchURL == "" {
		cfg.EPO.SearchURL = DefaultEPOSearchURL
	}
	if cfg.EPO.RequestsPerMinute == 0 {
		cfg.EPO.RequestsPerMinute = DefaultEPORequestsPerMin
	}
	if cfg.EPO.Timeout == 0 {
		cfg.EPO.Timeout = DefaultTimeout
	}
	if cfg.EPO.MaxRetries == 0 {
		cfg.EPO.MaxRetries = DefaultMaxRetries
	}
	if cfg.EPO.BackoffBaseInterval == 0 {
		cfg.EPO.BackoffBaseInterval = DefaultBackoffBaseInterval
	}

	if cfg.Registry.BaseURL == "" {
		cfg.Registry.BaseURL = DefaultRegistryBaseURL
	}
	if cfg.Registry.Timeout == 0 {
		cfg.Registry.Timeout = DefaultTimeout
	}
	if cfg.Registry.MaxRetries == 0 {
		cfg.Registry.MaxRetries = DefaultMaxRetries
	}
	if cfg.Registry.BackoffBaseInterval == 0 {
		cfg.Registry.BackoffBaseInterval = DefaultBackoffBaseInterval
	}
	if cfg.Registry.CountryHintLimit == 0 {
		cfg.Registry.CountryHintLimit = DefaultRegistryCountryHints
	}

	if cfg.Cache.Dir == "" {
		cfg.Cache.Dir = DefaultCacheDir
	}

	if cfg.Resolver.Strategy == "" {
		cfg.Resolver.Strategy = DefaultResolverStrategy
	}
	if cfg.Resolver.MaxVariants == 0 {
		cfg.Resolver.MaxVariants = DefaultMaxVariants
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}
}
