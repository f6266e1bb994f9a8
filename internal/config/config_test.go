package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JPK85/patentpack/internal/config"
)

func validConfig() *config.Config {
	cfg := &config.Config{}
	config.ApplyDefaults(cfg)
	return cfg
}

func TestApplyDefaults_FillsEmptyConfig(t *testing.T) {
	cfg := validConfig()

	assert.Equal(t, config.DefaultUSPTOBaseURL, cfg.USPTO.BaseURL)
	assert.Equal(t, config.DefaultUSPTORequestsPerMin, cfg.USPTO.RequestsPerMinute)
	assert.Equal(t, config.DefaultEPOAuthURL, cfg.EPO.AuthURL)
	assert.Equal(t, config.DefaultRegistryBaseURL, cfg.Registry.BaseURL)
	assert.Equal(t, config.DefaultCacheDir, cfg.Cache.Dir)
	assert.Equal(t, config.DefaultResolverStrategy, cfg.Resolver.Strategy)
	assert.Equal(t, config.DefaultLogLevel, cfg.Log.Level)
	assert.Equal(t, config.DefaultBackoffBaseInterval, cfg.USPTO.BackoffBaseInterval)
	assert.Equal(t, config.DefaultBackoffBaseInterval, cfg.EPO.BackoffBaseInterval)
	assert.Equal(t, config.DefaultBackoffBaseInterval, cfg.Registry.BackoffBaseInterval)
}

func TestApplyDefaults_PreservesExplicitValues(t *testing.T) {
	cfg := &config.Config{}
	cfg.USPTO.RequestsPerMinute = 10
	cfg.Resolver.Strategy = "discovery_first_for_seeds"
	config.ApplyDefaults(cfg)

	assert.Equal(t, 10, cfg.USPTO.RequestsPerMinute)
	assert.Equal(t, "discovery_first_for_seeds", cfg.Resolver.Strategy)
}

func TestValidate_AcceptsDefaultedConfig(t *testing.T) {
	cfg := validConfig()
	require.NoError(t, cfg.Validate())
}

func TestValidate_RejectsNonPositiveRPM(t *testing.T) {
	cfg := validConfig()
	cfg.USPTO.RequestsPerMinute = 0
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "uspto.requests_per_minute")
}

func TestValidate_RejectsEmptyRegistryBaseURL(t *testing.T) {
	cfg := validConfig()
	cfg.Registry.BaseURL = ""
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "registry.base_url")
}

func TestValidate_RejectsUnknownResolverStrategy(t *testing.T) {
	cfg := validConfig()
	cfg.Resolver.Strategy = "bogus"
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "resolver.strategy")
}

func TestValidate_RejectsUnknownLogLevel(t *testing.T) {
	cfg := validConfig()
	cfg.Log.Level = "verbose"
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log.level")
}
