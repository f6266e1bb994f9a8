package config

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// envPrefix is prepended to every environment variable patentpack reads,
// e.g. PATENTPACK_USPTO_API_KEY.
const envPrefix = "PATENTPACK"

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// bindEnvs walks the mapstructure tags of iface and registers each leaf
// field with viper so environment variables are picked up even when no
// config file sets the corresponding key.
func bindEnvs(v *viper.Viper, iface interface{}, parts ...string) {
	ifv := reflect.ValueOf(iface)
	ift := reflect.TypeOf(iface)
	for i := 0; i < ift.NumField(); i++ {
		field := ift.Field(i)
		tag := field.Tag.Get("mapstructure")
		if tag == "" || tag == "-" {
			continue
		}
		fieldValue := ifv.Field(i)
		path := append(parts, tag)
		switch fieldValue.Kind() {
		case reflect.Struct:
			bindEnvs(v, fieldValue.Interface(), path...)
		default:
			_ = v.BindEnv(strings.Join(path, "."))
		}
	}
}

// Load reads configuration from the YAML file at configPath (if non-empty
// and present), layers environment variables over it, applies defaults, and
// validates the result.
func Load(configPath string) (*Config, error) {
	v := newViper()

	var cfg Config
	bindEnvs(v, cfg)

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: failed to read %s: %w", configPath, err)
		}
	}

	return unmarshalAndFinalize(v)
}

// LoadFromEnv builds configuration purely from environment variables and
// defaults, without reading any file. Used by tests and by deployments that
// inject configuration entirely via the environment.
func LoadFromEnv() (*Config, error) {
	v := newViper()
	var cfg Config
	bindEnvs(v, cfg)
	return unmarshalAndFinalize(v)
}

func unmarshalAndFinalize(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: failed to unmarshal: %w", err)
	}

	ApplyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// WatchConfig registers onChange to be invoked whenever the file backing v
// is modified on disk. configPath must have been loaded via Load first.
// Primarily useful for long-running worker processes that want to pick up
// provider rate-limit or cache directory changes without a restart.
func WatchConfig(configPath string, onChange func(*Config)) error {
	v := newViper()
	v.SetConfigFile(configPath)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("config: failed to read %s: %w", configPath, err)
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		cfg, err := unmarshalAndFinalize(v)
		if err != nil {
			return
		}
		onChange(cfg)
	})
	v.WatchConfig()
	return nil
}
