package config

import (
	"fmt"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// envPrefix is the environment variable prefix of every setting.
const envPrefix = "LEXRISK"

// knownKeys lists every leaf key so that AutomaticEnv can see LEXRISK_*
// overrides even when no file mentions the key.
var knownKeys = []string{
	"research.base_url", "research.api_key", "research.auth_scheme", "research.timeout",
	"research.page_size", "research.rate_limit", "research.rate_burst", "research.user_agent",
	"server.port", "server.mode", "server.read_timeout", "server.write_timeout", "server.shutdown_timeout",
	"server.allowed_origins", "server.rate_limit", "server.rate_burst",
	"log.level", "log.format", "log.output_paths", "log.error_output_paths",
	"metrics.enabled", "metrics.namespace", "metrics.path",
	"analytics.top_citation_count", "analytics.top_court_count",
}

// newViper builds a Viper instance with YAML file type, the LEXRISK_ env
// prefix, and a "." → "_" key replacer so that "research.api_key" resolves to
// LEXRISK_RESEARCH_API_KEY.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range knownKeys {
		_ = v.BindEnv(key)
	}
	v.SetDefault("metrics.enabled", true)
	return v
}

// Load reads the YAML file at configPath, merges LEXRISK_* overrides, applies
// defaults and validates.
func Load(configPath string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(configPath)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config: failed to read config file %q: %w", configPath, err)
	}
	return unmarshalAndFinalize(v)
}

// LoadFromEnv builds a Config from LEXRISK_* variables and defaults alone.
func LoadFromEnv() (*Config, error) {
	return unmarshalAndFinalize(newViper())
}

// LoadOptional loads configPath when it is non-empty, and the environment
// otherwise.
func LoadOptional(configPath string) (*Config, error) {
	if configPath == "" {
		return LoadFromEnv()
	}
	return Load(configPath)
}

func unmarshalAndFinalize(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to unmarshal configuration: %w", err)
	}
	ApplyDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validation failed: %w", err)
	}
	return cfg, nil
}

// Watch reloads configPath on every write and hands the new Config to
// onChange.  Changes that fail to parse or validate go to onError instead
// (which may be nil).  Only the log level is safe to apply at runtime; the
// caller decides what to honour.
func Watch(configPath string, onChange func(*Config), onError func(error)) error {
	v := newViper()
	v.SetConfigFile(configPath)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("config: failed to read config file %q: %w", configPath, err)
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		cfg, err := unmarshalAndFinalize(v)
		if err != nil {
			if onError != nil {
				onError(err)
			}
			return
		}
		onChange(cfg)
	})
	v.WatchConfig()
	return nil
}
