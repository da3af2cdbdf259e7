// Package config defines the configuration of the research engine binaries.
// No I/O or parsing logic lives here, only plain data types and validation.
package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/turtacn/LegalSpend-Research/internal/infrastructure/monitoring/logging"
)

// ─────────────────────────────────────────────────────────────────────────────
// Sub-configuration structs
// ─────────────────────────────────────────────────────────────────────────────

// ResearchConfig configures the outbound research API client.
type ResearchConfig struct {
	BaseURL    string        `mapstructure:"base_url" yaml:"base_url"`
	APIKey     string        `mapstructure:"api_key" yaml:"api_key"`
	AuthScheme string        `mapstructure:"auth_scheme" yaml:"auth_scheme"` // "Token" | "Bearer"
	Timeout    time.Duration `mapstructure:"timeout" yaml:"timeout"`
	PageSize   int           `mapstructure:"page_size" yaml:"page_size"`
	// RateLimit is requests per second; 0 disables client-side pacing.
	RateLimit float64 `mapstructure:"rate_limit" yaml:"rate_limit"`
	RateBurst int     `mapstructure:"rate_burst" yaml:"rate_burst"`
	UserAgent string  `mapstructure:"user_agent" yaml:"user_agent"`
}

// ServerConfig holds HTTP server tunables.
type ServerConfig struct {
	Port            int           `mapstructure:"port" yaml:"port"`
	Mode            string        `mapstructure:"mode" yaml:"mode"` // "debug" | "release" | "test"
	ReadTimeout     time.Duration `mapstructure:"read_timeout" yaml:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout" yaml:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
	// AllowedOrigins are the browser origins granted CORS access.
	AllowedOrigins []string `mapstructure:"allowed_origins" yaml:"allowed_origins"`
	// RateLimit is inbound requests per second per client; 0 disables it.
	RateLimit float64 `mapstructure:"rate_limit" yaml:"rate_limit"`
	RateBurst int     `mapstructure:"rate_burst" yaml:"rate_burst"`
}

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	Enabled   bool   `mapstructure:"enabled" yaml:"enabled"`
	Namespace string `mapstructure:"namespace" yaml:"namespace"`
	Path      string `mapstructure:"path" yaml:"path"`
}

// AnalyticsConfig tunes the analytics aggregator.
type AnalyticsConfig struct {
	TopCitationCount int `mapstructure:"top_citation_count" yaml:"top_citation_count"`
	TopCourtCount    int `mapstructure:"top_court_count" yaml:"top_court_count"`
}

// Config is the root configuration.
type Config struct {
	Research  ResearchConfig    `mapstructure:"research" yaml:"research"`
	Server    ServerConfig      `mapstructure:"server" yaml:"server"`
	Log       logging.LogConfig `mapstructure:"log" yaml:"log"`
	Metrics   MetricsConfig     `mapstructure:"metrics" yaml:"metrics"`
	Analytics AnalyticsConfig   `mapstructure:"analytics" yaml:"analytics"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Validation
// ─────────────────────────────────────────────────────────────────────────────

// Validate performs semantic validation of a defaulted Config and returns the
// first problem found.
func (c *Config) Validate() error {
	// Research
	u, err := url.Parse(c.Research.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("config: research.base_url %q must be an absolute http(s) URL", c.Research.BaseURL)
	}
	if c.Research.Timeout <= 0 {
		return fmt.Errorf("config: research.timeout must be positive, got %s", c.Research.Timeout)
	}
	if c.Research.PageSize < 1 || c.Research.PageSize > 100 {
		return fmt.Errorf("config: research.page_size %d is out of range [1, 100]", c.Research.PageSize)
	}
	if c.Research.RateLimit < 0 {
		return fmt.Errorf("config: research.rate_limit must be >= 0, got %g", c.Research.RateLimit)
	}

	// Server
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("config: server.port %d is out of range [1, 65535]", c.Server.Port)
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("config: server.mode %q is invalid; expected debug|release|test", c.Server.Mode)
	}
	if c.Server.RateLimit < 0 {
		return fmt.Errorf("config: server.rate_limit must be >= 0, got %g", c.Server.RateLimit)
	}

	// Log
	switch c.Log.Level {
	case logging.LevelDebug, logging.LevelInfo, logging.LevelWarn, logging.LevelError:
	default:
		return fmt.Errorf("config: log.level %q is invalid; expected debug|info|warn|error", c.Log.Level)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("config: log.format %q is invalid; expected json|console", c.Log.Format)
	}

	// Metrics
	if c.Metrics.Enabled && c.Metrics.Namespace == "" {
		return fmt.Errorf("config: metrics.namespace is required when metrics are enabled")
	}

	// Analytics
	if c.Analytics.TopCitationCount < 1 {
		return fmt.Errorf("config: analytics.top_citation_count must be >= 1, got %d", c.Analytics.TopCitationCount)
	}
	if c.Analytics.TopCourtCount < 1 {
		return fmt.Errorf("config: analytics.top_court_count must be >= 1, got %d", c.Analytics.TopCourtCount)
	}
	return nil
}
