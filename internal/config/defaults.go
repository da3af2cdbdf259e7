package config

import "time"

const (
	DefaultResearchBaseURL    = "https://www.courtlistener.com/api/rest/v4"
	DefaultResearchAuthScheme = "Token"
	DefaultResearchTimeout    = 15 * time.Second
	DefaultResearchPageSize   = 20
	DefaultResearchRateBurst  = 5
	DefaultResearchUserAgent  = "lexrisk/0.1"

	DefaultServerPort            = 8080
	DefaultServerMode            = "release"
	DefaultServerReadTimeout     = 15 * time.Second
	DefaultServerWriteTimeout    = 60 * time.Second
	DefaultServerShutdownTimeout = 10 * time.Second
	DefaultServerRateBurst       = 20

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"

	DefaultMetricsNamespace = "lexrisk"
	DefaultMetricsPath      = "/metrics"

	DefaultTopCitationCount = 10
	DefaultTopCourtCount    = 10
)

// NewDefaultConfig returns a Config with every default applied.
func NewDefaultConfig() *Config {
	cfg := &Config{Metrics: MetricsConfig{Enabled: true}}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults fills zero-value fields with defaults.  Explicit values win.
// Metrics.Enabled is a bool and cannot be defaulted here; the loaders seed it
// through viper instead.
func ApplyDefaults(cfg *Config) {
	if cfg == nil {
		return
	}

	// ── Research ──────────────────────────────────────────────────────────────
	if cfg.Research.BaseURL == "" {
		cfg.Research.BaseURL = DefaultResearchBaseURL
	}
	if cfg.Research.AuthScheme == "" {
		cfg.Research.AuthScheme = DefaultResearchAuthScheme
	}
	if cfg.Research.Timeout == 0 {
		cfg.Research.Timeout = DefaultResearchTimeout
	}
	if cfg.Research.PageSize == 0 {
		cfg.Research.PageSize = DefaultResearchPageSize
	}
	if cfg.Research.RateBurst == 0 {
		cfg.Research.RateBurst = DefaultResearchRateBurst
	}
	if cfg.Research.UserAgent == "" {
		cfg.Research.UserAgent = DefaultResearchUserAgent
	}

	// ── Server ────────────────────────────────────────────────────────────────
	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultServerPort
	}
	if cfg.Server.Mode == "" {
		cfg.Server.Mode = DefaultServerMode
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = DefaultServerReadTimeout
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = DefaultServerWriteTimeout
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = DefaultServerShutdownTimeout
	}
	if cfg.Server.RateBurst == 0 {
		cfg.Server.RateBurst = DefaultServerRateBurst
	}

	// ── Log ───────────────────────────────────────────────────────────────────
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}

	// ── Metrics ───────────────────────────────────────────────────────────────
	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = DefaultMetricsNamespace
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = DefaultMetricsPath
	}

	// ── Analytics ─────────────────────────────────────────────────────────────
	if cfg.Analytics.TopCitationCount == 0 {
		cfg.Analytics.TopCitationCount = DefaultTopCitationCount
	}
	if cfg.Analytics.TopCourtCount == 0 {
		cfg.Analytics.TopCourtCount = DefaultTopCourtCount
	}
}
