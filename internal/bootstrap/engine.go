// Package bootstrap assembles the research engine from a loaded
// configuration: the research client, the metrics registry, the application
// services and the HTTP route tree.
package bootstrap

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/turtacn/LegalSpend-Research/internal/application/analytics"
	"github.com/turtacn/LegalSpend-Research/internal/application/lookup"
	appresearch "github.com/turtacn/LegalSpend-Research/internal/application/research"
	"github.com/turtacn/LegalSpend-Research/internal/application/vendorrisk"
	"github.com/turtacn/LegalSpend-Research/internal/config"
	"github.com/turtacn/LegalSpend-Research/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/LegalSpend-Research/internal/infrastructure/monitoring/prometheus"
	httpapi "github.com/turtacn/LegalSpend-Research/internal/interfaces/http"
	"github.com/turtacn/LegalSpend-Research/internal/interfaces/http/handlers"
	"github.com/turtacn/LegalSpend-Research/internal/interfaces/http/middleware"
	"github.com/turtacn/LegalSpend-Research/pkg/client"
)

// ServiceName names the engine in traces.
const ServiceName = "lexrisk"

// Gateway is everything the services need from the research API.
type Gateway interface {
	appresearch.Gateway
	lookup.Gateway
}

// Engine holds the wired components.  Collector and Metrics are nil when
// metrics are disabled.
type Engine struct {
	Config    *config.Config
	Logger    logging.Logger
	Client    *client.Client
	Collector prometheus.MetricsCollector
	Metrics   *prometheus.EngineMetrics

	Search    *appresearch.Service
	Analytics *analytics.Service
	Risk      *vendorrisk.Service
	Lookup    *lookup.Service
}

// Option customizes NewEngine.
type Option func(*options)

type options struct {
	transport http.RoundTripper
	gateway   Gateway
}

// WithTransport sets the base transport of the research client.  It is
// wrapped for tracing.
func WithTransport(rt http.RoundTripper) Option {
	return func(o *options) { o.transport = rt }
}

// WithGateway replaces the research client as the services' gateway.
func WithGateway(gw Gateway) Option {
	return func(o *options) { o.gateway = gw }
}

// NewEngine wires the engine for cfg, which must already be validated.
func NewEngine(cfg *config.Config, logger logging.Logger, opts ...Option) (*Engine, error) {
	o := options{transport: http.DefaultTransport}
	for _, opt := range opts {
		opt(&o)
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	e := &Engine{Config: cfg, Logger: logger}

	if cfg.Metrics.Enabled {
		collector, err := prometheus.NewMetricsCollector(prometheus.CollectorConfig{
			Namespace:            cfg.Metrics.Namespace,
			EnableProcessMetrics: true,
			EnableGoMetrics:      true,
		}, logger)
		if err != nil {
			return nil, err
		}
		e.Collector = collector
		e.Metrics = prometheus.NewEngineMetrics(collector)
	}

	clientOpts := []client.Option{
		client.WithHTTPClient(&http.Client{
			Transport: otelhttp.NewTransport(o.transport),
			Timeout:   cfg.Research.Timeout,
		}),
		client.WithAPIKey(cfg.Research.APIKey),
		client.WithAuthScheme(cfg.Research.AuthScheme),
		client.WithPageSize(cfg.Research.PageSize),
		client.WithRateLimit(cfg.Research.RateLimit, cfg.Research.RateBurst),
		client.WithUserAgent(cfg.Research.UserAgent),
		client.WithLogger(logging.Printf(logger.Named("client"))),
	}
	if e.Metrics != nil {
		clientOpts = append(clientOpts, client.WithObserver(e.Metrics))
	}
	c, err := client.NewClient(cfg.Research.BaseURL, clientOpts...)
	if err != nil {
		return nil, err
	}
	e.Client = c

	var gw Gateway = c
	if o.gateway != nil {
		gw = o.gateway
	}

	// A nil *EngineMetrics must not reach the services as a non-nil interface.
	var analyticsRec analytics.Recorder
	var riskRec vendorrisk.Recorder
	if e.Metrics != nil {
		analyticsRec, riskRec = e.Metrics, e.Metrics
	}

	e.Search = appresearch.NewService(gw, logger)
	e.Lookup = lookup.NewService(gw, logger)
	e.Analytics = analytics.NewService(gw, logger, analyticsRec, analyticsOptions(cfg)...)
	e.Risk = vendorrisk.NewService(gw, logger, riskRec)
	return e, nil
}

func analyticsOptions(cfg *config.Config) []analytics.Option {
	return []analytics.Option{
		analytics.WithTopCitations(cfg.Analytics.TopCitationCount),
		analytics.WithTopCourts(cfg.Analytics.TopCourtCount),
	}
}

// Router builds the HTTP route tree over the engine's services.
func (e *Engine) Router(version string) *gin.Engine {
	cfg := e.Config.Server

	cors := middleware.DefaultCORSConfig(cfg.AllowedOrigins...)
	logCfg := middleware.DefaultLoggingConfig()

	rc := httpapi.RouterConfig{
		ResearchHandler: handlers.NewResearchHandler(e.Search, e.Analytics, e.Risk),
		LookupHandler:   handlers.NewLookupHandler(e.Lookup),
		HealthHandler: handlers.NewHealthHandler(version, handlers.PingChecker{
			Component: "research_api",
			Ping:      e.Client.Ping,
		}),
		Logging: &logCfg,
		Logger:  e.Logger.Named("http"),
	}
	if len(cfg.AllowedOrigins) > 0 {
		rc.CORS = &cors
	}
	if cfg.RateLimit > 0 {
		limit := middleware.DefaultRateLimitConfig(cfg.RateLimit, cfg.RateBurst)
		rc.RateLimit = &limit
	}
	if e.Metrics != nil {
		rc.HTTPMetrics = e.Metrics
		rc.MetricsHandler = e.Collector.Handler()
		rc.MetricsPath = e.Config.Metrics.Path
	}
	return httpapi.NewRouter(rc)
}

// Handler is the router wrapped for tracing.
func (e *Engine) Handler(version string) http.Handler {
	return otelhttp.NewHandler(e.Router(version), ServiceName)
}
