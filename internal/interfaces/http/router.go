package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/LegalSpend-Research/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/LegalSpend-Research/internal/interfaces/http/handlers"
	"github.com/turtacn/LegalSpend-Research/internal/interfaces/http/middleware"
)

// RouterConfig aggregates all handler and middleware dependencies required
// to construct the complete HTTP route tree.
type RouterConfig struct {
	// Handlers
	ResearchHandler *handlers.ResearchHandler
	LookupHandler   *handlers.LookupHandler
	HealthHandler   *handlers.HealthHandler

	// Middleware
	CORS      *middleware.CORSConfig
	Logging   *middleware.LoggingConfig
	RateLimit *middleware.RateLimitConfig

	// Infrastructure
	Logger         logging.Logger
	HTTPMetrics    middleware.HTTPRecorder
	MetricsHandler http.Handler
	// MetricsPath defaults to /metrics.
	MetricsPath string
}

// NewRouter constructs the complete HTTP route tree from the given
// configuration. Nil handlers leave their routes unmounted.
func NewRouter(cfg RouterConfig) *gin.Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	r := gin.New()
	r.HandleMethodNotAllowed = true

	// Global middleware (applied to every request)
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID())
	if cfg.CORS != nil {
		r.Use(middleware.CORS(*cfg.CORS))
	}
	if cfg.Logging != nil {
		r.Use(middleware.RequestLogging(logger, *cfg.Logging))
	}
	if cfg.HTTPMetrics != nil {
		r.Use(middleware.Metrics(cfg.HTTPMetrics))
	}
	if cfg.RateLimit != nil {
		r.Use(middleware.RateLimit(*cfg.RateLimit))
	}

	if cfg.HealthHandler != nil {
		r.GET("/healthz", cfg.HealthHandler.Liveness)
		r.GET("/readyz", cfg.HealthHandler.Readiness)
	}
	if cfg.MetricsHandler != nil {
		path := cfg.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		r.GET(path, gin.WrapH(cfg.MetricsHandler))
	}

	api := r.Group("/api/v1")
	registerResearchRoutes(api, cfg.ResearchHandler)
	registerLookupRoutes(api, cfg.LookupHandler)

	return r
}

// registerResearchRoutes mounts search, analytics and vendor risk endpoints.
func registerResearchRoutes(r *gin.RouterGroup, h *handlers.ResearchHandler) {
	if h == nil {
		return
	}
	search := r.Group("/search")
	search.GET("/opinions", h.SearchOpinions)
	search.GET("/registry", h.SearchRegistryRecords)
	search.GET("/judges", h.SearchJudges)

	r.GET("/analytics", h.ComputeAnalytics)
	r.GET("/vendors/:name/risk", h.AssessVendorRisk)
}

// registerLookupRoutes mounts single entity endpoints and citation lookup.
func registerLookupRoutes(r *gin.RouterGroup, h *handlers.LookupHandler) {
	if h == nil {
		return
	}
	r.GET("/courts/:id", h.GetCourt)
	r.GET("/opinions/:id", h.GetOpinion)
	r.GET("/clusters/:id", h.GetOpinionCluster)
	r.GET("/dockets/:id", h.GetDocket)
	r.GET("/judges/:id", h.GetJudge)
	r.POST("/citations/lookup", h.ResolveCitation)
}
