package handlers

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthChecker is an interface for components that can report their health.
type HealthChecker interface {
	Name() string
	Check(ctx context.Context) error
}

// PingChecker adapts a ping function, such as client.Client.Ping, into a
// HealthChecker.
type PingChecker struct {
	Component string
	Ping      func(ctx context.Context) error
}

func (p PingChecker) Name() string                    { return p.Component }
func (p PingChecker) Check(ctx context.Context) error { return p.Ping(ctx) }

// HealthHandler handles health check HTTP requests.
type HealthHandler struct {
	checkers []HealthChecker
	version  string
	startAt  time.Time
	timeout  time.Duration
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(version string, checkers ...HealthChecker) *HealthHandler {
	return &HealthHandler{
		checkers: checkers,
		version:  version,
		startAt:  time.Now(),
		timeout:  5 * time.Second,
	}
}

// LivenessResponse is the response for liveness probe.
type LivenessResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Uptime  string `json:"uptime"`
}

// ReadinessResponse is the response for readiness probe.
type ReadinessResponse struct {
	Status     string                    `json:"status"`
	Components map[string]ComponentCheck `json:"components,omitempty"`
}

// ComponentCheck represents the health status of a single component.
type ComponentCheck struct {
	Status  string `json:"status"`
	Latency string `json:"latency,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Liveness handles GET /healthz.  It never checks dependencies.
func (h *HealthHandler) Liveness(c *gin.Context) {
	writeJSON(c, http.StatusOK, LivenessResponse{
		Status:  "alive",
		Version: h.version,
		Uptime:  time.Since(h.startAt).Truncate(time.Second).String(),
	})
}

// Readiness handles GET /readyz.  It returns 503 when any checker fails.
// The research operations keep answering with degraded data in that state;
// readiness only reports it.
func (h *HealthHandler) Readiness(c *gin.Context) {
	if len(h.checkers) == 0 {
		writeJSON(c, http.StatusOK, ReadinessResponse{Status: "ready"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()
	components := h.checkAll(ctx)

	resp := ReadinessResponse{Status: "ready", Components: components}
	code := http.StatusOK
	for _, cc := range components {
		if cc.Status != "healthy" {
			resp.Status = "not_ready"
			code = http.StatusServiceUnavailable
			break
		}
	}
	writeJSON(c, code, resp)
}

// checkAll runs all health checkers concurrently and returns results.
func (h *HealthHandler) checkAll(ctx context.Context) map[string]ComponentCheck {
	results := make(map[string]ComponentCheck, len(h.checkers))
	var mu sync.Mutex
	var wg sync.WaitGroup

	for _, checker := range h.checkers {
		wg.Add(1)
		go func(hc HealthChecker) {
			defer wg.Done()

			start := time.Now()
			err := hc.Check(ctx)
			cc := ComponentCheck{
				Status:  "healthy",
				Latency: time.Since(start).Truncate(time.Microsecond).String(),
			}
			if err != nil {
				cc.Status = "unhealthy"
				cc.Error = err.Error()
			}

			mu.Lock()
			results[hc.Name()] = cc
			mu.Unlock()
		}(checker)
	}

	wg.Wait()
	return results
}
