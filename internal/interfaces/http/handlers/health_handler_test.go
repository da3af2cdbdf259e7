package handlers

import (
	"context"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHealthRouter(h *HealthHandler) *gin.Engine {
	r := gin.New()
	r.GET("/healthz", h.Liveness)
	r.GET("/readyz", h.Readiness)
	return r
}

func ping(err error) func(context.Context) error {
	return func(context.Context) error { return err }
}

func TestLiveness(t *testing.T) {
	h := NewHealthHandler("1.2.3", PingChecker{Component: "research_api", Ping: ping(stderrors.New("down"))})

	rec := serve(newHealthRouter(h), httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "alive", body["status"])
	assert.Equal(t, "1.2.3", body["version"])
}

func TestReadiness_NoCheckers(t *testing.T) {
	rec := serve(newHealthRouter(NewHealthHandler("dev")), httptest.NewRequest(http.MethodGet, "/readyz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ready"}`, rec.Body.String())
}

func TestReadiness_AllHealthy(t *testing.T) {
	h := NewHealthHandler("dev", PingChecker{Component: "research_api", Ping: ping(nil)})

	rec := serve(newHealthRouter(h), httptest.NewRequest(http.MethodGet, "/readyz", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "ready", body["status"])
	component := body["components"].(map[string]interface{})["research_api"].(map[string]interface{})
	assert.Equal(t, "healthy", component["status"])
}

func TestReadiness_Unhealthy(t *testing.T) {
	h := NewHealthHandler("dev",
		PingChecker{Component: "research_api", Ping: ping(stderrors.New("research api unreachable"))},
		PingChecker{Component: "other", Ping: ping(nil)},
	)

	rec := serve(newHealthRouter(h), httptest.NewRequest(http.MethodGet, "/readyz", nil))

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "not_ready", body["status"])
	components := body["components"].(map[string]interface{})
	assert.Equal(t, "unhealthy", components["research_api"].(map[string]interface{})["status"])
	assert.Equal(t, "research api unreachable", components["research_api"].(map[string]interface{})["error"])
	assert.Equal(t, "healthy", components["other"].(map[string]interface{})["status"])
}
