package bootstrap

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/LegalSpend-Research/internal/config"
	"github.com/turtacn/LegalSpend-Research/internal/testutil"
	"github.com/turtacn/LegalSpend-Research/pkg/types/research"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func fakeResearchAPI(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"detail":"Not found."}`))
			return
		}
		_, _ = w.Write([]byte(`{"courts":"/courts/"}`))
	})
	mux.HandleFunc("/courts/ca9/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":"ca9","full_name":"Court of Appeals for the Ninth Circuit","in_use":true}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func testConfig(baseURL string) *config.Config {
	cfg := config.NewDefaultConfig()
	cfg.Research.BaseURL = baseURL
	cfg.Metrics.Namespace = "bootstrap_test"
	return cfg
}

func get(h http.Handler, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestNewEngine_EndToEnd(t *testing.T) {
	api := fakeResearchAPI(t)
	e, err := NewEngine(testConfig(api.URL), testutil.NewMockLogger())
	require.NoError(t, err)
	require.NotNil(t, e.Metrics)
	h := e.Handler("test")

	rec := get(h, "/api/v1/courts/ca9")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Ninth Circuit")

	rec = get(h, "/api/v1/courts/nope")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = get(h, "/readyz")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = get(h, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `bootstrap_test_gateway_requests_total{outcome="success",resource="courts"} 1`)
	assert.Contains(t, rec.Body.String(), `bootstrap_test_gateway_requests_total{outcome="not_found",resource="courts"} 1`)
}

func TestNewEngine_ForwardsInboundRequestID(t *testing.T) {
	var outbound string
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		outbound = r.Header.Get("X-Request-ID")
		_, _ = w.Write([]byte(`{"id":"ca9","full_name":"Court of Appeals for the Ninth Circuit"}`))
	}))
	t.Cleanup(api.Close)
	cfg := testConfig(api.URL)
	cfg.Metrics.Enabled = false

	e, err := NewEngine(cfg, nil)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/courts/ca9", nil)
	req.Header.Set("X-Request-ID", "inbound-123")
	rec := httptest.NewRecorder()
	e.Handler("test").ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "inbound-123", rec.Header().Get("X-Request-ID"))
	assert.Equal(t, "inbound-123", outbound)
}

func TestNewEngine_ReadinessReportsUnreachableAPI(t *testing.T) {
	api := fakeResearchAPI(t)
	cfg := testConfig(api.URL)
	api.Close()

	e, err := NewEngine(cfg, nil)
	require.NoError(t, err)

	rec := get(e.Router("test"), "/readyz")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "research_api")
}

func TestNewEngine_MetricsDisabled(t *testing.T) {
	cfg := testConfig("https://research.example.com")
	cfg.Metrics.Enabled = false

	e, err := NewEngine(cfg, nil)
	require.NoError(t, err)

	assert.Nil(t, e.Collector)
	assert.Nil(t, e.Metrics)
	assert.Equal(t, http.StatusNotFound, get(e.Router("test"), "/metrics").Code)
}

func TestNewEngine_WithGateway(t *testing.T) {
	gw := new(testutil.MockGateway)
	gw.On("Search", mock.Anything, mock.Anything).Return(nil, assert.AnError)

	e, err := NewEngine(testConfig("https://research.example.com"), nil, WithGateway(gw))
	require.NoError(t, err)

	profile, err := e.Risk.AssessVendorRisk(context.Background(), "Acme")
	require.NoError(t, err)
	assert.True(t, profile.Degraded)
	assert.Equal(t, 0, profile.RiskScore)
	assert.Len(t, profile.Failures, 2)
	assert.Equal(t, research.ResourceOpinion, profile.Failures[0].Resource)
}

func TestNewEngine_InvalidBaseURL(t *testing.T) {
	_, err := NewEngine(testConfig("ftp://research.example.com"), nil)
	assert.Error(t, err)
}
