package prometheus

import (
	"strconv"
	"time"
)

// EngineMetrics holds every metric the research engine records.
type EngineMetrics struct {
	// HTTP API
	HTTPRequestsTotal   CounterVec
	HTTPRequestDuration HistogramVec
	HTTPActiveRequests  GaugeVec

	// Research gateway
	GatewayRequestsTotal   CounterVec
	GatewayRequestDuration HistogramVec

	// Degrade-to-empty substitutions, by operation
	FallbackDegradedTotal CounterVec

	// Aggregates
	AnalyticsSnapshotsTotal CounterVec
	RiskAssessmentsTotal    CounterVec
	RiskScore               HistogramVec
}

var (
	DefaultHTTPDurationBuckets    = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}
	DefaultGatewayDurationBuckets = []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30}
	RiskScoreBuckets              = []float64{0, 10, 20, 30, 40, 50, 60, 70, 80, 90, 100}
)

// NewEngineMetrics registers all engine metrics on collector.
func NewEngineMetrics(collector MetricsCollector) *EngineMetrics {
	return &EngineMetrics{
		HTTPRequestsTotal:   collector.RegisterCounter("http_requests_total", "Total HTTP API requests", "method", "path", "status_code"),
		HTTPRequestDuration: collector.RegisterHistogram("http_request_duration_seconds", "HTTP API request duration", DefaultHTTPDurationBuckets, "method", "path"),
		HTTPActiveRequests:  collector.RegisterGauge("http_active_requests", "In-flight HTTP API requests", "method"),

		GatewayRequestsTotal:   collector.RegisterCounter("gateway_requests_total", "Outbound research API requests", "resource", "outcome"),
		GatewayRequestDuration: collector.RegisterHistogram("gateway_request_duration_seconds", "Outbound research API request duration", DefaultGatewayDurationBuckets, "resource"),

		FallbackDegradedTotal: collector.RegisterCounter("fallback_degraded_total", "Research calls replaced by an empty result", "operation"),

		AnalyticsSnapshotsTotal: collector.RegisterCounter("analytics_snapshots_total", "Analytics snapshots computed", "timeframe", "degraded"),
		RiskAssessmentsTotal:    collector.RegisterCounter("risk_assessments_total", "Vendor risk assessments computed", "degraded"),
		RiskScore:               collector.RegisterHistogram("risk_score", "Distribution of composite vendor risk scores", RiskScoreBuckets),
	}
}

// ObserveGatewayRequest records one outbound research call.  EngineMetrics
// satisfies client.Observer.
func (m *EngineMetrics) ObserveGatewayRequest(resource, outcome string, d time.Duration) {
	m.GatewayRequestsTotal.WithLabelValues(resource, outcome).Inc()
	m.GatewayRequestDuration.WithLabelValues(resource).Observe(d.Seconds())
}

// RecordFallback counts one degraded branch.
func (m *EngineMetrics) RecordFallback(operation string) {
	m.FallbackDegradedTotal.WithLabelValues(operation).Inc()
}

// RecordSnapshot counts one analytics snapshot.
func (m *EngineMetrics) RecordSnapshot(timeframe string, degraded bool) {
	m.AnalyticsSnapshotsTotal.WithLabelValues(timeframe, strconv.FormatBool(degraded)).Inc()
}

// RecordRiskAssessment counts one vendor assessment and its score.
func (m *EngineMetrics) RecordRiskAssessment(score int, degraded bool) {
	m.RiskAssessmentsTotal.WithLabelValues(strconv.FormatBool(degraded)).Inc()
	m.RiskScore.WithLabelValues().Observe(float64(score))
}

// RecordHTTPRequest records one served API request.  path is the route
// template, never the raw URL.
func (m *EngineMetrics) RecordHTTPRequest(method, path string, statusCode int, d time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(statusCode)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(d.Seconds())
}

// TrackActiveRequest increments the in-flight gauge for method and returns
// the matching decrement.
func (m *EngineMetrics) TrackActiveRequest(method string) (done func()) {
	g := m.HTTPActiveRequests.WithLabelValues(method)
	g.Inc()
	return g.Dec
}
