package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/LegalSpend-Research/internal/application/analytics"
	"github.com/turtacn/LegalSpend-Research/pkg/types/research"
)

// SearchService is the direct search surface.
type SearchService interface {
	SearchOpinions(ctx context.Context, q research.SearchQuery) (*research.SearchResult, error)
	SearchRegistryRecords(ctx context.Context, q research.SearchQuery) (*research.SearchResult, error)
	SearchJudges(ctx context.Context, q research.SearchQuery) (*research.SearchResult, error)
}

// AnalyticsService computes analytics snapshots.
type AnalyticsService interface {
	ComputeAnalytics(ctx context.Context, p analytics.Params) (*research.LegalAnalyticsSnapshot, error)
}

// RiskService assesses vendor risk.
type RiskService interface {
	AssessVendorRisk(ctx context.Context, vendorName string) (*research.VendorRiskProfile, error)
}

// ResearchHandler serves the search, analytics and vendor risk endpoints.
type ResearchHandler struct {
	search    SearchService
	analytics AnalyticsService
	risk      RiskService
}

// NewResearchHandler creates a ResearchHandler.
func NewResearchHandler(search SearchService, analytics AnalyticsService, risk RiskService) *ResearchHandler {
	return &ResearchHandler{search: search, analytics: analytics, risk: risk}
}

// SearchOpinions handles GET /api/v1/search/opinions.
func (h *ResearchHandler) SearchOpinions(c *gin.Context) {
	h.serveSearch(c, h.search.SearchOpinions)
}

// SearchRegistryRecords handles GET /api/v1/search/registry.
func (h *ResearchHandler) SearchRegistryRecords(c *gin.Context) {
	h.serveSearch(c, h.search.SearchRegistryRecords)
}

// SearchJudges handles GET /api/v1/search/judges.
func (h *ResearchHandler) SearchJudges(c *gin.Context) {
	h.serveSearch(c, h.search.SearchJudges)
}

func (h *ResearchHandler) serveSearch(c *gin.Context, run func(context.Context, research.SearchQuery) (*research.SearchResult, error)) {
	var q research.SearchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		writeBindError(c, err)
		return
	}
	res, err := run(c.Request.Context(), q)
	if err != nil {
		writeAppError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, res)
}

// ComputeAnalytics handles GET /api/v1/analytics.
func (h *ResearchHandler) ComputeAnalytics(c *gin.Context) {
	var p analytics.Params
	if err := c.ShouldBindQuery(&p); err != nil {
		writeBindError(c, err)
		return
	}
	snap, err := h.analytics.ComputeAnalytics(c.Request.Context(), p)
	if err != nil {
		writeAppError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, snap)
}

// AssessVendorRisk handles GET /api/v1/vendors/:name/risk.
func (h *ResearchHandler) AssessVendorRisk(c *gin.Context) {
	profile, err := h.risk.AssessVendorRisk(c.Request.Context(), c.Param("name"))
	if err != nil {
		writeAppError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, profile)
}
