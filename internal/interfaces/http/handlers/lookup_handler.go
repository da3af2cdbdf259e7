package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/LegalSpend-Research/pkg/types/research"
)

// LookupService resolves single entities.
type LookupService interface {
	GetCourt(ctx context.Context, id string) (*research.Court, error)
	GetOpinion(ctx context.Context, id string) (*research.Opinion, error)
	GetOpinionCluster(ctx context.Context, id string) (*research.OpinionCluster, error)
	GetDocket(ctx context.Context, id string) (*research.Docket, error)
	GetJudge(ctx context.Context, id string) (*research.Judge, error)
	ResolveCitation(ctx context.Context, text string) ([]research.CitationMatch, error)
}

// LookupHandler serves the entity endpoints.
type LookupHandler struct {
	svc LookupService
}

// NewLookupHandler creates a LookupHandler.
func NewLookupHandler(svc LookupService) *LookupHandler {
	return &LookupHandler{svc: svc}
}

// CitationLookupRequest is the body of POST /api/v1/citations/lookup.
type CitationLookupRequest struct {
	Text string `json:"text" form:"text" binding:"required"`
}

// CitationLookupResponse lists the citations found in the text.
type CitationLookupResponse struct {
	Matches []research.CitationMatch `json:"matches"`
}

func (h *LookupHandler) GetCourt(c *gin.Context) {
	serveEntity(c, h.svc.GetCourt)
}

func (h *LookupHandler) GetOpinion(c *gin.Context) {
	serveEntity(c, h.svc.GetOpinion)
}

func (h *LookupHandler) GetOpinionCluster(c *gin.Context) {
	serveEntity(c, h.svc.GetOpinionCluster)
}

func (h *LookupHandler) GetDocket(c *gin.Context) {
	serveEntity(c, h.svc.GetDocket)
}

func (h *LookupHandler) GetJudge(c *gin.Context) {
	serveEntity(c, h.svc.GetJudge)
}

// ResolveCitation handles POST /api/v1/citations/lookup with a JSON or form
// body.
func (h *LookupHandler) ResolveCitation(c *gin.Context) {
	var req CitationLookupRequest
	if err := c.ShouldBind(&req); err != nil {
		writeBindError(c, err)
		return
	}
	matches, err := h.svc.ResolveCitation(c.Request.Context(), req.Text)
	if err != nil {
		writeAppError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, CitationLookupResponse{Matches: matches})
}

func serveEntity[T any](c *gin.Context, fetch func(context.Context, string) (*T, error)) {
	v, err := fetch(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeAppError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, v)
}
