package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/LegalSpend-Research/internal/application/lookup"
	"github.com/turtacn/LegalSpend-Research/internal/testutil"
	"github.com/turtacn/LegalSpend-Research/pkg/errors"
	"github.com/turtacn/LegalSpend-Research/pkg/types/research"
)

func newLookupRouter(gw *testutil.MockGateway) *gin.Engine {
	h := NewLookupHandler(lookup.NewService(gw, nil))
	r := gin.New()
	r.GET("/courts/:id", h.GetCourt)
	r.GET("/opinions/:id", h.GetOpinion)
	r.GET("/clusters/:id", h.GetOpinionCluster)
	r.GET("/dockets/:id", h.GetDocket)
	r.GET("/judges/:id", h.GetJudge)
	r.POST("/citations/lookup", h.ResolveCitation)
	return r
}

func TestGetCourt(t *testing.T) {
	gw := new(testutil.MockGateway)
	gw.On("GetCourt", mock.Anything, "scotus").
		Return(&research.Court{ID: "scotus", FullName: "Supreme Court of the United States"}, nil)

	rec := serve(newLookupRouter(gw), httptest.NewRequest(http.MethodGet, "/courts/scotus", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "scotus", body["id"])
	assert.Equal(t, "Supreme Court of the United States", body["full_name"])
}

func TestGetEntity_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		method string
		err    error
		status int
		code   errors.ErrorCode
	}{
		{"not found", "/opinions/9", "GetOpinion", errors.New(errors.CodeLookupNotFound, "opinions 9 not found"), http.StatusNotFound, errors.CodeLookupNotFound},
		{"transport", "/clusters/9", "GetOpinionCluster", errors.New(errors.CodeLookupFailure, "research lookup failed"), http.StatusBadGateway, errors.CodeLookupFailure},
		{"docket", "/dockets/9", "GetDocket", errors.New(errors.CodeLookupFailure, "research lookup failed"), http.StatusBadGateway, errors.CodeLookupFailure},
		{"judge", "/judges/9", "GetJudge", errors.New(errors.CodeLookupNotFound, "people 9 not found"), http.StatusNotFound, errors.CodeLookupNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw := new(testutil.MockGateway)
			gw.On(tt.method, mock.Anything, "9").Return(nil, tt.err)

			rec := serve(newLookupRouter(gw), httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.code.String(), decode(t, rec)["code"])
		})
	}
}

func TestResolveCitation_JSON(t *testing.T) {
	gw := new(testutil.MockGateway)
	gw.On("ResolveCitation", mock.Anything, "410 U.S. 113").Return([]research.CitationMatch{
		{Citation: "410 U.S. 113", Status: 200, ClusterIDs: []string{"108713"}},
	}, nil)

	req := httptest.NewRequest(http.MethodPost, "/citations/lookup", strings.NewReader(`{"text":"410 U.S. 113"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := serve(newLookupRouter(gw), req)

	require.Equal(t, http.StatusOK, rec.Code)
	matches := decode(t, rec)["matches"].([]interface{})
	require.Len(t, matches, 1)
	assert.Equal(t, "410 U.S. 113", matches[0].(map[string]interface{})["citation"])
}

func TestResolveCitation_FormNoMatches(t *testing.T) {
	gw := new(testutil.MockGateway)
	gw.On("ResolveCitation", mock.Anything, "nothing here").Return(nil, nil)

	form := url.Values{"text": {"nothing here"}}
	req := httptest.NewRequest(http.MethodPost, "/citations/lookup", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := serve(newLookupRouter(gw), req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"matches":[]}`, rec.Body.String())
}

func TestResolveCitation_MissingText(t *testing.T) {
	gw := new(testutil.MockGateway)

	req := httptest.NewRequest(http.MethodPost, "/citations/lookup", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	rec := serve(newLookupRouter(gw), req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, errors.CodeInvalidParam.String(), decode(t, rec)["code"])
	gw.AssertNotCalled(t, "ResolveCitation", mock.Anything, mock.Anything)
}
