package client

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	lexerrors "github.com/turtacn/LegalSpend-Research/pkg/errors"
	"github.com/turtacn/LegalSpend-Research/pkg/types/research"
)

func serveJSON(t *testing.T, path, body string) *Client {
	return newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != path {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"detail":"No Court matches the given query."}`))
			return
		}
		w.Write([]byte(body))
	})
}

func TestGetCourt(t *testing.T) {
	c := serveJSON(t, "/courts/scotus/", `{
	  "id": "scotus",
	  "full_name": "Supreme Court of the United States",
	  "short_name": "Supreme Court",
	  "jurisdiction": "F",
	  "citation_string": "SCOTUS",
	  "has_opinion_scraper": true,
	  "has_oral_argument_scraper": true,
	  "in_use": true,
	  "start_date": "1789-09-24",
	  "end_date": null
	}`)
	court, err := c.GetCourt(context.Background(), "scotus")
	require.NoError(t, err)
	assert.Equal(t, "Supreme Court of the United States", court.FullName)
	assert.Equal(t, "SCOTUS", court.Citation)
	assert.True(t, court.HasOpinionScraper)
	assert.Equal(t, "1789-09-24", court.StartDate.String())
	assert.True(t, court.EndDate.IsZero())
}

func TestGetCourt_NotFound(t *testing.T) {
	c := serveJSON(t, "/courts/scotus/", `{}`)
	court, err := c.GetCourt(context.Background(), "X")
	assert.Nil(t, court)
	require.Error(t, err)
	assert.True(t, lexerrors.IsNotFound(err))
	assert.True(t, lexerrors.IsLookupFailure(err))
	assert.False(t, lexerrors.IsSearchFailure(err))
	assert.Contains(t, err.Error(), "courts/X status=404")
}

func TestGetCourt_ServerError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	_, err := c.GetCourt(context.Background(), "scotus")
	assert.Equal(t, lexerrors.CodeLookupFailure, lexerrors.GetCode(err))
	assert.False(t, lexerrors.IsNotFound(err))
}

func TestGetEntity_InvalidID(t *testing.T) {
	c, err := NewClient("http://api.example.com")
	require.NoError(t, err)
	for _, id := range []string{"", "  ", "../admin", "1?x=2"} {
		_, err := c.GetDocket(context.Background(), id)
		assert.True(t, lexerrors.IsCode(err, lexerrors.CodeInvalidParam), id)
	}
}

func TestGetOpinion(t *testing.T) {
	c := serveJSON(t, "/opinions/991/", `{
	  "id": 991,
	  "cluster": "https://research.example.com/api/rest/v4/clusters/123/",
	  "author": "https://research.example.com/api/rest/v4/people/1213/",
	  "author_str": "Sotomayor",
	  "joined_by": ["https://research.example.com/api/rest/v4/people/1/", "https://research.example.com/api/rest/v4/people/2/"],
	  "type": "020lead",
	  "per_curiam": false,
	  "plain_text": "",
	  "html_with_citations": "<p>We affirm.</p>",
	  "xml_harvard": "<opinion/>",
	  "extracted_by_ocr": true,
	  "date_created": "2023-02-15T10:00:00Z",
	  "date_modified": "2023-03-01T08:30:00Z"
	}`)
	op, err := c.GetOpinion(context.Background(), "991")
	require.NoError(t, err)
	assert.Equal(t, "991", op.ID)
	assert.Equal(t, "123", op.ClusterID)
	assert.Equal(t, "1213", op.AuthorID)
	assert.Equal(t, []string{"1", "2"}, op.JoinedByIDs)
	assert.Len(t, op.Texts, 2)
	enc, _ := op.PreferredText()
	assert.Equal(t, research.TextHTMLWithCitations, enc)
	assert.True(t, op.ExtractedByOCR)
	assert.Equal(t, 2023, op.DateModified.Year())
}

func TestGetOpinion_WithoutClusterIsMalformed(t *testing.T) {
	c := serveJSON(t, "/opinions/5/", `{"id": 5, "cluster": null}`)
	_, err := c.GetOpinion(context.Background(), "5")
	assert.Equal(t, lexerrors.CodeLookupFailure, lexerrors.GetCode(err))
}

func TestGetOpinionCluster(t *testing.T) {
	c := serveJSON(t, "/clusters/123/", `{
	  "id": 123,
	  "docket": "https://research.example.com/api/rest/v4/dockets/77/",
	  "case_name": "Acme Corp. v. Widget Co.",
	  "judges": "Smith, Jones, Lee",
	  "panel": [],
	  "date_filed": "2023-02-14",
	  "date_filed_is_approximate": true,
	  "precedential_status": "Published",
	  "citation_count": 14,
	  "citations": [{"volume": 45, "reporter": "F.4th", "page": "100"}],
	  "disposition": "Affirmed",
	  "sub_opinions": ["https://research.example.com/api/rest/v4/opinions/991/"]
	}`)
	cl, err := c.GetOpinionCluster(context.Background(), "123")
	require.NoError(t, err)
	assert.Equal(t, "77", cl.DocketID)
	assert.True(t, cl.DateFiledIsApproximate)
	assert.Equal(t, research.StatusPrecedential, cl.PrecedentialStatus)
	assert.Equal(t, []string{"45 F.4th 100"}, cl.Citations)
	assert.Equal(t, []string{"991"}, cl.SubOpinionIDs)
	assert.Empty(t, cl.PanelIDs)
}

func TestGetDocket(t *testing.T) {
	c := serveJSON(t, "/dockets/77/", `{
	  "id": 77,
	  "court": "https://research.example.com/api/rest/v4/courts/ca9/",
	  "court_id": "ca9",
	  "case_name": "Acme Corp. v. Widget Co.",
	  "docket_number": "21-1234",
	  "date_filed": "2021-05-03",
	  "date_terminated": null,
	  "date_argued": "2022-11-08",
	  "nature_of_suit": "Contract",
	  "clusters": ["https://research.example.com/api/rest/v4/clusters/123/"]
	}`)
	d, err := c.GetDocket(context.Background(), "77")
	require.NoError(t, err)
	assert.Equal(t, "ca9", d.CourtID)
	assert.True(t, d.Open())
	assert.Equal(t, "2022-11-08", d.DateArgued.String())
	assert.Equal(t, []string{"123"}, d.ClusterIDs)
}

func TestGetJudge(t *testing.T) {
	c := serveJSON(t, "/people/1213/", `{
	  "id": 1213,
	  "name_first": "Sonia",
	  "name_middle": "Maria",
	  "name_last": "Sotomayor",
	  "date_dob": "1954-06-25",
	  "date_dod": null,
	  "dob_city": "New York",
	  "dob_state": "NY",
	  "gender": "f",
	  "positions": [
	    "https://research.example.com/api/rest/v4/positions/1/",
	    {"id": 2, "court": {"id": "scotus"}, "position_type": "jus", "date_start": "2009-08-08"}
	  ],
	  "educations": [{"id": 9, "school": {"name": "Yale University"}, "degree_level": "jd", "degree_year": 1979}],
	  "political_affiliations": []
	}`)
	j, err := c.GetJudge(context.Background(), "1213")
	require.NoError(t, err)
	assert.Equal(t, "Sonia Maria Sotomayor", j.FullName())
	require.Len(t, j.Positions, 2)
	assert.Equal(t, research.Position{ID: "1"}, j.Positions[0])
	assert.Equal(t, "scotus", j.Positions[1].CourtID)
	assert.Equal(t, "2009-08-08", j.Positions[1].DateStart.String())
	require.Len(t, j.Educations, 1)
	assert.Equal(t, "Yale University", j.Educations[0].School)
	assert.NotNil(t, j.PoliticalAffiliations)
}

func TestResolveCitation(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/citation-lookup/", r.URL.Path)
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "See 576 U.S. 644 and 1 F.9th 1.", r.PostForm.Get("text"))
		w.Write([]byte(`[
		  {"citation": "576 U.S. 644", "normalized_citations": ["576 U.S. 644"], "status": 200, "clusters": [{"id": 2812209}]},
		  {"citation": "1 F.9th 1", "normalized_citations": [], "status": 404, "error_message": "Citation not found", "clusters": []}
		]`))
	})
	matches, err := c.ResolveCitation(context.Background(), "See 576 U.S. 644 and 1 F.9th 1.")
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, []string{"2812209"}, matches[0].ClusterIDs)
	assert.Equal(t, 404, matches[1].Status)
	assert.Equal(t, "Citation not found", matches[1].Message)
	assert.Empty(t, matches[1].ClusterIDs)
}

func TestResolveCitation_Errors(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})
	_, err := c.ResolveCitation(context.Background(), "576 U.S. 644")
	assert.Equal(t, lexerrors.CodeLookupFailure, lexerrors.GetCode(err))

	_, err = c.ResolveCitation(context.Background(), "   ")
	assert.True(t, lexerrors.IsValidation(err))
}

func TestPing(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"courts":"https://example.test/api/rest/v4/courts/"}`))
	})
	assert.NoError(t, c.Ping(context.Background()))

	down := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	err := down.Ping(context.Background())
	require.Error(t, err)
	assert.True(t, lexerrors.IsCode(err, lexerrors.ErrCodeServiceUnavailable))
	assert.Contains(t, err.Error(), "status=503")
}
