package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/turtacn/LegalSpend-Research/pkg/errors"
	"github.com/turtacn/LegalSpend-Research/pkg/types/research"
)

// Search issues one search request for q.Type and returns one page.  The
// query is sent as given; callers normalize it first.  Any failure (network,
// non-2xx, malformed body, unknown resource type) is returned as
// errors.CodeSearchFailure.
func (c *Client) Search(ctx context.Context, q research.SearchQuery) (*research.SearchResult, error) {
	rt := q.Type
	if rt == "" {
		rt = research.ResourceOpinion
	}
	if !rt.IsValid() {
		return nil, searchFailure(rt, fmt.Errorf("unknown resource type %q", string(rt)))
	}

	var page wireSearchPage
	err := c.do(ctx, request{
		method:   http.MethodGet,
		path:     "/search/",
		query:    c.searchParams(q, rt),
		resource: string(rt),
	}, &page)
	if err != nil {
		return nil, searchFailure(rt, err)
	}
	if page.Count == nil || page.Results == nil {
		return nil, searchFailure(rt, fmt.Errorf("response is missing count or results"))
	}

	result := &research.SearchResult{
		Count:          *page.Count,
		NextCursor:     cursorOf(page.Next),
		PreviousCursor: cursorOf(page.Previous),
		ResourceType:   rt,
		Records:        make([]research.Record, 0, len(page.Results)),
	}
	for i, raw := range page.Results {
		rec, err := decodeRecord(rt, raw)
		if err != nil {
			return nil, searchFailure(rt, fmt.Errorf("result %d: %w", i, err))
		}
		result.Records = append(result.Records, rec)
	}
	return result, nil
}

func (c *Client) searchParams(q research.SearchQuery, rt research.ResourceType) url.Values {
	v := url.Values{}
	v.Set("q", q.Query)
	v.Set("type", rt.SearchCode())
	set := func(key, val string) {
		if val != "" {
			v.Set(key, val)
		}
	}
	set("court", q.Court)
	set("judge", q.Judge)
	set("case_name", q.CaseName)
	set("docket_number", q.DocketNumber)
	set("citation", q.Citation)
	set("filed_after", q.FiledAfter)
	set("filed_before", q.FiledBefore)
	set("order_by", q.OrderBy)
	set("cursor", q.Cursor)
	for _, s := range q.Statuses {
		v.Set(s.FilterParam(), "on")
	}
	v.Set("page_size", itoa(c.pageSize))
	v.Set("format", "json")
	return v
}

func searchFailure(rt research.ResourceType, cause error) *errors.AppError {
	detail := "resource=" + string(rt)
	if s := statusDetail(cause); s != "" {
		detail += " " + s
	}
	return errors.Wrap(cause, errors.CodeSearchFailure, "research search failed").WithDetail(detail)
}
