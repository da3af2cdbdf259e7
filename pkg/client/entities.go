package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/turtacn/LegalSpend-Research/pkg/errors"
	"github.com/turtacn/LegalSpend-Research/pkg/types/research"
)

// Entity reads propagate every failure.  A 404 is errors.CodeLookupNotFound,
// anything else errors.CodeLookupFailure.

// GetCourt fetches a court by id.
func (c *Client) GetCourt(ctx context.Context, id string) (*research.Court, error) {
	var w wireCourt
	if err := c.getEntity(ctx, "courts", id, &w); err != nil {
		return nil, err
	}
	return w.model(), nil
}

// GetOpinion fetches an opinion by id.
func (c *Client) GetOpinion(ctx context.Context, id string) (*research.Opinion, error) {
	var w wireOpinion
	if err := c.getEntity(ctx, "opinions", id, &w); err != nil {
		return nil, err
	}
	op, err := w.model()
	if err != nil {
		return nil, lookupFailure("opinions", id, err)
	}
	return op, nil
}

// GetOpinionCluster fetches an opinion cluster by id.
func (c *Client) GetOpinionCluster(ctx context.Context, id string) (*research.OpinionCluster, error) {
	var w wireCluster
	if err := c.getEntity(ctx, "clusters", id, &w); err != nil {
		return nil, err
	}
	return w.model(), nil
}

// GetDocket fetches a docket by id.
func (c *Client) GetDocket(ctx context.Context, id string) (*research.Docket, error) {
	var w wireDocket
	if err := c.getEntity(ctx, "dockets", id, &w); err != nil {
		return nil, err
	}
	return w.model(), nil
}

// GetJudge fetches a person record by id.
func (c *Client) GetJudge(ctx context.Context, id string) (*research.Judge, error) {
	var w wirePerson
	if err := c.getEntity(ctx, "people", id, &w); err != nil {
		return nil, err
	}
	return w.model(), nil
}

// ResolveCitation sends free text to the citation lookup endpoint and returns
// one match per citation found in it.
func (c *Client) ResolveCitation(ctx context.Context, text string) ([]research.CitationMatch, error) {
	if strings.TrimSpace(text) == "" {
		return nil, errors.New(errors.CodeInvalidParam, "citation text is required")
	}
	var matches []wireCitationMatch
	err := c.do(ctx, request{
		method:   http.MethodPost,
		path:     "/citation-lookup/",
		form:     url.Values{"text": {text}},
		resource: "citation-lookup",
	}, &matches)
	if err != nil {
		return nil, lookupFailure("citation-lookup", "", err)
	}
	out := make([]research.CitationMatch, 0, len(matches))
	for i := range matches {
		out = append(out, matches[i].model())
	}
	return out, nil
}

func (c *Client) getEntity(ctx context.Context, collection, id string, into interface{}) error {
	id = strings.TrimSpace(id)
	if id == "" || strings.ContainsAny(id, "/?#") {
		return errors.New(errors.CodeInvalidParam, "invalid entity id").WithDetail(collection + "/" + id)
	}
	err := c.do(ctx, request{
		method:   http.MethodGet,
		path:     fmt.Sprintf("/%s/%s/", collection, url.PathEscape(id)),
		resource: collection,
	}, into)
	if err != nil {
		return lookupFailure(collection, id, err)
	}
	return nil
}

func lookupFailure(collection, id string, cause error) *errors.AppError {
	detail := collection
	if id != "" {
		detail += "/" + id
	}
	if s := statusDetail(cause); s != "" {
		detail += " " + s
	}
	if apiErr, ok := cause.(*APIError); ok && apiErr.IsNotFound() {
		return errors.Wrap(cause, errors.CodeLookupNotFound, "research entity not found").WithDetail(detail)
	}
	return errors.Wrap(cause, errors.CodeLookupFailure, "research lookup failed").WithDetail(detail)
}

// Ping checks that the research API answers.  It is used by readiness probes
// and never by the research operations themselves.
func (c *Client) Ping(ctx context.Context) error {
	var root map[string]interface{}
	if err := c.do(ctx, request{method: http.MethodGet, path: "/", resource: "ping"}, &root); err != nil {
		return errors.Wrap(err, errors.ErrCodeServiceUnavailable, "research api unreachable").WithDetail(statusDetail(err))
	}
	return nil
}
