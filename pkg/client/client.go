// Package client is the HTTP transport for the external legal research
// service.  It issues exactly one request per call: there is no retry loop and
// no auto-pagination.  Every failure of a search call is reported as a single
// errors.CodeSearchFailure; every failure of an entity read as
// errors.CodeLookupFailure, or errors.CodeLookupNotFound on HTTP 404.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"

	"github.com/turtacn/LegalSpend-Research/pkg/errors"
	"github.com/turtacn/LegalSpend-Research/pkg/requestid"
)

const Version = "0.1.0"

const (
	DefaultPageSize   = 20
	DefaultAuthScheme = "Token"
	maxErrorBody      = 1 << 16
	maxResponseBody   = 32 << 20
)

// Logger defines the logging interface used by the Client
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// noopLogger is a no-op implementation of Logger
type noopLogger struct{}

func (noopLogger) Debugf(format string, args ...interface{}) {}
func (noopLogger) Infof(format string, args ...interface{})  {}
func (noopLogger) Errorf(format string, args ...interface{}) {}

// Observer receives one callback per outbound request.  outcome is one of
// OutcomeSuccess, OutcomeError or OutcomeNotFound.
type Observer interface {
	ObserveGatewayRequest(resource, outcome string, duration time.Duration)
}

const (
	OutcomeSuccess  = "success"
	OutcomeError    = "error"
	OutcomeNotFound = "not_found"
)

type noopObserver struct{}

func (noopObserver) ObserveGatewayRequest(string, string, time.Duration) {}

// Client talks to the research REST API.  A Client is safe for concurrent use
// and is never mutated after construction; WithCredential derives a new one.
type Client struct {
	baseURL    string
	httpClient *http.Client
	apiKey     string
	authScheme string
	userAgent  string
	pageSize   int
	limiter    *rate.Limiter
	logger     Logger
	observer   Observer
}

// APIError is a non-2xx response from the research API.
type APIError struct {
	StatusCode int    `json:"status_code"`
	Detail     string `json:"detail"`
	RequestID  string `json:"request_id"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("research api: HTTP %d: %s [request_id=%s]", e.StatusCode, e.Detail, e.RequestID)
}

func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

func (e *APIError) IsRateLimited() bool {
	return e.StatusCode == http.StatusTooManyRequests
}

func (e *APIError) IsServerError() bool {
	return e.StatusCode >= 500 && e.StatusCode < 600
}

// NewClient creates a research API client.  The credential is optional; when
// absent no Authorization header is sent.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, errors.ErrInvalidConfig.WithDetail("empty base URL")
	}

	parsedURL, err := url.Parse(baseURL)
	if err != nil {
		return nil, errors.ErrInvalidConfig.WithDetail("invalid base URL").WithCause(err)
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return nil, errors.ErrInvalidConfig.WithDetail("base URL scheme must be http or https")
	}

	c := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		authScheme: DefaultAuthScheme,
		userAgent:  fmt.Sprintf("lexrisk-go/%s", Version),
		pageSize:   DefaultPageSize,
		logger:     noopLogger{},
		observer:   noopObserver{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// WithCredential returns a copy of c that authenticates with key.  An empty
// key yields an anonymous copy.  c itself is unchanged.
func (c *Client) WithCredential(key string) *Client {
	clone := *c
	clone.apiKey = key
	return &clone
}

// HasCredential reports whether requests carry an Authorization header.
func (c *Client) HasCredential() bool { return c.apiKey != "" }

// PageSize is the fixed page size sent with every search.
func (c *Client) PageSize() int { return c.pageSize }

// request describes one outbound call.
type request struct {
	method   string
	path     string
	query    url.Values
	form     url.Values
	resource string
}

// do performs exactly one HTTP round trip and decodes a 2xx body into result.
// The returned error is an *APIError for non-2xx responses, or the transport
// or decode error otherwise; callers classify it.
func (c *Client) do(ctx context.Context, r request, result interface{}) (err error) {
	path := r.path
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	fullURL := c.baseURL + path
	if len(r.query) > 0 {
		fullURL += "?" + r.query.Encode()
	}

	start := time.Now()
	defer func() {
		c.observer.ObserveGatewayRequest(r.resource, outcomeOf(err), time.Since(start))
	}()

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter: %w", err)
		}
	}

	var body io.Reader
	if r.form != nil {
		body = strings.NewReader(r.form.Encode())
	}
	req, err := http.NewRequestWithContext(ctx, r.method, fullURL, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	requestID := requestid.FromContextOrNew(ctx)
	if c.apiKey != "" {
		req.Header.Set("Authorization", c.authScheme+" "+c.apiKey)
	}
	if r.form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set(requestid.Header, requestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Errorf("%s %s failed: %v", r.method, path, err)
		return err
	}
	defer resp.Body.Close()
	c.logger.Debugf("%s %s %d (%v)", r.method, path, resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &APIError{
			StatusCode: resp.StatusCode,
			Detail:     errorDetail(raw, resp.Status),
			RequestID:  requestID,
		}
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}
	if err := json.Unmarshal(raw, result); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return nil
}

// errorDetail pulls a human readable message out of an error body.  The API
// answers with {"detail": ...} for most failures but validation errors come
// back keyed by field.
func errorDetail(raw []byte, status string) string {
	if len(raw) == 0 || !gjson.ValidBytes(raw) {
		if s := strings.TrimSpace(string(raw)); s != "" && len(s) <= 200 {
			return s
		}
		return status
	}
	for _, path := range []string{"detail", "message", "error", "non_field_errors.0"} {
		if v := gjson.GetBytes(raw, path); v.Exists() && v.String() != "" {
			return v.String()
		}
	}
	var parts []string
	gjson.ParseBytes(raw).ForEach(func(key, value gjson.Result) bool {
		msg := value.String()
		if value.IsArray() {
			msg = value.Get("0").String()
		}
		parts = append(parts, key.String()+": "+msg)
		return true
	})
	if len(parts) == 0 {
		return status
	}
	return strings.Join(parts, "; ")
}

func outcomeOf(err error) string {
	if err == nil {
		return OutcomeSuccess
	}
	if apiErr, ok := err.(*APIError); ok && apiErr.IsNotFound() {
		return OutcomeNotFound
	}
	return OutcomeError
}

func statusDetail(err error) string {
	if apiErr, ok := err.(*APIError); ok {
		return fmt.Sprintf("status=%d", apiErr.StatusCode)
	}
	return ""
}
