package client

import (
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// Option is a functional option for configuring the Client
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithTimeout sets the per-request timeout of the default HTTP client
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			clone := *c.httpClient
			clone.Timeout = timeout
			c.httpClient = &clone
		}
	}
}

// WithLogger sets a custom logger
func WithLogger(logger Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithObserver sets the per-request metrics hook
func WithObserver(observer Observer) Option {
	return func(c *Client) {
		if observer != nil {
			c.observer = observer
		}
	}
}

// WithAPIKey sets the credential attached to every request
func WithAPIKey(apiKey string) Option {
	return func(c *Client) {
		c.apiKey = apiKey
	}
}

// WithAuthScheme sets the Authorization scheme, "Token" by default
func WithAuthScheme(scheme string) Option {
	return func(c *Client) {
		if scheme != "" {
			c.authScheme = scheme
		}
	}
}

// WithPageSize sets the fixed search page size
func WithPageSize(size int) Option {
	return func(c *Client) {
		if size > 0 {
			c.pageSize = size
		}
	}
}

// WithRateLimit paces outbound requests to rps with the given burst.  A
// non-positive rps disables pacing.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithUserAgent sets a custom User-Agent string
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		if userAgent != "" {
			c.userAgent = userAgent
		}
	}
}
