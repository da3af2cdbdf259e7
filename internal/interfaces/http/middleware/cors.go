package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// CORSConfig holds configuration for CORS middleware.
type CORSConfig struct {
	// AllowedOrigins is a list of origins that are allowed to make cross-origin requests.
	// Use ["*"] to allow all origins.
	AllowedOrigins []string

	// AllowedMethods is a list of HTTP methods allowed for cross-origin requests.
	AllowedMethods []string

	// AllowedHeaders is a list of request headers allowed for cross-origin requests.
	AllowedHeaders []string

	// ExposedHeaders is a list of response headers exposed to the client.
	ExposedHeaders []string

	// MaxAge indicates how long (in seconds) preflight results can be cached.
	MaxAge int
}

// DefaultCORSConfig returns the CORS configuration for the given origins.
func DefaultCORSConfig(origins ...string) CORSConfig {
	return CORSConfig{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", HeaderRequestID},
		ExposedHeaders: []string{HeaderRequestID, "Retry-After", "X-RateLimit-Limit"},
		MaxAge:         86400,
	}
}

// CORS answers preflight requests and sets the Access-Control headers for
// allowed origins.  Requests without an Origin header pass untouched.
func CORS(config CORSConfig) gin.HandlerFunc {
	allowedMethods := strings.Join(config.AllowedMethods, ", ")
	allowedHeaders := strings.Join(config.AllowedHeaders, ", ")
	exposedHeaders := strings.Join(config.ExposedHeaders, ", ")
	maxAge := strconv.Itoa(config.MaxAge)

	originSet := make(map[string]bool, len(config.AllowedOrigins))
	allowAll := false
	for _, origin := range config.AllowedOrigins {
		if origin == "*" {
			allowAll = true
			continue
		}
		originSet[strings.ToLower(strings.TrimRight(origin, "/"))] = true
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin == "" || !(allowAll || originSet[strings.ToLower(origin)]) {
			c.Next()
			return
		}

		h := c.Writer.Header()
		h.Add("Vary", "Origin")
		if allowAll {
			h.Set("Access-Control-Allow-Origin", "*")
		} else {
			h.Set("Access-Control-Allow-Origin", origin)
		}

		if c.Request.Method == http.MethodOptions {
			h.Set("Access-Control-Allow-Methods", allowedMethods)
			h.Set("Access-Control-Allow-Headers", allowedHeaders)
			if config.MaxAge > 0 {
				h.Set("Access-Control-Max-Age", maxAge)
			}
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		if exposedHeaders != "" {
			h.Set("Access-Control-Expose-Headers", exposedHeaders)
		}
		c.Next()
	}
}
