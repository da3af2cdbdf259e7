package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/turtacn/LegalSpend-Research/pkg/errors"
)

// RateLimitConfig holds configuration for the rate limit middleware.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained request rate per client.
	RequestsPerSecond float64
	// BurstSize is the maximum burst size above the sustained rate.
	BurstSize int
	// SkipPaths are paths that bypass rate limiting.
	SkipPaths []string
	// IdleTTL is how long an unused client limiter is kept.
	IdleTTL time.Duration
}

// DefaultRateLimitConfig returns a rate limit configuration for rps and burst.
func DefaultRateLimitConfig(rps float64, burst int) RateLimitConfig {
	return RateLimitConfig{
		RequestsPerSecond: rps,
		BurstSize:         burst,
		SkipPaths:         []string{"/healthz", "/readyz", "/metrics"},
		IdleTTL:           10 * time.Minute,
	}
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// ClientLimiter keeps one token bucket per client key.
type ClientLimiter struct {
	mu        sync.Mutex
	rps       rate.Limit
	burst     int
	ttl       time.Duration
	clients   map[string]*clientLimiter
	nextSweep time.Time
	now       func() time.Time
}

// NewClientLimiter creates a ClientLimiter.  Entries idle for longer than ttl
// are dropped by a sweep that runs on access at most once per ttl, so an idle
// entry lives for less than 2*ttl.
func NewClientLimiter(rps float64, burst int, ttl time.Duration) *ClientLimiter {
	if burst < 1 {
		burst = 1
	}
	return &ClientLimiter{
		rps:     rate.Limit(rps),
		burst:   burst,
		ttl:     ttl,
		clients: make(map[string]*clientLimiter),
		now:     time.Now,
	}
}

// Reserve takes a token for key.  When none is available it returns false and
// the wait until one will be.
func (l *ClientLimiter) Reserve(key string) (bool, time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.evict(now)
	cl, ok := l.clients[key]
	if !ok {
		cl = &clientLimiter{limiter: rate.NewLimiter(l.rps, l.burst)}
		l.clients[key] = cl
	}
	cl.lastSeen = now

	r := cl.limiter.ReserveN(now, 1)
	if !r.OK() {
		return false, time.Second
	}
	if delay := r.DelayFrom(now); delay > 0 {
		r.CancelAt(now)
		return false, delay
	}
	return true, 0
}

func (l *ClientLimiter) evict(now time.Time) {
	if l.ttl <= 0 || now.Before(l.nextSweep) {
		return
	}
	l.nextSweep = now.Add(l.ttl)
	for key, cl := range l.clients {
		if now.Sub(cl.lastSeen) > l.ttl {
			delete(l.clients, key)
		}
	}
}

// RateLimit rejects clients that exceed their budget with 429 and a
// Retry-After header.  Clients are keyed by gin's ClientIP.
func RateLimit(config RateLimitConfig) gin.HandlerFunc {
	limiter := NewClientLimiter(config.RequestsPerSecond, config.BurstSize, config.IdleTTL)
	return rateLimit(limiter, config)
}

func rateLimit(limiter *ClientLimiter, config RateLimitConfig) gin.HandlerFunc {
	skipSet := make(map[string]bool, len(config.SkipPaths))
	for _, p := range config.SkipPaths {
		skipSet[p] = true
	}
	limitHeader := strconv.Itoa(limiter.burst)

	return func(c *gin.Context) {
		if skipSet[c.Request.URL.Path] {
			c.Next()
			return
		}
		c.Header("X-RateLimit-Limit", limitHeader)

		ok, wait := limiter.Reserve(c.ClientIP())
		if ok {
			c.Next()
			return
		}
		c.Header("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
			"code":    errors.ErrCodeTooManyRequests.String(),
			"message": errors.DefaultMessageForCode(errors.ErrCodeTooManyRequests),
		})
	}
}
