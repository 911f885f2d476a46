package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
)

// RateLimitConfig sets the per-client budget. The refill rate is in
// requests per second; the burst is how far a quiet client may get
// ahead of it.
type RateLimitConfig struct {
	RequestsPerSecond float64
	BurstSize         int
}

// DefaultRateLimitConfig returns limits sized for a single booking
// frontend per client IP.
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		RequestsPerSecond: 50,
		BurstSize:         100,
	}
}

// RateLimit throttles requests per client IP with a token bucket.
// Rejected requests get 429 with a Retry-After hint.
func RateLimit(cfg RateLimitConfig) echo.MiddlewareFunc {
	limiter := &ipLimiter{
		buckets: make(map[string]*bucket),
		cfg:     cfg,
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			b := limiter.bucket(c.RealIP())
			h := c.Response().Header()
			h.Set("X-RateLimit-Limit", strconv.FormatFloat(cfg.RequestsPerSecond, 'f', 0, 64))
			if !b.take() {
				h.Set("Retry-After", strconv.Itoa(b.retryAfter()))
				h.Set("X-RateLimit-Remaining", "0")
				return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")
			}
			return next(c)
		}
	}
}

type ipLimiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	cfg     RateLimitConfig
}

func (l *ipLimiter) bucket(ip string) *bucket {
	l.mu.Lock()
	defer l.mu.Unlock()
	b, ok := l.buckets[ip]
	if !ok {
		b = &bucket{
			tokens:     float64(l.cfg.BurstSize),
			max:        float64(l.cfg.BurstSize),
			refillRate: l.cfg.RequestsPerSecond,
			lastRefill: time.Now(),
		}
		l.buckets[ip] = b
	}
	return b
}

type bucket struct {
	mu         sync.Mutex
	tokens     float64
	max        float64
	refillRate float64
	lastRefill time.Time
}

func (b *bucket) take() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now()
	b.tokens += now.Sub(b.lastRefill).Seconds() * b.refillRate
	if b.tokens > b.max {
		b.tokens = b.max
	}
	b.lastRefill = now

	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}

func (b *bucket) retryAfter() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.refillRate <= 0 {
		return 1
	}
	return int((1-b.tokens)/b.refillRate) + 1
}
