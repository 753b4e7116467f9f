package middleware

import (
	"bitwise74/job-portal/pkg/apierr"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type RateLimiterConfig struct {
	RequestsPerSecond int
	Burst             int
	CleanupInterval   time.Duration
	TTL               time.Duration
}

type rateLimiter struct {
	cfg       RateLimiterConfig
	mu        sync.Mutex
	visitors  map[string]*visitor
	lastSweep time.Time
	now       func() time.Time
}

func (l *rateLimiter) get(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.sweep(now)

	v, exists := l.visitors[ip]
	if !exists {
		limiter := rate.NewLimiter(rate.Limit(l.cfg.RequestsPerSecond), l.cfg.Burst)
		l.visitors[ip] = &visitor{limiter, now}
		return limiter
	}

	v.lastSeen = now
	return v.limiter
}

// sweep drops idle visitors at most once per CleanupInterval, on the request
// path. Caller holds mu.
func (l *rateLimiter) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < l.cfg.CleanupInterval {
		return
	}
	l.lastSweep = now

	for ip, v := range l.visitors {
		if now.Sub(v.lastSeen) > l.cfg.TTL {
			delete(l.visitors, ip)
		}
	}
}

// RateLimiterMiddleware limits requests per client IP. A zero rate disables it.
func RateLimiterMiddleware(config RateLimiterConfig) gin.HandlerFunc {
	if config.RequestsPerSecond <= 0 {
		return func(c *gin.Context) { c.Next() }
	}

	if config.Burst <= 0 {
		config.Burst = config.RequestsPerSecond * 2
	}
	if config.CleanupInterval == 0 {
		config.CleanupInterval = time.Minute
	}
	if config.TTL == 0 {
		config.TTL = 3 * time.Minute
	}

	return newRateLimiter(config, time.Now).middleware()
}

func newRateLimiter(config RateLimiterConfig, now func() time.Time) *rateLimiter {
	return &rateLimiter{
		cfg:       config,
		visitors:  make(map[string]*visitor),
		lastSweep: now(),
		now:       now,
	}
}

func (l *rateLimiter) middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.get(c.ClientIP()).Allow() {
			apierr.Respond(c, apierr.TooManyRequests("Too many requests"))
			return
		}

		c.Next()
	}
}
