package cache

import (
	"errors"
	"time"

	ginCache "github.com/chenyahui/gin-cache"
	"github.com/chenyahui/gin-cache/persist"
	"github.com/gin-gonic/gin"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"go.uber.org/zap"
)

const generationKey = "responses:generation"

// Responses caches public GET responses under a generation prefix. Bumping
// the generation orphans every cached response at once, the old entries run
// out on their own TTL.
//
// A nil *Responses caches nothing.
type Responses struct {
	store persist.CacheStore
	ttl   time.Duration
}

func NewResponses(store persist.CacheStore, ttl time.Duration) *Responses {
	return &Responses{store: store, ttl: ttl}
}

func (r *Responses) generation() (string, error) {
	var gen string

	err := r.store.Get(generationKey, &gen)
	if errors.Is(err, persist.ErrCacheMiss) {
		return r.bump()
	}
	if err != nil {
		return "", err
	}

	return gen, nil
}

func (r *Responses) bump() (string, error) {
	gen, err := gonanoid.New(10)
	if err != nil {
		return "", err
	}

	// Outlives any response cached under it
	expire := max(24*time.Hour, 2*r.ttl)
	if err := r.store.Set(generationKey, gen, expire); err != nil {
		return "", err
	}

	return gen, nil
}

// Invalidate drops every cached response
func (r *Responses) Invalidate() error {
	if r == nil {
		return nil
	}

	_, err := r.bump()
	return err
}

// Middleware caches successful responses by request URI
func (r *Responses) Middleware() gin.HandlerFunc {
	if r == nil {
		return func(c *gin.Context) { c.Next() }
	}

	return ginCache.Cache(r.store, r.ttl, ginCache.WithCacheStrategyByRequest(func(c *gin.Context) (bool, ginCache.Strategy) {
		gen, err := r.generation()
		if err != nil {
			zap.L().Warn("Response cache unavailable", zap.Error(err))
			return false, ginCache.Strategy{}
		}

		return true, ginCache.Strategy{CacheKey: "responses:" + gen + ":" + c.Request.RequestURI}
	}))
}

// Invalidates bumps the generation once the wrapped handler succeeded
func (r *Responses) Invalidates() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if r == nil || c.IsAborted() || c.Writer.Status() >= 300 {
			return
		}

		if err := r.Invalidate(); err != nil {
			zap.L().Error("Failed to invalidate response cache", zap.Error(err))
		}
	}
}
