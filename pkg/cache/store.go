package cache

import (
	"bitwise74/job-portal/config"
	"context"
	"fmt"
	"time"

	"github.com/chenyahui/gin-cache/persist"
	"github.com/redis/go-redis/v9"
)

// NewStore picks the backing store configured in cache.store
func NewStore(ctx context.Context, c config.Cache, r config.Redis) (persist.CacheStore, error) {
	switch c.Store {
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     r.Addr,
			Password: r.Password,
			DB:       r.DB,
		})

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()

		if err := client.Ping(pingCtx).Err(); err != nil {
			return nil, fmt.Errorf("failed to connect to redis, %w", err)
		}

		return NewRedisStore(client, "job-portal:"), nil
	default:
		return persist.NewMemoryStore(time.Minute), nil
	}
}
