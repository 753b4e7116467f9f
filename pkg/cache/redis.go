// Package cache builds the response cache store used in front of the public
// read endpoints.
package cache

import (
	"bytes"
	"context"
	"encoding/gob"
	"errors"
	"fmt"
	"time"

	"github.com/chenyahui/gin-cache/persist"
	"github.com/redis/go-redis/v9"
)

const opTimeout = 2 * time.Second

// RedisStore keeps cached responses in redis, encoded with gob
type RedisStore struct {
	client *redis.Client
	prefix string
}

var _ persist.CacheStore = (*RedisStore)(nil)

func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) Set(key string, value any, expire time.Duration) error {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(value); err != nil {
		return fmt.Errorf("failed to encode cache entry, %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	return s.client.Set(ctx, s.prefix+key, buf.Bytes(), expire).Err()
}

func (s *RedisStore) Get(key string, value any) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	b, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return persist.ErrCacheMiss
		}

		return err
	}

	return gob.NewDecoder(bytes.NewReader(b)).Decode(value)
}

func (s *RedisStore) Delete(key string) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	return s.client.Del(ctx, s.prefix+key).Err()
}
