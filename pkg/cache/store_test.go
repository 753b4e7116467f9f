package cache

import (
	"bitwise74/job-portal/config"
	"context"
	"testing"
	"time"

	"github.com/chenyahui/gin-cache/persist"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStoreMemory(t *testing.T) {
	s, err := NewStore(context.Background(), config.Cache{Store: "memory"}, config.Redis{})
	require.NoError(t, err)

	require.NoError(t, s.Set("k", "v", time.Minute))

	var got string
	require.NoError(t, s.Get("k", &got))
	assert.Equal(t, "v", got)

	require.NoError(t, s.Delete("k"))
	assert.ErrorIs(t, s.Get("k", &got), persist.ErrCacheMiss)
}

func TestNewStoreRedisUnreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	_, err := NewStore(ctx, config.Cache{Store: "redis"}, config.Redis{Addr: "127.0.0.1:1"})
	assert.Error(t, err)
}
