package redis_test

import (
	"context"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/panelhouse/integration/contentapi"
	"github.com/dmitrymomot/panelhouse/integration/database/redis"
)

var _ contentapi.Cache = (*redis.Cache)(nil)

func TestConnectValidatesURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		url  string
		want error
	}{
		{"empty", "", redis.ErrEmptyConnectionURL},
		{"wrong_scheme", "http://localhost:6379", redis.ErrFailedToParseRedisConnString},
		{"bad_db", "redis://localhost:6379/notanumber", redis.ErrFailedToParseRedisConnString},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := redis.Connect(context.Background(), redis.Config{ConnectionURL: tt.url})
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestConnectGivesUp(t *testing.T) {
	t.Parallel()

	_, err := redis.Connect(context.Background(), redis.Config{
		ConnectionURL:  "redis://127.0.0.1:1/0",
		RetryAttempts:  2,
		RetryInterval:  time.Millisecond,
		ConnectTimeout: 2 * time.Second,
	})
	assert.ErrorIs(t, err, redis.ErrRedisNotReady)
}

func unreachable(t *testing.T) *goredis.Client {
	t.Helper()
	c := goredis.NewClient(&goredis.Options{Addr: "127.0.0.1:1", DialTimeout: 50 * time.Millisecond, MaxRetries: -1})
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestHealthcheckFails(t *testing.T) {
	t.Parallel()

	err := redis.Healthcheck(unreachable(t))(context.Background())
	assert.ErrorIs(t, err, redis.ErrHealthcheckFailed)
}

func TestCacheDegradesToMiss(t *testing.T) {
	t.Parallel()

	c := redis.NewCache(unreachable(t), redis.WithKeyPrefix("ph:"), redis.WithTTL(time.Minute))
	ctx := context.Background()

	c.Set(ctx, "/comics", []byte("{}"))
	_, ok := c.Get(ctx, "/comics")
	assert.False(t, ok)
	require.Error(t, c.DeletePrefix(ctx, "/comics"))
}

func TestConfigEnabled(t *testing.T) {
	t.Parallel()

	assert.False(t, redis.Config{}.Enabled())
	assert.True(t, redis.Config{ConnectionURL: "redis://localhost:6379/0"}.Enabled())
}
