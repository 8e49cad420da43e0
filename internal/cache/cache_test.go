package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func TestFakeCache(t *testing.T) {
	c := &FakeCache{}
	require.Panics(t, func() { c.Get(context.Background(), "k") })
	require.Panics(t, func() { c.Set(context.Background(), "k", 1, 0) })
	require.Panics(t, func() { _ = c.Watch(context.Background(), nil, "k") })
	require.Equal(t, "PONG", c.Ping(context.Background()).Val())
	require.NoError(t, c.Close())

	gCalled := false
	sCalled := false
	wCalled := false
	clCalled := false
	c.GetFn = func(ctx context.Context, key string) *redis.StringCmd {
		gCalled = true
		return redis.NewStringResult("v", nil)
	}
	c.SetFn = func(ctx context.Context, key string, val any, exp time.Duration) *redis.StatusCmd {
		sCalled = true
		return redis.NewStatusResult("OK", nil)
	}
	c.WatchFn = func(ctx context.Context, fn func(*redis.Tx) error, keys ...string) error {
		wCalled = true
		require.Equal(t, []string{"k"}, keys)
		return redis.TxFailedErr
	}
	c.PingFn = func(ctx context.Context) *redis.StatusCmd {
		return redis.NewStatusResult("", errors.New("down"))
	}
	c.CloseFn = func() error { clCalled = true; return errors.New("close") }

	require.Equal(t, "v", c.Get(context.Background(), "k").Val())
	require.Equal(t, "OK", c.Set(context.Background(), "k", 1, 0).Val())
	require.ErrorIs(t, c.Watch(context.Background(), nil, "k"), redis.TxFailedErr)
	require.Error(t, c.Ping(context.Background()).Err())
	require.EqualError(t, c.Close(), "close")
	require.True(t, gCalled)
	require.True(t, sCalled)
	require.True(t, wCalled)
	require.True(t, clCalled)
}
