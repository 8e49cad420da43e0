package session

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"users-table/internal/cache"
	"users-table/internal/model"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func TestRedisStoreCreateAndGet(t *testing.T) {
	ctx := context.Background()
	stored := map[string][]byte{}
	c := &cache.FakeCache{
		SetFn: func(ctx context.Context, key string, val any, exp time.Duration) *redis.StatusCmd {
			require.Equal(t, 30*time.Minute, exp)
			stored[key] = val.([]byte)
			return redis.NewStatusResult("OK", nil)
		},
		GetFn: func(ctx context.Context, key string) *redis.StringCmd {
			v, ok := stored[key]
			if !ok {
				return redis.NewStringResult("", redis.Nil)
			}
			return redis.NewStringResult(string(v), nil)
		},
	}
	s := NewRedisStore(c, 30*time.Minute)

	st := State{ID: "abc", Phase: model.StateLoading, Users: []model.User{}}
	require.NoError(t, s.Create(ctx, st))
	require.Contains(t, stored, "users-table:session:abc")

	got, err := s.Get(ctx, "abc")
	require.NoError(t, err)
	require.Equal(t, "abc", got.ID)
	require.Equal(t, model.StateLoading, got.Phase)

	_, err = s.Get(ctx, "missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStoreErrors(t *testing.T) {
	ctx := context.Background()
	c := &cache.FakeCache{
		SetFn: func(context.Context, string, any, time.Duration) *redis.StatusCmd {
			return redis.NewStatusResult("", errors.New("set"))
		},
		GetFn: func(context.Context, string) *redis.StringCmd {
			return redis.NewStringResult("{not json", nil)
		},
		PingFn: func(context.Context) *redis.StatusCmd {
			return redis.NewStatusResult("", errors.New("down"))
		},
		CloseFn: func() error { return errors.New("close") },
	}
	s := NewRedisStore(c, time.Minute)

	require.ErrorContains(t, s.Create(ctx, State{ID: "a"}), "save session")
	_, err := s.Get(ctx, "a")
	require.ErrorContains(t, err, "decode session")
	require.Error(t, s.Ping(ctx))
	require.EqualError(t, s.Close(), "close")
}

func TestRedisStoreUpdateRetries(t *testing.T) {
	calls := 0
	c := &cache.FakeCache{
		WatchFn: func(ctx context.Context, fn func(*redis.Tx) error, keys ...string) error {
			calls++
			require.Equal(t, []string{"users-table:session:abc"}, keys)
			return redis.TxFailedErr
		},
	}
	_, err := NewRedisStore(c, time.Minute).Update(context.Background(), "abc", func(*State) error { return nil })
	require.ErrorIs(t, err, redis.TxFailedErr)
	require.Equal(t, maxTxRetries, calls)
}

func TestRedisStoreUpdatePropagatesErrors(t *testing.T) {
	c := &cache.FakeCache{
		WatchFn: func(context.Context, func(*redis.Tx) error, ...string) error { return ErrNotFound },
	}
	_, err := NewRedisStore(c, time.Minute).Update(context.Background(), "abc", func(*State) error { return nil })
	require.ErrorIs(t, err, ErrNotFound)
}

func TestApply(t *testing.T) {
	raw, err := json.Marshal(State{ID: "abc", Phase: model.StateLoading})
	require.NoError(t, err)

	st, data, err := apply(redis.NewStringResult(string(raw), nil), func(st *State) error {
		st.Phase = model.StateEmpty
		st.Sort = st.Sort.Toggle(model.SortName)
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, model.StateEmpty, st.Phase)

	var decoded State
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Equal(t, model.SortConfig{Key: model.SortName, Direction: model.Asc}, decoded.Sort)

	_, _, err = apply(redis.NewStringResult("", redis.Nil), func(*State) error { return nil })
	require.ErrorIs(t, err, ErrNotFound)

	_, _, err = apply(redis.NewStringResult(string(raw), nil), func(*State) error { return errors.New("fn") })
	require.EqualError(t, err, "fn")

	_, _, err = apply(redis.NewStringResult("", errors.New("conn")), func(*State) error { return nil })
	require.ErrorContains(t, err, "load session")
}

func newMiniRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func TestRedisStoreUpdateCommits(t *testing.T) {
	ctx := context.Background()
	mr, rdb := newMiniRedis(t)
	s := NewRedisStore(rdb, time.Minute)

	require.NoError(t, s.Create(ctx, State{ID: "abc", Phase: model.StateLoading, Users: []model.User{}}))
	require.Equal(t, time.Minute, mr.TTL(sessionKey("abc")))

	mr.FastForward(50 * time.Second)
	require.Equal(t, 10*time.Second, mr.TTL(sessionKey("abc")))

	st, err := s.Update(ctx, "abc", func(st *State) error {
		st.Users = []model.User{{ID: 7, Name: "Kurtis"}}
		st.Phase = model.StateLoaded
		st.Sort = st.Sort.Toggle(model.SortName)
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, model.StateLoaded, st.Phase)
	require.Equal(t, time.Minute, mr.TTL(sessionKey("abc")))

	got, err := s.Get(ctx, "abc")
	require.NoError(t, err)
	require.Equal(t, model.StateLoaded, got.Phase)
	require.Equal(t, model.SortConfig{Key: model.SortName, Direction: model.Asc}, got.Sort)
	require.Equal(t, []int{7}, userIDs(got.Users))

	_, err = s.Update(ctx, "missing", func(*State) error { return nil })
	require.ErrorIs(t, err, ErrNotFound)

	mr.FastForward(2 * time.Minute)
	_, err = s.Get(ctx, "abc")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStoreUpdateRetriesOnConflict(t *testing.T) {
	ctx := context.Background()
	_, rdb := newMiniRedis(t)
	s := NewRedisStore(rdb, time.Minute)
	require.NoError(t, s.Create(ctx, State{ID: "abc", Phase: model.StateLoading, Users: []model.User{}}))

	other := redis.NewClient(&redis.Options{Addr: rdb.Options().Addr})
	t.Cleanup(func() { _ = other.Close() })

	calls := 0
	st, err := s.Update(ctx, "abc", func(st *State) error {
		calls++
		if calls == 1 {
			// a concurrent writer lands between WATCH and EXEC
			raced := *st
			raced.Phase = model.StateEmpty
			data, err := json.Marshal(raced)
			require.NoError(t, err)
			require.NoError(t, other.Set(ctx, sessionKey("abc"), data, time.Minute).Err())
		}
		st.Sort = st.Sort.Toggle(model.SortID)
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, 2, calls)
	require.Equal(t, model.StateEmpty, st.Phase)

	got, err := s.Get(ctx, "abc")
	require.NoError(t, err)
	require.Equal(t, model.StateEmpty, got.Phase)
	require.Equal(t, model.SortConfig{Key: model.SortID, Direction: model.Asc}, got.Sort)
}
