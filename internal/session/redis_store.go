package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"users-table/internal/cache"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix = "users-table:session:"
	// maxTxRetries bounds optimistic retries when another writer wins.
	maxTxRetries = 5
)

// RedisStore keeps sessions as JSON values with a sliding TTL, so several
// service instances can share them.
type RedisStore struct {
	c   cache.Cache
	ttl time.Duration
}

func NewRedisStore(c cache.Cache, ttl time.Duration) *RedisStore {
	return &RedisStore{c: c, ttl: ttl}
}

func sessionKey(id string) string { return keyPrefix + id }

func (s *RedisStore) Create(ctx context.Context, st State) error {
	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.c.Set(ctx, sessionKey(st.ID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (State, error) {
	return decode(s.c.Get(ctx, sessionKey(id)))
}

func (s *RedisStore) Update(ctx context.Context, id string, fn func(*State) error) (State, error) {
	k := sessionKey(id)
	for i := 0; i < maxTxRetries; i++ {
		var out State
		err := s.c.Watch(ctx, func(tx *redis.Tx) error {
			st, data, err := apply(tx.Get(ctx, k), fn)
			if err != nil {
				return err
			}
			_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				pipe.Set(ctx, k, data, s.ttl)
				return nil
			})
			if err != nil {
				return err
			}
			out = st
			return nil
		}, k)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return State{}, err
		}
		return out, nil
	}
	return State{}, fmt.Errorf("update session %s: %w", id, redis.TxFailedErr)
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.c.Ping(ctx).Err()
}

func (s *RedisStore) Close() error {
	return s.c.Close()
}

func decode(cmd *redis.StringCmd) (State, error) {
	raw, err := cmd.Bytes()
	if errors.Is(err, redis.Nil) {
		return State{}, ErrNotFound
	}
	if err != nil {
		return State{}, fmt.Errorf("load session: %w", err)
	}
	var st State
	if err := json.Unmarshal(raw, &st); err != nil {
		return State{}, fmt.Errorf("decode session: %w", err)
	}
	return st, nil
}

// apply runs fn over the stored value and returns the encoded result.
func apply(cmd *redis.StringCmd, fn func(*State) error) (State, []byte, error) {
	st, err := decode(cmd)
	if err != nil {
		return State{}, nil, err
	}
	if err := fn(&st); err != nil {
		return State{}, nil, err
	}
	data, err := json.Marshal(st)
	if err != nil {
		return State{}, nil, fmt.Errorf("encode session: %w", err)
	}
	return st, data, nil
}
