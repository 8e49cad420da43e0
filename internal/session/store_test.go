package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"users-table/internal/model"

	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(time.Minute)

	_, err := s.Get(ctx, "missing")
	require.ErrorIs(t, err, ErrNotFound)
	_, err = s.Update(ctx, "missing", func(*State) error { return nil })
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Create(ctx, State{ID: "a", Phase: model.StateLoading}))

	st, err := s.Update(ctx, "a", func(st *State) error {
		st.Users = []model.User{{ID: 1, Name: "x"}}
		st.Phase = model.StateLoaded
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, model.StateLoaded, st.Phase)

	// callers get copies
	st.Users[0].Name = "mutated"
	got, err := s.Get(ctx, "a")
	require.NoError(t, err)
	require.Equal(t, "x", got.Users[0].Name)

	// a failing fn leaves the state untouched
	_, err = s.Update(ctx, "a", func(st *State) error {
		st.Phase = model.StateFailed
		return errors.New("nope")
	})
	require.Error(t, err)
	got, err = s.Get(ctx, "a")
	require.NoError(t, err)
	require.Equal(t, model.StateLoaded, got.Phase)

	require.NoError(t, s.Ping(ctx))
	require.NoError(t, s.Close())
}

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s := NewMemoryStore(time.Minute)
	s.now = func() time.Time { return now }

	require.NoError(t, s.Create(ctx, State{ID: "old"}))
	now = now.Add(30 * time.Second)
	_, err := s.Update(ctx, "old", func(*State) error { return nil })
	require.NoError(t, err)

	// update slid the expiry forward
	now = now.Add(45 * time.Second)
	_, err = s.Get(ctx, "old")
	require.NoError(t, err)

	now = now.Add(time.Minute)
	_, err = s.Get(ctx, "old")
	require.ErrorIs(t, err, ErrNotFound)

	// creating prunes expired sessions
	require.NoError(t, s.Create(ctx, State{ID: "new"}))
	require.Equal(t, 1, s.Len())
}

func TestMemoryStoreNoTTL(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(0)
	require.NoError(t, s.Create(ctx, State{ID: "a"}))
	s.now = func() time.Time { return time.Now().Add(1000 * time.Hour) }
	_, err := s.Get(ctx, "a")
	require.NoError(t, err)
}
