package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSortConfigToggle(t *testing.T) {
	t.Run("same key twice from initial", func(t *testing.T) {
		var cfg SortConfig
		cfg = cfg.Toggle(SortName)
		require.Equal(t, SortConfig{Key: SortName, Direction: Asc}, cfg)
		cfg = cfg.Toggle(SortName)
		require.Equal(t, SortConfig{Key: SortName, Direction: Desc}, cfg)
	})

	t.Run("cycles asc desc asc", func(t *testing.T) {
		cfg := SortConfig{}.Toggle(SortID).Toggle(SortID).Toggle(SortID)
		require.Equal(t, SortConfig{Key: SortID, Direction: Asc}, cfg)
	})

	t.Run("switching key resets to asc", func(t *testing.T) {
		cfg := SortConfig{Key: SortName, Direction: Desc}
		require.Equal(t, SortConfig{Key: SortCompany, Direction: Asc}, cfg.Toggle(SortCompany))

		cfg = SortConfig{Key: SortCompany, Direction: Asc}
		require.Equal(t, SortConfig{Key: SortID, Direction: Asc}, cfg.Toggle(SortID))
	})
}

func TestSortConfigActive(t *testing.T) {
	require.False(t, SortConfig{}.Active(SortNone))
	require.True(t, SortConfig{Key: SortID, Direction: Asc}.Active(SortID))
	require.False(t, SortConfig{Key: SortID, Direction: Asc}.Active(SortName))
}

func TestParseSortKey(t *testing.T) {
	for _, s := range []string{"id", "name", "company"} {
		k, err := ParseSortKey(s)
		require.NoError(t, err)
		require.Equal(t, SortKey(s), k)
	}

	for _, s := range []string{"", "email", "ID"} {
		_, err := ParseSortKey(s)
		require.Error(t, err)
		require.True(t, errors.Is(err, ErrUnknownSortKey))
	}
}

func TestStateFor(t *testing.T) {
	require.Equal(t, StateEmpty, StateFor(nil))
	require.Equal(t, StateLoaded, StateFor([]User{{ID: 1}}))

	require.True(t, StateLoading.Pending())
	require.False(t, StateFailed.Pending())
	require.True(t, StateLoaded.HasRows())
	require.False(t, StateEmpty.HasRows())
	require.False(t, StateFailed.HasRows())
}
