package session

import (
	"testing"

	"users-table/internal/model"

	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestDerive(t *testing.T) {
	st := State{
		ID:    "abc",
		Users: sample,
		Phase: model.StateLoaded,
		Sort:  model.SortConfig{Key: model.SortID, Direction: model.Desc},
	}

	v := Derive(st, "hi", language.English)
	require.Equal(t, "abc", v.SessionID)
	require.Equal(t, "hi", v.Notice)
	require.Equal(t, []int{3, 2, 1}, userIDs(v.Users))
	require.Equal(t, []int{3, 1, 2}, userIDs(st.Users))

	for _, phase := range []model.DisplayState{model.StateLoading, model.StateEmpty, model.StateFailed} {
		st.Phase = phase
		v := Derive(st, "", language.English)
		require.NotNil(t, v.Users)
		require.Empty(t, v.Users, phase)
	}
}

func TestTakeNotice(t *testing.T) {
	st := State{Phase: model.StateLoading, Notice: FailureNotice}
	require.Empty(t, takeNotice(&st))
	require.Equal(t, FailureNotice, st.Notice)

	st.Phase = model.StateFailed
	require.Equal(t, FailureNotice, takeNotice(&st))
	require.Empty(t, st.Notice)
	require.Empty(t, takeNotice(&st))
}
