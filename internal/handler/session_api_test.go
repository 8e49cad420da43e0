package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"users-table/internal/api"
	"users-table/internal/model"
	"users-table/internal/session"

	"github.com/stretchr/testify/require"
)

func TestOpenSessionHandler(t *testing.T) {
	e := newEcho()
	created := time.Date(2026, 10, 1, 8, 0, 0, 0, time.UTC)

	s := &FakeSessions{OpenFn: func(context.Context) (session.State, error) {
		return session.State{ID: sid, Phase: model.StateLoading, CreatedAt: created}, nil
	}}
	c, rec := newSessionCtx(e, http.MethodPost, "/api/sessions")
	require.NoError(t, OpenSessionHandler(s)(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp api.OpenSessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, sid, resp.ID)
	require.Equal(t, "loading", resp.State)
	require.True(t, created.Equal(resp.CreatedAt))

	s.OpenFn = func(context.Context) (session.State, error) { return session.State{}, errors.New("x") }
	c, rec = newSessionCtx(e, http.MethodPost, "/api/sessions")
	require.NoError(t, OpenSessionHandler(s)(c))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestGetSessionHandler(t *testing.T) {
	e := newEcho()

	t.Run("ok", func(t *testing.T) {
		s := &FakeSessions{SnapshotFn: func(context.Context, string) (session.TableView, error) {
			v := loadedView()
			v.Sort = model.SortConfig{Key: model.SortName, Direction: model.Desc}
			return v, nil
		}}
		c, rec := newSessionCtx(e, http.MethodGet, "/api/sessions/"+sid)
		require.NoError(t, GetSessionHandler(s)(c))
		require.Equal(t, http.StatusOK, rec.Code)

		var resp api.SessionResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Equal(t, sid, resp.ID)
		require.Equal(t, "loaded", resp.State)
		require.Equal(t, api.SortResponse{Key: "name", Direction: "desc"}, resp.Sort)
		require.Len(t, resp.Users, 2)
		require.Empty(t, resp.Notice)
	})

	t.Run("empty users encode as array", func(t *testing.T) {
		s := &FakeSessions{SnapshotFn: func(context.Context, string) (session.TableView, error) {
			return session.TableView{SessionID: sid, Phase: model.StateEmpty}, nil
		}}
		c, rec := newSessionCtx(e, http.MethodGet, "/api/sessions/"+sid)
		require.NoError(t, GetSessionHandler(s)(c))
		require.Contains(t, rec.Body.String(), `"users":[]`)
	})

	t.Run("errors", func(t *testing.T) {
		s := &FakeSessions{SnapshotFn: func(context.Context, string) (session.TableView, error) {
			return session.TableView{}, session.ErrNotFound
		}}
		c, rec := newSessionCtx(e, http.MethodGet, "/api/sessions/"+sid)
		require.NoError(t, GetSessionHandler(s)(c))
		require.Equal(t, http.StatusNotFound, rec.Code)

		s.SnapshotFn = func(context.Context, string) (session.TableView, error) {
			return session.TableView{}, errors.New("dial tcp 10.0.0.7:6379: connection refused")
		}
		c, rec = newSessionCtx(e, http.MethodGet, "/api/sessions/"+sid)
		require.NoError(t, GetSessionHandler(s)(c))
		require.Equal(t, http.StatusInternalServerError, rec.Code)

		var resp api.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Equal(t, msgInternal, resp.Message)
		require.NotContains(t, rec.Body.String(), "6379")
	})
}

func TestSortSessionHandler(t *testing.T) {
	e := newEcho()

	s := &FakeSessions{SortFn: func(_ context.Context, _ string, key model.SortKey) (session.TableView, error) {
		v := session.TableView{SessionID: sid, Phase: model.StateFailed, Notice: session.FailureNotice}
		v.Sort = model.SortConfig{Key: key, Direction: model.Asc}
		return v, nil
	}}
	c, rec := newSessionCtx(e, http.MethodPost, "/api/sessions/"+sid+"/sort?key=id")
	require.NoError(t, SortSessionHandler(s)(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp api.SessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, api.SortResponse{Key: "id", Direction: "asc"}, resp.Sort)
	require.Equal(t, session.FailureNotice, resp.Notice)

	c, rec = newSessionCtx(e, http.MethodPost, "/api/sessions/"+sid+"/sort?key=phone")
	require.NoError(t, SortSessionHandler(s)(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), msgBadSortKey)
}
