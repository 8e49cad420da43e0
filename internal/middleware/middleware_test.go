package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func newContext(id string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/sessions/"+id+"/table", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/sessions/:id/table")
	c.SetParamNames("id")
	c.SetParamValues(id)
	return c, rec
}

func TestRequireSession(t *testing.T) {
	id := uuid.NewString()

	// valid id
	ctx, rec := newContext(id)
	called := false
	err := RequireSession(func(c echo.Context) error {
		called = true
		require.Equal(t, id, SessionID(c))
		return c.String(http.StatusOK, "ok")
	})(ctx)
	require.NoError(t, err)
	require.True(t, called)
	require.Equal(t, http.StatusOK, rec.Code)

	// malformed id
	for _, bad := range []string{"", "abc", "../etc"} {
		ctx, _ = newContext(bad)
		called = false
		err = RequireSession(func(echo.Context) error { called = true; return nil })(ctx)
		require.Error(t, err)
		he, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		require.Equal(t, http.StatusNotFound, he.Code)
		require.False(t, called)
	}
}

func TestSessionIDMissing(t *testing.T) {
	ctx, _ := newContext("x")
	require.Empty(t, SessionID(ctx))
}
