package middleware

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const ContextSessionKey = "session_id"

// RequireSession 檢查路徑上的 :id 是否為合法的 session UUID
func RequireSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			return echo.NewHTTPError(http.StatusNotFound, "session not found")
		}
		c.Set(ContextSessionKey, id.String())
		return next(c)
	}
}

// SessionID 取得 RequireSession 存入的 session ID
func SessionID(c echo.Context) string {
	id, _ := c.Get(ContextSessionKey).(string)
	return id
}
