// File: internal/handler/ping.go
package handler

import (
	"net/http"

	"users-table/internal/api"

	"github.com/labstack/echo/v4"
)

// PingHandler 健康檢查
// @Summary     Health Check
// @Description 回傳 pong，並檢查 session store 連線是否正常
// @Tags        health
// @Produce     json
// @Success     200 {object} api.PingResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /ping [get]
func PingHandler(s Sessions) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := s.Ping(c.Request().Context()); err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "session store unhealthy"})
		}
		return c.JSON(http.StatusOK, api.PingResponse{Message: "pong"})
	}
}
