// File: internal/router/router.go
package router

import (
	"time"

	"github.com/labstack/echo/v4"

	"users-table/internal/handler"
	"users-table/internal/middleware"
)

// Setup 註冊所有路由與中介層
func Setup(e *echo.Echo, s handler.Sessions, pollTimeout time.Duration) {
	// 頁面：每次載入都是新的 session
	e.GET("/", handler.PageHandler(s))

	// htmx 片段
	pages := e.Group("/sessions/:id", middleware.RequireSession)
	pages.GET("/table", handler.TableHandler(s, pollTimeout))
	pages.POST("/sort", handler.SortHandler(s))

	api := e.Group("/api")

	// 健康檢查
	api.GET("/ping", handler.PingHandler(s))

	// JSON API
	api.POST("/sessions", handler.OpenSessionHandler(s))
	apiSessions := api.Group("/sessions/:id", middleware.RequireSession)
	apiSessions.GET("", handler.GetSessionHandler(s))
	apiSessions.POST("/sort", handler.SortSessionHandler(s))
}
