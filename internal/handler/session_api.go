package handler

import (
	"errors"
	"log"
	"net/http"

	"users-table/internal/api"
	"users-table/internal/middleware"
	"users-table/internal/session"

	"github.com/labstack/echo/v4"
)

// OpenSessionHandler 開啟新的 session 並開始抓取使用者清單
// @Summary     Open a session
// @Description 建立新的檢視 session，背景抓取使用者清單 (state 一開始為 loading)
// @Tags        sessions
// @Produce     json
// @Success     201 {object} api.OpenSessionResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /sessions [post]
func OpenSessionHandler(s Sessions) echo.HandlerFunc {
	return func(c echo.Context) error {
		st, err := s.Open(c.Request().Context())
		if err != nil {
			log.Printf("open session: %v", err)
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "failed to open session"})
		}
		return c.JSON(http.StatusCreated, api.OpenSessionResponse{
			ID:        st.ID,
			State:     string(st.Phase),
			CreatedAt: st.CreatedAt,
		})
	}
}

// GetSessionHandler 取得 session 目前狀態與排序後的使用者
// @Summary     Get a session
// @Description 回傳 session 狀態、排序設定以及依排序輸出的使用者清單
// @Tags        sessions
// @Produce     json
// @Param       id   path      string  true  "Session ID"
// @Success     200  {object}  api.SessionResponse
// @Failure     404  {object}  api.ErrorResponse  "session 不存在或已過期"
// @Failure     500  {object}  api.ErrorResponse  "伺服器錯誤"
// @Router      /sessions/{id} [get]
func GetSessionHandler(s Sessions) echo.HandlerFunc {
	return func(c echo.Context) error {
		v, err := s.Snapshot(c.Request().Context(), middleware.SessionID(c))
		return sessionJSON(c, v, err)
	}
}

// SortSessionHandler 切換 session 的排序
// @Summary     Toggle sort
// @Description 同一欄位再次點擊時 asc 轉 desc，換欄位則重設為 asc
// @Tags        sessions
// @Produce     json
// @Param       id   path      string  true  "Session ID"
// @Param       key  query     string  true  "排序欄位" Enums(id, name, company)
// @Success     200  {object}  api.SessionResponse
// @Failure     400  {object}  api.ErrorResponse  "參數錯誤"
// @Failure     404  {object}  api.ErrorResponse  "session 不存在或已過期"
// @Failure     500  {object}  api.ErrorResponse  "伺服器錯誤"
// @Router      /sessions/{id}/sort [post]
func SortSessionHandler(s Sessions) echo.HandlerFunc {
	return func(c echo.Context) error {
		key, err := bindSortKey(c)
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: msgBadSortKey})
		}
		v, err := s.Sort(c.Request().Context(), middleware.SessionID(c), key)
		return sessionJSON(c, v, err)
	}
}

func sessionJSON(c echo.Context, v session.TableView, err error) error {
	switch {
	case errors.Is(err, session.ErrNotFound):
		return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "session not found"})
	case err != nil:
		log.Printf("session api: %v", err)
		return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: msgInternal})
	}
	return c.JSON(http.StatusOK, api.NewSessionResponse(v))
}
