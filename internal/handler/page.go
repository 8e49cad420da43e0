package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"users-table/internal/api"
	"users-table/internal/middleware"
	"users-table/internal/model"
	"users-table/internal/session"
	"users-table/internal/view"

	"github.com/labstack/echo/v4"
)

const (
	msgSessionGone = "Session expired, reload the page."
	msgInternal    = "Something went wrong."
	msgBadSortKey  = "invalid sort key"
)

// PageHandler 每次載入頁面都開啟新的 session，並先顯示載入中的占位列
func PageHandler(s Sessions) echo.HandlerFunc {
	return func(c echo.Context) error {
		st, err := s.Open(c.Request().Context())
		if err != nil {
			log.Printf("open session: %v", err)
			return view.Render(c, http.StatusInternalServerError, view.Message(msgInternal))
		}
		return view.Render(c, http.StatusOK, view.Page(session.TableView{
			SessionID: st.ID,
			Phase:     st.Phase,
			Sort:      st.Sort,
		}))
	}
}

// TableHandler 回傳表格片段；帶 wait=1 時會等到資料載入完成或逾時
func TableHandler(s Sessions, pollTimeout time.Duration) echo.HandlerFunc {
	return func(c echo.Context) error {
		id := middleware.SessionID(c)
		ctx := c.Request().Context()

		if c.QueryParam("wait") == "1" {
			wctx, cancel := context.WithTimeout(ctx, pollTimeout)
			err := s.Wait(wctx, id)
			cancel()
			switch {
			case err == nil, errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
			case errors.Is(err, session.ErrNotFound):
				return view.Render(c, http.StatusNotFound, view.Message(msgSessionGone))
			default:
				log.Printf("session %s: wait: %v", id, err)
				return view.Render(c, http.StatusInternalServerError, view.Message(msgInternal))
			}
		}

		v, err := s.Table(ctx, id)
		return renderTable(c, id, v, err)
	}
}

// SortHandler 表頭點擊：切換排序並重新輸出表格，不會重新抓取資料
func SortHandler(s Sessions) echo.HandlerFunc {
	return func(c echo.Context) error {
		key, err := bindSortKey(c)
		if err != nil {
			return view.Render(c, http.StatusBadRequest, view.Message(msgBadSortKey))
		}
		id := middleware.SessionID(c)
		v, err := s.Sort(c.Request().Context(), id, key)
		return renderTable(c, id, v, err)
	}
}

func renderTable(c echo.Context, id string, v session.TableView, err error) error {
	switch {
	case errors.Is(err, session.ErrNotFound):
		return view.Render(c, http.StatusNotFound, view.Message(msgSessionGone))
	case err != nil:
		log.Printf("session %s: render table: %v", id, err)
		return view.Render(c, http.StatusInternalServerError, view.Message(msgInternal))
	}
	return view.Render(c, http.StatusOK, view.Table(v))
}

func bindSortKey(c echo.Context) (model.SortKey, error) {
	var req api.SortRequest
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &req); err != nil {
		return model.SortNone, err
	}
	if err := c.Validate(&req); err != nil {
		return model.SortNone, err
	}
	return model.ParseSortKey(req.Key)
}
