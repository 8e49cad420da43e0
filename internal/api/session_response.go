package api

import (
	"time"

	"users-table/internal/model"
	"users-table/internal/session"
)

// swagger:model api.SortResponse
type SortResponse struct {
	Key       string `json:"key" example:"name"`
	Direction string `json:"direction" example:"asc"`
}

// swagger:model api.SessionResponse
type SessionResponse struct {
	ID    string       `json:"id" example:"5f0c6f0e-3c1f-4c55-9d7c-8f1f3c2b9a10"`
	State string       `json:"state" example:"loaded"`
	Sort  SortResponse `json:"sort"`
	// 依目前排序輸出
	Users []model.User `json:"users"`
	// 抓取失敗時的一次性通知
	Notice string `json:"notice,omitempty" example:"Failed to load users!"`
}

// swagger:model api.PingResponse
type PingResponse struct {
	Message string `json:"message" example:"pong"`
}

// swagger:model api.OpenSessionResponse
type OpenSessionResponse struct {
	ID        string    `json:"id"`
	State     string    `json:"state" example:"loading"`
	CreatedAt time.Time `json:"created_at"`
}

// NewSessionResponse 將 TableView 轉為 API 回應
func NewSessionResponse(v session.TableView) SessionResponse {
	users := v.Users
	if users == nil {
		users = []model.User{}
	}
	return SessionResponse{
		ID:    v.SessionID,
		State: string(v.Phase),
		Sort: SortResponse{
			Key:       string(v.Sort.Key),
			Direction: string(v.Sort.Direction),
		},
		Users:  users,
		Notice: v.Notice,
	}
}
