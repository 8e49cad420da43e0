// Package session owns the per-page view state: the fetched collection, its
// display phase and the active sort, plus the transitions between them.
package session

import (
	"errors"
	"time"

	"users-table/internal/model"
	"users-table/internal/sorter"

	"golang.org/x/text/language"
)

// FailureNotice is the message shown once when the fetch fails.
const FailureNotice = "Failed to load users!"

// ErrNotFound is returned for unknown or expired sessions.
var ErrNotFound = errors.New("session not found")

// State is everything one page session owns. Users stays in arrival order.
type State struct {
	ID        string             `json:"id"`
	Users     []model.User       `json:"users"`
	Phase     model.DisplayState `json:"phase"`
	Sort      model.SortConfig   `json:"sort"`
	Notice    string             `json:"notice,omitempty"`
	CreatedAt time.Time          `json:"created_at"`
}

// TableView is the derived, read-only input to rendering.
type TableView struct {
	SessionID string
	Phase     model.DisplayState
	Sort      model.SortConfig
	// Users is a sorted copy; empty unless Phase is loaded.
	Users []model.User
	// Notice is set only on the render that delivers it.
	Notice string
}

// Derive computes the view for st. notice is the message this render emits.
func Derive(st State, notice string, tag language.Tag) TableView {
	v := TableView{
		SessionID: st.ID,
		Phase:     st.Phase,
		Sort:      st.Sort,
		Users:     []model.User{},
		Notice:    notice,
	}
	if st.Phase.HasRows() {
		v.Users = sorter.Sort(st.Users, st.Sort, tag)
	}
	return v
}

// takeNotice clears and returns the pending notice once the fetch is done.
func takeNotice(st *State) string {
	if st.Phase.Pending() {
		return ""
	}
	n := st.Notice
	st.Notice = ""
	return n
}
