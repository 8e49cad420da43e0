// File: internal/model/display_state.go
package model

// DisplayState 頁面的載入階段
type DisplayState string

const (
	StateLoading DisplayState = "loading"
	StateLoaded  DisplayState = "loaded"
	StateEmpty   DisplayState = "empty"
	StateFailed  DisplayState = "failed"
)

// StateFor derives the post-fetch state from the size of the collection.
func StateFor(users []User) DisplayState {
	if len(users) == 0 {
		return StateEmpty
	}
	return StateLoaded
}

// Pending reports whether the fetch has not finished yet.
func (s DisplayState) Pending() bool {
	return s == StateLoading
}

// HasRows reports whether data rows (rather than the empty row) should be shown.
func (s DisplayState) HasRows() bool {
	return s == StateLoaded
}
