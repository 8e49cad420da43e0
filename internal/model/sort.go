// File: internal/model/sort.go
package model

import (
	"errors"
	"fmt"
)

// SortKey 可排序的欄位
type SortKey string

const (
	SortNone    SortKey = ""
	SortID      SortKey = "id"
	SortName    SortKey = "name"
	SortCompany SortKey = "company"
)

// Direction 排序方向
type Direction string

const (
	DirectionNone Direction = ""
	Asc           Direction = "asc"
	Desc          Direction = "desc"
)

var ErrUnknownSortKey = errors.New("unknown sort key")

// ParseSortKey 只接受 id、name、company
func ParseSortKey(s string) (SortKey, error) {
	switch k := SortKey(s); k {
	case SortID, SortName, SortCompany:
		return k, nil
	default:
		return SortNone, fmt.Errorf("%w: %q", ErrUnknownSortKey, s)
	}
}

// SortConfig 目前的排序欄位與方向，零值代表未排序（保留抓取順序）
type SortConfig struct {
	Key       SortKey   `json:"key"`
	Direction Direction `json:"direction"`
}

// Toggle derives the next config when the header for key is activated.
// The same key flips asc to desc; anything else starts over at asc.
func (c SortConfig) Toggle(key SortKey) SortConfig {
	if c.Key == key && c.Direction == Asc {
		return SortConfig{Key: key, Direction: Desc}
	}
	return SortConfig{Key: key, Direction: Asc}
}

// Active reports whether key is the current sort key.
func (c SortConfig) Active(key SortKey) bool {
	return c.Key != SortNone && c.Key == key
}
