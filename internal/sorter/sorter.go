// Package sorter orders a fetched user collection for display.
package sorter

import (
	"cmp"
	"slices"

	"users-table/internal/model"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Sort returns a copy of users ordered by cfg. The input slice is never
// reordered; ties keep their arrival order.
func Sort(users []model.User, cfg model.SortConfig, tag language.Tag) []model.User {
	out := slices.Clone(users)
	if out == nil {
		out = []model.User{}
	}
	compare := comparator(cfg.Key, tag)
	if compare == nil {
		return out
	}
	if cfg.Direction == model.Desc {
		asc := compare
		compare = func(a, b model.User) int { return -asc(a, b) }
	}
	slices.SortStableFunc(out, compare)
	return out
}

// comparator returns the ascending comparison for key, nil for no ordering.
// A collator is not safe for concurrent use, so one is built per sort.
func comparator(key model.SortKey, tag language.Tag) func(a, b model.User) int {
	switch key {
	case model.SortID:
		return func(a, b model.User) int { return cmp.Compare(a.ID, b.ID) }
	case model.SortName:
		c := collate.New(tag)
		return func(a, b model.User) int { return c.CompareString(a.Name, b.Name) }
	case model.SortCompany:
		c := collate.New(tag)
		return func(a, b model.User) int { return c.CompareString(a.Company.Name, b.Company.Name) }
	default:
		return nil
	}
}
