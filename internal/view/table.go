package view

import (
	"users-table/internal/model"
)

//go:generate templ generate

// PlaceholderRows is how many skeleton rows show while loading.
const PlaceholderRows = 5

// EmptyMessage fills the single row shown when there is nothing to list.
const EmptyMessage = "No users found"

const (
	tableID   = "users-table"
	headClass = "py-3 px-2 md:px-4"
	cellClass = "py-2 px-2 md:px-4 border"

	htmxSrc     = "https://unpkg.com/htmx.org@2.0.4"
	tailwindSrc = "https://cdn.tailwindcss.com"
)

type column struct {
	label string
	key   model.SortKey
	// hide holds the responsive visibility classes.
	hide string
}

var columns = []column{
	{label: "ID", key: model.SortID},
	{label: "Name", key: model.SortName},
	{label: "Address", hide: "hidden xl:table-cell"},
	{label: "Username", hide: "hidden sm:table-cell"},
	{label: "Email"},
	{label: "Phone", hide: "hidden lg:table-cell"},
	{label: "Website", hide: "hidden md:table-cell"},
	{label: "Company", key: model.SortCompany, hide: "hidden xl:table-cell"},
}

func (c column) withHide(class string) string {
	if c.hide == "" {
		return class
	}
	return class + " " + c.hide
}

func (c column) headClass() string { return c.withHide(headClass) }

func (c column) placeholderClass() string { return c.withHide("py-3 px-4 border") }

func (c column) cellClass(extra string) string {
	class := cellClass
	if extra != "" {
		class += " " + extra
	}
	return c.withHide(class)
}

// heading is the header label, with an arrow when the column drives the sort.
func heading(c column, cfg model.SortConfig) string {
	if !cfg.Active(c.key) {
		return c.label
	}
	if cfg.Direction == model.Asc {
		return c.label + " ▲"
	}
	return c.label + " ▼"
}

// stripe alternates row backgrounds by display position.
func stripe(i int) string {
	if i%2 == 0 {
		return "bg-gray-100"
	}
	return "bg-white"
}

// TablePath is the fragment endpoint for a session.
func TablePath(id string) string {
	return "/sessions/" + id + "/table"
}

// SortPath is the header activation endpoint for key.
func SortPath(id string, key model.SortKey) string {
	return "/sessions/" + id + "/sort?key=" + string(key)
}
