// Copyright (c) 2026 Staynest. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package filter keeps the browse page's category filter in the URL.

The active category lives in the "category" query key so that a filtered view
is shareable and survives reloads. Selecting a category never mutates the live
query: [ToggleCategory] computes a full replacement state, and a [Navigator]
is asked to move to it.

Toggle Semantics:

  - Selecting the active category clears it (toggle-off).
  - Selecting any other label replaces the previous one (single-select).
  - Unknown labels are accepted; the catalog only drives rendering.
*/
package filter

import (
	"github.com/taibuivan/staynest/internal/platform/constants"
	"github.com/taibuivan/staynest/pkg/query"
)

// Action describes what a toggle did to the category key.
type Action string

const (
	ActionSelect Action = "select"
	ActionClear  Action = "clear"
)

// ToggleCategory returns the query state that results from choosing label
// while current is displayed. current is never modified; nil is treated as empty.
func ToggleCategory(current query.State, label string) query.State {
	next := current.Clone()

	if current.Get(constants.QueryKeyCategory) == label {
		delete(next, constants.QueryKeyCategory)
		return next
	}

	next[constants.QueryKeyCategory] = label
	return next
}

// ActionFor reports whether choosing label on current selects or clears.
func ActionFor(current query.State, label string) Action {
	if current.Get(constants.QueryKeyCategory) == label {
		return ActionClear
	}
	return ActionSelect
}

// Selected returns the active category label, or "" if none.
func Selected(current query.State) string {
	return current.Get(constants.QueryKeyCategory)
}

// # Navigation

// Navigator is the boundary to whatever owns the current URL.
type Navigator interface {
	// CurrentQuery returns a snapshot of the query being displayed.
	CurrentQuery() query.State
	// NavigateTo requests a move to a page showing state.
	NavigateTo(state query.State)
}

// Select reads the navigator's current query, toggles label, and navigates to
// the result. The computed state is also returned.
func Select(navigator Navigator, label string) query.State {
	next := ToggleCategory(navigator.CurrentQuery(), label)
	navigator.NavigateTo(next)
	return next
}
