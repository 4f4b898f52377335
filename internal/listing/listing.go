// Copyright (c) 2026 Staynest. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package listing serves the read-only browse view of rental listings.

Listings are filtered by the same URL query state that drives the category
bar, so a shared link always reproduces the same page of results.
*/
package listing

import (
	"time"

	"github.com/taibuivan/staynest/internal/platform/constants"
	"github.com/taibuivan/staynest/pkg/query"
)

// Listing is the browse read model of a rental property.
type Listing struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	ImageURL      string    `json:"image_url"`
	Category      string    `json:"category"`
	RoomCount     int       `json:"room_count"`
	BathroomCount int       `json:"bathroom_count"`
	GuestCount    int       `json:"guest_count"`
	LocationValue string    `json:"location_value"`
	Price         int       `json:"price"`
	UserID        string    `json:"user_id"`
	CreatedAt     time.Time `json:"created_at"`
}

// Filter narrows a browse request. Zero values mean "no constraint".
type Filter struct {
	Category string
}

// FilterFromQuery extracts the browse filter from a URL query state.
func FilterFromQuery(state query.State) Filter {
	return Filter{Category: state.Get(constants.QueryKeyCategory)}
}

// State converts the filter back into its canonical query form.
func (filter Filter) State() query.State {
	return query.State{constants.QueryKeyCategory: filter.Category}
}
