// Copyright (c) 2026 Staynest. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// ListingTable represents the 'listing.listing' table
type ListingTable struct {
	Table         string
	ID            string
	Title         string
	Description   string
	ImageURL      string
	Category      string
	RoomCount     string
	BathroomCount string
	GuestCount    string
	LocationValue string
	Price         string
	UserID        string
	CreatedAt     string
}

// Listing is the schema definition for listing.listing
var Listing = ListingTable{
	Table:         "listing.listing",
	ID:            "id",
	Title:         "title",
	Description:   "description",
	ImageURL:      "imageurl",
	Category:      "category",
	RoomCount:     "roomcount",
	BathroomCount: "bathroomcount",
	GuestCount:    "guestcount",
	LocationValue: "locationvalue",
	Price:         "price",
	UserID:        "userid",
	CreatedAt:     "createdat",
}

// Columns returns all standard column names
func (t ListingTable) Columns() []string {
	return []string{
		t.ID, t.Title, t.Description, t.ImageURL, t.Category, t.RoomCount,
		t.BathroomCount, t.GuestCount, t.LocationValue, t.Price, t.UserID, t.CreatedAt,
	}
}
