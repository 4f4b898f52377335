// Copyright (c) 2026 Staynest. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package category holds the static catalog of listing categories.

The catalog is built once at package initialization and never mutated.
Callers receive copies, so the browse bar always renders the same ordered set
regardless of what any request does with its result.
*/
package category

import (
	"github.com/taibuivan/staynest/pkg/slug"
)

// Category is one entry of the browse bar.
type Category struct {
	// Label is the display name and the value carried in the "category" query key.
	Label string `json:"label"`
	// Slug is the URL-safe lowercase form of Label.
	Slug string `json:"slug"`
	// Icon names the glyph a client renders next to the label.
	Icon string `json:"icon"`
	// Description is the one-line blurb shown on a listing of this category.
	Description string `json:"description"`
}

var catalog = build([]Category{
	{Label: "Beach", Icon: "beach", Description: "This property is close to the beach!"},
	{Label: "Windmills", Icon: "windmill", Description: "This property has windmills!"},
	{Label: "Modern", Icon: "villa", Description: "This property is modern!"},
	{Label: "Countryside", Icon: "mountain", Description: "This property is in the countryside!"},
	{Label: "Pools", Icon: "pool", Description: "This property has a pool!"},
	{Label: "Islands", Icon: "island", Description: "This property is on an island!"},
	{Label: "Lake", Icon: "boat-fishing", Description: "This property is close to a lake!"},
	{Label: "Skiing", Icon: "skiing", Description: "This property has skiing activities!"},
	{Label: "Castles", Icon: "castle", Description: "This property is in a castle!"},
	{Label: "Camping", Icon: "forest-camp", Description: "This property has camping activities!"},
	{Label: "Arctic", Icon: "snow", Description: "This property is in an arctic environment!"},
	{Label: "Cave", Icon: "cave-entrance", Description: "This property is in a cave!"},
	{Label: "Desert", Icon: "cactus", Description: "This property is in the desert!"},
	{Label: "Barns", Icon: "barn", Description: "This property is in a barn!"},
	{Label: "Lux", Icon: "diamond", Description: "This property is brand new and luxurious!"},
})

var byLabel = index(catalog)

func build(entries []Category) []Category {
	for i := range entries {
		entries[i].Slug = slug.From(entries[i].Label)
	}
	return entries
}

func index(entries []Category) map[string]Category {
	out := make(map[string]Category, len(entries))
	for _, entry := range entries {
		out[entry.Label] = entry
	}
	return out
}

// All returns the catalog in display order. The slice is a fresh copy.
func All() []Category {
	out := make([]Category, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup finds a category by its exact label.
func Lookup(label string) (Category, bool) {
	entry, ok := byLabel[label]
	return entry, ok
}

// Known reports whether label is in the catalog.
func Known(label string) bool {
	_, ok := byLabel[label]
	return ok
}
