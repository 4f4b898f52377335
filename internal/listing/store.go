// Copyright (c) 2026 Staynest. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package listing

import "context"

// # Listing Data Access

// Repository defines the read contract for listings.
type Repository interface {

	/*
		List returns a page of listings matching filter, newest first, and the
		total number of matches.

		Parameters:
		  - context: context.Context
		  - filter: Filter
		  - limit: int
		  - offset: int

		Returns:
		  - []*Listing: The page of listings (never nil)
		  - int: Total count matching the filter
		  - error: Database retrieval failures
	*/
	List(context context.Context, filter Filter, limit, offset int) ([]*Listing, int, error)

	/*
		FindByID returns the listing with the given ID.

		Returns:
		  - *Listing: The listing
		  - error: apperr NOT_FOUND if missing
	*/
	FindByID(context context.Context, id string) (*Listing, error)

	/*
		FindByIDs returns the listings among ids that exist, in no particular order.

		Returns:
		  - []*Listing: Found listings (never nil)
		  - error: Database retrieval failures
	*/
	FindByIDs(context context.Context, ids []string) ([]*Listing, error)
}
