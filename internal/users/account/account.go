// Copyright (c) 2026 Staynest. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package account handles the signed-in user's profile, favorite listings and
active device sessions.

# Architecture

  - Entities: SessionInfo (DTO). The User entity is owned by the auth package.
  - Domain: Favorites are listing IDs stored on the account row; they are
    resolved through the listing package when read.
  - Security: Every endpoint requires an authenticated caller and only ever
    touches that caller's rows.
*/
package account

import (
	"context"
	"time"

	"github.com/taibuivan/staynest/internal/listing"
	"github.com/taibuivan/staynest/internal/users/auth"
)

// # Domain Entities

// SessionInfo is the transport view of a refresh session. It omits the token hash.
type SessionInfo struct {
	ID        string    `json:"id"`
	UserAgent string    `json:"user_agent"`
	IPAddress string    `json:"ip_address"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
	IsCurrent bool      `json:"is_current"`
}

// # Repository Contracts

// ProfileRepository defines the persistence contract for profile fields and favorites.
type ProfileRepository interface {
	/*
		FindByID retrieves a user record by their unique ID.

		Returns:
		  - *auth.User: Loaded account entity
		  - error: apperr.NotFound or storage failures
	*/
	FindByID(context context.Context, id string) (*auth.User, error)

	// UpdateProfile persists the name and image of user.
	UpdateProfile(context context.Context, user *auth.User) error

	/*
		AddFavorite appends listingID to the user's favorites unless present.

		Returns:
		  - []string: The favorites after the change
		  - error: apperr.NotFound for an unknown user, or storage failures
	*/
	AddFavorite(context context.Context, userID, listingID string) ([]string, error)

	// RemoveFavorite drops listingID from the user's favorites. Absent IDs are not an error.
	RemoveFavorite(context context.Context, userID, listingID string) ([]string, error)
}

// SessionRepository defines the visibility and revocation contract for a user's sessions.
type SessionRepository interface {
	// FindActiveByUserID lists unrevoked, unexpired sessions, newest first.
	FindActiveByUserID(context context.Context, userID string) ([]*auth.Session, error)

	/*
		Revoke marks one of the user's active sessions as revoked.

		Parameters:
		  - userID: string (owner check)
		  - sessionID: string

		Returns:
		  - error: apperr.NotFound when no active session of userID has that ID
	*/
	Revoke(context context.Context, userID, sessionID string) error

	// RevokeOthers revokes every active session of userID except the one with keepTokenHash.
	RevokeOthers(context context.Context, userID, keepTokenHash string) (int64, error)
}

// ListingReader is the subset of the listing service used to resolve favorites.
type ListingReader interface {
	Get(context context.Context, id string) (*listing.Listing, error)
	GetMany(context context.Context, ids []string) ([]*listing.Listing, error)
}
