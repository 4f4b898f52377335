// Copyright (c) 2026 Staynest. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taibuivan/staynest/internal/listing"
	"github.com/taibuivan/staynest/internal/platform/apperr"
	"github.com/taibuivan/staynest/internal/users/auth"
	"github.com/taibuivan/staynest/pkg/uuid"
)

// # Service Layer

// Service orchestrates profile, favorites and session management for the caller.
type Service struct {
	profileRepository ProfileRepository
	sessionRepository SessionRepository
	listings          ListingReader
	logger            *slog.Logger
}

// NewService constructs a new [Service] with its dependencies.
func NewService(
	profileRepo ProfileRepository,
	sessionRepo SessionRepository,
	listings ListingReader,
	logger *slog.Logger,
) *Service {
	return &Service{
		profileRepository: profileRepo,
		sessionRepository: sessionRepo,
		listings:          listings,
		logger:            logger,
	}
}

// # Profile Management

// GetProfile retrieves the private profile of a user.
func (service *Service) GetProfile(context context.Context, userID string) (*auth.User, error) {
	user, err := service.profileRepository.FindByID(context, userID)
	if err != nil {
		return nil, fmt.Errorf("account_service_get_profile_failed: %w", err)
	}
	return user, nil
}

// UpdateProfileInput defines the mutable subset of profile fields. Nil means unchanged.
type UpdateProfileInput struct {
	Name  *string
	Image *string
}

/*
UpdateProfile applies a partial set of changes to the user's profile.

Parameters:
  - context: context.Context
  - userID: string
  - input: UpdateProfileInput

Returns:
  - *auth.User: The updated user profile
  - error: Lookup or storage failures
*/
func (service *Service) UpdateProfile(context context.Context, userID string, input UpdateProfileInput) (*auth.User, error) {
	user, err := service.profileRepository.FindByID(context, userID)
	if err != nil {
		return nil, fmt.Errorf("account_service_update_lookup_failed: %w", err)
	}

	// Apply only the fields the caller sent
	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Image != nil {
		user.Image = *input.Image
	}

	if err := service.profileRepository.UpdateProfile(context, user); err != nil {
		return nil, fmt.Errorf("account_service_update_failed: %w", err)
	}

	service.logger.InfoContext(context, "user_profile_updated", slog.String("user_id", userID))
	return user, nil
}

// # Favorites

// ListFavorites returns the user's favorite listings, most recently added last.
func (service *Service) ListFavorites(context context.Context, userID string) ([]*listing.Listing, error) {
	user, err := service.profileRepository.FindByID(context, userID)
	if err != nil {
		return nil, fmt.Errorf("account_service_list_favorites_failed: %w", err)
	}

	// Listings removed since they were favorited are skipped
	listings, err := service.listings.GetMany(context, user.FavoriteIDs)
	if err != nil {
		return nil, fmt.Errorf("account_service_list_favorites_failed: %w", err)
	}
	return listings, nil
}

/*
AddFavorite marks a listing as favorite. Adding twice is a no-op.

Returns:
  - []string: The favorite IDs after the change
  - error: apperr.NotFound when the listing does not exist
*/
func (service *Service) AddFavorite(context context.Context, userID, listingID string) ([]string, error) {
	// The listing must exist; a malformed ID is NotFound as well
	if _, err := service.listings.Get(context, listingID); err != nil {
		return nil, err
	}

	favorites, err := service.profileRepository.AddFavorite(context, userID, listingID)
	if err != nil {
		return nil, fmt.Errorf("account_service_add_favorite_failed: %w", err)
	}

	service.logger.InfoContext(context, "favorite_added",
		slog.String("user_id", userID),
		slog.String("listing_id", listingID),
	)
	return favorites, nil
}

// RemoveFavorite unmarks a listing. Removing a listing that is not a favorite is a no-op.
func (service *Service) RemoveFavorite(context context.Context, userID, listingID string) ([]string, error) {
	if !uuid.Valid(listingID) {
		return nil, apperr.NotFound("Listing")
	}

	favorites, err := service.profileRepository.RemoveFavorite(context, userID, listingID)
	if err != nil {
		return nil, fmt.Errorf("account_service_remove_favorite_failed: %w", err)
	}

	service.logger.InfoContext(context, "favorite_removed",
		slog.String("user_id", userID),
		slog.String("listing_id", listingID),
	)
	return favorites, nil
}

// # Session Security

/*
ListSessions lists the user's active sessions.

Parameters:
  - context: context.Context
  - userID: string
  - currentTokenHash: string (hash of the caller's refresh cookie, may be empty)

Returns:
  - []SessionInfo: Active devices with the caller's own session flagged
  - error: Retrieval failures
*/
func (service *Service) ListSessions(context context.Context, userID, currentTokenHash string) ([]SessionInfo, error) {
	sessions, err := service.sessionRepository.FindActiveByUserID(context, userID)
	if err != nil {
		return nil, fmt.Errorf("account_service_list_sessions_failed: %w", err)
	}

	// Hide token hashes; flag the caller's own device
	infos := make([]SessionInfo, 0, len(sessions))
	for _, session := range sessions {
		infos = append(infos, SessionInfo{
			ID:        session.ID,
			UserAgent: session.UserAgent,
			IPAddress: session.IPAddress,
			CreatedAt: session.CreatedAt,
			ExpiresAt: session.ExpiresAt,
			IsCurrent: currentTokenHash != "" && session.TokenHash == currentTokenHash,
		})
	}
	return infos, nil
}

// RevokeSession terminates one of the user's sessions by ID.
func (service *Service) RevokeSession(context context.Context, userID, sessionID string) error {
	if !uuid.Valid(sessionID) {
		return apperr.NotFound("Session")
	}

	if err := service.sessionRepository.Revoke(context, userID, sessionID); err != nil {
		return fmt.Errorf("account_service_revoke_session_failed: %w", err)
	}

	service.logger.InfoContext(context, "user_session_revoked",
		slog.String("user_id", userID),
		slog.String("session_id", sessionID),
	)
	return nil
}

/*
RevokeOtherSessions signs out every other device.

Description: The caller's session is identified by its refresh cookie; without
it there is nothing to keep, so the request is rejected instead of revoking all.
*/
func (service *Service) RevokeOtherSessions(context context.Context, userID, currentTokenHash string) (int64, error) {
	if currentTokenHash == "" {
		return 0, apperr.ValidationError("Current session cookie is required")
	}

	revoked, err := service.sessionRepository.RevokeOthers(context, userID, currentTokenHash)
	if err != nil {
		return 0, fmt.Errorf("account_service_revoke_others_failed: %w", err)
	}

	service.logger.InfoContext(context, "user_other_sessions_revoked",
		slog.String("user_id", userID),
		slog.Int64("count", revoked),
	)
	return revoked, nil
}
