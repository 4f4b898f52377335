// Copyright (c) 2026 Staynest. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/staynest/internal/platform/apperr"
	"github.com/taibuivan/staynest/internal/users/account"
	"github.com/taibuivan/staynest/internal/users/auth"
)

func TestService_UpdateProfile(t *testing.T) {
	f := newFixture()
	name := "Alice Liddell"

	user, err := f.service.UpdateProfile(context.Background(), userID, account.UpdateProfileInput{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Alice Liddell", user.Name)
	assert.Equal(t, "alice@staynest.test", user.Email)

	_, err = f.service.UpdateProfile(context.Background(), "0192f1c4-0000-7000-8000-000000000000", account.UpdateProfileInput{Name: &name})
	assert.True(t, apperr.IsNotFound(err))
}

/*
TestService_Favorites adds, re-adds, lists and removes favorites.
*/
func TestService_Favorites(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	favorites, err := f.service.AddFavorite(ctx, userID, beachHouse)
	require.NoError(t, err)
	assert.Equal(t, []string{beachHouse}, favorites)

	favorites, err = f.service.AddFavorite(ctx, userID, beachHouse)
	require.NoError(t, err)
	assert.Equal(t, []string{beachHouse}, favorites, "adding twice keeps one entry")

	_, err = f.service.AddFavorite(ctx, userID, desertDome)
	require.NoError(t, err)

	listings, err := f.service.ListFavorites(ctx, userID)
	require.NoError(t, err)
	require.Len(t, listings, 2)
	assert.Equal(t, "Sea Breeze", listings[0].Title)

	favorites, err = f.service.RemoveFavorite(ctx, userID, beachHouse)
	require.NoError(t, err)
	assert.Equal(t, []string{desertDome}, favorites)

	favorites, err = f.service.RemoveFavorite(ctx, userID, beachHouse)
	require.NoError(t, err)
	assert.Equal(t, []string{desertDome}, favorites, "removing an absent favorite is a no-op")
}

func TestService_Favorites_UnknownListing(t *testing.T) {
	f := newFixture()

	_, err := f.service.AddFavorite(context.Background(), userID, "0192f1c4-8a3e-7b2a-9c41-1f2e3d4c5bff")
	assert.True(t, apperr.IsNotFound(err))

	_, err = f.service.RemoveFavorite(context.Background(), userID, "not-a-uuid")
	assert.True(t, apperr.IsNotFound(err))
}

func sessionsFor(owner string) []*auth.Session {
	return []*auth.Session{
		{ID: "0192f1c4-0000-7000-8000-0000000000a1", UserID: owner, TokenHash: "hash-laptop", UserAgent: "Firefox"},
		{ID: "0192f1c4-0000-7000-8000-0000000000a2", UserID: owner, TokenHash: "hash-phone", UserAgent: "Safari"},
		{ID: "0192f1c4-0000-7000-8000-0000000000a3", UserID: "someone-else", TokenHash: "hash-other"},
	}
}

func TestService_Sessions(t *testing.T) {
	sessions := sessionsFor(userID)
	f := newFixture(sessions...)
	ctx := context.Background()

	infos, err := f.service.ListSessions(ctx, userID, "hash-phone")
	require.NoError(t, err)
	require.Len(t, infos, 2)
	assert.False(t, infos[0].IsCurrent)
	assert.True(t, infos[1].IsCurrent)

	revoked, err := f.service.RevokeOtherSessions(ctx, userID, "hash-phone")
	require.NoError(t, err)
	assert.Equal(t, int64(1), revoked)
	assert.True(t, sessions[0].IsRevoked)
	assert.False(t, sessions[1].IsRevoked)
	assert.False(t, sessions[2].IsRevoked, "other users are untouched")

	_, err = f.service.RevokeOtherSessions(ctx, userID, "")
	assert.Equal(t, http.StatusBadRequest, apperr.As(err).HTTPStatus)
}

func TestService_RevokeSession_Ownership(t *testing.T) {
	sessions := sessionsFor(userID)
	f := newFixture(sessions...)
	ctx := context.Background()

	err := f.service.RevokeSession(ctx, userID, sessions[2].ID)
	assert.True(t, apperr.IsNotFound(err), "a session of another user is not found")

	require.NoError(t, f.service.RevokeSession(ctx, userID, sessions[1].ID))
	assert.True(t, sessions[1].IsRevoked)

	assert.True(t, apperr.IsNotFound(f.service.RevokeSession(ctx, userID, "bogus")))
}
