// Copyright (c) 2026 Staynest. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account_test

import (
	"context"
	"io"
	"log/slog"
	"slices"
	"sync"

	"github.com/taibuivan/staynest/internal/listing"
	"github.com/taibuivan/staynest/internal/platform/apperr"
	"github.com/taibuivan/staynest/internal/users/account"
	"github.com/taibuivan/staynest/internal/users/auth"
)

const (
	userID     = "0192f1c4-0000-7000-8000-00000000a11c"
	beachHouse = "0192f1c4-8a3e-7b2a-9c41-1f2e3d4c5b6b"
	desertDome = "0192f1c4-8a3e-7b2a-9c41-1f2e3d4c5b6a"
)

type fakeProfiles struct {
	mu    sync.Mutex
	users map[string]*auth.User
}

func newFakeProfiles() *fakeProfiles {
	return &fakeProfiles{users: map[string]*auth.User{
		userID: {ID: userID, Name: "Alice", Email: "alice@staynest.test", FavoriteIDs: []string{}},
	}}
}

func (repo *fakeProfiles) FindByID(_ context.Context, id string) (*auth.User, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	user, ok := repo.users[id]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	clone := *user
	clone.FavoriteIDs = slices.Clone(user.FavoriteIDs)
	return &clone, nil
}

func (repo *fakeProfiles) UpdateProfile(_ context.Context, user *auth.User) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	stored, ok := repo.users[user.ID]
	if !ok {
		return apperr.NotFound("User")
	}
	stored.Name, stored.Image = user.Name, user.Image
	return nil
}

func (repo *fakeProfiles) AddFavorite(_ context.Context, id, listingID string) ([]string, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	user, ok := repo.users[id]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	if !slices.Contains(user.FavoriteIDs, listingID) {
		user.FavoriteIDs = append(user.FavoriteIDs, listingID)
	}
	return slices.Clone(user.FavoriteIDs), nil
}

func (repo *fakeProfiles) RemoveFavorite(_ context.Context, id, listingID string) ([]string, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	user, ok := repo.users[id]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	user.FavoriteIDs = slices.DeleteFunc(user.FavoriteIDs, func(favorite string) bool { return favorite == listingID })
	return slices.Clone(user.FavoriteIDs), nil
}

type fakeSessions struct {
	mu       sync.Mutex
	sessions []*auth.Session
}

func (repo *fakeSessions) FindActiveByUserID(_ context.Context, id string) ([]*auth.Session, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	active := make([]*auth.Session, 0)
	for _, session := range repo.sessions {
		if session.UserID == id && !session.IsRevoked {
			active = append(active, session)
		}
	}
	return active, nil
}

func (repo *fakeSessions) Revoke(_ context.Context, id, sessionID string) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	for _, session := range repo.sessions {
		if session.ID == sessionID && session.UserID == id && !session.IsRevoked {
			session.IsRevoked = true
			return nil
		}
	}
	return apperr.NotFound("Session")
}

func (repo *fakeSessions) RevokeOthers(_ context.Context, id, keepTokenHash string) (int64, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	var revoked int64
	for _, session := range repo.sessions {
		if session.UserID == id && session.TokenHash != keepTokenHash && !session.IsRevoked {
			session.IsRevoked = true
			revoked++
		}
	}
	return revoked, nil
}

type fakeListings struct {
	items map[string]*listing.Listing
}

func newFakeListings() *fakeListings {
	return &fakeListings{items: map[string]*listing.Listing{
		beachHouse: {ID: beachHouse, Title: "Sea Breeze", Category: "Beach"},
		desertDome: {ID: desertDome, Title: "Dune House", Category: "Desert"},
	}}
}

func (reader *fakeListings) Get(_ context.Context, id string) (*listing.Listing, error) {
	if item, ok := reader.items[id]; ok {
		return item, nil
	}
	return nil, apperr.NotFound("Listing")
}

func (reader *fakeListings) GetMany(_ context.Context, ids []string) ([]*listing.Listing, error) {
	found := make([]*listing.Listing, 0, len(ids))
	for _, id := range ids {
		if item, ok := reader.items[id]; ok {
			found = append(found, item)
		}
	}
	return found, nil
}

type fixture struct {
	service  *account.Service
	profiles *fakeProfiles
	sessions *fakeSessions
	listings *fakeListings
}

func newFixture(sessions ...*auth.Session) *fixture {
	f := &fixture{
		profiles: newFakeProfiles(),
		sessions: &fakeSessions{sessions: sessions},
		listings: newFakeListings(),
	}
	f.service = account.NewService(f.profiles, f.sessions, f.listings, slog.New(slog.NewTextHandler(io.Discard, nil)))
	return f
}
