// Copyright (c) 2026 Staynest. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/taibuivan/staynest/internal/platform/apperr"
	"github.com/taibuivan/staynest/internal/platform/sec"
	"github.com/taibuivan/staynest/internal/users/auth"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func mustHash(password string) *string {
	hash, err := sec.HashPassword(password)
	if err != nil {
		panic(err)
	}
	return &hash
}

// # Directory

type fakeDirectory struct {
	mu       sync.Mutex
	users    map[string]*auth.User
	accounts map[string]*auth.Account
	reads    int
	err      error
	// rival, when set, is stored by a concurrent sign-in just before Create runs.
	rival *auth.User
}

func newFakeDirectory(users ...*auth.User) *fakeDirectory {
	directory := &fakeDirectory{
		users:    make(map[string]*auth.User),
		accounts: make(map[string]*auth.Account),
	}
	for _, user := range users {
		directory.users[user.Email] = user
	}
	return directory
}

func (directory *fakeDirectory) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	directory.mu.Lock()
	defer directory.mu.Unlock()

	directory.reads++
	if directory.err != nil {
		return nil, directory.err
	}
	user, found := directory.users[email]
	if !found {
		return nil, apperr.NotFound("User")
	}
	return user, nil
}

func (directory *fakeDirectory) FindByID(_ context.Context, id string) (*auth.User, error) {
	directory.mu.Lock()
	defer directory.mu.Unlock()

	if directory.err != nil {
		return nil, directory.err
	}
	for _, user := range directory.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (directory *fakeDirectory) Create(_ context.Context, user *auth.User) error {
	directory.mu.Lock()
	defer directory.mu.Unlock()

	if directory.err != nil {
		return directory.err
	}
	if directory.rival != nil {
		directory.users[directory.rival.Email] = directory.rival
		directory.rival = nil
	}
	if _, exists := directory.users[user.Email]; exists {
		return apperr.Conflict("User already exists")
	}
	directory.users[user.Email] = user
	return nil
}

func accountKey(provider, id string) string { return provider + "/" + id }

func (directory *fakeDirectory) FindAccount(_ context.Context, provider, providerAccountID string) (*auth.Account, error) {
	directory.mu.Lock()
	defer directory.mu.Unlock()

	if directory.err != nil {
		return nil, directory.err
	}
	account, found := directory.accounts[accountKey(provider, providerAccountID)]
	if !found {
		return nil, apperr.NotFound("Provider account")
	}
	return account, nil
}

func (directory *fakeDirectory) LinkAccount(_ context.Context, account *auth.Account) error {
	directory.mu.Lock()
	defer directory.mu.Unlock()

	if directory.err != nil {
		return directory.err
	}
	key := accountKey(account.Provider, account.ProviderAccountID)
	if _, exists := directory.accounts[key]; !exists {
		directory.accounts[key] = account
	}
	return nil
}

// # Sessions

type fakeSessions struct {
	mu       sync.Mutex
	sessions map[string]*auth.Session
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{sessions: make(map[string]*auth.Session)}
}

func (repo *fakeSessions) Create(_ context.Context, session *auth.Session) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	repo.sessions[session.TokenHash] = session
	return nil
}

func (repo *fakeSessions) FindByTokenHash(_ context.Context, tokenHash string) (*auth.Session, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	session, found := repo.sessions[tokenHash]
	if !found || session.IsRevoked || time.Now().After(session.ExpiresAt) {
		return nil, apperr.NotFound("Session")
	}
	return session, nil
}

func (repo *fakeSessions) Revoke(_ context.Context, sessionID string) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	for _, session := range repo.sessions {
		if session.ID == sessionID && !session.IsRevoked {
			session.IsRevoked = true
			return nil
		}
	}
	return apperr.NotFound("Session")
}

func (repo *fakeSessions) DeleteExpired(context.Context) (int64, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	var removed int64
	for hash, session := range repo.sessions {
		if time.Now().After(session.ExpiresAt) {
			delete(repo.sessions, hash)
			removed++
		}
	}
	return removed, nil
}

// # State

type fakeStates struct {
	mu     sync.Mutex
	states map[string]string
}

func newFakeStates() *fakeStates {
	return &fakeStates{states: make(map[string]string)}
}

func (repo *fakeStates) Save(_ context.Context, state, provider string, _ time.Duration) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	repo.states[state] = provider
	return nil
}

func (repo *fakeStates) Consume(_ context.Context, state string) (string, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	provider, found := repo.states[state]
	if !found {
		return "", apperr.NotFound("Sign-in state")
	}
	delete(repo.states, state)
	return provider, nil
}

// # Collaborators

type fakeTokens struct{}

func (fakeTokens) GenerateAccessToken(userID, _ string, _ time.Duration) (string, error) {
	return "access-" + userID, nil
}

var errCodeRejected = errors.New("bad_verification_code")

type fakeProvider struct {
	name      string
	identity  auth.FederatedIdentity
	exchanges int
}

func (provider *fakeProvider) Name() string { return provider.name }

func (provider *fakeProvider) AuthURL(state string) string {
	return "https://provider.test/authorize?state=" + state
}

func (provider *fakeProvider) Exchange(_ context.Context, code string) (*auth.FederatedIdentity, error) {
	provider.exchanges++
	if code != "good-code" {
		return nil, errCodeRejected
	}
	identity := provider.identity
	return &identity, nil
}
