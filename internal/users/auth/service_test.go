// Copyright (c) 2026 Staynest. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/staynest/internal/platform/apperr"
	"github.com/taibuivan/staynest/internal/users/auth"
)

type serviceFixture struct {
	service   *auth.Service
	directory *fakeDirectory
	sessions  *fakeSessions
	states    *fakeStates
	github    *fakeProvider
}

func newServiceFixture(users ...*auth.User) *serviceFixture {
	fixture := &serviceFixture{
		directory: newFakeDirectory(users...),
		sessions:  newFakeSessions(),
		states:    newFakeStates(),
		github: &fakeProvider{name: "github", identity: auth.FederatedIdentity{
			ProviderAccountID: "583231",
			Email:             "octo@cat.dev",
			Name:              "Octo Cat",
		}},
	}
	fixture.service = auth.NewService(
		fixture.directory, fixture.sessions, fixture.states, fakeTokens{}, discardLogger(),
		fixture.github, &fakeProvider{name: "google"},
	)
	return fixture
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	appError := apperr.As(err)
	require.NotNil(t, appError, "expected an AppError, got %v", err)
	return appError.HTTPStatus
}

func TestService_RegisterAndLogin(t *testing.T) {
	fixture := newServiceFixture()
	ctx := context.Background()

	user, err := fixture.service.Register(ctx, auth.RegisterInput{Name: "Ada", Email: "ada@b.com", Password: "correct horse"})
	require.NoError(t, err)
	require.True(t, user.HasPassword())
	assert.NotEqual(t, "correct horse", *user.PasswordHash)

	_, err = fixture.service.Register(ctx, auth.RegisterInput{Name: "Ada", Email: "ada@b.com", Password: "another one"})
	assert.Equal(t, http.StatusConflict, statusOf(t, err))

	session, err := fixture.service.Login(ctx, auth.LoginInput{Email: "ada@b.com", Password: "correct horse"})
	require.NoError(t, err)
	assert.Equal(t, "access-"+user.ID, session.AccessToken)
	assert.NotEmpty(t, session.RefreshToken)
	assert.Len(t, fixture.sessions.sessions, 1)

	for hash := range fixture.sessions.sessions {
		assert.NotEqual(t, session.RefreshToken, hash, "only the token hash is stored")
	}
}

func TestService_Login_Failures(t *testing.T) {
	fixture := newServiceFixture(credentialUser())
	ctx := context.Background()

	_, err := fixture.service.Login(ctx, auth.LoginInput{Email: "a@b.com", Password: "wrong"})
	assert.Equal(t, http.StatusUnauthorized, statusOf(t, err))
	assert.Equal(t, auth.InvalidCredentialsMessage, err.Error())

	_, unknownErr := fixture.service.Login(ctx, auth.LoginInput{Email: "x@y.com", Password: "secret"})
	assert.Equal(t, err.Error(), unknownErr.Error())

	_, err = fixture.service.Login(ctx, auth.LoginInput{Email: "a@b.com"})
	assert.Equal(t, http.StatusBadRequest, statusOf(t, err))
	assert.Empty(t, fixture.sessions.sessions)
}

/*
TestService_RefreshRotation ensures a refresh token works exactly once.
*/
func TestService_RefreshRotation(t *testing.T) {
	fixture := newServiceFixture(credentialUser())
	ctx := context.Background()

	first, err := fixture.service.Login(ctx, auth.LoginInput{Email: "a@b.com", Password: "secret"})
	require.NoError(t, err)

	second, err := fixture.service.RefreshSession(ctx, first.RefreshToken, "ua", "127.0.0.1")
	require.NoError(t, err)
	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)

	_, err = fixture.service.RefreshSession(ctx, first.RefreshToken, "ua", "127.0.0.1")
	assert.Equal(t, http.StatusUnauthorized, statusOf(t, err))

	require.NoError(t, fixture.service.Logout(ctx, second.RefreshToken))
	require.NoError(t, fixture.service.Logout(ctx, second.RefreshToken), "logout is idempotent")

	_, err = fixture.service.RefreshSession(ctx, second.RefreshToken, "ua", "127.0.0.1")
	assert.Equal(t, http.StatusUnauthorized, statusOf(t, err))
}

func TestService_RefreshConcurrentReuse(t *testing.T) {
	fixture := newServiceFixture(credentialUser())
	ctx := context.Background()

	first, err := fixture.service.Login(ctx, auth.LoginInput{Email: "a@b.com", Password: "secret"})
	require.NoError(t, err)

	const attempts = 8
	var (
		wg        sync.WaitGroup
		succeeded atomic.Int32
	)
	for range attempts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := fixture.service.RefreshSession(ctx, first.RefreshToken, "ua", "127.0.0.1"); err == nil {
				succeeded.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), succeeded.Load(), "a refresh token rotates exactly once")
}

func TestService_FederatedFlow(t *testing.T) {
	fixture := newServiceFixture()
	ctx := context.Background()

	start, err := fixture.service.BeginFederated(ctx, "github")
	require.NoError(t, err)
	require.NotEmpty(t, start.State)
	assert.Contains(t, start.AuthURL, "state="+start.State)

	callback := auth.CallbackInput{Provider: "github", State: start.State, BoundState: start.State, Code: "good-code"}

	session, err := fixture.service.CompleteFederated(ctx, callback)
	require.NoError(t, err)
	assert.Equal(t, "octo@cat.dev", session.User.Email)
	assert.Nil(t, session.User.PasswordHash)
	assert.Contains(t, fixture.directory.accounts, "github/583231")

	_, err = fixture.service.CompleteFederated(ctx, callback)
	assert.Equal(t, http.StatusUnauthorized, statusOf(t, err), "state is single use")
}

func TestService_FederatedFailures(t *testing.T) {
	fixture := newServiceFixture()
	ctx := context.Background()

	_, err := fixture.service.BeginFederated(ctx, "myspace")
	assert.Equal(t, http.StatusNotFound, statusOf(t, err))

	start, err := fixture.service.BeginFederated(ctx, "github")
	require.NoError(t, err)

	_, err = fixture.service.CompleteFederated(ctx, auth.CallbackInput{
		Provider: "google", State: start.State, BoundState: start.State, Code: "good-code",
	})
	assert.Equal(t, http.StatusUnauthorized, statusOf(t, err), "state bound to another provider")

	start, err = fixture.service.BeginFederated(ctx, "github")
	require.NoError(t, err)

	_, err = fixture.service.CompleteFederated(ctx, auth.CallbackInput{
		Provider: "github", State: start.State, BoundState: start.State, Code: "stolen",
	})
	assert.Equal(t, http.StatusUnauthorized, statusOf(t, err))
	assert.ErrorIs(t, err, errCodeRejected)
	assert.Empty(t, fixture.directory.users)
}

func TestService_FederatedStateMustMatchBrowser(t *testing.T) {
	fixture := newServiceFixture()
	ctx := context.Background()

	// Flow started elsewhere; this browser holds no state or a different one
	foreign, err := fixture.service.BeginFederated(ctx, "github")
	require.NoError(t, err)
	own, err := fixture.service.BeginFederated(ctx, "github")
	require.NoError(t, err)

	for _, bound := range []string{"", own.State} {
		_, err = fixture.service.CompleteFederated(ctx, auth.CallbackInput{
			Provider: "github", State: foreign.State, BoundState: bound, Code: "good-code",
		})
		assert.Equal(t, http.StatusUnauthorized, statusOf(t, err))
	}
	assert.Empty(t, fixture.directory.users)
	assert.Zero(t, fixture.github.exchanges, "no code is exchanged for an unbound state")

	// The rejected callbacks leave the genuine flow usable
	session, err := fixture.service.CompleteFederated(ctx, auth.CallbackInput{
		Provider: "github", State: own.State, BoundState: own.State, Code: "good-code",
	})
	require.NoError(t, err)
	assert.Equal(t, "octo@cat.dev", session.User.Email)
}

func TestService_Providers(t *testing.T) {
	assert.Equal(t, []string{"github", "google"}, newServiceFixture().service.Providers())
}

func TestService_PurgeExpiredSessions(t *testing.T) {
	fixture := newServiceFixture()
	fixture.sessions.sessions["stale"] = &auth.Session{ID: "s1", TokenHash: "stale", ExpiresAt: time.Now().Add(-time.Hour)}
	fixture.sessions.sessions["live"] = &auth.Session{ID: "s2", TokenHash: "live", ExpiresAt: time.Now().Add(time.Hour)}

	removed, err := fixture.service.PurgeExpiredSessions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)
	assert.Contains(t, fixture.sessions.sessions, "live")
	assert.NotContains(t, fixture.sessions.sessions, "stale")
}
