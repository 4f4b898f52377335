// Copyright (c) 2026 Staynest. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"time"
)

// # Directory Access

// Directory is the account store consumed by the [Authorizer] and [Service].
// Lookups that find nothing return an apperr NOT_FOUND error; any other error
// means the directory itself failed.
type Directory interface {

	/*
		FindByEmail returns the account with exactly this email.

		Parameters:
		  - context: context.Context
		  - email: string (compared as an opaque string)

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound or storage failures
	*/
	FindByEmail(context context.Context, email string) (*User, error)

	/*
		FindByID returns the account with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound or storage failures
	*/
	FindByID(context context.Context, id string) (*User, error)

	/*
		Create persists a new account. A nil PasswordHash stores a null hash.

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: apperr.Conflict on a duplicate email, or storage failures
	*/
	Create(context context.Context, user *User) error

	/*
		FindAccount returns the provider link for (provider, providerAccountID).

		Returns:
		  - *Account: The link
		  - error: apperr.NotFound or storage failures
	*/
	FindAccount(context context.Context, provider, providerAccountID string) (*Account, error)

	/*
		LinkAccount records a provider link. Linking an existing pair is a no-op.

		Returns:
		  - error: Storage failures
	*/
	LinkAccount(context context.Context, account *Account) error
}

// # Session Data Access

// SessionRepository defines the data access contract for refresh-token sessions.
type SessionRepository interface {

	/*
		Create persists a new tracking session for an authenticated login.

		Parameters:
		  - context: context.Context
		  - session: *Session

		Returns:
		  - error: Persistence failures
	*/
	Create(context context.Context, session *Session) error

	/*
		FindByTokenHash returns the active session matching the given token hash.

		Parameters:
		  - context: context.Context
		  - tokenHash: string

		Returns:
		  - *Session: Hydrated entity
		  - error: apperr.NotFound if revoked, expired or unknown
	*/
	FindByTokenHash(context context.Context, tokenHash string) (*Session, error)

	/*
		Revoke marks a specific session as permanently invalidated. Only an
		active session can be revoked, so of two concurrent calls exactly one
		succeeds.

		Parameters:
		  - context: context.Context
		  - sessionID: string

		Returns:
		  - error: apperr.NotFound if unknown or already revoked, or persistence failures
	*/
	Revoke(context context.Context, sessionID string) error

	/*
		DeleteExpired physically removes sessions whose ExpiresAt is in the past.

		Returns:
		  - int64: Rows removed
		  - error: Persistence failures
	*/
	DeleteExpired(context context.Context) (int64, error)
}

// # Volatile Data Access

// StateRepository stores federated sign-in state tokens.
type StateRepository interface {

	/*
		Save remembers which provider a state token was issued for.

		Parameters:
		  - context: context.Context
		  - state: string
		  - provider: string
		  - ttl: time.Duration

		Returns:
		  - error: Persistence failures
	*/
	Save(context context.Context, state, provider string, ttl time.Duration) error

	/*
		Consume returns the provider for state and deletes it atomically, so a
		state token can be redeemed at most once.

		Returns:
		  - string: Provider name
		  - error: apperr.NotFound if unknown, expired or already consumed
	*/
	Consume(context context.Context, state string) (string, error)
}

// # Collaborators

// TokenProvider signs access tokens.
type TokenProvider interface {
	GenerateAccessToken(userID, email string, timeToLive time.Duration) (string, error)
}

// IdentityProvider is one federated sign-in provider (GitHub, Google).
// The protocol exchange is entirely the provider's concern; it hands back a
// confirmed identity or an error.
type IdentityProvider interface {
	// Name is the path segment and Account.Provider value, e.g. "github".
	Name() string
	// AuthURL returns the provider consent URL carrying state.
	AuthURL(state string) string
	// Exchange redeems an authorization code for a confirmed identity.
	Exchange(context context.Context, code string) (*FederatedIdentity, error)
}
