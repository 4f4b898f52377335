// Copyright (c) 2026 Staynest. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import "time"

// # Authentication Constraints

const (
	// AccessTokenTTL is the duration a JWT access token remains valid.
	AccessTokenTTL = 15 * time.Minute

	// RefreshTokenTTL is the duration a session/refresh token remains valid.
	RefreshTokenTTL = 30 * 24 * time.Hour

	// RefreshTokenLength is the byte length of the random refresh token.
	RefreshTokenLength = 32

	// StateTokenLength is the byte length of the federated sign-in state token.
	StateTokenLength = 32

	// StateTTL bounds how long a user may take at the provider's consent screen.
	StateTTL = 10 * time.Minute

	// MinPasswordLength applies to registration only. Login accepts any
	// non-empty password and lets the hash comparison decide.
	MinPasswordLength = 8
)

// InvalidCredentialsMessage is the single message for every rejected credential attempt.
const InvalidCredentialsMessage = "Invalid credentials"
