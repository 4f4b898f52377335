// Copyright (c) 2026 Staynest. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements identity and session management for Staynest.

It decides whether a sign-in attempt is granted, whether by email and password
or by a confirmed federated identity, and turns granted decisions into
sessions (a short-lived JWT plus a rotating refresh token).

Architecture:

  - Authorizer: The pure decision over a [Strategy]; one directory read per attempt.
  - Service: Registration, login, refresh, logout and the federated redirect flow.
  - Directory: Account storage (Postgres), consumed through an interface.
  - StateRepository: One-shot federated state tokens (Redis).
*/
package auth

import (
	"time"
)

// # Domain Entities

// User is a directory record together with its public profile.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	// PasswordHash is nil for accounts created through a federated provider.
	// Such accounts can never sign in with a password.
	PasswordHash    *string    `json:"-"`
	Image           string     `json:"image,omitempty"`
	EmailVerifiedAt *time.Time `json:"email_verified_at,omitempty"`
	FavoriteIDs     []string   `json:"favorite_ids"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// HasPassword reports whether the record can take part in credential sign-in.
func (user *User) HasPassword() bool {
	return user.PasswordHash != nil && *user.PasswordHash != ""
}

// Account links a user to an identity at a federated provider.
type Account struct {
	ID                string    `json:"id"`
	UserID            string    `json:"user_id"`
	Provider          string    `json:"provider"`
	ProviderAccountID string    `json:"provider_account_id"`
	CreatedAt         time.Time `json:"created_at"`
}

// Session represents an active refresh-token session.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	TokenHash string    `json:"-"`
	UserAgent string    `json:"user_agent"`
	IPAddress string    `json:"ip_address"`
	ExpiresAt time.Time `json:"expires_at"`
	IsRevoked bool      `json:"is_revoked"`
	CreatedAt time.Time `json:"created_at"`
}

// # Field Identifiers

const (
	FieldName              = "name"
	FieldEmail             = "email"
	FieldPassword          = "password"
	FieldProvider          = "provider"
	FieldProviderAccountID = "provider_account_id"
	FieldAccessToken       = "access_token"
	FieldTokenType         = "token_type"
	FieldExpiresIn         = "expires_in"
	FieldUser              = "user"
)
