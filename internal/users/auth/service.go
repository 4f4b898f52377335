// Copyright (c) 2026 Staynest. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"crypto/subtle"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/taibuivan/staynest/internal/platform/apperr"
	"github.com/taibuivan/staynest/internal/platform/sec"
	"github.com/taibuivan/staynest/pkg/uuid"
)

// # Service Layer

// Service implements the sign-in use cases on top of an [Authorizer].
//
// Every path that grants a session goes through the Authorizer first, so the
// decision rules live in exactly one place.
type Service struct {
	authorizer        *Authorizer
	directory         Directory
	sessionRepository SessionRepository
	stateRepository   StateRepository
	tokenProvider     TokenProvider
	providers         map[string]IdentityProvider
	logger            *slog.Logger
}

// NewService constructs a new [Service]. Providers are addressed by their Name.
func NewService(
	directory Directory,
	sessionRepo SessionRepository,
	stateRepo StateRepository,
	tokenProv TokenProvider,
	logger *slog.Logger,
	providers ...IdentityProvider,
) *Service {
	registry := make(map[string]IdentityProvider, len(providers))
	for _, provider := range providers {
		registry[provider.Name()] = provider
	}

	return &Service{
		authorizer:        NewAuthorizer(directory, logger),
		directory:         directory,
		sessionRepository: sessionRepo,
		stateRepository:   stateRepo,
		tokenProvider:     tokenProv,
		providers:         registry,
		logger:            logger,
	}
}

// Authorizer exposes the decision component used by this service.
func (service *Service) Authorizer() *Authorizer {
	return service.authorizer
}

// # Registration Flow

// RegisterInput holds the data required to enroll a new member.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

/*
Register hashes the password and persists a new credential account.

Parameters:
  - context: context.Context
  - input: RegisterInput

Returns:
  - *User: Created entity
  - error: Conflict if the email exists, or storage errors
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*User, error) {
	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	user := &User{
		ID:           uuid.New(),
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: &hashedPassword,
	}

	if err := service.directory.Create(context, user); err != nil {
		if apperr.IsConflict(err) {
			return nil, apperr.Conflict("Email is already registered")
		}
		return nil, fmt.Errorf("auth_service_register_failed: %w", err)
	}

	service.logger.InfoContext(context, "auth_user_registered", slog.String("user_id", user.ID))
	return user, nil
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Email     string
	Password  string
	UserAgent string
	IPAddress string
}

// LoginSession represents a successfully established user session.
type LoginSession struct {
	AccessToken           string
	RefreshToken          string
	RefreshTokenExpiresAt time.Time
	User                  *User
}

/*
Login decides a credential attempt and issues tokens when granted.

Parameters:
  - context: context.Context
  - input: LoginInput

Returns:
  - *LoginSession: Transport-ready session identifiers
  - error: 400 missing fields, 401 invalid credentials, 503 directory unavailable
*/
func (service *Service) Login(context context.Context, input LoginInput) (*LoginSession, error) {
	decision, err := service.authorizer.Authorize(context, Credentials{Email: input.Email, Password: input.Password})
	if err != nil {
		return nil, err
	}

	if !decision.Granted {
		return nil, apperr.Unauthorized(InvalidCredentialsMessage)
	}

	return service.issueSession(context, decision.User, input.UserAgent, input.IPAddress)
}

/*
Logout permanently revokes the session owning refreshToken.

Description: Unknown or already revoked tokens are treated as success.
*/
func (service *Service) Logout(context context.Context, refreshToken string) error {
	session, err := service.sessionRepository.FindByTokenHash(context, sec.HashToken(refreshToken))
	if err != nil {
		return nil
	}

	if err := service.sessionRepository.Revoke(context, session.ID); err != nil && !apperr.IsNotFound(err) {
		return fmt.Errorf("auth_service_logout_failed: %w", err)
	}

	return nil
}

// # Session Management

/*
RefreshSession implements refresh token rotation.

Description: Verifies the existing refresh token, revokes it so it cannot be
replayed, and issues a fresh pair. Only one of several concurrent refreshes
with the same token wins the revocation; the others are rejected.

Parameters:
  - context: context.Context
  - refreshToken: string
  - userAgent: string
  - ipAddress: string

Returns:
  - *LoginSession: New session credentials
  - error: Unauthorized or storage failures
*/
func (service *Service) RefreshSession(context context.Context, refreshToken, userAgent, ipAddress string) (*LoginSession, error) {
	// Only the hash is stored, so look the session up by hashing the incoming token
	session, err := service.sessionRepository.FindByTokenHash(context, sec.HashToken(refreshToken))
	if err != nil {
		return nil, apperr.Unauthorized("Invalid or expired refresh token")
	}

	// Rotation: revoke the old session first. Losing this race means another
	// request already rotated the same token.
	if err := service.sessionRepository.Revoke(context, session.ID); err != nil {
		if apperr.IsNotFound(err) {
			service.logger.WarnContext(context, "auth_refresh_token_reused",
				slog.String("session_id", session.ID),
				slog.String("user_id", session.UserID),
			)
			return nil, apperr.Unauthorized("Invalid or expired refresh token")
		}
		return nil, fmt.Errorf("auth_service_refresh_revoke_failed: %w", err)
	}

	// The account may have been removed since the token was issued
	user, err := service.directory.FindByID(context, session.UserID)
	if err != nil {
		return nil, apperr.Unauthorized("Invalid or expired refresh token")
	}

	return service.issueSession(context, user, userAgent, ipAddress)
}

// Me returns the profile of the signed-in user.
func (service *Service) Me(context context.Context, userID string) (*User, error) {
	return service.directory.FindByID(context, userID)
}

// PurgeExpiredSessions deletes sessions past their expiry and returns how many were removed.
func (service *Service) PurgeExpiredSessions(context context.Context) (int64, error) {
	removed, err := service.sessionRepository.DeleteExpired(context)
	if err != nil {
		return 0, fmt.Errorf("auth_service_purge_sessions_failed: %w", err)
	}
	return removed, nil
}

func (service *Service) issueSession(context context.Context, user *User, userAgent, ipAddress string) (*LoginSession, error) {
	// Short-lived stateless access token
	accessToken, err := service.tokenProvider.GenerateAccessToken(user.ID, user.Email, AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	// Opaque refresh token; the raw value goes to the client, only its hash is persisted
	refreshToken, err := sec.GenerateSecureToken(RefreshTokenLength)
	if err != nil {
		return nil, fmt.Errorf("auth_service_refresh_token_failed: %w", err)
	}

	expiresAt := time.Now().Add(RefreshTokenTTL)
	session := &Session{
		ID:        uuid.New(),
		UserID:    user.ID,
		TokenHash: sec.HashToken(refreshToken),
		UserAgent: userAgent,
		IPAddress: ipAddress,
		ExpiresAt: expiresAt,
	}

	if err := service.sessionRepository.Create(context, session); err != nil {
		return nil, fmt.Errorf("auth_service_session_creation_failed: %w", err)
	}

	return &LoginSession{
		AccessToken:           accessToken,
		RefreshToken:          refreshToken,
		RefreshTokenExpiresAt: expiresAt,
		User:                  user,
	}, nil
}

// # Federated Flow

func (service *Service) provider(name string) (IdentityProvider, error) {
	provider, found := service.providers[name]
	if !found {
		return nil, apperr.NotFound("Identity provider")
	}
	return provider, nil
}

// Providers lists the configured provider names in sorted order.
func (service *Service) Providers() []string {
	names := make([]string, 0, len(service.providers))
	for name := range service.providers {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// FederatedStart is the outcome of [Service.BeginFederated].
type FederatedStart struct {
	// AuthURL is the provider consent screen to redirect to.
	AuthURL string
	// State must also be bound to the browser (cookie) and echoed back in
	// [CallbackInput.BoundState].
	State string
}

/*
BeginFederated issues a one-shot state token and returns the provider consent URL.

Parameters:
  - context: context.Context
  - providerName: string

Returns:
  - *FederatedStart: Consent URL and the state to bind to the browser
  - error: NotFound for an unconfigured provider, or state storage failures
*/
func (service *Service) BeginFederated(context context.Context, providerName string) (*FederatedStart, error) {
	provider, err := service.provider(providerName)
	if err != nil {
		return nil, err
	}

	state, err := sec.GenerateSecureToken(StateTokenLength)
	if err != nil {
		return nil, fmt.Errorf("auth_service_state_token_failed: %w", err)
	}

	if err := service.stateRepository.Save(context, state, provider.Name(), StateTTL); err != nil {
		return nil, fmt.Errorf("auth_service_state_save_failed: %w", err)
	}

	return &FederatedStart{AuthURL: provider.AuthURL(state), State: state}, nil
}

// CallbackInput carries the provider redirect parameters.
type CallbackInput struct {
	Provider string
	State    string
	// BoundState is the state the starting browser kept (its state cookie).
	// A callback is only honoured in the browser that began the flow.
	BoundState string
	Code       string
	UserAgent  string
	IPAddress  string
}

/*
CompleteFederated redeems the provider callback and issues a session.

Description: The callback state must match the state bound to the browser
that began the flow. The state token is consumed before the code is exchanged, so a
replayed callback fails even if the code were still valid. The confirmed
identity then goes through [Authorizer.AuthorizeFederated].

Returns:
  - *LoginSession: Session for the resolved or newly created user
  - error: 404 unknown provider, 401 bad state or rejected exchange, 503 directory down
*/
func (service *Service) CompleteFederated(context context.Context, input CallbackInput) (*LoginSession, error) {
	provider, err := service.provider(input.Provider)
	if err != nil {
		return nil, err
	}

	// The callback must come back to the browser that started the flow
	if !sameState(input.State, input.BoundState) {
		service.logger.WarnContext(context, "auth_federated_state_unbound",
			slog.String("provider", provider.Name()),
		)
		return nil, apperr.Unauthorized("Invalid or expired sign-in state")
	}

	// Single use: a replayed callback finds nothing
	issuedFor, err := service.stateRepository.Consume(context, input.State)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, apperr.Unauthorized("Invalid or expired sign-in state")
		}
		return nil, fmt.Errorf("auth_service_state_consume_failed: %w", err)
	}
	if issuedFor != provider.Name() {
		return nil, apperr.Unauthorized("Invalid or expired sign-in state")
	}

	// Trade the code for a provider-confirmed identity
	identity, err := provider.Exchange(context, input.Code)
	if err != nil {
		service.logger.WarnContext(context, "auth_federated_exchange_failed",
			slog.String("provider", provider.Name()),
			slog.String("error", err.Error()),
		)
		rejected := apperr.Unauthorized("Federated sign-in failed")
		rejected.Cause = err
		return nil, rejected
	}
	identity.Provider = provider.Name()

	// Resolve or create the user by email, then link the provider account
	decision, err := service.authorizer.Decide(context, Federated{Identity: *identity})
	if err != nil {
		return nil, err
	}

	return service.issueSession(context, decision.User, input.UserAgent, input.IPAddress)
}

func sameState(callback, bound string) bool {
	if callback == "" || bound == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(callback), []byte(bound)) == 1
}
