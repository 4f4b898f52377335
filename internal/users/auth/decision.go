// Copyright (c) 2026 Staynest. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/taibuivan/staynest/internal/platform/apperr"
	"github.com/taibuivan/staynest/internal/platform/constants"
	"github.com/taibuivan/staynest/internal/platform/metrics"
	"github.com/taibuivan/staynest/internal/platform/sec"
	"github.com/taibuivan/staynest/internal/platform/validate"
	"github.com/taibuivan/staynest/pkg/uuid"
)

// # Decision Types

// FailureReason classifies a rejected sign-in attempt.
type FailureReason string

const (
	// ReasonMissingFields means the caller sent an incomplete attempt.
	ReasonMissingFields FailureReason = "missing_fields"

	// ReasonInvalidCredentials covers unknown accounts, federated-only accounts
	// and wrong passwords alike. Callers must not be able to tell them apart.
	ReasonInvalidCredentials FailureReason = "invalid_credentials"

	// ReasonDirectoryUnavailable means the account store could not answer.
	ReasonDirectoryUnavailable FailureReason = "directory_unavailable"
)

// Decision is the outcome of one sign-in attempt.
type Decision struct {
	Granted bool
	// Identity is the granted user's ID.
	Identity string
	// User is the resolved directory record when granted.
	User *User
	// Reason is set when Granted is false.
	Reason FailureReason
}

var (
	// ErrMissingFields is the sentinel behind the VALIDATION_ERROR returned for
	// incomplete attempts. Match it with errors.Is.
	ErrMissingFields = errors.New("auth: missing fields")

	// ErrDirectoryUnavailable is the sentinel behind the retryable 503 returned
	// when the directory fails. Match it with errors.Is.
	ErrDirectoryUnavailable = errors.New("auth: directory unavailable")
)

// # Strategies

// Strategy is one way of proving identity. The concrete types are
// [Credentials] and [Federated]; no other implementations exist.
type Strategy interface {
	// Name labels the strategy in logs and metrics.
	Name() string
	isStrategy()
}

// Credentials is an email and password attempt.
type Credentials struct {
	Email    string
	Password string
}

// Name implements [Strategy].
func (Credentials) Name() string { return "credentials" }
func (Credentials) isStrategy() {}

// FederatedIdentity is what a provider confirmed after its own sign-in flow.
type FederatedIdentity struct {
	Provider          string
	ProviderAccountID string
	Email             string
	Name              string
	Image             string
}

// Federated is a sign-in through an external identity provider.
type Federated struct {
	Identity FederatedIdentity
}

// Name implements [Strategy] and returns the provider name.
func (federated Federated) Name() string { return federated.Identity.Provider }
func (Federated) isStrategy() {}

// # Authorizer

// Authorizer decides sign-in attempts against a [Directory].
// It holds no mutable state and is safe for concurrent use.
type Authorizer struct {
	directory Directory
	logger    *slog.Logger
}

// NewAuthorizer constructs an [Authorizer].
func NewAuthorizer(directory Directory, logger *slog.Logger) *Authorizer {
	return &Authorizer{directory: directory, logger: logger}
}

// Decide dispatches the attempt to the matching strategy.
func (authorizer *Authorizer) Decide(context context.Context, strategy Strategy) (Decision, error) {
	switch attempt := strategy.(type) {
	case Credentials:
		return authorizer.Authorize(context, attempt)
	case Federated:
		return authorizer.AuthorizeFederated(context, attempt.Identity)
	default:
		return Decision{}, fmt.Errorf("auth: unsupported strategy %T", strategy)
	}
}

/*
Authorize decides a credential attempt.

Description: Performs exactly one directory read by email. A missing record and
a record without a password hash both burn a bcrypt comparison and return the
same InvalidCredentials decision as a wrong password. The password and hash
never reach a log line.

Parameters:
  - context: context.Context
  - attempt: Credentials

Returns:
  - Decision: Granted with the user, or rejected with a reason
  - error: ErrMissingFields (400) or ErrDirectoryUnavailable (503, retryable)
*/
func (authorizer *Authorizer) Authorize(context context.Context, attempt Credentials) (Decision, error) {
	strategy := attempt.Name()

	validator := &validate.Validator{}
	validator.Custom(FieldEmail, attempt.Email == "", "This field is required").
		Custom(FieldPassword, attempt.Password == "", "This field is required")
	if validator.HasErrors() {
		return authorizer.missingFields(strategy, validator)
	}

	user, err := authorizer.directory.FindByEmail(context, attempt.Email)
	if err != nil && !apperr.IsNotFound(err) {
		return authorizer.unavailable(context, strategy, err)
	}

	if user == nil || !user.HasPassword() {
		sec.BurnPasswordCheck(attempt.Password)
		return authorizer.deny(context, strategy), nil
	}

	if !sec.CheckPasswordHash(attempt.Password, *user.PasswordHash) {
		return authorizer.deny(context, strategy), nil
	}

	return authorizer.grant(strategy, user), nil
}

/*
AuthorizeFederated resolves or creates the directory record for a provider
confirmed identity and grants it.

Description: The record is keyed by the confirmed email. A new record has no
password hash. The provider account link is created on first sign-in and left
alone afterwards. No password check applies.

Parameters:
  - context: context.Context
  - identity: FederatedIdentity

Returns:
  - Decision: Always granted on a nil error
  - error: ErrMissingFields (400) or ErrDirectoryUnavailable (503, retryable)
*/
func (authorizer *Authorizer) AuthorizeFederated(context context.Context, identity FederatedIdentity) (Decision, error) {
	strategy := Federated{Identity: identity}.Name()

	validator := &validate.Validator{}
	validator.Custom(FieldProvider, identity.Provider == "", "This field is required").
		Custom(FieldProviderAccountID, identity.ProviderAccountID == "", "This field is required").
		Custom(FieldEmail, identity.Email == "", "This field is required")
	if validator.HasErrors() {
		return authorizer.missingFields(strategy, validator)
	}

	user, err := authorizer.resolveOrCreate(context, identity)
	if err != nil {
		return authorizer.unavailable(context, strategy, err)
	}

	_, err = authorizer.directory.FindAccount(context, identity.Provider, identity.ProviderAccountID)
	switch {
	case apperr.IsNotFound(err):
		link := &Account{
			ID:                uuid.New(),
			UserID:            user.ID,
			Provider:          identity.Provider,
			ProviderAccountID: identity.ProviderAccountID,
		}
		if err := authorizer.directory.LinkAccount(context, link); err != nil {
			return authorizer.unavailable(context, strategy, err)
		}
	case err != nil:
		return authorizer.unavailable(context, strategy, err)
	}

	return authorizer.grant(strategy, user), nil
}

func (authorizer *Authorizer) resolveOrCreate(context context.Context, identity FederatedIdentity) (*User, error) {
	user, err := authorizer.directory.FindByEmail(context, identity.Email)
	if err == nil {
		return user, nil
	}
	if !apperr.IsNotFound(err) {
		return nil, err
	}

	verifiedAt := time.Now()
	user = &User{
		ID:              uuid.New(),
		Name:            identity.Name,
		Email:           identity.Email,
		Image:           identity.Image,
		EmailVerifiedAt: &verifiedAt,
	}

	err = authorizer.directory.Create(context, user)
	if err == nil {
		return user, nil
	}

	// A concurrent first sign-in created the same email; use that record.
	if apperr.IsConflict(err) {
		return authorizer.directory.FindByEmail(context, identity.Email)
	}
	return nil, err
}

// # Outcomes

func (authorizer *Authorizer) grant(strategy string, user *User) Decision {
	metrics.AuthDecisions.WithLabelValues(strategy, "granted").Inc()
	return Decision{Granted: true, Identity: user.ID, User: user}
}

func (authorizer *Authorizer) deny(context context.Context, strategy string) Decision {
	metrics.AuthDecisions.WithLabelValues(strategy, string(ReasonInvalidCredentials)).Inc()
	authorizer.logger.InfoContext(context, "auth_decision_denied",
		slog.String("strategy", strategy),
		slog.String("reason", string(ReasonInvalidCredentials)),
	)
	return Decision{Reason: ReasonInvalidCredentials}
}

func (authorizer *Authorizer) missingFields(strategy string, validator *validate.Validator) (Decision, error) {
	metrics.AuthDecisions.WithLabelValues(strategy, string(ReasonMissingFields)).Inc()

	validationError := apperr.As(validator.Err())
	validationError.Message = "Missing required fields"
	validationError.Cause = ErrMissingFields

	return Decision{Reason: ReasonMissingFields}, validationError
}

func (authorizer *Authorizer) unavailable(context context.Context, strategy string, cause error) (Decision, error) {
	metrics.AuthDecisions.WithLabelValues(strategy, string(ReasonDirectoryUnavailable)).Inc()
	authorizer.logger.ErrorContext(context, "auth_directory_unavailable",
		slog.String("strategy", strategy),
		slog.String("error", cause.Error()),
	)

	return Decision{Reason: ReasonDirectoryUnavailable}, apperr.Unavailable(
		"User directory is temporarily unavailable",
		constants.DirectoryRetryAfterSeconds,
		fmt.Errorf("%w: %w", ErrDirectoryUnavailable, cause),
	)
}
