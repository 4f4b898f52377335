// Copyright (c) 2026 Staynest. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/staynest/internal/platform/apperr"
	"github.com/taibuivan/staynest/internal/platform/database/schema"
	"github.com/taibuivan/staynest/internal/platform/dberr"
)

// # Directory

// PostgresDirectory implements [Directory] over users.account and users.provideraccount.
type PostgresDirectory struct {
	pool *pgxpool.Pool
}

// NewPostgresDirectory creates a new PostgreSQL [Directory].
func NewPostgresDirectory(pool *pgxpool.Pool) *PostgresDirectory {
	return &PostgresDirectory{pool: pool}
}

var accountColumns = strings.Join(schema.UserAccount.Columns(), ", ")

func accountTargets(user *User) []any {
	return []any{
		&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.Image,
		&user.EmailVerifiedAt, &user.FavoriteIDs, &user.CreatedAt, &user.UpdatedAt,
	}
}

/*
FindByEmail performs an exact-match lookup. No case folding is applied here;
registration stores the address as submitted.
*/
func (repository *PostgresDirectory) FindByEmail(context context.Context, email string) (*User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		accountColumns, schema.UserAccount.Table, schema.UserAccount.Email)

	user := &User{}
	if err := repository.pool.QueryRow(context, query, email).Scan(accountTargets(user)...); err != nil {
		return nil, dberr.Wrap(err, "User")
	}
	return user, nil
}

// FindByID retrieves an account by primary key.
func (repository *PostgresDirectory) FindByID(context context.Context, id string) (*User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		accountColumns, schema.UserAccount.Table, schema.UserAccount.ID)

	user := &User{}
	if err := repository.pool.QueryRow(context, query, id).Scan(accountTargets(user)...); err != nil {
		return nil, dberr.Wrap(err, "User")
	}
	return user, nil
}

/*
Create persists a new user record into the users.account table.

Description: Initializes timestamps when not provided. A duplicate email
surfaces as a CONFLICT [apperr.AppError].

Parameters:
  - context: context.Context
  - user: *User

Returns:
  - error: Constraint violations or connectivity errors
*/
func (repository *PostgresDirectory) Create(context context.Context, user *User) error {
	table := schema.UserAccount
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		table.Table, table.ID, table.Name, table.Email, table.Password,
		table.Image, table.EmailVerifiedAt, table.CreatedAt, table.UpdatedAt,
	)

	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now
	if user.FavoriteIDs == nil {
		user.FavoriteIDs = []string{}
	}

	_, err := repository.pool.Exec(context, query,
		user.ID,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.Image,
		user.EmailVerifiedAt,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "User")
	}

	return nil
}

// FindAccount resolves a provider link.
func (repository *PostgresDirectory) FindAccount(context context.Context, provider, providerAccountID string) (*Account, error) {
	table := schema.UserProviderAccount
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s = $2`,
		strings.Join(table.Columns(), ", "), table.Table, table.Provider, table.ProviderAccountID)

	account := &Account{}
	err := repository.pool.QueryRow(context, query, provider, providerAccountID).Scan(
		&account.ID,
		&account.UserID,
		&account.Provider,
		&account.ProviderAccountID,
		&account.CreatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "Provider account")
	}

	return account, nil
}

// LinkAccount inserts a provider link, ignoring an existing (provider, id) pair.
func (repository *PostgresDirectory) LinkAccount(context context.Context, account *Account) error {
	table := schema.UserProviderAccount
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s) VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (%s, %s) DO NOTHING`,
		table.Table, table.ID, table.UserID, table.Provider, table.ProviderAccountID, table.CreatedAt,
		table.Provider, table.ProviderAccountID,
	)

	if account.CreatedAt.IsZero() {
		account.CreatedAt = time.Now()
	}

	_, err := repository.pool.Exec(context, query,
		account.ID, account.UserID, account.Provider, account.ProviderAccountID, account.CreatedAt)
	if err != nil {
		return fmt.Errorf("postgres_directory_link_account_failed: %w", err)
	}

	return nil
}

// # Session Repository

// PostgresSessionRepository implements the SessionRepository interface.
type PostgresSessionRepository struct {
	pool *pgxpool.Pool
}

// NewSessionRepository creates a new PostgreSQL implementation of SessionRepository.
func NewSessionRepository(pool *pgxpool.Pool) *PostgresSessionRepository {
	return &PostgresSessionRepository{pool: pool}
}

// Create records a successful authentication session.
func (repository *PostgresSessionRepository) Create(context context.Context, session *Session) error {
	table := schema.UserSession
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		table.Table, table.ID, table.UserID, table.TokenHash, table.UserAgent,
		table.IPAddress, table.ExpiresAt, table.IsRevoked, table.CreatedAt,
	)

	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now()
	}

	_, err := repository.pool.Exec(context, query,
		session.ID,
		session.UserID,
		session.TokenHash,
		session.UserAgent,
		session.IPAddress,
		session.ExpiresAt,
		session.IsRevoked,
		session.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("postgres_session_repo_create_failed: %w", err)
	}

	return nil
}

// FindByTokenHash resolves a refresh token hash into an active session.
func (repository *PostgresSessionRepository) FindByTokenHash(context context.Context, tokenHash string) (*Session, error) {
	table := schema.UserSession
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1 AND %s = FALSE AND %s > NOW()`,
		table.ID, table.UserID, table.TokenHash, table.UserAgent,
		table.IPAddress, table.ExpiresAt, table.IsRevoked, table.CreatedAt,
		table.Table, table.TokenHash, table.IsRevoked, table.ExpiresAt,
	)

	session := &Session{}
	err := repository.pool.QueryRow(context, query, tokenHash).Scan(
		&session.ID,
		&session.UserID,
		&session.TokenHash,
		&session.UserAgent,
		&session.IPAddress,
		&session.ExpiresAt,
		&session.IsRevoked,
		&session.CreatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "Session")
	}

	return session, nil
}

// Revoke marks an active session as revoked. The is-revoked guard makes the
// update a compare-and-set, so a second revocation reports NotFound.
func (repository *PostgresSessionRepository) Revoke(context context.Context, sessionID string) error {
	table := schema.UserSession
	query := fmt.Sprintf(`UPDATE %s SET %s = TRUE, %s = NOW() WHERE %s = $1 AND %s = FALSE`,
		table.Table, table.IsRevoked, table.RevokedAt, table.ID, table.IsRevoked)

	tag, err := repository.pool.Exec(context, query, sessionID)
	if err != nil {
		return fmt.Errorf("postgres_session_repo_revoke_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Session")
	}
	return nil
}

// DeleteExpired permanently removes sessions past their expiration.
func (repository *PostgresSessionRepository) DeleteExpired(context context.Context) (int64, error) {
	table := schema.UserSession
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s <= NOW()`, table.Table, table.ExpiresAt)

	tag, err := repository.pool.Exec(context, query)
	if err != nil {
		return 0, fmt.Errorf("postgres_session_repo_delete_expired_failed: %w", err)
	}
	return tag.RowsAffected(), nil
}
