// Copyright (c) 2026 Staynest. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/staynest/internal/platform/apperr"
	"github.com/taibuivan/staynest/internal/platform/database/schema"
	"github.com/taibuivan/staynest/internal/platform/dberr"
	"github.com/taibuivan/staynest/internal/users/auth"
)

// # Repository Implementations

// PostgresProfileRepository implements [ProfileRepository] over users.account.
// Reads are delegated to the auth directory so both packages scan rows the same way.
type PostgresProfileRepository struct {
	*auth.PostgresDirectory
	pool *pgxpool.Pool
}

// NewProfileRepository creates a new Postgres implementation for profile management.
func NewProfileRepository(pool *pgxpool.Pool) *PostgresProfileRepository {
	return &PostgresProfileRepository{PostgresDirectory: auth.NewPostgresDirectory(pool), pool: pool}
}

// UpdateProfile syncs the name and image columns and refreshes updatedat.
func (repository *PostgresProfileRepository) UpdateProfile(context context.Context, user *auth.User) error {
	table := schema.UserAccount
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = $3, %s = NOW() WHERE %s = $1 RETURNING %s`,
		table.Table, table.Name, table.Image, table.UpdatedAt, table.ID, table.UpdatedAt)

	if err := repository.pool.QueryRow(context, query, user.ID, user.Name, user.Image).Scan(&user.UpdatedAt); err != nil {
		return dberr.Wrap(err, "User")
	}
	return nil
}

/*
AddFavorite appends listingID to favoriteids in a single statement.

Description: The CASE keeps the array free of duplicates without a read
before the write.
*/
func (repository *PostgresProfileRepository) AddFavorite(context context.Context, userID, listingID string) ([]string, error) {
	table := schema.UserAccount
	query := fmt.Sprintf(`
		UPDATE %[1]s
		SET %[2]s = CASE WHEN $2::uuid = ANY(%[2]s) THEN %[2]s ELSE array_append(%[2]s, $2::uuid) END,
		    %[3]s = NOW()
		WHERE %[4]s = $1
		RETURNING %[2]s`,
		table.Table, table.FavoriteIDs, table.UpdatedAt, table.ID)

	return repository.favorites(context, query, userID, listingID)
}

// RemoveFavorite drops every occurrence of listingID from favoriteids.
func (repository *PostgresProfileRepository) RemoveFavorite(context context.Context, userID, listingID string) ([]string, error) {
	table := schema.UserAccount
	query := fmt.Sprintf(`
		UPDATE %[1]s
		SET %[2]s = array_remove(%[2]s, $2::uuid), %[3]s = NOW()
		WHERE %[4]s = $1
		RETURNING %[2]s`,
		table.Table, table.FavoriteIDs, table.UpdatedAt, table.ID)

	return repository.favorites(context, query, userID, listingID)
}

func (repository *PostgresProfileRepository) favorites(context context.Context, query, userID, listingID string) ([]string, error) {
	favorites := []string{}
	if err := repository.pool.QueryRow(context, query, userID, listingID).Scan(&favorites); err != nil {
		return nil, dberr.Wrap(err, "User")
	}
	return favorites, nil
}

// PostgresSessionRepository implements [SessionRepository] over users.session.
type PostgresSessionRepository struct {
	pool *pgxpool.Pool
}

// NewSessionRepository creates a new Postgres implementation for session auditing.
func NewSessionRepository(pool *pgxpool.Pool) *PostgresSessionRepository {
	return &PostgresSessionRepository{pool: pool}
}

// FindActiveByUserID lists the user's unrevoked, unexpired sessions, newest first.
func (repository *PostgresSessionRepository) FindActiveByUserID(context context.Context, userID string) ([]*auth.Session, error) {
	table := schema.UserSession
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1 AND %s = FALSE AND %s > NOW()
		ORDER BY %s DESC`,
		table.ID, table.UserID, table.TokenHash, table.UserAgent,
		table.IPAddress, table.ExpiresAt, table.IsRevoked, table.CreatedAt,
		table.Table, table.UserID, table.IsRevoked, table.ExpiresAt, table.CreatedAt,
	)

	rows, err := repository.pool.Query(context, query, userID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_sessions")
	}
	defer rows.Close()

	sessions := make([]*auth.Session, 0)
	for rows.Next() {
		session := &auth.Session{}
		if err := rows.Scan(
			&session.ID,
			&session.UserID,
			&session.TokenHash,
			&session.UserAgent,
			&session.IPAddress,
			&session.ExpiresAt,
			&session.IsRevoked,
			&session.CreatedAt,
		); err != nil {
			return nil, dberr.Wrap(err, "scan_session")
		}
		sessions = append(sessions, session)
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "list_sessions")
	}
	return sessions, nil
}

// Revoke marks one active session of userID as revoked.
func (repository *PostgresSessionRepository) Revoke(context context.Context, userID, sessionID string) error {
	table := schema.UserSession
	query := fmt.Sprintf(`
		UPDATE %s SET %s = TRUE, %s = NOW()
		WHERE %s = $1 AND %s = $2 AND %s = FALSE`,
		table.Table, table.IsRevoked, table.RevokedAt,
		table.ID, table.UserID, table.IsRevoked,
	)

	tag, err := repository.pool.Exec(context, query, sessionID, userID)
	if err != nil {
		return fmt.Errorf("postgres_session_repo_revoke_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Session")
	}
	return nil
}

// RevokeOthers revokes all active sessions of userID except the one holding keepTokenHash.
func (repository *PostgresSessionRepository) RevokeOthers(context context.Context, userID, keepTokenHash string) (int64, error) {
	table := schema.UserSession
	query := fmt.Sprintf(`
		UPDATE %s SET %s = TRUE, %s = NOW()
		WHERE %s = $1 AND %s <> $2 AND %s = FALSE`,
		table.Table, table.IsRevoked, table.RevokedAt,
		table.UserID, table.TokenHash, table.IsRevoked,
	)

	tag, err := repository.pool.Exec(context, query, userID, keepTokenHash)
	if err != nil {
		return 0, fmt.Errorf("postgres_session_repo_revoke_others_failed: %w", err)
	}
	return tag.RowsAffected(), nil
}
