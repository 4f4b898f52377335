// Copyright (c) 2026 Staynest. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package listing

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/staynest/internal/platform/database/schema"
	"github.com/taibuivan/staynest/internal/platform/dberr"
)

// PostgresRepository implements [Repository] over listing.listing.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL listing repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

var selectColumns = strings.Join(schema.Listing.Columns(), ", ")

/*
List uses a window function so that the page and the total come from one query.
*/
func (repository *PostgresRepository) List(context context.Context, filter Filter, limit, offset int) ([]*Listing, int, error) {
	var queryBuilder strings.Builder
	var args []any
	argID := 1

	queryBuilder.WriteString(fmt.Sprintf(`SELECT %s, COUNT(*) OVER() AS total_count FROM %s WHERE TRUE`,
		selectColumns, schema.Listing.Table))

	if filter.Category != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND %s = $%d", schema.Listing.Category, argID))
		args = append(args, filter.Category)
		argID++
	}

	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY %s DESC, %s DESC LIMIT $%d OFFSET $%d",
		schema.Listing.CreatedAt, schema.Listing.ID, argID, argID+1))
	args = append(args, limit, offset)

	rows, err := repository.pool.Query(context, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_listings")
	}
	defer rows.Close()

	listings := make([]*Listing, 0, limit)
	total := 0

	for rows.Next() {
		item := &Listing{}
		if err := rows.Scan(append(scanTargets(item), &total)...); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_listing")
		}
		listings = append(listings, item)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "list_listings")
	}

	// An out-of-range page has no rows to carry the window total.
	if len(listings) == 0 && offset > 0 {
		countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE ($1 = '' OR %s = $1)`,
			schema.Listing.Table, schema.Listing.Category)
		if err := repository.pool.QueryRow(context, countQuery, filter.Category).Scan(&total); err != nil {
			return nil, 0, dberr.Wrap(err, "count_listings")
		}
	}

	return listings, total, nil
}

// FindByID returns a single listing.
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Listing, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, selectColumns, schema.Listing.Table, schema.Listing.ID)

	item := &Listing{}
	if err := repository.pool.QueryRow(context, query, id).Scan(scanTargets(item)...); err != nil {
		return nil, dberr.Wrap(err, "Listing")
	}
	return item, nil
}

// FindByIDs returns the listings whose id is in ids.
func (repository *PostgresRepository) FindByIDs(context context.Context, ids []string) ([]*Listing, error) {
	listings := make([]*Listing, 0, len(ids))
	if len(ids) == 0 {
		return listings, nil
	}

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = ANY($1::uuid[])`, selectColumns, schema.Listing.Table, schema.Listing.ID)

	rows, err := repository.pool.Query(context, query, ids)
	if err != nil {
		return nil, dberr.Wrap(err, "find_listings")
	}
	defer rows.Close()

	for rows.Next() {
		item := &Listing{}
		if err := rows.Scan(scanTargets(item)...); err != nil {
			return nil, dberr.Wrap(err, "scan_listing")
		}
		listings = append(listings, item)
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "find_listings")
	}
	return listings, nil
}

// scanTargets lists destinations in [schema.ListingTable.Columns] order.
func scanTargets(item *Listing) []any {
	return []any{
		&item.ID, &item.Title, &item.Description, &item.ImageURL, &item.Category, &item.RoomCount,
		&item.BathroomCount, &item.GuestCount, &item.LocationValue, &item.Price, &item.UserID, &item.CreatedAt,
	}
}
