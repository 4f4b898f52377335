// Copyright (c) 2026 Staynest. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package listing

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/taibuivan/staynest/internal/platform/apperr"
	"github.com/taibuivan/staynest/pkg/pagination"
	"github.com/taibuivan/staynest/pkg/query"
	"github.com/taibuivan/staynest/pkg/slice"
	"github.com/taibuivan/staynest/pkg/uuid"
)

// Page is one page of browse results.
type Page struct {
	Items []*Listing
	Total int
}

// # Service Layer

// Service answers browse requests, caching whole pages in process.
type Service struct {
	repo   Repository
	pages  *cache.Cache
	logger *slog.Logger
}

// NewService constructs a [Service]. Pages live for ttl and expired entries are
// purged every cleanupInterval.
func NewService(repo Repository, ttl, cleanupInterval time.Duration, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		pages:  cache.New(ttl, cleanupInterval),
		logger: logger,
	}
}

/*
Browse returns a page of listings for the filter.

Description: Pages are keyed by the canonical query encoding of the filter plus
the page window, so "?category=Beach" and "?category=Beach&utm=x" share an entry.

Parameters:
  - context: context.Context
  - filter: Filter
  - params: pagination.Params

Returns:
  - *Page: The listings and total match count
  - error: Repository failures
*/
func (service *Service) Browse(context context.Context, filter Filter, params pagination.Params) (*Page, error) {
	key := fmt.Sprintf("%s|%d|%d", query.Encode(filter.State()), params.Page, params.Limit)

	if cached, found := service.pages.Get(key); found {
		return cached.(*Page), nil
	}

	items, total, err := service.repo.List(context, filter, params.Limit, params.Offset())
	if err != nil {
		return nil, fmt.Errorf("listing_service_browse_failed: %w", err)
	}

	page := &Page{Items: items, Total: total}
	service.pages.SetDefault(key, page)

	service.logger.DebugContext(context, "listing_page_cached",
		slog.String("key", key),
		slog.Int("count", len(items)),
	)

	return page, nil
}

// Get returns one listing. Malformed IDs are reported as not found.
func (service *Service) Get(context context.Context, id string) (*Listing, error) {
	if !uuid.Valid(id) {
		return nil, apperr.NotFound("Listing")
	}
	return service.repo.FindByID(context, id)
}

/*
GetMany resolves ids to listings, keeping the order of ids.

Description: Malformed and unknown IDs are skipped, so a favorites list that
references a removed listing still renders.
*/
func (service *Service) GetMany(context context.Context, ids []string) ([]*Listing, error) {
	valid := slice.Filter(ids, uuid.Valid)

	found, err := service.repo.FindByIDs(context, valid)
	if err != nil {
		return nil, fmt.Errorf("listing_service_get_many_failed: %w", err)
	}

	byID := make(map[string]*Listing, len(found))
	for _, item := range found {
		byID[item.ID] = item
	}

	ordered := make([]*Listing, 0, len(found))
	for _, id := range valid {
		if item, ok := byID[id]; ok {
			ordered = append(ordered, item)
			delete(byID, id)
		}
	}
	return ordered, nil
}

// Invalidate drops every cached page.
func (service *Service) Invalidate() {
	service.pages.Flush()
}
