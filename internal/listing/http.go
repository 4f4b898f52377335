// Copyright (c) 2026 Staynest. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package listing

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/staynest/internal/platform/request"
	"github.com/taibuivan/staynest/internal/platform/respond"
	"github.com/taibuivan/staynest/pkg/pagination"
	"github.com/taibuivan/staynest/pkg/query"
)

// Handler implements the HTTP layer for listing browse.
type Handler struct {
	service *Service
}

// NewHandler constructs a listing [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] with the public browse endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listListings)
	router.Get("/{id}", handler.getListing)

	return router
}

/*
GET /api/v1/listings.

Request:
  - Query: category (optional), page, limit

Response:
  - 200: Paginated []Listing, newest first
*/
func (handler *Handler) listListings(writer http.ResponseWriter, request *http.Request) {
	state := query.FromValues(request.URL.Query())
	params := pagination.FromRequest(request)

	page, err := handler.service.Browse(request.Context(), FilterFromQuery(state), params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, page.Items, pagination.NewMeta(params.Page, params.Limit, page.Total))
}

/*
GET /api/v1/listings/{id}.

Response:
  - 200: Listing
  - 404: Unknown or malformed ID
*/
func (handler *Handler) getListing(writer http.ResponseWriter, request *http.Request) {
	item, err := handler.service.Get(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, item)
}
