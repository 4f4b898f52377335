// Copyright (c) 2026 Staynest. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package filter

import (
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/staynest/internal/listing/category"
	"github.com/taibuivan/staynest/internal/platform/apperr"
	"github.com/taibuivan/staynest/internal/platform/constants"
	"github.com/taibuivan/staynest/internal/platform/ctxutil"
	"github.com/taibuivan/staynest/internal/platform/metrics"
	requestutil "github.com/taibuivan/staynest/internal/platform/request"
	"github.com/taibuivan/staynest/internal/platform/respond"
	"github.com/taibuivan/staynest/pkg/query"
	"github.com/taibuivan/staynest/pkg/slice"
)

// CategoryView is a catalog entry rendered against the current query.
type CategoryView struct {
	category.Category
	// Selected is true when this entry is the active filter.
	Selected bool `json:"selected"`
	// Href is the URL a click on this entry navigates to.
	Href string `json:"href"`
}

// Handler implements the category bar endpoints.
type Handler struct {
	homePath string
}

// NewHandler creates a [Handler] navigating to homePath (usually [constants.HomePath]).
func NewHandler(homePath string) *Handler {
	return &Handler{homePath: homePath}
}

// Routes returns a router with the category endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listCategories)
	router.Get("/{label}/toggle", handler.toggleCategory)

	return router
}

/*
GET /api/v1/categories.

Description: Returns the catalog in display order. Each entry carries whether it
is the active filter for the request's query and the URL that toggling it leads to.

Request:
  - Query: any browse state (e.g. category=Beach&guestCount=2)

Response:
  - 200: []CategoryView
*/
func (handler *Handler) listCategories(writer http.ResponseWriter, request *http.Request) {
	current := query.Parse(request.URL.RawQuery)
	active := Selected(current)

	views := slice.Map(category.All(), func(entry category.Category) CategoryView {
		return CategoryView{
			Category: entry,
			Selected: entry.Label == active,
			Href:     query.URL(handler.homePath, ToggleCategory(current, entry.Label)),
		}
	})

	respond.OK(writer, views)
}

/*
GET /api/v1/categories/{label}/toggle.

Description: Applies toggle semantics to the request's query and redirects to
the resulting browse URL. Labels outside the catalog are accepted.

Response:
  - 303: Location set to the toggled browse URL
  - 400: Malformed label escape
*/
func (handler *Handler) toggleCategory(writer http.ResponseWriter, request *http.Request) {
	label, err := pathLabel(request)
	if err != nil || label == "" {
		respond.Error(writer, request, apperr.ValidationError("Invalid category label"))
		return
	}

	navigator := &HTTPNavigator{Writer: writer, Request: request, Path: handler.homePath}
	action := ActionFor(navigator.CurrentQuery(), label)

	next := Select(navigator, label)

	metrics.CategoryToggles.WithLabelValues(string(action)).Inc()
	ctxutil.GetLogger(request.Context()).DebugContext(request.Context(), "category_toggled",
		slog.String("label", label),
		slog.String("action", string(action)),
		slog.Bool("known", category.Known(label)),
		slog.String(constants.QueryKeyCategory, Selected(next)),
	)
}

// pathLabel returns the decoded {label} segment. chi matches on RawPath when the
// request carries one (e.g. an escaped slash) and on the decoded Path otherwise,
// so the parameter needs unescaping only in the first case.
func pathLabel(request *http.Request) (string, error) {
	label := requestutil.Param(request, "label")
	if request.URL.RawPath == "" {
		return label, nil
	}
	return url.PathUnescape(label)
}
