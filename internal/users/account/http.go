// Copyright (c) 2026 Staynest. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/staynest/internal/platform/constants"
	"github.com/taibuivan/staynest/internal/platform/middleware"
	requestutil "github.com/taibuivan/staynest/internal/platform/request"
	"github.com/taibuivan/staynest/internal/platform/respond"
	"github.com/taibuivan/staynest/internal/platform/sec"
	"github.com/taibuivan/staynest/internal/platform/validate"
)

// Handler implements the HTTP layer for the caller's account.
type Handler struct {
	accountService *Service
}

// NewHandler constructs a new account [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{accountService: service}
}

// Routes returns a [chi.Router] with the account endpoints. All of them require
// an authenticated caller.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	// Profile
	router.Get("/profile", handler.getProfile)
	router.Patch("/profile", handler.updateProfile)

	// Favorites
	router.Get("/favorites", handler.listFavorites)
	router.Post("/favorites/{listingID}", handler.addFavorite)
	router.Delete("/favorites/{listingID}", handler.removeFavorite)

	// Session Security
	router.Get("/sessions", handler.listSessions)
	router.Delete("/sessions", handler.revokeOtherSessions)
	router.Delete("/sessions/{id}", handler.revokeSession)

	return router
}

// # Profile Endpoints

// GET /api/v1/account/profile returns the caller's private profile.
func (handler *Handler) getProfile(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.GetProfile(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

type updateProfileRequest struct {
	Name  *string `json:"name"`
	Image *string `json:"image"`
}

/*
PATCH /api/v1/account/profile.

Description: Applies partial updates. An empty image clears the avatar.

Response:
  - 200: User: The updated profile
  - 400: Invalid JSON or field values
*/
func (handler *Handler) updateProfile(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateProfileRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	if input.Name != nil {
		v.Required("name", *input.Name).MaxLen("name", *input.Name, 100)
	}
	if input.Image != nil && *input.Image != "" {
		v.URL("image", *input.Image)
	}
	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.UpdateProfile(request.Context(), userID, UpdateProfileInput{
		Name:  input.Name,
		Image: input.Image,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

// # Favorites Endpoints

// GET /api/v1/account/favorites returns the caller's favorite listings.
func (handler *Handler) listFavorites(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	listings, err := handler.accountService.ListFavorites(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, listings)
}

/*
POST /api/v1/account/favorites/{listingID}.

Response:
  - 200: {"favorite_ids": [...]}
  - 404: Listing not found
*/
func (handler *Handler) addFavorite(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	favorites, err := handler.accountService.AddFavorite(request.Context(), userID, requestutil.Param(request, "listingID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string][]string{"favorite_ids": favorites})
}

// DELETE /api/v1/account/favorites/{listingID} unmarks a listing.
func (handler *Handler) removeFavorite(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	favorites, err := handler.accountService.RemoveFavorite(request.Context(), userID, requestutil.Param(request, "listingID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string][]string{"favorite_ids": favorites})
}

// # Session Security Endpoints

// GET /api/v1/account/sessions lists the caller's active devices.
func (handler *Handler) listSessions(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	sessions, err := handler.accountService.ListSessions(request.Context(), userID, currentTokenHash(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, sessions)
}

/*
DELETE /api/v1/account/sessions/{id}.

Response:
  - 204: Session terminated
  - 404: No active session with that ID belongs to the caller
*/
func (handler *Handler) revokeSession(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.accountService.RevokeSession(request.Context(), userID, requestutil.Param(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
DELETE /api/v1/account/sessions.

Description: Signs out every device except the one holding the request's
refresh cookie.

Response:
  - 200: {"revoked": n}
  - 400: No refresh cookie on the request
*/
func (handler *Handler) revokeOtherSessions(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	revoked, err := handler.accountService.RevokeOtherSessions(request.Context(), userID, currentTokenHash(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]int64{"revoked": revoked})
}

// currentTokenHash hashes the refresh cookie so it can be matched against stored sessions.
func currentTokenHash(request *http.Request) string {
	cookie, err := request.Cookie(constants.RefreshTokenCookieName)
	if err != nil || cookie.Value == "" {
		return ""
	}
	return sec.HashToken(cookie.Value)
}
