// Copyright (c) 2026 Staynest. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/staynest/internal/platform/apperr"
	"github.com/taibuivan/staynest/internal/platform/constants"
	"github.com/taibuivan/staynest/internal/platform/middleware"
	requestutil "github.com/taibuivan/staynest/internal/platform/request"
	"github.com/taibuivan/staynest/internal/platform/respond"
	"github.com/taibuivan/staynest/internal/platform/validate"
)

// # Definitions & Constructors

// Handler implements authentication-related HTTP endpoints.
type Handler struct {
	authService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{authService: service}
}

// Routes returns a [chi.Router] configured with authentication routes.
//
// # Endpoints
//   - POST /register                 : Creates a credential account.
//   - POST /login                    : Email/password sign-in.
//   - POST /refresh                  : Rotates the refresh token cookie.
//   - GET  /providers                : Lists federated providers.
//   - GET  /oauth/{provider}/start    : Redirects to the provider.
//   - GET  /oauth/{provider}/callback : Completes federated sign-in.
//   - POST /logout, GET /me          : Require a bearer token.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/register", handler.register)
	router.Post("/login", handler.login)
	router.Post("/refresh", handler.refresh)
	router.Get("/providers", handler.listProviders)
	router.Get("/oauth/{provider}/start", handler.startFederated)
	router.Get("/oauth/{provider}/callback", handler.federatedCallback)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/logout", handler.logout)
		r.Get("/me", handler.me)
	})

	return router
}

// # Request Payloads

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

/*
Register handles the creation of a new credential account.

POST /api/v1/auth/register

Response:
  - 201: User
  - 400: Validation failure
  - 409: Email already registered
*/
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	var input registerRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldName, input.Name).
		MaxLen(FieldName, input.Name, 100).
		Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email).
		Required(FieldPassword, input.Password).
		MinLen(FieldPassword, input.Password, MinPasswordLength)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.authService.Register(request.Context(), RegisterInput{
		Name:     input.Name,
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, user)
}

/*
Login authenticates with email and password.

POST /api/v1/auth/login

Description: Field presence is checked by the authorizer, not here, so the
transport reports exactly what the decision component decided.

Response:
  - 200: Access token and user; refresh token set as an HttpOnly cookie
  - 400: Missing email or password
  - 401: "Invalid credentials" for every rejected attempt
  - 503: Directory unavailable, with Retry-After
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.authService.Login(request.Context(), LoginInput{
		Email:     input.Email,
		Password:  input.Password,
		UserAgent: request.UserAgent(),
		IPAddress: middleware.RealIP(request),
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	writeSession(writer, session)
}

/*
Refresh rotates the refresh token cookie and issues a new access token.

POST /api/v1/auth/refresh

Response:
  - 200: New access token
  - 401: Missing or invalid refresh token
*/
func (handler *Handler) refresh(writer http.ResponseWriter, request *http.Request) {
	cookie, err := request.Cookie(constants.RefreshTokenCookieName)
	if err != nil || cookie.Value == "" {
		respond.Error(writer, request, apperr.Unauthorized("Missing refresh token in cookies"))
		return
	}

	session, err := handler.authService.RefreshSession(
		request.Context(),
		cookie.Value,
		request.UserAgent(),
		middleware.RealIP(request),
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	writeSession(writer, session)
}

/*
Logout terminates the current session and clears the cookie.

POST /api/v1/auth/logout

Response:
  - 204: Session terminated
*/
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	cookie, err := request.Cookie(constants.RefreshTokenCookieName)
	if err == nil && cookie.Value != "" {
		if err := handler.authService.Logout(request.Context(), cookie.Value); err != nil {
			respond.Error(writer, request, err)
			return
		}
	}

	http.SetCookie(writer, refreshCookie("", time.Time{}, -1))
	respond.NoContent(writer)
}

// GET /api/v1/auth/me returns the signed-in user's profile.
func (handler *Handler) me(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.authService.Me(request.Context(), claims.UserID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

// # Federated Sign-in

// GET /api/v1/auth/providers lists the configured federated providers.
func (handler *Handler) listProviders(writer http.ResponseWriter, _ *http.Request) {
	respond.OK(writer, handler.authService.Providers())
}

/*
StartFederated redirects the browser to the provider consent screen.

GET /api/v1/auth/oauth/{provider}/start

Response:
  - 302: Location is the provider authorization URL; the state cookie is set
  - 404: Provider not configured
*/
func (handler *Handler) startFederated(writer http.ResponseWriter, request *http.Request) {
	start, err := handler.authService.BeginFederated(request.Context(), requestutil.Param(request, FieldProvider))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	http.SetCookie(writer, stateCookie(start.State, int(StateTTL/time.Second)))
	http.Redirect(writer, request, start.AuthURL, http.StatusFound)
}

/*
FederatedCallback completes the provider redirect.

GET /api/v1/auth/oauth/{provider}/callback?state=...&code=...

Response:
  - 200: Same body and cookie as Login
  - 400: Missing state or code
  - 401: Denied at the provider, bad state, missing state cookie or rejected code
  - 404: Provider not configured
*/
func (handler *Handler) federatedCallback(writer http.ResponseWriter, request *http.Request) {
	values := request.URL.Query()

	// The state cookie is single use whatever the outcome
	var boundState string
	if cookie, err := request.Cookie(constants.OAuthStateCookieName); err == nil {
		boundState = cookie.Value
	}
	http.SetCookie(writer, stateCookie("", -1))

	if values.Get("error") != "" {
		respond.Error(writer, request, apperr.Unauthorized("Federated sign-in was cancelled"))
		return
	}

	validator := &validate.Validator{}
	validator.Required("state", values.Get("state")).
		Required("code", values.Get("code"))
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.authService.CompleteFederated(request.Context(), CallbackInput{
		Provider:   requestutil.Param(request, FieldProvider),
		State:      values.Get("state"),
		BoundState: boundState,
		Code:       values.Get("code"),
		UserAgent:  request.UserAgent(),
		IPAddress:  middleware.RealIP(request),
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	writeSession(writer, session)
}

// # Helpers

func refreshCookie(value string, expires time.Time, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     constants.RefreshTokenCookieName,
		Value:    value,
		Path:     constants.RefreshTokenCookiePath,
		Expires:  expires,
		MaxAge:   maxAge,
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	}
}

// stateCookie must survive the top-level redirect back from the provider, so
// it is Lax rather than Strict.
func stateCookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     constants.OAuthStateCookieName,
		Value:    value,
		Path:     constants.OAuthStateCookiePath,
		MaxAge:   maxAge,
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

func writeSession(writer http.ResponseWriter, session *LoginSession) {
	http.SetCookie(writer, refreshCookie(session.RefreshToken, session.RefreshTokenExpiresAt, 0))

	respond.OK(writer, map[string]any{
		FieldAccessToken: session.AccessToken,
		FieldTokenType:   "Bearer",
		FieldExpiresIn:   int(AccessTokenTTL / time.Second),
		FieldUser:        session.User,
	})
}
