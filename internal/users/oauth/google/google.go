// Copyright (c) 2026 Staynest. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package google implements federated sign-in with Google OpenID Connect.
package google

import (
	"context"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	googleoauth "golang.org/x/oauth2/google"

	"github.com/taibuivan/staynest/internal/users/auth"
	"github.com/taibuivan/staynest/internal/users/oauth"
)

// ProviderName is the path segment and account provider value for Google.
const ProviderName = "google"

// Endpoints groups the Google URLs the provider talks to.
type Endpoints struct {
	OAuth    oauth2.Endpoint
	UserInfo string
}

// DefaultEndpoints are the public Google OIDC endpoints.
var DefaultEndpoints = Endpoints{
	OAuth:    googleoauth.Endpoint,
	UserInfo: "https://openidconnect.googleapis.com/v1/userinfo",
}

// Provider is the Google [auth.IdentityProvider].
type Provider struct {
	config      oauth2.Config
	userInfoURL string
	http        *http.Client
}

// New creates a Google provider using the public endpoints.
func New(clientID, clientSecret, redirectURL string) *Provider {
	provider := &Provider{
		config: oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{"openid", "email", "profile"},
		},
		http: oauth.NewHTTPClient(),
	}
	return provider.WithEndpoints(DefaultEndpoints)
}

// WithEndpoints returns a copy of the provider that talks to other endpoints.
func (provider *Provider) WithEndpoints(urls Endpoints) *Provider {
	clone := *provider
	clone.config.Endpoint = urls.OAuth
	clone.userInfoURL = urls.UserInfo
	return &clone
}

// Name implements [auth.IdentityProvider].
func (provider *Provider) Name() string { return ProviderName }

// AuthURL implements [auth.IdentityProvider].
func (provider *Provider) AuthURL(state string) string {
	return provider.config.AuthCodeURL(state, oauth2.SetAuthURLParam("prompt", "select_account"))
}

type userInfo struct {
	Subject       string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

// Exchange trades the callback code for the Google identity read from the
// userinfo endpoint. Unverified addresses are rejected.
func (provider *Provider) Exchange(context context.Context, code string) (*auth.FederatedIdentity, error) {
	context = oauth.WithClient(context, provider.http)

	token, err := provider.config.Exchange(context, code)
	if err != nil {
		return nil, fmt.Errorf("google_exchange_failed: %w", err)
	}

	var info userInfo
	if err := oauth.GetJSON(context, provider.config.Client(context, token), provider.userInfoURL, &info); err != nil {
		return nil, fmt.Errorf("google_userinfo_failed: %w", err)
	}

	if info.Email == "" || !info.EmailVerified {
		return nil, fmt.Errorf("google_exchange_failed: %w", oauth.ErrNoVerifiedEmail)
	}

	return &auth.FederatedIdentity{
		Provider:          ProviderName,
		ProviderAccountID: info.Subject,
		Email:             info.Email,
		Name:              info.Name,
		Image:             info.Picture,
	}, nil
}
