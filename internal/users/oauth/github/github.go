// Copyright (c) 2026 Staynest. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package github implements federated sign-in with GitHub OAuth 2.0.
//
// GitHub issues no ID token, so the profile and the verified email are read
// from the REST API with the exchanged access token.
package github

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/endpoints"

	"github.com/taibuivan/staynest/internal/users/auth"
	"github.com/taibuivan/staynest/internal/users/oauth"
)

// ProviderName is the path segment and account provider value for GitHub.
const ProviderName = "github"

// Endpoints groups the GitHub URLs the provider talks to.
type Endpoints struct {
	OAuth  oauth2.Endpoint
	User   string
	Emails string
}

// DefaultEndpoints are the public github.com endpoints.
var DefaultEndpoints = Endpoints{
	OAuth:  endpoints.GitHub,
	User:   "https://api.github.com/user",
	Emails: "https://api.github.com/user/emails",
}

// Provider is the GitHub [auth.IdentityProvider].
type Provider struct {
	config    oauth2.Config
	userURL   string
	emailsURL string
	http      *http.Client
}

// New creates a GitHub provider using the public endpoints.
func New(clientID, clientSecret, redirectURL string) *Provider {
	provider := &Provider{
		config: oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{"read:user", "user:email"},
		},
		http: oauth.NewHTTPClient(),
	}
	return provider.WithEndpoints(DefaultEndpoints)
}

// WithEndpoints returns a copy of the provider that talks to other endpoints.
func (provider *Provider) WithEndpoints(urls Endpoints) *Provider {
	clone := *provider
	clone.config.Endpoint = urls.OAuth
	clone.userURL = urls.User
	clone.emailsURL = urls.Emails
	return &clone
}

// Name implements [auth.IdentityProvider].
func (provider *Provider) Name() string { return ProviderName }

// AuthURL implements [auth.IdentityProvider].
func (provider *Provider) AuthURL(state string) string {
	return provider.config.AuthCodeURL(state, oauth2.SetAuthURLParam("allow_signup", "true"))
}

type userInfo struct {
	ID        int64  `json:"id"`
	Login     string `json:"login"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url"`
}

type emailInfo struct {
	Email    string `json:"email"`
	Primary  bool   `json:"primary"`
	Verified bool   `json:"verified"`
}

/*
Exchange trades the callback code for the GitHub identity.

Description: The profile email is ignored; the address always comes from
/user/emails so that only a verified one is used. The primary verified
address wins, otherwise the first verified one.

Returns:
  - *auth.FederatedIdentity: Account id, verified email, display name and avatar
  - error: Any provider failure, or [oauth.ErrNoVerifiedEmail]
*/
func (provider *Provider) Exchange(context context.Context, code string) (*auth.FederatedIdentity, error) {
	context = oauth.WithClient(context, provider.http)

	token, err := provider.config.Exchange(context, code)
	if err != nil {
		return nil, fmt.Errorf("github_exchange_failed: %w", err)
	}
	client := provider.config.Client(context, token)

	var user userInfo
	if err := oauth.GetJSON(context, client, provider.userURL, &user); err != nil {
		return nil, fmt.Errorf("github_user_failed: %w", err)
	}

	var emails []emailInfo
	if err := oauth.GetJSON(context, client, provider.emailsURL, &emails); err != nil {
		return nil, fmt.Errorf("github_emails_failed: %w", err)
	}

	email, ok := verifiedEmail(emails)
	if !ok {
		return nil, fmt.Errorf("github_exchange_failed: %w", oauth.ErrNoVerifiedEmail)
	}

	name := user.Name
	if name == "" {
		name = user.Login
	}

	return &auth.FederatedIdentity{
		Provider:          ProviderName,
		ProviderAccountID: strconv.FormatInt(user.ID, 10),
		Email:             email,
		Name:              name,
		Image:             user.AvatarURL,
	}, nil
}

func verifiedEmail(emails []emailInfo) (string, bool) {
	for _, e := range emails {
		if e.Primary && e.Verified {
			return e.Email, true
		}
	}
	for _, e := range emails {
		if e.Verified {
			return e.Email, true
		}
	}
	return "", false
}
