// Copyright (c) 2026 Staynest. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package oauth holds the pieces shared by the federated identity providers.

Each provider package (github, google) implements [auth.IdentityProvider] on an
[oauth2.Config]: it builds the consent URL and exchanges the callback code for a
verified [auth.FederatedIdentity]. Only verified email addresses are ever
returned, because the authorizer links accounts by email.
*/
package oauth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/oauth2"
)

// DefaultTimeout bounds every call to a provider endpoint.
const DefaultTimeout = 10 * time.Second

// ErrNoVerifiedEmail is returned when the provider has no verified address for the user.
var ErrNoVerifiedEmail = errors.New("no verified email")

// NewHTTPClient returns the client used for provider calls.
func NewHTTPClient() *http.Client {
	return &http.Client{Timeout: DefaultTimeout}
}

// WithClient makes oauth2 token exchanges and token clients derived from ctx use client.
func WithClient(ctx context.Context, client *http.Client) context.Context {
	return context.WithValue(ctx, oauth2.HTTPClient, client)
}

/*
GetJSON performs a GET with an authorized client and decodes the JSON body.

Parameters:
  - context: Request scope
  - client: Client returned by [oauth2.Config.Client]
  - endpoint: Provider API URL
  - target: Decode destination

Returns:
  - error: Transport failure, non-200 status or undecodable body
*/
func GetJSON(context context.Context, client *http.Client, endpoint string, target any) error {
	request, err := http.NewRequestWithContext(context, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("api_request_failed: %w", err)
	}
	request.Header.Set("Accept", "application/json")

	response, err := client.Do(request)
	if err != nil {
		return fmt.Errorf("api_request_failed: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return fmt.Errorf("api_request_failed: status %d", response.StatusCode)
	}

	if err := json.NewDecoder(response.Body).Decode(target); err != nil {
		return fmt.Errorf("api_decode_failed: %w", err)
	}
	return nil
}
