// Copyright (c) 2026 Staynest. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package query models the URL query string as a flat key/value snapshot.

A [State] is what a browse page is "currently showing": it is read from the
request URL, transformed by pure functions, and written back into a new URL.

Encoding Rules:

  - Keys are emitted in sorted order so equal states produce equal URLs.
  - Keys whose value is empty are omitted (an empty value stands for null).
  - The empty key is never emitted; it cannot be read back.
  - Keys and values are percent-encoded with standard form encoding.

For any state s, Parse(Encode(s)) equals s with the empty keys and empty-valued
keys removed.
*/
package query

import (
	"net/url"
	"strings"
)

// State is a snapshot of URL query parameters, one value per key.
type State map[string]string

// Clone returns an independent copy. A nil state clones to an empty, non-nil one.
func (s State) Clone() State {
	out := make(State, len(s))
	for key, value := range s {
		out[key] = value
	}
	return out
}

// Get returns the value for key, or "" if absent.
func (s State) Get(key string) string {
	return s[key]
}

// Encode serializes the state into a query string without the leading '?'.
func Encode(state State) string {
	values := make(url.Values, len(state))
	for key, value := range state {
		if key == "" || value == "" {
			continue
		}
		values.Set(key, value)
	}
	return values.Encode()
}

// Parse reads a raw query string (with or without a leading '?').
// The first occurrence of a repeated key wins; empty values are dropped.
// Malformed pairs are skipped rather than failing the whole string.
func Parse(raw string) State {
	state := make(State)
	raw = strings.TrimPrefix(raw, "?")

	for raw != "" {
		var pair string
		pair, raw, _ = strings.Cut(raw, "&")
		if pair == "" {
			continue
		}

		rawKey, rawValue, _ := strings.Cut(pair, "=")
		key, err := url.QueryUnescape(rawKey)
		if err != nil || key == "" {
			continue
		}
		value, err := url.QueryUnescape(rawValue)
		if err != nil || value == "" {
			continue
		}

		if _, seen := state[key]; !seen {
			state[key] = value
		}
	}

	return state
}

// FromValues converts parsed [url.Values] into a State, keeping the first value per key.
func FromValues(values url.Values) State {
	state := make(State, len(values))
	for key, list := range values {
		if key == "" {
			continue
		}
		for _, value := range list {
			if value != "" {
				state[key] = value
				break
			}
		}
	}
	return state
}

// URL joins path and the encoded state. No '?' is appended for an empty state.
func URL(path string, state State) string {
	encoded := Encode(state)
	if encoded == "" {
		return path
	}
	return path + "?" + encoded
}
