// Copyright (c) 2026 Staynest. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package filter_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/staynest/internal/listing/filter"
)

func TestHandler_Toggle(t *testing.T) {
	router := filter.NewHandler("/").Routes()

	tests := []struct {
		name     string
		target   string
		location string
	}{
		{"select", "/Beach/toggle", "/?category=Beach"},
		{"replace_keeps_other_keys", "/Beach/toggle?category=Lake&guestCount=2", "/?category=Beach&guestCount=2"},
		{"clear", "/Beach/toggle?category=Beach", "/"},
		{"escaped_label", "/Tiny%20Homes/toggle", "/?category=Tiny+Homes"},
		{"percent_in_label", "/100%25/toggle", "/?category=100%25"},
		{"escaped_percent_decoded_once", "/A%2541/toggle", "/?category=A%2541"},
		{"escaped_slash_in_label", "/Bed%2FBreakfast/toggle", "/?category=Bed%2FBreakfast"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, tt.target, nil))

			assert.Equal(t, http.StatusSeeOther, recorder.Code)
			assert.Equal(t, tt.location, recorder.Header().Get("Location"))
		})
	}
}

func TestHandler_List(t *testing.T) {
	router := filter.NewHandler("/").Routes()

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/?category=Lake&page=2", nil))
	require.Equal(t, http.StatusOK, recorder.Code)

	var body struct {
		Data []filter.CategoryView `json:"data"`
	}
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&body))
	require.Len(t, body.Data, 15)

	selected := 0
	for _, view := range body.Data {
		switch view.Label {
		case "Lake":
			selected++
			assert.True(t, view.Selected)
			assert.Equal(t, "/?page=2", view.Href)
		case "Beach":
			assert.False(t, view.Selected)
			assert.Equal(t, "/?category=Beach&page=2", view.Href)
		}
	}
	assert.Equal(t, 1, selected)
}
