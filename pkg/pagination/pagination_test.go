// Copyright (c) 2026 Staynest. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pagination_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/staynest/pkg/pagination"
)

func TestFromRequest(t *testing.T) {
	tests := []struct {
		name  string
		url   string
		page  int
		limit int
	}{
		{"defaults", "/listings", 1, 20},
		{"explicit", "/listings?page=3&limit=10", 3, 10},
		{"negative_page", "/listings?page=-2", 1, 20},
		{"limit_too_large", "/listings?limit=500", 1, 20},
		{"garbage", "/listings?page=abc&limit=xyz", 1, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := pagination.FromRequest(httptest.NewRequest("GET", tt.url, nil))
			assert.Equal(t, tt.page, params.Page)
			assert.Equal(t, tt.limit, params.Limit)
		})
	}
}

func TestParams_Offset(t *testing.T) {
	assert.Equal(t, 0, pagination.Params{Page: 1, Limit: 20}.Offset())
	assert.Equal(t, 40, pagination.Params{Page: 3, Limit: 20}.Offset())
}

func TestNewMeta(t *testing.T) {
	meta := pagination.NewMeta(1, 20, 41)
	assert.Equal(t, 3, meta.TotalPages)
	assert.Equal(t, 0, pagination.NewMeta(1, 0, 10).TotalPages)
}
