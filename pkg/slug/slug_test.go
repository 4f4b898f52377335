// Copyright (c) 2026 Staynest. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/staynest/pkg/slug"
)

func TestFrom(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Beach", "beach"},
		{"Lux", "lux"},
		{"Tiny Homes", "tiny-homes"},
		{"  Hà  Nội!! ", "ha-noi"},
		{"Café -- Crème", "cafe-creme"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, slug.From(tt.in))
		})
	}
}
