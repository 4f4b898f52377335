// Copyright (c) 2026 Staynest. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package category_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/staynest/internal/listing/category"
)

func TestAll_OrderAndShape(t *testing.T) {
	all := category.All()
	require.Len(t, all, 15)

	assert.Equal(t, "Beach", all[0].Label)
	assert.Equal(t, "Lux", all[len(all)-1].Label)

	labels := make(map[string]bool, len(all))
	for _, entry := range all {
		assert.False(t, labels[entry.Label], "duplicate label %s", entry.Label)
		labels[entry.Label] = true

		assert.NotEmpty(t, entry.Icon)
		assert.NotEmpty(t, entry.Description)
		assert.NotEmpty(t, entry.Slug)
	}
}

/*
TestAll_ReturnsCopy ensures callers cannot mutate the shared catalog.
*/
func TestAll_ReturnsCopy(t *testing.T) {
	first := category.All()
	first[0].Label = "Mutated"

	assert.Equal(t, "Beach", category.All()[0].Label)
	assert.False(t, category.Known("Mutated"))
}

func TestLookup(t *testing.T) {
	entry, ok := category.Lookup("Countryside")
	require.True(t, ok)
	assert.Equal(t, "countryside", entry.Slug)

	_, ok = category.Lookup("beach")
	assert.False(t, ok, "labels are matched exactly")
	assert.True(t, category.Known("Lux"))
}
