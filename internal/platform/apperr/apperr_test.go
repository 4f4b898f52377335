// Copyright (c) 2026 Staynest. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/staynest/internal/platform/apperr"
)

/*
TestAppError_Constructors checks the status and code of each constructor.
*/
func TestAppError_Constructors(t *testing.T) {
	tests := []struct {
		name   string
		err    *apperr.AppError
		status int
		code   string
	}{
		{"not_found", apperr.NotFound("Listing"), http.StatusNotFound, "NOT_FOUND"},
		{"unauthorized", apperr.Unauthorized("nope"), http.StatusUnauthorized, "UNAUTHORIZED"},
		{"conflict", apperr.Conflict("dup"), http.StatusConflict, "CONFLICT"},
		{"validation", apperr.ValidationError("bad"), http.StatusBadRequest, "VALIDATION_ERROR"},
		{"internal", apperr.Internal(errors.New("boom")), http.StatusInternalServerError, "INTERNAL_ERROR"},
		{"unavailable", apperr.Unavailable("down", 5, nil), http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, tt.err.HTTPStatus)
			assert.Equal(t, tt.code, tt.err.Code)
		})
	}

	assert.Equal(t, "Listing not found", apperr.NotFound("Listing").Message)
}

/*
TestAppError_Chain verifies errors.As and Unwrap through wrapped errors.
*/
func TestAppError_Chain(t *testing.T) {
	cause := errors.New("connection refused")
	wrapped := fmt.Errorf("outer: %w", apperr.Unavailable("Directory unavailable", 5, cause))

	ae := apperr.As(wrapped)
	require.NotNil(t, ae)
	assert.True(t, ae.Retryable())
	assert.ErrorIs(t, wrapped, cause)

	assert.Nil(t, apperr.As(errors.New("plain")))
	assert.False(t, apperr.Unauthorized("x").Retryable())
	assert.True(t, apperr.IsNotFound(fmt.Errorf("wrap: %w", apperr.NotFound("User"))))
	assert.False(t, apperr.IsNotFound(cause))
	assert.True(t, apperr.IsConflict(fmt.Errorf("wrap: %w", apperr.Conflict("dup"))))
	assert.False(t, apperr.IsConflict(apperr.NotFound("User")))
	assert.False(t, apperr.IsConflict(nil))
}
