// Copyright (c) 2026 Staynest. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package ctxutil_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/staynest/internal/platform/ctxutil"
	"github.com/taibuivan/staynest/internal/platform/sec"
)

/*
TestContext_RequestID verifies that Request IDs can be injected and retrieved.
*/
func TestContext_RequestID(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, ctxutil.GetRequestID(ctx))

	ctx = ctxutil.WithRequestID(ctx, "req-1")
	assert.Equal(t, "req-1", ctxutil.GetRequestID(ctx))
}

/*
TestContext_Logger verifies the fallback to the default logger.
*/
func TestContext_Logger(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	assert.Equal(t, slog.Default(), ctxutil.GetLogger(ctx))

	ctx = ctxutil.WithLogger(ctx, logger)
	assert.Equal(t, logger, ctxutil.GetLogger(ctx))
}

/*
TestContext_AuthUser verifies that AuthClaims can be stored in context.
*/
func TestContext_AuthUser(t *testing.T) {
	ctx := context.Background()
	assert.Nil(t, ctxutil.GetAuthUser(ctx))
	assert.Empty(t, ctxutil.UserID(ctx))

	ctx = ctxutil.WithAuthUser(ctx, &sec.AuthClaims{UserID: "user-123", Email: "a@b.com"})

	retrieved := ctxutil.GetAuthUser(ctx)
	require.NotNil(t, retrieved)
	assert.Equal(t, "a@b.com", retrieved.Email)
	assert.Equal(t, "user-123", ctxutil.UserID(ctx))
}
