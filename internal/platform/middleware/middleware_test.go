// Copyright (c) 2026 Staynest. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware_test

import (
	"bytes"
	"context"
	"crypto/rand"
	"crypto/rsa"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/taibuivan/staynest/internal/platform/ctxutil"
	"github.com/taibuivan/staynest/internal/platform/middleware"
	"github.com/taibuivan/staynest/internal/platform/sec"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusOK)
	})
}

/*
TestRequestID keeps a client supplied ID and generates one otherwise.
*/
func TestRequestID(t *testing.T) {
	var seen string
	handler := middleware.RequestID()(http.HandlerFunc(func(_ http.ResponseWriter, request *http.Request) {
		seen = ctxutil.GetRequestID(request.Context())
	}))

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set("X-Request-ID", "req-123")
	handler.ServeHTTP(recorder, request)

	assert.Equal(t, "req-123", seen)
	assert.Equal(t, "req-123", recorder.Header().Get("X-Request-ID"))

	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, seen)
	assert.NotEqual(t, "req-123", seen)
}

/*
TestStructuredLogger emits one JSON line per request with the final status.
*/
func TestStructuredLogger(t *testing.T) {
	var buffer bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buffer, nil))

	handler := middleware.StructuredLogger(logger)(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusTeapot)
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/listings", nil))

	assert.Contains(t, buffer.String(), `"msg":"http_request_finished"`)
	assert.Contains(t, buffer.String(), `"status":418`)
	assert.Contains(t, buffer.String(), `"path":"/listings"`)
}

/*
TestRateLimiter rejects requests beyond the burst for the same IP only.
*/
func TestRateLimiter(t *testing.T) {
	limiter := middleware.NewRateLimiter(0.001, 2)
	handler := limiter.Middleware(okHandler())

	send := func(ip string) int {
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		request.Header.Set("X-Real-IP", ip)
		handler.ServeHTTP(recorder, request)
		return recorder.Code
	}

	assert.Equal(t, http.StatusOK, send("10.0.0.1"))
	assert.Equal(t, http.StatusOK, send("10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, send("10.0.0.1"))
	assert.Equal(t, http.StatusOK, send("10.0.0.2"))
}

/*
TestRateLimiter_CleanupStops verifies the eviction goroutine exits with its context.
*/
func TestRateLimiter_CleanupStops(t *testing.T) {
	defer goleak.VerifyNone(t)

	limiter := middleware.NewRateLimiter(10, 10)
	ctx, cancel := context.WithCancel(context.Background())
	limiter.StartCleanup(ctx, 5*time.Millisecond, time.Millisecond)

	assert.True(t, limiter.Allow("10.0.0.1"))
	time.Sleep(20 * time.Millisecond)
	cancel()
}

/*
TestPanicRecovery turns a handler panic into a 500 envelope.
*/
func TestPanicRecovery(t *testing.T) {
	handler := middleware.PanicRecovery()(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	recorder := httptest.NewRecorder()
	require.NotPanics(t, func() {
		handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
	})
	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "INTERNAL_ERROR")
}

type corsConfig struct {
	development bool
	suffixes    []string
}

func (c corsConfig) IsDevelopment() bool       { return c.development }
func (c corsConfig) OriginSuffixes() []string { return c.suffixes }

/*
TestCORS allows only configured origin suffixes outside development.
*/
func TestCORS(t *testing.T) {
	handler := middleware.CORS(corsConfig{suffixes: []string{"staynest.app"}})(okHandler())

	tests := []struct {
		name    string
		origin  string
		allowed bool
	}{
		{"apex", "https://staynest.app", true},
		{"subdomain", "https://www.staynest.app", true},
		{"foreign", "https://evil.example", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			request := httptest.NewRequest(http.MethodGet, "/", nil)
			request.Header.Set("Origin", tt.origin)
			handler.ServeHTTP(recorder, request)

			if tt.allowed {
				assert.Equal(t, tt.origin, recorder.Header().Get("Access-Control-Allow-Origin"))
			} else {
				assert.Empty(t, recorder.Header().Get("Access-Control-Allow-Origin"))
			}
		})
	}

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodOptions, "/", nil)
	request.Header.Set("Origin", "https://staynest.app")
	handler.ServeHTTP(recorder, request)
	assert.Equal(t, http.StatusNoContent, recorder.Code)
}

/*
TestRealIP prefers proxy headers over the socket address.
*/
func TestRealIP(t *testing.T) {
	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.RemoteAddr = "192.0.2.1:1234"
	assert.Equal(t, "192.0.2.1", middleware.RealIP(request))

	request.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	assert.Equal(t, "203.0.113.9", middleware.RealIP(request))

	request.Header.Set("X-Real-IP", "198.51.100.7")
	assert.Equal(t, "198.51.100.7", middleware.RealIP(request))
}

/*
TestAuthenticate covers anonymous, malformed, invalid and valid bearer tokens.
*/
func TestAuthenticate(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	tokens := sec.NewTokenServiceFromKey(key, &key.PublicKey, "staynest.app")

	token, err := tokens.GenerateAccessToken("user-1", "a@b.com", time.Minute)
	require.NoError(t, err)

	var userID string
	handler := middleware.Authenticate(tokens)(middleware.RequireAuth(http.HandlerFunc(func(_ http.ResponseWriter, request *http.Request) {
		userID = ctxutil.UserID(request.Context())
	})))

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"anonymous", "", http.StatusUnauthorized},
		{"malformed", "Token abc", http.StatusUnauthorized},
		{"invalid", "Bearer not-a-jwt", http.StatusUnauthorized},
		{"valid", "Bearer " + token, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			request := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				request.Header.Set("Authorization", tt.header)
			}
			handler.ServeHTTP(recorder, request)
			assert.Equal(t, tt.status, recorder.Code)
		})
	}

	assert.Equal(t, "user-1", userID)
}
