// Copyright (c) 2026 Staynest. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"bytes"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/staynest/internal/platform/sec"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	root := newRootCommand(slog.New(slog.NewTextHandler(io.Discard, nil)))
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)

	err := root.Execute()
	return out.String(), err
}

func TestHashPassword(t *testing.T) {
	out, err := execute(t, "hash-password", "correct horse")
	require.NoError(t, err)

	hash := strings.TrimSpace(out)
	assert.True(t, sec.CheckPasswordHash("correct horse", hash))
	assert.False(t, sec.CheckPasswordHash("wrong horse", hash))
}

func TestHashPassword_TooShort(t *testing.T) {
	_, err := execute(t, "hash-password", "short")
	assert.ErrorContains(t, err, "at least 8")
}

func TestCreateUser_RequiresFlags(t *testing.T) {
	_, err := execute(t, "create-user", "--email", "a@b.com")
	assert.ErrorContains(t, err, "password")
}

func TestParseSteps(t *testing.T) {
	steps, err := parseSteps(nil)
	require.NoError(t, err)
	assert.Equal(t, 1, steps)

	steps, err = parseSteps([]string{"3"})
	require.NoError(t, err)
	assert.Equal(t, 3, steps)

	for _, bad := range []string{"0", "-2", "all"} {
		_, err := parseSteps([]string{bad})
		assert.Error(t, err, bad)
	}
}
