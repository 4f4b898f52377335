// Copyright (c) 2026 Staynest. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command admin is the operator CLI for Staynest.
//
// # Commands
//
//	admin migrate up|down|version   Manage the database schema.
//	admin hash-password PASSWORD    Print a bcrypt hash for seeding.
//	admin create-user               Register a credential account.
//	admin purge-sessions            Delete expired refresh sessions.
//
// Database settings come from DATABASE_URL and MIGRATION_PATH (and .env).
package main

import (
	"log/slog"
	"os"

	"github.com/taibuivan/staynest/internal/platform/constants"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})).
		With(slog.String("app", constants.AppName+"-admin"))

	if err := newRootCommand(logger).Execute(); err != nil {
		os.Exit(1)
	}
}
