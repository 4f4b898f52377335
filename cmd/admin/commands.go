// Copyright (c) 2026 Staynest. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/taibuivan/staynest/internal/platform/config"
	"github.com/taibuivan/staynest/internal/platform/migration"
	pgstore "github.com/taibuivan/staynest/internal/platform/postgres"
	"github.com/taibuivan/staynest/internal/platform/sec"
	"github.com/taibuivan/staynest/internal/users/auth"
)

func newRootCommand(logger *slog.Logger) *cobra.Command {
	root := &cobra.Command{
		Use:          "admin",
		Short:        "Staynest operator commands",
		SilenceUsage: true,
	}

	root.AddCommand(
		newMigrateCommand(logger),
		newHashPasswordCommand(),
		newCreateUserCommand(logger),
		newPurgeSessionsCommand(logger),
	)
	return root
}

// # Schema

func newMigrateCommand(logger *slog.Logger) *cobra.Command {
	migrate := &cobra.Command{
		Use:   "migrate",
		Short: "Apply, roll back or inspect schema migrations",
	}

	migrate.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadDatabase()
			if err != nil {
				return err
			}
			return migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, logger)
		},
	})

	migrate.AddCommand(&cobra.Command{
		Use:   "down [steps]",
		Short: "Roll back the given number of migrations (default 1)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			steps, err := parseSteps(args)
			if err != nil {
				return err
			}
			cfg, err := config.LoadDatabase()
			if err != nil {
				return err
			}
			return migration.RunDown(cfg.DatabaseURL, cfg.MigrationPath, steps, logger)
		},
	})

	migrate.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the current schema version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadDatabase()
			if err != nil {
				return err
			}
			status, err := migration.Version(cfg.DatabaseURL, cfg.MigrationPath, logger)
			if err != nil {
				return err
			}
			if status.Empty {
				cmd.Println("no migrations applied")
				return nil
			}
			cmd.Printf("version=%d dirty=%t\n", status.Version, status.Dirty)
			return nil
		},
	})

	return migrate
}

func parseSteps(args []string) (int, error) {
	if len(args) == 0 {
		return 1, nil
	}
	steps, err := strconv.Atoi(args[0])
	if err != nil || steps < 1 {
		return 0, fmt.Errorf("steps must be a positive integer, got %q", args[0])
	}
	return steps, nil
}

// # Accounts

func newHashPasswordCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password PASSWORD",
		Short: "Print the bcrypt hash of a password",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args[0]) < auth.MinPasswordLength {
				return fmt.Errorf("password must be at least %d characters", auth.MinPasswordLength)
			}
			hash, err := sec.HashPassword(args[0])
			if err != nil {
				return err
			}
			cmd.Println(hash)
			return nil
		},
	}
}

func newCreateUserCommand(logger *slog.Logger) *cobra.Command {
	var input auth.RegisterInput

	command := &cobra.Command{
		Use:   "create-user",
		Short: "Register a credential account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if len(input.Password) < auth.MinPasswordLength {
				return fmt.Errorf("password must be at least %d characters", auth.MinPasswordLength)
			}
			return withPool(cmd.Context(), logger, func(pool *pgxpool.Pool) error {
				service := auth.NewService(auth.NewPostgresDirectory(pool), auth.NewSessionRepository(pool), nil, nil, logger)
				user, err := service.Register(cmd.Context(), input)
				if err != nil {
					return err
				}
				cmd.Printf("created user %s <%s>\n", user.ID, user.Email)
				return nil
			})
		},
	}

	command.Flags().StringVar(&input.Name, "name", "", "display name")
	command.Flags().StringVar(&input.Email, "email", "", "login email")
	command.Flags().StringVar(&input.Password, "password", "", "initial password")
	_ = command.MarkFlagRequired("email")
	_ = command.MarkFlagRequired("password")

	return command
}

func newPurgeSessionsCommand(logger *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "purge-sessions",
		Short: "Delete expired refresh sessions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withPool(cmd.Context(), logger, func(pool *pgxpool.Pool) error {
				service := auth.NewService(auth.NewPostgresDirectory(pool), auth.NewSessionRepository(pool), nil, nil, logger)
				purged, err := service.PurgeExpiredSessions(cmd.Context())
				if err != nil {
					return err
				}
				cmd.Printf("purged %d sessions\n", purged)
				return nil
			})
		},
	}
}

func withPool(ctx context.Context, logger *slog.Logger, fn func(*pgxpool.Pool) error) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.LoadDatabase()
	if err != nil {
		return err
	}

	pool, err := pgstore.NewPool(ctx, cfg.DatabaseURL, logger)
	if err != nil {
		return err
	}
	defer pool.Close()

	return fn(pool)
}
