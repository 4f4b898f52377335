// Copyright (c) 2026 Staynest. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/staynest/internal/platform/config"
)

func requiredEnv() map[string]string {
	return map[string]string{
		"DATABASE_URL":         "postgres://localhost/staynest",
		"REDIS_URL":            "redis://localhost:6379/0",
		"JWT_PRIVATE_KEY_PATH": "/keys/private.pem",
		"JWT_PUBLIC_KEY_PATH":  "/keys/public.pem",
	}
}

/*
TestParse_Defaults applies defaults when only required values are set.
*/
func TestParse_Defaults(t *testing.T) {
	cfg, err := config.Parse(requiredEnv())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, "./data/migrations", cfg.MigrationPath)
	assert.Equal(t, []string{"staynest.app"}, cfg.OriginSuffixes())
}

/*
TestParse_MissingRequired fails fast on absent required variables.
*/
func TestParse_MissingRequired(t *testing.T) {
	environment := requiredEnv()
	delete(environment, "DATABASE_URL")

	_, err := config.Parse(environment)
	assert.Error(t, err)
}

/*
TestConfig_Helpers covers origin splitting and callback URL building.
*/
func TestConfig_Helpers(t *testing.T) {
	environment := requiredEnv()
	environment["ENVIRONMENT"] = "production"
	environment["ALLOWED_ORIGINS"] = " staynest.app, ,admin.staynest.app "
	environment["PUBLIC_BASE_URL"] = "https://api.staynest.app/"

	cfg, err := config.Parse(environment)
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, []string{"staynest.app", "admin.staynest.app"}, cfg.OriginSuffixes())
	assert.Equal(t, "https://api.staynest.app/api/v1/auth/oauth/github/callback", cfg.CallbackURL("github"))
}
