package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:5000", cfg.App.Addr())
	assert.Equal(t, "0.0.0.0:3000", cfg.Storefront.Addr())
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL())
	assert.Equal(t, 10, cfg.Auth.BcryptCost)
	assert.Equal(t, "migrations", cfg.Postgres.MigrationsDir)
	assert.True(t, cfg.Postgres.RunMigrations)
	assert.Equal(t, "redis", cfg.Storefront.SessionStore)
	assert.Equal(t, 5000, cfg.Postgres.StatementTimeoutMS)
	assert.Equal(t, 2*time.Second, cfg.Redis.PingTimeout())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "8081")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("AUTH_ACCESS_TOKEN_TTL_MINUTES", "15")
	t.Setenv("POSTGRES_MAX_CONNS", "4")
	t.Setenv("STOREFRONT_SESSION_STORE", "memory")
	t.Setenv("API_TIMEOUT_SECONDS", "3")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8081", cfg.App.Addr())
	assert.Equal(t, "s3cret", cfg.Auth.JWTSecret)
	assert.Equal(t, 15*time.Minute, cfg.Auth.TokenTTL())
	assert.Equal(t, int32(4), cfg.Postgres.MaxConns)
	assert.Equal(t, "memory", cfg.Storefront.SessionStore)
	assert.Equal(t, 3*time.Second, cfg.Storefront.APITimeout())
}

func TestLoadRejectsUnknownSessionStore(t *testing.T) {
	t.Setenv("STOREFRONT_SESSION_STORE", "cookie")

	_, err := Load()
	assert.Error(t, err)
}

func TestRequestTimeoutDisabled(t *testing.T) {
	assert.Zero(t, AppConfig{RequestTimeoutSeconds: 0}.RequestTimeout())
	assert.Equal(t, 2*time.Second, AppConfig{RequestTimeoutSeconds: 2}.RequestTimeout())
}

func TestRedisPingTimeoutFallback(t *testing.T) {
	assert.Equal(t, 2*time.Second, RedisConfig{}.PingTimeout())
	assert.Equal(t, 5*time.Second, RedisConfig{PingTimeoutSecs: 5}.PingTimeout())
}
