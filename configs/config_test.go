package configs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("SENDGRID_API_KEY", "SG.key")
	t.Setenv("BASE_URL", "http://localhost:3333")
	t.Setenv("CATALOG_BASE_URL", "http://challenge-api.luizalabs.com/api")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "3333", cfg.Server.Port)
	require.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	require.Equal(t, "wishlist", cfg.Database.Name)
	require.Equal(t, 24*time.Hour, cfg.JWT.ExpiresIn)
	require.Equal(t, 3*time.Minute, cfg.Redis.CacheTTL)
	require.Equal(t, 2.0, cfg.RateLimit.BurstMultiplier)
	require.Equal(t, 10*time.Second, cfg.Catalog.Timeout)
	require.False(t, cfg.Clients.RequireEmailConfirmation)
}

func TestLoad_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("SERVER_PORT", "8080")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("JWT_EXPIRES_IN", "15m")
	t.Setenv("RATE_LIMIT_RPM", "not-a-number")
	t.Setenv("REQUIRE_EMAIL_CONFIRMATION", "true")
	t.Setenv("CATALOG_TIMEOUT", "3s")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "8080", cfg.Server.Port)
	require.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.AllowedOrigins)
	require.Equal(t, 15*time.Minute, cfg.JWT.ExpiresIn)
	require.Equal(t, 120, cfg.RateLimit.DefaultRequestsPerMinute)
	require.True(t, cfg.Clients.RequireEmailConfirmation)
	require.Equal(t, 3*time.Second, cfg.Catalog.Timeout)
}

func TestLoad_RejectsNonPositiveTokenLifetime(t *testing.T) {
	setRequired(t)
	t.Setenv("JWT_EXPIRES_IN", "-1h")

	_, err := Load()
	require.Error(t, err)
}

func TestLoad_PanicsWithoutSecret(t *testing.T) {
	setRequired(t)
	t.Setenv("JWT_SECRET", "")

	require.Panics(t, func() { _, _ = Load() })
}
