package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMissingKeys(t *testing.T) {
	env := map[string]string{
		"DATABASE_URL": "postgres://x",
		"JWT_SECRET":   "secret",
		"APP_NAME":     "  ",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	require.Equal(t, []string{"APP_NAME", "APP_VERSION"}, MissingKeys(lookup))

	env["APP_NAME"] = "CRM"
	env["APP_VERSION"] = "1.0.0"
	require.Empty(t, MissingKeys(lookup))
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DASHBOARD_REFRESH", "not-a-duration")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://crm.example, ,http://localhost:5173")

	cfg := Load()
	require.Equal(t, ":9090", cfg.Addr())
	require.Equal(t, "@hourly", cfg.OverdueCron)
	require.Equal(t, "5m0s", cfg.DashboardRefresh.String())
	require.False(t, cfg.S3Enabled())
	require.False(t, cfg.TwilioEnabled())
	require.Equal(t, []string{"https://crm.example", "http://localhost:5173"}, cfg.CORSOrigins)
}
