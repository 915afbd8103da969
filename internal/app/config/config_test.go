package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.Server.Port)
	assert.Equal(t, 50, cfg.Server.MaxBodyMB)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.Server.CORSOrigins)
	assert.Equal(t, "http://localhost:5000", cfg.App.PublicBaseURL)
	assert.Equal(t, 8*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, "usd", cfg.Stripe.Currency)
	assert.Equal(t, "order_notify", cfg.Lmstfy.NotifyQueue)
	assert.False(t, cfg.CloudinaryEnabled())
	assert.False(t, cfg.IsProduction())
}

func TestLoadFileAndEnvOverride(t *testing.T) {
	path := writeConfig(t, `
app:
  env: Production
  public_base_url: https://api.example.com/
mysql:
  dsn: user:pass@tcp(db:3306)/shop
auth:
  jwt_secret: from-file
  token_ttl: 2h
cloudinary:
  cloud_name: demo
  api_key: key
  api_secret: secret
`)
	t.Setenv("KCS_AUTH_JWT_SECRET", "from-env")
	t.Setenv("KCS_SERVER_PORT", "8080")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Auth.JWTSecret)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 2*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, "https://api.example.com", cfg.App.PublicBaseURL)
	assert.True(t, cfg.IsProduction())
	assert.True(t, cfg.CloudinaryEnabled())
	assert.NoError(t, cfg.Validate())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.EqualError(t, cfg.Validate(), "mysql dsn is required")

	cfg.MySQL.DSN = "dsn"
	assert.EqualError(t, cfg.Validate(), "auth jwt_secret is required")

	cfg.Auth.JWTSecret = "secret"
	cfg.Auth.TokenTTL = 0
	assert.EqualError(t, cfg.Validate(), "auth token_ttl must be positive")

	cfg.Auth.TokenTTL = time.Hour
	assert.NoError(t, cfg.Validate())
}
