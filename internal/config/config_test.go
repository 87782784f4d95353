package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-playground/internal/config"
)

// clearTokenEnv убирает токены, которые могут прийти из окружения разработчика.
func clearTokenEnv(t *testing.T) {
	t.Helper()
	t.Setenv("REPLICATE_API_TOKEN", "")
	t.Setenv("VITE_REPLICATE_API_TOKEN", "")
	t.Setenv("SECRETS_DIR", t.TempDir())
}

func TestLoad_Defaults(t *testing.T) {
	clearTokenEnv(t)
	t.Setenv("REPLICATE_API_TOKEN", "r8_primary")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.ServerPort)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, "r8_primary", cfg.Replicate.APIToken)
	assert.Equal(t, "https://api.replicate.com/v1", cfg.Replicate.BaseURL)
	assert.Equal(t, config.DefaultModel, cfg.Replicate.Model)
	assert.Equal(t, 90*time.Second, cfg.Replicate.HTTPTimeout)
	assert.Equal(t, 500*time.Millisecond, cfg.Replicate.PollInterval)
	assert.True(t, cfg.ErrorPage.ShowStack)
	assert.Empty(t, cfg.CORS.AllowedOrigins)
	assert.Equal(t, "info", cfg.Logger.Level)
}

func TestLoad_LegacyTokenName(t *testing.T) {
	clearTokenEnv(t)
	t.Setenv("VITE_REPLICATE_API_TOKEN", "  r8_legacy  ")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "r8_legacy", cfg.Replicate.APIToken)
	assert.Empty(t, cfg.Replicate.LegacyToken)
}

func TestLoad_PrimaryTokenWins(t *testing.T) {
	clearTokenEnv(t)
	t.Setenv("REPLICATE_API_TOKEN", "r8_primary")
	t.Setenv("VITE_REPLICATE_API_TOKEN", "r8_legacy")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "r8_primary", cfg.Replicate.APIToken)
}

func TestLoad_TokenFromSecretFile(t *testing.T) {
	clearTokenEnv(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "replicate_api_token"), []byte("r8_secret\n"), 0o600))
	t.Setenv("SECRETS_DIR", dir)

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "r8_secret", cfg.Replicate.APIToken)
}

func TestLoad_MissingToken(t *testing.T) {
	clearTokenEnv(t)

	_, err := config.Load()
	assert.ErrorIs(t, err, config.ErrMissingAPIToken)
}

func TestLoad_Overrides(t *testing.T) {
	clearTokenEnv(t)
	t.Setenv("REPLICATE_API_TOKEN", "r8_primary")
	t.Setenv("APP_ENV", "production")
	t.Setenv("SERVER_PORT", "8080")
	t.Setenv("ERROR_SHOW_STACK", "false")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:5173, ,https://example.com ")
	t.Setenv("REPLICATE_MODEL", "owner/model:abc")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.False(t, cfg.IsDevelopment())
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.False(t, cfg.ErrorPage.ShowStack)
	assert.Equal(t, []string{"http://localhost:5173", "https://example.com"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, "owner/model:abc", cfg.Replicate.Model)
}

func TestLoad_InvalidPollInterval(t *testing.T) {
	clearTokenEnv(t)
	t.Setenv("REPLICATE_API_TOKEN", "r8_primary")
	t.Setenv("REPLICATE_POLL_INTERVAL", "0s")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestReadSecret(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "token"), []byte(" value \n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "empty"), []byte("\n"), 0o600))

	secret, err := config.ReadSecret(dir, "token")
	require.NoError(t, err)
	assert.Equal(t, "value", secret)

	_, err = config.ReadSecret(dir, "empty")
	assert.Error(t, err)

	_, err = config.ReadSecret(dir, "missing")
	assert.Error(t, err)
}
