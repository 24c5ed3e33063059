package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValidWithoutWebhook(t *testing.T) {
	cfg := NewDefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Empty(t, cfg.Webhook.URL)
	assert.Equal(t, int64(10*1024*1024), cfg.Upload.MaxFileSize)
}

func TestValidate(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Upload.MaxFileSize = 0
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidMaxFileSize)

	cfg = NewDefaultConfig()
	cfg.Server.Addr = ""
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidServerAddr)

	cfg = NewDefaultConfig()
	cfg.Server.ReadTimeout = -time.Second
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidTimeout)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dropcord.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
webhook:
  url: https://discord.example/api/webhooks/1/abc
upload:
  max_file_size: 2048
server:
  read_timeout: 5s
`), 0o644))

	v := viper.New()
	SetDefaults(v)
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "https://discord.example/api/webhooks/1/abc", cfg.Webhook.URL)
	assert.Equal(t, int64(2048), cfg.Upload.MaxFileSize)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, ":9002", cfg.Server.Addr)
}

// unsetEnv clears key for the duration of the test and restores it afterwards
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))
}

func loadFromEnv(t *testing.T) *Config {
	t.Helper()
	v := viper.New()
	SetDefaults(v)
	require.NoError(t, BindEnv(v))
	cfg, err := Load(v)
	require.NoError(t, err)
	return cfg
}

func TestLoadWebhookFromEnvironment(t *testing.T) {
	t.Run("legacy variable", func(t *testing.T) {
		unsetEnv(t, "DROPCORD_WEBHOOK_URL")
		t.Setenv("DISCORD_WEBHOOK_URL", "https://discord.example/api/webhooks/1/legacy")

		assert.Equal(t, "https://discord.example/api/webhooks/1/legacy", loadFromEnv(t).Webhook.URL)
	})

	t.Run("prefixed variable wins", func(t *testing.T) {
		t.Setenv("DROPCORD_WEBHOOK_URL", "https://discord.example/api/webhooks/2/new")
		t.Setenv("DISCORD_WEBHOOK_URL", "https://discord.example/api/webhooks/1/legacy")

		assert.Equal(t, "https://discord.example/api/webhooks/2/new", loadFromEnv(t).Webhook.URL)
	})

	t.Run("unset leaves url empty", func(t *testing.T) {
		unsetEnv(t, "DROPCORD_WEBHOOK_URL")
		unsetEnv(t, "DISCORD_WEBHOOK_URL")

		cfg := loadFromEnv(t)
		assert.Empty(t, cfg.Webhook.URL)
		assert.NoError(t, cfg.Validate())
	})

	t.Run("other keys", func(t *testing.T) {
		t.Setenv("DROPCORD_UPLOAD_MAX_FILE_SIZE", "4096")
		t.Setenv("DROPCORD_SERVER_ADDR", ":8080")

		cfg := loadFromEnv(t)
		assert.Equal(t, int64(4096), cfg.Upload.MaxFileSize)
		assert.Equal(t, ":8080", cfg.Server.Addr)
	})
}

func TestLoadDotEnv(t *testing.T) {
	unsetEnv(t, "DROPCORD_WEBHOOK_URL")
	unsetEnv(t, "DISCORD_WEBHOOK_URL")

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"),
		[]byte("DISCORD_WEBHOOK_URL=https://discord.example/api/webhooks/3/dotenv\n"), 0o644))
	oldWd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(oldWd) })

	envPath, err := LoadDotEnv("")
	require.NoError(t, err)
	assert.Equal(t, ".env", filepath.Base(envPath))
	assert.Equal(t, "https://discord.example/api/webhooks/3/dotenv", loadFromEnv(t).Webhook.URL)
}

func TestLoadDotEnvDoesNotOverrideEnvironment(t *testing.T) {
	t.Setenv("DISCORD_WEBHOOK_URL", "https://discord.example/api/webhooks/4/env")
	unsetEnv(t, "DROPCORD_WEBHOOK_URL")

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"),
		[]byte("DISCORD_WEBHOOK_URL=https://discord.example/api/webhooks/3/dotenv\n"), 0o644))

	_, err := LoadDotEnv(dir)
	require.NoError(t, err)
	assert.Equal(t, "https://discord.example/api/webhooks/4/env", loadFromEnv(t).Webhook.URL)
}

func TestLoadDotEnvMissingFile(t *testing.T) {
	_, err := LoadDotEnv(t.TempDir())
	assert.Error(t, err)
}
