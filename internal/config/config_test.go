package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.toml"))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "linkstash", cfg.App.Name)
	assert.Equal(t, 5001, cfg.App.Port)
	assert.Equal(t, "gemini-2.5-flash", cfg.LLM.Model)
	assert.Equal(t, "memory", cfg.Session.Store)
	assert.Equal(t, 10, cfg.Fetch.TimeoutSeconds)
	assert.Empty(t, cfg.RabbitMQ.URL)
}

func TestLoadFileThenEnvOverride(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(configPath, []byte(`
[app]
port = 9000

[database]
host = "db.internal"
`), 0o600))

	t.Setenv("CONFIG_FILE", configPath)
	t.Setenv("DB_HOST", "db.override")
	t.Setenv("GEMINI_API_KEY", "sk-from-env")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.App.Port, "file overrides default")
	assert.Equal(t, "db.override", cfg.Database.Host, "env overrides file")
	assert.Equal(t, "sk-from-env", cfg.LLM.APIKey)
}

func TestPostgresDSN(t *testing.T) {
	cfg := defaultConfig()
	cfg.Database.Host = "db.internal"
	cfg.Database.User = "stash"
	cfg.Database.Password = "secret"
	cfg.Database.Name = "stashdb"
	cfg.Database.Port = 5433

	assert.Equal(t,
		"host=db.internal user=stash password=secret dbname=stashdb port=5433 sslmode=disable",
		cfg.PostgresDSN(),
	)
}

func TestHTTPAddr(t *testing.T) {
	cfg := defaultConfig()
	cfg.App.Host = "127.0.0.1"
	cfg.App.Port = 8080
	assert.Equal(t, "127.0.0.1:8080", cfg.HTTPAddr())
}
