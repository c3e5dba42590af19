package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-playground/assert/v2"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv(configPathEnv, "")
	t.Setenv("PORT", "")
	t.Setenv("STORE_BACKEND", "")
	t.Setenv("TIMEZONE", "")

	cfg := Load()

	assert.Equal(t, "8000", cfg.Server.Port)
	assert.Equal(t, BackendFirestore, cfg.Store.Backend)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, time.Local, cfg.Location())
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prevently.yaml")
	yaml := `
server:
  port: "9000"
  frontendUrl: https://dash.example.com
  readTimeout: 5s
store:
  backend: sqlite
  sqlitePath: /tmp/test.db
timezone: Asia/Tokyo
log:
  level: debug
`
	assert.Equal(t, nil, os.WriteFile(path, []byte(yaml), 0o600))

	t.Setenv(configPathEnv, path)
	t.Setenv("PORT", "9100")
	t.Setenv("STORE_BACKEND", "")
	t.Setenv("TIMEZONE", "")
	t.Setenv("SERVER_WRITE_TIMEOUT", "30")
	t.Setenv("ANTHROPIC_API_KEY", "sk-test")

	cfg := Load()

	assert.Equal(t, "9100", cfg.Server.Port)
	assert.Equal(t, "https://dash.example.com", cfg.Server.FrontendURL)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 30*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, BackendSQLite, cfg.Store.Backend)
	assert.Equal(t, "/tmp/test.db", cfg.Store.SQLitePath)
	assert.Equal(t, "sk-test", cfg.LLM.AnthropicAPIKey)
	assert.Equal(t, "Asia/Tokyo", cfg.Location().String())
	assert.Equal(t, "DEBUG", cfg.LogLevel().String())
}

func TestLoad_MissingFileFallsBack(t *testing.T) {
	t.Setenv(configPathEnv, filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("PORT", "")
	t.Setenv("STORE_BACKEND", "POSTGRES")

	cfg := Load()

	assert.Equal(t, "8000", cfg.Server.Port)
	assert.Equal(t, BackendPostgres, cfg.Store.Backend)
}

func TestLoad_UnknownTimezone(t *testing.T) {
	t.Setenv(configPathEnv, "")
	t.Setenv("TIMEZONE", "Mars/Olympus")

	cfg := Load()

	assert.Equal(t, time.Local, cfg.Location())
}
