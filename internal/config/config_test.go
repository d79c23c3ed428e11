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
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
server:
  host: 127.0.0.1
  port: 9090
database:
  host: db
  port: 5432
  user: app
  password: secret
  dbname: pockettrip
  sslmode: disable
jwt:
  secret: abc
chat:
  delegate_timeout_seconds: 5
  delegate_allowed_hosts:
    - hooks.example.com
log:
  level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "host=db port=5432 user=app password=secret dbname=pockettrip sslmode=disable", cfg.Database.DSN())
	assert.Equal(t, 5*time.Second, cfg.Chat.DelegateTimeout())
	assert.Equal(t, []string{"hooks.example.com"}, cfg.Chat.DelegateAllowedHosts)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_DelegateTimeoutDefault(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "server:\n  port: 8080\n")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 10*time.Second, cfg.Chat.DelegateTimeout())
}

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
