package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
  request_timeout: 2s
cadastral:
  path: /srv/comuni.csv
  encoding: latin1
rate_limit:
  enabled: false
`)

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 2*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, "/srv/comuni.csv", cfg.Cadastral.Path)
	assert.Equal(t, "latin1", cfg.Cadastral.Encoding)
	assert.False(t, cfg.RateLimit.Enabled)

	// defaults fill what the file leaves out
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, 15*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, "/metrics", cfg.Monitoring.MetricsPath)
	assert.Equal(t, []string{"*"}, cfg.Security.AllowedOrigins)
}

func TestEnvironmentOverrides(t *testing.T) {
	path := writeConfig(t, "server:\n  port: 9090\n")
	t.Setenv("OPTOCLINIC_SERVER_PORT", "7070")
	t.Setenv("OPTOCLINIC_LOGGING_LEVEL", "debug")

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadFileRejectsInvalidValues(t *testing.T) {
	_, err := LoadFile(writeConfig(t, "server:\n  port: 70000\n"))
	assert.Error(t, err)

	_, err = LoadFile(writeConfig(t, "rate_limit:\n  enabled: true\n  burst: 0\n"))
	assert.Error(t, err)
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yml"))
	assert.Error(t, err)
}
