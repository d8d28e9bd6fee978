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
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestDefaults(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", c.Server.ListenAddress)
	assert.Equal(t, "memory", c.Store.Type)
	assert.Equal(t, 300*time.Millisecond, c.Simulation.FetchDelay)
	assert.Equal(t, time.Second, c.Simulation.UpdateDelay)
	assert.Equal(t, 0.2, *c.Simulation.FailureRate)
	assert.Equal(t, "info", c.LogLevel)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
server:
  listen_address: ":9000"
store:
  type: redis
  redis:
    address: redis:6379
    db: 2
simulation:
  update_delay: 250ms
  failure_rate: 0
log_level: debug
`)

	c, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9000", c.Server.ListenAddress)
	assert.Equal(t, "redis", c.Store.Type)
	assert.Equal(t, "redis:6379", c.Store.Redis.Address)
	assert.Equal(t, 2, c.Store.Redis.DB)
	assert.Equal(t, "violations", c.Store.Redis.Prefix)
	assert.Equal(t, 250*time.Millisecond, c.Simulation.UpdateDelay)
	assert.Equal(t, 0.0, *c.Simulation.FailureRate)
	assert.Equal(t, "debug", c.LogLevel)
}

func TestLoadRejectsInvalid(t *testing.T) {
	_, err := Load(writeConfig(t, "store:\n  type: postgres\n"))
	assert.ErrorContains(t, err, "unknown store type")

	_, err = Load(writeConfig(t, "simulation:\n  failure_rate: 1.5\n"))
	assert.ErrorContains(t, err, "out of range")

	_, err = Load(writeConfig(t, "server: [\n"))
	assert.ErrorContains(t, err, "parse yaml")

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "read config")
}
