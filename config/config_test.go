package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "basil.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "version: 1\n"))
	require.NoError(t, err)

	assert.Equal(t, "pretty", cfg.Settings.Output)
	assert.Equal(t, []string{"./features"}, cfg.Features.Paths)
	assert.False(t, cfg.Settings.RunLog)
}

func TestLoadFull(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
version: 1
settings:
  output: events
  run_log: true
features:
  paths:
    - ./features/api
    - ./features/db
resources:
  db:
    type: postgres
    dsn: postgres://localhost/test?sslmode=disable
  cache:
    type: redis
    addr: localhost:6379
    db: 2
  stream:
    type: kafka
    brokers: [localhost:9092]
`))
	require.NoError(t, err)

	assert.Equal(t, "events", cfg.Settings.Output)
	assert.True(t, cfg.Settings.RunLog)
	assert.Len(t, cfg.Features.Paths, 2)
	require.Len(t, cfg.Resources, 3)
	assert.Equal(t, "postgres", cfg.Resources["db"].Type)
	assert.Equal(t, 2, cfg.Resources["cache"].DB)
	assert.Equal(t, []string{"localhost:9092"}, cfg.Resources["stream"].Brokers)
}

func TestLoadExpandsEnv(t *testing.T) {
	t.Setenv("BASIL_TEST_DSN", "postgres://example/db")

	cfg, err := Load(writeConfig(t, `
version: 1
resources:
  db:
    type: postgres
    dsn: ${BASIL_TEST_DSN}
`))
	require.NoError(t, err)
	assert.Equal(t, "postgres://example/db", cfg.Resources["db"].DSN)
}

func TestLoadUnknownResourceType(t *testing.T) {
	_, err := Load(writeConfig(t, `
version: 1
resources:
  db:
    type: mongodb
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown type")
}

func TestLoadUnsupportedVersion(t *testing.T) {
	_, err := Load(writeConfig(t, "version: 9\n"))
	require.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	require.Error(t, err)
}
