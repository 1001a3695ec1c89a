package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "postgres", cfg.Database.Type)
	assert.Equal(t, int64(50), cfg.Storage.MaxFileSizeMB)
	assert.False(t, cfg.Cleanup.Enabled)
}

func TestLoadConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
server:
  port: "9090"
database:
  type: sqlite
  sqlite:
    path: /tmp/test.db
storage:
  upload_dir: /tmp/uploads
  max_file_size_mb: 10
cleanup:
  enabled: true
  schedule: "0 4 * * *"
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Database.Type)
	assert.Equal(t, "/tmp/test.db", cfg.Database.SQLite.Path)
	assert.Equal(t, "/tmp/uploads", cfg.Storage.UploadDir)
	assert.Equal(t, int64(10*1024*1024), cfg.Storage.MaxFileSizeBytes())
	assert.True(t, cfg.Cleanup.Enabled)
	assert.Equal(t, "0 4 * * *", cfg.Cleanup.Schedule)
	// untouched sections keep defaults
	assert.Equal(t, "localhost", cfg.Database.Postgres.Host)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "7001")
	t.Setenv("DB_TYPE", "sqlite")
	t.Setenv("UPLOAD_DIR", "/srv/docs")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "7001", cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Database.Type)
	assert.Equal(t, "/srv/docs", cfg.Storage.UploadDir)
}
