package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "world-backups", cfg.Storage.Bucket)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "last-modified", cfg.Merge.Rule)
	assert.Equal(t, 1, cfg.Merge.Workers)
	assert.Equal(t, "region", cfg.Merge.RegionDir)
	assert.Equal(t, ".mca", cfg.Merge.Extension)
	assert.False(t, cfg.Backup.Enabled)
	assert.Equal(t, "backups", cfg.Backup.Prefix)
	assert.True(t, cfg.Journal.Enabled)
}

func TestLoadConfig_Environment(t *testing.T) {
	t.Setenv("MERGE_RULE", "never")
	t.Setenv("MERGE_WORKERS", "4")
	t.Setenv("BACKUP_ENABLED", "true")
	t.Setenv("STORAGE_USE_SSL", "true")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "never", cfg.Merge.Rule)
	assert.Equal(t, 4, cfg.Merge.Workers)
	assert.True(t, cfg.Backup.Enabled)
	assert.True(t, cfg.Storage.UseSSL)
}

func TestLoadConfig_DotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("MERGE_EXTENSION=.mcc\nJOURNAL_ENABLED=false\n"), 0o644))
	t.Cleanup(func() {
		os.Unsetenv("MERGE_EXTENSION")
		os.Unsetenv("JOURNAL_ENABLED")
	})

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, ".mcc", cfg.Merge.Extension)
	assert.False(t, cfg.Journal.Enabled)
}
