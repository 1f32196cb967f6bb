package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 300, cfg.Search.DebounceMs)
	assert.Equal(t, 2, cfg.Search.MinQueryLen)
	assert.Equal(t, 20, cfg.Search.Limit)
	assert.NotEmpty(t, cfg.API.BaseURL)
}

func TestSaveAndLoadRoundtrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	svc := &service{filePath: path}

	cfg := Default()
	cfg.API.BaseURL = "https://hr.internal.example.com"
	cfg.Search.DebounceMs = 250
	require.NoError(t, svc.SaveToPath(cfg, path))

	loaded, err := svc.LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, "https://hr.internal.example.com", loaded.API.BaseURL)
	assert.Equal(t, 250, loaded.Search.DebounceMs)
	assert.Equal(t, 2, loaded.Search.MinQueryLen)
}

func TestLoadSparseFileBackfillsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[api]\nbase_url = \"https://x.example.com\"\n"), 0644))

	svc := &service{filePath: path}
	cfg, err := svc.LoadFromPath(path)
	require.NoError(t, err)

	assert.Equal(t, "https://x.example.com", cfg.API.BaseURL)
	assert.Equal(t, 300, cfg.Search.DebounceMs, "sparse config must not disable debouncing")
	assert.Equal(t, 2, cfg.Search.MinQueryLen)
	assert.Equal(t, 15, cfg.API.TimeoutSeconds)
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	svc := &service{filePath: filepath.Join(t.TempDir(), "missing.toml")}
	cfg, err := svc.Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadRejectsBadToml(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("not toml at all {{{"), 0644))

	svc := &service{filePath: path}
	_, err := svc.LoadFromPath(path)
	assert.Error(t, err)
}
