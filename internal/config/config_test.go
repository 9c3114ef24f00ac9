package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupConfigDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	return dir
}

func TestInitializeAndLoad(t *testing.T) {
	setupConfigDir(t)

	cfg, err := Initialize("https://api.example.com/")
	require.NoError(t, err)
	assert.Equal(t, DefaultPageSize, cfg.PageSize)

	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com/", loaded.APIURL)
	assert.Equal(t, DefaultPageSize, loaded.PageSize)
	assert.Empty(t, loaded.Token)
}

func TestInitialize_RefusesSecondRun(t *testing.T) {
	setupConfigDir(t)

	_, err := Initialize("https://api.example.com")
	require.NoError(t, err)

	_, err = Initialize("https://other.example.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already configured")
}

func TestLoad_NotConfigured(t *testing.T) {
	setupConfigDir(t)

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "acb init")
}

func TestSave_PersistsTokenWithTightPermissions(t *testing.T) {
	setupConfigDir(t)

	cfg, err := Initialize("https://api.example.com")
	require.NoError(t, err)

	cfg.Token = "jwt-123"
	require.NoError(t, cfg.Save())

	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "jwt-123", loaded.Token)

	info, err := os.Stat(filepath.Join(loaded.Path(), ConfigFile))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestLoad_DefaultsZeroPageSize(t *testing.T) {
	setupConfigDir(t)

	dir, err := Dir()
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFile),
		[]byte("api_url = \"https://api.example.com\"\n"), 0600))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultPageSize, cfg.PageSize)
}

func TestLoad_RejectsNegativePageSize(t *testing.T) {
	setupConfigDir(t)

	dir, err := Dir()
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFile),
		[]byte("api_url = \"https://api.example.com\"\npage_size = -5\n"), 0600))

	_, err = Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "page_size")
}

func TestDatabasePath(t *testing.T) {
	setupConfigDir(t)

	cfg, err := Initialize("https://api.example.com")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(cfg.Path(), DatabaseFile), cfg.DatabasePath())
}
