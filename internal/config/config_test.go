package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcanaland/cardex/internal/theme"
)

func TestLoadCreatesDefault(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	_, err = os.Stat(GetConfigFilePath())
	require.NoError(t, err, "default config should be written")
}

func TestLoadKeepsDefaultsForMissingKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("database = \"https://cards.example.com/database.json\"\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://cards.example.com/database.json", cfg.Database)
	assert.Equal(t, "en", cfg.Locale)
	assert.Equal(t, 10*time.Second, cfg.Timeout())
}

func TestLoadRejectsMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("database = ["), 0644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestTimeout(t *testing.T) {
	assert.Equal(t, time.Duration(0), (&Config{FetchTimeout: "soon"}).Timeout())
	assert.Equal(t, 3*time.Second, (&Config{FetchTimeout: "3s"}).Timeout())
}

func TestXDGPaths(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/cache")
	t.Setenv("XDG_DATA_HOME", "/tmp/data")
	assert.Equal(t, filepath.Join("/tmp/cache", "cardex"), GetCacheDir())
	assert.Equal(t, "/tmp/data", GetXDGDataHome())
}

func TestThemeStorePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cardex", "config.toml")

	store := NewThemeStore(path)
	dark, err := store.Get()
	require.NoError(t, err)
	assert.False(t, dark, "absent key means light")

	pref := theme.Load(store, nil)
	_, err = pref.Toggle()
	require.NoError(t, err)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, theme.Enabled, cfg.DarkMode)
	assert.Equal(t, "database.json", cfg.Database, "other keys survive")

	assert.True(t, theme.Load(NewThemeStore(path), nil).Dark())
}
