package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setXDG(t *testing.T) (string, string) {
	t.Helper()

	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(home, "data"))
	t.Setenv("XDG_DATA_DIRS", "/usr/local/share:/usr/share")
	t.Setenv("LC_ALL", "")
	t.Setenv("LC_MESSAGES", "")
	t.Setenv("LANG", "de_DE.UTF-8")
	xdg.Reload()
	t.Cleanup(xdg.Reload)

	return home, filepath.Join(home, "data", Name)
}

func TestLoadDefaults(t *testing.T) {
	home, dataDir := setXDG(t)

	config, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, []string{
		dataDir,
		"/usr/local/share/caja-actions",
		"/usr/share/caja-actions",
	}, config.StoreDirs)
	assert.Equal(t, "de_DE.UTF-8", config.Locale)
	assert.Equal(t, "info", config.LogLevel)
	assert.Equal(t, 100*time.Millisecond, config.WatchDelay)
	assert.Equal(t, filepath.Join(home, "config", Name, "config.yaml"), DefaultPath())
}

func TestLoadFile(t *testing.T) {
	setXDG(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
store_dirs:
  - /srv/actions
  - /usr/share/caja-actions
locale: fr_FR
log_level: debug
watch_delay: 250ms
`), 0o600))

	config, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"/srv/actions", "/usr/share/caja-actions"}, config.StoreDirs)
	assert.Equal(t, "fr_FR", config.Locale)
	assert.Equal(t, "debug", config.LogLevel)
	assert.Equal(t, 250*time.Millisecond, config.WatchDelay)
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	setXDG(t)
	t.Setenv("CACT_STORE_DIRS", "/a"+string(os.PathListSeparator)+"/b")
	t.Setenv("CACT_LOG_LEVEL", "warn")

	config, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, []string{"/a", "/b"}, config.StoreDirs)
	assert.Equal(t, "warn", config.LogLevel)
}

func TestLoadErrors(t *testing.T) {
	setXDG(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err, "an explicit path must exist")

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: loud\n"), 0o600))
	_, err = Load(path)
	assert.ErrorContains(t, err, "invalid log level")

	require.NoError(t, os.WriteFile(path, []byte("store_dirs: [relative/dir]\n"), 0o600))
	_, err = Load(path)
	assert.ErrorContains(t, err, "not absolute")
}

func TestSaveAndLoad(t *testing.T) {
	setXDG(t)

	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	saved := &Config{
		StoreDirs:  []string{"/srv/actions"},
		Locale:     "it_IT",
		LogLevel:   "error",
		WatchDelay: time.Second,
	}
	require.NoError(t, saved.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, saved, loaded)
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	config := &Config{LogLevel: "warn"}
	logger := config.Logger(&buf)

	logger.Info().Msg("hidden")
	assert.Empty(t, buf.String())

	logger.Warn().Msg("shown")
	assert.Contains(t, buf.String(), "shown")
}
