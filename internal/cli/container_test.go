package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shaharia-lab/themify/internal/config"
	"github.com/shaharia-lab/themify/internal/filesystem"
)

func TestNewContainer(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	c, err := NewContainer(InitOptions{Version: "1.0.0", Commit: "abc", Date: "today", NoColor: true})
	require.NoError(t, err)
	defer c.Logger.Sync()

	assert.Equal(t, "Themify", c.Config.Name)
	assert.Equal(t, filepath.Join(home, ".themify", "data", "themes"), c.ThemesDirectory())
	assert.Equal(t, config.DefaultPort, c.Settings.Server.Port)
	assert.False(t, c.Telemetry.Enabled())
	assert.NotNil(t, c.ThemeStore())
	assert.False(t, c.ConfigManager.ConfigExists(), "defaults are not written until init runs")
}

func TestNewContainer_ReadsConfigFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	configDir := filepath.Join(home, ".themify", "config")
	require.NoError(t, os.MkdirAll(configDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "config.yaml"),
		[]byte("themes:\n  directory: /srv/css\nusage_tracking:\n  enabled: true\n"), 0600))

	c, err := NewContainer(InitOptions{Version: "1.0.0", NoColor: true})
	require.NoError(t, err)

	assert.Equal(t, "/srv/css", c.ThemesDirectory())
	assert.True(t, c.Telemetry.Enabled())
}

func TestNewContainer_RequiresVersion(t *testing.T) {
	_, err := NewContainer(InitOptions{})
	assert.EqualError(t, err, "version is required")
}

func TestResolveThemesDirectory(t *testing.T) {
	paths := map[filesystem.PathType]string{filesystem.ThemesDirectory: "/home/u/.themify/data/themes"}

	assert.Equal(t, "/home/u/.themify/data/themes", ResolveThemesDirectory(config.ThemesConfig{}, paths))
	assert.Equal(t, "/x", ResolveThemesDirectory(config.ThemesConfig{Directory: "/x"}, paths))
}
