package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shaharia-lab/themify/internal/cli"
	"github.com/shaharia-lab/themify/internal/config"
	"github.com/shaharia-lab/themify/internal/console"
	"github.com/shaharia-lab/themify/internal/filesystem"
	"github.com/shaharia-lab/themify/internal/logger"
)

func newTestContainer(t *testing.T) (*cli.Container, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	return &cli.Container{
		Config:   config.NewDefaultConfig(config.WithVersion(config.Version{Version: "0.0.1"})),
		Settings: config.Config{}.Default(),
		Paths: map[filesystem.PathType]string{
			filesystem.ThemesDirectory: filepath.Join(t.TempDir(), "themes"),
		},
		Logger:  logger.Discard,
		Console: console.New(&out, true),
	}, &out
}

func runThemes(t *testing.T, c *cli.Container, args ...string) error {
	t.Helper()
	cmd := NewThemesCmd(c)
	cmd.SetArgs(args)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	return cmd.Execute()
}

func TestThemesCmd_ImportListExportRemove(t *testing.T) {
	c, out := newTestContainer(t)

	src := filepath.Join(t.TempDir(), "Ocean.css")
	require.NoError(t, os.WriteFile(src, []byte("body{background:#00f}"), 0644))

	require.NoError(t, runThemes(t, c, "import", src))
	assert.Contains(t, out.String(), "as Ocean")

	out.Reset()
	require.NoError(t, runThemes(t, c, "list"))
	assert.Contains(t, strings.ToUpper(out.String()), "NAME")
	assert.Contains(t, out.String(), "Ocean")
	assert.Contains(t, out.String(), "21")

	out.Reset()
	require.NoError(t, runThemes(t, c, "export", "Ocean"))
	assert.Equal(t, "body{background:#00f}", out.String())

	dst := filepath.Join(t.TempDir(), "copy.css")
	require.NoError(t, runThemes(t, c, "export", "Ocean", "-o", dst))
	got, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "body{background:#00f}", string(got))

	require.NoError(t, runThemes(t, c, "remove", "Ocean", "--yes"))
	_, err = os.Stat(filepath.Join(c.ThemesDirectory(), "Ocean.css"))
	assert.True(t, os.IsNotExist(err))
}

func TestThemesCmd_ImportWithName(t *testing.T) {
	c, _ := newTestContainer(t)
	src := filepath.Join(t.TempDir(), "x.css")
	require.NoError(t, os.WriteFile(src, []byte("a{}"), 0644))

	require.NoError(t, runThemes(t, c, "import", src, "--name", "night"))

	names, err := c.ThemeStore().List()
	require.NoError(t, err)
	assert.Equal(t, []string{"night"}, names)
}

func TestThemesCmd_ImportRejects(t *testing.T) {
	c, _ := newTestContainer(t)
	c.Settings.Themes.MaxSizeBytes = 4

	src := filepath.Join(t.TempDir(), "big.css")
	require.NoError(t, os.WriteFile(src, []byte("0123456789"), 0644))

	err := runThemes(t, c, "import", src)
	assert.ErrorContains(t, err, "the limit is 4 bytes")

	err = runThemes(t, c, "import", src, "--name", "../escape")
	assert.ErrorContains(t, err, "invalid theme name")
}

func TestThemesCmd_ListEmpty(t *testing.T) {
	c, out := newTestContainer(t)

	require.NoError(t, runThemes(t, c, "list"))
	assert.Contains(t, out.String(), "No themes found")
}

func TestThemesCmd_MissingTheme(t *testing.T) {
	c, _ := newTestContainer(t)
	require.NoError(t, c.ThemeStore().Ensure())

	assert.EqualError(t, runThemes(t, c, "export", "ghost"), `theme "ghost" does not exist`)
	assert.EqualError(t, runThemes(t, c, "remove", "ghost", "-y"), `theme "ghost" does not exist`)
}

func TestThemesCmd_ExportHighlight(t *testing.T) {
	c, out := newTestContainer(t)
	require.NoError(t, c.ThemeStore().Ensure())
	require.NoError(t, c.ThemeStore().Write("sun", []byte("h1 { color: gold; }")))

	require.NoError(t, runThemes(t, c, "export", "sun", "--highlight"))
	assert.Contains(t, out.String(), "\x1b[")
	assert.Contains(t, out.String(), "gold")
}
