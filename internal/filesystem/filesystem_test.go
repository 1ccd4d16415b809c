package filesystem

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shaharia-lab/themify/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestEnv(t *testing.T) string {
	tempDir := t.TempDir()
	t.Setenv("HOME", tempDir)
	return tempDir
}

func TestEnsureAppDirectory(t *testing.T) {
	tempHome := setupTestEnv(t)

	fs := NewAppFilesystem(&config.AppConfig{Name: "TestApp"})

	appDir, err := fs.ensureAppDirectory()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(tempHome, ".testapp"), appDir)

	info, err := os.Stat(appDir)
	require.NoError(t, err)
	assert.True(t, info.IsDir(), "App path should be a directory")

	appDirAgain, err := fs.ensureAppDirectory()
	assert.NoError(t, err, "Second call to ensureAppDirectory should not return an error")
	assert.Equal(t, appDir, appDirAgain)
}

func TestEnsureAllPaths(t *testing.T) {
	tempHome := setupTestEnv(t)

	fs := NewAppFilesystem(&config.AppConfig{Name: "TestApp"})

	paths, err := fs.EnsureAllPaths()
	require.NoError(t, err)

	expectedAppDir := filepath.Join(tempHome, ".testapp")

	pathTests := []struct {
		pathType PathType
		subPath  string
		isDir    bool
	}{
		{AppDirectory, "", true},
		{ConfigDirectory, "config", true},
		{LogsDirectory, "logs", true},
		{DataDirectory, "data", true},
		{ThemesDirectory, filepath.Join("data", "themes"), true},
		{ConfigFilePath, filepath.Join("config", "config.yaml"), false},
		{SettingsDB, filepath.Join("data", "settings.db"), false},
	}

	for _, tt := range pathTests {
		t.Run(string(tt.pathType), func(t *testing.T) {
			path, exists := paths[tt.pathType]
			require.True(t, exists, "Path type %s should exist in paths map", tt.pathType)
			assert.Equal(t, filepath.Join(expectedAppDir, tt.subPath), path)

			info, err := os.Stat(path)
			require.NoError(t, err, "Should be able to stat %s", tt.pathType)
			assert.Equal(t, tt.isDir, info.IsDir())
		})
	}

	assert.Equal(t, filepath.Join(expectedAppDir, "logs", "testapp.log"), paths[LogsFilePath])
	assert.Equal(t, filepath.Join(expectedAppDir, "logs", "testapp.error.log"), paths[ErrorLogPath])

	pathsAgain, err := fs.EnsureAllPaths()
	assert.NoError(t, err, "Second call to EnsureAllPaths should not return an error")
	assert.Equal(t, paths, pathsAgain)
}

func TestCreateSettingsDBFile(t *testing.T) {
	tempDir := t.TempDir()
	fs := NewAppFilesystem(&config.AppConfig{Name: "TestApp"})

	dbPath, err := fs.createSettingsDBFile(tempDir, "test.db")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(tempDir, "test.db"), dbPath)

	dbPathAgain, err := fs.createSettingsDBFile(tempDir, "test.db")
	assert.NoError(t, err)
	assert.Equal(t, dbPath, dbPathAgain)
}

func TestErrorConditions(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root ignores directory permissions")
	}
	readOnlyDir := filepath.Join(t.TempDir(), "readonly")
	require.NoError(t, os.MkdirAll(readOnlyDir, 0555))
	defer os.Chmod(readOnlyDir, 0755)

	fs := NewAppFilesystem(&config.AppConfig{Name: "TestApp"})

	_, err := fs.createSettingsDBFile(readOnlyDir, "test.db")
	assert.Error(t, err, "Creating DB file in read-only directory should fail")
}
