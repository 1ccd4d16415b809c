// Package filesystem lays out the application directories under the user's home directory.
package filesystem

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shaharia-lab/themify/internal/config"
)

type PathType string

const (
	configYamlFileName = "config.yaml"
	settingsDBFileName = "settings.db"

	AppDirectory    PathType = "app"
	ConfigDirectory PathType = "config"
	ConfigFilePath  PathType = "config_file"
	LogsDirectory   PathType = "logs"
	LogsFilePath    PathType = "log_file"
	ErrorLogPath    PathType = "error_log_file"
	DataDirectory   PathType = "data"
	ThemesDirectory PathType = "themes"
	SettingsDB      PathType = "settings_db"
)

// Filesystem is a struct that contains the methods to interact with local storage.
type Filesystem struct {
	appCfg *config.AppConfig
}

// NewAppFilesystem creates a new Filesystem instance.
func NewAppFilesystem(appCfg *config.AppConfig) *Filesystem {
	return &Filesystem{
		appCfg: appCfg,
	}
}

// EnsureAllPaths creates every directory and file the application needs and
// returns their locations. Calling it again is harmless.
func (s *Filesystem) EnsureAllPaths() (map[PathType]string, error) {
	paths := map[PathType]string{}

	appDirectory, err := s.ensureAppDirectory()
	if err != nil {
		return paths, err
	}
	paths[AppDirectory] = appDirectory

	dirs := []struct {
		pathType PathType
		path     string
	}{
		{ConfigDirectory, filepath.Join(appDirectory, "config")},
		{LogsDirectory, filepath.Join(appDirectory, "logs")},
		{DataDirectory, filepath.Join(appDirectory, "data")},
		{ThemesDirectory, filepath.Join(appDirectory, "data", "themes")},
	}
	for _, d := range dirs {
		if err := ensureDirectory(d.path); err != nil {
			return paths, fmt.Errorf("failed to create %s directory: %w", d.pathType, err)
		}
		paths[d.pathType] = d.path
	}

	settingsDBFilePath, err := s.createSettingsDBFile(paths[DataDirectory], settingsDBFileName)
	if err != nil {
		return paths, err
	}
	paths[SettingsDB] = settingsDBFilePath

	configFilePath := filepath.Join(paths[ConfigDirectory], configYamlFileName)
	if err := ensureFile(configFilePath); err != nil {
		return paths, err
	}
	paths[ConfigFilePath] = configFilePath

	name := strings.ToLower(s.appCfg.Name)
	paths[LogsFilePath] = filepath.Join(paths[LogsDirectory], fmt.Sprintf("%s.log", name))
	paths[ErrorLogPath] = filepath.Join(paths[LogsDirectory], fmt.Sprintf("%s.error.log", name))

	return paths, nil
}

func (s *Filesystem) ensureAppDirectory() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	appDir := filepath.Join(homeDir, fmt.Sprintf(".%s", strings.ToLower(s.appCfg.Name)))
	if err := ensureDirectory(appDir); err != nil {
		return "", err
	}

	return appDir, nil
}

// createSettingsDBFile creates an empty SQLite database unless one already exists.
func (s *Filesystem) createSettingsDBFile(dataDirectory, fileName string) (string, error) {
	dbFilePath := filepath.Join(dataDirectory, fileName)
	if _, err := os.Stat(dbFilePath); err == nil {
		return dbFilePath, nil
	}

	file, err := os.Create(dbFilePath)
	if err != nil {
		return "", err
	}
	defer file.Close()

	sqliteDB, err := sql.Open("sqlite3", dbFilePath)
	if err != nil {
		return "", err
	}
	defer sqliteDB.Close()

	if err := sqliteDB.Ping(); err != nil {
		return "", err
	}

	return dbFilePath, nil
}

func ensureDirectory(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return os.MkdirAll(path, 0755)
	}
	return nil
}

func ensureFile(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		return f.Close()
	}
	return nil
}
