// Package cli builds the dependencies shared by the commands.
package cli

import (
	"fmt"

	"github.com/shaharia-lab/themify/internal/config"
	"github.com/shaharia-lab/themify/internal/console"
	"github.com/shaharia-lab/themify/internal/filesystem"
	"github.com/shaharia-lab/themify/internal/initializer"
	"github.com/shaharia-lab/themify/internal/logger"
	"github.com/shaharia-lab/themify/internal/telemetry"
	"github.com/shaharia-lab/themify/internal/themes"
)

// Container holds all application dependencies
type Container struct {
	Config        *config.AppConfig
	Settings      config.Config
	Filesystem    *filesystem.Filesystem
	Paths         map[filesystem.PathType]string
	ConfigManager *initializer.DefaultConfigManager
	Logger        logger.Logger
	Console       *console.Console
	Telemetry     *telemetry.Tracker
}

// InitOptions contains options for initialization
type InitOptions struct {
	Version string
	Commit  string
	Date    string

	// LogLevel overrides log.level from the configuration file when set
	LogLevel logger.LogLevel
	NoColor  bool
}

// NewContainer creates and initializes all application dependencies
func NewContainer(opts InitOptions) (*Container, error) {
	if opts.Version == "" {
		return nil, fmt.Errorf("version is required")
	}

	c := &Container{
		Config: config.NewDefaultConfig(config.WithVersion(config.Version{
			Version: opts.Version,
			Commit:  opts.Commit,
			Date:    opts.Date,
		})),
	}

	c.Console = console.Stdout()
	if opts.NoColor {
		c.Console = console.New(c.Console.Out(), true)
	}

	c.Filesystem = filesystem.NewAppFilesystem(c.Config)

	var err error
	c.Paths, err = c.Filesystem.EnsureAllPaths()
	if err != nil {
		return nil, fmt.Errorf("failed to ensure all application paths: %w", err)
	}

	if c.Paths[filesystem.ConfigFilePath] == "" {
		return nil, fmt.Errorf("config file path is required")
	}

	c.ConfigManager = initializer.NewDefaultConfigManager(c.Paths[filesystem.ConfigFilePath])
	c.Settings = config.Config{}.Default()
	if c.ConfigManager.ConfigExists() {
		c.Settings, err = c.ConfigManager.LoadConfig()
		if err != nil {
			return nil, err
		}
	}

	level := logger.ParseLevel(c.Settings.Log.Level)
	if opts.LogLevel != "" {
		level = logger.ParseLevel(string(opts.LogLevel))
	}

	c.Logger, err = logger.NewZapLogger(logger.Config{
		LogLevel:      level,
		FilePath:      c.Paths[filesystem.LogsFilePath],
		ErrorFilePath: c.Paths[filesystem.ErrorLogPath],
		UseConsole:    c.Settings.Log.Console,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	c.Telemetry = telemetry.NewTracker(c.Config, c.Settings.UsageTracking)

	c.Logger.Debug("Container initialized", map[string]interface{}{
		"config_file": c.Paths[filesystem.ConfigFilePath],
		"log_level":   string(level),
	})

	return c, nil
}

// ThemesDirectory returns the configured theme directory, falling back to the
// data/themes directory under the application home.
func (c *Container) ThemesDirectory() string {
	return ResolveThemesDirectory(c.Settings.Themes, c.Paths)
}

// ThemeStore returns a store rooted at ThemesDirectory.
func (c *Container) ThemeStore() *themes.Store {
	return themes.NewStore(c.ThemesDirectory())
}

// ResolveThemesDirectory picks the theme directory from the configuration or the default path.
func ResolveThemesDirectory(cfg config.ThemesConfig, paths map[filesystem.PathType]string) string {
	if cfg.Directory != "" {
		return cfg.Directory
	}
	return paths[filesystem.ThemesDirectory]
}
