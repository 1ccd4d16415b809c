// Package initializer runs the interactive setup wizard and manages the
// configuration file.
package initializer

import (
	"fmt"

	"github.com/AlecAivazis/survey/v2"

	"github.com/shaharia-lab/themify/internal/config"
	"github.com/shaharia-lab/themify/internal/console"
	"github.com/shaharia-lab/themify/internal/logger"
	"github.com/shaharia-lab/themify/internal/telemetry"
)

type askFunc func(p survey.Prompt, response interface{}, opts ...survey.AskOpt) error

// Initializer handles the interactive setup process
type Initializer struct {
	Config       config.Config
	IsUpdateMode bool

	configManager ConfigManager
	log           logger.Logger
	appConfig     *config.AppConfig
	console       *console.Console

	ask                askFunc
	configureTelemetry func(cfg *config.Config) error
}

// NewInitializer creates a new initializer with default dependencies
func NewInitializer(log logger.Logger, appCfg *config.AppConfig, out *console.Console, configManager ConfigManager) *Initializer {
	return &Initializer{
		log:           log,
		appConfig:     appCfg,
		configManager: configManager,
		console:       out,
		ask:           survey.AskOne,
		configureTelemetry: func(cfg *config.Config) error {
			return telemetry.Configure(out, cfg)
		},
	}
}

// WithConfigManager sets a custom config manager (useful for testing)
func (i *Initializer) WithConfigManager(cm ConfigManager) *Initializer {
	i.configManager = cm
	return i
}

// Run starts the interactive configuration process
func (i *Initializer) Run() error {
	i.log.Debug("Starting configuration process", nil)

	var err error
	i.IsUpdateMode = i.configManager.ConfigExists()
	i.log.Debug("Configuration mode detected", map[string]interface{}{"update_mode": i.IsUpdateMode})

	if i.IsUpdateMode {
		i.Config, err = i.configManager.LoadConfig()
		if err != nil {
			i.log.Error("error loading configuration", map[string]interface{}{logger.ErrorKey: err})
			return fmt.Errorf("error loading configuration: %w", err)
		}

		i.console.Primary().Println("Configuration Update Mode")
		i.console.Warning().Println("You are about to update your existing configuration. Press Enter to keep current values, or provide new ones.")
	} else {
		i.Config = config.Config{}.Default()
		i.console.Primary().Println("Initial Configuration")
		i.console.Info().Println("Please configure Themify for the first time. You can always change the configuration later.")
	}

	steps := []struct {
		name string
		run  func() error
	}{
		{"server", i.ConfigureServer},
		{"themes", i.ConfigureThemes},
		{"auth", i.ConfigureAuth},
		{"usage tracking", func() error { return i.configureTelemetry(&i.Config) }},
	}
	for _, step := range steps {
		if err := step.run(); err != nil {
			i.log.Error("configuration step failed", map[string]interface{}{
				logger.ErrorKey: err,
				"step":          step.name,
			})
			return fmt.Errorf("error configuring %s: %w", step.name, err)
		}
	}

	if err := i.Config.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if err := i.configManager.SaveConfig(i.Config); err != nil {
		i.log.Error("error saving configuration", map[string]interface{}{logger.ErrorKey: err})
		return fmt.Errorf("error saving configuration: %w", err)
	}

	i.log.Debug("Configuration process complete", nil)
	i.console.Success().Println("\nConfiguration saved successfully!")
	return nil
}
