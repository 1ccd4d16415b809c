package initializer

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/shaharia-lab/themify/internal/config"
)

// ConfigManager loads and saves the configuration file
type ConfigManager interface {
	LoadConfig() (config.Config, error)
	SaveConfig(config.Config) error
	ConfigExists() bool
}

// DefaultConfigManager implements ConfigManager with real file operations
type DefaultConfigManager struct {
	configFilePath string
}

var _ ConfigManager = (*DefaultConfigManager)(nil)

func NewDefaultConfigManager(configFilePath string) *DefaultConfigManager {
	return &DefaultConfigManager{configFilePath: configFilePath}
}

// Path returns the configuration file location
func (cm *DefaultConfigManager) Path() string {
	return cm.configFilePath
}

// LoadConfig loads the existing configuration or writes and returns the
// default one when the file is missing or empty. Zero values left by a partial
// file are filled with defaults before validation.
func (cm *DefaultConfigManager) LoadConfig() (config.Config, error) {
	defaultConfig := config.Config{}.Default()

	if cm.configFilePath == "" {
		return defaultConfig, fmt.Errorf("config file path not set")
	}

	configFile, err := os.ReadFile(cm.configFilePath)
	if err != nil && !os.IsNotExist(err) {
		return defaultConfig, fmt.Errorf("failed to read config file: %w", err)
	}

	if len(configFile) == 0 {
		if err := cm.SaveConfig(defaultConfig); err != nil {
			return config.Config{}, fmt.Errorf("failed to save default config: %w", err)
		}
		return defaultConfig, nil
	}

	var cfg config.Config
	if err := yaml.Unmarshal(configFile, &cfg); err != nil {
		return defaultConfig, fmt.Errorf("failed to parse config file: %w", err)
	}
	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config file %s: %w", cm.configFilePath, err)
	}

	return cfg, nil
}

// SaveConfig saves the configuration to disk
func (cm *DefaultConfigManager) SaveConfig(cfg config.Config) error {
	if cm.configFilePath == "" {
		return fmt.Errorf("config file path not set")
	}

	yamlData, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// API keys live in this file.
	return os.WriteFile(cm.configFilePath, yamlData, 0600)
}

// ConfigExists reports whether a non-empty configuration file exists
func (cm *DefaultConfigManager) ConfigExists() bool {
	info, err := os.Stat(cm.configFilePath)
	return err == nil && info.Size() > 0
}
