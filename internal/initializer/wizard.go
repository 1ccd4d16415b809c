package initializer

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/google/uuid"

	"github.com/shaharia-lab/themify/internal/config"
	"github.com/shaharia-lab/themify/internal/permission"
)

const adminKeyName = "admin"

// ConfigureServer asks for the listen address
func (i *Initializer) ConfigureServer() error {
	i.console.Info().Println("\nConfigure the web server")

	host := i.Config.Server.Host
	if err := i.ask(&survey.Input{
		Message: "Listen host:",
		Default: host,
		Help:    "Use 0.0.0.0 to accept connections from other machines.",
	}, &host, survey.WithValidator(survey.Required)); err != nil {
		return err
	}

	port := strconv.Itoa(i.Config.Server.Port)
	if err := i.ask(&survey.Input{
		Message: "Listen port:",
		Default: port,
	}, &port, survey.WithValidator(validatePort)); err != nil {
		return err
	}

	p, err := strconv.Atoi(strings.TrimSpace(port))
	if err != nil {
		return fmt.Errorf("invalid port %q: %w", port, err)
	}

	i.Config.Server.Host = strings.TrimSpace(host)
	i.Config.Server.Port = p
	return nil
}

// ConfigureThemes asks where themes are stored and how large they may be
func (i *Initializer) ConfigureThemes() error {
	i.console.Info().Println("\nConfigure the theme store")

	dir := i.Config.Themes.Directory
	if err := i.ask(&survey.Input{
		Message: "Theme directory (leave empty for the default):",
		Default: dir,
		Help:    "Defaults to ~/.themify/data/themes",
	}, &dir); err != nil {
		return err
	}

	size := strconv.FormatInt(i.Config.Themes.MaxSizeBytes, 10)
	if err := i.ask(&survey.Input{
		Message: "Maximum theme size in bytes:",
		Default: size,
	}, &size, survey.WithValidator(validatePositiveInt)); err != nil {
		return err
	}

	n, err := strconv.ParseInt(strings.TrimSpace(size), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid size %q: %w", size, err)
	}

	i.Config.Themes.Directory = strings.TrimSpace(dir)
	i.Config.Themes.MaxSizeBytes = n
	return nil
}

// ConfigureAuth makes sure an admin API key exists and asks whether
// anonymous callers may read themes.
func (i *Initializer) ConfigureAuth() error {
	i.console.Info().Println("\nConfigure API access")

	idx := adminKeyIndex(i.Config.Auth.APIKeys)
	regenerate := idx < 0
	if !regenerate {
		if err := i.ask(&survey.Confirm{
			Message: "An admin API key already exists. Generate a new one?",
			Default: false,
		}, &regenerate); err != nil {
			return err
		}
	}

	if regenerate {
		key := NewAPIKey()
		entry := config.APIKeyConfig{
			Name:         adminKeyName,
			Key:          key,
			Capabilities: []string{string(permission.Settings)},
		}
		if idx < 0 {
			i.Config.Auth.APIKeys = append(i.Config.Auth.APIKeys, entry)
		} else {
			i.Config.Auth.APIKeys[idx] = entry
		}
		i.console.Success().Printf("Admin API key: %s\n", key)
		i.console.Subtle().Println("Send it in the X-Api-Key header. It is stored in the configuration file.")
	}

	anonymousRead := hasCapability(i.Config.Auth.AnonymousCapabilities, permission.SettingsRead)
	if err := i.ask(&survey.Confirm{
		Message: "Allow anonymous callers to list and read themes?",
		Default: anonymousRead,
	}, &anonymousRead); err != nil {
		return err
	}

	if anonymousRead {
		i.Config.Auth.AnonymousCapabilities = []string{string(permission.SettingsRead)}
	} else {
		i.Config.Auth.AnonymousCapabilities = nil
	}
	return nil
}

// NewAPIKey returns a random 32 character hex key
func NewAPIKey() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

func adminKeyIndex(keys []config.APIKeyConfig) int {
	for idx, k := range keys {
		if hasCapability(k.Capabilities, permission.Settings) {
			return idx
		}
	}
	return -1
}

func hasCapability(names []string, want permission.Capability) bool {
	set, err := permission.ParseSet(names)
	return err == nil && set.Has(want)
}

func validatePort(ans interface{}) error {
	s, _ := ans.(string)
	p, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || p < 1 || p > 65535 {
		return errors.New("port must be a number between 1 and 65535")
	}
	return nil
}

func validatePositiveInt(ans interface{}) error {
	s, _ := ans.(string)
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || n <= 0 {
		return errors.New("value must be a positive number")
	}
	return nil
}
