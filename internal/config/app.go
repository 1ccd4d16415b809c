package config

import (
	"fmt"
)

// Repository represents a GitHub repository
type Repository struct {
	Owner string
	Repo  string
}

// Slug returns the repository in owner/repo form
func (r Repository) Slug() string {
	return fmt.Sprintf("%s/%s", r.Owner, r.Repo)
}

// AppConfig represents the configuration for the application
type AppConfig struct {
	Name       string
	Repository Repository
	Version    Version
}

// Version represents the version information for the application
type Version struct {
	Version string
	Commit  string
	Date    string
}

// VersionText returns the version information as a string
func (v *Version) VersionText() string {
	return fmt.Sprintf("v%s : %s (%s)", v.Version, v.Commit, v.Date)
}

// Option is a function that configures an AppConfig
type Option func(*AppConfig)

// WithVersion sets the build information
func WithVersion(v Version) Option {
	return func(c *AppConfig) {
		c.Version = v
	}
}

// NewDefaultConfig returns the application identity with the given options applied
func NewDefaultConfig(opts ...Option) *AppConfig {
	c := &AppConfig{
		Name: "Themify",
		Repository: Repository{
			Owner: "shaharia-lab",
			Repo:  "themify",
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}
