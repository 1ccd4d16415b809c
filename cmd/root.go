package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shaharia-lab/themify/internal/cli"
)

// NewRootCmd creates and returns the root command
func NewRootCmd(container *cli.Container) *cobra.Command {
	rootCmd := &cobra.Command{
		Version: container.Config.Version.VersionText(),
		Use:     "themify",
		Short:   "Upload, list and serve CSS themes",
		Long: `Themify keeps a directory of CSS theme files and exposes it through a small REST API
and a static file route.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := container.Console
			out.Banner(fmt.Sprintf("Welcome to %s", container.Config.Name), "CSS themes over HTTP")
			out.Plain().Println()
			if !container.ConfigManager.ConfigExists() {
				out.Warning().Println("Please run 'themify init' to create your configuration.")
				return nil
			}
			out.Info().Println("Run 'themify serve' to start the web server.")
			out.Info().Println("Run 'themify help' to see the available commands.")
			return nil
		},
	}

	return rootCmd
}
