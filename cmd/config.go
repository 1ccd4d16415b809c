package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shaharia-lab/themify/internal/cli"
)

// NewConfigCmd creates a config command
func NewConfigCmd(c *cli.Container) *cobra.Command {
	cfgCmd := &cobra.Command{
		Version: c.Config.Version.VersionText(),
		Use:     "config",
		Short:   "Manage Themify configuration",
		Long:    `Commands to manage and view your Themify configuration.`,
	}

	cfgCmd.AddCommand(NewConfigPreviewCmd(c))
	return cfgCmd
}

// NewConfigPreviewCmd creates a command to preview the config file
func NewConfigPreviewCmd(c *cli.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Preview the current configuration file",
		Long:  `Display the content of your Themify configuration file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath := c.ConfigManager.Path()
			configData, err := os.ReadFile(configPath)
			if err != nil {
				c.Console.Error().Printf("Error reading config file: %v\n", err)
				return fmt.Errorf("failed to read config file: %w", err)
			}

			c.Console.Primary().Println("\nConfiguration File")
			c.Console.Subtle().Printf("Located at: %s\n\n", configPath)

			if len(configData) == 0 {
				c.Console.Warning().Println("The configuration file is empty. Run 'themify init' to create it.")
				return nil
			}

			c.Console.Plain().Println(string(configData))
			return nil
		},
	}

	return cmd
}
