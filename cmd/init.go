package cmd

import (
	"github.com/spf13/cobra"

	"github.com/shaharia-lab/themify/internal/cli"
	"github.com/shaharia-lab/themify/internal/initializer"
	"github.com/shaharia-lab/themify/internal/logger"
)

// NewInitCmd creates an interactive init command
func NewInitCmd(c *cli.Container) *cobra.Command {
	cmd := &cobra.Command{
		Version: c.Config.Version.VersionText(),
		Use:     "init",
		Short:   "Initialize Themify with a guided setup",
		Long:    `Start an interactive wizard to configure the web server, the theme store and API keys.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			c.Telemetry.Track(commandContext(cmd), "cmd.init", "Starting initialization", nil)
			c.Logger.Info("Starting initialization", nil)

			wizard := initializer.NewInitializer(c.Logger, c.Config, c.Console, c.ConfigManager)
			if err := wizard.Run(); err != nil {
				c.Logger.Error("Initialization failed", map[string]interface{}{logger.ErrorKey: err})
				c.Console.Error().Printf("Initialization failed: %v\n", err)
				return err
			}

			c.Logger.Info("Initialization complete", map[string]interface{}{
				"config_file": c.ConfigManager.Path(),
			})

			c.Console.Info().Println("\nRun 'themify serve' to start the web server.")
			c.Console.Info().Println("Run 'themify help' to see the available commands.")
			return nil
		},
	}

	return cmd
}
