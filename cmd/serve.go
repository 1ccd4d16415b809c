package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/shaharia-lab/themify/internal/cli"
	"github.com/shaharia-lab/themify/internal/filesystem"
	"github.com/shaharia-lab/themify/internal/logger"
	"github.com/shaharia-lab/themify/internal/themes"
	"github.com/shaharia-lab/themify/internal/webserver"
)

// NewServeCmd creates the command running the web server in the foreground
func NewServeCmd(c *cli.Container) *cobra.Command {
	var host string
	var port int

	cmd := &cobra.Command{
		Version: c.Config.Version.VersionText(),
		Use:     "serve",
		Short:   "Run the Themify web server",
		Long:    `Serve the theme API and the static theme files until interrupted.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.Settings
			if cmd.Flags().Changed("host") {
				cfg.Server.Host = host
			}
			if cmd.Flags().Changed("port") {
				cfg.Server.Port = port
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
			defer stop()

			c.Telemetry.Track(ctx, "cmd.serve", "Starting web server", map[string]interface{}{
				"cors":     len(cfg.Server.CORSAllowedOrigins) > 0,
				"api_keys": len(cfg.Auth.APIKeys),
			})

			if len(cfg.Auth.APIKeys) == 0 {
				c.Console.Warning().Println("No API keys are configured, theme uploads are disabled. Run 'themify init' to create one.")
			}

			themesDir := c.ThemesDirectory()
			ws, closer, err := webserver.BuildWebserver(ctx, cfg, themesDir, c.Paths[filesystem.SettingsDB], c.Logger)
			if err != nil {
				c.Logger.Error("failed to build web server", map[string]interface{}{logger.ErrorKey: err})
				return err
			}
			defer closer.Close()

			stopWatcher := startWatcher(c, themesDir)
			defer stopWatcher()

			if err := ws.Start(); err != nil {
				c.Logger.Error("failed to start web server", map[string]interface{}{
					logger.ErrorKey: err,
					"address":       cfg.Server.Address(),
				})
				return err
			}

			c.Console.Success().Printf("Serving themes from %s on http://%s\n", themesDir, cfg.Server.Address())
			c.Console.Subtle().Println("Press Ctrl+C to stop.")

			<-ctx.Done()

			c.Console.Info().Println("\nShutting down...")
			if err := ws.Stop(); err != nil {
				c.Logger.Error("graceful shutdown failed", map[string]interface{}{logger.ErrorKey: err})
				return err
			}
			c.Logger.Info("web server stopped", nil)
			return nil
		},
	}

	cmd.Flags().StringVar(&host, "host", c.Settings.Server.Host, "host to listen on")
	cmd.Flags().IntVar(&port, "port", c.Settings.Server.Port, "port to listen on")

	return cmd
}

// startWatcher logs changes to the theme directory while the server runs.
// Failing to watch is not fatal.
func startWatcher(c *cli.Container, dir string) func() {
	w, err := themes.NewWatcher(themes.NewStore(dir), c.Logger)
	if err == nil {
		if err = w.Start(); err != nil {
			w.Stop()
		}
	}
	if err != nil {
		c.Logger.Warn("theme directory changes will not be logged", map[string]interface{}{logger.ErrorKey: err})
		return func() {}
	}
	return func() { w.Stop() }
}
