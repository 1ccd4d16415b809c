package main

import (
	"context"
	"fmt"
	"os"

	"github.com/shaharia-lab/themify/cmd"
	"github.com/shaharia-lab/themify/internal/cli"
	"github.com/shaharia-lab/themify/internal/logger"
)

var version = "0.0.1"
var commit = "none"
var date = "unknown"

func main() {
	container, err := cli.NewContainer(cli.InitOptions{
		Version:  version,
		Commit:   commit,
		Date:     date,
		LogLevel: logger.LogLevel(os.Getenv("THEMIFY_LOG_LEVEL")),
		NoColor:  os.Getenv("NO_COLOR") != "",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error during initialization: %v\n", err)
		os.Exit(1)
	}

	log := container.Logger
	log.Info(fmt.Sprintf("%s started", container.Config.Name), map[string]interface{}{
		"version": version,
		"args":    os.Args[1:],
	})

	rootCmd := cmd.NewRootCmd(container)
	rootCmd.AddCommand(
		cmd.NewInitCmd(container),
		cmd.NewServeCmd(container),
		cmd.NewConfigCmd(container),
		cmd.NewThemesCmd(container),
		cmd.NewUpdateCmd(container),
	)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		log.Error(fmt.Sprintf("%s exited with error", container.Config.Name), map[string]interface{}{
			logger.ErrorKey: err,
		})
		_ = log.Sync()
		os.Exit(1)
	}

	log.Info(fmt.Sprintf("%s exited successfully", container.Config.Name), nil)
	_ = log.Sync()
}
