package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/rhysd/go-github-selfupdate/selfupdate"
	"github.com/spf13/cobra"

	"github.com/shaharia-lab/themify/internal/cli"
	"github.com/shaharia-lab/themify/internal/config"
	"github.com/shaharia-lab/themify/internal/console"
)

// NewUpdateCmd creates a new update command
func NewUpdateCmd(c *cli.Container) *cobra.Command {
	var yes bool

	updateCmd := &cobra.Command{
		Version: c.Config.Version.VersionText(),
		Use:     "update",
		Short:   "Check for updates and update the CLI",
		Long:    "Check for updates and if a new version is available, download and install it",
		RunE: func(cmd *cobra.Command, args []string) error {
			c.Telemetry.Track(commandContext(cmd), "cmd.update", "Checking for updates", nil)
			return runUpdate(c.Console, c.Config.Repository, c.Config.Version.Version, yes)
		},
	}

	updateCmd.Flags().BoolVarP(&yes, "yes", "y", false, "install without asking for confirmation")
	return updateCmd
}

func runUpdate(out *console.Console, repository config.Repository, currentAppVersion string, yes bool) error {
	out.Info().Printf("Checking for updates for %s... [Current version: %s]\n", repository.Slug(), currentAppVersion)

	latest, found, err := selfupdate.DetectLatest(repository.Slug())
	if err != nil {
		return fmt.Errorf("error detecting version: %w", err)
	}

	if !found || latest == nil {
		out.Warning().Println("No updates found")
		return nil
	}

	if strings.TrimPrefix(latest.Version.String(), "v") == strings.TrimPrefix(currentAppVersion, "v") {
		out.Success().Printf("Current version (%s) is the latest\n", currentAppVersion)
		return nil
	}

	out.Primary().Printf("New version available: %s (current: %s)\n", latest.Version, currentAppVersion)
	out.Plain().Printf("Release notes:\n%s\n", latest.ReleaseNotes)

	if !yes {
		if err := survey.AskOne(&survey.Confirm{Message: "Do you want to update?", Default: false}, &yes); err != nil {
			return err
		}
		if !yes {
			out.Warning().Println("Update cancelled")
			return nil
		}
	}

	out.Info().Println("Downloading and installing update...")
	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("could not locate executable path: %w", err)
	}

	if err := selfupdate.UpdateTo(latest.AssetURL, exe); err != nil {
		return fmt.Errorf("error updating binary: %w", err)
	}

	out.Success().Printf("Successfully updated to version %s\n", latest.Version)
	return nil
}
