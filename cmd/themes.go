package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/shaharia-lab/themify/internal/cli"
	"github.com/shaharia-lab/themify/internal/console"
	"github.com/shaharia-lab/themify/internal/themes"
)

// NewThemesCmd groups the commands working on the local theme directory
func NewThemesCmd(c *cli.Container) *cobra.Command {
	themesCmd := &cobra.Command{
		Version: c.Config.Version.VersionText(),
		Use:     "themes",
		Short:   "Manage the local theme store",
		Long:    `List, export, import and remove theme files without going through the web server.`,
	}

	themesCmd.AddCommand(
		newThemesListCmd(c),
		newThemesExportCmd(c),
		newThemesImportCmd(c),
		newThemesRemoveCmd(c),
	)
	return themesCmd
}

func newThemesListCmd(c *cli.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the stored themes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c.Telemetry.Track(commandContext(cmd), "cmd.themes.list", "Listing themes", nil)

			store := c.ThemeStore()
			names, err := store.List()
			if err != nil {
				return err
			}
			if len(names) == 0 {
				c.Console.Warning().Printf("No themes found in %s\n", store.Root())
				return nil
			}

			table := tablewriter.NewWriter(c.Console.Out())
			table.SetHeader([]string{"Name", "Size", "Modified"})
			table.SetBorder(false)
			table.SetAutoWrapText(false)

			for _, name := range names {
				size, modified := "-", "-"
				if path, err := store.Path(name); err == nil {
					if info, err := os.Stat(path); err == nil {
						size = humanize.Bytes(uint64(info.Size()))
						modified = humanize.Time(info.ModTime())
					}
				}
				table.Append([]string{name, size, modified})
			}
			table.Render()
			return nil
		},
	}
}

func newThemesExportCmd(c *cli.Container) *cobra.Command {
	var output string
	var highlight bool

	cmd := &cobra.Command{
		Use:   "export <name>",
		Short: "Write a theme to a file or stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := c.ThemeStore().Read(args[0])
			if err != nil {
				return describeThemeError(args[0], err)
			}

			if output == "" || output == "-" {
				if highlight {
					return console.Highlight(c.Console.Out(), string(content), "css")
				}
				_, err := c.Console.Out().Write(content)
				return err
			}

			if err := os.WriteFile(output, content, 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", output, err)
			}
			c.Console.Success().Printf("Exported %s to %s\n", args[0], output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "destination file (default stdout)")
	cmd.Flags().BoolVar(&highlight, "highlight", false, "syntax highlight the CSS when writing to stdout")
	return cmd
}

func newThemesImportCmd(c *cli.Container) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Copy a CSS file into the theme store",
		Long:  `Copy a CSS file into the theme store. The theme is named after the file unless --name is given.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c.Telemetry.Track(commandContext(cmd), "cmd.themes.import", "Importing theme", nil)

			src := args[0]
			if name == "" {
				name = strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
			}
			if err := themes.ValidateName(name); err != nil {
				return err
			}

			content, err := os.ReadFile(src)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", src, err)
			}
			if limit := c.Settings.Themes.MaxSizeBytes; limit > 0 && int64(len(content)) > limit {
				return fmt.Errorf("%s is %d bytes, the limit is %d bytes", src, len(content), limit)
			}

			store := c.ThemeStore()
			if err := store.Ensure(); err != nil {
				return err
			}
			if err := store.Write(name, content); err != nil {
				return err
			}

			c.Logger.Info("theme imported", map[string]interface{}{"theme": name, "source": src})
			c.Console.Success().Printf("Imported %s as %s\n", src, name)
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "theme name (default file name without extension)")
	return cmd
}

func newThemesRemoveCmd(c *cli.Container) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "remove <name>",
		Aliases: []string{"rm"},
		Short:   "Delete a theme",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			if err := themes.ValidateName(name); err != nil {
				return err
			}

			if !yes {
				if err := survey.AskOne(&survey.Confirm{
					Message: fmt.Sprintf("Delete theme %q?", name),
					Default: false,
				}, &yes); err != nil {
					return err
				}
				if !yes {
					c.Console.Warning().Println("Nothing deleted")
					return nil
				}
			}

			if err := c.ThemeStore().Delete(name); err != nil {
				return describeThemeError(name, err)
			}

			c.Logger.Info("theme removed", map[string]interface{}{"theme": name})
			c.Console.Success().Printf("Removed %s\n", name)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "delete without asking for confirmation")
	return cmd
}

func describeThemeError(name string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("theme %q does not exist", name)
	}
	return err
}
