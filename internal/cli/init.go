// Package cli provides the command-line interface for wslkit.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wslkit/wslkit/internal/config"
)

// AddInitCommand adds the init command to the root command.
// It writes a default config file the user can edit.
func AddInitCommand(rootCmd *cobra.Command, gf *GlobalFlags) {
	var project bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default configuration file",
		Long: `Init writes a config file populated with the default kernel repository,
branch, destination, and build settings. By default the file goes to the
global location (~/.wslkit/config.yaml); with --project it goes to
.wslkit/config.yaml in the current directory instead.

Existing files are never overwritten.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, gf, project)
		},
	}

	cmd.Flags().BoolVar(&project, "project", false, "write a project-local config instead of the global one")

	rootCmd.AddCommand(cmd)
}

// runInit writes the default config to the selected location.
func runInit(cmd *cobra.Command, gf *GlobalFlags, project bool) error {
	out := outputForCommand(cmd, gf)

	path := config.ProjectConfigPath()
	if !project {
		globalPath, err := config.GlobalConfigPath()
		if err != nil {
			return err
		}
		path = globalPath
	}

	if err := config.WriteDefault(path); err != nil {
		return err
	}

	out.Success(fmt.Sprintf("wrote default config to %s", path))
	return nil
}
