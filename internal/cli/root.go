// Package cli wires the rmenu commands together. Every command is
// built by a constructor so tests can execute fully isolated trees.
package cli

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/LordGrimmauld/rmenu/internal/logging"
)

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// NewRootCmd creates the root command for the rmenu CLI. It wires up
// logging and the run, exec, plugins, config, and cache subcommands.
func NewRootCmd(ver string) *cobra.Command {
	var logResult *logging.Result

	cmd := &cobra.Command{
		Use:     "rmenu",
		Short:   "Plugin-driven application launcher",
		Long:    "RMenu: run entry plugins, merge their streams, and launch whatever gets picked",
		Version: ver,
		Example: `  # Run every configured plugin and print the merged entry stream
  rmenu run

  # Run only the desktop-application plugin
  rmenu run drun

  # Merge a pre-built entry stream from stdin
  rmenu run --input -

  # Execute a command the way selecting an entry would
  rmenu exec --terminal htop

  # Show configured plugins and their cache state
  rmenu plugins

  # Write a default configuration file
  rmenu config init`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			logResult = setupLogging(cmd)
			return nil
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return cleanupLogging(logResult)
		},
	}

	cmd.PersistentFlags().String("config", "", "configuration file to use instead of the default")
	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().String("log-level", "", "log level (trace, debug, info, warn, error)")
	cmd.PersistentFlags().String("log-format", "", "log format (auto, console, json)")
	cmd.PersistentFlags().String("log-file", "", "also append JSON logs to this file")

	cmd.AddCommand(
		newRunCmd(), newExecCmd(), newPluginsCmd(),
		newConfigCmd(), newCacheCmd(), newVersionCmd(),
	)

	return cmd
}

// newConfigCmd creates the config command group.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration management commands"}
	cmd.AddCommand(newConfigInitCmd(), newConfigShowCmd(), newConfigValidateCmd())
	return cmd
}

// newCacheCmd creates the cache maintenance command group.
func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "cache", Short: "Cache maintenance commands"}
	cmd.AddCommand(newCacheStatusCmd(), newCacheClearCmd())
	return cmd
}
