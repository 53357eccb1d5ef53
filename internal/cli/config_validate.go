package cli

import (
	"github.com/spf13/cobra"

	"github.com/LordGrimmauld/rmenu/internal/config"
)

// validationExitCode is returned when the configuration fails to load
// or validate, distinct from the generic failure code.
const validationExitCode = 2

// newConfigValidateCmd creates the config validate command.
func newConfigValidateCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate the configuration file",
		Long: `Loads the configuration and checks its structural constraints:
page geometry, keybind syntax, plugin exec commands, and the option
overlays plugins are configured with. Exits with status 2 when the
configuration is unusable.`,
		Example: `  # Validate the default configuration
  rmenu config validate

  # Validate a specific file and show its summary
  rmenu config validate --config ./rmenu.yaml --verbose`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, path, err := loadConfig(cmd)
			if err != nil {
				return &ExitError{Code: validationExitCode, Err: err}
			}

			if err := cfg.Validate(); err != nil {
				return &ExitError{Code: validationExitCode, Err: err}
			}

			cmd.Printf("Configuration at %s is valid\n", path)

			if verbose {
				printConfigDetails(cmd, cfg)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show a configuration summary after validating")

	return cmd
}

// printConfigDetails prints a short summary of the validated config.
func printConfigDetails(cmd *cobra.Command, cfg *config.Config) {
	cmd.Println()
	cmd.Println("Configuration details:")
	cmd.Printf("  Page size: %d\n", cfg.PageSize)
	cmd.Printf("  Window title: %s\n", cfg.Window.Title)
	if cfg.Terminal != nil {
		cmd.Printf("  Terminal: %s\n", *cfg.Terminal)
	}

	if len(cfg.Plugins) == 0 {
		cmd.Println("  No plugins configured")
		return
	}
	cmd.Printf("  Configured plugins: %d\n", len(cfg.Plugins))
	for _, name := range cfg.PluginNames() {
		cmd.Printf("    - %s (cache: %s)\n", name, cfg.Plugins[name].Cache)
	}
}
