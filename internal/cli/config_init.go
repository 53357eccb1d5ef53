package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/LordGrimmauld/rmenu/internal/config"
)

// newConfigInitCmd creates the config init command, which writes a
// configuration file populated with every default.
func newConfigInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a configuration file with default values",
		Long: `Creates a new configuration file with default values at the default
location, or wherever --config points.`,
		Example: `  # Create the default configuration
  rmenu config init

  # Recreate it, overwriting what is there
  rmenu config init --force`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := configPath(cmd)

			if !force {
				if _, err := os.Stat(path); err == nil {
					return errors.New("configuration file already exists, use --force to overwrite")
				} else if !os.IsNotExist(err) {
					return fmt.Errorf("cannot access config path %s: %w", path, err)
				}
			}

			if err := config.New().Save(path); err != nil {
				return fmt.Errorf("saving configuration: %w", err)
			}

			cmd.Printf("Configuration initialized at %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing configuration file")

	return cmd
}
