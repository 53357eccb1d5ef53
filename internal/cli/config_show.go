package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// newConfigShowCmd creates the config show command, which renders the
// effective configuration after defaults are applied.
func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Long: `Prints the configuration as YAML after merging the file over the
built-in defaults, the exact values every other command runs with.`,
		Example: `  # Show the effective configuration
  rmenu config show`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, path, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			data, err := yaml.Marshal(cfg)
			if err != nil {
				return fmt.Errorf("rendering config: %w", err)
			}

			cmd.Printf("# %s\n", path)
			cmd.Print(string(data))
			return nil
		},
	}
}
