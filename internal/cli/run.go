package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/LordGrimmauld/rmenu/internal/config"
	"github.com/LordGrimmauld/rmenu/internal/pluginhost"
	"github.com/LordGrimmauld/rmenu/pkg/plugin"
)

// newRunCmd creates the run command, the launcher's main pipeline: run
// entry sources, merge their streams, and print the result as one
// entry per line for the display layer to consume.
func newRunCmd() *cobra.Command {
	var (
		input   string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "run [plugin...]",
		Short: "Run entry sources and print the merged entry stream",
		Long: `Runs the named plugins, or every configured plugin when none are
named, and prints the merged entries one JSON object per line. Option
overlays the plugins emit are folded into the effective config before
anything is printed.`,
		Example: `  # Run every configured plugin
  rmenu run

  # Run two plugins, entries merged in the given order
  rmenu run drun run

  # Merge a pre-built message stream instead of running plugins
  rmenu run --input entries.json
  rmenu run --input -`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			if noCache {
				disableCaches(cfg)
			}

			host := pluginhost.New(cfg, openStore(cmd))

			var result *pluginhost.Result
			if input != "" {
				result, err = runFromInput(cmd, host, input)
			} else {
				var names []string
				if len(args) > 0 {
					names = args
				}
				result, err = host.Run(cmd.Context(), names)
			}
			if err != nil {
				return err
			}

			logger.Debug().
				Int("entries", len(result.Entries)).
				Int("sources", len(result.Sources)).
				Msg("run finished")

			enc := plugin.NewEncoder(cmd.OutOrStdout())
			for _, entry := range result.Entries {
				if err := enc.Entry(entry); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", `read a message stream from a file, or "-" for stdin`)
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "ignore cached entries and run every plugin")

	return cmd
}

// disableCaches turns every plugin's cache policy off for this run, so
// reads miss and writes are no-ops.
func disableCaches(cfg *config.Config) {
	for name, pc := range cfg.Plugins {
		pc.Cache = config.CacheSetting{}
		cfg.Plugins[name] = pc
	}
}

func runFromInput(cmd *cobra.Command, host *pluginhost.Host, input string) (*pluginhost.Result, error) {
	if input == "-" {
		return host.RunInput(cmd.Context(), "stdin", cmd.InOrStdin())
	}

	file, err := os.Open(input)
	if err != nil {
		return nil, fmt.Errorf("opening input: %w", err)
	}
	defer file.Close()

	return host.RunInput(cmd.Context(), input, file)
}
