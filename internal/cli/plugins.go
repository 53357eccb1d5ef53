package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/LordGrimmauld/rmenu/internal/cache"
	"github.com/LordGrimmauld/rmenu/internal/config"
)

// newPluginsCmd creates the plugins command, which lists the configured
// plugins together with their cache policy and current cache state.
func newPluginsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "plugins",
		Short: "List configured plugins",
		Long:  "List every plugin from the configuration with its command, cache policy, and cached entry count.",
		Example: `  # Show the plugin table
  rmenu plugins`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, _, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			names := cfg.PluginNames()
			if len(names) == 0 {
				cmd.Println("No plugins configured.")
				return nil
			}

			store := openStore(cmd)

			const tabPadding = 2
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, tabPadding, ' ', 0)

			fmt.Fprintln(w, "Name\tExec\tCache\tState\tEntries")
			fmt.Fprintln(w, "----\t----\t-----\t-----\t-------")

			for _, name := range names {
				pc := cfg.Plugins[name]
				state, count := cacheState(store, name, pc.Cache)
				fmt.Fprintf(
					w,
					"%s\t%s\t%s\t%s\t%s\n",
					name,
					strings.Join(pc.Exec, " "),
					pc.Cache.String(),
					state,
					count,
				)
			}
			return w.Flush()
		},
	}
}

// cacheState probes the cached artifact for one plugin and renders the
// State and Entries columns.
func cacheState(store *cache.Store, name string, setting config.CacheSetting) (string, string) {
	entries, err := store.Read(name, setting)
	switch {
	case err == nil:
		return "fresh", strconv.Itoa(len(entries))
	case errors.Is(err, cache.ErrNotAvailable):
		return "missing", "-"
	case errors.Is(err, cache.ErrInvalidCache):
		return "disabled", "-"
	case errors.Is(err, cache.ErrCacheExpired):
		return "expired", "-"
	default:
		return "error", "-"
	}
}
