package cli

import (
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

// newCacheStatusCmd creates the cache status command, which lists the
// cached artifacts on disk.
func newCacheStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "List cached plugin artifacts",
		Example: `  # Show what is cached and how old it is
  rmenu cache status`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store := openStore(cmd)

			infos, err := store.List()
			if err != nil {
				return fmt.Errorf("listing cache: %w", err)
			}

			if len(infos) == 0 {
				cmd.Println("No cached artifacts.")
				return nil
			}

			const tabPadding = 2
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, tabPadding, ' ', 0)

			fmt.Fprintln(w, "Name\tSize\tModified")
			fmt.Fprintln(w, "----\t----\t--------")

			for _, info := range infos {
				fmt.Fprintf(w, "%s\t%d\t%s\n", info.Name, info.Size, info.Modified.Format(time.RFC3339))
			}
			return w.Flush()
		},
	}
}

// newCacheClearCmd creates the cache clear command, which removes
// cached artifacts by plugin name or all at once.
func newCacheClearCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "clear [plugin...]",
		Short: "Remove cached plugin artifacts",
		Example: `  # Clear one plugin's cached entries
  rmenu cache clear drun

  # Clear everything
  rmenu cache clear --all`,
		RunE: func(cmd *cobra.Command, args []string) error {
			store := openStore(cmd)

			if all {
				if len(args) > 0 {
					return errors.New("--all takes no plugin arguments")
				}
				if err := store.ClearAll(); err != nil {
					return fmt.Errorf("clearing cache: %w", err)
				}
				cmd.Println("Cleared all cached artifacts.")
				return nil
			}

			if len(args) == 0 {
				return errors.New("name at least one plugin, or pass --all")
			}

			for _, name := range args {
				if err := store.Clear(name); err != nil {
					return fmt.Errorf("clearing cache for %s: %w", name, err)
				}
			}
			cmd.Printf("Cleared %d artifact(s).\n", len(args))
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "clear every cached artifact")

	return cmd
}
