package cli

import (
	"github.com/spf13/cobra"

	"github.com/LordGrimmauld/rmenu/pkg/version"
)

// newVersionCmd creates the version command. Plugins receive the same
// string through RMENU_VERSION when they are spawned.
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the rmenu version",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Println(version.GetVersion())
		},
	}
}
