// Command rmenu runs entry plugins, merges their streams, and launches
// whatever the display layer reports as picked.
package main

import (
	"os"

	"github.com/LordGrimmauld/rmenu/internal/cli"
	"github.com/LordGrimmauld/rmenu/pkg/version"
)

func main() {
	os.Exit(run())
}

// run executes the root command and maps the result to a process exit
// code, so validation failures can exit with their own code.
func run() int {
	err := cli.NewRootCmd(version.GetVersion()).Execute()
	return cli.ExitCode(err)
}
