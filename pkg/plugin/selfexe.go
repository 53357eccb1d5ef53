package plugin

import (
	"fmt"
	"os"
)

// EnvSelfExe is the environment variable the host sets to its own
// executable path when spawning plugins.
const EnvSelfExe = "RMENU"

// SelfExe returns the absolute path of the running executable. Plugins
// bake it into entries that re-invoke themselves, so an unresolvable
// path is a startup invariant violation and panics.
func SelfExe() string {
	exe, err := os.Executable()
	if err != nil {
		panic(fmt.Sprintf("cannot resolve own executable: %v", err))
	}
	return exe
}
