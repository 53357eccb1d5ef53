// Command rmenu-run is the reference rmenu plugin: it emits every
// executable on PATH as a run entry on stdout.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/LordGrimmauld/rmenu/plugins/pathbin"
)

func main() {
	logger := zerolog.New(os.Stderr).Level(zerolog.WarnLevel).With().Timestamp().Logger()

	src := pathbin.New(os.Getenv("PATH"), logger)
	if err := src.Emit(os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
