package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/LordGrimmauld/rmenu/internal/launch"
	"github.com/LordGrimmauld/rmenu/pkg/plugin"
)

// newExecCmd creates the exec command, which performs a method the way
// selecting an entry would: spawn detached, spawn inside the
// configured terminal, or echo a payload.
func newExecCmd() *cobra.Command {
	var (
		terminal  bool
		fromStdin bool
	)

	cmd := &cobra.Command{
		Use:   "exec [command...]",
		Short: "Execute a command the way entry selection would",
		Long: `Builds an action from the arguments and performs it. The command
arguments are joined into one command string; quote the whole command
when its own quoting matters. With --stdin, a JSON action object is
read from stdin instead, the form plugins embed in their entries.`,
		Example: `  # Spawn detached from the launcher
  rmenu exec firefox

  # Run inside the configured terminal emulator
  rmenu exec --terminal htop

  # Perform an action object produced by a plugin
  echo '{"name":"main","exec":{"echo":"hello"}}' | rmenu exec --stdin`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			action, err := execAction(cmd, args, terminal, fromStdin)
			if err != nil {
				return err
			}

			logger.Debug().
				Str("action", action.Name).
				Str("kind", string(action.Exec.Kind)).
				Msg("executing action")

			return launch.Run(*action, launch.Terminal(cfg.Terminal), cmd.OutOrStdout())
		},
	}

	cmd.Flags().BoolVarP(&terminal, "terminal", "t", false, "run the command inside the configured terminal")
	cmd.Flags().BoolVar(&fromStdin, "stdin", false, "read a JSON action object from stdin instead of arguments")

	return cmd
}

// execAction builds the action to perform from flags and arguments.
func execAction(cmd *cobra.Command, args []string, terminal, fromStdin bool) (*plugin.Action, error) {
	if fromStdin {
		if len(args) > 0 {
			return nil, errors.New("--stdin takes no command arguments")
		}
		var action plugin.Action
		if err := json.NewDecoder(cmd.InOrStdin()).Decode(&action); err != nil {
			return nil, fmt.Errorf("decoding action: %w", err)
		}
		return &action, nil
	}

	if len(args) == 0 {
		return nil, errors.New("no command given")
	}

	command := strings.Join(args, " ")
	return &plugin.Action{Name: plugin.DefaultAction, Exec: plugin.NewMethod(command, terminal)}, nil
}
