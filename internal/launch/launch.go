// Package launch turns plugin methods into running processes. Spawned
// commands are released immediately so they outlive the launcher.
package launch

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	shellwords "github.com/mattn/go-shellwords"

	"github.com/LordGrimmauld/rmenu/pkg/plugin"
)

// ErrNoTerminal means a terminal method was selected but no terminal
// emulator is configured.
var ErrNoTerminal = errors.New("no terminal emulator configured")

// Terminal resolves the terminal emulator wrapped around terminal
// methods: the configured one when set, else the TERMINAL environment
// variable.
func Terminal(configured *string) string {
	if configured != nil && *configured != "" {
		return *configured
	}
	return os.Getenv("TERMINAL")
}

// Argv builds the command line for a run or terminal method. The
// command string is split with shell quoting rules; terminal methods
// instead run unsplit under sh inside the emulator. Echo methods have
// no command line.
func Argv(method plugin.Method, terminal string) ([]string, error) {
	switch method.Kind {
	case plugin.MethodRun:
		argv, err := shellwords.Parse(method.Command)
		if err != nil {
			return nil, fmt.Errorf("parsing command %q: %w", method.Command, err)
		}
		if len(argv) == 0 {
			return nil, fmt.Errorf("empty command %q", method.Command)
		}
		return argv, nil

	case plugin.MethodTerminal:
		if terminal == "" {
			return nil, ErrNoTerminal
		}
		return []string{terminal, "-e", "sh", "-c", method.Command}, nil

	case plugin.MethodEcho:
		return nil, errors.New("echo methods have no command line")

	default:
		return nil, fmt.Errorf("unknown method kind %q", string(method.Kind))
	}
}

// Run performs an action: echo methods print their payload to out, run
// and terminal methods spawn their command and detach from it.
func Run(action plugin.Action, terminal string, out io.Writer) error {
	if action.Exec.Kind == plugin.MethodEcho {
		_, err := fmt.Fprintln(out, action.Exec.Command)
		return err
	}

	argv, err := Argv(action.Exec, terminal)
	if err != nil {
		return err
	}

	cmd := exec.Command(argv[0], argv[1:]...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("starting %s: %w", argv[0], err)
	}

	return cmd.Process.Release()
}
