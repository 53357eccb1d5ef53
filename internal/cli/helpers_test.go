package cli_test

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/LordGrimmauld/rmenu/internal/cli"
)

// runCLI executes the full command tree with args and returns
// everything written to the command's output streams.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return runCLIInput(t, nil, args...)
}

// runCLIInput is runCLI with the command's stdin attached to in.
func runCLIInput(t *testing.T, in io.Reader, args ...string) (string, error) {
	t.Helper()
	t.Setenv("RMENU_LOG_LEVEL", "error")

	var buf bytes.Buffer
	cmd := cli.NewRootCmd("test")
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	if in != nil {
		cmd.SetIn(in)
	}
	cmd.SetArgs(args)

	err := cmd.Execute()
	return buf.String(), err
}

// writeConfig writes a config file into a fresh temp dir and returns
// its path, ready for --config. The cache store lives beside it.
func writeConfig(t *testing.T, content string) string {
	t.Helper()
	return writeConfigIn(t, t.TempDir(), content)
}

// writeConfigIn writes a config file into dir and returns its path.
func writeConfigIn(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// writeScript writes an executable shell script into dir and returns
// its path, the exec target for test plugins.
func writeScript(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name+".sh")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755))
	return path
}
