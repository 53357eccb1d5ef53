package pathbin_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LordGrimmauld/rmenu/internal/pluginhost"
	"github.com/LordGrimmauld/rmenu/pkg/plugin"
	"github.com/LordGrimmauld/rmenu/plugins/pathbin"
)

// binDir creates a directory holding the named files, executable
// unless listed in plain.
func binDir(t *testing.T, execs []string, plain []string) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range execs {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("#!/bin/sh\n"), 0o755))
	}
	for _, name := range plain {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("data"), 0o644))
	}
	return dir
}

func entryNames(entries []plugin.Entry) []string {
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name)
	}
	return names
}

func TestScan(t *testing.T) {
	logger := zerolog.Nop()

	t.Run("SortedExecutablesOnly", func(t *testing.T) {
		dir := binDir(t, []string{"zig", "awk"}, []string{"README"})

		entries, err := pathbin.New(dir, logger).Scan()
		require.NoError(t, err)
		assert.Equal(t, []string{"awk", "zig"}, entryNames(entries))
	})

	t.Run("EarlierDirectoryWins", func(t *testing.T) {
		first := binDir(t, []string{"tool"}, nil)
		second := binDir(t, []string{"tool", "other"}, nil)
		path := strings.Join([]string{first, second}, string(os.PathListSeparator))

		entries, err := pathbin.New(path, logger).Scan()
		require.NoError(t, err)
		assert.Equal(t, []string{"other", "tool"}, entryNames(entries))
	})

	t.Run("SkipsMissingDirectories", func(t *testing.T) {
		dir := binDir(t, []string{"tool"}, nil)
		path := strings.Join([]string{filepath.Join(dir, "missing"), dir}, string(os.PathListSeparator))

		entries, err := pathbin.New(path, logger).Scan()
		require.NoError(t, err)
		assert.Equal(t, []string{"tool"}, entryNames(entries))
	})

	t.Run("SkipsSubdirectories", func(t *testing.T) {
		dir := binDir(t, []string{"tool"}, nil)
		require.NoError(t, os.MkdirAll(filepath.Join(dir, "subdir"), 0o755))

		entries, err := pathbin.New(dir, logger).Scan()
		require.NoError(t, err)
		assert.Equal(t, []string{"tool"}, entryNames(entries))
	})

	t.Run("EmptyPath", func(t *testing.T) {
		entries, err := pathbin.New("", logger).Scan()
		require.NoError(t, err)
		assert.Empty(t, entries)
	})
}

func TestEmit(t *testing.T) {
	dir := binDir(t, []string{"htop", "vi"}, nil)

	var buf bytes.Buffer
	require.NoError(t, pathbin.New(dir, zerolog.Nop()).Emit(&buf))

	res, err := pluginhost.ReadStream(&buf)
	require.NoError(t, err)

	assert.Equal(t, []string{"htop", "vi"}, entryNames(res.Entries))
	require.Len(t, res.Options, 1)
	require.NotNil(t, res.Options[0].Placeholder)
	assert.Equal(t, "Run a program", *res.Options[0].Placeholder)

	// entries launch by bare name, resolved through PATH at run time
	require.Len(t, res.Entries[0].Actions, 1)
	assert.Equal(t, plugin.MethodRun, res.Entries[0].Actions[0].Exec.Kind)
	assert.Equal(t, "htop", res.Entries[0].Actions[0].Exec.Command)
}
