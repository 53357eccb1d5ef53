package cli_test

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LordGrimmauld/rmenu/internal/cache"
)

// cachedConfig builds a config with one never-expiring plugin and runs
// it once so an artifact exists beside the returned config path.
func cachedConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	script := writeScript(t, dir, "alpha", entryScript("Alpha"))
	cfgPath := writeConfigIn(t, dir, fmt.Sprintf(`plugins:
  alpha:
    exec: ["sh", %q]
    cache: never
`, script))

	_, err := runCLI(t, "run", "--config", cfgPath)
	require.NoError(t, err)
	return cfgPath
}

// TestCacheStatus_Empty verifies the message when nothing is cached.
func TestCacheStatus_Empty(t *testing.T) {
	cfgPath := writeConfig(t, "")

	out, err := runCLI(t, "cache", "status", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "No cached artifacts.")
}

// TestCacheStatus_ListsArtifacts verifies the artifact table after a
// cached run.
func TestCacheStatus_ListsArtifacts(t *testing.T) {
	cfgPath := cachedConfig(t)

	out, err := runCLI(t, "cache", "status", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Name")
	assert.Contains(t, out, "Modified")
	assert.Contains(t, out, "alpha")
}

// TestCacheClear_ByName verifies clearing a single plugin's artifact.
func TestCacheClear_ByName(t *testing.T) {
	cfgPath := cachedConfig(t)
	store := cache.NewStore(filepath.Dir(cfgPath))

	_, ok := store.Stat("alpha")
	require.True(t, ok, "artifact should exist before clearing")

	out, err := runCLI(t, "cache", "clear", "alpha", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Cleared 1 artifact(s).")

	_, ok = store.Stat("alpha")
	assert.False(t, ok, "artifact should be gone after clearing")
}

// TestCacheClear_UnknownNameIsFine verifies that clearing a name with
// no artifact succeeds, matching remove semantics.
func TestCacheClear_UnknownNameIsFine(t *testing.T) {
	cfgPath := writeConfig(t, "")

	out, err := runCLI(t, "cache", "clear", "neverran", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Cleared 1 artifact(s).")
}

// TestCacheClear_All verifies --all wipes every artifact.
func TestCacheClear_All(t *testing.T) {
	cfgPath := cachedConfig(t)
	store := cache.NewStore(filepath.Dir(cfgPath))

	out, err := runCLI(t, "cache", "clear", "--all", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Cleared all cached artifacts.")

	infos, err := store.List()
	require.NoError(t, err)
	assert.Empty(t, infos)
}

// TestCacheClear_ArgumentErrors verifies the two invalid invocation
// shapes.
func TestCacheClear_ArgumentErrors(t *testing.T) {
	cfgPath := writeConfig(t, "")

	_, err := runCLI(t, "cache", "clear", "--config", cfgPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name at least one plugin, or pass --all")

	_, err = runCLI(t, "cache", "clear", "--all", "alpha", "--config", cfgPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--all takes no plugin arguments")
}
