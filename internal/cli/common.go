package cli

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/LordGrimmauld/rmenu/internal/cache"
	"github.com/LordGrimmauld/rmenu/internal/config"
)

// loadConfig loads the config the command operates on, honoring the
// persistent --config flag.
func loadConfig(cmd *cobra.Command) (*config.Config, string, error) {
	path := configPath(cmd)
	cfg, err := config.Load(path)
	if err != nil {
		return nil, path, err
	}
	return cfg, path, nil
}

// configPath resolves the config file location for this invocation.
func configPath(cmd *cobra.Command) string {
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		return path
	}
	return config.DefaultPath()
}

// openStore returns the cache store living beside the config file.
func openStore(cmd *cobra.Command) *cache.Store {
	return cache.NewStore(filepath.Dir(configPath(cmd)))
}
