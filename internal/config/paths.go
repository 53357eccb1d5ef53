package config

import (
	"os"
	"path/filepath"
)

// EnvHome overrides the rmenu configuration directory.
const EnvHome = "RMENU_HOME"

// DefaultDir returns the rmenu configuration directory: $RMENU_HOME if
// set, otherwise rmenu under the user config dir.
func DefaultDir() string {
	if dir := os.Getenv(EnvHome); dir != "" {
		return dir
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return ".rmenu"
	}
	return filepath.Join(base, "rmenu")
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return filepath.Join(DefaultDir(), "config.yaml")
}

// EnsureDir creates dir if it does not exist yet.
func EnsureDir(dir string) error {
	return os.MkdirAll(dir, 0o750)
}
