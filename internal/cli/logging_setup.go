package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/LordGrimmauld/rmenu/internal/logging"
)

// Environment overrides for logging, weaker than explicit flags.
const (
	EnvLogLevel  = "RMENU_LOG_LEVEL"
	EnvLogFormat = "RMENU_LOG_FORMAT"
)

// setupLogging builds the logger from flags and environment, attaches
// it plus a fresh run ID to the command context, and returns the
// result for teardown.
func setupLogging(cmd *cobra.Command) *logging.Result {
	cfg := logging.Config{Level: "info", Format: logging.FormatAuto}

	if env := os.Getenv(EnvLogLevel); env != "" {
		cfg.Level = env
	}
	if env := os.Getenv(EnvLogFormat); env != "" {
		cfg.Format = env
	}
	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.Level = level
	}
	if format, _ := cmd.Flags().GetString("log-format"); format != "" {
		cfg.Format = format
	}
	cfg.File, _ = cmd.Flags().GetString("log-file")

	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		cfg.Level = "debug"
		cfg.Format = logging.FormatConsole
	}

	result := logging.New(cfg)
	if result.FallbackReason != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: logging to stderr only: %s\n", result.FallbackReason)
	}

	runID := logging.NewRunID()
	logger = logging.ComponentLogger(result.Logger, "cli").
		With().Str("run_id", runID).Logger()

	ctx := logging.ContextWithRunID(cmd.Context(), runID)
	ctx = logger.WithContext(ctx)
	cmd.SetContext(ctx)

	logger.Debug().Str("command", cmd.Name()).Msg("command started")

	return result
}

// cleanupLogging releases the log file handle, if any.
func cleanupLogging(result *logging.Result) error {
	if result == nil {
		return nil
	}
	return result.Close()
}
