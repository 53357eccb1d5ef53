package pluginhost

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/rs/zerolog"

	"github.com/LordGrimmauld/rmenu/internal/cache"
	"github.com/LordGrimmauld/rmenu/internal/config"
	"github.com/LordGrimmauld/rmenu/internal/logging"
	"github.com/LordGrimmauld/rmenu/pkg/plugin"
	"github.com/LordGrimmauld/rmenu/pkg/version"
)

// EnvVersion is set on spawned plugins so they can adapt to the host
// version.
const EnvVersion = "RMENU_VERSION"

// processWaitDelay bounds how long Wait lingers on plugin I/O after the
// context kills the process.
const processWaitDelay = 100 * time.Millisecond

// runSource answers from the cache when the plugin's setting allows it,
// otherwise runs the plugin process and caches what it produced.
func (h *Host) runSource(ctx context.Context, name string, pc config.PluginConfig) (*SourceResult, error) {
	log := logging.ComponentLogger(*logging.FromContext(ctx), "pluginhost")

	entries, err := h.store.Read(name, pc.Cache)
	if err == nil {
		log.Debug().
			Str("plugin", name).
			Int("entries", len(entries)).
			Msg("serving entries from cache")
		return &SourceResult{Name: name, Entries: entries, FromCache: true}, nil
	}
	logCacheMiss(&log, name, err)

	res, err := h.runProcess(ctx, name, pc)
	if err != nil {
		return nil, err
	}

	if writeErr := h.store.Write(name, pc.Cache, res.Entries); writeErr != nil {
		log.Warn().
			Err(writeErr).
			Str("plugin", name).
			Msg("failed to cache plugin entries")
	}

	return res, nil
}

// runProcess spawns the plugin and consumes its message stream until
// the stream ends and the process exits.
func (h *Host) runProcess(ctx context.Context, name string, pc config.PluginConfig) (*SourceResult, error) {
	log := logging.ComponentLogger(*logging.FromContext(ctx), "pluginhost")

	if len(pc.Exec) == 0 {
		return nil, errors.New("no exec command configured")
	}

	//nolint:gosec // the exec command comes from the user's own config
	cmd := exec.CommandContext(ctx, pc.Exec[0], pc.Exec[1:]...)
	cmd.Env = append(os.Environ(),
		plugin.EnvSelfExe+"="+hostExecutable(),
		EnvVersion+"="+version.GetVersion(),
	)
	cmd.Stderr = os.Stderr
	// Set WaitDelay before Start so a killed plugin cannot wedge Wait
	// on its open pipes.
	cmd.WaitDelay = processWaitDelay

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("opening stdout pipe: %w", err)
	}

	log.Debug().
		Str("plugin", name).
		Strs("exec", pc.Exec).
		Msg("starting plugin process")

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("starting plugin: %w", err)
	}

	res, decodeErr := ReadStream(stdout)
	res.Name = name
	if decodeErr != nil {
		// Unblock a plugin still writing before reaping it.
		_, _ = io.Copy(io.Discard, stdout)
	}

	waitErr := cmd.Wait()

	if decodeErr != nil {
		return nil, fmt.Errorf("reading plugin stream: %w", decodeErr)
	}
	if waitErr != nil {
		return nil, fmt.Errorf("plugin exited: %w", waitErr)
	}

	log.Debug().
		Str("plugin", name).
		Int("entries", len(res.Entries)).
		Int("options", len(res.Options)).
		Msg("plugin finished")

	return res, nil
}

// logCacheMiss keeps expected misses quiet and makes real failures
// visible.
func logCacheMiss(log *zerolog.Logger, name string, err error) {
	switch {
	case errors.Is(err, cache.ErrNotAvailable),
		errors.Is(err, cache.ErrInvalidCache),
		errors.Is(err, cache.ErrCacheExpired):
		log.Debug().Err(err).Str("plugin", name).Msg("cache not used")
	default:
		log.Warn().Err(err).Str("plugin", name).Msg("cache read failed")
	}
}

// hostExecutable is the path handed to plugins via the self-exe
// environment variable.
func hostExecutable() string {
	exe, err := os.Executable()
	if err != nil {
		return os.Args[0]
	}
	return exe
}
