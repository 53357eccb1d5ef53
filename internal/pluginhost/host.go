// Package pluginhost runs configured entry sources and merges their
// streams into one result. Plugins execute concurrently, but their
// entries and option overlays apply strictly in invocation order, so a
// run is deterministic no matter which plugin answers first.
package pluginhost

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/LordGrimmauld/rmenu/internal/cache"
	"github.com/LordGrimmauld/rmenu/internal/config"
	"github.com/LordGrimmauld/rmenu/internal/logging"
	"github.com/LordGrimmauld/rmenu/pkg/plugin"
)

// SourceResult is everything one entry source produced, in stream
// order.
type SourceResult struct {
	Name    string
	Entries []plugin.Entry
	// Options are the overlays the source streamed, in arrival order.
	// Cached results never carry options; only entries are cached.
	Options   []*plugin.Options
	FromCache bool
}

// Result is the merged outcome of one run.
type Result struct {
	// Entries are every source's entries, concatenated in invocation
	// order.
	Entries []plugin.Entry
	// Sources records the per-source breakdown, in invocation order.
	Sources []SourceResult
}

// Host resolves, runs, and merges entry sources against one config.
type Host struct {
	cfg   *config.Config
	store *cache.Store
}

// New returns a host over cfg whose cache traffic goes through store.
func New(cfg *config.Config, store *cache.Store) *Host {
	return &Host{cfg: cfg, store: store}
}

// Run executes the named plugins and merges what they produce. A nil
// names slice means every configured plugin in sorted order. Unknown
// names fail before anything spawns.
//
// Run mutates the host's config: configured and streamed option
// overlays become part of the run's effective config. Overlays that
// fail to parse are logged and skipped rather than aborting the run.
func (h *Host) Run(ctx context.Context, names []string) (*Result, error) {
	if names == nil {
		names = h.cfg.PluginNames()
	}

	sources := make([]config.PluginConfig, len(names))
	for i, name := range names {
		pc, ok := h.cfg.Plugins[name]
		if !ok {
			return nil, fmt.Errorf("unknown plugin %q", name)
		}
		sources[i] = pc
	}

	results := make([]*SourceResult, len(names))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(runtime.NumCPU())

	for i, name := range names {
		i, name := i, name
		group.Go(func() error {
			res, err := h.runSource(groupCtx, name, sources[i])
			if err != nil {
				return fmt.Errorf("plugin %s: %w", name, err)
			}
			results[i] = res
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	merged := &Result{Sources: make([]SourceResult, 0, len(results))}
	for i, res := range results {
		h.applyOverlays(ctx, res, sources[i])
		merged.Entries = append(merged.Entries, res.Entries...)
		merged.Sources = append(merged.Sources, *res)
	}

	return merged, nil
}

// RunInput merges a pre-produced message stream, applying its option
// overlays the same way a live plugin's are applied.
func (h *Host) RunInput(ctx context.Context, name string, r io.Reader) (*Result, error) {
	res, err := ReadStream(r)
	if err != nil {
		return nil, fmt.Errorf("input %s: %w", name, err)
	}
	res.Name = name

	h.applyOverlays(ctx, res, config.PluginConfig{})

	return &Result{Entries: res.Entries, Sources: []SourceResult{*res}}, nil
}

// applyOverlays folds one source's configured and streamed options
// into the host's config, configured options first so streamed ones
// win. Bad overlays are skipped; config.Update guarantees a skipped
// overlay left nothing half-applied.
func (h *Host) applyOverlays(ctx context.Context, res *SourceResult, pc config.PluginConfig) {
	log := logging.ComponentLogger(*logging.FromContext(ctx), "pluginhost")

	if err := h.cfg.Update(pc.Options); err != nil {
		log.Warn().Err(err).Str("plugin", res.Name).Msg("ignoring invalid configured options")
	}
	if pc.Placeholder != nil {
		h.cfg.Search.Placeholder = pc.Placeholder
	}

	for _, o := range res.Options {
		if err := h.cfg.Update(o); err != nil {
			log.Warn().Err(err).Str("plugin", res.Name).Msg("ignoring invalid options message")
		}
	}
}

// ReadStream consumes a message stream to EOF, splitting it into
// entries and option overlays in arrival order.
func ReadStream(r io.Reader) (*SourceResult, error) {
	res := &SourceResult{}
	dec := plugin.NewDecoder(r)
	for {
		msg, err := dec.Decode()
		if errors.Is(err, io.EOF) {
			return res, nil
		}
		if err != nil {
			return res, err
		}
		switch {
		case msg.Entry != nil:
			res.Entries = append(res.Entries, *msg.Entry)
		case msg.Options != nil:
			res.Options = append(res.Options, msg.Options)
		}
	}
}
