// Package pathbin implements the reference rmenu entry source: every
// executable on PATH, presented as run entries. It demonstrates the
// producer side of the plugin protocol the way a standalone plugin
// binary would use it.
package pathbin

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/rs/zerolog"

	"github.com/LordGrimmauld/rmenu/pkg/plugin"
)

// Source scans a PATH-style directory list for executables.
type Source struct {
	path   string
	logger zerolog.Logger
}

// New creates a source scanning path, a PATH-style list of
// directories.
func New(path string, logger zerolog.Logger) *Source {
	return &Source{
		path:   path,
		logger: logger.With().Str("component", "pathbin").Logger(),
	}
}

// Scan returns one entry per distinct executable name, sorted. When
// several directories carry the same name, the earliest wins, matching
// shell resolution. Unreadable directories are skipped.
func (s *Source) Scan() ([]plugin.Entry, error) {
	seen := map[string]bool{}

	for _, dir := range filepath.SplitList(s.path) {
		if dir == "" {
			continue
		}
		files, err := os.ReadDir(dir)
		if err != nil {
			s.logger.Debug().Str("dir", dir).Err(err).Msg("skipping unreadable path entry")
			continue
		}
		for _, file := range files {
			name := file.Name()
			if seen[name] {
				continue
			}
			info, err := os.Stat(filepath.Join(dir, name))
			if err != nil || info.IsDir() || info.Mode()&0111 == 0 {
				continue
			}
			seen[name] = true
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)

	entries := make([]plugin.Entry, 0, len(names))
	for _, name := range names {
		entries = append(entries, plugin.NewEntry(name, name, nil))
	}

	s.logger.Debug().Int("entries", len(entries)).Msg("scanned path")
	return entries, nil
}

// Emit scans and streams the result to w: an options header naming the
// search placeholder, then one entry per line.
func (s *Source) Emit(w io.Writer) error {
	entries, err := s.Scan()
	if err != nil {
		return err
	}

	enc := plugin.NewEncoder(w)
	if err := enc.Options(plugin.Options{Placeholder: plugin.String("Run a program")}); err != nil {
		return fmt.Errorf("writing options: %w", err)
	}
	for _, entry := range entries {
		if err := enc.Entry(entry); err != nil {
			return fmt.Errorf("writing entry %s: %w", entry.Name, err)
		}
	}
	return nil
}
