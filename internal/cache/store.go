// Package cache persists plugin entry lists between runs so slow
// plugins can answer from disk. Each plugin owns one artifact file;
// the plugin's cache setting decides when that artifact is still
// trustworthy.
package cache

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/LordGrimmauld/rmenu/internal/config"
	"github.com/LordGrimmauld/rmenu/pkg/plugin"
)

const artifactExtension = ".cache"

// Store reads and writes per-plugin artifacts under a single
// directory. Thread-safe for concurrent access.
type Store struct {
	// directory holds one artifact per plugin.
	directory string

	// now and lastLogin are swapped out by tests.
	now       func() time.Time
	lastLogin func() (time.Time, error)

	mu sync.RWMutex
}

// NewStore creates a store rooted at directory. The directory is
// created lazily on the first write.
func NewStore(directory string) *Store {
	return &Store{
		directory: directory,
		now:       time.Now,
		lastLogin: lastLogin,
	}
}

// Dir returns the directory artifacts live in.
func (s *Store) Dir() string {
	return s.directory
}

// Path returns the artifact path for the named plugin.
func (s *Store) Path(name string) string {
	return filepath.Join(s.directory, nameToFileName(name))
}

// Read returns the cached entries for the named plugin if its setting
// still trusts them. A missing artifact is ErrNotAvailable regardless
// of the setting; a present artifact under a disabled setting is
// ErrInvalidCache; a stale one is ErrCacheExpired. Filesystem and
// decode failures come back as *FileError and *EncodingError.
func (s *Store) Read(name string, setting config.CacheSetting) ([]plugin.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	path := s.Path(name)

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotAvailable
		}
		return nil, &FileError{Err: err}
	}

	if err := s.checkFresh(info.ModTime(), setting); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &FileError{Err: err}
	}

	return decodeArtifact(data)
}

// Write stores entries for the named plugin. Disabled settings make
// this a no-op so short-lived runs never leave artifacts behind. The
// artifact is written to a temp file and renamed into place, so
// readers only ever see complete artifacts.
func (s *Store) Write(name string, setting config.CacheSetting, entries []plugin.Entry) error {
	if !setting.Enabled() {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := encodeArtifact(entries)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(s.directory, 0o750); err != nil {
		return &FileError{Err: err}
	}

	path := s.Path(name)
	tempPath := path + ".tmp"

	if err := os.WriteFile(tempPath, data, 0o600); err != nil {
		return &FileError{Err: err}
	}

	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return &FileError{Err: err}
	}

	return nil
}

// Clear removes the named plugin's artifact. Clearing an absent
// artifact is not an error.
func (s *Store) Clear(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.Path(name))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return &FileError{Err: err}
	}
	return nil
}

// ClearAll removes every artifact in the store's directory. Files
// without the artifact extension are left alone.
func (s *Store) ClearAll() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dirEntries, err := os.ReadDir(s.directory)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return &FileError{Err: err}
	}

	for _, dirEntry := range dirEntries {
		if dirEntry.IsDir() || !strings.HasSuffix(dirEntry.Name(), artifactExtension) {
			continue
		}
		if err := os.Remove(filepath.Join(s.directory, dirEntry.Name())); err != nil {
			return &FileError{Err: err}
		}
	}

	return nil
}

// Info describes one artifact on disk.
type Info struct {
	// Name is the plugin name recovered from the file name.
	Name string
	// Path is the artifact's absolute location.
	Path string
	// Size is the artifact's size in bytes.
	Size int64
	// Modified is the artifact's last write time.
	Modified time.Time
}

// Stat reports the named plugin's artifact. The second return is
// false when no artifact exists.
func (s *Store) Stat(name string) (Info, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	path := s.Path(name)
	fileInfo, err := os.Stat(path)
	if err != nil {
		return Info{}, false
	}

	return Info{
		Name:     name,
		Path:     path,
		Size:     fileInfo.Size(),
		Modified: fileInfo.ModTime(),
	}, true
}

// List returns every artifact in the store's directory sorted by
// name, including ones for plugins no longer configured.
func (s *Store) List() ([]Info, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	dirEntries, err := os.ReadDir(s.directory)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, &FileError{Err: err}
	}

	infos := make([]Info, 0, len(dirEntries))
	for _, dirEntry := range dirEntries {
		if dirEntry.IsDir() || !strings.HasSuffix(dirEntry.Name(), artifactExtension) {
			continue
		}
		fileInfo, err := dirEntry.Info()
		if err != nil {
			continue
		}
		infos = append(infos, Info{
			Name:     strings.TrimSuffix(dirEntry.Name(), artifactExtension),
			Path:     filepath.Join(s.directory, dirEntry.Name()),
			Size:     fileInfo.Size(),
			Modified: fileInfo.ModTime(),
		})
	}

	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })

	return infos, nil
}

// checkFresh decides whether an artifact written at modified is still
// trustworthy under setting.
func (s *Store) checkFresh(modified time.Time, setting config.CacheSetting) error {
	switch setting.Mode {
	case config.CacheNever:
		return nil

	case config.CacheOnLogin:
		login, err := s.lastLogin()
		if err != nil {
			// Login time unknown, keep serving the artifact.
			return nil
		}
		if !modified.After(login) {
			return ErrCacheExpired
		}
		return nil

	case config.CacheAfterSeconds:
		age := s.now().Sub(modified)
		if age < 0 {
			age = 0
		}
		if age >= setting.TTL() {
			return ErrCacheExpired
		}
		return nil

	default:
		return ErrInvalidCache
	}
}

// nameToFileName converts a plugin name to a safe file name by
// replacing path separators and other problematic characters.
func nameToFileName(name string) string {
	safe := name
	safe = strings.ReplaceAll(safe, "/", "_")
	safe = strings.ReplaceAll(safe, "\\", "_")
	safe = strings.ReplaceAll(safe, ":", "_")
	return safe + artifactExtension
}
