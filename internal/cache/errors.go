package cache

import "errors"

// Read outcomes callers branch on.
var (
	// ErrNotAvailable means no artifact exists on disk. It wins over
	// every policy, including disabled ones.
	ErrNotAvailable = errors.New("cache not available")
	// ErrInvalidCache means the plugin's policy disables caching.
	ErrInvalidCache = errors.New("cache invalid")
	// ErrCacheExpired means the artifact exists but its policy aged it
	// out.
	ErrCacheExpired = errors.New("cache expired")
)

// FileError wraps a filesystem failure during cache access.
type FileError struct {
	Err error
}

func (e *FileError) Error() string {
	return "cache file error: " + e.Err.Error()
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// EncodingError wraps an artifact encode or decode failure.
type EncodingError struct {
	Err error
}

func (e *EncodingError) Error() string {
	return "cache encoding error: " + e.Err.Error()
}

func (e *EncodingError) Unwrap() error {
	return e.Err
}
