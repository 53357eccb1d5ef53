//go:build !linux

package cache

import (
	"errors"
	"time"
)

// lastLogin has no lastlog database to consult off Linux, so login
// scoped caches never expire there.
func lastLogin() (time.Time, error) {
	return time.Time{}, errors.New("lastlog not supported on this platform")
}
