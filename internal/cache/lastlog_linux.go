//go:build linux

package cache

import (
	"os"
	"time"
)

const lastlogPath = "/var/log/lastlog"

// lastLogin reads the current user's most recent login from the system
// lastlog database.
func lastLogin() (time.Time, error) {
	return readLastLogin(lastlogPath, os.Getuid())
}
