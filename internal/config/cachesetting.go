package config

import (
	"fmt"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// CacheMode selects how a plugin's cached entries age out.
type CacheMode int

const (
	// CacheDisabled skips the cache entirely, the default.
	CacheDisabled CacheMode = iota
	// CacheNever caches without ever expiring.
	CacheNever
	// CacheOnLogin expires cached entries at the login boundary.
	CacheOnLogin
	// CacheAfterSeconds expires cached entries after a fixed TTL.
	CacheAfterSeconds
)

// CacheSetting is a plugin's cache policy. The zero value is disabled.
type CacheSetting struct {
	Mode CacheMode
	// Seconds is the TTL, meaningful only for CacheAfterSeconds.
	Seconds int
}

// ParseCacheSetting parses the config-file scalar form: "never",
// "false"/"disable"/"disabled", "true"/"login"/"onlogin", or a bare
// non-negative integer of seconds.
func ParseCacheSetting(s string) (CacheSetting, error) {
	switch s {
	case "never":
		return CacheSetting{Mode: CacheNever}, nil
	case "false", "disable", "disabled":
		return CacheSetting{Mode: CacheDisabled}, nil
	case "true", "login", "onlogin":
		return CacheSetting{Mode: CacheOnLogin}, nil
	}
	secs, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return CacheSetting{}, fmt.Errorf("invalid cache setting: %q", s)
	}
	return CacheSetting{Mode: CacheAfterSeconds, Seconds: int(secs)}, nil
}

// Enabled reports whether the cache is consulted at all.
func (cs CacheSetting) Enabled() bool {
	return cs.Mode != CacheDisabled
}

// TTL returns the expiry duration for CacheAfterSeconds policies.
func (cs CacheSetting) TTL() time.Duration {
	return time.Duration(cs.Seconds) * time.Second
}

// String renders the canonical scalar form.
func (cs CacheSetting) String() string {
	switch cs.Mode {
	case CacheNever:
		return "never"
	case CacheOnLogin:
		return "onlogin"
	case CacheAfterSeconds:
		return strconv.Itoa(cs.Seconds)
	case CacheDisabled:
	}
	return "disabled"
}

// UnmarshalYAML parses the scalar form.
func (cs *CacheSetting) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := ParseCacheSetting(value.Value)
	if err != nil {
		return err
	}
	*cs = parsed
	return nil
}

// MarshalYAML renders the scalar form.
func (cs CacheSetting) MarshalYAML() (interface{}, error) {
	return cs.String(), nil
}
