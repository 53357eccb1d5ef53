// Package config holds the launcher configuration: file-backed settings,
// keybind parsing, cache policies, and the overlay engine plugins use to
// adjust the running config.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/LordGrimmauld/rmenu/pkg/plugin"
)

// SearchConfig controls the display collaborator's search behavior.
type SearchConfig struct {
	// Restrict is a character allow-pattern for search input.
	Restrict  *string `yaml:"restrict,omitempty"`
	MinLength *int    `yaml:"min_length,omitempty"`
	MaxLength *int    `yaml:"max_length,omitempty"`
	// Placeholder is shown in the empty search box.
	Placeholder *string `yaml:"placeholder,omitempty"`
	UseRegex    bool    `yaml:"use_regex"`
	IgnoreCase  bool    `yaml:"ignore_case"`
}

// KeyConfig assigns keybinds to the launcher's actions. Slots may hold
// several alternative binds, or none to leave an action unbound.
type KeyConfig struct {
	Exec      []Keybind `yaml:"exec"`
	Exit      []Keybind `yaml:"exit"`
	MoveNext  []Keybind `yaml:"move_next"`
	MovePrev  []Keybind `yaml:"move_prev"`
	OpenMenu  []Keybind `yaml:"open_menu"`
	CloseMenu []Keybind `yaml:"close_menu"`
	JumpNext  []Keybind `yaml:"jump_next"`
	JumpPrev  []Keybind `yaml:"jump_prev"`
}

// Size is a window size in logical pixels.
type Size struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Position is a window position in logical pixels.
type Position struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// WindowConfig describes the window the display collaborator should
// open. rmenu itself never renders it.
type WindowConfig struct {
	Title       string   `yaml:"title"`
	Size        Size     `yaml:"size"`
	Position    Position `yaml:"position"`
	Focus       bool     `yaml:"focus"`
	Decorate    bool     `yaml:"decorate"`
	Transparent bool     `yaml:"transparent"`
	AlwaysTop   bool     `yaml:"always_top"`
	Fullscreen  *bool    `yaml:"fullscreen,omitempty"`
	DarkMode    *bool    `yaml:"dark_mode,omitempty"`
}

// PluginConfig wires one entry source into the launcher.
type PluginConfig struct {
	// Exec is the argv to spawn, first element the binary.
	Exec []string `yaml:"exec"`
	// Cache is the entry cache policy, disabled by default.
	Cache CacheSetting `yaml:"cache,omitempty"`
	// Placeholder overrides the search placeholder while this plugin
	// is active.
	Placeholder *string `yaml:"placeholder,omitempty"`
	// Options is a persistent overlay applied whenever the plugin is
	// part of the run set, before anything the plugin streams.
	Options *plugin.Options `yaml:"options,omitempty"`
}

// Config is the complete launcher configuration.
type Config struct {
	PageSize    int                     `yaml:"page_size"`
	PageLoad    float64                 `yaml:"page_load"`
	JumpDist    int                     `yaml:"jump_dist"`
	UseIcons    bool                    `yaml:"use_icons"`
	UseComments bool                    `yaml:"use_comments"`
	Search      SearchConfig            `yaml:"search"`
	Plugins     map[string]PluginConfig `yaml:"plugins"`
	Keybinds    KeyConfig               `yaml:"keybinds"`
	Window      WindowConfig            `yaml:"window"`
	// CSS is a stylesheet path handed to the display collaborator.
	CSS *string `yaml:"css,omitempty"`
	// Terminal is the emulator wrapped around terminal methods.
	Terminal *string `yaml:"terminal,omitempty"`
}

// New returns a Config with every default populated.
func New() *Config {
	return &Config{
		PageSize:    50,
		PageLoad:    0.8,
		JumpDist:    5,
		UseIcons:    true,
		UseComments: true,
		Search: SearchConfig{
			UseRegex:   true,
			IgnoreCase: true,
		},
		Plugins: map[string]PluginConfig{},
		Keybinds: KeyConfig{
			Exec:     []Keybind{NewKeybind("Enter")},
			Exit:     []Keybind{NewKeybind("Escape")},
			MoveNext: []Keybind{NewKeybind("ArrowUp")},
			MovePrev: []Keybind{NewKeybind("ArrowDown")},
			JumpNext: []Keybind{NewKeybind("PageDown")},
			JumpPrev: []Keybind{NewKeybind("PageUp")},
		},
		Window: WindowConfig{
			Title:     "RMenu - App Launcher",
			Size:      Size{Width: 700, Height: 400},
			Position:  Position{X: 100, Y: 100},
			Focus:     true,
			AlwaysTop: true,
		},
	}
}

// Load reads a YAML config from path, decoded over the defaults so
// absent keys keep their default values. A missing file yields the
// defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := New()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if cfg.Plugins == nil {
		cfg.Plugins = map[string]PluginConfig{}
	}
	return cfg, nil
}

// Save writes the config as YAML, creating parent directories.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("rendering config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config %s: %w", path, err)
	}
	return nil
}

// PluginNames returns the configured plugin names in sorted order, the
// iteration order used everywhere plugins run without an explicit list.
func (c *Config) PluginNames() []string {
	names := make([]string, 0, len(c.Plugins))
	for name := range c.Plugins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Validate checks the structural constraints a usable config must meet.
func (c *Config) Validate() error {
	if c.PageSize < 1 {
		return fmt.Errorf("page_size must be at least 1, got %d", c.PageSize)
	}
	if c.PageLoad <= 0 || c.PageLoad > 1 {
		return fmt.Errorf("page_load must be within (0, 1], got %v", c.PageLoad)
	}
	if c.JumpDist < 1 {
		return fmt.Errorf("jump_dist must be at least 1, got %d", c.JumpDist)
	}
	for _, name := range c.PluginNames() {
		pc := c.Plugins[name]
		if len(pc.Exec) == 0 {
			return fmt.Errorf("plugin %q has no exec command", name)
		}
		if pc.Options != nil {
			if _, err := c.stageKeybinds(pc.Options); err != nil {
				return fmt.Errorf("plugin %q options: %w", name, err)
			}
		}
	}
	return nil
}
