package config

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Modifiers is the set of modifier keys held with a keybind.
type Modifiers uint8

const (
	// ModAlt is the alt modifier.
	ModAlt Modifiers = 1 << iota
	// ModCtrl is the control modifier.
	ModCtrl
	// ModShift is the shift modifier.
	ModShift
	// ModSuper is the super (logo) modifier.
	ModSuper
)

// Has reports whether every modifier in mod is set.
func (m Modifiers) Has(mod Modifiers) bool {
	return m&mod == mod
}

// String renders the set modifiers in Ctrl+Alt+Shift+Super order.
func (m Modifiers) String() string {
	var parts []string
	if m.Has(ModCtrl) {
		parts = append(parts, "Ctrl")
	}
	if m.Has(ModAlt) {
		parts = append(parts, "Alt")
	}
	if m.Has(ModShift) {
		parts = append(parts, "Shift")
	}
	if m.Has(ModSuper) {
		parts = append(parts, "Super")
	}
	return strings.Join(parts, "+")
}

// parseModifier resolves a keybind token to a modifier.
func parseModifier(token string) (Modifiers, bool) {
	switch strings.ToLower(token) {
	case "alt":
		return ModAlt, true
	case "ctrl":
		return ModCtrl, true
	case "shift":
		return ModShift, true
	case "super":
		return ModSuper, true
	}
	return 0, false
}

// Keybind is one GUI key combination: any number of modifiers plus
// exactly one key code.
type Keybind struct {
	Mods Modifiers
	Key  Key
}

// NewKeybind returns a keybind for key with no modifiers.
func NewKeybind(key Key) Keybind {
	return Keybind{Key: key}
}

// ParseKeybind parses a token(+token)* keybind string. Each token is
// tried as a key code first, then as a modifier; anything else fails.
// Exactly one token must be a key code.
func ParseKeybind(s string) (Keybind, error) {
	var bind Keybind
	var keys []Key
	for _, token := range strings.Split(s, "+") {
		if key, ok := ParseKey(token); ok {
			keys = append(keys, key)
			continue
		}
		if mod, ok := parseModifier(token); ok {
			bind.Mods |= mod
			continue
		}
		return Keybind{}, fmt.Errorf("invalid key/modifier: %q", token)
	}
	switch len(keys) {
	case 0:
		return Keybind{}, errors.New("no keys specified")
	case 1:
		bind.Key = keys[0]
		return bind, nil
	default:
		return Keybind{}, fmt.Errorf("too many keys: %v", keys)
	}
}

// parseKeybinds parses a whole group, failing on the first bad string.
func parseKeybinds(strs []string) ([]Keybind, error) {
	binds := make([]Keybind, 0, len(strs))
	for _, s := range strs {
		bind, err := ParseKeybind(s)
		if err != nil {
			return nil, err
		}
		binds = append(binds, bind)
	}
	return binds, nil
}

// String renders the keybind in its canonical Mods+Key form.
func (k Keybind) String() string {
	if mods := k.Mods.String(); mods != "" {
		return mods + "+" + string(k.Key)
	}
	return string(k.Key)
}

// UnmarshalYAML parses keybinds from their config-file string form.
func (k *Keybind) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	bind, err := ParseKeybind(s)
	if err != nil {
		return err
	}
	*k = bind
	return nil
}

// MarshalYAML renders keybinds back to their string form.
func (k Keybind) MarshalYAML() (interface{}, error) {
	return k.String(), nil
}
