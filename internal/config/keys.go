package config

import (
	"fmt"
	"strings"
)

// Key is a canonical key-code identifier, W3C code naming with bare
// letters for the alphabet ("A", "Digit7", "PageUp", "NumpadAdd").
type Key string

// canonicalKeys lists every named key code keybinds may reference.
// Letters, digits, and function keys are generated alongside in init.
//
//nolint:gochecknoglobals // static key-code table
var canonicalKeys = []Key{
	"Enter", "Escape", "Backspace", "Tab", "Space",
	"Minus", "Equal", "BracketLeft", "BracketRight", "Backslash",
	"Semicolon", "Quote", "Backquote", "Comma", "Period", "Slash",
	"CapsLock", "NumLock", "ScrollLock", "PrintScreen", "Pause",
	"Insert", "Delete", "Home", "End", "PageUp", "PageDown",
	"ArrowUp", "ArrowDown", "ArrowLeft", "ArrowRight",
	"ContextMenu", "Help", "Power",
	"IntlBackslash", "IntlRo", "IntlYen",
	"NumpadAdd", "NumpadSubtract", "NumpadMultiply", "NumpadDivide",
	"NumpadDecimal", "NumpadEnter", "NumpadEqual", "NumpadComma",
	"ShiftLeft", "ShiftRight", "ControlLeft", "ControlRight",
	"AltLeft", "AltRight", "MetaLeft", "MetaRight",
	"AudioVolumeUp", "AudioVolumeDown", "AudioVolumeMute",
	"MediaPlayPause", "MediaStop", "MediaTrackNext", "MediaTrackPrevious",
	"BrowserBack", "BrowserForward", "BrowserHome", "BrowserRefresh",
	"BrowserSearch",
}

// keyTable maps squashed spellings to canonical keys, so "page_up",
// "pageup", and "PageUp" all resolve the same way.
//
//nolint:gochecknoglobals // static key-code table
var keyTable = map[string]Key{}

//nolint:gochecknoinits // fills the static key-code table
func init() {
	register := func(spelling string, key Key) {
		keyTable[squashKey(spelling)] = key
	}
	for _, key := range canonicalKeys {
		register(string(key), key)
	}
	for c := 'A'; c <= 'Z'; c++ {
		key := Key(c)
		register(string(c), key)
		register("Key"+string(c), key)
	}
	for d := '0'; d <= '9'; d++ {
		key := Key("Digit" + string(d))
		register(string(key), key)
		register(string(d), key)
		register("Numpad"+string(d), Key("Numpad"+string(d)))
	}
	for n := 1; n <= 24; n++ {
		key := Key(fmt.Sprintf("F%d", n))
		register(string(key), key)
	}
}

// squashKey folds case and drops the separators users write between
// words, collapsing the accepted spellings of a key onto one form.
func squashKey(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch r {
		case '_', '-', ' ':
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ParseKey resolves a keybind token to its canonical key code.
func ParseKey(token string) (Key, bool) {
	key, ok := keyTable[squashKey(token)]
	return key, ok
}
