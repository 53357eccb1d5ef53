package plugin

import "encoding/json"

// Options is a sparse bag of config overrides a plugin may push at the
// host. Every field is optional; absent fields are omitted on the wire
// and leave the host's config untouched. Keybind groups carry raw
// keybind strings that the host parses on application.
type Options struct {
	// appearance
	Theme *string `json:"theme,omitempty" yaml:"theme,omitempty"`
	CSS   *string `json:"css,omitempty" yaml:"css,omitempty"`
	// display behavior
	PageSize *int     `json:"page_size,omitempty" yaml:"page_size,omitempty"`
	PageLoad *float64 `json:"page_load,omitempty" yaml:"page_load,omitempty"`
	JumpDist *int     `json:"jump_dist,omitempty" yaml:"jump_dist,omitempty"`
	// search behavior
	Placeholder     *string `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	SearchRestrict  *string `json:"search_restrict,omitempty" yaml:"search_restrict,omitempty"`
	SearchMinLength *int    `json:"search_min_length,omitempty" yaml:"search_min_length,omitempty"`
	SearchMaxLength *int    `json:"search_max_length,omitempty" yaml:"search_max_length,omitempty"`
	// keybinds
	KeyExec      []string `json:"key_exec,omitempty" yaml:"key_exec,omitempty"`
	KeyExit      []string `json:"key_exit,omitempty" yaml:"key_exit,omitempty"`
	KeyMoveNext  []string `json:"key_move_next,omitempty" yaml:"key_move_next,omitempty"`
	KeyMovePrev  []string `json:"key_move_prev,omitempty" yaml:"key_move_prev,omitempty"`
	KeyOpenMenu  []string `json:"key_open_menu,omitempty" yaml:"key_open_menu,omitempty"`
	KeyCloseMenu []string `json:"key_close_menu,omitempty" yaml:"key_close_menu,omitempty"`
	KeyJumpNext  []string `json:"key_jump_next,omitempty" yaml:"key_jump_next,omitempty"`
	KeyJumpPrev  []string `json:"key_jump_prev,omitempty" yaml:"key_jump_prev,omitempty"`
	// window
	Title        *string  `json:"title,omitempty" yaml:"title,omitempty"`
	Decorate     *bool    `json:"decorate,omitempty" yaml:"decorate,omitempty"`
	Fullscreen   *bool    `json:"fullscreen,omitempty" yaml:"fullscreen,omitempty"`
	Transparent  *bool    `json:"transparent,omitempty" yaml:"transparent,omitempty"`
	WindowWidth  *float64 `json:"window_width,omitempty" yaml:"window_width,omitempty"`
	WindowHeight *float64 `json:"window_height,omitempty" yaml:"window_height,omitempty"`
}

type optionsAlias Options

// MarshalJSON tags the options with their message type so they can share
// a stream with other message kinds.
func (o Options) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type MessageType `json:"type"`
		optionsAlias
	}{Type: TypeOptions, optionsAlias: optionsAlias(o)})
}

// UnmarshalJSON accepts the tagged form and rejects payloads tagged as a
// different message kind.
func (o *Options) UnmarshalJSON(data []byte) error {
	if err := checkTag(data, TypeOptions); err != nil {
		return err
	}
	var a optionsAlias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*o = Options(a)
	return nil
}

// String returns a pointer to s for filling optional fields.
func String(s string) *string { return &s }

// Bool returns a pointer to b for filling optional fields.
func Bool(b bool) *bool { return &b }

// Int returns a pointer to i for filling optional fields.
func Int(i int) *int { return &i }

// Float64 returns a pointer to f for filling optional fields.
func Float64(f float64) *float64 { return &f }
