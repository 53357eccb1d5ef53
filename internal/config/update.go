package config

import "github.com/LordGrimmauld/rmenu/pkg/plugin"

// clone copies an optional value so the config never aliases memory
// owned by a decoded plugin message.
func clone[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// keybindPatch is one parsed keybind group staged for application.
type keybindPatch struct {
	slot  *[]Keybind
	binds []Keybind
}

// stageKeybinds parses every keybind group the overlay carries without
// applying anything, so one bad string rejects the whole overlay.
func (c *Config) stageKeybinds(o *plugin.Options) ([]keybindPatch, error) {
	groups := []struct {
		strs []string
		slot *[]Keybind
	}{
		{o.KeyExec, &c.Keybinds.Exec},
		{o.KeyExit, &c.Keybinds.Exit},
		{o.KeyMoveNext, &c.Keybinds.MoveNext},
		{o.KeyMovePrev, &c.Keybinds.MovePrev},
		{o.KeyOpenMenu, &c.Keybinds.OpenMenu},
		{o.KeyCloseMenu, &c.Keybinds.CloseMenu},
		{o.KeyJumpNext, &c.Keybinds.JumpNext},
		{o.KeyJumpPrev, &c.Keybinds.JumpPrev},
	}
	var patches []keybindPatch
	for _, g := range groups {
		if g.strs == nil {
			continue
		}
		binds, err := parseKeybinds(g.strs)
		if err != nil {
			return nil, err
		}
		patches = append(patches, keybindPatch{slot: g.slot, binds: binds})
	}
	return patches, nil
}

// applyAppearance merges the stylesheet override. css supersedes the
// legacy theme field when a plugin sends both.
func (c *Config) applyAppearance(o *plugin.Options) {
	switch {
	case o.CSS != nil:
		c.CSS = clone(o.CSS)
	case o.Theme != nil:
		c.CSS = clone(o.Theme)
	}
}

// applyDisplay merges pagination and jump settings.
func (c *Config) applyDisplay(o *plugin.Options) {
	if o.PageSize != nil {
		c.PageSize = *o.PageSize
	}
	if o.PageLoad != nil {
		c.PageLoad = *o.PageLoad
	}
	if o.JumpDist != nil {
		c.JumpDist = *o.JumpDist
	}
}

// apply merges the search overrides.
func (s *SearchConfig) apply(o *plugin.Options) {
	if o.Placeholder != nil {
		s.Placeholder = clone(o.Placeholder)
	}
	if o.SearchRestrict != nil {
		s.Restrict = clone(o.SearchRestrict)
	}
	if o.SearchMinLength != nil {
		s.MinLength = clone(o.SearchMinLength)
	}
	if o.SearchMaxLength != nil {
		s.MaxLength = clone(o.SearchMaxLength)
	}
}

// apply merges the window overrides.
func (w *WindowConfig) apply(o *plugin.Options) {
	if o.Title != nil {
		w.Title = *o.Title
	}
	if o.Decorate != nil {
		w.Decorate = *o.Decorate
	}
	if o.Fullscreen != nil {
		w.Fullscreen = clone(o.Fullscreen)
	}
	if o.Transparent != nil {
		w.Transparent = *o.Transparent
	}
	if o.WindowWidth != nil {
		w.Size.Width = *o.WindowWidth
	}
	if o.WindowHeight != nil {
		w.Size.Height = *o.WindowHeight
	}
}

// Update applies one options overlay onto the config. Updates are
// all-or-nothing: a bad keybind string anywhere in the overlay returns
// an error and leaves the config untouched. Absent overlay fields leave
// their targets alone, so successive overlays compose with later writes
// winning.
func (c *Config) Update(o *plugin.Options) error {
	if o == nil {
		return nil
	}
	patches, err := c.stageKeybinds(o)
	if err != nil {
		return err
	}
	c.applyAppearance(o)
	c.applyDisplay(o)
	c.Search.apply(o)
	c.Window.apply(o)
	for _, p := range patches {
		*p.slot = p.binds
	}
	return nil
}
