// Package config provides YAML-based configuration for the runner: input
// timing, display toggles, colors and the session journal. Physics constants
// are fixed in the simulation and deliberately absent here.
package config

import (
	"fmt"
	"regexp"
	"time"
	"unicode/utf8"
)

// RunnerConfig contains all configuration for the runner game.
type RunnerConfig struct {
	Input   InputConfig   `yaml:"input"`
	Display DisplayConfig `yaml:"display"`
	Theme   ThemeConfig   `yaml:"theme"`
	Journal JournalConfig `yaml:"journal"`
}

// InputConfig defines how terminal keys map onto the jump trigger.
type InputConfig struct {
	// HoldWindowMS is how long a single space key event keeps the trigger held.
	// Terminals report no key releases, so auto-repeat extends the window.
	HoldWindowMS int `yaml:"hold_window_ms"`
}

// HoldWindow returns HoldWindowMS as a duration.
func (c InputConfig) HoldWindow() time.Duration {
	return time.Duration(c.HoldWindowMS) * time.Millisecond
}

// DisplayConfig toggles optional overlays.
type DisplayConfig struct {
	ShowCursor bool `yaml:"show_cursor"` // pointer position in world units
	ShowStats  bool `yaml:"show_stats"`  // tick and obstacle counters
	ShowHelp   bool `yaml:"show_help"`   // key help bar below the playfield
}

// ThemeConfig overrides the built-in palette. Empty values keep the defaults.
type ThemeConfig struct {
	SkyBottom string `yaml:"sky_bottom"`
	SkyTop    string `yaml:"sky_top"`
	Ground    string `yaml:"ground"`
	Stripe    string `yaml:"stripe"`
	Player    string `yaml:"player"`
	Cloud     string `yaml:"cloud"`
	Tree      string `yaml:"tree"`
	Cursor    string `yaml:"cursor"`

	CloudGlyph string `yaml:"cloud_glyph"`
	TreeGlyph  string `yaml:"tree_glyph"`
}

// JournalConfig controls the SQLite session journal.
type JournalConfig struct {
	Enabled bool `yaml:"enabled"`
}

// MaxHoldWindowMS bounds InputConfig.HoldWindowMS.
const MaxHoldWindowMS = 5000

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Validate reports the first invalid setting.
func (c RunnerConfig) Validate() error {
	if c.Input.HoldWindowMS < 0 || c.Input.HoldWindowMS > MaxHoldWindowMS {
		return fmt.Errorf("config: input.hold_window_ms must be in [0, %d], got %d",
			MaxHoldWindowMS, c.Input.HoldWindowMS)
	}

	colors := []struct {
		key, value string
	}{
		{"sky_bottom", c.Theme.SkyBottom},
		{"sky_top", c.Theme.SkyTop},
		{"ground", c.Theme.Ground},
		{"stripe", c.Theme.Stripe},
		{"player", c.Theme.Player},
		{"cloud", c.Theme.Cloud},
		{"tree", c.Theme.Tree},
		{"cursor", c.Theme.Cursor},
	}
	for _, col := range colors {
		if col.value != "" && !hexColor.MatchString(col.value) {
			return fmt.Errorf("config: theme.%s must look like #rrggbb, got %q", col.key, col.value)
		}
	}

	for key, glyph := range map[string]string{
		"cloud_glyph": c.Theme.CloudGlyph,
		"tree_glyph":  c.Theme.TreeGlyph,
	} {
		if utf8.RuneCountInString(glyph) > 1 {
			return fmt.Errorf("config: theme.%s must be a single character, got %q", key, glyph)
		}
	}
	return nil
}
