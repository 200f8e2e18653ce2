package config

import (
	_ "embed"
)

//go:embed defaults/runner.yaml
var defaultRunnerYAML []byte

// DefaultRunnerConfig returns the hardcoded runner configuration.
// It matches defaults/runner.yaml.
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		Input: InputConfig{
			HoldWindowMS: 500,
		},
		Display: DisplayConfig{
			ShowCursor: true,
			ShowStats:  true,
			ShowHelp:   true,
		},
		Theme: ThemeConfig{
			CloudGlyph: "░",
			TreeGlyph:  "*",
		},
		Journal: JournalConfig{
			Enabled: true,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	out := make([]byte, len(defaultRunnerYAML))
	copy(out, defaultRunnerYAML)
	return out
}
