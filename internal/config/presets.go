package config

import "fmt"

// Preset represents a named rule set layered over the loaded config.
type Preset string

const (
	PresetStandard Preset = "standard"
	PresetCasual   Preset = "casual"
	PresetHard     Preset = "hard"
)

// Presets lists the known presets in display order.
func Presets() []Preset {
	return []Preset{PresetStandard, PresetCasual, PresetHard}
}

// ParsePreset validates a preset name. Empty means PresetStandard.
func ParsePreset(s string) (Preset, error) {
	switch Preset(s) {
	case "", PresetStandard:
		return PresetStandard, nil
	case PresetCasual:
		return PresetCasual, nil
	case PresetHard:
		return PresetHard, nil
	}
	return "", fmt.Errorf("config: unknown preset %q (want standard, casual or hard)", s)
}

// ApplyPreset modifies the config based on a preset.
// Standard leaves the loaded values alone.
func ApplyPreset(cfg *TokensConfig, preset Preset) {
	switch preset {
	case PresetCasual:
		cfg.Grid.InteractionRadius = min(cfg.Grid.InteractionRadius+1, cfg.Grid.WindowRadius)
		cfg.Craft.GoalValue = 16
	case PresetHard:
		cfg.Spawn.Probability = 0.15
		cfg.Craft.GoalValue = 64
	}
}
