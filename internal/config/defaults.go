package config

import (
	_ "embed"
)

//go:embed defaults/tokens.yaml
var defaultTokensYAML []byte

// DefaultTokensConfig returns the built-in configuration.
func DefaultTokensConfig() TokensConfig {
	return TokensConfig{
		Grid: GridConfig{
			WindowRadius:      8,
			InteractionRadius: 3,
			TileDegrees:       1e-4,
		},
		Spawn: SpawnConfig{
			Probability: 0.25,
			MaxExponent: 3,
		},
		Craft: CraftConfig{
			GoalValue: 32,
		},
		World: WorldConfig{
			Reentry: "keep",
		},
	}
}
