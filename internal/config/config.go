// Package config provides YAML-based game configuration loading and
// preset management for the token grid.
package config

import (
	"fmt"

	"github.com/vovakirdan/tokengrid/internal/world"
)

// TokensConfig contains all configuration for the token grid game.
type TokensConfig struct {
	Grid  GridConfig  `yaml:"grid"`
	Spawn SpawnConfig `yaml:"spawn"`
	Craft CraftConfig `yaml:"craft"`
	World WorldConfig `yaml:"world"`
}

// GridConfig defines the window and reach around the player.
type GridConfig struct {
	WindowRadius      int     `yaml:"window_radius"`
	InteractionRadius int     `yaml:"interaction_radius"`
	TileDegrees       float64 `yaml:"tile_degrees"`
}

// SpawnConfig defines the generation constants.
type SpawnConfig struct {
	Probability float64 `yaml:"probability"`
	MaxExponent int     `yaml:"max_exponent"`
}

// CraftConfig defines the crafting goal.
type CraftConfig struct {
	GoalValue int `yaml:"goal_value"`
}

// WorldConfig defines how cells behave across evictions.
type WorldConfig struct {
	Reentry string `yaml:"reentry"` // "keep" or "regenerate"
}

// Session converts the config into session constants.
func (c TokensConfig) Session() (world.Config, error) {
	reentry, err := world.ParseReentryPolicy(c.World.Reentry)
	if err != nil {
		return world.Config{}, fmt.Errorf("config: %w", err)
	}

	cfg := world.Config{
		WindowRadius:      c.Grid.WindowRadius,
		InteractionRadius: c.Grid.InteractionRadius,
		GoalValue:         c.Craft.GoalValue,
		Spawn: world.SpawnRules{
			Probability: c.Spawn.Probability,
			MaxExponent: c.Spawn.MaxExponent,
		},
		Reentry: reentry,
	}
	if err := cfg.Validate(); err != nil {
		return world.Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// Validate checks the config without building a session.
func (c TokensConfig) Validate() error {
	if c.Grid.TileDegrees < 0 {
		return fmt.Errorf("config: tile_degrees must not be negative, got %g", c.Grid.TileDegrees)
	}
	_, err := c.Session()
	return err
}
