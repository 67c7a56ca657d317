package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadTokens loads the token grid configuration.
// Search order: customPath -> ~/.tokengrid/configs/tokens.yaml -> ./configs/tokens.yaml -> embedded default
//
// Files are decoded over the defaults, so a partial file only overrides the
// keys it mentions. A custom path that cannot be read or parsed is an error;
// broken files found on the search path are skipped.
func LoadTokens(customPath string) (TokensConfig, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return TokensConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parseTokens(data)
		if err != nil {
			return TokensConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("tokens.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parseTokens(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/tokens.yaml"); err == nil {
		if cfg, err := parseTokens(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parseTokens(defaultTokensYAML)
	if err != nil {
		return DefaultTokensConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// parseTokens decodes YAML over the defaults and validates the result.
func parseTokens(data []byte) (TokensConfig, error) {
	cfg := DefaultTokensConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return TokensConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return TokensConfig{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".tokengrid", "configs", filename)
}

// Marshal renders the config as YAML, for `tokengrid config`.
func Marshal(cfg TokensConfig) ([]byte, error) {
	return yaml.Marshal(cfg)
}
