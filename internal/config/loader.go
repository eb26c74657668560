package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadHaunt loads the game configuration.
// Search order: customPath -> ~/.haunt/configs/haunt.yaml -> ./configs/haunt.yaml -> embedded default
func LoadHaunt(customPath string) (HauntConfig, error) {
	var cfg HauntConfig

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("haunt.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/haunt.yaml"); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultHauntYAML, &cfg); err != nil {
		return DefaultHauntConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".haunt", "configs", filename)
}

// ApplyHauntPreset modifies the config based on a difficulty preset.
func ApplyHauntPreset(cfg *HauntConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	// Adjust gameplay based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Player.StartHealth = 4
		cfg.Ghosts.ChaseSpeed = 2.0
		cfg.Ghosts.DetectionRadius = 80
	case DifficultyHard:
		cfg.Ghosts.ChaseSpeed = 2.8
		cfg.Ghosts.DetectionRadius = 120
	case DifficultyNightmare:
		cfg.Player.StartHealth = 2
		cfg.Ghosts.ChaseSpeed = 3.0
		cfg.Ghosts.DetectionRadius = 140
		cfg.Ghosts.Cap = 10
	}
}
