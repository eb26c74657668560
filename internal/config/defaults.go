package config

import (
	_ "embed"
)

//go:embed defaults/haunt.yaml
var defaultHauntYAML []byte

// DefaultHauntConfig returns the default game configuration.
func DefaultHauntConfig() HauntConfig {
	return HauntConfig{
		Player: PlayerConfig{
			MaxSpeed:             3.0,
			Acceleration:         0.2,
			Deceleration:         0.15,
			StartHealth:          3,
			MaxHealth:            5,
			InvincibilitySeconds: 2.0,
		},
		Ghosts: GhostConfig{
			PatrolSpeed:     1.5,
			ChaseSpeed:      2.5,
			DetectionRadius: 100,
			ChaseSeconds:    5.0,
			BaseCount:       3,
			Cap:             8,
			LevelSpeedScale: 0.1,
			NightExtra:      2,
		},
		Candy: CandyConfig{
			PerLevel:     15,
			NormalPoints: 10,
			CursedPoints: 20,
			BonusPoints:  25,
		},
		Effects: EffectsConfig{
			MagnetRadius:  50,
			MagnetSeconds: 10,
			RepelSeconds:  15,
			SpeedSeconds:  7.5,
			SpeedFactor:   1.5,
			ZombieSeconds: 15,
			CursedSeconds: 5,
			CursedFactor:  0.5,
		},
		Traps: TrapConfig{
			TriggerRadius: 40,
			DamageRadius:  60,
			FuseSeconds:   0.5,
			MinLevel:      4,
		},
		Levels: LevelConfig{
			Count:                 5,
			NightThresholdSeconds: 180,
			PermanentNightFrom:    4,
			DigPresses:            5,
			DigCooldownSeconds:    0.5,
		},
		Scoring: ScoringConfig{
			HealthBonus:  100,
			TimeBonusMax: 300,
			PuzzleScore:  100,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "time",
				MaxAt: 21600, // 6 minutes at 60 TPS
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 0.3,
				RadiusIncrease:  20,
			},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultHauntYAML
}
