// Package config provides YAML-based game configuration loading and
// difficulty management for Halloween Haunt.
package config

// HauntConfig contains every named tunable of the simulation. Nothing in the
// game core hides a magic constant that is not reachable from here.
type HauntConfig struct {
	Player     PlayerConfig     `yaml:"player"`
	Ghosts     GhostConfig      `yaml:"ghosts"`
	Candy      CandyConfig      `yaml:"candy"`
	Effects    EffectsConfig    `yaml:"effects"`
	Traps      TrapConfig       `yaml:"traps"`
	Levels     LevelConfig      `yaml:"levels"`
	Scoring    ScoringConfig    `yaml:"scoring"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// PlayerConfig defines player movement and health parameters.
type PlayerConfig struct {
	MaxSpeed             float64 `yaml:"max_speed"`    // world units per tick at reference 60 TPS
	Acceleration         float64 `yaml:"acceleration"` // speed gained per tick while a direction is held
	Deceleration         float64 `yaml:"deceleration"` // speed lost per tick with no input
	StartHealth          int     `yaml:"start_health"`
	MaxHealth            int     `yaml:"max_health"` // absolute heal cap
	InvincibilitySeconds float64 `yaml:"invincibility_seconds"`
}

// GhostConfig defines ghost AI parameters.
type GhostConfig struct {
	PatrolSpeed     float64 `yaml:"patrol_speed"`
	ChaseSpeed      float64 `yaml:"chase_speed"`
	DetectionRadius float64 `yaml:"detection_radius"`
	ChaseSeconds    float64 `yaml:"chase_seconds"` // how long a ghost keeps chasing after losing sight
	BaseCount       int     `yaml:"base_count"`    // ghosts at level 1 is base_count+1
	Cap             int     `yaml:"cap"`           // hard per-level ghost cap
	LevelSpeedScale float64 `yaml:"level_speed_scale"`
	NightExtra      int     `yaml:"night_extra"` // ghosts added at nightfall, subject to cap
}

// CandyConfig defines candy counts and point values.
type CandyConfig struct {
	PerLevel     int `yaml:"per_level"`
	NormalPoints int `yaml:"normal_points"`
	CursedPoints int `yaml:"cursed_points"`
	BonusPoints  int `yaml:"bonus_points"`
}

// EffectsConfig defines status effect durations and magnitudes.
type EffectsConfig struct {
	MagnetRadius  float64 `yaml:"magnet_radius"`
	MagnetSeconds float64 `yaml:"magnet_seconds"`
	RepelSeconds  float64 `yaml:"repel_seconds"`
	SpeedSeconds  float64 `yaml:"speed_seconds"`
	SpeedFactor   float64 `yaml:"speed_factor"`
	ZombieSeconds float64 `yaml:"zombie_seconds"`
	CursedSeconds float64 `yaml:"cursed_seconds"`
	CursedFactor  float64 `yaml:"cursed_factor"`
}

// TrapConfig defines jack-o'-lantern trap parameters.
type TrapConfig struct {
	TriggerRadius float64 `yaml:"trigger_radius"`
	DamageRadius  float64 `yaml:"damage_radius"`
	FuseSeconds   float64 `yaml:"fuse_seconds"`
	MinLevel      int     `yaml:"min_level"` // traps appear from this level on
}

// LevelConfig defines level progression parameters.
type LevelConfig struct {
	Count                 int     `yaml:"count"`
	NightThresholdSeconds float64 `yaml:"night_threshold_seconds"`
	PermanentNightFrom    int     `yaml:"permanent_night_from"` // levels from here start in night
	DigPresses            int     `yaml:"dig_presses"`
	DigCooldownSeconds    float64 `yaml:"dig_cooldown_seconds"`
}

// ScoringConfig defines score formula terms.
type ScoringConfig struct {
	HealthBonus  int `yaml:"health_bonus"`   // per remaining health point at completion
	TimeBonusMax int `yaml:"time_bonus_max"` // additive bonus, shrinks one point per elapsed second
	PuzzleScore  int `yaml:"puzzle_score"`   // church puzzle reward
}

// DifficultyConfig defines the within-level difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Multiplier added to ghost speed at max difficulty
	RadiusIncrease  float64 `yaml:"radius_increase"`  // Detection radius gain at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy      DifficultyPreset = "easy"
	DifficultyNormal    DifficultyPreset = "normal"
	DifficultyHard      DifficultyPreset = "hard"
	DifficultyNightmare DifficultyPreset = "nightmare"
	DifficultyFixed     DifficultyPreset = "fixed"
)

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	case DifficultyNightmare:
		return 1.0
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
