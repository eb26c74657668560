package core

// RuntimeConfig contains configuration passed to the game at initialization.
// The game uses this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState represents the current state of the session.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int  // Cumulative run score
	Level    int  // Current level number, 1-based
	Health   int  // Player health
	GameOver bool // Whether the run has ended (defeat or victory)
	Victory  bool // Set together with GameOver after the final level
	Paused   bool // Whether the game is paused
}

// StepResult is returned by Game.Step() after each simulation tick.
// Contains the updated game state and any events that occurred.
type StepResult struct {
	State GameState

	// Sounds lists audio triggers raised this tick. The simulation never
	// touches an audio device; the platform decides what to do with these.
	Sounds []Sound

	// Warnings reports clamps of state that should be unreachable through
	// normal transitions. The platform logs them.
	Warnings []string
}
