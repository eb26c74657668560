package haunt

// SaveState is the persisted progress snapshot. It is written only at
// level-boundary events (completion, game over) and read once at startup.
type SaveState struct {
	Level    int
	Score    int
	Health   int
	Unlocked []EffectKind // power-up kinds discovered so far, in discovery order
}

// DefaultSave returns the state of a fresh run.
func DefaultSave(startHealth int) SaveState {
	return SaveState{Level: 1, Health: startHealth}
}

// ProgressSaver persists run progress. The simulation calls it synchronously
// at level boundaries only; a failed write surfaces as a "progress not saved"
// warning and never halts gameplay.
type ProgressSaver interface {
	SaveProgress(s SaveState) error
}
