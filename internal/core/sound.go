package core

// Sound identifies an abstract audio trigger emitted by the simulation.
type Sound int

const (
	SoundPickup    Sound = iota // candy collected
	SoundBoo                    // ghost spotted the player
	SoundHurt                   // player took damage
	SoundHeal                   // health restored
	SoundDig                    // shovel hit at a dig spot
	SoundChime                  // puzzle solved / easter egg found
	SoundExplosion              // jack-o'-lantern trap detonated
	SoundWin                    // level completed
	SoundGameOver               // run ended
)

// String returns the asset-facing name of the sound trigger.
func (s Sound) String() string {
	switch s {
	case SoundPickup:
		return "pickup"
	case SoundBoo:
		return "boo"
	case SoundHurt:
		return "hurt"
	case SoundHeal:
		return "heal"
	case SoundDig:
		return "dig"
	case SoundChime:
		return "chime"
	case SoundExplosion:
		return "explosion"
	case SoundWin:
		return "win"
	case SoundGameOver:
		return "gameover"
	default:
		return "unknown"
	}
}
