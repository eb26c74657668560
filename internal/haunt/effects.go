package haunt

// EffectKind identifies a timed status effect on the player.
type EffectKind int

const (
	EffectMagnet EffectKind = iota // auto-pickup of nearby candy
	EffectRepel                    // ghosts cannot damage the player
	EffectSpeed                    // movement speed multiplier
	EffectZombie                   // ghost immunity plus pass-through
	EffectCursed                   // movement slow from cursed candy
)

// String returns the display name of the effect.
func (k EffectKind) String() string {
	switch k {
	case EffectMagnet:
		return "Candy Magnet"
	case EffectRepel:
		return "Ghost Repel"
	case EffectSpeed:
		return "Speed Boost"
	case EffectZombie:
		return "Zombie Power"
	case EffectCursed:
		return "Cursed"
	default:
		return "Unknown"
	}
}

// Glyph returns the HUD rune for the effect.
func (k EffectKind) Glyph() rune {
	switch k {
	case EffectMagnet:
		return 'M'
	case EffectRepel:
		return 'R'
	case EffectSpeed:
		return 'S'
	case EffectZombie:
		return 'Z'
	case EffectCursed:
		return 'C'
	default:
		return '?'
	}
}

// Effect is an active timed status effect.
type Effect struct {
	Kind      EffectKind
	Remaining float64 // seconds
	Magnitude float64 // speed factor for Speed/Cursed, unused otherwise
}

// EffectManager tracks the player's active effects. Effects are kept in
// application order so iteration stays deterministic.
type EffectManager struct {
	active []Effect
}

// NewEffectManager creates an empty effect manager.
func NewEffectManager() *EffectManager {
	return &EffectManager{}
}

// Apply activates an effect. If the kind is already active its remaining
// duration is reset to the new value and the magnitude overwritten; durations
// never stack.
func (m *EffectManager) Apply(kind EffectKind, duration, magnitude float64) {
	for i := range m.active {
		if m.active[i].Kind == kind {
			m.active[i].Remaining = duration
			m.active[i].Magnitude = magnitude
			return
		}
	}
	m.active = append(m.active, Effect{Kind: kind, Remaining: duration, Magnitude: magnitude})
}

// Tick decrements all active durations by dt seconds and removes effects
// whose remaining time crosses zero. Returns the expired kinds.
func (m *EffectManager) Tick(dt float64) []EffectKind {
	var expired []EffectKind
	kept := m.active[:0]
	for _, e := range m.active {
		e.Remaining -= dt
		if e.Remaining <= 0 {
			expired = append(expired, e.Kind)
			continue
		}
		kept = append(kept, e)
	}
	m.active = kept
	return expired
}

// Active returns true if the given effect kind is currently active.
func (m *EffectManager) Active(kind EffectKind) bool {
	for _, e := range m.active {
		if e.Kind == kind {
			return true
		}
	}
	return false
}

// Remaining returns the remaining duration of an effect, or 0 if inactive.
func (m *EffectManager) Remaining(kind EffectKind) float64 {
	for _, e := range m.active {
		if e.Kind == kind {
			return e.Remaining
		}
	}
	return 0
}

// SpeedFactor returns the combined multiplicative speed modifier from all
// active effects.
func (m *EffectManager) SpeedFactor() float64 {
	factor := 1.0
	for _, e := range m.active {
		if e.Kind == EffectSpeed || e.Kind == EffectCursed {
			factor *= e.Magnitude
		}
	}
	return factor
}

// List returns the active effects in application order.
func (m *EffectManager) List() []Effect {
	out := make([]Effect, len(m.active))
	copy(out, m.active)
	return out
}

// Clear removes all active effects.
func (m *EffectManager) Clear() {
	m.active = m.active[:0]
}
