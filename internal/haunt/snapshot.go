package haunt

// GhostSnap is one ghost's position and AI state.
type GhostSnap struct {
	X, Y float64
	Mode GhostMode
}

// EffectSnap is one active effect and its remaining time.
type EffectSnap struct {
	Kind      EffectKind
	Remaining float64
}

// Snapshot captures the complete session state for determinism testing and
// replay comparison.
type Snapshot struct {
	Tick      uint64
	State     SessionState
	Level     int
	Score     int
	Health    int
	Collected int
	Elapsed   float64
	Night     bool

	PlayerX float64
	PlayerY float64

	Ghosts  []GhostSnap
	Effects []EffectSnap

	CandiesLeft int
	PuzzleDone  bool
	DigCounts   []int
}

// Snapshot returns the current session snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Tick:  g.tick,
		State: g.state,
		Score: g.score,
	}
	if g.level == nil || g.player == nil {
		return s
	}

	px, py := g.player.Box.Center()
	s.Level = g.level.Num
	s.Health = g.player.Health
	s.Collected = g.level.Collected
	s.Elapsed = g.level.Elapsed
	s.Night = g.level.Night
	s.PlayerX = px
	s.PlayerY = py
	s.CandiesLeft = g.level.CandiesRemaining()
	s.PuzzleDone = g.level.PuzzleDone

	for _, gh := range g.level.Ghosts {
		gx, gy := gh.Box.Center()
		s.Ghosts = append(s.Ghosts, GhostSnap{X: gx, Y: gy, Mode: gh.Mode})
	}
	for _, e := range g.effects.List() {
		s.Effects = append(s.Effects, EffectSnap{Kind: e.Kind, Remaining: e.Remaining})
	}
	for _, d := range g.level.DigSpots {
		s.DigCounts = append(s.DigCounts, d.Count)
	}
	return s
}
