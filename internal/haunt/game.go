package haunt

import (
	"fmt"
	"math/rand"

	"github.com/bmkoscak/halloween-haunt/internal/config"
	"github.com/bmkoscak/halloween-haunt/internal/core"
)

// SessionState is the top-level state of a run.
type SessionState int

const (
	StateTutorial SessionState = iota
	StatePlaying
	StatePaused
	StateCompleted // level summary, waiting for confirm to advance
	StateGameOver
	StateVictory
)

// String returns the state name.
func (s SessionState) String() string {
	switch s {
	case StateTutorial:
		return "tutorial"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateCompleted:
		return "completed"
	case StateGameOver:
		return "gameover"
	case StateVictory:
		return "victory"
	default:
		return "unknown"
	}
}

// tutorialSteps are the level 1 hints, advanced one per interact press.
var tutorialSteps = []string{
	"Move with WASD or the arrow keys",
	"Collect all 15 candies, avoid the ghosts",
	"SPACE interacts: altar, graves, trash cans",
	"Bring the candy home to the glowing door",
}

// Game is the session context: the single mutator of all level, player and
// effect state. The platform drives it one Step per rendered frame.
type Game struct {
	cfg     config.HauntConfig
	runtime core.RuntimeConfig
	diff    *config.DifficultyManager
	rng     *rand.Rand
	dt      float64 // seconds per tick at the host tick rate
	tick    uint64

	state   SessionState
	level   *Level
	player  *Player
	effects *EffectManager
	score   int

	unlocked    []EffectKind
	unlockedSet map[EffectKind]bool

	// Start-of-run parameters, optionally seeded from a loaded save.
	startLevel    int
	startScore    int
	startHealth   int
	startUnlocked []EffectKind

	// Start-of-level snapshot for restart-from-level.
	levelStartScore  int
	levelStartHealth int

	puzzleActive bool
	digCooldown  float64
	tutorialStep int
	tutorialDone bool
	pausedFrom   SessionState // state a pause returns to

	completionBonus int // shown on the level summary

	saver ProgressSaver

	sounds   []core.Sound
	warnings []string
}

// New creates a game with the given tunables. Call Reset before stepping.
func New(cfg config.HauntConfig) *Game {
	return &Game{
		cfg:         cfg,
		diff:        config.NewDifficultyManager(cfg.Difficulty),
		startLevel:  1,
		startHealth: cfg.Player.StartHealth,
	}
}

// ID returns the game identifier.
func (g *Game) ID() string { return "haunt" }

// Title returns the display name.
func (g *Game) Title() string { return "Halloween Haunt: Candy Quest" }

// SetSaver wires the persistence adapter. A nil saver disables saving.
func (g *Game) SetSaver(s ProgressSaver) {
	g.saver = s
}

// ApplySave primes the next Reset from a loaded save. A level index beyond
// the last level is clamped and reported in the returned warning; an empty
// string means the save was applied as-is.
func (g *Game) ApplySave(s SaveState) string {
	warning := ""
	if s.Level > g.cfg.Levels.Count {
		warning = fmt.Sprintf("save level %d beyond last level, clamped to %d", s.Level, g.cfg.Levels.Count)
		s.Level = g.cfg.Levels.Count
	}
	if s.Level < 1 {
		s.Level = 1
	}
	g.startLevel = s.Level
	g.startScore = s.Score
	g.startHealth = core.Clamp(s.Health, 1, g.cfg.Player.MaxHealth)
	if s.Health == 0 {
		g.startHealth = g.cfg.Player.StartHealth
	}
	g.startUnlocked = append([]EffectKind(nil), s.Unlocked...)
	return warning
}

// Reset starts a run. The seed fully determines level generation and every
// later random decision, so equal seeds replay identically.
func (g *Game) Reset(rc core.RuntimeConfig) {
	if rc.TickRate <= 0 {
		rc.TickRate = 60
	}
	g.runtime = rc
	g.rng = rand.New(rand.NewSource(rc.Seed))
	g.dt = 1.0 / float64(rc.TickRate)
	g.tick = 0

	g.score = g.startScore
	g.effects = NewEffectManager()
	g.unlocked = append([]EffectKind(nil), g.startUnlocked...)
	g.unlockedSet = make(map[EffectKind]bool)
	for _, k := range g.unlocked {
		g.unlockedSet[k] = true
	}

	g.puzzleActive = false
	g.digCooldown = 0
	g.tutorialStep = 0
	g.completionBonus = 0

	g.loadLevel(g.startLevel, g.startHealth)

	if g.level.Num == 1 && !g.tutorialDone {
		g.state = StateTutorial
	} else {
		g.state = StatePlaying
	}
}

// loadLevel generates a level and places the player at its start door.
func (g *Game) loadLevel(num, health int) {
	g.level = GenerateLevel(num, g.rng, g.cfg)
	g.player = NewPlayer(g.level.StartTX, g.level.StartTY, health)
	g.effects.Clear()
	g.puzzleActive = false
	g.digCooldown = 0
	g.levelStartScore = g.score
	g.levelStartHealth = health
}

// Step advances the game by one tick at the host tick rate.
func (g *Game) Step(input core.InputFrame) core.StepResult {
	return g.StepDelta(input, g.dt)
}

// StepDelta advances the game by an explicit time slice. The per-frame
// update order is fixed: input, movement, hazards, pickups, interactions,
// effect timers, day/night, win check.
func (g *Game) StepDelta(input core.InputFrame, dt float64) core.StepResult {
	g.tick++
	g.sounds = g.sounds[:0]
	g.warnings = g.warnings[:0]

	// Session-level transitions come before the world update.
	switch {
	case input.Has(core.ActionRestart) && g.state == StateGameOver:
		g.restartLevel()
	case input.Has(core.ActionRestart) && g.state == StateVictory:
		g.Reset(core.RuntimeConfig{
			ScreenW:  g.runtime.ScreenW,
			ScreenH:  g.runtime.ScreenH,
			TickRate: g.runtime.TickRate,
			Seed:     g.rng.Int63(),
		})
	case input.Has(core.ActionPause) && (g.state == StatePlaying || g.state == StateTutorial):
		g.pausedFrom = g.state
		g.state = StatePaused
	case input.Has(core.ActionPause) && g.state == StatePaused:
		// Resume exactly where we left off; nothing was mutated while paused.
		g.state = g.pausedFrom
	}

	switch g.state {
	case StateTutorial:
		g.updateTutorial(input, dt)
	case StatePlaying:
		g.updatePlaying(input, dt)
	case StateCompleted:
		if input.Has(core.ActionConfirm) || input.Has(core.ActionInteract) {
			g.advanceLevel()
		}
	case StatePaused, StateGameOver, StateVictory:
		// Frozen.
	}

	g.enforceInvariants()
	return g.result()
}

// updateTutorial runs the level 1 intro: the world simulates, but damage and
// pickups are suspended until the hints are done.
func (g *Game) updateTutorial(input core.InputFrame, dt float64) {
	if input.Has(core.ActionInteract) {
		g.tutorialStep++
		if g.tutorialStep >= len(tutorialSteps) {
			g.tutorialDone = true
			g.state = StatePlaying
			return
		}
	}

	speedCap := g.cfg.Player.MaxSpeed * g.effects.SpeedFactor()
	steerPlayer(g.player, input, g.cfg.Player.Acceleration, g.cfg.Player.Deceleration, speedCap, dt)
	moveWithTiles(&g.player.Entity, &g.level.Map, dt)
	g.updateGhosts(dt)
}

// updatePlaying is the core per-frame update for the Playing state.
func (g *Game) updatePlaying(input core.InputFrame, dt float64) {
	g.level.Elapsed += dt
	if g.digCooldown > 0 {
		g.digCooldown -= dt
	}
	if g.player.Invincible > 0 {
		g.player.Invincible -= dt
	}

	if g.puzzleActive {
		// The altar owns input. Player movement and player collisions are
		// suspended; the rest of the world keeps simulating.
		g.updatePuzzle(input)
		g.updateGhosts(dt)
		g.tickEffects(dt)
		g.updateDayNight()
		return
	}

	// 1. Movement with wall resolution.
	speedCap := g.cfg.Player.MaxSpeed * g.effects.SpeedFactor()
	steerPlayer(g.player, input, g.cfg.Player.Acceleration, g.cfg.Player.Deceleration, speedCap, dt)
	moveWithTiles(&g.player.Entity, &g.level.Map, dt)

	g.updateGhosts(dt)

	// 2. Hazards before pickups: a frame with both a ghost touch and a candy
	// pickup applies both, in that order.
	g.checkGhostContact()
	g.updateTraps(dt)
	if g.state != StatePlaying {
		return // hazard ended the run this frame
	}

	// 3. Pickups: direct overlap plus the magnet radius.
	g.collectCandies()

	// 4. Interaction triggers last.
	if input.Has(core.ActionInteract) {
		g.handleInteract()
	}

	g.tickEffects(dt)
	g.updateDayNight()
	g.checkCompletion()
}

// updateGhosts advances ghost AI. Repel and Zombie make the player
// effectively invisible to ghosts.
func (g *Game) updateGhosts(dt float64) {
	hidden := g.effects.Active(EffectRepel) || g.effects.Active(EffectZombie)
	patrol := g.diff.Speed(g.cfg.Ghosts.PatrolSpeed, g.score, int(g.tick))
	chase := g.diff.Speed(g.cfg.Ghosts.ChaseSpeed, g.score, int(g.tick))
	detect := g.diff.DetectionRadius(g.cfg.Ghosts.DetectionRadius, g.score, int(g.tick))

	levelScale := 1.0 + g.cfg.Ghosts.LevelSpeedScale*float64(g.level.Num-1)
	patrol *= levelScale
	chase *= levelScale

	for _, gh := range g.level.Ghosts {
		if gh.update(dt, g.player, &g.level.Map, g.rng, detect, patrol, chase, g.cfg.Ghosts.ChaseSeconds, hidden) {
			g.emit(core.SoundBoo)
		}
	}
}

// checkGhostContact applies contact damage from ghosts.
func (g *Game) checkGhostContact() {
	if g.effects.Active(EffectRepel) || g.effects.Active(EffectZombie) {
		return
	}
	for _, gh := range g.level.Ghosts {
		if gh.Box.Intersects(g.player.Box) {
			g.damagePlayer()
			return
		}
	}
}

// updateTraps arms, burns down and detonates jack-o'-lantern traps.
func (g *Game) updateTraps(dt float64) {
	for _, tr := range g.level.Traps {
		if tr.Exploded {
			continue
		}
		if !tr.Triggered {
			if core.Dist(tr.Box, g.player.Box) <= g.cfg.Traps.TriggerRadius {
				tr.Triggered = true
				tr.Fuse = g.cfg.Traps.FuseSeconds
			}
			continue
		}
		tr.Fuse -= dt
		if tr.Fuse <= 0 {
			tr.Exploded = true
			g.emit(core.SoundExplosion)
			if core.Dist(tr.Box, g.player.Box) <= g.cfg.Traps.DamageRadius {
				g.damagePlayer()
			}
		}
	}
}

// damagePlayer applies one point of contact damage, respecting the
// invincibility window, and ends the run at zero health.
func (g *Game) damagePlayer() {
	if g.player.Invincible > 0 {
		return
	}
	g.player.Health--
	g.player.Invincible = g.cfg.Player.InvincibilitySeconds
	g.emit(core.SoundHurt)

	if g.player.Health <= 0 {
		g.player.Health = 0
		g.gameOver()
	}
}

// collectCandies picks up candies the player overlaps, and with an active
// magnet everything within the magnet radius.
func (g *Game) collectCandies() {
	magnet := g.effects.Active(EffectMagnet)
	for _, c := range g.level.Candies {
		if c.Collected {
			continue
		}
		grab := c.Box.Intersects(g.player.Box)
		if !grab && magnet {
			grab = core.Dist(c.Box, g.player.Box) <= g.cfg.Effects.MagnetRadius
		}
		if grab {
			g.collectCandy(c)
		}
	}
}

// collectCandy removes one candy from play and applies its payload.
func (g *Game) collectCandy(c *Candy) {
	c.Collected = true
	c.Alive = false
	g.level.Collected++
	g.score += c.Points
	g.emit(core.SoundPickup)

	switch c.Flavor {
	case CandyCursed:
		g.effects.Apply(EffectCursed, g.cfg.Effects.CursedSeconds, g.cfg.Effects.CursedFactor)
	case CandyBonus:
		g.heal(1)
	}
}

// handleInteract resolves a single interact press: altar first, then dig
// spots, then easter eggs.
func (g *Game) handleInteract() {
	// Church altar.
	if !g.level.PuzzleDone && TileBox(g.level.AltarTX, g.level.AltarTY).Intersects(g.player.Box) {
		g.puzzleActive = true
		return
	}

	// Cemetery dig. Each spot counts its own presses; the cooldown only
	// spaces out button mashing.
	if spot := g.level.DigSpotAt(g.player.Box); spot != nil && !spot.Done {
		if g.digCooldown > 0 {
			return
		}
		g.digCooldown = g.cfg.Levels.DigCooldownSeconds
		g.emit(core.SoundDig)
		if spot.Dig(g.cfg.Levels.DigPresses) {
			g.applyPowerUp(EffectZombie)
			g.emit(core.SoundChime)
		}
		return
	}

	// Easter eggs.
	for _, egg := range g.level.Eggs {
		if !egg.Used && egg.Box.Intersects(g.player.Box) {
			egg.Used = true
			g.eggReward()
			g.emit(core.SoundChime)
			return
		}
	}
}

// updatePuzzle feeds input into the altar puzzle and applies its rewards.
func (g *Game) updatePuzzle(input core.InputFrame) {
	switch g.level.Puzzle.HandleInput(input, g.rng) {
	case PuzzleSolved:
		g.level.PuzzleDone = true
		g.puzzleActive = false
		g.score += g.cfg.Scoring.PuzzleScore
		g.heal(1)
		g.emit(core.SoundChime)
	case PuzzleCanceled:
		g.puzzleActive = false
	}
}

// eggReward grants a random easter egg prize.
func (g *Game) eggReward() {
	switch g.rng.Intn(6) {
	case 0:
		g.applyPowerUp(EffectMagnet)
	case 1:
		g.applyPowerUp(EffectRepel)
	case 2:
		g.applyPowerUp(EffectSpeed)
	case 3:
		g.applyPowerUp(EffectZombie)
	case 4:
		g.score += 50
	case 5:
		g.heal(1)
	}
}

// applyPowerUp activates a power-up with its configured duration and records
// first-time discoveries in the unlocked set.
func (g *Game) applyPowerUp(kind EffectKind) {
	e := g.cfg.Effects
	switch kind {
	case EffectMagnet:
		g.effects.Apply(EffectMagnet, e.MagnetSeconds, 1)
	case EffectRepel:
		g.effects.Apply(EffectRepel, e.RepelSeconds, 1)
	case EffectSpeed:
		g.effects.Apply(EffectSpeed, e.SpeedSeconds, e.SpeedFactor)
	case EffectZombie:
		g.effects.Apply(EffectZombie, e.ZombieSeconds, 1)
	default:
		return
	}

	if !g.unlockedSet[kind] {
		g.unlockedSet[kind] = true
		g.unlocked = append(g.unlocked, kind)
	}
}

// heal restores health up to the configured cap.
func (g *Game) heal(n int) {
	before := g.player.Health
	g.player.Health = core.Clamp(g.player.Health+n, 0, g.cfg.Player.MaxHealth)
	if g.player.Health > before {
		g.emit(core.SoundHeal)
	}
}

// tickEffects advances effect timers.
func (g *Game) tickEffects(dt float64) {
	g.effects.Tick(dt)
}

// updateDayNight flips a level into night once its timer crosses the
// threshold and spawns the extra night ghosts. Permanent-night levels start
// dark and skip the timer entirely.
func (g *Game) updateDayNight() {
	if g.level.Night {
		if !g.level.nightSpawned && g.level.PermanentNight {
			g.level.SpawnNightGhosts(g.rng, g.cfg)
		}
		return
	}
	if g.level.Elapsed >= g.cfg.Levels.NightThresholdSeconds {
		g.level.Night = true
		g.level.SpawnNightGhosts(g.rng, g.cfg)
		g.emit(core.SoundBoo)
	}
}

// checkCompletion fires the Playing to Completed transition: all candies
// collected, player back at the start door, at least one health.
func (g *Game) checkCompletion() {
	if g.state != StatePlaying || g.level.Completed {
		return
	}
	if g.level.Collected < g.cfg.Candy.PerLevel {
		return
	}
	if g.player.Health < 1 {
		return
	}
	if !TileBox(g.level.StartTX, g.level.StartTY).Intersects(g.player.Box) {
		return
	}

	g.level.Completed = true
	g.completionBonus = g.cfg.Scoring.HealthBonus*g.player.Health + g.timeBonus()
	g.score += g.completionBonus
	g.emit(core.SoundWin)

	if g.level.Num >= g.cfg.Levels.Count {
		g.state = StateVictory
		g.emit(core.SoundGameOver)
		g.saveProgress(SaveState{
			Level:    g.level.Num,
			Score:    g.score,
			Health:   g.player.Health,
			Unlocked: g.unlocked,
		})
		return
	}

	g.state = StateCompleted
	g.saveProgress(SaveState{
		Level:    g.level.Num + 1,
		Score:    g.score,
		Health:   g.player.Health,
		Unlocked: g.unlocked,
	})
}

// timeBonus is the additive fast-completion reward: it starts at the
// configured maximum and loses one point per elapsed second.
func (g *Game) timeBonus() int {
	bonus := g.cfg.Scoring.TimeBonusMax - int(g.level.Elapsed)
	if bonus < 0 {
		bonus = 0
	}
	return bonus
}

// advanceLevel regenerates the next level, carrying score, health and
// unlocks forward.
func (g *Game) advanceLevel() {
	g.loadLevel(g.level.Num+1, g.player.Health)
	g.state = StatePlaying
}

// gameOver freezes the run and persists the final state.
func (g *Game) gameOver() {
	g.state = StateGameOver
	g.emit(core.SoundGameOver)
	g.saveProgress(SaveState{
		Level:    g.level.Num,
		Score:    g.score,
		Health:   0,
		Unlocked: g.unlocked,
	})
}

// restartLevel restores the start-of-level snapshot after a game over.
func (g *Game) restartLevel() {
	g.score = g.levelStartScore
	g.loadLevel(g.level.Num, g.levelStartHealth)
	g.state = StatePlaying
}

// saveProgress hands the save to the persistence adapter. Failure is a
// notice, never a stop.
func (g *Game) saveProgress(s SaveState) {
	if g.saver == nil {
		return
	}
	if err := g.saver.SaveProgress(s); err != nil {
		g.warn(fmt.Sprintf("progress not saved: %v", err))
	}
}

// enforceInvariants clamps state that must never escape its bounds. Normal
// transitions cannot violate these; a clamp here is a bug being contained.
func (g *Game) enforceInvariants() {
	if g.player == nil || g.level == nil {
		return
	}
	if g.player.Health < 0 {
		g.warn(fmt.Sprintf("health %d below zero, clamped", g.player.Health))
		g.player.Health = 0
	}
	if g.player.Health > g.cfg.Player.MaxHealth {
		g.warn(fmt.Sprintf("health %d above cap, clamped", g.player.Health))
		g.player.Health = g.cfg.Player.MaxHealth
	}
	if g.level.Collected < 0 {
		g.warn("candy counter below zero, clamped")
		g.level.Collected = 0
	}
	if g.level.Collected > g.cfg.Candy.PerLevel {
		g.warn(fmt.Sprintf("candy counter %d above %d, clamped", g.level.Collected, g.cfg.Candy.PerLevel))
		g.level.Collected = g.cfg.Candy.PerLevel
	}
}

// emit queues a sound trigger for this tick's StepResult.
func (g *Game) emit(s core.Sound) {
	g.sounds = append(g.sounds, s)
}

// warn queues a warning for this tick's StepResult.
func (g *Game) warn(msg string) {
	g.warnings = append(g.warnings, msg)
}

// result assembles the StepResult for the current tick.
func (g *Game) result() core.StepResult {
	res := core.StepResult{State: g.State()}
	if len(g.sounds) > 0 {
		res.Sounds = append([]core.Sound(nil), g.sounds...)
	}
	if len(g.warnings) > 0 {
		res.Warnings = append([]string(nil), g.warnings...)
	}
	return res
}

// State returns the platform-facing session state.
func (g *Game) State() core.GameState {
	st := core.GameState{Score: g.score}
	if g.level != nil {
		st.Level = g.level.Num
	}
	if g.player != nil {
		st.Health = g.player.Health
	}
	st.GameOver = g.state == StateGameOver || g.state == StateVictory
	st.Victory = g.state == StateVictory
	st.Paused = g.state == StatePaused
	return st
}

// Session returns the current session state, for the platform's overlays.
func (g *Game) Session() SessionState { return g.state }

// Level returns the active level.
func (g *Game) Level() *Level { return g.level }

// Player returns the player entity.
func (g *Game) Player() *Player { return g.player }

// Effects returns the active status effects in application order.
func (g *Game) Effects() []Effect { return g.effects.List() }

// Unlocked returns the power-up kinds discovered this run.
func (g *Game) Unlocked() []EffectKind {
	return append([]EffectKind(nil), g.unlocked...)
}

// PuzzleActive reports whether the altar puzzle currently owns input.
func (g *Game) PuzzleActive() bool { return g.puzzleActive }

// CompletionBonus returns the bonus awarded for the last completed level.
func (g *Game) CompletionBonus() int { return g.completionBonus }

// TutorialHint returns the current tutorial line, or "" outside the tutorial.
func (g *Game) TutorialHint() string {
	if g.state != StateTutorial || g.tutorialStep >= len(tutorialSteps) {
		return ""
	}
	return tutorialSteps[g.tutorialStep]
}
