package haunt

import (
	"math"
	"math/rand"

	"github.com/bmkoscak/halloween-haunt/internal/core"
)

// Entity body sizes in world units.
const (
	PlayerSize = 24.0
	GhostSize  = 24.0
	CandySize  = 16.0
	TrapSize   = 20.0
	EggSize    = 20.0
)

// EntityKind tags the variant of a world object. Everything that moves or
// collides is one of these; kind-specific payload lives on the owning struct.
type EntityKind int

const (
	KindPlayer EntityKind = iota
	KindGhost
	KindCandy
	KindTrap
	KindEgg
)

// Entity is the shared base of all world objects: a bounding box, a velocity
// and an alive flag. Velocities are world units per tick at the reference
// tick rate; movement code scales them by dt.
type Entity struct {
	Box    core.Box
	VX, VY float64
	Kind   EntityKind
	Alive  bool
}

// Player is the candy collector.
type Player struct {
	Entity
	Health     int
	Invincible float64 // seconds of damage immunity remaining
}

// NewPlayer spawns the player centered on a tile with the given health.
func NewPlayer(tx, ty int, health int) *Player {
	cx, cy := TileCenter(tx, ty)
	return &Player{
		Entity: Entity{
			Box:   core.NewBox(cx-PlayerSize/2, cy-PlayerSize/2, PlayerSize, PlayerSize),
			Kind:  KindPlayer,
			Alive: true,
		},
		Health: health,
	}
}

// GhostMode is the AI state of a ghost.
type GhostMode int

const (
	GhostPatrol GhostMode = iota
	GhostChase
	GhostReturn
)

// String returns the AI state name.
func (m GhostMode) String() string {
	switch m {
	case GhostPatrol:
		return "patrol"
	case GhostChase:
		return "chase"
	case GhostReturn:
		return "return"
	default:
		return "unknown"
	}
}

// Ghost is a wandering enemy. It patrols around its home point, chases the
// player on sight and drifts back home after losing them.
type Ghost struct {
	Entity
	Mode       GhostMode
	HomeX      float64
	HomeY      float64
	TargetX    float64
	TargetY    float64
	ChaseTimer float64 // seconds of chase left after losing sight
}

// NewGhost spawns a ghost at a world position that doubles as its home.
func NewGhost(x, y float64) *Ghost {
	return &Ghost{
		Entity: Entity{
			Box:   core.NewBox(x-GhostSize/2, y-GhostSize/2, GhostSize, GhostSize),
			Kind:  KindGhost,
			Alive: true,
		},
		Mode:    GhostPatrol,
		HomeX:   x,
		HomeY:   y,
		TargetX: x,
		TargetY: y,
	}
}

// CandyKind identifies the flavor of a candy pickup.
type CandyKind int

const (
	CandyNormal CandyKind = iota
	CandyCursed           // extra points, slows the player for a while
	CandyBonus            // extra points plus one health
)

// Candy is a collectible. Collected candies are removed from play; the level
// counter, not an inventory, tracks progress.
type Candy struct {
	Entity
	Flavor    CandyKind
	Points    int
	Collected bool
}

// NewCandy spawns a candy centered on a tile.
func NewCandy(tx, ty int, flavor CandyKind, points int) *Candy {
	cx, cy := TileCenter(tx, ty)
	return &Candy{
		Entity: Entity{
			Box:   core.NewBox(cx-CandySize/2, cy-CandySize/2, CandySize, CandySize),
			Kind:  KindCandy,
			Alive: true,
		},
		Flavor: flavor,
		Points: points,
	}
}

// Trap is a jack-o'-lantern. Stepping into its trigger radius lights the
// fuse; when the fuse runs out it detonates once, damaging anything inside
// the damage radius.
type Trap struct {
	Entity
	Triggered bool
	Fuse      float64 // seconds until detonation once triggered
	Exploded  bool
}

// NewTrap spawns a trap centered on a tile.
func NewTrap(tx, ty int) *Trap {
	cx, cy := TileCenter(tx, ty)
	return &Trap{
		Entity: Entity{
			Box:   core.NewBox(cx-TrapSize/2, cy-TrapSize/2, TrapSize, TrapSize),
			Kind:  KindTrap,
			Alive: true,
		},
	}
}

// EasterEgg is a hidden one-shot interactable granting a random reward.
type EasterEgg struct {
	Entity
	Used bool
}

// NewEasterEgg spawns an easter egg centered on a tile.
func NewEasterEgg(tx, ty int) *EasterEgg {
	cx, cy := TileCenter(tx, ty)
	return &EasterEgg{
		Entity: Entity{
			Box:   core.NewBox(cx-EggSize/2, cy-EggSize/2, EggSize, EggSize),
			Kind:  KindEgg,
			Alive: true,
		},
	}
}

// update advances one ghost's AI and movement for a tick.
// Sight and speed parameters come from the caller so difficulty scaling
// stays in one place. Returns true if the ghost entered chase this tick.
func (gh *Ghost) update(dt float64, player *Player, tm *TileMap, rng *rand.Rand, detectRadius, patrolSpeed, chaseSpeed, chaseSeconds float64, playerHidden bool) bool {
	px, py := player.Box.Center()
	gx, gy := gh.Box.Center()
	dist := math.Hypot(px-gx, py-gy)

	startedChase := false
	inSight := !playerHidden && dist <= detectRadius

	switch gh.Mode {
	case GhostPatrol:
		if inSight {
			gh.Mode = GhostChase
			gh.ChaseTimer = chaseSeconds
			startedChase = true
			break
		}
		// Reached the patrol target, pick a new one near home.
		if math.Hypot(gh.TargetX-gx, gh.TargetY-gy) < TileSize/2 {
			gh.pickPatrolTarget(rng, tm)
		}
	case GhostChase:
		if inSight {
			gh.ChaseTimer = chaseSeconds
		} else {
			gh.ChaseTimer -= dt
			if gh.ChaseTimer <= 0 {
				gh.Mode = GhostReturn
			}
		}
	case GhostReturn:
		if inSight {
			gh.Mode = GhostChase
			gh.ChaseTimer = chaseSeconds
			startedChase = true
			break
		}
		if math.Hypot(gh.HomeX-gx, gh.HomeY-gy) < TileSize/2 {
			gh.Mode = GhostPatrol
			gh.pickPatrolTarget(rng, tm)
		}
	}

	// Pick movement target and speed from the current mode.
	var tx, ty, speed float64
	switch gh.Mode {
	case GhostChase:
		tx, ty, speed = px, py, chaseSpeed
	case GhostReturn:
		tx, ty, speed = gh.HomeX, gh.HomeY, patrolSpeed
	default:
		tx, ty, speed = gh.TargetX, gh.TargetY, patrolSpeed
	}

	dx, dy := tx-gx, ty-gy
	length := math.Hypot(dx, dy)
	if length > 1 {
		gh.VX = dx / length * speed
		gh.VY = dy / length * speed
	} else {
		gh.VX, gh.VY = 0, 0
	}

	moveWithTiles(&gh.Entity, tm, dt)
	return startedChase
}

// pickPatrolTarget chooses a random walkable point within a few tiles of home.
func (gh *Ghost) pickPatrolTarget(rng *rand.Rand, tm *TileMap) {
	const patrolRange = 4 * TileSize
	for range 10 {
		tx := gh.HomeX + (rng.Float64()*2-1)*patrolRange
		ty := gh.HomeY + (rng.Float64()*2-1)*patrolRange
		tx = core.ClampF(tx, TileSize, WorldW()-TileSize)
		ty = core.ClampF(ty, TileSize, WorldH()-TileSize)
		if tm.TileAtWorld(tx, ty).Solid() {
			continue
		}
		gh.TargetX = tx
		gh.TargetY = ty
		return
	}
	// Nowhere walkable nearby, head home.
	gh.TargetX = gh.HomeX
	gh.TargetY = gh.HomeY
}
