package haunt

import (
	"math"
	"math/rand"

	"github.com/bmkoscak/halloween-haunt/internal/config"
	"github.com/bmkoscak/halloween-haunt/internal/core"
)

// Level holds all per-level simulation state: terrain, entities, the two
// mini-game sub-states and the progression counters.
type Level struct {
	Num int // 1-based level number

	Map      TileMap
	Candies  []*Candy
	Ghosts   []*Ghost
	Traps    []*Trap
	Eggs     []*EasterEgg
	DigSpots []*DigSpot

	Puzzle     *ChurchPuzzle
	PuzzleDone bool

	StartTX, StartTY int // starting house door: spawn and exit tile
	AltarTX, AltarTY int

	Collected      int     // candies collected, 0..Candy.PerLevel
	Elapsed        float64 // seconds of Playing time in this level
	Night          bool
	PermanentNight bool
	nightSpawned   bool
	Completed      bool

	reachable [MapWidth][MapHeight]bool // walkable tiles connected to the start door
}

// GenerateLevel builds the terrain and spawns entities for the given level
// number. Generation is fully driven by rng, so a fixed seed reproduces the
// identical level.
func GenerateLevel(num int, rng *rand.Rand, cfg config.HauntConfig) *Level {
	lv := &Level{
		Num:            num,
		PermanentNight: num >= cfg.Levels.PermanentNightFrom,
	}
	lv.Night = lv.PermanentNight

	lv.buildTerrain(rng, num)
	lv.spawnCandies(rng, cfg)
	lv.spawnGhosts(rng, ghostCount(num, cfg))
	if num >= cfg.Traps.MinLevel {
		lv.spawnTraps(rng, 3)
	}
	lv.spawnEggs(rng, 2)
	lv.Puzzle = NewChurchPuzzle(rng)
	return lv
}

// ghostCount returns the number of ghosts a level starts with.
func ghostCount(num int, cfg config.HauntConfig) int {
	n := cfg.Ghosts.BaseCount + num
	if n > cfg.Ghosts.Cap {
		n = cfg.Ghosts.Cap
	}
	return n
}

// buildTerrain lays out the town: border walls, crossing streets, the
// starting house, the church with its altar, the cemetery with dig spots,
// and scattered houses and trees.
func (lv *Level) buildTerrain(rng *rand.Rand, num int) {
	m := &lv.Map

	// Border walls.
	for tx := 0; tx < MapWidth; tx++ {
		m.Set(tx, 0, TileWall)
		m.Set(tx, MapHeight-1, TileWall)
	}
	for ty := 0; ty < MapHeight; ty++ {
		m.Set(0, ty, TileWall)
		m.Set(MapWidth-1, ty, TileWall)
	}

	// Crossing streets through the town center.
	for tx := 1; tx < MapWidth-1; tx++ {
		m.Set(tx, 10, TileStreet)
	}
	for ty := 1; ty < MapHeight-1; ty++ {
		m.Set(15, ty, TileStreet)
	}

	// Starting house with its door below. The door is both spawn and exit.
	for ty := 2; ty <= 3; ty++ {
		for tx := 2; tx <= 4; tx++ {
			m.Set(tx, ty, TileHouse)
		}
	}
	lv.StartTX, lv.StartTY = 3, 4
	m.Set(lv.StartTX, lv.StartTY, TileDoor)

	// Church: solid shell, walkable interior, altar in the middle.
	for ty := 2; ty <= 7; ty++ {
		for tx := 21; tx <= 27; tx++ {
			onEdge := ty == 2 || ty == 7 || tx == 21 || tx == 27
			if onEdge {
				m.Set(tx, ty, TileChurch)
			} else {
				m.Set(tx, ty, TileStreet)
			}
		}
	}
	m.Set(24, 7, TileChurchDoor)
	lv.AltarTX, lv.AltarTY = 24, 4
	m.Set(lv.AltarTX, lv.AltarTY, TileAltar)

	// Cemetery: walled yard with a gate and scattered graves.
	for ty := 13; ty <= 18; ty++ {
		for tx := 2; tx <= 10; tx++ {
			onEdge := ty == 13 || ty == 18 || tx == 2 || tx == 10
			if onEdge {
				m.Set(tx, ty, TileWall)
			} else {
				m.Set(tx, ty, TileGrass)
			}
		}
	}
	m.Set(6, 13, TileCemeteryGate)
	var graves []*DigSpot
	for ty := 14; ty <= 17; ty++ {
		for tx := 3; tx <= 9; tx++ {
			if (tx+ty)%2 == 0 && rng.Float64() < 0.7 {
				m.Set(tx, ty, TileGrave)
				graves = append(graves, &DigSpot{TX: tx, TY: ty})
			}
		}
	}

	// Three of the graves are diggable.
	rng.Shuffle(len(graves), func(i, j int) { graves[i], graves[j] = graves[j], graves[i] })
	for i := 0; i < 3 && i < len(graves); i++ {
		lv.DigSpots = append(lv.DigSpots, graves[i])
	}

	// Scattered houses and trees grow with the level number.
	lv.scatterBlocks(rng, 4+num, TileHouse, 2)
	lv.scatterBlocks(rng, 8+num, TileTree, 1)

	lv.computeReachable()
}

// scatterBlocks places square blocks of a tile kind on free grass, keeping
// clear of the spawn area and the entry corridors.
func (lv *Level) scatterBlocks(rng *rand.Rand, count int, kind TileKind, size int) {
	for range count {
		for range 20 {
			tx := 1 + rng.Intn(MapWidth-size-1)
			ty := 1 + rng.Intn(MapHeight-size-1)
			if !lv.areaIsGrass(tx, ty, size) || lv.nearSpawn(tx, ty) || coversEntry(tx, ty, size) {
				continue
			}
			for dy := 0; dy < size; dy++ {
				for dx := 0; dx < size; dx++ {
					lv.Map.Set(tx+dx, ty+dy, kind)
				}
			}
			break
		}
	}
}

// areaIsGrass reports whether a square region is entirely plain grass.
func (lv *Level) areaIsGrass(tx, ty, size int) bool {
	for dy := 0; dy < size; dy++ {
		for dx := 0; dx < size; dx++ {
			if lv.Map.At(tx+dx, ty+dy) != TileGrass {
				return false
			}
		}
	}
	return true
}

// nearSpawn reports whether a tile is within two tiles of the start door.
func (lv *Level) nearSpawn(tx, ty int) bool {
	return core.Abs(tx-lv.StartTX) <= 2 && core.Abs(ty-lv.StartTY) <= 2
}

// entryCorridors are the grass tiles kept free of scattered blocks so the
// start door, the church door and the cemetery gate stay connected to the
// streets.
var entryCorridors = [][2]int{
	{3, 5}, {3, 6}, {3, 7}, {3, 8}, {3, 9}, // start door down to the street
	{24, 8}, {24, 9}, // church door down to the street
	{6, 11}, {6, 12}, // cemetery gate up to the street
}

// coversEntry reports whether a block footprint touches an entry corridor
// or the cemetery yard.
func coversEntry(tx, ty, size int) bool {
	for _, c := range entryCorridors {
		if c[0] >= tx && c[0] < tx+size && c[1] >= ty && c[1] < ty+size {
			return true
		}
	}
	return tx+size > 2 && tx <= 10 && ty+size > 13 && ty <= 18
}

// computeReachable flood-fills the walkable tiles connected to the start
// door. Spawn placement is restricted to this set.
func (lv *Level) computeReachable() {
	queue := [][2]int{{lv.StartTX, lv.StartTY}}
	lv.reachable[lv.StartTX][lv.StartTY] = true
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		for _, d := range [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
			nx, ny := c[0]+d[0], c[1]+d[1]
			if nx < 0 || nx >= MapWidth || ny < 0 || ny >= MapHeight {
				continue
			}
			if lv.reachable[nx][ny] || lv.Map.At(nx, ny).Solid() {
				continue
			}
			lv.reachable[nx][ny] = true
			queue = append(queue, [2]int{nx, ny})
		}
	}
}

// spawnCandies scatters the level's candies on walkable tiles.
// Roughly 70% normal, 20% cursed, 10% bonus.
func (lv *Level) spawnCandies(rng *rand.Rand, cfg config.HauntConfig) {
	for range cfg.Candy.PerLevel {
		tx, ty, ok := lv.randomFreeTile(rng, 0)
		if !ok {
			break
		}
		roll := rng.Float64()
		switch {
		case roll < 0.10:
			lv.Candies = append(lv.Candies, NewCandy(tx, ty, CandyBonus, cfg.Candy.BonusPoints))
		case roll < 0.30:
			lv.Candies = append(lv.Candies, NewCandy(tx, ty, CandyCursed, cfg.Candy.CursedPoints))
		default:
			lv.Candies = append(lv.Candies, NewCandy(tx, ty, CandyNormal, cfg.Candy.NormalPoints))
		}
	}
}

// spawnGhosts places ghosts on walkable tiles away from the player spawn.
func (lv *Level) spawnGhosts(rng *rand.Rand, count int) {
	const safeDist = 200.0
	for range count {
		tx, ty, ok := lv.randomFreeTile(rng, safeDist)
		if !ok {
			return
		}
		cx, cy := TileCenter(tx, ty)
		lv.Ghosts = append(lv.Ghosts, NewGhost(cx, cy))
	}
}

// SpawnNightGhosts adds the nightfall ghosts, respecting the per-level cap.
// It is a no-op after the first call.
func (lv *Level) SpawnNightGhosts(rng *rand.Rand, cfg config.HauntConfig) int {
	if lv.nightSpawned {
		return 0
	}
	lv.nightSpawned = true

	added := 0
	for range cfg.Ghosts.NightExtra {
		if len(lv.Ghosts) >= cfg.Ghosts.Cap {
			break
		}
		tx, ty, ok := lv.randomFreeTile(rng, 150)
		if !ok {
			break
		}
		cx, cy := TileCenter(tx, ty)
		lv.Ghosts = append(lv.Ghosts, NewGhost(cx, cy))
		added++
	}
	return added
}

// spawnTraps places jack-o'-lantern traps away from the spawn.
func (lv *Level) spawnTraps(rng *rand.Rand, count int) {
	for range count {
		tx, ty, ok := lv.randomFreeTile(rng, 150)
		if !ok {
			return
		}
		lv.Traps = append(lv.Traps, NewTrap(tx, ty))
	}
}

// spawnEggs hides easter eggs on walkable tiles.
func (lv *Level) spawnEggs(rng *rand.Rand, count int) {
	for range count {
		tx, ty, ok := lv.randomFreeTile(rng, 100)
		if !ok {
			return
		}
		lv.Eggs = append(lv.Eggs, NewEasterEgg(tx, ty))
	}
}

// randomFreeTile picks a random walkable, unoccupied tile reachable from
// the start door and at least minDist world units away from it. Returns
// ok=false when no spot was found within the attempt budget.
func (lv *Level) randomFreeTile(rng *rand.Rand, minDist float64) (int, int, bool) {
	sx, sy := TileCenter(lv.StartTX, lv.StartTY)
	for range 200 {
		tx := 1 + rng.Intn(MapWidth-2)
		ty := 1 + rng.Intn(MapHeight-2)
		t := lv.Map.At(tx, ty)
		if t.Solid() || t == TileDoor || t == TileAltar {
			continue
		}
		if !lv.reachable[tx][ty] {
			continue
		}
		cx, cy := TileCenter(tx, ty)
		if minDist > 0 && math.Hypot(cx-sx, cy-sy) < minDist {
			continue
		}
		if lv.occupied(tx, ty) {
			continue
		}
		return tx, ty, true
	}
	return 0, 0, false
}

// occupied reports whether a spawned object already sits on the tile.
func (lv *Level) occupied(tx, ty int) bool {
	box := TileBox(tx, ty)
	for _, c := range lv.Candies {
		if !c.Collected && c.Box.Intersects(box) {
			return true
		}
	}
	for _, tr := range lv.Traps {
		if tr.Box.Intersects(box) {
			return true
		}
	}
	for _, e := range lv.Eggs {
		if e.Box.Intersects(box) {
			return true
		}
	}
	return false
}

// CandiesRemaining returns the number of uncollected candies.
func (lv *Level) CandiesRemaining() int {
	n := 0
	for _, c := range lv.Candies {
		if !c.Collected {
			n++
		}
	}
	return n
}

// DigSpotAt returns the dig spot whose tile box overlaps the given box,
// or nil if there is none.
func (lv *Level) DigSpotAt(b core.Box) *DigSpot {
	for _, d := range lv.DigSpots {
		if d.Box().Intersects(b) {
			return d
		}
	}
	return nil
}
