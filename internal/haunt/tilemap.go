// Package haunt implements the Halloween Haunt: Candy Quest simulation core.
// The package is pure game logic: it consumes input frames, advances entity
// and level state per tick, and hands rendering off as screen cells and
// sound triggers. It never touches the terminal, audio, or the database.
package haunt

import "github.com/bmkoscak/halloween-haunt/internal/core"

// World dimensions in tiles and world units per tile.
const (
	TileSize  = 32.0
	MapWidth  = 30
	MapHeight = 20
)

// TileKind identifies the terrain of a single map tile.
type TileKind int

const (
	TileGrass TileKind = iota
	TileStreet
	TileHouse
	TileWall
	TileChurch
	TileGrave
	TileTree
	TileDoor         // starting house door: spawn point and level exit
	TileChurchDoor   // walkable entry into the church
	TileCemeteryGate // walkable entry into the cemetery
	TileAltar        // walkable tile inside the church hosting the puzzle
)

// Solid reports whether the tile blocks movement.
func (t TileKind) Solid() bool {
	switch t {
	case TileHouse, TileWall, TileChurch, TileTree:
		return true
	default:
		return false
	}
}

// TileMap is the level's terrain grid.
type TileMap struct {
	tiles [MapHeight][MapWidth]TileKind
}

// At returns the tile at grid coordinates, treating out-of-bounds as Wall.
func (m *TileMap) At(tx, ty int) TileKind {
	if tx < 0 || tx >= MapWidth || ty < 0 || ty >= MapHeight {
		return TileWall
	}
	return m.tiles[ty][tx]
}

// Set places a tile kind at grid coordinates. Out-of-bounds is ignored.
func (m *TileMap) Set(tx, ty int, t TileKind) {
	if tx < 0 || tx >= MapWidth || ty < 0 || ty >= MapHeight {
		return
	}
	m.tiles[ty][tx] = t
}

// TileBox returns the world-space bounding box of a tile.
func TileBox(tx, ty int) core.Box {
	return core.NewBox(float64(tx)*TileSize, float64(ty)*TileSize, TileSize, TileSize)
}

// TileCenter returns the world-space center of a tile.
func TileCenter(tx, ty int) (float64, float64) {
	return (float64(tx) + 0.5) * TileSize, (float64(ty) + 0.5) * TileSize
}

// WorldW returns the map width in world units.
func WorldW() float64 { return MapWidth * TileSize }

// WorldH returns the map height in world units.
func WorldH() float64 { return MapHeight * TileSize }

// BlocksBox reports whether any solid tile overlaps the given world box.
func (m *TileMap) BlocksBox(b core.Box) bool {
	minTX := int(b.X / TileSize)
	minTY := int(b.Y / TileSize)
	maxTX := int((b.Right() - 0.001) / TileSize)
	maxTY := int((b.Bottom() - 0.001) / TileSize)

	for ty := minTY; ty <= maxTY; ty++ {
		for tx := minTX; tx <= maxTX; tx++ {
			if m.At(tx, ty).Solid() {
				return true
			}
		}
	}
	return false
}

// TileAtWorld returns the tile under a world-space point.
func (m *TileMap) TileAtWorld(x, y float64) TileKind {
	return m.At(int(x/TileSize), int(y/TileSize))
}

// Walkable reports whether a tile can host a spawned object.
func (m *TileMap) Walkable(tx, ty int) bool {
	return !m.At(tx, ty).Solid()
}
