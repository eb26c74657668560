package haunt

import (
	"math/rand"
	"reflect"
	"testing"

	"github.com/bmkoscak/halloween-haunt/internal/config"
	"github.com/bmkoscak/halloween-haunt/internal/core"
)

func TestGenerateLevelDeterminism(t *testing.T) {
	cfg := config.DefaultHauntConfig()

	a := GenerateLevel(2, rand.New(rand.NewSource(99)), cfg)
	b := GenerateLevel(2, rand.New(rand.NewSource(99)), cfg)

	if a.Map != b.Map {
		t.Error("same seed must produce identical terrain")
	}
	if len(a.Candies) != len(b.Candies) {
		t.Fatalf("candy counts differ: %d vs %d", len(a.Candies), len(b.Candies))
	}
	for i := range a.Candies {
		if a.Candies[i].Box != b.Candies[i].Box || a.Candies[i].Flavor != b.Candies[i].Flavor {
			t.Errorf("candy %d differs between identical seeds", i)
		}
	}
	if !reflect.DeepEqual(a.Ghosts, b.Ghosts) {
		t.Error("ghost spawns differ between identical seeds")
	}
}

func TestGenerateLevelCandyCount(t *testing.T) {
	cfg := config.DefaultHauntConfig()
	for num := 1; num <= cfg.Levels.Count; num++ {
		lv := GenerateLevel(num, rand.New(rand.NewSource(int64(num))), cfg)
		if len(lv.Candies) != cfg.Candy.PerLevel {
			t.Errorf("level %d spawned %d candies, expected %d", num, len(lv.Candies), cfg.Candy.PerLevel)
		}
	}
}

func TestGenerateLevelGhostCount(t *testing.T) {
	cfg := config.DefaultHauntConfig()
	tests := []struct {
		num  int
		want int
	}{
		{1, 4}, // base 3 + level
		{2, 5},
		{4, 7},
		{5, 8}, // capped
	}
	for _, tc := range tests {
		lv := GenerateLevel(tc.num, rand.New(rand.NewSource(7)), cfg)
		if len(lv.Ghosts) != tc.want {
			t.Errorf("level %d ghost count = %d, expected %d", tc.num, len(lv.Ghosts), tc.want)
		}
	}
}

func TestGenerateLevelTrapsOnlyLateLevels(t *testing.T) {
	cfg := config.DefaultHauntConfig()

	early := GenerateLevel(3, rand.New(rand.NewSource(7)), cfg)
	if len(early.Traps) != 0 {
		t.Errorf("level 3 spawned %d traps, expected none before level %d", len(early.Traps), cfg.Traps.MinLevel)
	}

	late := GenerateLevel(4, rand.New(rand.NewSource(7)), cfg)
	if len(late.Traps) == 0 {
		t.Error("level 4 should spawn traps")
	}
}

func TestGenerateLevelPermanentNight(t *testing.T) {
	cfg := config.DefaultHauntConfig()

	day := GenerateLevel(3, rand.New(rand.NewSource(7)), cfg)
	if day.Night || day.PermanentNight {
		t.Error("level 3 should start in daylight")
	}

	night := GenerateLevel(4, rand.New(rand.NewSource(7)), cfg)
	if !night.Night || !night.PermanentNight {
		t.Error("level 4 should start in permanent night")
	}
}

func TestGenerateLevelStructure(t *testing.T) {
	cfg := config.DefaultHauntConfig()
	lv := GenerateLevel(1, rand.New(rand.NewSource(7)), cfg)

	if lv.Map.At(lv.StartTX, lv.StartTY) != TileDoor {
		t.Error("start position must be the door tile")
	}
	if lv.Map.At(lv.AltarTX, lv.AltarTY) != TileAltar {
		t.Error("altar marker must sit on the altar tile")
	}
	if len(lv.DigSpots) == 0 {
		t.Error("level should have dig spots in the cemetery")
	}
	for _, d := range lv.DigSpots {
		if lv.Map.At(d.TX, d.TY) != TileGrave {
			t.Errorf("dig spot at (%d,%d) is not on a grave tile", d.TX, d.TY)
		}
	}
	if lv.Puzzle == nil {
		t.Error("level should carry a church puzzle")
	}
}

func TestGenerateLevelKeepsEntryTilesOpen(t *testing.T) {
	cfg := config.DefaultHauntConfig()
	entries := [][2]int{
		{24, 8}, {24, 9}, // below the church door
		{6, 11}, {6, 12}, // above the cemetery gate
		{3, 5}, // below the start door
	}
	for seed := int64(0); seed < 500; seed++ {
		for num := 1; num <= cfg.Levels.Count; num++ {
			lv := GenerateLevel(num, rand.New(rand.NewSource(seed)), cfg)
			for _, e := range entries {
				if lv.Map.At(e[0], e[1]).Solid() {
					t.Fatalf("seed %d level %d: entry tile (%d,%d) is solid", seed, num, e[0], e[1])
				}
			}
		}
	}
}

func TestGenerateLevelSpawnsStayReachable(t *testing.T) {
	cfg := config.DefaultHauntConfig()
	tileOf := func(b core.Box) (int, int) {
		cx, cy := b.Center()
		return int(cx / TileSize), int(cy / TileSize)
	}
	for seed := int64(0); seed < 500; seed++ {
		for num := 1; num <= cfg.Levels.Count; num++ {
			lv := GenerateLevel(num, rand.New(rand.NewSource(seed)), cfg)

			if !lv.reachable[lv.AltarTX][lv.AltarTY] {
				t.Fatalf("seed %d level %d: altar walled off from the start door", seed, num)
			}
			for _, d := range lv.DigSpots {
				if !lv.reachable[d.TX][d.TY] {
					t.Fatalf("seed %d level %d: dig spot (%d,%d) walled off", seed, num, d.TX, d.TY)
				}
			}
			for i, c := range lv.Candies {
				tx, ty := tileOf(c.Box)
				if !lv.reachable[tx][ty] {
					t.Fatalf("seed %d level %d: candy %d at (%d,%d) walled off", seed, num, i, tx, ty)
				}
			}
			for i, e := range lv.Eggs {
				tx, ty := tileOf(e.Box)
				if !lv.reachable[tx][ty] {
					t.Fatalf("seed %d level %d: egg %d at (%d,%d) walled off", seed, num, i, tx, ty)
				}
			}
		}
	}
}

func TestSpawnNightGhostsRespectsCap(t *testing.T) {
	cfg := config.DefaultHauntConfig()
	rng := rand.New(rand.NewSource(7))
	lv := GenerateLevel(5, rng, cfg) // already at the cap of 8

	added := lv.SpawnNightGhosts(rng, cfg)
	if added != 0 {
		t.Errorf("night spawn added %d ghosts past the cap", added)
	}
	if len(lv.Ghosts) > cfg.Ghosts.Cap {
		t.Errorf("ghost count %d exceeds cap %d", len(lv.Ghosts), cfg.Ghosts.Cap)
	}
}

func TestSpawnNightGhostsOnlyOnce(t *testing.T) {
	cfg := config.DefaultHauntConfig()
	rng := rand.New(rand.NewSource(7))
	lv := GenerateLevel(1, rng, cfg)

	first := lv.SpawnNightGhosts(rng, cfg)
	if first != cfg.Ghosts.NightExtra {
		t.Errorf("first night spawn added %d, expected %d", first, cfg.Ghosts.NightExtra)
	}
	if again := lv.SpawnNightGhosts(rng, cfg); again != 0 {
		t.Errorf("second night spawn added %d, expected 0", again)
	}
}
