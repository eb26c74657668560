package haunt

import (
	"fmt"

	"github.com/bmkoscak/halloween-haunt/internal/core"
)

// tileGlyph maps terrain to its screen cell. Night swaps the palette to the
// dim variant; geometry is unchanged.
func tileGlyph(t TileKind, night bool) (rune, core.Color) {
	switch t {
	case TileGrass:
		if night {
			return '.', core.ColorGray
		}
		return '.', core.ColorGreen
	case TileStreet:
		return ' ', core.ColorDefault
	case TileHouse:
		return '▒', core.ColorYellow
	case TileWall:
		return '█', core.ColorGray
	case TileChurch:
		return '▓', core.ColorWhite
	case TileGrave:
		return 'n', core.ColorGray
	case TileTree:
		return '♠', core.ColorGreen
	case TileDoor:
		return 'Π', core.ColorBrightYellow
	case TileChurchDoor:
		return '∩', core.ColorBrightWhite
	case TileCemeteryGate:
		return '=', core.ColorGray
	case TileAltar:
		return '†', core.ColorBrightMagenta
	default:
		return '?', core.ColorDefault
	}
}

// Render draws the whole frame: HUD, terrain, entities and any overlay for
// the current session state. It only writes cells; the platform styles them.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.level == nil {
		return
	}

	g.renderHUD(dst)

	offX := (dst.Width() - MapWidth) / 2
	if offX < 0 {
		offX = 0
	}
	offY := 2

	g.renderMap(dst, offX, offY)
	g.renderEntities(dst, offX, offY)

	switch {
	case g.state == StateTutorial:
		g.renderOverlay(dst, "Tutorial", g.TutorialHint())
	case g.puzzleActive:
		g.renderPuzzle(dst)
	case g.state == StatePaused:
		g.renderOverlay(dst, "Paused", "Press P to continue")
	case g.state == StateCompleted:
		g.renderOverlay(dst, fmt.Sprintf("Level %d complete!", g.level.Num),
			fmt.Sprintf("Bonus: %d (ENTER to continue)", g.completionBonus))
	case g.state == StateVictory:
		g.renderOverlay(dst, "You survived Halloween!", fmt.Sprintf("Final Score: %d", g.score))
	case g.state == StateGameOver:
		g.renderOverlay(dst, "Game Over", "Press R to retry the level")
	}
}

// renderHUD draws the two status lines above the map.
func (g *Game) renderHUD(dst *core.Screen) {
	hearts := ""
	for i := 0; i < g.player.Health; i++ {
		hearts += "♥"
	}
	phase := "Day"
	if g.level.Night {
		phase = "Night"
	}
	hud := fmt.Sprintf(" Lvl %d/%d  Candy %d/%d  %s  Score %d  %s",
		g.level.Num, g.cfg.Levels.Count, g.level.Collected, g.cfg.Candy.PerLevel,
		hearts, g.score, phase)
	dst.DrawTextColored(0, 0, hud, core.ColorBrightWhite)

	// Active effects on the second line.
	x := 1
	for _, e := range g.effects.List() {
		tag := fmt.Sprintf("[%c %.0fs] ", e.Kind.Glyph(), e.Remaining)
		dst.DrawTextColored(x, 1, tag, core.ColorBrightCyan)
		x += len(tag)
	}
}

// renderMap draws the terrain grid.
func (g *Game) renderMap(dst *core.Screen, offX, offY int) {
	for ty := 0; ty < MapHeight; ty++ {
		for tx := 0; tx < MapWidth; tx++ {
			r, c := tileGlyph(g.level.Map.At(tx, ty), g.level.Night)
			dst.SetCell(offX+tx, offY+ty, r, c)
		}
	}
}

// renderEntities draws candies, eggs, traps, dig spots, ghosts and player.
func (g *Game) renderEntities(dst *core.Screen, offX, offY int) {
	put := func(b core.Box, r rune, c core.Color) {
		cx, cy := b.Center()
		dst.SetCell(offX+int(cx/TileSize), offY+int(cy/TileSize), r, c)
	}

	for _, d := range g.level.DigSpots {
		if !d.Done {
			put(d.Box(), 'x', core.ColorBrightYellow)
		}
	}
	for _, c := range g.level.Candies {
		if c.Collected {
			continue
		}
		switch c.Flavor {
		case CandyCursed:
			put(c.Box, '*', core.ColorMagenta)
		case CandyBonus:
			put(c.Box, '*', core.ColorBrightYellow)
		default:
			put(c.Box, '*', core.ColorOrange)
		}
	}
	for _, e := range g.level.Eggs {
		if !e.Used {
			put(e.Box, '?', core.ColorCyan)
		}
	}
	for _, tr := range g.level.Traps {
		switch {
		case tr.Exploded:
			// Gone.
		case tr.Triggered:
			put(tr.Box, 'Ö', core.ColorBrightRed)
		default:
			put(tr.Box, 'ö', core.ColorOrange)
		}
	}
	for _, gh := range g.level.Ghosts {
		color := core.ColorBrightWhite
		if gh.Mode == GhostChase {
			color = core.ColorBrightRed
		}
		put(gh.Box, 'G', color)
	}

	playerColor := core.ColorBrightGreen
	if g.player.Invincible > 0 && g.tick%8 < 4 {
		playerColor = core.ColorGray // damage flicker
	}
	put(g.player.Box, '@', playerColor)
}

// renderPuzzle draws the altar mini-game over the map.
func (g *Game) renderPuzzle(dst *core.Screen) {
	w, h := dst.Width(), dst.Height()
	boxW, boxH := 40, 8
	boxX, boxY := (w-boxW)/2, (h-boxH)/2
	box := core.NewRect(boxX, boxY, boxW, boxH)
	dst.DrawRect(box, ' ')
	dst.DrawBox(box)

	dst.DrawTextCentered(boxY+1, "Arrange the relics")
	for i, s := range g.level.Puzzle.Slots {
		label := s.String()
		x := boxX + 3 + i*9
		color := core.ColorWhite
		if i == g.level.Puzzle.Cursor {
			color = core.ColorBrightYellow
			dst.SetCell(x-1, boxY+3, '>', color)
		}
		dst.DrawTextColored(x, boxY+3, label, color)
	}
	dst.DrawTextCentered(boxY+5, "A/D select  W/S swap  ENTER confirm  ESC leave")
}

// renderOverlay draws a centered two-line message box.
func (g *Game) renderOverlay(dst *core.Screen, line1, line2 string) {
	w, h := dst.Width(), dst.Height()

	maxLen := len(line1)
	if len(line2) > maxLen {
		maxLen = len(line2)
	}
	boxW := maxLen + 4
	boxH := 5
	box := core.NewRect((w-boxW)/2, (h-boxH)/2, boxW, boxH)
	dst.DrawRect(box, ' ')
	dst.DrawBox(box)

	dst.DrawTextCentered(box.Y+1, line1)
	dst.DrawTextCentered(box.Y+3, line2)
}
