package haunt

import "github.com/bmkoscak/halloween-haunt/internal/core"

// referenceTickRate is the tick rate the velocity constants are tuned for.
// Movement scales by dt*referenceTickRate so the same configuration plays
// identically at any host tick rate.
const referenceTickRate = 60.0

// moveWithTiles advances an entity by its velocity, resolving solid tiles per
// axis: a move that would clip a wall loses only the offending component, so
// sliding along walls works. The final position is clamped to map bounds.
func moveWithTiles(e *Entity, tm *TileMap, dt float64) {
	scale := dt * referenceTickRate

	// X axis first, then Y. Each axis is tested independently so a diagonal
	// move into a corner degrades into a slide instead of a full stop.
	next := e.Box
	next.X += e.VX * scale
	if tm.BlocksBox(next) {
		next.X = e.Box.X
		e.VX = 0
	}

	next.Y += e.VY * scale
	if tm.BlocksBox(next) {
		next.Y = e.Box.Y
		e.VY = 0
	}

	next.X = core.ClampF(next.X, 0, WorldW()-next.W)
	next.Y = core.ClampF(next.Y, 0, WorldH()-next.H)
	e.Box = next
}

// steerPlayer applies directional input to the player's velocity using the
// accelerate/decelerate model: held directions ramp speed up per axis, idle
// axes bleed speed off. speedCap already includes active effect modifiers.
func steerPlayer(p *Player, in core.InputFrame, accel, decel, speedCap float64, dt float64) {
	scale := dt * referenceTickRate

	dirX, dirY := 0.0, 0.0
	if in.Has(core.ActionLeft) {
		dirX -= 1
	}
	if in.Has(core.ActionRight) {
		dirX += 1
	}
	if in.Has(core.ActionUp) {
		dirY -= 1
	}
	if in.Has(core.ActionDown) {
		dirY += 1
	}

	p.VX = approach(p.VX, dirX*speedCap, accel, decel, scale)
	p.VY = approach(p.VY, dirY*speedCap, accel, decel, scale)
}

// approach moves a velocity component toward its target, accelerating when
// input drives it and decelerating toward zero otherwise.
func approach(v, target, accel, decel, scale float64) float64 {
	if target != 0 {
		if v < target {
			v += accel * scale
			if v > target {
				v = target
			}
		} else if v > target {
			v -= accel * scale
			if v < target {
				v = target
			}
		}
		return v
	}

	// No input on this axis: decelerate toward rest.
	switch {
	case v > 0:
		v -= decel * scale
		if v < 0 {
			v = 0
		}
	case v < 0:
		v += decel * scale
		if v > 0 {
			v = 0
		}
	}
	return v
}
