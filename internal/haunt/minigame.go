package haunt

import (
	"math/rand"

	"github.com/bmkoscak/halloween-haunt/internal/core"
)

// Symbol is one of the church puzzle relics.
type Symbol int

const (
	SymbolAngel Symbol = iota
	SymbolBible
	SymbolCandle
	SymbolCross
)

// String returns the relic name.
func (s Symbol) String() string {
	switch s {
	case SymbolAngel:
		return "Angel"
	case SymbolBible:
		return "Bible"
	case SymbolCandle:
		return "Candle"
	case SymbolCross:
		return "Cross"
	default:
		return "Unknown"
	}
}

// PuzzleTarget is the winning arrangement of the church altar.
var PuzzleTarget = [4]Symbol{SymbolAngel, SymbolBible, SymbolCandle, SymbolCross}

// ChurchPuzzle is the altar mini-game: four relic slots that must be
// arranged into the target order. It owns its own input handling while
// active; the session suspends player movement until it exits.
type ChurchPuzzle struct {
	Slots  [4]Symbol
	Cursor int
	Solved bool
}

// NewChurchPuzzle creates a puzzle with a shuffled, unsolved arrangement.
func NewChurchPuzzle(rng *rand.Rand) *ChurchPuzzle {
	p := &ChurchPuzzle{}
	p.shuffle(rng)
	return p
}

// shuffle randomizes the slots, rerolling until the arrangement is not
// already the target.
func (p *ChurchPuzzle) shuffle(rng *rand.Rand) {
	p.Slots = PuzzleTarget
	for {
		rng.Shuffle(len(p.Slots), func(i, j int) {
			p.Slots[i], p.Slots[j] = p.Slots[j], p.Slots[i]
		})
		if p.Slots != PuzzleTarget {
			return
		}
	}
}

// PuzzleOutcome reports what a puzzle input tick did.
type PuzzleOutcome int

const (
	PuzzleContinue PuzzleOutcome = iota
	PuzzleSolved
	PuzzleCanceled
)

// HandleInput processes one tick of puzzle input. Left/Right move the slot
// cursor cyclically, Up/Down swap the selected relic with its neighbor,
// Confirm checks the arrangement (a wrong guess reshuffles), Back exits
// with the arrangement preserved for a later attempt.
func (p *ChurchPuzzle) HandleInput(in core.InputFrame, rng *rand.Rand) PuzzleOutcome {
	switch {
	case in.Has(core.ActionBack):
		return PuzzleCanceled
	case in.Has(core.ActionLeft):
		p.Cursor = (p.Cursor + 3) % 4
	case in.Has(core.ActionRight):
		p.Cursor = (p.Cursor + 1) % 4
	case in.Has(core.ActionUp):
		next := (p.Cursor + 1) % 4
		p.Slots[p.Cursor], p.Slots[next] = p.Slots[next], p.Slots[p.Cursor]
	case in.Has(core.ActionDown):
		prev := (p.Cursor + 3) % 4
		p.Slots[p.Cursor], p.Slots[prev] = p.Slots[prev], p.Slots[p.Cursor]
	case in.Has(core.ActionConfirm), in.Has(core.ActionInteract):
		if p.Slots == PuzzleTarget {
			p.Solved = true
			return PuzzleSolved
		}
		p.shuffle(rng)
	}
	return PuzzleContinue
}

// DigSpot is one cemetery dig site. Each spot keeps its own press counter;
// digging at another spot never touches this one.
type DigSpot struct {
	TX, TY int // tile position
	Count  int
	Done   bool
}

// Box returns the spot's world-space bounds.
func (d *DigSpot) Box() core.Box {
	return TileBox(d.TX, d.TY)
}

// Dig registers one interact press. Returns true when the spot completes.
func (d *DigSpot) Dig(required int) bool {
	if d.Done {
		return false
	}
	d.Count++
	if d.Count >= required {
		d.Done = true
		return true
	}
	return false
}
