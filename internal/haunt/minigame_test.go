package haunt

import (
	"math/rand"
	"testing"

	"github.com/bmkoscak/halloween-haunt/internal/core"
)

func puzzleInput(a core.Action) core.InputFrame {
	in := core.NewInputFrame()
	in.Set(a)
	return in
}

func TestPuzzleStartsUnsolved(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for range 20 {
		p := NewChurchPuzzle(rng)
		if p.Slots == PuzzleTarget {
			t.Fatal("new puzzle must not start in the target arrangement")
		}
	}
}

func TestPuzzleCursorWrapsCyclically(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	p := NewChurchPuzzle(rng)

	if p.Cursor != 0 {
		t.Fatalf("initial cursor = %d, expected 0", p.Cursor)
	}
	p.HandleInput(puzzleInput(core.ActionLeft), rng)
	if p.Cursor != 3 {
		t.Errorf("cursor after left from 0 = %d, expected wrap to 3", p.Cursor)
	}
	p.HandleInput(puzzleInput(core.ActionRight), rng)
	if p.Cursor != 0 {
		t.Errorf("cursor after right from 3 = %d, expected wrap to 0", p.Cursor)
	}
}

func TestPuzzleSwap(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	p := NewChurchPuzzle(rng)
	p.Slots = [4]Symbol{SymbolBible, SymbolAngel, SymbolCandle, SymbolCross}
	p.Cursor = 0

	p.HandleInput(puzzleInput(core.ActionUp), rng) // swap slot 0 with slot 1
	want := [4]Symbol{SymbolAngel, SymbolBible, SymbolCandle, SymbolCross}
	if p.Slots != want {
		t.Errorf("slots after swap = %v, expected %v", p.Slots, want)
	}
}

func TestPuzzleExactOrderSolves(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	p := NewChurchPuzzle(rng)
	p.Slots = PuzzleTarget

	if got := p.HandleInput(puzzleInput(core.ActionConfirm), rng); got != PuzzleSolved {
		t.Errorf("confirm on target arrangement = %v, expected PuzzleSolved", got)
	}
	if !p.Solved {
		t.Error("puzzle should be marked solved")
	}
}

func TestPuzzleWrongOrderReshuffles(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	p := NewChurchPuzzle(rng)
	p.Slots = [4]Symbol{SymbolCross, SymbolCandle, SymbolBible, SymbolAngel}

	if got := p.HandleInput(puzzleInput(core.ActionConfirm), rng); got != PuzzleContinue {
		t.Errorf("confirm on wrong arrangement = %v, expected PuzzleContinue", got)
	}
	if p.Solved {
		t.Error("wrong arrangement must not solve the puzzle")
	}
	if p.Slots == PuzzleTarget {
		t.Error("reshuffle must not land on the target arrangement")
	}
}

func TestPuzzleCancel(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	p := NewChurchPuzzle(rng)
	before := p.Slots

	if got := p.HandleInput(puzzleInput(core.ActionBack), rng); got != PuzzleCanceled {
		t.Errorf("back = %v, expected PuzzleCanceled", got)
	}
	if p.Slots != before {
		t.Error("cancel must preserve the arrangement for a later attempt")
	}
}

func TestDigSpotCountsAreIndependent(t *testing.T) {
	a := &DigSpot{TX: 3, TY: 14}
	b := &DigSpot{TX: 5, TY: 16}

	for range 4 {
		if a.Dig(5) {
			t.Fatal("spot A completed early")
		}
	}
	if b.Dig(5) {
		t.Fatal("spot B completed after one press")
	}

	if a.Count != 4 {
		t.Errorf("spot A count = %d, expected 4 (unaffected by digging at B)", a.Count)
	}
	if b.Count != 1 {
		t.Errorf("spot B count = %d, expected 1", b.Count)
	}

	if !a.Dig(5) {
		t.Error("fifth press at A should complete the spot")
	}
	if !a.Done {
		t.Error("spot A should be done")
	}
	if a.Dig(5) {
		t.Error("digging a completed spot must be a no-op")
	}
}
