package zobrist

import (
	"lukechampine.com/frand"

	"github.com/domino14/kingme/board"
	"github.com/domino14/kingme/game"
)

const bignum = 1<<63 - 2

// generate a zobrist hash for a checkers position.
// https://en.wikipedia.org/wiki/Zobrist_hashing
type Zobrist struct {
	p2Turn uint64

	posTable  [board.NumCells][board.NumCellKinds]uint64
	skipTable [board.NumCells]uint64
}

func (z *Zobrist) Initialize() {
	for i := 0; i < board.NumCells; i++ {
		// Empty squares hash to nothing.
		for j := 1; j < board.NumCellKinds; j++ {
			z.posTable[i][j] = frand.Uint64n(bignum) + 1
		}
		z.skipTable[i] = frand.Uint64n(bignum) + 1
	}
	z.p2Turn = frand.Uint64n(bignum) + 1
}

func (z *Zobrist) Hash(k game.Key) uint64 {
	key := uint64(0)
	for i, c := range k.Cells {
		key ^= z.posTable[i][c]
	}
	if k.P2Turn {
		key ^= z.p2Turn
	}
	if k.SkipIndex >= 0 {
		key ^= z.skipTable[k.SkipIndex]
	}
	return key
}

// Update turns the hash of position from into the hash of position to by
// xoring out only what changed. A move touches at most three cells.
func (z *Zobrist) Update(key uint64, from, to game.Key) uint64 {
	for i := range from.Cells {
		if from.Cells[i] != to.Cells[i] {
			key ^= z.posTable[i][from.Cells[i]]
			key ^= z.posTable[i][to.Cells[i]]
		}
	}
	if from.P2Turn != to.P2Turn {
		key ^= z.p2Turn
	}
	if from.SkipIndex != to.SkipIndex {
		if from.SkipIndex >= 0 {
			key ^= z.skipTable[from.SkipIndex]
		}
		if to.SkipIndex >= 0 {
			key ^= z.skipTable[to.SkipIndex]
		}
	}
	return key
}
