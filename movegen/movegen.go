// Package movegen enumerates the destinations a single piece can reach.
// It knows the geometry of the board only: whose turn it is and whether a
// capture is mandatory is decided by the game package.
package movegen

import (
	"github.com/domino14/kingme/board"
)

// Black men move down the board (increasing row), white men move up.
var (
	upDeltas   = []board.Point{{X: -1, Y: -1}, {X: 1, Y: -1}}
	downDeltas = []board.Point{{X: -1, Y: 1}, {X: 1, Y: 1}}
	allDeltas  = []board.Point{{X: -1, Y: -1}, {X: 1, Y: -1}, {X: -1, Y: 1}, {X: 1, Y: 1}}
)

func deltas(c board.Cell) []board.Point {
	switch c {
	case board.BlackMan:
		return downDeltas
	case board.WhiteMan:
		return upDeltas
	case board.BlackKing, board.WhiteKing:
		return allDeltas
	}
	return nil
}

// CanMoveInDirection returns true if a piece c may travel in the direction
// of dy (sign only).
func CanMoveInDirection(c board.Cell, dy int) bool {
	switch c {
	case board.BlackMan:
		return dy > 0
	case board.WhiteMan:
		return dy < 0
	case board.BlackKing, board.WhiteKing:
		return dy != 0
	}
	return false
}

// Moves returns the cells the piece on idx can reach with a simple
// (non-capturing) move. An empty or invalid cell has no moves.
func Moves(b *board.Board, idx int) []int {
	c := b.Get(idx)
	p := board.ToPoint(idx)
	var ends []int
	for _, d := range deltas(c) {
		end := board.ToIndex(board.Point{X: p.X + d.X, Y: p.Y + d.Y})
		if end != -1 && b.Get(end) == board.Empty {
			ends = append(ends, end)
		}
	}
	return ends
}

// Skips returns the cells the piece on idx can land on by jumping over a
// single opposing piece.
func Skips(b *board.Board, idx int) []int {
	c := b.Get(idx)
	p := board.ToPoint(idx)
	var ends []int
	for _, d := range deltas(c) {
		mid := board.ToIndex(board.Point{X: p.X + d.X, Y: p.Y + d.Y})
		end := board.ToIndex(board.Point{X: p.X + 2*d.X, Y: p.Y + 2*d.Y})
		if mid == -1 || end == -1 {
			continue
		}
		if c.IsOpponent(b.Get(mid)) && b.Get(end) == board.Empty {
			ends = append(ends, end)
		}
	}
	return ends
}

// IsValidSkip returns true if the piece on start can jump to end.
func IsValidSkip(b *board.Board, start, end int) bool {
	for _, e := range Skips(b, start) {
		if e == end {
			return true
		}
	}
	return false
}

// IsValidMove returns true if the piece on start can step to end.
func IsValidMove(b *board.Board, start, end int) bool {
	for _, e := range Moves(b, start) {
		if e == end {
			return true
		}
	}
	return false
}
