package move

import (
	"fmt"
	"slices"

	"github.com/domino14/kingme/board"
)

// Move is a candidate move: where a piece starts, where it ends, and a
// valuation used only to order the search.
type Move struct {
	origin      int
	destination int
	valuation   int
}

// NoMove is the sentinel played when no move could be chosen. The game
// rejects it without changing the position.
var NoMove = Move{origin: -1, destination: -1}

func NewMove(origin, destination, valuation int) *Move {
	return &Move{origin: origin, destination: destination, valuation: valuation}
}

func (m *Move) Origin() int      { return m.origin }
func (m *Move) Destination() int { return m.destination }
func (m *Move) Valuation() int   { return m.valuation }

// IsCapture returns true if the move jumps over a piece.
func (m *Move) IsCapture() bool {
	return board.Middle(m.origin, m.destination) != -1
}

// ShortDescription uses the usual notation: "21-17" for a step and
// "21x14" for a capture.
func (m *Move) ShortDescription() string {
	if m.origin == -1 && m.destination == -1 {
		return "(none)"
	}
	sep := "-"
	if m.IsCapture() {
		sep = "x"
	}
	return fmt.Sprintf("%d%s%d", m.origin, sep, m.destination)
}

func (m *Move) String() string {
	return fmt.Sprintf("<move %s val %d>", m.ShortDescription(), m.valuation)
}

// SortByValuation sorts ascending by valuation. Equal valuations keep their
// relative order.
func SortByValuation(moves []*Move) {
	slices.SortStableFunc(moves, func(a, b *Move) int {
		switch {
		case a.valuation < b.valuation:
			return -1
		case a.valuation > b.valuation:
			return 1
		}
		return 0
	})
}
